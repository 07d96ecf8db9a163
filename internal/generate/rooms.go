package generate

import "yarl/internal/gamemap"

// generateRooms tries MaxRooms random rooms, dropping any that overlap one
// already placed, and tunnels each new room to the previous one.
func generateRooms(gmap *gamemap.GameMap, cfg *Config) {
	for i := 0; i < cfg.MaxRooms; i++ {
		w := cfg.RoomMinSize + cfg.Rand.Intn(cfg.RoomMaxSize-cfg.RoomMinSize+1)
		h := cfg.RoomMinSize + cfg.Rand.Intn(cfg.RoomMaxSize-cfg.RoomMinSize+1)
		if w >= gmap.Width || h >= gmap.Height {
			continue
		}
		x := cfg.Rand.Intn(gmap.Width - w)
		y := cfg.Rand.Intn(gmap.Height - h)

		room := gamemap.NewRect(x, y, w, h)
		overlaps := false
		for _, other := range gmap.Rooms {
			if room.Intersects(other) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}

		inner := room.Inner()
		gmap.Fill(inner, gamemap.MakeFloor())
		if n := len(gmap.Rooms); n > 0 {
			px, py := gmap.Rooms[n-1].Center()
			cx, cy := inner.Center()
			carveCorridor(gmap, px, py, cx, cy, cfg)
		}
		gmap.Rooms = append(gmap.Rooms, inner)
	}
}
