package generate

import (
	"yarl/internal/component"
	"yarl/internal/factory"
	"yarl/internal/gamemap"
	"yarl/internal/world"

	"github.com/zyedidia/generic/mapset"
)

// populate spawns 0..MaxMonstersPerRoom monsters in every room but the
// first, which is where the player starts.
func populate(s *world.State, cfg *Config, protos factory.Prototypes) {
	occupied := mapset.New[component.Position]()
	for _, e := range s.Entities() {
		occupied.Put(e.Position)
	}

	rooms := s.Map.Rooms
	if len(rooms) < 2 {
		return
	}
	for _, room := range rooms[1:] {
		n := cfg.Rand.Intn(cfg.MaxMonstersPerRoom + 1)
		for i := 0; i < n; i++ {
			x, y, ok := pickFreeInRoom(room, cfg, occupied)
			if !ok {
				continue
			}
			proto := protos.Orc
			if cfg.Rand.Intn(100) < cfg.TrollChance {
				proto = protos.Troll
			}
			world.Spawn(proto, s, x, y)
			occupied.Put(component.Position{X: x, Y: y})
		}
	}
}

// pickFreeInRoom tries up to 20 times to find an unoccupied position inside
// room. Crowded rooms simply get fewer monsters.
func pickFreeInRoom(room gamemap.Rect, cfg *Config, occupied mapset.Set[component.Position]) (int, int, bool) {
	const maxAttempts = 20
	for i := 0; i < maxAttempts; i++ {
		x, y := randomInRoom(room, cfg)
		if !occupied.Has(component.Position{X: x, Y: y}) {
			return x, y, true
		}
	}
	return 0, 0, false
}

func randomInRoom(room gamemap.Rect, cfg *Config) (int, int) {
	w := room.X2 - room.X1 + 1
	h := room.Y2 - room.Y1 + 1
	return room.X1 + cfg.Rand.Intn(max(1, w)), room.Y1 + cfg.Rand.Intn(max(1, h))
}
