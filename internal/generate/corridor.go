package generate

import "yarl/internal/gamemap"

// bend returns the turning points of a tunnel from (x1,y1) to (x2,y2),
// endpoints included. Consecutive points always share a row or a column.
func bend(style CorridorStyle, x1, y1, x2, y2 int, horizontalFirst bool) [][2]int {
	switch style {
	case CorridorZShaped:
		mid := (y1 + y2) / 2
		return [][2]int{{x1, y1}, {x1, mid}, {x2, mid}, {x2, y2}}
	case CorridorStraight:
		horizontalFirst = true
	}
	if horizontalFirst {
		return [][2]int{{x1, y1}, {x2, y1}, {x2, y2}}
	}
	return [][2]int{{x1, y1}, {x1, y2}, {x2, y2}}
}

// carveCorridor digs a tunnel between (x1,y1) and (x2,y2). L-shaped tunnels
// flip a coin for which leg comes first; the other styles are fixed.
func carveCorridor(gmap *gamemap.GameMap, x1, y1, x2, y2 int, cfg *Config) {
	horizontalFirst := true
	if cfg.CorridorStyle == CorridorLShaped {
		horizontalFirst = cfg.Rand.Intn(2) == 0
	}
	points := bend(cfg.CorridorStyle, x1, y1, x2, y2, horizontalFirst)
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		gmap.Fill(gamemap.Rect{
			X1: min(a[0], b[0]), Y1: min(a[1], b[1]),
			X2: max(a[0], b[0]), Y2: max(a[1], b[1]),
		}, gamemap.MakeFloor())
	}
}
