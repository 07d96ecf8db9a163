// Package fov computes which cells an observer can see.
package fov

import "yarl/internal/gamemap"

// octant transform matrices.
// For each octant, a (dx, dy) sweep pair maps to a world offset via:
//
//	worldX = cx + dx*xx + dy*xy
//	worldY = cy + dx*yx + dy*yy
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// Compute overwrites the visible layer of m with everything seen from
// (ox, oy) within radius, and marks those cells explored. Walls bounding a
// lit area are themselves lit.
func Compute(m *gamemap.GameMap, ox, oy, radius int) {
	m.ClearVisible()
	if !m.InBounds(ox, oy) {
		return
	}
	m.SetVisible(ox, oy)
	for _, o := range octants {
		castLight(m, ox, oy, 1, 1.0, 0.0, radius, o[0], o[1], o[2], o[3])
	}
}

// castLight lights one octant with recursive shadowcasting. j is the row
// distance from the origin, dx sweeps the row from -j to 0.
func castLight(m *gamemap.GameMap, cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	radiusSq := float64(radius * radius)
	newStart := start

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			wx := cx + dx*xx + dy*xy
			wy := cy + dx*yx + dy*yy

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			inside := m.InBounds(wx, wy)
			if float64(dx*dx+dy*dy) < radiusSq && inside {
				m.SetVisible(wx, wy)
			}

			opaque := !inside || !m.IsTransparent(wx, wy)

			if blocked {
				if opaque {
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
			} else if opaque && j < radius {
				blocked = true
				castLight(m, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
