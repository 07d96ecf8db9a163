package generate

import "yarl/internal/gamemap"

// bspLeaf is a node in the BSP tree.
type bspLeaf struct {
	X, Y, W, H  int
	left, right *bspLeaf
	room        *gamemap.Rect
}

// minLeaf is the smallest leaf that still fits a RoomMinSize room plus walls.
func minLeaf(cfg *Config) int { return cfg.RoomMinSize + 2 }

// split divides the leaf into two children, returning false when leaf is too small.
func (l *bspLeaf) split(cfg *Config) bool {
	if l.left != nil || l.right != nil {
		return false
	}
	// Split across the longer axis when the leaf is clearly elongated.
	splitH := cfg.Rand.Intn(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		splitH = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		splitH = true
	}

	size := l.H
	if !splitH {
		size = l.W
	}
	lo, hi := minLeaf(cfg), size-minLeaf(cfg)
	if lo > hi {
		return false
	}
	at := lo + cfg.Rand.Intn(hi-lo+1)

	if splitH {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: l.W, H: at}
		l.right = &bspLeaf{X: l.X, Y: l.Y + at, W: l.W, H: l.H - at}
	} else {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: at, H: l.H}
		l.right = &bspLeaf{X: l.X + at, Y: l.Y, W: l.W - at, H: l.H}
	}
	return true
}

// createRooms carves one room inside every terminal leaf, keeping a wall
// ring inside the leaf so rooms of neighboring leaves never touch.
func (l *bspLeaf) createRooms(gmap *gamemap.GameMap, cfg *Config) {
	if l.left != nil || l.right != nil {
		if l.left != nil {
			l.left.createRooms(gmap, cfg)
		}
		if l.right != nil {
			l.right.createRooms(gmap, cfg)
		}
		return
	}
	maxW := min(cfg.RoomMaxSize, l.W-2)
	maxH := min(cfg.RoomMaxSize, l.H-2)
	if maxW < 1 || maxH < 1 {
		return
	}
	minW := min(cfg.RoomMinSize, maxW)
	minH := min(cfg.RoomMinSize, maxH)
	rw := minW + cfg.Rand.Intn(maxW-minW+1)
	rh := minH + cfg.Rand.Intn(maxH-minH+1)
	rx := l.X + 1 + cfg.Rand.Intn(l.W-rw-1)
	ry := l.Y + 1 + cfg.Rand.Intn(l.H-rh-1)

	room := gamemap.Rect{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	l.room = &room
	gmap.Fill(room, gamemap.MakeFloor())
	gmap.Rooms = append(gmap.Rooms, room)
}

// getRoom returns any room carved in this subtree.
func (l *bspLeaf) getRoom() *gamemap.Rect {
	if l.room != nil {
		return l.room
	}
	if l.left != nil {
		if r := l.left.getRoom(); r != nil {
			return r
		}
	}
	if l.right != nil {
		return l.right.getRoom()
	}
	return nil
}

// connectChildren carves corridors between the two children of a split leaf.
func (l *bspLeaf) connectChildren(gmap *gamemap.GameMap, cfg *Config) {
	if l.left == nil || l.right == nil {
		return
	}
	l.left.connectChildren(gmap, cfg)
	l.right.connectChildren(gmap, cfg)

	lRoom := l.left.getRoom()
	rRoom := l.right.getRoom()
	if lRoom == nil || rRoom == nil {
		return
	}
	lCX, lCY := lRoom.Center()
	rCX, rCY := rRoom.Center()
	carveCorridor(gmap, lCX, lCY, rCX, rCY, cfg)
}

// generateBSP partitions the inner map (one-cell border kept as wall) and
// places a room in every leaf.
func generateBSP(gmap *gamemap.GameMap, cfg *Config) {
	root := &bspLeaf{X: 0, Y: 0, W: gmap.Width, H: gmap.Height}
	maxLeaf := 2 * (cfg.RoomMaxSize + 2)

	leaves := []*bspLeaf{root}
	for splitAny := true; splitAny; {
		splitAny = false
		var next []*bspLeaf
		for _, leaf := range leaves {
			if leaf.left != nil || leaf.right != nil {
				next = append(next, leaf.left, leaf.right)
				continue
			}
			if leaf.W > maxLeaf || leaf.H > maxLeaf || cfg.Rand.Float64() > 0.25 {
				if leaf.split(cfg) {
					next = append(next, leaf.left, leaf.right)
					splitAny = true
					continue
				}
			}
			next = append(next, leaf)
		}
		leaves = next
	}

	root.createRooms(gmap, cfg)
	root.connectChildren(gmap, cfg)
}
