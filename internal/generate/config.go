package generate

import (
	"math/rand"

	"yarl/internal/config"
)

// Layout selects the room placement algorithm.
type Layout uint8

const (
	LayoutRooms Layout = iota // random rooms, rejected on overlap
	LayoutBSP                 // binary space partition
)

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped  CorridorStyle = iota // random elbow
	CorridorZShaped                       // dogleg through the vertical midpoint
	CorridorStraight                      // horizontal leg, then vertical
)

var corridorStyles = map[string]CorridorStyle{
	"l":        CorridorLShaped,
	"z":        CorridorZShaped,
	"straight": CorridorStraight,
}

// Config drives procedural generation for one level.
type Config struct {
	MapWidth, MapHeight int
	MaxRooms            int
	RoomMinSize         int
	RoomMaxSize         int
	MaxMonstersPerRoom  int
	TrollChance         int // 0-100 percent
	Layout              Layout
	CorridorStyle       CorridorStyle
	Rand                *rand.Rand
}

// FromConfig builds a generation Config from the game configuration.
func FromConfig(cfg config.Config, rng *rand.Rand) *Config {
	layout := LayoutRooms
	if cfg.Dungeon.Layout == "bsp" {
		layout = LayoutBSP
	}
	return &Config{
		MapWidth:           cfg.Map.Width,
		MapHeight:          cfg.Map.Height,
		MaxRooms:           cfg.Dungeon.MaxRooms,
		RoomMinSize:        cfg.Dungeon.RoomMinSize,
		RoomMaxSize:        cfg.Dungeon.RoomMaxSize,
		MaxMonstersPerRoom: cfg.Dungeon.MaxMonstersPerRoom,
		TrollChance:        cfg.Dungeon.TrollChance,
		Layout:             layout,
		CorridorStyle:      corridorStyles[cfg.Dungeon.CorridorStyle],
		Rand:               rng,
	}
}
