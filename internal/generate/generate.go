// Package generate builds dungeon levels: rooms, tunnels and monsters.
package generate

import (
	"yarl/internal/factory"
	"yarl/internal/gamemap"
	"yarl/internal/world"
	"yarl/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Generate carves a new level, moves player to the center of the first room
// and populates the remaining rooms from protos.
//
// player may already belong to another world; Place rebinds it. When the
// layout produced no rooms the player is left at the map center, which is
// then carved to floor so the player never stands in rock.
func Generate(cfg *Config, protos factory.Prototypes, player *world.Entity) *world.State {
	gmap := gamemap.New(cfg.MapWidth, cfg.MapHeight)
	switch cfg.Layout {
	case LayoutBSP:
		generateBSP(gmap, cfg)
	default:
		generateRooms(gmap, cfg)
	}

	s := world.New(gmap)
	x, y := gmap.Width/2, gmap.Height/2
	if len(gmap.Rooms) > 0 {
		x, y = gmap.Rooms[0].Center()
	} else {
		gmap.Set(x, y, gamemap.MakeFloor())
	}
	world.Place(player, x, y, s)
	populate(s, cfg, protos)

	logger.Log.WithFields(logrus.Fields{
		"component": "generate",
		"world":     s.ID(),
		"rooms":     len(gmap.Rooms),
		"entities":  s.Len(),
	}).Info("level generated")
	return s
}
