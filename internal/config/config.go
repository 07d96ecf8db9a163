// Package config loads game configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FighterStats seeds a component.Fighter. These numbers are tuning, not
// design canon.
type FighterStats struct {
	HP      int `yaml:"hp"`
	Defense int `yaml:"defense"`
	Power   int `yaml:"power"`
	// Behavior is "hostile" or "stationary". Monsters only; the player is
	// driven by input.
	Behavior string `yaml:"behavior,omitempty"`
}

type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type MapConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type DungeonConfig struct {
	MaxRooms           int `yaml:"max_rooms"`
	RoomMinSize        int `yaml:"room_min_size"`
	RoomMaxSize        int `yaml:"room_max_size"`
	MaxMonstersPerRoom int `yaml:"max_monsters_per_room"`
	TrollChance        int `yaml:"troll_chance"` // 0-100 percent
	// Layout is "rooms" (random non-overlapping rooms) or "bsp".
	Layout string `yaml:"layout"`
	// CorridorStyle is "l" (random elbow), "z" (dogleg through the midpoint)
	// or "straight" (always horizontal first).
	CorridorStyle string `yaml:"corridor_style"`
}

type FOVConfig struct {
	Radius int `yaml:"radius"`
}

type CombatConfig struct {
	Player FighterStats `yaml:"player"`
	Orc    FighterStats `yaml:"orc"`
	Troll  FighterStats `yaml:"troll"`
}

type ServerConfig struct {
	Port    int    `yaml:"port"`
	HostKey string `yaml:"host_key"`
}

// Config is the full set of runtime options.
type Config struct {
	// Seed for dungeon generation. 0 picks one from the clock.
	Seed int64 `yaml:"seed"`
	// Debug enables invariant checks after every turn.
	Debug   bool          `yaml:"debug"`
	Screen  ScreenConfig  `yaml:"screen"`
	Map     MapConfig     `yaml:"map"`
	Dungeon DungeonConfig `yaml:"dungeon"`
	FOV     FOVConfig     `yaml:"fov"`
	Combat  CombatConfig  `yaml:"combat"`
	Server  ServerConfig  `yaml:"server"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Screen: ScreenConfig{Width: 80, Height: 50},
		Map:    MapConfig{Width: 80, Height: 43},
		Dungeon: DungeonConfig{
			MaxRooms:           30,
			RoomMinSize:        6,
			RoomMaxSize:        10,
			MaxMonstersPerRoom: 2,
			TrollChance:        20,
			Layout:             "rooms",
			CorridorStyle:      "l",
		},
		FOV: FOVConfig{Radius: 8},
		Combat: CombatConfig{
			Player: FighterStats{HP: 30, Defense: 2, Power: 5},
			Orc:    FighterStats{HP: 10, Defense: 0, Power: 3, Behavior: "hostile"},
			Troll:  FighterStats{HP: 16, Defense: 1, Power: 4, Behavior: "hostile"},
		},
		Server: ServerConfig{Port: 2222, HostKey: "server_host_key"},
	}
}

// Load starts from Default, overlays the YAML file at path (skipped when
// path is empty or the file does not exist), then applies YARL_*
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// envInts maps YARL_* variables onto integer fields.
func envInts(cfg *Config) map[string]*int {
	return map[string]*int{
		"YARL_MAP_WIDTH":      &cfg.Map.Width,
		"YARL_MAP_HEIGHT":     &cfg.Map.Height,
		"YARL_FOV_RADIUS":     &cfg.FOV.Radius,
		"YARL_MAX_ROOMS":      &cfg.Dungeon.MaxRooms,
		"YARL_MAX_MONSTERS":   &cfg.Dungeon.MaxMonstersPerRoom,
		"YARL_PORT":           &cfg.Server.Port,
		"YARL_PLAYER_HP":      &cfg.Combat.Player.HP,
		"YARL_PLAYER_POWER":   &cfg.Combat.Player.Power,
		"YARL_PLAYER_DEFENSE": &cfg.Combat.Player.Defense,
	}
}

func applyEnv(cfg *Config) error {
	for key, dst := range envInts(cfg) {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}
	if v := os.Getenv("YARL_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("YARL_SEED: %w", err)
		}
		cfg.Seed = n
	}
	if v := os.Getenv("YARL_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("YARL_DEBUG: %w", err)
		}
		cfg.Debug = b
	}
	if v := os.Getenv("YARL_LAYOUT"); v != "" {
		cfg.Dungeon.Layout = v
	}
	if v := os.Getenv("YARL_CORRIDOR_STYLE"); v != "" {
		cfg.Dungeon.CorridorStyle = v
	}
	if v := os.Getenv("YARL_HOST_KEY"); v != "" {
		cfg.Server.HostKey = v
	}
	return nil
}

// Validate rejects configurations the generator or engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Map.Width < 3 || c.Map.Height < 3:
		return fmt.Errorf("config: map %dx%d too small", c.Map.Width, c.Map.Height)
	case c.Dungeon.RoomMinSize < 3 || c.Dungeon.RoomMinSize > c.Dungeon.RoomMaxSize:
		return fmt.Errorf("config: room size range [%d,%d] invalid", c.Dungeon.RoomMinSize, c.Dungeon.RoomMaxSize)
	case c.Dungeon.MaxRooms < 1:
		return fmt.Errorf("config: max_rooms must be positive, got %d", c.Dungeon.MaxRooms)
	case c.Dungeon.MaxMonstersPerRoom < 0:
		return fmt.Errorf("config: max_monsters_per_room must not be negative")
	case c.Dungeon.TrollChance < 0 || c.Dungeon.TrollChance > 100:
		return fmt.Errorf("config: troll_chance %d outside 0-100", c.Dungeon.TrollChance)
	case c.Dungeon.Layout != "rooms" && c.Dungeon.Layout != "bsp":
		return fmt.Errorf("config: unknown layout %q", c.Dungeon.Layout)
	case c.Dungeon.CorridorStyle != "l" && c.Dungeon.CorridorStyle != "z" && c.Dungeon.CorridorStyle != "straight":
		return fmt.Errorf("config: unknown corridor_style %q", c.Dungeon.CorridorStyle)
	case !knownBehavior(c.Combat.Orc.Behavior) || !knownBehavior(c.Combat.Troll.Behavior):
		return fmt.Errorf("config: monster behavior must be hostile or stationary, got %q/%q",
			c.Combat.Orc.Behavior, c.Combat.Troll.Behavior)
	case c.FOV.Radius < 1:
		return fmt.Errorf("config: fov radius must be positive, got %d", c.FOV.Radius)
	case c.Combat.Player.HP < 1 || c.Combat.Orc.HP < 1 || c.Combat.Troll.HP < 1:
		return fmt.Errorf("config: every fighter needs at least 1 hp")
	}
	return nil
}

func knownBehavior(b string) bool {
	return b == "hostile" || b == "stationary"
}
