package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"yarl/internal/engine"
)

// RunLog records statistics gathered during one run.
type RunLog struct {
	Started       time.Time      `json:"started"`
	Seed          int64          `json:"seed"`
	Died          bool           `json:"died"`
	TurnsPlayed   int            `json:"turns_played"`
	EnemiesKilled map[string]int `json:"enemies_killed"` // name → kill count
	DamageTaken   int            `json:"damage_taken"`
}

// TotalKills sums EnemiesKilled.
func (l RunLog) TotalKills() int {
	n := 0
	for _, c := range l.EnemiesKilled {
		n += c
	}
	return n
}

// KillBreakdown renders EnemiesKilled as "Orc×3  Troll×1", most kills first.
func (l RunLog) KillBreakdown() string {
	type entry struct {
		name  string
		count int
	}
	var kills []entry
	for name, c := range l.EnemiesKilled {
		kills = append(kills, entry{name, c})
	}
	sort.Slice(kills, func(i, j int) bool {
		if kills[i].count != kills[j].count {
			return kills[i].count > kills[j].count
		}
		return kills[i].name < kills[j].name
	})
	parts := make([]string, len(kills))
	for i, k := range kills {
		parts[i] = fmt.Sprintf("%s×%d", k.name, k.count)
	}
	return strings.Join(parts, "  ")
}

// summarize fills the end-of-run fields of l from the engine's world.
func summarize(l RunLog, e *engine.Engine) RunLog {
	l.TurnsPlayed = e.Turn()
	l.Died = !e.Player.IsAlive()
	if f := e.Player.Fighter; f != nil {
		l.DamageTaken = f.MaxHP - max(0, f.HP)
	}
	l.EnemiesKilled = make(map[string]int)
	for _, ent := range e.State.Entities() {
		if ent == e.Player || !ent.IsActor() || ent.IsAlive() {
			continue
		}
		l.EnemiesKilled[strings.TrimPrefix(ent.Name, "remains of ")]++
	}
	return l
}

// saveRunLog appends the completed run as a single JSON line to runs.jsonl.
func saveRunLog(l RunLog) error {
	dir, err := runLogDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create run log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode run log: %w", err)
	}
	_, err = f.Write(append(data, '\n'))
	return err
}

// runLogDir returns the directory where run logs are stored:
// $XDG_DATA_HOME/yarl, defaulting to ~/.local/share/yarl.
func runLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "yarl"), nil
}
