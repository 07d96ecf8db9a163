package engine

import (
	"context"
	"errors"
	"testing"

	"yarl/internal/action"
	"yarl/internal/combat"
	"yarl/internal/component"
	"yarl/internal/config"
	"yarl/internal/factory"
	"yarl/internal/gamemap"
	"yarl/internal/message"
	"yarl/internal/world"

	"github.com/gdamore/tcell/v2"
)

// newTestEngine builds an open width×height floor with the player at (px, py).
func newTestEngine(t *testing.T, width, height, px, py int) (*Engine, factory.Prototypes) {
	t.Helper()
	cfg := config.Default()
	m := gamemap.New(width, height)
	m.Fill(gamemap.Rect{X1: 0, Y1: 0, X2: width - 1, Y2: height - 1}, gamemap.MakeFloor())
	s := world.New(m)
	protos := factory.NewPrototypes(cfg.Combat)
	player := world.Spawn(protos.Player, s, px, py)
	return New(cfg, s, player, message.NewLog()), protos
}

func TestNewPostsWelcomeAndComputesFOV(t *testing.T) {
	e, _ := newTestEngine(t, 10, 10, 2, 2)
	msgs := e.Log.Messages()
	if len(msgs) != 1 || msgs[0].Text != WelcomeText {
		t.Fatalf("log = %+v, want only the welcome text", msgs)
	}
	if !e.State.Map.Visible(2, 2) || !e.State.Map.Explored(2, 2) {
		t.Error("player cell should be visible and explored")
	}
	if e.Turn() != 0 {
		t.Errorf("Turn = %d, want 0", e.Turn())
	}
}

func TestHandlePlayerActionOutcomes(t *testing.T) {
	cases := []struct {
		name    string
		act     action.Action
		wall    bool
		want    action.Outcome
		wantX   int
		wantErr error
		turns   int
	}{
		{"move", action.BumpAction(1, 0), false, action.OutcomeMoved, 3, nil, 1},
		{"wall", action.BumpAction(1, 0), true, action.OutcomeBlockedByTile, 2, nil, 1},
		{"wait", action.WaitAction(), false, action.OutcomeWaited, 2, nil, 1},
		{"escape", action.EscapeAction(), false, action.OutcomeNone, 2, action.ErrEscape, 0},
		{"invalid", action.MoveAction(2, 0), false, action.OutcomeNone, 2, action.ErrInvalidDirection, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newTestEngine(t, 6, 6, 2, 2)
			if tc.wall {
				e.State.Map.Set(3, 2, gamemap.MakeWall())
			}
			got, err := e.HandlePlayerAction(context.Background(), tc.act)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("outcome = %v, want %v", got, tc.want)
			}
			if e.Player.X != tc.wantX || e.Player.Y != 2 {
				t.Errorf("player at (%d,%d), want (%d,2)", e.Player.X, e.Player.Y, tc.wantX)
			}
			if e.Turn() != tc.turns {
				t.Errorf("Turn = %d, want %d", e.Turn(), tc.turns)
			}
		})
	}
}

func TestMoveRefreshesFOV(t *testing.T) {
	cfg := config.Default()
	cfg.FOV.Radius = 2
	m := gamemap.New(10, 3)
	m.Fill(gamemap.Rect{X1: 0, Y1: 0, X2: 9, Y2: 2}, gamemap.MakeFloor())
	s := world.New(m)
	player := world.Spawn(factory.NewPlayer(cfg.Combat.Player), s, 1, 1)
	e := New(cfg, s, player, nil)

	if m.Visible(3, 1) {
		t.Fatal("(3,1) visible before moving")
	}
	if _, err := e.HandlePlayerAction(context.Background(), action.BumpAction(1, 0)); err != nil {
		t.Fatal(err)
	}
	if !m.Visible(3, 1) {
		t.Error("(3,1) should be visible after moving next to it")
	}
	if m.Visible(0, 1) || !m.Explored(0, 1) {
		t.Error("(0,1) should have left view but stay explored")
	}
}

func TestEnemyChasesThenAttacks(t *testing.T) {
	e, protos := newTestEngine(t, 10, 5, 2, 2)
	orc := world.Spawn(protos.Orc, e.State, 5, 2)
	ctx := context.Background()

	for _, wantX := range []int{4, 3} {
		if _, err := e.HandlePlayerAction(ctx, action.WaitAction()); err != nil {
			t.Fatal(err)
		}
		if orc.X != wantX || orc.Y != 2 {
			t.Fatalf("orc at (%d,%d), want (%d,2)", orc.X, orc.Y, wantX)
		}
	}

	if _, err := e.HandlePlayerAction(ctx, action.WaitAction()); err != nil {
		t.Fatal(err)
	}
	if orc.X != 3 {
		t.Errorf("orc moved while attacking: (%d,%d)", orc.X, orc.Y)
	}
	// orc power 3 - player defense 2
	if e.Player.Fighter.HP != 29 {
		t.Errorf("player HP = %d, want 29", e.Player.Fighter.HP)
	}
	last := e.Log.Last(1)
	if len(last) != 1 || last[0].Text != "Orc attacks Player for 1 hit points." {
		t.Errorf("last message = %+v", last)
	}
}

func TestEnemyOutOfSightWaits(t *testing.T) {
	e, protos := newTestEngine(t, 12, 3, 1, 1)
	e.State.Map.Set(5, 0, gamemap.MakeWall())
	e.State.Map.Set(5, 1, gamemap.MakeWall())
	e.State.Map.Set(5, 2, gamemap.MakeWall())
	e.UpdateFOV()
	orc := world.Spawn(protos.Orc, e.State, 8, 1)

	if _, err := e.HandlePlayerAction(context.Background(), action.WaitAction()); err != nil {
		t.Fatal(err)
	}
	if orc.X != 8 || orc.Y != 1 {
		t.Errorf("unseen orc moved to (%d,%d)", orc.X, orc.Y)
	}
}

func TestPlayerKillsOrcAndWalksOverCorpse(t *testing.T) {
	e, protos := newTestEngine(t, 6, 5, 2, 2)
	orc := world.Spawn(protos.Orc, e.State, 3, 2)
	ctx := context.Background()

	out, err := e.HandlePlayerAction(ctx, action.BumpAction(1, 0))
	if err != nil || out != action.OutcomeAttacked {
		t.Fatalf("first bump: %v, %v", out, err)
	}
	if orc.Fighter.HP != 5 {
		t.Fatalf("orc HP = %d, want 5", orc.Fighter.HP)
	}
	if e.Player.Fighter.HP != 29 {
		t.Fatalf("player HP = %d, want 29 after retaliation", e.Player.Fighter.HP)
	}

	if _, err := e.HandlePlayerAction(ctx, action.BumpAction(1, 0)); err != nil {
		t.Fatal(err)
	}
	if orc.IsAlive() || orc.BlocksMovement || orc.Name != "remains of Orc" {
		t.Fatalf("orc not turned into a corpse: %+v", orc)
	}
	if e.Player.Fighter.HP != 29 {
		t.Errorf("dead orc struck back: player HP = %d", e.Player.Fighter.HP)
	}

	out, err = e.HandlePlayerAction(ctx, action.BumpAction(1, 0))
	if err != nil || out != action.OutcomeMoved {
		t.Fatalf("walking onto corpse: %v, %v", out, err)
	}
	if e.Player.X != 3 {
		t.Errorf("player X = %d, want 3", e.Player.X)
	}
}

func TestDeadPlayer(t *testing.T) {
	e, _ := newTestEngine(t, 5, 5, 2, 2)
	combat.NewResolver(e.Log, e.Player).Kill(e.Player)

	out, err := e.HandlePlayerAction(context.Background(), action.WaitAction())
	if !errors.Is(err, ErrPlayerDead) || out != action.OutcomeNoActor {
		t.Fatalf("wait while dead: %v, %v", out, err)
	}
	if _, err := e.HandlePlayerAction(context.Background(), action.EscapeAction()); !errors.Is(err, action.ErrEscape) {
		t.Fatalf("escape while dead: %v", err)
	}
	if e.Turn() != 0 {
		t.Errorf("Turn = %d, want 0", e.Turn())
	}
}

func TestDebugChecksInvariants(t *testing.T) {
	e, _ := newTestEngine(t, 8, 8, 1, 1)
	e.Debug = true
	statue := world.NewEntity("Statue", '&', tcell.ColorGray, true)
	world.Spawn(statue, e.State, 6, 6)
	world.Spawn(statue, e.State, 6, 6)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic from the invariant check")
		}
		var ie *world.InvariantError
		if err, ok := r.(error); !ok || !errors.As(err, &ie) {
			t.Fatalf("panic value %v is not an *InvariantError", r)
		}
	}()
	_, _ = e.HandlePlayerAction(context.Background(), action.WaitAction())
}

func TestEnemiesActInInsertionOrder(t *testing.T) {
	// Two orcs queue for the single cell next to the player in a corridor.
	e, protos := newTestEngine(t, 8, 1, 0, 0)
	first := world.Spawn(protos.Orc, e.State, 2, 0)
	second := world.Spawn(protos.Orc, e.State, 3, 0)

	if _, err := e.HandlePlayerAction(context.Background(), action.WaitAction()); err != nil {
		t.Fatal(err)
	}
	if first.X != 1 || second.X != 2 {
		t.Errorf("orcs at %d and %d, want 1 and 2", first.X, second.X)
	}
	if err := e.State.CheckInvariants(); err != nil {
		t.Fatal(err)
	}
}

func TestDeadEnemiesDoNotAct(t *testing.T) {
	e, protos := newTestEngine(t, 6, 5, 2, 2)
	orc := world.Spawn(protos.Orc, e.State, 3, 2)
	orc.Life = component.Dead

	if _, err := e.HandlePlayerAction(context.Background(), action.WaitAction()); err != nil {
		t.Fatal(err)
	}
	if e.Player.Fighter.HP != e.Player.Fighter.MaxHP {
		t.Errorf("dead orc attacked: player HP = %d", e.Player.Fighter.HP)
	}
}

func TestBlockedMoveIsReported(t *testing.T) {
	cases := []struct {
		name   string
		act    action.Action
		px, py int
		want   bool
	}{
		{"wall", action.BumpAction(1, 0), 2, 2, true},
		{"map edge", action.BumpAction(-1, 0), 0, 2, true},
		{"open floor", action.BumpAction(1, 0), 1, 2, false},
		{"wait", action.WaitAction(), 2, 2, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newTestEngine(t, 6, 6, tc.px, tc.py)
			e.State.Map.Set(3, 2, gamemap.MakeWall())
			if _, err := e.HandlePlayerAction(context.Background(), tc.act); err != nil {
				t.Fatal(err)
			}
			last := e.Log.Last(1)[0]
			if got := last.Text == BlockedText; got != tc.want {
				t.Fatalf("last message = %q, blocked report %v, want %v", last.Text, got, tc.want)
			}
			if tc.want && last.Color != message.ColorImpossible {
				t.Errorf("blocked message color = %v, want ColorImpossible", last.Color)
			}
		})
	}
}

func TestStationaryMonsterHoldsPosition(t *testing.T) {
	cfg := config.Default()
	cfg.Combat.Troll.Behavior = "stationary"
	m := gamemap.New(10, 5)
	m.Fill(gamemap.Rect{X1: 0, Y1: 0, X2: 9, Y2: 4}, gamemap.MakeFloor())
	s := world.New(m)
	protos := factory.NewPrototypes(cfg.Combat)
	player := world.Spawn(protos.Player, s, 2, 2)
	troll := world.Spawn(protos.Troll, s, 5, 2)
	e := New(cfg, s, player, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := e.HandlePlayerAction(ctx, action.WaitAction()); err != nil {
			t.Fatal(err)
		}
	}
	if troll.X != 5 || troll.Y != 2 {
		t.Fatalf("stationary troll moved to (%d,%d)", troll.X, troll.Y)
	}

	for i := 0; i < 2; i++ {
		if _, err := e.HandlePlayerAction(ctx, action.BumpAction(1, 0)); err != nil {
			t.Fatal(err)
		}
	}
	// troll power 4 - player defense 2
	if e.Player.Fighter.HP != 28 {
		t.Errorf("player HP = %d; want 28 after one troll attack", e.Player.Fighter.HP)
	}
}
