package action

import (
	"errors"
	"testing"

	"yarl/internal/combat"
	"yarl/internal/component"
	"yarl/internal/gamemap"
	"yarl/internal/message"
	"yarl/internal/world"

	"github.com/gdamore/tcell/v2"
)

// floorState returns a width×height world that is all floor.
func floorState(width, height int) *world.State {
	m := gamemap.New(width, height)
	m.Fill(gamemap.Rect{X1: 0, Y1: 0, X2: width - 1, Y2: height - 1}, gamemap.MakeFloor())
	return world.New(m)
}

func newActor(name string, hp, def, power int) *world.Entity {
	return world.NewActor(name, rune(name[0]), tcell.ColorWhite,
		component.NewFighter(hp, def, power), &component.AI{Behavior: component.BehaviorHostile})
}

// recordingCombat counts attacks and remembers the last pair.
type recordingCombat struct {
	calls            int
	attacker, target *world.Entity
}

func (c *recordingCombat) Attack(attacker, target *world.Entity) combat.AttackResult {
	c.calls++
	c.attacker, c.target = attacker, target
	return combat.AttackResult{}
}

func TestScenarioAWallBlocksMove(t *testing.T) {
	s := floorState(3, 3)
	s.Map.Set(2, 1, gamemap.MakeWall())
	a := world.Spawn(newActor("A", 10, 0, 1), s, 1, 1)

	r := &Resolver{}
	out, err := r.Resolve(s, a, BumpAction(1, 0))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if out != OutcomeBlockedByTile {
		t.Fatalf("expected %v, got %v", OutcomeBlockedByTile, out)
	}
	if a.X != 1 || a.Y != 1 {
		t.Fatalf("position should be unchanged, got (%d,%d)", a.X, a.Y)
	}
}

func TestScenarioBBumpIntoBlockerIsMelee(t *testing.T) {
	s := floorState(3, 3)
	a := world.Spawn(newActor("A", 10, 0, 5), s, 1, 1)
	b := world.Spawn(newActor("B", 10, 1, 1), s, 2, 1)

	log := message.NewLog()
	r := &Resolver{Combat: combat.NewResolver(log, a), Log: log}
	out, err := r.Resolve(s, a, BumpAction(1, 0))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if out != OutcomeAttacked {
		t.Fatalf("expected %v, got %v", OutcomeAttacked, out)
	}
	if a.X != 1 || a.Y != 1 {
		t.Fatalf("attacker must not move on a melee turn, got (%d,%d)", a.X, a.Y)
	}
	if b.Fighter.HP >= 10 {
		t.Fatalf("target HP should drop below 10, got %d", b.Fighter.HP)
	}
}

func TestScenarioCMoveIntoOpenFloor(t *testing.T) {
	s := floorState(3, 3)
	a := world.Spawn(newActor("A", 10, 0, 1), s, 1, 1)

	r := &Resolver{}
	out, err := r.Resolve(s, a, BumpAction(1, 0))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if out != OutcomeMoved {
		t.Fatalf("expected %v, got %v", OutcomeMoved, out)
	}
	if a.X != 2 || a.Y != 1 {
		t.Fatalf("expected (2,1), got (%d,%d)", a.X, a.Y)
	}
}

func TestScenarioDCornerOutOfBounds(t *testing.T) {
	s := floorState(3, 3)
	a := world.Spawn(newActor("A", 10, 0, 1), s, 0, 0)

	r := &Resolver{}
	// IsWalkable panics on out-of-bounds coordinates, so reaching it
	// would fail this test.
	for _, d := range [][2]int{{-1, 0}, {0, -1}, {-1, -1}} {
		out, err := r.Resolve(s, a, BumpAction(d[0], d[1]))
		if err != nil {
			t.Fatalf("Resolve(%v): %v", d, err)
		}
		if out != OutcomeOutOfBounds {
			t.Fatalf("Resolve(%v) = %v; want %v", d, out, OutcomeOutOfBounds)
		}
		if a.X != 0 || a.Y != 0 {
			t.Fatalf("position should be unchanged, got (%d,%d)", a.X, a.Y)
		}
	}
}

func TestFarEdgeOutOfBounds(t *testing.T) {
	s := floorState(3, 3)
	a := world.Spawn(newActor("A", 10, 0, 1), s, 2, 2)

	r := &Resolver{}
	out, _ := r.Resolve(s, a, MoveAction(1, 1))
	if out != OutcomeOutOfBounds {
		t.Fatalf("expected %v, got %v", OutcomeOutOfBounds, out)
	}
}

func TestMoveCheckOrder(t *testing.T) {
	// A blocker standing on a wall cell: terrain must be reported before
	// occupancy.
	s := floorState(3, 3)
	s.Map.Set(2, 1, gamemap.MakeWall())
	a := world.Spawn(newActor("A", 10, 0, 1), s, 1, 1)
	world.Spawn(newActor("B", 10, 0, 1), s, 2, 1)

	r := &Resolver{}
	out, _ := r.Resolve(s, a, MoveAction(1, 0))
	if out != OutcomeBlockedByTile {
		t.Fatalf("expected %v, got %v", OutcomeBlockedByTile, out)
	}
}

func TestMoveBlockedByEntity(t *testing.T) {
	s := floorState(3, 3)
	a := world.Spawn(newActor("A", 10, 0, 1), s, 1, 1)
	world.Spawn(newActor("B", 10, 0, 1), s, 1, 2)

	cbt := &recordingCombat{}
	r := &Resolver{Combat: cbt}
	out, _ := r.Resolve(s, a, MoveAction(0, 1))
	if out != OutcomeBlockedByEntity {
		t.Fatalf("expected %v, got %v", OutcomeBlockedByEntity, out)
	}
	if cbt.calls != 0 {
		t.Fatal("a plain move must never attack")
	}
}

func TestSuccessfulMoveOnlyMovesActor(t *testing.T) {
	dirs := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {-1, -1}, {1, -1}, {-1, 1}}
	for _, d := range dirs {
		s := floorState(5, 5)
		a := world.Spawn(newActor("A", 10, 0, 1), s, 2, 2)
		other := world.Spawn(newActor("B", 10, 0, 1), s, 0, 4)
		corpse := world.Spawn(world.NewEntity("bones", '%', tcell.ColorWhite, false), s, 2+d[0], 2+d[1])

		r := &Resolver{}
		out, err := r.Resolve(s, a, BumpAction(d[0], d[1]))
		if err != nil || out != OutcomeMoved {
			t.Fatalf("dir %v: got %v, %v", d, out, err)
		}
		if a.X != 2+d[0] || a.Y != 2+d[1] {
			t.Fatalf("dir %v: actor at (%d,%d)", d, a.X, a.Y)
		}
		if other.X != 0 || other.Y != 4 || corpse.X != 2+d[0] || corpse.Y != 2+d[1] {
			t.Fatalf("dir %v: another entity moved", d)
		}
		if err := s.CheckInvariants(); err != nil {
			t.Fatalf("dir %v: %v", d, err)
		}
	}
}

func TestBumpSelectsCorrectTarget(t *testing.T) {
	s := floorState(4, 4)
	a := world.Spawn(newActor("A", 10, 0, 1), s, 1, 1)
	world.Spawn(newActor("Decoy", 10, 0, 1), s, 1, 2)
	target := world.Spawn(newActor("Target", 10, 0, 1), s, 2, 2)

	cbt := &recordingCombat{}
	r := &Resolver{Combat: cbt}
	out, _ := r.Resolve(s, a, BumpAction(1, 1))
	if out != OutcomeAttacked || cbt.calls != 1 {
		t.Fatalf("expected one attack, got %v with %d calls", out, cbt.calls)
	}
	if cbt.attacker != a || cbt.target != target {
		t.Fatalf("attack went %v -> %v; want A -> Target", cbt.attacker, cbt.target)
	}
}

func TestMeleeNonCombatantKicks(t *testing.T) {
	s := floorState(3, 3)
	a := world.Spawn(newActor("A", 10, 0, 1), s, 1, 1)
	world.Spawn(world.NewEntity("statue", '&', tcell.ColorGray, true), s, 1, 0)

	log := message.NewLog()
	cbt := &recordingCombat{}
	r := &Resolver{Combat: cbt, Log: log}
	out, _ := r.Resolve(s, a, BumpAction(0, -1))
	if out != OutcomeKicked {
		t.Fatalf("expected %v, got %v", OutcomeKicked, out)
	}
	if cbt.calls != 0 {
		t.Fatal("non-combatant target must not reach combat")
	}
	if a.X != 1 || a.Y != 1 {
		t.Fatal("kicking must not move the actor")
	}
	last := log.Last(1)
	if len(last) != 1 || last[0].Text != "You kick the statue, much to its annoyance!" {
		t.Fatalf("unexpected log %v", last)
	}
}

func TestMeleeIntoEmptyCell(t *testing.T) {
	s := floorState(3, 3)
	a := world.Spawn(newActor("A", 10, 0, 1), s, 1, 1)

	r := &Resolver{Combat: &recordingCombat{}}
	out, err := r.Resolve(s, a, MeleeAction(1, 0))
	if err != nil || out != OutcomeNoTarget {
		t.Fatalf("got %v, %v; want %v", out, err, OutcomeNoTarget)
	}
	if a.X != 1 {
		t.Fatal("melee must never move")
	}
}

func TestMeleeOutOfBoundsIsNoTarget(t *testing.T) {
	s := floorState(3, 3)
	a := world.Spawn(newActor("A", 10, 0, 1), s, 0, 0)

	r := &Resolver{}
	out, _ := r.Resolve(s, a, MeleeAction(-1, 0))
	if out != OutcomeNoTarget {
		t.Fatalf("expected %v, got %v", OutcomeNoTarget, out)
	}
}

func TestEscapeReturnsSentinel(t *testing.T) {
	s := floorState(3, 3)
	a := world.Spawn(newActor("A", 10, 0, 1), s, 1, 1)

	r := &Resolver{}
	_, err := r.Resolve(s, a, EscapeAction())
	if !errors.Is(err, ErrEscape) {
		t.Fatalf("expected ErrEscape, got %v", err)
	}
}

func TestWait(t *testing.T) {
	s := floorState(3, 3)
	a := world.Spawn(newActor("A", 10, 0, 1), s, 1, 1)

	r := &Resolver{}
	out, err := r.Resolve(s, a, WaitAction())
	if err != nil || out != OutcomeWaited {
		t.Fatalf("got %v, %v; want %v", out, err, OutcomeWaited)
	}
}

func TestInvalidDirections(t *testing.T) {
	cases := []struct {
		name string
		act  Action
	}{
		{"null bump", BumpAction(0, 0)},
		{"long move", MoveAction(2, 0)},
		{"long melee", MeleeAction(0, -3)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := floorState(5, 5)
			a := world.Spawn(newActor("A", 10, 0, 1), s, 2, 2)
			r := &Resolver{}
			_, err := r.Resolve(s, a, tc.act)
			if !errors.Is(err, ErrInvalidDirection) {
				t.Fatalf("expected ErrInvalidDirection, got %v", err)
			}
			if a.X != 2 || a.Y != 2 {
				t.Fatal("an invalid action must not move the actor")
			}
		})
	}
}

func TestForeignEntityRejected(t *testing.T) {
	s := floorState(3, 3)
	other := floorState(3, 3)
	a := world.Spawn(newActor("A", 10, 0, 1), other, 1, 1)

	r := &Resolver{}
	_, err := r.Resolve(s, a, BumpAction(1, 0))
	if !errors.Is(err, ErrForeignEntity) {
		t.Fatalf("expected ErrForeignEntity, got %v", err)
	}
}

func TestDeadActorCannotAct(t *testing.T) {
	s := floorState(3, 3)
	a := world.Spawn(newActor("A", 10, 0, 1), s, 1, 1)
	a.Life = component.Dead

	r := &Resolver{}
	out, err := r.Resolve(s, a, BumpAction(1, 0))
	if err != nil || out != OutcomeNoActor {
		t.Fatalf("got %v, %v; want %v", out, err, OutcomeNoActor)
	}
	if a.X != 1 {
		t.Fatal("a dead actor must not move")
	}
}

func TestStrings(t *testing.T) {
	if got := BumpAction(1, -1).String(); got != "bump(1,-1)" {
		t.Errorf("String() = %q", got)
	}
	if got := WaitAction().String(); got != "wait" {
		t.Errorf("String() = %q", got)
	}
	if got := OutcomeBlockedByTile.String(); got != "blocked-by-tile" {
		t.Errorf("String() = %q", got)
	}
	if !OutcomeOutOfBounds.Blocked() || OutcomeMoved.Blocked() {
		t.Error("Blocked() misclassifies outcomes")
	}
}
