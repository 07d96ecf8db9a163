package component

// AIBehavior describes how a monster acts each turn.
type AIBehavior uint8

const (
	BehaviorHostile    AIBehavior = iota // chase the player, attack if adjacent
	BehaviorStationary                   // never moves, attacks if adjacent
)

type AI struct {
	Behavior AIBehavior
}
