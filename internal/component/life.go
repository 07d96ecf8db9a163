package component

// Life is the explicit liveness state of an actor.
type Life uint8

const (
	Alive Life = iota
	Dead
)

func (l Life) String() string {
	if l == Dead {
		return "dead"
	}
	return "alive"
}
