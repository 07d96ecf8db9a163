package component

// Fighter is the combat capability of an actor.
type Fighter struct {
	MaxHP   int
	HP      int
	Defense int
	Power   int
}

// NewFighter returns a Fighter at full health.
func NewFighter(hp, defense, power int) Fighter {
	return Fighter{MaxHP: hp, HP: hp, Defense: defense, Power: power}
}

// SetHP assigns hit points clamped to [0, MaxHP].
func (f *Fighter) SetHP(hp int) {
	f.HP = max(0, min(hp, f.MaxHP))
}

// TakeDamage subtracts amount and reports whether the fighter dropped to 0.
func (f *Fighter) TakeDamage(amount int) bool {
	f.SetHP(f.HP - amount)
	return f.HP == 0
}
