package ecs

// EntityID uniquely identifies an entity within one Arena.
type EntityID uint64

// NilEntity is the zero value — no valid entity has this ID.
const NilEntity EntityID = 0
