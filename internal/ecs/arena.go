package ecs

// Arena owns values keyed by a stable EntityID and iterates them in
// insertion order. IDs are never reused within one Arena.
type Arena[T any] struct {
	nextID EntityID
	index  map[EntityID]int
	ids    []EntityID
	items  []T
}

// NewArena creates an empty Arena.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{
		nextID: 1,
		index:  make(map[EntityID]int),
	}
}

// Insert stores v under a freshly minted ID and returns that ID.
func (a *Arena[T]) Insert(v T) EntityID {
	id := a.nextID
	a.nextID++
	a.index[id] = len(a.items)
	a.ids = append(a.ids, id)
	a.items = append(a.items, v)
	return id
}

// Remove deletes the value stored under id. Insertion order of the
// remaining values is preserved. Reports whether anything was removed.
func (a *Arena[T]) Remove(id EntityID) bool {
	i, ok := a.index[id]
	if !ok {
		return false
	}
	delete(a.index, id)
	copy(a.ids[i:], a.ids[i+1:])
	copy(a.items[i:], a.items[i+1:])
	var zero T
	a.items[len(a.items)-1] = zero
	a.ids = a.ids[:len(a.ids)-1]
	a.items = a.items[:len(a.items)-1]
	for j := i; j < len(a.ids); j++ {
		a.index[a.ids[j]] = j
	}
	return true
}

// Get returns the value stored under id.
func (a *Arena[T]) Get(id EntityID) (T, bool) {
	i, ok := a.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return a.items[i], true
}

// Has reports whether id is stored.
func (a *Arena[T]) Has(id EntityID) bool {
	_, ok := a.index[id]
	return ok
}

// Len returns the number of stored values.
func (a *Arena[T]) Len() int { return len(a.items) }

// Each calls fn for every value in insertion order until fn returns false.
// fn must not insert into or remove from the Arena.
func (a *Arena[T]) Each(fn func(id EntityID, v T) bool) {
	for i, id := range a.ids {
		if !fn(id, a.items[i]) {
			return
		}
	}
}

// Values returns a snapshot of the stored values in insertion order.
func (a *Arena[T]) Values() []T {
	out := make([]T, len(a.items))
	copy(out, a.items)
	return out
}
