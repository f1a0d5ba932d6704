package ecs

// Removable is implemented by every per-entity store so the Registry can
// bulk-remove an entity's data from all of them on destroy.
type Removable interface {
	Remove(id EntityID)
}

// Store is a sparse associative store from entity to *T: dense slices for
// iteration, a map index for O(1) lookup. Iteration order is insertion order
// and stays fixed while the store is not mutated; Remove swap-fills from the
// tail. Lookups on an absent entity report absence instead of failing; every
// operation is total. No reflect, no interface{} — pure generics.
type Store[T any] struct {
	index map[EntityID]int
	ids   []EntityID
	vals  []*T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		index: make(map[EntityID]int, 256),
	}
}

func (s *Store[T]) Set(id EntityID, c *T) {
	if i, ok := s.index[id]; ok {
		s.vals[i] = c
		return
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	s.vals = append(s.vals, c)
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.vals[i], true
}

func (s *Store[T]) Remove(id EntityID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	last := len(s.ids) - 1
	if i != last {
		s.ids[i] = s.ids[last]
		s.vals[i] = s.vals[last]
		s.index[s.ids[i]] = i
	}
	s.ids = s.ids[:last]
	s.vals = s.vals[:last]
	delete(s.index, id)
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store[T]) Len() int {
	return len(s.ids)
}

func (s *Store[T]) Clear() {
	s.index = make(map[EntityID]int, 256)
	s.ids = s.ids[:0]
	s.vals = s.vals[:0]
}

func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i, id := range s.ids {
		fn(id, s.vals[i])
	}
}

// Each2 iterates over entities present in both stores, visiting the smaller
// store and probing the larger.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	if sa.Len() > sb.Len() {
		for i, id := range sb.ids {
			if a, ok := sa.Get(id); ok {
				fn(id, a, sb.vals[i])
			}
		}
		return
	}
	for i, id := range sa.ids {
		if b, ok := sb.Get(id); ok {
			fn(id, sa.vals[i], b)
		}
	}
}
