package realtime

import (
	"time"

	"github.com/emberdeep/server/internal/core/ecs"
)

// Table associates entities with scheduled components of one kind. It is a
// thin schedule-aware layer over the generic sparse store: at most one record
// per entity, all operations total and O(1) amortized.
type Table[T Component[E], E any] struct {
	store *ecs.Store[Scheduled[T]]
}

func NewTable[T Component[E], E any]() *Table[T, E] {
	return &Table[T, E]{store: ecs.NewStore[Scheduled[T]]()}
}

// Insert adds a component due immediately, returning the component it
// replaced, if any.
func (t *Table[T, E]) Insert(entity ecs.EntityID, c T) (T, bool) {
	prev, ok := t.InsertScheduled(entity, Scheduled[T]{Component: c})
	return prev.Component, ok
}

// InsertScheduled adds a component with an explicit remaining delay,
// returning the record it replaced, if any.
func (t *Table[T, E]) InsertScheduled(entity ecs.EntityID, rec Scheduled[T]) (Scheduled[T], bool) {
	var prev Scheduled[T]
	old, ok := t.store.Get(entity)
	if ok {
		prev = *old
	}
	t.store.Set(entity, &rec)
	return prev, ok
}

// Remove deletes the entity's component, returning it if one was present.
func (t *Table[T, E]) Remove(entity ecs.EntityID) (T, bool) {
	rec, ok := t.RemoveScheduled(entity)
	return rec.Component, ok
}

// RemoveScheduled deletes the entity's record, returning it if present.
func (t *Table[T, E]) RemoveScheduled(entity ecs.EntityID) (Scheduled[T], bool) {
	old, ok := t.store.Get(entity)
	if !ok {
		var zero Scheduled[T]
		return zero, false
	}
	t.store.Remove(entity)
	return *old, true
}

// Get returns the entity's component without its schedule.
func (t *Table[T, E]) Get(entity ecs.EntityID) (T, bool) {
	rec, ok := t.store.Get(entity)
	if !ok {
		var zero T
		return zero, false
	}
	return rec.Component, true
}

// GetScheduled returns the entity's full record. The pointer stays valid
// until the record is removed; mutating UntilNextTick through it reschedules
// the component directly.
func (t *Table[T, E]) GetScheduled(entity ecs.EntityID) (*Scheduled[T], bool) {
	return t.store.Get(entity)
}

func (t *Table[T, E]) Contains(entity ecs.EntityID) bool {
	return t.store.Has(entity)
}

func (t *Table[T, E]) Len() int {
	return t.store.Len()
}

func (t *Table[T, E]) IsEmpty() bool {
	return t.store.Len() == 0
}

// Clear drops every record.
func (t *Table[T, E]) Clear() {
	t.store.Clear()
}

// Each visits every entity/component pair. Order is unspecified but stable
// while the table is not mutated.
func (t *Table[T, E]) Each(fn func(ecs.EntityID, T)) {
	t.store.Each(func(id ecs.EntityID, rec *Scheduled[T]) {
		fn(id, rec.Component)
	})
}

// EachScheduled visits every entity/record pair.
func (t *Table[T, E]) EachScheduled(fn func(ecs.EntityID, *Scheduled[T])) {
	t.store.Each(fn)
}

// Entities returns the entities currently holding a record, in iteration order.
func (t *Table[T, E]) Entities() []ecs.EntityID {
	out := make([]ecs.EntityID, 0, t.store.Len())
	t.store.Each(func(id ecs.EntityID, _ *Scheduled[T]) {
		out = append(out, id)
	})
	return out
}

// NextDue folds this table's stored delay for the entity into acc: the result
// is min(acc, stored delay), or acc unchanged when the entity is absent.
// Aggregates call this across every declared kind to find the elementary step
// length before advancing any of them.
func (t *Table[T, E]) NextDue(entity ecs.EntityID, acc time.Duration) time.Duration {
	if rec, ok := t.store.Get(entity); ok && rec.UntilNextTick < acc {
		return rec.UntilNextTick
	}
	return acc
}

// Advance moves the entity's record forward by elapsed. A record whose stored
// delay equals elapsed exactly fires: its component ticks, chooses its next
// delay, and the event is returned. Any other record just has elapsed
// subtracted, which never underflows because elapsed is bounded by every
// present delay. Returns nil when the entity is absent or the kind did not
// fire, so the result drops straight into an event-set slot.
func (t *Table[T, E]) Advance(entity ecs.EntityID, elapsed time.Duration) *E {
	rec, ok := t.store.Get(entity)
	if !ok {
		return nil
	}
	if rec.UntilNextTick == elapsed {
		event, next := rec.Component.Tick()
		rec.UntilNextTick = next
		return &event
	}
	rec.UntilNextTick -= elapsed
	return nil
}
