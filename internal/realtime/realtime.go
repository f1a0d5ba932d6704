// Package realtime schedules per-entity components that each re-fire after a
// delay of their own choosing. A frame is advanced as a series of elementary
// steps: every step jumps the entity's clock to the nearest due instant,
// fires every component due at exactly that instant, and applies the fired
// events to a caller-owned context before the next step runs.
//
// Everything here is single-threaded and total: no operation can fail at
// run time, and absent entities simply report absence. Hosts that want to
// advance many entities concurrently must shard so that no two frames share
// a context or an entity's tables.
package realtime

import (
	"time"

	"github.com/emberdeep/server/internal/core/ecs"
)

// Component is per-entity state that emits timed events. Tick mutates the
// component and returns the event to publish together with the delay until
// the component is due again. Components are addressed through pointer types,
// so Tick has exclusive access to its own state for the duration of the call.
type Component[E any] interface {
	Tick() (E, time.Duration)
}

// Scheduled pairs a component with the time remaining until its next tick.
// UntilNextTick is never negative; a zero value means "due immediately".
type Scheduled[T any] struct {
	Component     T
	UntilNextTick time.Duration
}

// EventSet holds one elementary step's fired events, at most one per declared
// component kind. Apply dispatches them to the context in declared kind order,
// skipping kinds that did not fire, so relative order is stable across steps.
type EventSet[C any] interface {
	Apply(entity ecs.EntityID, ctx C)
}

// EntityTicker advances a single entity by one elementary step. Implementations
// are hand-authored per entity module: a struct with one Table field per
// declared kind, folding NextDue over every table and then calling Advance on
// each in declared order.
type EntityTicker[C any, E EventSet[C]] interface {
	TickEntity(entity ecs.EntityID, frameRemaining time.Duration) (E, time.Duration)
}

// ProcessEntityFrame advances one entity through an entire frame, applying
// each step's events before the next step runs. A zero frame duration
// performs no steps. An entity with no scheduled components consumes the
// whole frame in a single no-op step.
func ProcessEntityFrame[C any, E EventSet[C]](ticker EntityTicker[C, E], entity ecs.EntityID, frameDuration time.Duration, ctx C) {
	for remaining := frameDuration; remaining > 0; {
		events, elapsed := ticker.TickEntity(entity, remaining)
		events.Apply(entity, ctx)
		remaining -= elapsed
	}
}
