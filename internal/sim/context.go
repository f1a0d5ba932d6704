package sim

import (
	"github.com/emberdeep/server/internal/world"
)

// Context is what events mutate: the world plus the module's own tables, so
// an apply can both change world state and schedule new components (a spark
// burst inserts fades for the particles it spawns). Applies run strictly
// sequentially, so the context has one writer at any instant.
type Context struct {
	World      *world.State
	Components *Components
}

func NewContext() *Context {
	return &Context{
		World:      world.NewState(),
		Components: NewComponents(),
	}
}
