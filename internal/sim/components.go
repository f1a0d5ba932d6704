package sim

import (
	"time"

	"github.com/emberdeep/server/internal/component"
	"github.com/emberdeep/server/internal/core/ecs"
	"github.com/emberdeep/server/internal/realtime"
)

// Components is the ambience entity module: one scheduled table per declared
// component kind. The kind set is closed at compile time and dispatch from
// kind to table is a plain field access — no lookup, no reflection. Declared
// order (projectile, flicker, emitter, fade, smolder) is also event
// application order.
type Components struct {
	Projectile *realtime.Table[*component.Projectile, component.ProjectileEvent]
	Flicker    *realtime.Table[*component.Flicker, component.FlickerEvent]
	Emitter    *realtime.Table[*component.Emitter, component.EmitterEvent]
	Fade       *realtime.Table[*component.Fade, component.FadeEvent]
	Smolder    *realtime.Table[*component.Smolder, component.SmolderEvent]
}

func NewComponents() *Components {
	return &Components{
		Projectile: realtime.NewTable[*component.Projectile, component.ProjectileEvent](),
		Flicker:    realtime.NewTable[*component.Flicker, component.FlickerEvent](),
		Emitter:    realtime.NewTable[*component.Emitter, component.EmitterEvent](),
		Fade:       realtime.NewTable[*component.Fade, component.FadeEvent](),
		Smolder:    realtime.NewTable[*component.Smolder, component.SmolderEvent](),
	}
}

// TickEntity advances one elementary step: elapsed is the nearest due delay
// across every kind, capped by frameRemaining. Kinds due at exactly that
// instant fire together; the rest just age by elapsed.
func (c *Components) TickEntity(entity ecs.EntityID, frameRemaining time.Duration) (EntityEvents, time.Duration) {
	elapsed := frameRemaining
	elapsed = c.Projectile.NextDue(entity, elapsed)
	elapsed = c.Flicker.NextDue(entity, elapsed)
	elapsed = c.Emitter.NextDue(entity, elapsed)
	elapsed = c.Fade.NextDue(entity, elapsed)
	elapsed = c.Smolder.NextDue(entity, elapsed)
	return EntityEvents{
		Projectile: c.Projectile.Advance(entity, elapsed),
		Flicker:    c.Flicker.Advance(entity, elapsed),
		Emitter:    c.Emitter.Advance(entity, elapsed),
		Fade:       c.Fade.Advance(entity, elapsed),
		Smolder:    c.Smolder.Advance(entity, elapsed),
	}, elapsed
}

// ProcessEntityFrame advances the entity through a whole frame against the
// live simulation context.
func (c *Components) ProcessEntityFrame(entity ecs.EntityID, frameDuration time.Duration, ctx *Context) {
	realtime.ProcessEntityFrame[*Context, EntityEvents](c, entity, frameDuration, ctx)
}

// RemoveEntity drops the entity's record from every table.
func (c *Components) RemoveEntity(entity ecs.EntityID) {
	c.Projectile.Remove(entity)
	c.Flicker.Remove(entity)
	c.Emitter.Remove(entity)
	c.Fade.Remove(entity)
	c.Smolder.Remove(entity)
}

// Clear drops every record of every kind.
func (c *Components) Clear() {
	c.Projectile.Clear()
	c.Flicker.Clear()
	c.Emitter.Clear()
	c.Fade.Clear()
	c.Smolder.Clear()
}
