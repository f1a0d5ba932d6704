package sim

import (
	"time"

	"github.com/emberdeep/server/internal/component"
	"github.com/emberdeep/server/internal/core/ecs"
)

const (
	sparkGlyph      = "*"
	sparkFadeSteps  = 6
	sparkFadePeriod = 80 * time.Millisecond
)

// EntityEvents is one elementary step's bundle: at most one event per
// declared kind. It is valid for a single step and consumed exactly once.
type EntityEvents struct {
	Projectile *component.ProjectileEvent
	Flicker    *component.FlickerEvent
	Emitter    *component.EmitterEvent
	Fade       *component.FadeEvent
	Smolder    *component.SmolderEvent
}

// Apply dispatches fired events in declared kind order. The order never
// depends on which kinds fired, so overlapping context writes resolve the
// same way on every step.
func (ev EntityEvents) Apply(entity ecs.EntityID, ctx *Context) {
	if ev.Projectile != nil {
		applyProjectileEvent(*ev.Projectile, entity, ctx)
	}
	if ev.Flicker != nil {
		applyFlickerEvent(*ev.Flicker, entity, ctx)
	}
	if ev.Emitter != nil {
		applyEmitterEvent(*ev.Emitter, entity, ctx)
	}
	if ev.Fade != nil {
		applyFadeEvent(*ev.Fade, entity, ctx)
	}
	if ev.Smolder != nil {
		applySmolderEvent(*ev.Smolder, entity, ctx)
	}
}

func applyProjectileEvent(ev component.ProjectileEvent, entity ecs.EntityID, ctx *Context) {
	w := ctx.World
	if pos, ok := w.Positions.Get(entity); ok {
		pos.X += ev.DX
		pos.Y += ev.DY
	}
	if ev.Done {
		w.Stats.ProjectilesRetired++
		w.Despawn(entity)
	}
}

func applyFlickerEvent(ev component.FlickerEvent, entity ecs.EntityID, ctx *Context) {
	if light, ok := ctx.World.Lights.Get(entity); ok {
		light.Intensity = ev.Intensity
	}
}

func applyEmitterEvent(ev component.EmitterEvent, entity ecs.EntityID, ctx *Context) {
	w := ctx.World
	pos, ok := w.Positions.Get(entity)
	if !ok {
		return
	}
	for i := 0; i < ev.Sparks; i++ {
		spark := w.SpawnParticleAt(pos.X, pos.Y, sparkGlyph)
		ctx.Components.Fade.Insert(spark, &component.Fade{
			Remaining: sparkFadeSteps,
			Total:     sparkFadeSteps,
			Period:    sparkFadePeriod,
		})
	}
	w.Stats.SparksSpawned += int64(ev.Sparks)
}

func applyFadeEvent(ev component.FadeEvent, entity ecs.EntityID, ctx *Context) {
	w := ctx.World
	if p, ok := w.Particles.Get(entity); ok && ev.Total > 0 {
		p.Alpha = 255 * ev.Remaining / ev.Total
	}
	if ev.Done {
		w.Despawn(entity)
	}
}

func applySmolderEvent(ev component.SmolderEvent, entity ecs.EntityID, ctx *Context) {
	w := ctx.World
	if ev.Extinguished {
		if light, ok := w.Lights.Get(entity); ok {
			light.Intensity = 0
		}
		w.Stats.BraziersExtinguished++
		w.MarkDoused(entity)
	}
}
