package sim

import (
	"time"

	"github.com/emberdeep/server/internal/component"
	"github.com/emberdeep/server/internal/core/ecs"
	"github.com/emberdeep/server/internal/world"
)

const (
	flickerDip       = 40 // how far below resting intensity a flicker can dip
	flickerMinPeriod = 60 * time.Millisecond
	flickerMaxPeriod = 220 * time.Millisecond
)

// SpawnTorch places a flickering light at a cell.
func SpawnTorch(ctx *Context, x, y, intensity int, seed uint64) ecs.EntityID {
	id := ctx.World.Spawn()
	ctx.World.Positions.Set(id, &world.Position{X: x, Y: y})
	ctx.World.Lights.Set(id, &world.Light{Intensity: intensity})
	min := intensity - flickerDip
	if min < 0 {
		min = 0
	}
	ctx.Components.Flicker.Insert(id, &component.Flicker{
		MinIntensity: min,
		MaxIntensity: intensity,
		MinPeriod:    flickerMinPeriod,
		MaxPeriod:    flickerMaxPeriod,
		Rand:         component.NewRand(seed),
	})
	return id
}

// SpawnBrazier is a torch that also burns through fuel and eventually goes out.
func SpawnBrazier(ctx *Context, x, y, intensity, fuel int, burn time.Duration, seed uint64, rates component.RateSource) ecs.EntityID {
	id := SpawnTorch(ctx, x, y, intensity, seed)
	ctx.Components.Smolder.Insert(id, &component.Smolder{
		Fuel:         fuel,
		MaxFuel:      fuel,
		BaseInterval: burn,
		Rates:        rates,
	})
	return id
}

// SpawnEmitter places a spark fountain at a cell.
func SpawnEmitter(ctx *Context, x, y, heat int, base time.Duration, seed uint64, rates component.RateSource) ecs.EntityID {
	id := ctx.World.Spawn()
	ctx.World.Positions.Set(id, &world.Position{X: x, Y: y})
	ctx.Components.Emitter.Insert(id, &component.Emitter{
		Heat:         heat,
		BaseInterval: base,
		Rand:         component.NewRand(seed),
		Rates:        rates,
	})
	return id
}

// SpawnProjectile launches a stepped mover from a cell.
func SpawnProjectile(ctx *Context, x, y, dx, dy, steps int, step time.Duration) ecs.EntityID {
	id := ctx.World.Spawn()
	ctx.World.Positions.Set(id, &world.Position{X: x, Y: y})
	ctx.Components.Projectile.Insert(id, &component.Projectile{
		DX:           dx,
		DY:           dy,
		StepsLeft:    steps,
		StepDuration: step,
	})
	return id
}
