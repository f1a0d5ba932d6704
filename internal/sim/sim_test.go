package sim

import (
	"testing"
	"time"

	"github.com/emberdeep/server/internal/component"
	"github.com/emberdeep/server/internal/core/ecs"
	"github.com/emberdeep/server/internal/realtime"
	"github.com/emberdeep/server/internal/world"
	"go.uber.org/zap"
)

func TestTorchFlickerDrivesLight(t *testing.T) {
	ctx := NewContext()
	id := SpawnTorch(ctx, 3, 4, 200, 5)

	if pos, ok := ctx.World.Positions.Get(id); !ok || pos.X != 3 || pos.Y != 4 {
		t.Fatalf("position = %v, %v", pos, ok)
	}

	// The flicker is due immediately and fires once; its next period is at
	// least 60ms, so a 10ms frame holds exactly one fire.
	ctx.Components.ProcessEntityFrame(id, 10*time.Millisecond, ctx)

	light, ok := ctx.World.Lights.Get(id)
	if !ok {
		t.Fatal("torch has no light")
	}
	if light.Intensity < 160 || light.Intensity > 200 {
		t.Fatalf("intensity = %d, want within the flicker band", light.Intensity)
	}
}

func TestProjectileRetiresAfterLastStep(t *testing.T) {
	ctx := NewContext()
	id := SpawnProjectile(ctx, 0, 0, 1, 0, 3, 100*time.Millisecond)
	r := NewRunner(ctx, 250*time.Millisecond, zap.NewNop(), nil, 0)

	// Steps land at 0ms, 100ms and 200ms; the third is the last one.
	r.Step()

	if ctx.World.Alive(id) {
		t.Fatal("projectile entity alive after retiring")
	}
	if ctx.Components.Projectile.Contains(id) {
		t.Fatal("projectile component survived despawn")
	}
	if ctx.World.Positions.Has(id) {
		t.Fatal("position data survived despawn")
	}
	if got := ctx.World.Stats.ProjectilesRetired; got != 1 {
		t.Fatalf("ProjectilesRetired = %d, want 1", got)
	}
}

func TestEmitterBurstSpawnsFadingSparks(t *testing.T) {
	ctx := NewContext()
	SpawnEmitter(ctx, 5, 5, 0, 400*time.Millisecond, 9, nil)
	r := NewRunner(ctx, 100*time.Millisecond, zap.NewNop(), nil, 0)

	// At heat 0 a burst is exactly one spark; the emitter re-fires after the
	// full base interval, so the first frame holds one burst.
	r.Step()

	if got := ctx.World.Stats.SparksSpawned; got != 1 {
		t.Fatalf("SparksSpawned = %d, want 1", got)
	}
	if ctx.World.EntityCount() != 2 {
		t.Fatalf("EntityCount = %d, want emitter plus spark", ctx.World.EntityCount())
	}
	if ctx.Components.Fade.Len() != 1 {
		t.Fatalf("Fade table length = %d, want 1", ctx.Components.Fade.Len())
	}

	// The spark was spawned mid-frame, so its fade starts on the next frame:
	// it fires at 0ms and 80ms of that frame, leaving 4 of 6 steps.
	r.Step()
	var sparks []*world.Particle
	ctx.World.Particles.Each(func(_ ecs.EntityID, p *world.Particle) {
		sparks = append(sparks, p)
	})
	if len(sparks) != 1 {
		t.Fatalf("particles = %d, want 1", len(sparks))
	}
	if sparks[0].Alpha != 255*4/6 {
		t.Fatalf("alpha = %d, want %d", sparks[0].Alpha, 255*4/6)
	}
}

func TestBrazierBurnsOutAndStopsTicking(t *testing.T) {
	ctx := NewContext()
	id := SpawnBrazier(ctx, 1, 1, 220, 2, 50*time.Millisecond, 3, nil)
	r := NewRunner(ctx, 100*time.Millisecond, zap.NewNop(), nil, 0)

	// The smolder fires at 0ms (fuel 2 -> 1) and, with the interval
	// stretched to 75ms at half fuel, again at 75ms (fuel 1 -> 0).
	r.Step()

	if got := ctx.World.Stats.BraziersExtinguished; got != 1 {
		t.Fatalf("BraziersExtinguished = %d, want 1", got)
	}
	if !ctx.World.Alive(id) {
		t.Fatal("a doused brazier should stay in the world")
	}
	if ctx.Components.Smolder.Contains(id) || ctx.Components.Flicker.Contains(id) {
		t.Fatal("doused brazier still has scheduled components")
	}
	if !ctx.World.Lights.Has(id) {
		t.Fatal("doused brazier lost its light entry")
	}
}

func TestTickEntityFiresKindsDueTogether(t *testing.T) {
	ctx := NewContext()
	id := ctx.World.Spawn()
	ctx.Components.Projectile.InsertScheduled(id, realtime.Scheduled[*component.Projectile]{
		Component:     &component.Projectile{DX: 1, StepsLeft: 5, StepDuration: 100 * time.Millisecond},
		UntilNextTick: 50 * time.Millisecond,
	})
	ctx.Components.Fade.InsertScheduled(id, realtime.Scheduled[*component.Fade]{
		Component:     &component.Fade{Remaining: 4, Total: 4, Period: 60 * time.Millisecond},
		UntilNextTick: 50 * time.Millisecond,
	})

	events, elapsed := ctx.Components.TickEntity(id, 200*time.Millisecond)
	if elapsed != 50*time.Millisecond {
		t.Fatalf("elapsed = %v, want the nearest due delay", elapsed)
	}
	if events.Projectile == nil || events.Fade == nil {
		t.Fatal("kinds due at the same instant must fire together")
	}
	if events.Flicker != nil || events.Emitter != nil || events.Smolder != nil {
		t.Fatal("kinds that are absent must not fire")
	}
}

func TestEntityDataRoundTrip(t *testing.T) {
	ctx := NewContext()
	id := ctx.World.Spawn()
	ctx.Components.Projectile.InsertScheduled(id, realtime.Scheduled[*component.Projectile]{
		Component:     &component.Projectile{DX: 1, StepsLeft: 8, StepDuration: time.Millisecond},
		UntilNextTick: 40 * time.Millisecond,
	})
	ctx.Components.Fade.Insert(id, &component.Fade{Remaining: 2, Total: 2, Period: 10 * time.Millisecond})

	d := ctx.Components.CloneEntityData(id)
	if d.Projectile == nil || d.Fade == nil {
		t.Fatal("clone missing present kinds")
	}
	if d.Flicker != nil || d.Emitter != nil || d.Smolder != nil {
		t.Fatal("clone invented absent kinds")
	}

	// The clone is detached from the table.
	d.Projectile.StepsLeft = 99
	if p, _ := ctx.Components.Projectile.Get(id); p.StepsLeft != 8 {
		t.Fatalf("table component mutated through clone: StepsLeft = %d", p.StepsLeft)
	}

	removed := ctx.Components.RemoveEntityData(id)
	if removed.Projectile == nil || removed.Fade == nil {
		t.Fatal("remove lost present kinds")
	}
	if ctx.Components.Projectile.Contains(id) || ctx.Components.Fade.Contains(id) {
		t.Fatal("components remain after RemoveEntityData")
	}

	other := ctx.World.Spawn()
	ctx.Components.InsertEntityData(other, removed)
	rec, ok := ctx.Components.Projectile.GetScheduled(other)
	if !ok || rec.UntilNextTick != 0 {
		t.Fatalf("reinserted component not due immediately: %v, %v", rec, ok)
	}

	// Update makes the tables match the data exactly: absent slots remove.
	ctx.Components.UpdateEntityData(other, EntityData{
		Fade: &component.Fade{Remaining: 1, Total: 1, Period: time.Millisecond},
	})
	if ctx.Components.Projectile.Contains(other) {
		t.Fatal("update kept a kind its data omitted")
	}
	if f, ok := ctx.Components.Fade.Get(other); !ok || f.Remaining != 1 {
		t.Fatalf("update did not replace the fade: %v, %v", f, ok)
	}
}

func TestRemoveEntityClearsEveryKind(t *testing.T) {
	ctx := NewContext()
	id := ctx.World.Spawn()
	ctx.Components.Flicker.Insert(id, &component.Flicker{MaxIntensity: 10, Rand: component.NewRand(1)})
	ctx.Components.Smolder.Insert(id, &component.Smolder{Fuel: 5, MaxFuel: 5, BaseInterval: time.Second})

	ctx.Components.RemoveEntity(id)
	if ctx.Components.Flicker.Contains(id) || ctx.Components.Smolder.Contains(id) {
		t.Fatal("RemoveEntity left components behind")
	}
}
