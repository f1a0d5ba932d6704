package sim

import (
	"context"
	"time"

	"github.com/emberdeep/server/internal/core/ecs"
	"go.uber.org/zap"
)

// Snapshotter persists the full simulation state. Implemented by the persist
// package; nil disables autosave.
type Snapshotter interface {
	Save(ctx context.Context, simCtx *Context) error
}

// Runner drives the fixed-tick loop: every tick advances each live entity by
// one frame, strips components from entities the frame retired, and
// periodically snapshots.
type Runner struct {
	ctx           *Context
	frame         time.Duration
	log           *zap.Logger
	snaps         Snapshotter
	autosaveTicks int
	tickCount     int
}

func NewRunner(ctx *Context, frame time.Duration, log *zap.Logger, snaps Snapshotter, autosaveTicks int) *Runner {
	return &Runner{
		ctx:           ctx,
		frame:         frame,
		log:           log,
		snaps:         snaps,
		autosaveTicks: autosaveTicks,
	}
}

// Run ticks until ctx is cancelled, then takes a final snapshot.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.frame)
	defer ticker.Stop()

	r.log.Info("simulation started",
		zap.Duration("frame", r.frame),
		zap.Int("entities", r.ctx.World.EntityCount()))

	for {
		select {
		case <-ctx.Done():
			r.saveNow("shutdown save")
			r.log.Info("simulation stopped", zap.Int("ticks", r.tickCount))
			return nil
		case <-ticker.C:
			r.Step()
		}
	}
}

// Step advances the whole world by one frame of simulated time.
func (r *Runner) Step() {
	r.tickCount++
	w := r.ctx.World

	w.Each(func(id ecs.EntityID) {
		r.ctx.Components.ProcessEntityFrame(id, r.frame, r.ctx)
	})

	// A doused brazier keeps its light entry (dark) but stops ticking.
	for _, id := range w.DrainDoused() {
		r.ctx.Components.Smolder.Remove(id)
		r.ctx.Components.Flicker.Remove(id)
		r.ctx.Components.Emitter.Remove(id)
	}

	for _, id := range w.FlushDespawns() {
		r.ctx.Components.RemoveEntity(id)
	}

	if r.snaps != nil && r.autosaveTicks > 0 && r.tickCount%r.autosaveTicks == 0 {
		r.saveNow("autosave")
	}
}

func (r *Runner) saveNow(reason string) {
	if r.snaps == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.snaps.Save(saveCtx, r.ctx); err != nil {
		r.log.Error("snapshot failed", zap.String("reason", reason), zap.Error(err))
		return
	}
	r.log.Debug("snapshot written", zap.String("reason", reason),
		zap.Int("entities", r.ctx.World.EntityCount()))
}

// TickCount reports how many frames have run.
func (r *Runner) TickCount() int { return r.tickCount }
