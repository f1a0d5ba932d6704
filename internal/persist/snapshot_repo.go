package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/emberdeep/server/internal/component"
	"github.com/emberdeep/server/internal/core/ecs"
	"github.com/emberdeep/server/internal/realtime"
	"github.com/emberdeep/server/internal/sim"
)

// Component kind names as stored in the realtime_components table. These are
// part of the persisted format; never renumber or reuse them.
const (
	kindProjectile = "projectile"
	kindFlicker    = "flicker"
	kindEmitter    = "emitter"
	kindFade       = "fade"
	kindSmolder    = "smolder"
)

// SnapshotRepo persists the whole simulation: one row per entity with its
// world stores as JSONB, one row per scheduled component with its remaining
// delay in nanoseconds. The encode is field-preserving, so a loaded world
// resumes exactly where the saved one stopped.
type SnapshotRepo struct {
	db *DB
}

func NewSnapshotRepo(db *DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Save writes a full snapshot in a single transaction, replacing the previous
// one.
func (r *SnapshotRepo) Save(ctx context.Context, simCtx *sim.Context) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("snapshot begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM realtime_components`); err != nil {
		return fmt.Errorf("snapshot clear components: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM entities`); err != nil {
		return fmt.Errorf("snapshot clear entities: %w", err)
	}

	w := simCtx.World
	ord := 0
	var entErr error
	w.Each(func(id ecs.EntityID) {
		if entErr != nil {
			return
		}
		pos, err := marshalStore(w.Positions, id)
		if err == nil {
			var light, particle []byte
			if light, err = marshalStore(w.Lights, id); err == nil {
				particle, err = marshalStore(w.Particles, id)
			}
			if err == nil {
				_, err = tx.Exec(ctx,
					`INSERT INTO entities (id, ord, position, light, particle) VALUES ($1, $2, $3, $4, $5)`,
					int64(id), ord, pos, light, particle,
				)
			}
		}
		if err != nil {
			entErr = fmt.Errorf("snapshot entity %d: %w", id, err)
		}
		ord++
	})
	if entErr != nil {
		return entErr
	}

	rows, err := collectComponentRows(simCtx.Components)
	if err != nil {
		return err
	}
	for _, row := range rows {
		_, err := tx.Exec(ctx,
			`INSERT INTO realtime_components (entity_id, kind, component, until_next_tick_ns)
			 VALUES ($1, $2, $3, $4)`,
			int64(row.entity), row.kind, row.data, row.delayNs,
		)
		if err != nil {
			return fmt.Errorf("snapshot component %s/%d: %w", row.kind, row.entity, err)
		}
	}

	return tx.Commit(ctx)
}

// Load rebuilds the simulation from the stored snapshot. The second return
// is false when no snapshot exists. rates is re-injected into the components
// that use scripted delays, since it is never serialized.
func (r *SnapshotRepo) Load(ctx context.Context, rates component.RateSource) (*sim.Context, bool, error) {
	simCtx := sim.NewContext()

	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, position, light, particle FROM entities ORDER BY ord`)
	if err != nil {
		return nil, false, fmt.Errorf("load entities: %w", err)
	}
	defer rows.Close()

	var ids []ecs.EntityID
	type worldRow struct {
		id                   ecs.EntityID
		pos, light, particle []byte
	}
	var stored []worldRow
	for rows.Next() {
		var raw int64
		var wr worldRow
		if err := rows.Scan(&raw, &wr.pos, &wr.light, &wr.particle); err != nil {
			return nil, false, fmt.Errorf("scan entity: %w", err)
		}
		wr.id = ecs.EntityID(raw)
		ids = append(ids, wr.id)
		stored = append(stored, wr)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("load entities: %w", err)
	}
	if len(ids) == 0 {
		return nil, false, nil
	}

	simCtx.World.Restore(ids)
	for _, wr := range stored {
		if err := unmarshalInto(wr.pos, simCtx.World.Positions, wr.id); err != nil {
			return nil, false, err
		}
		if err := unmarshalInto(wr.light, simCtx.World.Lights, wr.id); err != nil {
			return nil, false, err
		}
		if err := unmarshalInto(wr.particle, simCtx.World.Particles, wr.id); err != nil {
			return nil, false, err
		}
	}

	if err := r.loadComponents(ctx, simCtx, rates); err != nil {
		return nil, false, err
	}
	return simCtx, true, nil
}

func (r *SnapshotRepo) loadComponents(ctx context.Context, simCtx *sim.Context, rates component.RateSource) error {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT entity_id, kind, component, until_next_tick_ns FROM realtime_components`)
	if err != nil {
		return fmt.Errorf("load components: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw int64
		var kind string
		var data []byte
		var delayNs int64
		if err := rows.Scan(&raw, &kind, &data, &delayNs); err != nil {
			return fmt.Errorf("scan component: %w", err)
		}
		id := ecs.EntityID(raw)
		delay := time.Duration(delayNs)

		switch kind {
		case kindProjectile:
			var c component.Projectile
			if err := json.Unmarshal(data, &c); err != nil {
				return fmt.Errorf("decode %s/%d: %w", kind, id, err)
			}
			simCtx.Components.Projectile.InsertScheduled(id,
				realtime.Scheduled[*component.Projectile]{Component: &c, UntilNextTick: delay})
		case kindFlicker:
			var c component.Flicker
			if err := json.Unmarshal(data, &c); err != nil {
				return fmt.Errorf("decode %s/%d: %w", kind, id, err)
			}
			simCtx.Components.Flicker.InsertScheduled(id,
				realtime.Scheduled[*component.Flicker]{Component: &c, UntilNextTick: delay})
		case kindEmitter:
			var c component.Emitter
			if err := json.Unmarshal(data, &c); err != nil {
				return fmt.Errorf("decode %s/%d: %w", kind, id, err)
			}
			c.Rates = rates
			simCtx.Components.Emitter.InsertScheduled(id,
				realtime.Scheduled[*component.Emitter]{Component: &c, UntilNextTick: delay})
		case kindFade:
			var c component.Fade
			if err := json.Unmarshal(data, &c); err != nil {
				return fmt.Errorf("decode %s/%d: %w", kind, id, err)
			}
			simCtx.Components.Fade.InsertScheduled(id,
				realtime.Scheduled[*component.Fade]{Component: &c, UntilNextTick: delay})
		case kindSmolder:
			var c component.Smolder
			if err := json.Unmarshal(data, &c); err != nil {
				return fmt.Errorf("decode %s/%d: %w", kind, id, err)
			}
			c.Rates = rates
			simCtx.Components.Smolder.InsertScheduled(id,
				realtime.Scheduled[*component.Smolder]{Component: &c, UntilNextTick: delay})
		default:
			return fmt.Errorf("unknown component kind %q for entity %d", kind, id)
		}
	}
	return rows.Err()
}

type componentRow struct {
	entity  ecs.EntityID
	kind    string
	data    []byte
	delayNs int64
}

func collectComponentRows(c *sim.Components) ([]componentRow, error) {
	var out []componentRow
	var firstErr error

	appendRows := func(kind string, id ecs.EntityID, comp any, delay time.Duration) {
		if firstErr != nil {
			return
		}
		data, err := json.Marshal(comp)
		if err != nil {
			firstErr = fmt.Errorf("encode %s/%d: %w", kind, id, err)
			return
		}
		out = append(out, componentRow{entity: id, kind: kind, data: data, delayNs: int64(delay)})
	}

	c.Projectile.EachScheduled(func(id ecs.EntityID, rec *realtime.Scheduled[*component.Projectile]) {
		appendRows(kindProjectile, id, rec.Component, rec.UntilNextTick)
	})
	c.Flicker.EachScheduled(func(id ecs.EntityID, rec *realtime.Scheduled[*component.Flicker]) {
		appendRows(kindFlicker, id, rec.Component, rec.UntilNextTick)
	})
	c.Emitter.EachScheduled(func(id ecs.EntityID, rec *realtime.Scheduled[*component.Emitter]) {
		appendRows(kindEmitter, id, rec.Component, rec.UntilNextTick)
	})
	c.Fade.EachScheduled(func(id ecs.EntityID, rec *realtime.Scheduled[*component.Fade]) {
		appendRows(kindFade, id, rec.Component, rec.UntilNextTick)
	})
	c.Smolder.EachScheduled(func(id ecs.EntityID, rec *realtime.Scheduled[*component.Smolder]) {
		appendRows(kindSmolder, id, rec.Component, rec.UntilNextTick)
	})

	return out, firstErr
}

// marshalStore encodes an entity's entry in a world store, or nil when absent.
func marshalStore[T any](s *ecs.Store[T], id ecs.EntityID) ([]byte, error) {
	v, ok := s.Get(id)
	if !ok {
		return nil, nil
	}
	return json.Marshal(v)
}

func unmarshalInto[T any](data []byte, store *ecs.Store[T], id ecs.EntityID) error {
	if len(data) == 0 {
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode store row for %d: %w", id, err)
	}
	store.Set(id, &v)
	return nil
}
