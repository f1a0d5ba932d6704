package world

import (
	"github.com/emberdeep/server/internal/core/ecs"
)

// Position is an entity's grid cell.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Light is an entity's emitted light level, 0–255.
type Light struct {
	Intensity int `json:"intensity"`
}

// Particle is a short-lived visual mote. Alpha runs 0–255 and is driven down
// by fade events until the particle despawns.
type Particle struct {
	Glyph string `json:"glyph"`
	Alpha int    `json:"alpha"`
}

// Stats counts what the ambience has done so far. Purely informational.
type Stats struct {
	SparksSpawned        int64
	ProjectilesRetired   int64
	BraziersExtinguished int64
}

// State is the mutable world that realtime events are applied against.
// Accessed only from the simulation goroutine — no locks anywhere.
type State struct {
	ECS       *ecs.World
	Positions *ecs.Store[Position]
	Lights    *ecs.Store[Light]
	Particles *ecs.Store[Particle]
	Stats     Stats

	entities []ecs.EntityID // spawn order, iterated each frame
	doused   []ecs.EntityID // braziers that went out this frame
}

func NewState() *State {
	s := &State{
		ECS:       ecs.NewWorld(),
		Positions: ecs.NewStore[Position](),
		Lights:    ecs.NewStore[Light](),
		Particles: ecs.NewStore[Particle](),
	}
	s.ECS.Registry().Register(s.Positions)
	s.ECS.Registry().Register(s.Lights)
	s.ECS.Registry().Register(s.Particles)
	return s
}

// Spawn mints a new entity and tracks it in frame order.
func (s *State) Spawn() ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.entities = append(s.entities, id)
	return id
}

// SpawnParticleAt creates a particle entity at a cell with full alpha.
func (s *State) SpawnParticleAt(x, y int, glyph string) ecs.EntityID {
	id := s.Spawn()
	s.Positions.Set(id, &Position{X: x, Y: y})
	s.Particles.Set(id, &Particle{Glyph: glyph, Alpha: 255})
	return id
}

func (s *State) Alive(id ecs.EntityID) bool {
	return s.ECS.Alive(id)
}

func (s *State) EntityCount() int {
	return len(s.entities)
}

// Each visits every live entity in spawn order. Entities spawned during the
// visit are picked up on the next pass, not this one.
func (s *State) Each(fn func(ecs.EntityID)) {
	snapshot := s.entities
	for _, id := range snapshot {
		if s.ECS.Alive(id) {
			fn(id)
		}
	}
}

// Despawn queues an entity for end-of-frame destruction.
func (s *State) Despawn(id ecs.EntityID) {
	s.ECS.MarkForDestruction(id)
}

// MarkDoused records a brazier that extinguished this frame so the host can
// strip its realtime components after the frame completes.
func (s *State) MarkDoused(id ecs.EntityID) {
	s.doused = append(s.doused, id)
}

// DrainDoused returns and clears the doused list.
func (s *State) DrainDoused() []ecs.EntityID {
	out := s.doused
	s.doused = nil
	return out
}

// FlushDespawns destroys queued entities, scrubs their store data, and drops
// them from frame order. Returns the destroyed handles so callers can clear
// data held outside this State.
func (s *State) FlushDespawns() []ecs.EntityID {
	removed := make([]ecs.EntityID, 0, 8)
	s.ECS.FlushDestroyQueue()
	live := s.entities[:0]
	for _, id := range s.entities {
		if s.ECS.Alive(id) {
			live = append(live, id)
		} else {
			removed = append(removed, id)
		}
	}
	s.entities = live
	return removed
}

// Restore re-registers persisted entities in spawn order. Used only when
// loading a snapshot into a fresh State.
func (s *State) Restore(ids []ecs.EntityID) {
	s.ECS = ecs.RestoreWorld(ids)
	s.ECS.Registry().Register(s.Positions)
	s.ECS.Registry().Register(s.Lights)
	s.ECS.Registry().Register(s.Particles)
	s.entities = append(s.entities[:0], ids...)
}
