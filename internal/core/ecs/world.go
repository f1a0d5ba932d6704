package ecs

// World owns the entity pool, the store registry, and a deferred destruction
// queue that the host flushes at a point of its choosing (end of tick).
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

// RestoreWorld rebuilds a world whose live entities are exactly ids, with an
// empty registry for the host to repopulate.
func RestoreWorld(ids []EntityID) *World {
	w := NewWorld()
	w.pool = RestorePool(ids)
	return w
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// MarkForDestruction queues an entity for deferred cleanup. Destroying
// mid-iteration would mutate stores under their iterators; queueing keeps
// every store stable until the flush.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities and clears their data from
// every registered store.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.destroyQueue {
		w.registry.RemoveAll(id)
		w.pool.Destroy(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
}
