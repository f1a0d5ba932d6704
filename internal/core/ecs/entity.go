package ecs

// EntityID packs a 32-bit slot index in the low bits and a 32-bit generation
// in the high bits. The generation bumps when a slot is recycled, so a stale
// handle to a destroyed entity can never alias its successor.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// EntityPool allocates entity handles from a generational free list. It is the
// only place handles are minted; everything downstream treats EntityID as an
// inert, comparable map key.
type EntityPool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 0, 1024),
		freeList:    make([]uint32, 0, 256),
	}
}

func (p *EntityPool) Create() EntityID {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 0)
	}
	return NewEntityID(idx, p.generations[idx])
}

// RestorePool rebuilds a pool whose live handles are exactly ids. Unnamed
// slots below the high-water mark go back on the free list; no stale handles
// can exist after a restore because every live handle was persisted.
func RestorePool(ids []EntityID) *EntityPool {
	p := NewEntityPool()
	for _, id := range ids {
		if idx := id.Index(); idx >= p.nextIndex {
			p.nextIndex = idx + 1
		}
	}
	p.generations = make([]uint32, p.nextIndex)
	live := make(map[uint32]bool, len(ids))
	for _, id := range ids {
		p.generations[id.Index()] = id.Generation()
		live[id.Index()] = true
	}
	for idx := uint32(0); idx < p.nextIndex; idx++ {
		if !live[idx] {
			p.freeList = append(p.freeList, idx)
		}
	}
	return p
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

func (p *EntityPool) Destroy(id EntityID) {
	idx := id.Index()
	if idx >= p.nextIndex {
		return
	}
	if p.generations[idx] != id.Generation() {
		return // stale handle, already destroyed
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}
