package sim

import (
	"github.com/emberdeep/server/internal/component"
	"github.com/emberdeep/server/internal/core/ecs"
)

// EntityData is one entity's components without their schedules: one optional
// slot per declared kind. It exists to move a whole entity between containers
// as a unit.
type EntityData struct {
	Projectile *component.Projectile
	Flicker    *component.Flicker
	Emitter    *component.Emitter
	Fade       *component.Fade
	Smolder    *component.Smolder
}

// CloneEntityData copies each of the entity's components into an EntityData,
// leaving the tables untouched.
func (c *Components) CloneEntityData(entity ecs.EntityID) EntityData {
	var d EntityData
	if p, ok := c.Projectile.Get(entity); ok {
		cp := *p
		d.Projectile = &cp
	}
	if f, ok := c.Flicker.Get(entity); ok {
		cp := *f
		d.Flicker = &cp
	}
	if e, ok := c.Emitter.Get(entity); ok {
		cp := *e
		d.Emitter = &cp
	}
	if f, ok := c.Fade.Get(entity); ok {
		cp := *f
		d.Fade = &cp
	}
	if s, ok := c.Smolder.Get(entity); ok {
		cp := *s
		d.Smolder = &cp
	}
	return d
}

// RemoveEntityData removes each of the entity's components into an EntityData.
func (c *Components) RemoveEntityData(entity ecs.EntityID) EntityData {
	var d EntityData
	if p, ok := c.Projectile.Remove(entity); ok {
		d.Projectile = p
	}
	if f, ok := c.Flicker.Remove(entity); ok {
		d.Flicker = f
	}
	if e, ok := c.Emitter.Remove(entity); ok {
		d.Emitter = e
	}
	if f, ok := c.Fade.Remove(entity); ok {
		d.Fade = f
	}
	if s, ok := c.Smolder.Remove(entity); ok {
		d.Smolder = s
	}
	return d
}

// InsertEntityData inserts every present slot for the entity, due immediately.
func (c *Components) InsertEntityData(entity ecs.EntityID, d EntityData) {
	if d.Projectile != nil {
		c.Projectile.Insert(entity, d.Projectile)
	}
	if d.Flicker != nil {
		c.Flicker.Insert(entity, d.Flicker)
	}
	if d.Emitter != nil {
		c.Emitter.Insert(entity, d.Emitter)
	}
	if d.Fade != nil {
		c.Fade.Insert(entity, d.Fade)
	}
	if d.Smolder != nil {
		c.Smolder.Insert(entity, d.Smolder)
	}
}

// UpdateEntityData makes the entity's components match d exactly, removing
// kinds whose slot is absent.
func (c *Components) UpdateEntityData(entity ecs.EntityID, d EntityData) {
	if d.Projectile != nil {
		c.Projectile.Insert(entity, d.Projectile)
	} else {
		c.Projectile.Remove(entity)
	}
	if d.Flicker != nil {
		c.Flicker.Insert(entity, d.Flicker)
	} else {
		c.Flicker.Remove(entity)
	}
	if d.Emitter != nil {
		c.Emitter.Insert(entity, d.Emitter)
	} else {
		c.Emitter.Remove(entity)
	}
	if d.Fade != nil {
		c.Fade.Insert(entity, d.Fade)
	} else {
		c.Fade.Remove(entity)
	}
	if d.Smolder != nil {
		c.Smolder.Insert(entity, d.Smolder)
	} else {
		c.Smolder.Remove(entity)
	}
}
