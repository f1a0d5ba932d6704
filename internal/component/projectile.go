package component

import "time"

// Projectile moves an entity one grid cell per tick along a fixed direction.
// Ordinal steps cover √2 the distance of cardinal ones, so they take
// proportionally longer — the classic case of a component choosing a
// different delay every fire.
type Projectile struct {
	DX           int           `json:"dx"`
	DY           int           `json:"dy"`
	StepsLeft    int           `json:"steps_left"`
	StepDuration time.Duration `json:"step_duration"` // per cardinal step
}

// ProjectileEvent is one cell of travel. Done marks the final step; the apply
// side retires the projectile.
type ProjectileEvent struct {
	DX   int
	DY   int
	Done bool
}

func (p *Projectile) Tick() (ProjectileEvent, time.Duration) {
	if p.StepsLeft <= 0 {
		return ProjectileEvent{Done: true}, p.StepDuration
	}
	p.StepsLeft--
	ev := ProjectileEvent{DX: p.DX, DY: p.DY, Done: p.StepsLeft == 0}
	delay := p.StepDuration
	if p.DX != 0 && p.DY != 0 {
		delay = delay * 1415 / 1000
	}
	return ev, delay
}
