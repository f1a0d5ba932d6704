package component

import "time"

// Emitter periodically throws off a burst of spark particles. Its re-fire
// interval adapts to remaining heat, by script when a RateSource is injected.
type Emitter struct {
	Heat         int           `json:"heat"` // cools by one per burst, floors at zero
	BaseInterval time.Duration `json:"base_interval"`
	Rand         Rand          `json:"rand"`
	Rates        RateSource    `json:"-"`
}

type EmitterEvent struct {
	Sparks int
}

func (e *Emitter) Tick() (EmitterEvent, time.Duration) {
	burst := 1 + e.Rand.Intn(1+e.Heat/8)
	if e.Heat > 0 {
		e.Heat--
	}
	interval := defaultEmitterInterval(e.BaseInterval, e.Heat)
	if e.Rates != nil {
		interval = e.Rates.EmitterInterval(e.Heat, e.BaseInterval)
	}
	return EmitterEvent{Sparks: burst}, interval
}
