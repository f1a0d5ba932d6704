package component

import "time"

// Flicker jitters a light's intensity on a jittered period. Both the
// intensity and the next delay come from the component's own serializable
// random stream, keeping replays bit-identical.
type Flicker struct {
	MinIntensity int           `json:"min_intensity"`
	MaxIntensity int           `json:"max_intensity"`
	MinPeriod    time.Duration `json:"min_period"`
	MaxPeriod    time.Duration `json:"max_period"`
	Rand         Rand          `json:"rand"`
}

type FlickerEvent struct {
	Intensity int
}

func (f *Flicker) Tick() (FlickerEvent, time.Duration) {
	span := f.MaxIntensity - f.MinIntensity + 1
	ev := FlickerEvent{Intensity: f.MinIntensity + f.Rand.Intn(span)}
	return ev, f.Rand.DurationBetween(f.MinPeriod, f.MaxPeriod)
}
