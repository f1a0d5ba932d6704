package component

import "time"

// Smolder burns a brazier's fuel down one unit per tick. The interval
// stretches as fuel drains (script-overridable), so a dying fire gutters
// rather than snuffing out on a metronome.
type Smolder struct {
	Fuel         int           `json:"fuel"`
	MaxFuel      int           `json:"max_fuel"`
	BaseInterval time.Duration `json:"base_interval"`
	Rates        RateSource    `json:"-"`
}

type SmolderEvent struct {
	Fuel         int
	Extinguished bool
}

func (s *Smolder) Tick() (SmolderEvent, time.Duration) {
	if s.Fuel > 0 {
		s.Fuel--
	}
	ev := SmolderEvent{Fuel: s.Fuel, Extinguished: s.Fuel == 0}
	interval := defaultSmolderInterval(s.BaseInterval, s.Fuel, s.MaxFuel)
	if s.Rates != nil {
		interval = s.Rates.SmolderInterval(s.Fuel, s.MaxFuel, s.BaseInterval)
	}
	return ev, interval
}
