package component

import "time"

// Fade counts a particle down to nothing on a fixed period. The apply side
// despawns the entity once Done is seen.
type Fade struct {
	Remaining int           `json:"remaining"`
	Total     int           `json:"total"`
	Period    time.Duration `json:"period"`
}

type FadeEvent struct {
	Remaining int
	Total     int
	Done      bool
}

func (f *Fade) Tick() (FadeEvent, time.Duration) {
	if f.Remaining > 0 {
		f.Remaining--
	}
	return FadeEvent{Remaining: f.Remaining, Total: f.Total, Done: f.Remaining == 0}, f.Period
}
