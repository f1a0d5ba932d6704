package component

import "time"

// Rand is a splitmix64 generator whose entire state is one exported field, so
// a serialized component restores its jitter stream exactly where it left off.
type Rand struct {
	State uint64 `json:"state"`
}

func NewRand(seed uint64) Rand {
	return Rand{State: seed}
}

func (r *Rand) next() uint64 {
	r.State += 0x9e3779b97f4a7c15
	z := r.State
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Intn returns a value in [0, n). n <= 0 yields 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.next() % uint64(n))
}

// DurationBetween returns a duration in [min, max].
func (r *Rand) DurationBetween(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(r.next()%uint64(max-min+1))
}
