package component

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRandIsDeterministicPerSeed(t *testing.T) {
	a := NewRand(99)
	b := NewRand(99)
	for i := 0; i < 16; i++ {
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("streams diverged at draw %d: %d vs %d", i, x, y)
		}
	}

	c := NewRand(100)
	same := true
	a = NewRand(99)
	for i := 0; i < 16; i++ {
		if a.Intn(1000) != c.Intn(1000) {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical streams")
	}
}

func TestRandBounds(t *testing.T) {
	r := NewRand(1)
	if r.Intn(0) != 0 || r.Intn(-5) != 0 {
		t.Fatal("Intn with n <= 0 must yield 0")
	}
	for i := 0; i < 100; i++ {
		if v := r.Intn(7); v < 0 || v >= 7 {
			t.Fatalf("Intn(7) = %d, out of range", v)
		}
		d := r.DurationBetween(10*time.Millisecond, 20*time.Millisecond)
		if d < 10*time.Millisecond || d > 20*time.Millisecond {
			t.Fatalf("DurationBetween = %v, out of range", d)
		}
	}
	if d := r.DurationBetween(time.Second, time.Second); d != time.Second {
		t.Fatalf("degenerate range = %v, want 1s", d)
	}
}

func TestProjectileDiagonalStepsTakeLonger(t *testing.T) {
	cardinal := &Projectile{DX: 1, DY: 0, StepsLeft: 5, StepDuration: 100 * time.Millisecond}
	ev, delay := cardinal.Tick()
	if ev.DX != 1 || ev.DY != 0 || ev.Done {
		t.Fatalf("cardinal event = %+v", ev)
	}
	if delay != 100*time.Millisecond {
		t.Fatalf("cardinal delay = %v, want 100ms", delay)
	}

	diagonal := &Projectile{DX: 1, DY: -1, StepsLeft: 5, StepDuration: 100 * time.Millisecond}
	_, delay = diagonal.Tick()
	if delay != 141500*time.Microsecond {
		t.Fatalf("diagonal delay = %v, want 141.5ms", delay)
	}
}

func TestProjectileFinalStepIsDone(t *testing.T) {
	p := &Projectile{DX: 0, DY: 1, StepsLeft: 2, StepDuration: time.Millisecond}
	if ev, _ := p.Tick(); ev.Done {
		t.Fatal("done with a step still left")
	}
	ev, _ := p.Tick()
	if !ev.Done || ev.DY != 1 {
		t.Fatalf("final event = %+v, want a Done move", ev)
	}
	// An exhausted projectile only reports Done; it no longer moves.
	ev, _ = p.Tick()
	if !ev.Done || ev.DX != 0 || ev.DY != 0 {
		t.Fatalf("exhausted event = %+v", ev)
	}
}

func TestFlickerStaysInConfiguredRange(t *testing.T) {
	f := &Flicker{
		MinIntensity: 100,
		MaxIntensity: 140,
		MinPeriod:    50 * time.Millisecond,
		MaxPeriod:    90 * time.Millisecond,
		Rand:         NewRand(7),
	}
	for i := 0; i < 50; i++ {
		ev, delay := f.Tick()
		if ev.Intensity < 100 || ev.Intensity > 140 {
			t.Fatalf("intensity = %d, out of range", ev.Intensity)
		}
		if delay < 50*time.Millisecond || delay > 90*time.Millisecond {
			t.Fatalf("delay = %v, out of range", delay)
		}
	}
}

func TestFadeCountsDownToDone(t *testing.T) {
	f := &Fade{Remaining: 3, Total: 3, Period: 10 * time.Millisecond}
	for want := 2; want >= 1; want-- {
		ev, delay := f.Tick()
		if ev.Remaining != want || ev.Done {
			t.Fatalf("event = %+v, want remaining %d", ev, want)
		}
		if delay != 10*time.Millisecond {
			t.Fatalf("delay = %v, want the fixed period", delay)
		}
	}
	ev, _ := f.Tick()
	if !ev.Done || ev.Remaining != 0 {
		t.Fatalf("final event = %+v, want Done at 0", ev)
	}
}

func TestEmitterCoolsAndUsesDefaultRate(t *testing.T) {
	e := &Emitter{Heat: 16, BaseInterval: 400 * time.Millisecond, Rand: NewRand(1)}
	ev, delay := e.Tick()
	if ev.Sparks < 1 || ev.Sparks > 3 {
		t.Fatalf("sparks = %d, want 1..3 at heat 16", ev.Sparks)
	}
	if e.Heat != 15 {
		t.Fatalf("heat = %d, want 15 after one burst", e.Heat)
	}
	// heat 15 → divisor capped at 4.
	if delay != 100*time.Millisecond {
		t.Fatalf("delay = %v, want base/4", delay)
	}

	cold := &Emitter{Heat: 0, BaseInterval: 400 * time.Millisecond, Rand: NewRand(1)}
	ev, delay = cold.Tick()
	if ev.Sparks != 1 {
		t.Fatalf("cold sparks = %d, want exactly 1", ev.Sparks)
	}
	if cold.Heat != 0 {
		t.Fatalf("cold heat = %d, must floor at 0", cold.Heat)
	}
	if delay != 400*time.Millisecond {
		t.Fatalf("cold delay = %v, want base", delay)
	}
}

type fixedRates struct {
	emitter time.Duration
	smolder time.Duration
}

func (r fixedRates) EmitterInterval(int, time.Duration) time.Duration      { return r.emitter }
func (r fixedRates) SmolderInterval(int, int, time.Duration) time.Duration { return r.smolder }

func TestInjectedRateSourceOverridesDefaults(t *testing.T) {
	rates := fixedRates{emitter: 123 * time.Millisecond, smolder: 456 * time.Millisecond}

	e := &Emitter{Heat: 8, BaseInterval: time.Second, Rand: NewRand(1), Rates: rates}
	if _, delay := e.Tick(); delay != 123*time.Millisecond {
		t.Fatalf("emitter delay = %v, want the injected rate", delay)
	}

	s := &Smolder{Fuel: 10, MaxFuel: 10, BaseInterval: time.Second, Rates: rates}
	if _, delay := s.Tick(); delay != 456*time.Millisecond {
		t.Fatalf("smolder delay = %v, want the injected rate", delay)
	}
}

// A component serialized mid-stream must resume exactly where it left off,
// jitter included.
func TestSerializedFlickerResumesIdentically(t *testing.T) {
	f := &Flicker{
		MinIntensity: 50,
		MaxIntensity: 90,
		MinPeriod:    60 * time.Millisecond,
		MaxPeriod:    220 * time.Millisecond,
		Rand:         NewRand(1234),
	}
	for i := 0; i < 5; i++ {
		f.Tick()
	}

	raw, err := json.Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	var restored Flicker
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 20; i++ {
		wantEv, wantDelay := f.Tick()
		gotEv, gotDelay := restored.Tick()
		if gotEv != wantEv || gotDelay != wantDelay {
			t.Fatalf("tick %d diverged: (%+v, %v) vs (%+v, %v)",
				i, gotEv, gotDelay, wantEv, wantDelay)
		}
	}
}

func TestSmolderBurnsOutAndStretches(t *testing.T) {
	s := &Smolder{Fuel: 2, MaxFuel: 2, BaseInterval: 100 * time.Millisecond}

	ev, delay := s.Tick()
	if ev.Fuel != 1 || ev.Extinguished {
		t.Fatalf("first event = %+v", ev)
	}
	// Half the fuel spent stretches the interval by half.
	if delay != 150*time.Millisecond {
		t.Fatalf("delay at half fuel = %v, want 150ms", delay)
	}

	ev, _ = s.Tick()
	if ev.Fuel != 0 || !ev.Extinguished {
		t.Fatalf("second event = %+v, want extinguished at 0", ev)
	}

	// Fuel floors at zero; extinguished keeps reporting.
	ev, _ = s.Tick()
	if ev.Fuel != 0 || !ev.Extinguished {
		t.Fatalf("third event = %+v", ev)
	}
}
