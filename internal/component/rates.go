package component

import "time"

// RateSource computes scripted re-fire delays from component state. The
// scripting engine implements it; components fall back to the built-in
// formulas below when no source is injected. The field is never serialized —
// whoever deserializes a component is responsible for re-injecting it.
type RateSource interface {
	EmitterInterval(heat int, base time.Duration) time.Duration
	SmolderInterval(fuel, maxFuel int, base time.Duration) time.Duration
}

// Hotter emitters spark more often, bottoming out at a quarter of base.
func defaultEmitterInterval(base time.Duration, heat int) time.Duration {
	div := 1 + heat/4
	if div > 4 {
		div = 4
	}
	return base / time.Duration(div)
}

// A draining brazier smolders more slowly: the base interval stretches by the
// spent fraction of fuel.
func defaultSmolderInterval(base time.Duration, fuel, maxFuel int) time.Duration {
	if maxFuel <= 0 || fuel >= maxFuel {
		return base
	}
	spent := maxFuel - fuel
	return base + base*time.Duration(spent)/time.Duration(maxFuel)
}
