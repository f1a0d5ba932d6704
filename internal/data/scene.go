package data

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// TorchEntry places a flickering light.
type TorchEntry struct {
	X         int `yaml:"x"`
	Y         int `yaml:"y"`
	Intensity int `yaml:"intensity"`
}

// BrazierEntry places a flickering light that burns through fuel.
type BrazierEntry struct {
	X              int `yaml:"x"`
	Y              int `yaml:"y"`
	Intensity      int `yaml:"intensity"`
	Fuel           int `yaml:"fuel"`
	BurnIntervalMs int `yaml:"burn_interval_ms"`
}

func (b BrazierEntry) BurnInterval() time.Duration {
	return time.Duration(b.BurnIntervalMs) * time.Millisecond
}

// EmitterEntry places a spark fountain.
type EmitterEntry struct {
	X              int `yaml:"x"`
	Y              int `yaml:"y"`
	Heat           int `yaml:"heat"`
	BaseIntervalMs int `yaml:"base_interval_ms"`
}

func (e EmitterEntry) BaseInterval() time.Duration {
	return time.Duration(e.BaseIntervalMs) * time.Millisecond
}

// ProjectileEntry launches a stepped mover at boot, mostly for demos.
type ProjectileEntry struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	DX     int `yaml:"dx"`
	DY     int `yaml:"dy"`
	Steps  int `yaml:"steps"`
	StepMs int `yaml:"step_ms"`
}

func (p ProjectileEntry) StepDuration() time.Duration {
	return time.Duration(p.StepMs) * time.Millisecond
}

// Scene is everything placed in the world at boot.
type Scene struct {
	Torches     []TorchEntry      `yaml:"torches"`
	Braziers    []BrazierEntry    `yaml:"braziers"`
	Emitters    []EmitterEntry    `yaml:"emitters"`
	Projectiles []ProjectileEntry `yaml:"projectiles"`
}

// LoadScene reads and validates a scene file.
func LoadScene(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	var s Scene
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return &s, nil
}

func (s *Scene) validate() error {
	for i, b := range s.Braziers {
		if b.Fuel <= 0 {
			return fmt.Errorf("brazier %d: fuel must be positive", i)
		}
		if b.BurnIntervalMs <= 0 {
			return fmt.Errorf("brazier %d: burn_interval_ms must be positive", i)
		}
	}
	for i, e := range s.Emitters {
		if e.BaseIntervalMs <= 0 {
			return fmt.Errorf("emitter %d: base_interval_ms must be positive", i)
		}
	}
	for i, p := range s.Projectiles {
		if p.Steps <= 0 {
			return fmt.Errorf("projectile %d: steps must be positive", i)
		}
		if p.StepMs <= 0 {
			return fmt.Errorf("projectile %d: step_ms must be positive", i)
		}
		if p.DX == 0 && p.DY == 0 {
			return fmt.Errorf("projectile %d: direction must be non-zero", i)
		}
	}
	return nil
}
