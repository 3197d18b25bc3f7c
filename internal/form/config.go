// Package form holds the simulator configuration payload and the coercion
// rules of its input fields.
package form

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DerivationMode selects how rules are applied in each step.
type DerivationMode string

const (
	MinParallel DerivationMode = "minpar"
	MaxParallel DerivationMode = "maxpar"
)

// DerivationModes lists the known modes in display order.
var DerivationModes = []DerivationMode{MinParallel, MaxParallel}

// Label returns the human-readable name of the mode.
func (m DerivationMode) Label() string {
	switch m {
	case MinParallel:
		return "Min. parallelism"
	case MaxParallel:
		return "Max. parallelism"
	default:
		return string(m)
	}
}

// Valid reports whether m is a known mode.
func (m DerivationMode) Valid() bool {
	for _, known := range DerivationModes {
		if m == known {
			return true
		}
	}
	return false
}

// ParseDerivationMode accepts a known mode, case-insensitively. An empty
// value is allowed and means "not chosen yet".
func ParseDerivationMode(value string) (DerivationMode, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return "", nil
	}
	mode := DerivationMode(trimmed)
	if mode.Valid() {
		return mode, nil
	}
	if suggestion := closestMode(trimmed); suggestion != "" {
		return "", fmt.Errorf("unknown derivation mode %q (did you mean %q?)", value, suggestion)
	}
	return "", fmt.Errorf("unknown derivation mode %q", value)
}

func closestMode(value string) DerivationMode {
	best := DerivationMode("")
	bestDist := -1
	for _, mode := range DerivationModes {
		dist := levenshtein.ComputeDistance(value, string(mode))
		if bestDist < 0 || dist < bestDist {
			best, bestDist = mode, dist
		}
	}
	if bestDist > 2 {
		return ""
	}
	return best
}

// SimulatorConfig is the run configuration handed to the simulator.
type SimulatorConfig struct {
	Scene          string         `json:"scene,omitempty" toml:"scene,omitempty"`
	Rules          string         `json:"rules,omitempty" toml:"rules,omitempty"`
	DerivationMode DerivationMode `json:"derivationMode" toml:"derivationMode"`
	Timesteps      int            `json:"timesteps" toml:"timesteps"`
	UpdateInterval int            `json:"updateInterval" toml:"updateInterval"`
	EnableLogging  bool           `json:"enableLogging" toml:"enableLogging"`
	RandomSeed     string         `json:"randomSeed" toml:"randomSeed"`
}

// Defaults returns the configuration a fresh form starts with. The
// derivation mode is left unset so the form asks for it.
func Defaults() SimulatorConfig {
	return SimulatorConfig{
		Timesteps:      100,
		UpdateInterval: 500,
	}
}

// Check reports the first problem that prevents running the simulator.
func (c SimulatorConfig) Check() error {
	if strings.TrimSpace(c.Scene) == "" {
		return fmt.Errorf("scene file required")
	}
	if strings.TrimSpace(c.Rules) == "" {
		return fmt.Errorf("rule file required")
	}
	if c.DerivationMode == "" {
		return fmt.Errorf("derivation mode required")
	}
	if !c.DerivationMode.Valid() {
		return fmt.Errorf("unknown derivation mode %q", c.DerivationMode)
	}
	return nil
}
