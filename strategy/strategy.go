package strategy

import (
	"fmt"
	"math/rand"

	"lotolab/models"
	"lotolab/stats"
)

// Generator produces candidate combinations for one game, driven by the
// statistics it was built from
type Generator interface {
	// Name returns the registry name of the strategy
	Name() string
	// Generate produces count combinations. Returned combinations are
	// normalized and valid for the generator's game.
	Generate(count int) ([]models.Combination, error)
}

// Factory builds a generator from a statistics sample and a seeded RNG.
// Injecting the RNG keeps generation reproducible in tests and backtests.
type Factory func(s *stats.Statistics, rng *rand.Rand) Generator

// Spec describes a registered strategy
type Spec struct {
	Name        string
	Description string
	Factory     Factory
}

// specs holds registered strategies in registration order
var specs []Spec

func register(spec Spec) {
	specs = append(specs, spec)
}

// AllSpecs returns the registered strategies in registration order
func AllSpecs() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// Names returns the registered strategy names in registration order
func Names() []string {
	names := make([]string, len(specs))
	for i, spec := range specs {
		names[i] = spec.Name
	}
	return names
}

// New builds a generator by registry name
func New(name string, s *stats.Statistics, rng *rand.Rand) (Generator, error) {
	for _, spec := range specs {
		if spec.Name == name {
			return spec.Factory(s, rng), nil
		}
	}
	return nil, fmt.Errorf("unknown strategy %q", name)
}
