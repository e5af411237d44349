package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// TrialStream creates the generator for a single trial of a single scenario.
	// Streams derive from (scenarioKey, trialIndex, baseSeed) only, so trials are
	// statistically independent and an identical base seed reproduces every
	// trial bit-for-bit regardless of execution order.
	TrialStream(ctx context.Context, scenarioKey string, trialIndex int, baseSeed int64) (*rand.Rand, error)
}
