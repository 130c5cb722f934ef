package cashmerge

import (
	"math/rand"

	"github.com/google/uuid"
)

// Rand is the source of every random choice the engine makes.
// *rand.Rand satisfies it; tests seed one for deterministic runs.
type Rand interface {
	Intn(n int) int
	Float64() float64
	Perm(n int) []int
	Read(p []byte) (n int, err error)
}

var _ Rand = (*rand.Rand)(nil)

// NewRand returns a seeded source.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// newID draws a version 4 UUID from rng so identities are reproducible
// under a fixed seed.
func newID(rng Rand) uuid.UUID {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return uuid.New()
	}
	return id
}
