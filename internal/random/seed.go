// Package random provides the random-source handle threaded through the
// personnel engines, plus cryptographic seed generation.
//
// Every draw made by the recruitment market and the turnover tracker goes
// through a Source, so tests can substitute a seeded or scripted sequence and
// get reproducible rosters.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// ResolveSeed returns the configured seed, or a fresh crypto seed when the
// configured value is zero. The boolean reports whether the seed was generated.
func ResolveSeed(configured int64, generate func() (int64, error)) (int64, bool, error) {
	if configured != 0 {
		return configured, false, nil
	}
	if generate == nil {
		generate = NewSeed
	}
	seed, err := generate()
	if err != nil {
		return 0, false, err
	}
	return seed, true, nil
}
