package id

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync/atomic"
)

// maxSafe keeps ids exact when they pass through JSON numbers.
const maxSafe = 1<<53 - 1

// Generator creates tactic ids.
type Generator interface {
	NewID() (int64, error)
}

// RandomGenerator returns random positive ids below 2^53.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (int64, error) {
	var buf [8]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, fmt.Errorf("read random bytes: %w", err)
		}
		if v := int64(binary.BigEndian.Uint64(buf[:]) & maxSafe); v > 0 {
			return v, nil
		}
	}
}

// Sequence hands out increasing ids starting after a known maximum.
type Sequence struct {
	last atomic.Int64
}

func NewSequence(after int64) *Sequence {
	s := &Sequence{}
	s.last.Store(after)
	return s
}

func (s *Sequence) NewID() (int64, error) {
	return s.last.Add(1), nil
}
