package id

import (
	"crypto/rand"
	"encoding/hex"
)

const maxExternalIDLength = 64

// Generator creates opaque ids used to correlate a request across logs.
type Generator interface {
	NewID() string
}

type RandomGenerator struct {
	prefix string
}

func NewRandomGenerator(prefix string) *RandomGenerator {
	return &RandomGenerator{prefix: prefix}
}

func (g *RandomGenerator) NewID() string {
	buf := make([]byte, 12)
	_, _ = rand.Read(buf)
	return g.prefix + hex.EncodeToString(buf)
}

// Valid reports whether an id supplied by a caller can be reused as is.
func Valid(raw string) bool {
	if raw == "" || len(raw) > maxExternalIDLength {
		return false
	}
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
