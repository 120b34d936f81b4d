package orders

import (
	"crypto/rand"
	"fmt"
	"io"
)

const (
	idPrefix   = "ORD-"
	idLength   = 9
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// Largest multiple of len(idAlphabet) that fits in a byte. Bytes at or above it
	// are redrawn so every symbol stays equally likely.
	rejectionLimit = 256 - 256%len(idAlphabet)
)

// Generator produces order confirmation ids.
type Generator interface {
	Generate() (string, error)
}

// GeneratorFunc adapts a function into a Generator.
type GeneratorFunc func() (string, error)

func (fn GeneratorFunc) Generate() (string, error) {
	return fn()
}

// RandomGenerator draws ids of the form ORD-XXXXXXXXX from an entropy source.
type RandomGenerator struct {
	entropy io.Reader
}

// NewRandomGenerator reads from entropy, or crypto/rand when entropy is nil.
func NewRandomGenerator(entropy io.Reader) *RandomGenerator {
	if entropy == nil {
		entropy = rand.Reader
	}
	return &RandomGenerator{entropy: entropy}
}

func (g *RandomGenerator) Generate() (string, error) {
	out := make([]byte, 0, len(idPrefix)+idLength)
	out = append(out, idPrefix...)

	buf := make([]byte, idLength)
	for len(out) < cap(out) {
		if _, err := io.ReadFull(g.entropy, buf); err != nil {
			return "", fmt.Errorf("read order id entropy: %w", err)
		}
		for _, b := range buf {
			if int(b) >= rejectionLimit {
				continue
			}
			out = append(out, idAlphabet[int(b)%len(idAlphabet)])
			if len(out) == cap(out) {
				break
			}
		}
	}
	return string(out), nil
}
