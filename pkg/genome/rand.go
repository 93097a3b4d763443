package genome

import (
	"math/rand"
	"time"

	"github.com/ishanwen-byte/evolvestring-go/internal/constants"
)

// Rand is the single source of randomness used by the genetic operators.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewRand returns a seeded random source. A zero seed picks a time-based one.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandomSymbol draws one symbol uniformly from the alphabet
func RandomSymbol(rng Rand) byte {
	return constants.Alphabet[rng.Intn(len(constants.Alphabet))]
}

// InAlphabet reports whether every symbol of s belongs to the alphabet
func InAlphabet(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isSymbol(s[i]) {
			return false
		}
	}
	return true
}

func isSymbol(c byte) bool {
	for i := 0; i < len(constants.Alphabet); i++ {
		if constants.Alphabet[i] == c {
			return true
		}
	}
	return false
}
