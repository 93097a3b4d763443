package genome

import (
	"errors"
	"fmt"

	"github.com/ishanwen-byte/evolvestring-go/internal/constants"
)

// ErrLengthMismatch is returned when a sequence and its target differ in length
var ErrLengthMismatch = errors.New("sequence length does not match target length")

// Individual is one candidate solution: a fixed-length sequence and its
// fitness against the target it was built for.
// Nothing changes after construction.
type Individual struct {
	sequence []byte
	matches  int
	fitness  float64
}

// NewRandomIndividual creates a genesis individual whose every position is
// drawn independently from the alphabet
func NewRandomIndividual(target string, rng Rand) *Individual {
	sequence := make([]byte, len(target))
	for i := range sequence {
		sequence[i] = RandomSymbol(rng)
	}

	return fromBytes(sequence, target)
}

// NewIndividual creates an offspring individual from an explicit sequence
func NewIndividual(sequence, target string) (*Individual, error) {
	if len(sequence) != len(target) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(sequence), len(target))
	}

	return fromBytes([]byte(sequence), target), nil
}

// fromBytes takes ownership of sequence. Callers guarantee the length.
func fromBytes(sequence []byte, target string) *Individual {
	matches := countMatches(sequence, target)
	return &Individual{
		sequence: sequence,
		matches:  matches,
		fitness:  percent(matches, len(sequence)),
	}
}

// Fitness returns the cached percentage of positions matching the target
func (ind *Individual) Fitness() float64 {
	return ind.fitness
}

// Percent returns the fitness rounded down to a whole percentage.
// It is computed from the match count, so 29 of 100 is 29 and never 28.
func (ind *Individual) Percent() int {
	if len(ind.sequence) == 0 {
		return int(constants.MaxFitness)
	}
	return ind.matches * int(constants.MaxFitness) / len(ind.sequence)
}

// Len returns the sequence length
func (ind *Individual) Len() int {
	return len(ind.sequence)
}

// At returns the symbol at position i
func (ind *Individual) At(i int) byte {
	return ind.sequence[i]
}

// Matches reports whether the sequence equals target exactly
func (ind *Individual) Matches(target string) bool {
	return string(ind.sequence) == target
}

// String renders the sequence
func (ind *Individual) String() string {
	return string(ind.sequence)
}

func countMatches(sequence []byte, target string) int {
	matches := 0
	for i, c := range sequence {
		if c == target[i] {
			matches++
		}
	}
	return matches
}

// percent of length positions that match. An empty sequence matches an empty
// target exactly and scores 100.
func percent(matches, length int) float64 {
	if length == 0 {
		return constants.MaxFitness
	}
	return float64(matches) / float64(length) * constants.MaxFitness
}
