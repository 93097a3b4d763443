package genome

import (
	"fmt"
)

// Crossover builds a child by picking, independently for each position, the
// father's or the mother's symbol with equal probability
func Crossover(father, mother *Individual, target string, rng Rand) (*Individual, error) {
	if father.Len() != len(target) || mother.Len() != len(target) {
		return nil, fmt.Errorf("%w: parents %d and %d, target %d",
			ErrLengthMismatch, father.Len(), mother.Len(), len(target))
	}

	child := make([]byte, len(target))
	for i := range child {
		if rng.Float64() < 0.5 {
			child[i] = father.sequence[i]
		} else {
			child[i] = mother.sequence[i]
		}
	}

	return fromBytes(child, target), nil
}
