package genome

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishanwen-byte/evolvestring-go/internal/constants"
)

func TestAlphabet(t *testing.T) {
	assert.Len(t, constants.Alphabet, 93)

	seen := make(map[byte]bool)
	for i := 0; i < len(constants.Alphabet); i++ {
		c := constants.Alphabet[i]
		assert.False(t, seen[c], "duplicate symbol %q", c)
		seen[c] = true
	}
}

func TestNewIndividual_Fitness(t *testing.T) {
	tests := []struct {
		name     string
		sequence string
		target   string
		expected float64
	}{
		{name: "exact match", sequence: "top hat", target: "top hat", expected: 100},
		{name: "no shared positions", sequence: "owo", target: "wow", expected: 0},
		{name: "one of three", sequence: "ooo", target: "wow", expected: 100.0 / 3},
		{name: "two of three", sequence: "www", target: "wow", expected: 200.0 / 3},
		{name: "three of seven", sequence: "pot 4aT", target: "top hat", expected: 300.0 / 7},
		{name: "empty target", sequence: "", target: "", expected: 100},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ind, err := NewIndividual(test.sequence, test.target)
			require.NoError(t, err)
			assert.InDelta(t, test.expected, ind.Fitness(), 1e-9)
			assert.Equal(t, test.sequence, ind.String())
		})
	}
}

func TestNewIndividual_LengthMismatch(t *testing.T) {
	ind, err := NewIndividual("ca", "cat")
	assert.Nil(t, ind)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestNewIndividual_SelfIsFullyFit(t *testing.T) {
	for _, target := range []string{"a", "cat", "Hello, World!", constants.Alphabet} {
		ind, err := NewIndividual(target, target)
		require.NoError(t, err)
		assert.Equal(t, 100.0, ind.Fitness())
		assert.True(t, ind.Matches(target))
	}
}

func TestNewRandomIndividual(t *testing.T) {
	rng := NewRand(7)
	target := "This String is 68 characters long, including spaces and punctuation."

	for i := 0; i < 200; i++ {
		ind := NewRandomIndividual(target, rng)
		assert.Equal(t, len(target), ind.Len())
		assert.True(t, InAlphabet(ind.String()))
		assert.GreaterOrEqual(t, ind.Fitness(), constants.MinFitness)
		assert.LessOrEqual(t, ind.Fitness(), constants.MaxFitness)

		recomputed, err := NewIndividual(ind.String(), target)
		require.NoError(t, err)
		assert.Equal(t, recomputed.Fitness(), ind.Fitness())
	}
}

func TestNewRandomIndividual_EmptyTarget(t *testing.T) {
	ind := NewRandomIndividual("", NewRand(1))
	assert.Equal(t, 0, ind.Len())
	assert.Equal(t, "", ind.String())
	assert.Equal(t, 100.0, ind.Fitness())
}

func TestInAlphabet(t *testing.T) {
	assert.True(t, InAlphabet("cat"))
	assert.True(t, InAlphabet(""))
	assert.True(t, InAlphabet(constants.Alphabet))
	assert.False(t, InAlphabet("tab\there"))
	assert.False(t, InAlphabet("naïve"))
	assert.False(t, InAlphabet("back`tick"))
}

func TestCrossover_ChildSymbolsComeFromParents(t *testing.T) {
	rng := NewRand(42)
	target := strings.Repeat("x", 64)

	for i := 0; i < 50; i++ {
		father := NewRandomIndividual(target, rng)
		mother := NewRandomIndividual(target, rng)

		child, err := Crossover(father, mother, target, rng)
		require.NoError(t, err)
		require.Equal(t, len(target), child.Len())

		for k := 0; k < child.Len(); k++ {
			c := child.At(k)
			assert.True(t, c == father.At(k) || c == mother.At(k),
				"position %d: %q is neither %q nor %q", k, c, father.At(k), mother.At(k))
		}
	}
}

func TestCrossover_SameParent(t *testing.T) {
	rng := NewRand(3)
	parent, err := NewIndividual("kittan", "kitten")
	require.NoError(t, err)

	child, err := Crossover(parent, parent, "kitten", rng)
	require.NoError(t, err)
	assert.Equal(t, "kittan", child.String())
	assert.Equal(t, parent.Fitness(), child.Fitness())
}

func TestCrossover_LengthMismatch(t *testing.T) {
	father, err := NewIndividual("dog", "dog")
	require.NoError(t, err)

	_, err = Crossover(father, father, "dogs", NewRand(1))
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestNewRand_Deterministic(t *testing.T) {
	a := NewRandomIndividual("deterministic", NewRand(99))
	b := NewRandomIndividual("deterministic", NewRand(99))
	assert.Equal(t, a.String(), b.String())
}

func TestIndividual_Percent(t *testing.T) {
	target := strings.Repeat("a", 100)
	sequence := strings.Repeat("a", 29) + strings.Repeat("b", 71)

	ind, err := NewIndividual(sequence, target)
	require.NoError(t, err)
	assert.Equal(t, 29, ind.Percent())

	ind, err = NewIndividual("caX", "cat")
	require.NoError(t, err)
	assert.Equal(t, 66, ind.Percent())

	ind, err = NewIndividual("xyz", "cat")
	require.NoError(t, err)
	assert.Equal(t, 0, ind.Percent())

	ind, err = NewIndividual("", "")
	require.NoError(t, err)
	assert.Equal(t, 100, ind.Percent())
}
