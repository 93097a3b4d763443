package population

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ishanwen-byte/evolvestring-go/pkg/genome"
)

func TestMatingPool_FloorWeights(t *testing.T) {
	target := strings.Repeat("a", 8)
	members := []*genome.Individual{
		mustIndividual(t, "aaaaaaaa", target), // 100
		mustIndividual(t, "axxxxxxx", target), // 12.5 -> 12
		mustIndividual(t, "xxxxxxxx", target), // 0
		mustIndividual(t, "aaaxxxxx", target), // 37.5 -> 37
	}

	pool := NewMatingPool(members)
	assert.Equal(t, 149, pool.Len())

	assert.Same(t, members[0], pool.At(0))
	assert.Same(t, members[0], pool.At(99))
	assert.Same(t, members[1], pool.At(100))
	assert.Same(t, members[1], pool.At(111))
	assert.Same(t, members[3], pool.At(112))
	assert.Same(t, members[3], pool.At(148))
}

func TestMatingPool_ZeroWeightNeverDrawn(t *testing.T) {
	target := "abcd"
	members := []*genome.Individual{
		mustIndividual(t, "xxxx", target),
		mustIndividual(t, "axxx", target),
		mustIndividual(t, "xxxx", target),
	}

	pool := NewMatingPool(members)
	rng := genome.NewRand(17)
	for i := 0; i < 1000; i++ {
		assert.Same(t, members[1], pool.Draw(rng))
	}
}

func TestMatingPool_SelectionIsProportional(t *testing.T) {
	target := "abcd"
	members := []*genome.Individual{
		mustIndividual(t, "axxx", target), // 25
		mustIndividual(t, "abcx", target), // 75
	}

	pool := NewMatingPool(members)
	rng := genome.NewRand(23)

	draws := 20000
	first := 0
	for i := 0; i < draws; i++ {
		if pool.Draw(rng) == members[0] {
			first++
		}
	}

	assert.InDelta(t, 0.25, float64(first)/float64(draws), 0.02)
}

func TestMatingPool_Fallback(t *testing.T) {
	target := strings.Repeat("a", 100)
	rng := genome.NewRand(1)

	empty := NewMatingPool([]*genome.Individual{mustIndividual(t, strings.Repeat("x", 100), target)})
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.Fallback(rng))

	lone := mustIndividual(t, "a"+strings.Repeat("x", 99), target)
	single := NewMatingPool([]*genome.Individual{
		mustIndividual(t, strings.Repeat("x", 100), target),
		lone,
	})
	assert.Equal(t, 1, single.Len())
	for i := 0; i < 100; i++ {
		assert.Same(t, lone, single.Fallback(rng))
	}

	// Larger pools draw from the first two entries only.
	scripted := &scriptedRand{ints: []int{1}, floats: []float64{0}}
	wide := NewMatingPool([]*genome.Individual{lone, mustIndividual(t, target, target)})
	assert.Same(t, wide.At(1), wide.Fallback(scripted))
}

func TestMatingPool_Empty(t *testing.T) {
	pool := NewMatingPool(nil)
	assert.Equal(t, 0, pool.Len())
	assert.Nil(t, pool.Fallback(genome.NewRand(1)))
}
