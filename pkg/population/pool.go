package population

import (
	"sort"

	"github.com/ishanwen-byte/evolvestring-go/pkg/genome"
)

// MatingPool is a weighted multiset of individuals where each member appears
// floor(fitness) times. Entries are addressed through a cumulative weight
// table rather than replicated, so a draw costs a binary search.
type MatingPool struct {
	members    []*genome.Individual
	cumulative []int
	size       int
}

// NewMatingPool builds the pool for members
func NewMatingPool(members []*genome.Individual) *MatingPool {
	pool := &MatingPool{
		members:    members,
		cumulative: make([]int, len(members)),
	}

	for i, m := range members {
		pool.size += m.Percent()
		pool.cumulative[i] = pool.size
	}

	return pool
}

// Len returns the number of entries in the pool
func (p *MatingPool) Len() int {
	return p.size
}

// At returns the individual occupying entry k, 0 <= k < Len()
func (p *MatingPool) At(k int) *genome.Individual {
	i := sort.Search(len(p.cumulative), func(i int) bool {
		return p.cumulative[i] > k
	})
	return p.members[i]
}

// Draw picks one entry uniformly at random
func (p *MatingPool) Draw(rng genome.Rand) *genome.Individual {
	return p.At(rng.Intn(p.size))
}

// Fallback picks a single entry for a pool too small to mate. The index is
// drawn from the first two entries, clamped to the pool size.
// It returns nil for an empty pool.
func (p *MatingPool) Fallback(rng genome.Rand) *genome.Individual {
	if p.size == 0 {
		return nil
	}

	bound := 2
	if p.size < bound {
		bound = p.size
	}
	return p.At(rng.Intn(bound))
}
