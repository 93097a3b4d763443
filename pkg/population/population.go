package population

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ishanwen-byte/evolvestring-go/pkg/genome"
)

var (
	// ErrInvalidConfiguration is returned by New for a non-positive size or a
	// mutation rate outside [0, 1]
	ErrInvalidConfiguration = errors.New("invalid population configuration")

	// ErrEmptyPopulation is returned by operations that need at least one member
	ErrEmptyPopulation = errors.New("population is empty")
)

// Population is a fixed-size generation of individuals evolving toward a
// target. It is not safe for concurrent use.
type Population struct {
	members      []*genome.Individual
	target       string
	mutationRate float64
	generation   int
	last         EvolveStats

	rng    genome.Rand
	logger *logrus.Logger
}

// EvolveStats breaks down how the slots of the latest generation were filled
type EvolveStats struct {
	PoolSize      int `json:"pool_size"`
	HardMutations int `json:"hard_mutations"`
	Copies        int `json:"copies"`
	Crossovers    int `json:"crossovers"`
}

// Stats summarizes the fitness of the current generation
type Stats struct {
	Size     int     `json:"size"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"stddev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	PoolSize int     `json:"pool_size"`
}

// Option configures a Population
type Option func(*Population)

// WithRand sets the random source used by every genetic operator
func WithRand(rng genome.Rand) Option {
	return func(p *Population) {
		p.rng = rng
	}
}

// WithLogger sets the logger
func WithLogger(logger *logrus.Logger) Option {
	return func(p *Population) {
		p.logger = logger
	}
}

// New creates a population of size genesis individuals
func New(size int, target string, mutationRate float64, opts ...Option) (*Population, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfiguration, size)
	}
	if !(mutationRate >= 0 && mutationRate <= 1) {
		return nil, fmt.Errorf("%w: mutation rate must be in [0,1], got %v", ErrInvalidConfiguration, mutationRate)
	}

	p := &Population{
		target:       target,
		mutationRate: mutationRate,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = genome.NewRand(0)
	}
	if p.logger == nil {
		p.logger = logrus.New()
	}

	p.members = make([]*genome.Individual, size)
	for i := range p.members {
		p.members[i] = genome.NewRandomIndividual(target, p.rng)
	}

	p.logger.WithFields(logrus.Fields{
		"size":          size,
		"target_length": len(target),
		"mutation_rate": mutationRate,
	}).Debug("Initialized population")

	return p, nil
}

// Fittest returns the member with the highest fitness. Ties go to the lowest
// index.
func (p *Population) Fittest() (*genome.Individual, error) {
	if len(p.members) == 0 {
		return nil, ErrEmptyPopulation
	}

	best := p.members[0]
	for _, m := range p.members[1:] {
		if m.Fitness() > best.Fitness() {
			best = m
		}
	}

	return best, nil
}

// Evolve replaces the whole generation with one bred from it
func (p *Population) Evolve() error {
	if len(p.members) == 0 {
		return ErrEmptyPopulation
	}

	pool := NewMatingPool(p.members)
	next := make([]*genome.Individual, len(p.members))
	stats := EvolveStats{PoolSize: pool.Len()}

	for i := range next {
		switch {
		case p.rng.Float64() < p.mutationRate:
			next[i] = genome.NewRandomIndividual(p.target, p.rng)
			stats.HardMutations++

		case pool.Len() < 2:
			// Individuals are immutable, so the survivor is shared as is.
			if survivor := pool.Fallback(p.rng); survivor != nil {
				next[i] = survivor
				stats.Copies++
			} else {
				next[i] = genome.NewRandomIndividual(p.target, p.rng)
				stats.HardMutations++
			}

		default:
			father := pool.Draw(p.rng)
			mother := pool.Draw(p.rng)
			child, err := genome.Crossover(father, mother, p.target, p.rng)
			if err != nil {
				return fmt.Errorf("failed to breed slot %d: %w", i, err)
			}
			next[i] = child
			stats.Crossovers++
		}
	}

	p.members = next
	p.generation++
	p.last = stats

	p.logger.WithFields(logrus.Fields{
		"generation":     p.generation,
		"pool_size":      stats.PoolSize,
		"hard_mutations": stats.HardMutations,
		"copies":         stats.Copies,
		"crossovers":     stats.Crossovers,
	}).Debug("Evolved population")

	return nil
}

// Members returns a copy of the current generation
func (p *Population) Members() []*genome.Individual {
	members := make([]*genome.Individual, len(p.members))
	copy(members, p.members)
	return members
}

// Size returns the number of members
func (p *Population) Size() int {
	return len(p.members)
}

// Target returns the target string
func (p *Population) Target() string {
	return p.target
}

// MutationRate returns the hard mutation probability
func (p *Population) MutationRate() float64 {
	return p.mutationRate
}

// Generation returns the number of Evolve calls so far. Zero means the
// population still holds its genesis members.
func (p *Population) Generation() int {
	return p.generation
}

// LastEvolve returns the slot breakdown of the latest Evolve call
func (p *Population) LastEvolve() EvolveStats {
	return p.last
}

// Stats computes fitness statistics over the current generation
func (p *Population) Stats() (Stats, error) {
	if len(p.members) == 0 {
		return Stats{}, ErrEmptyPopulation
	}

	fitnesses := make([]float64, len(p.members))
	for i, m := range p.members {
		fitnesses[i] = m.Fitness()
	}

	stats := Stats{
		Size:     len(fitnesses),
		Mean:     stat.Mean(fitnesses, nil),
		Min:      floats.Min(fitnesses),
		Max:      floats.Max(fitnesses),
		PoolSize: NewMatingPool(p.members).Len(),
	}
	if len(fitnesses) > 1 {
		stats.StdDev = stat.StdDev(fitnesses, nil)
	}

	return stats, nil
}

// String lists every member with its fitness, one per line
func (p *Population) String() string {
	var sb strings.Builder
	for _, m := range p.members {
		sb.WriteString(fmt.Sprintf("%s, fitness = %v\n", m.String(), m.Fitness()))
	}
	return sb.String()
}
