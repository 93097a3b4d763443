package evolution

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ishanwen-byte/evolvestring-go/internal/types"
	"github.com/ishanwen-byte/evolvestring-go/pkg/archive"
	"github.com/ishanwen-byte/evolvestring-go/pkg/config"
	"github.com/ishanwen-byte/evolvestring-go/pkg/genome"
	"github.com/ishanwen-byte/evolvestring-go/pkg/population"
)

// ErrGenerationLimit is returned when the generation bound is reached before
// any individual matches the target
var ErrGenerationLimit = errors.New("generation limit reached without convergence")

// Reporter consumes one status report per generation
type Reporter interface {
	Report(report types.GenerationReport)
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(report types.GenerationReport)

// Report calls f(report)
func (f ReporterFunc) Report(report types.GenerationReport) {
	f(report)
}

// Runner drives a population until its fittest member equals the target
type Runner struct {
	config     types.Config
	population *population.Population
	archive    *archive.Archive
	reporters  []Reporter
	rng        genome.Rand
	logger     *logrus.Logger
}

// Option configures a Runner
type Option func(*Runner)

// WithReporter adds a per-generation reporter
func WithReporter(r Reporter) Option {
	return func(rn *Runner) {
		rn.reporters = append(rn.reporters, r)
	}
}

// WithLogger sets the logger shared by the runner, its population and archive
func WithLogger(logger *logrus.Logger) Option {
	return func(rn *Runner) {
		rn.logger = logger
	}
}

// WithRand overrides the seeded random source
func WithRand(rng genome.Rand) Option {
	return func(rn *Runner) {
		rn.rng = rng
	}
}

// NewRunner validates cfg and builds the initial population
func NewRunner(cfg types.Config, opts ...Option) (*Runner, error) {
	if err := config.Validate(&cfg); err != nil {
		return nil, err
	}

	rn := &Runner{config: cfg}
	for _, opt := range opts {
		opt(rn)
	}
	if rn.logger == nil {
		level, err := logrus.ParseLevel(cfg.Output.LogLevel)
		if err != nil {
			return nil, err
		}
		rn.logger = logrus.New()
		rn.logger.SetLevel(level)
	}
	if rn.rng == nil {
		rn.rng = genome.NewRand(cfg.Evolution.Seed)
	}

	if !genome.InAlphabet(cfg.Evolution.Target) {
		rn.logger.WithField("target", cfg.Evolution.Target).
			Warn("Target contains symbols outside the alphabet and can never be matched exactly")
	}

	pop, err := population.New(
		cfg.Evolution.PopulationSize,
		cfg.Evolution.Target,
		cfg.Evolution.MutationRate,
		population.WithRand(rn.rng),
		population.WithLogger(rn.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create population: %w", err)
	}

	rn.population = pop
	rn.archive = archive.New(rn.logger)
	return rn, nil
}

// Population returns the population being evolved
func (rn *Runner) Population() *population.Population {
	return rn.population
}

// Archive returns the run history
func (rn *Runner) Archive() *archive.Archive {
	return rn.archive
}

// Run loops fittest, report, evolve until the fittest member renders as the
// target. A non-zero MaxGenerations bounds the loop; reaching it returns the
// partial result together with ErrGenerationLimit.
func (rn *Runner) Run(ctx context.Context) (*types.RunResult, error) {
	startTime := time.Now()
	target := rn.config.Evolution.Target
	maxGenerations := rn.config.Evolution.MaxGenerations

	result := &types.RunResult{
		ID:             uuid.New().String(),
		Target:         target,
		PopulationSize: rn.config.Evolution.PopulationSize,
		MutationRate:   rn.config.Evolution.MutationRate,
		Seed:           rn.config.Evolution.Seed,
		StartTime:      startTime,
	}

	rn.logger.WithFields(logrus.Fields{
		"run":             result.ID,
		"target":          target,
		"population_size": result.PopulationSize,
		"mutation_rate":   result.MutationRate,
		"max_generations": maxGenerations,
	}).Info("Starting evolution")

	for generation := 1; ; generation++ {
		if err := ctx.Err(); err != nil {
			rn.finish(result, startTime)
			return result, err
		}

		report, best, err := rn.observe(generation)
		if err != nil {
			return nil, err
		}
		rn.archive.Record(report)
		for _, r := range rn.reporters {
			r.Report(report)
		}
		result.Last = report

		if best.Matches(target) {
			result.Converged = true
			rn.finish(result, startTime)
			rn.logger.WithFields(logrus.Fields{
				"run":         result.ID,
				"generations": result.Generations,
				"duration":    result.Duration,
			}).Info("Target reached")
			return result, nil
		}

		if maxGenerations > 0 && generation >= maxGenerations {
			rn.finish(result, startTime)
			rn.logger.WithFields(logrus.Fields{
				"run":          result.ID,
				"generations":  result.Generations,
				"best":         result.Best,
				"best_fitness": result.BestFitness,
				"stagnation":   result.Stats.Stagnation,
			}).Warn("Generation limit reached without convergence")
			return result, fmt.Errorf("%w after %d generations", ErrGenerationLimit, generation)
		}

		if err := rn.population.Evolve(); err != nil {
			return nil, fmt.Errorf("failed to evolve generation %d: %w", generation, err)
		}
	}
}

// observe builds the status report of the current generation
func (rn *Runner) observe(generation int) (types.GenerationReport, *genome.Individual, error) {
	best, err := rn.population.Fittest()
	if err != nil {
		return types.GenerationReport{}, nil, fmt.Errorf("failed to find fittest: %w", err)
	}

	stats, err := rn.population.Stats()
	if err != nil {
		return types.GenerationReport{}, nil, fmt.Errorf("failed to compute statistics: %w", err)
	}

	report := types.GenerationReport{
		Generation:    generation,
		Best:          best.String(),
		BestFitness:   best.Fitness(),
		MeanFitness:   stats.Mean,
		StdDevFitness: stats.StdDev,
		PoolSize:      stats.PoolSize,
		HardMutations: rn.population.LastEvolve().HardMutations,
		Timestamp:     time.Now(),
	}

	rn.logger.WithFields(logrus.Fields{
		"generation": generation,
		"best":       report.Best,
		"fitness":    report.BestFitness,
		"mean":       report.MeanFitness,
	}).Debug("Observed generation")

	return report, best, nil
}

func (rn *Runner) finish(result *types.RunResult, startTime time.Time) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)
	result.Stats = rn.archive.Stats()
	result.Generations = result.Stats.Generations

	if best := rn.archive.Best(); best != nil {
		result.Best = best.Best
		result.BestFitness = best.BestFitness
	}
}

// ToJSON converts a run result to indented JSON
func ToJSON(result *types.RunResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
