package archive

import (
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ishanwen-byte/evolvestring-go/internal/types"
)

// Archive keeps the in-memory history of a single run
// It records one report per generation and tracks the global best
type Archive struct {
	mu sync.RWMutex

	// One report per generation, in order
	history []types.GenerationReport

	// Global best
	best           *types.GenerationReport
	bestFitness    float64
	lastImprovedAt int

	// Running sum of generation mean fitness
	meanSum float64

	stats  types.RunStats
	logger *logrus.Logger
}

// New creates an empty archive
func New(logger *logrus.Logger) *Archive {
	if logger == nil {
		logger = logrus.New()
	}

	return &Archive{
		history:     make([]types.GenerationReport, 0),
		bestFitness: math.Inf(-1),
		logger:      logger,
		stats: types.RunStats{
			StartTime: time.Now(),
		},
	}
}

// Record appends a generation report and updates the global best
func (a *Archive) Record(report types.GenerationReport) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if report.Timestamp.IsZero() {
		report.Timestamp = time.Now()
	}

	a.history = append(a.history, report)

	if report.BestFitness > a.bestFitness {
		best := report
		a.best = &best
		a.bestFitness = report.BestFitness
		a.lastImprovedAt = report.Generation

		a.logger.WithFields(logrus.Fields{
			"generation": report.Generation,
			"best":       report.Best,
			"fitness":    report.BestFitness,
		}).Info("New best individual found")
	}

	a.meanSum += report.MeanFitness
	a.stats.Generations = len(a.history)
	a.stats.HardMutations += int64(report.HardMutations)
	a.stats.LastUpdate = report.Timestamp
}

// Best returns the best report recorded so far, or nil
func (a *Archive) Best() *types.GenerationReport {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.best == nil {
		return nil
	}
	best := *a.best
	return &best
}

// History returns a copy of every recorded report
func (a *Archive) History() []types.GenerationReport {
	a.mu.RLock()
	defer a.mu.RUnlock()

	history := make([]types.GenerationReport, len(a.history))
	copy(history, a.history)
	return history
}

// Stagnation returns the number of generations recorded since the global
// best last improved
func (a *Archive) Stagnation() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.stagnation()
}

func (a *Archive) stagnation() int {
	if len(a.history) == 0 {
		return 0
	}
	return a.history[len(a.history)-1].Generation - a.lastImprovedAt
}

// Stats returns statistics over the whole run
func (a *Archive) Stats() types.RunStats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stats := a.stats
	stats.Duration = time.Since(a.stats.StartTime)
	stats.Stagnation = a.stagnation()

	if len(a.history) > 0 {
		stats.AvgMeanFitness = a.meanSum / float64(len(a.history))
	}
	if a.best != nil {
		stats.BestFitness = a.best.BestFitness
		stats.BestGeneration = a.best.Generation
	}

	return stats
}
