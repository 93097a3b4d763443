package types

import (
	"time"
)

// Config represents the main configuration
type Config struct {
	Evolution EvolutionConfig `yaml:"evolution" json:"evolution"`
	Output    OutputConfig    `yaml:"output" json:"output"`
}

// EvolutionConfig holds the three scalar inputs of a run plus its safety bound
type EvolutionConfig struct {
	Target         string  `yaml:"target" json:"target"`
	PopulationSize int     `yaml:"population_size" json:"population_size"`
	MutationRate   float64 `yaml:"mutation_rate" json:"mutation_rate"`
	MaxGenerations int     `yaml:"max_generations" json:"max_generations"`
	Seed           int64   `yaml:"seed" json:"seed"`
}

// OutputConfig controls what the driver prints
type OutputConfig struct {
	Verbose    bool   `yaml:"verbose" json:"verbose"`
	LogLevel   string `yaml:"log_level" json:"log_level"`
	PrintEvery int    `yaml:"print_every" json:"print_every"`
	ReportPath string `yaml:"report_path" json:"report_path"`
	Summary    bool   `yaml:"summary" json:"summary"`
}

// GenerationReport is the status of one generation as seen by the driver
type GenerationReport struct {
	Generation    int       `json:"generation"`
	Best          string    `json:"best"`
	BestFitness   float64   `json:"best_fitness"`
	MeanFitness   float64   `json:"mean_fitness"`
	StdDevFitness float64   `json:"stddev_fitness"`
	PoolSize      int       `json:"pool_size"`
	HardMutations int       `json:"hard_mutations"`
	Timestamp     time.Time `json:"timestamp"`
}

// RunStats tracks statistics about a whole run
type RunStats struct {
	Generations    int           `json:"generations"`
	HardMutations  int64         `json:"hard_mutations"`
	BestFitness    float64       `json:"best_fitness"`
	BestGeneration int           `json:"best_generation"`
	AvgMeanFitness float64       `json:"avg_mean_fitness"`
	Stagnation     int           `json:"stagnation"`
	Duration       time.Duration `json:"duration"`
	StartTime      time.Time     `json:"start_time"`
	LastUpdate     time.Time     `json:"last_update"`
}

// RunResult is the outcome of a driver run
type RunResult struct {
	ID             string           `json:"id"`
	Target         string           `json:"target"`
	PopulationSize int              `json:"population_size"`
	MutationRate   float64          `json:"mutation_rate"`
	Seed           int64            `json:"seed"`
	Converged      bool             `json:"converged"`
	Generations    int              `json:"generations"`
	Best           string           `json:"best"`
	BestFitness    float64          `json:"best_fitness"`
	Stats          RunStats         `json:"stats"`
	Last           GenerationReport `json:"last"`
	Duration       time.Duration    `json:"duration"`
	StartTime      time.Time        `json:"start_time"`
	EndTime        time.Time        `json:"end_time"`
}
