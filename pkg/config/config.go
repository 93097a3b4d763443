package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ishanwen-byte/evolvestring-go/internal/constants"
	"github.com/ishanwen-byte/evolvestring-go/internal/types"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Manager handles configuration loading and validation
type Manager struct {
	config *types.Config
	path   string
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		config: getDefaultConfig(),
	}
}

// Load loads configuration from a file
func (m *Manager) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	config := getDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ApplyEnvOverrides(config); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := Validate(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	m.path = path
	return nil
}

// LoadEnv applies environment overrides on top of the current configuration
// without reading a file
func (m *Manager) LoadEnv() error {
	if err := ApplyEnvOverrides(m.config); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return nil
}

// Save saves configuration to a file
func (m *Manager) Save(path string) error {
	data, err := yaml.Marshal(m.config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (m *Manager) GetConfig() *types.Config {
	return m.config
}

// SetConfig updates the configuration
func (m *Manager) SetConfig(config *types.Config) {
	m.config = config
}

// GetPath returns the configuration file path
func (m *Manager) GetPath() string {
	return m.path
}

// Validate validates the current configuration
func (m *Manager) Validate() error {
	return Validate(m.config)
}

// ApplyEnvOverrides applies environment variable overrides to the configuration
func ApplyEnvOverrides(config *types.Config) error {
	if target, ok := os.LookupEnv(constants.EnvTarget); ok {
		config.Evolution.Target = target
	}
	if size := os.Getenv(constants.EnvPopulationSize); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", constants.EnvPopulationSize, err)
		}
		config.Evolution.PopulationSize = n
	}
	if rate := os.Getenv(constants.EnvMutationRate); rate != "" {
		r, err := strconv.ParseFloat(rate, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", constants.EnvMutationRate, err)
		}
		config.Evolution.MutationRate = r
	}
	if maxGen := os.Getenv(constants.EnvMaxGenerations); maxGen != "" {
		n, err := strconv.Atoi(maxGen)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", constants.EnvMaxGenerations, err)
		}
		config.Evolution.MaxGenerations = n
	}
	if seed := os.Getenv(constants.EnvSeed); seed != "" {
		n, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", constants.EnvSeed, err)
		}
		config.Evolution.Seed = n
	}
	if verbose := os.Getenv(constants.EnvVerbose); verbose != "" {
		config.Output.Verbose = strings.ToLower(verbose) == "true"
	}
	if level := os.Getenv(constants.EnvLogLevel); level != "" {
		config.Output.LogLevel = level
	}

	return nil
}

// Validate checks the configuration and fills in derived defaults
func Validate(config *types.Config) error {
	if config.Evolution.PopulationSize <= 0 {
		return fmt.Errorf("%w: population size must be positive", ErrInvalidConfig)
	}
	if !(config.Evolution.MutationRate >= 0 && config.Evolution.MutationRate <= 1) {
		return fmt.Errorf("%w: mutation rate must be in [0,1]", ErrInvalidConfig)
	}
	if config.Evolution.MaxGenerations < 0 {
		return fmt.Errorf("%w: max generations must not be negative", ErrInvalidConfig)
	}
	if config.Output.PrintEvery <= 0 {
		return fmt.Errorf("%w: print every must be positive", ErrInvalidConfig)
	}

	if config.Output.LogLevel == "" {
		config.Output.LogLevel = constants.DefaultLogLevel
	}
	if _, err := logrus.ParseLevel(config.Output.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *types.Config {
	return &types.Config{
		Evolution: types.EvolutionConfig{
			Target:         constants.DefaultTarget,
			PopulationSize: constants.DefaultPopulationSize,
			MutationRate:   constants.DefaultMutationRate,
			MaxGenerations: constants.DefaultMaxGenerations,
		},
		Output: types.OutputConfig{
			LogLevel:   constants.DefaultLogLevel,
			PrintEvery: constants.DefaultPrintEvery,
			Summary:    true,
		},
	}
}

// CreateDefaultConfig creates a default configuration file
func CreateDefaultConfig(path string) error {
	manager := NewManager()
	return manager.Save(path)
}
