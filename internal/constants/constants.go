package constants

// Application constants
const (
	Name        = "EvolveString-Go"
	Version     = "1.0.0"
	Description = "Go genetic algorithm that evolves random strings into a target string"

	// Default configuration values
	DefaultTarget         = "Hello, World!"
	DefaultPopulationSize = 1000
	DefaultMutationRate   = 0.01
	DefaultMaxGenerations = 0 // unbounded
	DefaultPrintEvery     = 1
	DefaultLogLevel       = "info"
	DefaultConfigFile     = "evolvestring.yaml"

	// Fitness bounds, expressed as a percentage
	MinFitness = 0.0
	MaxFitness = 100.0

	// Exit codes
	ExitSuccess    = 0
	ExitError      = 1
	ExitInterrupt  = 2
	ExitNoConverge = 3
)

// Alphabet contains every symbol a genesis individual may be built from.
// It holds 93 distinct characters.
const Alphabet = " ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz1234567890,./;'[]\\-=!@#$%^&*()_+{}|\":?><"

// Environment variable names
const (
	EnvTarget         = "EVOLVE_TARGET"
	EnvPopulationSize = "EVOLVE_POPULATION_SIZE"
	EnvMutationRate   = "EVOLVE_MUTATION_RATE"
	EnvMaxGenerations = "EVOLVE_MAX_GENERATIONS"
	EnvSeed           = "EVOLVE_SEED"
	EnvVerbose        = "EVOLVE_VERBOSE"
	EnvLogLevel       = "EVOLVE_LOG_LEVEL"
)
