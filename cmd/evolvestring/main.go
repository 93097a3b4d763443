package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ishanwen-byte/evolvestring-go/internal/constants"
	"github.com/ishanwen-byte/evolvestring-go/internal/types"
	"github.com/ishanwen-byte/evolvestring-go/pkg/config"
	"github.com/ishanwen-byte/evolvestring-go/pkg/evolution"
	"github.com/ishanwen-byte/evolvestring-go/pkg/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, err)
	}
	stop()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return constants.ExitSuccess
	case errors.Is(err, evolution.ErrGenerationLimit):
		return constants.ExitNoConverge
	case errors.Is(err, context.Canceled):
		return constants.ExitInterrupt
	default:
		return constants.ExitError
	}
}

type options struct {
	configPath  string
	initConfig  string
	version     bool
	interactive bool
	envFiles    []string
	set         map[string]bool

	target         string
	size           int
	rate           float64
	maxGenerations int
	seed           int64
	reportPath     string
	printEvery     int
	verbose        bool
	summary        bool
	logLevel       string
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	opts := &options{set: make(map[string]bool)}

	fs := flag.NewFlagSet("evolvestring", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&opts.initConfig, "init-config", "", "write a default YAML config to this path and exit")
	fs.BoolVar(&opts.version, "version", false, "print the version and exit")
	fs.BoolVar(&opts.interactive, "interactive", false, "prompt for target, population size and mutation rate")
	fs.StringVar(&opts.target, "target", "", "target string to evolve")
	fs.IntVar(&opts.size, "size", constants.DefaultPopulationSize, "population size (~1000 recommended)")
	fs.Float64Var(&opts.rate, "rate", constants.DefaultMutationRate, "mutation rate (between 0.01 and 0.05 recommended)")
	fs.IntVar(&opts.maxGenerations, "max-generations", constants.DefaultMaxGenerations, "stop after this many generations, 0 for no limit")
	fs.Int64Var(&opts.seed, "seed", 0, "random seed, 0 for a time-based seed")
	fs.StringVar(&opts.reportPath, "report", "", "write a JSON run report to this path")
	fs.IntVar(&opts.printEvery, "print-every", constants.DefaultPrintEvery, "print a status line every N generations")
	fs.BoolVar(&opts.verbose, "verbose", false, "include population statistics in status lines")
	fs.BoolVar(&opts.summary, "summary", true, "print a summary table when the run ends")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	envFiles := fs.String("env", ".env.local,.env", "comma separated dotenv files to load when present")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	for _, name := range strings.Split(*envFiles, ",") {
		if name = strings.TrimSpace(name); name != "" {
			opts.envFiles = append(opts.envFiles, name)
		}
	}

	return opts, nil
}

func loadEnv(filenames ...string) error {
	for _, filename := range filenames {
		if s, err := os.Stat(filename); err == nil && !s.IsDir() {
			if err := godotenv.Load(filename); err != nil {
				return fmt.Errorf("failed to load %s: %w", filename, err)
			}
		}
	}
	return nil
}

// loadConfig layers defaults, config file or environment, then flags
func loadConfig(opts *options) (*types.Config, error) {
	manager := config.NewManager()
	if opts.configPath != "" {
		if err := manager.Load(opts.configPath); err != nil {
			return nil, err
		}
	} else if err := manager.LoadEnv(); err != nil {
		return nil, err
	}

	cfg := manager.GetConfig()
	if opts.set["target"] {
		cfg.Evolution.Target = opts.target
	}
	if opts.set["size"] {
		cfg.Evolution.PopulationSize = opts.size
	}
	if opts.set["rate"] {
		cfg.Evolution.MutationRate = opts.rate
	}
	if opts.set["max-generations"] {
		cfg.Evolution.MaxGenerations = opts.maxGenerations
	}
	if opts.set["seed"] {
		cfg.Evolution.Seed = opts.seed
	}
	if opts.set["report"] {
		cfg.Output.ReportPath = opts.reportPath
	}
	if opts.set["print-every"] {
		cfg.Output.PrintEvery = opts.printEvery
	}
	if opts.set["verbose"] {
		cfg.Output.Verbose = opts.verbose
	}
	if opts.set["summary"] {
		cfg.Output.Summary = opts.summary
	}
	if opts.set["log-level"] {
		cfg.Output.LogLevel = opts.logLevel
	}

	return cfg, nil
}

// prompt asks for the three run inputs. An empty answer keeps the current value.
func prompt(in io.Reader, out io.Writer, cfg *types.EvolutionConfig) error {
	reader := bufio.NewReader(in)

	ask := func(question string) (string, error) {
		fmt.Fprint(out, question)
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	target, err := ask("Target String: ")
	if err != nil {
		return err
	}
	if target != "" {
		cfg.Target = target
	}

	size, err := ask("Population Size (~1000 recommended): ")
	if err != nil {
		return err
	}
	if size = strings.TrimSpace(size); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil {
			return fmt.Errorf("invalid population size %q: %w", size, err)
		}
		cfg.PopulationSize = n
	}

	rate, err := ask("Mutation Rate (between 0.01 and 0.05 recommended): ")
	if err != nil {
		return err
	}
	if rate = strings.TrimSpace(rate); rate != "" {
		r, err := strconv.ParseFloat(rate, 64)
		if err != nil {
			return fmt.Errorf("invalid mutation rate %q: %w", rate, err)
		}
		cfg.MutationRate = r
	}

	return nil
}

func newLogger(level string) (*logrus.Logger, error) {
	logger := logrus.New()
	if level == "" {
		level = constants.DefaultLogLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(lvl)
	return logger, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	if opts.version {
		fmt.Fprintf(stdout, "%s %s - %s\n", constants.Name, constants.Version, constants.Description)
		return nil
	}

	if opts.initConfig != "" {
		if err := config.CreateDefaultConfig(opts.initConfig); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote default configuration to %s\n", opts.initConfig)
		return nil
	}

	if err := loadEnv(opts.envFiles...); err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if opts.interactive {
		if err := prompt(stdin, stdout, &cfg.Evolution); err != nil {
			return err
		}
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Output.LogLevel)
	if err != nil {
		return err
	}

	printer := report.NewPrinter(stdout, cfg.Output.PrintEvery, cfg.Output.Verbose)
	runner, err := evolution.NewRunner(*cfg,
		evolution.WithLogger(logger),
		evolution.WithReporter(printer),
	)
	if err != nil {
		return err
	}

	result, runErr := runner.Run(ctx)
	if result == nil {
		return runErr
	}
	printer.Flush(result.Last)

	if cfg.Output.Summary {
		report.Summary(stdout, result)
	}

	if cfg.Output.ReportPath != "" {
		data, err := evolution.ToJSON(result)
		if err != nil {
			return fmt.Errorf("failed to marshal run report: %w", err)
		}
		if err := os.WriteFile(cfg.Output.ReportPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write run report: %w", err)
		}
		logger.WithField("file", cfg.Output.ReportPath).Info("Saved run report")
	}

	return runErr
}
