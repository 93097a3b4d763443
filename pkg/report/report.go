package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ishanwen-byte/evolvestring-go/internal/types"
)

// StatusLine formats the per-generation progress line
func StatusLine(r types.GenerationReport) string {
	return fmt.Sprintf("generation: %d\t%s\tfitness: %s", r.Generation, r.Best, formatFitness(r.BestFitness))
}

// VerboseLine extends StatusLine with population statistics
func VerboseLine(r types.GenerationReport) string {
	return fmt.Sprintf("%s\tmean: %.2f\tstddev: %.2f\tpool: %d\tmutations: %d",
		StatusLine(r), r.MeanFitness, r.StdDevFitness, r.PoolSize, r.HardMutations)
}

// formatFitness always keeps a fractional digit, so 100 prints as 100.0
func formatFitness(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Printer writes a status line every N generations
type Printer struct {
	w       io.Writer
	every   int
	verbose bool
	printed int
}

// NewPrinter creates a printer. every below 1 prints every generation.
func NewPrinter(w io.Writer, every int, verbose bool) *Printer {
	if every < 1 {
		every = 1
	}
	return &Printer{w: w, every: every, verbose: verbose}
}

// Report prints r when its generation is due
func (p *Printer) Report(r types.GenerationReport) {
	if r.Generation != 1 && r.Generation%p.every != 0 {
		return
	}
	p.print(r)
}

// Flush prints r unless it was the last line printed
func (p *Printer) Flush(r types.GenerationReport) {
	if r.Generation == 0 || r.Generation == p.printed {
		return
	}
	p.print(r)
}

func (p *Printer) print(r types.GenerationReport) {
	line := StatusLine(r)
	if p.verbose {
		line = VerboseLine(r)
	}
	fmt.Fprintln(p.w, line)
	p.printed = r.Generation
}

// Summary renders a table describing a finished run
func Summary(w io.Writer, result *types.RunResult) {
	status := "not converged"
	if result.Converged {
		status = "converged"
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Run %s - Summary", result.ID))
	t.AppendHeader(table.Row{"", "VALUE"})
	t.AppendRows([]table.Row{
		{"Target", strconv.Quote(result.Target)},
		{"Population Size", result.PopulationSize},
		{"Mutation Rate", result.MutationRate},
		{"Seed", result.Seed},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Status", status},
		{"Generations", result.Generations},
		{"Best", strconv.Quote(result.Best)},
		{"Best Fitness", fmt.Sprintf("%0.2f%%", result.BestFitness)},
		{"Best Generation", result.Stats.BestGeneration},
		{"Stagnation", result.Stats.Stagnation},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Avg Mean Fitness", fmt.Sprintf("%0.2f%%", result.Stats.AvgMeanFitness)},
		{"Hard Mutations", result.Stats.HardMutations},
		{"Duration", result.Duration.String()},
	})
	t.Render()
}
