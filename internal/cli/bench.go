package cli

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	apint "github.com/agbru/apint"
	apperrors "github.com/agbru/apint/internal/errors"
	"github.com/agbru/apint/internal/format"
	"github.com/agbru/apint/internal/logging"
	"github.com/agbru/apint/internal/metrics"
	"github.com/agbru/apint/internal/ui"
)

// benchCmd measures engine throughput on randomly generated operands.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the arithmetic engine",
	Long: `Benchmark the core operations (multiplication, division, base-10
formatting, gcd) on uniformly random operands of the configured bit width.
Each operation runs for the configured number of iterations; operations run
concurrently on separate goroutines.

Examples:
    apcalc bench --bits 100000 --iterations 20
    apcalc bench --bits 1048576 --iterations 5 --seed 7`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().IntVar(&cfg.Bits, "bits", cfg.Bits, "bit width of benchmark operands")
	benchCmd.Flags().IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "iterations per operation")
	benchCmd.Flags().Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed for reproducible operands (0 = CSPRNG)")
}

// benchResult holds the timing of one benchmarked operation.
type benchResult struct {
	name       string
	total      time.Duration
	iterations int
}

func (r benchResult) perOp() time.Duration {
	if r.iterations == 0 {
		return 0
	}
	return r.total / time.Duration(r.iterations)
}

func runBench(cmd *cobra.Command, args []string) error {
	if cfg.Bits < 1 {
		return apperrors.ValidationError{Field: "bits", Message: "must be at least 1"}
	}
	if cfg.Iterations < 1 {
		return apperrors.ValidationError{Field: "iterations", Message: "must be at least 1"}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	src := newSource()
	bits := uint(cfg.Bits)
	x := apint.RandomNat(src, bits)
	y := apint.RandomNat(src, bits)
	divisor := apint.RandomNat(src, bits/2+1)
	if divisor.IsZero() {
		divisor = apint.NatFromUint64(1)
	}

	out := cmd.OutOrStdout()
	if !cfg.Quiet {
		fmt.Fprintf(out, "Benchmarking with %s%d%s-bit operands, %s%d%s iterations per operation.\n",
			ui.ColorCyan(), cfg.Bits, ui.ColorReset(), ui.ColorCyan(), cfg.Iterations, ui.ColorReset())
	}

	var sp Spinner = noopSpinner{}
	if !cfg.Quiet {
		sp = newSpinner()
	}
	sp.UpdateSuffix(" benchmarking...")
	sp.Start()

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	start := time.Now()

	benchmarks := []struct {
		name string
		op   func() error
	}{
		{"mul", func() error {
			_ = x.Mul(y)
			return nil
		}},
		{"divrem", func() error {
			_, _, err := x.DivRem(divisor)
			return err
		}},
		{"format10", func() error {
			_ = x.Text(10)
			return nil
		}},
		{"gcd", func() error {
			_ = x.Gcd(y)
			return nil
		}},
	}

	var mu sync.Mutex
	results := make([]benchResult, 0, len(benchmarks))
	done := 0

	g, ctx := errgroup.WithContext(ctx)
	for _, b := range benchmarks {
		g.Go(func() error {
			opStart := time.Now()
			for i := 0; i < cfg.Iterations; i++ {
				if err := ctx.Err(); err != nil {
					return apperrors.TimeoutError{Operation: b.name, Limit: cfg.Timeout}
				}
				if err := b.op(); err != nil {
					return apperrors.CalculationError{Cause: err}
				}
			}
			mu.Lock()
			results = append(results, benchResult{name: b.name, total: time.Since(opStart), iterations: cfg.Iterations})
			done++
			sp.UpdateSuffix(fmt.Sprintf(" benchmarking... %d/%d operations done", done, len(benchmarks)))
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	sp.Stop()
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	delta := collector.Snapshot().Delta(before)

	sort.Slice(results, func(i, j int) bool { return results[i].name < results[j].name })

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%sOperation%s\t%sTotal%s\t%sPer op%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	for _, r := range results {
		fmt.Fprintf(w, "%s%s%s\t%s\t%s\n",
			ui.ColorGreen(), r.name, ui.ColorReset(),
			format.FormatExecutionDuration(r.total),
			format.FormatExecutionDuration(r.perOp()))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "\nTotal wall time: %s%s%s, heap growth: %s%d%s KiB, GC cycles: %s%d%s.\n",
			ui.ColorYellow(), format.FormatExecutionDuration(elapsed), ui.ColorReset(),
			ui.ColorCyan(), delta.HeapAlloc/1024, ui.ColorReset(),
			ui.ColorCyan(), delta.NumGC, ui.ColorReset())
	}

	logger.Info("benchmark complete",
		logging.Int("bits", cfg.Bits),
		logging.Int("iterations", cfg.Iterations),
		logging.String("elapsed", elapsed.String()))
	return nil
}
