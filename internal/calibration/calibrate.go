package calibration

import (
	"context"
	"fmt"
	"io"
	"time"

	apint "github.com/agbru/apint"
	"github.com/agbru/apint/internal/config"
)

// DefaultCalibrationBits is the operand size used for calibration runs. It
// is large enough that all three thresholds are actually exercised.
const DefaultCalibrationBits = 1 << 18

// calibrationResult records one measured candidate.
type calibrationResult struct {
	Threshold int
	Duration  time.Duration
	Err       error
}

// tunable describes one threshold being calibrated: how to generate its
// candidates, how to force a candidate into the engine, and the workload
// that exercises it.
type tunable struct {
	name       string
	candidates func() []int
	set        func(int) int
	workload   func()
}

// Calibrate benchmarks threshold candidates and fills cfg with the best
// values found. The previous engine thresholds are restored before
// returning; callers apply the returned configuration themselves. Progress
// and results are written to out. When profilePath is non-empty the result
// is also persisted there for reuse by later runs.
func Calibrate(ctx context.Context, cfg config.AppConfig, out io.Writer, profilePath string) (config.AppConfig, error) {
	bits := cfg.Bits
	if bits <= 0 {
		bits = DefaultCalibrationBits
	}

	src := fixedSource(0x9e3779b97f4a7c15)
	x := apint.RandomNat(&src, uint(bits))
	y := apint.RandomNat(&src, uint(bits))
	d := apint.RandomNat(&src, uint(bits/2+1))
	if d.IsZero() {
		d = apint.NatFromUint64(1)
	}

	start := time.Now()

	tunables := []tunable{
		{
			name:       "Karatsuba",
			candidates: GenerateKaratsubaCandidates,
			set:        apint.SetKaratsubaThreshold,
			workload:   func() { _ = x.Mul(y) },
		},
		{
			name:       "Toom-3",
			candidates: GenerateToom3Candidates,
			set:        apint.SetToom3Threshold,
			workload:   func() { _ = x.Mul(y) },
		},
		{
			name:       "Recursive division",
			candidates: GenerateDivRecursiveCandidates,
			set:        apint.SetDivRecursiveThreshold,
			workload:   func() { _, _, _ = x.DivRem(d) },
		},
	}

	best := make([]int, len(tunables))
	for i, tn := range tunables {
		fmt.Fprintf(out, "\nCalibrating %s threshold (%d-bit operands)...\n", tn.name, bits)

		results, bestThreshold, err := calibrateOne(ctx, tn)
		if err != nil {
			return cfg, err
		}
		printCalibrationResults(out, results, bestThreshold)
		best[i] = bestThreshold
	}

	cfg.KaratsubaThreshold = best[0]
	cfg.Toom3Threshold = best[1]
	cfg.DivRecursiveThreshold = best[2]

	printCalibrationOutput(cfg, out)

	profile := NewProfile()
	profile.OptimalKaratsubaThreshold = cfg.KaratsubaThreshold
	profile.OptimalToom3Threshold = cfg.Toom3Threshold
	profile.OptimalDivRecursiveThreshold = cfg.DivRecursiveThreshold
	profile.CalibrationBits = bits
	profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()

	if profilePath != "" {
		if err := profile.SaveProfile(profilePath); err != nil {
			fmt.Fprintf(out, "Warning: could not save profile: %v\n", err)
		} else {
			fmt.Fprintf(out, "Profile saved to %s\n", profilePath)
		}
	}

	return cfg, nil
}

// calibrateOne measures every candidate of a single tunable and returns the
// per-candidate timings plus the fastest threshold.
func calibrateOne(ctx context.Context, tn tunable) ([]calibrationResult, int, error) {
	candidates := tn.candidates()
	results := make([]calibrationResult, 0, len(candidates))

	bestThreshold := candidates[0]
	bestDuration := time.Duration(-1)

	for _, threshold := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		prev := tn.set(threshold)
		elapsed := timeWorkload(tn.workload)
		tn.set(prev)

		results = append(results, calibrationResult{Threshold: threshold, Duration: elapsed})
		if bestDuration < 0 || elapsed < bestDuration {
			bestDuration = elapsed
			bestThreshold = threshold
		}
	}

	return results, bestThreshold, nil
}

// calibrationRounds is the number of repetitions per candidate; the fastest
// round is kept to reduce scheduler noise.
const calibrationRounds = 3

func timeWorkload(workload func()) time.Duration {
	best := time.Duration(-1)
	for i := 0; i < calibrationRounds; i++ {
		start := time.Now()
		workload()
		elapsed := time.Since(start)
		if best < 0 || elapsed < best {
			best = elapsed
		}
	}
	return best
}

// fixedSource is a splitmix64 generator used so calibration operands are
// identical across runs and machines.
type fixedSource uint64

func (s *fixedSource) Uint64() uint64 {
	*s += 0x9e3779b97f4a7c15
	z := uint64(*s)
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
