// This file implements adaptive threshold candidate generation based on
// hardware characteristics.

package calibration

import (
	"math/bits"
	"runtime"

	"github.com/agbru/apint/internal/config"
)

// GenerateKaratsubaCandidates generates the Karatsuba threshold candidates
// (in words) to benchmark during calibration.
//
// The crossover sits lower on 64-bit machines because each word carries more
// work, so the recursion overhead is amortized earlier. The static defaults
// are always part of the candidate set so calibration can never settle on a
// value worse than the shipped configuration.
func GenerateKaratsubaCandidates() []int {
	if bits.UintSize == 64 {
		return []int{12, 16, 20, 24, 28, 32, 40}
	}
	return []int{8, 12, 16, 20, 24, 32}
}

// GenerateToom3Candidates generates the Toom-3 threshold candidates (in
// words). Machines with more cores tolerate a lower crossover because the
// extra allocation pressure is spread across more memory bandwidth.
func GenerateToom3Candidates() []int {
	if runtime.NumCPU() >= 4 {
		return []int{128, 160, 192, 224, 256, 320}
	}
	return []int{192, 256, 320, 384}
}

// GenerateDivRecursiveCandidates generates the recursive division threshold
// candidates (in words).
func GenerateDivRecursiveCandidates() []int {
	if bits.UintSize == 64 {
		return []int{16, 24, 32, 40, 48, 64}
	}
	return []int{12, 16, 24, 32, 48}
}

// Threshold estimation without benchmarking delegates to config.Estimate*;
// the canonical implementations live there.

// EstimateKaratsubaThreshold delegates to config.EstimateKaratsubaThreshold.
func EstimateKaratsubaThreshold() int { return config.EstimateKaratsubaThreshold() }

// EstimateToom3Threshold delegates to config.EstimateToom3Threshold.
func EstimateToom3Threshold() int { return config.EstimateToom3Threshold() }

// EstimateDivRecursiveThreshold delegates to config.EstimateDivRecursiveThreshold.
func EstimateDivRecursiveThreshold() int { return config.EstimateDivRecursiveThreshold() }
