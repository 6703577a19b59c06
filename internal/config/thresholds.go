package config

import (
	"runtime"

	apint "github.com/agbru/apint"
)

// Threshold resolution chain (highest priority first):
//  1. CLI flags (--karatsuba-threshold, --toom3-threshold,
//     --div-recursive-threshold)
//  2. Environment variables (APINT_KARATSUBA_THRESHOLD, etc.)
//  3. Cached calibration profile (~/.apcalc_calibration.json)
//  4. Adaptive hardware estimation (this file)
//  5. Static defaults inside the apint package

// ApplyAdaptiveThresholds fills in thresholds the user left at zero with
// hardware-based estimates, preserving any explicit overrides.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.KaratsubaThreshold == 0 {
		cfg.KaratsubaThreshold = EstimateKaratsubaThreshold()
	}
	if cfg.Toom3Threshold == 0 {
		cfg.Toom3Threshold = EstimateToom3Threshold()
	}
	if cfg.DivRecursiveThreshold == 0 {
		cfg.DivRecursiveThreshold = EstimateDivRecursiveThreshold()
	}
	return cfg
}

// ApplyThresholds pushes the resolved thresholds into the arithmetic engine
// and returns a function restoring the previous values.
func ApplyThresholds(cfg AppConfig) (restore func()) {
	prevK := apint.SetKaratsubaThreshold(cfg.KaratsubaThreshold)
	prevT := apint.SetToom3Threshold(cfg.Toom3Threshold)
	prevD := apint.SetDivRecursiveThreshold(cfg.DivRecursiveThreshold)
	return func() {
		apint.SetKaratsubaThreshold(prevK)
		apint.SetToom3Threshold(prevT)
		apint.SetDivRecursiveThreshold(prevD)
	}
}

// EstimateKaratsubaThreshold provides a heuristic estimate of the schoolbook
// to Karatsuba crossover without running benchmarks. The crossover sits
// lower on 32-bit platforms, where a limb product is cheaper relative to
// the recursion bookkeeping.
func EstimateKaratsubaThreshold() int {
	wordSize := 32 << (^uint(0) >> 63)
	if wordSize == 64 {
		return 24
	}
	return 16
}

// EstimateToom3Threshold provides a heuristic estimate of the Karatsuba to
// Toom-Cook-3 crossover. Toom-3 allocates five evaluation buffers, so the
// crossover rises on machines with few cores where the allocations are not
// amortized by parallel callers.
func EstimateToom3Threshold() int {
	if runtime.NumCPU() >= 4 {
		return 192
	}
	return 256
}

// EstimateDivRecursiveThreshold provides a heuristic estimate of the
// schoolbook to divide-and-conquer division crossover.
func EstimateDivRecursiveThreshold() int {
	wordSize := 32 << (^uint(0) >> 63)
	if wordSize == 64 {
		return 32
	}
	return 24
}
