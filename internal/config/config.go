// Package config holds the application configuration for the apcalc CLI and
// the resolution chain that fills it: command-line flags take priority over
// APINT_-prefixed environment variables, which take priority over the
// adaptive hardware estimates and static defaults.
package config

import "time"

// EnvPrefix is prepended to every environment variable read by this package.
const EnvPrefix = "APINT_"

// AppConfig carries all user-tunable settings of the apcalc application.
type AppConfig struct {
	// Radix is the input/output base for parsing and printing, 2..36.
	Radix int
	// Upper selects uppercase digits when formatting above base 10.
	Upper bool
	// Timeout bounds a single command execution.
	Timeout time.Duration
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses all non-result output.
	Quiet bool
	// OutputFile receives the result instead of stdout when set.
	OutputFile string

	// KaratsubaThreshold is the operand size, in limbs, above which
	// multiplication switches from schoolbook to Karatsuba. Zero selects
	// the adaptive estimate.
	KaratsubaThreshold int
	// Toom3Threshold is the operand size above which multiplication
	// switches from Karatsuba to Toom-Cook-3. Zero selects the adaptive
	// estimate.
	Toom3Threshold int
	// DivRecursiveThreshold is the divisor size above which division
	// switches to the divide-and-conquer algorithm. Zero selects the
	// adaptive estimate.
	DivRecursiveThreshold int

	// MetricsAddr is the listen address of the HTTP server started by the
	// serve command.
	MetricsAddr string
	// Iterations is the repetition count for the bench command.
	Iterations int
	// Bits is the operand width for bench and sample commands.
	Bits int
	// Seed seeds the deterministic sampling source; zero means a
	// cryptographic source.
	Seed uint64
}

// DefaultConfig returns the static defaults before environment and flag
// resolution.
func DefaultConfig() AppConfig {
	return AppConfig{
		Radix:       10,
		Timeout:     5 * time.Minute,
		Iterations:  10,
		Bits:        1 << 20,
		MetricsAddr: ":8080",
	}
}
