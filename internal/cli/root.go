// Package cli implements the apcalc command line interface.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/agbru/apint/internal/calibration"
	"github.com/agbru/apint/internal/config"
	apperrors "github.com/agbru/apint/internal/errors"
	"github.com/agbru/apint/internal/logging"
	"github.com/agbru/apint/internal/ui"
)

var (
	cfg     = config.DefaultConfig()
	noColor bool
	logger  logging.Logger = logging.NewDefaultLogger()

	// restoreThresholds undoes the threshold overrides applied during setup.
	restoreThresholds func()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "apcalc",
	Short: "apcalc - arbitrary-precision integer calculator",
	Long: `apcalc is an arbitrary-precision integer calculator built on a pure Go
bignum engine. It evaluates arithmetic on integers of any size, computes
modular exponentiation, samples uniform random integers, benchmarks the
engine, and can serve the same operations over HTTP.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that parse their own flags call resolveConfig once
		// flag values are actually in place.
		if cmd.DisableFlagParsing {
			return nil
		}
		return resolveConfig(cmd.Flags())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if restoreThresholds != nil {
			restoreThresholds()
			restoreThresholds = nil
		}
	},
}

// resolveConfig finishes configuration after flag parsing: environment
// overrides, theme setup, validation, and the threshold chain (saved
// calibration profile, then adaptive estimates for anything still unset).
func resolveConfig(fs *pflag.FlagSet) error {
	config.ApplyEnvOverrides(&cfg, fs)
	ui.InitTheme(noColor)

	if cfg.Radix < 2 || cfg.Radix > 36 {
		return apperrors.ValidationError{Field: "radix", Message: "must be between 2 and 36"}
	}

	applyCalibrationProfile()
	cfg = config.ApplyAdaptiveThresholds(cfg)
	restoreThresholds = config.ApplyThresholds(cfg)

	if cfg.Verbose {
		logger.Debug("configuration resolved",
			logging.Int("radix", cfg.Radix),
			logging.Int("karatsuba_threshold", cfg.KaratsubaThreshold),
			logging.Int("toom3_threshold", cfg.Toom3Threshold),
			logging.Int("div_recursive_threshold", cfg.DivRecursiveThreshold))
	}
	return nil
}

// profileMaxAge bounds how old a calibration profile may be before it is
// ignored and thresholds fall back to adaptive estimates.
const profileMaxAge = 90 * 24 * time.Hour

// applyCalibrationProfile fills unset thresholds from a saved calibration
// profile, if one exists and still matches this machine. Flags and
// environment variables have already been applied, so only zero values are
// touched.
func applyCalibrationProfile() {
	if cfg.KaratsubaThreshold != 0 && cfg.Toom3Threshold != 0 && cfg.DivRecursiveThreshold != 0 {
		return
	}
	path, err := calibration.DefaultProfilePath()
	if err != nil {
		return
	}
	profile, err := calibration.LoadValidProfile(path, profileMaxAge)
	if err != nil {
		return
	}
	if cfg.KaratsubaThreshold == 0 {
		cfg.KaratsubaThreshold = profile.OptimalKaratsubaThreshold
	}
	if cfg.Toom3Threshold == 0 {
		cfg.Toom3Threshold = profile.OptimalToom3Threshold
	}
	if cfg.DivRecursiveThreshold == 0 {
		cfg.DivRecursiveThreshold = profile.OptimalDivRecursiveThreshold
	}
	if cfg.Verbose {
		logger.Debug("loaded calibration profile", logging.String("profile", profile.String()))
	}
}

// Execute runs the root command and maps any error to an exit code.
// This is called by main.main().
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitCode(err)
	}
	return apperrors.ExitSuccess
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&cfg.Radix, "radix", cfg.Radix, "radix for parsing operands and printing results (2-36)")
	pf.BoolVar(&cfg.Upper, "upper", cfg.Upper, "use uppercase digits for radices above 10")
	pf.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "maximum execution time")
	pf.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable debug logging")
	pf.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "minimal output suitable for scripting")
	pf.StringVarP(&cfg.OutputFile, "output", "o", cfg.OutputFile, "write the result to a file")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
	pf.IntVar(&cfg.KaratsubaThreshold, "karatsuba-threshold", cfg.KaratsubaThreshold, "Karatsuba multiplication threshold in words (0 = auto)")
	pf.IntVar(&cfg.Toom3Threshold, "toom3-threshold", cfg.Toom3Threshold, "Toom-3 multiplication threshold in words (0 = auto)")
	pf.IntVar(&cfg.DivRecursiveThreshold, "div-recursive-threshold", cfg.DivRecursiveThreshold, "recursive division threshold in words (0 = auto)")
}
