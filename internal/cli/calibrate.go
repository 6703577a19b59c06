package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agbru/apint/internal/calibration"
	"github.com/agbru/apint/internal/logging"
)

var calibrateNoSave bool

// calibrateCmd benchmarks threshold candidates on the current machine.
var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Calibrate multiplication and division thresholds",
	Long: `Benchmark candidate values for the Karatsuba, Toom-3, and recursive
division thresholds on this machine and report the fastest ones. The result
is saved as a calibration profile in your home directory so later runs pick
the calibrated thresholds up automatically.

Examples:
    apcalc calibrate
    apcalc calibrate --bits 262144
    apcalc calibrate --no-save`,
	Args: cobra.NoArgs,
	RunE: runCalibrate,
}

func init() {
	rootCmd.AddCommand(calibrateCmd)

	calibrateCmd.Flags().IntVar(&cfg.Bits, "bits", cfg.Bits, "operand size in bits for calibration workloads")
	calibrateCmd.Flags().BoolVar(&calibrateNoSave, "no-save", false, "do not write the calibration profile")
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	profilePath := ""
	if !calibrateNoSave {
		path, err := calibration.DefaultProfilePath()
		if err != nil {
			logger.Debug("profile path unavailable", logging.Err(err))
		} else {
			profilePath = path
		}
	}

	calibrated, err := calibration.Calibrate(ctx, cfg, cmd.OutOrStdout(), profilePath)
	if err != nil {
		return err
	}
	cfg = calibrated
	return nil
}
