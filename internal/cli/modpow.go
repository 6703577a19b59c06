package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	apint "github.com/agbru/apint"
	apperrors "github.com/agbru/apint/internal/errors"
)

// modpowCmd computes modular exponentiation in a fixed modular ring.
var modpowCmd = &cobra.Command{
	Use:   "modpow <base> <exp> <mod>",
	Short: "Compute base^exp mod m",
	Long: `Compute base raised to exp, reduced modulo m. All three operands are
non-negative integers parsed in the configured radix. The modulus must be
non-zero. The exponent may itself be arbitrarily large.

Examples:
    apcalc modpow 2 100 1000000007
    apcalc modpow deadbeef ff 10001 --radix 16`,
	Args: cobra.ExactArgs(3),
	RunE: runModPow,
}

func init() {
	rootCmd.AddCommand(modpowCmd)
}

// parseNatArg parses a non-negative operand in the configured radix.
func parseNatArg(name, raw string) (apint.Nat, error) {
	v, err := apint.ParseNat(raw, cfg.Radix)
	if err != nil {
		return apint.Nat{}, apperrors.CalculationError{
			Cause: fmt.Errorf("operand %s %q: %w", name, raw, err),
		}
	}
	return v, nil
}

func runModPow(cmd *cobra.Command, args []string) error {
	base, err := parseNatArg("base", args[0])
	if err != nil {
		return err
	}
	exp, err := parseNatArg("exp", args[1])
	if err != nil {
		return err
	}
	mod, err := parseNatArg("mod", args[2])
	if err != nil {
		return err
	}

	ring, err := apint.NewRing(mod)
	if err != nil {
		return apperrors.CalculationError{Cause: err}
	}

	start := time.Now()
	result := ring.Reduce(base).Pow(exp)
	duration := time.Since(start)

	outputCfg := OutputConfig{
		OutputFile: cfg.OutputFile,
		Quiet:      cfg.Quiet,
		Verbose:    cfg.Verbose,
		Radix:      cfg.Radix,
		Upper:      cfg.Upper,
	}

	expr := fmt.Sprintf("%s^%s mod %s",
		FormatTruncated(args[0]), FormatTruncated(args[1]), FormatTruncated(args[2]))
	return DisplayResultWithConfig(cmd.OutOrStdout(), expr,
		apint.IntFromNat(result.ToNat()), duration, outputCfg)
}
