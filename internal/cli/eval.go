package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	apint "github.com/agbru/apint"
	apperrors "github.com/agbru/apint/internal/errors"
)

// evalCmd evaluates a single binary operation on two arbitrary-precision
// signed integers.
var evalCmd = &cobra.Command{
	Use:   "eval <op> <x> <y>",
	Short: "Evaluate a binary operation on two integers",
	Long: `Evaluate a binary arithmetic operation on two arbitrary-precision
signed integers. Operands are parsed in the configured radix (see --radix).

Operations:
    add   x + y
    sub   x - y
    mul   x * y
    div   truncated quotient of x / y (remainder is also printed)
    mod   remainder of x / y (same sign as x)
    pow   x raised to the non-negative exponent y
    gcd   greatest common divisor of |x| and |y|
    lsh   x shifted left by y bits
    rsh   x shifted right by y bits (arithmetic shift)
    and, or, xor, andnot
          bitwise operations on the two's-complement representations

Examples:
    apcalc eval add 12345678901234567890 98765432109876543210
    apcalc eval mul -291940299 383492
    apcalc eval div ff00 1d --radix 16
    apcalc eval pow 2 4096`,
	// Flags are parsed by runEval so operands with a leading minus sign
	// are not mistaken for flags.
	DisableFlagParsing: true,
	Args:               cobra.ArbitraryArgs,
	RunE:               runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

// parseIntArg parses a signed operand in the configured radix, wrapping
// failures so they map to the compute exit code.
func parseIntArg(name, raw string) (apint.Int, error) {
	v, err := apint.ParseInt(raw, cfg.Radix)
	if err != nil {
		return apint.Int{}, apperrors.CalculationError{
			Cause: fmt.Errorf("operand %s %q: %w", name, raw, err),
		}
	}
	return v, nil
}

// parseShiftArg parses a shift amount or exponent as a plain unsigned decimal.
func parseShiftArg(name, raw string) (uint, error) {
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperrors.ValidationError{Field: name, Message: "must be a non-negative integer"}
	}
	return uint(v), nil
}

// splitEvalArgs separates operand tokens from flag tokens. A token with a
// leading dash counts as a flag only when it is a long flag or a run of
// registered shorthands, so negative operands like -7 pass through. After a
// bare "--" everything is an operand.
func splitEvalArgs(fs *pflag.FlagSet, args []string) (operands, flags []string) {
	noMoreFlags := false
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case noMoreFlags:
			operands = append(operands, a)
		case a == "--":
			noMoreFlags = true
		case strings.HasPrefix(a, "--"):
			flags = append(flags, a)
			if !strings.Contains(a, "=") {
				if f := fs.Lookup(strings.TrimPrefix(a, "--")); f != nil && f.Value.Type() != "bool" && i+1 < len(args) {
					i++
					flags = append(flags, args[i])
				}
			}
		case len(a) > 1 && a[0] == '-' && isShorthandRun(fs, a[1:]):
			flags = append(flags, a)
			if !strings.Contains(a, "=") {
				if f := fs.ShorthandLookup(a[len(a)-1:]); f != nil && f.Value.Type() != "bool" && i+1 < len(args) {
					i++
					flags = append(flags, args[i])
				}
			}
		default:
			operands = append(operands, a)
		}
	}
	return operands, flags
}

// isShorthandRun reports whether every character of s is a registered
// shorthand flag, as in grouped shorthands like -qv.
func isShorthandRun(fs *pflag.FlagSet, s string) bool {
	for _, ch := range s {
		if ch == '=' {
			break
		}
		if ch > 'z' || fs.ShorthandLookup(string(ch)) == nil {
			return false
		}
	}
	return true
}

func runEval(cmd *cobra.Command, args []string) error {
	fs := cmd.Flags()
	fs.AddFlagSet(cmd.InheritedFlags())

	operands, flagArgs := splitEvalArgs(fs, args)
	if err := fs.Parse(flagArgs); err != nil {
		return err
	}
	if help, _ := fs.GetBool("help"); help {
		return cmd.Help()
	}
	if len(operands) != 3 {
		return apperrors.NewConfigError("eval expects exactly 3 arguments: <op> <x> <y>, got %d", len(operands))
	}
	if err := resolveConfig(fs); err != nil {
		return err
	}

	op := operands[0]

	start := time.Now()
	result, remainder, err := evaluate(op, operands[1], operands[2])
	if err != nil {
		return err
	}
	duration := time.Since(start)

	outputCfg := OutputConfig{
		OutputFile: cfg.OutputFile,
		Quiet:      cfg.Quiet,
		Verbose:    cfg.Verbose,
		Radix:      cfg.Radix,
		Upper:      cfg.Upper,
	}

	expr := fmt.Sprintf("%s(%s, %s)", op, FormatTruncated(operands[1]), FormatTruncated(operands[2]))
	if err := DisplayResultWithConfig(cmd.OutOrStdout(), expr, result, duration, outputCfg); err != nil {
		return err
	}
	if remainder != nil && !cfg.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Remainder: %s\n", renderInt(*remainder, outputCfg))
	}
	return nil
}

// evaluate dispatches op to the engine. For div it also returns the
// remainder; all other operations return a nil remainder.
func evaluate(op, rawX, rawY string) (apint.Int, *apint.Int, error) {
	x, err := parseIntArg("x", rawX)
	if err != nil {
		return apint.Int{}, nil, err
	}

	// pow, lsh, rsh take a small unsigned right-hand side
	switch op {
	case "pow":
		exp, err := parseShiftArg("exponent", rawY)
		if err != nil {
			return apint.Int{}, nil, err
		}
		return x.Pow(exp), nil, nil
	case "lsh":
		s, err := parseShiftArg("shift", rawY)
		if err != nil {
			return apint.Int{}, nil, err
		}
		return x.Lsh(s), nil, nil
	case "rsh":
		s, err := parseShiftArg("shift", rawY)
		if err != nil {
			return apint.Int{}, nil, err
		}
		return x.Rsh(s), nil, nil
	}

	y, err := parseIntArg("y", rawY)
	if err != nil {
		return apint.Int{}, nil, err
	}

	switch op {
	case "add":
		return x.Add(y), nil, nil
	case "sub":
		return x.Sub(y), nil, nil
	case "mul":
		return x.Mul(y), nil, nil
	case "div":
		q, r, divErr := x.DivRem(y)
		if divErr != nil {
			return apint.Int{}, nil, apperrors.CalculationError{Cause: divErr}
		}
		return q, &r, nil
	case "mod":
		_, r, divErr := x.DivRem(y)
		if divErr != nil {
			return apint.Int{}, nil, apperrors.CalculationError{Cause: divErr}
		}
		return r, nil, nil
	case "gcd":
		return apint.IntFromNat(x.Gcd(y)), nil, nil
	case "and":
		return x.And(y), nil, nil
	case "or":
		return x.Or(y), nil, nil
	case "xor":
		return x.Xor(y), nil, nil
	case "andnot":
		return x.AndNot(y), nil, nil
	default:
		return apint.Int{}, nil, apperrors.NewConfigError("unknown operation %q", op)
	}
}
