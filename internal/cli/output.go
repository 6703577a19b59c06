// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatTruncated], [FormatNumberString].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	apint "github.com/agbru/apint"
	"github.com/agbru/apint/internal/format"
	"github.com/agbru/apint/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses everything except the result value.
	Quiet bool
	// Verbose shows the full result value regardless of its length.
	Verbose bool
	// Radix is the base used to render the result (2 to 36).
	Radix int
	// Upper selects uppercase digits for radices above 10.
	Upper bool
}

// renderInt formats a result in the configured radix and case.
func renderInt(result apint.Int, config OutputConfig) string {
	text := result.Text(config.Radix)
	if config.Upper && config.Radix > 10 {
		text = strings.ToUpper(text)
	}
	return text
}

// FormatTruncated shortens a long digit string for terminal display, keeping
// DisplayEdges digits on each side. Strings at or below TruncationLimit
// digits are returned unchanged.
//
// Parameters:
//   - s: The digit string to shorten.
//
// Returns:
//   - string: The original or truncated string.
func FormatTruncated(s string) string {
	if len(s) <= TruncationLimit {
		return s
	}
	return fmt.Sprintf("%s...%s (%d digits)", s[:DisplayEdges], s[len(s)-DisplayEdges:], len(s))
}

// WriteResultToFile writes a calculation result to a file.
//
// Parameters:
//   - result: The computed value.
//   - expr: A human-readable description of the evaluated expression.
//   - duration: The calculation duration.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(result apint.Int, expr string, duration time.Duration, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	text := renderInt(result, config)

	// Write header
	fmt.Fprintf(file, "# apcalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Radix: %d\n", config.Radix)
	fmt.Fprintf(file, "# Bits: %d\n", result.Abs().BitLen())
	fmt.Fprintf(file, "# Digits: %d\n", len(text))
	fmt.Fprintf(file, "\n")

	// Write result
	fmt.Fprintf(file, "%s =\n%s\n", expr, text)

	return nil
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
//
// Parameters:
//   - out: The output writer.
//   - result: The computed value.
//   - config: Output configuration.
func DisplayQuietResult(out io.Writer, result apint.Int, config OutputConfig) {
	fmt.Fprintln(out, renderInt(result, config))
}

// DisplayResult displays a result with colorized headers, duration, and size
// information. Long values are truncated unless verbose output is enabled.
// Decimal results get thousands separators when short enough to display whole.
//
// Parameters:
//   - out: The output writer.
//   - expr: A human-readable description of the evaluated expression.
//   - result: The computed value.
//   - duration: The calculation duration.
//   - config: Output configuration.
func DisplayResult(out io.Writer, expr string, result apint.Int, duration time.Duration, config OutputConfig) {
	text := renderInt(result, config)

	display := text
	switch {
	case config.Verbose:
		// full value, as-is
	case config.Radix == 10 && len(text) <= TruncationLimit:
		display = FormatNumberString(text)
	default:
		display = FormatTruncated(text)
	}

	fmt.Fprintf(out, "%s%s%s = %s\n", ui.ColorMagenta(), expr, ui.ColorReset(), display)
	fmt.Fprintf(out, "Computed in %s%s%s (%s%d%s bits, %s%d%s digits in base %d).\n",
		ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset(),
		ui.ColorCyan(), result.Abs().BitLen(), ui.ColorReset(),
		ui.ColorCyan(), len(text), ui.ColorReset(), config.Radix)
}

// DisplayResultWithConfig displays a result honoring quiet mode and optional
// file output. This is the unified entry point used by the commands.
//
// Parameters:
//   - out: The output writer.
//   - expr: A human-readable description of the evaluated expression.
//   - result: The computed value.
//   - duration: The calculation duration.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, expr string, result apint.Int, duration time.Duration, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result, config)
	} else {
		DisplayResult(out, expr, result, duration, config)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(result, expr, duration, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}
