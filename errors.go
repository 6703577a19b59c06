package apint

import (
	"errors"
	"fmt"
)

// Recoverable conditions are reported as error values. Usage errors such as
// cross-ring element mixing or an out-of-range radix panic instead.
var (
	// ErrDivisionByZero is returned by the checked division operations
	// when the divisor is zero.
	ErrDivisionByZero = errors.New("apint: division by zero")

	// ErrNoDigits is returned when a parsed string contains no digits.
	ErrNoDigits = errors.New("apint: no digits")

	// ErrOverflow is returned when a value does not fit the requested
	// fixed-width or floating-point destination.
	ErrOverflow = errors.New("apint: overflow")

	// ErrUnderflow is returned when an unsigned subtraction would
	// produce a negative result.
	ErrUnderflow = errors.New("apint: underflow")
)

// InvalidDigitError reports the first byte of a parsed string that is not a
// valid digit in the requested radix.
type InvalidDigitError struct {
	Radix int
	Pos   int
}

func (e *InvalidDigitError) Error() string {
	return fmt.Sprintf("apint: invalid digit for radix %d at position %d", e.Radix, e.Pos)
}
