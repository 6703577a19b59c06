package format

import (
	"strconv"
	"time"
)

// FormatExecutionDuration renders a duration at a precision suited to its
// magnitude: whole microseconds below a millisecond, whole milliseconds
// below a second, and Go's standard representation beyond that. Engine
// operations on small operands finish in microseconds, so the default
// "1.2345ms"-style output would be mostly noise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: The formatted duration, e.g. "417µs" or "23ms".
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return strconv.FormatInt(d.Microseconds(), 10) + "µs"
	case d < time.Second:
		return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
	default:
		return d.String()
	}
}
