package format

import "strings"

// FormatNumberString inserts comma separators into a decimal digit string,
// grouping digits in threes from the right. A leading sign is preserved.
// Strings containing non-decimal characters are returned unchanged, since
// grouping only makes sense for base-10 output.
//
// Parameters:
//   - s: The number string to format, e.g. "1234567".
//
// Returns:
//   - string: The grouped string, e.g. "1,234,567".
func FormatNumberString(s string) string {
	digits := s
	sign := ""
	if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		sign = digits[:1]
		digits = digits[1:]
	}

	if len(digits) <= 3 {
		return s
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return s
		}
	}

	var b strings.Builder
	b.Grow(len(sign) + len(digits) + (len(digits)-1)/3)
	b.WriteString(sign)

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
