package apint

import (
	"fmt"
	"math"
)

// Nat is an arbitrary-precision unsigned integer. The zero value is the
// number zero and is ready to use. Nat values are immutable: every
// operation returns a fresh value and the receiver is never modified, so a
// Nat may be copied and shared freely across goroutines.
type Nat struct {
	abs nat
}

// NatFromUint64 returns the Nat with the given value.
func NatFromUint64(v uint64) Nat {
	return Nat{abs: natFromUint64(v)}
}

// NatFromLimbs builds a Nat from little-endian limbs. The slice is copied
// and trailing zero limbs are stripped, so any raw limb dump round-trips
// through Limbs.
func NatFromLimbs(limbs []Word) Nat {
	z := make(nat, len(limbs))
	copy(z, limbs)
	return Nat{abs: z.norm()}
}

// Limbs returns the little-endian limbs of x in canonical form (no trailing
// zeros, empty for zero). The slice is a copy.
func (x Nat) Limbs() []Word {
	if len(x.abs) == 0 {
		return nil
	}
	out := make([]Word, len(x.abs))
	copy(out, x.abs)
	return out
}

// ParseNat converts a digit string in the given radix, 2 through 36, parsed
// case-insensitively. No sign or radix prefix is accepted.
func ParseNat(s string, radix int) (Nat, error) {
	abs, err := parseNat(s, radix)
	if err != nil {
		return Nat{}, err
	}
	return Nat{abs: abs}, nil
}

// Uint64 converts x to a uint64, or ErrOverflow if it does not fit.
func (x Nat) Uint64() (uint64, error) {
	v, ok := x.abs.toUint64()
	if !ok {
		return 0, ErrOverflow
	}
	return v, nil
}

func (x Nat) IsZero() bool { return x.abs.isZero() }

// BitLen returns the number of bits needed to represent x; zero for zero.
func (x Nat) BitLen() uint { return x.abs.bitLen() }

// Bit returns bit i of x, counting from the least significant bit.
func (x Nat) Bit(i uint) uint { return x.abs.bit(i) }

// TrailingZeros returns the number of trailing zero bits; zero for zero.
func (x Nat) TrailingZeros() uint { return x.abs.trailingZeros() }

// Cmp returns -1, 0 or 1 as x is less than, equal to or greater than y.
func (x Nat) Cmp(y Nat) int { return x.abs.cmp(y.abs) }

func (x Nat) Add(y Nat) Nat { return Nat{abs: natAdd(x.abs, y.abs)} }

// Sub returns x - y, or ErrUnderflow when y > x.
func (x Nat) Sub(y Nat) (Nat, error) {
	if x.abs.cmp(y.abs) < 0 {
		return Nat{}, ErrUnderflow
	}
	return Nat{abs: natSub(x.abs, y.abs)}, nil
}

func (x Nat) Mul(y Nat) Nat { return Nat{abs: natMul(x.abs, y.abs)} }

// DivRem returns the quotient and remainder of x / y, or ErrDivisionByZero.
func (x Nat) DivRem(y Nat) (q, r Nat, err error) {
	if y.abs.isZero() {
		return Nat{}, Nat{}, ErrDivisionByZero
	}
	qn, rn := natDivRem(x.abs, y.abs)
	return Nat{abs: qn}, Nat{abs: rn}, nil
}

// Pow returns x raised to exp. x.Pow(0) is 1 for every x.
func (x Nat) Pow(exp uint) Nat { return Nat{abs: natPow(x.abs, exp)} }

// Gcd returns the greatest common divisor of x and y; Gcd(0, 0) is 0.
func (x Nat) Gcd(y Nat) Nat { return Nat{abs: natGcd(x.abs, y.abs)} }

func (x Nat) And(y Nat) Nat    { return Nat{abs: natAnd(x.abs, y.abs)} }
func (x Nat) Or(y Nat) Nat     { return Nat{abs: natOr(x.abs, y.abs)} }
func (x Nat) Xor(y Nat) Nat    { return Nat{abs: natXor(x.abs, y.abs)} }
func (x Nat) AndNot(y Nat) Nat { return Nat{abs: natAndNot(x.abs, y.abs)} }

// Lsh returns x shifted left by s bits.
func (x Nat) Lsh(s uint) Nat { return Nat{abs: natShl(x.abs, s)} }

// Rsh returns x shifted right by s bits.
func (x Nat) Rsh(s uint) Nat { return Nat{abs: natShr(x.abs, s)} }

// Float64 converts x to the nearest float64, rounding ties to even.
// ErrOverflow when x rounds beyond the float64 range.
func (x Nat) Float64() (float64, error) {
	n := x.abs.bitLen()
	if n <= 53 {
		v, _ := x.abs.toUint64()
		return float64(v), nil
	}
	if n > 1024 {
		return 0, ErrOverflow
	}
	// Keep 54 bits: a 53-bit mantissa plus the rounding bit, with every
	// discarded lower bit folded into sticky.
	s := n - 54
	top, _ := natShr(x.abs, s).toUint64()
	mant := top >> 1
	if top&1 != 0 && (mant&1 != 0 || x.abs.trailingZeros() < s) {
		mant++
	}
	f := math.Ldexp(float64(mant), int(s)+1)
	if math.IsInf(f, 0) {
		return 0, ErrOverflow
	}
	return f, nil
}

// NatFromFloat64 converts f to a Nat, truncating any fraction toward zero.
// NaN and infinities are ErrOverflow; negative values are ErrUnderflow.
func NatFromFloat64(f float64) (Nat, error) {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return Nat{}, ErrOverflow
	case f < 0:
		return Nat{}, ErrUnderflow
	case f < 1:
		return Nat{}, nil
	}
	frac, exp := math.Frexp(f)
	mant := natFromUint64(uint64(frac * (1 << 53)))
	if e := exp - 53; e >= 0 {
		return Nat{abs: natShl(mant, uint(e))}, nil
	} else {
		return Nat{abs: natShr(mant, uint(-e))}, nil
	}
}

// Text renders x in the given radix using lowercase digits.
func (x Nat) Text(radix int) string { return formatNat(x.abs, radix, false) }

// AppendText appends the radix rendering of x to dst.
func (x Nat) AppendText(dst []byte, radix int) []byte {
	return append(dst, formatNat(x.abs, radix, false)...)
}

// String renders x in base 10.
func (x Nat) String() string { return formatNat(x.abs, 10, false) }

// Format implements fmt.Formatter for the %d, %b, %o, %x, %X, %s and %v
// verbs.
func (x Nat) Format(f fmt.State, verb rune) {
	formatValue(f, verb, false, x.abs)
}

// formatValue is the shared fmt.Formatter body for Nat and Int.
func formatValue(f fmt.State, verb rune, neg bool, abs nat) {
	var s string
	switch verb {
	case 'b':
		s = formatNat(abs, 2, false)
	case 'o':
		s = formatNat(abs, 8, false)
	case 'x':
		s = formatNat(abs, 16, false)
	case 'X':
		s = formatNat(abs, 16, true)
	case 'd', 's', 'v':
		s = formatNat(abs, 10, false)
	default:
		fmt.Fprintf(f, "%%!%c(apint)", verb)
		return
	}
	if neg {
		s = "-" + s
	}
	fmt.Fprint(f, s)
}
