package apint

import (
	"errors"
	"fmt"
	"math"
)

// Int is an arbitrary-precision signed integer in sign-magnitude form.
// The zero value is the number zero. Zero is never negative, so every
// value has exactly one representation. Like Nat, Int values are
// immutable.
type Int struct {
	neg bool
	abs nat
}

// makeInt normalizes the sign-magnitude pair: zero is always positive.
func makeInt(neg bool, abs nat) Int {
	if abs.isZero() {
		return Int{}
	}
	return Int{neg: neg, abs: abs}
}

// IntFromInt64 returns the Int with the given value.
func IntFromInt64(v int64) Int {
	if v >= 0 {
		return Int{abs: natFromUint64(uint64(v))}
	}
	return Int{neg: true, abs: natFromUint64(uint64(-(v + 1)) + 1)}
}

// IntFromNat returns the nonnegative Int with magnitude x.
func IntFromNat(x Nat) Int {
	return Int{abs: x.abs.clone()}
}

// ParseInt converts a digit string with an optional leading '+' or '-'.
// Digit positions reported by InvalidDigitError are offsets into the full
// input string, sign included.
func ParseInt(s string, radix int) (Int, error) {
	neg := false
	body := s
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		body = s[1:]
	}
	abs, err := parseNat(body, radix)
	if err != nil {
		var inv *InvalidDigitError
		if len(body) < len(s) && errors.As(err, &inv) {
			inv.Pos++
		}
		return Int{}, err
	}
	return makeInt(neg, abs), nil
}

// Int64 converts x to an int64, or ErrOverflow if it does not fit.
func (x Int) Int64() (int64, error) {
	v, ok := x.abs.toUint64()
	if !ok {
		return 0, ErrOverflow
	}
	if x.neg {
		if v > 1<<63 {
			return 0, ErrOverflow
		}
		return -int64(v-1) - 1, nil
	}
	if v > math.MaxInt64 {
		return 0, ErrOverflow
	}
	return int64(v), nil
}

func (x Int) IsZero() bool { return x.abs.isZero() }

// Sign returns -1, 0 or 1 as x is negative, zero or positive.
func (x Int) Sign() int {
	switch {
	case x.abs.isZero():
		return 0
	case x.neg:
		return -1
	}
	return 1
}

// Abs returns the magnitude of x.
func (x Int) Abs() Nat { return Nat{abs: x.abs.clone()} }

// Neg returns -x.
func (x Int) Neg() Int { return makeInt(!x.neg, x.abs.clone()) }

// Cmp returns -1, 0 or 1 as x is less than, equal to or greater than y.
func (x Int) Cmp(y Int) int {
	if x.neg != y.neg {
		if x.neg {
			return -1
		}
		return 1
	}
	c := x.abs.cmp(y.abs)
	if x.neg {
		return -c
	}
	return c
}

// Add returns x + y. Same signs add magnitudes; mixed signs subtract the
// smaller magnitude from the larger, which contributes the sign.
func (x Int) Add(y Int) Int {
	if x.neg == y.neg {
		return makeInt(x.neg, natAdd(x.abs, y.abs))
	}
	d, flip := natSubSigned(x.abs, y.abs)
	return makeInt(x.neg != flip, d)
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int {
	if x.neg != y.neg {
		return makeInt(x.neg, natAdd(x.abs, y.abs))
	}
	d, flip := natSubSigned(x.abs, y.abs)
	return makeInt(x.neg != flip, d)
}

// Mul returns x * y.
func (x Int) Mul(y Int) Int {
	return makeInt(x.neg != y.neg, natMul(x.abs, y.abs))
}

// DivRem returns the quotient and remainder of x / y, or ErrDivisionByZero.
// The quotient truncates toward zero and the remainder carries the sign of
// the dividend, so x = q*y + r with |r| < |y| always holds.
func (x Int) DivRem(y Int) (q, r Int, err error) {
	if y.abs.isZero() {
		return Int{}, Int{}, ErrDivisionByZero
	}
	qn, rn := natDivRem(x.abs, y.abs)
	return makeInt(x.neg != y.neg, qn), makeInt(x.neg, rn), nil
}

// Pow returns x raised to exp. x.Pow(0) is 1 for every x.
func (x Int) Pow(exp uint) Int {
	return makeInt(x.neg && exp&1 == 1, natPow(x.abs, exp))
}

// Gcd returns the greatest common divisor of the magnitudes of x and y.
func (x Int) Gcd(y Int) Nat { return Nat{abs: natGcd(x.abs, y.abs)} }

// ExtendedGcd returns g = gcd(|x|, |y|) together with coefficients a, b
// satisfying a*x + b*y = g.
func (x Int) ExtendedGcd(y Int) (g Nat, a, b Int) {
	r0, r1 := x.abs, y.abs
	s0, s1 := IntFromInt64(1), Int{}
	t0, t1 := Int{}, IntFromInt64(1)
	for !r1.isZero() {
		qn, rn := natDivRem(r0, r1)
		q := Int{abs: qn}
		r0, r1 = r1, rn
		s0, s1 = s1, s0.Sub(q.Mul(s1))
		t0, t1 = t1, t0.Sub(q.Mul(t1))
	}
	if x.neg {
		s0 = s0.Neg()
	}
	if y.neg {
		t0 = t0.Neg()
	}
	return Nat{abs: r0.clone()}, s0, t0
}

// Lsh returns x shifted left by s bits.
func (x Int) Lsh(s uint) Int { return makeInt(x.neg, natShl(x.abs, s)) }

// Rsh returns x shifted right by s bits, rounding toward negative infinity.
// For negative x this uses -((|x|-1)>>s + 1), the two's-complement
// arithmetic shift.
func (x Int) Rsh(s uint) Int {
	if !x.neg {
		return Int{abs: natShr(x.abs, s)}
	}
	t := natShr(natSub1(x.abs), s)
	return makeInt(true, natAdd1(t))
}

// The bitwise operations treat negative values as infinite two's-complement
// bit strings: -m reads as ^(m-1) with an endless run of high one bits.
// Each case below falls out of that identity.

// And returns x & y.
func (x Int) And(y Int) Int {
	switch {
	case !x.neg && !y.neg:
		return Int{abs: natAnd(x.abs, y.abs)}
	case x.neg && y.neg:
		return makeInt(true, natAdd1(natOr(natSub1(x.abs), natSub1(y.abs))))
	case y.neg:
		return Int{abs: natAndNot(x.abs, natSub1(y.abs))}
	}
	return Int{abs: natAndNot(y.abs, natSub1(x.abs))}
}

// Or returns x | y.
func (x Int) Or(y Int) Int {
	switch {
	case !x.neg && !y.neg:
		return Int{abs: natOr(x.abs, y.abs)}
	case x.neg && y.neg:
		return makeInt(true, natAdd1(natAnd(natSub1(x.abs), natSub1(y.abs))))
	case y.neg:
		return makeInt(true, natAdd1(natAndNot(natSub1(y.abs), x.abs)))
	}
	return makeInt(true, natAdd1(natAndNot(natSub1(x.abs), y.abs)))
}

// Xor returns x ^ y.
func (x Int) Xor(y Int) Int {
	switch {
	case !x.neg && !y.neg:
		return Int{abs: natXor(x.abs, y.abs)}
	case x.neg && y.neg:
		return Int{abs: natXor(natSub1(x.abs), natSub1(y.abs))}
	case y.neg:
		return makeInt(true, natAdd1(natXor(x.abs, natSub1(y.abs))))
	}
	return makeInt(true, natAdd1(natXor(natSub1(x.abs), y.abs)))
}

// Not returns ^x, which equals -(x + 1).
func (x Int) Not() Int {
	if x.neg {
		return Int{abs: natSub1(x.abs)}
	}
	return makeInt(true, natAdd1(x.abs))
}

// AndNot returns x &^ y.
func (x Int) AndNot(y Int) Int {
	switch {
	case !x.neg && !y.neg:
		return Int{abs: natAndNot(x.abs, y.abs)}
	case x.neg && y.neg:
		return Int{abs: natAndNot(natSub1(y.abs), natSub1(x.abs))}
	case y.neg:
		return Int{abs: natAnd(x.abs, natSub1(y.abs))}
	}
	return makeInt(true, natAdd1(natOr(natSub1(x.abs), y.abs)))
}

// Float64 converts x to the nearest float64, rounding ties to even.
func (x Int) Float64() (float64, error) {
	f, err := Nat{abs: x.abs}.Float64()
	if err != nil {
		return 0, err
	}
	if x.neg {
		f = -f
	}
	return f, nil
}

// IntFromFloat64 converts f to an Int, truncating any fraction toward
// zero. NaN and infinities are ErrOverflow.
func IntFromFloat64(f float64) (Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Int{}, ErrOverflow
	}
	mag, err := NatFromFloat64(math.Abs(f))
	if err != nil {
		return Int{}, err
	}
	return makeInt(math.Signbit(f), mag.abs), nil
}

// Text renders x in the given radix using lowercase digits, with a leading
// minus sign when negative.
func (x Int) Text(radix int) string {
	s := formatNat(x.abs, radix, false)
	if x.neg {
		return "-" + s
	}
	return s
}

// AppendText appends the radix rendering of x to dst.
func (x Int) AppendText(dst []byte, radix int) []byte {
	if x.neg {
		dst = append(dst, '-')
	}
	return append(dst, formatNat(x.abs, radix, false)...)
}

// String renders x in base 10.
func (x Int) String() string { return x.Text(10) }

// Format implements fmt.Formatter for the %d, %b, %o, %x, %X, %s and %v
// verbs.
func (x Int) Format(f fmt.State, verb rune) {
	formatValue(f, verb, x.neg, x.abs)
}
