// Division suite: quotient and remainder are produced jointly. Single-word
// divisors use a precomputed reciprocal, short divisors use schoolbook long
// division (Knuth's algorithm D with a 3-by-2 trial digit), and long
// divisors use a divide-and-conquer scheme that reduces the dividend in
// blocks against a leading prefix of the divisor, falling back to the
// schoolbook routine at the recursion base case.

package apint

import "math/bits"

// divRecursiveThreshold is the divisor (or quotient) limb length at or below
// which schoolbook division is used.
var divRecursiveThreshold = 32

// SetDivRecursiveThreshold sets the divide-and-conquer division threshold,
// returning the previous value.
func SetDivRecursiveThreshold(n int) int {
	prev := divRecursiveThreshold
	divRecursiveThreshold = n
	return prev
}

// natDivByWord returns (x / d, x % d) for a nonzero single-word divisor.
func natDivByWord(x nat, d Word) (nat, Word) {
	if d == 0 {
		panic("apint: division by zero magnitude")
	}
	if len(x) == 0 {
		return nil, 0
	}
	if d&(d-1) == 0 {
		s := uint(bits.TrailingZeros(d))
		return natShr(x, s), x[0] & (d - 1)
	}
	f := newFastDiv(d)
	z := make(nat, len(x))
	r := shlVU(z, x, f.shift)
	for i := len(z) - 1; i >= 0; i-- {
		z[i], r = f.rc.divWW(r, z[i])
	}
	return z.norm(), r >> f.shift
}

// natRemByWord returns x % d for a nonzero single-word divisor.
func natRemByWord(x nat, d Word) Word {
	if d == 0 {
		panic("apint: division by zero magnitude")
	}
	if len(x) == 0 {
		return 0
	}
	if d&(d-1) == 0 {
		return x[0] & (d - 1)
	}
	// Reduce by the normalized divisor first: the running remainder is
	// x mod (d << shift), which one final shifted division maps to x mod d.
	f := newFastDiv(d)
	var r Word
	for i := len(x) - 1; i >= 0; i-- {
		_, r = f.rc.divWW(r, x[i])
	}
	_, r = f.rc.divWW(r>>(_W-f.shift), r<<f.shift)
	return r >> f.shift
}

// natDivRem returns (floor(x/y), x - floor(x/y)*y). y must be nonzero; the
// public layer reports ErrDivisionByZero before reaching this point.
func natDivRem(x, y nat) (q, r nat) {
	if len(y) == 0 {
		panic("apint: division by zero magnitude")
	}
	if x.cmp(y) < 0 {
		return nil, x.clone()
	}
	if len(y) == 1 {
		q, rw := natDivByWord(x, y[0])
		return q, natFromWord(rw)
	}

	// Normalize so the divisor's top limb has its high bit set, and give
	// the dividend one extra limb of headroom.
	n := len(y)
	shift := uint(bits.LeadingZeros(y[n-1]))
	yn := make(nat, n)
	shlVU(yn, y, shift)
	rc := newReciprocal(yn[n-1])

	lhs := make(nat, len(x)+1)
	lhs[len(x)] = shlVU(lhs[:len(x)], x, shift)
	lhs = lhs.norm()

	carry := divRemInPlace(lhs, yn, rc)

	qn := len(lhs) - n
	if carry {
		q = make(nat, qn+1)
		copy(q, lhs[n:])
		q[qn] = 1
	} else {
		q = make(nat, qn)
		copy(q, lhs[n:])
	}
	r = natShr(nat(lhs[:n]).norm(), shift)
	return q.norm(), r
}

// divRemInPlace divides lhs by the normalized divisor rhs, leaving the
// remainder in lhs[:len(rhs)] and the quotient in lhs[len(rhs):]. The
// returned carry is a quotient overflow of at most 1.
func divRemInPlace(lhs, rhs nat, rc reciprocal) bool {
	if len(rhs) <= divRecursiveThreshold || len(lhs)-len(rhs) <= divRecursiveThreshold {
		return divBasicInPlace(lhs, rhs, rc)
	}
	return divRecursiveInPlace(lhs, rhs, rc)
}

// divBasicInPlace is schoolbook long division (TAOCP 4.3.1 algorithm D).
// One quotient limb per step: a 2-by-1 reciprocal estimate refined with the
// divisor's second limb, then corrected by at most one adjustment after the
// multiply-subtract. rhs must have at least 2 limbs and a set top bit.
func divBasicInPlace(lhs, rhs nat, rc reciprocal) bool {
	n := len(rhs)
	rhs0, rhs1 := rhs[n-1], rhs[n-2]
	lhsLen := len(lhs)

	carry := false
	if cmpVV(lhs[lhsLen-n:], rhs) >= 0 {
		subVV(lhs[lhsLen-n:], lhs[lhsLen-n:], rhs)
		carry = true
	}

	for lhsLen > n {
		lhs0 := lhs[lhsLen-1]
		lhs1 := lhs[lhsLen-2]
		lhs2 := lhs[lhsLen-3]

		// Trial digit from the top two dividend limbs; may be too large,
		// never too small. Refine with the divisor's second limb: overshoot
		// survives at most twice before r overflows.
		var q Word
		if lhs0 < rhs0 {
			var r Word
			q, r = rc.divWW(lhs0, lhs1)
			for {
				hi, lo := bits.Mul(q, rhs1)
				if hi < r || (hi == r && lo <= lhs2) {
					break
				}
				q--
				r2, c := bits.Add(r, rhs0, 0)
				if c != 0 {
					break
				}
				r = r2
			}
		} else {
			q = ^Word(0)
		}

		borrow := subMulVVW(lhs[lhsLen-1-n:lhsLen-1], rhs, q)
		if borrow > lhs0 {
			// q was one too large; add the divisor back.
			q--
			c := addVV(lhs[lhsLen-1-n:lhsLen-1], lhs[lhsLen-1-n:lhsLen-1], rhs)
			borrow -= c
		}
		if borrow != lhs0 {
			panic("apint: long division borrow mismatch")
		}
		lhsLen--
		lhs[lhsLen] = q
	}
	return carry
}

// divRecursiveInPlace reduces the dividend in blocks of the divisor's
// length. Each 2n-by-n block division recurses on a leading prefix of the
// divisor, then repairs the remainder with a single unbalanced multiply, so
// no full-length multiply against the whole divisor is ever repeated.
func divRecursiveInPlace(lhs, rhs nat, rc reciprocal) bool {
	n := len(rhs)
	m := len(lhs)

	carry := false
	for m >= 2*n {
		if divRemSameLen(lhs[m-2*n:m], rhs, rc) {
			if m != len(lhs) {
				panic("apint: quotient overflow in divisor-length block")
			}
			carry = true
		}
		m -= n
	}
	if m > n {
		if divRemSmallQuotient(lhs[:m], rhs, rc) {
			if m != len(lhs) {
				panic("apint: quotient overflow in divisor-length block")
			}
			carry = true
		}
	}
	return carry
}

// divRemSameLen divides a 2n-limb block by the n-limb divisor in two halves,
// re-using the remainder of the high half as the top of the low half.
func divRemSameLen(lhs, rhs nat, rc reciprocal) bool {
	n := len(rhs)
	nLo := n / 2

	carry := divRemSmallQuotient(lhs[nLo:], rhs, rc)
	if divRemSmallQuotient(lhs[:n+nLo], rhs, rc) {
		panic("apint: quotient overflow in low half")
	}
	return carry
}

// divRemSmallQuotient divides lhs by rhs where the quotient has fewer limbs
// than the divisor. The quotient is approximated with the divisor's leading
// prefix, then the remainder is repaired by subtracting q times the ignored
// tail; the approximation is at most 2 too large.
func divRemSmallQuotient(lhs, rhs nat, rc reciprocal) bool {
	n := len(rhs)
	m := len(lhs) - n
	if m <= divRecursiveThreshold {
		return divBasicInPlace(lhs, rhs, rc)
	}

	qCarry := 0
	if divRemSameLen(lhs[n-m:], rhs[n-m:], rc) {
		qCarry = 1
	}
	rem := lhs[:n]
	q := lhs[n:]

	// rem -= q * rhs[:n-m], tracking the signed overflow of rem.
	p := natMul(nat(q).norm(), nat(rhs[:n-m]).norm())
	remOverflow := -int(subPadded(rem, p))
	if qCarry != 0 {
		remOverflow -= int(subVV(rem[m:], rem[m:], rhs[:n-m]))
	}

	// While the remainder is negative, add the divisor back and decrement
	// the quotient. This loop runs a bounded number of times.
	for remOverflow < 0 {
		remOverflow += int(addVV(rem, rem, rhs))
		qCarry -= int(subVW(q, q, 1))
	}
	if remOverflow != 0 || qCarry < 0 || qCarry > 1 {
		panic("apint: divide-and-conquer remainder out of range")
	}
	return qCarry != 0
}

// subPadded computes z -= x where x may be shorter than z, returning the
// final borrow.
func subPadded(z, x nat) Word {
	if len(x) > len(z) {
		x = x.norm()
		if len(x) > len(z) {
			panic("apint: subtrahend longer than target")
		}
	}
	b := subVV(z[:len(x)], z[:len(x)], x)
	return subVW(z[len(x):], z[len(x):], b)
}
