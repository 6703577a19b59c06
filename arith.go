// This file provides the elementary word-vector operations that all
// higher-level algorithms are built from. Each primitive propagates a
// single carry or borrow word across a limb run and returns the final
// carry/borrow explicitly.

package apint

import "math/bits"

// A Word is a single limb of a multi-precision unsigned integer. Limbs are
// stored least-significant first.
type Word = uint

const (
	// _W is the limb width in bits, fixed per platform at build time.
	_W = bits.UintSize
)

// addVV computes z = x + y element-wise and returns the final carry.
// All three slices must have the same length. z may alias x or y.
func addVV(z, x, y []Word) (c Word) {
	for i := range z {
		z[i], c = bits.Add(x[i], y[i], c)
	}
	return c
}

// subVV computes z = x - y element-wise and returns the final borrow.
// All three slices must have the same length. z may alias x or y.
func subVV(z, x, y []Word) (b Word) {
	for i := range z {
		z[i], b = bits.Sub(x[i], y[i], b)
	}
	return b
}

// addVW computes z = x + y where y is a single word, and returns the carry.
func addVW(z, x []Word, y Word) (c Word) {
	c = y
	for i := range z {
		z[i], c = bits.Add(x[i], c, 0)
	}
	return c
}

// subVW computes z = x - y where y is a single word, and returns the borrow.
func subVW(z, x []Word, y Word) (b Word) {
	b = y
	for i := range z {
		z[i], b = bits.Sub(x[i], b, 0)
	}
	return b
}

// shlVU computes z = x << s for 0 <= s < _W and returns the bits shifted out
// of the top limb. len(z) must equal len(x).
func shlVU(z, x []Word, s uint) (c Word) {
	if len(x) == 0 {
		return 0
	}
	if s == 0 {
		copy(z, x)
		return 0
	}
	c = x[len(x)-1] >> (_W - s)
	for i := len(x) - 1; i > 0; i-- {
		z[i] = x[i]<<s | x[i-1]>>(_W-s)
	}
	z[0] = x[0] << s
	return c
}

// shrVU computes z = x >> s for 0 <= s < _W and returns the bits shifted out
// of the bottom limb (in the top bits of the result word).
func shrVU(z, x []Word, s uint) (c Word) {
	if len(x) == 0 {
		return 0
	}
	if s == 0 {
		copy(z, x)
		return 0
	}
	c = x[0] << (_W - s)
	for i := 0; i < len(x)-1; i++ {
		z[i] = x[i]>>s | x[i+1]<<(_W-s)
	}
	z[len(x)-1] = x[len(x)-1] >> s
	return c
}

// mulAddVWW computes z = x*y + r element-wise and returns the carry.
func mulAddVWW(z, x []Word, y, r Word) (c Word) {
	c = r
	for i := range z {
		hi, lo := bits.Mul(x[i], y)
		lo, cc := bits.Add(lo, c, 0)
		c = hi + cc
		z[i] = lo
	}
	return c
}

// addMulVVW computes z += x*y element-wise and returns the carry.
// len(z) must equal len(x).
func addMulVVW(z, x []Word, y Word) (c Word) {
	for i := range z {
		hi, lo := bits.Mul(x[i], y)
		lo, cc := bits.Add(lo, c, 0)
		hi += cc
		lo, cc = bits.Add(lo, z[i], 0)
		c = hi + cc
		z[i] = lo
	}
	return c
}

// subMulVVW computes z -= x*y element-wise and returns the borrow.
// len(z) must equal len(x).
func subMulVVW(z, x []Word, y Word) (b Word) {
	for i := range z {
		hi, lo := bits.Mul(x[i], y)
		lo, cc := bits.Add(lo, b, 0)
		hi += cc
		zi, bb := bits.Sub(z[i], lo, 0)
		b = hi + bb
		z[i] = zi
	}
	return b
}

// cmpVV compares two equal-length limb runs lexicographically from the
// most-significant limb. Returns -1, 0, or +1.
func cmpVV(x, y []Word) int {
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

// reciprocal caches the constants for repeated 2-by-1 division by a fixed
// normalized divisor, following Möller and Granlund, "Improved division by
// invariant integers". The divisor's top bit must be set.
type reciprocal struct {
	d Word // normalized divisor, top bit set
	v Word // floor((B^2-1)/d) - B where B = 2^_W
}

func newReciprocal(d Word) reciprocal {
	if d>>(_W-1) == 0 {
		panic("apint: reciprocal of unnormalized divisor")
	}
	// floor((B^2-1)/d) - B = floor((B^2-1-B*d)/d) with high word B-1-d < d.
	v, _ := bits.Div(^d, ^Word(0), d)
	return reciprocal{d: d, v: v}
}

// divWW returns (q, r) with u1*B + u0 = q*d + r, 0 <= r < d.
// Requires u1 < d.
func (rc reciprocal) divWW(u1, u0 Word) (q, r Word) {
	qh, ql := bits.Mul(rc.v, u1)
	ql, c := bits.Add(ql, u0, 0)
	qh, _ = bits.Add(qh, u1, c)
	qh++
	r = u0 - qh*rc.d
	if r > ql {
		qh--
		r += rc.d
	}
	if r >= rc.d {
		qh++
		r -= rc.d
	}
	return qh, r
}

// fastDiv caches the constants for repeated division by an arbitrary nonzero
// word: the normalization shift plus the reciprocal of the shifted divisor.
type fastDiv struct {
	rc    reciprocal
	shift uint
}

func newFastDiv(d Word) fastDiv {
	if d == 0 {
		panic("apint: fastDiv by zero")
	}
	s := uint(bits.LeadingZeros(d))
	return fastDiv{rc: newReciprocal(d << s), shift: s}
}

// divRem returns (u/d, u%d) for a single unnormalized word.
func (f fastDiv) divRem(u Word) (q, r Word) {
	u1 := u >> (_W - f.shift)
	if f.shift == 0 {
		u1 = 0
	}
	q, r = f.rc.divWW(u1, u<<f.shift)
	return q, r >> f.shift
}
