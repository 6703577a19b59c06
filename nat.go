// This file implements the unsigned magnitude representation and its
// non-multiplicative operations. A magnitude is a normalized little-endian
// limb sequence: no trailing (most-significant) zero limbs, and the
// canonical zero is the empty (nil) slice.
//
// Operations build fresh result buffers; a nat is never mutated after it has
// been returned to a caller. Internal invariant violations panic, they are
// never reported as errors.

package apint

import "math/bits"

type nat []Word

// norm strips most-significant zero limbs.
func (x nat) norm() nat {
	i := len(x)
	for i > 0 && x[i-1] == 0 {
		i--
	}
	return x[:i]
}

func (x nat) isZero() bool { return len(x) == 0 }

// clone returns an independent copy. Copies never share limb storage.
func (x nat) clone() nat {
	if len(x) == 0 {
		return nil
	}
	z := make(nat, len(x))
	copy(z, x)
	return z
}

func natFromWord(w Word) nat {
	if w == 0 {
		return nil
	}
	return nat{w}
}

func natFromUint64(v uint64) nat {
	if _W == 64 {
		return natFromWord(Word(v))
	}
	return nat{Word(v), Word(v >> 32)}.norm()
}

// toUint64 reports the low 64 bits and whether the value fits in 64 bits.
func (x nat) toUint64() (uint64, bool) {
	switch {
	case len(x) == 0:
		return 0, true
	case _W == 64:
		return uint64(x[0]), len(x) == 1
	case len(x) == 1:
		return uint64(x[0]), true
	default:
		return uint64(x[0]) | uint64(x[1])<<32, len(x) == 2
	}
}

// cmp compares two magnitudes: -1 if x < y, 0 if equal, +1 if x > y.
func (x nat) cmp(y nat) int {
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	return cmpVV(x, y)
}

// bitLen returns the position of the highest set bit plus one; zero for zero.
func (x nat) bitLen() uint {
	if len(x) == 0 {
		return 0
	}
	return uint(len(x)-1)*_W + uint(bits.Len(x[len(x)-1]))
}

// bit returns bit i of x (0 or 1).
func (x nat) bit(i uint) uint {
	j := int(i / _W)
	if j >= len(x) {
		return 0
	}
	return uint(x[j]>>(i%_W)) & 1
}

// trailingZeros returns the number of trailing zero bits, zero for zero.
func (x nat) trailingZeros() uint {
	if len(x) == 0 {
		return 0
	}
	i := 0
	for x[i] == 0 {
		i++
	}
	return uint(i)*_W + uint(bits.TrailingZeros(x[i]))
}

// natAdd returns x + y.
func natAdd(x, y nat) nat {
	if len(x) < len(y) {
		x, y = y, x
	}
	if len(y) == 0 {
		return x.clone()
	}
	z := make(nat, len(x)+1)
	c := addVV(z[:len(y)], x[:len(y)], y)
	c = addVW(z[len(y):len(x)], x[len(y):], c)
	z[len(x)] = c
	return z.norm()
}

// natSub returns x - y. The caller must ensure x >= y; a negative result is
// an internal bug and panics.
func natSub(x, y nat) nat {
	if len(y) == 0 {
		return x.clone()
	}
	if len(x) < len(y) {
		panic("apint: negative result in magnitude subtraction")
	}
	z := make(nat, len(x))
	b := subVV(z[:len(y)], x[:len(y)], y)
	b = subVW(z[len(y):], x[len(y):], b)
	if b != 0 {
		panic("apint: negative result in magnitude subtraction")
	}
	return z.norm()
}

// natSubSigned returns |x - y| and whether the true result is negative.
func natSubSigned(x, y nat) (nat, bool) {
	switch x.cmp(y) {
	case 0:
		return nil, false
	case -1:
		return natSub(y, x), true
	default:
		return natSub(x, y), false
	}
}

// addAt adds x into z starting at limb offset i, in place. z must be long
// enough to absorb the carry.
func addAt(z, x nat, i int) {
	if len(x) == 0 {
		return
	}
	c := addVV(z[i:i+len(x)], z[i:i+len(x)], x)
	if c != 0 {
		c = addVW(z[i+len(x):], z[i+len(x):], c)
		if c != 0 {
			panic("apint: carry out of result buffer")
		}
	}
}

// natShl returns x << s for any bit count s.
func natShl(x nat, s uint) nat {
	if len(x) == 0 {
		return nil
	}
	limbs, rem := int(s/_W), s%_W
	z := make(nat, len(x)+limbs+1)
	z[len(z)-1] = shlVU(z[limbs:len(z)-1], x, rem)
	return z.norm()
}

// natShr returns x >> s for any bit count s.
func natShr(x nat, s uint) nat {
	limbs, rem := int(s/_W), s%_W
	if limbs >= len(x) {
		return nil
	}
	z := make(nat, len(x)-limbs)
	shrVU(z, x[limbs:], rem)
	return z.norm()
}

// natAnd returns x & y.
func natAnd(x, y nat) nat {
	if len(x) > len(y) {
		x, y = y, x
	}
	z := make(nat, len(x))
	for i := range z {
		z[i] = x[i] & y[i]
	}
	return z.norm()
}

// natOr returns x | y.
func natOr(x, y nat) nat {
	if len(x) > len(y) {
		x, y = y, x
	}
	z := make(nat, len(y))
	for i := range x {
		z[i] = x[i] | y[i]
	}
	copy(z[len(x):], y[len(x):])
	return z
}

// natXor returns x ^ y.
func natXor(x, y nat) nat {
	if len(x) > len(y) {
		x, y = y, x
	}
	z := make(nat, len(y))
	for i := range x {
		z[i] = x[i] ^ y[i]
	}
	copy(z[len(x):], y[len(x):])
	return z.norm()
}

// natAndNot returns x &^ y.
func natAndNot(x, y nat) nat {
	z := make(nat, len(x))
	for i := range x {
		if i < len(y) {
			z[i] = x[i] &^ y[i]
		} else {
			z[i] = x[i]
		}
	}
	return z.norm()
}

// natAdd1 returns x + 1.
func natAdd1(x nat) nat {
	z := make(nat, len(x)+1)
	z[len(x)] = addVW(z[:len(x)], x, 1)
	return z.norm()
}

// natSub1 returns x - 1. x must be nonzero.
func natSub1(x nat) nat {
	if len(x) == 0 {
		panic("apint: decrement of zero magnitude")
	}
	z := make(nat, len(x))
	subVW(z, x, 1)
	return z.norm()
}
