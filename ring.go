package apint

import "math/bits"

// Ring is a modular arithmetic context for a fixed nonzero modulus. The
// normalization shift and the reciprocal of the top divisor limb are
// computed once at construction and shared by every reduction, so repeated
// ring operations never pay the per-division setup again.
//
// Elements are bound to the ring that produced them; combining elements
// from different rings is a programming error and panics.
type Ring struct {
	m     nat  // canonical modulus
	shift uint // bits to normalize the top modulus limb

	// Multi-limb modulus: the shifted modulus and its top-limb reciprocal.
	mn nat
	rc reciprocal

	// Single-limb modulus.
	fd fastDiv
}

// Element is a residue in a Ring, kept in canonical form 0 <= value < m.
type Element struct {
	ring *Ring
	res  nat
}

// NewRing returns the ring of integers modulo the given modulus.
// A zero modulus is ErrDivisionByZero. Modulus 1 yields the degenerate
// ring whose only element is 0.
func NewRing(modulus Nat) (*Ring, error) {
	if modulus.IsZero() {
		return nil, ErrDivisionByZero
	}
	r := &Ring{m: modulus.abs.clone()}
	if len(r.m) == 1 {
		r.fd = newFastDiv(r.m[0])
		r.shift = r.fd.shift
		return r, nil
	}
	n := len(r.m)
	r.shift = uint(bits.LeadingZeros(r.m[n-1]))
	r.mn = make(nat, n)
	shlVU(r.mn, r.m, r.shift)
	r.rc = newReciprocal(r.mn[n-1])
	return r, nil
}

// Modulus returns the ring's modulus.
func (r *Ring) Modulus() Nat { return Nat{abs: r.m.clone()} }

// Reduce maps a magnitude into the ring.
func (r *Ring) Reduce(x Nat) Element {
	return Element{ring: r, res: r.reduce(x.abs)}
}

// ReduceInt maps a signed value into the ring: negative inputs land on the
// additive inverse of their magnitude's residue.
func (r *Ring) ReduceInt(x Int) Element {
	res := r.reduce(x.abs)
	if x.neg && !res.isZero() {
		res = natSub(r.m, res)
	}
	return Element{ring: r, res: res}
}

// reduce returns x mod m using the precomputed division constants.
func (r *Ring) reduce(x nat) nat {
	if x.cmp(r.m) < 0 {
		return x.clone()
	}
	if len(r.m) == 1 {
		var w Word
		for i := len(x) - 1; i >= 0; i-- {
			_, w = r.fd.rc.divWW(w, x[i])
		}
		_, w = r.fd.rc.divWW(w>>(_W-r.fd.shift), w<<r.fd.shift)
		return natFromWord(w >> r.fd.shift)
	}
	lhs := make(nat, len(x)+1)
	lhs[len(x)] = shlVU(lhs[:len(x)], x, r.shift)
	lhs = lhs.norm()
	divRemInPlace(lhs, r.mn, r.rc)
	return natShr(nat(lhs[:len(r.mn)]).norm(), r.shift)
}

// ToNat returns the canonical residue of x as a magnitude.
func (x Element) ToNat() Nat { return Nat{abs: x.res.clone()} }

func (x Element) IsZero() bool { return x.res.isZero() }

// Ring returns the ring x belongs to.
func (x Element) Ring() *Ring { return x.ring }

func (x Element) sameRing(y Element) *Ring {
	if x.ring != y.ring {
		panic("apint: elements of different rings")
	}
	return x.ring
}

// Add returns x + y in the ring.
func (x Element) Add(y Element) Element {
	r := x.sameRing(y)
	s := natAdd(x.res, y.res)
	if s.cmp(r.m) >= 0 {
		s = natSub(s, r.m)
	}
	return Element{ring: r, res: s}
}

// Sub returns x - y in the ring.
func (x Element) Sub(y Element) Element {
	r := x.sameRing(y)
	if x.res.cmp(y.res) >= 0 {
		return Element{ring: r, res: natSub(x.res, y.res)}
	}
	return Element{ring: r, res: natSub(natAdd(x.res, r.m), y.res)}
}

// Neg returns the additive inverse of x.
func (x Element) Neg() Element {
	if x.res.isZero() {
		return x
	}
	return Element{ring: x.ring, res: natSub(x.ring.m, x.res)}
}

// Mul returns x * y in the ring.
func (x Element) Mul(y Element) Element {
	r := x.sameRing(y)
	return Element{ring: r, res: r.reduce(natMul(x.res, y.res))}
}

// Pow returns x raised to exp in the ring, by binary square-and-multiply
// from the most significant exponent bit down. x^0 is the ring's 1 for
// every x, which in the modulus-1 ring is 0.
func (x Element) Pow(exp Nat) Element {
	r := x.ring
	n := exp.abs.bitLen()
	if n == 0 {
		return Element{ring: r, res: r.reduce(natFromWord(1))}
	}
	z := Element{ring: r, res: x.res.clone()}
	for i := int(n) - 2; i >= 0; i-- {
		z = z.Mul(z)
		if exp.abs.bit(uint(i)) != 0 {
			z = z.Mul(x)
		}
	}
	return z
}
