// Multiplication suite: schoolbook, Karatsuba and Toom-Cook-3, selected by
// the smaller operand's limb length. Unbalanced operands are reduced to a
// run of balanced multiplies by chunking the larger operand, so its memory
// is traversed a bounded number of times instead of once per limb of the
// smaller operand.

package apint

// Algorithm selection thresholds, in limbs of the smaller operand.
// Tunable via the Set*Threshold functions (used by calibration and tests).
var (
	karatsubaThreshold = 24
	toom3Threshold     = 192
)

// basicMulChunk bounds the slice of the larger operand processed per
// schoolbook pass, for memory locality.
const basicMulChunk = 1024

// SetKaratsubaThreshold sets the limb count below which schoolbook
// multiplication is used, returning the previous value.
func SetKaratsubaThreshold(n int) int {
	prev := karatsubaThreshold
	karatsubaThreshold = n
	return prev
}

// SetToom3Threshold sets the limb count above which Toom-Cook-3 is used,
// returning the previous value.
func SetToom3Threshold(n int) int {
	prev := toom3Threshold
	toom3Threshold = n
	return prev
}

// natMul returns x * y.
func natMul(x, y nat) nat {
	if len(x) < len(y) {
		x, y = y, x
	}
	switch {
	case len(y) == 0:
		return nil
	case len(y) == 1:
		z := make(nat, len(x)+1)
		z[len(x)] = mulAddVWW(z[:len(x)], x, y[0], 0)
		return z.norm()
	case len(y) <= karatsubaThreshold:
		return basicMul(x, y)
	}

	// Sub-quadratic algorithms want balanced operands. Split the larger
	// operand into chunks of the smaller one's length and accumulate the
	// shifted chunk products.
	if len(x) == len(y) {
		return mulBalanced(x, y)
	}
	z := make(nat, len(x)+len(y))
	for i := 0; i < len(x); i += len(y) {
		chunk := x[i:min(i+len(y), len(x))]
		var p nat
		if len(chunk) == len(y) {
			p = mulBalanced(chunk, y)
		} else {
			p = natMul(chunk.norm(), y)
		}
		addAt(z, p, i)
	}
	return z.norm()
}

// mulBalanced multiplies two equal-length operands above the schoolbook
// threshold. Chunks of the larger operand arrive here denormalized; the
// algorithms below tolerate most-significant zero limbs.
func mulBalanced(x, y nat) nat {
	if len(x) <= toom3Threshold {
		return karatsuba(x, y)
	}
	return toom3(x, y)
}

// basicMul returns x * y by the schoolbook method, O(len(x)*len(y)).
// The larger operand is processed in bounded chunks so each pass stays
// cache-resident.
func basicMul(x, y nat) nat {
	z := make(nat, len(x)+len(y))
	for i := 0; i < len(x); i += basicMulChunk {
		chunk := x[i:min(i+basicMulChunk, len(x))]
		for j, d := range y {
			if d != 0 {
				c := addMulVVW(z[i+j:i+j+len(chunk)], chunk, d)
				addAt(z, natFromWord(c), i+j+len(chunk))
			}
		}
	}
	return z.norm()
}

// karatsuba multiplies two equal-length operands by splitting each into two
// halves: (x1*B+x0)(y1*B+y0) = x1y1*B^2 + ((x0+x1)(y0+y1)-x0y0-x1y1)*B + x0y0.
// Recursive products re-enter natMul, so the recursion bottoms out at the
// schoolbook base case.
func karatsuba(x, y nat) nat {
	n := len(x)
	m := (n + 1) / 2

	x0, x1 := x[:m].norm(), x[m:].norm()
	y0, y1 := y[:m].norm(), y[m:].norm()

	z0 := natMul(x0, y0)
	z2 := natMul(x1, y1)
	z1 := natMul(natAdd(x0, x1), natAdd(y0, y1))
	z1 = natSub(z1, z0)
	z1 = natSub(z1, z2)

	z := make(nat, 2*n)
	addAt(z, z0, 0)
	addAt(z, z1, m)
	addAt(z, z2, 2*m)
	return z.norm()
}

// toom3 multiplies two equal-length operands by splitting each into three
// parts and evaluating at the points 0, 1, -1, 2 and infinity, then
// interpolating the five product coefficients. Interpolation uses only
// exact divisions by 2 and 3 (Bodrato's sequence); an inexact division
// would be an internal bug.
func toom3(x, y nat) nat {
	n := len(x)
	k := (n + 2) / 3

	x0, x1, x2 := x[:k].norm(), x[k:2*k].norm(), x[2*k:].norm()
	y0, y1, y2 := y[:k].norm(), y[k:2*k].norm(), y[2*k:].norm()

	// Evaluate both polynomials at the five points. Only V(-1) can be
	// negative; its sign is tracked separately.
	x02 := natAdd(x0, x2)
	y02 := natAdd(y0, y2)

	v0 := natMul(x0, y0)
	v1 := natMul(natAdd(x02, x1), natAdd(y02, y1))
	vinf := natMul(x2, y2)

	xm1, xneg := natSubSigned(x02, x1)
	ym1, yneg := natSubSigned(y02, y1)
	vm1 := natMul(xm1, ym1)
	vm1neg := xneg != yneg

	x2eval := natAdd(natAdd(x0, natShl(x1, 1)), natShl(x2, 2))
	y2eval := natAdd(natAdd(y0, natShl(y1, 1)), natShl(y2, 2))
	v2 := natMul(x2eval, y2eval)

	// Interpolate:
	//   t1 = (V(2) - V(-1)) / 3 = c1 + c2 + 3c3 + 5c4
	//   t2 = (V(1) - V(-1)) / 2 = c1 + c3
	//   t3 =  V(1) - V(0)       = c1 + c2 + c3 + c4
	// All three are nonnegative and the divisions are exact.
	var t1, t2 nat
	if vm1neg {
		t1 = natAdd(v2, vm1)
		t2 = natAdd(v1, vm1)
	} else {
		t1 = natSub(v2, vm1)
		t2 = natSub(v1, vm1)
	}
	t1 = exactDivByWord(t1, 3)
	if t2.bit(0) != 0 {
		panic("apint: inexact division in Toom-3 interpolation")
	}
	t2 = natShr(t2, 1)
	t3 := natSub(v1, v0)

	// c0 = V(0), c4 = V(inf)
	// c3 = (t1 - t3)/2 - 2*c4
	// c2 = t3 - t2 - c4
	// c1 = t2 - c3
	s := natSub(t1, t3)
	if s.bit(0) != 0 {
		panic("apint: inexact division in Toom-3 interpolation")
	}
	c3 := natSub(natShr(s, 1), natShl(vinf, 1))
	c2 := natSub(natSub(t3, t2), vinf)
	c1 := natSub(t2, c3)

	z := make(nat, 2*n)
	addAt(z, v0, 0)
	addAt(z, c1, k)
	addAt(z, c2, 2*k)
	addAt(z, c3, 3*k)
	addAt(z, vinf, 4*k)
	return z.norm()
}

// exactDivByWord returns x / d where the division is known to be exact.
func exactDivByWord(x nat, d Word) nat {
	q, r := natDivByWord(x, d)
	if r != 0 {
		panic("apint: inexact division in Toom-3 interpolation")
	}
	return q
}
