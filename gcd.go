package apint

// natGcd computes the greatest common divisor by the binary algorithm:
// strip common factors of two, then repeatedly subtract the smaller odd
// operand from the larger and strip the twos reintroduced by the
// subtraction.
func natGcd(x, y nat) nat {
	if x.isZero() {
		return y.clone()
	}
	if y.isZero() {
		return x.clone()
	}
	xz, yz := x.trailingZeros(), y.trailingZeros()
	common := min(xz, yz)
	a := natShr(x, xz)
	b := natShr(y, yz)
	for {
		switch a.cmp(b) {
		case 0:
			return natShl(a, common)
		case -1:
			a, b = b, a
		}
		a = natSub(a, b)
		a = natShr(a, a.trailingZeros())
	}
}
