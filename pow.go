package apint

import "math/bits"

// log2 returns the position of the highest set bit of a nonzero value.
func log2(x uint) uint {
	return uint(bits.Len(x)) - 1
}

// natPow raises x to the exponent by binary exponentiation, scanning the
// exponent from the most significant bit down. x^0 is 1 for every x,
// including zero.
func natPow(x nat, exp uint) nat {
	switch {
	case exp == 0:
		return natFromWord(1)
	case x.isZero():
		return nil
	case exp == 1:
		return x.clone()
	}
	z := x.clone()
	for i := int(log2(exp)) - 1; i >= 0; i-- {
		z = natMul(z, z)
		if exp>>uint(i)&1 != 0 {
			z = natMul(z, x)
		}
	}
	return z
}
