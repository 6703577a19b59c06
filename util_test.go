package apint

import (
	"math/big"
	"math/rand"
)

// toBig converts an internal magnitude to a big.Int for oracle comparisons,
// going through the limbs directly so conversion tests stay independent of
// the string paths under test.
func toBig(x nat) *big.Int {
	z := new(big.Int)
	for i := len(x) - 1; i >= 0; i-- {
		z.Lsh(z, _W)
		z.Or(z, new(big.Int).SetUint64(uint64(x[i])))
	}
	return z
}

// fromBig converts a nonnegative big.Int to an internal magnitude.
func fromBig(v *big.Int) nat {
	if v.Sign() < 0 {
		panic("fromBig: negative oracle value")
	}
	words := v.Bits()
	z := make(nat, len(words))
	for i, w := range words {
		z[i] = Word(w)
	}
	return z.norm()
}

// randNat returns a random normalized magnitude of exactly n limbs (the top
// limb is forced nonzero) drawn from the given source.
func randNat(rnd *rand.Rand, n int) nat {
	if n == 0 {
		return nil
	}
	z := make(nat, n)
	for i := range z {
		z[i] = Word(rnd.Uint64())
	}
	for z[n-1] == 0 {
		z[n-1] = Word(rnd.Uint64())
	}
	return z
}

// intToBig converts a signed value to a big.Int.
func intToBig(x Int) *big.Int {
	v := toBig(x.abs)
	if x.neg {
		v.Neg(v)
	}
	return v
}

// intFromBig converts a big.Int to an Int.
func intFromBig(v *big.Int) Int {
	return makeInt(v.Sign() < 0, fromBig(new(big.Int).Abs(v)))
}
