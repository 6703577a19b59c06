package apint

// Source supplies the raw randomness for sampling. math/rand/v2 sources and
// ChaCha-based cryptographic readers both satisfy it with thin adapters.
type Source interface {
	Uint64() uint64
}

// RandomNat draws a value uniformly from [0, 2^bits).
func RandomNat(src Source, bits uint) Nat {
	return Nat{abs: randomBits(src, bits)}
}

func randomBits(src Source, bits uint) nat {
	if bits == 0 {
		return nil
	}
	z := make(nat, (bits+_W-1)/_W)
	for i := range z {
		z[i] = Word(src.Uint64())
	}
	if top := bits % _W; top != 0 {
		z[len(z)-1] &= Word(1)<<top - 1
	}
	return z.norm()
}

// UniformNat draws a value uniformly from [low, high). An empty range
// (high <= low) is ErrUnderflow.
func UniformNat(src Source, low, high Nat) (Nat, error) {
	if high.abs.cmp(low.abs) <= 0 {
		return Nat{}, ErrUnderflow
	}
	span := natSub(high.abs, low.abs)
	return Nat{abs: natAdd(low.abs, uniformBelow(src, span))}, nil
}

// UniformInt draws a value uniformly from [low, high). An empty range
// (high <= low) is ErrUnderflow.
func UniformInt(src Source, low, high Int) (Int, error) {
	if high.Cmp(low) <= 0 {
		return Int{}, ErrUnderflow
	}
	span := high.Sub(low)
	return low.Add(Int{abs: uniformBelow(src, span.abs)}), nil
}

// uniformBelow draws uniformly from [0, span) for nonzero span by rejection
// sampling over bitLen(span) bits. Each draw accepts with probability above
// one half, so the expected number of retries is constant.
func uniformBelow(src Source, span nat) nat {
	bits := span.bitLen()
	for {
		v := randomBits(src, bits)
		if v.cmp(span) < 0 {
			return v
		}
	}
}
