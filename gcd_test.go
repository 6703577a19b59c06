package apint

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestGcdOracle(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	genNat := gen.SliceOfN(3, gen.UInt64()).Map(func(ws []uint64) nat {
		z := make(nat, len(ws))
		for i, w := range ws {
			z[i] = Word(w)
		}
		return z.norm()
	})

	properties.Property("gcd matches math/big", prop.ForAll(
		func(x, y nat) bool {
			want := new(big.Int).GCD(nil, nil, toBig(x), toBig(y))
			return toBig(natGcd(x, y)).Cmp(want) == 0
		},
		genNat, genNat,
	))

	properties.Property("gcd divides both operands", prop.ForAll(
		func(x, y nat) bool {
			g := natGcd(x, y)
			if g.isZero() {
				return x.isZero() && y.isZero()
			}
			_, rx := natDivRem(x, g)
			_, ry := natDivRem(y, g)
			return rx.isZero() && ry.isZero()
		},
		genNat, genNat,
	))

	properties.Property("gcd is commutative", prop.ForAll(
		func(x, y nat) bool {
			return natGcd(x, y).cmp(natGcd(y, x)) == 0
		},
		genNat, genNat,
	))

	properties.TestingRun(t)
}

func TestGcdPowersOfTwo(t *testing.T) {
	a := natShl(natFromWord(3), 100)
	b := natShl(natFromWord(5), 90)
	want := natShl(natFromWord(1), 90)
	if got := natGcd(a, b); got.cmp(want) != 0 {
		t.Fatalf("gcd(3<<100, 5<<90) = %v, want 2^90", toBig(got))
	}
}
