package apint

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestNatMulOracle(t *testing.T) {
	rnd := rand.New(rand.NewSource(20))
	sizes := []int{0, 1, 2, 3, 7, 23, 24, 25, 50, 191, 192, 193, 300}
	for _, nx := range sizes {
		for _, ny := range sizes {
			x := randNat(rnd, nx)
			y := randNat(rnd, ny)
			got := toBig(natMul(x, y))
			want := new(big.Int).Mul(toBig(x), toBig(y))
			if got.Cmp(want) != 0 {
				t.Fatalf("mul mismatch at %dx%d limbs", nx, ny)
			}
		}
	}
}

// TestMulAlgorithmAgreement forces each algorithm over the same operands by
// moving the thresholds, so Karatsuba and Toom-3 are checked directly
// against schoolbook rather than only through the dispatcher.
func TestMulAlgorithmAgreement(t *testing.T) {
	rnd := rand.New(rand.NewSource(21))
	for _, n := range []int{8, 31, 64, 100} {
		x := randNat(rnd, n)
		y := randNat(rnd, n)
		want := basicMul(x, y)

		restoreK := SetKaratsubaThreshold(2)
		restoreT := SetToom3Threshold(1 << 30)
		gotKaratsuba := natMul(x, y)
		SetToom3Threshold(4)
		gotToom := natMul(x, y)
		SetKaratsubaThreshold(restoreK)
		SetToom3Threshold(restoreT)

		if gotKaratsuba.cmp(want) != 0 {
			t.Fatalf("karatsuba disagrees with schoolbook at %d limbs", n)
		}
		if gotToom.cmp(want) != 0 {
			t.Fatalf("toom-3 disagrees with schoolbook at %d limbs", n)
		}
	}
}

func TestMulUnbalanced(t *testing.T) {
	rnd := rand.New(rand.NewSource(22))
	defer SetKaratsubaThreshold(SetKaratsubaThreshold(4))
	for _, shape := range [][2]int{{3, 100}, {5, 47}, {16, 257}, {30, 65}} {
		x := randNat(rnd, shape[0])
		y := randNat(rnd, shape[1])
		want := new(big.Int).Mul(toBig(x), toBig(y))
		if toBig(natMul(x, y)).Cmp(want) != 0 {
			t.Fatalf("unbalanced mul mismatch at %dx%d limbs", shape[0], shape[1])
		}
		if toBig(natMul(y, x)).Cmp(want) != 0 {
			t.Fatalf("unbalanced mul not commutative at %dx%d limbs", shape[0], shape[1])
		}
	}
}

func TestMulByZeroAndOne(t *testing.T) {
	rnd := rand.New(rand.NewSource(23))
	x := randNat(rnd, 40)
	if !natMul(x, nil).isZero() {
		t.Fatal("x*0 != 0")
	}
	if natMul(x, natFromWord(1)).cmp(x) != 0 {
		t.Fatal("x*1 != x")
	}
}

func TestNatPow(t *testing.T) {
	cases := []struct {
		base uint64
		exp  uint
		want string
	}{
		{0, 0, "1"},
		{0, 5, "0"},
		{1, 100, "1"},
		{2, 100, "1267650600228229401496703205376"},
		{3, 40, "12157665459056928801"},
		{10, 30, "1000000000000000000000000000000"},
	}
	for _, c := range cases {
		got := toBig(natPow(natFromUint64(c.base), c.exp))
		want, _ := new(big.Int).SetString(c.want, 10)
		if got.Cmp(want) != 0 {
			t.Fatalf("%d^%d = %v, want %v", c.base, c.exp, got, want)
		}
	}
}

// TestMulProperties checks the ring laws of multiplication over random
// operands.
func TestMulProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	genNat := gen.SliceOf(gen.UInt64()).Map(func(ws []uint64) nat {
		z := make(nat, len(ws))
		for i, w := range ws {
			z[i] = Word(w)
		}
		return z.norm()
	})

	properties.Property("multiplication commutes", prop.ForAll(
		func(x, y nat) bool {
			return natMul(x, y).cmp(natMul(y, x)) == 0
		},
		genNat, genNat,
	))

	properties.Property("multiplication distributes over addition", prop.ForAll(
		func(x, y, z nat) bool {
			lhs := natMul(x, natAdd(y, z))
			rhs := natAdd(natMul(x, y), natMul(x, z))
			return lhs.cmp(rhs) == 0
		},
		genNat, genNat, genNat,
	))

	properties.Property("squaring matches the oracle", prop.ForAll(
		func(x nat) bool {
			want := new(big.Int).Mul(toBig(x), toBig(x))
			return toBig(natMul(x, x)).Cmp(want) == 0
		},
		genNat,
	))

	properties.TestingRun(t)
}
