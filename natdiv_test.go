package apint

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestDivByWordOracle(t *testing.T) {
	rnd := rand.New(rand.NewSource(30))
	divisors := []Word{1, 2, 3, 7, 10, 1 << 20, ^Word(0)}
	for _, d := range divisors {
		for i := 0; i < 50; i++ {
			x := randNat(rnd, rnd.Intn(40))
			q, r := natDivByWord(x, d)

			bd := toBig(nat{d})
			wantQ, wantR := new(big.Int).QuoRem(toBig(x), bd, new(big.Int))
			if toBig(q).Cmp(wantQ) != 0 || uint64(r) != wantR.Uint64() {
				t.Fatalf("divByWord by %#x mismatch", d)
			}
			if got := natRemByWord(x, d); got != r {
				t.Fatalf("remByWord by %#x = %#x, want %#x", d, got, r)
			}
		}
	}
}

// TestNatDivRemLengths walks divisor and quotient lengths across the
// divide-and-conquer threshold so both the schoolbook and recursive paths
// run, including the block boundaries on either side.
func TestNatDivRemLengths(t *testing.T) {
	rnd := rand.New(rand.NewSource(31))
	T := divRecursiveThreshold
	divisorLens := []int{1, 2, 3, T - 1, T, T + 1, 2*T + 5}
	quotientLens := []int{0, 1, T - 1, T, T + 1, 3 * T}
	for _, dn := range divisorLens {
		for _, qn := range quotientLens {
			y := randNat(rnd, dn)
			x := randNat(rnd, dn+qn)
			checkDivRem(t, x, y)
		}
	}
}

func TestNatDivRemSmallCases(t *testing.T) {
	// a < b short-circuits to (0, a).
	a := natFromUint64(7)
	b := natFromUint64(100)
	q, r := natDivRem(a, b)
	if !q.isZero() || r.cmp(a) != 0 {
		t.Fatal("a < b should return (0, a)")
	}

	// Exact division.
	q, r = natDivRem(natFromUint64(1 << 40), natFromUint64(1<<20))
	if !r.isZero() || toBig(q).Uint64() != 1<<20 {
		t.Fatal("exact power-of-two division wrong")
	}

	// x == y.
	q, r = natDivRem(b, b)
	if toBig(q).Uint64() != 1 || !r.isZero() {
		t.Fatal("x/x should be (1, 0)")
	}
}

func checkDivRem(t *testing.T, x, y nat) {
	t.Helper()
	q, r := natDivRem(x, y)

	if r.cmp(y) >= 0 {
		t.Fatalf("remainder not smaller than divisor (lens %d/%d)", len(x), len(y))
	}
	// x == q*y + r
	back := natAdd(natMul(q, y), r)
	if back.cmp(x) != 0 {
		t.Fatalf("q*y + r != x (lens %d/%d)", len(x), len(y))
	}
}

// TestDivRemProperty stresses the full dispatcher with random shapes.
func TestDivRemProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	genNat := gen.SliceOf(gen.UInt64()).Map(func(ws []uint64) nat {
		z := make(nat, len(ws))
		for i, w := range ws {
			z[i] = Word(w)
		}
		return z.norm()
	})

	properties.Property("x = q*y + r with r < y", prop.ForAll(
		func(x, y nat) bool {
			if y.isZero() {
				y = natFromWord(1)
			}
			q, r := natDivRem(x, y)
			return r.cmp(y) < 0 && natAdd(natMul(q, y), r).cmp(x) == 0
		},
		genNat, genNat,
	))

	properties.TestingRun(t)
}

func TestSetDivRecursiveThreshold(t *testing.T) {
	prev := SetDivRecursiveThreshold(4)
	defer SetDivRecursiveThreshold(prev)

	rnd := rand.New(rand.NewSource(32))
	// With the threshold lowered, even modest operands exercise the
	// recursive blocks.
	for i := 0; i < 50; i++ {
		y := randNat(rnd, 8+rnd.Intn(20))
		x := randNat(rnd, len(y)+rnd.Intn(40))
		checkDivRem(t, x, y)
	}
}
