package apint

import (
	"math/bits"
	"math/rand"
	"testing"
)

func TestReciprocalDivWW(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		d := Word(rnd.Uint64()) | 1<<(_W-1)
		u1 := Word(rnd.Uint64()) % d
		u0 := Word(rnd.Uint64())

		rc := newReciprocal(d)
		q, r := rc.divWW(u1, u0)
		wantQ, wantR := bits.Div(uint(u1), uint(u0), uint(d))
		if q != Word(wantQ) || r != Word(wantR) {
			t.Fatalf("divWW(%#x, %#x) by %#x = (%#x, %#x), want (%#x, %#x)",
				u1, u0, d, q, r, wantQ, wantR)
		}
	}
}

func TestReciprocalUnnormalizedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("newReciprocal accepted an unnormalized divisor")
		}
	}()
	newReciprocal(1)
}

func TestFastDivDivRem(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	divisors := []Word{1, 2, 3, 10, 1 << 30, 1<<(_W-1) - 1, ^Word(0)}
	for i := 0; i < 1000; i++ {
		divisors = append(divisors, Word(rnd.Uint64())|1)
	}
	for _, d := range divisors {
		f := newFastDiv(d)
		for i := 0; i < 100; i++ {
			u := Word(rnd.Uint64())
			q, r := f.divRem(u)
			if q != u/d || r != u%d {
				t.Fatalf("divRem(%#x) by %#x = (%#x, %#x), want (%#x, %#x)",
					u, d, q, r, u/d, u%d)
			}
		}
	}
}

func TestAddSubVVRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for _, n := range []int{1, 2, 7, 33, 100} {
		x := randNat(rnd, n)
		y := randNat(rnd, n)
		sum := make(nat, n)
		c := addVV(sum, x, y)
		back := make(nat, n)
		b := subVV(back, sum, y)
		if c != b {
			t.Fatalf("n=%d: carry %d does not match borrow %d", n, c, b)
		}
		if back.cmp(x) != 0 {
			t.Fatalf("n=%d: (x+y)-y != x", n)
		}
	}
}

func TestShlShrVURoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(4))
	for _, n := range []int{1, 3, 17} {
		for _, s := range []uint{0, 1, 13, _W - 1} {
			x := randNat(rnd, n)
			shifted := make(nat, n)
			spill := shlVU(shifted, x, s)
			back := make(nat, n)
			low := shrVU(back, shifted, s)
			if low != 0 {
				t.Fatalf("n=%d s=%d: nonzero bits lost below the shift", n, s)
			}
			want := x.clone()
			if s > 0 {
				want[n-1] &= Word(1)<<(_W-s) - 1
			}
			if back.norm().cmp(want.norm()) != 0 {
				t.Fatalf("n=%d s=%d: shift round trip mismatch", n, s)
			}
			if s > 0 && spill != x[n-1]>>(_W-s) {
				t.Fatalf("n=%d s=%d: wrong spill %#x", n, s, spill)
			}
		}
	}
}

func TestMulAddVWWOracle(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		x := randNat(rnd, 1+rnd.Intn(20))
		y := Word(rnd.Uint64())
		r := Word(rnd.Uint64())

		z := make(nat, len(x))
		c := mulAddVWW(z, x, y, r)
		got := toBig(append(z.clone(), c))

		want := toBig(x)
		want.Mul(want, toBig(nat{y}))
		want.Add(want, toBig(nat{r}))
		if got.Cmp(want) != 0 {
			t.Fatalf("mulAddVWW mismatch: got %v, want %v", got, want)
		}
	}
}

func TestAddMulSubMulVVWInverse(t *testing.T) {
	rnd := rand.New(rand.NewSource(6))
	for i := 0; i < 200; i++ {
		n := 1 + rnd.Intn(16)
		z := randNat(rnd, n)
		x := randNat(rnd, n)
		y := Word(rnd.Uint64())

		orig := z.clone()
		c1 := addMulVVW(z, x, y)
		c2 := subMulVVW(z, x, y)
		if c1 != c2 {
			t.Fatalf("add-mul carry %#x does not match sub-mul borrow %#x", c1, c2)
		}
		if z.cmp(orig) != 0 {
			t.Fatal("z + x*y - x*y != z")
		}
	}
}
