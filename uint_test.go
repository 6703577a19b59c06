package apint

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestNatZeroValue(t *testing.T) {
	var z Nat
	if !z.IsZero() || z.BitLen() != 0 || z.String() != "0" {
		t.Fatal("zero value Nat should be usable as zero")
	}
	if got := z.Add(NatFromUint64(5)); got.String() != "5" {
		t.Fatalf("0+5 = %s", got)
	}
	if got := z.TrailingZeros(); got != 0 {
		t.Fatalf("TrailingZeros of zero = %d, want 0", got)
	}
	if got := z.Bit(0); got != 0 {
		t.Fatalf("Bit(0) of zero = %d, want 0", got)
	}
}

func TestNatSubUnderflow(t *testing.T) {
	a := NatFromUint64(3)
	b := NatFromUint64(5)
	if _, err := a.Sub(b); !errors.Is(err, ErrUnderflow) {
		t.Fatal("3-5 should be ErrUnderflow")
	}
	d, err := b.Sub(a)
	if err != nil || d.String() != "2" {
		t.Fatalf("5-3 = (%v, %v)", d, err)
	}
}

func TestNatDivRemByZero(t *testing.T) {
	if _, _, err := NatFromUint64(1).DivRem(Nat{}); !errors.Is(err, ErrDivisionByZero) {
		t.Fatal("division by zero should be ErrDivisionByZero")
	}
}

func TestNatLimbsRoundTrip(t *testing.T) {
	limbs := []Word{7, 0, 42, 0, 0}
	x := NatFromLimbs(limbs)
	got := x.Limbs()
	if len(got) != 3 || got[0] != 7 || got[1] != 0 || got[2] != 42 {
		t.Fatalf("Limbs() = %v, want canonical [7 0 42]", got)
	}
	if NatFromLimbs(got).Cmp(x) != 0 {
		t.Fatal("limbs round trip mismatch")
	}
	if NatFromLimbs(nil).Limbs() != nil {
		t.Fatal("zero should have nil limbs")
	}

	// The returned slice is a copy; mutating it must not affect x.
	got[0] = 99
	if x.Limbs()[0] != 7 {
		t.Fatal("Limbs() exposed internal storage")
	}
}

func TestNatUint64Overflow(t *testing.T) {
	big := NatFromUint64(math.MaxUint64).Add(NatFromUint64(1))
	if _, err := big.Uint64(); !errors.Is(err, ErrOverflow) {
		t.Fatal("2^64 should overflow uint64")
	}
	v, err := NatFromUint64(math.MaxUint64).Uint64()
	if err != nil || v != math.MaxUint64 {
		t.Fatal("max uint64 should round trip")
	}
}

func TestNatFloat64Exact(t *testing.T) {
	for _, v := range []uint64{0, 1, 1 << 52, 1<<53 - 1} {
		f, err := NatFromUint64(v).Float64()
		if err != nil || f != float64(v) {
			t.Fatalf("Float64(%d) = (%v, %v)", v, f, err)
		}
	}
}

func TestNatFloat64Rounding(t *testing.T) {
	one := NatFromUint64(1)

	// 2^53 + 1 is the first integer float64 cannot represent; it rounds
	// down to 2^53 (ties to even).
	x := one.Lsh(53).Add(one)
	f, err := x.Float64()
	if err != nil || f != math.Ldexp(1, 53) {
		t.Fatalf("2^53+1 = %v, want 2^53", f)
	}

	// 2^53 + 3 rounds up to 2^53 + 4.
	x = one.Lsh(53).Add(NatFromUint64(3))
	f, _ = x.Float64()
	if f != math.Ldexp(1, 53)+4 {
		t.Fatalf("2^53+3 = %v, want 2^53+4", f)
	}

	// The ulp at 2^200 is 2^148, so 2^200 + 2^147 sits exactly on the
	// midpoint and ties to the even mantissa, rounding down.
	x = one.Lsh(200).Add(one.Lsh(147))
	f, _ = x.Float64()
	if f != math.Ldexp(1, 200) {
		t.Fatalf("exact tie should round to even: %v", f)
	}

	// One extra sticky bit far below the midpoint breaks the tie upward.
	x = x.Add(one)
	f, _ = x.Float64()
	if f != math.Ldexp(1, 200)+math.Ldexp(1, 148) {
		t.Fatalf("sticky rounding wrong: %v", f)
	}
}

func TestNatFloat64Overflow(t *testing.T) {
	if _, err := NatFromUint64(1).Lsh(1024).Float64(); !errors.Is(err, ErrOverflow) {
		t.Fatal("2^1024 should overflow float64")
	}
	// The largest finite float64 is just below 2^1024.
	f, err := NatFromUint64(1).Lsh(1023).Float64()
	if err != nil || f != math.Ldexp(1, 1023) {
		t.Fatalf("2^1023 = (%v, %v)", f, err)
	}
	// All ones at 1024 bits rounds up past the float64 range.
	allOnes, _ := NatFromUint64(1).Lsh(1024).Sub(NatFromUint64(1))
	if _, err := allOnes.Float64(); !errors.Is(err, ErrOverflow) {
		t.Fatal("2^1024-1 rounds to 2^1024 and should overflow")
	}
}

func TestNatFromFloat64(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{0.99, "0"},
		{1, "1"},
		{3.75, "3"},
		{math.Ldexp(1, 100), "1267650600228229401496703205376"},
	}
	for _, c := range cases {
		got, err := NatFromFloat64(c.in)
		if err != nil || got.String() != c.want {
			t.Fatalf("NatFromFloat64(%v) = (%v, %v), want %s", c.in, got, err, c.want)
		}
	}

	if _, err := NatFromFloat64(math.NaN()); !errors.Is(err, ErrOverflow) {
		t.Fatal("NaN should be rejected")
	}
	if _, err := NatFromFloat64(math.Inf(1)); !errors.Is(err, ErrOverflow) {
		t.Fatal("+Inf should be rejected")
	}
	if _, err := NatFromFloat64(-1); !errors.Is(err, ErrUnderflow) {
		t.Fatal("negative should be ErrUnderflow")
	}
}

func TestNatPowPublic(t *testing.T) {
	if got := NatFromUint64(0).Pow(0); got.String() != "1" {
		t.Fatal("0^0 should be 1")
	}
	if got := NatFromUint64(2).Pow(10); got.String() != "1024" {
		t.Fatalf("2^10 = %s", got)
	}
}

func TestNatGcd(t *testing.T) {
	cases := []struct{ a, b, want uint64 }{
		{0, 0, 0},
		{0, 9, 9},
		{12, 18, 6},
		{17, 31, 1},
		{1 << 20, 1 << 13, 1 << 13},
	}
	for _, c := range cases {
		got := NatFromUint64(c.a).Gcd(NatFromUint64(c.b))
		if v, _ := got.Uint64(); v != c.want {
			t.Fatalf("gcd(%d, %d) = %v, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestNatFormatVerbs(t *testing.T) {
	x := NatFromUint64(255)
	cases := []struct{ format, want string }{
		{"%d", "255"},
		{"%x", "ff"},
		{"%X", "FF"},
		{"%b", "11111111"},
		{"%o", "377"},
		{"%s", "255"},
		{"%v", "255"},
	}
	for _, c := range cases {
		if got := fmt.Sprintf(c.format, x); got != c.want {
			t.Fatalf("Sprintf(%q) = %q, want %q", c.format, got, c.want)
		}
	}
}
