package apint

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/big"
	"math/rand"
	"strings"
	"testing"
)

func TestParseNatBasics(t *testing.T) {
	cases := []struct {
		in    string
		radix int
		want  uint64
	}{
		{"0", 10, 0},
		{"00000", 10, 0},
		{"255", 10, 255},
		{"ff", 16, 255},
		{"FF", 16, 255},
		{"101", 2, 5},
		{"777", 8, 511},
		{"z", 36, 35},
		{"Z", 36, 35},
		{"10", 36, 36},
	}
	for _, c := range cases {
		got, err := ParseNat(c.in, c.radix)
		if err != nil {
			t.Fatalf("ParseNat(%q, %d): %v", c.in, c.radix, err)
		}
		v, _ := got.Uint64()
		if v != c.want {
			t.Fatalf("ParseNat(%q, %d) = %d, want %d", c.in, c.radix, v, c.want)
		}
	}
}

func TestParseNatErrors(t *testing.T) {
	if _, err := ParseNat("", 10); !errors.Is(err, ErrNoDigits) {
		t.Fatalf("empty string: got %v, want ErrNoDigits", err)
	}

	_, err := ParseNat("12x4", 10)
	var inv *InvalidDigitError
	if !errors.As(err, &inv) {
		t.Fatalf("bad digit: got %v, want InvalidDigitError", err)
	}
	if inv.Radix != 10 || inv.Pos != 2 {
		t.Fatalf("InvalidDigitError = %+v, want radix 10 at position 2", inv)
	}

	// 'a' is a digit in base 16 but not in base 10.
	if _, err := ParseNat("a", 10); err == nil {
		t.Fatal("digit above the radix should be rejected")
	}
	// '9' is out of range for base 8.
	_, err = ParseNat("1792", 8)
	if !errors.As(err, &inv) || inv.Pos != 2 {
		t.Fatalf("base-8 rejection = %v, want position 2", err)
	}
}

func TestParseNatRadixPanics(t *testing.T) {
	for _, radix := range []int{-1, 0, 1, 37, 100} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("radix %d should panic", radix)
				}
			}()
			ParseNat("0", radix)
		}()
	}
}

func TestFormatNatBasics(t *testing.T) {
	x := NatFromUint64(255)
	if got := x.Text(16); got != "ff" {
		t.Fatalf("255 in base 16 = %q, want \"ff\"", got)
	}
	if got := formatNat(x.abs, 16, true); got != "FF" {
		t.Fatalf("255 uppercase = %q, want \"FF\"", got)
	}
	if got := x.Text(2); got != "11111111" {
		t.Fatalf("255 in base 2 = %q", got)
	}
	if got := NatFromUint64(0).Text(7); got != "0" {
		t.Fatalf("zero = %q, want \"0\"", got)
	}
	if got := NatFromUint64(36).Text(36); got != "10" {
		t.Fatalf("36 in base 36 = %q, want \"10\"", got)
	}
}

// TestConversionRoundTrip crosses the chunked and divide-and-conquer size
// boundaries in both directions for every radix.
func TestConversionRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(40))
	sizes := []int{1, 2, formatChunkLen, formatChunkLen + 1, parseChunkLen, parseChunkLen + 1, 3 * parseChunkLen}
	for radix := 2; radix <= maxRadix; radix++ {
		for _, n := range sizes {
			x := randNat(rnd, n)
			s := formatNat(x, radix, false)
			back, err := parseNat(s, radix)
			if err != nil {
				t.Fatalf("radix %d, %d limbs: parse back failed: %v", radix, n, err)
			}
			if back.cmp(x) != 0 {
				t.Fatalf("radix %d, %d limbs: round trip mismatch", radix, n)
			}
		}
	}
}

func TestConversionOracle(t *testing.T) {
	rnd := rand.New(rand.NewSource(41))
	for _, radix := range []int{2, 3, 10, 16, 27, 36} {
		for _, n := range []int{1, 5, 40, 200} {
			x := randNat(rnd, n)
			if got, want := formatNat(x, radix, false), toBig(x).Text(radix); got != want {
				t.Fatalf("radix %d format mismatch:\n got %s\nwant %s", radix, got, want)
			}
		}
	}
}

func TestParseNatLongDecimal(t *testing.T) {
	// 10^100, written out, should parse to exactly the oracle value.
	s := "1" + strings.Repeat("0", 100)
	got, err := ParseNat(s, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := new(big.Int).Exp(big.NewInt(10), big.NewInt(100), nil)
	if toBig(got.abs).Cmp(want) != 0 {
		t.Fatal("10^100 parse mismatch")
	}
	if got.String() != s {
		t.Fatal("10^100 does not format back to its source")
	}
}

// rangeProduct computes the product lo * (lo+1) * ... * hi by binary
// splitting, keeping the multiplications balanced so Toom-3 engages.
func rangeProduct(lo, hi uint64) Nat {
	if hi-lo < 8 {
		p := NatFromUint64(lo)
		for k := lo + 1; k <= hi; k++ {
			p = p.Mul(NatFromUint64(k))
		}
		return p
	}
	mid := lo + (hi-lo)/2
	return rangeProduct(lo, mid).Mul(rangeProduct(mid+1, hi))
}

// TestFactorialMillionHex pushes one very large value through the full
// multiplication and formatting stacks and pins the result against known
// reference data for 1000000! in hexadecimal.
func TestFactorialMillionHex(t *testing.T) {
	if testing.Short() {
		t.Skip("multi-second factorial computation")
	}

	f := rangeProduct(2, 1000000)
	h := f.Text(16)

	if len(h) != 4622222 {
		t.Fatalf("1000000! has %d hex digits, want 4622222", len(h))
	}
	if got := h[:32]; got != "1c3ef0e25d2853931de0a0b9a02c63a7" {
		t.Fatalf("1000000! hex prefix = %s", got)
	}
	// The 2-adic valuation of 1000000! is 999993, so the hex expansion
	// ends in exactly 249998 zeros.
	if got := len(h) - len(strings.TrimRight(h, "0")); got != 249998 {
		t.Fatalf("1000000! has %d trailing hex zeros, want 249998", got)
	}
	digest := sha256.Sum256([]byte(h))
	if got := hex.EncodeToString(digest[:]); got != "fadd5dd17543f8b395cf2022c03763b956f638122d6251e4dd1cf6accc498d67" {
		t.Fatalf("1000000! hex digest = %s", got)
	}
}

func TestFormatPreservesLeadingInteriorZeros(t *testing.T) {
	// A value whose decimal expansion has long runs of zeros between the
	// divide-and-conquer halves.
	s := "5" + strings.Repeat("0", 137) + "3"
	x, err := ParseNat(s, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got := x.String(); got != s {
		t.Fatalf("interior zeros lost:\n got %s\nwant %s", got, s)
	}
}
