// Base conversion suite for radices 2 through 36. Power-of-two radices pack
// and unpack bit groups directly. Other radices go through per-word digit
// groups using a precomputed per-radix table (digits per word, the word
// range radix^digitsPerWord and its division constants). Long inputs and
// outputs take divide-and-conquer paths over a cached table of radix powers.

package apint

import "math/bits"

const maxRadix = 36

const (
	lowerDigits = "0123456789abcdefghijklmnopqrstuvwxyz"
	upperDigits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// parseChunkLen and formatChunkLen bound, in limbs, the chunk handled by the
// quadratic conversion paths before divide-and-conquer splitting kicks in.
const (
	parseChunkLen  = 64
	formatChunkLen = 16
)

type radixInfo struct {
	digitsPerWord int  // digits that always fit in a single limb
	rangePerWord  Word // radix^digitsPerWord; non-power-of-two radices only
	isPow2        bool
	log2          uint    // bits per digit; power-of-two radices only
	fdRange       fastDiv // division by rangePerWord
	fdRadix       fastDiv // division by the radix itself
}

var radixTable [maxRadix + 1]radixInfo

func init() {
	for r := 2; r <= maxRadix; r++ {
		info := radixInfo{}
		if r&(r-1) == 0 {
			info.isPow2 = true
			info.log2 = uint(bits.TrailingZeros(uint(r)))
			info.digitsPerWord = _W / int(info.log2)
		} else {
			rangePerWord, dpw := Word(1), 0
			for {
				hi, lo := bits.Mul(rangePerWord, Word(r))
				if hi != 0 {
					break
				}
				rangePerWord = lo
				dpw++
			}
			info.digitsPerWord = dpw
			info.rangePerWord = rangePerWord
			info.fdRange = newFastDiv(rangePerWord)
		}
		info.fdRadix = newFastDiv(Word(r))
		radixTable[r] = info
	}
}

func checkRadix(radix int) {
	if radix < 2 || radix > maxRadix {
		panic("apint: radix out of range 2..36")
	}
}

// digitVal maps an ASCII digit byte to its value, case-insensitively, or -1.
func digitVal(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	}
	return -1
}

// parseNat converts a digit string in the given radix to a magnitude.
// The whole string is validated up front so that InvalidDigitError can
// report the exact offending position regardless of which numeric path
// processes the digits afterwards.
func parseNat(s string, radix int) (nat, error) {
	checkRadix(radix)
	if len(s) == 0 {
		return nil, ErrNoDigits
	}
	digits := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		d := digitVal(s[i])
		if d < 0 || d >= radix {
			return nil, &InvalidDigitError{Radix: radix, Pos: i}
		}
		digits[i] = byte(d)
	}
	info := &radixTable[radix]
	if info.isPow2 {
		return parsePow2(digits, info.log2), nil
	}
	return parseDigits(digits, radix), nil
}

// parsePow2 packs digit bits directly, least-significant digit last.
func parsePow2(digits []byte, log2 uint) nat {
	total := uint(len(digits)) * log2
	z := make(nat, (total+_W-1)/_W)
	var pos uint
	for i := len(digits) - 1; i >= 0; i-- {
		w := Word(digits[i])
		z[pos/_W] |= w << (pos % _W)
		if pos%_W+log2 > _W {
			z[pos/_W+1] = w >> (_W - pos%_W)
		}
		pos += log2
	}
	return z.norm()
}

// parseDigits converts validated digit values in a non-power-of-two radix.
func parseDigits(digits []byte, radix int) nat {
	info := &radixTable[radix]
	chunkDigits := parseChunkLen * info.digitsPerWord
	if len(digits) <= chunkDigits {
		return parseChunk(digits, radix)
	}

	// Cache radix^(chunkDigits << i) for the divide-and-conquer recursion.
	powers := []nat{natPow(natFromWord(info.rangePerWord), parseChunkLen)}
	for chunkDigits <= (len(digits)-1)>>uint(len(powers)) {
		last := powers[len(powers)-1]
		powers = append(powers, natMul(last, last))
	}
	return parseDC(digits, radix, chunkDigits, powers)
}

// parseDC splits the digit string in half, parses both halves recursively
// and combines them as high * radix^len(low) + low, with the radix power
// taken from the cached table.
func parseDC(digits []byte, radix, chunkDigits int, powers []nat) nat {
	if len(powers) == 0 {
		return parseChunk(digits, radix)
	}
	loLen := chunkDigits << uint(len(powers)-1)
	if len(digits) <= loLen {
		return parseDC(digits, radix, chunkDigits, powers[:len(powers)-1])
	}
	hi := parseDC(digits[:len(digits)-loLen], radix, chunkDigits, powers[:len(powers)-1])
	lo := parseDC(digits[len(digits)-loLen:], radix, chunkDigits, powers[:len(powers)-1])
	return natAdd(natMul(hi, powers[len(powers)-1]), lo)
}

// parseChunk accumulates digit groups of digitsPerWord at a time:
// acc = acc * rangePerWord + group. The leading group may be short; it is
// absorbed while the accumulator is still zero, where the multiplier is
// irrelevant.
func parseChunk(digits []byte, radix int) nat {
	info := &radixTable[radix]
	dpw := info.digitsPerWord

	acc := make(nat, 0, len(digits)/dpw+1)
	start := len(digits) % dpw
	if start > 0 {
		acc = accumulateGroup(acc, digits[:start], radix)
	}
	for i := start; i < len(digits); i += dpw {
		acc = accumulateGroup(acc, digits[i:i+dpw], radix)
	}
	return acc.norm()
}

func accumulateGroup(acc nat, group []byte, radix int) nat {
	info := &radixTable[radix]
	var w Word
	for _, d := range group {
		w = w*Word(radix) + Word(d)
	}
	carry := mulAddVWW(acc, acc, info.rangePerWord, w)
	if carry != 0 {
		acc = append(acc, carry)
	}
	return acc
}

// formatNat renders a magnitude in the given radix. Sign and prefixes are
// the caller's concern.
func formatNat(x nat, radix int, upper bool) string {
	checkRadix(radix)
	if len(x) == 0 {
		return "0"
	}
	alpha := lowerDigits
	if upper {
		alpha = upperDigits
	}
	info := &radixTable[radix]
	if info.isPow2 {
		return string(formatPow2(x, info.log2, alpha))
	}
	if len(x) <= formatChunkLen {
		return string(appendChunk(nil, x, radix, 0, alpha))
	}
	return string(formatLarge(x, radix, alpha))
}

// formatPow2 extracts digit-sized bit groups from the top down.
func formatPow2(x nat, log2 uint, alpha string) []byte {
	digits := (x.bitLen() + log2 - 1) / log2
	out := make([]byte, 0, digits)
	mask := Word(1)<<log2 - 1
	for i := int(digits) - 1; i >= 0; i-- {
		pos := uint(i) * log2
		j, off := pos/_W, pos%_W
		v := x[j] >> off
		if off+log2 > _W && int(j)+1 < len(x) {
			v |= x[j+1] << (_W - off)
		}
		out = append(out, alpha[v&mask])
	}
	return out
}

// formatLarge splits the magnitude by cached powers radix^(chunkDigits<<i),
// recursing on quotient and remainder and zero-padding the low half to its
// expected digit count.
func formatLarge(x nat, radix int, alpha string) []byte {
	info := &radixTable[radix]
	chunkDigits := formatChunkLen * info.digitsPerWord

	powers := []nat{natPow(natFromWord(info.rangePerWord), formatChunkLen)}
	for {
		last := powers[len(powers)-1]
		if x.cmp(last) < 0 {
			break
		}
		// Skip the square if its length already exceeds the number's.
		if 2*len(last)-1 > len(x) {
			powers = append(powers, nil) // sentinel: larger than x
			break
		}
		powers = append(powers, natMul(last, last))
	}

	var out []byte
	var rec func(x nat, k int, minDigits int)
	rec = func(x nat, k int, minDigits int) {
		if k < 0 {
			out = appendChunk(out, x, radix, minDigits, alpha)
			return
		}
		p := powers[k]
		if p == nil || x.cmp(p) < 0 {
			rec(x, k-1, minDigits)
			return
		}
		loDigits := chunkDigits << uint(k)
		q, r := natDivRem(x, p)
		rec(q, k-1, max(minDigits-loDigits, 0))
		rec(r, k-1, loDigits)
	}
	rec(x, len(powers)-1, 0)
	return out
}

// appendChunk renders a chunk-sized magnitude by repeated division by
// rangePerWord, zero-padding the result on the left to minDigits.
func appendChunk(dst []byte, x nat, radix int, minDigits int, alpha string) []byte {
	info := &radixTable[radix]
	dpw := info.digitsPerWord

	buf := x.clone()
	var groups []Word
	for len(buf) > 1 {
		var r Word
		buf, r = natDivByWord(buf, info.rangePerWord)
		groups = append(groups, r)
	}
	var top Word
	if len(buf) == 1 {
		top = buf[0]
	}

	count := len(groups)*dpw + wordDigitCount(top, info)
	for i := count; i < minDigits; i++ {
		dst = append(dst, alpha[0])
	}
	dst = appendWordDigits(dst, top, radix, 1, alpha)
	for i := len(groups) - 1; i >= 0; i-- {
		dst = appendWordDigits(dst, groups[i], radix, dpw, alpha)
	}
	return dst
}

// wordDigitCount reports how many digits appendWordDigits will emit for the
// top group (at least one).
func wordDigitCount(w Word, info *radixInfo) int {
	n := 1
	q, _ := info.fdRadix.divRem(w)
	for q != 0 {
		n++
		q, _ = info.fdRadix.divRem(q)
	}
	return n
}

// appendWordDigits renders a single word most-significant digit first,
// zero-padded to minDigits.
func appendWordDigits(dst []byte, w Word, radix int, minDigits int, alpha string) []byte {
	info := &radixTable[radix]
	var buf [_W]byte
	i := len(buf)
	for w != 0 || len(buf)-i < minDigits {
		var r Word
		w, r = info.fdRadix.divRem(w)
		i--
		buf[i] = alpha[r]
	}
	return append(dst, buf[i:]...)
}
