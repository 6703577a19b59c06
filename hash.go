package apint

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hashing covers the canonical representation only, so equal values always
// hash equal regardless of how they were produced. Limbs are fed to the
// digest in little-endian byte order; Int prepends a sign byte so that n
// and -n hash differently.

// Hash returns a 64-bit seeded hash of x.
func (x Nat) Hash(seed uint64) uint64 {
	d := xxhash.NewWithSeed(seed)
	hashLimbs(d, x.abs)
	return d.Sum64()
}

// Hash returns a 64-bit seeded hash of x.
func (x Int) Hash(seed uint64) uint64 {
	d := xxhash.NewWithSeed(seed)
	sign := byte(0)
	if x.neg {
		sign = 1
	}
	d.Write([]byte{sign})
	hashLimbs(d, x.abs)
	return d.Sum64()
}

func hashLimbs(d *xxhash.Digest, abs nat) {
	var buf [8]byte
	for _, w := range abs {
		binary.LittleEndian.PutUint64(buf[:], uint64(w))
		d.Write(buf[:_W/8])
	}
}
