package hashtable

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// Hasher maps a key to a hash code. It must return the same code for equal
// keys, at least for the lifetime of any table that uses it.
type Hasher[K comparable] func(key K) uint64

// MaphashHasher returns a hasher for any comparable key type, using the
// runtime's own hash under the given seed.
func MaphashHasher[K comparable](seed maphash.Seed) Hasher[K] {
	return func(key K) uint64 { return maphash.Comparable(seed, key) }
}

// XXHash hashes strings with unseeded xxhash64, so codes (and therefore slot
// layouts) are the same in every process.
func XXHash(s string) uint64 { return xxhash.Sum64String(s) }

// SeededXXHash returns a string hasher using xxhash64 under the given seed.
func SeededXXHash(seed uint64) Hasher[string] {
	if seed == 0 {
		return XXHash
	}
	return func(s string) uint64 {
		d := xxhash.NewWithSeed(seed)
		d.WriteString(s)
		return d.Sum64()
	}
}
