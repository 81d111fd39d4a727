package assoc

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// spread folds the high bits of h into the low bits. Table indices are taken
// from the low bits only, so without spreading, hashes which differ in their
// upper half only would always collide.
func spread(h uint64) uint64 {
	h ^= h >> 32
	return h ^ (h >> 16)
}

// indexFor masks a spread hash to a table index. capacity is a power of two.
func indexFor(h uint64, capacity int) int {
	return int(h & uint64(capacity-1))
}

// identityHashers hash integer keys to their value, strings with xxHash.
// They are selected by the exact key type, so named types fall back to
// maphash.
var identityHashers = []any{
	func(k int) uint64 { return uint64(k) },
	func(k int8) uint64 { return uint64(k) },
	func(k int16) uint64 { return uint64(k) },
	func(k int32) uint64 { return uint64(k) },
	func(k int64) uint64 { return uint64(k) },
	func(k uint) uint64 { return uint64(k) },
	func(k uint8) uint64 { return uint64(k) },
	func(k uint16) uint64 { return uint64(k) },
	func(k uint32) uint64 { return uint64(k) },
	func(k uint64) uint64 { return k },
	func(k uintptr) uint64 { return uint64(k) },
	func(k string) uint64 { return xxhash.Sum64String(k) },
}

// defaultHasher selects a hash function for key type K.
//
// A nil interface key hashes to 0 and therefore always lands in slot 0.
func defaultHasher[K comparable]() func(K) uint64 {
	for _, h := range identityHashers {
		if hasher, ok := h.(func(K) uint64); ok {
			return hasher
		}
	}
	seed := maphash.MakeSeed()
	var zero K
	if any(zero) == nil { // K is an interface type
		return func(key K) uint64 {
			if any(key) == nil {
				return 0
			}
			return maphash.Comparable(seed, key)
		}
	}
	return func(key K) uint64 {
		return maphash.Comparable(seed, key)
	}
}

func defaultEqual[K comparable](a, b K) bool {
	return a == b
}
