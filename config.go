package assoc

import (
	"fmt"
	"math"
	"math/bits"
)

const (
	// DefaultCapacity is the initial table size of a HashMap.
	DefaultCapacity = 16
	// DefaultLoadFactor is the fill ratio at which a HashMap doubles its table.
	DefaultLoadFactor = 0.75
	// MaxCapacity is the largest table size of a HashMap.
	MaxCapacity = 1 << 30
	// TreeifyThreshold is the chain length at which a bin becomes a tree.
	TreeifyThreshold = 8
	// UntreeifyThreshold is the entry count at or below which a tree bin
	// reverts to a chain.
	UntreeifyThreshold = 6
	// MinTreeCapacity is the smallest table size for which bins are treeified.
	// Smaller tables are resized instead.
	MinTreeCapacity = 64
)

// Config configures a HashMap or a TreeMap.
//
// The zero value is a valid configuration. A zero Capacity or LoadFactor
// selects the default, it is not an error. Negative values are rejected
// with ErrInvalidArgument.
type Config[K any] struct {
	// Capacity is the initial table size of a HashMap. It must be a power of
	// two; 0 selects DefaultCapacity, a negative value is ErrInvalidArgument.
	Capacity int
	// LoadFactor is the resize trigger of a HashMap; 0 selects
	// DefaultLoadFactor. Negative, NaN and infinite values are ErrInvalidArgument.
	LoadFactor float64
	// Hasher hashes keys of a HashMap. If nil, integers hash to their value,
	// strings are hashed with xxHash and other comparable keys with the
	// runtime's hash function (see hash/maphash).
	Hasher func(key K) uint64
	// Equal overrides key equality of a HashMap. It has to be consistent with
	// Hasher. If nil, keys are compared with ==.
	Equal func(a, b K) bool
	// Comparator orders the keys of a TreeMap. If nil, the keys' natural order
	// is used. HashMaps ignore it.
	Comparator func(a, b K) int
}

func (cfg Config[K]) normalized() Config[K] {
	if cfg.Capacity == 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.LoadFactor == 0 {
		cfg.LoadFactor = DefaultLoadFactor
	}
	return cfg
}

func (cfg Config[K]) validate() error {
	cfg = cfg.normalized()
	if cfg.Capacity < 0 {
		return fmt.Errorf("%w: capacity %d is negative", ErrInvalidArgument, cfg.Capacity)
	}
	if cfg.Capacity > MaxCapacity {
		return fmt.Errorf("%w: capacity %d > %d", ErrCapacityExceeded, cfg.Capacity, MaxCapacity)
	}
	if bits.OnesCount(uint(cfg.Capacity)) != 1 {
		return fmt.Errorf("%w: capacity %d is not a power of two", ErrInvalidArgument, cfg.Capacity)
	}
	if cfg.LoadFactor < 0 || math.IsNaN(cfg.LoadFactor) || math.IsInf(cfg.LoadFactor, 0) {
		return fmt.Errorf("%w: load factor %v", ErrInvalidArgument, cfg.LoadFactor)
	}
	return nil
}

// thresholdFor returns the resize threshold for a table of size capacity.
func thresholdFor(capacity int, loadFactor float64) int {
	ft := float64(capacity) * loadFactor
	if capacity >= MaxCapacity || ft >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(ft)
}

// tableSizeFor returns the smallest power of two >= n, n > 0.
func tableSizeFor(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
