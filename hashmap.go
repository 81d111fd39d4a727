package assoc

import (
	"fmt"
	"iter"
	"math"

	"github.com/npillmayer/assoc/modtrack"
)

// HashMap is a hash table with chained bins which escalate to red-black trees
// under collision load.
//
// A HashMap created by
//
//	var m HashMap[string, int]
//
// is a valid, empty map with default configuration. HashMaps are not safe for
// concurrent use.
type HashMap[K comparable, V any] struct {
	table      []bin[K, V]
	size       int
	threshold  int
	capacity   int // initial table size, used when the table is allocated
	loadFactor float64
	hasher     func(K) uint64
	equal      func(a, b K) bool
	keyOrder   func(a, b K) int // optional tiebreak inside tree bins
	seq        uint64
	mods       modtrack.Counter
}

// NewHashMap creates an empty hash map.
//
// It returns ErrInvalidArgument for a negative capacity, a capacity which is not
// a power of two or an invalid load factor, and ErrCapacityExceeded for
// capacities above MaxCapacity.
func NewHashMap[K comparable, V any](cfg Config[K]) (*HashMap[K, V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	m := &HashMap[K, V]{}
	m.configure(cfg.normalized())
	return m, nil
}

func (m *HashMap[K, V]) configure(cfg Config[K]) {
	m.capacity = cfg.Capacity
	m.loadFactor = cfg.LoadFactor
	m.hasher = cfg.Hasher
	if m.hasher == nil {
		m.hasher = defaultHasher[K]()
	}
	m.equal = cfg.Equal
	if m.equal == nil {
		m.equal = defaultEqual[K]
		// with custom equality, key order may disagree with it
		m.keyOrder = staticOrder[K]()
	}
}

// init allocates the table on first use.
func (m *HashMap[K, V]) init() {
	if m.table != nil {
		return
	}
	if m.hasher == nil {
		m.configure(Config[K]{}.normalized())
	}
	m.table = make([]bin[K, V], m.capacity)
	m.threshold = thresholdFor(m.capacity, m.loadFactor)
}

func (m *HashMap[K, V]) hash(key K) uint64 {
	return spread(m.hasher(key))
}

func (m *HashMap[K, V]) newEntry(h uint64, key K, value V) *entry[K, V] {
	m.seq++
	return &entry[K, V]{hash: h, key: key, value: value, seq: m.seq}
}

// Size returns the number of entries.
func (m *HashMap[K, V]) Size() int {
	return m.size
}

// IsEmpty reports whether the map has no entries.
func (m *HashMap[K, V]) IsEmpty() bool {
	return m.size == 0
}

// Capacity returns the current table size.
func (m *HashMap[K, V]) Capacity() int {
	if m.table == nil {
		if m.capacity == 0 {
			return DefaultCapacity
		}
		return m.capacity
	}
	return len(m.table)
}

// Threshold returns the size above which the table will be doubled.
func (m *HashMap[K, V]) Threshold() int {
	if m.table == nil {
		c, lf := m.Capacity(), m.loadFactor
		if lf == 0 {
			lf = DefaultLoadFactor
		}
		return thresholdFor(c, lf)
	}
	return m.threshold
}

// getEntry locates the entry for key.
func (m *HashMap[K, V]) getEntry(key K) *entry[K, V] {
	if m.table == nil || m.size == 0 {
		return nil
	}
	h := m.hash(key)
	switch b := m.table[indexFor(h, len(m.table))].(type) {
	case *chainBin[K, V]:
		for e := b.head; e != nil; e = e.next {
			if e.hash == h && m.equal(e.key, key) {
				return e
			}
		}
	case *treeBin[K, V]:
		if n := m.findTreeNode(b.tree.Root(), h, key); n != nil {
			return n.Key()
		}
	}
	return nil
}

// Get returns the value stored for key.
func (m *HashMap[K, V]) Get(key K) (V, bool) {
	if e := m.getEntry(key); e != nil {
		return e.value, true
	}
	var zero V
	return zero, false
}

// GetOrDefault returns the value stored for key, or dflt if key is absent.
func (m *HashMap[K, V]) GetOrDefault(key K, dflt V) V {
	if e := m.getEntry(key); e != nil {
		return e.value
	}
	return dflt
}

// ContainsKey reports whether key is present.
func (m *HashMap[K, V]) ContainsKey(key K) bool {
	return m.getEntry(key) != nil
}

// Put stores value for key. If key was present, its value is replaced in
// place and the previous value is returned with replaced=true.
func (m *HashMap[K, V]) Put(key K, value V) (prev V, replaced bool) {
	return m.put(key, value, false)
}

// PutIfAbsent stores value for key only if key is absent. It returns the
// present value and true otherwise.
func (m *HashMap[K, V]) PutIfAbsent(key K, value V) (V, bool) {
	return m.put(key, value, true)
}

func (m *HashMap[K, V]) put(key K, value V, onlyIfAbsent bool) (prev V, replaced bool) {
	m.init()
	h := m.hash(key)
	i := indexFor(h, len(m.table))
	switch b := m.table[i].(type) {
	case nil:
		m.table[i] = &chainBin[K, V]{head: m.newEntry(h, key, value), n: 1}
	case *chainBin[K, V]:
		var last *entry[K, V]
		for e := b.head; e != nil; e = e.next {
			if e.hash == h && m.equal(e.key, key) {
				prev = e.value
				if !onlyIfAbsent {
					e.value = value
				}
				return prev, true
			}
			last = e
		}
		last.next = m.newEntry(h, key, value)
		b.n++
		if b.n >= TreeifyThreshold {
			m.size++
			m.mods.Touch()
			m.treeifyBin(i, b)
			m.growIfNeeded()
			return prev, false
		}
	case *treeBin[K, V]:
		if n := m.findTreeNode(b.tree.Root(), h, key); n != nil {
			e := n.Key()
			prev = e.value
			if !onlyIfAbsent {
				e.value = value
			}
			return prev, true
		}
		b.add(m.newEntry(h, key, value))
	}
	m.size++
	m.mods.Touch()
	m.growIfNeeded()
	return prev, false
}

func (m *HashMap[K, V]) growIfNeeded() {
	if m.size > m.threshold {
		m.resize()
	}
}

// treeifyBin converts the chain at slot i into a tree, or resizes the table
// if it is still too small for tree bins.
func (m *HashMap[K, V]) treeifyBin(i int, b *chainBin[K, V]) {
	if len(m.table) < MinTreeCapacity {
		T().Debugf("hashmap: chain of %d in table of %d, resizing instead of treeify", b.n, len(m.table))
		m.resize()
		return
	}
	T().Debugf("hashmap: treeify slot %d with %d entries", i, b.n)
	m.table[i] = m.treeify(b.head)
}

// Remove deletes key and returns its value.
func (m *HashMap[K, V]) Remove(key K) (V, bool) {
	var zero V
	if m.table == nil || m.size == 0 {
		return zero, false
	}
	h := m.hash(key)
	i := indexFor(h, len(m.table))
	switch b := m.table[i].(type) {
	case *chainBin[K, V]:
		var prev *entry[K, V]
		for e := b.head; e != nil; prev, e = e, e.next {
			if e.hash == h && m.equal(e.key, key) {
				m.unlinkChained(i, b, prev, e)
				return e.value, true
			}
		}
	case *treeBin[K, V]:
		if n := m.findTreeNode(b.tree.Root(), h, key); n != nil {
			e := m.unlinkTreed(i, b, n)
			return e.value, true
		}
	}
	return zero, false
}

// removeEntry deletes e itself, located by its stored hash and identity.
// Keys which do not equal themselves, like NaN, are removed as well.
func (m *HashMap[K, V]) removeEntry(e *entry[K, V]) bool {
	if m.table == nil || m.size == 0 {
		return false
	}
	i := indexFor(e.hash, len(m.table))
	switch b := m.table[i].(type) {
	case *chainBin[K, V]:
		var prev *entry[K, V]
		for p := b.head; p != nil; prev, p = p, p.next {
			if p == e {
				m.unlinkChained(i, b, prev, e)
				return true
			}
		}
	case *treeBin[K, V]:
		// binCompare ends with the arrival number, so e is found without key equality
		n, err := b.tree.Find(e)
		if err == nil && n != nil && n.Key() == e {
			m.unlinkTreed(i, b, n)
			return true
		}
	}
	return false
}

func (m *HashMap[K, V]) unlinkChained(i int, b *chainBin[K, V], prev, e *entry[K, V]) {
	if prev == nil {
		b.head = e.next
	} else {
		prev.next = e.next
	}
	e.next = nil
	b.n--
	if b.n == 0 {
		m.table[i] = nil
	}
	m.size--
	m.mods.Touch()
}

func (m *HashMap[K, V]) unlinkTreed(i int, b *treeBin[K, V], n *binNode[K, V]) *entry[K, V] {
	e := b.remove(n)
	m.size--
	m.mods.Touch()
	if b.len() <= UntreeifyThreshold {
		T().Debugf("hashmap: untreeify slot %d with %d entries", i, b.len())
		m.table[i] = m.untreeify(b)
	}
	return e
}

// Resize doubles the table. Each bin is split into the bins at the same index
// and at index+oldCapacity, by the hash bit which becomes significant.
// Entries are relinked, not copied, and keep their relative order.
//
// At MaxCapacity the table does not grow any further.
func (m *HashMap[K, V]) Resize() {
	m.init()
	m.resize()
}

func (m *HashMap[K, V]) resize() {
	oldCap := len(m.table)
	if oldCap >= MaxCapacity {
		m.threshold = math.MaxInt
		return
	}
	newCap := oldCap << 1
	T().Debugf("hashmap: resize %d -> %d at size %d", oldCap, newCap, m.size)
	newTab := make([]bin[K, V], newCap)
	for j, b := range m.table {
		if b == nil {
			continue
		}
		lo, hi := splitEntries(b.first(), uint64(oldCap))
		switch b := b.(type) {
		case *chainBin[K, V]:
			newTab[j] = lo.asChain()
			newTab[j+oldCap] = hi.asChain()
		case *treeBin[K, V]:
			newTab[j] = m.rebin(lo, b)
			newTab[j+oldCap] = m.rebin(hi, b)
		}
	}
	m.table = newTab
	m.threshold = thresholdFor(newCap, m.loadFactor)
	m.mods.Touch()
}

// Reserve grows the table until it has at least capacity slots.
// It returns ErrCapacityExceeded if capacity is above MaxCapacity.
func (m *HashMap[K, V]) Reserve(capacity int) error {
	if capacity < 0 {
		return fmt.Errorf("%w: capacity %d is negative", ErrInvalidArgument, capacity)
	}
	if capacity > MaxCapacity {
		return fmt.Errorf("%w: capacity %d > %d", ErrCapacityExceeded, capacity, MaxCapacity)
	}
	m.init()
	for want := tableSizeFor(capacity); len(m.table) < want; {
		m.resize()
	}
	return nil
}

// Clear removes all entries. The table keeps its capacity.
func (m *HashMap[K, V]) Clear() {
	if m.table != nil {
		clear(m.table)
	}
	m.size = 0
	m.mods.Touch()
}

// Keys returns all keys in iteration order.
func (m *HashMap[K, V]) Keys() []K {
	keys := make([]K, 0, m.size)
	m.each(func(e *entry[K, V]) {
		keys = append(keys, e.key)
	})
	return keys
}

// Values returns all values in iteration order.
func (m *HashMap[K, V]) Values() []V {
	values := make([]V, 0, m.size)
	m.each(func(e *entry[K, V]) {
		values = append(values, e.value)
	})
	return values
}

func (m *HashMap[K, V]) each(fn func(e *entry[K, V])) {
	for _, b := range m.table {
		if b == nil {
			continue
		}
		for e := b.first(); e != nil; e = e.next {
			fn(e)
		}
	}
}

// All returns a sequence over all key/value pairs, in bucket order.
//
// All panics with ErrConcurrentModification if the map is modified
// structurally while the sequence is being consumed.
func (m *HashMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := m.Iterator()
		for it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
		if err := it.Err(); err != nil {
			panic(err)
		}
	}
}

// Clone returns a copy of the map with the same configuration. Keys and
// values are copied shallowly.
func (m *HashMap[K, V]) Clone() *HashMap[K, V] {
	c := &HashMap[K, V]{
		capacity:   m.capacity,
		loadFactor: m.loadFactor,
		hasher:     m.hasher,
		equal:      m.equal,
		keyOrder:   m.keyOrder,
	}
	if m.table == nil {
		return c
	}
	c.capacity = len(m.table)
	c.init()
	m.each(func(e *entry[K, V]) {
		c.Put(e.key, e.value)
	})
	return c
}

// ContainsValue reports whether some key maps to v. It runs in O(n).
func ContainsValue[K comparable, V comparable](m *HashMap[K, V], v V) bool {
	found := false
	m.each(func(e *entry[K, V]) {
		found = found || e.value == v
	})
	return found
}

// BinStats summarizes the bins of a HashMap.
type BinStats struct {
	Capacity     int
	Size         int
	Empty        int
	Chains       int
	Trees        int
	LongestChain int
	LargestTree  int
}

// Stats returns statistics over the table's bins.
func (m *HashMap[K, V]) Stats() BinStats {
	s := BinStats{Capacity: m.Capacity(), Size: m.size}
	if m.table == nil {
		s.Empty = s.Capacity
		return s
	}
	for _, b := range m.table {
		switch b := b.(type) {
		case nil:
			s.Empty++
		case *chainBin[K, V]:
			s.Chains++
			s.LongestChain = max(s.LongestChain, b.n)
		case *treeBin[K, V]:
			s.Trees++
			s.LargestTree = max(s.LargestTree, b.len())
		}
	}
	return s
}
