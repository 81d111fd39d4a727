package assoc

import (
	"cmp"
	"fmt"
	"io"
	"iter"

	"github.com/npillmayer/assoc/rbtree"
)

// TreeMap is an ordered map on top of a red-black tree.
//
// A TreeMap is either a whole map or a view onto a key range of another
// TreeMap (see SubMap). Views share the tree of the map they were derived
// from: changes through a view are visible in the map, and vice versa.
//
// A zero TreeMap is an empty map ordered by the keys' natural order.
// TreeMaps are not safe for concurrent use.
type TreeMap[K, V any] struct {
	tree *rbtree.Tree[K, V]
	span span[K]
}

// TreeIterator iterates over the entries of a TreeMap in key order.
type TreeIterator[K, V any] = rbtree.Iterator[K, V]

var _ Iterator[int, int] = (*TreeIterator[int, int])(nil)

// NewTreeMap creates an empty TreeMap. Keys are ordered by cfg.Comparator,
// or by their natural order if it is nil: built-in ordered types, types
// implementing Comparable, and interface keys holding either of these.
//
// A panicking comparator is reported as ErrTypeMismatch by the operation
// which called it. Capacity, load factor, hasher and equality of cfg are
// ignored.
func NewTreeMap[K, V any](cfg Config[K]) *TreeMap[K, V] {
	c := naturalOrder[K]()
	if cfg.Comparator != nil {
		c = guarded(cfg.Comparator)
	}
	tree, err := rbtree.New[K, V](c)
	assert(err == nil, "cannot create tree")
	return &TreeMap[K, V]{tree: tree}
}

// NewOrderedTreeMap creates an empty TreeMap for keys of a built-in ordered type.
func NewOrderedTreeMap[K cmp.Ordered, V any]() *TreeMap[K, V] {
	tree, err := rbtree.New[K, V](func(a, b K) (int, error) {
		return cmp.Compare(a, b), nil
	})
	assert(err == nil, "cannot create tree")
	return &TreeMap[K, V]{tree: tree}
}

func (m *TreeMap[K, V]) init() {
	if m.tree == nil {
		m.tree, _ = rbtree.New[K, V](naturalOrder[K]())
	}
}

// Get returns the value stored for key.
func (m *TreeMap[K, V]) Get(key K) (V, bool, error) {
	m.init()
	var zero V
	if ok, err := m.inRange(key); !ok || err != nil {
		return zero, false, err
	}
	return m.tree.Get(key)
}

// ContainsKey reports whether key is present.
func (m *TreeMap[K, V]) ContainsKey(key K) (bool, error) {
	_, ok, err := m.Get(key)
	return ok, err
}

// Put stores value for key. If key was present, its value is replaced and the
// previous value is returned with replaced=true.
//
// Put on a view returns ErrInvalidArgument for keys outside the view's range.
// If key cannot be compared, Put returns ErrTypeMismatch and leaves the map
// unchanged.
func (m *TreeMap[K, V]) Put(key K, value V) (prev V, replaced bool, err error) {
	m.init()
	ok, err := m.inRange(key)
	if err != nil {
		return prev, false, err
	}
	if !ok {
		return prev, false, fmt.Errorf("%w: key %v out of range", ErrInvalidArgument, key)
	}
	return m.tree.Insert(key, value)
}

// Remove deletes key and returns its value.
func (m *TreeMap[K, V]) Remove(key K) (V, bool, error) {
	m.init()
	var zero V
	if ok, err := m.inRange(key); !ok || err != nil {
		return zero, false, err
	}
	return m.tree.Delete(key)
}

// Size returns the number of entries. For views it runs in O(n).
func (m *TreeMap[K, V]) Size() int {
	m.init()
	if !m.span.bounded() {
		return m.tree.Len()
	}
	n := 0
	it := m.Iterator()
	for it.Next() {
		n++
	}
	if err := it.Err(); err != nil {
		T().Errorf("treemap: size of view: %v", err)
	}
	return n
}

// IsEmpty reports whether the map has no entries.
func (m *TreeMap[K, V]) IsEmpty() bool {
	_, ok, _ := m.First()
	return !ok
}

// Clear removes all entries. For a view, only the entries within its range
// are removed.
func (m *TreeMap[K, V]) Clear() {
	m.init()
	if !m.span.bounded() {
		m.tree.Clear()
		return
	}
	it := m.Iterator()
	for it.Next() {
		_ = it.Remove()
	}
	if err := it.Err(); err != nil {
		T().Errorf("treemap: clear view: %v", err)
	}
}

// First returns the entry with the least key.
func (m *TreeMap[K, V]) First() (Entry[K, V], bool, error) {
	m.init()
	return entryOf(m.first())
}

// Last returns the entry with the greatest key.
func (m *TreeMap[K, V]) Last() (Entry[K, V], bool, error) {
	m.init()
	return entryOf(m.last())
}

// Floor returns the entry with the greatest key less than or equal to key.
func (m *TreeMap[K, V]) Floor(key K) (Entry[K, V], bool, error) {
	m.init()
	if m.span.descending {
		return entryOf(m.absCeiling(key))
	}
	return entryOf(m.absFloor(key))
}

// Ceiling returns the entry with the least key greater than or equal to key.
func (m *TreeMap[K, V]) Ceiling(key K) (Entry[K, V], bool, error) {
	m.init()
	if m.span.descending {
		return entryOf(m.absFloor(key))
	}
	return entryOf(m.absCeiling(key))
}

// Lower returns the entry with the greatest key strictly less than key.
func (m *TreeMap[K, V]) Lower(key K) (Entry[K, V], bool, error) {
	m.init()
	if m.span.descending {
		return entryOf(m.absHigher(key))
	}
	return entryOf(m.absLower(key))
}

// Higher returns the entry with the least key strictly greater than key.
func (m *TreeMap[K, V]) Higher(key K) (Entry[K, V], bool, error) {
	m.init()
	if m.span.descending {
		return entryOf(m.absLower(key))
	}
	return entryOf(m.absHigher(key))
}

// PollFirst removes and returns the entry with the least key.
func (m *TreeMap[K, V]) PollFirst() (Entry[K, V], bool, error) {
	m.init()
	return m.poll(m.first())
}

// PollLast removes and returns the entry with the greatest key.
func (m *TreeMap[K, V]) PollLast() (Entry[K, V], bool, error) {
	m.init()
	return m.poll(m.last())
}

func (m *TreeMap[K, V]) poll(n *rbtree.Node[K, V], err error) (Entry[K, V], bool, error) {
	e, ok, err := entryOf(n, err)
	if ok {
		m.tree.DeleteNode(n)
	}
	return e, ok, err
}

func (m *TreeMap[K, V]) first() (*rbtree.Node[K, V], error) {
	if m.span.descending {
		return m.absHighest()
	}
	return m.absLowest()
}

func (m *TreeMap[K, V]) last() (*rbtree.Node[K, V], error) {
	if m.span.descending {
		return m.absLowest()
	}
	return m.absHighest()
}

func entryOf[K, V any](n *rbtree.Node[K, V], err error) (Entry[K, V], bool, error) {
	if err != nil || n == nil {
		return Entry[K, V]{}, false, err
	}
	return Entry[K, V]{Key: n.Key(), Value: n.Value()}, true, nil
}

// Iterator returns an iterator over the entries in key order.
func (m *TreeMap[K, V]) Iterator() *TreeIterator[K, V] {
	m.init()
	return m.iterator(m.span.descending)
}

// DescendingIterator returns an iterator over the entries in reverse key order.
func (m *TreeMap[K, V]) DescendingIterator() *TreeIterator[K, V] {
	m.init()
	return m.iterator(!m.span.descending)
}

func (m *TreeMap[K, V]) iterator(descending bool) *TreeIterator[K, V] {
	var start *rbtree.Node[K, V]
	var fence rbtree.Fence[K, V]
	var err error
	if descending {
		start, err = m.absHighest()
		if m.span.hasLo {
			fence = func(n *rbtree.Node[K, V]) (bool, error) {
				return m.tooLow(n.Key())
			}
		}
	} else {
		start, err = m.absLowest()
		if m.span.hasHi {
			fence = func(n *rbtree.Node[K, V]) (bool, error) {
				return m.tooHigh(n.Key())
			}
		}
	}
	it := m.tree.IteratorFrom(start, descending, fence)
	if err != nil {
		it.Abort(err)
	}
	return it
}

// All returns a sequence over all key/value pairs in key order.
//
// All panics if the map is modified structurally while the sequence is being
// consumed, or if keys cannot be compared.
func (m *TreeMap[K, V]) All() iter.Seq2[K, V] {
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

// Keys returns all keys in key order.
func (m *TreeMap[K, V]) Keys() ([]K, error) {
	var keys []K
	it := m.Iterator()
	for it.Next() {
		keys = append(keys, it.Key())
	}
	return keys, it.Err()
}

// Values returns all values in key order.
func (m *TreeMap[K, V]) Values() ([]V, error) {
	var values []V
	it := m.Iterator()
	for it.Next() {
		values = append(values, it.Value())
	}
	return values, it.Err()
}

// Check validates the red-black properties and the key order of the
// underlying tree. For views, the whole tree is checked.
func (m *TreeMap[K, V]) Check() error {
	m.init()
	if err := m.tree.Check(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvariant, err)
	}
	return nil
}

// Dump prints the underlying tree sideways to w, for debugging. If colored is
// set, red nodes are printed in red.
func (m *TreeMap[K, V]) Dump(w io.Writer, colored bool) {
	m.init()
	rbtree.Dump(m.tree, w, rbtree.DumpOptions[K, V]{Colored: colored})
}
