package assoc

import "github.com/npillmayer/assoc/modtrack"

// HashIterator iterates over the entries of a HashMap in bucket order, and
// within a bucket in arrival order.
//
// HashIterators are fail-fast, see package documentation.
type HashIterator[K comparable, V any] struct {
	m       *HashMap[K, V]
	next    *entry[K, V]
	current *entry[K, V]
	index   int // next slot to scan
	stamp   modtrack.Stamp
	step    modtrack.Step
	err     error
}

var _ Iterator[int, int] = (*HashIterator[int, int])(nil)

// Iterator returns an iterator over all entries of m.
func (m *HashMap[K, V]) Iterator() *HashIterator[K, V] {
	it := &HashIterator[K, V]{m: m, stamp: m.mods.Stamp()}
	it.scan()
	return it
}

// scan moves next to the first entry of the next non-empty slot.
func (it *HashIterator[K, V]) scan() {
	for it.next == nil && it.index < len(it.m.table) {
		if b := it.m.table[it.index]; b != nil {
			it.next = b.first()
		}
		it.index++
	}
}

// Next advances the iterator and reports whether there is a current entry.
func (it *HashIterator[K, V]) Next() bool {
	if it.err != nil {
		return false
	}
	if err := it.stamp.Check(); err != nil {
		it.err = err
		it.current = nil
		return false
	}
	if it.next == nil {
		it.current = nil
		it.step.Reset()
		return false
	}
	it.current = it.next
	it.next = it.current.next
	if it.next == nil {
		it.scan()
	}
	it.step.Advance()
	return true
}

// Key returns the current key.
func (it *HashIterator[K, V]) Key() K {
	if it.current == nil {
		var zero K
		return zero
	}
	return it.current.key
}

// Value returns the current value.
func (it *HashIterator[K, V]) Value() V {
	if it.current == nil {
		var zero V
		return zero
	}
	return it.current.value
}

// SetValue replaces the current entry's value. This is not a structural
// modification.
func (it *HashIterator[K, V]) SetValue(v V) (V, error) {
	var zero V
	if !it.step.Armed() || it.current == nil {
		return zero, ErrIllegalIteratorState
	}
	if err := it.stamp.Check(); err != nil {
		it.err = err
		return zero, err
	}
	prev := it.current.value
	it.current.value = v
	return prev, nil
}

// Remove deletes the current entry from the map. It may be called once per
// call of Next.
func (it *HashIterator[K, V]) Remove() error {
	if err := it.step.Consume(); err != nil {
		return err
	}
	if err := it.stamp.Check(); err != nil {
		it.err = err
		return err
	}
	ok := it.m.removeEntry(it.current)
	assert(ok, "iterator's current entry not found in map")
	it.current = nil
	it.stamp.Sync()
	return nil
}

// Err returns the error which ended the iteration, if any.
func (it *HashIterator[K, V]) Err() error {
	return it.err
}
