package assoc

import (
	"fmt"
	"math/bits"
)

// Check validates the structure of the map: table geometry, entry placement,
// bin bookkeeping and the red-black properties of tree bins. It returns an
// error wrapping ErrInvariant for the first violation found.
//
// Check is meant for tests and debugging; it runs in O(n + capacity).
func (m *HashMap[K, V]) Check() error {
	if m.table == nil {
		if m.size != 0 {
			return fmt.Errorf("%w: size %d without table", ErrInvariant, m.size)
		}
		return nil
	}
	capacity := len(m.table)
	if bits.OnesCount(uint(capacity)) != 1 || capacity > MaxCapacity {
		return fmt.Errorf("%w: capacity %d", ErrInvariant, capacity)
	}
	if m.size > m.threshold {
		return fmt.Errorf("%w: size %d above threshold %d", ErrInvariant, m.size, m.threshold)
	}
	count := 0
	for i, b := range m.table {
		if b == nil {
			continue
		}
		n, err := m.checkBin(i, b)
		if err != nil {
			return err
		}
		count += n
	}
	if count != m.size {
		return fmt.Errorf("%w: counted %d entries, size is %d", ErrInvariant, count, m.size)
	}
	return nil
}

func (m *HashMap[K, V]) checkBin(i int, b bin[K, V]) (int, error) {
	n := 0
	var prev *entry[K, V]
	for e := b.first(); e != nil; prev, e = e, e.next {
		if e.hash != m.hash(e.key) {
			return 0, fmt.Errorf("%w: slot %d: stale hash for key %v", ErrInvariant, i, e.key)
		}
		if indexFor(e.hash, len(m.table)) != i {
			return 0, fmt.Errorf("%w: key %v misplaced in slot %d", ErrInvariant, e.key, i)
		}
		n++
		switch b := b.(type) {
		case *chainBin[K, V]:
			if e.prev != nil {
				return 0, fmt.Errorf("%w: slot %d: back link in chain", ErrInvariant, i)
			}
		case *treeBin[K, V]:
			if e.prev != prev {
				return 0, fmt.Errorf("%w: slot %d: broken back link", ErrInvariant, i)
			}
			if node, err := b.tree.Find(e); err != nil || node == nil || node.Key() != e {
				return 0, fmt.Errorf("%w: slot %d: entry %v not in tree", ErrInvariant, i, e.key)
			}
			// keys like NaN cannot be looked up
			if m.equal(e.key, e.key) && m.findTreeNode(b.tree.Root(), e.hash, e.key) == nil {
				return 0, fmt.Errorf("%w: slot %d: key %v not in tree", ErrInvariant, i, e.key)
			}
		}
	}
	switch b := b.(type) {
	case *chainBin[K, V]:
		if n == 0 || n != b.n {
			return 0, fmt.Errorf("%w: slot %d: chain of %d, recorded %d", ErrInvariant, i, n, b.n)
		}
	case *treeBin[K, V]:
		if n != b.tree.Len() {
			return 0, fmt.Errorf("%w: slot %d: list of %d, tree of %d", ErrInvariant, i, n, b.tree.Len())
		}
		if b.tail != prev {
			return 0, fmt.Errorf("%w: slot %d: stale tail", ErrInvariant, i)
		}
		if n <= UntreeifyThreshold {
			return 0, fmt.Errorf("%w: slot %d: tree bin of %d entries", ErrInvariant, i, n)
		}
		if len(m.table) < MinTreeCapacity {
			return 0, fmt.Errorf("%w: tree bin in table of %d", ErrInvariant, len(m.table))
		}
		if err := b.tree.Check(); err != nil {
			return 0, fmt.Errorf("%w: slot %d: %v", ErrInvariant, i, err)
		}
	}
	return n, nil
}
