package assoc

import (
	"fmt"

	"github.com/npillmayer/assoc/rbtree"
)

// span is the key range of a TreeMap view. The zero span covers all keys in
// ascending order. Bounds are in the tree's order, independent of direction.
type span[K any] struct {
	lo, hi         K
	hasLo, hasHi   bool
	loIncl, hiIncl bool
	descending     bool
}

func (s span[K]) bounded() bool {
	return s.hasLo || s.hasHi
}

// SubMap returns a view of the entries with keys from from to to. Either bound
// is included if its flag is set. In a descending map, from is the greater key.
//
// SubMap returns ErrInvalidArgument if from lies after to, or if a bound lies
// outside the range of m.
func (m *TreeMap[K, V]) SubMap(from K, fromIncl bool, to K, toIncl bool) (*TreeMap[K, V], error) {
	m.init()
	if m.span.descending {
		return m.view(&to, toIncl, &from, fromIncl)
	}
	return m.view(&from, fromIncl, &to, toIncl)
}

// HeadMap returns a view of the entries with keys before to (including to if
// incl is set).
func (m *TreeMap[K, V]) HeadMap(to K, incl bool) (*TreeMap[K, V], error) {
	m.init()
	if m.span.descending {
		return m.view(&to, incl, nil, false)
	}
	return m.view(nil, false, &to, incl)
}

// TailMap returns a view of the entries with keys from from on (including from
// if incl is set).
func (m *TreeMap[K, V]) TailMap(from K, incl bool) (*TreeMap[K, V], error) {
	m.init()
	if m.span.descending {
		return m.view(nil, false, &from, incl)
	}
	return m.view(&from, incl, nil, false)
}

// Descending returns a view of m in reverse key order.
func (m *TreeMap[K, V]) Descending() *TreeMap[K, V] {
	m.init()
	s := m.span
	s.descending = !s.descending
	return &TreeMap[K, V]{tree: m.tree, span: s}
}

func (m *TreeMap[K, V]) view(lo *K, loIncl bool, hi *K, hiIncl bool) (*TreeMap[K, V], error) {
	s := m.span
	if lo != nil {
		if err := m.admit(*lo, loIncl); err != nil {
			return nil, err
		}
		s.lo, s.hasLo, s.loIncl = *lo, true, loIncl
	}
	if hi != nil {
		if err := m.admit(*hi, hiIncl); err != nil {
			return nil, err
		}
		s.hi, s.hasHi, s.hiIncl = *hi, true, hiIncl
	}
	if s.hasLo && s.hasHi {
		c, err := m.tree.Compare(s.lo, s.hi)
		if err != nil {
			return nil, err
		}
		if c > 0 {
			return nil, fmt.Errorf("%w: lower bound %v after upper bound %v", ErrInvalidArgument, s.lo, s.hi)
		}
	}
	T().Debugf("treemap: view lo=%v(%v) hi=%v(%v) descending=%v", s.lo, s.hasLo, s.hi, s.hasHi, s.descending)
	return &TreeMap[K, V]{tree: m.tree, span: s}, nil
}

// admit checks a new bound for a view derived from m. An inclusive bound has
// to lie within m's range; an exclusive bound may lie on one of m's exclusive
// bounds. The bound must be comparable with the keys in the tree.
func (m *TreeMap[K, V]) admit(k K, incl bool) error {
	if root := m.tree.Root(); root != nil {
		if _, err := m.tree.Compare(k, root.Key()); err != nil {
			return err
		}
	} else if _, err := m.tree.Compare(k, k); err != nil {
		return err
	}
	var ok bool
	var err error
	if incl {
		ok, err = m.inRange(k)
	} else {
		ok, err = m.inClosedRange(k)
	}
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: bound %v out of range", ErrInvalidArgument, k)
	}
	return nil
}

// --- Range tests -----------------------------------------------------------

func (m *TreeMap[K, V]) tooLow(k K) (bool, error) {
	if !m.span.hasLo {
		return false, nil
	}
	c, err := m.tree.Compare(k, m.span.lo)
	return c < 0 || (c == 0 && !m.span.loIncl), err
}

func (m *TreeMap[K, V]) tooHigh(k K) (bool, error) {
	if !m.span.hasHi {
		return false, nil
	}
	c, err := m.tree.Compare(k, m.span.hi)
	return c > 0 || (c == 0 && !m.span.hiIncl), err
}

func (m *TreeMap[K, V]) inRange(k K) (bool, error) {
	low, err := m.tooLow(k)
	if err != nil || low {
		return false, err
	}
	high, err := m.tooHigh(k)
	return !high, err
}

// inClosedRange is inRange with both bounds treated as inclusive.
func (m *TreeMap[K, V]) inClosedRange(k K) (bool, error) {
	if m.span.hasLo {
		if c, err := m.tree.Compare(k, m.span.lo); err != nil || c < 0 {
			return false, err
		}
	}
	if m.span.hasHi {
		if c, err := m.tree.Compare(k, m.span.hi); err != nil || c > 0 {
			return false, err
		}
	}
	return true, nil
}

// --- Navigation in tree order, clipped to the view's range -------------------

// within returns n if it lies inside the range, nil otherwise.
func (m *TreeMap[K, V]) within(n *rbtree.Node[K, V], err error) (*rbtree.Node[K, V], error) {
	if err != nil || n == nil {
		return nil, err
	}
	ok, err := m.inRange(n.Key())
	if err != nil || !ok {
		return nil, err
	}
	return n, nil
}

func (m *TreeMap[K, V]) absLowest() (*rbtree.Node[K, V], error) {
	switch {
	case !m.span.hasLo:
		return m.within(m.tree.First(), nil)
	case m.span.loIncl:
		return m.within(m.tree.Ceiling(m.span.lo))
	}
	return m.within(m.tree.Higher(m.span.lo))
}

func (m *TreeMap[K, V]) absHighest() (*rbtree.Node[K, V], error) {
	switch {
	case !m.span.hasHi:
		return m.within(m.tree.Last(), nil)
	case m.span.hiIncl:
		return m.within(m.tree.Floor(m.span.hi))
	}
	return m.within(m.tree.Lower(m.span.hi))
}

func (m *TreeMap[K, V]) absCeiling(k K) (*rbtree.Node[K, V], error) {
	if low, err := m.tooLow(k); err != nil || low {
		if err != nil {
			return nil, err
		}
		return m.absLowest()
	}
	return m.within(m.tree.Ceiling(k))
}

func (m *TreeMap[K, V]) absHigher(k K) (*rbtree.Node[K, V], error) {
	if low, err := m.tooLow(k); err != nil || low {
		if err != nil {
			return nil, err
		}
		return m.absLowest()
	}
	return m.within(m.tree.Higher(k))
}

func (m *TreeMap[K, V]) absFloor(k K) (*rbtree.Node[K, V], error) {
	if high, err := m.tooHigh(k); err != nil || high {
		if err != nil {
			return nil, err
		}
		return m.absHighest()
	}
	return m.within(m.tree.Floor(k))
}

func (m *TreeMap[K, V]) absLower(k K) (*rbtree.Node[K, V], error) {
	if high, err := m.tooHigh(k); err != nil || high {
		if err != nil {
			return nil, err
		}
		return m.absHighest()
	}
	return m.within(m.tree.Lower(k))
}
