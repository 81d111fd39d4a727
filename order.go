package assoc

import (
	"cmp"
	"fmt"

	"github.com/npillmayer/assoc/rbtree"
)

// Comparable is implemented by key types which define their own total order.
// Compare returns a negative number, zero or a positive number if the
// receiver is less than, equal to or greater than other.
type Comparable[K any] interface {
	Compare(other K) int
}

// orderedComparators are the natural orders of the built-in ordered types.
var orderedComparators = []any{
	cmp.Compare[int], cmp.Compare[int8], cmp.Compare[int16], cmp.Compare[int32], cmp.Compare[int64],
	cmp.Compare[uint], cmp.Compare[uint8], cmp.Compare[uint16], cmp.Compare[uint32], cmp.Compare[uint64],
	cmp.Compare[uintptr], cmp.Compare[float32], cmp.Compare[float64], cmp.Compare[string],
}

// staticOrder returns the natural order of K if K is a built-in ordered type
// or implements Comparable[K]. Such an order never fails.
func staticOrder[K any]() func(a, b K) int {
	for _, c := range orderedComparators {
		if f, ok := c.(func(K, K) int); ok {
			return f
		}
	}
	var zero K
	if _, ok := any(zero).(Comparable[K]); ok {
		return func(a, b K) int {
			return any(a).(Comparable[K]).Compare(b)
		}
	}
	return nil
}

// naturalOrder returns the natural order of K as a tree comparison.
//
// For interface key types the order is decided per comparison by the
// dynamic types of the keys, which may fail with ErrTypeMismatch. Other
// types without a natural order fail on every comparison.
func naturalOrder[K any]() rbtree.Compare[K] {
	if f := staticOrder[K](); f != nil {
		return func(a, b K) (int, error) {
			return f(a, b), nil
		}
	}
	var zero K
	if any(zero) == nil {
		return dynamicCompare[K]
	}
	return func(a, b K) (int, error) {
		return 0, fmt.Errorf("%w: %T has no natural order", ErrTypeMismatch, zero)
	}
}

func dynamicCompare[K any](a, b K) (int, error) {
	x, y := any(a), any(b)
	if x == nil || y == nil {
		return 0, fmt.Errorf("%w: nil key has no natural order", ErrTypeMismatch)
	}
	if c, ok := x.(Comparable[K]); ok {
		if _, ok = y.(Comparable[K]); ok {
			return c.Compare(b), nil
		}
	}
	var r int
	var ok bool
	switch xv := x.(type) {
	case int:
		r, ok = compareAs(xv, y)
	case int8:
		r, ok = compareAs(xv, y)
	case int16:
		r, ok = compareAs(xv, y)
	case int32:
		r, ok = compareAs(xv, y)
	case int64:
		r, ok = compareAs(xv, y)
	case uint:
		r, ok = compareAs(xv, y)
	case uint8:
		r, ok = compareAs(xv, y)
	case uint16:
		r, ok = compareAs(xv, y)
	case uint32:
		r, ok = compareAs(xv, y)
	case uint64:
		r, ok = compareAs(xv, y)
	case uintptr:
		r, ok = compareAs(xv, y)
	case float32:
		r, ok = compareAs(xv, y)
	case float64:
		r, ok = compareAs(xv, y)
	case string:
		r, ok = compareAs(xv, y)
	}
	if !ok {
		return 0, fmt.Errorf("%w: cannot compare %T with %T", ErrTypeMismatch, x, y)
	}
	return r, nil
}

func compareAs[T cmp.Ordered](x T, y any) (int, bool) {
	yv, ok := y.(T)
	if !ok {
		return 0, false
	}
	return cmp.Compare(x, yv), true
}

// guarded turns a client comparator into a tree comparison. A panicking
// comparator is reported as ErrTypeMismatch; since trees compare before they
// mutate, the tree stays unchanged.
func guarded[K any](c func(a, b K) int) rbtree.Compare[K] {
	return func(a, b K) (r int, err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("%w: comparator failed: %v", ErrTypeMismatch, p)
			}
		}()
		return c(a, b), nil
	}
}
