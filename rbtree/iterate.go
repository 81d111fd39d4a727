package rbtree

import (
	"iter"

	"github.com/npillmayer/assoc/modtrack"
)

// Fence tells an iterator where to stop. It returns true for the first node
// which lies outside the iteration range.
type Fence[K, V any] func(n *Node[K, V]) (bool, error)

// Iterator walks a tree in key order, ascending or descending.
//
// Iterators are fail-fast: a structural modification of the tree not made
// through the iterator itself makes the next call of Next return false, with
// Err reporting modtrack.ErrConcurrentModification.
//
// Typical use:
//
//	it := tree.Iterator()
//	for it.Next() {
//	    fmt.Println(it.Key(), it.Value())
//	}
//	if err := it.Err(); err != nil { … }
type Iterator[K, V any] struct {
	tree       *Tree[K, V]
	next       *Node[K, V]
	current    *Node[K, V]
	fence      Fence[K, V]
	descending bool
	stamp      modtrack.Stamp
	step       modtrack.Step
	err        error
}

// Iterator returns an ascending iterator over all nodes.
func (t *Tree[K, V]) Iterator() *Iterator[K, V] {
	return t.IteratorFrom(t.First(), false, nil)
}

// DescendingIterator returns a descending iterator over all nodes.
func (t *Tree[K, V]) DescendingIterator() *Iterator[K, V] {
	return t.IteratorFrom(t.Last(), true, nil)
}

// IteratorFrom returns an iterator starting at node start (which may be nil
// for an empty iteration), walking successors or, if descending is set,
// predecessors. An optional fence ends the iteration early.
func (t *Tree[K, V]) IteratorFrom(start *Node[K, V], descending bool, fence Fence[K, V]) *Iterator[K, V] {
	return &Iterator[K, V]{
		tree:       t,
		next:       start,
		fence:      fence,
		descending: descending,
		stamp:      t.mods.Stamp(),
	}
}

// Next advances the iterator and reports whether there is a current node.
func (it *Iterator[K, V]) Next() bool {
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
	if it.fence != nil {
		stop, err := it.fence(it.next)
		if err != nil || stop {
			it.err = err
			it.next, it.current = nil, nil
			it.step.Reset()
			return false
		}
	}
	it.current = it.next
	if it.descending {
		it.next = Predecessor(it.current)
	} else {
		it.next = Successor(it.current)
	}
	it.step.Advance()
	return true
}

// Node returns the current node. It is nil before the first call of Next, after
// the iteration ended and after Remove.
func (it *Iterator[K, V]) Node() *Node[K, V] {
	return it.current
}

// Key returns the current key.
func (it *Iterator[K, V]) Key() K {
	if it.current == nil {
		var zero K
		return zero
	}
	return it.current.key
}

// Value returns the current value.
func (it *Iterator[K, V]) Value() V {
	if it.current == nil {
		var zero V
		return zero
	}
	return it.current.value
}

// Remove deletes the current node from the tree. It may be called once per
// call of Next.
func (it *Iterator[K, V]) Remove() error {
	if err := it.step.Consume(); err != nil {
		return err
	}
	if err := it.stamp.Check(); err != nil {
		it.err = err
		return err
	}
	assert(it.current != nil, "iterator step armed without current node")
	if !it.descending && it.current.left != nil && it.current.right != nil {
		// the successor's entry is about to move into current
		it.next = it.current
	}
	it.tree.DeleteNode(it.current)
	it.current = nil
	it.stamp.Sync()
	return nil
}

// Err returns the error which ended the iteration, if any.
func (it *Iterator[K, V]) Err() error {
	return it.err
}

// Abort ends the iteration with err. Subsequent calls of Next return false.
func (it *Iterator[K, V]) Abort(err error) {
	it.err = err
	it.next, it.current = nil, nil
	it.step.Reset()
}

// All returns a sequence over all key/value pairs in ascending order.
//
// All panics with modtrack.ErrConcurrentModification if the tree is modified
// structurally while the sequence is being consumed.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := t.Iterator()
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

// Walk calls fn for every node in ascending order. Walk stops early if fn
// returns false. fn must not modify the tree structurally.
func (t *Tree[K, V]) Walk(fn func(n *Node[K, V]) bool) {
	if t == nil || fn == nil {
		return
	}
	for n := t.First(); n != nil; n = Successor(n) {
		if !fn(n) {
			return
		}
	}
}
