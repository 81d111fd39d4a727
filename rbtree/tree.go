package rbtree

import (
	"fmt"

	"github.com/npillmayer/assoc/modtrack"
)

// Compare is a total order over keys. It returns a negative number, zero or a
// positive number if a is less than, equal to or greater than b. An error
// (usually wrapping ErrTypeMismatch) signals keys which cannot be compared.
type Compare[K any] func(a, b K) (int, error)

// Tree is a red-black tree mapping keys of type K to values of type V.
type Tree[K, V any] struct {
	root *Node[K, V]
	size int
	cmp  Compare[K]
	mods modtrack.Counter
}

// New creates an empty tree ordered by cmp.
func New[K, V any](cmp Compare[K]) (*Tree[K, V], error) {
	if cmp == nil {
		return nil, fmt.Errorf("%w: comparator is required", ErrInvalidConfig)
	}
	return &Tree[K, V]{cmp: cmp}, nil
}

// Len returns the number of nodes in the tree.
func (t *Tree[K, V]) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// IsEmpty reports whether the tree has no nodes.
func (t *Tree[K, V]) IsEmpty() bool {
	return t == nil || t.root == nil
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree[K, V]) Root() *Node[K, V] {
	if t == nil {
		return nil
	}
	return t.root
}

// Mods returns the tree's modification counter.
func (t *Tree[K, V]) Mods() *modtrack.Counter {
	return &t.mods
}

// Compare compares two keys with the tree's order.
func (t *Tree[K, V]) Compare(a, b K) (int, error) {
	return t.cmp(a, b)
}

// Clear drops all nodes.
func (t *Tree[K, V]) Clear() {
	t.root = nil
	t.size = 0
	t.mods.Touch()
}

// Find returns the node for key, or nil if key is not present.
// A key which cannot be compared is an error even if the tree is empty.
func (t *Tree[K, V]) Find(key K) (*Node[K, V], error) {
	if t.root == nil {
		_, err := t.cmp(key, key)
		return nil, err
	}
	n := t.root
	for n != nil {
		c, err := t.cmp(key, n.key)
		if err != nil {
			return nil, err
		}
		switch {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n, nil
		}
	}
	return nil, nil
}

// Get returns the value stored for key.
func (t *Tree[K, V]) Get(key K) (V, bool, error) {
	var zero V
	n, err := t.Find(key)
	if err != nil || n == nil {
		return zero, false, err
	}
	return n.value, true, nil
}

// Insert stores value for key. If key is already present, its value is
// replaced in place and the previous value is returned with replaced=true;
// this does not count as a structural modification.
//
// If a comparison fails, the tree is left unchanged.
func (t *Tree[K, V]) Insert(key K, value V) (prev V, replaced bool, err error) {
	if t.root == nil {
		if _, err = t.cmp(key, key); err != nil {
			return prev, false, err
		}
		t.root = &Node[K, V]{key: key, value: value, color: Black}
		t.size = 1
		t.mods.Touch()
		return prev, false, nil
	}
	var parent *Node[K, V]
	var c int
	n := t.root
	for n != nil {
		parent = n
		if c, err = t.cmp(key, n.key); err != nil {
			return prev, false, err
		}
		switch {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n.SetValue(value), true, nil
		}
	}
	x := &Node[K, V]{key: key, value: value, parent: parent, color: Red}
	if c < 0 {
		parent.left = x
	} else {
		parent.right = x
	}
	t.size++
	t.mods.Touch()
	t.fixAfterInsert(x)
	return prev, false, nil
}

// Delete removes key from the tree and returns its value.
//
// If a comparison fails, the tree is left unchanged.
func (t *Tree[K, V]) Delete(key K) (V, bool, error) {
	var zero V
	n, err := t.Find(key)
	if err != nil || n == nil {
		return zero, false, err
	}
	v := n.value
	t.DeleteNode(n)
	return v, true, nil
}

// DeleteNode unlinks node n, which must belong to t.
//
// If n has two children, its in-order successor's key and value are moved into
// n and the successor's node is unlinked instead. Callers holding a reference
// to the successor node must re-target it to n.
func (t *Tree[K, V]) DeleteNode(n *Node[K, V]) {
	assert(n != nil, "DeleteNode called with nil node")
	t.size--
	t.mods.Touch()
	if n.left != nil && n.right != nil {
		s := Successor(n)
		n.key, n.value = s.key, s.value
		n = s
	}
	// n has at most one child now
	replacement := n.left
	if replacement == nil {
		replacement = n.right
	}
	if replacement != nil {
		replacement.parent = n.parent
		t.replaceChild(n.parent, n, replacement)
		n.left, n.right, n.parent = nil, nil, nil
		if n.color == Black {
			t.fixAfterDelete(replacement)
		}
		return
	}
	if n.parent == nil { // n was the only node
		t.root = nil
		return
	}
	// leafless: n itself serves as phantom anchor for the fixup, then leaves
	if n.color == Black {
		t.fixAfterDelete(n)
	}
	if n.parent != nil {
		if n == n.parent.left {
			n.parent.left = nil
		} else if n == n.parent.right {
			n.parent.right = nil
		}
		n.parent = nil
	}
}

// replaceChild makes x take old's place below parent (or as root).
func (t *Tree[K, V]) replaceChild(parent, old, x *Node[K, V]) {
	switch {
	case parent == nil:
		t.root = x
	case old == parent.left:
		parent.left = x
	default:
		parent.right = x
	}
}

// First returns the node with the smallest key, or nil.
func (t *Tree[K, V]) First() *Node[K, V] {
	if t == nil || t.root == nil {
		return nil
	}
	return minimum(t.root)
}

// Last returns the node with the greatest key, or nil.
func (t *Tree[K, V]) Last() *Node[K, V] {
	if t == nil || t.root == nil {
		return nil
	}
	return maximum(t.root)
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree[K, V]) Height() int {
	return height(t.Root())
}

func height[K, V any](n *Node[K, V]) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.left), height(n.right))
}
