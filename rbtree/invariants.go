package rbtree

import "fmt"

// Check validates the structural invariants of the tree:
//
//   - the root is black and has no parent,
//   - parent and child links agree,
//   - no red node has a red child,
//   - every root-to-leaf path has the same number of black nodes,
//   - keys are strictly ascending in order,
//   - the node count matches Len.
//
// Check is meant for tests and debugging; it runs in O(n).
func (t *Tree[K, V]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvariant)
	}
	if t.root == nil {
		if t.size != 0 {
			return fmt.Errorf("%w: empty tree must have size=0, has %d", ErrInvariant, t.size)
		}
		return nil
	}
	if t.root.color != Black {
		return fmt.Errorf("%w: root is red", ErrInvariant)
	}
	if t.root.parent != nil {
		return fmt.Errorf("%w: root has a parent", ErrInvariant)
	}
	count, _, err := t.checkNode(t.root)
	if err != nil {
		return err
	}
	if count != t.size {
		return fmt.Errorf("%w: size mismatch (%d != %d)", ErrInvariant, count, t.size)
	}
	var prev *Node[K, V]
	for n := t.First(); n != nil; n = Successor(n) {
		if prev != nil {
			c, err := t.cmp(prev.key, n.key)
			if err != nil {
				return err
			}
			if c >= 0 {
				return fmt.Errorf("%w: keys out of order (%v, %v)", ErrInvariant, prev.key, n.key)
			}
		}
		prev = n
	}
	return nil
}

// checkNode returns the node count and black-height of the subtree at n.
func (t *Tree[K, V]) checkNode(n *Node[K, V]) (count int, blackHeight int, err error) {
	if n == nil {
		return 0, 1, nil
	}
	if n.left != nil && n.left.parent != n {
		return 0, 0, fmt.Errorf("%w: broken parent link below %v", ErrInvariant, n.key)
	}
	if n.right != nil && n.right.parent != n {
		return 0, 0, fmt.Errorf("%w: broken parent link below %v", ErrInvariant, n.key)
	}
	if n.color == Red && (colorOf(n.left) == Red || colorOf(n.right) == Red) {
		return 0, 0, fmt.Errorf("%w: red node %v has a red child", ErrInvariant, n.key)
	}
	lc, lh, err := t.checkNode(n.left)
	if err != nil {
		return 0, 0, err
	}
	rc, rh, err := t.checkNode(n.right)
	if err != nil {
		return 0, 0, err
	}
	if lh != rh {
		return 0, 0, fmt.Errorf("%w: black-height mismatch at %v (%d != %d)", ErrInvariant, n.key, lh, rh)
	}
	if n.color == Black {
		lh++
	}
	return lc + rc + 1, lh, nil
}
