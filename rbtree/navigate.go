package rbtree

func minimum[K, V any](n *Node[K, V]) *Node[K, V] {
	for n.left != nil {
		n = n.left
	}
	return n
}

func maximum[K, V any](n *Node[K, V]) *Node[K, V] {
	for n.right != nil {
		n = n.right
	}
	return n
}

// Successor returns the in-order successor of n, or nil if n is the last node.
func Successor[K, V any](n *Node[K, V]) *Node[K, V] {
	if n == nil {
		return nil
	}
	if n.right != nil {
		return minimum(n.right)
	}
	p := n.parent
	for p != nil && n == p.right {
		n = p
		p = p.parent
	}
	return p
}

// Predecessor returns the in-order predecessor of n, or nil if n is the first
// node.
func Predecessor[K, V any](n *Node[K, V]) *Node[K, V] {
	if n == nil {
		return nil
	}
	if n.left != nil {
		return maximum(n.left)
	}
	p := n.parent
	for p != nil && n == p.left {
		n = p
		p = p.parent
	}
	return p
}

// Ceiling returns the node with the least key greater than or equal to key.
func (t *Tree[K, V]) Ceiling(key K) (*Node[K, V], error) {
	return t.bound(key, true, true)
}

// Higher returns the node with the least key strictly greater than key.
func (t *Tree[K, V]) Higher(key K) (*Node[K, V], error) {
	return t.bound(key, true, false)
}

// Floor returns the node with the greatest key less than or equal to key.
func (t *Tree[K, V]) Floor(key K) (*Node[K, V], error) {
	return t.bound(key, false, true)
}

// Lower returns the node with the greatest key strictly less than key.
func (t *Tree[K, V]) Lower(key K) (*Node[K, V], error) {
	return t.bound(key, false, false)
}

// bound descends from the root, remembering the best candidate seen so far.
// above selects the upward direction (ceiling/higher), inclusive accepts an
// exact match.
func (t *Tree[K, V]) bound(key K, above, inclusive bool) (*Node[K, V], error) {
	var best *Node[K, V]
	n := t.Root()
	for n != nil {
		c, err := t.cmp(key, n.key)
		if err != nil {
			return nil, err
		}
		if c == 0 && inclusive {
			return n, nil
		}
		if above {
			if c < 0 {
				best = n
				n = n.left
			} else {
				n = n.right
			}
		} else {
			if c > 0 {
				best = n
				n = n.right
			} else {
				n = n.left
			}
		}
	}
	return best, nil
}
