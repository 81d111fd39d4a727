package rbtree

// Color is the color of a tree node.
type Color bool

const (
	// Red nodes never have red children.
	Red Color = false
	// Black nodes count towards the black-height of a path.
	Black Color = true
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Node is a tree node carrying a key and a value.
//
// Nodes are handed out for navigation (Successor, Floor, …). A node stays
// valid until it is deleted; note that deleting a node with two children
// moves its successor's key and value into it.
type Node[K, V any] struct {
	key    K
	value  V
	left   *Node[K, V]
	right  *Node[K, V]
	parent *Node[K, V] // back-reference, never ownership
	color  Color
}

// Key returns the node's key.
func (n *Node[K, V]) Key() K { return n.key }

// Value returns the node's value.
func (n *Node[K, V]) Value() V { return n.value }

// SetValue replaces the node's value in place. This is not a structural
// modification.
func (n *Node[K, V]) SetValue(v V) V {
	old := n.value
	n.value = v
	return old
}

// Left returns the left child, or nil.
func (n *Node[K, V]) Left() *Node[K, V] { return n.left }

// Right returns the right child, or nil.
func (n *Node[K, V]) Right() *Node[K, V] { return n.right }

// Parent returns the parent node, or nil for the root.
func (n *Node[K, V]) Parent() *Node[K, V] { return n.parent }

// Color returns the node's color.
func (n *Node[K, V]) Color() Color { return n.color }

// --- nil-tolerant accessors used by the balancing code ---------------------

func colorOf[K, V any](n *Node[K, V]) Color {
	if n == nil {
		return Black
	}
	return n.color
}

func setColor[K, V any](n *Node[K, V], c Color) {
	if n != nil {
		n.color = c
	}
}

func parentOf[K, V any](n *Node[K, V]) *Node[K, V] {
	if n == nil {
		return nil
	}
	return n.parent
}

func leftOf[K, V any](n *Node[K, V]) *Node[K, V] {
	if n == nil {
		return nil
	}
	return n.left
}

func rightOf[K, V any](n *Node[K, V]) *Node[K, V] {
	if n == nil {
		return nil
	}
	return n.right
}
