package rbtree

import (
	"fmt"
	"io"
)

type nodeids[K, V any] struct {
	idTable map[*Node[K, V]]int
	max     int
}

func newtable[K, V any]() nodeids[K, V] {
	return nodeids[K, V]{
		idTable: make(map[*Node[K, V]]int),
		max:     1,
	}
}

func (ids nodeids[K, V]) find(node *Node[K, V]) int {
	return ids.idTable[node]
}

func (ids *nodeids[K, V]) alloc(node *Node[K, V]) int {
	if id := ids.find(node); id > 0 {
		return id
	}
	ids.idTable[node] = ids.max
	ids.max++
	return ids.max - 1
}

// Label renders a node for debugging output.
type Label[K, V any] func(n *Node[K, V]) string

// DefaultLabel renders a node's key with %v.
func DefaultLabel[K, V any](n *Node[K, V]) string {
	return fmt.Sprintf("%v", n.key)
}

// Tree2Dot outputs the internal structure of a tree in Graphviz DOT format
// (for debugging purposes). label may be nil.
func Tree2Dot[K, V any](t *Tree[K, V], w io.Writer, label Label[K, V]) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	WriteDotBody(t, w, label, "")
	io.WriteString(w, "}\n")
}

// WriteDotBody writes nodes and edges of t without the surrounding graph
// statement. prefix makes node IDs unique if several trees share one graph.
func WriteDotBody[K, V any](t *Tree[K, V], w io.Writer, label Label[K, V], prefix string) {
	if label == nil {
		label = DefaultLabel[K, V]
	}
	ids := newtable[K, V]()
	nodelist, edgelist := "", ""
	nilcount := 0
	edge := func(from int, child *Node[K, V]) {
		if child == nil {
			nilcount++
			nilid := fmt.Sprintf("%snil%d", prefix, nilcount)
			nodelist += fmt.Sprintf("\t\"%s\" %s;\n", nilid, emptyNode())
			edgelist += fmt.Sprintf("\t\"%s%d\" -> \"%s\";\n", prefix, from, nilid)
			return
		}
		edgelist += fmt.Sprintf("\t\"%s%d\" -> \"%s%d\";\n", prefix, from, prefix, ids.alloc(child))
	}
	t.Walk(func(n *Node[K, V]) bool {
		ID := ids.alloc(n)
		nodelist += fmt.Sprintf("\t\"%s%d\" [label=\"%s\" %s];\n", prefix, ID, label(n), nodeDotStyles(n))
		if n.left != nil || n.right != nil {
			edge(ID, n.left)
			edge(ID, n.right)
		}
		return true
	})
	if nilcount > 0 {
		tracer().Debugf("rbtree DOT: %d nodes, %d nil leaves", ids.max-1, nilcount)
	}
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=point]"
}

func nodeDotStyles[K, V any](n *Node[K, V]) string {
	s := ",style=filled,shape=circle"
	if n.color == Red {
		s += ",color=\"#aa0000\",fillcolor=\"#ff6666\""
	} else {
		s += ",color=black,fillcolor=\"#888888\",fontcolor=white"
	}
	return s
}
