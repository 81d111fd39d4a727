package assoc

import (
	"fmt"
	"io"

	"github.com/npillmayer/assoc/rbtree"
)

// HashMap2Dot outputs the internal structure of a HashMap in Graphviz DOT format
// (for debugging purposes). Every non-empty slot becomes a cluster, holding
// either a chain of boxes or a red-black tree.
func HashMap2Dot[K comparable, V any](m *HashMap[K, V], w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	clusters := 0
	for i, b := range m.table {
		if b == nil {
			continue
		}
		clusters++
		fmt.Fprintf(w, "\tsubgraph cluster_%d {\n", i)
		fmt.Fprintf(w, "\tlabel=\"[%d] %d\";\n", i, b.len())
		switch b := b.(type) {
		case *chainBin[K, V]:
			writeChain(w, i, b)
		case *treeBin[K, V]:
			rbtree.WriteDotBody(b.tree, w, entryLabel[K, V], fmt.Sprintf("s%d_", i))
		}
		io.WriteString(w, "\t}\n")
	}
	T().Debugf("hashmap DOT: %d of %d slots in use", clusters, len(m.table))
	io.WriteString(w, "}\n")
}

func writeChain[K comparable, V any](w io.Writer, slot int, b *chainBin[K, V]) {
	fill := hexcolors[min(b.n, len(hexcolors)-1)]
	nodelist, edgelist := "", ""
	id := 0
	for e := b.head; e != nil; e = e.next {
		id++
		nodelist += fmt.Sprintf("\t\"c%d_%d\" [label=\"%v\" %s];\n", slot, id, e.key, chainDotStyles(fill))
		if e.next != nil {
			edgelist += fmt.Sprintf("\t\"c%d_%d\" -> \"c%d_%d\";\n", slot, id, slot, id+1)
		}
	}
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
}

func entryLabel[K comparable, V any](n *rbtree.Node[*entry[K, V], struct{}]) string {
	return fmt.Sprintf("%v", n.Key().key)
}

func chainDotStyles(fill string) string {
	return fmt.Sprintf(",style=filled,shape=box,color=black,fillcolor=\"%s\"", fill)
}

// TreeMap2Dot outputs the internal structure of a TreeMap in Graphviz DOT format
// (for debugging purposes).
func TreeMap2Dot[K, V any](m *TreeMap[K, V], w io.Writer) {
	m.init()
	rbtree.Tree2Dot(m.tree, w, nil)
}

// chain fill colors, by chain length
var hexcolors = [...]string{"white", "#CCDDFF", "#AACCFF", "#88BBFF", "#66AAFF",
	"#4499FF", "#2288FF", "#0077FF", "#0066FF"}
