package assoc

import (
	"fmt"
	"io"

	"github.com/npillmayer/assoc/rbtree"
)

// Dump prints the non-empty slots of m to w, for debugging. A chain is printed
// on the line of its slot, a tree bin sideways below it. If colored is set,
// red tree nodes are printed in red.
func (m *HashMap[K, V]) Dump(w io.Writer, colored bool) {
	for i, b := range m.table {
		switch b := b.(type) {
		case *chainBin[K, V]:
			fmt.Fprintf(w, "[%d] chain", i)
			for e := b.head; e != nil; e = e.next {
				fmt.Fprintf(w, " %v", e.key)
			}
			io.WriteString(w, "\n")
		case *treeBin[K, V]:
			fmt.Fprintf(w, "[%d] tree of %d\n", i, b.len())
			rbtree.Dump(b.tree, w, rbtree.DumpOptions[*entry[K, V], struct{}]{
				Colored: colored,
				Label:   entryLabel[K, V],
			})
		}
	}
}
