package rbtree

import (
	"io"
	"strings"

	"github.com/fatih/color"
)

// DumpOptions configures Dump.
type DumpOptions[K, V any] struct {
	// Colored prints red nodes in red. Callers usually enable it for terminals only.
	Colored bool
	// Label renders a node; DefaultLabel if nil.
	Label Label[K, V]
	// Indent is the per-level indentation, default two blanks.
	Indent string
}

// Dump prints the tree sideways to w, right subtrees above their parents:
//
//	    9 (black)
//	  8 (red)
//	    7 (black)
//	5 (black)
//	  3 (black)
//
// Dump is for debugging; it does not validate the tree.
func Dump[K, V any](t *Tree[K, V], w io.Writer, opts DumpOptions[K, V]) {
	if opts.Label == nil {
		opts.Label = DefaultLabel[K, V]
	}
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	red := color.New(color.FgRed, color.Bold)
	black := color.New(color.FgHiBlack)
	if opts.Colored {
		red.EnableColor()
		black.EnableColor()
	} else {
		red.DisableColor()
		black.DisableColor()
	}
	var dump func(n *Node[K, V], depth int)
	dump = func(n *Node[K, V], depth int) {
		if n == nil {
			return
		}
		dump(n.right, depth+1)
		io.WriteString(w, strings.Repeat(opts.Indent, depth))
		if n.color == Red {
			red.Fprintf(w, "%s (%s)", opts.Label(n), n.color)
		} else {
			black.Fprintf(w, "%s (%s)", opts.Label(n), n.color)
		}
		io.WriteString(w, "\n")
		dump(n.left, depth+1)
	}
	dump(t.Root(), 0)
}
