/*
Package rbtree implements a red-black tree, the balanced binary search tree
backing both containers of package assoc.

The package is the shared core: the ordered map uses a tree keyed by client
keys, the hash map escalates overloaded bins to trees keyed by (hash, key,
arrival). Nodes are owned by their tree through root and child pointers;
parent pointers are back-references used for navigation and rebalancing only.

Algorithms follow the classic formulation:
  - insertion colors the new node red and repairs red-red violations
    bottom-up by recoloring (red uncle) or by one or two rotations
    (black uncle),
  - deletion of a node with two children first moves the in-order successor's
    key and value into it, then splices out a node with at most one child and,
    if that node was black, repairs the black-height deficit upwards,
  - the root is black after every operation.

Comparisons may fail (see ErrTypeMismatch). Every mutating operation
performs all of its comparisons before it changes structure, so a failing
comparison never leaves a partially modified tree.

Trees are not safe for concurrent use. Every structural mutation touches a
modtrack.Counter, which iterators use to fail fast.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package rbtree

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the global core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
