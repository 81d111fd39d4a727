/*
Package assoc offers in-memory associative containers built on red-black trees.

Containers

HashMap is a hash table with separate chaining. Keys are hashed, the hash is
spread (high bits folded into low bits) and masked by the power-of-two table
capacity. Each table slot holds a bin: a linked chain of entries or, once a
chain has grown to TreeifyThreshold entries in a table of at least
MinTreeCapacity slots, a red-black tree ordered by hash, then key order,
then arrival. This bounds the cost of a lookup in an overloaded slot by
O(log n) while keeping plain chains, and their lower memory cost, for
well-distributed keys. When the number of entries exceeds
capacity·loadFactor, the table doubles; every bin is split into a low and a
high half by the one newly significant hash bit, without rehashing.

TreeMap is an ordered map on top of a red-black tree. It offers navigation
(First, Last, Floor, Ceiling, Lower, Higher) and live range views (SubMap,
HeadMap, TailMap, Descending), which read and write through to the map.

	Operation     |   HashMap          |  TreeMap
	--------------+--------------------+-----------
	Get           |   O(1) expected    |   O(log n)
	Put           |   O(1) amortized   |   O(log n)
	Remove        |   O(1) expected    |   O(log n)
	Iterate       |   O(n + capacity)  |   O(n)
	Navigate      |   –                |   O(log n)

Worst case for HashMap operations on a single overloaded slot is O(log n).

Iteration

Both containers hand out fail-fast iterators. Every structural modification
(insert, remove, resize, bin conversion, clear) increments a modification
counter; an iterator which detects a change it did not make itself stops
and reports ErrConcurrentModification. Replacing the value of an existing key
is not a structural modification. Removal through the iterator is allowed.

Containers are not safe for concurrent use; callers must synchronize
access themselves, e.g. with a sync.Mutex.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package assoc

import (
	"github.com/npillmayer/assoc/modtrack"
	"github.com/npillmayer/assoc/rbtree"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// AssocError is an error type for the assoc module
type AssocError string

func (e AssocError) Error() string {
	return string(e)
}

// ErrInvalidArgument is flagged for non-positive capacities or load factors,
// and for keys outside the range of a map view.
const ErrInvalidArgument = AssocError("assoc: invalid argument")

// ErrCapacityExceeded is flagged whenever a requested table capacity exceeds
// MaxCapacity.
const ErrCapacityExceeded = AssocError("assoc: capacity exceeds maximum table size")

// ErrInvariant is flagged by Check methods if a container is corrupted.
const ErrInvariant = AssocError("assoc: invariant violated")

// Errors of the shared core, re-exported for convenience.
var (
	// ErrTypeMismatch signals keys which cannot be ordered: no comparator was
	// given and the keys have no natural order, or the comparator panicked.
	ErrTypeMismatch = rbtree.ErrTypeMismatch
	// ErrConcurrentModification signals a structural modification behind an
	// iterator's back.
	ErrConcurrentModification = modtrack.ErrConcurrentModification
	// ErrIllegalIteratorState signals Iterator.Remove without a preceding
	// successful Next.
	ErrIllegalIteratorState = modtrack.ErrIllegalIteratorState
)

// Iterator is the common iterator interface of HashMap and TreeMap.
type Iterator[K, V any] interface {
	Next() bool
	Key() K
	Value() V
	Remove() error
	Err() error
}

// Entry is a key/value pair.
type Entry[K, V any] struct {
	Key   K
	Value V
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
