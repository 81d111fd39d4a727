/*
Package modtrack provides the fail-fast bookkeeping shared by the containers of
package assoc.

A container owns one Counter and touches it on every structural mutation
(insert, remove, resize, bin conversion, clear). Iterators take a Stamp of the
counter when they are created and re-check it on every step. A mismatch is
reported as ErrConcurrentModification.

The counter is a tripwire for programming errors, not a synchronization
primitive. Detection is best effort: containers using it are not safe for
concurrent use in the first place.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package modtrack

import "errors"

var (
	// ErrConcurrentModification signals that a container has been structurally
	// modified behind an iterator's back.
	ErrConcurrentModification = errors.New("modtrack: concurrent modification")
	// ErrIllegalIteratorState signals an iterator mutation without a prior
	// advance, or a second mutation for the same position.
	ErrIllegalIteratorState = errors.New("modtrack: illegal iterator state")
)
