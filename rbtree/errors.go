package rbtree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("rbtree: invalid configuration")
	// ErrTypeMismatch signals keys which cannot be ordered against each other.
	ErrTypeMismatch = errors.New("rbtree: keys are not mutually ordered")
	// ErrInvariant signals a violated structural invariant, as reported by Check.
	ErrInvariant = errors.New("rbtree: invariant violated")
)
