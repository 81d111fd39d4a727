package modtrack

// Counter counts structural modifications of a container.
//
// The zero value is ready to use.
type Counter struct {
	n uint64
}

// Touch records one structural modification.
func (c *Counter) Touch() {
	c.n++
}

// Count returns the number of structural modifications so far.
func (c *Counter) Count() uint64 {
	if c == nil {
		return 0
	}
	return c.n
}

// Stamp takes a snapshot of the counter.
func (c *Counter) Stamp() Stamp {
	return Stamp{counter: c, seen: c.Count()}
}

// Stamp is a snapshot of a Counter, held by an iterator.
type Stamp struct {
	counter *Counter
	seen    uint64
}

// Check reports ErrConcurrentModification if the counter has moved since the
// stamp was taken or last synced.
func (s Stamp) Check() error {
	if s.counter == nil {
		return nil
	}
	if s.counter.n != s.seen {
		return ErrConcurrentModification
	}
	return nil
}

// Sync re-synchronizes the stamp with its counter. Iterators call it after a
// mutation they issued themselves.
func (s *Stamp) Sync() {
	s.seen = s.counter.Count()
}

// Valid reports whether the stamp is attached to a counter.
func (s Stamp) Valid() bool {
	return s.counter != nil
}
