package modtrack

// Step tracks whether an iterator currently stands on an element that may be
// removed through the iterator.
//
// Every successful advance arms the step, every iterator-owned mutation
// consumes it.
type Step struct {
	armed bool
}

// Advance arms the step after the iterator moved to a new element.
func (s *Step) Advance() {
	s.armed = true
}

// Consume disarms the step. It returns ErrIllegalIteratorState if the step
// was not armed, i.e. there was no advance since creation or since the last
// Consume.
func (s *Step) Consume() error {
	if !s.armed {
		return ErrIllegalIteratorState
	}
	s.armed = false
	return nil
}

// Reset disarms the step without reporting an error.
func (s *Step) Reset() {
	s.armed = false
}

// Armed reports whether Consume would succeed.
func (s Step) Armed() bool {
	return s.armed
}
