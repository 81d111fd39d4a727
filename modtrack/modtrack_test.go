package modtrack

import (
	"errors"
	"testing"
)

func TestStampDetectsModification(t *testing.T) {
	var c Counter
	s := c.Stamp()
	if err := s.Check(); err != nil {
		t.Fatalf("fresh stamp should be valid, got %v", err)
	}
	c.Touch()
	if err := s.Check(); !errors.Is(err, ErrConcurrentModification) {
		t.Fatalf("expected ErrConcurrentModification, got %v", err)
	}
	s.Sync()
	if err := s.Check(); err != nil {
		t.Fatalf("synced stamp should be valid, got %v", err)
	}
	if c.Count() != 1 {
		t.Fatalf("expected count 1, got %d", c.Count())
	}
}

func TestZeroStampNeverFails(t *testing.T) {
	var s Stamp
	if s.Valid() {
		t.Fatalf("zero stamp must not be valid")
	}
	if err := s.Check(); err != nil {
		t.Fatalf("zero stamp check should pass, got %v", err)
	}
}

func TestStepConsume(t *testing.T) {
	var s Step
	if err := s.Consume(); !errors.Is(err, ErrIllegalIteratorState) {
		t.Fatalf("consume without advance: expected ErrIllegalIteratorState, got %v", err)
	}
	s.Advance()
	if !s.Armed() {
		t.Fatalf("expected step to be armed after advance")
	}
	if err := s.Consume(); err != nil {
		t.Fatalf("consume after advance failed: %v", err)
	}
	if err := s.Consume(); !errors.Is(err, ErrIllegalIteratorState) {
		t.Fatalf("double consume: expected ErrIllegalIteratorState, got %v", err)
	}
	s.Advance()
	s.Reset()
	if s.Armed() {
		t.Fatalf("expected step to be disarmed after reset")
	}
}
