package cache

import "testing"

func TestSlot(t *testing.T) {
	var s Slot[[]string]

	if _, ok := s.Get(); ok {
		t.Fatal("empty slot reported a value")
	}

	s.Set([]string{"a", "b"})
	v, ok := s.Get()
	if !ok || len(v) != 2 {
		t.Fatalf("Get() = %v, %v after Set", v, ok)
	}

	s.Invalidate()
	if _, ok := s.Get(); ok {
		t.Fatal("slot still valid after Invalidate")
	}
}
