package ints

import (
	"testing"
)

func TestEmptySet(t *testing.T) {
	s := NewSet()
	if s.Len() != 0 || s.Contains(0) || len(s.ToSlice()) != 0 {
		t.Fatalf("expected empty set, got %v", s.ToSlice())
	}
}

func TestAddAndContains(t *testing.T) {
	s := NewSet(3, 70, 3)
	for _, item := range []int{3, 70} {
		if !s.Contains(item) {
			t.Errorf("expected %d in set", item)
		}
	}
	for _, item := range []int{0, 2, 4, 69, 71, 1000} {
		if s.Contains(item) {
			t.Errorf("did not expect %d in set", item)
		}
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", s.Len())
	}
}

func TestToSliceAscending(t *testing.T) {
	s := NewSet(65, 0, 31, 32, 1)
	got := s.ToSlice()
	want := []int{0, 1, 31, 32, 65}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
