package lru

import (
	"bytes"
	"fmt"
	"testing"
)

func TestStrategy_GetAdd(t *testing.T) {
	s, err := New(2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	s.Add("shear_low", []byte("a"))
	if got, ok := s.Get("shear_low"); !ok || !bytes.Equal(got, []byte("a")) {
		t.Errorf("Get() = %q, %v; want \"a\", true", got, ok)
	}
	if _, ok := s.Get("absent"); ok {
		t.Error("Get(absent) = true, want false")
	}
}

func TestStrategy_Eviction(t *testing.T) {
	s, err := New(2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	s.Add("one", []byte("1"))
	s.Add("two", []byte("2"))
	s.Get("one") // refresh recency so "two" is the eviction candidate
	s.Add("three", []byte("3"))

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if _, ok := s.Get("two"); ok {
		t.Error("least recently used entry survived eviction")
	}
	if _, ok := s.Get("one"); !ok {
		t.Error("recently used entry was evicted")
	}
}

func TestNew_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		t.Run(fmt.Sprint(capacity), func(t *testing.T) {
			if _, err := New(capacity); err == nil {
				t.Errorf("New(%d) succeeded, want error", capacity)
			}
		})
	}
}
