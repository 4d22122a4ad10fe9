package cache

import (
	"sync"
	"testing"
)

func TestStoreGetSet(t *testing.T) {
	s := NewStore[int]()
	if _, ok := s.Get("a"); ok {
		t.Fatal("expected miss on empty store")
	}
	s.Set("a", 1)
	if v, ok := s.Get("a"); !ok || v != 1 {
		t.Fatalf("got %d, %v", v, ok)
	}
	s.Set("a", 2)
	if v, _ := s.Get("a"); v != 2 {
		t.Fatalf("overwrite failed, got %d", v)
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d", s.Len())
	}
}

func TestStorePointerEntriesShareMutation(t *testing.T) {
	type entry struct{ Reason string }
	s := NewStore[*entry]()
	s.Set("k", &entry{})

	e, _ := s.Get("k")
	e.Reason = "annotated"

	again, _ := s.Get("k")
	if again.Reason != "annotated" {
		t.Fatal("expected in-place mutation to be visible on later reads")
	}
}

func TestStoreUpdate(t *testing.T) {
	type entry struct{ Reason string }
	s := NewStore[*entry]()

	if ok := s.Update("missing", func(e *entry) *entry {
		t.Fatal("fn called for absent key")
		return e
	}); ok {
		t.Fatal("Update reported hit for absent key")
	}

	s.Set("k", &entry{})
	if ok := s.Update("k", func(e *entry) *entry {
		e.Reason = "annotated"
		return e
	}); !ok {
		t.Fatal("Update reported miss for present key")
	}

	e, _ := s.Get("k")
	if e.Reason != "annotated" {
		t.Fatalf("reason = %q", e.Reason)
	}
}

func TestStoreConcurrentUpdate(t *testing.T) {
	type entry struct{ n int }
	s := NewStore[*entry]()
	s.Set("k", &entry{})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update("k", func(e *entry) *entry {
				e.n++
				return e
			})
		}()
	}
	wg.Wait()

	e, _ := s.Get("k")
	if e.n != 32 {
		t.Fatalf("n = %d, want 32", e.n)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore[int]()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Set("shared", n)
			s.Get("shared")
		}(i)
	}
	wg.Wait()
	if _, ok := s.Get("shared"); !ok {
		t.Fatal("expected entry after concurrent writes")
	}
}
