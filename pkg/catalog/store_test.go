package catalog

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func numbers(courses []Course) []string {
	var out []string
	for _, c := range courses {
		out = append(out, c.Number)
	}
	return out
}

func TestTraverseOrdering(t *testing.T) {
	tests := []struct {
		name string
		keys []string
	}{
		{"single", []string{"CS101"}},
		{"presorted", []string{"CS101", "CS200", "CS300", "MATH201"}},
		{"reversed", []string{"MATH201", "CS300", "CS200", "CS101"}},
		{"mixed", []string{"CSCI300", "CSCI100", "MATH201", "CSCI350", "CSCI101", "CSCI400", "CSCI301", "CSCI200"}},
		{"case sensitive", []string{"cs101", "CS101", "Cs101"}},
		{"empty key", []string{"CS101", "", "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			for _, k := range tt.keys {
				s.Insert(Course{Number: k})
			}

			got, err := s.Traverse()
			if err != nil {
				t.Fatalf("Traverse failed: %v", err)
			}

			want := slices.Clone(tt.keys)
			slices.Sort(want)
			if diff := cmp.Diff(want, numbers(got)); diff != "" {
				t.Errorf("traversal order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTraverseOrderingRandomized(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		s := NewStore()
		n := r.Intn(200)
		for i := 0; i < n; i++ {
			s.Insert(Course{Number: string(rune('A' + r.Intn(26)))})
		}

		got, err := s.Traverse()
		if n == 0 {
			if !errors.Is(err, ErrEmpty) {
				t.Fatalf("expected ErrEmpty for empty store, got %v", err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Traverse failed: %v", err)
		}
		if len(got) != n {
			t.Fatalf("expected %d courses, got %d", n, len(got))
		}
		if !slices.IsSortedFunc(got, func(a, b Course) int {
			switch {
			case a.Number < b.Number:
				return -1
			case a.Number > b.Number:
				return 1
			}
			return 0
		}) {
			t.Fatalf("traversal not in non-decreasing order: %v", numbers(got))
		}
	}
}

func TestTraverseRestartable(t *testing.T) {
	s := NewStore()
	s.Insert(Course{Number: "CS200"})
	s.Insert(Course{Number: "CS100"})

	first, _ := s.Traverse()
	second, _ := s.Traverse()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second traversal differs (-first +second):\n%s", diff)
	}
}

func TestTraverseEmpty(t *testing.T) {
	var s Store

	got, err := s.Traverse()
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if got != nil {
		t.Errorf("expected nil courses, got %v", got)
	}
}

func TestDuplicateKeys(t *testing.T) {
	s := NewStore()
	s.Insert(Course{Number: "CS101", Name: "A"})
	s.Insert(Course{Number: "CS050", Name: "before"})
	s.Insert(Course{Number: "CS101", Name: "B"})

	c, ok := s.Lookup("CS101")
	if !ok {
		t.Fatalf("expected CS101 to be found")
	}
	if c.Name != "A" {
		t.Errorf("expected first inserted duplicate (A), got %q", c.Name)
	}

	all, err := s.Traverse()
	if err != nil {
		t.Fatalf("Traverse failed: %v", err)
	}
	if s.Len() != 3 || len(all) != 3 {
		t.Fatalf("expected 3 nodes, got Len=%d traversal=%d", s.Len(), len(all))
	}

	var names []string
	for _, c := range all {
		if c.Number == "CS101" {
			names = append(names, c.Name)
		}
	}
	if diff := cmp.Diff([]string{"A", "B"}, names); diff != "" {
		t.Errorf("duplicate visit order mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupMiss(t *testing.T) {
	s := NewStore()
	if _, ok := s.Lookup("CS101"); ok {
		t.Errorf("expected miss on empty store")
	}

	for _, k := range []string{"CS200", "CS100", "CS300"} {
		s.Insert(Course{Number: k})
	}
	for _, k := range []string{"", "CS150", "cs100", "CS100 ", "ZZZ", "AAA"} {
		if c, ok := s.Lookup(k); ok {
			t.Errorf("Lookup(%q) unexpectedly found %+v", k, c)
		}
	}
}

func TestLookupReturnsSnapshot(t *testing.T) {
	s := NewStore()
	prereqs := []string{"CS101"}
	s.Insert(Course{Number: "CS201", Name: "Data Structures", Prerequisites: prereqs})
	prereqs[0] = "mutated"

	c, _ := s.Lookup("CS201")
	if c.Prerequisites[0] != "CS101" {
		t.Fatalf("store aliased caller slice: %v", c.Prerequisites)
	}

	c.Prerequisites[0] = "changed"
	c.Name = "changed"

	// Later inserts must not invalidate what is already stored.
	for _, k := range []string{"CS100", "CS300", "CS250", "CS150"} {
		s.Insert(Course{Number: k})
	}

	again, ok := s.Lookup("CS201")
	if !ok {
		t.Fatalf("CS201 lost after further inserts")
	}
	want := Course{Number: "CS201", Name: "Data Structures", Prerequisites: []string{"CS101"}}
	if diff := cmp.Diff(want, again); diff != "" {
		t.Errorf("stored course changed (-want +got):\n%s", diff)
	}
}

func TestHeight(t *testing.T) {
	s := NewStore()
	if s.Height() != 0 {
		t.Fatalf("expected empty height 0, got %d", s.Height())
	}

	for _, k := range []string{"A", "B", "C", "D"} {
		s.Insert(Course{Number: k})
	}
	if s.Height() != 4 {
		t.Errorf("expected sorted input to degrade to a list of height 4, got %d", s.Height())
	}

	b := NewStore()
	for _, k := range []string{"B", "A", "C"} {
		b.Insert(Course{Number: k})
	}
	if b.Height() != 2 {
		t.Errorf("expected height 2, got %d", b.Height())
	}
}
