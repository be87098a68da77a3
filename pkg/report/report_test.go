package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"courseplanner/pkg/catalog"
	"courseplanner/pkg/loader"

	"github.com/google/go-cmp/cmp"
)

func loadStore(t *testing.T, content string) *catalog.Store {
	t.Helper()
	store := catalog.NewStore()
	if _, err := loader.Parse(strings.NewReader(content), store); err != nil {
		t.Fatalf("failed to parse catalog: %v", err)
	}
	return store
}

func TestWriteDetailResolvesPrerequisites(t *testing.T) {
	store := loadStore(t, "header\nCS101,Intro to CS,\nCS201,Data Structures,CS101\n")

	var buf bytes.Buffer
	if err := New(store, "").WriteDetail(&buf, "CS201"); err != nil {
		t.Fatalf("WriteDetail failed: %v", err)
	}

	want := "CS201 - Data Structures\n" +
		"  Prerequisites:\n" +
		"    CS101 - Intro to CS\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("detail mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteDetailMissingPrerequisite(t *testing.T) {
	store := loadStore(t, "header\nCS301,Algorithms,CS999,CS101\nCS101,Intro to CS\n")

	var buf bytes.Buffer
	if err := New(store, "").WriteDetail(&buf, "CS301"); err != nil {
		t.Fatalf("WriteDetail failed: %v", err)
	}

	want := "CS301 - Algorithms\n" +
		"  Prerequisites:\n" +
		"    CS999 - [Title not found]\n" +
		"    CS101 - Intro to CS\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("detail mismatch (-want +got):\n%s", diff)
	}
}

func TestDetailCustomPlaceholder(t *testing.T) {
	store := loadStore(t, "header\nCS301,Algorithms,CS999\n")

	d, err := New(store, "(unknown)").Detail("CS301")
	if err != nil {
		t.Fatalf("Detail failed: %v", err)
	}

	want := []Prerequisite{{Number: "CS999", Name: "(unknown)", Found: false}}
	if diff := cmp.Diff(want, d.Prerequisites); diff != "" {
		t.Errorf("prerequisites mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteDetailNoPrerequisites(t *testing.T) {
	store := loadStore(t, "header\nCS101,Intro to CS,\n")

	var buf bytes.Buffer
	if err := New(store, "").WriteDetail(&buf, "CS101"); err != nil {
		t.Fatalf("WriteDetail failed: %v", err)
	}

	want := "CS101 - Intro to CS\n  Prerequisites: None\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("detail mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteDetailNotFound(t *testing.T) {
	store := loadStore(t, "header\nCS101,Intro to CS,\n")

	var buf bytes.Buffer
	err := New(store, "").WriteDetail(&buf, "CS404")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "CS404") {
		t.Errorf("expected error to name the course, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestWriteListing(t *testing.T) {
	store := loadStore(t, "header\nMATH201,Discrete Mathematics\nCSCI100,Introduction to Computer Science\nCSCI101,Introduction to Programming in C++,CSCI100\n")

	var buf bytes.Buffer
	if err := New(store, "").WriteListing(&buf); err != nil {
		t.Fatalf("WriteListing failed: %v", err)
	}

	want := "CSCI100\tIntroduction to Computer Science\n" +
		"CSCI101\tIntroduction to Programming in C++\n" +
		"MATH201\tDiscrete Mathematics\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("listing mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteListingEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := New(catalog.NewStore(), "").WriteListing(&buf)
	if !errors.Is(err, catalog.ErrEmpty) {
		t.Fatalf("expected catalog.ErrEmpty, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestSearch(t *testing.T) {
	store := loadStore(t, "header\nCSCI300,Introduction to Algorithms\nCSCI200,Data Structures\nCSCI100,INTRODUCTION to Computer Science\n")
	svc := New(store, "")

	tests := []struct {
		term string
		want []string
	}{
		{"introduction", []string{"CSCI100", "CSCI300"}},
		{"  STRUCT ", []string{"CSCI200"}},
		{"", []string{"CSCI100", "CSCI200", "CSCI300"}},
		{"biology", nil},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, err := svc.Search(tt.term)
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			var numbers []string
			for _, c := range got {
				numbers = append(numbers, c.Number)
			}
			if diff := cmp.Diff(tt.want, numbers); diff != "" {
				t.Errorf("Search(%q) mismatch (-want +got):\n%s", tt.term, diff)
			}
		})
	}

	if _, err := New(catalog.NewStore(), "").Search("x"); !errors.Is(err, catalog.ErrEmpty) {
		t.Errorf("expected catalog.ErrEmpty on empty store, got %v", err)
	}
}
