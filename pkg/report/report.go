// Package report renders catalog listings and course details.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"courseplanner/pkg/catalog"

	"golang.org/x/text/cases"
)

// DefaultPlaceholder is shown in place of the name of a prerequisite that
// is not in the catalog.
const DefaultPlaceholder = "[Title not found]"

// ErrCourseNotFound is returned when a requested course is not in the
// catalog.
var ErrCourseNotFound = errors.New("course not found")

// Prerequisite is a prerequisite number resolved against the catalog.
type Prerequisite struct {
	Number string
	Name   string
	Found  bool
}

// Detail is a course together with its resolved prerequisites.
type Detail struct {
	Course        catalog.Course
	Prerequisites []Prerequisite
}

// Service answers listing and detail queries against a store.
type Service struct {
	store       *catalog.Store
	placeholder string
}

// New returns a Service reading from store. An empty placeholder selects
// DefaultPlaceholder.
func New(store *catalog.Store, placeholder string) *Service {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return &Service{store: store, placeholder: placeholder}
}

// Listing returns every course in number order, or catalog.ErrEmpty.
func (s *Service) Listing() ([]catalog.Course, error) {
	return s.store.Traverse()
}

// Detail looks up number and resolves each of its prerequisites. A
// prerequisite missing from the catalog gets the placeholder name.
func (s *Service) Detail(number string) (Detail, error) {
	course, ok := s.store.Lookup(number)
	if !ok {
		return Detail{}, fmt.Errorf("%w: '%s'", ErrCourseNotFound, number)
	}

	d := Detail{Course: course}
	for _, p := range course.Prerequisites {
		pre := Prerequisite{Number: p, Name: s.placeholder}
		if c, ok := s.store.Lookup(p); ok {
			pre.Name = c.Name
			pre.Found = true
		}
		d.Prerequisites = append(d.Prerequisites, pre)
	}
	return d, nil
}

// Search returns the courses whose name contains term, ignoring case, in
// number order. An empty term matches every course.
func (s *Service) Search(term string) ([]catalog.Course, error) {
	all, err := s.store.Traverse()
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(term))

	var matches []catalog.Course
	for _, c := range all {
		if strings.Contains(fold.String(c.Name), needle) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

// WriteListing writes one "<number>\t<name>" line per course.
func (s *Service) WriteListing(w io.Writer) error {
	courses, err := s.Listing()
	if err != nil {
		return err
	}
	return WriteCourses(w, courses)
}

// WriteCourses writes one "<number>\t<name>" line per course.
func WriteCourses(w io.Writer, courses []catalog.Course) error {
	for _, c := range courses {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", c.Number, c.Name); err != nil {
			return err
		}
	}
	return nil
}

// WriteDetail writes the detail view of number:
//
//	CS201 - Data Structures
//	  Prerequisites:
//	    CS101 - Intro to CS
func (s *Service) WriteDetail(w io.Writer, number string) error {
	d, err := s.Detail(number)
	if err != nil {
		return err
	}
	return d.Write(w)
}

// Write renders d as plain text.
func (d Detail) Write(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s - %s\n", d.Course.Number, d.Course.Name)
	if len(d.Prerequisites) == 0 {
		b.WriteString("  Prerequisites: None\n")
	} else {
		b.WriteString("  Prerequisites:\n")
		for _, p := range d.Prerequisites {
			fmt.Fprintf(&b, "    %s - %s\n", p.Number, p.Name)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
