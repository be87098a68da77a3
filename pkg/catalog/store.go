package catalog

import (
	"errors"
	"slices"
)

// ErrEmpty is returned by Traverse when no course has been inserted.
var ErrEmpty = errors.New("no courses loaded")

// Course is a single catalog entry. The store keeps its own copy, so a
// Course handed in or out can be modified by the caller without affecting
// the catalog.
type Course struct {
	Number        string
	Name          string
	Prerequisites []string
}

func (c Course) clone() Course {
	c.Prerequisites = slices.Clone(c.Prerequisites)
	return c
}

// node children are indexes into Store.nodes. Index 0 is reserved as a kind
// of nil pointer.
type node struct {
	course      Course
	left, right int
}

// Store is an unbalanced binary search tree of courses keyed by Number.
// Keys smaller than a node go left, everything else (including equal keys)
// goes right. Nodes are never moved or removed, so tree shape depends only
// on insertion order.
//
// Store is single-threaded.
type Store struct {
	nodes []node
	root  int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{nodes: make([]node, 1)}
}

// Len returns the number of nodes, duplicates included.
func (s *Store) Len() int {
	if len(s.nodes) == 0 {
		return 0
	}
	return len(s.nodes) - 1
}

// Insert adds course as a new leaf. A duplicate Number never overwrites an
// existing entry; it lands in the right subtree of the earlier one.
func (s *Store) Insert(course Course) {
	if len(s.nodes) == 0 {
		s.nodes = make([]node, 1)
	}
	s.nodes = append(s.nodes, node{course: course.clone()})
	idx := len(s.nodes) - 1

	if s.root == 0 {
		s.root = idx
		return
	}

	cur := s.root
	for {
		n := &s.nodes[cur]
		if course.Number < n.course.Number {
			if n.left == 0 {
				n.left = idx
				return
			}
			cur = n.left
		} else {
			if n.right == 0 {
				n.right = idx
				return
			}
			cur = n.right
		}
	}
}

// Traverse returns every course in ascending Number order. Each call walks
// the whole tree again. An empty store yields ErrEmpty.
func (s *Store) Traverse() ([]Course, error) {
	if s.root == 0 {
		return nil, ErrEmpty
	}
	out := make([]Course, 0, s.Len())
	s.inOrder(s.root, func(c Course) { out = append(out, c.clone()) })
	return out, nil
}

func (s *Store) inOrder(idx int, visit func(Course)) {
	if idx == 0 {
		return
	}
	n := s.nodes[idx]
	s.inOrder(n.left, visit)
	visit(n.course)
	s.inOrder(n.right, visit)
}

// Lookup returns a snapshot of the shallowest course with the given
// Number. The boolean is false when no such course exists.
func (s *Store) Lookup(number string) (Course, bool) {
	cur := s.root
	for cur != 0 {
		n := &s.nodes[cur]
		if number == n.course.Number {
			return n.course.clone(), true
		}
		if number < n.course.Number {
			cur = n.left
		} else {
			cur = n.right
		}
	}
	return Course{}, false
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (s *Store) Height() int {
	return s.height(s.root)
}

func (s *Store) height(idx int) int {
	if idx == 0 {
		return 0
	}
	return 1 + max(s.height(s.nodes[idx].left), s.height(s.nodes[idx].right))
}
