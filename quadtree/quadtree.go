// seehuhn.de/go/visibility - visibility polygons for 2D scenes
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package quadtree implements a bounded-depth region quadtree which maps
// axis-aligned rectangles to payloads and answers range queries.
//
// An object whose rectangle straddles a split line is stored in every leaf
// it overlaps.  All overlap tests include the boundary, so that objects
// touching a query rectangle are always reported.  Queries may return
// objects whose rectangle does not overlap the query rectangle when a
// test function is not given; they never miss an overlapping object.
package quadtree

import (
	"cmp"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/visibility/internal/plane"
)

// Default values for the tree parameters.
const (
	DefaultMaxObjects = 20
	DefaultMaxDepth   = 4
)

// Tree is a spatial index over rectangles.
//
// Each payload value is stored at most once; inserting a payload which is
// already present moves it to the new rectangle.
//
// A Tree is not safe for concurrent use.
type Tree[T comparable] struct {
	// MaxObjects is the number of objects a leaf holds before it splits.
	// Changes take effect on the next insertion.
	MaxObjects int

	// MaxDepth limits the depth of the tree.  The root has depth 0.
	MaxDepth int

	root    *Node[T]
	entries map[T]*entry[T]

	// stray holds objects which extend beyond the root bounds.
	stray []*entry[T]

	seq uint64 // insertion counter, used to keep rebuilds stable
	gen uint64 // query generation, used to report each object once
}

type entry[T comparable] struct {
	payload T
	rect    rect.Rect
	nodes   []*Node[T] // leaves holding this entry
	seq     uint64
	seen    uint64
}

// Node is a region of the tree.  Leaves hold objects, inner nodes have
// exactly four children.
type Node[T comparable] struct {
	// Bounds is the region covered by the node.
	Bounds rect.Rect

	// Depth is the distance from the root.
	Depth int

	tree     *Tree[T]
	children []*Node[T]
	items    []*entry[T]
}

// New returns an empty tree covering bounds, using the default capacity
// and depth limits.
func New[T comparable](bounds rect.Rect) *Tree[T] {
	t := &Tree[T]{
		MaxObjects: DefaultMaxObjects,
		MaxDepth:   DefaultMaxDepth,
		entries:    make(map[T]*entry[T]),
	}
	t.root = &Node[T]{Bounds: bounds, tree: t}
	return t
}

// Bounds returns the region covered by the root node.
func (t *Tree[T]) Bounds() rect.Rect {
	return t.root.Bounds
}

// Root returns the root node of the tree.
func (t *Tree[T]) Root() *Node[T] {
	return t.root
}

// Len returns the number of distinct objects in the tree.
func (t *Tree[T]) Len() int {
	return len(t.entries)
}

// Rect returns the rectangle under which payload was stored.
func (t *Tree[T]) Rect(payload T) (rect.Rect, bool) {
	e, ok := t.entries[payload]
	if !ok {
		return rect.Rect{}, false
	}
	return e.rect, true
}

// Insert adds payload with bounding rectangle r to the tree and returns the
// leaves which now hold it.  The returned slice must not be modified.
// Objects which are not inside the root bounds are also kept in a
// separate list, so that queries outside the root still find them.
func (t *Tree[T]) Insert(payload T, r rect.Rect) []*Node[T] {
	if _, ok := t.entries[payload]; ok {
		t.Remove(payload)
	}
	t.seq++
	e := &entry[T]{payload: payload, rect: r, seq: t.seq}
	t.entries[payload] = e
	t.place(e)
	return e.nodes
}

func (t *Tree[T]) place(e *entry[T]) {
	b := t.root.Bounds
	if !within(e.rect, b) {
		t.stray = append(t.stray, e)
	}
	if plane.Overlaps(b, e.rect) {
		t.root.insert(e)
	}
}

// within reports whether r lies inside b.
func within(r, b rect.Rect) bool {
	return r.LLx >= b.LLx && r.URx <= b.URx && r.LLy >= b.LLy && r.URy <= b.URy
}

// Remove deletes payload from every node holding it.
// The return value reports whether payload was present.
func (t *Tree[T]) Remove(payload T) bool {
	e, ok := t.entries[payload]
	if !ok {
		return false
	}
	delete(t.entries, payload)
	for _, n := range e.nodes {
		n.items = deleteEntry(n.items, e)
	}
	e.nodes = nil
	t.stray = deleteEntry(t.stray, e)
	return true
}

// Update moves payload to the rectangle r.
func (t *Tree[T]) Update(payload T, r rect.Rect) []*Node[T] {
	t.Remove(payload)
	return t.Insert(payload, r)
}

// Query returns all objects whose rectangle overlaps r.  If test is not
// nil, only objects for which test returns true are included.  Every
// object is reported at most once.
func (t *Tree[T]) Query(r rect.Rect, test func(T, rect.Rect) bool) []T {
	return t.AppendQuery(nil, r, test)
}

// AppendQuery is like Query, but appends the results to dst.
func (t *Tree[T]) AppendQuery(dst []T, r rect.Rect, test func(T, rect.Rect) bool) []T {
	t.gen++
	dst = t.root.query(dst, r, test, t.gen)
	for _, e := range t.stray {
		dst = visit(dst, e, r, test, t.gen)
	}
	return dst
}

// LeafNodes returns all leaves whose region overlaps r.
func (t *Tree[T]) LeafNodes(r rect.Rect) []*Node[T] {
	return t.root.leaves(nil, r)
}

// Rebuild discards the node structure and reinserts all objects into a
// tree covering bounds.  Objects keep their original insertion order.
func (t *Tree[T]) Rebuild(bounds rect.Rect) {
	all := make([]*entry[T], 0, len(t.entries))
	for _, e := range t.entries {
		e.nodes = e.nodes[:0]
		all = append(all, e)
	}
	slices.SortFunc(all, func(a, b *entry[T]) int {
		return cmp.Compare(a.seq, b.seq)
	})

	t.root = &Node[T]{Bounds: bounds, tree: t}
	t.stray = t.stray[:0]
	for _, e := range all {
		t.place(e)
	}
}

// Clear removes all objects from the tree.
func (t *Tree[T]) Clear() {
	clear(t.entries)
	t.stray = t.stray[:0]
	t.root = &Node[T]{Bounds: t.root.Bounds, tree: t}
}

// IsLeaf reports whether n has no children.
func (n *Node[T]) IsLeaf() bool {
	return n.children == nil
}

// Children returns the four sub-regions of an inner node, in the order
// top-left, top-right, bottom-left, bottom-right.  Leaves have no
// children.
func (n *Node[T]) Children() []*Node[T] {
	return n.children
}

// Len returns the number of objects held directly by n.
func (n *Node[T]) Len() int {
	return len(n.items)
}

func (n *Node[T]) insert(e *entry[T]) {
	if n.children != nil {
		for _, c := range n.children {
			if plane.Overlaps(c.Bounds, e.rect) {
				c.insert(e)
			}
		}
		return
	}

	n.items = append(n.items, e)
	e.nodes = append(e.nodes, n)

	t := n.tree
	if len(n.items) > t.MaxObjects && n.Depth < t.MaxDepth {
		n.split()
	}
}

// split turns a leaf into an inner node and redistributes its objects.
func (n *Node[T]) split() {
	b := n.Bounds
	mx := (b.LLx + b.URx) / 2
	my := (b.LLy + b.URy) / 2
	d := n.Depth + 1
	n.children = []*Node[T]{
		{Bounds: rect.Rect{LLx: b.LLx, LLy: b.LLy, URx: mx, URy: my}, Depth: d, tree: n.tree},
		{Bounds: rect.Rect{LLx: mx, LLy: b.LLy, URx: b.URx, URy: my}, Depth: d, tree: n.tree},
		{Bounds: rect.Rect{LLx: b.LLx, LLy: my, URx: mx, URy: b.URy}, Depth: d, tree: n.tree},
		{Bounds: rect.Rect{LLx: mx, LLy: my, URx: b.URx, URy: b.URy}, Depth: d, tree: n.tree},
	}

	items := n.items
	n.items = nil
	for _, e := range items {
		e.nodes = deleteNode(e.nodes, n)
		n.insert(e)
	}
}

func (n *Node[T]) query(dst []T, r rect.Rect, test func(T, rect.Rect) bool, gen uint64) []T {
	if !plane.Overlaps(n.Bounds, r) {
		return dst
	}
	for _, c := range n.children {
		dst = c.query(dst, r, test, gen)
	}
	for _, e := range n.items {
		dst = visit(dst, e, r, test, gen)
	}
	return dst
}

func visit[T comparable](dst []T, e *entry[T], r rect.Rect, test func(T, rect.Rect) bool, gen uint64) []T {
	if e.seen == gen {
		return dst
	}
	e.seen = gen
	if !plane.Overlaps(e.rect, r) {
		return dst
	}
	if test != nil && !test(e.payload, r) {
		return dst
	}
	return append(dst, e.payload)
}

func (n *Node[T]) leaves(dst []*Node[T], r rect.Rect) []*Node[T] {
	if !plane.Overlaps(n.Bounds, r) {
		return dst
	}
	if n.children == nil {
		return append(dst, n)
	}
	for _, c := range n.children {
		dst = c.leaves(dst, r)
	}
	return dst
}

func deleteEntry[T comparable](list []*entry[T], e *entry[T]) []*entry[T] {
	if i := slices.Index(list, e); i >= 0 {
		list = slices.Delete(list, i, i+1)
	}
	return list
}

func deleteNode[T comparable](list []*Node[T], n *Node[T]) []*Node[T] {
	if i := slices.Index(list, n); i >= 0 {
		list = slices.Delete(list, i, i+1)
	}
	return list
}
