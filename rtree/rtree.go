/*
Copyright © 2020 the meshkernel authors.
This file is part of meshkernel.

meshkernel is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

meshkernel is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with meshkernel.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package rtree implements a bulk-loadable 2D R-tree over point payloads,
// used to accelerate nearest-neighbor and radius queries against mesh nodes
// and edge midpoints. Trees are bulk-built by sort-tile-recursive packing
// with a fan-out of 16, and incremental inserts split overflowing nodes with
// a linear split heuristic, mirroring boost::geometry::index::rtree<value2D,
// bgi::linear<16>> as used by the mesh administration pipeline.
package rtree

import (
	"math"
	"sort"

	"github.com/golang/groupcache/lru"
)

// MaxEntries is the maximum number of children per node (the tree's fan-out).
const MaxEntries = 16

// minEntries is roughly 40% of MaxEntries, after the classic Guttman
// heuristic; linearPickSeeds falls back to farthestPair for groups smaller
// than this. The split itself does not enforce a minimum fill.
const minEntries = MaxEntries * 2 / 5

// Box is an axis-aligned bounding box.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

func boxOf(x, y float64) Box {
	return Box{x, y, x, y}
}

func (b Box) expand(o Box) Box {
	return Box{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

func (b Box) area() float64 {
	return (b.MaxX - b.MinX) * (b.MaxY - b.MinY)
}

func (b Box) intersects(o Box) bool {
	return b.MinX <= o.MaxX && b.MaxX >= o.MinX && b.MinY <= o.MaxY && b.MaxY >= o.MinY
}

// squaredDistanceTo returns the squared distance from p to the closest
// point of b (zero if p is inside b).
func (b Box) squaredDistanceTo(x, y float64) float64 {
	dx := 0.0
	if x < b.MinX {
		dx = b.MinX - x
	} else if x > b.MaxX {
		dx = x - b.MaxX
	}
	dy := 0.0
	if y < b.MinY {
		dy = b.MinY - y
	} else if y > b.MaxY {
		dy = y - b.MaxY
	}
	return dx*dx + dy*dy
}

// entry is a leaf payload: a point plus the caller-supplied position it
// refers to (a node or edge index in the owning mesh).
type entry struct {
	box      Box
	position int
}

type node struct {
	box      Box
	leaf     bool
	entries  []entry  // valid when leaf
	children []*node  // valid when !leaf
}

func (n *node) box2() Box {
	return n.box
}

// Tree is a static 2D R-tree bulk-built from a set of points, with support
// for incremental insertion and removal by payload position.
type Tree struct {
	root     *node
	size     int
	// posIndex maps a caller position to the entry holding it, giving
	// RemoveByPosition an O(1) membership check. It is rebuilt from scratch
	// by Build, by Insert and by RemoveByPosition.
	posIndex map[int]*entry
	cache    *lru.Cache
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{posIndex: make(map[int]*entry), cache: lru.New(1024)}
}

// Empty reports whether the tree holds no points.
func (t *Tree) Empty() bool {
	return t.size == 0
}

// Size returns the number of points held in the tree.
func (t *Tree) Size() int {
	return t.size
}

// Build bulk-loads the tree from xs/ys, discarding any previous contents.
// Positions are the point's index within xs/ys.
func Build(xs, ys []float64) *Tree {
	t := New()
	if len(xs) == 0 {
		return t
	}
	entries := make([]entry, len(xs))
	for i := range xs {
		entries[i] = entry{box: boxOf(xs[i], ys[i]), position: i}
	}
	t.root = bulkLoad(entries)
	t.size = len(entries)
	t.reindex()
	return t
}

// reindex rebuilds posIndex from scratch by walking the tree.
func (t *Tree) reindex() {
	t.posIndex = make(map[int]*entry, t.size)
	t.cache.Clear()
	if t.root == nil {
		return
	}
	var walk func(n *node)
	walk = func(n *node) {
		if n.leaf {
			for i := range n.entries {
				t.posIndex[n.entries[i].position] = &n.entries[i]
			}
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
}

// bulkLoad builds a balanced tree over entries using the sort-tile-recursive
// heuristic: sort by x, slice into vertical strips of sqrt(N/M) each, then
// sort each strip by y and slice into leaves of size M.
func bulkLoad(entries []entry) *node {
	if len(entries) <= MaxEntries {
		return leafOf(entries)
	}

	n := len(entries)
	leafCount := int(math.Ceil(float64(n) / float64(MaxEntries)))
	stripCount := int(math.Ceil(math.Sqrt(float64(leafCount))))
	stripSize := int(math.Ceil(float64(n) / float64(stripCount)))

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].box.MinX < entries[j].box.MinX
	})

	var leaves []*node
	for i := 0; i < n; i += stripSize {
		end := i + stripSize
		if end > n {
			end = n
		}
		strip := entries[i:end]
		sort.Slice(strip, func(a, b int) bool {
			return strip[a].box.MinY < strip[b].box.MinY
		})
		for j := 0; j < len(strip); j += MaxEntries {
			jEnd := j + MaxEntries
			if jEnd > len(strip) {
				jEnd = len(strip)
			}
			leaves = append(leaves, leafOf(strip[j:jEnd]))
		}
	}

	return packInternal(leaves)
}

// packInternal groups a set of child nodes into a tree of internal nodes
// with fan-out MaxEntries, recursing until a single root remains.
func packInternal(children []*node) *node {
	if len(children) == 1 {
		return children[0]
	}
	var parents []*node
	for i := 0; i < len(children); i += MaxEntries {
		end := i + MaxEntries
		if end > len(children) {
			end = len(children)
		}
		group := children[i:end]
		box := group[0].box
		for _, c := range group[1:] {
			box = box.expand(c.box)
		}
		parents = append(parents, &node{box: box, leaf: false, children: append([]*node{}, group...)})
	}
	return packInternal(parents)
}

func leafOf(entries []entry) *node {
	cp := append([]entry{}, entries...)
	box := cp[0].box
	for _, e := range cp[1:] {
		box = box.expand(e.box)
	}
	return &node{box: box, leaf: true, entries: cp}
}

// Insert adds a single point to the tree, choosing the child subtree whose
// bounding box needs the least enlargement at each level (classic R-tree
// insertion), and splits any leaf that overflows past MaxEntries.
func (t *Tree) Insert(x, y float64, position int) {
	e := entry{box: boxOf(x, y), position: position}
	if t.root == nil {
		t.root = &node{box: e.box, leaf: true, entries: []entry{e}}
		t.size = 1
		t.posIndex[position] = &t.root.entries[0]
		t.cache.Clear()
		return
	}
	if split := insertEntry(t.root, e); split != nil {
		t.root = &node{box: t.root.box.expand(split.box), leaf: false, children: []*node{t.root, split}}
	}
	t.size++
	t.reindex()
}

func insertEntry(n *node, e entry) *node {
	n.box = n.box.expand(e.box)
	if n.leaf {
		n.entries = append(n.entries, e)
		if len(n.entries) > MaxEntries {
			return splitLeaf(n)
		}
		return nil
	}

	best := chooseSubtree(n, e.box)
	split := insertEntry(n.children[best], e)
	if split != nil {
		n.children = append(n.children, split)
		if len(n.children) > MaxEntries {
			return splitInternal(n)
		}
	}
	return nil
}

func chooseSubtree(n *node, b Box) int {
	best := 0
	bestEnlargement := math.Inf(1)
	for i, c := range n.children {
		enlarged := c.box.expand(b)
		enlargement := enlarged.area() - c.box.area()
		if enlargement < bestEnlargement {
			bestEnlargement = enlargement
			best = i
		}
	}
	return best
}

// splitLeaf divides an overflowing leaf using the linear-time axis-pick
// split (boost's bgi::linear strategy): pick the axis with the largest
// normalized separation between the two farthest-apart entries as seeds,
// then distribute the rest by nearest-seed.
func splitLeaf(n *node) *node {
	a, b := linearPickSeeds(entryBoxes(n.entries))
	group1 := []entry{n.entries[a]}
	group2 := []entry{n.entries[b]}
	box1 := n.entries[a].box
	box2 := n.entries[b].box

	for i, e := range n.entries {
		if i == a || i == b {
			continue
		}
		d1 := box1.expand(e.box).area() - box1.area()
		d2 := box2.expand(e.box).area() - box2.area()
		if d1 < d2 || (d1 == d2 && len(group1) < len(group2)) {
			group1 = append(group1, e)
			box1 = box1.expand(e.box)
		} else {
			group2 = append(group2, e)
			box2 = box2.expand(e.box)
		}
	}

	n.entries = group1
	n.box = box1
	return &node{box: box2, leaf: true, entries: group2}
}

func splitInternal(n *node) *node {
	boxes := make([]Box, len(n.children))
	for i, c := range n.children {
		boxes[i] = c.box
	}
	a, b := linearPickSeeds(boxes)
	group1 := []*node{n.children[a]}
	group2 := []*node{n.children[b]}
	box1 := n.children[a].box
	box2 := n.children[b].box

	for i, c := range n.children {
		if i == a || i == b {
			continue
		}
		d1 := box1.expand(c.box).area() - box1.area()
		d2 := box2.expand(c.box).area() - box2.area()
		if d1 < d2 || (d1 == d2 && len(group1) < len(group2)) {
			group1 = append(group1, c)
			box1 = box1.expand(c.box)
		} else {
			group2 = append(group2, c)
			box2 = box2.expand(c.box)
		}
	}

	n.children = group1
	n.box = box1
	return &node{box: box2, leaf: false, children: group2}
}

func entryBoxes(entries []entry) []Box {
	boxes := make([]Box, len(entries))
	for i, e := range entries {
		boxes[i] = e.box
	}
	return boxes
}

// linearPickSeeds implements Guttman's LinearPickSeeds: for each axis find
// the pair with highest normalized separation and return the best.
func linearPickSeeds(boxes []Box) (int, int) {
	if len(boxes) < minEntries {
		// small groups: fall back to the globally farthest-apart pair.
		return farthestPair(boxes)
	}

	bestSep := -math.Inf(1)
	seedA, seedB := 0, 1

	tryAxis := func(lo, hi func(Box) float64) {
		minHi, maxLo := math.Inf(1), math.Inf(-1)
		highIdx, lowIdx := 0, 0
		globalMin, globalMax := math.Inf(1), math.Inf(-1)
		for i, b := range boxes {
			if lo(b) > maxLo {
				maxLo = lo(b)
				lowIdx = i
			}
			if hi(b) < minHi {
				minHi = hi(b)
				highIdx = i
			}
			if lo(b) < globalMin {
				globalMin = lo(b)
			}
			if hi(b) > globalMax {
				globalMax = hi(b)
			}
		}
		width := globalMax - globalMin
		if width <= 0 {
			width = 1
		}
		sep := (maxLo - minHi) / width
		if sep > bestSep && lowIdx != highIdx {
			bestSep = sep
			seedA, seedB = lowIdx, highIdx
		}
	}

	tryAxis(func(b Box) float64 { return b.MinX }, func(b Box) float64 { return b.MaxX })
	tryAxis(func(b Box) float64 { return b.MinY }, func(b Box) float64 { return b.MaxY })

	if seedA == seedB {
		return farthestPair(boxes)
	}
	return seedA, seedB
}

func farthestPair(boxes []Box) (int, int) {
	bestDist := -1.0
	a, b := 0, 1
	if len(boxes) < 2 {
		return 0, 0
	}
	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			cx1, cy1 := (boxes[i].MinX+boxes[i].MaxX)/2, (boxes[i].MinY+boxes[i].MaxY)/2
			cx2, cy2 := (boxes[j].MinX+boxes[j].MaxX)/2, (boxes[j].MinY+boxes[j].MaxY)/2
			d := (cx1-cx2)*(cx1-cx2) + (cy1-cy2)*(cy1-cy2)
			if d > bestDist {
				bestDist = d
				a, b = i, j
			}
		}
	}
	return a, b
}

// RemoveByPosition removes the point previously inserted with the given
// caller position, if present. Reports whether it was found and removed.
func (t *Tree) RemoveByPosition(position int) bool {
	if _, ok := t.posIndex[position]; !ok {
		return false
	}
	// The tree is small relative to mesh sizes and removal is infrequent
	// relative to queries, so removal rebuilds by filtering rather than
	// implementing full R-tree condense-on-delete bookkeeping.
	var remaining []entry
	if t.root != nil {
		collectAll(t.root, &remaining)
	}
	filtered := remaining[:0]
	for _, e := range remaining {
		if e.position != position {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == 0 {
		t.root = nil
		t.size = 0
		t.posIndex = make(map[int]*entry)
		t.cache.Clear()
		return true
	}
	t.root = bulkLoad(filtered)
	t.size = len(filtered)
	t.reindex()
	return true
}

func collectAll(n *node, out *[]entry) {
	if n.leaf {
		*out = append(*out, n.entries...)
		return
	}
	for _, c := range n.children {
		collectAll(c, out)
	}
}

// NearestNeighbor returns the position of the point closest to (x, y) and
// its squared distance. ok is false if the tree is empty.
func (t *Tree) NearestNeighbor(x, y float64) (position int, squaredDistance float64, ok bool) {
	if t.root == nil {
		return 0, 0, false
	}
	best := math.Inf(1)
	bestPos := -1
	var visit func(n *node)
	visit = func(n *node) {
		if n.leaf {
			for _, e := range n.entries {
				dx := e.box.MinX - x
				dy := e.box.MinY - y
				d := dx*dx + dy*dy
				if d < best {
					best = d
					bestPos = e.position
				}
			}
			return
		}
		type scored struct {
			c *node
			d float64
		}
		children := make([]scored, len(n.children))
		for i, c := range n.children {
			children[i] = scored{c, c.box.squaredDistanceTo(x, y)}
		}
		sort.Slice(children, func(i, j int) bool { return children[i].d < children[j].d })
		for _, sc := range children {
			if sc.d > best {
				continue
			}
			visit(sc.c)
		}
	}
	visit(t.root)
	if bestPos < 0 {
		return 0, 0, false
	}
	return bestPos, best, true
}

// NearestNeighborsWithinSquaredDistance returns the positions of every point
// within squaredRadius of (x, y), sorted by increasing distance.
func (t *Tree) NearestNeighborsWithinSquaredDistance(x, y, squaredRadius float64) []int {
	if t.root == nil {
		return nil
	}
	type found struct {
		pos int
		d   float64
	}
	var results []found
	var visit func(n *node)
	visit = func(n *node) {
		if n.box.squaredDistanceTo(x, y) > squaredRadius {
			return
		}
		if n.leaf {
			for _, e := range n.entries {
				dx := e.box.MinX - x
				dy := e.box.MinY - y
				d := dx*dx + dy*dy
				if d <= squaredRadius {
					results = append(results, found{e.position, d})
				}
			}
			return
		}
		for _, c := range n.children {
			visit(c)
		}
	}
	visit(t.root)
	sort.Slice(results, func(i, j int) bool { return results[i].d < results[j].d })
	out := make([]int, len(results))
	for i, r := range results {
		out[i] = r.pos
	}
	return out
}

// QueryResultSize returns len(NearestNeighborsWithinSquaredDistance(...)),
// caching the result keyed on the exact query (x, y, squaredRadius) and the
// current tree size so repeated administration
// passes over the same neighborhoods (e.g. duplicate-node detection re-run
// after a partial mutation) avoid re-walking the tree.
func (t *Tree) QueryResultSize(x, y, squaredRadius float64) int {
	key := queryKey{x, y, squaredRadius, t.size}
	if v, ok := t.cache.Get(key); ok {
		return len(v.([]int))
	}
	res := t.NearestNeighborsWithinSquaredDistance(x, y, squaredRadius)
	t.cache.Add(key, res)
	return len(res)
}

// QueryResultAt returns the i-th result (by increasing distance) of the
// cached query started by QueryResultSize, or -1 if out of range or the
// query was never issued.
func (t *Tree) QueryResultAt(x, y, squaredRadius float64, i int) int {
	key := queryKey{x, y, squaredRadius, t.size}
	v, ok := t.cache.Get(key)
	if !ok {
		res := t.NearestNeighborsWithinSquaredDistance(x, y, squaredRadius)
		t.cache.Add(key, res)
		v = res
	}
	results := v.([]int)
	if i < 0 || i >= len(results) {
		return -1
	}
	return results[i]
}

type queryKey struct {
	x, y, r2 float64
	size     int
}
