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

package mesh

import (
	"math"

	"github.com/golang/groupcache/lru"
	"gonum.org/v1/gonum/stat"

	"github.com/spatialmodel/meshkernel/geo"
	"github.com/spatialmodel/meshkernel/rtree"
)

// collinearEps bounds the cross product below which a triangle is treated
// as degenerate by DeleteDegeneratedTriangles.
const collinearEps = 1e-9

// InsertNode appends p as a new node and returns its index. Marks the node
// spatial index dirty.
func (m *Mesh) InsertNode(p geo.Point) int {
	m.Nodes = append(m.Nodes, p)
	m.nodesRTreeDirty = true
	return len(m.Nodes) - 1
}

// DeleteNode invalidates every edge incident to node i and sets i to the
// missing-value sentinel. A no-op if i is already missing.
func (m *Mesh) DeleteNode(i int) error {
	if i < 0 || i >= len(m.Nodes) {
		return invalidArgumentf("DeleteNode: index %d out of range", i)
	}
	if !m.Nodes[i].IsValid() {
		return nil
	}
	for ei, e := range m.Edges {
		if e.IsValid() && (e.First == i || e.Second == i) {
			m.Edges[ei] = Edge{First: MissingIndex, Second: MissingIndex}
			m.edgesRTreeDirty = true
		}
	}
	m.Nodes[i] = geo.MissingPoint
	m.nodesRTreeDirty = true
	return nil
}

// ConnectNodes appends a new edge (u, v) unless one already exists in
// nodeEdges[u], in which case it returns MissingIndex and no error.
func (m *Mesh) ConnectNodes(u, v int) (int, error) {
	if u < 0 || u >= len(m.Nodes) || v < 0 || v >= len(m.Nodes) {
		return MissingIndex, invalidArgumentf("ConnectNodes: index out of range")
	}
	if !m.Nodes[u].IsValid() || !m.Nodes[v].IsValid() {
		return MissingIndex, invalidArgumentf("ConnectNodes: node is missing")
	}
	if u < len(m.NodeEdges) {
		for _, e := range m.NodeEdges[u] {
			if m.otherNode(e, u) == v {
				return MissingIndex, nil
			}
		}
	} else if m.findEdgeRaw(u, v) != MissingIndex {
		return MissingIndex, nil
	}
	m.Edges = append(m.Edges, Edge{First: u, Second: v})
	m.edgesRTreeDirty = true
	return len(m.Edges) - 1, nil
}

// DeleteEdge invalidates edge e.
func (m *Mesh) DeleteEdge(e int) error {
	if e == MissingIndex {
		return invalidArgumentf("DeleteEdge: edge index missing")
	}
	if e < 0 || e >= len(m.Edges) {
		return invalidArgumentf("DeleteEdge: index %d out of range", e)
	}
	m.Edges[e] = Edge{First: MissingIndex, Second: MissingIndex}
	m.edgesRTreeDirty = true
	return nil
}

func (m *Mesh) findEdgeRaw(u, v int) int {
	for i, e := range m.Edges {
		if !e.IsValid() {
			continue
		}
		if (e.First == u && e.Second == v) || (e.First == v && e.Second == u) {
			return i
		}
	}
	return MissingIndex
}

func (m *Mesh) neighborsRaw(n int) []int {
	var out []int
	for _, e := range m.Edges {
		if !e.IsValid() {
			continue
		}
		if e.First == n {
			out = append(out, e.Second)
		} else if e.Second == n {
			out = append(out, e.First)
		}
	}
	return out
}

// MergeTwoNodes invalidates edge (a, b) if present, invalidates any
// duplicate edge (b, x) for a neighbor x shared with a, reassigns every
// remaining edge incident to a onto b, and sets a to missing. A no-op if a
// is already missing or a == b.
func (m *Mesh) MergeTwoNodes(a, b int) error {
	if a < 0 || a >= len(m.Nodes) || b < 0 || b >= len(m.Nodes) {
		return invalidArgumentf("MergeTwoNodes: index out of range")
	}
	if !m.Nodes[a].IsValid() || a == b {
		return nil
	}

	if ab := m.findEdgeRaw(a, b); ab != MissingIndex {
		m.Edges[ab] = Edge{First: MissingIndex, Second: MissingIndex}
	}
	for _, x := range m.neighborsRaw(a) {
		if x == b {
			continue
		}
		if bx := m.findEdgeRaw(b, x); bx != MissingIndex {
			m.Edges[bx] = Edge{First: MissingIndex, Second: MissingIndex}
		}
	}
	for i, e := range m.Edges {
		if !e.IsValid() {
			continue
		}
		if e.First == a {
			m.Edges[i].First = b
		}
		if e.Second == a {
			m.Edges[i].Second = b
		}
	}
	m.Nodes[a] = geo.MissingPoint
	m.nodesRTreeDirty = true
	m.edgesRTreeDirty = true
	return nil
}

// MergeNodesInPolygon merges every pair of in-polygon nodes closer than
// Options.MergingDistance, using a local R-tree over just the in-polygon
// nodes, then re-administers with EdgesOnly.
func (m *Mesh) MergeNodesInPolygon(poly Polygons) error {
	if poly.Empty() {
		return invalidArgumentf("MergeNodesInPolygon: polygon must be non-empty")
	}

	var xs, ys []float64
	var positions []int
	for i, p := range m.Nodes {
		if !p.IsValid() {
			continue
		}
		if poly.Contains(p, m.Projection) {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 {
		return nil
	}

	local := rtree.New()
	for i := range xs {
		local.Insert(xs[i], ys[i], positions[i])
	}

	cache := lru.New(256)
	radius := m.Options.MergingDistance
	if radius <= 0 {
		radius = DefaultOptions().MergingDistance
	}
	r2 := radius * radius

	for _, p := range positions {
		if !m.Nodes[p].IsValid() {
			continue
		}
		pt := m.Nodes[p]
		key := quantizeKey(pt, radius)
		var neighbors []int
		if v, ok := cache.Get(key); ok {
			neighbors = v.([]int)
		} else {
			neighbors = local.NearestNeighborsWithinSquaredDistance(pt.X, pt.Y, r2)
			cache.Add(key, neighbors)
		}
		for _, q := range neighbors {
			if q == p || !m.Nodes[q].IsValid() {
				continue
			}
			if err := m.MergeTwoNodes(q, p); err != nil {
				return err
			}
		}
	}

	m.Administrate(EdgesOnly)
	return nil
}

func quantizeKey(p geo.Point, radius float64) [2]int64 {
	if radius <= 0 {
		radius = 1e-9
	}
	return [2]int64{int64(math.Round(p.X / radius)), int64(math.Round(p.Y / radius))}
}

// MoveNode shifts node i to p, and every other node by a radial
// cosine-decay fraction of the same displacement: nodes at distance L
// (the distance from i to p) or farther are unaffected, node i itself
// moves the full distance.
func (m *Mesh) MoveNode(p geo.Point, i int) error {
	if i < 0 || i >= len(m.Nodes) || !m.Nodes[i].IsValid() {
		return invalidArgumentf("MoveNode: index %d invalid", i)
	}
	origin := m.Nodes[i]
	dx := p.X - origin.X
	dy := p.Y - origin.Y
	length := geo.Distance(p, origin, m.Projection)
	if length == 0 {
		m.Nodes[i] = p
		m.nodesRTreeDirty = true
		return nil
	}
	for n := range m.Nodes {
		if !m.Nodes[n].IsValid() {
			continue
		}
		dist := geo.Distance(m.Nodes[n], origin, m.Projection)
		ratio := math.Min(dist/length, 1.0)
		delta := 0.5 * (1 + math.Cos(math.Pi*ratio))
		m.Nodes[n].X += dx * delta
		m.Nodes[n].Y += dy * delta
	}
	m.nodesRTreeDirty = true
	return nil
}

// DeleteMeshOption selects the inclusion test DeleteMesh uses to decide
// which mesh entities a polygon covers.
type DeleteMeshOption int

const (
	AllNodesInside DeleteMeshOption = iota
	FacesWithIncludedCircumcenters
	FacesCompletelyIncluded
)

// DeleteMesh deletes the nodes or faces of the mesh selected by poly and
// option; invert flips the selection.
func (m *Mesh) DeleteMesh(poly Polygons, option DeleteMeshOption, invert bool) error {
	if poly.Empty() {
		return invalidArgumentf("DeleteMesh: polygon must be non-empty")
	}
	switch option {
	case AllNodesInside:
		for i, p := range m.Nodes {
			if !p.IsValid() {
				continue
			}
			inside := poly.Contains(p, m.Projection)
			if invert {
				inside = !inside
			}
			if inside {
				if err := m.DeleteNode(i); err != nil {
					return err
				}
			}
		}
		return nil
	case FacesWithIncludedCircumcenters, FacesCompletelyIncluded:
		mask := m.MaskFaceEdgesInPolygon(poly, option, invert)
		for e, v := range mask {
			if v == 1 {
				if err := m.DeleteEdge(e); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return invalidArgumentf("DeleteMesh: unknown option %d", option)
	}
}

// MaskFaceEdgesInPolygon administers the mesh's faces, then returns an
// edge mask flagging (1) every edge belonging to a face selected by poly
// under option; invert flips the selection.
func (m *Mesh) MaskFaceEdgesInPolygon(poly Polygons, option DeleteMeshOption, invert bool) []int {
	m.Administrate(EdgesAndFaces)
	mask := make([]int, len(m.Edges))
	for f := range m.FaceNodes {
		var included bool
		switch option {
		case FacesWithIncludedCircumcenters:
			included = poly.Contains(m.FaceCircumcenter[f], m.Projection)
		case FacesCompletelyIncluded:
			ring := closedRing(m.FaceNodes[f], m.Nodes)
			included = m.faceCompletelyInside(poly, ring)
		}
		if invert {
			included = !included
		}
		if included {
			for _, e := range m.FaceEdges[f] {
				mask[e] = 1
			}
		}
	}
	return mask
}

// Union appends other's nodes and edges to m, reindexing other's edge
// endpoints by m's pre-union node count. Both meshes must share a
// projection and other must be non-empty.
func (m *Mesh) Union(other *Mesh) error {
	if other == nil || len(other.Nodes) == 0 {
		return invalidArgumentf("Union: right-hand mesh is empty")
	}
	if m.Projection != other.Projection {
		return invalidArgumentf("Union: projection mismatch")
	}
	offset := len(m.Nodes)
	m.Nodes = append(m.Nodes, other.Nodes...)
	for _, e := range other.Edges {
		ne := Edge{First: MissingIndex, Second: MissingIndex}
		if e.IsValid() {
			ne = Edge{First: e.First + offset, Second: e.Second + offset}
		}
		m.Edges = append(m.Edges, ne)
	}
	m.nodesRTreeDirty = true
	m.edgesRTreeDirty = true
	return nil
}

// DeleteDegeneratedTriangles administers the mesh and collapses every
// triangular face whose three nodes are collinear: the first node is moved
// to the triangle's mass center and the other two are merged into it.
func (m *Mesh) DeleteDegeneratedTriangles() {
	m.Administrate(EdgesAndFaces)
	type collapse struct {
		a, b, c int
		center  geo.Point
	}
	var collapses []collapse
	for f := range m.FaceNodes {
		nodes := m.FaceNodes[f]
		if len(nodes) != 3 {
			continue
		}
		a, b, c := nodes[0], nodes[1], nodes[2]
		cross := geo.Dx(m.Nodes[b], m.Nodes[a], m.Projection)*geo.Dy(m.Nodes[c], m.Nodes[a], m.Projection) -
			geo.Dy(m.Nodes[b], m.Nodes[a], m.Projection)*geo.Dx(m.Nodes[c], m.Nodes[a], m.Projection)
		if math.Abs(cross) < collinearEps {
			collapses = append(collapses, collapse{a, b, c, m.FaceCentroid[f]})
		}
	}
	for _, cl := range collapses {
		if !m.Nodes[cl.a].IsValid() {
			continue
		}
		m.Nodes[cl.a] = cl.center
		m.nodesRTreeDirty = true
		_ = m.MergeTwoNodes(cl.b, cl.a)
		_ = m.MergeTwoNodes(cl.c, cl.a)
	}
	m.Administrate(EdgesAndFaces)
}

// DeleteSmallFlowEdges collapses degenerate triangles, deletes every edge
// reported by GetEdgesCrossingSmallFlowEdges(theta), and re-administers.
func (m *Mesh) DeleteSmallFlowEdges(theta float64) {
	m.DeleteDegeneratedTriangles()
	for _, e := range m.GetEdgesCrossingSmallFlowEdges(theta) {
		_ = m.DeleteEdge(e)
	}
	m.Administrate(EdgesAndFaces)
}

// DeleteSmallTrianglesAtBoundaries merges the two most-collinear nodes of
// every triangular boundary face whose area is below minFractionArea times
// the average area of its non-boundary neighbor faces, and whose flattest
// vertex angle has a cosine below cosineThreshold (i.e. is close to
// straight).
func (m *Mesh) DeleteSmallTrianglesAtBoundaries(minFractionArea, cosineThreshold float64) {
	m.Administrate(EdgesAndFaces)
	type merge struct{ a, b int }
	var merges []merge

	for f := range m.FaceNodes {
		nodes := m.FaceNodes[f]
		if len(nodes) != 3 {
			continue
		}
		isBoundary := false
		var neighborAreas []float64
		for _, e := range m.FaceEdges[f] {
			switch m.EdgeNumFaces[e] {
			case 1:
				isBoundary = true
			case 2:
				other := m.EdgeFaces[e][0]
				if other == f {
					other = m.EdgeFaces[e][1]
				}
				neighborAreas = append(neighborAreas, m.FaceArea[other])
			}
		}
		if !isBoundary || len(neighborAreas) == 0 {
			continue
		}
		avg := stat.Mean(neighborAreas, nil)
		if m.FaceArea[f] >= minFractionArea*avg {
			continue
		}

		var cosines [3]float64
		for i := range nodes {
			prev := nodes[(i+2)%3]
			next := nodes[(i+1)%3]
			cosines[i] = geo.NormalizedInnerProductTwoSegments(
				m.Nodes[nodes[i]], m.Nodes[prev], m.Nodes[nodes[i]], m.Nodes[next], m.Projection)
		}
		minIdx, minCos := 0, cosines[0]
		for i := 1; i < 3; i++ {
			if cosines[i] < minCos {
				minCos, minIdx = cosines[i], i
			}
		}
		if minCos >= cosineThreshold {
			continue
		}
		flat := nodes[minIdx]
		neighborA := nodes[(minIdx+1)%3]
		neighborB := nodes[(minIdx+2)%3]
		if geo.Distance(m.Nodes[flat], m.Nodes[neighborA], m.Projection) <=
			geo.Distance(m.Nodes[flat], m.Nodes[neighborB], m.Projection) {
			merges = append(merges, merge{flat, neighborA})
		} else {
			merges = append(merges, merge{flat, neighborB})
		}
	}

	for _, mg := range merges {
		_ = m.MergeTwoNodes(mg.a, mg.b)
	}
	m.Administrate(EdgesAndFaces)
}
