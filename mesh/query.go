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

	"github.com/ctessum/geom"

	"github.com/spatialmodel/meshkernel/geo"
)

// FindEdge returns the edge connecting u and v, or MissingIndex if none
// exists. Symmetric: FindEdge(u, v) == FindEdge(v, u).
func (m *Mesh) FindEdge(u, v int) int {
	if u >= 0 && u < len(m.NodeEdges) {
		for _, e := range m.NodeEdges[u] {
			if m.otherNode(e, u) == v {
				return e
			}
		}
		return MissingIndex
	}
	return m.findEdgeRaw(u, v)
}

// FindCommonNode returns the node shared by edges e1 and e2.
func (m *Mesh) FindCommonNode(e1, e2 int) (int, error) {
	if e1 < 0 || e1 >= len(m.Edges) || e2 < 0 || e2 >= len(m.Edges) {
		return MissingIndex, invalidArgumentf("FindCommonNode: edge index out of range")
	}
	a, b := m.Edges[e1], m.Edges[e2]
	for _, n := range [2]int{a.First, a.Second} {
		if n == MissingIndex {
			continue
		}
		if n == b.First || n == b.Second {
			return n, nil
		}
	}
	return MissingIndex, algorithmErrorf("FindCommonNode: edges %d and %d share no valid node", e1, e2)
}

// GetNodeIndex returns the node closest to p via the node spatial index.
func (m *Mesh) GetNodeIndex(p geo.Point) (int, error) {
	tree := m.ensureNodesTree()
	if tree.Empty() {
		return MissingIndex, algorithmErrorf("GetNodeIndex: mesh has no nodes")
	}
	pos, _, ok := tree.NearestNeighbor(p.X, p.Y)
	if !ok {
		return MissingIndex, algorithmErrorf("GetNodeIndex: no nearest node found")
	}
	return pos, nil
}

// FindEdgeCloseToAPoint returns the edge whose midpoint is closest to p via
// the edge spatial index.
func (m *Mesh) FindEdgeCloseToAPoint(p geo.Point) (int, error) {
	tree := m.ensureEdgesTree()
	if tree.Empty() {
		return MissingIndex, algorithmErrorf("FindEdgeCloseToAPoint: mesh has no edges")
	}
	pos, _, ok := tree.NearestNeighbor(p.X, p.Y)
	if !ok {
		return MissingIndex, algorithmErrorf("FindEdgeCloseToAPoint: no nearest edge found")
	}
	return pos, nil
}

// GetHangingEdges returns every edge with at least one endpoint of degree 1.
func (m *Mesh) GetHangingEdges() []int {
	var out []int
	for i, e := range m.Edges {
		if !e.IsValid() {
			continue
		}
		if len(m.NodeEdges[e.First]) == 1 || len(m.NodeEdges[e.Second]) == 1 {
			out = append(out, i)
		}
	}
	return out
}

// GetObtuseTrianglesCenters returns the centroid of every triangular face
// with an obtuse angle (one edge's squared length exceeds the sum of the
// other two).
func (m *Mesh) GetObtuseTrianglesCenters() []geo.Point {
	var out []geo.Point
	for f, nodes := range m.FaceNodes {
		if len(nodes) != 3 {
			continue
		}
		a, b, c := m.Nodes[nodes[0]], m.Nodes[nodes[1]], m.Nodes[nodes[2]]
		ab2 := geo.SquaredDistance(a, b, m.Projection)
		bc2 := geo.SquaredDistance(b, c, m.Projection)
		ca2 := geo.SquaredDistance(c, a, m.Projection)
		if ab2 > bc2+ca2 || bc2 > ab2+ca2 || ca2 > ab2+bc2 {
			out = append(out, m.FaceCentroid[f])
		}
	}
	return out
}

// GetEdgesCrossingSmallFlowEdges returns every interior edge whose
// inter-circumcenter distance is below theta times the average of the
// square roots of its two adjacent faces' areas.
func (m *Mesh) GetEdgesCrossingSmallFlowEdges(theta float64) []int {
	var out []int
	for i, e := range m.Edges {
		if !e.IsValid() || m.EdgeNumFaces[i] != 2 {
			continue
		}
		f1, f2 := m.EdgeFaces[i][0], m.EdgeFaces[i][1]
		d := geo.Distance(m.FaceCircumcenter[f1], m.FaceCircumcenter[f2], m.Projection)
		threshold := theta * (math.Sqrt(m.FaceArea[f1]) + math.Sqrt(m.FaceArea[f2])) / 2
		if d < threshold {
			out = append(out, i)
		}
	}
	return out
}

// commonFace returns the face index adjacent to both e1 and e2, or
// MissingIndex if they share none.
func (m *Mesh) commonFace(e1, e2 int) int {
	for _, f1 := range m.EdgeFaces[e1] {
		for _, f2 := range m.EdgeFaces[e2] {
			if f1 == f2 {
				return f1
			}
		}
	}
	return MissingIndex
}

// MakeDualFace returns the polygon around node, alternating between
// incident-edge centers and adjacent-face centroids (or node itself where a
// face is missing), scaled from its own centroid by alpha.
func (m *Mesh) MakeDualFace(node int, alpha float64) ([]geo.Point, error) {
	if node < 0 || node >= len(m.Nodes) || !m.Nodes[node].IsValid() {
		return nil, invalidArgumentf("MakeDualFace: node %d invalid", node)
	}
	edges := m.NodeEdges[node]
	n := len(edges)
	if n == 0 {
		return nil, algorithmErrorf("MakeDualFace: node %d has no incident edges", node)
	}

	ring := make([]geo.Point, 0, 2*n)
	for i, e := range edges {
		other := m.otherNode(e, node)
		mid := geo.Point{X: 0.5 * (m.Nodes[node].X + m.Nodes[other].X), Y: 0.5 * (m.Nodes[node].Y + m.Nodes[other].Y)}
		ring = append(ring, mid)

		next := edges[(i+1)%n]
		if f := m.commonFace(e, next); f != MissingIndex {
			ring = append(ring, m.FaceCentroid[f])
		} else {
			ring = append(ring, m.Nodes[node])
		}
	}

	var cx, cy float64
	for _, p := range ring {
		cx += p.X
		cy += p.Y
	}
	centroid := geo.Point{X: cx / float64(len(ring)), Y: cy / float64(len(ring))}

	for i, p := range ring {
		ring[i] = geo.Point{
			X: centroid.X + alpha*(p.X-centroid.X),
			Y: centroid.Y + alpha*(p.Y-centroid.Y),
		}
	}
	return ring, nil
}

// AspectRatios returns, per edge, the ratio of its "flow" length (the
// distance between adjacent face circumcenters, or twice the
// circumcenter-to-midpoint distance for a boundary edge) to its own
// geometric length. geo.Missing marks edges without two adjacent faces or a
// boundary face.
func (m *Mesh) AspectRatios() []float64 {
	ratios := make([]float64, len(m.Edges))
	for i, e := range m.Edges {
		if !e.IsValid() {
			ratios[i] = geo.Missing
			continue
		}
		refLen := geo.Distance(m.Nodes[e.First], m.Nodes[e.Second], m.Projection)
		var flowLen float64
		switch m.EdgeNumFaces[i] {
		case 2:
			f1, f2 := m.EdgeFaces[i][0], m.EdgeFaces[i][1]
			flowLen = geo.Distance(m.FaceCircumcenter[f1], m.FaceCircumcenter[f2], m.Projection)
		case 1:
			f := m.EdgeFaces[i][0]
			mid := geo.Point{X: 0.5 * (m.Nodes[e.First].X + m.Nodes[e.Second].X), Y: 0.5 * (m.Nodes[e.First].Y + m.Nodes[e.Second].Y)}
			flowLen = 2 * geo.Distance(m.FaceCircumcenter[f], mid, m.Projection)
		default:
			ratios[i] = geo.Missing
			continue
		}
		if refLen == 0 {
			ratios[i] = geo.Missing
			continue
		}
		ratios[i] = flowLen / refLen
	}
	return ratios
}

// QuadAspectRatio is the quad-only branch of the aspect-ratio computation:
// it averages the per-edge ratios from AspectRatios over each pair of
// opposing edges of a quadrilateral face and returns the mean of the two
// pair averages. Edge lengths are not averaged before a ratio is taken; the
// per-edge ratios are used as given. ok is false for non-quad faces or
// faces with an unratable edge.
func (m *Mesh) QuadAspectRatio(f int, ratios []float64) (float64, bool) {
	nodes := m.FaceNodes[f]
	if len(nodes) != 4 {
		return 0, false
	}
	edges := m.FaceEdges[f]
	r0, r1, r2, r3 := ratios[edges[0]], ratios[edges[1]], ratios[edges[2]], ratios[edges[3]]
	if r0 == geo.Missing || r1 == geo.Missing || r2 == geo.Missing || r3 == geo.Missing {
		return 0, false
	}
	return 0.5 * ((r0 + r2) + (r1 + r3)) / 2, true
}

// GetOrthogonality returns, per interior edge, the absolute cosine of the
// angle between the edge and the segment joining its two adjacent
// circumcenters (0 is perfectly orthogonal). geo.Missing on boundary or
// invalid edges.
func (m *Mesh) GetOrthogonality() []float64 {
	out := make([]float64, len(m.Edges))
	for i, e := range m.Edges {
		if !e.IsValid() || m.EdgeNumFaces[i] != 2 {
			out[i] = geo.Missing
			continue
		}
		f1, f2 := m.EdgeFaces[i][0], m.EdgeFaces[i][1]
		cos := geo.NormalizedInnerProductTwoSegments(
			m.Nodes[e.First], m.Nodes[e.Second],
			m.FaceCircumcenter[f1], m.FaceCircumcenter[f2], m.Projection)
		if cos == geo.Missing {
			out[i] = geo.Missing
			continue
		}
		out[i] = math.Abs(cos)
	}
	return out
}

// GetSmoothness returns, per interior edge, the ratio of its two adjacent
// faces' areas (larger over smaller; 1 is perfectly smooth). geo.Missing on
// boundary or invalid edges.
func (m *Mesh) GetSmoothness() []float64 {
	out := make([]float64, len(m.Edges))
	for i, e := range m.Edges {
		if !e.IsValid() || m.EdgeNumFaces[i] != 2 {
			out[i] = geo.Missing
			continue
		}
		f1, f2 := m.EdgeFaces[i][0], m.EdgeFaces[i][1]
		a1, a2 := m.FaceArea[f1], m.FaceArea[f2]
		if a1 == 0 || a2 == 0 {
			out[i] = geo.Missing
			continue
		}
		if a1 < a2 {
			a1, a2 = a2, a1
		}
		out[i] = a1 / a2
	}
	return out
}

// ComputeNodeMaskFromEdgeMask marks NodeMask[n] = 1 for every endpoint of
// an edge with EdgeMask == 1, resetting NodeMask first. No node index is
// special-cased.
func (m *Mesh) ComputeNodeMaskFromEdgeMask() {
	if len(m.NodeMask) != len(m.Nodes) {
		m.NodeMask = make([]int, len(m.Nodes))
	} else {
		for i := range m.NodeMask {
			m.NodeMask[i] = 0
		}
	}
	for e, v := range m.EdgeMask {
		if v != 1 || e >= len(m.Edges) || !m.Edges[e].IsValid() {
			continue
		}
		m.NodeMask[m.Edges[e].First] = 1
		m.NodeMask[m.Edges[e].Second] = 1
	}
}

// findNextBoundaryEdge returns the first unvisited boundary edge incident
// to n whose endpoints both satisfy filterPoly (when non-empty), or
// MissingIndex.
func (m *Mesh) findNextBoundaryEdge(n int, visited []bool, filterPoly Polygons) int {
	for _, e := range m.NodeEdges[n] {
		if visited[e] || m.EdgeNumFaces[e] != 1 {
			continue
		}
		other := m.otherNode(e, n)
		if !filterPoly.Empty() {
			if !filterPoly.Contains(m.Nodes[n], m.Projection) || !filterPoly.Contains(m.Nodes[other], m.Projection) {
				continue
			}
		}
		return e
	}
	return MissingIndex
}

// MeshBoundaryToPolygon traces every boundary edge (edgeNumFaces == 1)
// whose endpoints lie in filterPoly (or all boundary edges, if filterPoly is
// empty) into contiguous polylines, each terminated by a missing-value
// sentinel point.
func (m *Mesh) MeshBoundaryToPolygon(filterPoly Polygons) []geo.Point {
	visited := make([]bool, len(m.Edges))
	var out []geo.Point

	for start, e0 := range m.Edges {
		if visited[start] || !e0.IsValid() || m.EdgeNumFaces[start] != 1 {
			continue
		}
		if !filterPoly.Empty() {
			if !filterPoly.Contains(m.Nodes[e0.First], m.Projection) || !filterPoly.Contains(m.Nodes[e0.Second], m.Projection) {
				continue
			}
		}
		visited[start] = true

		forward := []int{e0.First, e0.Second}
		current := e0.Second
		for {
			next := m.findNextBoundaryEdge(current, visited, filterPoly)
			if next == MissingIndex {
				break
			}
			visited[next] = true
			current = m.otherNode(next, current)
			forward = append(forward, current)
		}

		var backward []int
		current = e0.First
		for {
			prevEdge := m.findNextBoundaryEdge(current, visited, filterPoly)
			if prevEdge == MissingIndex {
				break
			}
			visited[prevEdge] = true
			current = m.otherNode(prevEdge, current)
			backward = append(backward, current)
		}

		full := make([]int, 0, len(backward)+len(forward))
		for i := len(backward) - 1; i >= 0; i-- {
			full = append(full, backward[i])
		}
		full = append(full, forward...)

		for _, n := range full {
			out = append(out, m.Nodes[n])
		}
		out = append(out, geo.MissingPoint)
	}
	return out
}

// BoundaryPolygonPath returns MeshBoundaryToPolygon's first polyline as a
// ctessum/geom Path, for callers already consuming that geometry stack.
func (m *Mesh) BoundaryPolygonPath(filterPoly Polygons) geom.Path {
	pts := m.MeshBoundaryToPolygon(filterPoly)
	path := make(geom.Path, 0, len(pts))
	for _, p := range pts {
		if !p.IsValid() {
			break
		}
		path = append(path, geom.Point{X: p.X, Y: p.Y})
	}
	return path
}

// DualFacePolygon returns MakeDualFace's result as a ctessum/geom Polygon
// with a single ring.
func (m *Mesh) DualFacePolygon(node int, alpha float64) (geom.Polygon, error) {
	ring, err := m.MakeDualFace(node, alpha)
	if err != nil {
		return nil, err
	}
	path := make(geom.Path, len(ring))
	for i, p := range ring {
		path[i] = geom.Point{X: p.X, Y: p.Y}
	}
	return geom.Polygon{path}, nil
}
