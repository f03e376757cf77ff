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
	"sort"

	"github.com/spatialmodel/meshkernel/geo"
)

// Administrate re-derives every incidence table from the current node/edge
// arrays: it prunes invalid entries, refreshes the spatial indices, rebuilds
// node-edge incidence and its angular order, and — when option is
// EdgesAndFaces — discovers faces, computes their geometry, and classifies
// nodes. It is idempotent over unchanged state.
func (m *Mesh) Administrate(option AdministrationOption) {
	m.deleteInvalidNodesAndEdges()
	m.refreshSpatialIndices()
	m.buildNodeEdgeIncidence()
	m.sortEdgesCounterClockwise()

	m.Log.WithField("stage", "incidence").Debug("node-edge incidence rebuilt")

	if option == EdgesOnly {
		return
	}

	m.FaceNodes = nil
	m.FaceEdges = nil
	m.FaceArea = nil
	m.FaceCentroid = nil
	m.FaceCircumcenter = nil
	for i := range m.EdgeFaces {
		m.EdgeFaces[i] = nil
		m.EdgeNumFaces[i] = 0
	}

	m.findFaces()
	m.Log.WithField("numFaces", len(m.FaceNodes)).Debug("faces discovered")

	for f := range m.FaceNodes {
		m.computeFaceCircumcenter(f)
	}

	m.classifyNodes()
}

// deleteInvalidNodesAndEdges is stage 1: any edge with a missing endpoint is
// invalid; any node not referenced by any valid edge is set to
// missing-value; a stable remap then compacts both arrays.
func (m *Mesh) deleteInvalidNodesAndEdges() {
	referenced := make([]bool, len(m.Nodes))
	for _, e := range m.Edges {
		if !e.IsValid() {
			continue
		}
		if e.First >= 0 && e.First < len(referenced) {
			referenced[e.First] = true
		}
		if e.Second >= 0 && e.Second < len(referenced) {
			referenced[e.Second] = true
		}
	}

	remap := make([]int, len(m.Nodes))
	newNodes := make([]geo.Point, 0, len(m.Nodes))
	newMask := make([]int, 0, len(m.Nodes))
	hasMask := len(m.NodeMask) == len(m.Nodes)
	for i, p := range m.Nodes {
		if p.IsValid() && !referenced[i] {
			p = geo.MissingPoint
		}
		if !p.IsValid() {
			remap[i] = MissingIndex
			continue
		}
		remap[i] = len(newNodes)
		newNodes = append(newNodes, p)
		if hasMask {
			newMask = append(newMask, m.NodeMask[i])
		}
	}

	newEdges := make([]Edge, 0, len(m.Edges))
	newEdgeMask := make([]int, 0, len(m.Edges))
	hasEdgeMask := len(m.EdgeMask) == len(m.Edges)
	for i, e := range m.Edges {
		if !e.IsValid() {
			continue
		}
		u, v := remap[e.First], remap[e.Second]
		if u == MissingIndex || v == MissingIndex {
			continue
		}
		newEdges = append(newEdges, Edge{First: u, Second: v})
		if hasEdgeMask {
			newEdgeMask = append(newEdgeMask, m.EdgeMask[i])
		}
	}

	if len(newNodes) != len(m.Nodes) {
		m.nodesRTreeDirty = true
	}
	if len(newEdges) != len(m.Edges) {
		m.edgesRTreeDirty = true
	}

	m.Nodes = newNodes
	m.Edges = newEdges
	if hasMask {
		m.NodeMask = newMask
	}
	if hasEdgeMask {
		m.EdgeMask = newEdgeMask
	}
	m.resetDerivedTables()
}

// refreshSpatialIndices is stage 2.
func (m *Mesh) refreshSpatialIndices() {
	if m.nodesRTreeDirty && len(m.Nodes) > 0 {
		m.ensureNodesTree()
	}
	if m.edgesRTreeDirty && len(m.Edges) > 0 {
		m.ensureEdgesTree()
	}
}

// buildNodeEdgeIncidence is stage 3.
func (m *Mesh) buildNodeEdgeIncidence() {
	for i, e := range m.Edges {
		if !e.IsValid() {
			continue
		}
		m.tryAddIncidence(e.First, e.Second, i)
		m.tryAddIncidence(e.Second, e.First, i)
	}
}

func (m *Mesh) tryAddIncidence(n, other, edgeIdx int) {
	if len(m.NodeEdges[n]) >= MaxNodeEdges {
		return
	}
	for _, existing := range m.NodeEdges[n] {
		if m.otherNode(existing, n) == other {
			return
		}
	}
	m.NodeEdges[n] = append(m.NodeEdges[n], edgeIdx)
}

// otherNode returns the endpoint of edge edgeIdx that is not n.
func (m *Mesh) otherNode(edgeIdx, n int) int {
	e := m.Edges[edgeIdx]
	if e.First == n {
		return e.Second
	}
	return e.First
}

// sortEdgesCounterClockwise is stage 4: for each node, sort its incident
// edges by the angle of their outward direction, wrapped relative to the
// first edge's own angle.
func (m *Mesh) sortEdgesCounterClockwise() {
	for n, edges := range m.NodeEdges {
		if len(edges) < 2 {
			continue
		}
		reference := geo.EdgeAngle(m.Nodes[n], m.Nodes[m.otherNode(edges[0], n)], m.Projection)
		angles := make([]float64, len(edges))
		for i, e := range edges {
			a := geo.EdgeAngle(m.Nodes[n], m.Nodes[m.otherNode(e, n)], m.Projection)
			angles[i] = geo.WrapTo2Pi(a - reference)
		}
		sort.Sort(&edgeAngleSorter{edges: edges, angles: angles})
	}
}

type edgeAngleSorter struct {
	edges  []int
	angles []float64
}

func (s *edgeAngleSorter) Len() int { return len(s.edges) }
func (s *edgeAngleSorter) Less(i, j int) bool {
	return s.angles[i] < s.angles[j]
}
func (s *edgeAngleSorter) Swap(i, j int) {
	s.edges[i], s.edges[j] = s.edges[j], s.edges[i]
	s.angles[i], s.angles[j] = s.angles[j], s.angles[i]
}

// findFaces is stage 6: bounded-length cycle discovery, scanning face size
// 3 through 6, node by node, incident edge by incident edge.
func (m *Mesh) findFaces() {
	for size := MinFaceSize; size <= MaxFaceSize; size++ {
		for start := range m.Nodes {
			if !m.Nodes[start].IsValid() {
				continue
			}
			startEdges := append([]int(nil), m.NodeEdges[start]...)
			for _, e0 := range startEdges {
				m.tryCommitFace(start, e0, size)
			}
		}
	}
}

func (m *Mesh) tryCommitFace(start, e0, size int) {
	nodesCycle, edgesCycle, closed := m.walkFaceCycle(start, start, e0, size, []int{start}, nil)
	if !closed {
		return
	}
	interior := nodesCycle[:len(nodesCycle)-1]
	if !allDistinct(interior) {
		return
	}
	for _, ei := range edgesCycle {
		if m.EdgeNumFaces[ei] >= 2 {
			return
		}
	}
	allHaveOne := true
	for _, ei := range edgesCycle {
		if m.EdgeNumFaces[ei] != 1 {
			allHaveOne = false
			break
		}
	}
	if allHaveOne {
		seen := make(map[int]bool, len(edgesCycle))
		for _, ei := range edgesCycle {
			f := m.EdgeFaces[ei][0]
			if seen[f] {
				return
			}
			seen[f] = true
		}
	}

	ring := make([]geo.Point, len(nodesCycle))
	for i, n := range nodesCycle {
		ring[i] = m.Nodes[n]
	}
	area, centroid, ccw := geo.FaceAreaAndCenterOfMass(ring, m.Projection)
	if !ccw || area <= 0 {
		return
	}

	faceIdx := len(m.FaceNodes)
	m.FaceNodes = append(m.FaceNodes, interior)
	m.FaceEdges = append(m.FaceEdges, edgesCycle)
	m.FaceArea = append(m.FaceArea, area)
	m.FaceCentroid = append(m.FaceCentroid, centroid)
	m.FaceCircumcenter = append(m.FaceCircumcenter, geo.MissingPoint)
	for _, ei := range edgesCycle {
		m.EdgeFaces[ei] = append(m.EdgeFaces[ei], faceIdx)
		m.EdgeNumFaces[ei]++
	}
}

// walkFaceCycle performs one "turn clockwise one step" walk of exactly
// targetSize edges starting at edgeIdx from currentNode, returning the
// visited node sequence (start...start) and edge sequence, and whether the
// walk closed back on start after exactly targetSize steps.
func (m *Mesh) walkFaceCycle(start, currentNode, edgeIdx, targetSize int, nodesCycle, edgesCycle []int) ([]int, []int, bool) {
	other := m.otherNode(edgeIdx, currentNode)
	nodesCycle = append(nodesCycle, other)
	edgesCycle = append(edgesCycle, edgeIdx)

	if len(edgesCycle) == targetSize {
		return nodesCycle, edgesCycle, other == start
	}

	degree := len(m.NodeEdges[other])
	if degree == 0 {
		return nodesCycle, edgesCycle, false
	}
	idx := indexOfInt(m.NodeEdges[other], edgeIdx)
	if idx < 0 {
		return nodesCycle, edgesCycle, false
	}
	nextEdge := m.NodeEdges[other][(idx-1+degree)%degree]
	return m.walkFaceCycle(start, other, nextEdge, targetSize, nodesCycle, edgesCycle)
}

func indexOfInt(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func allDistinct(s []int) bool {
	seen := make(map[int]bool, len(s))
	for _, v := range s {
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// classifyNodes is stage 8.
func (m *Mesh) classifyNodes() {
	n := len(m.Nodes)
	forcedHanging := make([]bool, n)
	tally := make([]int, n)

	for ei, e := range m.Edges {
		if !e.IsValid() {
			continue
		}
		switch m.EdgeNumFaces[ei] {
		case 0:
			forcedHanging[e.First] = true
			forcedHanging[e.Second] = true
		case 1:
			tally[e.First]++
			tally[e.Second]++
		}
	}

	for i, p := range m.Nodes {
		if !p.IsValid() {
			continue
		}
		degree := len(m.NodeEdges[i])
		switch {
		case degree < 2:
			m.NodeType[i] = NodeHanging
		case tally[i] > 2:
			m.NodeType[i] = NodeCorner
		case (tally[i] == 1 || tally[i] == 2) && degree == 2:
			m.NodeType[i] = NodeCorner
		case (tally[i] == 1 || tally[i] == 2) && degree > 2:
			cos := m.boundaryAngleCosine(i)
			if cos > -0.25 {
				m.NodeType[i] = NodeCorner
			} else {
				m.NodeType[i] = NodeBoundary
			}
		case tally[i] == 0:
			if forcedHanging[i] {
				m.NodeType[i] = NodeHanging
			} else {
				m.NodeType[i] = NodeInternal
			}
		default:
			m.NodeType[i] = NodeInternal
		}
	}
}

// boundaryAngleCosine returns the cosine of the interior angle at node n
// between its two boundary (edgeNumFaces == 1) incident edges. If fewer
// than two boundary edges are incident, or an edge is degenerate, returns -1
// (a straight angle), so classifyNodes marks the node NodeBoundary.
func (m *Mesh) boundaryAngleCosine(n int) float64 {
	var boundary []int
	for _, e := range m.NodeEdges[n] {
		if m.EdgeNumFaces[e] == 1 {
			boundary = append(boundary, e)
		}
	}
	if len(boundary) < 2 {
		return -1
	}
	a := m.otherNode(boundary[0], n)
	b := m.otherNode(boundary[len(boundary)-1], n)
	cos := geo.NormalizedInnerProductTwoSegments(m.Nodes[n], m.Nodes[a], m.Nodes[n], m.Nodes[b], m.Projection)
	if cos == geo.Missing {
		return -1
	}
	return cos
}
