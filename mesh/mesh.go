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

// Package mesh implements the unstructured 2D mesh kernel: a doubly-derived
// node/edge/face store, its administration pipeline, geometric mutation
// operations, and derived queries over the resulting planar subdivision.
package mesh

import (
	"github.com/sirupsen/logrus"

	"github.com/spatialmodel/meshkernel/geo"
	"github.com/spatialmodel/meshkernel/rtree"
)

// MissingIndex marks an invalid node/edge/face index.
const MissingIndex = -1

// MaxNodeEdges is the fan-out cap on nodeEdges[n].
const MaxNodeEdges = 16

// MinFaceSize and MaxFaceSize bound the face-cycle length considered during
// face discovery.
const (
	MinFaceSize = 3
	MaxFaceSize = 6
)

// Node classification codes, per the incidence tally in Administrate.
const (
	NodeHanging  = -1
	NodeInternal = 1
	NodeBoundary = 2
	NodeCorner   = 3
)

// AdministrationOption selects how much of the incidence machinery
// Administrate rebuilds.
type AdministrationOption int

const (
	// EdgesOnly rebuilds node-edge incidence and its angular order but skips
	// face discovery and everything derived from it.
	EdgesOnly AdministrationOption = iota
	// EdgesAndFaces additionally discovers faces, their geometry, and node
	// classification.
	EdgesAndFaces
)

// Edge is an ordered pair of node indices. Orientation is topological only;
// geometric routines treat edges as unordered segments.
type Edge struct {
	First, Second int
}

// IsValid reports whether both endpoints are set (neither is MissingIndex).
func (e Edge) IsValid() bool {
	return e.First != MissingIndex && e.Second != MissingIndex
}

// Options carries the kernel's tunables, normally populated once at
// construction time (directly, or via internal/config in the CLI harness).
type Options struct {
	// MergingDistance is the default radius used by MergeNodesInPolygon.
	MergingDistance float64
	// WeightCircumCenter is the shrink factor applied to a face's ring
	// before testing circumcenter containment (C5).
	WeightCircumCenter float64
	// CircumcenterMaxIterations bounds the C5 iterative refinement.
	CircumcenterMaxIterations int
	// MinNumFacesInterior is the minimum count of interior edges a face
	// must have before C5 attempts iterative refinement instead of
	// returning the centroid outright.
	MinNumFacesInterior int
}

// DefaultOptions returns the tunables used by the reference implementation.
func DefaultOptions() Options {
	return Options{
		MergingDistance:           1e-6,
		WeightCircumCenter:        0.1,
		CircumcenterMaxIterations: 100,
		MinNumFacesInterior:       2,
	}
}

// Mesh is a mutable, in-memory unstructured 2D mesh: canonical node and edge
// arrays plus incidence tables derived from them by Administrate. A Mesh is
// not safe for concurrent use; every operation runs to completion on the
// caller's goroutine.
type Mesh struct {
	Projection geo.Projection
	Options    Options
	Log        logrus.FieldLogger

	Nodes []geo.Point
	Edges []Edge

	NodeMask []int
	EdgeMask []int

	NodeEdges    [][]int
	EdgeFaces    [][]int
	EdgeNumFaces []int
	FaceNodes    [][]int
	FaceEdges    [][]int

	FaceArea         []float64
	FaceCentroid     []geo.Point
	FaceCircumcenter []geo.Point
	NodeType         []int

	nodesRTreeDirty bool
	edgesRTreeDirty bool
	nodesTree       *rtree.Tree
	edgesTree       *rtree.Tree
}

// New returns an empty mesh over the given projection.
func New(proj geo.Projection) *Mesh {
	return &Mesh{
		Projection:      proj,
		Options:         DefaultOptions(),
		Log:             logrus.StandardLogger(),
		nodesRTreeDirty: true,
		edgesRTreeDirty: true,
	}
}

// NewFromArrays builds a mesh from caller-supplied node coordinates and edge
// index pairs, in the pre-administered state.
func NewFromArrays(nodes []geo.Point, edges []Edge, proj geo.Projection) *Mesh {
	m := New(proj)
	m.Nodes = append(m.Nodes, nodes...)
	m.Edges = append(m.Edges, edges...)
	return m
}

// NumNodes returns the number of entries in Nodes, live or soft-deleted.
func (m *Mesh) NumNodes() int {
	return len(m.Nodes)
}

// NumEdges returns the number of entries in Edges, live or soft-deleted.
func (m *Mesh) NumEdges() int {
	return len(m.Edges)
}

// NumFaces returns the number of discovered faces.
func (m *Mesh) NumFaces() int {
	return len(m.FaceNodes)
}

// BoundingBox returns the axis-aligned bounding box over all valid nodes.
// ok is false if the mesh has no valid node.
func (m *Mesh) BoundingBox() (minP, maxP geo.Point, ok bool) {
	first := true
	for _, p := range m.Nodes {
		if !p.IsValid() {
			continue
		}
		if first {
			minP, maxP = p, p
			first = false
			continue
		}
		if p.X < minP.X {
			minP.X = p.X
		}
		if p.Y < minP.Y {
			minP.Y = p.Y
		}
		if p.X > maxP.X {
			maxP.X = p.X
		}
		if p.Y > maxP.Y {
			maxP.Y = p.Y
		}
	}
	return minP, maxP, !first
}

// resetDerivedTables clears every incidence/geometry table so Administrate
// can rebuild them from scratch.
func (m *Mesh) resetDerivedTables() {
	n := len(m.Nodes)
	e := len(m.Edges)
	m.NodeEdges = make([][]int, n)
	m.EdgeFaces = make([][]int, e)
	m.EdgeNumFaces = make([]int, e)
	m.FaceNodes = nil
	m.FaceEdges = nil
	m.FaceArea = nil
	m.FaceCentroid = nil
	m.FaceCircumcenter = nil
	m.NodeType = make([]int, n)
}

// ensureNodesTree lazily (re)builds the node R-tree if dirty or absent.
func (m *Mesh) ensureNodesTree() *rtree.Tree {
	if m.nodesTree == nil || m.nodesRTreeDirty {
		xs := make([]float64, 0, len(m.Nodes))
		ys := make([]float64, 0, len(m.Nodes))
		positions := make([]int, 0, len(m.Nodes))
		for i, p := range m.Nodes {
			if !p.IsValid() {
				continue
			}
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
			positions = append(positions, i)
		}
		m.nodesTree = buildIndexedTree(xs, ys, positions)
		m.nodesRTreeDirty = false
	}
	return m.nodesTree
}

// ensureEdgesTree lazily (re)builds the edge-midpoint R-tree if dirty or
// absent.
func (m *Mesh) ensureEdgesTree() *rtree.Tree {
	if m.edgesTree == nil || m.edgesRTreeDirty {
		xs := make([]float64, 0, len(m.Edges))
		ys := make([]float64, 0, len(m.Edges))
		positions := make([]int, 0, len(m.Edges))
		for i, e := range m.Edges {
			if !e.IsValid() {
				continue
			}
			a, b := m.Nodes[e.First], m.Nodes[e.Second]
			xs = append(xs, 0.5*(a.X+b.X))
			ys = append(ys, 0.5*(a.Y+b.Y))
			positions = append(positions, i)
		}
		m.edgesTree = buildIndexedTree(xs, ys, positions)
		m.edgesRTreeDirty = false
	}
	return m.edgesTree
}

// buildIndexedTree builds a tree whose payload positions are the caller's
// original indices rather than 0..n-1, since rtree.Build assumes the latter.
func buildIndexedTree(xs, ys []float64, positions []int) *rtree.Tree {
	t := rtree.Build(xs, ys)
	if len(positions) == 0 {
		return t
	}
	// rtree.Build assigns position i to xs[i]/ys[i]; remap in place isn't
	// exposed, so rebuild via Insert when positions are non-trivial.
	trivial := true
	for i, p := range positions {
		if p != i {
			trivial = false
			break
		}
	}
	if trivial {
		return t
	}
	remapped := rtree.New()
	for i := range xs {
		remapped.Insert(xs[i], ys[i], positions[i])
	}
	return remapped
}
