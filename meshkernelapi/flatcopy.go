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

package meshkernelapi

import (
	"github.com/spatialmodel/meshkernel/geo"
	"github.com/spatialmodel/meshkernel/mesh"
)

// doubleMissingValue is the wire sentinel for an invalid coordinate. It has
// the same value as geo.Missing and is declared here so an FFI caller reading
// raw floats does not need to import the kernel to recognize it.
const doubleMissingValue = -999.0

// indexMissingValue is the wire sentinel for an invalid node/edge index.
const indexMissingValue = -1

// innerOuterSeparator marks a ring boundary within a flattened polygon
// coordinate array, distinct from doubleMissingValue.
const innerOuterSeparator = -998.0

// Dimensions is the structure-of-arrays size record for one mesh snapshot.
type Dimensions struct {
	NumNode         int
	NumEdge         int
	NumFace         int
	MaxNumFaceNodes int
}

// Geometry is the structure-of-arrays coordinate/topology record for one
// mesh snapshot. FaceNodes is row-major, numFace*maxNumFaceNodes long,
// padded with indexMissingValue.
type Geometry struct {
	NodeX, NodeY, NodeZ []float64
	EdgeNodes           []int
	FaceNodes           []int
	FaceX, FaceY, FaceZ []float64
}

// toMesh builds a mesh from a flat-copy Dimensions/Geometry pair.
// isGeographic selects the spherical projection; only nodes and edges are
// read (faces are always re-derived by administration).
func toMesh(dims Dimensions, geom_ Geometry, isGeographic bool) (*mesh.Mesh, error) {
	if dims.NumNode < 0 || dims.NumEdge < 0 {
		return nil, mesh.ErrInvalidArgument
	}
	if len(geom_.NodeX) < dims.NumNode || len(geom_.NodeY) < dims.NumNode {
		return nil, mesh.ErrInvalidArgument
	}
	if len(geom_.EdgeNodes) < 2*dims.NumEdge {
		return nil, mesh.ErrInvalidArgument
	}

	proj := geo.Cartesian
	if isGeographic {
		proj = geo.Spherical
	}

	nodes := make([]geo.Point, dims.NumNode)
	for i := 0; i < dims.NumNode; i++ {
		x, y := geom_.NodeX[i], geom_.NodeY[i]
		if x == doubleMissingValue || y == doubleMissingValue {
			nodes[i] = geo.MissingPoint
			continue
		}
		nodes[i] = geo.Point{X: x, Y: y}
	}

	edges := make([]mesh.Edge, dims.NumEdge)
	for i := 0; i < dims.NumEdge; i++ {
		u, v := geom_.EdgeNodes[2*i], geom_.EdgeNodes[2*i+1]
		if u == indexMissingValue || v == indexMissingValue {
			edges[i] = mesh.Edge{First: mesh.MissingIndex, Second: mesh.MissingIndex}
			continue
		}
		edges[i] = mesh.Edge{First: u, Second: v}
	}

	return mesh.NewFromArrays(nodes, edges, proj), nil
}

// fromMesh flattens m's current node and edge arrays, and its face arrays
// when includeFaces is set (the caller is expected to have administered
// accordingly first).
func fromMesh(m *mesh.Mesh, includeFaces bool) (Dimensions, Geometry) {
	dims := Dimensions{NumNode: m.NumNodes(), NumEdge: m.NumEdges()}

	g := Geometry{
		NodeX: make([]float64, dims.NumNode),
		NodeY: make([]float64, dims.NumNode),
		NodeZ: make([]float64, dims.NumNode),
	}
	for i, p := range m.Nodes {
		if !p.IsValid() {
			g.NodeX[i], g.NodeY[i], g.NodeZ[i] = doubleMissingValue, doubleMissingValue, doubleMissingValue
			continue
		}
		g.NodeX[i], g.NodeY[i] = p.X, p.Y
	}

	g.EdgeNodes = make([]int, 2*dims.NumEdge)
	for i, e := range m.Edges {
		if !e.IsValid() {
			g.EdgeNodes[2*i] = indexMissingValue
			g.EdgeNodes[2*i+1] = indexMissingValue
			continue
		}
		g.EdgeNodes[2*i] = e.First
		g.EdgeNodes[2*i+1] = e.Second
	}

	if !includeFaces {
		return dims, g
	}

	dims.NumFace = m.NumFaces()
	maxNodes := 0
	for _, nodes := range m.FaceNodes {
		if len(nodes) > maxNodes {
			maxNodes = len(nodes)
		}
	}
	dims.MaxNumFaceNodes = maxNodes

	g.FaceNodes = make([]int, dims.NumFace*maxNodes)
	for i := range g.FaceNodes {
		g.FaceNodes[i] = indexMissingValue
	}
	g.FaceX = make([]float64, dims.NumFace)
	g.FaceY = make([]float64, dims.NumFace)
	g.FaceZ = make([]float64, dims.NumFace)

	for f, nodes := range m.FaceNodes {
		for j, n := range nodes {
			g.FaceNodes[f*maxNodes+j] = n
		}
		c := m.FaceCentroid[f]
		g.FaceX[f], g.FaceY[f] = c.X, c.Y
	}

	return dims, g
}
