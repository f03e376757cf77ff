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
	"gonum.org/v1/gonum/floats"

	"github.com/spatialmodel/meshkernel/geo"
)

// computeFaceCircumcenter fills FaceCircumcenter[f], the face's "hydrodynamic
// center": the exact triangle circumcenter for a 3-cycle, the centroid when
// fewer than Options.MinNumFacesInterior edges are interior, and otherwise
// an iteratively refined interior point with a shrunk-ring containment
// fallback.
func (m *Mesh) computeFaceCircumcenter(f int) {
	nodes := m.FaceNodes[f]
	edges := m.FaceEdges[f]
	n := len(nodes)

	if n == 3 {
		m.FaceCircumcenter[f] = geo.CircumcenterOfTriangle(
			m.Nodes[nodes[0]], m.Nodes[nodes[1]], m.Nodes[nodes[2]], m.Projection)
		return
	}

	interiorCount := 0
	for _, e := range edges {
		if m.EdgeNumFaces[e] == 2 {
			interiorCount++
		}
	}
	if interiorCount < m.Options.MinNumFacesInterior {
		m.FaceCircumcenter[f] = m.FaceCentroid[f]
		return
	}

	eps := 1e-3
	if m.Projection != geo.Cartesian {
		eps = 9e-10
	}

	estimate := m.FaceCentroid[f]
	for iter := 0; iter < m.Options.CircumcenterMaxIterations; iter++ {
		prev := estimate
		for i, e := range edges {
			if m.EdgeNumFaces[e] != 2 {
				continue
			}
			a := m.Nodes[nodes[i]]
			b := m.Nodes[nodes[(i+1)%n]]
			midpoint := geo.Point{X: 0.5 * (a.X + b.X), Y: 0.5 * (a.Y + b.Y)}
			normal := geo.NormalVector(a, b, midpoint, m.Projection)

			dx := geo.Dx(estimate, midpoint, m.Projection)
			dy := geo.Dy(estimate, midpoint, m.Projection)
			dot := geo.DotProduct(dx, normal.X, dy, normal.Y)

			geo.AddIncrementToPoint(normal, -0.1*dot, estimate, m.Projection, &estimate)
		}
		if floats.EqualWithinAbs(estimate.X, prev.X, eps) && floats.EqualWithinAbs(estimate.Y, prev.Y, eps) {
			break
		}
	}

	ring := closedRing(nodes, m.Nodes)
	shrunk := shrinkRing(ring, m.FaceCentroid[f], m.Options.WeightCircumCenter)
	if geo.IsPointInPolygonNodes(estimate, shrunk, m.Projection) {
		m.FaceCircumcenter[f] = estimate
		return
	}

	for i := 0; i < len(ring)-1; i++ {
		crosses, pt, _, _, _ := geo.AreSegmentsCrossing(
			m.FaceCentroid[f], estimate, ring[i], ring[i+1], true, m.Projection)
		if crosses {
			m.FaceCircumcenter[f] = pt
			return
		}
	}
	m.FaceCircumcenter[f] = m.FaceCentroid[f]
}

func closedRing(nodeIndices []int, nodes []geo.Point) []geo.Point {
	ring := make([]geo.Point, len(nodeIndices)+1)
	for i, n := range nodeIndices {
		ring[i] = nodes[n]
	}
	ring[len(nodeIndices)] = ring[0]
	return ring
}

func shrinkRing(ring []geo.Point, centroid geo.Point, weight float64) []geo.Point {
	out := make([]geo.Point, len(ring))
	for i, v := range ring {
		out[i] = geo.Point{
			X: weight*v.X + (1-weight)*centroid.X,
			Y: weight*v.Y + (1-weight)*centroid.Y,
		}
	}
	return out
}
