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

	"github.com/ctessum/polyclip-go"

	"github.com/spatialmodel/meshkernel/geo"
)

// Polygon is a closed ring (Points[0] == Points[len-1]).
type Polygon []geo.Point

// Polygons is one or more rings: the first is the outer boundary, any
// following rings are holes. A caller passing a single ring gets ordinary
// simple-polygon semantics.
type Polygons struct {
	Rings []Polygon
}

// Empty reports whether the polygon has no usable outer ring.
func (p Polygons) Empty() bool {
	return len(p.Rings) == 0 || len(p.Rings[0]) < 4
}

// Contains reports whether pt lies inside the outer ring and outside every
// hole ring.
func (p Polygons) Contains(pt geo.Point, proj geo.Projection) bool {
	if p.Empty() {
		return false
	}
	if !geo.IsPointInPolygonNodes(pt, p.Rings[0], proj) {
		return false
	}
	for _, hole := range p.Rings[1:] {
		if geo.IsPointInPolygonNodes(pt, hole, proj) {
			return false
		}
	}
	return true
}

func toContour(ring []geo.Point) polyclip.Contour {
	c := make(polyclip.Contour, 0, len(ring))
	for i, p := range ring {
		if i == len(ring)-1 && p == ring[0] {
			break // polyclip contours are implicitly closed
		}
		c = append(c, polyclip.Point{X: p.X, Y: p.Y})
	}
	return c
}

func (p Polygons) toClipPolygon() polyclip.Polygon {
	poly := make(polyclip.Polygon, 0, len(p.Rings))
	for _, r := range p.Rings {
		poly = append(poly, toContour(r))
	}
	return poly
}

// contourArea returns the shoelace area of a (not necessarily closed)
// polyclip contour.
func contourArea(c polyclip.Contour) float64 {
	if len(c) < 3 {
		return 0
	}
	var sum float64
	for i := range c {
		j := (i + 1) % len(c)
		sum += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return math.Abs(sum) / 2
}

func clipPolygonArea(p polyclip.Polygon) float64 {
	var total float64
	for _, c := range p {
		total += contourArea(c)
	}
	return total
}

// faceCompletelyInside reports whether ring (a face's closed node cycle) is
// entirely contained in the polygon, computed as an intersection-area
// clip rather than a per-vertex test so holes are honored.
func (m *Mesh) faceCompletelyInside(poly Polygons, ring []geo.Point) bool {
	if poly.Empty() {
		return false
	}
	face := polyclip.Polygon{toContour(ring)}
	faceArea := clipPolygonArea(face)
	if faceArea == 0 {
		return false
	}
	clip := poly.toClipPolygon()
	inter := face.Construct(polyclip.INTERSECTION, clip)
	interArea := clipPolygonArea(inter)
	return math.Abs(interArea-faceArea) <= 1e-6*faceArea
}
