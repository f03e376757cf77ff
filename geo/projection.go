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

// Package geo provides projection-aware geometric primitives over 2D points:
// distance, area, point-in-polygon, segment intersection and circumcenters,
// each dispatching on a Cartesian/spherical/spherical-accurate projection tag.
package geo

import "math"

// Missing is the sentinel value marking an invalid coordinate.
const Missing = -999.0

// EarthRadius is the mean radius of the earth in meters, used by the
// spherical projections.
const EarthRadius = 6371008.0

const degToRad = math.Pi / 180.0
const radToDeg = 180.0 / math.Pi

// minimumDelta is the threshold below which both coordinate deltas are
// considered degenerate when computing an incident-edge angle.
const minimumDelta = 1e-14

// Projection selects the coordinate system geometric primitives operate in.
type Projection int

const (
	// Cartesian treats (x, y) as planar Euclidean coordinates.
	Cartesian Projection = iota
	// Spherical treats (x, y) as (longitude, latitude) in degrees, with
	// longitudinal deltas scaled by cos(meanLatitude).
	Spherical
	// SphericalAccurate is Spherical but distances use the exact
	// great-circle formula instead of the scaled-planar approximation.
	SphericalAccurate
)

// Point is a coordinate pair. A coordinate equal to Missing marks the point
// invalid; IsValid requires both to be valid.
type Point struct {
	X, Y float64
}

// IsValid reports whether both components differ from the missing-value
// sentinel.
func (p Point) IsValid() bool {
	return p.X != Missing && p.Y != Missing
}

// Add returns the componentwise sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns the componentwise difference p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point {
	return Point{p.X * f, p.Y * f}
}

// MissingPoint is a convenience constant for an invalid point.
var MissingPoint = Point{Missing, Missing}

func meanLatitudeRad(a, b Point) float64 {
	return 0.5 * (a.Y + b.Y) * degToRad
}

// Dx returns the signed x-component of the vector from b to a (matching the
// reference's GetDx(a, b) = a.x - b.x convention), projection-aware.
func Dx(a, b Point, proj Projection) float64 {
	switch proj {
	case Spherical, SphericalAccurate:
		dx := a.X - b.X
		if dx > 180.0 {
			dx -= 360.0
		} else if dx < -180.0 {
			dx += 360.0
		}
		return dx * degToRad * EarthRadius * math.Cos(meanLatitudeRad(a, b))
	default:
		return a.X - b.X
	}
}

// Dy returns the signed y-component of the vector from b to a, projection-aware.
func Dy(a, b Point, proj Projection) float64 {
	switch proj {
	case Spherical, SphericalAccurate:
		return (a.Y - b.Y) * degToRad * EarthRadius
	default:
		return a.Y - b.Y
	}
}

// SquaredDistance returns the squared distance between a and b.
func SquaredDistance(a, b Point, proj Projection) float64 {
	if proj == SphericalAccurate {
		d := greatCircleDistance(a, b)
		return d * d
	}
	dx := Dx(a, b, proj)
	dy := Dy(a, b, proj)
	return dx*dx + dy*dy
}

// Distance returns the distance between a and b.
func Distance(a, b Point, proj Projection) float64 {
	if proj == SphericalAccurate {
		return greatCircleDistance(a, b)
	}
	return math.Sqrt(SquaredDistance(a, b, proj))
}

func greatCircleDistance(a, b Point) float64 {
	lat1 := a.Y * degToRad
	lat2 := b.Y * degToRad
	dLat := (b.Y - a.Y) * degToRad
	dLon := (b.X - a.X) * degToRad
	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)
	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon
	h = math.Min(1.0, math.Max(0.0, h))
	return 2 * EarthRadius * math.Asin(math.Sqrt(h))
}

// DotProduct returns dx1*dx2 + dy1*dy2.
func DotProduct(dx1, dx2, dy1, dy2 float64) float64 {
	return dx1*dx2 + dy1*dy2
}

// NormalizedInnerProductTwoSegments returns the cosine of the angle between
// the directed segments a->b and c->d, or Missing if either is degenerate.
func NormalizedInnerProductTwoSegments(a, b, c, d Point, proj Projection) float64 {
	dx1 := Dx(b, a, proj)
	dy1 := Dy(b, a, proj)
	dx2 := Dx(d, c, proj)
	dy2 := Dy(d, c, proj)

	r1 := math.Sqrt(dx1*dx1 + dy1*dy1)
	r2 := math.Sqrt(dx2*dx2 + dy2*dy2)
	if r1 < 1e-12 || r2 < 1e-12 {
		return Missing
	}
	return (dx1*dx2 + dy1*dy2) / (r1 * r2)
}

// NormalVector returns the unit outward normal of segment a->b at point p,
// oriented consistently for the circumcenter solver.
func NormalVector(a, b, p Point, proj Projection) Point {
	dx := Dx(b, a, proj)
	dy := Dy(b, a, proj)
	length := math.Sqrt(dx*dx + dy*dy)
	if length < 1e-14 {
		return Point{0, 0}
	}
	nx := dy / length
	ny := -dx / length
	if proj == Spherical || proj == SphericalAccurate {
		lat := p.Y * degToRad
		cosLat := math.Cos(lat)
		if cosLat < 1e-6 {
			cosLat = 1e-6
		}
		return Point{nx / (EarthRadius * degToRad * cosLat), ny / (EarthRadius * degToRad)}
	}
	return Point{nx, ny}
}

// AddIncrementToPoint moves p by increment along normal n, projection-aware
// (mirrors the reference's coordinate-scaling around origin for spherical
// projections).
func AddIncrementToPoint(n Point, increment float64, origin Point, proj Projection, p *Point) {
	switch proj {
	case Spherical, SphericalAccurate:
		lat := origin.Y * degToRad
		cosLat := math.Cos(lat)
		if cosLat < 1e-6 {
			cosLat = 1e-6
		}
		p.X += increment * n.X * radToDeg / (EarthRadius * cosLat)
		p.Y += increment * n.Y * radToDeg / EarthRadius
	default:
		p.X += increment * n.X
		p.Y += increment * n.Y
	}
}

// FaceAreaAndCenterOfMass computes the signed area and centroid of a closed
// ring (ring[0] == ring[len-1]) using the shoelace formula with
// projection-consistent deltas. counterClockwise reports whether the signed
// area is positive.
func FaceAreaAndCenterOfMass(ring []Point, proj Projection) (area float64, centroid Point, counterClockwise bool) {
	if len(ring) < 2 {
		return 0, MissingPoint, false
	}
	n := len(ring) - 1
	reference := ring[0]

	var signedArea, cx, cy float64
	for i := 0; i < n; i++ {
		x1 := Dx(ring[i], reference, proj)
		y1 := Dy(ring[i], reference, proj)
		x2 := Dx(ring[i+1], reference, proj)
		y2 := Dy(ring[i+1], reference, proj)

		cross := x1*y2 - x2*y1
		signedArea += cross
		cx += (x1 + x2) * cross
		cy += (y1 + y2) * cross
	}
	signedArea *= 0.5

	if math.Abs(signedArea) < 1e-15 {
		// degenerate ring: fall back to the arithmetic mean.
		var mx, my float64
		for i := 0; i < n; i++ {
			mx += ring[i].X
			my += ring[i].Y
		}
		return 0, Point{mx / float64(n), my / float64(n)}, false
	}

	cx /= 6 * signedArea
	cy /= 6 * signedArea

	centroid = Point{reference.X + cx, reference.Y + cy}
	if proj == Spherical || proj == SphericalAccurate {
		lat := reference.Y * degToRad
		cosLat := math.Cos(lat)
		if cosLat < 1e-6 {
			cosLat = 1e-6
		}
		centroid = Point{
			X: reference.X + cx*radToDeg/(EarthRadius*cosLat),
			Y: reference.Y + cy*radToDeg/EarthRadius,
		}
	}

	return math.Abs(signedArea), centroid, signedArea > 0
}

// IsPointInPolygonNodes reports whether p lies inside the closed ring
// (ring[0] == ring[len-1]) using a ray-cast crossing count.
func IsPointInPolygonNodes(p Point, ring []Point, proj Projection) bool {
	if len(ring) < 4 {
		return false
	}
	poly := ring
	if proj == Spherical || proj == SphericalAccurate {
		poly, p = normalizeAntimeridian(ring, p)
	}

	inside := false
	n := len(poly) - 1
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		yi, xi := poly[i].Y, poly[i].X
		yj, xj := poly[j].Y, poly[j].X
		if (yi > p.Y) != (yj > p.Y) {
			xIntersect := (xj-xi)*(p.Y-yi)/(yj-yi) + xi
			if p.X < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

// normalizeAntimeridian shifts ring and p onto a common longitudinal branch
// when the ring spans more than 180 degrees, so the crossing count in
// IsPointInPolygonNodes is not confused by the +/-180 wraparound.
func normalizeAntimeridian(ring []Point, p Point) ([]Point, Point) {
	minX, maxX := ring[0].X, ring[0].X
	for _, v := range ring {
		if v.X < minX {
			minX = v.X
		}
		if v.X > maxX {
			maxX = v.X
		}
	}
	if maxX-minX <= 180.0 {
		return ring, p
	}
	out := make([]Point, len(ring))
	for i, v := range ring {
		if v.X < 0 {
			v.X += 360.0
		}
		out[i] = v
	}
	if p.X < 0 {
		p.X += 360.0
	}
	return out, p
}

// NormalizeSphericalOffset shifts x-coordinates that fall outside
// [minx, minx+360) back onto that branch, matching the reference's
// antimeridian bookkeeping for bounding boxes and polygons in spherical
// projection. x is returned unchanged in Cartesian projection and when the
// box spans no more than 180 degrees (maxx-minx <= 180).
func NormalizeSphericalOffset(x, minx, maxx float64, proj Projection) float64 {
	if proj != Spherical && proj != SphericalAccurate {
		return x
	}
	if maxx-minx <= 180.0 {
		return x
	}
	if x-360.0 >= minx {
		x -= 360.0
	}
	if x < minx {
		x += 360.0
	}
	return x
}

// AreSegmentsCrossing tests whether segments p1->p2 and q1->q2 cross.
// endpointsInclusive controls whether touching endpoints count as crossing.
// It returns the intersection point, the cross product of the two direction
// vectors, and the parametric ratio of the intersection along each segment.
func AreSegmentsCrossing(p1, p2, q1, q2 Point, endpointsInclusive bool, proj Projection) (crosses bool, intersection Point, crossProduct, ratioP, ratioQ float64) {
	dx1 := Dx(p2, p1, proj)
	dy1 := Dy(p2, p1, proj)
	dx2 := Dx(q2, q1, proj)
	dy2 := Dy(q2, q1, proj)

	crossProduct = dx1*dy2 - dy1*dx2
	if math.Abs(crossProduct) < 1e-12 {
		return false, MissingPoint, crossProduct, Missing, Missing
	}

	x1 := Dx(q1, p1, proj)
	y1 := Dy(q1, p1, proj)

	ratioP = (x1*dy2 - y1*dx2) / crossProduct
	ratioQ = (x1*dy1 - y1*dx1) / crossProduct

	lo, hi := 0.0, 1.0
	inRange := func(t float64) bool {
		if endpointsInclusive {
			return t >= lo-1e-9 && t <= hi+1e-9
		}
		return t > lo+1e-9 && t < hi-1e-9
	}

	if !inRange(ratioP) || !inRange(ratioQ) {
		return false, MissingPoint, crossProduct, ratioP, ratioQ
	}

	intersection = Point{p1.X + ratioP*(p2.X-p1.X), p1.Y + ratioP*(p2.Y-p1.Y)}
	return true, intersection, crossProduct, ratioP, ratioQ
}

// CircumcenterOfTriangle returns the exact circumcenter of triangle (a, b, c)
// via the closed-form perpendicular-bisector solution.
func CircumcenterOfTriangle(a, b, c Point, proj Projection) Point {
	bx := Dx(b, a, proj)
	by := Dy(b, a, proj)
	cx := Dx(c, a, proj)
	cy := Dy(c, a, proj)

	d := 2 * (bx*cy - by*cx)
	if math.Abs(d) < 1e-14 {
		return Point{(a.X + b.X + c.X) / 3, (a.Y + b.Y + c.Y) / 3}
	}

	bLenSq := bx*bx + by*by
	cLenSq := cx*cx + cy*cy

	ux := (cy*bLenSq - by*cLenSq) / d
	uy := (bx*cLenSq - cx*bLenSq) / d

	switch proj {
	case Spherical, SphericalAccurate:
		lat := a.Y * degToRad
		cosLat := math.Cos(lat)
		if cosLat < 1e-6 {
			cosLat = 1e-6
		}
		return Point{a.X + ux*radToDeg/(EarthRadius*cosLat), a.Y + uy*radToDeg/EarthRadius}
	default:
		return Point{a.X + ux, a.Y + uy}
	}
}

// EdgeAngle returns the angle in (-pi, pi] (as math.Atan2 does) of the vector
// from `from` to `to`, projection-aware; callers wrap it with WrapTo2Pi. It
// forces +/- pi/2 when both deltas are below
// minimumDelta (matching the reference's degenerate-edge handling in
// SortEdgesInCounterClockWiseOrder).
func EdgeAngle(from, to Point, proj Projection) float64 {
	dx := Dx(to, from, proj)
	dy := Dy(to, from, proj)
	if math.Abs(dx) < minimumDelta && math.Abs(dy) < minimumDelta {
		if dy < 0.0 {
			return -math.Pi / 2
		}
		return math.Pi / 2
	}
	return math.Atan2(dy, dx)
}

// WrapTo2Pi wraps phi into [0, 2*pi).
func WrapTo2Pi(phi float64) float64 {
	for phi < 0 {
		phi += 2 * math.Pi
	}
	for phi >= 2*math.Pi {
		phi -= 2 * math.Pi
	}
	return phi
}

// PolygonPerimeter returns the sum of segment lengths of the closed ring.
func PolygonPerimeter(ring []Point, proj Projection) float64 {
	if len(ring) < 2 {
		return 0
	}
	var total float64
	for i := 0; i < len(ring)-1; i++ {
		total += Distance(ring[i], ring[i+1], proj)
	}
	return total
}
