package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointIsValid(t *testing.T) {
	assert.True(t, Point{1, 2}.IsValid())
	assert.False(t, Point{Missing, 2}.IsValid())
	assert.False(t, Point{1, Missing}.IsValid())
}

func TestDistanceCartesian(t *testing.T) {
	a := Point{0, 0}
	b := Point{3, 4}
	assert.InDelta(t, 5.0, Distance(a, b, Cartesian), 1e-9)
	assert.InDelta(t, 25.0, SquaredDistance(a, b, Cartesian), 1e-9)
}

func TestDistanceSphericalApproxVsAccurate(t *testing.T) {
	a := Point{4.9, 52.3}
	b := Point{4.95, 52.32}
	approx := Distance(a, b, Spherical)
	accurate := Distance(a, b, SphericalAccurate)
	// short distances at mid-latitude should agree closely between the
	// scaled-planar approximation and the great-circle formula.
	assert.InDelta(t, approx, accurate, approx*0.01)
}

func TestFaceAreaAndCenterOfMassSquare(t *testing.T) {
	ring := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}
	area, centroid, ccw := FaceAreaAndCenterOfMass(ring, Cartesian)
	assert.InDelta(t, 1.0, area, 1e-9)
	assert.InDelta(t, 0.5, centroid.X, 1e-9)
	assert.InDelta(t, 0.5, centroid.Y, 1e-9)
	assert.True(t, ccw)
}

func TestFaceAreaAndCenterOfMassClockwiseIsNegative(t *testing.T) {
	ring := []Point{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}
	_, _, ccw := FaceAreaAndCenterOfMass(ring, Cartesian)
	assert.False(t, ccw)
}

func TestIsPointInPolygonNodes(t *testing.T) {
	square := []Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}
	assert.True(t, IsPointInPolygonNodes(Point{1, 1}, square, Cartesian))
	assert.False(t, IsPointInPolygonNodes(Point{3, 3}, square, Cartesian))
}

func TestAreSegmentsCrossing(t *testing.T) {
	crosses, pt, _, _, _ := AreSegmentsCrossing(
		Point{0, 0}, Point{2, 2},
		Point{0, 2}, Point{2, 0},
		true, Cartesian,
	)
	assert.True(t, crosses)
	assert.InDelta(t, 1.0, pt.X, 1e-9)
	assert.InDelta(t, 1.0, pt.Y, 1e-9)
}

func TestAreSegmentsCrossingParallelDoesNotCross(t *testing.T) {
	crosses, _, _, _, _ := AreSegmentsCrossing(
		Point{0, 0}, Point{1, 0},
		Point{0, 1}, Point{1, 1},
		true, Cartesian,
	)
	assert.False(t, crosses)
}

func TestCircumcenterOfTriangleRightTriangle(t *testing.T) {
	a := Point{0, 0}
	b := Point{2, 0}
	c := Point{0, 2}
	center := CircumcenterOfTriangle(a, b, c, Cartesian)
	// circumcenter of a right triangle lies at the midpoint of the hypotenuse.
	assert.InDelta(t, 1.0, center.X, 1e-9)
	assert.InDelta(t, 1.0, center.Y, 1e-9)
}

func TestNormalizedInnerProductTwoSegments(t *testing.T) {
	cos := NormalizedInnerProductTwoSegments(
		Point{0, 0}, Point{1, 0},
		Point{0, 0}, Point{0, 1},
		Cartesian,
	)
	assert.InDelta(t, 0.0, cos, 1e-9)
}

func TestNormalizedInnerProductDegenerateSegment(t *testing.T) {
	cos := NormalizedInnerProductTwoSegments(
		Point{0, 0}, Point{0, 0},
		Point{0, 0}, Point{0, 1},
		Cartesian,
	)
	assert.Equal(t, Missing, cos)
}

func TestEdgeAngleQuadrants(t *testing.T) {
	assert.InDelta(t, 0.0, EdgeAngle(Point{0, 0}, Point{1, 0}, Cartesian), 1e-9)
	assert.InDelta(t, math.Pi/2, EdgeAngle(Point{0, 0}, Point{0, 1}, Cartesian), 1e-9)
}

func TestEdgeAngleDegenerate(t *testing.T) {
	angle := EdgeAngle(Point{0, 0}, Point{0, 0}, Cartesian)
	assert.InDelta(t, math.Pi/2, angle, 1e-9)
}

func TestWrapTo2Pi(t *testing.T) {
	assert.InDelta(t, math.Pi, WrapTo2Pi(-math.Pi), 1e-9)
	assert.InDelta(t, 0.5, WrapTo2Pi(0.5), 1e-9)
}

func TestNormalizeSphericalOffsetAntimeridian(t *testing.T) {
	x := NormalizeSphericalOffset(-179.0, -170.0, 170.0, Spherical)
	assert.InDelta(t, 181.0, x, 1e-9)
}

func TestPolygonPerimeterSquare(t *testing.T) {
	ring := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}
	assert.InDelta(t, 4.0, PolygonPerimeter(ring, Cartesian), 1e-9)
}
