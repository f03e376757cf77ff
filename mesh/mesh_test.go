package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialmodel/meshkernel/geo"
)

// newSquareWithDiagonal builds a unit square (0,0)-(1,0)-(1,1)-(0,1) split
// into two triangles by the 0-2 diagonal.
func newSquareWithDiagonal() *Mesh {
	nodes := []geo.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	edges := []Edge{
		{First: 0, Second: 1},
		{First: 1, Second: 2},
		{First: 2, Second: 3},
		{First: 3, Second: 0},
		{First: 0, Second: 2},
	}
	return NewFromArrays(nodes, edges, geo.Cartesian)
}

// newSquareNoDiagonal builds the same square without the diagonal, so
// administration discovers a single quadrilateral face.
func newSquareNoDiagonal() *Mesh {
	nodes := []geo.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	edges := []Edge{
		{First: 0, Second: 1},
		{First: 1, Second: 2},
		{First: 2, Second: 3},
		{First: 3, Second: 0},
	}
	return NewFromArrays(nodes, edges, geo.Cartesian)
}

func TestNewEmptyMesh(t *testing.T) {
	m := New(geo.Cartesian)
	assert.Equal(t, 0, m.NumNodes())
	assert.Equal(t, 0, m.NumEdges())
	assert.Equal(t, 0, m.NumFaces())
	assert.Equal(t, DefaultOptions(), m.Options)
}

func TestNewFromArrays(t *testing.T) {
	m := newSquareWithDiagonal()
	require.Equal(t, 4, m.NumNodes())
	require.Equal(t, 5, m.NumEdges())
}

func TestEdgeIsValid(t *testing.T) {
	assert.True(t, Edge{First: 0, Second: 1}.IsValid())
	assert.False(t, Edge{First: MissingIndex, Second: 1}.IsValid())
	assert.False(t, Edge{First: 0, Second: MissingIndex}.IsValid())
}

func TestBoundingBox(t *testing.T) {
	m := newSquareWithDiagonal()
	minP, maxP, ok := m.BoundingBox()
	require.True(t, ok)
	assert.Equal(t, geo.Point{X: 0, Y: 0}, minP)
	assert.Equal(t, geo.Point{X: 1, Y: 1}, maxP)
}

func TestBoundingBoxEmptyMesh(t *testing.T) {
	m := New(geo.Cartesian)
	_, _, ok := m.BoundingBox()
	assert.False(t, ok)
}

func TestBoundingBoxSkipsInvalidNodes(t *testing.T) {
	m := newSquareWithDiagonal()
	m.Nodes[1] = geo.MissingPoint
	minP, maxP, ok := m.BoundingBox()
	require.True(t, ok)
	assert.Equal(t, geo.Point{X: 0, Y: 0}, minP)
	assert.Equal(t, geo.Point{X: 1, Y: 1}, maxP)
}
