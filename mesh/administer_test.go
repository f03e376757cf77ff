package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialmodel/meshkernel/geo"
)

func TestAdministrateSquareWithDiagonalFindsTwoTriangles(t *testing.T) {
	m := newSquareWithDiagonal()
	m.Administrate(EdgesAndFaces)

	require.Equal(t, 2, m.NumFaces())
	var total float64
	for _, a := range m.FaceArea {
		total += a
	}
	assert.InDelta(t, 1.0, total, 1e-9)
	for _, nodes := range m.FaceNodes {
		assert.Len(t, nodes, 3)
	}
}

func TestAdministrateSquareNoDiagonalFindsOneQuad(t *testing.T) {
	m := newSquareNoDiagonal()
	m.Administrate(EdgesAndFaces)

	require.Equal(t, 1, m.NumFaces())
	assert.InDelta(t, 1.0, m.FaceArea[0], 1e-9)
	assert.Len(t, m.FaceNodes[0], 4)
}

func TestAdministrateClassifiesSquareCornersAsCorner(t *testing.T) {
	m := newSquareWithDiagonal()
	m.Administrate(EdgesAndFaces)

	for i := 0; i < 4; i++ {
		assert.Equalf(t, NodeCorner, m.NodeType[i], "node %d", i)
	}
}

func TestAdministrateIsIdempotent(t *testing.T) {
	m := newSquareWithDiagonal()
	m.Administrate(EdgesAndFaces)
	firstFaces := m.NumFaces()
	firstArea := append([]float64(nil), m.FaceArea...)

	m.Administrate(EdgesAndFaces)
	assert.Equal(t, firstFaces, m.NumFaces())
	assert.Equal(t, firstArea, m.FaceArea)
}

func TestDeleteInvalidNodesAndEdgesCompacts(t *testing.T) {
	nodes := []geo.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, geo.MissingPoint, {X: 1, Y: 1}}
	edges := []Edge{
		{First: 0, Second: 1},
		{First: 1, Second: 3},
		{First: MissingIndex, Second: MissingIndex},
	}
	m := NewFromArrays(nodes, edges, geo.Cartesian)
	m.Administrate(EdgesOnly)

	require.Equal(t, 3, m.NumNodes())
	require.Equal(t, 2, m.NumEdges())
	for _, p := range m.Nodes {
		assert.True(t, p.IsValid())
	}
	for _, e := range m.Edges {
		assert.True(t, e.IsValid())
	}
}

func TestDeleteInvalidNodesDropsUnreferencedNode(t *testing.T) {
	nodes := []geo.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 5, Y: 5}}
	edges := []Edge{{First: 0, Second: 1}}
	m := NewFromArrays(nodes, edges, geo.Cartesian)
	m.Administrate(EdgesOnly)

	require.Equal(t, 2, m.NumNodes())
}

func TestEdgesOnlySkipsFaceDiscovery(t *testing.T) {
	m := newSquareWithDiagonal()
	m.Administrate(EdgesOnly)
	assert.Equal(t, 0, m.NumFaces())
	assert.NotEmpty(t, m.NodeEdges[0])
}
