package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialmodel/meshkernel/geo"
)

func TestInsertNodeAndDeleteNode(t *testing.T) {
	m := New(geo.Cartesian)
	idx := m.InsertNode(geo.Point{X: 1, Y: 2})
	require.Equal(t, 0, idx)
	require.NoError(t, m.DeleteNode(idx))
	assert.False(t, m.Nodes[idx].IsValid())
}

func TestDeleteNodeInvalidatesIncidentEdges(t *testing.T) {
	m := newSquareWithDiagonal()
	require.NoError(t, m.DeleteNode(0))
	for _, ei := range []int{0, 3, 4} {
		assert.False(t, m.Edges[ei].IsValid(), "edge %d", ei)
	}
	assert.True(t, m.Edges[1].IsValid())
	assert.True(t, m.Edges[2].IsValid())
}

func TestDeleteNodeOutOfRange(t *testing.T) {
	m := New(geo.Cartesian)
	assert.Error(t, m.DeleteNode(5))
}

func TestConnectNodesRejectsExistingEdge(t *testing.T) {
	m := newSquareWithDiagonal()
	idx, err := m.ConnectNodes(0, 1)
	require.NoError(t, err)
	assert.Equal(t, MissingIndex, idx)
}

func TestConnectNodesAddsNewEdge(t *testing.T) {
	m := newSquareWithDiagonal()
	idx, err := m.ConnectNodes(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, idx)
	assert.Equal(t, Edge{First: 1, Second: 3}, m.Edges[idx])
}

func TestConnectNodesRejectsMissingNode(t *testing.T) {
	m := newSquareWithDiagonal()
	require.NoError(t, m.DeleteNode(0))
	_, err := m.ConnectNodes(0, 1)
	assert.Error(t, err)
}

func TestMergeTwoNodesReassignsOtherEdges(t *testing.T) {
	nodes := []geo.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 2}}
	edges := []Edge{{First: 0, Second: 2}}
	m := NewFromArrays(nodes, edges, geo.Cartesian)

	require.NoError(t, m.MergeTwoNodes(0, 1))
	assert.False(t, m.Nodes[0].IsValid())
	assert.Equal(t, Edge{First: 1, Second: 2}, m.Edges[0])
}

func TestMergeTwoNodesDropsDuplicateEdge(t *testing.T) {
	nodes := []geo.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 2}}
	edges := []Edge{{First: 0, Second: 2}, {First: 1, Second: 2}}
	m := NewFromArrays(nodes, edges, geo.Cartesian)

	require.NoError(t, m.MergeTwoNodes(0, 1))
	assert.Equal(t, Edge{First: 1, Second: 2}, m.Edges[0])
	assert.False(t, m.Edges[1].IsValid())
}

func TestMergeTwoNodesInvalidatesDirectEdge(t *testing.T) {
	nodes := []geo.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}
	edges := []Edge{{First: 0, Second: 1}}
	m := NewFromArrays(nodes, edges, geo.Cartesian)

	require.NoError(t, m.MergeTwoNodes(0, 1))
	assert.False(t, m.Edges[0].IsValid())
	assert.False(t, m.Nodes[0].IsValid())
}

func TestMergeTwoNodesNoopWhenAlreadyMissing(t *testing.T) {
	m := newSquareWithDiagonal()
	require.NoError(t, m.DeleteNode(0))
	require.NoError(t, m.MergeTwoNodes(0, 1))
}

func TestMoveNodeAppliesCosineDecay(t *testing.T) {
	nodes := []geo.Point{{X: 0, Y: 0}, {X: 0.5, Y: 0}, {X: 4, Y: 0}}
	m := NewFromArrays(nodes, nil, geo.Cartesian)

	require.NoError(t, m.MoveNode(geo.Point{X: 1, Y: 0}, 0))
	assert.InDelta(t, 1.0, m.Nodes[0].X, 1e-9)
	assert.InDelta(t, 1.0, m.Nodes[1].X, 1e-9)
	assert.InDelta(t, 4.0, m.Nodes[2].X, 1e-9)
}

func TestMoveNodeInvalidIndex(t *testing.T) {
	m := New(geo.Cartesian)
	assert.Error(t, m.MoveNode(geo.Point{X: 0, Y: 0}, 0))
}

func squareBoundaryPolygon() Polygons {
	return Polygons{Rings: []Polygon{{
		{X: -1, Y: -1}, {X: 2, Y: -1}, {X: 2, Y: 2}, {X: -1, Y: 2}, {X: -1, Y: -1},
	}}}
}

func TestDeleteMeshAllNodesInside(t *testing.T) {
	m := newSquareNoDiagonal()
	require.NoError(t, m.DeleteMesh(squareBoundaryPolygon(), AllNodesInside, false))
	for i, p := range m.Nodes {
		assert.Falsef(t, p.IsValid(), "node %d", i)
	}
}

func TestDeleteMeshAllNodesInsideInverted(t *testing.T) {
	m := newSquareNoDiagonal()
	require.NoError(t, m.DeleteMesh(squareBoundaryPolygon(), AllNodesInside, true))
	for i, p := range m.Nodes {
		assert.Truef(t, p.IsValid(), "node %d", i)
	}
}

func TestDeleteMeshRejectsEmptyPolygon(t *testing.T) {
	m := newSquareNoDiagonal()
	assert.Error(t, m.DeleteMesh(Polygons{}, AllNodesInside, false))
}

func TestUnionCombinesNodesAndEdges(t *testing.T) {
	a := newSquareNoDiagonal()
	b := newSquareNoDiagonal()
	for i := range b.Nodes {
		b.Nodes[i].X += 10
	}
	require.NoError(t, a.Union(b))
	assert.Equal(t, 8, a.NumNodes())
	assert.Equal(t, 8, a.NumEdges())
	assert.Equal(t, Edge{First: 4, Second: 5}, a.Edges[4])
}

func TestUnionRejectsEmptyRHS(t *testing.T) {
	a := newSquareNoDiagonal()
	assert.Error(t, a.Union(New(geo.Cartesian)))
}

func TestUnionRejectsProjectionMismatch(t *testing.T) {
	a := newSquareNoDiagonal()
	b := newSquareNoDiagonal()
	b.Projection = geo.Spherical
	assert.Error(t, a.Union(b))
}

func TestDeleteDegeneratedTrianglesCollapsesThinTriangle(t *testing.T) {
	nodes := []geo.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 1e-10}}
	edges := []Edge{{First: 0, Second: 1}, {First: 1, Second: 2}, {First: 2, Second: 0}}
	m := NewFromArrays(nodes, edges, geo.Cartesian)

	m.DeleteDegeneratedTriangles()
	assert.Equal(t, 1, m.NumNodes())
}
