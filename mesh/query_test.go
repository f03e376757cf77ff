package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialmodel/meshkernel/geo"
)

func TestFindEdgeSymmetric(t *testing.T) {
	m := newSquareWithDiagonal()
	m.Administrate(EdgesOnly)
	assert.Equal(t, 0, m.FindEdge(0, 1))
	assert.Equal(t, 0, m.FindEdge(1, 0))
	assert.Equal(t, MissingIndex, m.FindEdge(1, 3))
}

func TestFindCommonNode(t *testing.T) {
	m := newSquareWithDiagonal()
	n, err := m.FindCommonNode(0, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestFindCommonNodeNoneShared(t *testing.T) {
	m := newSquareWithDiagonal()
	_, err := m.FindCommonNode(0, 2)
	assert.Error(t, err)
}

func TestGetHangingEdges(t *testing.T) {
	nodes := []geo.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 5, Y: 5}}
	edges := []Edge{
		{First: 0, Second: 1},
		{First: 1, Second: 2},
		{First: 2, Second: 0},
		{First: 0, Second: 3},
	}
	m := NewFromArrays(nodes, edges, geo.Cartesian)
	m.Administrate(EdgesAndFaces)

	hanging := m.GetHangingEdges()
	require.Contains(t, hanging, 3)
}

func TestGetNodeIndexAndFindEdgeCloseToAPoint(t *testing.T) {
	m := newSquareWithDiagonal()
	m.Administrate(EdgesOnly)

	n, err := m.GetNodeIndex(geo.Point{X: 0.9, Y: 0.9})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	e, err := m.FindEdgeCloseToAPoint(geo.Point{X: 0.5, Y: -0.1})
	require.NoError(t, err)
	assert.Equal(t, 0, e)
}

func TestGetNodeIndexOnEmptyMesh(t *testing.T) {
	m := New(geo.Cartesian)
	_, err := m.GetNodeIndex(geo.Point{X: 0, Y: 0})
	assert.Error(t, err)
}

func TestMeshBoundaryToPolygonTracesSingleLoop(t *testing.T) {
	m := newSquareNoDiagonal()
	m.Administrate(EdgesAndFaces)

	pts := m.MeshBoundaryToPolygon(Polygons{})
	require.Len(t, pts, 6)
	assert.False(t, pts[5].IsValid())
	assert.Equal(t, pts[0], pts[4])
}

func TestComputeNodeMaskFromEdgeMask(t *testing.T) {
	m := newSquareWithDiagonal()
	m.Administrate(EdgesOnly)
	m.EdgeMask = make([]int, m.NumEdges())
	m.EdgeMask[0] = 1

	m.ComputeNodeMaskFromEdgeMask()
	assert.Equal(t, 1, m.NodeMask[0])
	assert.Equal(t, 1, m.NodeMask[1])
	assert.Equal(t, 0, m.NodeMask[2])
	assert.Equal(t, 0, m.NodeMask[3])
}

func TestGetOrthogonalityAndSmoothnessOnInteriorEdge(t *testing.T) {
	m := newSquareWithDiagonal()
	m.Administrate(EdgesAndFaces)

	ortho := m.GetOrthogonality()
	smooth := m.GetSmoothness()
	require.NotEqual(t, geo.Missing, ortho[4])
	require.NotEqual(t, geo.Missing, smooth[4])
	assert.Equal(t, geo.Missing, ortho[0])
	assert.Equal(t, geo.Missing, smooth[0])
}

func TestAspectRatiosLength(t *testing.T) {
	m := newSquareWithDiagonal()
	m.Administrate(EdgesAndFaces)
	ratios := m.AspectRatios()
	assert.Len(t, ratios, m.NumEdges())
}

func TestMakeDualFaceAroundCornerNode(t *testing.T) {
	m := newSquareWithDiagonal()
	m.Administrate(EdgesAndFaces)

	ring, err := m.MakeDualFace(0, 1.0)
	require.NoError(t, err)
	assert.Len(t, ring, 2*len(m.NodeEdges[0]))
}

func TestMakeDualFaceInvalidNode(t *testing.T) {
	m := New(geo.Cartesian)
	_, err := m.MakeDualFace(0, 1.0)
	assert.Error(t, err)
}
