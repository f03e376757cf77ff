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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialmodel/meshkernel/mesh"
)

func squareDimsAndGeometry() (Dimensions, Geometry) {
	dims := Dimensions{NumNode: 4, NumEdge: 4}
	g := Geometry{
		NodeX:     []float64{0, 1, 1, 0},
		NodeY:     []float64{0, 0, 1, 1},
		NodeZ:     []float64{0, 0, 0, 0},
		EdgeNodes: []int{0, 1, 1, 2, 2, 3, 3, 0},
	}
	return dims, g
}

func TestToMeshRoundTripsNodesAndEdges(t *testing.T) {
	dims, g := squareDimsAndGeometry()
	m, err := toMesh(dims, g, false)
	require.NoError(t, err)
	assert.Equal(t, 4, m.NumNodes())
	assert.Equal(t, 4, m.NumEdges())
	assert.Equal(t, 0, m.Edges[0].First)
	assert.Equal(t, 1, m.Edges[0].Second)
}

func TestToMeshTranslatesMissingSentinels(t *testing.T) {
	dims := Dimensions{NumNode: 2, NumEdge: 1}
	g := Geometry{
		NodeX:     []float64{0, doubleMissingValue},
		NodeY:     []float64{0, doubleMissingValue},
		NodeZ:     []float64{0, 0},
		EdgeNodes: []int{indexMissingValue, indexMissingValue},
	}
	m, err := toMesh(dims, g, false)
	require.NoError(t, err)
	assert.False(t, m.Nodes[1].IsValid())
	assert.False(t, m.Edges[0].IsValid())
}

func TestToMeshRejectsShortArrays(t *testing.T) {
	dims := Dimensions{NumNode: 4, NumEdge: 4}
	g := Geometry{NodeX: []float64{0, 1}, NodeY: []float64{0, 1}}
	_, err := toMesh(dims, g, false)
	assert.Error(t, err)
}

func TestFromMeshFlattensNodesAndEdgesOnly(t *testing.T) {
	dims, g := squareDimsAndGeometry()
	m, err := toMesh(dims, g, false)
	require.NoError(t, err)

	outDims, outG := fromMesh(m, false)
	assert.Equal(t, 4, outDims.NumNode)
	assert.Equal(t, 4, outDims.NumEdge)
	assert.Equal(t, 0, outDims.NumFace)
	assert.Nil(t, outG.FaceNodes)
	assert.Equal(t, []float64{0, 1, 1, 0}, outG.NodeX)
}

func TestFromMeshIncludesFacesAfterAdministration(t *testing.T) {
	dims, g := squareDimsAndGeometry()
	m, err := toMesh(dims, g, false)
	require.NoError(t, err)
	m.Administrate(mesh.EdgesAndFaces)

	outDims, outG := fromMesh(m, true)
	assert.Equal(t, 1, outDims.NumFace)
	assert.Equal(t, 4, outDims.MaxNumFaceNodes)
	require.Len(t, outG.FaceX, 1)
	assert.InDelta(t, 0.5, outG.FaceX[0], 1e-9)
	assert.InDelta(t, 0.5, outG.FaceY[0], 1e-9)
}
