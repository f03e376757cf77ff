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
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"

	"github.com/spatialmodel/meshkernel/geo"
)

// gridParams is the fuzzed subset of MakeMeshParameters: enough variation
// to exercise different face counts and rotations while staying small
// enough that Administrate stays fast.
type gridParams struct {
	Rows, Cols uint8
	DeltaX     uint8
	DeltaY     uint8
	Angle      uint16
}

func (g gridParams) toMeshParams() MakeMeshParameters {
	return MakeMeshParameters{
		NumRows:      2 + int(g.Rows%6),
		NumCols:      2 + int(g.Cols%6),
		DeltaX:       1 + float64(g.DeltaX%20),
		DeltaY:       1 + float64(g.DeltaY%20),
		AngleDegrees: float64(g.Angle % 360),
	}
}

// TestAdministrateIsIdempotentUnderFuzzing exercises testable property #8 of
// this kernel (re-administering a mesh must not change its face table)
// against a spread of randomly generated regular grids, instead of the
// single hand-built fixture in TestAdministrateIsIdempotent.
func TestAdministrateIsIdempotentUnderFuzzing(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(1, 1)

	for i := 0; i < 25; i++ {
		var gp gridParams
		f.Fuzz(&gp)
		params := gp.toMeshParams()

		m := NewRegularMesh(params, Polygons{}, geo.Cartesian)
		m.Administrate(EdgesAndFaces)
		first := cloneFaceNodes(m.FaceNodes)

		m.Administrate(EdgesAndFaces)
		second := cloneFaceNodes(m.FaceNodes)

		if diff := pretty.Diff(first, second); len(diff) > 0 {
			t.Fatalf("params %+v: FaceNodes changed across re-administration:\n%s", params, pretty.Sprint(diff))
		}
	}
}

func cloneFaceNodes(faceNodes [][]int) [][]int {
	out := make([][]int, len(faceNodes))
	for i, nodes := range faceNodes {
		out[i] = append([]int(nil), nodes...)
	}
	return out
}

// TestNewRegularMeshFuzzedNodeCountMatchesDimensions checks the structural
// invariant NumRows*NumCols == NumNodes for an unclipped grid, across
// randomly fuzzed dimensions, and uses kr/pretty to render the mismatching
// parameter set on failure.
func TestNewRegularMeshFuzzedNodeCountMatchesDimensions(t *testing.T) {
	f := fuzz.New().NilChance(0)

	for i := 0; i < 25; i++ {
		var gp gridParams
		f.Fuzz(&gp)
		params := gp.toMeshParams()

		m := NewRegularMesh(params, Polygons{}, geo.Cartesian)
		want := params.NumRows * params.NumCols
		require.Equalf(t, want, m.NumNodes(), "%# v", pretty.Formatter(params))
	}
}
