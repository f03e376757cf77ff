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

	"github.com/spatialmodel/meshkernel/geo"
)

// CurvilinearGrid is a 2D array of grid nodes, row-major, with
// geo.MissingPoint marking a skipped node.
type CurvilinearGrid struct {
	NumRows, NumCols int
	Nodes            [][]geo.Point
}

// NewMeshFromCurvilinearGrid lifts a curvilinear grid into a mesh: every
// valid node becomes a mesh node, and an edge is added between every pair
// of row- or column-adjacent valid nodes. Missing nodes are skipped
// entirely, so a ragged grid produces a ragged mesh.
func NewMeshFromCurvilinearGrid(grid CurvilinearGrid, proj geo.Projection) *Mesh {
	m := New(proj)

	index := make([][]int, grid.NumRows)
	for r := 0; r < grid.NumRows; r++ {
		index[r] = make([]int, grid.NumCols)
		for c := 0; c < grid.NumCols; c++ {
			index[r][c] = MissingIndex
			if r < len(grid.Nodes) && c < len(grid.Nodes[r]) && grid.Nodes[r][c].IsValid() {
				index[r][c] = m.InsertNode(grid.Nodes[r][c])
			}
		}
	}

	for r := 0; r < grid.NumRows; r++ {
		for c := 0; c < grid.NumCols; c++ {
			if index[r][c] == MissingIndex {
				continue
			}
			if c+1 < grid.NumCols && index[r][c+1] != MissingIndex {
				m.Edges = append(m.Edges, Edge{First: index[r][c], Second: index[r][c+1]})
			}
			if r+1 < grid.NumRows && index[r+1][c] != MissingIndex {
				m.Edges = append(m.Edges, Edge{First: index[r][c], Second: index[r+1][c]})
			}
		}
	}
	m.edgesRTreeDirty = true
	return m
}

// MakeMeshParameters describes a regular, optionally rotated grid to
// generate before lifting it the same way as an existing curvilinear grid.
type MakeMeshParameters struct {
	NumRows, NumCols int
	DeltaX, DeltaY   float64
	OriginX, OriginY float64
	// AngleDegrees rotates the column axis counter-clockwise from +x.
	AngleDegrees float64
}

// NewRegularMesh constructs a rotated regular grid from params and, if clip
// is non-empty, masks whole cells with any corner outside clip before
// restoring cells one node deep into the masked region, then lifts the
// result the same way as NewMeshFromCurvilinearGrid.
//
// In spherical projection, cell sizing near the antimeridian depends on
// which reference point is encountered first; this is a documented
// limitation, not a defect.
func NewRegularMesh(params MakeMeshParameters, clip Polygons, proj geo.Projection) *Mesh {
	rows, cols := params.NumRows, params.NumCols
	angle := params.AngleDegrees * math.Pi / 180
	ex := geo.Point{X: math.Cos(angle), Y: math.Sin(angle)}
	ey := geo.Point{X: -math.Sin(angle), Y: math.Cos(angle)}

	points := make([][]geo.Point, rows)
	for r := 0; r < rows; r++ {
		points[r] = make([]geo.Point, cols)
		for c := 0; c < cols; c++ {
			x := params.OriginX + float64(c)*params.DeltaX*ex.X + float64(r)*params.DeltaY*ey.X
			y := params.OriginY + float64(c)*params.DeltaX*ex.Y + float64(r)*params.DeltaY*ey.Y
			points[r][c] = geo.Point{X: x, Y: y}
		}
	}

	if clip.Empty() || rows < 2 || cols < 2 {
		return NewMeshFromCurvilinearGrid(CurvilinearGrid{NumRows: rows, NumCols: cols, Nodes: points}, proj)
	}

	included := make([][]bool, rows-1)
	for r := 0; r < rows-1; r++ {
		included[r] = make([]bool, cols-1)
		for c := 0; c < cols-1; c++ {
			corners := [4]geo.Point{points[r][c], points[r][c+1], points[r+1][c], points[r+1][c+1]}
			allInside := true
			for _, corner := range corners {
				if !clip.Contains(corner, proj) {
					allInside = false
					break
				}
			}
			included[r][c] = allInside
		}
	}

	dilated := make([][]bool, rows-1)
	for r := range dilated {
		dilated[r] = append([]bool(nil), included[r]...)
	}
	type cellPos struct{ r, c int }
	for r := 0; r < rows-1; r++ {
		for c := 0; c < cols-1; c++ {
			if included[r][c] {
				continue
			}
			for _, nb := range [4]cellPos{{r - 1, c}, {r + 1, c}, {r, c - 1}, {r, c + 1}} {
				if nb.r >= 0 && nb.r < rows-1 && nb.c >= 0 && nb.c < cols-1 && included[nb.r][nb.c] {
					dilated[r][c] = true
					break
				}
			}
		}
	}

	valid := make([][]bool, rows)
	for r := range valid {
		valid[r] = make([]bool, cols)
	}
	for r := 0; r < rows-1; r++ {
		for c := 0; c < cols-1; c++ {
			if !dilated[r][c] {
				continue
			}
			valid[r][c] = true
			valid[r][c+1] = true
			valid[r+1][c] = true
			valid[r+1][c+1] = true
		}
	}

	grid := CurvilinearGrid{NumRows: rows, NumCols: cols, Nodes: make([][]geo.Point, rows)}
	for r := 0; r < rows; r++ {
		grid.Nodes[r] = make([]geo.Point, cols)
		for c := 0; c < cols; c++ {
			if valid[r][c] {
				grid.Nodes[r][c] = points[r][c]
			} else {
				grid.Nodes[r][c] = geo.MissingPoint
			}
		}
	}
	return NewMeshFromCurvilinearGrid(grid, proj)
}

// Triangulator is the opaque constrained Delaunay triangulation service
// NewMeshFromPolygon delegates to; the kernel treats it as an external
// collaborator and only consumes the arrays it returns.
type Triangulator interface {
	Triangulate(boundary Polygons, proj geo.Projection) (nodes []geo.Point, edges []Edge, err error)
}

// NewMeshFromPolygon builds a mesh by triangulating boundary with the given
// Triangulator.
func NewMeshFromPolygon(boundary Polygons, proj geo.Projection, triangulator Triangulator) (*Mesh, error) {
	if boundary.Empty() {
		return nil, invalidArgumentf("NewMeshFromPolygon: polygon must be non-empty")
	}
	nodes, edges, err := triangulator.Triangulate(boundary, proj)
	if err != nil {
		return nil, err
	}
	return NewFromArrays(nodes, edges, proj), nil
}
