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

// Package meshkernelapi is the meshId-keyed external interface: the surface
// an FFI boundary would expose, reimplemented as a plain Go API returning
// integer result codes instead of crossing a process boundary. Every
// operation here is a thin adapter over a *mesh.Mesh method; the kernel
// logic itself lives in package mesh.
package meshkernelapi

import (
	"sync"

	"github.com/spatialmodel/meshkernel/geo"
	"github.com/spatialmodel/meshkernel/mesh"
)

// Result codes, mirroring the FFI boundary's integer return convention.
const (
	Success         = 0
	InvalidGeometry = 1
	Exception       = 2
)

// API owns a registry of live meshes keyed by meshId, plus the last error
// recorded by any operation (mirroring the out-of-band GetLastError/
// GetGeometryError query pair of the reference FFI boundary).
type API struct {
	mu     sync.Mutex
	meshes map[int]*mesh.Mesh
	nextID int

	lastError    string
	geometryErr  bool
	geomIndex    int
	geomLocation string
}

// New returns an empty API instance.
func New() *API {
	return &API{meshes: make(map[int]*mesh.Mesh)}
}

func (a *API) recordError(err error) int {
	a.lastError = err.Error()
	a.geometryErr = false
	if geomErr, ok := err.(*mesh.GeometryError); ok {
		a.geometryErr = true
		a.geomIndex = geomErr.Index
		a.geomLocation = geomErr.Location.String()
		return InvalidGeometry
	}
	return Exception
}

// GetLastError returns the message of the most recently failed operation.
func (a *API) GetLastError() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastError
}

// GetGeometryError returns the (index, locationKind) of the most recent
// GeometryError, if the last failure was one.
func (a *API) GetGeometryError() (index int, locationKind string, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.geomIndex, a.geomLocation, a.geometryErr
}

// NewMesh creates an empty Cartesian mesh and returns its id.
func (a *API) NewMesh() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.nextID
	a.nextID++
	a.meshes[id] = mesh.New(geo.Cartesian)
	return id
}

// DeleteMesh discards the mesh with the given id.
func (a *API) DeleteMesh(id int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.meshes[id]; !ok {
		a.lastError = "meshkernelapi: unknown mesh id"
		return Exception
	}
	delete(a.meshes, id)
	return Success
}

func (a *API) get(id int) (*mesh.Mesh, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	m, ok := a.meshes[id]
	return m, ok
}

// SetState replaces the contents of mesh id with dims/geom, choosing the
// spherical projection when isGeographic is set.
func (a *API) SetState(id int, dims Dimensions, geom_ Geometry, isGeographic bool) int {
	if _, ok := a.get(id); !ok {
		a.lastError = "meshkernelapi: unknown mesh id"
		return Exception
	}
	m, err := toMesh(dims, geom_, isGeographic)
	if err != nil {
		return a.recordError(err)
	}
	a.mu.Lock()
	a.meshes[id] = m
	a.mu.Unlock()
	return Success
}

// GetMesh administers nodes and edges only, then returns a flat-copy
// snapshot.
func (a *API) GetMesh(id int) (Dimensions, Geometry, int) {
	m, ok := a.get(id)
	if !ok {
		a.lastError = "meshkernelapi: unknown mesh id"
		return Dimensions{}, Geometry{}, Exception
	}
	m.Administrate(mesh.EdgesOnly)
	dims, g := fromMesh(m, false)
	return dims, g, Success
}

// FindFaces administers faces as well, then returns a flat-copy snapshot
// including the face arrays.
func (a *API) FindFaces(id int) (Dimensions, Geometry, int) {
	m, ok := a.get(id)
	if !ok {
		a.lastError = "meshkernelapi: unknown mesh id"
		return Dimensions{}, Geometry{}, Exception
	}
	m.Administrate(mesh.EdgesAndFaces)
	dims, g := fromMesh(m, true)
	return dims, g, Success
}

// InsertNode appends a node at (x, y) and returns its index and a result
// code.
func (a *API) InsertNode(id int, x, y float64) (int, int) {
	m, ok := a.get(id)
	if !ok {
		a.lastError = "meshkernelapi: unknown mesh id"
		return mesh.MissingIndex, Exception
	}
	return m.InsertNode(geo.Point{X: x, Y: y}), Success
}

// DeleteNode invalidates node index and its incident edges.
func (a *API) DeleteNode(id, index int) int {
	return a.callVoid(id, func(m *mesh.Mesh) error { return m.DeleteNode(index) })
}

// InsertEdge connects two existing nodes and returns the new edge index.
func (a *API) InsertEdge(id, start, end int) (int, int) {
	m, ok := a.get(id)
	if !ok {
		a.lastError = "meshkernelapi: unknown mesh id"
		return mesh.MissingIndex, Exception
	}
	idx, err := m.ConnectNodes(start, end)
	if err != nil {
		return mesh.MissingIndex, a.recordError(err)
	}
	return idx, Success
}

// DeleteEdge invalidates the given edge index.
func (a *API) DeleteEdge(id, index int) int {
	return a.callVoid(id, func(m *mesh.Mesh) error { return m.DeleteEdge(index) })
}

// MoveNode relocates node index to (x, y), displacing nearby nodes by the
// kernel's cosine-decay falloff.
func (a *API) MoveNode(id int, x, y float64, index int) int {
	return a.callVoid(id, func(m *mesh.Mesh) error { return m.MoveNode(geo.Point{X: x, Y: y}, index) })
}

// MergeTwoNodes merges node a into node b.
func (a *API) MergeTwoNodes(id, nodeA, nodeB int) int {
	return a.callVoid(id, func(m *mesh.Mesh) error { return m.MergeTwoNodes(nodeA, nodeB) })
}

// MergeNodesInPolygon merges every close pair of nodes inside a polygon
// given as a single closed (x, y) ring in flat coordinate arrays. Every
// entry is read as a ring vertex; missing-value or separator entries are not
// interpreted.
func (a *API) MergeNodesInPolygon(id int, polygonX, polygonY []float64) int {
	poly, err := ringFromFlatCoordinates(polygonX, polygonY)
	if err != nil {
		return a.recordError(err)
	}
	return a.callVoid(id, func(m *mesh.Mesh) error { return m.MergeNodesInPolygon(poly) })
}

// DeleteMeshInPolygon deletes the mesh entities selected by option inside
// (or, if invert, outside) the given polygon: nodes for AllNodesInside, the
// edges of the selected faces for the two face options.
func (a *API) DeleteMeshInPolygon(id int, polygonX, polygonY []float64, option mesh.DeleteMeshOption, invert bool) int {
	poly, err := ringFromFlatCoordinates(polygonX, polygonY)
	if err != nil {
		return a.recordError(err)
	}
	return a.callVoid(id, func(m *mesh.Mesh) error { return m.DeleteMesh(poly, option, invert) })
}

func ringFromFlatCoordinates(xs, ys []float64) (mesh.Polygons, error) {
	if len(xs) != len(ys) || len(xs) < 4 {
		return mesh.Polygons{}, mesh.ErrInvalidArgument
	}
	ring := make(mesh.Polygon, len(xs))
	for i := range xs {
		ring[i] = geo.Point{X: xs[i], Y: ys[i]}
	}
	return mesh.Polygons{Rings: []mesh.Polygon{ring}}, nil
}

func (a *API) callVoid(id int, f func(*mesh.Mesh) error) int {
	m, ok := a.get(id)
	if !ok {
		a.lastError = "meshkernelapi: unknown mesh id"
		return Exception
	}
	if err := f(m); err != nil {
		return a.recordError(err)
	}
	return Success
}

// GetOrthogonality returns the per-edge orthogonality array.
func (a *API) GetOrthogonality(id int) ([]float64, int) {
	m, ok := a.get(id)
	if !ok {
		a.lastError = "meshkernelapi: unknown mesh id"
		return nil, Exception
	}
	m.Administrate(mesh.EdgesAndFaces)
	return m.GetOrthogonality(), Success
}

// GetSmoothness returns the per-edge smoothness array.
func (a *API) GetSmoothness(id int) ([]float64, int) {
	m, ok := a.get(id)
	if !ok {
		a.lastError = "meshkernelapi: unknown mesh id"
		return nil, Exception
	}
	m.Administrate(mesh.EdgesAndFaces)
	return m.GetSmoothness(), Success
}

// GetObtuseTriangles returns the centroids of every obtuse triangular face.
func (a *API) GetObtuseTriangles(id int) ([]geo.Point, int) {
	m, ok := a.get(id)
	if !ok {
		a.lastError = "meshkernelapi: unknown mesh id"
		return nil, Exception
	}
	m.Administrate(mesh.EdgesAndFaces)
	return m.GetObtuseTrianglesCenters(), Success
}

// GetSmallFlowEdgeCenters returns the indices of edges crossing small flow
// edges under threshold theta.
func (a *API) GetSmallFlowEdgeCenters(id int, theta float64) ([]int, int) {
	m, ok := a.get(id)
	if !ok {
		a.lastError = "meshkernelapi: unknown mesh id"
		return nil, Exception
	}
	m.Administrate(mesh.EdgesAndFaces)
	return m.GetEdgesCrossingSmallFlowEdges(theta), Success
}

// LoadMesh registers an already-constructed mesh (e.g. from
// mesh.NewRegularMesh or mesh.NewMeshFromCurvilinearGrid) and returns its
// id, for callers that build a mesh outside the flat-copy interface.
func (a *API) LoadMesh(m *mesh.Mesh) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.nextID
	a.nextID++
	a.meshes[id] = m
	return id
}

// GetBoundaryPolygon returns the closed boundary loop(s) of the mesh,
// optionally restricted to the region covered by filterPolygonX/Y.
func (a *API) GetBoundaryPolygon(id int, filterPolygonX, filterPolygonY []float64) ([]geo.Point, int) {
	m, ok := a.get(id)
	if !ok {
		a.lastError = "meshkernelapi: unknown mesh id"
		return nil, Exception
	}
	var filter mesh.Polygons
	if len(filterPolygonX) > 0 {
		poly, err := ringFromFlatCoordinates(filterPolygonX, filterPolygonY)
		if err != nil {
			return nil, a.recordError(err)
		}
		filter = poly
	}
	m.Administrate(mesh.EdgesAndFaces)
	return m.MeshBoundaryToPolygon(filter), Success
}

// MakeDualFace returns the dual-cell polygon around node, shrunk by alpha.
func (a *API) MakeDualFace(id, node int, alpha float64) ([]geo.Point, int) {
	m, ok := a.get(id)
	if !ok {
		a.lastError = "meshkernelapi: unknown mesh id"
		return nil, Exception
	}
	m.Administrate(mesh.EdgesAndFaces)
	pts, err := m.MakeDualFace(node, alpha)
	if err != nil {
		return nil, a.recordError(err)
	}
	return pts, Success
}

// GetHangingEdges returns the indices of every hanging edge.
func (a *API) GetHangingEdges(id int) ([]int, int) {
	m, ok := a.get(id)
	if !ok {
		a.lastError = "meshkernelapi: unknown mesh id"
		return nil, Exception
	}
	m.Administrate(mesh.EdgesAndFaces)
	return m.GetHangingEdges(), Success
}
