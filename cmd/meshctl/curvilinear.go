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

package main

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/spf13/cobra"

	"github.com/spatialmodel/meshkernel/geo"
	"github.com/spatialmodel/meshkernel/mesh"
	"github.com/spatialmodel/meshkernel/meshkernelapi"
)

var curvilinearCmd = &cobra.Command{
	Use:   "curvilinear <output.json>",
	Short: "generate a regular rotated grid, optionally clipped to a polygon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, _ := cmd.Flags().GetInt("rows")
		cols, _ := cmd.Flags().GetInt("cols")
		dx, _ := cmd.Flags().GetFloat64("dx")
		dy, _ := cmd.Flags().GetFloat64("dy")
		originX, _ := cmd.Flags().GetFloat64("origin-x")
		originY, _ := cmd.Flags().GetFloat64("origin-y")
		angle, _ := cmd.Flags().GetFloat64("angle")
		clipShapefile, _ := cmd.Flags().GetString("clip-shapefile")
		geographic, _ := cmd.Flags().GetBool("geographic")

		var clip mesh.Polygons
		if clipShapefile != "" {
			var err error
			clip, err = loadClipShapefile(clipShapefile)
			if err != nil {
				return err
			}
		}

		proj := geo.Cartesian
		if geographic {
			proj = geo.Spherical
		}

		params := mesh.MakeMeshParameters{
			NumRows:      rows,
			NumCols:      cols,
			DeltaX:       dx,
			DeltaY:       dy,
			OriginX:      originX,
			OriginY:      originY,
			AngleDegrees: angle,
		}

		m := mesh.NewRegularMesh(params, clip, proj)

		api := meshkernelapi.New()
		id := api.LoadMesh(m)
		dims, geomOut, code := api.FindFaces(id)
		if code != meshkernelapi.Success {
			return fmt.Errorf("meshctl: curvilinear: %s", api.GetLastError())
		}

		return writeMeshDocument(args[0], meshDocument{IsGeographic: geographic, Dimensions: dims, Geometry: geomOut})
	},
}

func init() {
	curvilinearCmd.Flags().Int("rows", 10, "number of grid rows")
	curvilinearCmd.Flags().Int("cols", 10, "number of grid columns")
	curvilinearCmd.Flags().Float64("dx", 1, "column spacing")
	curvilinearCmd.Flags().Float64("dy", 1, "row spacing")
	curvilinearCmd.Flags().Float64("origin-x", 0, "grid origin x")
	curvilinearCmd.Flags().Float64("origin-y", 0, "grid origin y")
	curvilinearCmd.Flags().Float64("angle", 0, "grid rotation, in degrees")
	curvilinearCmd.Flags().String("clip-shapefile", "", "optional polygon shapefile clipping the generated grid")
	curvilinearCmd.Flags().Bool("geographic", false, "use the spherical projection instead of Cartesian")
}

// loadClipShapefile reads the first polygon feature of a shapefile via the
// teacher's geometry stack and converts its rings into a mesh.Polygons.
func loadClipShapefile(path string) (mesh.Polygons, error) {
	dec, err := shp.NewDecoder(path)
	if err != nil {
		return mesh.Polygons{}, fmt.Errorf("meshctl: reading shapefile %s: %w", path, err)
	}
	defer dec.Close()

	g, _, _ := dec.DecodeRowFields()
	if err := dec.Error(); err != nil {
		return mesh.Polygons{}, fmt.Errorf("meshctl: decoding shapefile %s: %w", path, err)
	}
	poly, ok := g.(geom.Polygon)
	if !ok {
		return mesh.Polygons{}, fmt.Errorf("meshctl: %s does not contain a polygon feature", path)
	}

	rings := make([]mesh.Polygon, len(poly))
	for i, path := range poly {
		ring := make(mesh.Polygon, len(path))
		for j, p := range path {
			ring[j] = geo.Point{X: p.X, Y: p.Y}
		}
		rings[i] = ring
	}
	return mesh.Polygons{Rings: rings}, nil
}
