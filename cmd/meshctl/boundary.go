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

	"github.com/spf13/cobra"

	"github.com/spatialmodel/meshkernel/geo"
	"github.com/spatialmodel/meshkernel/meshkernelapi"
)

// boundaryDocument is the JSON shape written by "meshctl boundary": a flat
// (x, y) polyline with geo.Missing marking the end of each loop.
type boundaryDocument struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

var boundaryCmd = &cobra.Command{
	Use:   "boundary <input.json> <output.json>",
	Short: "extract the mesh boundary as a closed polyline",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		filterPath, _ := cmd.Flags().GetString("filter")

		api := meshkernelapi.New()
		id, err := loadKernel(api, args[0])
		if err != nil {
			return err
		}

		var filterX, filterY []float64
		if filterPath != "" {
			filterDoc, err := readBoundaryDocument(filterPath)
			if err != nil {
				return err
			}
			filterX, filterY = filterDoc.X, filterDoc.Y
		}

		pts, code := api.GetBoundaryPolygon(id, filterX, filterY)
		if code != meshkernelapi.Success {
			return fmt.Errorf("meshctl: boundary: %s", api.GetLastError())
		}

		return writeJSON(args[1], flattenPoints(pts))
	},
}

func init() {
	boundaryCmd.Flags().String("filter", "", "optional polygon JSON file restricting the boundary walk")
}

func flattenPoints(pts []geo.Point) boundaryDocument {
	doc := boundaryDocument{X: make([]float64, len(pts)), Y: make([]float64, len(pts))}
	for i, p := range pts {
		if !p.IsValid() {
			doc.X[i], doc.Y[i] = geo.Missing, geo.Missing
			continue
		}
		doc.X[i], doc.Y[i] = p.X, p.Y
	}
	return doc
}

func readBoundaryDocument(path string) (boundaryDocument, error) {
	var doc boundaryDocument
	if err := readJSON(path, &doc); err != nil {
		return boundaryDocument{}, err
	}
	return doc, nil
}
