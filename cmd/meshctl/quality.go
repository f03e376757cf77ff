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

	"github.com/spatialmodel/meshkernel/meshkernelapi"
)

var qualityCmd = &cobra.Command{
	Use:   "quality <input.json> <output.json>",
	Short: "compute orthogonality, smoothness and hanging-edge diagnostics",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		api := meshkernelapi.New()
		id, err := loadKernel(api, args[0])
		if err != nil {
			return err
		}

		orthogonality, code := api.GetOrthogonality(id)
		if code != meshkernelapi.Success {
			return fmt.Errorf("meshctl: quality: %s", api.GetLastError())
		}
		smoothness, code := api.GetSmoothness(id)
		if code != meshkernelapi.Success {
			return fmt.Errorf("meshctl: quality: %s", api.GetLastError())
		}
		hanging, code := api.GetHangingEdges(id)
		if code != meshkernelapi.Success {
			return fmt.Errorf("meshctl: quality: %s", api.GetLastError())
		}
		obtuse, code := api.GetObtuseTriangles(id)
		if code != meshkernelapi.Success {
			return fmt.Errorf("meshctl: quality: %s", api.GetLastError())
		}

		report := struct {
			Orthogonality  []float64 `json:"orthogonality"`
			Smoothness     []float64 `json:"smoothness"`
			HangingEdges   []int     `json:"hangingEdges"`
			ObtuseTriangle boundaryDocument `json:"obtuseTriangleCenters"`
		}{
			Orthogonality: orthogonality,
			Smoothness:    smoothness,
			HangingEdges:  hanging,
			ObtuseTriangle: flattenPoints(obtuse),
		}

		return writeJSON(args[1], report)
	},
}
