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
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spatialmodel/meshkernel/meshkernelapi"
)

// meshDocument is the on-disk JSON mirror of the flat-copy Dimensions and
// Geometry pair exchanged with meshkernelapi, plus the projection flag that
// SetState needs alongside them.
type meshDocument struct {
	IsGeographic bool                     `json:"isGeographic"`
	Dimensions   meshkernelapi.Dimensions `json:"dimensions"`
	Geometry     meshkernelapi.Geometry   `json:"geometry"`
}

func readMeshDocument(path string) (meshDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return meshDocument{}, fmt.Errorf("meshctl: opening %s: %w", path, err)
	}
	defer f.Close()

	var doc meshDocument
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return meshDocument{}, fmt.Errorf("meshctl: decoding %s: %w", path, err)
	}
	return doc, nil
}

func writeMeshDocument(path string, doc meshDocument) error {
	return writeJSON(path, doc)
}

func readJSON(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("meshctl: opening %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("meshctl: decoding %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("meshctl: creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("meshctl: encoding %s: %w", path, err)
	}
	return nil
}

// loadKernel reads a meshDocument, loads it into a fresh API mesh and
// returns its id, ready for further operations. Logging follows the
// kernel's own convention of Debug for routine stage transitions.
func loadKernel(api *meshkernelapi.API, path string) (int, error) {
	doc, err := readMeshDocument(path)
	if err != nil {
		return 0, err
	}
	id := api.NewMesh()
	logrus.WithField("path", path).Debug("meshctl: loaded mesh document")
	if code := api.SetState(id, doc.Dimensions, doc.Geometry, doc.IsGeographic); code != meshkernelapi.Success {
		return 0, fmt.Errorf("meshctl: SetState: %s", api.GetLastError())
	}
	return id, nil
}

var administrateCmd = &cobra.Command{
	Use:   "administrate <input.json> <output.json>",
	Short: "administer a mesh, discovering faces and compacting deleted entries",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		edgesOnly, _ := cmd.Flags().GetBool("edges-only")

		api := meshkernelapi.New()
		id, err := loadKernel(api, args[0])
		if err != nil {
			return err
		}

		var dims meshkernelapi.Dimensions
		var geom meshkernelapi.Geometry
		var code int
		if edgesOnly {
			dims, geom, code = api.GetMesh(id)
		} else {
			dims, geom, code = api.FindFaces(id)
		}
		if code != meshkernelapi.Success {
			return fmt.Errorf("meshctl: administrate: %s", api.GetLastError())
		}

		return writeMeshDocument(args[1], meshDocument{Dimensions: dims, Geometry: geom})
	},
}

func init() {
	administrateCmd.Flags().Bool("edges-only", false, "skip face discovery")
}
