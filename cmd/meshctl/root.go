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
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spatialmodel/meshkernel/internal/config"
	"github.com/spatialmodel/meshkernel/mesh"
)

// rootConf is the layered flag/env/config-file/default source of the kernel
// tunables, per internal/config. kernelOptions materializes it into a
// mesh.Options; the subcommands do not call it, and the meshes they build
// through meshkernelapi keep mesh.DefaultOptions.
var rootConf = viper.New()

var rootCmd = &cobra.Command{
	Use:   "meshctl",
	Short: "meshctl operates on unstructured meshes from the command line",
	Long: `meshctl is an operational harness around the meshkernel library:
it administers meshes, reports quality metrics, extracts boundary
polygons and generates curvilinear grids, reading and writing the
flat-copy JSON representation used at the library's external
interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	config.BindFlags(rootCmd.PersistentFlags(), rootConf)

	rootCmd.AddCommand(administrateCmd, boundaryCmd, qualityCmd, curvilinearCmd)
}

// kernelOptions materializes the layered mesh.Options for the current
// invocation.
func kernelOptions() (mesh.Options, error) {
	return config.Load(rootConf)
}

// Execute runs the root command, printing any runtime error and exiting
// non-zero rather than letting cobra print its own usage banner on
// operational failures.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
