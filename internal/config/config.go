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

// Package config layers command-line flags, an optional configuration file
// and hard-coded defaults into a mesh.Options, for cmd/meshctl. The kernel
// package itself never imports viper; it only ever sees the resulting
// mesh.Options struct.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/spatialmodel/meshkernel/mesh"
)

// BindFlags registers the kernel's tunables on fs and binds them into v, so
// a flag left unset falls through to whatever v.SetDefault or a config file
// already established.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) {
	defaults := mesh.DefaultOptions()
	fs.Float64("merging-distance", defaults.MergingDistance,
		"maximum distance between nodes merged by MergeNodesInPolygon")
	fs.Float64("weight-circumcenter", defaults.WeightCircumCenter,
		"shrink factor applied to a face ring before testing circumcenter containment")
	fs.Int("circumcenter-max-iterations", defaults.CircumcenterMaxIterations,
		"iteration cap for the interior-point circumcenter refinement")
	fs.Int("min-num-faces-interior", defaults.MinNumFacesInterior,
		"minimum interior edges a face needs before iterative circumcenter refinement runs")
	fs.String("config", "", "configuration file (TOML, YAML or JSON)")

	_ = v.BindPFlags(fs)
	v.SetEnvPrefix("MESHCTL")
	v.AutomaticEnv()
}

// Load reads the config file named by the bound "config" flag, if any, then
// materializes the layered result into a mesh.Options.
func Load(v *viper.Viper) (mesh.Options, error) {
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return mesh.Options{}, fmt.Errorf("config: reading %s: %w", file, err)
		}
	}

	opts := mesh.Options{
		MergingDistance:           v.GetFloat64("merging-distance"),
		WeightCircumCenter:        v.GetFloat64("weight-circumcenter"),
		CircumcenterMaxIterations: v.GetInt("circumcenter-max-iterations"),
		MinNumFacesInterior:       v.GetInt("min-num-faces-interior"),
	}
	if opts.MergingDistance <= 0 {
		return mesh.Options{}, fmt.Errorf("config: merging-distance must be positive, got %v", opts.MergingDistance)
	}
	return opts, nil
}
