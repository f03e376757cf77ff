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
	gostats "github.com/GaryBoone/GoStats/stats"
	"github.com/ctessum/sparse"
	"github.com/ctessum/unit"
	"gonum.org/v1/gonum/stat"

	"github.com/spatialmodel/meshkernel/geo"
)

// AreaMeasure tags a face area with its physical unit, the way
// mesh/hilbert/mesh2d.go tags cell measures rather than returning a bare
// float64.
type AreaMeasure float64

func (a AreaMeasure) Unit() unit.Dimensions { return unit.Meter2 }
func (a AreaMeasure) Value() float64        { return float64(a) }

// LengthMeasure tags an edge or flow length with its physical unit.
type LengthMeasure float64

func (l LengthMeasure) Unit() unit.Dimensions { return unit.Meter }
func (l LengthMeasure) Value() float64  { return float64(l) }

// Distribution summarizes a slice of per-edge or per-face quality values,
// skipping geo.Missing entries.
type Distribution struct {
	Count    int
	Mean     float64
	Variance float64
	Min, Max float64
}

func summarize(values []float64) Distribution {
	var clean []float64
	for _, v := range values {
		if v == geo.Missing {
			continue
		}
		clean = append(clean, v)
	}
	if len(clean) == 0 {
		return Distribution{}
	}

	var s gostats.Stats
	minV, maxV := clean[0], clean[0]
	for _, v := range clean {
		s.Update(v)
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	return Distribution{
		Count:    len(clean),
		Mean:     stat.Mean(clean, nil),
		Variance: s.PopulationVariance(),
		Min:      minV,
		Max:      maxV,
	}
}

// QualityReport aggregates the per-edge orthogonality and smoothness arrays
// and the per-edge aspect ratio array with summary statistics, so a caller
// does not have to recompute the distribution itself.
type QualityReport struct {
	Orthogonality      []float64
	OrthogonalityStats Distribution

	Smoothness      []float64
	SmoothnessStats Distribution

	AspectRatio      []float64
	AspectRatioStats Distribution

	// NodeFaceIncidence[n] lists the faces incident to node n, backed by a
	// sparse node-by-face matrix since face count is unbounded but node
	// degree is capped.
	NodeFaceIncidence [][]int
}

// Quality administers the mesh's faces and returns its orthogonality,
// smoothness and aspect-ratio distributions.
func (m *Mesh) Quality() QualityReport {
	m.Administrate(EdgesAndFaces)

	orthogonality := m.GetOrthogonality()
	smoothness := m.GetSmoothness()
	aspectRatio := m.AspectRatios()

	incidence := m.nodeFaceIncidence()

	return QualityReport{
		Orthogonality:      orthogonality,
		OrthogonalityStats: summarize(orthogonality),
		Smoothness:         smoothness,
		SmoothnessStats:    summarize(smoothness),
		AspectRatio:        aspectRatio,
		AspectRatioStats:   summarize(aspectRatio),
		NodeFaceIncidence:  incidence,
	}
}

// nodeFaceIncidence builds the node-by-face incidence as a sparse matrix
// and unpacks it into a per-node face list.
func (m *Mesh) nodeFaceIncidence() [][]int {
	numNodes := len(m.Nodes)
	numFaces := len(m.FaceNodes)
	if numNodes == 0 || numFaces == 0 {
		return make([][]int, numNodes)
	}

	incidence := sparse.ZerosSparse(numNodes, numFaces)
	for f, nodes := range m.FaceNodes {
		for _, n := range nodes {
			incidence.Set(1, n, f)
		}
	}

	out := make([][]int, numNodes)
	for n := 0; n < numNodes; n++ {
		for f := 0; f < numFaces; f++ {
			if incidence.Get(n, f) != 0 {
				out[n] = append(out[n], f)
			}
		}
	}
	return out
}
