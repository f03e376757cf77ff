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

import "fmt"

// ErrInvalidArgument is wrapped by errors raised when a caller violates a
// precondition (out-of-range index, empty required input, ...).
var ErrInvalidArgument = fmt.Errorf("meshkernel: invalid argument")

// ErrAlgorithmError is wrapped by errors raised when a geometric search has
// no admissible result (nearest-neighbor on an empty index, and similar).
var ErrAlgorithmError = fmt.Errorf("meshkernel: algorithm error")

// Location names the kind of mesh entity a GeometryError refers to.
type Location int

const (
	LocationNode Location = iota
	LocationEdge
	LocationFace
)

func (l Location) String() string {
	switch l {
	case LocationNode:
		return "node"
	case LocationEdge:
		return "edge"
	case LocationFace:
		return "face"
	default:
		return "unknown"
	}
}

// GeometryError reports a structural anomaly discovered while processing a
// specific node, edge or face.
type GeometryError struct {
	Location Location
	Index    int
	Reason   string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("meshkernel: geometry error at %s %d: %s", e.Location, e.Index, e.Reason)
}

func invalidArgumentf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidArgument}, args...)...)
}

func algorithmErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrAlgorithmError}, args...)...)
}
