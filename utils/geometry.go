package utils

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// GeometryType identifies the shape of an element
type GeometryType uint8

const (
	// 2D element types
	Tri  GeometryType = iota // Triangle
	Quad                     // Quadrilateral

	// 3D element types
	Tet   // Tetrahedron
	Pyr   // Square-based pyramid
	Prism // Triangular prism
	Hex   // Hexahedron
)

// AllGeometries lists every supported shape, 2D first.
var AllGeometries = []GeometryType{Tri, Quad, Tet, Pyr, Prism, Hex}

func (g GeometryType) String() string {
	switch g {
	case Tri:
		return "Tri"
	case Quad:
		return "Quad"
	case Tet:
		return "Tet"
	case Pyr:
		return "Pyr"
	case Prism:
		return "Prism"
	case Hex:
		return "Hex"
	}
	return fmt.Sprintf("GeometryType(%d)", uint8(g))
}

// Dims returns the spatial dimension of the shape.
func (g GeometryType) Dims() int {
	if g == Tri || g == Quad {
		return 2
	}
	return 3
}

// Counts returns the number of vertices, edges and faces. 2D shapes have a
// single face, the element itself.
func (g GeometryType) Counts() (Nverts, Nedges, Nfaces int) {
	switch g {
	case Tri:
		return 3, 3, 1
	case Quad:
		return 4, 4, 1
	case Tet:
		return 4, 6, 4
	case Pyr:
		return 5, 8, 5
	case Prism:
		return 6, 9, 5
	case Hex:
		return 8, 12, 6
	}
	return 0, 0, 0
}

// ParseGeometry maps a name such as "tri" or "Hex" to its GeometryType.
func ParseGeometry(name string) (GeometryType, error) {
	switch name {
	case "tri", "Tri", "triangle":
		return Tri, nil
	case "quad", "Quad", "quadrilateral":
		return Quad, nil
	case "tet", "Tet", "tetrahedron":
		return Tet, nil
	case "pyr", "Pyr", "pyramid":
		return Pyr, nil
	case "prism", "Prism":
		return Prism, nil
	case "hex", "Hex", "hexahedron":
		return Hex, nil
	}
	return 0, chk.Err("unknown element shape %q", name)
}
