package element

import (
	"fmt"

	"github.com/notargets/HPKernel/element/refops"
	"github.com/notargets/HPKernel/utils"
)

// Dimensionality represents the spatial dimension of an element
type Dimensionality uint8

const (
	D2 Dimensionality = 2 + iota // triangles, quadrilaterals
	D3                           // tetrahedra, pyramids, prisms, hexahedra
)

// ElementProperties contains metadata describing an element type
type ElementProperties struct {
	Name       string             // Full descriptive name (e.g., "Modal Triangle Order 4")
	ShortName  string             // Abbreviated name (e.g., "Tri4")
	Type       utils.GeometryType // Element shape
	Lmax       int                // Modal order; polynomial degree is Lmax-1
	Nmodes     int                // Total number of modal coefficients
	Nbmodes    int                // Vertex, edge and face modes
	NVm        int                // Number of vertex modes (equals number of vertices)
	NEm        int                // Modes per edge
	NIm        int                // Number of strictly interior modes
	NVerts     int                // Number of vertices in each element
	NEdges     int                // Number of edges in each element
	NFaces     int                // Number of faces in each element
	Qa, Qb, Qc int                // Quadrature points per direction, 0 if unused
	Qtot       int                // Total number of quadrature points
	Dimensions Dimensionality     // Spatial dimension (2D or 3D)
}

var longNames = map[utils.GeometryType]string{
	utils.Tri:   "Triangle",
	utils.Quad:  "Quadrilateral",
	utils.Tet:   "Tetrahedron",
	utils.Pyr:   "Pyramid",
	utils.Prism: "Prism",
	utils.Hex:   "Hexahedron",
}

func newProperties(b *refops.Basis) (p ElementProperties) {
	shape := b.Shape
	nv, ne, nf := shape.Counts()
	p = ElementProperties{
		Name:       fmt.Sprintf("Modal %s Order %d", longNames[shape], b.Lmax),
		ShortName:  fmt.Sprintf("%s%d", shape, b.Lmax),
		Type:       shape,
		Lmax:       b.Lmax,
		Nmodes:     b.Nmodes(),
		Nbmodes:    b.Nbmodes(),
		NVm:        b.Nverts,
		NEm:        b.Lmax - 2,
		NIm:        b.Nmodes() - b.Nbmodes(),
		NVerts:     nv,
		NEdges:     ne,
		NFaces:     nf,
		Qa:         b.Qa,
		Qb:         b.Qb,
		Qc:         b.Qc,
		Qtot:       b.Ops.Qtot(),
		Dimensions: Dimensionality(shape.Dims()),
	}
	return
}
