package element

import (
	"github.com/notargets/HPKernel/element/refops"
	"github.com/notargets/HPKernel/utils"
)

// Direction selects which Cartesian derivatives Grad and GradT compute.
type Direction byte

const (
	DirX   Direction = 'x'
	DirY   Direction = 'y'
	DirZ   Direction = 'z'
	DirAll Direction = 'a' // every non-nil output
)

// Element is one spectral/hp mesh cell holding a scalar field either as
// values at its quadrature points (Physical) or as modal coefficients
// (Transformed). One implementation exists per topology.
type Element interface {
	// Identity and sizing
	ID() int
	Field() byte
	Shape() utils.GeometryType
	Properties() ElementProperties
	State() State
	SetState(s State)
	Lmax() int
	Nmodes() int
	Nbmodes() int
	Qa() int
	Qb() int
	Qc() int
	Qtot() int
	Nverts() int
	Nedges() int
	Nfaces() int
	// Edges and Faces list vertex indices in edge-mode and face-mode order.
	Edges() [][2]int
	Faces() [][]int

	// Storage. Phys has Qtot entries and Modes has Nmodes entries.
	Phys() []float64
	Modes() []float64
	MemShift(phys, modes []float64)
	DataLen() int

	// Geometry shared by every copy of this element.
	Geometry() *Geometry
	Operators() *refops.Operators
	Basis() *refops.Basis

	// Copy creates an element of the same topology, order and geometry
	// holding a new field with its own storage.
	Copy(field byte) Element

	// Grad writes the requested Cartesian derivatives of the physical field
	// into the physical storage of dx, dy, dz. Nil outputs are skipped.
	Grad(dx, dy, dz Element, dir Direction)
	// GradT applies the quadrature-weighted adjoint of Grad, optionally
	// dividing the result by the weights.
	GradT(dx, dy, dz Element, dir Direction, invW bool)
	// GradModal is Grad evaluated from the modal coefficients.
	GradModal(dx, dy, dz Element, dir Direction)

	// Iprod projects the physical field of src onto the modal basis of the
	// receiver.
	Iprod(src Element)
	TransToPhys()
	TransToModal() error

	NormLi() float64
	NormL2() (float64, error)
	NormL2m() (num, den float64)
	NormH1() (float64, error)
	NormH1m() (num, den float64)

	String() string
}
