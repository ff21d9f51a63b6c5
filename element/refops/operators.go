package refops

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/notargets/HPKernel/element/library/polylib"
	"github.com/notargets/HPKernel/utils"
	"gonum.org/v1/gonum/mat"
)

// Rule describes the 1-D quadrature along one reference direction.
type Rule struct {
	Active bool
	// Collapse is the power of (1-z)/2 the collapsed coordinate contributes
	// to the reference measure. Zero means a Gauss-Lobatto-Legendre
	// direction, otherwise a Gauss-Radau-Jacobi direction.
	Collapse int
}

// Rules returns the quadrature rule of the a, b and c directions of a shape.
func Rules(shape utils.GeometryType) (r [3]Rule) {
	gll := Rule{Active: true}
	switch shape {
	case utils.Tri:
		r = [3]Rule{gll, {Active: true, Collapse: 1}, {}}
	case utils.Quad:
		r = [3]Rule{gll, gll, {}}
	case utils.Tet:
		r = [3]Rule{gll, {Active: true, Collapse: 1}, {Active: true, Collapse: 2}}
	case utils.Pyr:
		r = [3]Rule{gll, gll, {Active: true, Collapse: 2}}
	case utils.Prism:
		r = [3]Rule{gll, gll, {Active: true, Collapse: 1}}
	case utils.Hex:
		r = [3]Rule{gll, gll, gll}
	default:
		chk.Panic("no quadrature rules for shape %v", shape)
	}
	return
}

// DefaultQuadrature returns the point counts used for a modal order lmax:
// lmax+1 along Gauss-Lobatto directions and lmax along collapsed ones.
func DefaultQuadrature(shape utils.GeometryType, lmax int) (qa, qb, qc int) {
	var (
		rules = Rules(shape)
		q     [3]int
	)
	for d, r := range rules {
		switch {
		case !r.Active:
			q[d] = 0
		case r.Collapse > 0:
			q[d] = lmax
		default:
			q[d] = lmax + 1
		}
	}
	return q[0], q[1], q[2]
}

// Key identifies a set of reference operators.
type Key struct {
	Shape      utils.GeometryType
	Qa, Qb, Qc int
}

// Operators holds the quadrature and collocation differentiation data of one
// shape at one set of point counts. Values are immutable once published by
// the Cache.
type Operators struct {
	Key
	LZero bool
	Rules [3]Rule

	// Zeros and weights per direction. Collapsed-direction weights include
	// the ((1-z)/2)^Collapse factor of the reference measure, so the tensor
	// product of Wa, Wb, Wc integrates over the reference element.
	Za, Zb, Zc []float64
	Wa, Wb, Wc []float64
	W          []float64 // tensor product weights, length Qtot

	// Collocation differentiation matrices and their transposes. Dc and Dct
	// are nil for 2D shapes.
	Da, Dat, Db, Dbt, Dc, Dct *mat.Dense

	// Collapsed coordinates of every point, and 1/(1-b), 1/(1-c) where the
	// direction is collapsed (nil otherwise).
	A, B, C    []float64
	InvB, InvC []float64
}

func validateKey(key Key) {
	var (
		rules = Rules(key.Shape)
		q     = [3]int{key.Qa, key.Qb, key.Qc}
		names = "abc"
	)
	for d, r := range rules {
		if r.Active && q[d] < 2 {
			chk.Panic("%v: q%c=%d must be at least 2", key.Shape, names[d], q[d])
		}
		if !r.Active && q[d] != 0 {
			chk.Panic("%v: q%c=%d must be 0 for an unused direction", key.Shape, names[d], q[d])
		}
	}
}

func newOperators(key Key, lzero bool) (o *Operators) {
	validateKey(key)
	o = &Operators{Key: key, LZero: lzero, Rules: Rules(key.Shape)}
	var (
		q = [3]int{key.Qa, key.Qb, key.Qc}
		z [3][]float64
		w [3][]float64
		D [3]*mat.Dense
		T [3]*mat.Dense
	)
	for d, r := range o.Rules {
		switch {
		case !r.Active:
			z[d], w[d] = []float64{0}, []float64{1}
		case r.Collapse == 0:
			z[d], w[d] = polylib.ZwGLL(q[d])
			D[d], T[d] = polylib.Dgll(q[d])
		default:
			// LZero drops the Jacobi weight from the rule and applies the
			// collapse factor pointwise instead.
			alpha := float64(r.Collapse)
			if lzero {
				alpha = 0
			}
			z[d], w[d] = polylib.ZwGRJm(q[d], alpha)
			D[d], T[d] = polylib.Dgrjm(q[d], alpha)
			p := float64(r.Collapse)
			for i := range w[d] {
				if lzero {
					w[d][i] *= math.Pow(0.5*(1-z[d][i]), p)
				} else {
					w[d][i] *= math.Pow(0.5, p)
				}
			}
		}
	}
	o.Za, o.Zb, o.Zc = z[0], z[1], z[2]
	o.Wa, o.Wb, o.Wc = w[0], w[1], w[2]
	o.Da, o.Db, o.Dc = D[0], D[1], D[2]
	o.Dat, o.Dbt, o.Dct = T[0], T[1], T[2]

	var (
		qa, qb, qc = o.N(0), o.N(1), o.N(2)
		qtot       = qa * qb * qc
	)
	o.W = make([]float64, qtot)
	o.A, o.B, o.C = make([]float64, qtot), make([]float64, qtot), make([]float64, qtot)
	for k := 0; k < qc; k++ {
		for j := 0; j < qb; j++ {
			for i := 0; i < qa; i++ {
				n := i + qa*(j+qb*k)
				o.W[n] = o.Wa[i] * o.Wb[j] * o.Wc[k]
				o.A[n], o.B[n], o.C[n] = o.Za[i], o.Zb[j], o.Zc[k]
			}
		}
	}
	if o.Rules[1].Collapse > 0 {
		o.InvB = make([]float64, qtot)
		for n := range o.InvB {
			o.InvB[n] = 1 / (1 - o.B[n])
		}
	}
	if o.Rules[2].Collapse > 0 {
		o.InvC = make([]float64, qtot)
		for n := range o.InvC {
			o.InvC[n] = 1 / (1 - o.C[n])
		}
	}
	return
}

// N returns the number of points along direction d (0,1,2 for a,b,c),
// counting an unused direction as a single point.
func (o *Operators) N(d int) int {
	q := [3]int{o.Qa, o.Qb, o.Qc}[d]
	if q == 0 {
		return 1
	}
	return q
}

// Qtot is the number of quadrature points of the element.
func (o *Operators) Qtot() int {
	return o.N(0) * o.N(1) * o.N(2)
}

// Dims is the number of active reference directions.
func (o *Operators) Dims() int {
	return o.Shape.Dims()
}

func raw(m *mat.Dense) []float64 {
	return m.RawMatrix().Data
}

// DirDeriv differentiates the nodal values u along each collapsed reference
// direction. Any of ua, ub, uc may be nil.
func (o *Operators) DirDeriv(u, ua, ub, uc []float64) {
	var (
		qa, qb, qc = o.N(0), o.N(1), o.N(2)
		plane      = qa * qb
	)
	if ua != nil {
		// rows are (j,k) lines along a: ua = U * Da^T
		utils.Dgemm(false, false, qb*qc, qa, qa, 1, u, qa, raw(o.Dat), qa, 0, ua, qa)
	}
	if ub != nil {
		for k := 0; k < qc; k++ {
			utils.Dgemm(false, false, qb, qa, qb, 1, raw(o.Db), qb, u[k*plane:], qa, 0, ub[k*plane:], qa)
		}
	}
	if uc != nil && o.Dc != nil {
		utils.Dgemm(false, false, qc, plane, qc, 1, raw(o.Dc), qc, u, plane, 0, uc, plane)
	}
}

// DirDerivT applies the transpose of DirDeriv: u = Da^T za + Db^T zb + Dc^T zc.
// Nil inputs contribute nothing; u is overwritten.
func (o *Operators) DirDerivT(za, zb, zc, u []float64) {
	var (
		qa, qb, qc = o.N(0), o.N(1), o.N(2)
		plane      = qa * qb
		beta       = 0.
	)
	if za != nil {
		utils.Dgemm(false, false, qb*qc, qa, qa, 1, za, qa, raw(o.Da), qa, beta, u, qa)
		beta = 1
	}
	if zb != nil {
		for k := 0; k < qc; k++ {
			utils.Dgemm(false, false, qb, qa, qb, 1, raw(o.Dbt), qb, zb[k*plane:], qa, beta, u[k*plane:], qa)
		}
		beta = 1
	}
	if zc != nil && o.Dct != nil {
		utils.Dgemm(false, false, qc, plane, qc, 1, raw(o.Dct), qc, zc, plane, beta, u, plane)
		beta = 1
	}
	if beta == 0 {
		utils.Dzero(u[:o.Qtot()])
	}
}
