package refops

import (
	"github.com/notargets/HPKernel/utils"
	"gonum.org/v1/gonum/mat"
)

// BasisKey identifies a modal basis sampled at one set of quadrature points.
type BasisKey struct {
	Key
	Lmax int
}

// Basis is the modified C0 modal basis of a shape sampled on the quadrature
// points of its Operators. Every mode is a product of one a, one b and one c
// factor; the tables hold each distinct factor sampled along its direction.
type Basis struct {
	BasisKey
	Ops *Operators

	Factors [3][]Factor
	Modes   []Mode

	// TabA is [len(Factors[0]) x qa] and likewise for b and c.
	TabA, TabB, TabC *mat.Dense
	// Derivative tables, filled on first use through Cache.DerBasis.
	DTabA, DTabB, DTabC *mat.Dense

	// V is the dense [Nmodes x Qtot] sampling of every mode.
	V *mat.Dense

	Nverts    int
	EdgeStart []int // first mode of each edge
	FaceStart []int // first mode of each face, empty for 2D shapes
	Interior  int   // first interior mode

	pairs    []pair
	modePair []int
}

type pair struct{ a, b int }

func newBasis(ops *Operators, lmax int) (b *Basis) {
	s := buildModes(ops.Shape, lmax)
	b = &Basis{
		BasisKey:  BasisKey{Key: ops.Key, Lmax: lmax},
		Ops:       ops,
		Factors:   s.factors,
		Modes:     s.modes,
		Nverts:    s.nv,
		EdgeStart: s.edgeStart,
		FaceStart: s.faceStart,
		Interior:  s.interiorAt,
	}
	z := [3][]float64{ops.Za, ops.Zb, ops.Zc}
	var tabs [3]*mat.Dense
	for d := range tabs {
		q := ops.N(d)
		tabs[d] = mat.NewDense(len(s.factors[d]), q, nil)
		for r, f := range s.factors[d] {
			tabs[d].SetRow(r, f.Eval(z[d]))
		}
	}
	b.TabA, b.TabB, b.TabC = tabs[0], tabs[1], tabs[2]

	pairIndex := make(map[pair]int)
	b.modePair = make([]int, len(b.Modes))
	for m, md := range b.Modes {
		p := pair{md.A, md.B}
		i, ok := pairIndex[p]
		if !ok {
			i = len(b.pairs)
			pairIndex[p] = i
			b.pairs = append(b.pairs, p)
		}
		b.modePair[m] = i
	}

	var (
		qa, qb, qc = ops.N(0), ops.N(1), ops.N(2)
		ta, tb, tc = raw(b.TabA), raw(b.TabB), raw(b.TabC)
	)
	b.V = mat.NewDense(len(b.Modes), ops.Qtot(), nil)
	for m, md := range b.Modes {
		row := b.V.RawRowView(m)
		for k := 0; k < qc; k++ {
			for j := 0; j < qb; j++ {
				fbc := tb[md.B*qb+j] * tc[md.C*qc+k]
				for i := 0; i < qa; i++ {
					row[i+qa*(j+qb*k)] = ta[md.A*qa+i] * fbc
				}
			}
		}
	}
	return
}

// buildDerivatives differentiates every factor table along its direction.
func (b *Basis) buildDerivatives() {
	var (
		ops  = b.Ops
		tabs = [3]*mat.Dense{b.TabA, b.TabB, b.TabC}
		dmat = [3]*mat.Dense{ops.Da, ops.Db, ops.Dc}
		out  [3]*mat.Dense
	)
	for d := range tabs {
		r, q := tabs[d].Dims()
		out[d] = mat.NewDense(r, q, nil)
		if dmat[d] != nil {
			out[d].Mul(tabs[d], dmat[d].T())
		}
	}
	b.DTabA, b.DTabB, b.DTabC = out[0], out[1], out[2]
}

// Nmodes is the number of modal coefficients.
func (b *Basis) Nmodes() int { return len(b.Modes) }

// Nbmodes is the number of boundary (vertex, edge and face) modes.
func (b *Basis) Nbmodes() int { return b.Interior }

// EdgeModes returns the mode index range [start,end) of edge e.
func (b *Basis) EdgeModes(e int) (start, end int) {
	return blockRange(b.EdgeStart, e, b.afterEdges())
}

// FaceModes returns the mode index range [start,end) of face f.
func (b *Basis) FaceModes(f int) (start, end int) {
	return blockRange(b.FaceStart, f, b.Interior)
}

func (b *Basis) afterEdges() int {
	if len(b.FaceStart) > 0 {
		return b.FaceStart[0]
	}
	return b.Interior
}

func blockRange(starts []int, i, last int) (start, end int) {
	start = starts[i]
	if i+1 < len(starts) {
		return start, starts[i+1]
	}
	return start, last
}

// Iprod computes out[m] = sum_n phi_m(n) f[n] by sum factorization; f holds
// values already multiplied by the quadrature weights.
func (b *Basis) Iprod(f, out []float64) {
	b.project(raw(b.TabA), raw(b.TabB), raw(b.TabC), f, out)
}

// IprodDeriv is Iprod against the derivative of every mode along direction d
// (0,1,2 for a,b,c). Cache.DerBasis must have been called for b.
func (b *Basis) IprodDeriv(d int, f, out []float64) {
	tabs := [3]*mat.Dense{b.TabA, b.TabB, b.TabC}
	tabs[d] = [3]*mat.Dense{b.DTabA, b.DTabB, b.DTabC}[d]
	b.project(raw(tabs[0]), raw(tabs[1]), raw(tabs[2]), f, out)
}

// BwdTrans evaluates the expansion with coefficients coef at every
// quadrature point.
func (b *Basis) BwdTrans(coef, u []float64) {
	b.evaluate(raw(b.TabA), raw(b.TabB), raw(b.TabC), coef, u)
}

// BwdTransDeriv evaluates the derivative of the expansion along the
// collapsed direction d. Cache.DerBasis must have been called for b.
func (b *Basis) BwdTransDeriv(d int, coef, u []float64) {
	tabs := [3]*mat.Dense{b.TabA, b.TabB, b.TabC}
	tabs[d] = [3]*mat.Dense{b.DTabA, b.DTabB, b.DTabC}[d]
	b.evaluate(raw(tabs[0]), raw(tabs[1]), raw(tabs[2]), coef, u)
}

func (b *Basis) project(ta, tb, tc, f, out []float64) {
	var (
		qa, qb, qc = b.Ops.N(0), b.Ops.N(1), b.Ops.N(2)
		na         = len(b.Factors[0])
		G          = make([]float64, qb*qc*na)
		H          = make([]float64, len(b.pairs)*qc)
	)
	// contract a: G[(j,k), ia] = sum_i f[i,j,k] A[ia,i]
	utils.Dgemm(false, true, qb*qc, na, qa, 1, f, qa, ta, qa, 0, G, na)
	// contract b for every (a,b) factor pair in use
	for p, pr := range b.pairs {
		for k := 0; k < qc; k++ {
			var s float64
			for j := 0; j < qb; j++ {
				s += tb[pr.b*qb+j] * G[(j+qb*k)*na+pr.a]
			}
			H[p*qc+k] = s
		}
	}
	for m, md := range b.Modes {
		out[m] = utils.Ddot(tc[md.C*qc:(md.C+1)*qc], H[b.modePair[m]*qc:(b.modePair[m]+1)*qc])
	}
}

func (b *Basis) evaluate(ta, tb, tc, coef, u []float64) {
	var (
		qa, qb, qc = b.Ops.N(0), b.Ops.N(1), b.Ops.N(2)
		na         = len(b.Factors[0])
		G          = make([]float64, qb*qc*na)
		H          = make([]float64, len(b.pairs)*qc)
	)
	for m, md := range b.Modes {
		utils.Daxpy(coef[m], tc[md.C*qc:(md.C+1)*qc], H[b.modePair[m]*qc:(b.modePair[m]+1)*qc])
	}
	for p, pr := range b.pairs {
		for k := 0; k < qc; k++ {
			h := H[p*qc+k]
			if h == 0 {
				continue
			}
			for j := 0; j < qb; j++ {
				G[(j+qb*k)*na+pr.a] += h * tb[pr.b*qb+j]
			}
		}
	}
	utils.Dgemm(false, false, qb*qc, qa, na, 1, G, na, ta, qa, 0, u, qa)
}

// Mass returns the modal mass matrix phi^T diag(w) phi for the weights w.
func (b *Basis) Mass(w []float64) (M *mat.SymDense) {
	var (
		nm, qt = b.V.Dims()
		VW     = mat.NewDense(nm, qt, nil)
	)
	VW.Apply(func(i, j int, v float64) float64 { return v * w[j] }, b.V)
	var full mat.Dense
	full.Mul(VW, b.V.T())
	M = mat.NewSymDense(nm, nil)
	for i := 0; i < nm; i++ {
		for j := i; j < nm; j++ {
			M.SetSym(i, j, 0.5*(full.At(i, j)+full.At(j, i)))
		}
	}
	return
}
