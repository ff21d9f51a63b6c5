package element

import (
	"math"
	"sync"

	"github.com/notargets/HPKernel/element/refops"
	"github.com/notargets/HPKernel/utils"
	"gonum.org/v1/gonum/mat"
)

// Factor is a geometric factor: one value for an affine element or one value
// per quadrature point otherwise.
type Factor interface {
	At(n int) float64
	isFactor()
}

// Scalar is the constant factor of an affine element.
type Scalar float64

// PerPoint holds a factor at every quadrature point.
type PerPoint []float64

func (s Scalar) At(int) float64     { return float64(s) }
func (p PerPoint) At(n int) float64 { return p[n] }
func (Scalar) isFactor()            {}
func (PerPoint) isFactor()          {}

// mulFactor sets y = f*x.
func mulFactor(f Factor, x, y []float64) {
	switch f := f.(type) {
	case Scalar:
		utils.Dsmul(float64(f), x, y)
	case PerPoint:
		utils.Dvmul(f, x, y)
	}
}

// mulAddFactor sets y += f*x.
func mulAddFactor(f Factor, x, y []float64) {
	switch f := f.(type) {
	case Scalar:
		if f != 0 {
			utils.Daxpy(float64(f), x, y)
		}
	case PerPoint:
		utils.Dvvtvp(f, x, y, y)
	}
}

// Curve displaces the straight-sided position of a quadrature point.
type Curve func(x, y, z float64) (dx, dy, dz float64)

// Geometry maps the reference element to one physical cell. It is shared by
// every copy of an element and never modified after construction, except
// for the lazily factorized mass matrix.
type Geometry struct {
	Verts  [][3]float64 // physical vertex coordinates in vertex-mode order
	Curved bool

	// X, Y, Z are the physical coordinates of every quadrature point.
	X, Y, Z []float64

	// Components of the inverse Jacobian (∂ξ/∂x terms). For 2D elements the
	// z and t components are Scalar(0).
	Rx, Ry, Rz Factor
	Sx, Sy, Sz Factor
	Tx, Ty, Tz Factor

	// Jacobian determinant |∂(x,y,z)/∂(r,s,t)|
	Jac Factor

	// W is the quadrature weight of every point including the Jacobian.
	W []float64

	massOnce sync.Once
	mass     mat.Cholesky
	massErr  error
}

// Affine reports whether the geometric factors are constant.
func (g *Geometry) Affine() bool {
	_, ok := g.Jac.(Scalar)
	return ok
}

// Measure is the area or volume of the element.
func (g *Geometry) Measure() float64 {
	return utils.Dsum(g.W)
}

func newGeometry(topo topology, basis *refops.Basis, verts [][]float64, curve Curve) (g *Geometry, err error) {
	var (
		ops   = basis.Ops
		shape = basis.Shape
		dims  = shape.Dims()
		qtot  = ops.Qtot()
	)
	if len(verts) != basis.Nverts {
		return nil, wrapf(ErrMismatch, "%v needs %d vertices, got %d", shape, basis.Nverts, len(verts))
	}
	g = &Geometry{Verts: make([][3]float64, len(verts)), Curved: curve != nil}
	for v, p := range verts {
		if len(p) < dims || len(p) > 3 {
			return nil, wrapf(ErrMismatch, "%v vertex %d has %d coordinates", shape, v, len(p))
		}
		copy(g.Verts[v][:], p)
	}

	// straight-sided positions from the vertex modes
	var (
		coef = make([]float64, basis.Nmodes())
		x    [3][]float64
	)
	for d := 0; d < 3; d++ {
		x[d] = make([]float64, qtot)
		if d >= dims {
			continue
		}
		for v := range g.Verts {
			coef[v] = g.Verts[v][d]
		}
		basis.BwdTrans(coef, x[d])
	}
	if curve != nil {
		for n := 0; n < qtot; n++ {
			dx, dy, dz := curve(x[0][n], x[1][n], x[2][n])
			x[0][n] += dx
			x[1][n] += dy
			if dims == 3 {
				x[2][n] += dz
			}
		}
	}
	g.X, g.Y, g.Z = x[0], x[1], x[2]

	// reference derivatives of the mapping: J[i][j] = ∂x_i/∂ξ_j
	var J [3][3][]float64
	for i := 0; i < dims; i++ {
		J[i] = refDeriv(topo, ops, x[i])
	}

	var (
		jac = make([]float64, qtot)
		inv [3][3][]float64
	)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			inv[i][j] = make([]float64, qtot)
		}
	}
	scale := extent(g.Verts, dims)
	for n := 0; n < qtot; n++ {
		var m [3][3]float64
		for i := 0; i < dims; i++ {
			for j := 0; j < dims; j++ {
				m[i][j] = J[i][j][n]
			}
		}
		det, mi := invert(m, dims)
		if !(det > 1.e-12*math.Pow(scale, float64(dims))) {
			return nil, wrapf(ErrDegenerate, "%v Jacobian %g at quadrature point %d", shape, det, n)
		}
		jac[n] = det
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				inv[i][j][n] = mi[i][j]
			}
		}
	}

	// constant Jacobian entries mean an affine map and scalar factors
	affine := curve == nil
	for i := 0; i < dims && affine; i++ {
		for j := 0; j < dims && affine; j++ {
			affine = constant(J[i][j])
		}
	}
	compress := func(v []float64) Factor {
		if affine {
			return Scalar(v[0])
		}
		return PerPoint(v)
	}
	// inv[i][j] = ∂ξ_i/∂x_j
	factor := func(i, j int) Factor {
		if i >= dims || j >= dims {
			return Scalar(0)
		}
		return compress(inv[i][j])
	}
	g.Jac = compress(jac)
	g.Rx, g.Ry, g.Rz = factor(0, 0), factor(0, 1), factor(0, 2)
	g.Sx, g.Sy, g.Sz = factor(1, 0), factor(1, 1), factor(1, 2)
	g.Tx, g.Ty, g.Tz = factor(2, 0), factor(2, 1), factor(2, 2)

	g.W = make([]float64, qtot)
	mulFactor(g.Jac, ops.W, g.W)
	return g, nil
}

// refDeriv returns the derivatives of u along r, s and t.
func refDeriv(topo topology, ops *refops.Operators, u []float64) (d [3][]float64) {
	var (
		qtot = ops.Qtot()
		dims = ops.Dims()
		c    [3][]float64
	)
	for i := 0; i < dims; i++ {
		c[i] = make([]float64, qtot)
		d[i] = make([]float64, qtot)
	}
	ops.DirDeriv(u, c[0], c[1], c[2])
	topo.collapse(ops, c[0], c[1], c[2], d[0], d[1], d[2])
	return
}

// invert returns the determinant and inverse of the leading dims×dims block.
func invert(m [3][3]float64, dims int) (det float64, inv [3][3]float64) {
	if dims == 2 {
		det = m[0][0]*m[1][1] - m[0][1]*m[1][0]
		inv[0][0], inv[0][1] = m[1][1]/det, -m[0][1]/det
		inv[1][0], inv[1][1] = -m[1][0]/det, m[0][0]/det
		return
	}
	var c [3][3]float64
	c[0][0] = m[1][1]*m[2][2] - m[1][2]*m[2][1]
	c[0][1] = m[1][2]*m[2][0] - m[1][0]*m[2][2]
	c[0][2] = m[1][0]*m[2][1] - m[1][1]*m[2][0]
	c[1][0] = m[0][2]*m[2][1] - m[0][1]*m[2][2]
	c[1][1] = m[0][0]*m[2][2] - m[0][2]*m[2][0]
	c[1][2] = m[0][1]*m[2][0] - m[0][0]*m[2][1]
	c[2][0] = m[0][1]*m[1][2] - m[0][2]*m[1][1]
	c[2][1] = m[0][2]*m[1][0] - m[0][0]*m[1][2]
	c[2][2] = m[0][0]*m[1][1] - m[0][1]*m[1][0]
	det = m[0][0]*c[0][0] + m[0][1]*c[0][1] + m[0][2]*c[0][2]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			inv[i][j] = c[j][i] / det
		}
	}
	return
}

func constant(v []float64) bool {
	tol := 1.e-10 * math.Max(1, utils.MaxAbs(v))
	for _, x := range v {
		if math.Abs(x-v[0]) > tol {
			return false
		}
	}
	return true
}

func extent(verts [][3]float64, dims int) (scale float64) {
	for d := 0; d < dims; d++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, v := range verts {
			lo, hi = math.Min(lo, v[d]), math.Max(hi, v[d])
		}
		scale = math.Max(scale, hi-lo)
	}
	return
}

// massCholesky factorizes the modal mass matrix on first use.
func (g *Geometry) massCholesky(basis *refops.Basis) (*mat.Cholesky, error) {
	g.massOnce.Do(func() {
		if !g.mass.Factorize(basis.Mass(g.W)) {
			g.massErr = wrapf(ErrDegenerate, "%v mass matrix is not positive definite", basis.Shape)
		}
	})
	return &g.mass, g.massErr
}
