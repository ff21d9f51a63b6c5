package refops

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/notargets/HPKernel/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var refVolume = map[utils.GeometryType]float64{
	utils.Tri: 2, utils.Quad: 4, utils.Tet: 4. / 3., utils.Pyr: 8. / 3., utils.Prism: 4, utils.Hex: 8,
}

func TestDefaultQuadrature(t *testing.T) {
	qa, qb, qc := DefaultQuadrature(utils.Tri, 4)
	assert.Equal(t, []int{5, 4, 0}, []int{qa, qb, qc})
	qa, qb, qc = DefaultQuadrature(utils.Quad, 4)
	assert.Equal(t, []int{5, 5, 0}, []int{qa, qb, qc})
	qa, qb, qc = DefaultQuadrature(utils.Tet, 3)
	assert.Equal(t, []int{4, 3, 3}, []int{qa, qb, qc})
	qa, qb, qc = DefaultQuadrature(utils.Prism, 3)
	assert.Equal(t, []int{4, 4, 3}, []int{qa, qb, qc})
}

func TestWeightsIntegrateVolume(t *testing.T) {
	for _, lzero := range []bool{false, true} {
		c := NewCache(lzero)
		for _, shape := range utils.AllGeometries {
			qa, qb, qc := DefaultQuadrature(shape, 4)
			o := c.GetD(shape, qa, qb, qc)
			require.Len(t, o.W, o.Qtot())
			assert.InDeltaf(t, refVolume[shape], utils.Dsum(o.W), 1.e-12, "%v lzero=%v", shape, lzero)
		}
	}
}

func TestTriangleMoment(t *testing.T) {
	// the centroid of the reference triangle is (-1/3,-1/3)
	for _, lzero := range []bool{false, true} {
		o := NewCache(lzero).GetD(utils.Tri, 5, 4, 0)
		var sr, srs float64
		for n, w := range o.W {
			r := 0.5*(1+o.A[n])*(1-o.B[n]) - 1
			s := o.B[n]
			sr += w * (r + 1)
			srs += w * (r + 1) * (s + 1)
		}
		assert.InDelta(t, 4./3., sr, 1.e-13, "int (r+1)")
		assert.InDelta(t, 2./3., srs, 1.e-13, "int (r+1)(s+1)")
	}
}

func TestOperatorKeyValidation(t *testing.T) {
	c := NewCache(false)
	assert.Panics(t, func() { c.GetD(utils.Tri, 5, 4, 3) })
	assert.Panics(t, func() { c.GetD(utils.Hex, 3, 3, 0) })
	assert.Panics(t, func() { c.GetD(utils.Quad, 1, 3, 0) })
	assert.Panics(t, func() { c.GetBasis(utils.Tri, 1, 3, 2, 0) })
	assert.NotPanics(t, func() { c.GetD(utils.Hex, 2, 2, 2) })
}

func TestCacheReuse(t *testing.T) {
	c := NewCache(false)
	d1 := c.GetD(utils.Tri, 8, 8, 0)
	d2 := c.GetD(utils.Tri, 8, 8, 0)
	assert.Same(t, d1, d2)
	ops, bases, derivs := c.Builds()
	assert.Equal(t, []int{1, 0, 0}, []int{ops, bases, derivs})

	b1 := c.GetBasis(utils.Tri, 4, 8, 8, 0)
	assert.Same(t, d1, b1.Ops)
	b2 := c.DerBasis(utils.Tri, 4, 8, 8, 0)
	b3 := c.DerBasis(utils.Tri, 4, 8, 8, 0)
	assert.Same(t, b1, b2)
	assert.Same(t, b2, b3)
	ops, bases, derivs = c.Builds()
	assert.Equal(t, []int{1, 1, 1}, []int{ops, bases, derivs})

	// lzero and non-lzero rules differ in their collapsed points
	c0 := NewCache(true)
	assert.NotEqual(t, d1.Zb, c0.GetD(utils.Tri, 8, 8, 0).Zb)
	assert.Equal(t, d1.Za, c0.GetD(utils.Tri, 8, 8, 0).Za)

	assert.Contains(t, c.String(), "Basis Tri   qa=8 qb=8 qc=0 lmax=4 nmodes=10")
}

func TestCacheConcurrent(t *testing.T) {
	var (
		c   = NewCache(false)
		wg  sync.WaitGroup
		got = make([]*Basis, 16)
	)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = c.DerBasis(utils.Tet, 3, 4, 3, 3)
		}(i)
	}
	wg.Wait()
	for _, b := range got {
		assert.Same(t, got[0], b)
	}
	ops, bases, derivs := c.Builds()
	assert.Equal(t, []int{1, 1, 1}, []int{ops, bases, derivs})
}

func randomSlice(rng *rand.Rand, n int) (x []float64) {
	x = make([]float64, n)
	for i := range x {
		x[i] = 2*rng.Float64() - 1
	}
	return
}

func TestDirDerivExact(t *testing.T) {
	o := NewCache(false).GetD(utils.Quad, 4, 5, 0)
	var (
		n          = o.Qtot()
		u          = make([]float64, n)
		ua, ub, uc = make([]float64, n), make([]float64, n), make([]float64, n)
	)
	for i := range u {
		a, b := o.A[i], o.B[i]
		u[i] = a * a * b * b * b
	}
	o.DirDeriv(u, ua, ub, uc)
	for i := range u {
		a, b := o.A[i], o.B[i]
		assert.InDelta(t, 2*a*b*b*b, ua[i], 1.e-12)
		assert.InDelta(t, 3*a*a*b*b, ub[i], 1.e-12)
	}
}

func TestDirDerivAdjoint(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	c := NewCache(false)
	for _, shape := range utils.AllGeometries {
		qa, qb, qc := DefaultQuadrature(shape, 3)
		var (
			o          = c.GetD(shape, qa, qb, qc)
			n          = o.Qtot()
			u          = randomSlice(rng, n)
			za, zb, zc = randomSlice(rng, n), randomSlice(rng, n), randomSlice(rng, n)
			ua, ub, uc = make([]float64, n), make([]float64, n), make([]float64, n)
			v          = make([]float64, n)
		)
		if shape.Dims() == 2 {
			zc = nil
		}
		o.DirDeriv(u, ua, ub, uc)
		o.DirDerivT(za, zb, zc, v)
		lhs := utils.Ddot(ua, za) + utils.Ddot(ub, zb)
		if zc != nil {
			lhs += utils.Ddot(uc, zc)
		}
		assert.InDeltaf(t, lhs, utils.Ddot(u, v), 1.e-11, "%v", shape)
	}
	o := c.GetD(utils.Quad, 3, 3, 0)
	v := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	o.DirDerivT(nil, nil, nil, v)
	assert.Equal(t, make([]float64, 9), v)
}

func expectedModes(shape utils.GeometryType, P int) int {
	switch shape {
	case utils.Tri:
		return (P + 1) * (P + 2) / 2
	case utils.Quad:
		return (P + 1) * (P + 1)
	case utils.Tet:
		return (P + 1) * (P + 2) * (P + 3) / 6
	case utils.Prism:
		return (P + 1) * (P + 1) * (P + 2) / 2
	case utils.Hex:
		return (P + 1) * (P + 1) * (P + 1)
	case utils.Pyr:
		return (P + 1) * (P + 2) * (2*P + 3) / 6
	}
	return 0
}

func TestModeCounts(t *testing.T) {
	c := NewCache(false)
	for _, shape := range utils.AllGeometries {
		nv, ne, nf := shape.Counts()
		for lmax := 2; lmax <= 5; lmax++ {
			qa, qb, qc := DefaultQuadrature(shape, lmax)
			b := c.GetBasis(shape, lmax, qa, qb, qc)
			assert.Equalf(t, expectedModes(shape, lmax-1), b.Nmodes(), "%v lmax=%d", shape, lmax)
			assert.Equal(t, nv, b.Nverts)
			assert.Len(t, b.EdgeStart, ne)
			if shape.Dims() == 3 {
				assert.Len(t, b.FaceStart, nf)
			} else {
				assert.Empty(t, b.FaceStart)
			}
			for e := 0; e < ne; e++ {
				start, end := b.EdgeModes(e)
				assert.Equal(t, lmax-2, end-start, "%v edge %d", shape, e)
			}
			assert.LessOrEqual(t, b.Nbmodes(), b.Nmodes())
		}
	}
	b := c.GetBasis(utils.Pyr, 3, 4, 4, 3)
	assert.Equal(t, 14, b.Nmodes())
	b = c.GetBasis(utils.Pyr, 4, 5, 5, 4)
	assert.Equal(t, 30, b.Nmodes())
	// quad interior modes of lmax=4
	b = c.GetBasis(utils.Quad, 4, 5, 5, 0)
	assert.Equal(t, 12, b.Nbmodes())
}

var collapsedVertices = map[utils.GeometryType][][3]float64{
	utils.Tri:   {{-1, -1, 0}, {1, -1, 0}, {0, 1, 0}},
	utils.Quad:  {{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}},
	utils.Tet:   {{-1, -1, -1}, {1, -1, -1}, {0, 1, -1}, {0, 0, 1}},
	utils.Pyr:   {{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1}, {0, 0, 1}},
	utils.Prism: {{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1}, {0, -1, 1}, {0, 1, 1}},
	utils.Hex: {{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},
}

func TestVertexModes(t *testing.T) {
	c := NewCache(false)
	for _, shape := range utils.AllGeometries {
		qa, qb, qc := DefaultQuadrature(shape, 4)
		b := c.GetBasis(shape, 4, qa, qb, qc)
		for m, md := range b.Modes {
			for v, x := range collapsedVertices[shape] {
				val := b.Factors[0][md.A].Eval(x[0:1])[0] *
					b.Factors[1][md.B].Eval(x[1:2])[0] *
					b.Factors[2][md.C].Eval(x[2:3])[0]
				want := 0.
				if m == v {
					want = 1
				}
				assert.InDeltaf(t, want, val, 1.e-13, "%v mode %d vertex %d", shape, m, v)
			}
		}
	}
}

func TestSumFactorization(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	c := NewCache(false)
	for _, shape := range utils.AllGeometries {
		qa, qb, qc := DefaultQuadrature(shape, 4)
		var (
			b    = c.GetBasis(shape, 4, qa, qb, qc)
			nm   = b.Nmodes()
			qt   = b.Ops.Qtot()
			f    = randomSlice(rng, qt)
			coef = randomSlice(rng, nm)
			out  = make([]float64, nm)
			u    = make([]float64, qt)
		)
		b.Iprod(f, out)
		want := mat.NewVecDense(nm, nil)
		want.MulVec(b.V, mat.NewVecDense(qt, f))
		assert.InDeltaSlicef(t, want.RawVector().Data, out, 1.e-12, "%v iprod", shape)

		b.BwdTrans(coef, u)
		wantU := mat.NewVecDense(qt, nil)
		wantU.MulVec(b.V.T(), mat.NewVecDense(nm, coef))
		assert.InDeltaSlicef(t, wantU.RawVector().Data, u, 1.e-12, "%v bwd", shape)
	}
}

func TestDerivativeTables(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	c := NewCache(true)
	for _, shape := range utils.AllGeometries {
		for lmax := 2; lmax <= 4; lmax++ {
			qa, qb, qc := DefaultQuadrature(shape, lmax)
			var (
				b    = c.DerBasis(shape, lmax, qa, qb, qc)
				qt   = b.Ops.Qtot()
				coef = randomSlice(rng, b.Nmodes())
				u    = make([]float64, qt)
				du   [3][]float64
			)
			b.BwdTrans(coef, u)
			for d := 0; d < shape.Dims(); d++ {
				du[d] = make([]float64, qt)
			}
			b.Ops.DirDeriv(u, du[0], du[1], du[2])
			for d := 0; d < shape.Dims(); d++ {
				got := make([]float64, qt)
				b.BwdTransDeriv(d, coef, got)
				assert.InDeltaSlicef(t, du[d], got, 1.e-10, "%v lmax=%d dir %d", shape, lmax, d)

				// projecting onto derivatives is the adjoint of evaluating them
				f := randomSlice(rng, qt)
				proj := make([]float64, b.Nmodes())
				b.IprodDeriv(d, f, proj)
				assert.InDelta(t, utils.Ddot(got, f), utils.Ddot(proj, coef), 1.e-10)
			}
		}
	}
}

func TestMassPositiveDefinite(t *testing.T) {
	c := NewCache(false)
	for _, shape := range utils.AllGeometries {
		for lmax := 2; lmax <= 4; lmax++ {
			qa, qb, qc := DefaultQuadrature(shape, lmax)
			b := c.GetBasis(shape, lmax, qa, qb, qc)
			var ch mat.Cholesky
			assert.Truef(t, ch.Factorize(b.Mass(b.Ops.W)), "%v lmax=%d", shape, lmax)
		}
	}
}

func TestFormatMatrices(t *testing.T) {
	c := NewCache(false)
	o := c.GetD(utils.Tri, 3, 2, 0)
	out := FormatMatrices(o.Matrices())
	assert.True(t, strings.HasPrefix(out, "const double Da_Tri[3][3] = {\n"))
	assert.Contains(t, out, "const double Db_Tri[2][2]")
	assert.NotContains(t, out, "Dc_Tri")
	b := c.DerBasis(utils.Tet, 2, 3, 2, 2)
	names := make([]string, 0)
	for name := range b.Matrices() {
		names = append(names, name)
	}
	assert.ElementsMatch(t, []string{"A_Tet2", "B_Tet2", "C_Tet2", "dA_Tet2", "dB_Tet2", "dC_Tet2"}, names)
	assert.Equal(t, fmt.Sprintf("const double I[1][2] = {\n    {%.15e, %.15e}\n};\n\n", 1., 2.),
		FormatMatrix("I", mat.NewDense(1, 2, []float64{1, 2})))
}
