package polylib

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Zeros and weights for the 1-D rules used along each reference direction.
// Weights are those of the rule's own weight function (1-z)^alpha; callers
// fold any collapsed-coordinate Jacobian in afterwards.

// ZwGLL returns the Q point Gauss-Lobatto-Legendre zeros and weights:
// -1, the zeros of P_{Q-2}^{(1,1)}, and +1.
func ZwGLL(Q int) (z, w []float64) {
	if Q < 2 {
		chk.Panic("Gauss-Lobatto rule needs at least 2 points, got %d", Q)
	}
	z = make([]float64, Q)
	z[0], z[Q-1] = -1, 1
	if Q > 2 {
		xint, _ := JacobiGQ(1, 1, Q-3)
		copy(z[1:Q-1], xint)
	}
	w = LagrangeWeights(z, 0, 0)
	return
}

// ZwGRJm returns the Q point Gauss-Radau-Jacobi zeros and weights for the
// weight (1-z)^alpha with the fixed point at z=-1: -1 followed by the zeros
// of P_{Q-1}^{(alpha,1)}. The point z=+1 is never included, so 1/(1-z) is
// finite at every zero.
func ZwGRJm(Q int, alpha float64) (z, w []float64) {
	if Q < 1 {
		chk.Panic("Gauss-Radau rule needs at least 1 point, got %d", Q)
	}
	z = make([]float64, Q)
	z[0] = -1
	if Q > 1 {
		xint, _ := JacobiGQ(alpha, 1, Q-2)
		copy(z[1:], xint)
	}
	w = LagrangeWeights(z, alpha, 0)
	return
}

// LagrangeWeights integrates the Lagrange interpolants through z against
// (1-x)^alpha (1+x)^beta using a Gauss-Jacobi rule that is exact for them.
func LagrangeWeights(z []float64, alpha, beta float64) (w []float64) {
	var (
		Q      = len(z)
		xg, wg = JacobiGQ(alpha, beta, Q-1)
	)
	w = make([]float64, Q)
	for k := range xg {
		for i := 0; i < Q; i++ {
			w[i] += wg[k] * Lagrange(z, i, xg[k])
		}
	}
	return
}

// Lagrange evaluates the i-th Lagrange interpolant through z at x.
func Lagrange(z []float64, i int, x float64) float64 {
	h := 1.0
	for k := range z {
		if k != i {
			h *= (x - z[k]) / (z[i] - z[k])
		}
	}
	return h
}

// Dmat builds the collocation differentiation matrix on the points z:
// (D u)_i is the derivative at z_i of the interpolant of u. The diagonal is
// the negative row sum so constants differentiate to zero exactly.
func Dmat(z []float64) (D *mat.Dense) {
	var (
		Q = len(z)
		c = make([]float64, Q)
	)
	for i := 0; i < Q; i++ {
		c[i] = 1
		for k := 0; k < Q; k++ {
			if k != i {
				c[i] *= z[i] - z[k]
			}
		}
	}
	D = mat.NewDense(Q, Q, nil)
	for i := 0; i < Q; i++ {
		var diag float64
		for j := 0; j < Q; j++ {
			if j == i {
				continue
			}
			v := (c[i] / c[j]) / (z[i] - z[j])
			D.Set(i, j, v)
			diag -= v
		}
		D.Set(i, i, diag)
	}
	return
}

// Dgll returns the Gauss-Lobatto-Legendre differentiation matrix and its
// transpose for Q points.
func Dgll(Q int) (D, Dt *mat.Dense) {
	z, _ := ZwGLL(Q)
	D = Dmat(z)
	Dt = mat.DenseCopyOf(D.T())
	return
}

// Dgrjm returns the Gauss-Radau-Jacobi differentiation matrix and its
// transpose for Q points of the (alpha,0) rule.
func Dgrjm(Q int, alpha float64) (D, Dt *mat.Dense) {
	z, _ := ZwGRJm(Q, alpha)
	D = Dmat(z)
	Dt = mat.DenseCopyOf(D.T())
	return
}

// Imat builds the interpolation matrix from the points z to the points x.
func Imat(z, x []float64) (I *mat.Dense) {
	I = mat.NewDense(len(x), len(z), nil)
	for i := range x {
		for j := range z {
			I.Set(i, j, Lagrange(z, j, x[i]))
		}
	}
	return
}

// Integrate applies the weights w to the samples f.
func Integrate(w, f []float64) (sum float64) {
	for i := range w {
		sum += w[i] * f[i]
	}
	return
}
