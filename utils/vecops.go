package utils

import (
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
)

// Dense vector and matrix kernels used by the element operators.
// All matrices are row-major: element (i,j) of an m×n matrix with leading
// dimension ld lives at a[i*ld+j].

// Dgemm computes C = alpha*op(A)*op(B) + beta*C where op(A) is m×k and
// op(B) is k×n. When transA is set A is stored as k×m, likewise for B.
func Dgemm(transA, transB bool, m, n, k int, alpha float64, a []float64, lda int,
	b []float64, ldb int, beta float64, c []float64, ldc int) {
	if m == 0 || n == 0 {
		return
	}
	if k == 0 {
		for i := 0; i < m; i++ {
			row := c[i*ldc : i*ldc+n]
			if beta == 0 {
				for j := range row {
					row[j] = 0
				}
			} else {
				floats.Scale(beta, row)
			}
		}
		return
	}
	var (
		tA, tB         = blas.NoTrans, blas.NoTrans
		aRows, aCols   = m, k
		bRows, bCols   = k, n
		genA, genB, gC blas64.General
	)
	if transA {
		tA = blas.Trans
		aRows, aCols = k, m
	}
	if transB {
		tB = blas.Trans
		bRows, bCols = n, k
	}
	genA = blas64.General{Rows: aRows, Cols: aCols, Stride: lda, Data: a[:(aRows-1)*lda+aCols]}
	genB = blas64.General{Rows: bRows, Cols: bCols, Stride: ldb, Data: b[:(bRows-1)*ldb+bCols]}
	gC = blas64.General{Rows: m, Cols: n, Stride: ldc, Data: c[:(m-1)*ldc+n]}
	blas64.Gemm(tA, tB, alpha, genA, genB, beta, gC)
}

// Mxm overwrites C (m×n) with A (m×k) times B (k×n), all densely packed.
func Mxm(a []float64, m, k int, b []float64, n int, c []float64) {
	Dgemm(false, false, m, n, k, 1, a, k, b, n, 0, c, n)
}

// MxmAcc accumulates A*B into C.
func MxmAcc(a []float64, m, k int, b []float64, n int, c []float64) {
	Dgemm(false, false, m, n, k, 1, a, k, b, n, 1, c, n)
}

// Dvmul sets z = x*y elementwise. z may alias x or y.
func Dvmul(x, y, z []float64) {
	floats.MulTo(z, x, y)
}

// Dvvtvp sets z = w*x + y elementwise. z may alias any input.
func Dvvtvp(w, x, y, z []float64) {
	wx := make([]float64, len(w))
	floats.MulTo(wx, w, x)
	floats.AddTo(z, wx, y)
}

// Dsmul sets y = alpha*x.
func Dsmul(alpha float64, x, y []float64) {
	floats.ScaleTo(y, alpha, x)
}

// Daxpy sets y += alpha*x.
func Daxpy(alpha float64, x, y []float64) {
	floats.AddScaled(y, alpha, x)
}

// Dvadd sets z = x + y.
func Dvadd(x, y, z []float64) {
	floats.AddTo(z, x, y)
}

// Ddot returns the dot product of x and y.
func Ddot(x, y []float64) float64 {
	return floats.Dot(x, y)
}

// Dsum returns the sum of the entries of x.
func Dsum(x []float64) float64 {
	return floats.Sum(x)
}

// Idamax returns the index of the entry of x with the largest magnitude,
// or -1 when x is empty.
func Idamax(x []float64) int {
	if len(x) == 0 {
		return -1
	}
	return blas64.Iamax(blas64.Vector{N: len(x), Data: x, Inc: 1})
}

// Dzero clears x.
func Dzero(x []float64) {
	Dfill(0, x)
}

// Dfill sets every entry of x to alpha.
func Dfill(alpha float64, x []float64) {
	if len(x) == 0 {
		return
	}
	x[0] = alpha
	for n := 1; n < len(x); n *= 2 {
		copy(x[n:], x[:n])
	}
}

// MaxAbs returns max_i |x_i|.
func MaxAbs(x []float64) float64 {
	i := Idamax(x)
	if i < 0 {
		return 0
	}
	return math.Abs(x[i])
}
