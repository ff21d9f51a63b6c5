package polylib

import (
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/notargets/gocfd/DG1D"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJacobiGQMatchesGocfd(t *testing.T) {
	cases := []struct{ alpha, beta float64 }{{0, 0}, {1, 1}, {1, 0}, {2, 1}, {0, 1}}
	for _, tc := range cases {
		for N := 1; N <= 6; N++ {
			t.Run(fmt.Sprintf("a=%g,b=%g,N=%d", tc.alpha, tc.beta, N), func(t *testing.T) {
				x, w := JacobiGQ(tc.alpha, tc.beta, N)
				xr, wr := DG1D.JacobiGQ(tc.alpha, tc.beta, N)
				xs, ws := sortPairs(xr.Data(), wr.Data())
				assert.InDeltaSlice(t, xs, x, 1.e-12)
				assert.InDeltaSlice(t, ws, w, 1.e-12)
			})
		}
	}
}

func sortPairs(x, w []float64) (xs, ws []float64) {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return x[idx[i]] < x[idx[j]] })
	for _, i := range idx {
		xs = append(xs, x[i])
		ws = append(ws, w[i])
	}
	return
}

func TestJacobiGQSingle(t *testing.T) {
	x, w := JacobiGQ(1, 0, 0)
	assert.InDeltaSlice(t, []float64{-1. / 3.}, x, 1.e-15)
	assert.InDeltaSlice(t, []float64{2}, w, 1.e-14)
	x, w = JacobiGQ(0, 0, -1)
	assert.Nil(t, x)
	assert.Nil(t, w)
}

func TestZwGLL(t *testing.T) {
	z, w := ZwGLL(3)
	assert.InDeltaSlice(t, []float64{-1, 0, 1}, z, 1.e-14)
	assert.InDeltaSlice(t, []float64{1. / 3., 4. / 3., 1. / 3.}, w, 1.e-14)

	for Q := 2; Q <= 10; Q++ {
		z, w := ZwGLL(Q)
		// exact for degree 2Q-3
		for p := 0; p <= 2*Q-3; p++ {
			f := make([]float64, Q)
			for i := range z {
				f[i] = math.Pow(z[i], float64(p))
			}
			exact := 0.
			if p%2 == 0 {
				exact = 2. / float64(p+1)
			}
			assert.InDeltaf(t, exact, Integrate(w, f), 1.e-13, "Q=%d p=%d", Q, p)
		}
		assert.Equal(t, -1., z[0])
		assert.Equal(t, 1., z[Q-1])
	}
}

func TestZwGRJm(t *testing.T) {
	// moments of (1-x)^alpha * x^p over [-1,1]
	moment := func(alpha, p int) (sum float64) {
		// expand (1-x)^alpha binomially
		coef := 1.
		for k := 0; k <= alpha; k++ {
			if k > 0 {
				coef *= float64(alpha-k+1) / float64(k)
			}
			pow := p + k
			if pow%2 == 0 {
				sign := 1.
				if k%2 == 1 {
					sign = -1
				}
				sum += sign * coef * 2. / float64(pow+1)
			}
		}
		return
	}
	for _, alpha := range []int{0, 1, 2} {
		for Q := 2; Q <= 9; Q++ {
			z, w := ZwGRJm(Q, float64(alpha))
			require.Len(t, z, Q)
			assert.Equal(t, -1., z[0])
			assert.Less(t, z[Q-1], 1.)
			for p := 0; p <= 2*Q-2; p++ {
				f := make([]float64, Q)
				for i := range z {
					f[i] = math.Pow(z[i], float64(p))
				}
				assert.InDeltaf(t, moment(alpha, p), Integrate(w, f), 1.e-12,
					"alpha=%d Q=%d p=%d", alpha, Q, p)
			}
		}
	}
}

func TestDmat(t *testing.T) {
	for Q := 3; Q <= 9; Q++ {
		for _, zw := range []func(int) ([]float64, []float64){
			ZwGLL,
			func(q int) ([]float64, []float64) { return ZwGRJm(q, 1) },
			func(q int) ([]float64, []float64) { return ZwGRJm(q, 2) },
		} {
			z, _ := zw(Q)
			D := Dmat(z)
			p := Q - 1
			for i := range z {
				var d float64
				for j := range z {
					d += D.At(i, j) * math.Pow(z[j], float64(p))
				}
				assert.InDelta(t, float64(p)*math.Pow(z[i], float64(p-1)), d, 1.e-10)
				// row sums vanish
				var rs float64
				for j := range z {
					rs += D.At(i, j)
				}
				assert.InDelta(t, 0, rs, 1.e-13)
			}
		}
	}
	D, Dt := Dgll(6)
	r, c := D.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			assert.Equal(t, D.At(i, j), Dt.At(j, i))
		}
	}
	D, Dt = Dgrjm(5, 1)
	assert.Equal(t, D.At(1, 3), Dt.At(3, 1))
}

func TestJacobiPOrthonormal(t *testing.T) {
	x, w := JacobiGQ(0, 0, 6)
	for m := 0; m <= 4; m++ {
		pm := JacobiP(x, 0, 0, m)
		for n := 0; n <= 4; n++ {
			pn := JacobiP(x, 0, 0, n)
			var s float64
			for k := range x {
				s += w[k] * pm[k] * pn[k]
			}
			if m == n {
				assert.InDelta(t, 1, s, 1.e-12)
			} else {
				assert.InDelta(t, 0, s, 1.e-12)
			}
		}
	}
	assert.Equal(t, []float64{1, 1}, JacobiP([]float64{0.3, -0.2}, 1, 1, -1))
}

func TestImat(t *testing.T) {
	z, _ := ZwGLL(5)
	x := []float64{-0.7, 0.1, 0.95}
	I := Imat(z, x)
	for i := range x {
		var s float64
		for j := range z {
			s += I.At(i, j) * z[j] * z[j] * z[j]
		}
		assert.InDelta(t, x[i]*x[i]*x[i], s, 1.e-13)
	}
}
