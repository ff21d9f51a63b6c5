package polylib

import (
	"github.com/notargets/gocfd/DG1D"
	cfdutils "github.com/notargets/gocfd/utils"
)

// JacobiP evaluates the orthonormal Jacobi polynomial P_n^{(alpha,beta)} at
// the points z. A negative n yields the constant 1.
func JacobiP(z []float64, alpha, beta float64, n int) (p []float64) {
	if n < 0 {
		p = make([]float64, len(z))
		for i := range p {
			p[i] = 1
		}
		return
	}
	if len(z) == 0 {
		return []float64{}
	}
	zz := make([]float64, len(z))
	copy(zz, z)
	return DG1D.JacobiP(cfdutils.NewVector(len(zz), zz), alpha, beta, n)
}
