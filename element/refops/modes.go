package refops

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/notargets/HPKernel/element/library/polylib"
	"github.com/notargets/HPKernel/utils"
)

// Factor is a 1-D modal factor along one reference direction:
//
//	((1-z)/2)^Lo ((1+z)/2)^Hi P_N^{(Alpha,1)}(z)
//
// with the polynomial omitted when N < 0.
type Factor struct {
	Lo, Hi int
	N      int
	Alpha  float64
}

var (
	one = Factor{N: -1}
	lo  = Factor{Lo: 1, N: -1}
	hi  = Factor{Hi: 1, N: -1}
)

// psi is the interior line mode of order i >= 2.
func psi(i int) Factor { return Factor{Lo: 1, Hi: 1, N: i - 2, Alpha: 1} }

// bub is the collapsed-direction edge bubble of order j >= 1.
func bub(j int) Factor { return Factor{Lo: 1, Hi: 1, N: j - 1, Alpha: 1} }

func loPow(p int) Factor { return Factor{Lo: p, N: -1} }

// jac is a collapsed-direction factor carrying p powers of (1-z)/2.
func jac(p, n int, alpha float64) Factor { return Factor{Lo: p, Hi: 1, N: n, Alpha: alpha} }

// Eval samples the factor at z.
func (f Factor) Eval(z []float64) (v []float64) {
	v = polylib.JacobiP(z, f.Alpha, 1, f.N)
	for i, zi := range z {
		v[i] *= math.Pow(0.5*(1-zi), float64(f.Lo)) * math.Pow(0.5*(1+zi), float64(f.Hi))
	}
	return
}

// Mode is a separable modal function, indices into the a, b and c factor
// tables of its Basis.
type Mode struct {
	A, B, C int
}

// modeSet accumulates modes in vertex, edge, face, interior order.
type modeSet struct {
	index      [3]map[Factor]int
	factors    [3][]Factor
	modes      []Mode
	edgeStart  []int
	faceStart  []int
	nv         int
	interiorAt int
}

func newModeSet() (s *modeSet) {
	s = &modeSet{}
	for d := range s.index {
		s.index[d] = make(map[Factor]int)
	}
	return
}

func (s *modeSet) factor(d int, f Factor) int {
	if i, ok := s.index[d][f]; ok {
		return i
	}
	s.index[d][f] = len(s.factors[d])
	s.factors[d] = append(s.factors[d], f)
	return len(s.factors[d]) - 1
}

func (s *modeSet) add(fa, fb, fc Factor) {
	s.modes = append(s.modes, Mode{s.factor(0, fa), s.factor(1, fb), s.factor(2, fc)})
}

func (s *modeSet) vertex(fa, fb, fc Factor) {
	s.add(fa, fb, fc)
	s.nv++
}

func (s *modeSet) edge()     { s.edgeStart = append(s.edgeStart, len(s.modes)) }
func (s *modeSet) face()     { s.faceStart = append(s.faceStart, len(s.modes)) }
func (s *modeSet) interior() { s.interiorAt = len(s.modes) }

func buildModes(shape utils.GeometryType, lmax int) (s *modeSet) {
	if lmax < 2 {
		chk.Panic("%v: lmax=%d must be at least 2", shape, lmax)
	}
	P := lmax - 1
	s = newModeSet()
	switch shape {
	case utils.Quad:
		quadModes(s, P)
	case utils.Tri:
		triModes(s, P)
	case utils.Hex:
		hexModes(s, P)
	case utils.Tet:
		tetModes(s, P)
	case utils.Pyr:
		pyrModes(s, P)
	case utils.Prism:
		prismModes(s, P)
	default:
		chk.Panic("no modal basis for shape %v", shape)
	}
	return
}

func quadModes(s *modeSet, P int) {
	s.vertex(lo, lo, one)
	s.vertex(hi, lo, one)
	s.vertex(hi, hi, one)
	s.vertex(lo, hi, one)
	for _, e := range [4][2]Factor{{one, lo}, {hi, one}, {one, hi}, {lo, one}} {
		s.edge()
		for p := 2; p <= P; p++ {
			fa, fb := e[0], e[1]
			if fa == one {
				fa = psi(p)
			} else {
				fb = psi(p)
			}
			s.add(fa, fb, one)
		}
	}
	s.interior()
	for q := 2; q <= P; q++ {
		for p := 2; p <= P; p++ {
			s.add(psi(p), psi(q), one)
		}
	}
}

func triModes(s *modeSet, P int) {
	s.vertex(lo, lo, one)
	s.vertex(hi, lo, one)
	s.vertex(one, hi, one)
	s.edge()
	for i := 2; i <= P; i++ {
		s.add(psi(i), loPow(i), one)
	}
	for _, fa := range []Factor{hi, lo} {
		s.edge()
		for j := 1; j < P; j++ {
			s.add(fa, bub(j), one)
		}
	}
	s.interior()
	for i := 2; i <= P; i++ {
		for j := 1; i+j <= P; j++ {
			s.add(psi(i), jac(i, j-1, float64(2*i-1)), one)
		}
	}
}

func hexModes(s *modeSet, P int) {
	// vertices in counter-clockwise order on the c=-1 face, then c=+1
	for _, fc := range []Factor{lo, hi} {
		s.vertex(lo, lo, fc)
		s.vertex(hi, lo, fc)
		s.vertex(hi, hi, fc)
		s.vertex(lo, hi, fc)
	}
	// edges: four on c=-1, four vertical, four on c=+1
	edges := [12][3]Factor{
		{one, lo, lo}, {hi, one, lo}, {one, hi, lo}, {lo, one, lo},
		{lo, lo, one}, {hi, lo, one}, {hi, hi, one}, {lo, hi, one},
		{one, lo, hi}, {hi, one, hi}, {one, hi, hi}, {lo, one, hi},
	}
	for _, e := range edges {
		s.edge()
		for p := 2; p <= P; p++ {
			m := e
			for d := range m {
				if m[d] == one {
					m[d] = psi(p)
				}
			}
			s.add(m[0], m[1], m[2])
		}
	}
	// faces: c=-1, b=-1, a=+1, b=+1, a=-1, c=+1
	faces := [][3]Factor{{one, one, lo}, {one, lo, one}, {hi, one, one},
		{one, hi, one}, {lo, one, one}, {one, one, hi}}
	for _, f := range faces {
		s.face()
		for q := 2; q <= P; q++ {
			for p := 2; p <= P; p++ {
				var (
					m    = f
					free = []int{p, q}
					n    int
				)
				for d := range m {
					if m[d] == one {
						m[d] = psi(free[n])
						n++
					}
				}
				s.add(m[0], m[1], m[2])
			}
		}
	}
	s.interior()
	for r := 2; r <= P; r++ {
		for q := 2; q <= P; q++ {
			for p := 2; p <= P; p++ {
				s.add(psi(p), psi(q), psi(r))
			}
		}
	}
}

func tetModes(s *modeSet, P int) {
	s.vertex(lo, lo, lo)
	s.vertex(hi, lo, lo)
	s.vertex(one, hi, lo)
	s.vertex(one, one, hi)
	// e0: v0-v1
	s.edge()
	for i := 2; i <= P; i++ {
		s.add(psi(i), loPow(i), loPow(i))
	}
	// e1: v1-v2, e2: v0-v2
	for _, fa := range []Factor{hi, lo} {
		s.edge()
		for j := 1; j < P; j++ {
			s.add(fa, bub(j), loPow(j+1))
		}
	}
	// e3: v0-v3, e4: v1-v3, e5: v2-v3
	for _, e := range [3][2]Factor{{lo, lo}, {hi, lo}, {one, hi}} {
		s.edge()
		for k := 1; k < P; k++ {
			s.add(e[0], e[1], bub(k))
		}
	}
	// f0: c=-1
	s.face()
	for i := 2; i <= P; i++ {
		for j := 1; i+j <= P; j++ {
			s.add(psi(i), jac(i, j-1, float64(2*i-1)), loPow(i+j))
		}
	}
	// f1: b=-1
	s.face()
	for i := 2; i <= P; i++ {
		for k := 1; i+k <= P; k++ {
			s.add(psi(i), loPow(i), jac(i, k-1, float64(2*i-1)))
		}
	}
	// f2: a=+1, f3: a=-1
	for _, fa := range []Factor{hi, lo} {
		s.face()
		for j := 1; j < P; j++ {
			for k := 1; j+k <= P-1; k++ {
				s.add(fa, bub(j), jac(j+1, k-1, float64(2*j+1)))
			}
		}
	}
	s.interior()
	for i := 2; i <= P; i++ {
		for j := 1; i+j <= P; j++ {
			for k := 1; i+j+k <= P; k++ {
				s.add(psi(i), jac(i, j-1, float64(2*i-1)), jac(i+j, k-1, float64(2*i+2*j-1)))
			}
		}
	}
}

func pyrModes(s *modeSet, P int) {
	s.vertex(lo, lo, lo)
	s.vertex(hi, lo, lo)
	s.vertex(hi, hi, lo)
	s.vertex(lo, hi, lo)
	s.vertex(one, one, hi)
	// base edges: b=-1, a=+1, b=+1, a=-1
	for _, e := range [4][2]Factor{{one, lo}, {hi, one}, {one, hi}, {lo, one}} {
		s.edge()
		for i := 2; i <= P; i++ {
			fa, fb := e[0], e[1]
			if fa == one {
				fa = psi(i)
			} else {
				fb = psi(i)
			}
			s.add(fa, fb, loPow(i))
		}
	}
	// vertical edges from each base vertex to the apex
	for _, e := range [4][2]Factor{{lo, lo}, {hi, lo}, {hi, hi}, {lo, hi}} {
		s.edge()
		for k := 1; k < P; k++ {
			s.add(e[0], e[1], bub(k))
		}
	}
	// f0: base quad
	s.face()
	for j := 2; j <= P; j++ {
		for i := 2; i <= P; i++ {
			s.add(psi(i), psi(j), loPow(max(i, j)))
		}
	}
	// triangular faces: b=-1, a=+1, b=+1, a=-1
	for _, f := range [4][2]Factor{{one, lo}, {hi, one}, {one, hi}, {lo, one}} {
		s.face()
		for i := 2; i <= P; i++ {
			for k := 1; i+k <= P; k++ {
				fa, fb := f[0], f[1]
				if fa == one {
					fa = psi(i)
				} else {
					fb = psi(i)
				}
				s.add(fa, fb, jac(i, k-1, float64(2*i-1)))
			}
		}
	}
	s.interior()
	for j := 2; j <= P; j++ {
		for i := 2; i <= P; i++ {
			m := max(i, j)
			for k := 1; m+k <= P; k++ {
				s.add(psi(i), psi(j), jac(m, k-1, float64(2*m-1)))
			}
		}
	}
}

func prismModes(s *modeSet, P int) {
	// triangle in (a,c) times a line in b
	s.vertex(lo, lo, lo)
	s.vertex(hi, lo, lo)
	s.vertex(hi, hi, lo)
	s.vertex(lo, hi, lo)
	s.vertex(one, lo, hi)
	s.vertex(one, hi, hi)
	// edges along a on c=-1 (b=-1, b=+1)
	for _, fb := range []Factor{lo, hi} {
		s.edge()
		for i := 2; i <= P; i++ {
			s.add(psi(i), fb, loPow(i))
		}
	}
	// edges along b at the three triangle vertices
	for _, e := range [3][2]Factor{{lo, lo}, {hi, lo}, {one, hi}} {
		s.edge()
		for j := 2; j <= P; j++ {
			s.add(e[0], psi(j), e[1])
		}
	}
	// slanted edges (a=+1, a=-1) for b=-1 and b=+1
	for _, fb := range []Factor{lo, hi} {
		for _, fa := range []Factor{hi, lo} {
			s.edge()
			for k := 1; k < P; k++ {
				s.add(fa, fb, bub(k))
			}
		}
	}
	// f0: c=-1 quad
	s.face()
	for j := 2; j <= P; j++ {
		for i := 2; i <= P; i++ {
			s.add(psi(i), psi(j), loPow(i))
		}
	}
	// triangular faces b=-1, b=+1
	for _, fb := range []Factor{lo, hi} {
		s.face()
		for i := 2; i <= P; i++ {
			for k := 1; i+k <= P; k++ {
				s.add(psi(i), fb, jac(i, k-1, float64(2*i-1)))
			}
		}
	}
	// slanted quad faces a=+1, a=-1
	for _, fa := range []Factor{hi, lo} {
		s.face()
		for j := 2; j <= P; j++ {
			for k := 1; k < P; k++ {
				s.add(fa, psi(j), bub(k))
			}
		}
	}
	s.interior()
	for j := 2; j <= P; j++ {
		for i := 2; i <= P; i++ {
			for k := 1; i+k <= P; k++ {
				s.add(psi(i), psi(j), jac(i, k-1, float64(2*i-1)))
			}
		}
	}
}
