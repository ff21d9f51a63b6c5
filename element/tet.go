package element

import "github.com/notargets/HPKernel/element/refops"

// Tet is the tetrahedron with vertices (-1,-1,-1), (1,-1,-1), (-1,1,-1) and
// (-1,-1,1), collapsed in both b and c.
type Tet struct {
	Base
}

type tetTopology struct{}

func (tetTopology) refCoords(a, b, c float64) (r, s, t float64) {
	return 0.25*(1+a)*(1-b)*(1-c) - 1, 0.5*(1+b)*(1-c) - 1, c
}

func (tetTopology) collapse(ops *refops.Operators, da, db, dc, dr, ds, dt []float64) {
	for n := range dr {
		var (
			ib, ic = ops.InvB[n], ops.InvC[n]
			fa     = 2 * (1 + ops.A[n]) * ib * ic * da[n]
		)
		dr[n] = 4 * ib * ic * da[n]
		ds[n] = fa + 2*ic*db[n]
		dt[n] = fa + (1+ops.B[n])*ic*db[n] + dc[n]
	}
}

func (tetTopology) collapseT(ops *refops.Operators, gr, gs, gt, ga, gb, gc []float64) {
	for n := range ga {
		ib, ic := ops.InvB[n], ops.InvC[n]
		ga[n] = 4*ib*ic*gr[n] + 2*(1+ops.A[n])*ib*ic*(gs[n]+gt[n])
		gb[n] = 2*ic*gs[n] + (1+ops.B[n])*ic*gt[n]
		gc[n] = gt[n]
	}
}

func (tetTopology) refVerts() [][3]float64 {
	return [][3]float64{{-1, -1, -1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}}
}

func (tetTopology) edges() [][2]int {
	return [][2]int{{0, 1}, {1, 2}, {0, 2}, {0, 3}, {1, 3}, {2, 3}}
}

func (tetTopology) faces() [][]int {
	return [][]int{{0, 1, 2}, {0, 1, 3}, {1, 2, 3}, {0, 2, 3}}
}

// Copy creates a tetrahedron sharing the geometry of t holding a new field.
func (t *Tet) Copy(field byte) Element {
	return &Tet{Base: t.copyBase(field)}
}
