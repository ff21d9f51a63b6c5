package element

import "github.com/notargets/HPKernel/element/refops"

// Pyr is the pyramid on the base [-1,1]^2 at t=-1 with its apex at
// (-1,-1,1), collapsed in c.
type Pyr struct {
	Base
}

type pyrTopology struct{}

func (pyrTopology) refCoords(a, b, c float64) (r, s, t float64) {
	return 0.5*(1+a)*(1-c) - 1, 0.5*(1+b)*(1-c) - 1, c
}

func (pyrTopology) collapse(ops *refops.Operators, da, db, dc, dr, ds, dt []float64) {
	for n := range dr {
		ic := ops.InvC[n]
		dr[n] = 2 * ic * da[n]
		ds[n] = 2 * ic * db[n]
		dt[n] = (1+ops.A[n])*ic*da[n] + (1+ops.B[n])*ic*db[n] + dc[n]
	}
}

func (pyrTopology) collapseT(ops *refops.Operators, gr, gs, gt, ga, gb, gc []float64) {
	for n := range ga {
		ic := ops.InvC[n]
		ga[n] = 2*ic*gr[n] + (1+ops.A[n])*ic*gt[n]
		gb[n] = 2*ic*gs[n] + (1+ops.B[n])*ic*gt[n]
		gc[n] = gt[n]
	}
}

func (pyrTopology) refVerts() [][3]float64 {
	return [][3]float64{{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1}, {-1, -1, 1}}
}

func (pyrTopology) edges() [][2]int {
	return [][2]int{{0, 1}, {1, 2}, {3, 2}, {0, 3}, {0, 4}, {1, 4}, {2, 4}, {3, 4}}
}

func (pyrTopology) faces() [][]int {
	return [][]int{{0, 1, 2, 3}, {0, 1, 4}, {1, 2, 4}, {3, 2, 4}, {0, 3, 4}}
}

// Copy creates a pyramid sharing the geometry of p holding a new field.
func (p *Pyr) Copy(field byte) Element {
	return &Pyr{Base: p.copyBase(field)}
}
