package element

import "github.com/notargets/HPKernel/element/refops"

// Tri is the triangle with vertices (-1,-1), (1,-1), (-1,1), mapped from the
// square by collapsing b=1 to the top vertex.
type Tri struct {
	Base
}

type triTopology struct{}

func (triTopology) refCoords(a, b, _ float64) (r, s, t float64) {
	return 0.5*(1+a)*(1-b) - 1, b, 0
}

func (triTopology) collapse(ops *refops.Operators, da, db, _, dr, ds, _ []float64) {
	for n := range dr {
		ib := ops.InvB[n]
		dr[n] = 2 * ib * da[n]
		ds[n] = (1+ops.A[n])*ib*da[n] + db[n]
	}
}

func (triTopology) collapseT(ops *refops.Operators, gr, gs, _, ga, gb, _ []float64) {
	for n := range ga {
		ib := ops.InvB[n]
		ga[n] = 2*ib*gr[n] + (1+ops.A[n])*ib*gs[n]
		gb[n] = gs[n]
	}
}

func (triTopology) refVerts() [][3]float64 {
	return [][3]float64{{-1, -1}, {1, -1}, {-1, 1}}
}

func (triTopology) edges() [][2]int { return [][2]int{{0, 1}, {1, 2}, {0, 2}} }
func (triTopology) faces() [][]int  { return [][]int{{0, 1, 2}} }

// Copy creates a triangle sharing the geometry of t holding a new field.
func (t *Tri) Copy(field byte) Element {
	return &Tri{Base: t.copyBase(field)}
}
