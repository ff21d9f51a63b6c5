package element

import "github.com/notargets/HPKernel/element/refops"

// Prism is the triangle of the (r,t) plane extruded along s, collapsed in c.
type Prism struct {
	Base
}

type prismTopology struct{}

func (prismTopology) refCoords(a, b, c float64) (r, s, t float64) {
	return 0.5*(1+a)*(1-c) - 1, b, c
}

func (prismTopology) collapse(ops *refops.Operators, da, db, dc, dr, ds, dt []float64) {
	for n := range dr {
		ic := ops.InvC[n]
		dr[n] = 2 * ic * da[n]
		ds[n] = db[n]
		dt[n] = (1+ops.A[n])*ic*da[n] + dc[n]
	}
}

func (prismTopology) collapseT(ops *refops.Operators, gr, gs, gt, ga, gb, gc []float64) {
	for n := range ga {
		ic := ops.InvC[n]
		ga[n] = 2*ic*gr[n] + (1+ops.A[n])*ic*gt[n]
		gb[n] = gs[n]
		gc[n] = gt[n]
	}
}

func (prismTopology) refVerts() [][3]float64 {
	return [][3]float64{{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1}, {-1, -1, 1}, {-1, 1, 1}}
}

func (prismTopology) edges() [][2]int {
	return [][2]int{{0, 1}, {3, 2}, {0, 3}, {1, 2}, {4, 5}, {1, 4}, {0, 4}, {2, 5}, {3, 5}}
}

func (prismTopology) faces() [][]int {
	return [][]int{{0, 1, 2, 3}, {0, 1, 4}, {3, 2, 5}, {1, 2, 5, 4}, {0, 3, 5, 4}}
}

// Copy creates a prism sharing the geometry of p holding a new field.
func (p *Prism) Copy(field byte) Element {
	return &Prism{Base: p.copyBase(field)}
}
