package element

import "github.com/notargets/HPKernel/element/refops"

// Quad is the square [-1,1]^2; its collapsed and reference coordinates agree.
type Quad struct {
	Base
}

type quadTopology struct{}

func (quadTopology) refCoords(a, b, _ float64) (r, s, t float64) { return a, b, 0 }

func (quadTopology) collapse(_ *refops.Operators, da, db, _, dr, ds, _ []float64) {
	copy(dr, da)
	copy(ds, db)
}

func (quadTopology) collapseT(_ *refops.Operators, gr, gs, _, ga, gb, _ []float64) {
	copy(ga, gr)
	copy(gb, gs)
}

func (quadTopology) refVerts() [][3]float64 {
	return [][3]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
}

func (quadTopology) edges() [][2]int { return [][2]int{{0, 1}, {1, 2}, {3, 2}, {0, 3}} }
func (quadTopology) faces() [][]int  { return [][]int{{0, 1, 2, 3}} }

// Copy creates a quadrilateral sharing the geometry of q holding a new field.
func (q *Quad) Copy(field byte) Element {
	return &Quad{Base: q.copyBase(field)}
}
