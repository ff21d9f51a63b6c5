package element

import "github.com/notargets/HPKernel/element/refops"

// Hex is the cube [-1,1]^3.
type Hex struct {
	Base
}

type hexTopology struct{}

func (hexTopology) refCoords(a, b, c float64) (r, s, t float64) { return a, b, c }

func (hexTopology) collapse(_ *refops.Operators, da, db, dc, dr, ds, dt []float64) {
	copy(dr, da)
	copy(ds, db)
	copy(dt, dc)
}

func (hexTopology) collapseT(_ *refops.Operators, gr, gs, gt, ga, gb, gc []float64) {
	copy(ga, gr)
	copy(gb, gs)
	copy(gc, gt)
}

func (hexTopology) refVerts() [][3]float64 {
	return [][3]float64{{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}
}

func (hexTopology) edges() [][2]int {
	return [][2]int{{0, 1}, {1, 2}, {3, 2}, {0, 3}, {0, 4}, {1, 5}, {2, 6}, {3, 7},
		{4, 5}, {5, 6}, {7, 6}, {4, 7}}
}

func (hexTopology) faces() [][]int {
	return [][]int{{0, 1, 2, 3}, {0, 1, 5, 4}, {1, 2, 6, 5}, {3, 2, 6, 7}, {0, 3, 7, 4}, {4, 5, 6, 7}}
}

// Copy creates a hexahedron sharing the geometry of h holding a new field.
func (h *Hex) Copy(field byte) Element {
	return &Hex{Base: h.copyBase(field)}
}
