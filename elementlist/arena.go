package elementlist

import "github.com/cpmech/gosl/chk"

// Arena is one contiguous buffer holding a segment per element, replicated
// once per Fourier plane.
// Layout: [Plane 0: Elem 0][Elem 1]...[Plane 1: Elem 0]...
type Arena struct {
	Data []float64

	// Element i of plane p starts at Data[p*PlaneLen+Offsets[i]]
	Offsets  []int
	PlaneLen int
	Planes   int
}

func newArena(sizes []int, nz int) (a *Arena) {
	a = &Arena{Offsets: make([]int, len(sizes)+1), Planes: nz}
	for i, n := range sizes {
		a.Offsets[i+1] = a.Offsets[i] + n
	}
	a.PlaneLen = a.Offsets[len(sizes)]
	a.Data = make([]float64, nz*a.PlaneLen)
	return
}

// Plane returns the storage of every element in plane p.
func (a *Arena) Plane(p int) []float64 {
	if p < 0 || p >= a.Planes {
		chk.Panic("plane %d out of range [0,%d)", p, a.Planes)
	}
	return a.Data[p*a.PlaneLen : (p+1)*a.PlaneLen]
}

// Segment returns the storage of element i in plane p.
func (a *Arena) Segment(p, i int) []float64 {
	plane := a.Plane(p)
	return plane[a.Offsets[i]:a.Offsets[i+1]:a.Offsets[i+1]]
}

// view exposes plane p as a single-plane arena sharing the same storage.
func (a *Arena) view(p int) *Arena {
	return &Arena{Data: a.Plane(p), Offsets: a.Offsets, PlaneLen: a.PlaneLen, Planes: 1}
}
