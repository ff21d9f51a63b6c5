package elementlist

import (
	"fmt"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/notargets/HPKernel/element"
	"github.com/notargets/HPKernel/element/refops"
)

// Group collects the elements of a list that share one modal basis, so that
// their inner products can be computed with a single matrix product.
type Group struct {
	Key     refops.BasisKey
	Basis   *refops.Basis
	Members []int // list positions
}

// List owns a sequence of elements and the packed storage of their fields.
// Element i of plane 0 is At(i); the elements of the other Fourier planes
// are reached through Plane.
type List struct {
	elems  []element.Element
	planes [][]element.Element // planes[0] aliases elems
	phys   *Arena
	modes  *Arena
	nz     int
	groups []Group
	conn   *Connectivity
}

// New takes ownership of elems and packs their storage into one arena with
// nz Fourier planes. The current field values become plane 0.
func New(elems []element.Element, nz int) (l *List, err error) {
	if len(elems) == 0 {
		return nil, chk.Err("element list needs at least one element")
	}
	if nz < 1 {
		return nil, chk.Err("element list needs nz >= 1, got %d", nz)
	}
	for i, e := range elems {
		if e == nil {
			return nil, chk.Err("element list: element %d is nil", i)
		}
	}
	l = &List{elems: elems, nz: nz}
	l.groups = buildGroups(elems)
	l.CatMem()
	return
}

func buildGroups(elems []element.Element) (groups []Group) {
	index := make(map[*refops.Basis]int)
	for i, e := range elems {
		b := e.Basis()
		g, ok := index[b]
		if !ok {
			g = len(groups)
			index[b] = g
			groups = append(groups, Group{Key: b.BasisKey, Basis: b})
		}
		groups[g].Members = append(groups[g].Members, i)
	}
	return
}

// CatMem allocates fresh arenas and moves every element of every plane into
// them, keeping current values.
func (l *List) CatMem() {
	var (
		k         = len(l.elems)
		physSize  = make([]int, k)
		modesSize = make([]int, k)
	)
	for i, e := range l.elems {
		physSize[i], modesSize[i] = e.Qtot(), e.Nmodes()
	}
	l.phys, l.modes = newArena(physSize, l.nz), newArena(modesSize, l.nz)
	if len(l.planes) != l.nz {
		planes := make([][]element.Element, l.nz)
		copy(planes, l.planes)
		l.planes = planes
	}
	l.planes[0] = l.elems
	for p := 0; p < l.nz; p++ {
		if l.planes[p] == nil {
			l.planes[p] = make([]element.Element, k)
			for i, e := range l.elems {
				l.planes[p][i] = e.Copy(e.Field())
			}
		}
		for i, e := range l.planes[p] {
			e.MemShift(l.phys.Segment(p, i), l.modes.Segment(p, i))
		}
	}
}

// GenAux builds a list over the same mesh holding a new field. The new
// elements share geometry with l and start zeroed in the Physical state.
func (l *List) GenAux(field byte) (aux *List) {
	elems := make([]element.Element, len(l.elems))
	for i, e := range l.elems {
		elems[i] = e.Copy(field)
	}
	aux = &List{elems: elems, nz: l.nz, groups: l.groups, conn: l.conn}
	aux.CatMem()
	return
}

// Plane returns a single-plane list over Fourier plane p that shares storage
// with l.
func (l *List) Plane(p int) *List {
	if p < 0 || p >= l.nz {
		chk.Panic("plane %d out of range [0,%d)", p, l.nz)
	}
	return &List{
		elems:  l.planes[p],
		planes: [][]element.Element{l.planes[p]},
		phys:   l.phys.view(p),
		modes:  l.modes.view(p),
		nz:     1,
		groups: l.groups,
		conn:   l.conn,
	}
}

func (l *List) Len() int                    { return len(l.elems) }
func (l *List) At(i int) element.Element    { return l.elems[i] }
func (l *List) Elements() []element.Element { return l.elems }
func (l *List) Nz() int                     { return l.nz }
func (l *List) Groups() []Group             { return l.groups }
func (l *List) PhysArena() *Arena           { return l.phys }
func (l *List) ModesArena() *Arena          { return l.modes }
func (l *List) Connectivity() *Connectivity { return l.conn }
func (l *List) Field() byte                 { return l.elems[0].Field() }
func (l *List) Qtot() int                   { return l.phys.PlaneLen }
func (l *List) Nmodes() int                 { return l.modes.PlaneLen }

// SetState marks every element of plane 0.
func (l *List) SetState(s element.State) {
	for _, e := range l.elems {
		e.SetState(s)
	}
}

// DataLen is the number of modal values the field occupies in one plane.
func (l *List) DataLen() (n int) {
	for _, e := range l.elems {
		n += e.DataLen()
	}
	return
}

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("=== Element list field %c: %d elements, nz=%d ===\n",
		l.Field(), len(l.elems), l.nz))
	sb.WriteString(fmt.Sprintf("  Storage: %d physical, %d modal values per plane\n",
		l.phys.PlaneLen, l.modes.PlaneLen))
	for _, g := range l.groups {
		sb.WriteString(fmt.Sprintf("  Group %v%d q=%d,%d,%d: %d elements\n",
			g.Key.Shape, g.Key.Lmax, g.Key.Qa, g.Key.Qb, g.Key.Qc, len(g.Members)))
	}
	if l.conn != nil {
		sb.WriteString(fmt.Sprintf("  Connectivity: %d vertices, %d edges, %d sides (%d on the boundary)\n",
			l.conn.Nv, l.conn.Nedges, l.conn.Nsides, len(l.conn.Boundary())))
	}
	return sb.String()
}
