package elementlist

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/notargets/HPKernel/element"
)

// Connectivity numbers the vertices, edges and sides shared between the
// elements of a list. Sides are faces for 3D elements and edges for 2D ones.
// Following the usual DG convention a side on the boundary is connected to
// itself: EToE[k][s] == k and EToF[k][s] == s.
type Connectivity struct {
	Nv     int // unique vertices
	Nedges int // unique edges
	Nsides int // unique sides

	EToV    [][]int // element, local vertex → global vertex
	EToEdge [][]int // element, local edge → global edge
	EToSide [][]int // element, local side → global side
	EToE    [][]int // element, local side → neighbor element
	EToF    [][]int // element, local side → side index within the neighbor
}

type sideKey [4]int

func newSideKey(v []int) (key sideKey) {
	key = sideKey{-1, -1, -1, -1}
	copy(key[:], v)
	sort.Ints(key[:len(v)])
	return
}

// Connect matches vertices that lie within tol of each other and derives the
// shared edges and sides. The result is kept on the list.
func (l *List) Connect(tol float64) (*Connectivity, error) {
	dims := l.elems[0].Shape().Dims()
	for i, e := range l.elems {
		if e.Shape().Dims() != dims {
			return nil, chk.Err("Connect: element %d is %dD in a %dD list: %w",
				i, e.Shape().Dims(), dims, element.ErrMismatch)
		}
	}
	c := &Connectivity{
		EToV:    make([][]int, len(l.elems)),
		EToEdge: make([][]int, len(l.elems)),
		EToSide: make([][]int, len(l.elems)),
		EToE:    make([][]int, len(l.elems)),
		EToF:    make([][]int, len(l.elems)),
	}
	c.Nv = c.numberVertices(l.elems, tol)

	var (
		edgeIDs = make(map[sideKey]int)
		sideIDs = make(map[sideKey]int)
		owners  [][]int // global side → element, local side pairs
	)
	for k, e := range l.elems {
		for _, ed := range e.Edges() {
			key := newSideKey([]int{c.EToV[k][ed[0]], c.EToV[k][ed[1]]})
			id, ok := edgeIDs[key]
			if !ok {
				id = len(edgeIDs)
				edgeIDs[key] = id
			}
			c.EToEdge[k] = append(c.EToEdge[k], id)
		}
		sides := e.Faces()
		if dims == 2 {
			sides = sides[:0:0]
			for _, ed := range e.Edges() {
				sides = append(sides, []int{ed[0], ed[1]})
			}
		}
		for s, sv := range sides {
			gv := make([]int, len(sv))
			for i, v := range sv {
				gv[i] = c.EToV[k][v]
			}
			key := newSideKey(gv)
			id, ok := sideIDs[key]
			if !ok {
				id = len(sideIDs)
				sideIDs[key] = id
				owners = append(owners, nil)
			}
			if len(owners[id]) == 4 {
				return nil, chk.Err("Connect: side %v is shared by more than two elements: %w",
					gv, element.ErrMismatch)
			}
			owners[id] = append(owners[id], k, s)
			c.EToSide[k] = append(c.EToSide[k], id)
			c.EToE[k] = append(c.EToE[k], k)
			c.EToF[k] = append(c.EToF[k], s)
		}
	}
	for _, o := range owners {
		if len(o) == 4 {
			c.EToE[o[0]][o[1]], c.EToF[o[0]][o[1]] = o[2], o[3]
			c.EToE[o[2]][o[3]], c.EToF[o[2]][o[3]] = o[0], o[1]
		}
	}
	c.Nedges, c.Nsides = len(edgeIDs), len(sideIDs)
	l.conn = c
	return c, nil
}

// numberVertices assigns one global id to every cluster of vertices within
// tol of the first vertex of the cluster, sweeping in order of increasing x.
func (c *Connectivity) numberVertices(elems []element.Element, tol float64) (nv int) {
	type point struct {
		k, v int
		x    [3]float64
	}
	var pts []point
	for k, e := range elems {
		c.EToV[k] = make([]int, e.Nverts())
		for v, x := range e.Geometry().Verts {
			pts = append(pts, point{k, v, x})
		}
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].x[0] < pts[j].x[0] })
	var first [][3]float64
	near := func(a, b [3]float64) bool {
		return math.Abs(a[0]-b[0]) <= tol && math.Abs(a[1]-b[1]) <= tol && math.Abs(a[2]-b[2]) <= tol
	}
	ids := make([]int, len(pts))
	for i, p := range pts {
		ids[i] = -1
		// a cluster's first vertex lies within tol of every member, so within 2*tol of p
		for j := i - 1; j >= 0 && p.x[0]-pts[j].x[0] <= 2*tol; j-- {
			if near(p.x, first[ids[j]]) {
				ids[i] = ids[j]
				break
			}
		}
		if ids[i] < 0 {
			ids[i] = nv
			first = append(first, p.x)
			nv++
		}
		c.EToV[p.k][p.v] = ids[i]
	}
	return
}

// Neighbor returns the element and local side across side s of element k.
// ok is false on the boundary.
func (c *Connectivity) Neighbor(k, s int) (nbr, nbrSide int, ok bool) {
	nbr, nbrSide = c.EToE[k][s], c.EToF[k][s]
	return nbr, nbrSide, nbr != k || nbrSide != s
}

// Side is one local side of one element.
type Side struct {
	Elem, Side int
}

// Boundary lists the sides without a neighbor.
func (c *Connectivity) Boundary() (b []Side) {
	for k := range c.EToE {
		for s := range c.EToE[k] {
			if _, _, ok := c.Neighbor(k, s); !ok {
				b = append(b, Side{k, s})
			}
		}
	}
	return
}

// Verify checks that neighbor links are symmetric and that every global
// side is used once on the boundary or twice in the interior.
func (c *Connectivity) Verify() error {
	uses := make([]int, c.Nsides)
	for k := range c.EToE {
		for s := range c.EToE[k] {
			uses[c.EToSide[k][s]]++
			nk, ns, ok := c.Neighbor(k, s)
			if !ok {
				continue
			}
			if c.EToE[nk][ns] != k || c.EToF[nk][ns] != s {
				return chk.Err("element %d side %d links to element %d side %d which links back to %d side %d",
					k, s, nk, ns, c.EToE[nk][ns], c.EToF[nk][ns])
			}
			if c.EToSide[nk][ns] != c.EToSide[k][s] {
				return chk.Err("element %d side %d and its neighbor have different side ids", k, s)
			}
		}
	}
	var total, boundary int
	for _, n := range uses {
		total += n
		if n == 1 {
			boundary++
		}
	}
	if total != 2*c.Nsides-boundary {
		return chk.Err("conservation error: %d local sides for %d global sides, %d on the boundary",
			total, c.Nsides, boundary)
	}
	return nil
}

// Neighbor returns the element across side s of element k. Connect must have
// been called.
func (l *List) Neighbor(k, s int) (nbr, nbrSide int, ok bool) {
	if l.conn == nil {
		chk.Panic("Neighbor: element list has no connectivity, call Connect first")
	}
	return l.conn.Neighbor(k, s)
}
