package element

import (
	"fmt"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/notargets/HPKernel/element/refops"
	"github.com/notargets/HPKernel/utils"
)

// topology holds what differs between element shapes.
type topology interface {
	// refCoords maps collapsed coordinates to reference coordinates.
	refCoords(a, b, c float64) (r, s, t float64)
	// collapse turns derivatives along a, b, c into derivatives along r, s, t.
	collapse(ops *refops.Operators, da, db, dc, dr, ds, dt []float64)
	// collapseT applies the transpose of collapse.
	collapseT(ops *refops.Operators, gr, gs, gt, ga, gb, gc []float64)
	// refVerts lists reference vertex coordinates in vertex-mode order.
	refVerts() [][3]float64
	edges() [][2]int
	faces() [][]int
}

// Base carries the state common to every topology. A Base without a
// topology is abstract: its numerical operations panic.
type Base struct {
	id    int
	field byte
	state State
	props ElementProperties
	cache *refops.Cache
	ops   *refops.Operators
	basis *refops.Basis
	geom  *Geometry
	topo  topology
	phys  []float64
	modes []float64
}

// Options describes a new element.
type Options struct {
	ID    int
	Field byte
	Lmax  int
	// Quadrature points per direction; zero selects the default for Lmax.
	Qa, Qb, Qc int
	// Verts holds the physical vertex coordinates in vertex-mode order.
	Verts [][]float64
	Curve Curve
}

// New builds an element of the given shape. The element starts in the
// Physical state with zeroed storage.
func New(cache *refops.Cache, shape utils.GeometryType, opt Options) (Element, error) {
	var topo topology
	switch shape {
	case utils.Tri:
		topo = triTopology{}
	case utils.Quad:
		topo = quadTopology{}
	case utils.Tet:
		topo = tetTopology{}
	case utils.Pyr:
		topo = pyrTopology{}
	case utils.Prism:
		topo = prismTopology{}
	case utils.Hex:
		topo = hexTopology{}
	default:
		return nil, wrapf(ErrUnsupported, "shape %v", shape)
	}
	if opt.Lmax < 2 {
		return nil, chk.Err("element %d: lmax=%d must be at least 2", opt.ID, opt.Lmax)
	}
	qa, qb, qc := refops.DefaultQuadrature(shape, opt.Lmax)
	for _, q := range []struct {
		name     string
		set, def *int
	}{{"qa", &opt.Qa, &qa}, {"qb", &opt.Qb, &qb}, {"qc", &opt.Qc, &qc}} {
		switch {
		case *q.set == 0:
		case *q.set < 0 || *q.def == 0:
			return nil, chk.Err("element %d: %w", opt.ID,
				wrapf(ErrMismatch, "%s=%d on %v, which has %s=%d", q.name, *q.set, shape, q.name, *q.def))
		default:
			*q.def = *q.set
		}
	}
	basis := cache.GetBasis(shape, opt.Lmax, qa, qb, qc)
	geom, err := newGeometry(topo, basis, opt.Verts, opt.Curve)
	if err != nil {
		return nil, chk.Err("element %d: %w", opt.ID, err)
	}
	b := Base{
		id:    opt.ID,
		field: opt.Field,
		state: Physical,
		props: newProperties(basis),
		cache: cache,
		ops:   basis.Ops,
		basis: basis,
		geom:  geom,
		topo:  topo,
		phys:  make([]float64, basis.Ops.Qtot()),
		modes: make([]float64, basis.Nmodes()),
	}
	switch shape {
	case utils.Tri:
		return &Tri{Base: b}, nil
	case utils.Quad:
		return &Quad{Base: b}, nil
	case utils.Tet:
		return &Tet{Base: b}, nil
	case utils.Pyr:
		return &Pyr{Base: b}, nil
	case utils.Prism:
		return &Prism{Base: b}, nil
	}
	return &Hex{Base: b}, nil
}

// NewReference builds an element on the reference shape itself.
func NewReference(cache *refops.Cache, shape utils.GeometryType, opt Options) (Element, error) {
	var verts [][3]float64
	switch shape {
	case utils.Tri:
		verts = triTopology{}.refVerts()
	case utils.Quad:
		verts = quadTopology{}.refVerts()
	case utils.Tet:
		verts = tetTopology{}.refVerts()
	case utils.Pyr:
		verts = pyrTopology{}.refVerts()
	case utils.Prism:
		verts = prismTopology{}.refVerts()
	case utils.Hex:
		verts = hexTopology{}.refVerts()
	default:
		return nil, wrapf(ErrUnsupported, "shape %v", shape)
	}
	opt.Verts = make([][]float64, len(verts))
	for i, v := range verts {
		opt.Verts[i] = v[:shape.Dims()]
	}
	return New(cache, shape, opt)
}

func (b *Base) copyBase(field byte) (c Base) {
	c = *b
	c.field = field
	c.state = Physical
	c.phys = make([]float64, len(b.phys))
	c.modes = make([]float64, len(b.modes))
	return
}

// virtual returns the topology, failing on an abstract element.
func (b *Base) virtual(name string) topology {
	if b.topo == nil {
		chk.Panic("accessing virtual function %s on an element without topology", name)
	}
	return b.topo
}

func (b *Base) require(s State, name string) {
	if b.state != s {
		chk.Panic("%s: element %d field %c is in state %v, need %v", name, b.id, b.field, b.state, s)
	}
}

// compatible panics unless o shares the shape, order and quadrature of b.
func (b *Base) compatible(o Element, name string) {
	if o.Shape() != b.props.Type || o.Lmax() != b.props.Lmax ||
		o.Qa() != b.props.Qa || o.Qb() != b.props.Qb || o.Qc() != b.props.Qc {
		chk.Panic("%s: element %d (%s q=%d,%d,%d) does not match element %d (%s q=%d,%d,%d)",
			name, o.ID(), o.Properties().ShortName, o.Qa(), o.Qb(), o.Qc(),
			b.id, b.props.ShortName, b.props.Qa, b.props.Qb, b.props.Qc)
	}
}

func (b *Base) ID() int                       { return b.id }
func (b *Base) Field() byte                   { return b.field }
func (b *Base) Shape() utils.GeometryType     { return b.props.Type }
func (b *Base) Properties() ElementProperties { return b.props }
func (b *Base) State() State                  { return b.state }
func (b *Base) SetState(s State)              { b.state = s }
func (b *Base) Lmax() int                     { return b.props.Lmax }
func (b *Base) Nmodes() int                   { return b.props.Nmodes }
func (b *Base) Nbmodes() int                  { return b.props.Nbmodes }
func (b *Base) Qa() int                       { return b.props.Qa }
func (b *Base) Qb() int                       { return b.props.Qb }
func (b *Base) Qc() int                       { return b.props.Qc }
func (b *Base) Qtot() int                     { return b.props.Qtot }
func (b *Base) Nverts() int                   { return b.props.NVerts }
func (b *Base) Nedges() int                   { return b.props.NEdges }
func (b *Base) Nfaces() int                   { return b.props.NFaces }
func (b *Base) Phys() []float64               { return b.phys }
func (b *Base) Modes() []float64              { return b.modes }
func (b *Base) Geometry() *Geometry           { return b.geom }
func (b *Base) Operators() *refops.Operators  { return b.ops }
func (b *Base) Basis() *refops.Basis          { return b.basis }

// DataLen is the number of values needed to store the field.
func (b *Base) DataLen() int { return b.props.Nmodes }

// MemShift points the element storage at new backing slices, which must
// have Qtot and Nmodes entries. Current values are copied over.
func (b *Base) MemShift(phys, modes []float64) {
	if len(phys) != b.props.Qtot || len(modes) != b.props.Nmodes {
		chk.Panic("MemShift: element %d needs %d physical and %d modal values, got %d and %d",
			b.id, b.props.Qtot, b.props.Nmodes, len(phys), len(modes))
	}
	copy(phys, b.phys)
	copy(modes, b.modes)
	b.phys, b.modes = phys, modes
}

// Copy panics on an abstract element; every topology provides its own.
func (b *Base) Copy(byte) Element {
	b.virtual("Copy")
	chk.Panic("Copy is not provided by %s", b.props.ShortName)
	return nil
}

// Edges returns the vertex pairs of every edge in edge-mode order.
func (b *Base) Edges() [][2]int { return b.virtual("Edges").edges() }

// Faces returns the vertices of every face in face-mode order.
func (b *Base) Faces() [][]int { return b.virtual("Faces").faces() }

// RefCoords returns the reference coordinates of every quadrature point.
func (b *Base) RefCoords() (r, s, t []float64) {
	topo := b.virtual("RefCoords")
	n := b.props.Qtot
	r, s, t = make([]float64, n), make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		r[i], s[i], t[i] = topo.refCoords(b.ops.A[i], b.ops.B[i], b.ops.C[i])
	}
	return
}

func (b *Base) String() string {
	var sb strings.Builder
	p := b.props
	sb.WriteString(fmt.Sprintf("=== %s element %d field %c ===\n", p.ShortName, b.id, b.field))
	sb.WriteString(fmt.Sprintf("  Name: %s\n", p.Name))
	sb.WriteString(fmt.Sprintf("  State: %v\n", b.state))
	sb.WriteString(fmt.Sprintf("  Modes: %d (boundary %d, interior %d, per edge %d)\n",
		p.Nmodes, p.Nbmodes, p.NIm, p.NEm))
	sb.WriteString(fmt.Sprintf("  Vertices/Edges/Faces: %d/%d/%d\n", p.NVerts, p.NEdges, p.NFaces))
	sb.WriteString(fmt.Sprintf("  Quadrature: qa=%d qb=%d qc=%d (qtot %d)\n", p.Qa, p.Qb, p.Qc, p.Qtot))
	if b.geom != nil {
		kind := "straight"
		if b.geom.Curved {
			kind = "curved"
		}
		if !b.geom.Affine() {
			kind += ", per-point factors"
		}
		sb.WriteString(fmt.Sprintf("  Geometry: %s, measure %.6g\n", kind, b.geom.Measure()))
	}
	return sb.String()
}
