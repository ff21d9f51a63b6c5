package element

import (
	"github.com/cpmech/gosl/chk"
	"github.com/notargets/HPKernel/utils"
)

// outputs selects which of dx, dy, dz a direction asks for.
func (b *Base) outputs(dx, dy, dz Element, dir Direction, name string) (outs [3]Element) {
	switch dir {
	case DirX:
		outs[0] = dx
	case DirY:
		outs[1] = dy
	case DirZ:
		outs[2] = dz
	case DirAll:
		outs = [3]Element{dx, dy, dz}
	default:
		chk.Panic("%s: unknown direction %q", name, byte(dir))
	}
	for _, o := range outs {
		if o != nil {
			b.compatible(o, name)
		}
	}
	return
}

// metric returns the factors ∂ξ_j/∂x_d of Cartesian direction d.
func (g *Geometry) metric(d int) [3]Factor {
	switch d {
	case 0:
		return [3]Factor{g.Rx, g.Sx, g.Tx}
	case 1:
		return [3]Factor{g.Ry, g.Sy, g.Ty}
	}
	return [3]Factor{g.Rz, g.Sz, g.Tz}
}

// chain combines reference derivatives into the requested Cartesian ones.
func (b *Base) chain(d [3][]float64, outs [3]Element) {
	for i, o := range outs {
		if o == nil {
			continue
		}
		var (
			m   = b.geom.metric(i)
			out = o.Phys()
		)
		mulFactor(m[0], d[0], out)
		for j := 1; j < 3; j++ {
			if d[j] != nil {
				mulAddFactor(m[j], d[j], out)
			}
		}
		o.SetState(Physical)
	}
}

// Grad computes the Cartesian derivatives of the physical field.
func (b *Base) Grad(dx, dy, dz Element, dir Direction) {
	topo := b.virtual("Grad")
	b.require(Physical, "Grad")
	outs := b.outputs(dx, dy, dz, dir, "Grad")
	if outs == [3]Element{} {
		return
	}
	b.chain(refDeriv(topo, b.ops, b.phys), outs)
}

// GradModal computes the Cartesian derivatives of the modal expansion.
func (b *Base) GradModal(dx, dy, dz Element, dir Direction) {
	topo := b.virtual("GradModal")
	b.require(Transformed, "GradModal")
	outs := b.outputs(dx, dy, dz, dir, "GradModal")
	if outs == [3]Element{} {
		return
	}
	var (
		p     = b.props
		basis = b.cache.DerBasis(p.Type, p.Lmax, p.Qa, p.Qb, p.Qc)
		dims  = int(p.Dimensions)
		c, d  [3][]float64
	)
	for i := 0; i < dims; i++ {
		c[i] = make([]float64, p.Qtot)
		d[i] = make([]float64, p.Qtot)
		basis.BwdTransDeriv(i, b.modes, c[i])
	}
	topo.collapse(b.ops, c[0], c[1], c[2], d[0], d[1], d[2])
	b.chain(d, outs)
}

// GradT computes, for every requested direction, out = G^T (W u) where G is
// the Cartesian derivative and W the quadrature weights including the
// Jacobian, so that sum(out*v) = sum(W*u*G(v)). With invW the result is
// divided by W.
func (b *Base) GradT(dx, dy, dz Element, dir Direction, invW bool) {
	topo := b.virtual("GradT")
	b.require(Physical, "GradT")
	outs := b.outputs(dx, dy, dz, dir, "GradT")
	if outs == [3]Element{} {
		return
	}
	var (
		p    = b.props
		dims = int(p.Dimensions)
		W    = b.geom.W
		wu   = make([]float64, p.Qtot)
		g, c [3][]float64
	)
	utils.Dvmul(W, b.phys, wu)
	for j := 0; j < dims; j++ {
		g[j] = make([]float64, p.Qtot)
		c[j] = make([]float64, p.Qtot)
	}
	for i, o := range outs {
		if o == nil {
			continue
		}
		m := b.geom.metric(i)
		for j := 0; j < dims; j++ {
			mulFactor(m[j], wu, g[j])
		}
		topo.collapseT(b.ops, g[0], g[1], g[2], c[0], c[1], c[2])
		out := o.Phys()
		b.ops.DirDerivT(c[0], c[1], c[2], out)
		if invW {
			for n := range out {
				out[n] /= W[n]
			}
		}
		o.SetState(Physical)
	}
}
