package elementlist

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/notargets/HPKernel/element"
	"github.com/notargets/HPKernel/utils"
)

// match reports ErrMismatch unless o has the same elements as l, position
// by position. A nil o always matches.
func (l *List) match(o *List, name string) error {
	if o == nil {
		return nil
	}
	if o.Len() != l.Len() {
		return chk.Err("%s: list of %d elements combined with %d: %w", name, o.Len(), l.Len(), element.ErrMismatch)
	}
	for i, e := range l.elems {
		f := o.elems[i]
		if e.Shape() != f.Shape() || e.Lmax() != f.Lmax() ||
			e.Qa() != f.Qa() || e.Qb() != f.Qb() || e.Qc() != f.Qc() {
			return chk.Err("%s: element %d is %s, other list has %s: %w",
				name, i, e.Properties().ShortName, f.Properties().ShortName, element.ErrMismatch)
		}
	}
	return nil
}

func (l *List) matchAll(name string, others ...*List) error {
	for _, o := range others {
		if err := l.match(o, name); err != nil {
			return err
		}
	}
	return nil
}

func at(l *List, i int) element.Element {
	if l == nil {
		return nil
	}
	return l.elems[i]
}

// Grad writes the requested derivatives of every element into the matching
// elements of dx, dy, dz. Nil lists are skipped.
func (l *List) Grad(dx, dy, dz *List, dir element.Direction) error {
	if err := l.matchAll("Grad", dx, dy, dz); err != nil {
		return err
	}
	for i, e := range l.elems {
		e.Grad(at(dx, i), at(dy, i), at(dz, i), dir)
	}
	return nil
}

// GradModal is Grad computed from the modal coefficients.
func (l *List) GradModal(dx, dy, dz *List, dir element.Direction) error {
	if err := l.matchAll("GradModal", dx, dy, dz); err != nil {
		return err
	}
	for i, e := range l.elems {
		e.GradModal(at(dx, i), at(dy, i), at(dz, i), dir)
	}
	return nil
}

// GradT applies the weighted adjoint of Grad element by element.
func (l *List) GradT(dx, dy, dz *List, dir element.Direction, invW bool) error {
	if err := l.matchAll("GradT", dx, dy, dz); err != nil {
		return err
	}
	for i, e := range l.elems {
		e.GradT(at(dx, i), at(dy, i), at(dz, i), dir, invW)
	}
	return nil
}

// Iprod overwrites the modes of l with the inner products of the physical
// field of src.
func (l *List) Iprod(src *List) error {
	if err := l.match(src, "Iprod"); err != nil {
		return err
	}
	for i, e := range l.elems {
		e.Iprod(src.elems[i])
	}
	return nil
}

// IprodBatched is Iprod computed with one matrix product per group of
// elements sharing a basis.
func (l *List) IprodBatched(src *List) error {
	if err := l.match(src, "IprodBatched"); err != nil {
		return err
	}
	for _, g := range l.groups {
		var (
			V     = g.Basis.V.RawMatrix()
			k     = len(g.Members)
			qtot  = V.Cols
			nm    = V.Rows
			F     = make([]float64, k*qtot)
			C     = make([]float64, k*nm)
			elems = make([]element.Element, k)
		)
		for r, i := range g.Members {
			s := src.elems[i]
			if s.State() != element.Physical {
				chk.Panic("IprodBatched: source element %d field %c is in state %v, need %v",
					s.ID(), s.Field(), s.State(), element.Physical)
			}
			elems[r] = l.elems[i]
			utils.Dvmul(elems[r].Geometry().W, s.Phys(), F[r*qtot:(r+1)*qtot])
		}
		// C[k x nm] = F[k x qtot] V^T
		utils.Dgemm(false, true, k, nm, qtot, 1, F, qtot, V.Data, V.Stride, 0, C, nm)
		for r, e := range elems {
			copy(e.Modes(), C[r*nm:(r+1)*nm])
			e.SetState(element.Transformed)
		}
	}
	return nil
}

// TransToPhys evaluates every modal expansion at its quadrature points.
func (l *List) TransToPhys() {
	for _, e := range l.elems {
		e.TransToPhys()
	}
}

// TransToModal projects every physical field onto its modal basis.
func (l *List) TransToModal() error {
	for i, e := range l.elems {
		if err := e.TransToModal(); err != nil {
			return chk.Err("TransToModal: list element %d: %w", i, err)
		}
	}
	return nil
}

// NormLi returns the largest |u| over every element.
func (l *List) NormLi() (li float64) {
	for _, e := range l.elems {
		li = math.Max(li, e.NormLi())
	}
	return
}

// NormL2m sums the per-element numerators and measures.
func (l *List) NormL2m() (num, den float64) {
	for _, e := range l.elems {
		n, d := e.NormL2m()
		num += n
		den += d
	}
	return
}

// NormH1m sums the per-element H1 numerators and measures.
func (l *List) NormH1m() (num, den float64) {
	for _, e := range l.elems {
		n, d := e.NormH1m()
		num += n
		den += d
	}
	return
}

// NormL2 is sqrt(sum(num)/sum(den)) over the list.
func (l *List) NormL2() (float64, error) {
	return ratio(l.NormL2m())
}

// NormH1 is the H1 counterpart of NormL2.
func (l *List) NormH1() (float64, error) {
	return ratio(l.NormH1m())
}

func ratio(num, den float64) (float64, error) {
	if !(den > 0) {
		return 0, chk.Err("element list has measure %g: %w", den, element.ErrDegenerate)
	}
	return math.Sqrt(num / den), nil
}
