package element

import (
	"github.com/cpmech/gosl/chk"
	"github.com/notargets/HPKernel/utils"
	"gonum.org/v1/gonum/mat"
)

// Iprod overwrites the modal storage of b with the inner products of the
// physical field of src against every mode, weighted by the quadrature
// weights and Jacobian of b. src may be b itself.
func (b *Base) Iprod(src Element) {
	b.virtual("Iprod")
	b.compatible(src, "Iprod")
	if src.State() != Physical {
		chk.Panic("Iprod: source element %d field %c is in state %v, need %v",
			src.ID(), src.Field(), src.State(), Physical)
	}
	f := make([]float64, b.props.Qtot)
	utils.Dvmul(b.geom.W, src.Phys(), f)
	b.basis.Iprod(f, b.modes)
	b.state = Transformed
}

// TransToPhys evaluates the modal expansion at the quadrature points.
func (b *Base) TransToPhys() {
	b.virtual("TransToPhys")
	b.require(Transformed, "TransToPhys")
	b.basis.BwdTrans(b.modes, b.phys)
	b.state = Physical
}

// TransToModal finds the modal coefficients whose expansion is the L2
// projection of the physical field.
func (b *Base) TransToModal() error {
	b.virtual("TransToModal")
	b.require(Physical, "TransToModal")
	ch, err := b.geom.massCholesky(b.basis)
	if err != nil {
		return err
	}
	var (
		n   = b.props.Nmodes
		rhs = make([]float64, n)
		f   = make([]float64, b.props.Qtot)
	)
	utils.Dvmul(b.geom.W, b.phys, f)
	b.basis.Iprod(f, rhs)
	x := mat.NewVecDense(n, b.modes)
	if err = ch.SolveVecTo(x, mat.NewVecDense(n, rhs)); err != nil {
		return wrapf(ErrDegenerate, "element %d mass solve: %v", b.id, err)
	}
	b.state = Transformed
	return nil
}
