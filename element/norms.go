package element

import (
	"math"

	"github.com/notargets/HPKernel/utils"
)

// NormLi returns max |u| over the quadrature points.
func (b *Base) NormLi() float64 {
	b.virtual("NormLi")
	b.require(Physical, "NormLi")
	return utils.MaxAbs(b.phys)
}

// NormL2m returns sum(W u^2) and the measure sum(W) so that norms of several
// elements can be combined before dividing.
func (b *Base) NormL2m() (num, den float64) {
	b.virtual("NormL2m")
	b.require(Physical, "NormL2m")
	for n, w := range b.geom.W {
		num += w * b.phys[n] * b.phys[n]
		den += w
	}
	return
}

// NormL2 returns sqrt(sum(W u^2) / sum(W)).
func (b *Base) NormL2() (float64, error) {
	return b.ratio(b.NormL2m())
}

// NormH1m is NormL2m with the squared gradient added to the numerator.
func (b *Base) NormH1m() (num, den float64) {
	topo := b.virtual("NormH1m")
	b.require(Physical, "NormH1m")
	var (
		d    = refDeriv(topo, b.ops, b.phys)
		grad = make([]float64, b.props.Qtot)
	)
	num, den = b.NormL2m()
	for i := 0; i < int(b.props.Dimensions); i++ {
		m := b.geom.metric(i)
		mulFactor(m[0], d[0], grad)
		for j := 1; j < 3; j++ {
			if d[j] != nil {
				mulAddFactor(m[j], d[j], grad)
			}
		}
		for n, w := range b.geom.W {
			num += w * grad[n] * grad[n]
		}
	}
	return
}

// NormH1 returns sqrt((sum(W u^2) + sum(W |grad u|^2)) / sum(W)).
func (b *Base) NormH1() (float64, error) {
	return b.ratio(b.NormH1m())
}

func (b *Base) ratio(num, den float64) (float64, error) {
	if !(den > 0) {
		return 0, wrapf(ErrDegenerate, "element %d has measure %g", b.id, den)
	}
	return math.Sqrt(num / den), nil
}
