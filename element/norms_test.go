package element

import (
	"errors"
	"math"
	"testing"

	"github.com/notargets/HPKernel/element/refops"
	"github.com/notargets/HPKernel/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangleNormL2(t *testing.T) {
	c := newTestCache()
	e, err := New(c, utils.Tri, Options{Lmax: 4, Qa: 5, Qb: 5,
		Verts: [][]float64{{0, 0}, {1, 0}, {0, 1}}})
	require.NoError(t, err)
	setField(e, func(x, y, z float64) float64 { return x * y })

	num, den := e.NormL2m()
	assert.InDelta(t, 1./180, num, 1.e-14, "∫x²y²")
	assert.InDelta(t, 0.5, den, 1.e-14, "area")
	l2, err := e.NormL2()
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(1./90), l2, 1.e-13)
}

func TestQuadConstantNorms(t *testing.T) {
	c := newTestCache()
	e, err := NewReference(c, utils.Quad, Options{Lmax: 3})
	require.NoError(t, err)
	setField(e, func(x, y, z float64) float64 { return 5 })

	num, den := e.NormH1m()
	assert.InDelta(t, 25, num/den, 1.e-12)
	assert.InDelta(t, 4, den, 1.e-12)
	l2, err := e.NormL2()
	require.NoError(t, err)
	assert.InDelta(t, 5, l2, 1.e-12)
	assert.InDelta(t, 5, e.NormLi(), 1.e-14)
}

func TestReferenceNorms(t *testing.T) {
	// mean of r² over each reference shape
	want := map[utils.GeometryType]float64{
		utils.Tri:   1. / 3,
		utils.Quad:  1. / 3,
		utils.Tet:   2. / 5,
		utils.Pyr:   3. / 10,
		utils.Prism: 1. / 3,
		utils.Hex:   1. / 3,
	}
	for _, lzero := range []bool{false, true} {
		c := refops.NewCache(lzero)
		for _, shape := range utils.AllGeometries {
			e, err := NewReference(c, shape, Options{Lmax: 4})
			require.NoError(t, err)
			setField(e, func(x, y, z float64) float64 { return x })

			l2, err := e.NormL2()
			require.NoError(t, err)
			assert.InDeltaf(t, math.Sqrt(want[shape]), l2, 1.e-12, "%v lzero=%v", shape, lzero)
			h1, err := e.NormH1()
			require.NoError(t, err)
			assert.InDeltaf(t, math.Sqrt(want[shape]+1), h1, 1.e-12, "%v lzero=%v", shape, lzero)
			assert.InDelta(t, 1, e.NormLi(), 1.e-12)
		}
	}
}

func TestH1OnDistortedElements(t *testing.T) {
	c := newTestCache()
	for _, shape := range utils.AllGeometries {
		e := build(t, c, shape, 4, distorted[shape], nil)
		setField(e, func(x, y, z float64) float64 { return 3 })
		l2num, den := e.NormL2m()
		h1num, den2 := e.NormH1m()
		assert.Equal(t, den, den2)
		assert.InDeltaf(t, l2num, h1num, 1.e-9*l2num, "%v", shape)
		assert.InDelta(t, e.Geometry().Measure(), den, 1.e-12)

		// u = x + 2y has |grad u|² = 5 everywhere
		setField(e, func(x, y, z float64) float64 { return x + 2*y })
		l2num, _ = e.NormL2m()
		h1num, _ = e.NormH1m()
		assert.InDeltaf(t, 5*den, h1num-l2num, 1.e-9, "%v", shape)
	}
}

func TestNormOfZeroMeasure(t *testing.T) {
	var b Base
	_, err := b.ratio(1, 0)
	assert.True(t, errors.Is(err, ErrDegenerate))
	v, err := b.ratio(8, 2)
	require.NoError(t, err)
	assert.Equal(t, 2., v)
}
