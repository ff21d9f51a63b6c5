package elementlist

import (
	"errors"
	"testing"

	"github.com/notargets/HPKernel/element"
	"github.com/notargets/HPKernel/element/refops"
	"github.com/notargets/HPKernel/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cube(x0, y0, z0 float64) [][]float64 {
	return [][]float64{
		{x0, y0, z0}, {x0 + 1, y0, z0}, {x0 + 1, y0 + 1, z0}, {x0, y0 + 1, z0},
		{x0, y0, z0 + 1}, {x0 + 1, y0, z0 + 1}, {x0 + 1, y0 + 1, z0 + 1}, {x0, y0 + 1, z0 + 1},
	}
}

func TestConnect(t *testing.T) {
	c := refops.NewCache(false)
	tests := []struct {
		name                 string
		cells                []cell
		nv, nedges, nsides   int
		boundary             int
		from, fromSide       int
		wantNbr, wantNbrSide int
	}{
		{
			name:  "two triangles",
			cells: []cell{{utils.Tri, 3, [][]float64{{0, 0}, {1, 0}, {0, 1}}}, {utils.Tri, 3, [][]float64{{1, 1}, {0, 1}, {1, 0}}}},
			nv:    4, nedges: 5, nsides: 5, boundary: 4,
			from: 0, fromSide: 1, wantNbr: 1, wantNbrSide: 1,
		},
		{
			name: "triangle and quad",
			cells: []cell{
				{utils.Quad, 3, [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}},
				{utils.Tri, 3, [][]float64{{1, 0}, {2, 0}, {1, 1}}},
			},
			nv: 5, nedges: 6, nsides: 6, boundary: 5,
			from: 0, fromSide: 1, wantNbr: 1, wantNbrSide: 2,
		},
		{
			name:  "two hexes",
			cells: []cell{{utils.Hex, 3, cube(0, 0, 0)}, {utils.Hex, 3, cube(1, 0, 0)}},
			nv:    12, nedges: 20, nsides: 11, boundary: 10,
			from: 0, fromSide: 2, wantNbr: 1, wantNbrSide: 4,
		},
		{
			name: "hex under pyramid",
			cells: []cell{
				{utils.Hex, 3, cube(0, 0, 0)},
				{utils.Pyr, 3, [][]float64{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}, {0.5, 0.5, 2}}},
			},
			nv: 9, nedges: 16, nsides: 10, boundary: 9,
			from: 0, fromSide: 5, wantNbr: 1, wantNbrSide: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newList(t, c, 1, tt.cells...)
			conn, err := l.Connect(1.e-9)
			require.NoError(t, err)
			assert.Same(t, conn, l.Connectivity())
			require.NoError(t, conn.Verify())
			assert.Equal(t, tt.nv, conn.Nv)
			assert.Equal(t, tt.nedges, conn.Nedges)
			assert.Equal(t, tt.nsides, conn.Nsides)
			assert.Len(t, conn.Boundary(), tt.boundary)

			nbr, side, ok := l.Neighbor(tt.from, tt.fromSide)
			require.True(t, ok)
			assert.Equal(t, tt.wantNbr, nbr)
			assert.Equal(t, tt.wantNbrSide, side)
			back, backSide, ok := l.Neighbor(nbr, side)
			require.True(t, ok)
			assert.Equal(t, []int{tt.from, tt.fromSide}, []int{back, backSide})

			_, _, ok = l.Neighbor(0, 0)
			if tt.from != 0 || tt.fromSide != 0 {
				assert.False(t, ok)
			}
		})
	}
}

func TestConnectTolerance(t *testing.T) {
	c := refops.NewCache(false)
	l := newList(t, c, 1,
		cell{utils.Tri, 3, [][]float64{{0, 0}, {1, 0}, {0, 1}}},
		cell{utils.Tri, 3, [][]float64{{1, 1}, {1.e-12, 1}, {1, 1.e-12}}},
	)
	conn, err := l.Connect(1.e-9)
	require.NoError(t, err)
	assert.Equal(t, 4, conn.Nv)
	assert.Equal(t, conn.EToV[0][1], conn.EToV[1][2])

	conn, err = l.Connect(1.e-14)
	require.NoError(t, err)
	assert.Equal(t, 6, conn.Nv)
	assert.Len(t, conn.Boundary(), 6)
}

func TestConnectDoesNotChainVertices(t *testing.T) {
	const tol = 1.e-9
	c := refops.NewCache(false)
	l := newList(t, c, 1,
		cell{utils.Tri, 3, [][]float64{{0, 0}, {1, 0}, {0, 1}}},
		cell{utils.Tri, 3, [][]float64{{1 + 0.6*tol, 0}, {1, 1}, {0, 1}}},
		cell{utils.Tri, 3, [][]float64{{1 + 1.2*tol, 0}, {2, 0}, {1, 1}}},
	)
	conn, err := l.Connect(tol)
	require.NoError(t, err)
	assert.Equal(t, 6, conn.Nv)
	assert.Equal(t, conn.EToV[0][1], conn.EToV[1][0])
	assert.NotEqual(t, conn.EToV[1][0], conn.EToV[2][0])
	assert.Equal(t, conn.EToV[1][1], conn.EToV[2][2])

	conn, err = l.Connect(10 * tol)
	require.NoError(t, err)
	assert.Equal(t, 5, conn.Nv)
	assert.Equal(t, conn.EToV[0][1], conn.EToV[2][0])
}

func TestConnectErrors(t *testing.T) {
	c := refops.NewCache(false)
	nonManifold := newList(t, c, 1,
		cell{utils.Tri, 3, [][]float64{{0, 0}, {1, 0}, {0, 1}}},
		cell{utils.Tri, 3, [][]float64{{1, 1}, {0, 1}, {1, 0}}},
		cell{utils.Tri, 3, [][]float64{{0, 1}, {1, 0}, {2, 2}}},
	)
	_, err := nonManifold.Connect(1.e-9)
	assert.True(t, errors.Is(err, element.ErrMismatch))

	mixed := newList(t, c, 1,
		cell{utils.Tri, 3, [][]float64{{0, 0}, {1, 0}, {0, 1}}},
		cell{utils.Tet, 3, [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}},
	)
	_, err = mixed.Connect(1.e-9)
	assert.True(t, errors.Is(err, element.ErrMismatch))

	assert.Panics(t, func() { mixed.Neighbor(0, 0) })
}
