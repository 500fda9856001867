package geometry2D

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plasmasim/gopic/types"
)

func TestMappingInversion(t *testing.T) {
	grid, err := NewGrid(8, 8, 4., 4.)
	assert.NoError(t, err)
	g, err := NewGeometry(grid, 0.05, true)
	assert.NoError(t, err)
	// Forward map of the recovered physical point reproduces the logical one
	{
		for _, pt := range [][2]float64{{0.3, 1.1}, {2.0, 2.0}, {3.9, 0.1}} {
			x, y, errI := g.PhysicalFromLogical(pt[0], pt[1])
			assert.NoError(t, errI)
			xi, eta := g.MapForward(x, y)
			assert.InDelta(t, pt[0], xi, 1.e-5)
			assert.InDelta(t, pt[1], eta, 1.e-5)
		}
	}
	// Zero amplitude leaves the map at the identity
	{
		gFlat, errI := NewGeometry(grid, 0, true)
		assert.NoError(t, errI)
		x, y, errI := gFlat.PhysicalFromLogical(1.2, 3.4)
		assert.NoError(t, errI)
		assert.InDelta(t, 1.2, x, 1.e-7)
		assert.InDelta(t, 3.4, y, 1.e-7)
	}
}

func TestMetricBlocks(t *testing.T) {
	grid, err := NewGrid(8, 8, 4., 4.)
	assert.NoError(t, err)
	// Identity geometry carries unit metric everywhere
	{
		g, errI := NewGeometry(grid, 0.1, false)
		assert.NoError(t, errI)
		for _, p := range []types.GridPos{types.Node, types.FaceLR, types.FaceUD, types.Center} {
			blk := g.Block(p)
			assert.Equal(t, 1., blk.DetJ.Min())
			assert.Equal(t, 1., blk.DetJ.Max())
			assert.Equal(t, 1., blk.G[0].Min())
			assert.Equal(t, 0., blk.G[1].Max())
		}
	}
	// Perturbed geometry: positive determinants, symmetric positive metric
	{
		g, errI := NewGeometry(grid, 0.05, true)
		assert.NoError(t, errI)
		for _, p := range []types.GridPos{types.Node, types.FaceLR, types.FaceUD, types.Center} {
			blk := g.Block(p)
			assert.Greater(t, blk.DetJ.Min(), 0.)
			assert.Greater(t, blk.Detj.Min(), 0.)
			nr, nc := p.Dims(grid.Nx, grid.Ny)
			for i := 0; i < nr; i++ {
				for j := 0; j < nc; j++ {
					var (
						g11 = blk.G[0].At(i, j)
						g12 = blk.G[1].At(i, j)
						g21 = blk.G[3].At(i, j)
						g22 = blk.G[4].At(i, j)
					)
					assert.Equal(t, g12, g21)
					// in-plane block of g = JᵗJ is positive definite
					assert.Greater(t, g11, 0.)
					assert.Greater(t, g11*g22-g12*g12, 0.)
				}
			}
		}
	}
	// g = JᵗJ holds entrywise at a sample point
	{
		g, errI := NewGeometry(grid, 0.05, true)
		assert.NoError(t, errI)
		blk := g.Block(types.Center)
		var (
			i, j = 3, 5
		)
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				var want float64
				for k := 0; k < 3; k++ {
					want += blk.Jac[3*k+r].At(i, j) * blk.Jac[3*k+c].At(i, j)
				}
				assert.InDelta(t, want, blk.G[3*r+c].At(i, j), 1.e-12)
			}
		}
		// Jac and JacInv are mutual inverses
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				var sum float64
				for k := 0; k < 3; k++ {
					sum += blk.Jac[3*r+k].At(i, j) * blk.JacInv[3*k+c].At(i, j)
				}
				want := 0.
				if r == c {
					want = 1.
				}
				assert.InDelta(t, want, sum, 1.e-12)
			}
		}
	}
	// Excessive perturbation amplitude is rejected as a degenerate mesh
	{
		_, errI := NewGeometry(grid, 2.0, true)
		assert.Error(t, errI)
	}
}
