package PIC2D3V

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plasmasim/gopic/geometry2D"
)

func TestStablePlasmaEnergyConservation(t *testing.T) {
	grid, err := geometry2D.NewGrid(16, 16, 4., 4.)
	assert.NoError(t, err)
	geom, err := geometry2D.NewGeometry(grid, 0, false)
	assert.NoError(t, err)
	part, err := NewEnsemble(geom, []SpeciesSpec{
		{Npart: 1024, WP: 1., QM: -1., VT: 0.01},
		{Npart: 1024, WP: 1., QM: -1., VT: 0.01},
	}, StablePlasma, true, false, 7)
	assert.NoError(t, err)
	c, err := NewPIC(geom, part, 0.05, false, false, 0)
	assert.NoError(t, err)

	d0 := c.ComputeDiagnostics()
	e0 := d0.EnergyTot
	assert.Greater(t, e0, 0.)
	// every one of the 30 cycles must converge within the iteration cap
	hist, err := c.Run(30)
	assert.NoError(t, err)
	assert.Equal(t, 30, len(hist))
	for _, d := range hist {
		// the time-centered discretization conserves total energy to the
		// nonlinear solver tolerance
		assert.InDelta(t, 0., (d.EnergyTot-e0)/e0, 1.e-9)
		// B starts zero and the Faraday update preserves div B = 0
		assert.InDelta(t, 0., d.DivBTotal, 1.e-10)
	}
}

func TestMagneticSpikeExpansion(t *testing.T) {
	grid, err := geometry2D.NewGrid(16, 16, 4., 4.)
	assert.NoError(t, err)
	geom, err := geometry2D.NewGeometry(grid, 0, false)
	assert.NoError(t, err)
	// negligible plasma: zero plasma frequency makes the macro-charge zero
	part, err := NewEnsemble(geom, []SpeciesSpec{
		{Npart: 16, WP: 0., QM: -1., VT: 0.},
	}, StablePlasma, true, false, 1)
	assert.NoError(t, err)
	c, err := NewPIC(geom, part, 0.05, false, false, 0)
	assert.NoError(t, err)
	c.SetB3Spike(0.1)

	d0 := c.ComputeDiagnostics()
	assert.Greater(t, d0.EnergyB[2], 0.)
	hist, err := c.Run(5)
	assert.NoError(t, err)
	last := hist[len(hist)-1]
	// the spike radiates: in-plane E picks up energy while the total holds
	assert.Greater(t, last.EnergyE[0]+last.EnergyE[1]+last.EnergyE[2], 0.)
	assert.InDelta(t, 0., (last.EnergyTot-d0.EnergyTot)/d0.EnergyTot, 1.e-8)
}

func TestNonConvergenceAbortsStep(t *testing.T) {
	c := testSolver(t, 8, 8, 64, false, 0)
	c.Solver = &Picard{Tol: 1.e-300, MaxIter: 3}
	var (
		x0 = append([]float64{}, c.Part.X...)
		u0 = append([]float64{}, c.Part.U...)
	)
	_, err := c.Step()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrNonConvergence))
	// nothing was committed: particles and fields hold the pre-step state
	assert.Equal(t, x0, c.Part.X)
	assert.Equal(t, u0, c.Part.U)
	assert.Equal(t, 0., c.E1.Min())
	assert.Equal(t, 0., c.E1.Max())
	assert.Equal(t, 0, c.Cycle)
}

func TestCurvilinearStep(t *testing.T) {
	grid, err := geometry2D.NewGrid(8, 8, 4., 4.)
	assert.NoError(t, err)
	geom, err := geometry2D.NewGeometry(grid, 0.02, true)
	assert.NoError(t, err)
	part, err := NewEnsemble(geom, []SpeciesSpec{
		{Npart: 64, WP: 1., QM: -1., VT: 0.01},
		{Npart: 64, WP: 1., QM: -1., VT: 0.01},
	}, StablePlasma, true, false, 3)
	assert.NoError(t, err)
	c, err := NewPIC(geom, part, 0.05, false, true, 0)
	assert.NoError(t, err)

	hist, err := c.Run(2)
	assert.NoError(t, err)
	for _, d := range hist {
		assert.False(t, math.IsNaN(d.EnergyTot))
		assert.Greater(t, d.EnergyTot, 0.)
	}
	// particles stay inside the periodic domain
	for i := 0; i < part.Np; i++ {
		assert.GreaterOrEqual(t, part.X[i], 0.)
		assert.Less(t, part.X[i], geom.Lx)
		assert.GreaterOrEqual(t, part.Y[i], 0.)
		assert.Less(t, part.Y[i], geom.Ly)
	}
}

func TestNewtonKrylovStep(t *testing.T) {
	c := testSolver(t, 8, 8, 64, false, 0)
	nk := NewNewtonKrylov()
	nk.Tol = 1.e-12
	c.Solver = nk
	sol, err := c.Step()
	assert.NoError(t, err)
	assert.True(t, sol.Converged)
	assert.LessOrEqual(t, sol.ErrNorm, nk.Tol)
}

func TestRelativisticStep(t *testing.T) {
	grid, err := geometry2D.NewGrid(8, 8, 4., 4.)
	assert.NoError(t, err)
	geom, err := geometry2D.NewGeometry(grid, 0, false)
	assert.NoError(t, err)
	part, err := NewEnsemble(geom, []SpeciesSpec{
		{Npart: 64, WP: 1., QM: -1., VT: 0.01, V0x: 0.1},
	}, Streaming, true, true, 11)
	assert.NoError(t, err)
	c, err := NewPIC(geom, part, 0.05, true, false, 0)
	assert.NoError(t, err)
	_, err = c.Step()
	assert.NoError(t, err)
	// proper velocities remain finite and the push stayed subluminal
	for i := 0; i < part.Np; i++ {
		gamma := math.Sqrt(1 + part.U[i]*part.U[i] + part.V[i]*part.V[i] + part.W[i]*part.W[i])
		assert.Less(t, math.Abs(part.U[i])/gamma, 1.)
	}
}
