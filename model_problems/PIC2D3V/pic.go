package PIC2D3V

import (
	"fmt"
	"math"
	"runtime"

	"github.com/plasmasim/gopic/geometry2D"
	"github.com/plasmasim/gopic/utils"
)

// PIC is the fully implicit electromagnetic particle-in-cell solver on the
// staggered periodic grid. Field unknowns are the generalized (logical)
// components; particles live in Cartesian space and are mapped for every
// grid transfer. All six field components advance together with the particle
// velocities in one nonlinear solve per cycle.
type PIC struct {
	Geom         *geometry2D.Geometry
	Part         *Ensemble
	Dt           float64
	Relativistic bool
	Cycle        int

	E1, E2, E3 utils.Matrix // LR, UD, C
	B1, B2, B3 utils.Matrix // UD, LR, N
	RhoIon     utils.Matrix // static neutralizing background on centres

	Codec  *Codec
	Solver Solver

	pm            *utils.PartitionMap
	xiBuf, etaBuf []float64 // mapped particle positions, reused per residual
}

// NewPIC wires the solver together with zero initial fields and a Picard
// nonlinear solver. With ionBackground set, the initial charge deposit is
// frozen and negated as a static neutralizing density. procLimit caps the
// worker count of the particle loops; zero means all CPUs.
func NewPIC(geom *geometry2D.Geometry, part *Ensemble, dt float64,
	relativistic, ionBackground bool, procLimit int) (c *PIC, err error) {
	if dt <= 0 {
		err = fmt.Errorf("invalid timestep %v", dt)
		return
	}
	var (
		nx, ny = geom.Nx, geom.Ny
		pdeg   = runtime.NumCPU()
	)
	if procLimit > 0 && procLimit < pdeg {
		pdeg = procLimit
	}
	if pdeg > part.Np {
		pdeg = part.Np
	}
	c = &PIC{
		Geom:         geom,
		Part:         part,
		Dt:           dt,
		Relativistic: relativistic,
		E1:           utils.NewMatrix(nx+1, ny),
		E2:           utils.NewMatrix(nx, ny+1),
		E3:           utils.NewMatrix(nx, ny),
		B1:           utils.NewMatrix(nx, ny+1),
		B2:           utils.NewMatrix(nx+1, ny),
		B3:           utils.NewMatrix(nx+1, ny+1),
		Codec:        NewCodec(geom.Grid, part.Np),
		Solver:       NewPicard(),
		pm:           utils.NewPartitionMap(pdeg, part.Np),
		xiBuf:        make([]float64, part.Np),
		etaBuf:       make([]float64, part.Np),
	}
	if ionBackground {
		geom.MapParticles(part.X, part.Y, c.xiBuf, c.etaBuf)
		c.RhoIon = c.DepositCharge(c.xiBuf, c.etaBuf).Scale(-1)
	}
	return
}

// SetB3Spike places a point seed of out-of-plane magnetic field at the
// central node, a standard light-wave expansion test.
func (c *PIC) SetB3Spike(amplitude float64) {
	c.B3.Set(c.Geom.Nx/2, c.Geom.Ny/2, amplitude)
}

// ChargeDensity deposits the instantaneous charge on the centre grid, plus
// the frozen ion background when present.
func (c *PIC) ChargeDensity() (rho utils.Matrix) {
	c.Geom.MapParticles(c.Part.X, c.Part.Y, c.xiBuf, c.etaBuf)
	rho = c.DepositCharge(c.xiBuf, c.etaBuf)
	if !c.RhoIon.IsEmpty() {
		rho.Add(c.RhoIon)
	}
	return
}

// Step advances the state one cycle: solve the implicit system, then commit
// particles and fields from the converged trial state. A solve that fails to
// converge aborts the step with nothing committed, so the pre-step state
// stays valid for inspection or a retry with different solver settings.
func (c *PIC) Step() (sol Solution, err error) {
	var (
		p  = c.Part
		g  = c.Geom
		dt = c.Dt
	)
	guess := c.Codec.Encode(c.E1, c.E2, c.E3, p.U, p.V, p.W)
	if sol, err = c.Solver.Solve(c.Residual, guess); err != nil {
		err = fmt.Errorf("cycle %d: %w", c.Cycle+1, err)
		return
	}
	e1n, e2n, e3n, un, vn, wn := c.Codec.Decode(sol.X)

	// particle push with the time-centered velocity
	ubar, vbar, _, gbar := c.midpointKinematics(un, vn, wn)
	for i := 0; i < p.Np; i++ {
		p.X[i] = wrap(p.X[i]+ubar[i]/gbar[i]*dt, g.Lx)
		p.Y[i] = wrap(p.Y[i]+vbar[i]/gbar[i]*dt, g.Ly)
	}
	copy(p.U, un)
	copy(p.V, vn)
	copy(p.W, wn)

	// Faraday update with the time-centered E, then commit E
	var (
		e1b = e1n.Copy().Add(c.E1).Scale(0.5)
		e2b = e2n.Copy().Add(c.E2).Scale(0.5)
		e3b = e3n.Copy().Add(c.E3).Scale(0.5)
	)
	cE1, cE2, cE3 := g.CurlE(e1b, e2b, e3b)
	c.B1.Add(cE1.Scale(-dt))
	c.B2.Add(cE2.Scale(-dt))
	c.B3.Add(cE3.Scale(-dt))
	c.E1, c.E2, c.E3 = e1n, e2n, e3n
	c.Cycle++

	err = c.scanState()
	return
}

func (c *PIC) scanState() (err error) {
	for _, m := range []utils.Matrix{c.E1, c.E2, c.E3, c.B1, c.B2, c.B3} {
		if m.HasNaNOrInf() {
			return fmt.Errorf("cycle %d fields: %w", c.Cycle, ErrDiverged)
		}
	}
	for _, s := range [][]float64{c.Part.X, c.Part.Y, c.Part.U, c.Part.V, c.Part.W} {
		for _, val := range s {
			if math.IsNaN(val) || math.IsInf(val, 0) {
				return fmt.Errorf("cycle %d particles: %w", c.Cycle, ErrDiverged)
			}
		}
	}
	return
}

// Run advances nt cycles, collecting diagnostics each cycle and printing a
// one-line summary with the energy drift relative to the starting state.
func (c *PIC) Run(nt int) (hist []Diagnostics, err error) {
	var (
		e0 = c.ComputeDiagnostics().EnergyTot
	)
	for n := 0; n < nt; n++ {
		var sol Solution
		if sol, err = c.Step(); err != nil {
			return
		}
		d := c.ComputeDiagnostics()
		hist = append(hist, d)
		fmt.Printf("cycle %4d: iterations %3d, err = %8.5e, energy = %12.10e, dE/E0 = %8.1e, divE-rho = %8.5e\n",
			c.Cycle, sol.Iterations, sol.ErrNorm, d.EnergyTot, (d.EnergyTot-e0)/e0, d.GaussDefect)
	}
	return
}
