package PIC2D3V

import (
	"math"

	"github.com/plasmasim/gopic/geometry2D"
	"github.com/plasmasim/gopic/utils"
)

// Diagnostics is one cycle's worth of conserved-quantity bookkeeping. Field
// energies exclude the duplicated periodic seam rows so no cell is counted
// twice; on curvilinear grids they carry the full metric weighting instead.
type Diagnostics struct {
	Cycle          int
	KineticSpecies []float64
	EnergyE        [3]float64
	EnergyB        [3]float64
	EnergyTot      float64
	Momentum       [3]float64
	GaussDefect    float64 // Σ|divE - rho|
	DivBTotal      float64 // Σ|divB|
}

func (c *PIC) ComputeDiagnostics() (d Diagnostics) {
	d.Cycle = c.Cycle
	d.KineticSpecies = c.kineticEnergies()
	if c.Geom.Curvilinear {
		d.EnergyE, d.EnergyB = c.fieldEnergiesMetric()
	} else {
		d.EnergyE, d.EnergyB = c.fieldEnergiesFlat()
	}
	for _, e := range d.KineticSpecies {
		d.EnergyTot += e
	}
	for q := 0; q < 3; q++ {
		d.EnergyTot += d.EnergyE[q] + d.EnergyB[q]
	}
	for i := 0; i < c.Part.Np; i++ {
		d.Momentum[0] += c.Part.U[i]
		d.Momentum[1] += c.Part.V[i]
		d.Momentum[2] += c.Part.W[i]
	}
	var (
		rho  = c.ChargeDensity()
		divE = c.Geom.DivE(c.E1, c.E2)
		divB = c.Geom.DivB(c.B1, c.B2)
	)
	for i := 0; i < c.Geom.Nx; i++ {
		for j := 0; j < c.Geom.Ny; j++ {
			d.GaussDefect += math.Abs(divE.At(i, j) - rho.At(i, j))
		}
	}
	for i := 0; i <= c.Geom.Nx; i++ {
		for j := 0; j <= c.Geom.Ny; j++ {
			d.DivBTotal += math.Abs(divB.At(i, j))
		}
	}
	return
}

func (c *PIC) kineticEnergies() (eP []float64) {
	var (
		p = c.Part
	)
	eP = make([]float64, len(p.SpeciesRanges))
	for n, r := range p.SpeciesRanges {
		for i := r[0]; i < r[1]; i++ {
			mass := math.Abs(p.Q[i] / p.QM[i])
			if c.Relativistic {
				gamma := math.Sqrt(1 + p.U[i]*p.U[i] + p.V[i]*p.V[i] + p.W[i]*p.W[i])
				eP[n] += (gamma - 1) * mass
			} else {
				eP[n] += (p.U[i]*p.U[i] + p.V[i]*p.V[i] + p.W[i]*p.W[i]) / 2 * mass
			}
		}
	}
	return
}

// sumSq sums f² over the leading ni x nj block, dropping seam rows the
// caller excludes.
func sumSq(f utils.Matrix, ni, nj int) (s float64) {
	for i := 0; i < ni; i++ {
		for j := 0; j < nj; j++ {
			s += f.At(i, j) * f.At(i, j)
		}
	}
	return
}

func (c *PIC) fieldEnergiesFlat() (eE, eB [3]float64) {
	var (
		g    = c.Geom
		cell = g.Dx * g.Dy / 2
	)
	eE[0] = sumSq(c.E1, g.Nx, g.Ny) * cell
	eE[1] = sumSq(c.E2, g.Nx, g.Ny) * cell
	eE[2] = sumSq(c.E3, g.Nx, g.Ny) * cell
	eB[0] = sumSq(c.B1, g.Nx, g.Ny) * cell
	eB[1] = sumSq(c.B2, g.Nx, g.Ny) * cell
	eB[2] = sumSq(c.B3, g.Nx, g.Ny) * cell
	return
}

// fieldEnergiesMetric forms the quadratic form ½·J·g_ij·A^i·A^j on centres,
// with the diagonal terms averaged as squares and the cross terms as
// products of the averaged components.
func (c *PIC) fieldEnergiesMetric() (eE, eB [3]float64) {
	var (
		g    = c.Geom
		cell = g.Dx * g.Dy / 2
		blk  = &g.C
		jw   = blk.DetJ

		sq = func(v float64) float64 { return v * v }

		e1C  = g.Average(c.E1, geometry2D.LR2C)
		e2C  = g.Average(c.E2, geometry2D.UD2C)
		e1sq = g.Average(c.E1.Copy().Apply(sq), geometry2D.LR2C)
		e2sq = g.Average(c.E2.Copy().Apply(sq), geometry2D.UD2C)

		b1C  = g.Average(c.B1, geometry2D.UD2C)
		b2C  = g.Average(c.B2, geometry2D.LR2C)
		b3C  = g.Average(g.Average(c.B3, geometry2D.N2LR), geometry2D.LR2C)
		b1sq = g.Average(c.B1.Copy().Apply(sq), geometry2D.UD2C)
		b2sq = g.Average(c.B2.Copy().Apply(sq), geometry2D.LR2C)
		b3sq = g.Average(g.Average(c.B3.Copy().Apply(sq), geometry2D.N2LR), geometry2D.LR2C)
	)
	gw := func(r, q int) utils.Matrix { return blk.G[3*r+q] }

	eE[0] = jw.Copy().ElMul(gw(0, 0)).ElMul(e1sq).
		Add(jw.Copy().ElMul(gw(0, 1)).ElMul(e1C).ElMul(e2C)).
		Add(jw.Copy().ElMul(gw(0, 2)).ElMul(e1C).ElMul(c.E3)).Sum() * cell
	eE[1] = jw.Copy().ElMul(gw(1, 0)).ElMul(e2C).ElMul(e1C).
		Add(jw.Copy().ElMul(gw(1, 1)).ElMul(e2sq)).
		Add(jw.Copy().ElMul(gw(1, 2)).ElMul(e2C).ElMul(c.E3)).Sum() * cell
	eE[2] = jw.Copy().ElMul(gw(2, 0)).ElMul(c.E3).ElMul(e1C).
		Add(jw.Copy().ElMul(gw(2, 1)).ElMul(c.E3).ElMul(e2C)).
		Add(jw.Copy().ElMul(gw(2, 2)).ElMul(c.E3).ElMul(c.E3)).Sum() * cell

	eB[0] = jw.Copy().ElMul(gw(0, 0)).ElMul(b1sq).
		Add(jw.Copy().ElMul(gw(0, 1)).ElMul(b1C).ElMul(b2C)).
		Add(jw.Copy().ElMul(gw(0, 2)).ElMul(b1C).ElMul(b3C)).Sum() * cell
	eB[1] = jw.Copy().ElMul(gw(1, 0)).ElMul(b2C).ElMul(b1C).
		Add(jw.Copy().ElMul(gw(1, 1)).ElMul(b2sq)).
		Add(jw.Copy().ElMul(gw(1, 2)).ElMul(b2C).ElMul(b3C)).Sum() * cell
	eB[2] = jw.Copy().ElMul(gw(2, 0)).ElMul(b3C).ElMul(b1C).
		Add(jw.Copy().ElMul(gw(2, 1)).ElMul(b3C).ElMul(b2C)).
		Add(jw.Copy().ElMul(gw(2, 2)).ElMul(b3sq)).Sum() * cell
	return
}
