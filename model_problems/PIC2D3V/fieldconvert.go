package PIC2D3V

import (
	"github.com/plasmasim/gopic/geometry2D"
	"github.com/plasmasim/gopic/utils"
)

// contract3 averages the off-stagger components onto the native point set of
// component k and contracts row k of the per-point 3x3 coefficient field.
func contract3(jrow [3]utils.Matrix, a1, a2, a3 utils.Matrix) (R utils.Matrix) {
	R = a1.Copy().ElMul(jrow[0])
	R.Add(a2.Copy().ElMul(jrow[1]))
	R.Add(a3.Copy().ElMul(jrow[2]))
	return
}

func jacRow(blk *geometry2D.MetricBlock, row int) (r [3]utils.Matrix) {
	for q := 0; q < 3; q++ {
		r[q] = blk.Jac[3*row+q]
	}
	return
}

func jacInvRow(blk *geometry2D.MetricBlock, row int) (r [3]utils.Matrix) {
	for q := 0; q < 3; q++ {
		r[q] = blk.JacInv[3*row+q]
	}
	return
}

// CartesianToGeneralE converts an E-type (or current) vector field from
// Cartesian to generalized components, staggering (LR,UD,C) on both sides.
// Identity mappings pass through as copies.
func (c *PIC) CartesianToGeneralE(cx, cy, cz utils.Matrix) (g1, g2, g3 utils.Matrix) {
	var (
		g = c.Geom
	)
	if !g.Curvilinear {
		return cx.Copy(), cy.Copy(), cz.Copy()
	}
	var (
		cyLR = g.Average(g.Average(cy, geometry2D.UD2C), geometry2D.C2LR)
		czLR = g.Average(cz, geometry2D.C2LR)
		cxUD = g.Average(g.Average(cx, geometry2D.LR2C), geometry2D.C2UD)
		czUD = g.Average(cz, geometry2D.C2UD)
		cxC  = g.Average(cx, geometry2D.LR2C)
		cyC  = g.Average(cy, geometry2D.UD2C)
	)
	g1 = contract3(jacRow(&g.LR, 0), cx, cyLR, czLR)
	g2 = contract3(jacRow(&g.UD, 1), cxUD, cy, czUD)
	g3 = contract3(jacRow(&g.C, 2), cxC, cyC, cz)
	return
}

// GeneralToCartesianE is the inverse of CartesianToGeneralE, contracting with
// the inverse Jacobian instead.
func (c *PIC) GeneralToCartesianE(g1, g2, g3 utils.Matrix) (cx, cy, cz utils.Matrix) {
	var (
		g = c.Geom
	)
	if !g.Curvilinear {
		return g1.Copy(), g2.Copy(), g3.Copy()
	}
	var (
		g2LR = g.Average(g.Average(g2, geometry2D.UD2C), geometry2D.C2LR)
		g3LR = g.Average(g3, geometry2D.C2LR)
		g1UD = g.Average(g.Average(g1, geometry2D.LR2C), geometry2D.C2UD)
		g3UD = g.Average(g3, geometry2D.C2UD)
		g1C  = g.Average(g1, geometry2D.LR2C)
		g2C  = g.Average(g2, geometry2D.UD2C)
	)
	cx = contract3(jacInvRow(&g.LR, 0), g1, g2LR, g3LR)
	cy = contract3(jacInvRow(&g.UD, 1), g1UD, g2, g3UD)
	cz = contract3(jacInvRow(&g.C, 2), g1C, g2C, g3)
	return
}

// CartesianToGeneralB converts a B-type vector field, staggered (UD,LR,N).
func (c *PIC) CartesianToGeneralB(cx, cy, cz utils.Matrix) (g1, g2, g3 utils.Matrix) {
	var (
		g = c.Geom
	)
	if !g.Curvilinear {
		return cx.Copy(), cy.Copy(), cz.Copy()
	}
	var (
		cyUD = g.Average(g.Average(cy, geometry2D.LR2C), geometry2D.C2UD)
		czUD = g.Average(cz, geometry2D.N2UD)
		cxLR = g.Average(g.Average(cx, geometry2D.UD2C), geometry2D.C2LR)
		czLR = g.Average(cz, geometry2D.N2LR)
		cxN  = g.Average(cx, geometry2D.UD2N)
		cyN  = g.Average(cy, geometry2D.LR2N)
	)
	g1 = contract3(jacRow(&g.UD, 0), cx, cyUD, czUD)
	g2 = contract3(jacRow(&g.LR, 1), cxLR, cy, czLR)
	g3 = contract3(jacRow(&g.N, 2), cxN, cyN, cz)
	return
}

// GeneralToCartesianB is the inverse of CartesianToGeneralB.
func (c *PIC) GeneralToCartesianB(g1, g2, g3 utils.Matrix) (cx, cy, cz utils.Matrix) {
	var (
		g = c.Geom
	)
	if !g.Curvilinear {
		return g1.Copy(), g2.Copy(), g3.Copy()
	}
	var (
		g2UD = g.Average(g.Average(g2, geometry2D.LR2C), geometry2D.C2UD)
		g3UD = g.Average(g3, geometry2D.N2UD)
		g1LR = g.Average(g.Average(g1, geometry2D.UD2C), geometry2D.C2LR)
		g3LR = g.Average(g3, geometry2D.N2LR)
		g1N  = g.Average(g1, geometry2D.UD2N)
		g2N  = g.Average(g2, geometry2D.LR2N)
	)
	cx = contract3(jacInvRow(&g.UD, 0), g1, g2UD, g3UD)
	cy = contract3(jacInvRow(&g.LR, 1), g1LR, g2, g3LR)
	cz = contract3(jacInvRow(&g.N, 2), g1N, g2N, g3)
	return
}
