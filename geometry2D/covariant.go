package geometry2D

import (
	"github.com/plasmasim/gopic/utils"
)

// weighted forms Σ_q g_kq·A^q on one point set, with the components already
// averaged onto that set.
func weighted(blk *MetricBlock, row int, a1, a2, a3 utils.Matrix) (R utils.Matrix) {
	R = a1.Copy().ElMul(blk.G[m3(row, 0)])
	R.Add(a2.Copy().ElMul(blk.G[m3(row, 1)]))
	R.Add(a3.Copy().ElMul(blk.G[m3(row, 2)]))
	return
}

// CurlE takes the covariant curl of an E-type field,
// curl^i = 1/J·(∂_j g_kq A^q − ∂_k g_jq A^q), input on (LR,UD,C), output on
// (UD,LR,N). The second component carries the negative sign of the cyclic
// permutation.
func (g *Geometry) CurlE(e1, e2, e3 utils.Matrix) (c1, c2, c3 utils.Matrix) {
	var (
		e1C = g.Average(e1, LR2C)
		e2C = g.Average(e2, UD2C)
		sC  = weighted(&g.C, 2, e1C, e2C, e3)

		e1UD = g.Average(e1C, C2UD)
		e3UD = g.Average(e3, C2UD)
		sUD  = weighted(&g.UD, 1, e1UD, e2, e3UD)

		e2LR = g.Average(e2C, C2LR)
		e3LR = g.Average(e3, C2LR)
		sLR  = weighted(&g.LR, 0, e1, e2LR, e3LR)
	)
	c1 = g.DirDeriv(sC, C2UD).ElDiv(g.UD.DetJ)
	c2 = g.DirDeriv(sC, C2LR).Scale(-1).ElDiv(g.LR.DetJ)
	c3 = g.DirDeriv(sUD, UD2N).Subtract(g.DirDeriv(sLR, LR2N)).ElDiv(g.N.DetJ)
	return
}

// CurlB is the Yee dual of CurlE: input on (UD,LR,N), output on (LR,UD,C).
func (g *Geometry) CurlB(b1, b2, b3 utils.Matrix) (c1, c2, c3 utils.Matrix) {
	var (
		b1N = g.Average(b1, UD2N)
		b2N = g.Average(b2, LR2N)
		sN  = weighted(&g.N, 2, b1N, b2N, b3)

		b1LR = g.Average(b1N, N2LR)
		b3LR = g.Average(b3, N2LR)
		sLR  = weighted(&g.LR, 1, b1LR, b2, b3LR)

		b2UD = g.Average(b2N, N2UD)
		b3UD = g.Average(b3, N2UD)
		sUD  = weighted(&g.UD, 0, b1, b2UD, b3UD)
	)
	c1 = g.DirDeriv(sN, N2LR).ElDiv(g.LR.DetJ)
	c2 = g.DirDeriv(sN, N2UD).Scale(-1).ElDiv(g.UD.DetJ)
	c3 = g.DirDeriv(sLR, LR2C).Subtract(g.DirDeriv(sUD, UD2C)).ElDiv(g.C.DetJ)
	return
}

// DivE takes the covariant divergence 1/J·∂_i(J·A^i) of an E-type field,
// input on (LR,UD,C), output on centres.
func (g *Geometry) DivE(e1, e2 utils.Matrix) (R utils.Matrix) {
	R = g.DirDeriv(e1.Copy().ElMul(g.LR.DetJ), LR2C)
	R.Add(g.DirDeriv(e2.Copy().ElMul(g.UD.DetJ), UD2C))
	R.ElDiv(g.C.DetJ)
	return
}

// DivB is the node-centred dual for B-type input on (UD,LR,N).
func (g *Geometry) DivB(b1, b2 utils.Matrix) (R utils.Matrix) {
	R = g.DirDeriv(b1.Copy().ElMul(g.UD.DetJ), UD2N)
	R.Add(g.DirDeriv(b2.Copy().ElMul(g.LR.DetJ), LR2N))
	R.ElDiv(g.N.DetJ)
	return
}
