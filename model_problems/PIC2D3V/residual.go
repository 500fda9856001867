package PIC2D3V

import (
	"math"

	"github.com/plasmasim/gopic/types"
	"github.com/plasmasim/gopic/utils"
)

func wrap(x, l float64) float64 {
	x = math.Mod(x, l)
	if x < 0 {
		x += l
	}
	return x
}

// midpointKinematics fills the time-centered velocities and Lorentz factors
// for a trial velocity state. Non-relativistic runs pin gamma to one.
func (c *PIC) midpointKinematics(un, vn, wn []float64) (ubar, vbar, wbar, gbar []float64) {
	var (
		p  = c.Part
		np = p.Np
	)
	ubar = make([]float64, np)
	vbar = make([]float64, np)
	wbar = make([]float64, np)
	gbar = make([]float64, np)
	for i := 0; i < np; i++ {
		ubar[i] = (p.U[i] + un[i]) / 2
		vbar[i] = (p.V[i] + vn[i]) / 2
		wbar[i] = (p.W[i] + wn[i]) / 2
		gbar[i] = 1
		if c.Relativistic {
			gOld := math.Sqrt(1 + p.U[i]*p.U[i] + p.V[i]*p.V[i] + p.W[i]*p.W[i])
			gNew := math.Sqrt(1 + un[i]*un[i] + vn[i]*vn[i] + wn[i]*wn[i])
			gbar[i] = (gOld + gNew) / 2
		}
	}
	return
}

// Residual is the nonlinear residual of the fully implicit, time-centered
// step: trial state in, defect of the discrete Maxwell and momentum equations
// out, in the same packing. The fixed point x - F(x) = x is the solution of
// the implicit system, which is what the Picard iteration exploits.
func (c *PIC) Residual(xk utils.Vector) (res utils.Vector) {
	var (
		g  = c.Geom
		p  = c.Part
		np = p.Np
		dt = c.Dt
	)
	e1n, e2n, e3n, un, vn, wn := c.Codec.Decode(xk)
	ubar, vbar, wbar, gbar := c.midpointKinematics(un, vn, wn)

	// Midpoint positions, wrapped into the periodic domain, then mapped to
	// generalized coordinates. All grid transfers use the mapped locations.
	var (
		xbar = make([]float64, np)
		ybar = make([]float64, np)
	)
	for i := 0; i < np; i++ {
		xbar[i] = wrap(p.X[i]+ubar[i]/gbar[i]*dt/2, g.Lx)
		ybar[i] = wrap(p.Y[i]+vbar[i]/gbar[i]*dt/2, g.Ly)
	}
	g.MapParticles(xbar, ybar, c.xiBuf, c.etaBuf)

	// Current deposit. Flat space centres the deposited velocity in time;
	// the curvilinear scheme deposits the trial velocity and converts the
	// Cartesian current to generalized components.
	var (
		du = make([]float64, np)
		dv = make([]float64, np)
		dw = make([]float64, np)
	)
	for i := 0; i < np; i++ {
		if g.Curvilinear {
			du[i], dv[i], dw[i] = un[i], vn[i], wn[i]
		} else {
			du[i] = ubar[i] / gbar[i]
			dv[i] = vbar[i] / gbar[i]
			dw[i] = wbar[i] / gbar[i]
		}
	}
	jx, jy, jz := c.DepositCurrent(c.xiBuf, c.etaBuf, du, dv, dw)
	j1, j2, j3 := c.CartesianToGeneralE(jx, jy, jz)

	// Time-centered fields and the two curls of the Yee update
	var (
		e1b = e1n.Copy().Add(c.E1).Scale(0.5)
		e2b = e2n.Copy().Add(c.E2).Scale(0.5)
		e3b = e3n.Copy().Add(c.E3).Scale(0.5)
	)
	cE1, cE2, cE3 := g.CurlE(e1b, e2b, e3b)
	var (
		b1b = cE1.Scale(-dt / 2).Add(c.B1)
		b2b = cE2.Scale(-dt / 2).Add(c.B2)
		b3b = cE3.Scale(-dt / 2).Add(c.B3)
	)
	cB1, cB2, cB3 := g.CurlB(b1b, b2b, b3b)

	rE1 := e1n.Copy().Subtract(c.E1).Subtract(cB1.Scale(dt)).Add(j1.Scale(dt))
	rE2 := e2n.Copy().Subtract(c.E2).Subtract(cB2.Scale(dt)).Add(j2.Scale(dt))
	rE3 := e3n.Copy().Subtract(c.E3).Subtract(cB3.Scale(dt)).Add(j3.Scale(dt))

	// Gather the time-centered Cartesian fields at the particle midpoints
	ex, ey, ez := c.GeneralToCartesianE(e1b, e2b, e3b)
	bx, by, bz := c.GeneralToCartesianB(b1b, b2b, b3b)
	var (
		exp = c.Gather(c.xiBuf, c.etaBuf, ex, types.FaceLR)
		eyp = c.Gather(c.xiBuf, c.etaBuf, ey, types.FaceUD)
		ezp = c.Gather(c.xiBuf, c.etaBuf, ez, types.Center)
		bxp = c.Gather(c.xiBuf, c.etaBuf, bx, types.FaceUD)
		byp = c.Gather(c.xiBuf, c.etaBuf, by, types.FaceLR)
		bzp = c.Gather(c.xiBuf, c.etaBuf, bz, types.Node)
	)

	var (
		ru = make([]float64, np)
		rv = make([]float64, np)
		rw = make([]float64, np)
	)
	for i := 0; i < np; i++ {
		var (
			qm = p.QM[i] * dt
			gi = gbar[i]
		)
		ru[i] = un[i] - p.U[i] - qm*(exp[i]+vbar[i]/gi*bzp[i]-wbar[i]/gi*byp[i])
		rv[i] = vn[i] - p.V[i] - qm*(eyp[i]-ubar[i]/gi*bzp[i]+wbar[i]/gi*bxp[i])
		rw[i] = wn[i] - p.W[i] - qm*(ezp[i]+ubar[i]/gi*byp[i]-vbar[i]/gi*bxp[i])
	}
	res = c.Codec.Encode(rE1, rE2, rE3, ru, rv, rw)
	return
}
