package geometry2D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/plasmasim/gopic/utils"
)

// MapForward converts a Cartesian position to generalized coordinates by the
// closed-form sinusoidal perturbation. With Curvilinear false it is the
// identity passthrough.
func (g *Geometry) MapForward(x, y float64) (xi, eta float64) {
	if !g.Curvilinear {
		return x, y
	}
	d := g.Eps * math.Sin(2*math.Pi*x/g.Lx) * math.Sin(2*math.Pi*y/g.Ly)
	xi = x + d
	eta = y + d
	return
}

// MapParticles converts particle position arrays Cartesian to generalized,
// writing into xiOut/etaOut.
func (g *Geometry) MapParticles(x, y, xiOut, etaOut []float64) {
	if !g.Curvilinear {
		copy(xiOut, x)
		copy(etaOut, y)
		return
	}
	for i := range x {
		xiOut[i], etaOut[i] = g.MapForward(x[i], y[i])
	}
}

// InverseJacobianAt evaluates the analytic inverse Jacobian ∂(xi,eta,zeta)/
// ∂(x,y,z) of the perturbed mapping at a physical location.
func (g *Geometry) InverseJacobianAt(x, y float64) (jInv utils.Mat3) {
	var (
		twoPi = 2 * math.Pi
		cs    = math.Cos(twoPi*x/g.Lx) * math.Sin(twoPi*y/g.Ly)
		sc    = math.Sin(twoPi*x/g.Lx) * math.Cos(twoPi*y/g.Ly)
	)
	jInv[m3(0, 0)] = 1 + twoPi*g.Eps*cs/g.Lx
	jInv[m3(0, 1)] = twoPi * g.Eps * sc / g.Ly
	jInv[m3(1, 0)] = twoPi * g.Eps * cs / g.Lx
	jInv[m3(1, 1)] = 1 + twoPi*g.Eps*sc/g.Ly
	jInv[m3(2, 2)] = 1
	return
}

// PhysicalFromLogical inverts the forward mapping for one grid point. The
// mapping is nonlinear, so the physical location is found by minimizing the
// squared mapping residual, seeded with the logical coordinate. The minimum
// must reproduce the target to floating-point precision; anything worse
// means the perturbation amplitude has made the mapping non-invertible.
func (g *Geometry) PhysicalFromLogical(xi, eta float64) (x, y float64, err error) {
	const residTol = 1.e-10
	if !g.Curvilinear {
		return xi, eta, nil
	}
	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			xiP, etaP := g.MapForward(p[0], p[1])
			return (xiP-xi)*(xiP-xi) + (etaP-eta)*(etaP-eta)
		},
	}
	settings := &optimize.Settings{
		Converger: &optimize.FunctionConverge{
			Absolute:   1.e-16,
			Iterations: 100,
		},
	}
	result, errM := optimize.Minimize(problem, []float64{xi, eta}, settings, &optimize.NelderMead{})
	if errM != nil {
		err = fmt.Errorf("mapping inversion at (%v,%v): %w", xi, eta, errM)
		return
	}
	if result.F > residTol {
		err = fmt.Errorf("mapping inversion at (%v,%v) stalled, residual %v", xi, eta, result.F)
		return
	}
	x, y = result.X[0], result.X[1]
	return
}
