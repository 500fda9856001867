package utils

import (
	"fmt"
	"math"
)

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

// Mat3 is a 3x3 matrix in row-major order. All per-grid-point linear algebra
// in the metric setup is size 3, so a closed-form inverse avoids a general
// dense solve at every point.
type Mat3 [9]float64

func (a Mat3) At(i, j int) float64 { return a[3*i+j] }

func (a Mat3) Det() float64 {
	return a[0]*(a[4]*a[8]-a[5]*a[7]) -
		a[1]*(a[3]*a[8]-a[5]*a[6]) +
		a[2]*(a[3]*a[7]-a[4]*a[6])
}

// Inverse returns the cofactor-expansion inverse. A determinant smaller in
// magnitude than singTol is reported as an error, not extrapolated through.
func (a Mat3) Inverse() (inv Mat3, err error) {
	const singTol = 1.e-14
	det := a.Det()
	if math.Abs(det) < singTol {
		err = fmt.Errorf("singular 3x3 matrix, det = %v", det)
		return
	}
	oDet := 1. / det
	inv[0] = (a[4]*a[8] - a[5]*a[7]) * oDet
	inv[1] = (a[2]*a[7] - a[1]*a[8]) * oDet
	inv[2] = (a[1]*a[5] - a[2]*a[4]) * oDet
	inv[3] = (a[5]*a[6] - a[3]*a[8]) * oDet
	inv[4] = (a[0]*a[8] - a[2]*a[6]) * oDet
	inv[5] = (a[2]*a[3] - a[0]*a[5]) * oDet
	inv[6] = (a[3]*a[7] - a[4]*a[6]) * oDet
	inv[7] = (a[1]*a[6] - a[0]*a[7]) * oDet
	inv[8] = (a[0]*a[4] - a[1]*a[3]) * oDet
	return
}

// MulVec applies the matrix to a column vector.
func (a Mat3) MulVec(x, y, z float64) (rx, ry, rz float64) {
	rx = a[0]*x + a[1]*y + a[2]*z
	ry = a[3]*x + a[4]*y + a[5]*z
	rz = a[6]*x + a[7]*y + a[8]*z
	return
}

// GramEntries returns the six distinct entries of g = AᵗA, the inner
// products of the columns of A.
func (a Mat3) GramEntries() (g11, g12, g13, g22, g23, g33 float64) {
	col := func(j int) (x, y, z float64) { return a[j], a[3+j], a[6+j] }
	x1, y1, z1 := col(0)
	x2, y2, z2 := col(1)
	x3, y3, z3 := col(2)
	g11 = x1*x1 + y1*y1 + z1*z1
	g12 = x1*x2 + y1*y2 + z1*z2
	g13 = x1*x3 + y1*y3 + z1*z3
	g22 = x2*x2 + y2*y2 + z2*z2
	g23 = x2*x3 + y2*y3 + z2*z3
	g33 = x3*x3 + y3*y3 + z3*z3
	return
}
