package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) (R Vector) {
	var v *mat.VecDense
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			err := fmt.Errorf("mismatch in allocation: NewVector n = %v, len(data[0]) = %v", n, len(dataO[0]))
			panic(err)
		}
		v = mat.NewVecDense(n, dataO[0])
	} else {
		v = mat.NewVecDense(n, make([]float64, n))
	}
	R = Vector{v}
	return
}

func (v Vector) Dims() (r, c int)         { return v.V.Dims() }
func (v Vector) At(i, j int) float64      { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix            { return v.V.T() }
func (v Vector) AtVec(i int) float64      { return v.V.AtVec(i) }
func (v Vector) Len() int                 { return v.V.Len() }
func (v Vector) RawVector() blas64.Vector { return v.V.RawVector() }

func (v Vector) Data() []float64 { return v.V.RawVector().Data }

func (v Vector) Copy() (R Vector) {
	var (
		n     = v.Len()
		dataR = make([]float64, n)
	)
	copy(dataR, v.Data())
	R = NewVector(n, dataR)
	return
}

func (v Vector) Set(i int, val float64) Vector { // Changes receiver
	v.V.SetVec(i, val)
	return v
}

func (v Vector) Add(A Vector) Vector { // Changes receiver
	var (
		data  = v.Data()
		dataA = A.Data()
	)
	for i, val := range dataA {
		data[i] += val
	}
	return v
}

func (v Vector) Subtract(A Vector) Vector { // Changes receiver
	var (
		data  = v.Data()
		dataA = A.Data()
	)
	for i, val := range dataA {
		data[i] -= val
	}
	return v
}

func (v Vector) Scale(a float64) Vector { // Changes receiver
	var (
		data = v.Data()
	)
	for i := range data {
		data[i] *= a
	}
	return v
}

// AddScaled adds a*A to the receiver, the axpy primitive of the Krylov loops.
func (v Vector) AddScaled(a float64, A Vector) Vector { // Changes receiver
	var (
		data  = v.Data()
		dataA = A.Data()
	)
	for i, val := range dataA {
		data[i] += a * val
	}
	return v
}

// Dot returns the inner product with A.
func (v Vector) Dot(A Vector) (dot float64) {
	dot = floats.Dot(v.Data(), A.Data())
	return
}

// Norm2 returns the Euclidean norm.
func (v Vector) Norm2() float64 {
	return floats.Norm(v.Data(), 2)
}

func (v Vector) HasNaNOrInf() bool {
	for _, val := range v.Data() {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return true
		}
	}
	return false
}
