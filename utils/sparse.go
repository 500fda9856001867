package utils

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// DOK wraps a dictionary-of-keys sparse matrix; the operator regression
// tests assemble reference finite-difference stencils with it and apply
// them to flattened fields.
type DOK struct {
	M *sparse.DOK
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{sparse.NewDOK(nr, nc)}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m DOK) Set(i, j int, val float64) DOK {
	m.M.Set(i, j, val)
	return m
}

// Accumulate adds val into entry (i,j).
func (m DOK) Accumulate(i, j int, val float64) DOK {
	m.M.Set(i, j, m.M.At(i, j)+val)
	return m
}

// ToCSR converts to compressed sparse row form for repeated application.
func (m DOK) ToCSR() *sparse.CSR {
	return m.M.ToCSR()
}

// MulVec applies the assembled operator to a flat vector.
func (m DOK) MulVec(x Vector) (b Vector) {
	var (
		nr, _ = m.Dims()
	)
	b = NewVector(nr)
	csr := m.ToCSR()
	var prod mat.Dense
	prod.Mul(csr, x.V)
	for i := 0; i < nr; i++ {
		b.Set(i, prod.At(i, 0))
	}
	return
}
