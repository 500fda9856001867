package geometry2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"

	"github.com/plasmasim/gopic/types"
	"github.com/plasmasim/gopic/utils"
)

func randomField(rng *rand.Rand, nr, nc int) (f utils.Matrix) {
	f = utils.NewMatrix(nr, nc)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			f.Set(i, j, rng.Float64()-0.5)
		}
	}
	return
}

// seamConsistent replicates the duplicated periodic rows of a field whose
// point set carries them, as the solver state always does.
func seamConsistent(f utils.Matrix, pos types.GridPos, nx, ny int) utils.Matrix {
	switch pos {
	case types.FaceLR:
		for j := 0; j < ny; j++ {
			f.Set(nx, j, f.At(0, j))
		}
	case types.FaceUD:
		for i := 0; i < nx; i++ {
			f.Set(i, ny, f.At(i, 0))
		}
	case types.Node:
		for j := 0; j <= ny; j++ {
			f.Set(nx, j, f.At(0, j))
		}
		for i := 0; i <= nx; i++ {
			f.Set(i, ny, f.At(i, 0))
		}
	}
	return f
}

func TestStencilOperators(t *testing.T) {
	var (
		nx, ny = 8, 6
		rng    = rand.New(rand.NewSource(1))
	)
	g, err := NewGrid(nx, ny, 2., 1.5)
	assert.NoError(t, err)
	// Expanding pairs replicate the seam to both edges
	{
		f := randomField(rng, nx, ny)
		for _, s := range []StencilPair{C2LR, C2UD} {
			A := g.Average(f, s)
			D := g.DirDeriv(f, s)
			if s == C2LR {
				for j := 0; j < ny; j++ {
					assert.Equal(t, A.At(0, j), A.At(nx, j))
					assert.Equal(t, D.At(0, j), D.At(nx, j))
				}
			} else {
				for i := 0; i < nx; i++ {
					assert.Equal(t, A.At(i, 0), A.At(i, ny))
					assert.Equal(t, D.At(i, 0), D.At(i, ny))
				}
			}
		}
	}
	// Contracting average of a linear-in-x field is exact at centres
	{
		f := utils.NewMatrix(nx+1, ny)
		for i := 0; i <= nx; i++ {
			for j := 0; j < ny; j++ {
				f.Set(i, j, float64(i)*g.Dx)
			}
		}
		A := g.Average(f, LR2C)
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				assert.InDelta(t, (float64(i)+0.5)*g.Dx, A.At(i, j), 1.e-14)
			}
		}
	}
	// Derivative of a constant field vanishes everywhere, seams included
	{
		f := utils.NewMatrix(nx, ny).AddScalar(3.7)
		for _, s := range []StencilPair{C2LR, C2UD} {
			D := g.DirDeriv(f, s)
			assert.Equal(t, 0., D.Min())
			assert.Equal(t, 0., D.Max())
		}
	}
}

// assembleLR2C builds the reference sparse x-derivative from LR faces to
// centres, to check the stencil code against an independently constructed
// operator.
func assembleLR2C(g *Grid) (op utils.DOK) {
	var (
		nx, ny = g.Nx, g.Ny
		oDx    = 1. / g.Dx
	)
	op = utils.NewDOK(nx*ny, (nx+1)*ny)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			row := i*ny + j
			op.Accumulate(row, (i+1)*ny+j, oDx)
			op.Accumulate(row, i*ny+j, -oDx)
		}
	}
	return
}

// assembleC2UD builds the reference y-derivative from centres to UD faces,
// periodic seam rows included.
func assembleC2UD(g *Grid) (op utils.DOK) {
	var (
		nx, ny = g.Nx, g.Ny
		oDy    = 1. / g.Dy
	)
	op = utils.NewDOK(nx*(ny+1), nx*ny)
	for i := 0; i < nx; i++ {
		for j := 1; j < ny; j++ {
			row := i*(ny+1) + j
			op.Accumulate(row, i*ny+j, oDy)
			op.Accumulate(row, i*ny+j-1, -oDy)
		}
		for _, j := range []int{0, ny} {
			row := i*(ny+1) + j
			op.Accumulate(row, i*ny, oDy)
			op.Accumulate(row, i*ny+ny-1, -oDy)
		}
	}
	return
}

func TestStencilAgainstAssembledOperators(t *testing.T) {
	var (
		nx, ny = 8, 6
		rng    = rand.New(rand.NewSource(2))
	)
	g, err := NewGrid(nx, ny, 2., 1.5)
	assert.NoError(t, err)
	{
		f := seamConsistent(randomField(rng, nx+1, ny), types.FaceLR, nx, ny)
		want := assembleLR2C(g).MulVec(utils.NewVector((nx+1)*ny, f.Data()))
		got := g.DirDeriv(f, LR2C)
		for k, val := range got.Data() {
			assert.InDelta(t, want.AtVec(k), val, 1.e-14)
		}
	}
	{
		f := randomField(rng, nx, ny)
		want := assembleC2UD(g).MulVec(utils.NewVector(nx*ny, f.Data()))
		got := g.DirDeriv(f, C2UD)
		for k, val := range got.Data() {
			assert.InDelta(t, want.AtVec(k), val, 1.e-14)
		}
	}
}

func TestCurlDivIdentities(t *testing.T) {
	var (
		nx, ny = 8, 8
		rng    = rand.New(rand.NewSource(3))
	)
	grid, err := NewGrid(nx, ny, 4., 4.)
	assert.NoError(t, err)
	g, err := NewGeometry(grid, 0, false)
	assert.NoError(t, err)
	// div curl E = 0 on nodes for any seam-consistent E state
	{
		e1 := seamConsistent(randomField(rng, nx+1, ny), types.FaceLR, nx, ny)
		e2 := seamConsistent(randomField(rng, nx, ny+1), types.FaceUD, nx, ny)
		e3 := randomField(rng, nx, ny)
		c1, c2, _ := g.CurlE(e1, e2, e3)
		div := g.DivB(c1, c2)
		assert.InDelta(t, 0., div.Min(), 1.e-12)
		assert.InDelta(t, 0., div.Max(), 1.e-12)
	}
	// div curl B = 0 on centres
	{
		b1 := seamConsistent(randomField(rng, nx, ny+1), types.FaceUD, nx, ny)
		b2 := seamConsistent(randomField(rng, nx+1, ny), types.FaceLR, nx, ny)
		b3 := seamConsistent(randomField(rng, nx+1, ny+1), types.Node, nx, ny)
		c1, c2, _ := g.CurlB(b1, b2, b3)
		div := g.DivE(c1, c2)
		assert.InDelta(t, 0., div.Min(), 1.e-12)
		assert.InDelta(t, 0., div.Max(), 1.e-12)
	}
	// flat curl of a y-varying E3 reduces to the plain difference quotient
	{
		e1 := utils.NewMatrix(nx+1, ny)
		e2 := utils.NewMatrix(nx, ny+1)
		e3 := utils.NewMatrix(nx, ny)
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				e3.Set(i, j, math.Sin(2*math.Pi*(float64(j)+0.5)/float64(ny)))
			}
		}
		c1, c2, c3 := g.CurlE(e1, e2, e3)
		for i := 0; i < nx; i++ {
			for j := 1; j < ny; j++ {
				assert.InDelta(t, (e3.At(i, j)-e3.At(i, j-1))/g.Dy, c1.At(i, j), 1.e-14)
			}
		}
		assert.InDelta(t, 0., c2.Min(), 1.e-14)
		assert.InDelta(t, 0., c2.Max(), 1.e-14)
		assert.InDelta(t, 0., c3.Min(), 1.e-14)
		assert.InDelta(t, 0., c3.Max(), 1.e-14)
	}
}
