package PIC2D3V

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plasmasim/gopic/utils"
)

func TestPicard(t *testing.T) {
	// Linear contraction: fixed point of x - F(x) is the target
	{
		target := utils.NewVector(4, []float64{1, -2, 3, -4})
		F := func(x utils.Vector) utils.Vector {
			return x.Copy().Subtract(target).Scale(0.5)
		}
		s := NewPicard()
		sol, err := s.Solve(F, utils.NewVector(4))
		assert.NoError(t, err)
		assert.True(t, sol.Converged)
		for i := 0; i < 4; i++ {
			assert.InDelta(t, target.AtVec(i), sol.X.AtVec(i), 1.e-12)
		}
		assert.LessOrEqual(t, sol.ErrNorm, s.Tol)
	}
	// A residual that never vanishes exhausts the iteration cap
	{
		F := func(x utils.Vector) utils.Vector {
			r := utils.NewVector(x.Len())
			r.Set(0, 1)
			return r
		}
		s := &Picard{Tol: 1.e-14, MaxIter: 5}
		sol, err := s.Solve(F, utils.NewVector(3))
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrNonConvergence))
		assert.False(t, sol.Converged)
		assert.Equal(t, 5, sol.Iterations)
		// the best iterate is still returned for inspection
		assert.Equal(t, 3, sol.X.Len())
	}
}

func TestNewtonKrylov(t *testing.T) {
	// Mildly nonlinear diagonal system x + x³/10 = b
	{
		var (
			n = 20
			b = utils.NewVector(n)
		)
		for i := 0; i < n; i++ {
			b.Set(i, math.Sin(float64(i)))
		}
		F := func(x utils.Vector) (r utils.Vector) {
			r = utils.NewVector(n)
			for i := 0; i < n; i++ {
				xi := x.AtVec(i)
				r.Set(i, xi+xi*xi*xi/10-b.AtVec(i))
			}
			return
		}
		s := NewNewtonKrylov()
		s.Tol = 1.e-12
		sol, err := s.Solve(F, utils.NewVector(n))
		assert.NoError(t, err)
		assert.True(t, sol.Converged)
		assert.LessOrEqual(t, F(sol.X).Norm2(), 1.e-12)
		assert.Less(t, sol.Iterations, 15)
	}
}

func TestGMRES(t *testing.T) {
	// Dense SPD-ish system solved matrix-free
	{
		var (
			n = 10
			A = utils.NewMatrix(n, n)
			b = utils.NewVector(n)
		)
		for i := 0; i < n; i++ {
			A.Set(i, i, 4)
			if i > 0 {
				A.Set(i, i-1, -1)
				A.Set(i-1, i, -1)
			}
			b.Set(i, 1)
		}
		apply := func(v utils.Vector) (w utils.Vector) {
			w = utils.NewVector(n)
			for i := 0; i < n; i++ {
				var sum float64
				for j := 0; j < n; j++ {
					sum += A.At(i, j) * v.AtVec(j)
				}
				w.Set(i, sum)
			}
			return
		}
		x := gmresRestarted(apply, b, n, 1.e-12, maxRestarts)
		r := b.Copy().Subtract(apply(x))
		assert.LessOrEqual(t, r.Norm2(), 1.e-10)
	}
}
