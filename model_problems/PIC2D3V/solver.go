package PIC2D3V

import (
	"errors"
	"fmt"
	"math"

	"github.com/plasmasim/gopic/utils"
)

var (
	// ErrNonConvergence marks a fixed-point solve that exhausted its
	// iteration cap. The step must not be committed from such a solve.
	ErrNonConvergence = errors.New("solver failed to converge")
	// ErrDiverged marks NaN or Inf contamination of the state.
	ErrDiverged = errors.New("state diverged to NaN or Inf")
)

// Residual evaluates the nonlinear residual F(x) of the implicit step.
type Residual func(x utils.Vector) utils.Vector

// Solution is the outcome of one nonlinear solve. X is the best iterate even
// when Converged is false, so a failed solve can still be inspected.
type Solution struct {
	X          utils.Vector
	Iterations int
	ErrNorm    float64
	Converged  bool
}

// Solver drives F(x) = 0 to convergence from a starting guess.
type Solver interface {
	Solve(F Residual, guess utils.Vector) (Solution, error)
}

// Picard iterates x_{k+1} = x_k - F(x_k) until the update 2-norm drops below
// Tol. The residual is built so this fixed point matches the implicit field
// and velocity equations.
type Picard struct {
	Tol     float64
	MaxIter int
	Verbose bool
}

func NewPicard() *Picard {
	return &Picard{Tol: 1.e-14, MaxIter: 100}
}

func (s *Picard) Solve(F Residual, guess utils.Vector) (sol Solution, err error) {
	var (
		x       = guess.Copy()
		errNorm = math.Inf(1)
	)
	for k := 0; k < s.MaxIter; k++ {
		r := F(x)
		// x_{k+1} - x_k = -F(x_k), so the update norm is the residual norm
		errNorm = r.Norm2()
		x.Subtract(r)
		if s.Verbose {
			fmt.Printf("    picard iteration %3d, err = %8.5e\n", k+1, errNorm)
		}
		if errNorm <= s.Tol {
			sol = Solution{X: x, Iterations: k + 1, ErrNorm: errNorm, Converged: true}
			return
		}
	}
	sol = Solution{X: x, Iterations: s.MaxIter, ErrNorm: errNorm}
	err = fmt.Errorf("picard: %w after %d iterations, err = %8.5e", ErrNonConvergence, s.MaxIter, errNorm)
	return
}

// NewtonKrylov is an inexact Newton iteration with a matrix-free restarted
// GMRES inner solve. Jacobian-vector products are approximated by forward
// finite differences of the residual, so only residual evaluations are
// needed.
type NewtonKrylov struct {
	Tol      float64
	MaxIter  int
	Restart  int     // GMRES subspace dimension between restarts
	InnerTol float64 // relative residual target of the linear solve
	Verbose  bool
}

func NewNewtonKrylov() *NewtonKrylov {
	return &NewtonKrylov{Tol: 1.e-14, MaxIter: 20, Restart: 30, InnerTol: 1.e-4}
}

func (s *NewtonKrylov) Solve(F Residual, guess utils.Vector) (sol Solution, err error) {
	var (
		x       = guess.Copy()
		errNorm = math.Inf(1)
		xNorm   float64
	)
	for k := 0; k < s.MaxIter; k++ {
		r := F(x)
		errNorm = r.Norm2()
		if s.Verbose {
			fmt.Printf("    newton iteration %3d, err = %8.5e\n", k, errNorm)
		}
		if errNorm <= s.Tol {
			sol = Solution{X: x, Iterations: k, ErrNorm: errNorm, Converged: true}
			return
		}
		xNorm = x.Norm2()
		jv := func(v utils.Vector) (Jv utils.Vector) {
			vNorm := v.Norm2()
			if vNorm == 0 {
				Jv = utils.NewVector(v.Len())
				return
			}
			h := math.Sqrt(machEps) * (1 + xNorm) / vNorm
			Jv = F(x.Copy().AddScaled(h, v))
			Jv.Subtract(r).Scale(1 / h)
			return
		}
		b := r.Copy().Scale(-1)
		delta := gmresRestarted(jv, b, s.Restart, s.InnerTol*errNorm, maxRestarts)
		x.AddScaled(1, delta)
	}
	sol = Solution{X: x, Iterations: s.MaxIter, ErrNorm: errNorm}
	err = fmt.Errorf("newton-krylov: %w after %d iterations, err = %8.5e", ErrNonConvergence, s.MaxIter, errNorm)
	return
}

const (
	machEps     = 2.220446049250313e-16
	maxRestarts = 4
)

// gmresRestarted runs GMRES(m) cycles until the linear residual b - A·x
// drops below tol or the cycle budget runs out.
func gmresRestarted(apply func(utils.Vector) utils.Vector, b utils.Vector, m int, tol float64, cycles int) (x utils.Vector) {
	x = utils.NewVector(b.Len())
	for cycle := 0; cycle < cycles; cycle++ {
		r := b.Copy()
		if cycle > 0 {
			r.Subtract(apply(x))
		}
		if r.Norm2() <= tol {
			return
		}
		x.AddScaled(1, gmres(apply, r, m, tol))
	}
	return
}

// gmres solves A·x = b from a zero initial guess with the Arnoldi process and
// Givens rotations, stopping at the absolute residual tol or after one
// m-dimensional subspace.
func gmres(apply func(utils.Vector) utils.Vector, b utils.Vector, m int, tol float64) (x utils.Vector) {
	var (
		n    = b.Len()
		beta = b.Norm2()
	)
	x = utils.NewVector(n)
	if beta == 0 {
		return
	}
	if m > n {
		m = n
	}
	var (
		V  = make([]utils.Vector, m+1)
		H  = utils.NewMatrix(m+1, m)
		cs = make([]float64, m)
		sn = make([]float64, m)
		g  = make([]float64, m+1)
		k  int
	)
	V[0] = b.Copy().Scale(1 / beta)
	g[0] = beta
	for k = 0; k < m; k++ {
		w := apply(V[k])
		// modified Gram-Schmidt
		for i := 0; i <= k; i++ {
			h := w.Dot(V[i])
			H.Set(i, k, h)
			w.AddScaled(-h, V[i])
		}
		hNext := w.Norm2()
		H.Set(k+1, k, hNext)
		// apply accumulated rotations to the new column
		for i := 0; i < k; i++ {
			h1 := cs[i]*H.At(i, k) + sn[i]*H.At(i+1, k)
			h2 := -sn[i]*H.At(i, k) + cs[i]*H.At(i+1, k)
			H.Set(i, k, h1)
			H.Set(i+1, k, h2)
		}
		// a zero rotation denominator means the column is dependent; the
		// subspace is exhausted, so drop the column and solve what we have
		den := math.Hypot(H.At(k, k), hNext)
		if den == 0 {
			break
		}
		cs[k] = H.At(k, k) / den
		sn[k] = hNext / den
		H.Set(k, k, den)
		H.Set(k+1, k, 0)
		g[k+1] = -sn[k] * g[k]
		g[k] = cs[k] * g[k]
		if hNext == 0 || math.Abs(g[k+1]) <= tol {
			k++
			break
		}
		V[k+1] = w.Scale(1 / hNext)
	}
	// back substitution on the k x k triangular system
	y := make([]float64, k)
	for i := k - 1; i >= 0; i-- {
		sum := g[i]
		for j := i + 1; j < k; j++ {
			sum -= H.At(i, j) * y[j]
		}
		y[i] = sum / H.At(i, i)
	}
	for i := 0; i < k; i++ {
		x.AddScaled(y[i], V[i])
	}
	return
}
