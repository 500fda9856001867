package PIC2D3V

import (
	"math"
	"sync"

	"github.com/plasmasim/gopic/types"
	"github.com/plasmasim/gopic/utils"
)

func imod(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Gather interpolates a grid field to the particle locations with bilinear
// weights. The index arithmetic follows the stagger of the point set: face
// and centre sets shift by a half cell along their offset axes, and the axes
// whose point set omits the duplicated seam row wrap modulo the cell count.
// Node fields carry the seam row explicitly, so they need no wrap at all.
func (c *PIC) Gather(xk, yk []float64, f utils.Matrix, pos types.GridPos) (fp []float64) {
	var (
		g      = c.Geom
		fx, fy = g.StaggerOffset(pos)
		wrapI  = pos == types.FaceUD || pos == types.Center
		wrapJ  = pos == types.FaceLR || pos == types.Center
		wg     = sync.WaitGroup{}
	)
	fp = make([]float64, len(xk))
	for np := 0; np < c.pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			beg, end := c.pm.GetBucketRange(np)
			for k := beg; k < end; k++ {
				var (
					xa = (xk[k] - fx) / g.Dx
					ya = (yk[k] - fy) / g.Dy
					i1 = int(math.Floor(xa))
					j1 = int(math.Floor(ya))
					i2 = i1 + 1
					j2 = j1 + 1
				)
				wx2 := xa - float64(i1)
				wy2 := ya - float64(j1)
				wx1, wy1 := 1-wx2, 1-wy2
				if wrapI {
					i1, i2 = imod(i1, g.Nx), imod(i2, g.Nx)
				}
				if wrapJ {
					j1, j2 = imod(j1, g.Ny), imod(j2, g.Ny)
				}
				fp[k] = wx1*wy1*f.At(i1, j1) + wx2*wy1*f.At(i2, j1) +
					wx1*wy2*f.At(i1, j2) + wx2*wy2*f.At(i2, j2)
			}
		}(np)
	}
	wg.Wait()
	return
}

// DepositCurrent scatters the particle current onto the three Yee current
// grids (LR, UD, C) with the same bilinear weights the gather uses. Each
// worker accumulates into private grids which are then merged in worker
// order, so the result is deterministic for a fixed parallel degree. The
// duplicated seam rows are filled by replication after the merge.
func (c *PIC) DepositCurrent(xk, yk, uk, vk, wk []float64) (J1, J2, J3 utils.Matrix) {
	var (
		g     = c.Geom
		q     = c.Part.Q
		scale = 1. / (g.Dx * g.Dy)
		ndeg  = c.pm.ParallelDegree
		parts = make([][3]utils.Matrix, ndeg)
		wg    = sync.WaitGroup{}
	)
	for np := 0; np < ndeg; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			var (
				j1m = utils.NewMatrix(g.Nx+1, g.Ny)
				j2m = utils.NewMatrix(g.Nx, g.Ny+1)
				j3m = utils.NewMatrix(g.Nx, g.Ny)
			)
			beg, end := c.pm.GetBucketRange(np)
			for k := beg; k < end; k++ {
				depositOne(j1m, xk[k]/g.Dx, (yk[k]-g.Dy/2)/g.Dy,
					q[k]*uk[k]*scale, g.Nx, g.Ny, foldI, wrapJOnly)
				depositOne(j2m, (xk[k]-g.Dx/2)/g.Dx, yk[k]/g.Dy,
					q[k]*vk[k]*scale, g.Nx, g.Ny, wrapIOnly, foldJ)
				depositOne(j3m, (xk[k]-g.Dx/2)/g.Dx, (yk[k]-g.Dy/2)/g.Dy,
					q[k]*wk[k]*scale, g.Nx, g.Ny, wrapIOnly, wrapJOnly)
			}
			parts[np] = [3]utils.Matrix{j1m, j2m, j3m}
		}(np)
	}
	wg.Wait()
	J1, J2, J3 = parts[0][0], parts[0][1], parts[0][2]
	for np := 1; np < ndeg; np++ {
		J1.Add(parts[np][0])
		J2.Add(parts[np][1])
		J3.Add(parts[np][2])
	}
	for j := 0; j < g.Ny; j++ {
		J1.Set(g.Nx, j, J1.At(0, j))
	}
	for i := 0; i < g.Nx; i++ {
		J2.Set(i, g.Ny, J2.At(i, 0))
	}
	return
}

// DepositCharge scatters the particle charge onto the centre grid.
func (c *PIC) DepositCharge(xk, yk []float64) (rho utils.Matrix) {
	var (
		g     = c.Geom
		q     = c.Part.Q
		scale = 1. / (g.Dx * g.Dy)
		ndeg  = c.pm.ParallelDegree
		parts = make([]utils.Matrix, ndeg)
		wg    = sync.WaitGroup{}
	)
	for np := 0; np < ndeg; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			rm := utils.NewMatrix(g.Nx, g.Ny)
			beg, end := c.pm.GetBucketRange(np)
			for k := beg; k < end; k++ {
				depositOne(rm, (xk[k]-g.Dx/2)/g.Dx, (yk[k]-g.Dy/2)/g.Dy,
					q[k]*scale, g.Nx, g.Ny, wrapIOnly, wrapJOnly)
			}
			parts[np] = rm
		}(np)
	}
	wg.Wait()
	rho = parts[0]
	for np := 1; np < ndeg; np++ {
		rho.Add(parts[np])
	}
	return
}

// edgeRule fixes up the upper bracketing index of one axis. Axes without a
// duplicated seam row wrap both indices; axes with one fold only the last
// index back onto the first, the seam copy happening after the merge.
type edgeRule uint8

const (
	wrapIOnly edgeRule = iota
	wrapJOnly
	foldI
	foldJ
)

func depositOne(m utils.Matrix, xa, ya, val float64, nx, ny int, ruleI, ruleJ edgeRule) {
	var (
		i1 = int(math.Floor(xa))
		j1 = int(math.Floor(ya))
		i2 = i1 + 1
		j2 = j1 + 1
	)
	wx2 := xa - float64(i1)
	wy2 := ya - float64(j1)
	wx1, wy1 := 1-wx2, 1-wy2
	if ruleI == foldI {
		if i2 == nx {
			i2 = 0
		}
	} else {
		i1, i2 = imod(i1, nx), imod(i2, nx)
	}
	if ruleJ == foldJ {
		if j2 == ny {
			j2 = 0
		}
	} else {
		j1, j2 = imod(j1, ny), imod(j2, ny)
	}
	m.Set(i1, j1, m.At(i1, j1)+val*wx1*wy1)
	m.Set(i2, j1, m.At(i2, j1)+val*wx2*wy1)
	m.Set(i1, j2, m.At(i1, j2)+val*wx1*wy2)
	m.Set(i2, j2, m.At(i2, j2)+val*wx2*wy2)
}
