package geometry2D

import (
	"fmt"

	"github.com/plasmasim/gopic/types"
	"github.com/plasmasim/gopic/utils"
)

// m3 indexes the row-major entry (i,j) of a 3x3 block.
func m3(i, j int) int { return 3*i + j }

// MetricBlock carries the per-point geometry of one staggered point set: the
// forward Jacobian of the coordinate mapping, its inverse, both determinants
// and the metric tensor g = Jᵗ·J.
type MetricBlock struct {
	Pos        types.GridPos
	Jac        [9]utils.Matrix // forward Jacobian entries, row-major
	JacInv     [9]utils.Matrix // inverse Jacobian entries
	DetJ, Detj utils.Matrix    // forward and inverse determinants
	G          [9]utils.Matrix // metric tensor entries (symmetric)
}

func newIdentityBlock(g *Grid, p types.GridPos) (blk MetricBlock) {
	var (
		nr, nc = p.Dims(g.Nx, g.Ny)
	)
	blk.Pos = p
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			val := 0.
			if i == j {
				val = 1.
			}
			blk.Jac[m3(i, j)] = utils.NewMatrix(nr, nc).AddScalar(val)
			blk.JacInv[m3(i, j)] = utils.NewMatrix(nr, nc).AddScalar(val)
			blk.G[m3(i, j)] = utils.NewMatrix(nr, nc).AddScalar(val)
		}
	}
	blk.DetJ = utils.NewMatrix(nr, nc).AddScalar(1)
	blk.Detj = utils.NewMatrix(nr, nc).AddScalar(1)
	return
}

// Geometry is the grid plus its coordinate mapping: physical point
// coordinates and metric blocks for all four staggered point sets.
type Geometry struct {
	*Grid
	Eps         float64 // amplitude of the sinusoidal perturbation
	Curvilinear bool

	N, LR, UD, C MetricBlock

	// Physical grid point coordinates, one pair per point set.
	XN, YN   utils.Matrix
	XLR, YLR utils.Matrix
	XUD, YUD utils.Matrix
	XC, YC   utils.Matrix
}

// Block returns the metric block of a point set.
func (g *Geometry) Block(p types.GridPos) *MetricBlock {
	switch p {
	case types.Node:
		return &g.N
	case types.FaceLR:
		return &g.LR
	case types.FaceUD:
		return &g.UD
	default:
		return &g.C
	}
}

// NewGeometry builds the full geometry. With curvilinear false the mapping is
// the identity and setup is pure allocation; otherwise every grid point is
// located in physical space by inverting the forward mapping, and the metric
// is derived from the analytic inverse Jacobian at that location. Any
// singular inverse Jacobian or non-positive determinant is a fatal
// configuration error.
func NewGeometry(grid *Grid, eps float64, curvilinear bool) (g *Geometry, err error) {
	g = &Geometry{
		Grid:        grid,
		Eps:         eps,
		Curvilinear: curvilinear,
	}
	for _, p := range []types.GridPos{types.Node, types.FaceLR, types.FaceUD, types.Center} {
		*g.Block(p) = newIdentityBlock(grid, p)
	}
	g.XLR, g.YLR = grid.LogicalCoords(types.FaceLR)
	g.XUD, g.YUD = grid.LogicalCoords(types.FaceUD)
	g.XC, g.YC = grid.LogicalCoords(types.Center)
	g.XN, g.YN = grid.LogicalCoords(types.Node)
	if !curvilinear {
		return
	}
	for _, p := range []types.GridPos{types.Node, types.FaceLR, types.FaceUD, types.Center} {
		if err = g.buildBlock(p); err != nil {
			return nil, fmt.Errorf("geometry setup on grid %s: %w", p.Print(), err)
		}
	}
	return
}

func (g *Geometry) physicalCoords(p types.GridPos) (X, Y utils.Matrix) {
	switch p {
	case types.Node:
		X, Y = g.XN, g.YN
	case types.FaceLR:
		X, Y = g.XLR, g.YLR
	case types.FaceUD:
		X, Y = g.XUD, g.YUD
	default:
		X, Y = g.XC, g.YC
	}
	return
}

func (g *Geometry) buildBlock(p types.GridPos) (err error) {
	var (
		blk    = g.Block(p)
		X, Y   = g.physicalCoords(p)
		nr, nc = p.Dims(g.Nx, g.Ny)
		x, y   float64
	)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			// Physical location of the logical grid point, found by
			// inverting the forward mapping.
			if x, y, err = g.PhysicalFromLogical(X.At(i, j), Y.At(i, j)); err != nil {
				return fmt.Errorf("point (%d,%d): %w", i, j, err)
			}
			X.Set(i, j, x)
			Y.Set(i, j, y)

			jInv := g.InverseJacobianAt(x, y)
			jac, errI := jInv.Inverse()
			if errI != nil {
				return fmt.Errorf("point (%d,%d): %w", i, j, errI)
			}
			detJ, detj := jac.Det(), jInv.Det()
			if detJ <= 0 || detj <= 0 {
				return fmt.Errorf("point (%d,%d): non-positive Jacobian determinant %v (degenerate or inverted mesh)", i, j, detJ)
			}
			blk.DetJ.Set(i, j, detJ)
			blk.Detj.Set(i, j, detj)
			for r := 0; r < 3; r++ {
				for c := 0; c < 3; c++ {
					blk.Jac[m3(r, c)].Set(i, j, jac.At(r, c))
					blk.JacInv[m3(r, c)].Set(i, j, jInv.At(r, c))
				}
			}
			g11, g12, g13, g22, g23, g33 := jac.GramEntries()
			blk.G[m3(0, 0)].Set(i, j, g11)
			blk.G[m3(0, 1)].Set(i, j, g12)
			blk.G[m3(1, 0)].Set(i, j, g12)
			blk.G[m3(0, 2)].Set(i, j, g13)
			blk.G[m3(2, 0)].Set(i, j, g13)
			blk.G[m3(1, 1)].Set(i, j, g22)
			blk.G[m3(1, 2)].Set(i, j, g23)
			blk.G[m3(2, 1)].Set(i, j, g23)
			blk.G[m3(2, 2)].Set(i, j, g33)
		}
	}
	return
}
