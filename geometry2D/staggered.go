package geometry2D

import (
	"fmt"

	"github.com/plasmasim/gopic/types"
	"github.com/plasmasim/gopic/utils"
)

// Grid is the logical (computational) domain: nx x ny cells over [0,Lx)x[0,Ly),
// periodic in both directions, carrying the four staggered point sets.
type Grid struct {
	Nx, Ny int
	Lx, Ly float64
	Dx, Dy float64
}

func NewGrid(nx, ny int, lx, ly float64) (g *Grid, err error) {
	if nx < 1 || ny < 1 {
		err = fmt.Errorf("invalid grid dimensions nx,ny = %d,%d", nx, ny)
		return
	}
	if lx <= 0 || ly <= 0 {
		err = fmt.Errorf("invalid domain lengths Lx,Ly = %v,%v", lx, ly)
		return
	}
	g = &Grid{
		Nx: nx, Ny: ny,
		Lx: lx, Ly: ly,
		Dx: lx / float64(nx),
		Dy: ly / float64(ny),
	}
	return
}

// LogicalCoords builds the coordinate arrays of one staggered point set.
// Face and centre sets are offset a half cell from the domain edge; node and
// face sets that touch the edge duplicate the periodic seam at both ends.
func (g *Grid) LogicalCoords(p types.GridPos) (Xi, Eta utils.Matrix) {
	var (
		nr, nc = p.Dims(g.Nx, g.Ny)
		ox, oy = g.StaggerOffset(p)
	)
	Xi, Eta = utils.NewMatrix(nr, nc), utils.NewMatrix(nr, nc)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			Xi.Set(i, j, ox+float64(i)*g.Dx)
			Eta.Set(i, j, oy+float64(j)*g.Dy)
		}
	}
	return
}

// StaggerOffset returns the half-cell offsets of a point set relative to the
// node lattice, also used by the particle gather/deposit index arithmetic.
func (g *Grid) StaggerOffset(p types.GridPos) (ox, oy float64) {
	switch p {
	case types.Node:
	case types.FaceLR:
		oy = g.Dy / 2
	case types.FaceUD:
		ox = g.Dx / 2
	case types.Center:
		ox, oy = g.Dx/2, g.Dy/2
	}
	return
}
