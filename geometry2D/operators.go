package geometry2D

import (
	"fmt"

	"github.com/plasmasim/gopic/types"
	"github.com/plasmasim/gopic/utils"
)

// StencilPair tags one legal (source grid, target grid) combination of the
// two-point stencil operators. Each pair acts in exactly one direction; there
// is no operator mixing both axes in one call.
type StencilPair uint8

const (
	C2UD StencilPair = iota // centres to UD faces, y
	C2LR                    // centres to LR faces, x
	UD2N                    // UD faces to nodes, x
	LR2N                    // LR faces to nodes, y
	N2LR                    // nodes to LR faces, y
	N2UD                    // nodes to UD faces, x
	LR2C                    // LR faces to centres, x
	UD2C                    // UD faces to centres, y
)

var stencilPairDefs = []struct {
	from, to types.GridPos
	axis     types.Axis
}{
	C2UD: {types.Center, types.FaceUD, types.DirY},
	C2LR: {types.Center, types.FaceLR, types.DirX},
	UD2N: {types.FaceUD, types.Node, types.DirX},
	LR2N: {types.FaceLR, types.Node, types.DirY},
	N2LR: {types.Node, types.FaceLR, types.DirY},
	N2UD: {types.Node, types.FaceUD, types.DirX},
	LR2C: {types.FaceLR, types.Center, types.DirX},
	UD2C: {types.FaceUD, types.Center, types.DirY},
}

func (s StencilPair) From() types.GridPos { return stencilPairDefs[s].from }
func (s StencilPair) To() types.GridPos   { return stencilPairDefs[s].to }
func (s StencilPair) Axis() types.Axis    { return stencilPairDefs[s].axis }

func (s StencilPair) Print() string {
	return fmt.Sprintf("%s2%s", s.From().Print(), s.To().Print())
}

// apply evaluates a two-point kernel f(hi,lo) of the bracketing source values
// at every target point. The four pairs whose target set spans the periodic
// seam compute the wrap value from the opposite-boundary neighbor and
// replicate it to both domain edges, so the seam stays single valued.
func (g *Grid) apply(f utils.Matrix, s StencilPair, kern func(hi, lo float64) float64) (R utils.Matrix) {
	var (
		nr, nc = s.To().Dims(g.Nx, g.Ny)
	)
	R = utils.NewMatrix(nr, nc)
	switch s {
	case C2UD:
		for i := 0; i < g.Nx; i++ {
			for j := 1; j < g.Ny; j++ {
				R.Set(i, j, kern(f.At(i, j), f.At(i, j-1)))
			}
			seam := kern(f.At(i, 0), f.At(i, g.Ny-1))
			R.Set(i, 0, seam)
			R.Set(i, g.Ny, seam)
		}
	case C2LR:
		for j := 0; j < g.Ny; j++ {
			for i := 1; i < g.Nx; i++ {
				R.Set(i, j, kern(f.At(i, j), f.At(i-1, j)))
			}
			seam := kern(f.At(0, j), f.At(g.Nx-1, j))
			R.Set(0, j, seam)
			R.Set(g.Nx, j, seam)
		}
	case UD2N:
		for j := 0; j <= g.Ny; j++ {
			for i := 1; i < g.Nx; i++ {
				R.Set(i, j, kern(f.At(i, j), f.At(i-1, j)))
			}
			seam := kern(f.At(0, j), f.At(g.Nx-1, j))
			R.Set(0, j, seam)
			R.Set(g.Nx, j, seam)
		}
	case LR2N:
		for i := 0; i <= g.Nx; i++ {
			for j := 1; j < g.Ny; j++ {
				R.Set(i, j, kern(f.At(i, j), f.At(i, j-1)))
			}
			seam := kern(f.At(i, 0), f.At(i, g.Ny-1))
			R.Set(i, 0, seam)
			R.Set(i, g.Ny, seam)
		}
	case N2LR:
		for i := 0; i <= g.Nx; i++ {
			for j := 0; j < g.Ny; j++ {
				R.Set(i, j, kern(f.At(i, j+1), f.At(i, j)))
			}
		}
	case N2UD:
		for j := 0; j <= g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				R.Set(i, j, kern(f.At(i+1, j), f.At(i, j)))
			}
		}
	case LR2C:
		for i := 0; i < g.Nx; i++ {
			for j := 0; j < g.Ny; j++ {
				R.Set(i, j, kern(f.At(i+1, j), f.At(i, j)))
			}
		}
	case UD2C:
		for i := 0; i < g.Nx; i++ {
			for j := 0; j < g.Ny; j++ {
				R.Set(i, j, kern(f.At(i, j+1), f.At(i, j)))
			}
		}
	}
	return
}

// Average interpolates f from the source to the target point set as the
// arithmetic mean of the two bracketing source values.
func (g *Grid) Average(f utils.Matrix, s StencilPair) (R utils.Matrix) {
	R = g.apply(f, s, func(hi, lo float64) float64 { return (hi + lo) / 2 })
	return
}

// DirDeriv takes the centered difference of f along the pair's axis, divided
// by the grid spacing in that direction.
func (g *Grid) DirDeriv(f utils.Matrix, s StencilPair) (R utils.Matrix) {
	var (
		h = g.Dx
	)
	if s.Axis() == types.DirY {
		h = g.Dy
	}
	R = g.apply(f, s, func(hi, lo float64) float64 { return (hi - lo) / h })
	return
}
