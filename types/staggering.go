package types

// GridPos identifies one of the four staggered point sets of the 2D Yee
// layout. E components and current live on (FaceLR, FaceUD, Center), B
// components on (FaceUD, FaceLR, Node), charge density on Center.
type GridPos uint8

const (
	Node GridPos = iota // cell corners, (nx+1) x (ny+1)
	FaceLR              // left-right faces, (nx+1) x ny
	FaceUD              // up-down faces, nx x (ny+1)
	Center              // cell centres, nx x ny
)

var gridPosNames = []string{"N", "LR", "UD", "C"}

func (p GridPos) Print() string { return gridPosNames[p] }

// Dims returns the array extents of this point set for an nx x ny cell grid.
func (p GridPos) Dims(nx, ny int) (nr, nc int) {
	switch p {
	case Node:
		nr, nc = nx+1, ny+1
	case FaceLR:
		nr, nc = nx+1, ny
	case FaceUD:
		nr, nc = nx, ny+1
	case Center:
		nr, nc = nx, ny
	}
	return
}

// Axis selects the direction of a directional stencil operator.
type Axis uint8

const (
	DirX Axis = iota
	DirY
)

var axisNames = []string{"x", "y"}

func (a Axis) Print() string { return axisNames[a] }
