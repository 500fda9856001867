package PIC2D3V

import (
	"github.com/plasmasim/gopic/geometry2D"
	"github.com/plasmasim/gopic/utils"
)

// Codec packs the unknowns of the implicit step into one Krylov state vector
// and back. The layout is [E1|E2|E3|u|v|w], each field block flattened
// row-major, so encode followed by decode is an exact bit-level round trip.
type Codec struct {
	nLR, nUD, nC int // field block sizes
	np           int
	nxn, nyn     int
	nxc, nyc     int
	Total        int
}

func NewCodec(g *geometry2D.Grid, np int) (cd *Codec) {
	cd = &Codec{
		nLR: (g.Nx + 1) * g.Ny,
		nUD: g.Nx * (g.Ny + 1),
		nC:  g.Nx * g.Ny,
		np:  np,
		nxn: g.Nx + 1, nyn: g.Ny + 1,
		nxc: g.Nx, nyc: g.Ny,
	}
	cd.Total = cd.nLR + cd.nUD + cd.nC + 3*np
	return
}

func (cd *Codec) Encode(e1, e2, e3 utils.Matrix, u, v, w []float64) (x utils.Vector) {
	x = utils.NewVector(cd.Total)
	var (
		d   = x.Data()
		pos = 0
	)
	pos += copy(d[pos:], e1.Data())
	pos += copy(d[pos:], e2.Data())
	pos += copy(d[pos:], e3.Data())
	pos += copy(d[pos:], u)
	pos += copy(d[pos:], v)
	copy(d[pos:], w)
	return
}

func (cd *Codec) Decode(x utils.Vector) (e1, e2, e3 utils.Matrix, u, v, w []float64) {
	var (
		d   = x.Data()
		pos = 0
	)
	e1 = utils.NewMatrix(cd.nxn, cd.nyc, d[pos:pos+cd.nLR])
	pos += cd.nLR
	e2 = utils.NewMatrix(cd.nxc, cd.nyn, d[pos:pos+cd.nUD])
	pos += cd.nUD
	e3 = utils.NewMatrix(cd.nxc, cd.nyc, d[pos:pos+cd.nC])
	pos += cd.nC
	u = append([]float64{}, d[pos:pos+cd.np]...)
	pos += cd.np
	v = append([]float64{}, d[pos:pos+cd.np]...)
	pos += cd.np
	w = append([]float64{}, d[pos:pos+cd.np]...)
	return
}
