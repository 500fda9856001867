package PIC2D3V

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/plasmasim/gopic/geometry2D"
)

// SpeciesSpec holds the per-species initialization parameters. WP is the
// plasma frequency, QM the charge-to-mass ratio, V0* the stream velocity and
// VT the thermal velocity.
type SpeciesSpec struct {
	Npart         int
	WP, QM        float64
	V0x, V0y, V0z float64
	VT            float64
}

// InitType selects the velocity-space setup of the ensemble.
type InitType uint8

const (
	StablePlasma InitType = iota // zero net drift, thermal spread only
	Streaming                    // drift V0 plus thermal spread
	CounterStream                // half the particles drift -V0x (shuffled)
	LandauDamping                // sinusoidal v perturbation along x
)

var initNames = []string{"stable plasma", "streaming", "counter-stream", "landau damping"}

func (it InitType) Print() string { return initNames[it] }

// Ensemble is the full macro-particle population, all species concatenated
// into flat struct-of-arrays storage. Charge and charge-to-mass ratio are
// fixed for a particle's lifetime; no particles are created or destroyed
// after initialization.
type Ensemble struct {
	Np            int
	X, Y          []float64 // Cartesian positions in [0,Lx)x[0,Ly)
	U, V, W       []float64
	Q, QM         []float64
	SpeciesRanges [][2]int // [begin,end) per species
}

// NewEnsemble samples the initial particle state. Positions of the first
// species sit on a uniform lattice (Npart must be a perfect square) or, when
// latticePositions is false, uniformly at random; subsequent species of
// equal count reuse the first species' positions so the plasma starts
// quasi-neutral in configuration space. Velocities are V0 + VT·N(0,1) per
// component. The macro-charge follows from the plasma frequency:
// q = WP²/(QM·npart/(Lx·Ly)).
func NewEnsemble(geom *geometry2D.Geometry, species []SpeciesSpec, init InitType,
	latticePositions bool, relativistic bool, seed uint64) (p *Ensemble, err error) {
	var (
		np int
	)
	if len(species) == 0 {
		err = fmt.Errorf("no species specified")
		return
	}
	for n, s := range species {
		if s.Npart < 1 {
			err = fmt.Errorf("species %d: invalid particle count %d", n, s.Npart)
			return
		}
		if s.QM == 0 {
			err = fmt.Errorf("species %d: zero charge-to-mass ratio", n)
			return
		}
		np += s.Npart
	}
	p = &Ensemble{
		Np: np,
		X:  make([]float64, np), Y: make([]float64, np),
		U: make([]float64, np), V: make([]float64, np), W: make([]float64, np),
		Q: make([]float64, np), QM: make([]float64, np),
	}
	var (
		src    = rand.NewSource(seed)
		rng    = rand.New(src)
		normal = distuv.Normal{Mu: 0, Sigma: 1, Src: src}
		beg    = 0
	)
	for n, s := range species {
		end := beg + s.Npart
		p.SpeciesRanges = append(p.SpeciesRanges, [2]int{beg, end})

		if n > 0 && s.Npart == species[0].Npart {
			copy(p.X[beg:end], p.X[0:s.Npart])
			copy(p.Y[beg:end], p.Y[0:s.Npart])
		} else if latticePositions {
			if err = latticeFill(p.X[beg:end], p.Y[beg:end], s.Npart, geom.Lx, geom.Ly); err != nil {
				return nil, fmt.Errorf("species %d: %w", n, err)
			}
		} else {
			for i := beg; i < end; i++ {
				p.X[i] = geom.Lx * rng.Float64()
				p.Y[i] = geom.Ly * rng.Float64()
			}
		}

		for i := beg; i < end; i++ {
			switch init {
			case StablePlasma:
				p.U[i] = s.VT * normal.Rand()
			default:
				p.U[i] = s.V0x + s.VT*normal.Rand()
			}
			p.V[i] = s.V0y*b2f(init == LandauDamping || init == Streaming) + s.VT*normal.Rand()
			p.W[i] = s.V0z*b2f(init == Streaming) + s.VT*normal.Rand()
			if init == LandauDamping {
				p.V[i] = s.V0y + s.VT*math.Sin(p.X[i]/geom.Lx)
			}
			p.Q[i] = s.WP * s.WP / (s.QM * float64(s.Npart) / geom.Lx / geom.Ly)
			p.QM[i] = s.QM
		}
		if init == CounterStream {
			for i := beg + 1; i < end; i += 2 {
				p.U[i] = -p.U[i]
			}
			rng.Shuffle(s.Npart, func(i, j int) {
				p.U[beg+i], p.U[beg+j] = p.U[beg+j], p.U[beg+i]
			})
		}
		beg = end
	}
	if relativistic {
		for i := 0; i < np; i++ {
			v2 := p.U[i]*p.U[i] + p.V[i]*p.V[i] + p.W[i]*p.W[i]
			if v2 >= 1 {
				return nil, fmt.Errorf("particle %d: superluminal initial velocity %v", i, math.Sqrt(v2))
			}
			gamma := 1. / math.Sqrt(1.-v2)
			p.U[i] *= gamma
			p.V[i] *= gamma
			p.W[i] *= gamma
		}
	}
	return
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func latticeFill(x, y []float64, npart int, lx, ly float64) (err error) {
	var (
		side = int(math.Round(math.Sqrt(float64(npart))))
	)
	if side*side != npart {
		err = fmt.Errorf("lattice initialization needs a square particle count, have %d", npart)
		return
	}
	var (
		dxp = lx / float64(side)
		dyp = ly / float64(side)
	)
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			x[i*side+j] = dxp/2 + float64(i)*dxp
			y[i*side+j] = dyp/2 + float64(j)*dyp
		}
	}
	return
}

// TotalCharge sums the macro-particle charges.
func (p *Ensemble) TotalCharge() (q float64) {
	for _, val := range p.Q {
		q += val
	}
	return
}
