package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type PICParameters2D struct {
	Title            string          `yaml:"Title"`
	Nx               int             `yaml:"Nx"`
	Ny               int             `yaml:"Ny"`
	Lx               float64         `yaml:"Lx"`
	Ly               float64         `yaml:"Ly"`
	Dt               float64         `yaml:"Dt"`
	NCycles          int             `yaml:"NCycles"`
	Curvilinear      bool            `yaml:"Curvilinear"`
	Eps              float64         `yaml:"PerturbAmplitude"` // mapping perturbation amplitude
	SolverType       string          `yaml:"SolverType"`       // picard or newton-krylov
	Tolerance        float64         `yaml:"Tolerance"`
	MaxIterations    int             `yaml:"MaxIterations"`
	ParallelDegree   int             `yaml:"ParallelDegree"` // zero means all CPUs
	Relativistic     bool            `yaml:"Relativistic"`
	IonBackground    bool            `yaml:"IonBackground"`
	LatticePositions bool            `yaml:"LatticePositions"`
	InitType         string          `yaml:"InitType"` // stable, streaming, counter-stream, landau
	Seed             uint64          `yaml:"Seed"`
	B3Spike          float64         `yaml:"B3Spike"`
	Species          []SpeciesParams `yaml:"Species"`
}

type SpeciesParams struct {
	Npart int     `yaml:"Npart"`
	WP    float64 `yaml:"WP"`
	QM    float64 `yaml:"QM"`
	V0x   float64 `yaml:"V0x"`
	V0y   float64 `yaml:"V0y"`
	V0z   float64 `yaml:"V0z"`
	VT    float64 `yaml:"VT"`
}

func (ip *PICParameters2D) Parse(data []byte) error {
	// solver defaults, overridden by the file where present
	ip.SolverType = "picard"
	ip.Tolerance = 1.e-14
	ip.MaxIterations = 100
	ip.LatticePositions = true
	return yaml.Unmarshal(data, ip)
}

// Validate rejects inconsistent inputs before any allocation happens. Grid
// and species errors here are fatal configuration errors, not runtime
// conditions.
func (ip *PICParameters2D) Validate() error {
	if ip.Nx < 1 || ip.Ny < 1 {
		return fmt.Errorf("invalid grid dimensions Nx,Ny = %d,%d", ip.Nx, ip.Ny)
	}
	if ip.Lx <= 0 || ip.Ly <= 0 {
		return fmt.Errorf("invalid domain lengths Lx,Ly = %v,%v", ip.Lx, ip.Ly)
	}
	if ip.Dt <= 0 {
		return fmt.Errorf("invalid timestep Dt = %v", ip.Dt)
	}
	if ip.NCycles < 1 {
		return fmt.Errorf("invalid cycle count NCycles = %d", ip.NCycles)
	}
	if ip.Tolerance <= 0 || ip.MaxIterations < 1 {
		return fmt.Errorf("invalid solver limits Tolerance = %v, MaxIterations = %d",
			ip.Tolerance, ip.MaxIterations)
	}
	switch ip.SolverType {
	case "picard", "newton-krylov":
	default:
		return fmt.Errorf("unknown solver type [%s]", ip.SolverType)
	}
	switch ip.InitType {
	case "", "stable", "streaming", "counter-stream", "landau":
	default:
		return fmt.Errorf("unknown init type [%s]", ip.InitType)
	}
	if len(ip.Species) == 0 {
		return fmt.Errorf("no species specified")
	}
	for n, s := range ip.Species {
		if s.Npart < 1 {
			return fmt.Errorf("species %d: invalid particle count %d", n, s.Npart)
		}
		if s.QM == 0 {
			return fmt.Errorf("species %d: zero charge-to-mass ratio", n)
		}
	}
	return nil
}

func (ip *PICParameters2D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d x %d]\t\t= Grid Cells\n", ip.Nx, ip.Ny)
	fmt.Printf("[%v x %v]\t\t= Domain\n", ip.Lx, ip.Ly)
	fmt.Printf("%8.5f\t\t= Dt\n", ip.Dt)
	fmt.Printf("[%d]\t\t\t= NCycles\n", ip.NCycles)
	fmt.Printf("[%s]\t\t= Solver Type\n", ip.SolverType)
	fmt.Printf("%8.1e\t\t= Tolerance\n", ip.Tolerance)
	if ip.Curvilinear {
		fmt.Printf("%8.5f\t\t= Mapping Perturbation Amplitude\n", ip.Eps)
	}
	for n, s := range ip.Species {
		fmt.Printf("Species[%d] = Npart %d, WP %v, QM %v, V0 (%v,%v,%v), VT %v\n",
			n, s.Npart, s.WP, s.QM, s.V0x, s.V0y, s.V0z, s.VT)
	}
}
