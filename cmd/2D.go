/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/plasmasim/gopic/InputParameters"
	"github.com/plasmasim/gopic/geometry2D"
	"github.com/plasmasim/gopic/model_problems/PIC2D3V"
)

type Model2D struct {
	ICFile  string
	Verbose bool
	Profile bool
}

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional implicit particle-in-cell solver",
	Long:  `Two dimensional implicit particle-in-cell solver, reads a YAML parameter file and runs the cycle loop`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("2D called")
		m2d := &Model2D{}
		if m2d.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		m2d.Verbose, _ = cmd.Flags().GetBool("verbose")
		m2d.Profile, _ = cmd.Flags().GetBool("profile")
		ip := processInput(m2d)
		Run2D(m2d, ip)
	},
}

func processInput(m2d *Model2D) (ip *InputParameters.PICParameters2D) {
	var (
		err error
	)
	if len(m2d.ICFile) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Stable Plasma"
Nx: 16
Ny: 16
Lx: 4.
Ly: 4.
Dt: 0.05
NCycles: 30
SolverType: picard
Species:
  - {Npart: 1024, WP: 1., QM: -1., VT: 0.01}
  - {Npart: 1024, WP: 1., QM: -1., VT: 0.01}
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(m2d.ICFile); err != nil {
		panic(err)
	}
	ip = &InputParameters.PICParameters2D{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	if err = ip.Validate(); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	return
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- grid size\n\t- timestep\n\t- species")
	TwoDCmd.Flags().BoolP("verbose", "v", false, "print the per-iteration solver residuals")
	TwoDCmd.Flags().BoolP("profile", "p", false, "write a CPU profile of the run")
}

func Run2D(m2d *Model2D, ip *InputParameters.PICParameters2D) {
	if m2d.Profile {
		defer profile.Start().Stop()
	}
	ip.Print()
	c, err := buildSolver(ip, m2d.Verbose)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if _, err = c.Run(ip.NCycles); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
}

func buildSolver(ip *InputParameters.PICParameters2D, verbose bool) (c *PIC2D3V.PIC, err error) {
	var (
		grid *geometry2D.Grid
		geom *geometry2D.Geometry
		part *PIC2D3V.Ensemble
	)
	if grid, err = geometry2D.NewGrid(ip.Nx, ip.Ny, ip.Lx, ip.Ly); err != nil {
		return
	}
	if geom, err = geometry2D.NewGeometry(grid, ip.Eps, ip.Curvilinear); err != nil {
		return
	}
	species := make([]PIC2D3V.SpeciesSpec, len(ip.Species))
	for n, s := range ip.Species {
		species[n] = PIC2D3V.SpeciesSpec{
			Npart: s.Npart, WP: s.WP, QM: s.QM,
			V0x: s.V0x, V0y: s.V0y, V0z: s.V0z, VT: s.VT,
		}
	}
	if part, err = PIC2D3V.NewEnsemble(geom, species, initType(ip.InitType),
		ip.LatticePositions, ip.Relativistic, ip.Seed); err != nil {
		return
	}
	if c, err = PIC2D3V.NewPIC(geom, part, ip.Dt,
		ip.Relativistic, ip.IonBackground, ip.ParallelDegree); err != nil {
		return
	}
	switch ip.SolverType {
	case "newton-krylov":
		nk := PIC2D3V.NewNewtonKrylov()
		nk.Tol = ip.Tolerance
		nk.MaxIter = ip.MaxIterations
		nk.Verbose = verbose
		c.Solver = nk
	default:
		pc := PIC2D3V.NewPicard()
		pc.Tol = ip.Tolerance
		pc.MaxIter = ip.MaxIterations
		pc.Verbose = verbose
		c.Solver = pc
	}
	if ip.B3Spike != 0 {
		c.SetB3Spike(ip.B3Spike)
	}
	return
}

func initType(name string) PIC2D3V.InitType {
	switch name {
	case "streaming":
		return PIC2D3V.Streaming
	case "counter-stream":
		return PIC2D3V.CounterStream
	case "landau":
		return PIC2D3V.LandauDamping
	default:
		return PIC2D3V.StablePlasma
	}
}
