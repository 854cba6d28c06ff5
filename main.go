// main.go --  This file is part of goHF project.
// Mirzaeva Irina, 2023
//
//	goHF is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"
)

var (
	WarningLogger = log.New(os.Stderr, "WARNING: ", log.Ldate|log.Ltime)
	InfoLogger    = log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime)
	ErrorLogger   = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	OutputLogger  = log.New(os.Stdout, "", 0)
)

var (
	configFile string
	dataDir    string
	outFname   string
	useDIIS    bool
	doMP2      bool
	maxIter    int
	nprocs     int
)

// initLog sends every logger to fname.
func initLog(fname string) (*os.File, error) {
	file, err := os.OpenFile(fname, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	InfoLogger = log.New(file, "INFO: ", log.Ldate|log.Ltime)
	WarningLogger = log.New(file, "WARNING: ", log.Ldate|log.Ltime)
	ErrorLogger = log.New(file, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	OutputLogger = log.New(file, "", 0)
	return file, nil
}

func appInfo() {
	printOutputDelimiter()
	OutputLogger.Println("------------------------ Hartree Fock w/ MP2 Correction ------------------------")
	printOutputDelimiter()
}

// Results collects what a calculation produced besides the RHF state.
type Results struct {
	RHF      *RHF
	Dipole   *[3]float64
	Mulliken []float64
}

// RunCalculation performs the whole SCF/MP2 pipeline described by cfg.
// A non-converged SCF is reported with a warning and the remaining steps
// still run on the best-effort orbitals.
func RunCalculation(ctx context.Context, cfg *Config) (*Results, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.NProcs > 0 {
		runtime.GOMAXPROCS(cfg.NProcs)
	}
	tstart := time.Now()
	ints, err := LoadIntegrals(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	InfoLogger.Println("Integrals loaded from", cfg.DataDir, time.Since(tstart))

	rhf, err := NewRHF(ints, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.PrintState {
		rhf.printState()
	}

	if cfg.DIIS.Enabled {
		err = rhf.DIISIterate(ctx)
	} else {
		err = rhf.Iterate(ctx)
	}
	if err != nil && !errors.Is(err, ErrNonConvergence) {
		return nil, err
	}
	rhf.printEnergies()
	res := &Results{RHF: rhf}

	if cfg.MP2 {
		if _, err := rhf.MP2Correction(); err != nil {
			return nil, err
		}
		rhf.printOrbitals()
		rhf.printMP2()
	}

	var geom *Geometry
	if cfg.Dipole || len(cfg.MullikenOffsets) > 0 {
		geom, err = LoadGeometry(filepath.Join(cfg.DataDir, GeometryFile))
		if err != nil {
			return nil, err
		}
	}
	if cfg.Dipole {
		mu, err := LoadDipoleIntegrals(cfg.DataDir, ints.NBasis)
		if err != nil {
			return nil, err
		}
		dip := DipoleMoment(rhf.D, mu, geom)
		res.Dipole = &dip
		printDipole(dip)
	}
	if len(cfg.MullikenOffsets) > 0 {
		q, err := MullikenCharges(rhf.D, ints.Overlap(), geom, cfg.MullikenOffsets)
		if err != nil {
			return nil, err
		}
		res.Mulliken = q
		printMulliken(q, geom)
	}
	if cfg.ReferenceEnergy != 0 {
		printEnergyCheck(rhf.Etot+rhf.EMP2, cfg.ReferenceEnergy)
	}
	printOutputDelimiter()
	InfoLogger.Println(memStats())
	return res, nil
}

func runSCF(cmd *cobra.Command, args []string) error {
	cfg := DefaultConfig()
	if configFile != "" {
		var err error
		cfg, err = LoadConfig(configFile)
		if err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("out") {
		cfg.Output = outFname
	}
	if flags.Changed("diis") {
		cfg.DIIS.Enabled = useDIIS
	}
	if flags.Changed("mp2") {
		cfg.MP2 = doMP2
	}
	if flags.Changed("max-iter") {
		cfg.MaxIterations = maxIter
	}
	if flags.Changed("nprocs") {
		cfg.NProcs = nprocs
	}

	if cfg.Output != "" {
		file, err := initLog(cfg.Output)
		if err != nil {
			return err
		}
		defer file.Close()
	}

	InfoLogger.Println("Starting hfmp2...")
	appInfo()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	res, err := RunCalculation(ctx, cfg)
	if err != nil {
		ErrorLogger.Println(err)
		return err
	}
	if !res.RHF.Converged() {
		WarningLogger.Println("Results above are from an unconverged SCF.")
	}
	InfoLogger.Println("Exiting hfmp2...")
	return nil
}

func runGen(cmd *cobra.Command, args []string) error {
	tstart := time.Now()
	mol, err := LoadMolecule(args[0])
	if err != nil {
		return err
	}
	data, err := mol.Generate()
	if err != nil {
		return err
	}
	if err := data.Write(args[1]); err != nil {
		return err
	}
	InfoLogger.Println("Integrals for", data.Ints.NBasis, "basis functions written to", args[1], time.Since(tstart))
	return nil
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hfmp2",
		Short:         "restricted Hartree-Fock with DIIS and MP2 correction",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	scfCmd := &cobra.Command{
		Use:   "scf",
		Short: "run an SCF (and MP2) calculation on an integral data directory",
		Args:  cobra.NoArgs,
		RunE:  runSCF,
	}
	scfCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML configuration file")
	scfCmd.Flags().StringVar(&dataDir, "data", "data", "integral data directory")
	scfCmd.Flags().StringVarP(&outFname, "out", "o", "", "output file (default stdout/stderr)")
	scfCmd.Flags().BoolVar(&useDIIS, "diis", true, "accelerate the SCF with DIIS")
	scfCmd.Flags().BoolVar(&doMP2, "mp2", true, "compute the MP2 correction")
	scfCmd.Flags().IntVar(&maxIter, "max-iter", DefaultMaxIterations, "maximum number of SCF iterations")
	scfCmd.Flags().IntVar(&nprocs, "nprocs", 0, "number of threads (0 keeps GOMAXPROCS)")

	genCmd := &cobra.Command{
		Use:   "gen molecule.yaml outdir",
		Short: "write s-type Gaussian integrals of a molecule to a data directory",
		Args:  cobra.ExactArgs(2),
		RunE:  runGen,
	}

	rootCmd.AddCommand(scfCmd, genCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
