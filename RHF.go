// RHF.go --  This file is part of goHF project.
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
	"math"
	"time"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

// SCFState is the position of an RHF calculation in its life cycle.
type SCFState int

const (
	Uninitialized SCFState = iota
	Iterating
	Converged
)

func (s SCFState) String() string {
	return [...]string{"Uninitialized", "Iterating", "Converged"}[s]
}

// RHF is a restricted closed-shell Hartree-Fock calculation.
type RHF struct {
	Ints     *Integrals
	Occupied int
	SOM      *mat.Dense

	F, C, D  *mat.Dense
	Eps      []float64
	Eelec    float64
	Etot     float64
	EMP2     float64
	State    SCFState
	NumIters int

	prevD    *mat.Dense
	prevEtot float64
	dE, dD   float64
	dRMS     float64

	cfg *Config
}

// NewRHF computes the orthogonalizer and the core-Hamiltonian guess
// (F = Hcore) with its density and energy.
func NewRHF(ints *Integrals, cfg *Config) (*RHF, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ints.NElectrons < 2 || ints.NElectrons%2 != 0 {
		return nil, fmt.Errorf("%d electrons: %w", ints.NElectrons, ErrOddElectrons)
	}
	if ints.NElectrons/2 > ints.NBasis {
		return nil, fmt.Errorf("%d electrons do not fit in %d orbitals: %w", ints.NElectrons, ints.NBasis, ErrShapeMismatch)
	}
	tstart := time.Now()
	som, err := SymmetricOrthogonalizer(ints.Overlap())
	if err != nil {
		return nil, err
	}
	rhf := &RHF{
		Ints:     ints,
		Occupied: ints.NElectrons / 2,
		SOM:      som,
		cfg:      cfg,
	}
	rhf.F = mat.DenseCopyOf(ints.CoreHamiltonian())
	if err := rhf.solve(); err != nil {
		return nil, err
	}
	rhf.setEnergy()
	rhf.State = Iterating
	InfoLogger.Println("Initial guess done...", time.Since(tstart))
	return rhf, nil
}

// SolveFock diagonalizes SOMᵀ F SOM and returns the AO coefficients
// C = SOM C', ascending orbital energies and the density built from the
// lowest occ orbitals.
func SolveFock(F, SOM mat.Matrix, occ int) (*mat.Dense, []float64, *mat.Dense, error) {
	n, _ := F.Dims()
	Fp := similarity(SOM, F)
	FSym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			FSym.SetSym(i, j, 0.5*(Fp.At(i, j)+Fp.At(j, i)))
		}
	}
	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(FSym, true); !ok {
		return nil, nil, nil, fmt.Errorf("transformed Fock eigendecomposition failed: %w", ErrNumericalDegeneracy)
	}
	eps := eigsym.Values(nil)
	if !slices.IsSorted(eps) {
		panic("SolveFock: eigenvalues not in ascending order")
	}
	var ev mat.Dense
	eigsym.VectorsTo(&ev)
	C := mat.NewDense(n, n, nil)
	C.Mul(SOM, &ev)
	return C, eps, BuildDensity(C, occ), nil
}

// BuildDensity returns D(i,j) = Σ_{m<occ} C(i,m) C(j,m).
func BuildDensity(C *mat.Dense, occ int) *mat.Dense {
	n, _ := C.Dims()
	Cocc := C.Slice(0, n, 0, occ)
	D := mat.NewDense(n, n, nil)
	D.Mul(Cocc, Cocc.T())
	// exact symmetry
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			v := 0.5 * (D.At(i, j) + D.At(j, i))
			D.Set(i, j, v)
			D.Set(j, i, v)
		}
	}
	return D
}

func (rhf *RHF) solve() error {
	C, eps, D, err := SolveFock(rhf.F, rhf.SOM, rhf.Occupied)
	if err != nil {
		return err
	}
	rhf.C, rhf.Eps, rhf.D = C, eps, D
	return nil
}

// setEnergy evaluates E = Σ D(i,j) (Hcore(i,j) + F(i,j)) + E_nuc.
func (rhf *RHF) setEnergy() {
	var sum mat.Dense
	sum.Add(rhf.Ints.CoreHamiltonian(), rhf.F)
	sum.MulElem(rhf.D, &sum)
	rhf.Eelec = mat.Sum(&sum)
	rhf.Etot = rhf.Eelec + rhf.Ints.NuclearRepulsionEnergy()
}

func (rhf *RHF) snapshot() {
	rhf.prevD = mat.DenseCopyOf(rhf.D)
	rhf.prevEtot = rhf.Etot
}

func (rhf *RHF) deltas() {
	rhf.dE = math.Abs(rhf.Etot - rhf.prevEtot)
	rhf.dD = frobeniusDiff(rhf.D, rhf.prevD)
}

// Step performs one plain SCF pass: build F from the current density,
// solve it for new orbitals and density, and update the energy.
func (rhf *RHF) Step() error {
	if rhf.State == Uninitialized {
		return fmt.Errorf("step on uninitialized RHF: %w", ErrInvalidConfig)
	}
	rhf.snapshot()
	rhf.F = BuildFock(rhf.D, rhf.Ints.CoreHamiltonian(), rhf.Ints.TEI())
	if err := rhf.solve(); err != nil {
		return err
	}
	rhf.setEnergy()
	rhf.deltas()
	rhf.NumIters++
	return nil
}

func (rhf *RHF) converged() bool {
	return rhf.dE < rhf.cfg.TolE && rhf.dD < rhf.cfg.TolDens
}

// Converged reports whether the last run met its convergence criteria.
func (rhf *RHF) Converged() bool { return rhf.State == Converged }

// DeltaE and DeltaD are the absolute energy change and the Frobenius norm
// of the density change of the last iteration.
func (rhf *RHF) DeltaE() float64 { return rhf.dE }
func (rhf *RHF) DeltaD() float64 { return rhf.dD }

// Energy returns the electronic and total energies.
func (rhf *RHF) Energy() (float64, float64) { return rhf.Eelec, rhf.Etot }

func (rhf *RHF) logHeader() {
	printOutputDelimiter()
	OutputLogger.Printf("%5s %20s %20s %12s %12s", "Iter", "E(elec)", "E(tot)", "dE", "dD/dRMS")
	printOutputDelimiter()
}

func (rhf *RHF) logIteration(it int, last float64) {
	OutputLogger.Printf("%5d %20.12f %20.12f %12.4e %12.4e", it, rhf.Eelec, rhf.Etot, rhf.dE, last)
}

// Iterate runs plain SCF passes until both |ΔE| < tol_e and ||ΔD|| <
// tol_dens hold. After max_iterations passes it stops and returns
// ErrNonConvergence, leaving the last state in place.
func (rhf *RHF) Iterate(ctx context.Context) error {
	tstart := time.Now()
	rhf.logHeader()
	for it := 0; it < rhf.cfg.MaxIterations; it++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := rhf.Step(); err != nil {
			return err
		}
		rhf.logIteration(it, rhf.dD)
		if rhf.converged() {
			rhf.State = Converged
			OutputLogger.Println("SCF converged after step ", it+1)
			InfoLogger.Println("SCF done...", time.Since(tstart))
			return nil
		}
	}
	WarningLogger.Println("SCF NOT converged after step ", rhf.cfg.MaxIterations)
	return fmt.Errorf("%d iterations: %w", rhf.cfg.MaxIterations, ErrNonConvergence)
}

// DIISIterate runs SCF passes with DIIS extrapolation of the Fock matrix.
// Each pass stores (F, e) in the history. Once past min_iterations it
// stops when max|e| < diis.tolerance, and extrapolates while max|e| <
// diis.start_error. A failed extrapolation keeps the plain Fock matrix
// for that pass.
func (rhf *RHF) DIISIterate(ctx context.Context) error {
	tstart := time.Now()
	dcfg := rhf.cfg.DIIS
	diis := NewDIIS(dcfg.Size)
	S := rhf.Ints.Overlap()
	rhf.logHeader()
	for it := 0; it < rhf.cfg.MaxIterations; it++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rhf.snapshot()
		F := BuildFock(rhf.D, rhf.Ints.CoreHamiltonian(), rhf.Ints.TEI())
		e := ErrorMatrix(F, rhf.D, S, rhf.SOM)
		diis.Push(F, e)
		maxErr := maxAbs(e)
		rhf.dRMS = rmsElements(e)

		done := it >= dcfg.MinIterations && maxErr < dcfg.Tolerance
		if !done && it >= dcfg.MinIterations && maxErr < dcfg.StartError {
			Fx, _, err := diis.Extrapolate()
			switch {
			case err == nil:
				F = Fx
			case errors.Is(err, ErrExtrapolationFailure):
				WarningLogger.Println("Iteration", it+1, err, "- using unextrapolated Fock matrix")
			default:
				return err
			}
		}

		rhf.F = F
		if err := rhf.solve(); err != nil {
			return err
		}
		rhf.setEnergy()
		rhf.deltas()
		rhf.NumIters++
		rhf.logIteration(it, rhf.dRMS)

		if done {
			rhf.State = Converged
			OutputLogger.Println("SCF with DIIS converged after step ", it+1)
			OutputLogger.Printf("Last step: |dE| = %.4e, ||dD|| = %.4e", rhf.dE, rhf.dD)
			if !rhf.converged() {
				WarningLogger.Printf("DIIS stopped with |dE| = %.4e, ||dD|| = %.4e above tol_e = %g or tol_dens = %g",
					rhf.dE, rhf.dD, rhf.cfg.TolE, rhf.cfg.TolDens)
			}
			InfoLogger.Println("SCF with DIIS done...", time.Since(tstart))
			return nil
		}
	}
	WarningLogger.Println("SCF with DIIS NOT converged after step ", rhf.cfg.MaxIterations)
	return fmt.Errorf("%d DIIS iterations: %w", rhf.cfg.MaxIterations, ErrNonConvergence)
}
