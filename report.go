// report.go --  This file is part of goHF project.
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
	"strings"

	"gonum.org/v1/gonum/mat"
)

func printOutputDelimiter() {
	OutputLogger.Println(strings.Repeat("-", 80))
}

func printMatrix(title string, m mat.Matrix) {
	printOutputDelimiter()
	OutputLogger.Println(title + ":")
	OutputLogger.Println(PrintDense(m))
}

// printState dumps the input integrals and the current SCF matrices.
func (rhf *RHF) printState() {
	printOutputDelimiter()
	OutputLogger.Println("Nuclear repulsion energy = ", rhf.Ints.NuclearRepulsionEnergy())
	printMatrix("Overlap Integrals", rhf.Ints.Overlap())
	printMatrix("Kinetic-Energy Integrals", rhf.Ints.Kinetic())
	printMatrix("Nuclear Attraction Integrals", rhf.Ints.NuclearAttraction())
	printMatrix("Core Hamiltonian", rhf.Ints.CoreHamiltonian())
	printMatrix("Symmetric Orthogonalization Matrix", rhf.SOM)
	printMatrix("Fock Matrix", rhf.F)
	printMatrix("MO Coefficient Matrix", rhf.C)
	printMatrix("Density Matrix", rhf.D)
	printOutputDelimiter()
	OutputLogger.Println("Electronic Energy = ", rhf.Eelec)
}

func (rhf *RHF) printOrbitals() {
	printMatrix("MO Basis Fock Matrix", rhf.MOBasisFock())
	printOutputDelimiter()
	OutputLogger.Println("Orbital energies:")
	for i, e := range rhf.Eps {
		occ := "virt"
		if i < rhf.Occupied {
			occ = "occ"
		}
		OutputLogger.Printf("%5d %5s %20.12f", i+1, occ, e)
	}
}

func (rhf *RHF) printEnergies() {
	printOutputDelimiter()
	OutputLogger.Printf("State:                    %s after %d iterations", rhf.State, rhf.NumIters)
	OutputLogger.Printf("Nuclear repulsion energy: %20.12f a.u.", rhf.Ints.NuclearRepulsionEnergy())
	OutputLogger.Printf("Electronic energy:        %20.12f a.u.", rhf.Eelec)
	OutputLogger.Printf("Total SCF energy:         %20.12f a.u.", rhf.Etot)
}

func (rhf *RHF) printMP2() {
	printOutputDelimiter()
	OutputLogger.Printf("MP2 correction energy:    %20.12f a.u.", rhf.EMP2)
	OutputLogger.Printf("Corrected energy:         %20.12f a.u.", rhf.Etot+rhf.EMP2)
}

func printDipole(mu [3]float64) {
	printOutputDelimiter()
	OutputLogger.Printf("Mu-X = %20.12f", mu[0])
	OutputLogger.Printf("Mu-Y = %20.12f", mu[1])
	OutputLogger.Printf("Mu-Z = %20.12f", mu[2])
	OutputLogger.Printf("Total dipole moment (a.u.) = %20.12f", DipoleNorm(mu))
}

func printMulliken(q []float64, geom *Geometry) {
	printOutputDelimiter()
	for a, val := range q {
		OutputLogger.Printf("Charge on atom %d (%s) = %16.12f", a+1, elementSymbol(geom.Atoms[a].Z), val)
	}
}

func printEnergyCheck(total, reference float64) {
	diff, percent := CheckEnergy(total, reference)
	printOutputDelimiter()
	OutputLogger.Printf("Reference energy:         %20.12f a.u.", reference)
	OutputLogger.Printf("%.6e off from expected results (%.6e percent)", diff, percent)
}
