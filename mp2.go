// mp2.go --  This file is part of goHF project.
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
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// MinDenominator is the smallest |ε_i+ε_j-ε_a-ε_b| accepted by MP2Energy.
const MinDenominator = 1e-8

// TransformToMO re-expresses the compressed AO two-electron array in the
// basis of the columns of C.
//
// The full tensor is held as an n x n³ matrix X[p, qrs]. Each quarter
// transform Xᵀ C is an n³ x n product whose rows are [qrs, i], which is the
// same tensor with the contracted index moved last. Four passes give
// [i, j, k, l] at O(n^5) cost.
func TransformToMO(tei []float64, C mat.Matrix) []float64 {
	n, m := C.Dims()
	if n != m {
		panic(fmt.Sprintf("TransformToMO: coefficient matrix is %dx%d", n, m))
	}
	if len(tei) != TEISize(n) {
		panic(fmt.Sprintf("TransformToMO: %d two-electron integrals for %d basis functions", len(tei), n))
	}
	n2 := n * n
	n3 := n2 * n

	full := make([]float64, n3*n)
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			pq := CompoundIndex(p, q)
			for r := 0; r < n; r++ {
				for s := 0; s < n; s++ {
					full[p*n3+q*n2+r*n+s] = tei[CompoundIndex(pq, CompoundIndex(r, s))]
				}
			}
		}
	}

	X := mat.NewDense(n, n3, full)
	for pass := 0; pass < 4; pass++ {
		var Y mat.Dense
		Y.Mul(X.T(), C)
		X = mat.NewDense(n, n3, Y.RawMatrix().Data)
	}
	full = X.RawMatrix().Data

	res := make([]float64, len(tei))
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			ij := CompoundIndex(i, j)
			for k := 0; k < n; k++ {
				for l := 0; l <= k; l++ {
					kl := CompoundIndex(k, l)
					if kl > ij {
						continue
					}
					res[CompoundIndex(ij, kl)] = full[i*n3+j*n2+k*n+l]
				}
			}
		}
	}
	return res
}

// MP2Energy is the closed-shell second-order correction
//
//	E(2) = Σ_ij^occ Σ_ab^virt (ia|jb) [2(ia|jb) - (ib|ja)] / (ε_i+ε_j-ε_a-ε_b).
func MP2Energy(teiMO []float64, eps []float64, nElectrons int) (float64, error) {
	n := len(eps)
	if len(teiMO) != TEISize(n) {
		panic(fmt.Sprintf("MP2Energy: %d integrals for %d orbitals", len(teiMO), n))
	}
	occ := nElectrons / 2
	res := 0.0
	for i := 0; i < occ; i++ {
		for j := 0; j < occ; j++ {
			for a := occ; a < n; a++ {
				for b := occ; b < n; b++ {
					denom := eps[i] + eps[j] - eps[a] - eps[b]
					if math.Abs(denom) < MinDenominator {
						return 0, fmt.Errorf("orbitals %d,%d -> %d,%d have denominator %g: %w", i, j, a, b, denom, ErrNumericalDegeneracy)
					}
					iajb := teiMO[CompoundIndex4(i, a, j, b)]
					ibja := teiMO[CompoundIndex4(i, b, j, a)]
					res += iajb * (2*iajb - ibja) / denom
				}
			}
		}
	}
	return res, nil
}

// MOBasisFock returns Cᵀ F C, diagonal with the orbital energies once
// the SCF has converged.
func (rhf *RHF) MOBasisFock() *mat.Dense {
	return similarity(rhf.C, rhf.F)
}

// MP2Correction transforms the integrals with the current orbitals and
// stores the MP2 energy in EMP2.
func (rhf *RHF) MP2Correction() (float64, error) {
	if rhf.State != Converged {
		WarningLogger.Println("MP2 correction on unconverged orbitals")
	}
	tstart := time.Now()
	teiMO := TransformToMO(rhf.Ints.TEI(), rhf.C)
	InfoLogger.Println("AO->MO transformation done...", time.Since(tstart))
	emp2, err := MP2Energy(teiMO, rhf.Eps, rhf.Ints.NElectrons)
	if err != nil {
		return 0, err
	}
	rhf.EMP2 = emp2
	return emp2, nil
}
