// analysis.go --  This file is part of goHF project.
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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DipoleMoment returns μ_k = 2 Σ D(μ,ν) mu_k(μ,ν) + Σ_A Z_A R_Ak in atomic
// units. The integrals carry the electron charge sign.
func DipoleMoment(D mat.Matrix, mu [3]*mat.Dense, geom *Geometry) [3]float64 {
	var res [3]float64
	var prod mat.Dense
	for k := range res {
		prod.MulElem(D, mu[k])
		res[k] = 2 * mat.Sum(&prod)
		for _, a := range geom.Atoms {
			res[k] += float64(a.Z) * a.Coords[k]
		}
	}
	return res
}

// DipoleNorm is |μ|.
func DipoleNorm(mu [3]float64) float64 {
	return floats.Norm(mu[:], 2)
}

// MullikenCharges returns q_A = Z_A - 2 Σ_{μ on A} (DS)_μμ. Basis
// functions offsets[A]..offsets[A+1]-1 belong to atom A.
func MullikenCharges(D, S mat.Matrix, geom *Geometry, offsets []int) ([]float64, error) {
	n, _ := D.Dims()
	if len(offsets) != len(geom.Atoms)+1 {
		return nil, fmt.Errorf("%d basis offsets for %d atoms: %w", len(offsets), len(geom.Atoms), ErrInvalidConfig)
	}
	if offsets[0] != 0 || offsets[len(offsets)-1] != n {
		return nil, fmt.Errorf("basis offsets must span 0..%d: %w", n, ErrInvalidConfig)
	}
	var DS mat.Dense
	DS.Mul(D, S)
	res := make([]float64, len(geom.Atoms))
	for a, atm := range geom.Atoms {
		q := float64(atm.Z)
		for mu := offsets[a]; mu < offsets[a+1]; mu++ {
			q -= 2 * DS.At(mu, mu)
		}
		res[a] = q
	}
	return res, nil
}

// CheckEnergy compares a total energy with a reference value and returns
// the absolute and percent deviation.
func CheckEnergy(total, reference float64) (float64, float64) {
	diff := total - reference
	return diff, 100 * diff / math.Abs(reference)
}
