// integrals.go --  This file is part of goHF project.
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

	"gonum.org/v1/gonum/mat"
)

const symmetryTol = 1e-10

// Integrals is the read-only store of one- and two-electron integrals
// of a molecule. It is never modified after NewIntegrals returns.
type Integrals struct {
	NBasis     int
	NElectrons int
	Enuc       float64
	s, t, v    *mat.Dense
	hcore      *mat.Dense
	tei        []float64
}

// NewIntegrals takes ownership of the given matrices and compressed
// two-electron array.
func NewIntegrals(nbasis, nelec int, enuc float64, s, t, v *mat.Dense, tei []float64) (*Integrals, error) {
	ints := &Integrals{
		NBasis:     nbasis,
		NElectrons: nelec,
		Enuc:       enuc,
		s:          s,
		t:          t,
		v:          v,
		tei:        tei,
	}
	if err := ints.Validate(); err != nil {
		return nil, err
	}
	ints.hcore = mat.NewDense(nbasis, nbasis, nil)
	ints.hcore.Add(t, v)
	return ints, nil
}

// Validate checks dimensions, symmetry and finiteness.
func (ints *Integrals) Validate() error {
	n := ints.NBasis
	if n <= 0 {
		return fmt.Errorf("basis size %d: %w", n, ErrShapeMismatch)
	}
	for name, m := range map[string]*mat.Dense{"overlap": ints.s, "kinetic": ints.t, "nuclear attraction": ints.v} {
		if m == nil {
			return fmt.Errorf("%s matrix is nil: %w", name, ErrShapeMismatch)
		}
		if r, c := m.Dims(); r != n || c != n {
			return fmt.Errorf("%s matrix is %dx%d, want %dx%d: %w", name, r, c, n, n, ErrShapeMismatch)
		}
		for i := 0; i < n; i++ {
			for j := 0; j < i; j++ {
				if math.Abs(m.At(i, j)-m.At(j, i)) > symmetryTol {
					return fmt.Errorf("%s matrix not symmetric at (%d,%d): %w", name, i, j, ErrShapeMismatch)
				}
			}
		}
	}
	if len(ints.tei) != TEISize(n) {
		return fmt.Errorf("two-electron array has %d entries, want %d: %w", len(ints.tei), TEISize(n), ErrShapeMismatch)
	}
	for idx, val := range ints.tei {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("two-electron integral %d is %v: %w", idx, val, ErrMissingInput)
		}
	}
	return nil
}

func (ints *Integrals) Overlap() mat.Matrix           { return ints.s }
func (ints *Integrals) Kinetic() mat.Matrix           { return ints.t }
func (ints *Integrals) NuclearAttraction() mat.Matrix { return ints.v }
func (ints *Integrals) NuclearRepulsionEnergy() float64 {
	return ints.Enuc
}

// CoreHamiltonian is T+V.
func (ints *Integrals) CoreHamiltonian() mat.Matrix { return ints.hcore }

// TwoElectron returns (ij|kl) in chemists' notation.
func (ints *Integrals) TwoElectron(i, j, k, l int) float64 {
	return ints.tei[CompoundIndex4(i, j, k, l)]
}

// TEI exposes the compressed array. Callers must not modify it.
func (ints *Integrals) TEI() []float64 { return ints.tei }
