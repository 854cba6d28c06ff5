// errors.go --  This file is part of goHF project.
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

import "errors"

// Sentinel errors. Wrap with fmt.Errorf("...: %w", err) for context and
// match with errors.Is.
var (
	// ErrMissingInput is returned when an integral or geometry file is
	// absent or cannot be parsed.
	ErrMissingInput = errors.New("hfmp2: missing or unreadable input")

	// ErrNumericalDegeneracy signals a non positive-definite overlap matrix
	// or a vanishing MP2 denominator.
	ErrNumericalDegeneracy = errors.New("hfmp2: numerical degeneracy")

	// ErrExtrapolationFailure signals a singular DIIS system. Recoverable.
	ErrExtrapolationFailure = errors.New("hfmp2: DIIS extrapolation failed")

	// ErrNonConvergence is returned together with the best-effort state
	// when the iteration budget is exhausted.
	ErrNonConvergence = errors.New("hfmp2: SCF not converged")

	ErrOddElectrons  = errors.New("hfmp2: odd number of electrons in closed-shell calculation")
	ErrShapeMismatch = errors.New("hfmp2: matrix shape mismatch")
	ErrInvalidConfig = errors.New("hfmp2: invalid configuration")
)
