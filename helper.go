// helper.go --  This file is part of goHF project.
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
	"runtime"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// MinOverlapEigenvalue is the smallest overlap eigenvalue accepted for a
// non-redundant basis.
const MinOverlapEigenvalue = 1e-10

func PrintDense(D mat.Matrix) string {
	fa := mat.Formatted(D, mat.Prefix("    "), mat.Squeeze())
	return fmt.Sprintf("    %.8f", fa)
}

// SymmetricOrthogonalizer returns S^-1/2 = U Λ^-1/2 Uᵀ.
func SymmetricOrthogonalizer(S mat.Matrix) (*mat.Dense, error) {
	n, c := S.Dims()
	if n != c {
		return nil, fmt.Errorf("overlap is %dx%d: %w", n, c, ErrShapeMismatch)
	}
	Ssym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			Ssym.SetSym(i, j, S.At(i, j))
		}
	}
	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(Ssym, true); !ok {
		return nil, fmt.Errorf("overlap eigendecomposition failed: %w", ErrNumericalDegeneracy)
	}
	vals := eigsym.Values(nil)
	invSqrt := make([]float64, n)
	for i, v := range vals {
		if v <= MinOverlapEigenvalue {
			return nil, fmt.Errorf("overlap eigenvalue %d is %g, matrix not positive-definite: %w", i, v, ErrNumericalDegeneracy)
		}
		invSqrt[i] = 1 / math.Sqrt(v)
	}
	var ev mat.Dense
	eigsym.VectorsTo(&ev)

	var som mat.Dense
	som.Mul(&ev, mat.NewDiagDense(n, invSqrt))
	som.Mul(&som, ev.T())
	return &som, nil
}

// similarity returns Aᵀ M A.
func similarity(A, M mat.Matrix) *mat.Dense {
	var res mat.Dense
	res.Mul(A.T(), M)
	res.Mul(&res, A)
	return &res
}

// maxAbs is the largest absolute element of m.
func maxAbs(m mat.Matrix) float64 {
	r, c := m.Dims()
	res := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			res = math.Max(res, math.Abs(m.At(i, j)))
		}
	}
	return res
}

// rmsElements is the root mean square of the elements of m.
func rmsElements(m mat.Matrix) float64 {
	res := mat.DenseCopyOf(m)
	res.MulElem(res, res)
	return math.Sqrt(stat.Mean(res.RawMatrix().Data, nil))
}

// frobeniusDiff is sqrt(Σ (a-b)^2).
func frobeniusDiff(a, b mat.Matrix) float64 {
	var diff mat.Dense
	diff.Sub(a, b)
	return mat.Norm(&diff, 2)
}

func memStats() string {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	return fmt.Sprintf("Alloc: %d bytes, TotalAlloc: %d bytes, HeapAlloc: %d bytes, HeapSys: %d bytes",
		memStats.Alloc, memStats.TotalAlloc, memStats.HeapAlloc, memStats.HeapSys)
}
