// fock.go --  This file is part of goHF project.
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
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// BuildFock returns F(i,j) = Hcore(i,j) + Σ_kl D(k,l) [2(ij|kl) - (ik|jl)].
//
// Rows are shared between goroutines. Every element is accumulated by one
// goroutine in a fixed (k,l) order, so the result does not depend on
// GOMAXPROCS.
func BuildFock(D, Hcore mat.Matrix, tei []float64) *mat.Dense {
	n, c := Hcore.Dims()
	if dr, dc := D.Dims(); dr != n || dc != n || c != n {
		panic(fmt.Sprintf("BuildFock: density %dx%d, core Hamiltonian %dx%d", dr, dc, n, c))
	}
	if len(tei) != TEISize(n) {
		panic(fmt.Sprintf("BuildFock: %d two-electron integrals for %d basis functions", len(tei), n))
	}
	dens := mat.DenseCopyOf(D).RawMatrix().Data
	res := make([]float64, n*n)

	row := func(i int) {
		for j := 0; j <= i; j++ {
			ij := CompoundIndex(i, j)
			g := 0.0
			for k := 0; k < n; k++ {
				ik := CompoundIndex(i, k)
				for l := 0; l < n; l++ {
					g += dens[k*n+l] * (2*tei[CompoundIndex(ij, CompoundIndex(k, l))] - tei[CompoundIndex(ik, CompoundIndex(j, l))])
				}
			}
			f := Hcore.At(i, j) + g
			res[i*n+j] = f
			res[j*n+i] = f
		}
	}

	workers := runtime.GOMAXPROCS(-1)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			row(i)
		}
		return mat.NewDense(n, n, res)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < n; i += workers {
				row(i)
			}
		}(w)
	}
	wg.Wait()
	return mat.NewDense(n, n, res)
}
