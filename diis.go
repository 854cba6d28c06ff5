// diis.go --  This file is part of goHF project.
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

// coefSumTol bounds |Σ x_i - 1| for an accepted DIIS solution.
const coefSumTol = 1e-6

// DIIS keeps the last capacity (Fock, error) pairs in a ring buffer.
// Once full, each Push overwrites the oldest pair.
type DIIS struct {
	capacity int
	focks    []*mat.Dense
	errs     []*mat.Dense
	next     int
	count    int
}

func NewDIIS(capacity int) *DIIS {
	if capacity < 1 {
		panic(fmt.Sprintf("NewDIIS: capacity %d", capacity))
	}
	return &DIIS{
		capacity: capacity,
		focks:    make([]*mat.Dense, capacity),
		errs:     make([]*mat.Dense, capacity),
	}
}

// Push stores copies of F and its error matrix e.
func (d *DIIS) Push(F, e mat.Matrix) {
	fr, fc := F.Dims()
	er, ec := e.Dims()
	if fr != er || fc != ec {
		panic(fmt.Sprintf("DIIS.Push: Fock %dx%d, error %dx%d", fr, fc, er, ec))
	}
	if d.count > 0 {
		if r, c := d.focks[0].Dims(); r != fr || c != fc {
			panic(fmt.Sprintf("DIIS.Push: Fock %dx%d, history %dx%d", fr, fc, r, c))
		}
	}
	d.focks[d.next] = mat.DenseCopyOf(F)
	d.errs[d.next] = mat.DenseCopyOf(e)
	d.next = (d.next + 1) % d.capacity
	if d.count < d.capacity {
		d.count++
	}
}

// Len is the number of stored pairs, at most the capacity.
func (d *DIIS) Len() int { return d.count }

func (d *DIIS) Capacity() int { return d.capacity }

// BuildB returns the (N+1)x(N+1) DIIS matrix
//
//	B(i,j) = trace(e_i e_jᵀ), B(i,N) = B(N,i) = -1, B(N,N) = 0.
func (d *DIIS) BuildB() *mat.Dense {
	N := d.count
	result := mat.NewDense(N+1, N+1, nil)
	r, c := d.errs[0].Dims()
	b := mat.NewDense(r, c, nil)
	for i := 0; i < N; i++ {
		result.Set(i, N, -1)
		result.Set(N, i, -1)
		for j := 0; j <= i; j++ {
			b.MulElem(d.errs[i], d.errs[j])
			val := mat.Sum(b)
			result.Set(i, j, val)
			result.Set(j, i, val)
		}
	}
	return result
}

// Extrapolate solves B x = (0,...,0,-1) and returns Σ x_i F_i together
// with the coefficients x_0..x_{N-1}. The Lagrange multiplier is dropped.
// All stored pairs take part, including the one pushed last.
// A singular or ill-conditioned system yields ErrExtrapolationFailure.
func (d *DIIS) Extrapolate() (*mat.Dense, []float64, error) {
	N := d.count
	if N == 0 {
		return nil, nil, fmt.Errorf("empty history: %w", ErrExtrapolationFailure)
	}
	bmat := d.BuildB()
	rhs := mat.NewVecDense(N+1, nil)
	rhs.SetVec(N, -1)

	var lu mat.LU
	lu.Factorize(bmat)
	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, rhs); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrExtrapolationFailure, err)
	}
	coefs := make([]float64, N)
	for i := range coefs {
		coefs[i] = x.AtVec(i)
	}
	for _, c := range coefs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, nil, fmt.Errorf("%w: non-finite coefficient", ErrExtrapolationFailure)
		}
	}
	if s := floats.Sum(coefs); math.Abs(s-1) > coefSumTol {
		return nil, nil, fmt.Errorf("%w: coefficients sum to %g", ErrExtrapolationFailure, s)
	}

	r, c := d.focks[0].Dims()
	F := mat.NewDense(r, c, nil)
	fpart := mat.NewDense(r, c, nil)
	for i, coef := range coefs {
		fpart.Scale(coef, d.focks[i])
		F.Add(F, fpart)
	}
	return F, coefs, nil
}

// ErrorMatrix is the orthogonal-basis commutator SOMᵀ (FDS - SDF) SOM.
// It vanishes at self-consistency.
func ErrorMatrix(F, D, S, SOM mat.Matrix) *mat.Dense {
	var fds, sdf mat.Dense
	fds.Mul(F, D)
	fds.Mul(&fds, S)
	sdf.Mul(S, D)
	sdf.Mul(&sdf, F)
	fds.Sub(&fds, &sdf)
	return similarity(SOM, &fds)
}
