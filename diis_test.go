// diis_test.go --  This file is part of goHF project.
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
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func scaledIdentity(n int, v float64) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, v)
	}
	return m
}

func TestDIISRingBuffer(t *testing.T) {
	d := NewDIIS(3)
	require.Equal(t, 3, d.Capacity())
	for k := 1; k <= 5; k++ {
		d.Push(scaledIdentity(2, float64(k)), scaledIdentity(2, float64(k)))
		require.LessOrEqual(t, d.Len(), d.Capacity())
	}
	require.Equal(t, 3, d.Len())

	var kept []float64
	for _, F := range d.focks {
		kept = append(kept, F.At(0, 0))
	}
	require.ElementsMatch(t, []float64{3, 4, 5}, kept)
}

func TestDIISPushCopies(t *testing.T) {
	d := NewDIIS(2)
	F := scaledIdentity(2, 1)
	d.Push(F, F)
	F.Set(0, 0, 42)
	require.Equal(t, 1.0, d.focks[0].At(0, 0))

	require.Panics(t, func() { d.Push(scaledIdentity(3, 1), scaledIdentity(3, 1)) })
	require.Panics(t, func() { NewDIIS(0) })
}

func TestDIISBuildB(t *testing.T) {
	d := NewDIIS(6)
	d.Push(scaledIdentity(2, 0), mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	d.Push(scaledIdentity(2, 0), mat.NewDense(2, 2, []float64{0, 1, 0, -1}))
	B := d.BuildB()
	want := mat.NewDense(3, 3, []float64{
		30, -2, -1,
		-2, 2, -1,
		-1, -1, 0,
	})
	require.True(t, mat.Equal(want, B))
}

func TestDIISExtrapolate(t *testing.T) {
	d := NewDIIS(6)
	errs := []*mat.Dense{
		mat.NewDense(2, 2, []float64{1, 0, 0, 0}),
		mat.NewDense(2, 2, []float64{0, 0, 0, 2}),
		mat.NewDense(2, 2, []float64{0.5, 0.1, 0.1, -0.5}),
	}
	for k, e := range errs {
		d.Push(scaledIdentity(2, float64(k+1)), e)
	}
	F, coefs, err := d.Extrapolate()
	require.NoError(t, err)
	require.Len(t, coefs, 3)
	require.InDelta(t, 1.0, floats.Sum(coefs), 1e-10)

	want := 0.0
	for k, c := range coefs {
		want += c * float64(k+1)
	}
	require.InDelta(t, want, F.At(0, 0), 1e-12)
	require.InDelta(t, want, F.At(1, 1), 1e-12)
	require.InDelta(t, 0.0, F.At(0, 1), 1e-15)
}

func TestDIISExtrapolateSinglePair(t *testing.T) {
	d := NewDIIS(6)
	F := mat.NewDense(2, 2, []float64{1, 2, 2, 3})
	d.Push(F, scaledIdentity(2, 0.1))
	Fx, coefs, err := d.Extrapolate()
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{1}, coefs, 1e-12)
	require.True(t, mat.EqualApprox(F, Fx, 1e-12))
}

func TestDIISExtrapolateSingular(t *testing.T) {
	d := NewDIIS(6)
	_, _, err := d.Extrapolate()
	require.ErrorIs(t, err, ErrExtrapolationFailure)

	e := mat.NewDense(2, 2, []float64{0.3, 0.1, 0.1, 0.2})
	d.Push(scaledIdentity(2, 1), e)
	d.Push(scaledIdentity(2, 2), e)
	_, _, err = d.Extrapolate()
	require.ErrorIs(t, err, ErrExtrapolationFailure)
}

func TestErrorMatrixVanishesAtConvergence(t *testing.T) {
	ints := loadWater(t)
	cfg := DefaultConfig()
	cfg.DIIS.Enabled = false
	rhf, err := NewRHF(ints, cfg)
	require.NoError(t, err)

	F := BuildFock(rhf.D, ints.CoreHamiltonian(), ints.TEI())
	before := maxAbs(ErrorMatrix(F, rhf.D, ints.Overlap(), rhf.SOM))
	require.Greater(t, before, 1e-2)

	require.NoError(t, rhf.Iterate(context.Background()))
	F = BuildFock(rhf.D, ints.CoreHamiltonian(), ints.TEI())
	require.Less(t, maxAbs(ErrorMatrix(F, rhf.D, ints.Overlap(), rhf.SOM)), 1e-6)
}

func TestDIISExtrapolateUsesNewestPair(t *testing.T) {
	d := NewDIIS(6)
	d.Push(scaledIdentity(2, 1), scaledIdentity(2, 0.5))
	d.Push(scaledIdentity(2, 2), mat.NewDense(2, 2, nil))
	F, coefs, err := d.Extrapolate()
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0, 1}, coefs, 1e-12)
	require.True(t, mat.EqualApprox(scaledIdentity(2, 2), F, 1e-12))
}
