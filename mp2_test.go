// mp2_test.go --  This file is part of goHF project.
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
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestTransformToMOIdentity(t *testing.T) {
	ints := loadWater(t)
	id := scaledIdentity(ints.NBasis, 1)
	require.InDeltaSlice(t, ints.TEI(), TransformToMO(ints.TEI(), id), 1e-12)
}

func TestTransformToMOMatchesDirectSum(t *testing.T) {
	const n = 3
	tei := make([]float64, TEISize(n))
	for k := range tei {
		tei[k] = math.Sin(float64(k + 1))
	}
	C := mat.NewDense(n, n, nil)
	for p := 0; p < n; p++ {
		for i := 0; i < n; i++ {
			C.Set(p, i, math.Cos(float64(2*p+5*i)))
		}
	}
	mo := TransformToMO(tei, C)

	ao := func(p, q, r, s int) float64 { return tei[CompoundIndex4(p, q, r, s)] }
	for _, idx := range [][4]int{{0, 0, 0, 0}, {1, 0, 2, 1}, {2, 2, 1, 0}, {2, 1, 2, 1}, {2, 2, 2, 2}} {
		i, j, k, l := idx[0], idx[1], idx[2], idx[3]
		want := 0.0
		for p := 0; p < n; p++ {
			for q := 0; q < n; q++ {
				for r := 0; r < n; r++ {
					for s := 0; s < n; s++ {
						want += C.At(p, i) * C.At(q, j) * C.At(r, k) * C.At(s, l) * ao(p, q, r, s)
					}
				}
			}
		}
		require.InDelta(t, want, mo[CompoundIndex4(i, j, k, l)], 1e-12, "(%d%d|%d%d)", i, j, k, l)
	}
}

func TestMP2EnergyTwoOrbitals(t *testing.T) {
	// one occupied and one virtual orbital: E(2) = K²/(2(ε1-ε2))
	const K = 0.2
	tei := make([]float64, TEISize(2))
	tei[CompoundIndex4(0, 1, 0, 1)] = K
	tei[CompoundIndex4(0, 0, 0, 0)] = 0.7
	tei[CompoundIndex4(0, 0, 1, 1)] = 0.6
	eps := []float64{-0.5, 0.7}

	e2, err := MP2Energy(tei, eps, 2)
	require.NoError(t, err)
	require.InDelta(t, K*K/(2*(eps[0]-eps[1])), e2, 1e-15)
	require.Less(t, e2, 0.0)
}

func TestMP2EnergyDegenerate(t *testing.T) {
	tei := make([]float64, TEISize(2))
	_, err := MP2Energy(tei, []float64{0.25, 0.25}, 2)
	require.ErrorIs(t, err, ErrNumericalDegeneracy)
}

func TestMP2EnergyNoVirtuals(t *testing.T) {
	e2, err := MP2Energy(make([]float64, TEISize(1)), []float64{-1}, 2)
	require.NoError(t, err)
	require.Zero(t, e2)
}
