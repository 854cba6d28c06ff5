// analysis_test.go --  This file is part of goHF project.
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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func convergedWater(t *testing.T) *RHF {
	t.Helper()
	rhf, err := NewRHF(loadWater(t), tightConfig())
	require.NoError(t, err)
	require.NoError(t, rhf.DIISIterate(context.Background()))
	return rhf
}

func TestWaterProperties(t *testing.T) {
	rhf := convergedWater(t)
	geom, err := LoadGeometry(filepath.Join(waterDir, GeometryFile))
	require.NoError(t, err)

	t.Run("dipole", func(t *testing.T) {
		dipoles, err := LoadDipoleIntegrals(waterDir, rhf.Ints.NBasis)
		require.NoError(t, err)
		mu := DipoleMoment(rhf.D, dipoles, geom)
		require.InDelta(t, 0.0, mu[0], 1e-8)
		require.InDelta(t, waterDipoleY, mu[1], 1e-6)
		require.InDelta(t, 0.0, mu[2], 1e-8)
		require.InDelta(t, waterDipoleY, DipoleNorm(mu), 1e-6)
	})

	t.Run("mulliken", func(t *testing.T) {
		q, err := MullikenCharges(rhf.D, rhf.Ints.Overlap(), geom, []int{0, 5, 6, 7})
		require.NoError(t, err)
		require.Len(t, q, 3)
		require.InDelta(t, waterChargeO, q[0], 1e-6)
		require.InDelta(t, -waterChargeO/2, q[1], 1e-6)
		require.InDelta(t, q[1], q[2], 1e-8)
		require.InDelta(t, 0.0, floats.Sum(q), 1e-8)
	})

	t.Run("bad offsets", func(t *testing.T) {
		_, err := MullikenCharges(rhf.D, rhf.Ints.Overlap(), geom, []int{0, 5, 7})
		require.ErrorIs(t, err, ErrInvalidConfig)
		_, err = MullikenCharges(rhf.D, rhf.Ints.Overlap(), geom, []int{0, 5, 6, 8})
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestCheckEnergy(t *testing.T) {
	diff, percent := CheckEnergy(-75.5, -75.0)
	require.Equal(t, -0.5, diff)
	require.InDelta(t, -2.0/3, percent, 1e-12)

	diff, percent = CheckEnergy(-1.0, -1.0)
	require.Zero(t, diff)
	require.Zero(t, percent)
}
