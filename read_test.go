// read_test.go --  This file is part of goHF project.
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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLoadIntegralsWater(t *testing.T) {
	ints := loadWater(t)
	require.Equal(t, 7, ints.NBasis)
	require.Equal(t, 10, ints.NElectrons)
	require.InDelta(t, 8.002367061810769, ints.NuclearRepulsionEnergy(), 1e-12)

	S := ints.Overlap()
	require.Equal(t, 1.0, S.At(0, 0))
	require.InDelta(t, 0.236703936510848, S.At(1, 0), 1e-15)
	require.True(t, mat.Equal(S, S.T()))

	var h mat.Dense
	h.Add(ints.Kinetic(), ints.NuclearAttraction())
	require.True(t, mat.Equal(&h, ints.CoreHamiltonian()))

	require.InDelta(t, 4.785065404705505, ints.TwoElectron(0, 0, 0, 0), 1e-15)
	for _, v := range []float64{
		ints.TwoElectron(1, 0, 0, 0),
		ints.TwoElectron(0, 1, 0, 0),
		ints.TwoElectron(0, 0, 0, 1),
		ints.TwoElectron(0, 0, 1, 0),
	} {
		require.InDelta(t, 0.741380351973408, v, 1e-15)
	}
	require.InDelta(t, 1.118946866342470, ints.TwoElectron(0, 0, 1, 1), 1e-15)
}

func TestLoadIntegralsMissingFiles(t *testing.T) {
	_, err := LoadIntegrals(t.TempDir())
	require.ErrorIs(t, err, ErrMissingInput)

	dir := t.TempDir()
	require.NoError(t, WriteInt(filepath.Join(dir, NBasisFile), 2))
	require.NoError(t, WriteInt(filepath.Join(dir, NElectronsFile), 2))
	require.NoError(t, WriteScalar(filepath.Join(dir, EnucFile), 0.5))
	_, err = LoadIntegrals(dir)
	require.ErrorIs(t, err, ErrMissingInput)
	require.ErrorContains(t, err, OverlapFile)
}

func TestLoadSymmetricMatrixErrors(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"range.dat":  "1 1 1.0\n3 1 0.5\n",
		"short.dat":  "1 1\n",
		"number.dat": "1 1 one\n",
		"index.dat":  "a 1 1.0\n",
	} {
		fname := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(fname, []byte(body), 0644))
		_, err := loadSymmetricMatrix(fname, 2)
		require.ErrorIs(t, err, ErrMissingInput, name)
	}
}

func TestLoadSymmetricMatrixMirrors(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "m.dat")
	require.NoError(t, os.WriteFile(fname, []byte("1 1 2.0\n\n2 1 -0.5\n2 2 3.0\n"), 0644))
	m, err := loadSymmetricMatrix(fname, 2)
	require.NoError(t, err)
	require.Equal(t, []float64{2, -0.5, -0.5, 3}, m.RawMatrix().Data)
}

func TestLoadNonIntegerCount(t *testing.T) {
	fname := filepath.Join(t.TempDir(), NBasisFile)
	require.NoError(t, os.WriteFile(fname, []byte("7.5\n"), 0644))
	_, err := loadInt(fname)
	require.ErrorIs(t, err, ErrMissingInput)
}

func TestLoadGeometry(t *testing.T) {
	geom, err := LoadGeometry(filepath.Join(waterDir, GeometryFile))
	require.NoError(t, err)
	require.Len(t, geom.Atoms, 3)
	require.Equal(t, 8, geom.Atoms[0].Z)
	require.Equal(t, 1, geom.Atoms[1].Z)
	require.InDelta(t, -0.143225816552, geom.Atoms[0].Coords[1], 1e-12)
	require.InDelta(t, -1.638036840407, geom.Atoms[2].Coords[0], 1e-12)

	fname := filepath.Join(t.TempDir(), GeometryFile)
	require.NoError(t, os.WriteFile(fname, []byte("2\n1 0 0 0\n"), 0644))
	_, err = LoadGeometry(fname)
	require.ErrorIs(t, err, ErrMissingInput)
}

func TestLoadDipoleIntegrals(t *testing.T) {
	mu, err := LoadDipoleIntegrals(waterDir, 7)
	require.NoError(t, err)
	for k := range mu {
		r, c := mu[k].Dims()
		require.Equal(t, 7, r)
		require.Equal(t, 7, c)
		require.True(t, mat.Equal(mu[k], mu[k].T()))
	}
}
