// config_test.go --  This file is part of goHF project.
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
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, DefaultTolE, cfg.TolE)
	require.Equal(t, DefaultTolDens, cfg.TolDens)
	require.Equal(t, 6, cfg.DIIS.Size)
	require.True(t, cfg.DIIS.Enabled)
	require.True(t, cfg.MP2)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("testdata/h2o.yaml")
	require.NoError(t, err)
	require.Equal(t, waterDir, cfg.DataDir)
	require.Equal(t, []int{0, 5, 6, 7}, cfg.MullikenOffsets)
	require.True(t, cfg.Dipole)
	require.Equal(t, 1e-8, cfg.DIIS.Tolerance)
	require.Equal(t, -74.991229564312, cfg.ReferenceEnergy)
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(fname, []byte("max_iterations: 20\ndiis:\n  size: 4\n"), 0644))
	cfg, err := LoadConfig(fname)
	require.NoError(t, err)
	require.Equal(t, 20, cfg.MaxIterations)
	require.Equal(t, 4, cfg.DIIS.Size)
	require.Equal(t, DefaultDIISTol, cfg.DIIS.Tolerance)
	require.Equal(t, DefaultTolE, cfg.TolE)
	require.True(t, cfg.DIIS.Enabled)
}

func TestSaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MullikenOffsets = []int{0, 1, 2}
	cfg.DIIS.Enabled = false
	fname := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, SaveConfig(fname, cfg))

	loaded, err := LoadConfig(fname)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestConfigValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"tol_e":          func(c *Config) { c.TolE = 0 },
		"tol_dens":       func(c *Config) { c.TolDens = -1 },
		"max_iterations": func(c *Config) { c.MaxIterations = 0 },
		"nprocs":         func(c *Config) { c.NProcs = -2 },
		"diis.size":      func(c *Config) { c.DIIS.Size = 0 },
		"diis.tolerance": func(c *Config) { c.DIIS.Tolerance = 0 },
		"diis.start":     func(c *Config) { c.DIIS.StartError = 0 },
		"diis.min":       func(c *Config) { c.DIIS.MinIterations = -1 },
		"mulliken one":   func(c *Config) { c.MullikenOffsets = []int{3} },
		"mulliken order": func(c *Config) { c.MullikenOffsets = []int{0, 3, 2} },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	fname := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(fname, []byte("tol_e: -1\n"), 0644))
	_, err := LoadConfig(fname)
	require.ErrorIs(t, err, ErrInvalidConfig)
}
