// config.go --  This file is part of goHF project.
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
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTolE          = 1e-10
	DefaultTolDens       = 1e-8
	DefaultMaxIterations = 100
	DefaultDIISSize      = 6
	DefaultDIISTol       = 1e-4
	DefaultDIISStart     = 10.0
	DefaultDIISMinIter   = 2
)

type Config struct {
	DataDir         string     `yaml:"data_dir"`
	Output          string     `yaml:"output"`
	TolE            float64    `yaml:"tol_e"`
	TolDens         float64    `yaml:"tol_dens"`
	MaxIterations   int        `yaml:"max_iterations"`
	NProcs          int        `yaml:"nprocs"`
	MP2             bool       `yaml:"mp2"`
	Dipole          bool       `yaml:"dipole"`
	MullikenOffsets []int      `yaml:"mulliken_offsets"`
	ReferenceEnergy float64    `yaml:"reference_energy"`
	PrintState      bool       `yaml:"print_state"`
	DIIS            DIISConfig `yaml:"diis"`
}

type DIISConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Size          int     `yaml:"size"`
	Tolerance     float64 `yaml:"tolerance"`
	StartError    float64 `yaml:"start_error"`
	MinIterations int     `yaml:"min_iterations"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:       "data",
		TolE:          DefaultTolE,
		TolDens:       DefaultTolDens,
		MaxIterations: DefaultMaxIterations,
		MP2:           true,
		DIIS: DIISConfig{
			Enabled:       true,
			Size:          DefaultDIISSize,
			Tolerance:     DefaultDIISTol,
			StartError:    DefaultDIISStart,
			MinIterations: DefaultDIISMinIter,
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.TolE <= 0:
		return fmt.Errorf("tol_e must be positive, got %g: %w", c.TolE, ErrInvalidConfig)
	case c.TolDens <= 0:
		return fmt.Errorf("tol_dens must be positive, got %g: %w", c.TolDens, ErrInvalidConfig)
	case c.MaxIterations < 1:
		return fmt.Errorf("max_iterations must be at least 1, got %d: %w", c.MaxIterations, ErrInvalidConfig)
	case c.NProcs < 0:
		return fmt.Errorf("nprocs must not be negative, got %d: %w", c.NProcs, ErrInvalidConfig)
	case c.DIIS.Size < 1:
		return fmt.Errorf("diis.size must be at least 1, got %d: %w", c.DIIS.Size, ErrInvalidConfig)
	case c.DIIS.Tolerance <= 0:
		return fmt.Errorf("diis.tolerance must be positive, got %g: %w", c.DIIS.Tolerance, ErrInvalidConfig)
	case c.DIIS.StartError <= 0:
		return fmt.Errorf("diis.start_error must be positive, got %g: %w", c.DIIS.StartError, ErrInvalidConfig)
	case c.DIIS.MinIterations < 0:
		return fmt.Errorf("diis.min_iterations must not be negative, got %d: %w", c.DIIS.MinIterations, ErrInvalidConfig)
	}
	if len(c.MullikenOffsets) == 1 {
		return fmt.Errorf("mulliken_offsets needs at least two entries: %w", ErrInvalidConfig)
	}
	for i := 1; i < len(c.MullikenOffsets); i++ {
		if c.MullikenOffsets[i] < c.MullikenOffsets[i-1] {
			return fmt.Errorf("mulliken_offsets must be non-decreasing: %w", ErrInvalidConfig)
		}
	}
	return nil
}
