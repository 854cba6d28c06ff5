// molecule.go --  This file is part of goHF project.
// Mirzaeva Irina, 2023
//
//  goHF is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty
//  of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//  See the GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with this program.  If not, see http://www.gnu.org/licenses/
//------------------------------------------------
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// GeomAtom is a nucleus: charge and coordinates in bohr.
type GeomAtom struct {
	Z      int
	Coords [3]float64
}

type Geometry struct {
	Atoms []GeomAtom
}

// Symb is indexed by nuclear charge.
var Symb = []string{"", "H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne"}

func elementSymbol(z int) string {
	if z < 1 || z >= len(Symb) {
		return "Z=" + strconv.Itoa(z)
	}
	return Symb[z]
}

type shell struct {
	exps, coeffs []float64
}

// sBasis lists the contracted s shells per basis set and element.
var sBasis = map[string]map[string][]shell{
	"sto-3g": {
		"H": {{
			exps:   []float64{0.3425250914e+01, 0.6239137298e+00, 0.1688554040e+00},
			coeffs: []float64{0.1543289673e+00, 0.5353281423e+00, 0.4446345422e+00},
		}},
		"He": {{
			exps:   []float64{0.6362421394e+01, 0.1158922999e+01, 0.3136497915e+00},
			coeffs: []float64{0.1543289673e+00, 0.5353281423e+00, 0.4446345422e+00},
		}},
	},
	"6-31g": {
		"H": {
			{
				exps:   []float64{0.1873113696e+02, 0.2825394365e+01, 0.6401216923e+00},
				coeffs: []float64{0.3349460434e-01, 0.2347269535e+00, 0.8137573261e+00},
			},
			{exps: []float64{0.1612777588e+00}, coeffs: []float64{1.0}},
		},
		"He": {
			{
				exps:   []float64{0.3842163400e+02, 0.5778030000e+01, 0.1241774000e+01},
				coeffs: []float64{0.2376600000e-01, 0.1546790000e+00, 0.4696300000e+00},
			},
			{exps: []float64{0.2979640000e+00}, coeffs: []float64{1.0}},
		},
	},
}

// AtomInput is one atom of the molecule file.
type AtomInput struct {
	Symbol string     `yaml:"symbol"`
	Coords [3]float64 `yaml:"coords"`
}

// Molecule is the input of the integral generator.
type Molecule struct {
	Charge int         `yaml:"charge"`
	Basis  string      `yaml:"basis"`
	Atoms  []AtomInput `yaml:"atoms"`
}

func LoadMolecule(fname string) (*Molecule, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingInput, err)
	}
	mol := &Molecule{Basis: "sto-3g"}
	if err := yaml.Unmarshal(data, mol); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingInput, fname, err)
	}
	if len(mol.Atoms) == 0 {
		return nil, fmt.Errorf("%w: %s: no atoms", ErrMissingInput, fname)
	}
	return mol, nil
}

func (m *Molecule) Geometry() (*Geometry, error) {
	geom := &Geometry{}
	for i, a := range m.Atoms {
		z := slices.Index(Symb, a.Symbol)
		if z < 1 {
			return nil, fmt.Errorf("%w: atom %d: unknown element %q", ErrMissingInput, i+1, a.Symbol)
		}
		geom.Atoms = append(geom.Atoms, GeomAtom{Z: z, Coords: a.Coords})
	}
	return geom, nil
}

func (m *Molecule) getNelec() int {
	result := -m.Charge
	for _, a := range m.Atoms {
		result += slices.Index(Symb, a.Symbol)
	}
	return result
}

// AOs expands the basis set on every atom.
func (m *Molecule) AOs() ([]AO, error) {
	bset, ok := sBasis[strings.ToLower(m.Basis)]
	if !ok {
		return nil, fmt.Errorf("%w: basis %q not available", ErrMissingInput, m.Basis)
	}
	var res []AO
	for i, a := range m.Atoms {
		shells, ok := bset[a.Symbol]
		if !ok {
			return nil, fmt.Errorf("%w: no %s basis for atom %s%s", ErrMissingInput, m.Basis, a.Symbol, strconv.Itoa(i+1))
		}
		for _, sh := range shells {
			res = append(res, NewAO(a.Coords, sh.exps, sh.coeffs))
		}
	}
	return res, nil
}

// GeneratedData is everything the generator writes to a data directory.
type GeneratedData struct {
	Ints   *Integrals
	Dipole [3]*mat.Dense
	Geom   *Geometry
}

// Generate computes all integrals of the molecule.
func (m *Molecule) Generate() (*GeneratedData, error) {
	geom, err := m.Geometry()
	if err != nil {
		return nil, err
	}
	aos, err := m.AOs()
	if err != nil {
		return nil, err
	}
	ints, err := NewIntegrals(len(aos), m.getNelec(), NuclearRepulsion(geom.Atoms),
		Overlap(aos), Kinetic(aos), NuclearAttraction(aos, geom.Atoms), ElectronRepulsion(aos))
	if err != nil {
		return nil, err
	}
	return &GeneratedData{Ints: ints, Dipole: Dipole(aos), Geom: geom}, nil
}

// Write stores the data in the layout read by LoadIntegrals.
func (g *GeneratedData) Write(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	n := g.Ints.NBasis
	if err := WriteInt(filepath.Join(dir, NBasisFile), n); err != nil {
		return err
	}
	if err := WriteInt(filepath.Join(dir, NElectronsFile), g.Ints.NElectrons); err != nil {
		return err
	}
	if err := WriteScalar(filepath.Join(dir, EnucFile), g.Ints.Enuc); err != nil {
		return err
	}
	files := map[string]mat.Matrix{
		OverlapFile:    g.Ints.Overlap(),
		KineticFile:    g.Ints.Kinetic(),
		PotentialFile:  g.Ints.NuclearAttraction(),
		DipoleFiles[0]: g.Dipole[0],
		DipoleFiles[1]: g.Dipole[1],
		DipoleFiles[2]: g.Dipole[2],
	}
	for name, m := range files {
		if err := WriteSymmetricMatrix(filepath.Join(dir, name), m); err != nil {
			return err
		}
	}
	if err := WriteTwoElectronIntegrals(filepath.Join(dir, TEIFile), n, g.Ints.TEI()); err != nil {
		return err
	}
	return WriteGeometry(filepath.Join(dir, GeometryFile), g.Geom)
}
