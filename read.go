// read.go --  This file is part of goHF project.
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
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Names of the files in an integral data directory.
const (
	NBasisFile     = "nBasis.dat"
	NElectronsFile = "nElectrons.dat"
	EnucFile       = "enuc.dat"
	OverlapFile    = "s.dat"
	KineticFile    = "t.dat"
	PotentialFile  = "v.dat"
	TEIFile        = "eri.dat"
	GeometryFile   = "geom.dat"
)

var DipoleFiles = [3]string{"mux.dat", "muy.dat", "muz.dat"}

func ReadFileLines(fname string) ([]string, error) {
	var result []string

	file, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingInput, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		result = append(result, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingInput, fname, err)
	}
	return result, nil
}

func badLine(fname string, line int, format string, args ...any) error {
	return fmt.Errorf("%w: %s:%d: %s", ErrMissingInput, fname, line+1, fmt.Sprintf(format, args...))
}

func loadScalar(fname string) (float64, error) {
	data, err := ReadFileLines(fname)
	if err != nil {
		return 0, err
	}
	for i, str := range data {
		words := strings.Fields(str)
		if len(words) == 0 {
			continue
		}
		val, err := strconv.ParseFloat(words[0], 64)
		if err != nil {
			return 0, badLine(fname, i, "%v", err)
		}
		return val, nil
	}
	return 0, fmt.Errorf("%w: %s is empty", ErrMissingInput, fname)
}

func loadInt(fname string) (int, error) {
	val, err := loadScalar(fname)
	if err != nil {
		return 0, err
	}
	if val != math.Trunc(val) {
		return 0, fmt.Errorf("%w: %s: %v is not an integer", ErrMissingInput, fname, val)
	}
	return int(val), nil
}

// parseIndices reads len(idx) 1-based indices from words and checks them
// against n.
func parseIndices(fname string, line int, words []string, n int, idx []int) error {
	for k := range idx {
		v, err := strconv.Atoi(words[k])
		if err != nil {
			return badLine(fname, line, "%v", err)
		}
		if v < 1 || v > n {
			return badLine(fname, line, "index %d outside 1..%d", v, n)
		}
		idx[k] = v - 1
	}
	return nil
}

// loadSymmetricMatrix reads "row col value" lines and fills both
// triangles.
func loadSymmetricMatrix(fname string, n int) (*mat.Dense, error) {
	data, err := ReadFileLines(fname)
	if err != nil {
		return nil, err
	}
	result := mat.NewDense(n, n, nil)
	idx := make([]int, 2)
	for i, str := range data {
		words := strings.Fields(str)
		if len(words) == 0 {
			continue
		}
		if len(words) < 3 {
			return nil, badLine(fname, i, "want 'i j value', got %q", str)
		}
		if err := parseIndices(fname, i, words, n, idx); err != nil {
			return nil, err
		}
		val, err := strconv.ParseFloat(words[2], 64)
		if err != nil {
			return nil, badLine(fname, i, "%v", err)
		}
		result.Set(idx[0], idx[1], val)
		result.Set(idx[1], idx[0], val)
	}
	return result, nil
}

// loadTwoElectronIntegrals reads "i j k l value" lines. One compressed
// slot serves all eight equivalent permutations.
func loadTwoElectronIntegrals(fname string, n int) ([]float64, error) {
	data, err := ReadFileLines(fname)
	if err != nil {
		return nil, err
	}
	result := make([]float64, TEISize(n))
	idx := make([]int, 4)
	for i, str := range data {
		words := strings.Fields(str)
		if len(words) == 0 {
			continue
		}
		if len(words) < 5 {
			return nil, badLine(fname, i, "want 'i j k l value', got %q", str)
		}
		if err := parseIndices(fname, i, words, n, idx); err != nil {
			return nil, err
		}
		val, err := strconv.ParseFloat(words[4], 64)
		if err != nil {
			return nil, badLine(fname, i, "%v", err)
		}
		result[CompoundIndex4(idx[0], idx[1], idx[2], idx[3])] = val
	}
	return result, nil
}

// LoadGeometry reads the atom count followed by "Z x y z" lines.
func LoadGeometry(fname string) (*Geometry, error) {
	data, err := ReadFileLines(fname)
	if err != nil {
		return nil, err
	}
	var lines []int
	for i, str := range data {
		if len(strings.Fields(str)) > 0 {
			lines = append(lines, i)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrMissingInput, fname)
	}
	natom, err := strconv.Atoi(strings.Fields(data[lines[0]])[0])
	if err != nil {
		return nil, badLine(fname, lines[0], "%v", err)
	}
	if natom < 1 || len(lines)-1 < natom {
		return nil, fmt.Errorf("%w: %s: declared %d atoms, found %d", ErrMissingInput, fname, natom, len(lines)-1)
	}
	geom := &Geometry{Atoms: make([]GeomAtom, natom)}
	for a := 0; a < natom; a++ {
		ln := lines[a+1]
		words := strings.Fields(data[ln])
		if len(words) < 4 {
			return nil, badLine(fname, ln, "want 'Z x y z', got %q", data[ln])
		}
		z, err := strconv.ParseFloat(words[0], 64)
		if err != nil {
			return nil, badLine(fname, ln, "%v", err)
		}
		geom.Atoms[a].Z = int(math.Round(z))
		for k := 0; k < 3; k++ {
			geom.Atoms[a].Coords[k], err = strconv.ParseFloat(words[k+1], 64)
			if err != nil {
				return nil, badLine(fname, ln, "%v", err)
			}
		}
	}
	return geom, nil
}

// LoadIntegrals reads a complete integral data directory.
func LoadIntegrals(dir string) (*Integrals, error) {
	n, err := loadInt(filepath.Join(dir, NBasisFile))
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: basis size %d", ErrMissingInput, n)
	}
	nelec, err := loadInt(filepath.Join(dir, NElectronsFile))
	if err != nil {
		return nil, err
	}
	enuc, err := loadScalar(filepath.Join(dir, EnucFile))
	if err != nil {
		return nil, err
	}
	var oneE [3]*mat.Dense
	for k, name := range []string{OverlapFile, KineticFile, PotentialFile} {
		oneE[k], err = loadSymmetricMatrix(filepath.Join(dir, name), n)
		if err != nil {
			return nil, err
		}
	}
	tei, err := loadTwoElectronIntegrals(filepath.Join(dir, TEIFile), n)
	if err != nil {
		return nil, err
	}
	return NewIntegrals(n, nelec, enuc, oneE[0], oneE[1], oneE[2], tei)
}

// LoadDipoleIntegrals reads the x, y and z dipole integral matrices.
func LoadDipoleIntegrals(dir string, n int) ([3]*mat.Dense, error) {
	var result [3]*mat.Dense
	for k, name := range DipoleFiles {
		m, err := loadSymmetricMatrix(filepath.Join(dir, name), n)
		if err != nil {
			return result, err
		}
		result[k] = m
	}
	return result, nil
}

func writeLines(fname string, write func(w *bufio.Writer) error) error {
	file, err := os.Create(fname)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(file)
	if err := write(w); err != nil {
		file.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func WriteScalar(fname string, val float64) error {
	return writeLines(fname, func(w *bufio.Writer) error {
		_, err := fmt.Fprintf(w, "%20.15f\n", val)
		return err
	})
}

func WriteInt(fname string, val int) error {
	return writeLines(fname, func(w *bufio.Writer) error {
		_, err := fmt.Fprintf(w, "%d\n", val)
		return err
	})
}

// WriteSymmetricMatrix writes the lower triangle, 1-indexed.
func WriteSymmetricMatrix(fname string, m mat.Matrix) error {
	n, _ := m.Dims()
	return writeLines(fname, func(w *bufio.Writer) error {
		for i := 0; i < n; i++ {
			for j := 0; j <= i; j++ {
				if _, err := fmt.Fprintf(w, "%3d %3d %20.15f\n", i+1, j+1, m.At(i, j)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// WriteTwoElectronIntegrals writes one line per canonical quadruple
// (i>=j, k>=l, ij>=kl), skipping values below 1e-14.
func WriteTwoElectronIntegrals(fname string, n int, tei []float64) error {
	return writeLines(fname, func(w *bufio.Writer) error {
		for i := 0; i < n; i++ {
			for j := 0; j <= i; j++ {
				for k := 0; k < n; k++ {
					for l := 0; l <= k; l++ {
						if CompoundIndex(i, j) < CompoundIndex(k, l) {
							continue
						}
						val := tei[CompoundIndex4(i, j, k, l)]
						if math.Abs(val) < 1e-14 {
							continue
						}
						if _, err := fmt.Fprintf(w, "%3d %3d %3d %3d %20.15f\n", i+1, j+1, k+1, l+1, val); err != nil {
							return err
						}
					}
				}
			}
		}
		return nil
	})
}

func WriteGeometry(fname string, geom *Geometry) error {
	return writeLines(fname, func(w *bufio.Writer) error {
		if _, err := fmt.Fprintf(w, "%d\n", len(geom.Atoms)); err != nil {
			return err
		}
		for _, a := range geom.Atoms {
			if _, err := fmt.Fprintf(w, "%d %20.12f %20.12f %20.12f\n", a.Z, a.Coords[0], a.Coords[1], a.Coords[2]); err != nil {
				return err
			}
		}
		return nil
	})
}
