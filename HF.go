// HF.go --  This file is part of goHF project.
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

// Integrals over contracted s-type Gaussians, in bohr.

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext"
)

type PrimitiveGaussian struct {
	Alpha float64
	Coeff float64
}

func (p PrimitiveGaussian) NormCoeff() float64 {
	return math.Pow((2 * p.Alpha / math.Pi), 0.75)
}

// AO is a contracted s function centered at Coords.
type AO struct {
	Coords [3]float64
	PGs    []PrimitiveGaussian
}

// NewAO builds a contracted s function and rescales the contraction
// coefficients so that <AO|AO> = 1.
func NewAO(coords [3]float64, exps, coeffs []float64) AO {
	ao := AO{Coords: coords, PGs: make([]PrimitiveGaussian, len(exps))}
	for i := range exps {
		ao.PGs[i] = PrimitiveGaussian{Alpha: exps[i], Coeff: coeffs[i]}
	}
	norm := 0.0
	for _, a := range ao.PGs {
		for _, b := range ao.PGs {
			norm += a.Coeff * b.Coeff * a.NormCoeff() * b.NormCoeff() * math.Pow(math.Pi/(a.Alpha+b.Alpha), 1.5)
		}
	}
	scale := 1 / math.Sqrt(norm)
	for i := range ao.PGs {
		ao.PGs[i].Coeff *= scale
	}
	return ao
}

// QQ is the squared distance between v1 and v2.
func QQ(v1, v2 [3]float64) float64 {
	d := floats.Distance(v1[:], v2[:], 2)
	return d * d
}

// CalcP is the Gaussian product center (a1 v1 + a2 v2)/(a1 + a2).
func CalcP(a1, a2 float64, v1, v2 [3]float64) [3]float64 {
	var res [3]float64
	for i := range res {
		res[i] = (a1*v1[i] + a2*v2[i]) / (a1 + a2)
	}
	return res
}

func boys(x float64, n int) float64 {
	nf := float64(n)
	if x == 0 {
		return 1.0 / (2.0*nf + 1)
	}
	return mathext.GammaIncReg(nf+0.5, x) * math.Gamma(nf+0.5) * (1.0 / (2.0 * math.Pow(x, (nf+0.5))))
}

// pairData holds the quantities shared by every integral over the
// primitive product a*b.
type pairData struct {
	p, kab float64
	P      [3]float64
}

func newPair(a, b PrimitiveGaussian, A, B [3]float64) pairData {
	p := a.Alpha + b.Alpha
	q := a.Alpha * b.Alpha / p
	return pairData{
		p:   p,
		kab: a.Coeff * b.Coeff * a.NormCoeff() * b.NormCoeff() * math.Exp(-q*QQ(A, B)),
		P:   CalcP(a.Alpha, b.Alpha, A, B),
	}
}

// oneElectron fills a symmetric matrix with Σ_prim f(a, b, pair).
func oneElectron(m []AO, f func(a, b PrimitiveGaussian, A, B [3]float64, pd pairData) float64) *mat.Dense {
	n := len(m)
	res := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			val := 0.0
			for _, a := range m[i].PGs {
				for _, b := range m[j].PGs {
					val += f(a, b, m[i].Coords, m[j].Coords, newPair(a, b, m[i].Coords, m[j].Coords))
				}
			}
			res.Set(i, j, val)
			res.Set(j, i, val)
		}
	}
	return res
}

func Overlap(m []AO) *mat.Dense {
	return oneElectron(m, func(_, _ PrimitiveGaussian, _, _ [3]float64, pd pairData) float64 {
		return pd.kab * math.Pow(math.Pi/pd.p, 1.5)
	})
}

func Kinetic(m []AO) *mat.Dense {
	return oneElectron(m, func(a, b PrimitiveGaussian, A, B [3]float64, pd pairData) float64 {
		q := a.Alpha * b.Alpha / pd.p
		s := pd.kab * math.Pow(math.Pi/pd.p, 1.5)
		return q * (3 - 2*q*QQ(A, B)) * s
	})
}

// NuclearAttraction sums -Z_C <a|1/r_C|b> over all atoms.
func NuclearAttraction(m []AO, atoms []GeomAtom) *mat.Dense {
	return oneElectron(m, func(_, _ PrimitiveGaussian, _, _ [3]float64, pd pairData) float64 {
		val := 0.0
		for _, at := range atoms {
			val -= float64(at.Z) * pd.kab * (2.0 * math.Pi / pd.p) * boys(pd.p*QQ(pd.P, at.Coords), 0)
		}
		return val
	})
}

// Dipole returns the electronic dipole integrals -<a|r_k|b> about the
// origin, k = x, y, z.
func Dipole(m []AO) [3]*mat.Dense {
	var res [3]*mat.Dense
	for k := range res {
		res[k] = oneElectron(m, func(_, _ PrimitiveGaussian, _, _ [3]float64, pd pairData) float64 {
			return -pd.P[k] * pd.kab * math.Pow(math.Pi/pd.p, 1.5)
		})
	}
	return res
}

func primERI(ab, cd pairData) float64 {
	term1 := 2.0 * math.Pi * math.Pi / (ab.p * cd.p)
	term2 := math.Sqrt(math.Pi / (ab.p + cd.p))
	return ab.kab * cd.kab * term1 * term2 * boys(QQ(ab.P, cd.P)*ab.p*cd.p/(ab.p+cd.p), 0)
}

// ElectronRepulsion computes (ij|kl) for every canonical quadruple and
// returns the compressed array. Each (i,j) pair is handled by its own
// goroutine, bounded by GOMAXPROCS.
func ElectronRepulsion(m []AO) []float64 {
	n := len(m)
	res := make([]float64, TEISize(n))

	pairs := make([][]pairData, n*(n+1)/2)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			var pd []pairData
			for _, a := range m[i].PGs {
				for _, b := range m[j].PGs {
					pd = append(pd, newPair(a, b, m[i].Coords, m[j].Coords))
				}
			}
			pairs[CompoundIndex(i, j)] = pd
		}
	}

	guard := make(chan struct{}, runtime.GOMAXPROCS(-1))
	var wg sync.WaitGroup
	for ij := range pairs {
		wg.Add(1)
		guard <- struct{}{}
		go func(ij int) {
			defer wg.Done()
			for kl := 0; kl <= ij; kl++ {
				val := 0.0
				for _, ab := range pairs[ij] {
					for _, cd := range pairs[kl] {
						val += primERI(ab, cd)
					}
				}
				res[CompoundIndex(ij, kl)] = val
			}
			<-guard
		}(ij)
	}
	wg.Wait()
	return res
}

// NuclearRepulsion is Σ_{A<B} Z_A Z_B / R_AB.
func NuclearRepulsion(atoms []GeomAtom) float64 {
	res := 0.0
	for i := range atoms {
		for j := 0; j < i; j++ {
			res += float64(atoms[i].Z) * float64(atoms[j].Z) / math.Sqrt(QQ(atoms[i].Coords, atoms[j].Coords))
		}
	}
	return res
}
