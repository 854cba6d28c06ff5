// index.go --  This file is part of goHF project.
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

// CompoundIndex packs the unordered pair (p, q) into a triangular index,
// so CompoundIndex(p, q) == CompoundIndex(q, p).
func CompoundIndex(p, q int) int {
	if p < q {
		p, q = q, p
	}
	return p*(p+1)/2 + q
}

// CompoundIndex4 is the storage slot of (ij|kl). All eight permutations
// (ij|kl)=(ji|kl)=(ij|lk)=(kl|ij)=... share one slot.
func CompoundIndex4(i, j, k, l int) int {
	return CompoundIndex(CompoundIndex(i, j), CompoundIndex(k, l))
}

// TEISize is the length of the compressed two-electron array for n basis
// functions.
func TEISize(n int) int {
	pairs := n * (n + 1) / 2
	return pairs * (pairs + 1) / 2
}
