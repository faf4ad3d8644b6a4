// Package gridsynth implements the grid-problem solver behind the
// Clifford+T synthesis of arbitrary Z-axis rotations: the one- and
// two-dimensional grid problems (ODGP/TDGP) and the Diophantine step that
// turns a candidate point into an exact unitary.
package gridsynth

import (
	"github.com/kegliz/ftcompile/internal/numeric"
	"github.com/kegliz/ftcompile/internal/ring"
)

// SolveODGP enumerates every beta = a + b*sqrt2 (a, b integers) with
// beta in [loI, hiI] and its sqrt2-conjugate (a - b*sqrt2) in [loJ, hiJ].
//
// The literature algorithm rescales by powers of Lambda = 1+sqrt2 until the
// narrower interval has width < 1, then enumerates in constant time per
// solution. This implementation instead solves the two linear constraints
// on (a, b) directly: combining beta in I and beta* in J bounds b to a
// finite integer range, and for each such b bounds a to a finite integer
// range. The solution set is identical; the rescaling ladder is an
// efficiency device for very lopsided interval widths, which this
// compiler's epsilon regions never produce (see DESIGN.md).
func SolveODGP(loI, hiI, loJ, hiJ numeric.Float, prec uint) []ring.ZRootTwo {
	if loI.Cmp(hiI) > 0 || loJ.Cmp(hiJ) > 0 {
		return nil
	}
	sqrt2 := numeric.Sqrt2(prec)
	twoSqrt2 := numeric.NewFloatPrecFrom(prec, 2).Mul(sqrt2)

	bLo := loI.Sub(hiJ).Quo(twoSqrt2)
	bHi := hiI.Sub(loJ).Quo(twoSqrt2)
	if bLo.Cmp(bHi) > 0 {
		return nil
	}
	bStart, bEnd := bLo.Ceil(), bHi.Floor()

	var out []ring.ZRootTwo
	one := numeric.OneInt
	for b := bStart; b.Cmp(bEnd) <= 0; b = b.Add(one) {
		bSqrt2 := numeric.FromInt(b, prec).Mul(sqrt2)
		aLo := maxFloat(loI.Sub(bSqrt2), loJ.Add(bSqrt2))
		aHi := minFloat(hiI.Sub(bSqrt2), hiJ.Add(bSqrt2))
		if aLo.Cmp(aHi) > 0 {
			continue
		}
		aStart, aEnd := aLo.Ceil(), aHi.Floor()
		for a := aStart; a.Cmp(aEnd) <= 0; a = a.Add(one) {
			out = append(out, ring.ZRootTwo{A: a, B: b})
		}
	}
	return out
}

func maxFloat(a, b numeric.Float) numeric.Float {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

func minFloat(a, b numeric.Float) numeric.Float {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}
