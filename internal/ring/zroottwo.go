// Package ring implements the exact rings used by the grid-problem solver
// and unitary normaliser: Z[sqrt2], D[sqrt2], Z[omega] and D[omega], where
// omega = e^(i*pi/4). All arithmetic is exact; operations that cannot stay
// exact return an explicit ok=false rather than an approximation.
package ring

import (
	"fmt"
	"math/big"

	"github.com/kegliz/ftcompile/internal/numeric"
)

// ZRootTwo is a + b*sqrt(2) with a, b arbitrary-precision integers.
type ZRootTwo struct {
	A, B numeric.Int
}

// Lambda is the fundamental unit 1+sqrt(2) of Z[sqrt2], central to the grid
// solver's 1-D scaling steps.
var Lambda = ZRootTwo{numeric.NewInt(1), numeric.NewInt(1)}

// LambdaInv is 1/Lambda = -1+sqrt(2) (norm(Lambda) = -1).
var LambdaInv = ZRootTwo{numeric.NewInt(-1), numeric.NewInt(1)}

func ZR(a, b int64) ZRootTwo { return ZRootTwo{numeric.NewInt(a), numeric.NewInt(b)} }

func (z ZRootTwo) String() string { return fmt.Sprintf("(%s + %s*sqrt2)", z.A, z.B) }

func (z ZRootTwo) Add(w ZRootTwo) ZRootTwo { return ZRootTwo{z.A.Add(w.A), z.B.Add(w.B)} }
func (z ZRootTwo) Sub(w ZRootTwo) ZRootTwo { return ZRootTwo{z.A.Sub(w.A), z.B.Sub(w.B)} }
func (z ZRootTwo) Neg() ZRootTwo           { return ZRootTwo{z.A.Neg(), z.B.Neg()} }

// Mul multiplies (a1+b1 sqrt2)(a2+b2 sqrt2) = (a1a2+2b1b2) + (a1b2+a2b1) sqrt2.
func (z ZRootTwo) Mul(w ZRootTwo) ZRootTwo {
	a := z.A.Mul(w.A).Add(numeric.NewInt(2).Mul(z.B).Mul(w.B))
	b := z.A.Mul(w.B).Add(z.B.Mul(w.A))
	return ZRootTwo{a, b}
}

// Conj returns a - b*sqrt2, the Galois conjugate sqrt2 -> -sqrt2.
func (z ZRootTwo) Conj() ZRootTwo { return ZRootTwo{z.A, z.B.Neg()} }

// Norm returns a^2 - 2b^2, multiplicative: Norm(z*w)=Norm(z)*Norm(w).
func (z ZRootTwo) Norm() numeric.Int {
	return z.A.Mul(z.A).Sub(numeric.NewInt(2).Mul(z.B).Mul(z.B))
}

func (z ZRootTwo) IsZero() bool   { return z.A.IsZero() && z.B.IsZero() }
func (z ZRootTwo) Equal(w ZRootTwo) bool { return z.A.Equal(w.A) && z.B.Equal(w.B) }

// Float64 returns an approximate numeric value of this element, used only
// by the grid solver's region bookkeeping (never by exact ring ops).
func (z ZRootTwo) Float64(prec uint) numeric.Float {
	sqrt2 := numeric.Sqrt2(prec)
	return numeric.FromInt(z.A, prec).Add(numeric.FromInt(z.B, prec).Mul(sqrt2))
}

// Inv returns 1/z when z is a unit (Norm(z) = +-1).
func (z ZRootTwo) Inv() (ZRootTwo, bool) {
	n := z.Norm()
	one := numeric.NewInt(1)
	switch {
	case n.Equal(one):
		return z.Conj(), true
	case n.Equal(one.Neg()):
		return z.Conj().Neg(), true
	default:
		return ZRootTwo{}, false
	}
}

// DivMod implements exact Euclidean division: z = q*w + r with N(r) < N(w)
// or r = 0. q is obtained by rounding the rational quotient z/w (computed
// via z*conj(w)/Norm(w)) to the nearest ZRootTwo coefficientwise.
func (z ZRootTwo) DivMod(w ZRootTwo) (q, r ZRootTwo, ok bool) {
	if w.IsZero() {
		return ZRootTwo{}, ZRootTwo{}, false
	}
	nw := w.Norm()
	num := z.Mul(w.Conj()) // rational quotient * Norm(w)
	qa := roundRatio(num.A, nw)
	qb := roundRatio(num.B, nw)
	q = ZRootTwo{qa, qb}
	r = z.Sub(q.Mul(w))
	return q, r, true
}

// roundRatio returns round(a/b), ties away from zero, via exact rational
// arithmetic.
func roundRatio(a, b numeric.Int) numeric.Int {
	rat := new(big.Rat).SetFrac(a.Big(), b.Big())
	neg := rat.Sign() < 0
	rat.Abs(rat)
	rat.Add(rat, big.NewRat(1, 2))
	// floor(|a/b| + 1/2) with the sign restored == round-half-away-from-zero
	num, den := rat.Num(), rat.Denom()
	q := new(big.Int)
	m := new(big.Int)
	q.DivMod(num, den, m) // Euclidean floor division
	if neg {
		q.Neg(q)
	}
	return numeric.NewIntFromBig(q)
}

// Gcd computes a Euclidean gcd of z and w (defined up to unit factors).
func (z ZRootTwo) Gcd(w ZRootTwo) ZRootTwo {
	a, b := z, w
	for !b.IsZero() {
		_, r, ok := a.DivMod(b)
		if !ok {
			break
		}
		a, b = b, r
	}
	return a
}

// Similar reports whether a|b and b|a, i.e. a and b differ by a unit.
func Similar(a, b ZRootTwo) bool {
	if a.IsZero() || b.IsZero() {
		return a.IsZero() && b.IsZero()
	}
	_, r1, ok1 := b.DivMod(a)
	_, r2, ok2 := a.DivMod(b)
	return ok1 && ok2 && r1.IsZero() && r2.IsZero()
}

// Sqrt returns the unique w with w*w == z, if one exists.
func (z ZRootTwo) Sqrt() (ZRootTwo, bool) {
	if z.IsZero() {
		return ZRootTwo{}, true
	}
	n := z.Norm()
	if n.Sign() < 0 {
		return ZRootTwo{}, false
	}
	sq := n.FloorSqrt()
	if !sq.Mul(sq).Equal(n) {
		return ZRootTwo{}, false
	}
	two := numeric.NewInt(2)
	for _, sgn := range []int64{1, -1} {
		num := z.A.Add(sq.Mul(numeric.NewInt(sgn)))
		_, rem := num.QuoRem(two)
		if !rem.IsZero() {
			continue
		}
		p2, _ := num.QuoRem(two)
		if p2.Sign() < 0 {
			continue
		}
		p := p2.FloorSqrt()
		if !p.Mul(p).Equal(p2) {
			continue
		}
		for _, psign := range []int64{1, -1} {
			pv := p.Mul(numeric.NewInt(psign))
			var q numeric.Int
			if pv.IsZero() {
				if !z.B.IsZero() {
					continue
				}
				q2, rem2 := z.A.QuoRem(two)
				if !rem2.IsZero() || q2.Sign() < 0 {
					continue
				}
				qc := q2.FloorSqrt()
				if !qc.Mul(qc).Equal(q2) {
					continue
				}
				q = qc
			} else {
				denom := pv.Mul(two)
				qc, remQ := z.B.QuoRem(denom)
				if !remQ.IsZero() {
					continue
				}
				q = qc
			}
			cand := ZRootTwo{pv, q}
			if cand.Mul(cand).Equal(z) {
				return cand, true
			}
		}
	}
	return ZRootTwo{}, false
}
