package ring

import (
	"fmt"

	"github.com/kegliz/ftcompile/internal/numeric"
)

// DRootTwo is alpha / sqrt2^k, alpha in Z[sqrt2], k >= 0, always kept at
// its minimal denominator exponent.
type DRootTwo struct {
	Alpha ZRootTwo
	K     int
}

// NewDRootTwo reduces (alpha, k) to minimal denominator exponent.
func NewDRootTwo(alpha ZRootTwo, k int) DRootTwo {
	d := DRootTwo{alpha, k}
	return d.reduce()
}

func FromZRootTwo(z ZRootTwo) DRootTwo { return DRootTwo{z, 0} }

func (d DRootTwo) String() string { return fmt.Sprintf("%s / sqrt2^%d", d.Alpha, d.K) }

// reduce divides out common factors of sqrt2 from the numerator, lowering K.
func (d DRootTwo) reduce() DRootTwo {
	alpha, k := d.Alpha, d.K
	for k > 0 {
		// alpha divisible by sqrt2 iff alpha.A is even; sqrt2*(p+q*sqrt2) = 2q+p*sqrt2.
		_, rem := alpha.A.QuoRem(numeric.NewInt(2))
		if !rem.IsZero() {
			break
		}
		halfA, _ := alpha.A.QuoRem(numeric.NewInt(2))
		alpha = ZRootTwo{A: alpha.B, B: halfA}
		k--
	}
	if alpha.IsZero() {
		k = 0
	}
	return DRootTwo{alpha, k}
}

// RenewDenomExp returns an equal value with denominator exponent exactly k2
// (k2 must be >= current K).
func (d DRootTwo) RenewDenomExp(k2 int) DRootTwo {
	diff := k2 - d.K
	if diff < 0 {
		panic("ring: RenewDenomExp cannot lower denominator exponent")
	}
	alpha := d.Alpha
	for i := 0; i < diff; i++ {
		// multiply alpha by sqrt2: sqrt2*(p+q*sqrt2) = 2q + p*sqrt2
		alpha = ZRootTwo{A: numeric.NewInt(2).Mul(alpha.B), B: alpha.A}
	}
	return DRootTwo{alpha, k2}
}

func align(a, b DRootTwo) (DRootTwo, DRootTwo) {
	k := a.K
	if b.K > k {
		k = b.K
	}
	return a.RenewDenomExp(k), b.RenewDenomExp(k)
}

func (d DRootTwo) Add(e DRootTwo) DRootTwo {
	a, b := align(d, e)
	return NewDRootTwo(a.Alpha.Add(b.Alpha), a.K)
}

func (d DRootTwo) Sub(e DRootTwo) DRootTwo {
	a, b := align(d, e)
	return NewDRootTwo(a.Alpha.Sub(b.Alpha), a.K)
}

func (d DRootTwo) Neg() DRootTwo { return DRootTwo{d.Alpha.Neg(), d.K} }

func (d DRootTwo) Mul(e DRootTwo) DRootTwo {
	return NewDRootTwo(d.Alpha.Mul(e.Alpha), d.K+e.K)
}

// Equal compares reduced representatives after aligning denominator
// exponents.
func (d DRootTwo) Equal(e DRootTwo) bool {
	a, b := align(d.reduce(), e.reduce())
	return a.Alpha.Equal(b.Alpha)
}

func (d DRootTwo) IsZero() bool { return d.Alpha.IsZero() }

// Float64 approximates this value at the given precision.
func (d DRootTwo) Float64(prec uint) numeric.Float {
	v := d.Alpha.Float64(prec)
	s2 := numeric.Sqrt2(prec)
	for i := 0; i < d.K; i++ {
		v = v.Quo(s2)
	}
	return v
}
