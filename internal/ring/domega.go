package ring

import "fmt"

// DOmega is u / sqrt2^k, u in Z[omega], reduced to minimal k.
type DOmega struct {
	U ZOmega
	K int
}

func NewDOmega(u ZOmega, k int) DOmega {
	d := DOmega{u, k}
	return d.reduce()
}

func FromZOmega(u ZOmega) DOmega { return DOmega{u, 0} }

func (d DOmega) String() string { return fmt.Sprintf("%s / sqrt2^%d", d.U, d.K) }

func (d DOmega) reduce() DOmega {
	u, k := d.U, d.K
	for k > 0 {
		next, ok := u.DivExactBySqrt2()
		if !ok {
			break
		}
		u, k = next, k-1
	}
	if u.IsZero() {
		k = 0
	}
	return DOmega{u, k}
}

func (d DOmega) RenewDenomExp(k2 int) DOmega {
	diff := k2 - d.K
	if diff < 0 {
		panic("ring: RenewDenomExp cannot lower denominator exponent")
	}
	u := d.U
	for i := 0; i < diff; i++ {
		u = u.Mul(sqrtTwoAsZOmega)
	}
	return DOmega{u, k2}
}

func alignOmega(a, b DOmega) (DOmega, DOmega) {
	k := a.K
	if b.K > k {
		k = b.K
	}
	return a.RenewDenomExp(k), b.RenewDenomExp(k)
}

func (d DOmega) Add(e DOmega) DOmega {
	a, b := alignOmega(d, e)
	return NewDOmega(a.U.Add(b.U), a.K)
}

func (d DOmega) Sub(e DOmega) DOmega {
	a, b := alignOmega(d, e)
	return NewDOmega(a.U.Sub(b.U), a.K)
}

func (d DOmega) Neg() DOmega { return DOmega{d.U.Neg(), d.K} }

func (d DOmega) Mul(e DOmega) DOmega {
	return NewDOmega(d.U.Mul(e.U), d.K+e.K)
}

func (d DOmega) MulOmegaPower(n int) DOmega {
	return DOmega{d.U.MulOmegaPower(n), d.K}
}

func (d DOmega) Conj() DOmega       { return DOmega{d.U.Conj(), d.K} }
func (d DOmega) ConjSqrt2() DOmega  { return DOmega{d.U.ConjSqrt2(), d.K} }
func (d DOmega) IsZero() bool       { return d.U.IsZero() }

// Equal compares reduced representatives after aligning denominator
// exponents, satisfying the spec invariant
// z == z.RenewDenomExp(k).reduce() for k >= z.K.
func (d DOmega) Equal(e DOmega) bool {
	a, b := alignOmega(d.reduce(), e.reduce())
	return a.U.Equal(b.U)
}

// Complex128 approximates this value, used only for diagnostics/tests.
func (d DOmega) Complex128() complex128 {
	c := d.U.Complex128()
	scale := 1.0
	for i := 0; i < d.K; i++ {
		scale /= 1.4142135623730951
	}
	return complex(real(c)*scale, imag(c)*scale)
}
