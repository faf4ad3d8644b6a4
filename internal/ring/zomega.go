package ring

import (
	"fmt"

	"github.com/kegliz/ftcompile/internal/numeric"
)

// ZOmega is a*omega^3 + b*omega^2 + c*omega + d, omega = e^(i*pi/4).
type ZOmega struct {
	A, B, C, D numeric.Int
}

func ZO(a, b, c, d int64) ZOmega {
	return ZOmega{numeric.NewInt(a), numeric.NewInt(b), numeric.NewInt(c), numeric.NewInt(d)}
}

var ZOmegaZero = ZO(0, 0, 0, 0)
var ZOmegaOne = ZO(0, 0, 0, 1)

// OmegaPower is the fixed table omega^0 .. omega^7 in (a,b,c,d) form.
var OmegaPower = [8]ZOmega{
	ZO(0, 0, 0, 1),
	ZO(0, 0, 1, 0),
	ZO(0, 1, 0, 0),
	ZO(1, 0, 0, 0),
	ZO(0, 0, 0, -1),
	ZO(0, 0, -1, 0),
	ZO(0, -1, 0, 0),
	ZO(-1, 0, 0, 0),
}

// sqrtTwoAsZOmega represents sqrt2 = omega - omega^3 in the (a,b,c,d) basis.
var sqrtTwoAsZOmega = ZO(-1, 0, 1, 0)

func (u ZOmega) String() string {
	return fmt.Sprintf("(%s*w^3 + %s*w^2 + %s*w + %s)", u.A, u.B, u.C, u.D)
}

func (u ZOmega) Add(v ZOmega) ZOmega {
	return ZOmega{u.A.Add(v.A), u.B.Add(v.B), u.C.Add(v.C), u.D.Add(v.D)}
}

func (u ZOmega) Sub(v ZOmega) ZOmega {
	return ZOmega{u.A.Sub(v.A), u.B.Sub(v.B), u.C.Sub(v.C), u.D.Sub(v.D)}
}

func (u ZOmega) Neg() ZOmega {
	return ZOmega{u.A.Neg(), u.B.Neg(), u.C.Neg(), u.D.Neg()}
}

func (u ZOmega) IsZero() bool {
	return u.A.IsZero() && u.B.IsZero() && u.C.IsZero() && u.D.IsZero()
}

func (u ZOmega) Equal(v ZOmega) bool {
	return u.A.Equal(v.A) && u.B.Equal(v.B) && u.C.Equal(v.C) && u.D.Equal(v.D)
}

// Mul computes the polynomial product of u and v modulo x^4+1 (x = omega).
func (u ZOmega) Mul(v ZOmega) ZOmega {
	// index 0=x^0(=d) .. 3=x^3(=a)
	uc := [4]numeric.Int{u.D, u.C, u.B, u.A}
	vc := [4]numeric.Int{v.D, v.C, v.B, v.A}
	var conv [7]numeric.Int
	for i := range conv {
		conv[i] = numeric.ZeroInt
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			conv[i+j] = conv[i+j].Add(uc[i].Mul(vc[j]))
		}
	}
	// reduce x^4 = -1
	for k := 6; k >= 4; k-- {
		conv[k-4] = conv[k-4].Sub(conv[k])
	}
	return ZOmega{A: conv[3], B: conv[2], C: conv[1], D: conv[0]}
}

// ScaleInt multiplies every coefficient by an integer scalar.
func (u ZOmega) ScaleInt(n numeric.Int) ZOmega {
	return ZOmega{u.A.Mul(n), u.B.Mul(n), u.C.Mul(n), u.D.Mul(n)}
}

// MulOmegaPower multiplies u by omega^n (n taken mod 8).
func (u ZOmega) MulOmegaPower(n int) ZOmega {
	m := ((n % 8) + 8) % 8
	return u.Mul(OmegaPower[m])
}

// Conj is the complex conjugate: omega -> omega^-1 = -omega^3.
func (u ZOmega) Conj() ZOmega {
	return ZOmega{A: u.C.Neg(), B: u.B.Neg(), C: u.A.Neg(), D: u.D}
}

// ConjSqrt2 is the ring automorphism sqrt2 -> -sqrt2 (flips the sign of the
// odd-degree omega, omega^3 components).
func (u ZOmega) ConjSqrt2() ZOmega {
	return ZOmega{A: u.A.Neg(), B: u.B, C: u.C.Neg(), D: u.D}
}

// Norm returns the Z[sqrt2] element corresponding to u*conj(u), which is
// always real: the omega^2 coefficient vanishes and sqrt2 = omega - omega^3
// lets the remaining omega/omega^3 coefficients collapse into one sqrt2
// coefficient.
func (u ZOmega) Norm() ZRootTwo {
	p := u.Mul(u.Conj())
	return ZRootTwo{A: p.D, B: p.C}
}

// IntNorm returns the rational-integer norm N(N(u)), used by the
// Diophantine step's factoring subroutine.
func (u ZOmega) IntNorm() numeric.Int {
	return u.Norm().Norm()
}

// DivExactBySqrt2 returns u/sqrt2 and true if u is exactly divisible by
// sqrt2 in Z[omega].
func (u ZOmega) DivExactBySqrt2() (ZOmega, bool) {
	t := u.Mul(sqrtTwoAsZOmega)
	two := numeric.NewInt(2)
	coeffs := [4]numeric.Int{t.A, t.B, t.C, t.D}
	var half [4]numeric.Int
	for i, c := range coeffs {
		q, r := c.QuoRem(two)
		if !r.IsZero() {
			return ZOmega{}, false
		}
		half[i] = q
	}
	return ZOmega{A: half[0], B: half[1], C: half[2], D: half[3]}, true
}

// Complex128 approximates u as a complex number, used only for region and
// epsilon bookkeeping (never by exact ring operations).
func (u ZOmega) Complex128() complex128 {
	const invSqrt2 = 0.7071067811865476
	a := float64(u.A.Int64())
	b := float64(u.B.Int64())
	c := float64(u.C.Int64())
	d := float64(u.D.Int64())
	// omega^3 = -invSqrt2 + i*invSqrt2 ; omega^2 = i ; omega = invSqrt2 + i*invSqrt2 ; 1 = 1
	re := a*(-invSqrt2) + c*(invSqrt2) + d
	im := a*(invSqrt2) + b*1 + c*(invSqrt2)
	return complex(re, im)
}
