package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZRootTwoRing(t *testing.T) {
	a := ZR(3, 2)
	b := ZR(-1, 4)
	require.True(t, a.Add(b).Equal(ZR(2, 6)))
	require.True(t, a.Mul(b).Equal(ZR(3*-1+2*2*4, 3*4+2*-1)))
}

func TestZRootTwoDivMod(t *testing.T) {
	a := ZR(10, 0)
	b := ZR(3, 0)
	q, r, ok := a.DivMod(b)
	require.True(t, ok)
	require.True(t, q.Mul(b).Add(r).Equal(a))
	require.True(t, r.Norm().Abs().Cmp(b.Norm().Abs()) < 0 || r.IsZero())
}

func TestZRootTwoGcd(t *testing.T) {
	a := ZR(462, 0)
	b := ZR(1071, 0)
	g := a.Gcd(b)
	require.Equal(t, "21", g.A.String())
}

func TestZRootTwoInv(t *testing.T) {
	inv, ok := Lambda.Inv()
	require.True(t, ok)
	require.True(t, Lambda.Mul(inv).Equal(ZR(1, 0)))
}

func TestZRootTwoSqrt(t *testing.T) {
	// (1+sqrt2)^2 = 3+2sqrt2
	target := ZR(3, 2)
	w, ok := target.Sqrt()
	require.True(t, ok)
	require.True(t, w.Mul(w).Equal(target))

	_, ok2 := ZR(5, 0).Sqrt()
	require.False(t, ok2)
}

func TestZOmegaMulReduction(t *testing.T) {
	// omega^4 = -1
	w := OmegaPower[1]
	w4 := w.Mul(w).Mul(w).Mul(w)
	require.True(t, w4.Equal(ZO(0, 0, 0, -1)))
}

func TestZOmegaConjugations(t *testing.T) {
	u := ZO(1, 2, 3, 4)
	// conj(conj(u)) == u
	require.True(t, u.Conj().Conj().Equal(u))
	require.True(t, u.ConjSqrt2().ConjSqrt2().Equal(u))
}

func TestZOmegaNormReal(t *testing.T) {
	u := OmegaPower[1] // omega
	n := u.Norm()       // |omega|^2 = 1
	require.True(t, n.Equal(ZR(1, 0)))
}

func TestZOmegaDivExactBySqrt2(t *testing.T) {
	u := sqrtTwoAsZOmega.Mul(ZO(0, 1, 0, 2))
	v, ok := u.DivExactBySqrt2()
	require.True(t, ok)
	require.True(t, v.Equal(ZO(0, 1, 0, 2)))

	_, ok2 := ZO(0, 0, 0, 1).DivExactBySqrt2()
	require.False(t, ok2)
}

func TestDRootTwoReduce(t *testing.T) {
	// (2 + 0*sqrt2)/sqrt2^1 reduces since alpha.A=2 is even -> (0+1*sqrt2)/sqrt2^0
	d := NewDRootTwo(ZR(2, 0), 1)
	require.Equal(t, 0, d.K)
}

func TestDRootTwoRenewAndEqual(t *testing.T) {
	d := NewDRootTwo(ZR(1, 0), 0)
	renewed := d.RenewDenomExp(3)
	require.True(t, d.Equal(renewed))
}

func TestDOmegaEqualAfterRenew(t *testing.T) {
	d := NewDOmega(ZO(0, 0, 0, 1), 0)
	renewed := d.RenewDenomExp(4)
	require.True(t, d.Equal(renewed))
}

func TestIntNormMultiplicative(t *testing.T) {
	u := ZO(1, 0, 1, 0)
	v := ZO(0, 1, 0, 1)
	left := u.Mul(v).IntNorm()
	right := u.IntNorm().Mul(v.IntNorm())
	require.True(t, left.Equal(right))
}
