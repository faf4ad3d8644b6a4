package numeric

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntGcd(t *testing.T) {
	a := NewInt(462)
	b := NewInt(1071)
	require.Equal(t, "21", a.Gcd(b).String())
}

func TestIntPopCountTrailingZeros(t *testing.T) {
	a := NewInt(0b10110)
	require.Equal(t, 3, a.PopCount())
	require.Equal(t, 1, a.TrailingZeros())
	require.Equal(t, -1, ZeroInt.TrailingZeros())
}

func TestIntModPow(t *testing.T) {
	got := NewInt(4).ModPow(NewInt(13), NewInt(497))
	require.Equal(t, "445", got.String())
}

func TestFloorSqrt(t *testing.T) {
	require.Equal(t, "12", NewInt(150).FloorSqrt().String())
}

func TestPiApproximatesFloat64(t *testing.T) {
	pi := Pi(DefaultPrec)
	require.InDelta(t, 3.14159265358979, pi.Float64(), 1e-12)
}

func TestParsePiExpr(t *testing.T) {
	v, err := ParsePiExpr("pi/4", DefaultPrec)
	require.NoError(t, err)
	require.InDelta(t, 0.7853981633974483, v.Float64(), 1e-12)

	v2, err := ParsePiExpr("-2*pi", DefaultPrec)
	require.NoError(t, err)
	require.InDelta(t, -6.283185307179586, v2.Float64(), 1e-12)

	v3, err := ParsePiExpr("1.2345", DefaultPrec)
	require.NoError(t, err)
	require.InDelta(t, 1.2345, v3.Float64(), 1e-12)
}

func TestFloorLog(t *testing.T) {
	n, r := FloorLog(NewFloat(100), NewFloat(2))
	require.Equal(t, 6, n) // 2^6=64 <= 100 < 128
	require.InDelta(t, 100.0/64.0, r.Float64(), 1e-9)
}

func TestQuadraticRoots(t *testing.T) {
	lo, hi, ok := QuadraticRoots(NewFloat(1), NewFloat(-3), NewFloat(2))
	require.True(t, ok)
	require.InDelta(t, 1.0, lo.Float64(), 1e-9)
	require.InDelta(t, 2.0, hi.Float64(), 1e-9)

	_, _, ok2 := QuadraticRoots(NewFloat(1), NewFloat(0), NewFloat(1))
	require.False(t, ok2)
}

func TestFloorCeilRound(t *testing.T) {
	require.Equal(t, "3", NewFloat(3.7).Floor().String())
	require.Equal(t, "-4", NewFloat(-3.7).Floor().String())
	require.Equal(t, "4", NewFloat(3.2).Ceil().String())
	require.InDelta(t, 4.0, NewFloat(3.7).Round().Float64(), 1e-9)
}
