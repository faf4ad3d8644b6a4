package pauli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPauliCommute(t *testing.T) {
	x := X(1, 0)
	z := Z(1, 0)
	require.False(t, x.Commutes(z))
	require.True(t, x.Commutes(x))
}

func TestPauliMulYieldsY(t *testing.T) {
	x := X(1, 0)
	z := Z(1, 0)
	xz := x.Mul(z)
	y := Y(1, 0)
	require.True(t, xz.Equal(y) || xz.Equal(func() PauliOp { u := y; u.Sign = !u.Sign; return u }()))
}

func TestParsePauliStringRoundTrip(t *testing.T) {
	p, err := ParsePauliString("+XZI")
	require.NoError(t, err)
	require.Equal(t, "+XZI", p.String())
}

func TestVTabBellPair(t *testing.T) {
	// H(0); CX(0,1): reading the tableau out gives the Bell pair's
	// stabilizers +XX, +ZZ.
	v := NewVTab(2)
	v.H(0)
	v.CX(0, 1)
	rows := v.Rows()
	require.Len(t, rows, 2)
	require.Equal(t, "+XX", rows[0].String())
	require.Equal(t, "+ZZ", rows[1].String())
}

func TestVTabSSSSIsIdentity(t *testing.T) {
	v := NewVTab(1)
	before := v.Row(0)
	v.S(0)
	v.S(0)
	v.S(0)
	v.S(0)
	require.True(t, v.Row(0).Equal(before))
}

func TestHTabFuseCancelsToClifford(t *testing.T) {
	h := NewHTab()
	p := Z(1, 0)
	h.AppendT(p)
	h.AppendT(p)
	residual := h.Reduce()
	require.Len(t, residual, 1)
	require.Equal(t, 2, residual[0].K)
	require.Equal(t, 0, h.NumRows())
}

func TestHTabFuseToIdentityDropsRow(t *testing.T) {
	h := NewHTab()
	p := Z(1, 0)
	h.AppendT(p)
	h.AppendTdag(p)
	residual := h.Reduce()
	require.Len(t, residual, 0)
	require.Equal(t, 0, h.NumRows())
}

func TestHTabFrontMultiplyConjugates(t *testing.T) {
	h := NewHTab()
	h.AppendT(Z(1, 0))
	h.FrontMultiply(X(1, 0)) // X anticommutes with Z: row becomes X*Z = -Y (up to sign)
	row := h.Row(0)
	require.False(t, row.P.GetX(0) == false && row.P.GetZ(0) == true) // no longer pure Z
}

func TestHTabCommutesWithAll(t *testing.T) {
	h := NewHTab()
	h.AppendT(Z(2, 0))
	require.True(t, h.CommutesWithAll(Z(2, 0)))
	require.False(t, h.CommutesWithAll(X(2, 0)))
}
