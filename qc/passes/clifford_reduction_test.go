package passes

import (
	"testing"

	"github.com/kegliz/ftcompile/qc/builder"
	"github.com/kegliz/ftcompile/qc/gate"
	"github.com/stretchr/testify/require"
)

func TestCliffordReductionPassExpandsToffoli(t *testing.T) {
	b := builder.New(builder.Q(3), builder.C(0))
	b.Toffoli(0, 1, 2)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := CliffordReductionPass{}
	out, changed, err := p.Run(c)
	require.NoError(t, err)
	require.True(t, changed)

	rotations := 0
	for _, op := range out.Operations() {
		if _, ok := op.G.(gate.PauliGate); ok {
			rotations++
		}
	}
	require.Equal(t, 7, rotations)
}

func TestCliffordReductionPassCancelsHH(t *testing.T) {
	b := builder.New(builder.Q(1), builder.C(0))
	b.H(0)
	b.H(0)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := CliffordReductionPass{}
	out, changed, err := p.Run(c)
	require.NoError(t, err)
	require.True(t, changed)
	require.Empty(t, out.Operations())
}

func TestCliffordReductionPassCommutesHXHIntoZ(t *testing.T) {
	b := builder.New(builder.Q(1), builder.C(0))
	b.H(0)
	b.X(0)
	b.H(0)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := CliffordReductionPass{}
	out, changed, err := p.Run(c)
	require.NoError(t, err)
	require.True(t, changed)

	names := make([]string, 0, len(out.Operations()))
	for _, op := range out.Operations() {
		names = append(names, op.G.Name())
	}
	require.Equal(t, []string{"Z"}, names, "H.X.H = Z, with the two Hs fully absorbed")
}

func TestCliffordReductionPassLeavesUnrelatedGatesAlone(t *testing.T) {
	b := builder.New(builder.Q(2), builder.C(0))
	b.CNOT(0, 1)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := CliffordReductionPass{}
	out, changed, err := p.Run(c)
	require.NoError(t, err)
	require.False(t, changed)
	require.Len(t, out.Operations(), 1)
	require.Equal(t, "CNOT", out.Operations()[0].G.Name())
}
