package passes

import (
	"testing"

	"github.com/kegliz/ftcompile/qc/builder"
	"github.com/kegliz/ftcompile/qc/circuit"
	"github.com/kegliz/ftcompile/qc/gate"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeRzPassRewritesRz(t *testing.T) {
	b := builder.New(builder.Q(1), builder.C(0))
	b.RZ("pi/4", 0)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := SynthesizeRzPass{}
	out, changed, err := p.Run(c)
	require.NoError(t, err)
	require.True(t, changed)
	for _, op := range out.Operations() {
		_, isRz := op.G.(gate.RZGate)
		require.False(t, isRz, "no RZ op should survive synthesis")
	}
}

func TestSynthesizeRzPassCachesByAngle(t *testing.T) {
	b := builder.New(builder.Q(2), builder.C(0))
	b.RZ("pi/4", 0)
	b.RZ("pi/4", 1)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := SynthesizeRzPass{}
	out, changed, err := p.Run(c)
	require.NoError(t, err)
	require.True(t, changed)

	countsByQubit := map[int]int{}
	for _, op := range out.Operations() {
		if len(op.Qubits) == 1 {
			countsByQubit[op.Qubits[0]]++
		}
	}
	require.Equal(t, countsByQubit[0], countsByQubit[1], "identical angles must synthesize to identical word lengths")
}

func TestSynthesizeRzPassLeavesOtherGatesAlone(t *testing.T) {
	b := builder.New(builder.Q(1), builder.C(0))
	b.H(0)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := SynthesizeRzPass{}
	out, changed, err := p.Run(c)
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, "H", circuitFirstOpName(t, out))
}

func circuitFirstOpName(t *testing.T, c circuit.Circuit) string {
	t.Helper()
	ops := c.Operations()
	require.NotEmpty(t, ops)
	return ops[0].G.Name()
}
