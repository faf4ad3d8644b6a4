package passes

import (
	"testing"

	"github.com/kegliz/ftcompile/qc/builder"
	"github.com/stretchr/testify/require"
)

// TestDecomposePassToffoliGateOrder pins the exact 15-gate word the Toffoli
// expansion must emit: H,CX,T†,CX,T,CX,T,T†,CX,CX,T,T†,CX,T,H, with qubit 2
// (the target) receiving the H/T gates and qubit 1 the conjugation.
func TestDecomposePassToffoliGateOrder(t *testing.T) {
	b := builder.New(builder.Q(3), builder.C(0))
	b.Toffoli(0, 1, 2)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := DecomposePass{}
	out, changed, err := p.Run(c)
	require.NoError(t, err)
	require.True(t, changed)

	ops := out.Operations()
	require.Len(t, ops, 15)

	wantNames := []string{"H", "CNOT", "TDG", "CNOT", "T", "CNOT", "T", "TDG", "CNOT", "CNOT", "T", "TDG", "CNOT", "T", "H"}
	wantQubits := [][]int{
		{2}, {1, 2}, {2}, {0, 2}, {2}, {1, 2}, {1}, {2}, {0, 2},
		{0, 1}, {0}, {1}, {0, 1}, {2}, {2},
	}
	for i, op := range ops {
		require.Equal(t, wantNames[i], op.G.Name(), "gate %d", i)
		require.Equal(t, wantQubits[i], op.Qubits, "qubits %d", i)
	}
}

func TestDecomposePassKeepCCXLeavesToffoliIntact(t *testing.T) {
	b := builder.New(builder.Q(3), builder.C(0))
	b.Toffoli(0, 1, 2)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := DecomposePass{KeepCCX: true}
	out, changed, err := p.Run(c)
	require.NoError(t, err)
	require.False(t, changed)
	require.Len(t, out.Operations(), 1)
	require.Equal(t, "TOFFOLI", out.Operations()[0].G.Name())
}
