package passes

import (
	"testing"

	"github.com/kegliz/ftcompile/internal/pauli"
	"github.com/kegliz/ftcompile/qc/builder"
	"github.com/kegliz/ftcompile/qc/gate"
	"github.com/stretchr/testify/require"
)

func TestTfusePassFusesTwoEqualAxisRotations(t *testing.T) {
	n := 1
	z0 := pauli.Z(n, 0)
	b := builder.New(builder.Q(n), builder.C(0))
	b.PauliRot(z0, gate.KindMPauli, 0)
	b.PauliRot(z0, gate.KindTPauli, 1)
	b.PauliRot(z0, gate.KindTPauli, 1)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := TfusePass{}
	out, changed, err := p.Run(c)
	require.NoError(t, err)
	require.True(t, changed)

	rotationCount := 0
	for _, op := range out.Operations() {
		pg := op.G.(gate.PauliGate)
		if pg.Kind != gate.KindMPauli {
			rotationCount++
		}
	}
	require.Equal(t, 0, rotationCount, "T(pi/4)+T(pi/4) on the same axis fuses to a Clifford correction, leaving no rotation")
}

func TestTfusePassRejectsNonPbcCircuit(t *testing.T) {
	b := builder.New(builder.Q(1), builder.C(0))
	b.H(0)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := TfusePass{}
	_, _, err = p.Run(c)
	require.Error(t, err)
}

func TestTfusePassLeavesDistinctAxesAlone(t *testing.T) {
	n := 2
	b := builder.New(builder.Q(n), builder.C(0))
	b.PauliRot(pauli.Z(n, 0), gate.KindMPauli, 0)
	b.PauliRot(pauli.Z(n, 1), gate.KindMPauli, 0)
	b.PauliRot(pauli.Z(n, 0), gate.KindTPauli, 1)
	b.PauliRot(pauli.X(n, 1), gate.KindTPauli, 1)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := TfusePass{}
	out, _, err := p.Run(c)
	require.NoError(t, err)

	rotationCount := 0
	for _, op := range out.Operations() {
		pg := op.G.(gate.PauliGate)
		if pg.Kind != gate.KindMPauli {
			rotationCount++
		}
	}
	require.Equal(t, 2, rotationCount, "distinct axes on different qubits do not fuse")
}
