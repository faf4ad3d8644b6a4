package passes

import (
	"testing"

	"github.com/kegliz/ftcompile/qc/builder"
	"github.com/kegliz/ftcompile/qc/gate"
	"github.com/stretchr/testify/require"
)

func TestPbcPassProducesOnlyPauliRotations(t *testing.T) {
	b := builder.New(builder.Q(2), builder.C(2))
	b.H(0)
	b.CNOT(0, 1)
	b.T(1)
	b.Measure(0, 0)
	b.Measure(1, 1)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := PbcPass{}
	out, changed, err := p.Run(c)
	require.NoError(t, err)
	require.True(t, changed)

	nMeasurements := 0
	for _, op := range out.Operations() {
		pg, ok := op.G.(gate.PauliGate)
		require.True(t, ok, "every op in PBC form must be a PauliGate, got %q", op.G.Name())
		if pg.Kind == gate.KindMPauli {
			nMeasurements++
		}
	}
	require.Equal(t, 2, nMeasurements)
}

func TestPbcPassKeepCXExpandsCnot(t *testing.T) {
	b := builder.New(builder.Q(2), builder.C(0))
	b.CNOT(0, 1)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	withoutKeep := PbcPass{KeepCX: false}
	out1, _, err := withoutKeep.Run(c)
	require.NoError(t, err)

	withKeep := PbcPass{KeepCX: true}
	out2, _, err := withKeep.Run(c)
	require.NoError(t, err)

	require.True(t, len(out2.Operations()) >= len(out1.Operations()))
}

func TestPbcPassExpandsToffoliIntoSevenRotations(t *testing.T) {
	b := builder.New(builder.Q(3), builder.C(0))
	b.Toffoli(0, 1, 2)
	c, err := b.BuildCircuit()
	require.NoError(t, err)

	p := PbcPass{}
	out, changed, err := p.Run(c)
	require.NoError(t, err)
	require.True(t, changed)

	rotations := 0
	for _, op := range out.Operations() {
		pg := op.G.(gate.PauliGate)
		if pg.Kind != gate.KindMPauli {
			rotations++
		}
	}
	require.Equal(t, 7, rotations)
}
