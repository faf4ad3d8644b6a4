package qservice

import (
	"testing"

	"github.com/kegliz/ftcompile/qc/builder"
	"github.com/kegliz/ftcompile/qc/circuit"
	"github.com/stretchr/testify/require"
)

func bellCircuit(t *testing.T) circuit.Circuit {
	t.Helper()
	b := builder.New(builder.Q(2), builder.C(2))
	b.H(0).CNOT(0, 1).Measure(0, 0).Measure(1, 1)
	c, err := b.BuildCircuit()
	require.NoError(t, err)
	return c
}

func TestProgramStoreSaveAndGet(t *testing.T) {
	ps := NewProgramStore()

	c1 := bellCircuit(t)
	c2 := bellCircuit(t)

	id1, err := ps.SaveProgram(c1)
	require.NoError(t, err)
	id2, err := ps.SaveProgram(c2)
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)

	got, err := ps.GetProgram(id1)
	require.NoError(t, err)
	require.Equal(t, c1, got)

	_, err = ps.GetProgram("invalid")
	require.Error(t, err)
}

func TestProgramStoreSaveProgramAtOverwritesInPlace(t *testing.T) {
	ps := NewProgramStore()

	orig := bellCircuit(t)
	id, err := ps.SaveProgram(orig)
	require.NoError(t, err)

	replacement := bellCircuit(t)
	sameID, err := ps.SaveProgramAt(id, replacement)
	require.NoError(t, err)
	require.Equal(t, id, sameID)

	got, err := ps.GetProgram(id)
	require.NoError(t, err)
	require.Equal(t, replacement, got)
}

func TestProgramStoreSaveProgramAtRejectsUnknownID(t *testing.T) {
	ps := NewProgramStore()
	_, err := ps.SaveProgramAt("missing", bellCircuit(t))
	require.Error(t, err)
}
