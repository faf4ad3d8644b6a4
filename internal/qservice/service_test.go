package qservice

import (
	"testing"

	"github.com/kegliz/ftcompile/qc/passmanager"
	"github.com/stretchr/testify/require"
)

const bellQASM = `OPENQASM 2.0;
include "qelib1.inc";
qreg q[2];
creg c[2];
h q[0];
cx q[0],q[1];
measure q[0] -> c[0];
measure q[1] -> c[1];
`

func TestServiceCompileStoresAndReportsStats(t *testing.T) {
	s := NewService(NewProgramStore())

	id, stats, err := s.Compile(bellQASM)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.Equal(t, 2, stats.Qubits)
	require.Equal(t, 2, stats.Clbits)
	require.Equal(t, 4, stats.Ops)
}

func TestServiceCompileRejectsInvalidQASM(t *testing.T) {
	s := NewService(NewProgramStore())
	_, _, err := s.Compile("not qasm at all")
	require.Error(t, err)
}

func TestServiceRunPassesUpdatesStoredCircuit(t *testing.T) {
	s := NewService(NewProgramStore())
	id, before, err := s.Compile(bellQASM)
	require.NoError(t, err)

	result, err := s.RunPasses(id, passmanager.Options{ToPbc: true})
	require.NoError(t, err)
	require.Equal(t, before, result.Before)
	require.NotEmpty(t, result.Steps)

	again, err := s.RunPasses(id, passmanager.Options{RemovePauli: true})
	require.NoError(t, err)
	require.Equal(t, result.After, again.Before)
}

func TestServiceRunPassesRejectsUnknownID(t *testing.T) {
	s := NewService(NewProgramStore())
	_, err := s.RunPasses("does-not-exist", passmanager.Options{})
	require.Error(t, err)
}

func TestServiceRunPassesPropagatesPassManagerValidationErrors(t *testing.T) {
	s := NewService(NewProgramStore())
	id, _, err := s.Compile(bellQASM)
	require.NoError(t, err)

	_, err = s.RunPasses(id, passmanager.Options{ToPbc: true, ToCliffordReduction: true})
	require.Error(t, err)
}
