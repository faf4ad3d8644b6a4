package testgen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQFTBuildsRequestedWidth(t *testing.T) {
	c, err := QFT(3)
	require.NoError(t, err)
	require.Equal(t, 3, c.Qubits())
	require.Equal(t, 3, c.Clbits())
	require.NotEmpty(t, c.Operations())
}

func TestQFTRejectsNonPositiveWidth(t *testing.T) {
	_, err := QFT(0)
	require.Error(t, err)
}

func TestShorBuildsCountingAndWorkRegisters(t *testing.T) {
	c, err := Shor(2)
	require.NoError(t, err)
	require.Equal(t, 4, c.Qubits())
	require.Equal(t, 2, c.Clbits())
	require.NotEmpty(t, c.Operations())
}

func TestShorRejectsNonPositiveWidth(t *testing.T) {
	_, err := Shor(0)
	require.Error(t, err)
}
