package serialize

import (
	"bytes"
	"io"
	"testing"

	"github.com/kegliz/ftcompile/internal/memopt"
	"github.com/stretchr/testify/require"
)

func TestBinaryRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	bw, err := NewBinaryWriter(&buf, 3)
	require.NoError(t, err)

	instrs := []memopt.Instruction{
		{Op: memopt.OpH, Qubits: []int{0}},
		{Op: memopt.OpCX, Qubits: []int{0, 1}},
		{Op: memopt.OpRZ, Qubits: []int{2}, Word: []string{"T", "H", "T"}},
	}
	for _, in := range instrs {
		require.NoError(t, bw.WriteInstruction(in))
	}

	br, err := NewBinaryReader(&buf)
	require.NoError(t, err)
	require.Equal(t, 3, br.Qubits())

	for i, want := range instrs {
		got, err := br.ReadInstruction()
		require.NoError(t, err)
		require.Equal(t, want.Op, got.Op)
		require.Equal(t, want.Qubits, got.Qubits)
		require.Equal(t, want.Word, got.Word)
		require.Equal(t, uint64(i), got.Seq)
	}

	_, err = br.ReadInstruction()
	require.ErrorIs(t, err, io.EOF)
}

func TestBinaryReaderEOFIsNonDestructive(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewBinaryWriter(&buf, 1)
	require.NoError(t, err)

	br, err := NewBinaryReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	_, err = br.ReadInstruction()
	require.ErrorIs(t, err, io.EOF)
	_, err = br.ReadInstruction()
	require.ErrorIs(t, err, io.EOF)
}

func TestInstructionUopCount(t *testing.T) {
	require.Equal(t, 3, memopt.Instruction{Op: memopt.OpRZ, Word: []string{"T", "H", "T"}}.UopCount())
	require.Equal(t, 15, memopt.Instruction{Op: memopt.OpCCX}.UopCount())
	require.Equal(t, 13, memopt.Instruction{Op: memopt.OpCCZ}.UopCount())
	require.Equal(t, 1, memopt.Instruction{Op: memopt.OpH}.UopCount())
}
