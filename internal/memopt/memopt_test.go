package memopt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchedulerViszlaiProducesValidSchedule(t *testing.T) {
	input := newLinearChain(4)
	src := &sliceSource{ops: input}
	sink := &sliceSink{}

	s := NewScheduler(src, sink, 2, VISZLAI{})
	_, err := s.Run()
	require.NoError(t, err)

	ok, err := Validate(input, sink.ops, 2)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSchedulerCostAwareProducesValidSchedule(t *testing.T) {
	input := newLinearChain(5)
	src := &sliceSource{ops: input}
	sink := &sliceSink{}

	s := NewScheduler(src, sink, 3, &CostAware{})
	_, err := s.Run()
	require.NoError(t, err)

	ok, err := Validate(input, sink.ops, 3)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSchedulerSoftwareOpsNeverBlockOnResidency(t *testing.T) {
	input := []Instruction{
		{Op: OpX, Qubits: []int{7}},
		{Op: OpY, Qubits: []int{8}},
	}
	src := &sliceSource{ops: input}
	sink := &sliceSink{}

	s := NewScheduler(src, sink, 1, VISZLAI{})
	_, err := s.Run()
	require.NoError(t, err)

	for _, op := range sink.ops {
		require.True(t, op.Op.IsSoftware())
	}
}

func TestValidateRejectsOperandNotResident(t *testing.T) {
	input := []Instruction{{Op: OpCX, Qubits: []int{0, 1}}}
	badOutput := []Instruction{{Op: OpCX, Qubits: []int{0, 1}}} // never prefetched

	ok, err := Validate(input, badOutput, 2)
	require.Error(t, err)
	require.False(t, ok)
	var mismatch *ValidatorMismatch
	require.ErrorAs(t, err, &mismatch)
}

func TestValidateRejectsReorderedSubsequence(t *testing.T) {
	input := []Instruction{
		{Op: OpH, Qubits: []int{0}},
		{Op: OpT, Qubits: []int{0}},
	}
	badOutput := []Instruction{
		{Op: OpMPrefetch, Qubits: []int{0}},
		{Op: OpT, Qubits: []int{0}},
		{Op: OpH, Qubits: []int{0}},
	}
	ok, err := Validate(input, badOutput, 1)
	require.Error(t, err)
	require.False(t, ok)
}

func TestInstructionGateScore(t *testing.T) {
	require.Equal(t, 20, Instruction{Op: OpRZ}.GateScore())
	require.Equal(t, 10, Instruction{Op: OpCCX}.GateScore())
	require.Equal(t, 2, Instruction{Op: OpCX}.GateScore())
	require.Equal(t, 0, Instruction{Op: OpX}.GateScore())
	require.Equal(t, 1, Instruction{Op: OpH}.GateScore())
}

func TestTransformWorkingSetIntoPairsSwapsAndPrefetches(t *testing.T) {
	current := map[int]bool{0: true, 1: true}
	target := map[int]bool{1: true, 2: true}
	ops := transformWorkingSetInto(current, target, OpMSwap)
	require.Len(t, ops, 1)
	require.Equal(t, OpMSwap, ops[0].Op)
	require.Equal(t, []int{0, 2}, ops[0].Qubits)

	fromEmpty := transformWorkingSetInto(map[int]bool{}, map[int]bool{5: true}, OpMSwap)
	require.Len(t, fromEmpty, 1)
	require.Equal(t, OpMPrefetch, fromEmpty[0].Op)
}
