package memopt

import "fmt"

// ValidatorMismatch reports where a scheduled instruction stream violates
// one of the scheduler's two correctness invariants. It is returned as an
// ordinary error value, never a panic -- ValidatorMismatch is a reported
// verdict, not a bug signal.
type ValidatorMismatch struct {
	Index int
	Inst  Instruction
	Msg   string
}

func (e *ValidatorMismatch) Error() string {
	return fmt.Sprintf("memopt: validator mismatch at output index %d (%s %v): %s", e.Index, e.Inst.Op, e.Inst.Qubits, e.Msg)
}

// Validate replays a scheduled output stream against the original input
// stream and checks both correctness invariants: every non-software,
// non-memory op's operands are resident in the working set at the point
// it executes, and each qubit's input sub-sequence (ignoring MSWAP/
// MSWAP_D/MPREFETCH) survives unchanged in the output.
func Validate(input, output []Instruction, capacity int) (bool, error) {
	working := make(map[int]bool, capacity)

	outByQubit := make(map[int][]Instruction)
	for i, in := range output {
		switch in.Op {
		case OpMSwap, OpMSwapD:
			if len(in.Qubits) != 2 {
				return false, &ValidatorMismatch{i, in, "MSWAP must name exactly two qubits"}
			}
			delete(working, in.Qubits[0])
			working[in.Qubits[1]] = true
			continue
		case OpMPrefetch:
			if len(in.Qubits) != 1 {
				return false, &ValidatorMismatch{i, in, "MPREFETCH must name exactly one qubit"}
			}
			working[in.Qubits[0]] = true
			continue
		}

		if !in.Op.IsSoftware() {
			for _, q := range in.Qubits {
				if !working[q] {
					return false, &ValidatorMismatch{i, in, fmt.Sprintf("operand qubit %d not resident in working set", q)}
				}
			}
		}
		for _, q := range in.Qubits {
			outByQubit[q] = append(outByQubit[q], stripSeq(in))
		}
	}

	inByQubit := make(map[int][]Instruction)
	for _, in := range input {
		for _, q := range in.Qubits {
			inByQubit[q] = append(inByQubit[q], stripSeq(in))
		}
	}

	for q, want := range inByQubit {
		got := outByQubit[q]
		if !instSequenceEqual(want, got) {
			return false, &ValidatorMismatch{-1, Instruction{Qubits: []int{q}}, fmt.Sprintf("qubit %d subsequence diverges from input", q)}
		}
	}
	return true, nil
}

func stripSeq(in Instruction) Instruction {
	in.Seq = 0
	return in
}

func instSequenceEqual(a, b []Instruction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Op != b[i].Op {
			return false
		}
		if !intsEqual(a[i].Qubits, b[i].Qubits) {
			return false
		}
		if !stringsEqual(a[i].Word, b[i].Word) {
			return false
		}
	}
	return true
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
