package memopt

import "sort"

// transformWorkingSetInto diffs current against target and produces the
// minimal list of memory ops realizing the transition: qubits leaving the
// set are paired against qubits entering it into swapOp (MSWAP or, when the
// caller judges the move isn't worth full residency tracking, MSWAP_D)
// instructions; any unpaired arrivals (the working set growing, or the very
// first emission from an empty set) become MPREFETCH instructions.
func transformWorkingSetInto(current, target map[int]bool, swapOp Opcode) []Instruction {
	var leaving, arriving []int
	for q := range current {
		if !target[q] {
			leaving = append(leaving, q)
		}
	}
	for q := range target {
		if !current[q] {
			arriving = append(arriving, q)
		}
	}
	sort.Ints(leaving)
	sort.Ints(arriving)

	var ops []Instruction
	i := 0
	for ; i < len(leaving) && i < len(arriving); i++ {
		ops = append(ops, Instruction{Op: swapOp, Qubits: []int{leaving[i], arriving[i]}})
	}
	for ; i < len(arriving); i++ {
		ops = append(ops, Instruction{Op: OpMPrefetch, Qubits: []int{arriving[i]}})
	}
	return ops
}

// VISZLAI is the priority-greedy emitter: it builds a new working set by
// first absorbing qubits of ready head-of-window ops that touch the
// current working set, then remaining ready heads, stopping once the
// target capacity is reached.
type VISZLAI struct{}

func (VISZLAI) Emit(s *Scheduler) (map[int]bool, []Instruction) {
	heads := s.PendingHeads()

	target := make(map[int]bool, s.Capacity)
	addQubits := func(in Instruction) bool {
		for _, q := range in.Qubits {
			if len(target) >= s.Capacity && !target[q] {
				return false
			}
			target[q] = true
		}
		return true
	}

	for _, h := range heads {
		if len(target) >= s.Capacity {
			break
		}
		if !touchesSet(h, s.workingSet) {
			continue
		}
		addQubits(h)
	}
	for _, h := range heads {
		if len(target) >= s.Capacity {
			break
		}
		addQubits(h)
	}

	ops := transformWorkingSetInto(s.workingSet, target, OpMSwap)
	return target, ops
}

func touchesSet(in Instruction, set map[int]bool) bool {
	for _, q := range in.Qubits {
		if set[q] {
			return true
		}
	}
	return false
}
