// Package memopt implements the memory-aware scheduler: given a binary
// instruction stream targeting an unbounded number of logical qubits, it
// produces an expanded stream with MSWAP/MPREFETCH ops inserted so that
// every non-software op's operands are resident in a bounded-size compute region at
// execution time.
package memopt

import "fmt"

// Opcode discriminates the low-level instruction set the scheduler
// operates on -- a smaller, flatter IR than circuit.Operation, closer to
// what a downstream architecture actually executes.
type Opcode int

const (
	OpRZ Opcode = iota
	OpRX
	OpCCX
	OpCCZ
	OpCX
	OpCZ
	OpX
	OpY
	OpZ
	OpSwap
	OpMSwap
	OpMSwapD
	OpMPrefetch
	// Single-qubit Clifford+T gates beyond X/Y/Z, carried through unchanged by the
	// scheduler (never unrolled, never a dependency hazard beyond the
	// ordinary per-qubit window rule).
	OpH
	OpS
	OpSdg
	OpSX
	OpSXdg
	OpT
	OpTdg
)

func (op Opcode) String() string {
	switch op {
	case OpRZ:
		return "RZ"
	case OpRX:
		return "RX"
	case OpCCX:
		return "CCX"
	case OpCCZ:
		return "CCZ"
	case OpCX:
		return "CX"
	case OpCZ:
		return "CZ"
	case OpX:
		return "X"
	case OpY:
		return "Y"
	case OpZ:
		return "Z"
	case OpSwap:
		return "SWAP"
	case OpMSwap:
		return "MSWAP"
	case OpMSwapD:
		return "MSWAP_D"
	case OpMPrefetch:
		return "MPREFETCH"
	case OpH:
		return "H"
	case OpS:
		return "S"
	case OpSdg:
		return "SDG"
	case OpSX:
		return "SX"
	case OpSXdg:
		return "SXDG"
	case OpT:
		return "T"
	case OpTdg:
		return "TDG"
	default:
		return fmt.Sprintf("OPCODE(%d)", int(op))
	}
}

// softwareOps are ops the scheduler may retire without operand residency:
// classically-trackable Pauli frame updates, never physically executed.
var softwareOps = map[Opcode]bool{OpX: true, OpY: true, OpZ: true, OpSwap: true}

func (op Opcode) IsSoftware() bool { return softwareOps[op] }
func (op Opcode) IsMemory() bool   { return op == OpMSwap || op == OpMSwapD || op == OpMPrefetch }

// Instruction is one low-level op: a discriminant, the absolute qubit
// indices it touches, and -- for RZ/RX -- the unrolled Clifford+T gate
// word SynthesizeRzPass produced for it. Seq is stamped by the reader at
// read time and is not part of the wire encoding.
type Instruction struct {
	Op     Opcode
	Qubits []int
	Word   []string // unrolled Clifford+T sequence, RZ/RX only
	Seq    uint64
}

// UopCount is the number of unrolled physical operations this instruction
// contributes, per the scheduler's accounting rule: RZ/RX count their gate
// word length, CCX is 15, CCZ is 13, everything else is 1.
func (in Instruction) UopCount() int {
	switch in.Op {
	case OpRZ, OpRX:
		if len(in.Word) == 0 {
			return 1
		}
		return len(in.Word)
	case OpCCX:
		return 15
	case OpCCZ:
		return 13
	default:
		return 1
	}
}

// GateScore is the Compute-Set-Tree gate-type score used by the cost-aware
// emitter: rotations score 20, Toffoli-like 10, CX-like 2, software 0,
// everything else 1.
func (in Instruction) GateScore() int {
	switch in.Op {
	case OpRZ, OpRX:
		return 20
	case OpCCX, OpCCZ:
		return 10
	case OpCX, OpCZ:
		return 2
	default:
		if in.Op.IsSoftware() {
			return 0
		}
		return 1
	}
}
