package passes

import (
	"github.com/kegliz/ftcompile/qc/builder"
	"github.com/kegliz/ftcompile/qc/circuit"
)

// DecomposePass expands Toffoli, Fredkin, SWAP and CZ into the Clifford+T
// generator set (H, X, Y, Z, S, S-dagger, SX, SX-dagger, CNOT, T, T-dagger).
// Everything already in that set, plus RZ and Pauli-rotation operations
// awaiting later passes, is copied through unchanged. If KeepCCX is set,
// Toffoli gates are left intact for a later pass (CliffordReductionPass or
// PbcPass) to turn directly into Pauli rotations instead.
type DecomposePass struct {
	KeepCCX bool
}

func (DecomposePass) Name() string { return "Decompose" }

func (p DecomposePass) Run(c circuit.Circuit) (circuit.Circuit, bool, error) {
	b := newBuilderLike(c)
	changed := false
	for _, op := range c.Operations() {
		switch op.G.Name() {
		case "TOFFOLI":
			if p.KeepCCX {
				b.Op(op.G, op.Qubits)
				continue
			}
			toffoli(b, op.Qubits[0], op.Qubits[1], op.Qubits[2])
			changed = true
		case "FREDKIN":
			fredkin(b, op.Qubits[0], op.Qubits[1], op.Qubits[2])
			changed = true
		case "SWAP":
			swap(b, op.Qubits[0], op.Qubits[1])
			changed = true
		case "CZ":
			cz(b, op.Qubits[0], op.Qubits[1])
			changed = true
		case "MEASURE":
			b.Measure(op.Qubits[0], op.Cbit)
		default:
			b.Op(op.G, op.Qubits)
		}
	}
	out, err := b.BuildCircuit()
	if err != nil {
		return nil, false, err
	}
	return out, changed, nil
}

// toffoli is the standard 15-gate Clifford+T decomposition for a doubly
// controlled X with controls a, b and target t; gate order matters for
// correctness and must not be reshuffled.
func toffoli(b builder.Builder, a, bq, t int) {
	b.H(t)
	b.CNOT(bq, t)
	b.Tdag(t)
	b.CNOT(a, t)
	b.T(t)
	b.CNOT(bq, t)
	b.T(bq)
	b.Tdag(t)
	b.CNOT(a, t)
	b.CNOT(a, bq)
	b.T(a)
	b.Tdag(bq)
	b.CNOT(a, bq)
	b.T(t)
	b.H(t)
}

// fredkin is a controlled swap of t1,t2 by control c, expressed as two
// CNOTs bracketing a Toffoli.
func fredkin(b builder.Builder, c, t1, t2 int) {
	b.CNOT(t2, t1)
	toffoli(b, c, t1, t2)
	b.CNOT(t2, t1)
}

// swap is the textbook three-CNOT decomposition.
func swap(b builder.Builder, q1, q2 int) {
	b.CNOT(q1, q2)
	b.CNOT(q2, q1)
	b.CNOT(q1, q2)
}

// cz is H-sandwiched CNOT.
func cz(b builder.Builder, ctrl, tgt int) {
	b.H(tgt)
	b.CNOT(ctrl, tgt)
	b.H(tgt)
}
