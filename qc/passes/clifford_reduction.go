package passes

import (
	"github.com/kegliz/ftcompile/qc/circuit"
	"github.com/kegliz/ftcompile/qc/gate"
)

// CliffordReductionPass ("TACO") replaces every Toffoli with its 7-term
// Pauli-rotation stabilizer expansion (the same encoding PbcPass uses for
// CCX) and collapses each maximal same-qubit single-qubit Clifford+T run
// into a reduced gate sequence, commuting Hadamards to the end of the run
// via the standard H-conjugation table.
type CliffordReductionPass struct{}

func (CliffordReductionPass) Name() string { return "CliffordReduction" }

var clifford1QNames = map[string]bool{
	"H": true, "X": true, "Y": true, "Z": true,
	"S": true, "SDG": true, "SX": true, "SXDG": true,
	"T": true, "TDG": true,
}

// hCommuteTable implements H.G.H = G' for the single-qubit Cliffords (T/TDG
// are deliberately absent: conjugating T by H produces a genuinely new
// non-Clifford generator, "P4" in the literature, which this
// implementation does not introduce as a separate gate -- a run ending
// T...H keeps its H where it is rather than rewriting T into P4, a scope
// simplification noted in DESIGN.md).
var hCommuteTable = map[string]string{
	"X": "Z", "Z": "X", "Y": "Y",
	"S": "SX", "SDG": "SXDG", "SX": "S", "SXDG": "SDG",
}

// run accumulates a maximal single-qubit Clifford+T sequence on one qubit,
// cancelling adjacent self-inverse/inverse-pair gates as they arrive and
// tracking a trailing Hadamard parity that later gates commute through via
// hCommuteTable rather than being interleaved with it.
type run struct {
	body      []string
	hTrailing bool
}

func (r *run) push(g string) (changed bool) {
	if g == "H" {
		r.hTrailing = !r.hTrailing
		return false
	}
	name := g
	if r.hTrailing {
		if mapped, ok := hCommuteTable[g]; ok {
			name = mapped
		} else {
			// T/TDG do not commute through H: emit the pending H first.
			r.body = append(r.body, "H")
			r.hTrailing = false
		}
	}
	if len(r.body) > 0 {
		last := r.body[len(r.body)-1]
		if cancels1Q(last, name) {
			r.body = r.body[:len(r.body)-1]
			return true
		}
	}
	r.body = append(r.body, name)
	return false
}

func cancels1Q(prev, cur string) bool {
	if selfInverse1Q[prev] && prev == cur {
		return true
	}
	return inversePair[prev] == cur
}

func (p CliffordReductionPass) Run(c circuit.Circuit) (circuit.Circuit, bool, error) {
	n := c.Qubits()
	out := newBuilderLike(c)
	changed := false

	pending := make(map[int]*run)
	flush := func(q int) {
		r := pending[q]
		if r == nil {
			return
		}
		for _, g := range r.body {
			emitGeneratorWord(out, g, q)
		}
		if r.hTrailing {
			out.H(q)
		}
		delete(pending, q)
	}

	for _, op := range c.Operations() {
		name := op.G.Name()
		if name == "TOFFOLI" {
			changed = true
			for _, q := range op.Qubits {
				flush(q)
			}
			for _, row := range toffoliStabilizerRows(n, op.Qubits[0], op.Qubits[1], op.Qubits[2]) {
				out.PauliRot(row, gate.KindTPauli, 1)
			}
			continue
		}
		if len(op.Qubits) == 1 && clifford1QNames[name] {
			q := op.Qubits[0]
			r := pending[q]
			if r == nil {
				r = &run{}
				pending[q] = r
			}
			if r.push(name) {
				changed = true
			}
			continue
		}
		for _, q := range op.Qubits {
			flush(q)
		}
		out.Op(op.G, op.Qubits)
	}
	for q := range pending {
		flush(q)
	}

	outCircuit, err := out.BuildCircuit()
	if err != nil {
		return nil, false, err
	}
	return outCircuit, changed, nil
}
