package passes

import (
	"fmt"

	"github.com/kegliz/ftcompile/internal/pauli"
	"github.com/kegliz/ftcompile/qc/circuit"
	"github.com/kegliz/ftcompile/qc/gate"
)

// PbcPass converts an arbitrary Clifford+T circuit into Pauli-Based
// Computation form: a sequence of pi/4 (T_PAULI) and pi/2 (S_PAULI)
// rotations about arbitrary Pauli axes, followed by n terminal M_PAULI
// measurements. If KeepCX is set, CNOTs are re-expressed as an S_PAULI
// rotation plus two single-qubit Clifford conjugations instead of being fed
// to the tableau as a generator directly, per the spec's keep_cx variant.
type PbcPass struct {
	KeepCX bool
}

func (PbcPass) Name() string { return "Pbc" }

type pbcRotation struct {
	row int
	k   int
}

func (p PbcPass) Run(c circuit.Circuit) (circuit.Circuit, bool, error) {
	n := c.Qubits()
	ops := c.Operations()

	vt := pauli.NewVTab(n)
	var rotations []pbcRotation

	// Scan in reverse: the forward circuit's Paulis must be conjugated
	// through every Clifford that precedes them, which is exactly what
	// feeding Cliffords to the tableau while walking backward reconstructs.
	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]
		if pg, ok := op.G.(gate.PauliGate); ok {
			switch pg.Kind {
			case gate.KindTPauli, gate.KindSPauli:
				vt.AppendRow(pg.Op)
				rotations = append(rotations, pbcRotation{row: vt.NumRows() - 1, k: pg.K})
			case gate.KindMPauli:
				// terminal already; nothing further to conjugate.
			}
			continue
		}

		switch op.G.Name() {
		case "H":
			vt.H(op.Qubits[0])
		case "S":
			vt.S(op.Qubits[0])
		case "SDG":
			vt.Sdag(op.Qubits[0])
		case "SX":
			vt.SX(op.Qubits[0])
		case "SXDG":
			vt.SXdag(op.Qubits[0])
		case "X":
			vt.X(op.Qubits[0])
		case "Y":
			vt.Y(op.Qubits[0])
		case "Z":
			vt.Z(op.Qubits[0])
		case "T":
			row := pauli.Z(n, op.Qubits[0])
			vt.AppendRow(row)
			rotations = append(rotations, pbcRotation{row: vt.NumRows() - 1, k: 1})
		case "TDG":
			row := pauli.Z(n, op.Qubits[0])
			vt.AppendRow(row)
			rotations = append(rotations, pbcRotation{row: vt.NumRows() - 1, k: 7})
		case "CNOT":
			ctrl, tgt := op.Qubits[0], op.Qubits[1]
			if p.KeepCX {
				vt.Sdag(ctrl)
				vt.SXdag(tgt)
				row := pauli.Z(n, ctrl).Mul(pauli.X(n, tgt))
				vt.AppendRow(row)
				rotations = append(rotations, pbcRotation{row: vt.NumRows() - 1, k: 2})
			} else {
				vt.CX(ctrl, tgt)
			}
		case "TOFFOLI":
			for _, row := range toffoliStabilizerRows(n, op.Qubits[0], op.Qubits[1], op.Qubits[2]) {
				vt.AppendRow(row)
				rotations = append(rotations, pbcRotation{row: vt.NumRows() - 1, k: 1})
			}
		case "MEASURE":
			// the final n rows of the tableau already carry the
			// computational-basis measurements; nothing to conjugate.
		default:
			return nil, false, fmt.Errorf("passes: Pbc cannot handle gate %q, run DecomposePass first", op.G.Name())
		}
	}

	rows := vt.Rows()
	out := newBuilderLike(c)
	for i := len(rotations) - 1; i >= 0; i-- {
		r := rotations[i]
		out.PauliRot(rows[r.row], pauliRotKindFor(r.k), r.k)
	}
	for i := 0; i < n; i++ {
		out.PauliRot(rows[i], gate.KindMPauli, 0)
	}
	outCircuit, err := out.BuildCircuit()
	if err != nil {
		return nil, false, err
	}
	return outCircuit, true, nil
}

func pauliRotKindFor(k int) gate.PauliRotKind {
	if ((k % 8) + 8)%8%2 == 1 {
		return gate.KindTPauli
	}
	return gate.KindSPauli
}

// toffoliStabilizerRows returns the standard 7-term Pauli-rotation
// decomposition of a Toffoli gate (controls a, b; target t), derived from
// CCZ = exp(-i*pi/8*(Z_a+Z_b+Z_t-Z_aZ_b-Z_bZ_t-Z_aZ_t+Z_aZ_bZ_t)) and
// Toffoli = H_t . CCZ . H_t, which turns every Z_t factor above into X_t.
func toffoliStabilizerRows(n, a, b, t int) []pauli.PauliOp {
	za := pauli.Z(n, a)
	zb := pauli.Z(n, b)
	xt := pauli.X(n, t)
	zab := za.Mul(zb)
	zaxt := za.Mul(xt)
	zbxt := zb.Mul(xt)
	zabxt := zab.Mul(xt)
	return []pauli.PauliOp{za, zb, xt, negateSign(zab), negateSign(zbxt), negateSign(zaxt), zabxt}
}

func negateSign(p pauli.PauliOp) pauli.PauliOp {
	p.Sign = !p.Sign
	return p
}
