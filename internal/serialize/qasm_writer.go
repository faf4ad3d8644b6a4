// Package serialize implements the two output formats this compiler
// produces: a deterministic OpenQASM 2.0-compatible textual printer, and a
// length-prefixed binary instruction stream consumed/produced by
// internal/memopt.
package serialize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kegliz/ftcompile/internal/numeric"
	"github.com/kegliz/ftcompile/qc/circuit"
	"github.com/kegliz/ftcompile/qc/dag"
	"github.com/kegliz/ftcompile/qc/gate"
)

// qasmAngleDenomBound is the largest denominator tried by the best-
// rational-over-pi search.
const qasmAngleDenomBound = 100

// qasmAngleTolerance is the maximum allowed |theta/pi - p/q| for the
// rational form to be preferred over a raw decimal.
const qasmAngleTolerance = 1e-10

var qasmGateNames = map[string]string{
	"H": "h", "X": "x", "Y": "y", "Z": "z",
	"S": "s", "SDG": "sdg", "SX": "sx", "SXDG": "sxdg",
	"T": "t", "TDG": "tdg",
	"CNOT": "cx", "CZ": "cz", "SWAP": "swap",
	"TOFFOLI": "ccx", "FREDKIN": "cswap",
}

// qubitNamer maps an absolute qubit or clbit index back to its declared
// register's "name[local_idx]" spelling, so a round-tripped program keeps
// the original register structure instead of a single flattened q[N]/c[M].
type qubitNamer struct {
	text []string
}

func newNamer(spans []dag.RegisterSpan, total int) qubitNamer {
	text := make([]string, total)
	for _, s := range spans {
		for i := 0; i < s.Size; i++ {
			text[s.Base+i] = fmt.Sprintf("%s[%d]", s.Name, i)
		}
	}
	return qubitNamer{text: text}
}

func (n qubitNamer) name(idx int) string {
	if idx >= 0 && idx < len(n.text) && n.text[idx] != "" {
		return n.text[idx]
	}
	return fmt.Sprintf("q[%d]", idx)
}

// WriteQASM renders c as OpenQASM 2.0 text, in topological operation order.
// Quantum and classical registers are declared by their original names, not
// flattened into one qreg/creg. RZ angles are printed via the best-
// rational-over-pi search; Pauli-rotation ops are printed using the
// t_pauli/s_pauli/z_pauli/m_pauli extensions.
func WriteQASM(c circuit.Circuit, prec uint) (string, error) {
	if prec == 0 {
		prec = numeric.DefaultPrec
	}
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n")

	qspans := c.QubitRegisters()
	if len(qspans) == 0 {
		qspans = []dag.RegisterSpan{{Name: "q", Base: 0, Size: c.Qubits()}}
	}
	for _, s := range qspans {
		sb.WriteString(fmt.Sprintf("qreg %s[%d];\n", s.Name, s.Size))
	}
	cspans := c.ClassicalRegisters()
	if len(cspans) == 0 && c.Clbits() > 0 {
		cspans = []dag.RegisterSpan{{Name: "c", Base: 0, Size: c.Clbits()}}
	}
	for _, s := range cspans {
		sb.WriteString(fmt.Sprintf("creg %s[%d];\n", s.Name, s.Size))
	}

	qn := newNamer(qspans, c.Qubits())
	cn := newNamer(cspans, c.Clbits())

	for _, op := range c.Operations() {
		line, err := qasmLine(op, prec, qn, cn)
		if err != nil {
			return "", err
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func qasmLine(op circuit.Operation, prec uint, qn, cn qubitNamer) (string, error) {
	if pg, ok := op.G.(gate.PauliGate); ok {
		return qasmPauliLine(pg), nil
	}
	if rz, ok := op.G.(gate.RZGate); ok {
		angle, err := formatAngle(rz.Theta, prec)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("rz(%s) %s;", angle, qn.name(op.Qubits[0])), nil
	}
	if op.G.Name() == "MEASURE" {
		return fmt.Sprintf("measure %s -> %s;", qn.name(op.Qubits[0]), cn.name(op.Cbit)), nil
	}
	name, ok := qasmGateNames[op.G.Name()]
	if !ok {
		return "", fmt.Errorf("serialize: no QASM spelling for gate %q", op.G.Name())
	}
	args := make([]string, len(op.Qubits))
	for i, q := range op.Qubits {
		args[i] = qn.name(q)
	}
	return fmt.Sprintf("%s %s;", name, strings.Join(args, ",")), nil
}

func qasmPauliLine(pg gate.PauliGate) string {
	kind := "t_pauli"
	switch {
	case pg.Kind == gate.KindMPauli:
		kind = "m_pauli"
	case pg.Kind == gate.KindSPauli && pg.K == 4:
		// z_pauli and s_pauli both carry KindSPauli; K is what tells them
		// apart (see internal/qasm/lower.go's emitPauliStmt), so the K
		// value, not just the Kind, must drive the printed keyword.
		kind = "z_pauli"
	case pg.Kind == gate.KindSPauli:
		kind = "s_pauli"
	}
	// PauliOp.String always emits a leading sign character.
	s := pg.Op.String()
	return fmt.Sprintf("%s %s;", kind, s)
}

// formatAngle parses thetaExpr to a float and searches for the best
// rational multiple of pi with denominator up to qasmAngleDenomBound,
// printing "[coeff]pi[/denom]" when one is within tolerance, else a
// 10-digit decimal with trailing zeros trimmed.
func formatAngle(thetaExpr string, prec uint) (string, error) {
	theta, err := numeric.ParsePiExpr(thetaExpr, prec)
	if err != nil {
		return "", fmt.Errorf("serialize: %w", err)
	}
	ratio := theta.Quo(numeric.Pi(prec)).Float64()

	bestP, bestQ := 0, 1
	bestErr := -1.0
	for q := 1; q <= qasmAngleDenomBound; q++ {
		p := int(roundFloat(ratio * float64(q)))
		approx := float64(p) / float64(q)
		diff := absFloat(ratio - approx)
		if bestErr < 0 || diff < bestErr {
			bestErr = diff
			bestP, bestQ = p, q
		}
	}
	if bestErr <= qasmAngleTolerance {
		return formatPiMultiple(bestP, bestQ), nil
	}

	decimal := strconv.FormatFloat(theta.Float64(), 'f', 10, 64)
	return trimTrailingZeros(decimal), nil
}

func formatPiMultiple(p, q int) string {
	switch {
	case p == 0:
		return "0"
	case p == 1 && q == 1:
		return "pi"
	case p == -1 && q == 1:
		return "-pi"
	case q == 1:
		return fmt.Sprintf("%dpi", p)
	case p == 1:
		return fmt.Sprintf("pi/%d", q)
	case p == -1:
		return fmt.Sprintf("-pi/%d", q)
	default:
		return fmt.Sprintf("%dpi/%d", p, q)
	}
}

func trimTrailingZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

func roundFloat(x float64) float64 {
	if x >= 0 {
		return float64(int64(x + 0.5))
	}
	return float64(int64(x - 0.5))
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
