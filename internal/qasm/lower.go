package qasm

import (
	"fmt"

	"github.com/kegliz/ftcompile/internal/pauli"
	"github.com/kegliz/ftcompile/qc/builder"
	"github.com/kegliz/ftcompile/qc/circuit"
	"github.com/kegliz/ftcompile/qc/dag"
	"github.com/kegliz/ftcompile/qc/gate"
)

// regMap resolves a register name + optional index to an absolute index,
// registers being laid out back-to-back in declaration order.
type regMap struct {
	base map[string]int
	size map[string]int
}

func buildRegMap(regs []Reg) *regMap {
	rm := &regMap{base: map[string]int{}, size: map[string]int{}}
	offset := 0
	for _, r := range regs {
		rm.base[r.Name] = offset
		rm.size[r.Name] = r.Size
		offset += r.Size
	}
	return rm
}

func toRegSpecs(regs []Reg) []dag.RegisterSpec {
	specs := make([]dag.RegisterSpec, len(regs))
	for i, r := range regs {
		specs[i] = dag.RegisterSpec{Name: r.Name, Size: r.Size}
	}
	return specs
}

func (rm *regMap) total() int {
	t := 0
	for _, s := range rm.size {
		t += s
	}
	return t
}

func (rm *regMap) resolve(a QubitArg) ([]int, error) {
	base, ok := rm.base[a.Reg]
	if !ok {
		return nil, fmt.Errorf("qasm: undeclared register %q", a.Reg)
	}
	if a.Index >= 0 {
		return []int{base + a.Index}, nil
	}
	size := rm.size[a.Reg]
	out := make([]int, size)
	for i := 0; i < size; i++ {
		out[i] = base + i
	}
	return out, nil
}

// Lower builds a circuit.Circuit from a parsed Program. warn receives a
// human-readable message for every construct this compiler parses but
// cannot execute (reset, barrier, if); pass nil to discard them.
func Lower(prog *Program, warn func(string)) (circuit.Circuit, error) {
	if warn == nil {
		warn = func(string) {}
	}
	qregs := buildRegMap(prog.QRegs)
	cregs := buildRegMap(prog.CRegs)
	b := builder.New(builder.Qregs(toRegSpecs(prog.QRegs)...), builder.Cregs(toRegSpecs(prog.CRegs)...))
	definedGates := make(map[string]bool)

	var emit func(stmts []Statement, sc *scope) error
	emit = func(stmts []Statement, sc *scope) error {
		for _, st := range stmts {
			if err := emitOne(b, prog, qregs, cregs, st, sc, warn, emit, definedGates); err != nil {
				return err
			}
		}
		return nil
	}
	if err := emit(prog.Statements, nil); err != nil {
		return nil, err
	}
	return b.BuildCircuit()
}

// scope carries the qubit/parameter substitution active while lowering an
// inlined custom-gate body; nil at top level.
type scope struct {
	qsub map[string][]int
	psub map[string]string
}

func (sc *scope) qubits() map[string][]int {
	if sc == nil {
		return nil
	}
	return sc.qsub
}

// substParam replaces expr with its bound value if expr is exactly a bound
// formal parameter name; compound expressions referencing a parameter
// (e.g. "theta/2") are passed through unsubstituted, a scope simplification
// documented in DESIGN.md.
func (sc *scope) substParam(expr string) string {
	if sc == nil {
		return expr
	}
	if v, ok := sc.psub[expr]; ok {
		return v
	}
	return expr
}

// resolveQubits resolves operands inside a (possibly inlined) gate body:
// sc.qsub maps a gate definition's formal qubit names to the caller's
// actual absolute qubit indices; outside any gate body sc is nil and names
// resolve against the program's qregs directly.
func resolveQubits(qregs *regMap, sc *scope, args []QubitArg) ([]int, error) {
	qsub := sc.qubits()
	var out []int
	for _, a := range args {
		if qsub != nil {
			if idxs, ok := qsub[a.Reg]; ok {
				if a.Index >= 0 {
					out = append(out, idxs[a.Index])
				} else {
					out = append(out, idxs...)
				}
				continue
			}
		}
		resolved, err := qregs.resolve(a)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved...)
	}
	return out, nil
}

func emitOne(b builder.Builder, prog *Program, qregs, cregs *regMap, st Statement, sc *scope,
	warn func(string), emit func([]Statement, *scope) error, definedGates map[string]bool) error {
	switch st.Kind {
	case StmtReset:
		warn("reset is parsed but not semantically executed")
		return nil
	case StmtBarrier:
		warn("barrier is parsed but not semantically executed")
		return nil
	case StmtIf:
		warn(fmt.Sprintf("if (%s==%d) is parsed but not semantically executed", st.IfCreg, st.IfVal))
		return nil
	case StmtMeasure:
		qs, err := resolveQubits(qregs, sc, []QubitArg{st.MeasureQubit})
		if err != nil {
			return err
		}
		cs, err := resolveQubits(cregs, nil, []QubitArg{st.MeasureCbit})
		if err != nil {
			return err
		}
		b.Measure(qs[0], cs[0])
		return nil
	case StmtGateCall:
		return emitGateCall(b, prog, qregs, st, sc, emit, definedGates)
	default:
		return fmt.Errorf("qasm: unsupported statement")
	}
}

func emitGateCall(b builder.Builder, prog *Program, qregs *regMap, st Statement, sc *scope,
	emit func([]Statement, *scope) error, definedGates map[string]bool) error {
	qs, err := resolveQubits(qregs, sc, st.Qubits)
	if err != nil {
		return err
	}

	switch st.Name {
	case "h":
		b.H(qs[0])
	case "x":
		b.X(qs[0])
	case "y":
		b.Y(qs[0])
	case "z":
		b.Z(qs[0])
	case "s":
		b.S(qs[0])
	case "sdg":
		b.Sdag(qs[0])
	case "sx":
		b.SX(qs[0])
	case "sxdg":
		b.SXdag(qs[0])
	case "t":
		b.T(qs[0])
	case "tdg":
		b.Tdag(qs[0])
	case "rz":
		if len(st.Params) != 1 {
			return fmt.Errorf("qasm: rz requires exactly one parameter")
		}
		b.RZ(sc.substParam(st.Params[0]), qs[0])
	case "cx", "cnot":
		b.CNOT(qs[0], qs[1])
	case "cz":
		b.CZ(qs[0], qs[1])
	case "swap":
		b.SWAP(qs[0], qs[1])
	case "ccx", "toffoli":
		b.Toffoli(qs[0], qs[1], qs[2])
	case "cswap", "fredkin":
		b.Fredkin(qs[0], qs[1], qs[2])
	case "t_pauli", "s_pauli", "z_pauli", "m_pauli":
		return emitPauliStmt(b, st)
	default:
		def, ok := prog.GateDefs[st.Name]
		if !ok {
			return fmt.Errorf("qasm: unknown gate %q", st.Name)
		}
		return emitCustomGate(b, prog, def, qs, st.Params, emit, definedGates)
	}
	return nil
}

func emitPauliStmt(b builder.Builder, st Statement) error {
	op, err := pauli.ParsePauliString(st.Params[0])
	if err != nil {
		return fmt.Errorf("qasm: %w", err)
	}
	switch st.Name {
	case "t_pauli":
		b.PauliRot(op, gate.KindTPauli, 1)
	case "s_pauli":
		b.PauliRot(op, gate.KindSPauli, 2)
	case "z_pauli":
		b.PauliRot(op, gate.KindSPauli, 4)
	case "m_pauli":
		b.PauliRot(op, gate.KindMPauli, 0)
	}
	return nil
}

// emitCustomGate replays a user gate call. Parameter-free gates are defined
// once into the builder's gate table (define_gate) and replayed at every
// call site via expand_gate, matching how a circuit keeps a user-defined-
// gate table rather than re-lowering the body text each time; gates with
// parameters fall back to scope substitution and direct inlining, since the
// table only stores a body over formal qubits with no parameter slots.
func emitCustomGate(b builder.Builder, prog *Program, def *GateDef, actualQubits []int, actualParams []string,
	emit func([]Statement, *scope) error, definedGates map[string]bool) error {
	if len(actualQubits) != len(def.Qubits) {
		return fmt.Errorf("qasm: gate %q expects %d qubits, got %d", def.Name, len(def.Qubits), len(actualQubits))
	}
	if len(actualParams) != len(def.Params) {
		return fmt.Errorf("qasm: gate %q expects %d parameters, got %d", def.Name, len(def.Params), len(actualParams))
	}

	if len(def.Params) == 0 {
		if !definedGates[def.Name] {
			ops, err := buildGateDef(prog, def)
			if err != nil {
				return err
			}
			b.DefineGate(def.Name, len(def.Qubits), ops)
			definedGates[def.Name] = true
		}
		b.ExpandGate(def.Name, actualQubits)
		return nil
	}

	qsub := make(map[string][]int, len(def.Qubits))
	for i, name := range def.Qubits {
		qsub[name] = []int{actualQubits[i]}
	}
	psub := make(map[string]string, len(def.Params))
	for i, name := range def.Params {
		psub[name] = actualParams[i]
	}
	return emit(def.Body, &scope{qsub: qsub, psub: psub})
}

// buildGateDef lowers a parameter-free gate definition's body once, over
// its own formal qubits 0..n-1, and returns it as a formal-qubit GateOp
// list ready for DefineGate.
func buildGateDef(prog *Program, def *GateDef) ([]dag.GateOp, error) {
	fb := builder.New(builder.Q(len(def.Qubits)), builder.C(0))
	qsub := make(map[string][]int, len(def.Qubits))
	for i, name := range def.Qubits {
		qsub[name] = []int{i}
	}
	sc := &scope{qsub: qsub}
	noRegs := &regMap{base: map[string]int{}, size: map[string]int{}}
	nestedDefined := make(map[string]bool)

	var emit func(stmts []Statement, sc *scope) error
	emit = func(stmts []Statement, sc *scope) error {
		for _, st := range stmts {
			if err := emitOne(fb, prog, noRegs, noRegs, st, sc, func(string) {}, emit, nestedDefined); err != nil {
				return err
			}
		}
		return nil
	}
	if err := emit(def.Body, sc); err != nil {
		return nil, err
	}

	reader, err := fb.BuildDAG()
	if err != nil {
		return nil, err
	}
	ops := make([]dag.GateOp, 0, len(reader.Operations()))
	for _, n := range reader.Operations() {
		ops = append(ops, dag.GateOp{G: n.G, Qubits: append([]int(nil), n.Qubits...), Cbit: n.Cbit})
	}
	return ops, nil
}
