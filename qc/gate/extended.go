package gate

import (
	"fmt"

	"github.com/kegliz/ftcompile/internal/pauli"
)

// Additional single-qubit Clifford+T generators beyond the teacher's
// original H/X/Y/Z/S/CNOT/Toffoli/Fredkin/Measure set: S-dagger, SX,
// SX-dagger, T and T-dagger. These are the generators the unitary
// normaliser and Pauli-tableau passes synthesize circuits from.
var (
	sdagGate = &u1{"SDG", "S†"}
	sxGate   = &u1{"SX", "√X"}
	sxdgGate = &u1{"SXDG", "√X†"}
	tGate    = &u1{"T", "T"}
	tdgGate  = &u1{"TDG", "T†"}
)

func Sdag() Gate { return sdagGate }
func SX() Gate   { return sxGate }
func SXdag() Gate { return sxdgGate }
func T() Gate    { return tGate }
func Tdag() Gate { return tdgGate }

// RZGate is a parameterized single-qubit Z-axis rotation by an angle
// recorded as an exact decimal-or-pi-multiple string (see
// internal/numeric.ParsePiExpr), pending synthesis into Clifford+T by
// SynthesizeRzPass.
type RZGate struct {
	Theta string
}

func (g RZGate) Name() string       { return "RZ" }
func (g RZGate) QubitSpan() int     { return 1 }
func (g RZGate) DrawSymbol() string { return fmt.Sprintf("RZ(%s)", g.Theta) }
func (g RZGate) Targets() []int     { return []int{0} }
func (g RZGate) Controls() []int    { return []int{} }

// PauliRotKind distinguishes the three roles a Pauli-exponential operation
// plays in a Pauli-Based Computation circuit.
type PauliRotKind int

const (
	// KindTPauli is a non-Clifford pi/4 rotation about an arbitrary Pauli
	// axis (the PBC analog of a T gate).
	KindTPauli PauliRotKind = iota
	// KindSPauli is a Clifford pi/2 rotation about an arbitrary Pauli axis.
	KindSPauli
	// KindMPauli is a terminal measurement in an arbitrary Pauli basis.
	KindMPauli
)

func (k PauliRotKind) String() string {
	switch k {
	case KindTPauli:
		return "T_PAULI"
	case KindSPauli:
		return "S_PAULI"
	case KindMPauli:
		return "M_PAULI"
	default:
		return "PAULI"
	}
}

// PauliGate is a rotation (or terminal measurement) about an arbitrary,
// possibly multi-qubit, Pauli axis: exp(-i*K*pi/8*Op) for the two rotation
// kinds, or a computational measurement in the Op eigenbasis for KindMPauli.
// It spans the full register the Op was built over; most of its qubit
// factors will typically be the identity.
type PauliGate struct {
	Op   pauli.PauliOp
	Kind PauliRotKind
	K    int // eighth-turns, meaningful for the two rotation kinds
}

func NewPauliGate(op pauli.PauliOp, kind PauliRotKind, k int) PauliGate {
	return PauliGate{Op: op, Kind: kind, K: k}
}

func (g PauliGate) Name() string   { return g.Kind.String() }
func (g PauliGate) QubitSpan() int { return g.Op.N() }
func (g PauliGate) DrawSymbol() string {
	return fmt.Sprintf("%s[%s]", g.Kind, g.Op.String())
}
func (g PauliGate) Targets() []int {
	t := make([]int, g.Op.N())
	for i := range t {
		t[i] = i
	}
	return t
}
func (g PauliGate) Controls() []int { return []int{} }
