package passes

import (
	"github.com/kegliz/ftcompile/internal/gridsynth"
	"github.com/kegliz/ftcompile/internal/numeric"
	"github.com/kegliz/ftcompile/qc/builder"
	"github.com/kegliz/ftcompile/qc/circuit"
	"github.com/kegliz/ftcompile/qc/gate"
)

// SynthesizeRzPass rewrites every RZ(theta) into an exact Clifford+T
// sequence via gridsynth, caching the result per distinct angle so repeated
// angles (a common case in templated circuits) are only synthesized once.
type SynthesizeRzPass struct {
	Precision uint
	Config    gridsynth.Config
	// EpsilonOverride, if nonzero, replaces the default |theta|*1e-2
	// epsilon policy for every angle synthesized by this pass.
	EpsilonOverride float64
}

func (SynthesizeRzPass) Name() string { return "SynthesizeRz" }

func (p SynthesizeRzPass) Run(c circuit.Circuit) (circuit.Circuit, bool, error) {
	prec := p.Precision
	if prec == 0 {
		prec = numeric.DefaultPrec
	}
	cfg := p.Config
	if cfg.Precision == 0 {
		cfg = gridsynth.DefaultConfig()
	}

	cache := make(map[string][]string)
	b := newBuilderLike(c)
	changed := false

	for _, op := range c.Operations() {
		if op.G.Name() == "MEASURE" {
			b.Measure(op.Qubits[0], op.Cbit)
			continue
		}
		rz, ok := op.G.(gate.RZGate)
		if !ok {
			b.Op(op.G, op.Qubits)
			continue
		}
		changed = true
		words, cached := cache[rz.Theta]
		if !cached {
			words = p.synthesize(rz.Theta, prec, cfg)
			cache[rz.Theta] = words
		}
		q := op.Qubits[0]
		for _, g := range words {
			emitGeneratorWord(b, g, q)
		}
	}

	out, err := b.BuildCircuit()
	if err != nil {
		return nil, false, err
	}
	return out, changed, nil
}

// synthesize parses theta and runs gridsynth_gates with the default epsilon
// policy (|theta|*1e-2). If parsing or synthesis fails it returns the
// identity (empty word), so the caller's op stream simply omits the gate;
// no warning is logged for it, neither by this pass nor by the pass manager.
func (p SynthesizeRzPass) synthesize(thetaExpr string, prec uint, cfg gridsynth.Config) []string {
	theta, err := numeric.ParsePiExpr(thetaExpr, prec)
	if err != nil {
		return nil
	}
	eps := p.EpsilonOverride
	if eps == 0 {
		eps = gridsynth.DefaultEpsilon(theta)
	}
	words, err := gridsynth.SynthesizeGates(thetaExpr, eps, cfg)
	if err != nil {
		return nil
	}
	return words
}

// emitGeneratorWord appends one named single-qubit gate on q: a generator
// from an internal/unitary.Decompose word (H, TDG, S, X) or a gate name from
// a CliffordReductionPass run. Names outside the cases below emit nothing.
func emitGeneratorWord(b builder.Builder, g string, q int) {
	switch g {
	case "H":
		b.H(q)
	case "S":
		b.S(q)
	case "SDG":
		b.Sdag(q)
	case "SX":
		b.SX(q)
	case "SXDG":
		b.SXdag(q)
	case "T":
		b.T(q)
	case "TDG":
		b.Tdag(q)
	case "X":
		b.X(q)
	case "Y":
		b.Y(q)
	case "Z":
		b.Z(q)
	}
}
