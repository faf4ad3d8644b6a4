package passes

import (
	"strconv"

	"github.com/kegliz/ftcompile/internal/numeric"
	"github.com/kegliz/ftcompile/qc/builder"
	"github.com/kegliz/ftcompile/qc/circuit"
	"github.com/kegliz/ftcompile/qc/gate"
)

// RemoveTrivialRzPass rewrites RZ rotations whose angle is an exact multiple
// of pi/4: it drops global-phase-only RZ(2*pi*k), replaces the five angles
// that already have a single Clifford+T generator (Z, S, S-dagger, T,
// T-dagger) with that generator, and otherwise emits the angle's exact
// Z^a*S^b*T^c decomposition. RZ angles that are not within tolerance of a
// multiple of pi/4 survive untouched; their rounded value is tallied in
// DistinctAngles so later passes (or a report) can see what is left to
// synthesize.
type RemoveTrivialRzPass struct {
	Precision uint

	// DistinctAngles, if non-nil, is tallied by Run: one entry per angle
	// (rounded to 4 significant digits) that passed through unrewritten,
	// counting how many RZ operations carried it.
	DistinctAngles map[string]int
}

func (RemoveTrivialRzPass) Name() string { return "RemoveTrivialRz" }

func (p RemoveTrivialRzPass) Run(c circuit.Circuit) (circuit.Circuit, bool, error) {
	prec := p.Precision
	if prec == 0 {
		prec = numeric.DefaultPrec
	}

	b := newBuilderLike(c)
	changed := false
	quarterPi := numeric.Pi(prec).Quo(numeric.NewFloatPrecFrom(prec, 4))

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
		angle, err := numeric.ParsePiExpr(rz.Theta, prec)
		if err != nil {
			b.Op(op.G, op.Qubits)
			continue
		}
		q := op.Qubits[0]
		if k, ok := octantOf(angle, quarterPi, prec); ok {
			emitOctant(b, k, q)
			changed = true
			continue
		}
		b.Op(op.G, op.Qubits)
		if p.DistinctAngles != nil {
			p.DistinctAngles[roundSig(angle.Float64(), 4)]++
		}
	}
	out, err := b.BuildCircuit()
	if err != nil {
		return nil, false, err
	}
	return out, changed, nil
}

// octantOf reports whether angle is within tolerance of an integer multiple
// of pi/4, returning that multiple reduced to 0..7.
func octantOf(angle, quarterPi numeric.Float, prec uint) (int, bool) {
	q := angle.Quo(quarterPi)
	r := q.Round()
	eps := numeric.NewFloatPrecFrom(prec, 1e-9)
	if q.Sub(r).Abs().Cmp(eps) >= 0 {
		return 0, false
	}
	k := int64Of(r)
	k %= 8
	if k < 0 {
		k += 8
	}
	return int(k), true
}

// int64Of truncates an integer-valued Float (as produced by Float.Round) to
// an int64.
func int64Of(f numeric.Float) int64 {
	return int64(f.Float64())
}

// emitOctant appends the gate(s) for the k*pi/4 rotation (k in 0..7) on
// qubit q: 0 is the identity and emits nothing; the five angles (pi/4,
// pi/2, pi, 3*pi/2, 7*pi/4) each have a single Clifford+T generator; the
// rest (3*pi/4, 5*pi/4) decompose exactly into two.
func emitOctant(b builder.Builder, k, q int) {
	switch k {
	case 0: // identity, drop
	case 1: // pi/4
		b.T(q)
	case 2: // pi/2
		b.S(q)
	case 3: // 3*pi/4 = S*T
		b.S(q)
		b.T(q)
	case 4: // pi
		b.Z(q)
	case 5: // 5*pi/4 = Z*T
		b.Z(q)
		b.T(q)
	case 6: // 3*pi/2 = -pi/2
		b.Sdag(q)
	case 7: // 7*pi/4 = -pi/4
		b.Tdag(q)
	}
}

// roundSig formats v rounded to n significant digits, the key used to tally
// RZ angles that could not be rewritten to a fixed Clifford+T generator.
func roundSig(v float64, n int) string {
	return strconv.FormatFloat(v, 'g', n, 64)
}
