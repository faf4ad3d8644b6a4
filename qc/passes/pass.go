// Package passes implements the circuit rewrite passes: decomposition into
// Clifford+T, trivial-rotation and gate-fusion cleanup, RZ synthesis,
// Clifford-frame reduction, conversion to Pauli-Based Computation, T-fusion,
// and removal of spent Pauli measurements.
package passes

import (
	"github.com/kegliz/ftcompile/qc/builder"
	"github.com/kegliz/ftcompile/qc/circuit"
	"github.com/kegliz/ftcompile/qc/dag"
)

// Pass rewrites a circuit, reporting whether anything changed. Unlike a
// mutate-in-place pass over a mutable IR, each Pass here returns a fresh
// Circuit: the IR (qc/circuit.Circuit) is an immutable view over a frozen
// DAG, so "in place" means "derive a new frozen DAG" rather than mutating
// nodes, the same adaptation the teacher's own Circuit/DAG split already
// makes for concurrency safety.
type Pass interface {
	Name() string
	Run(c circuit.Circuit) (out circuit.Circuit, changed bool, err error)
}

// newBuilderLike returns a Builder preconfigured with c's register layout
// (so a rewrite pass doesn't flatten the original qreg/creg names away),
// ready to receive a rewritten operation stream.
func newBuilderLike(c circuit.Circuit) builder.Builder {
	return builder.New(builder.Qregs(toSpecs(c.QubitRegisters())...), builder.Cregs(toSpecs(c.ClassicalRegisters())...))
}

func toSpecs(spans []dag.RegisterSpan) []dag.RegisterSpec {
	specs := make([]dag.RegisterSpec, len(spans))
	for i, s := range spans {
		specs[i] = dag.RegisterSpec{Name: s.Name, Size: s.Size}
	}
	return specs
}
