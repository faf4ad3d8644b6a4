// Package passmanager drives the qc/passes rewrite pipeline: it turns a
// flag set into an ordered pass recipe, runs each pass in turn, and reports
// per-pass before/after statistics.
package passmanager

import (
	"fmt"

	"github.com/kegliz/ftcompile/internal/gridsynth"
	"github.com/kegliz/ftcompile/qc/circuit"
	"github.com/kegliz/ftcompile/qc/passes"
)

// Options selects which passes run and how, mirroring the CLI surface.
type Options struct {
	ToPbc               bool
	ToCliffordReduction bool
	KeepCX              bool
	TPauliOpt           bool
	RemovePauli         bool
	KeepCCX             bool
	EpsilonOverride     float64 // 0 means "use gridsynth's default epsilon policy"
	Precision           uint
	GridsynthConfig     gridsynth.Config
}

// StepResult records one pass's effect on the circuit.
type StepResult struct {
	Pass     string
	Modified bool
	Before   string
	After    string
}

// Manager owns the ordered pass recipe derived from Options.
type Manager struct {
	opts  Options
	steps []passes.Pass
}

// New validates opts and builds the pass recipe.
func New(opts Options) (*Manager, error) {
	if opts.ToPbc && opts.ToCliffordReduction {
		return nil, fmt.Errorf("passmanager: to_pbc and to_clifford_reduction are mutually exclusive")
	}
	if opts.TPauliOpt && !opts.ToPbc {
		return nil, fmt.Errorf("passmanager: t_pauli_opt requires to_pbc (run PbcPass first)")
	}

	m := &Manager{opts: opts}
	m.steps = append(m.steps, passes.DecomposePass{KeepCCX: opts.KeepCCX})
	m.steps = append(m.steps, passes.RemoveTrivialRzPass{Precision: opts.Precision})
	m.steps = append(m.steps, passes.GateFusionPass{})
	m.steps = append(m.steps, passes.SynthesizeRzPass{Precision: opts.Precision, Config: opts.GridsynthConfig, EpsilonOverride: opts.EpsilonOverride})
	m.steps = append(m.steps, passes.GateFusionPass{})

	switch {
	case opts.ToPbc:
		m.steps = append(m.steps, passes.PbcPass{KeepCX: opts.KeepCX})
		if opts.TPauliOpt {
			m.steps = append(m.steps, passes.TfusePass{})
		}
	case opts.ToCliffordReduction:
		m.steps = append(m.steps, passes.CliffordReductionPass{})
	}

	if opts.RemovePauli {
		m.steps = append(m.steps, passes.RemovePauliPass{})
	}
	return m, nil
}

// Run executes every pass in the recipe in order, returning the final
// circuit and one StepResult per pass (including passes that left the
// circuit unmodified).
func (m *Manager) Run(c circuit.Circuit) (circuit.Circuit, []StepResult, error) {
	results := make([]StepResult, 0, len(m.steps))
	cur := c
	for _, p := range m.steps {
		before := circuit.PrintStats(cur)
		out, changed, err := p.Run(cur)
		if err != nil {
			return nil, results, fmt.Errorf("passmanager: pass %s: %w", p.Name(), err)
		}
		after := circuit.PrintStats(out)
		results = append(results, StepResult{Pass: p.Name(), Modified: changed, Before: before, After: after})
		cur = out
	}
	return cur, results, nil
}

// Steps returns the names of the passes this manager will run, in order.
func (m *Manager) Steps() []string {
	names := make([]string, len(m.steps))
	for i, p := range m.steps {
		names[i] = p.Name()
	}
	return names
}
