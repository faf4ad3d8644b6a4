package qservice

import (
	"fmt"

	"github.com/kegliz/ftcompile/internal/qasm"
	"github.com/kegliz/ftcompile/qc/circuit"
	"github.com/kegliz/ftcompile/qc/passmanager"
)

// Stats is the JSON-facing projection of a circuit's shape: qubit/clbit
// counts, depth, total op count, and a per-gate-name tally.
type Stats struct {
	Qubits int            `json:"qubits"`
	Clbits int            `json:"clbits"`
	Depth  int            `json:"depth"`
	Ops    int            `json:"ops"`
	Counts map[string]int `json:"counts"`
}

func statsOf(c circuit.Circuit) Stats {
	return Stats{
		Qubits: c.Qubits(),
		Clbits: c.Clbits(),
		Depth:  c.Depth(),
		Ops:    len(c.Operations()),
		Counts: circuit.CountOps(c),
	}
}

// RunResult is one POST /circuits/:id/run response: the circuit's shape
// before and after the requested passes, plus a per-pass trace.
type RunResult struct {
	Before Stats                    `json:"before"`
	After  Stats                    `json:"after"`
	Steps  []passmanager.StepResult `json:"steps"`
}

// Service ties the inspection API's two verbs -- parse-and-store, then
// run-named-passes-against-a-stored-id -- to a ProgramStore and the
// passmanager pipeline.
type Service interface {
	// Compile parses src as QASM, stores the resulting circuit, and
	// returns its id and shape.
	Compile(src string) (id string, stats Stats, err error)
	// RunPasses looks up id, runs the pass recipe selected by opts
	// against it, replaces the stored circuit with the result, and
	// reports before/after stats plus a per-pass trace.
	RunPasses(id string, opts passmanager.Options) (RunResult, error)
}

type service struct {
	store ProgramStore
}

// NewService builds a Service backed by store.
func NewService(store ProgramStore) Service {
	return &service{store: store}
}

func (s *service) Compile(src string) (string, Stats, error) {
	prog, err := qasm.Parse(src)
	if err != nil {
		return "", Stats{}, fmt.Errorf("qservice: %w", err)
	}
	c, err := qasm.Lower(prog, nil)
	if err != nil {
		return "", Stats{}, fmt.Errorf("qservice: %w", err)
	}
	id, err := s.store.SaveProgram(c)
	if err != nil {
		return "", Stats{}, err
	}
	return id, statsOf(c), nil
}

func (s *service) RunPasses(id string, opts passmanager.Options) (RunResult, error) {
	c, err := s.store.GetProgram(id)
	if err != nil {
		return RunResult{}, err
	}

	mgr, err := passmanager.New(opts)
	if err != nil {
		return RunResult{}, err
	}

	before := statsOf(c)
	out, steps, err := mgr.Run(c)
	if err != nil {
		return RunResult{}, err
	}

	if _, err := s.store.SaveProgramAt(id, out); err != nil {
		return RunResult{}, err
	}

	return RunResult{Before: before, After: statsOf(out), Steps: steps}, nil
}
