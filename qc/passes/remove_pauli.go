package passes

import "github.com/kegliz/ftcompile/qc/circuit"

// RemovePauliPass drops every single-qubit Pauli gate (X, Y, Z) from the
// circuit.
type RemovePauliPass struct{}

func (RemovePauliPass) Name() string { return "RemovePauli" }

func (RemovePauliPass) Run(c circuit.Circuit) (circuit.Circuit, bool, error) {
	b := newBuilderLike(c)
	changed := false
	for _, op := range c.Operations() {
		switch op.G.Name() {
		case "X", "Y", "Z":
			changed = true
			continue
		}
		b.Op(op.G, op.Qubits)
	}
	out, err := b.BuildCircuit()
	if err != nil {
		return nil, false, err
	}
	return out, changed, nil
}
