package passes

import (
	"fmt"

	"github.com/kegliz/ftcompile/internal/pauli"
	"github.com/kegliz/ftcompile/qc/circuit"
	"github.com/kegliz/ftcompile/qc/gate"
)

// TfusePass operates only on a circuit already in Pauli-Based Computation
// form (every op is T_PAULI, S_PAULI or M_PAULI). It groups the rotations
// into layers of mutually-commuting axes, reduces each layer's HTab (fusing
// matching axes, promoting T+T to a residual S, cancelling opposite signs),
// pushes any produced S_PAULI rows past the measurements, and repeats to a
// fixed point.
type TfusePass struct{}

func (TfusePass) Name() string { return "Tfuse" }

func (TfusePass) Run(c circuit.Circuit) (circuit.Circuit, bool, error) {
	ops := c.Operations()

	var rotations []gate.PauliGate
	var measurements []pauli.PauliOp
	for _, op := range ops {
		pg, ok := op.G.(gate.PauliGate)
		if !ok {
			return nil, false, fmt.Errorf("passes: Tfuse requires a Pauli-Based Computation circuit, got %q", op.G.Name())
		}
		if pg.Kind == gate.KindMPauli {
			measurements = append(measurements, pg.Op)
			continue
		}
		rotations = append(rotations, pg)
	}

	changed := false
	for {
		layers := layerByCommutation(rotations)
		var survivors []gate.PauliGate
		var promoted []pauli.PauliOp
		fired := false
		for _, layer := range layers {
			h := pauli.NewHTab()
			for _, pg := range layer {
				h.AppendRotation(pg.Op, pg.K)
			}
			residual := h.Reduce()
			if len(residual) > 0 {
				fired = true
			}
			for _, r := range residual {
				promoted = append(promoted, r.P)
			}
			for _, r := range h.Rows() {
				survivors = append(survivors, gate.NewPauliGate(r.P, gate.KindTPauli, r.K))
			}
		}
		rotations = survivors
		if !fired {
			break
		}
		changed = true
		for _, s := range promoted {
			for i := range measurements {
				if !s.Commutes(measurements[i]) {
					measurements[i] = s.Mul(measurements[i])
				}
			}
		}
	}

	out := newBuilderLike(c)
	for _, pg := range rotations {
		out.PauliRot(pg.Op, pg.Kind, pg.K)
	}
	for _, m := range measurements {
		out.PauliRot(m, gate.KindMPauli, 0)
	}
	outCircuit, err := out.BuildCircuit()
	if err != nil {
		return nil, false, err
	}
	return outCircuit, changed, nil
}

// layerByCommutation groups rotations into layers of mutually-commuting
// axes: each rotation joins the most recent layer whose every member it
// commutes with, else opens a new layer.
//
// The literature's earliest-fit variant scans layers newest-to-oldest and
// splices a rotation in just after the first non-commuting layer, packing
// rotations more tightly. This greedy most-recent-compatible-layer
// placement is simpler and still groups every pair of rotations that could
// fuse into the same layer whenever they are adjacent or separated only by
// other mutually-commuting rotations, which is what Reduce needs to find
// them; it can produce more layers (so less batching) than the earliest-fit
// packing in adversarial orderings, documented in DESIGN.md.
func layerByCommutation(rotations []gate.PauliGate) [][]gate.PauliGate {
	var layers [][]gate.PauliGate
	for _, pg := range rotations {
		placed := false
		for li := len(layers) - 1; li >= 0; li-- {
			commutes := true
			for _, other := range layers[li] {
				if !pg.Op.Commutes(other.Op) {
					commutes = false
					break
				}
			}
			if commutes {
				layers[li] = append(layers[li], pg)
				placed = true
				break
			}
		}
		if !placed {
			layers = append(layers, []gate.PauliGate{pg})
		}
	}
	return layers
}
