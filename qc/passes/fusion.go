package passes

import (
	"github.com/kegliz/ftcompile/internal/numeric"
	"github.com/kegliz/ftcompile/qc/circuit"
	"github.com/kegliz/ftcompile/qc/gate"
)

// GateFusionPass cancels adjacent gate pairs that compose to the identity:
// self-inverse single-qubit Cliffords (H, X, Y, Z) applied twice in a row on
// the same qubit, S/S-dagger or SX/SX-dagger or T/T-dagger pairs, and
// two-qubit involutions (CNOT with matching control/target, CZ or SWAP with
// the same qubit pair) applied twice in a row. It also merges consecutive
// same-qubit RZ rotations by summing their angles (the sum is not reduced
// mod 2*pi), dropping the result if it lands within tolerance of a multiple
// of 2*pi.
type GateFusionPass struct {
	Precision uint
}

func (GateFusionPass) Name() string { return "GateFusion" }

var selfInverse1Q = map[string]bool{"H": true, "X": true, "Y": true, "Z": true}
var inversePair = map[string]string{
	"S": "SDG", "SDG": "S",
	"SX": "SXDG", "SXDG": "SX",
	"T": "TDG", "TDG": "T",
}
var symmetric2Q = map[string]bool{"CZ": true, "SWAP": true}

func sameQubitSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[int]int, len(a))
	for _, q := range a {
		seen[q]++
	}
	for _, q := range b {
		seen[q]--
	}
	for _, v := range seen {
		if v != 0 {
			return false
		}
	}
	return true
}

func sameQubitOrder(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cancels(prevName string, prevQ []int, name string, q []int) bool {
	if selfInverse1Q[prevName] && prevName == name {
		return sameQubitOrder(prevQ, q)
	}
	if inversePair[prevName] == name {
		return sameQubitOrder(prevQ, q)
	}
	if prevName == name && prevName == "CNOT" {
		return sameQubitOrder(prevQ, q)
	}
	if prevName == name && symmetric2Q[prevName] {
		return sameQubitSet(prevQ, q)
	}
	return false
}

type fusionEntry struct {
	op       circuit.Operation
	alive    bool
	prevLast map[int]int
}

func (p GateFusionPass) Run(c circuit.Circuit) (circuit.Circuit, bool, error) {
	var kept []fusionEntry
	lastIndex := make(map[int]int)
	changed := false

	push := func(op circuit.Operation) {
		prev := make(map[int]int, len(op.Qubits))
		for _, q := range op.Qubits {
			if idx, ok := lastIndex[q]; ok {
				prev[q] = idx
			}
		}
		kept = append(kept, fusionEntry{op: op, alive: true, prevLast: prev})
		idx := len(kept) - 1
		for _, q := range op.Qubits {
			lastIndex[q] = idx
		}
	}

	for _, op := range c.Operations() {
		if op.G.Name() == "MEASURE" {
			push(op)
			continue
		}
		candidateIdx, ok := lastIndex[op.Qubits[0]]
		for _, q := range op.Qubits[1:] {
			idx, present := lastIndex[q]
			if !present || idx != candidateIdx {
				ok = false
			}
		}
		if ok && kept[candidateIdx].alive {
			cand := kept[candidateIdx]
			if sameQubitSet(cand.op.Qubits, op.Qubits) {
				if candRZ, isRZ := cand.op.G.(gate.RZGate); isRZ {
					if curRZ, alsoRZ := op.G.(gate.RZGate); alsoRZ {
						merged, isIdentity, mergeOK := mergeRzAngles(candRZ.Theta, curRZ.Theta, p.precision())
						if mergeOK {
							if isIdentity {
								kept[candidateIdx].alive = false
								for _, q := range op.Qubits {
									if prevVal, had := cand.prevLast[q]; had {
										lastIndex[q] = prevVal
									} else {
										delete(lastIndex, q)
									}
								}
							} else {
								kept[candidateIdx].op.G = gate.RZGate{Theta: merged}
							}
							changed = true
							continue
						}
					}
				}
				if cancels(cand.op.G.Name(), cand.op.Qubits, op.G.Name(), op.Qubits) {
					kept[candidateIdx].alive = false
					for _, q := range op.Qubits {
						if prevVal, had := cand.prevLast[q]; had {
							lastIndex[q] = prevVal
						} else {
							delete(lastIndex, q)
						}
					}
					changed = true
					continue
				}
			}
		}
		push(op)
	}

	b := newBuilderLike(c)
	for _, e := range kept {
		if !e.alive {
			continue
		}
		if e.op.G.Name() == "MEASURE" {
			b.Measure(e.op.Qubits[0], e.op.Cbit)
			continue
		}
		b.Op(e.op.G, e.op.Qubits)
	}
	out, err := b.BuildCircuit()
	if err != nil {
		return nil, false, err
	}
	return out, changed, nil
}

func (p GateFusionPass) precision() uint {
	if p.Precision == 0 {
		return numeric.DefaultPrec
	}
	return p.Precision
}

// mergeRzAngles sums two RZ angle expressions and reports whether the sum is
// within tolerance of a multiple of 2*pi (isIdentity, in which case both
// gates cancel), otherwise returns the summed angle as a new theta
// expression. ok is false only if either angle fails to parse.
func mergeRzAngles(prevTheta, curTheta string, prec uint) (newTheta string, isIdentity bool, ok bool) {
	a, err := numeric.ParsePiExpr(prevTheta, prec)
	if err != nil {
		return "", false, false
	}
	b, err := numeric.ParsePiExpr(curTheta, prec)
	if err != nil {
		return "", false, false
	}
	sum := a.Add(b)
	twoPi := numeric.Pi(prec).Mul(numeric.NewFloatPrecFrom(prec, 2))
	q := sum.Quo(twoPi)
	r := q.Round()
	eps := numeric.NewFloatPrecFrom(prec, 1e-9)
	if q.Sub(r).Abs().Cmp(eps) < 0 {
		return "", true, true
	}
	return sum.String(), false, true
}
