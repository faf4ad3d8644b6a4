package circuit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kegliz/ftcompile/qc/gate"
)

// CountOps tallies how many times each gate name occurs.
func CountOps(c Circuit) map[string]int {
	counts := make(map[string]int)
	for _, op := range c.Operations() {
		counts[op.G.Name()]++
	}
	return counts
}

// IsCliffordPlusT reports whether every operation's gate belongs to the
// Clifford+T generator set (H, X, Y, Z, S, S-dagger, SX, SX-dagger, CNOT,
// CZ, SWAP, T, T-dagger) or is a measurement; RZ, Toffoli, Fredkin and
// Pauli-rotation gates fail this check.
func IsCliffordPlusT(c Circuit) bool {
	for _, op := range c.Operations() {
		name := op.G.Name()
		if gate.CliffordPlusT[name] {
			continue
		}
		return false
	}
	return true
}

// gateLatency holds the (a,b) coefficients of the per-gate latency formula
// a*d+b, d = code distance, keyed by canonical gate name. Gates absent from
// the table default to latency d (a=1, b=0).
var gateLatency = map[string][2]float64{
	"CNOT": {3, 4}, "H": {3, 4},
	"S": {1.5, 3}, "SX": {1.5, 3}, "SDG": {1.5, 3}, "SXDG": {1.5, 3},
	"T": {2.5, 4}, "TDG": {2.5, 4},
}

func latencyOf(name string, d float64) float64 {
	if ab, ok := gateLatency[name]; ok {
		return ab[0]*d + ab[1]
	}
	return d
}

// Duration computes the circuit's critical-path latency at the given code
// distance: the same longest-dependency-chain computation as Depth(), but
// weighting each op by its physical gate latency (a*d+b) instead of
// counting every op as one uniform layer.
func Duration(c Circuit, codeDistance int) float64 {
	d := float64(codeDistance)
	finish := make(map[int]float64) // per-qubit: time the last op on it completed
	best := 0.0
	for _, op := range c.Operations() {
		start := 0.0
		for _, q := range op.Qubits {
			if t, ok := finish[q]; ok && t > start {
				start = t
			}
		}
		end := start + latencyOf(op.G.Name(), d)
		for _, q := range op.Qubits {
			finish[q] = end
		}
		if end > best {
			best = end
		}
	}
	return best
}

// PrintStats renders a short human-readable summary: qubit/clbit counts,
// depth, and a sorted gate-count table, in the style of a CLI diagnostic
// dump rather than a machine-readable report.
func PrintStats(c Circuit) string {
	var sb strings.Builder
	total := len(c.Operations())
	fmt.Fprintf(&sb, "qubits=%d clbits=%d depth=%d ops=%d clifford+t=%v\n",
		c.Qubits(), c.Clbits(), c.Depth(), total, c.IsCliffordT())
	counts := CountOps(c)
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		ratio := 0.0
		if total > 0 {
			ratio = float64(counts[n]) / float64(total)
		}
		fmt.Fprintf(&sb, "  %-8s %-6d %.3f\n", n, counts[n], ratio)
	}
	return sb.String()
}
