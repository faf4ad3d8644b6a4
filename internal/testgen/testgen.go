// Package testgen builds synthetic circuits for the CLI's --qft/--shor
// input generators, exercising the transpiler pipeline without requiring a
// QASM file on disk.
package testgen

import (
	"fmt"

	"github.com/kegliz/ftcompile/qc/builder"
	"github.com/kegliz/ftcompile/qc/circuit"
)

// QFT builds an n-qubit quantum Fourier transform circuit, measuring every
// qubit into a same-sized classical register.
func QFT(n int) (circuit.Circuit, error) {
	if n < 1 {
		return nil, fmt.Errorf("testgen: qft width must be positive, got %d", n)
	}
	b := builder.New(builder.Q(n), builder.C(n))
	qft(b, 0, n, false)
	for q := 0; q < n; q++ {
		b.Measure(q, q)
	}
	return b.BuildCircuit()
}

// Shor builds an order-finding test circuit over n counting qubits and n
// work qubits: uniform superposition on the counting register, a ladder of
// controlled permutations standing in for modular multiplication, and an
// inverse QFT on the counting register before measurement. It is a
// structural stand-in for period-finding, not a verified factoring circuit.
func Shor(n int) (circuit.Circuit, error) {
	if n < 1 {
		return nil, fmt.Errorf("testgen: shor bit-width must be positive, got %d", n)
	}
	counting, work := n, n
	total := counting + work
	b := builder.New(builder.Q(total), builder.C(counting))

	for i := 0; i < counting; i++ {
		b.H(i)
	}
	b.X(counting)

	for c := 0; c < counting; c++ {
		reps := 1 << uint(c)
		for r := 0; r < reps; r++ {
			controlledModularStep(b, c, counting, work)
		}
	}

	qft(b, 0, counting, true)

	for q := 0; q < counting; q++ {
		b.Measure(q, q)
	}
	return b.BuildCircuit()
}

// controlledModularStep applies a control-gated cyclic shift across the work
// register, representing one controlled multiply-by-a step of order-finding.
func controlledModularStep(b builder.Builder, control, workStart, workLen int) {
	for i := 0; i < workLen-1; i++ {
		t1, t2 := workStart+i, workStart+i+1
		b.Toffoli(control, t1, t2)
		b.Toffoli(control, t2, t1)
		b.Toffoli(control, t1, t2)
	}
}

// qft lays out the standard QFT (or its inverse, reading the same gate
// sequence backwards with negated phase angles) over n qubits starting at
// start: Hadamard plus controlled-phase ladder, followed by a register
// reversal via SWAPs.
func qft(b builder.Builder, start, n int, inverse bool) {
	if inverse {
		for i, j := start, start+n-1; i < j; i, j = i+1, j-1 {
			b.SWAP(i, j)
		}
		for i := n - 1; i >= 0; i-- {
			for j := n - 1; j > i; j-- {
				controlledPhase(b, start+j, start+i, -(1 << uint(j-i)))
			}
			b.H(start + i)
		}
		return
	}
	for i := 0; i < n; i++ {
		b.H(start + i)
		for j := i + 1; j < n; j++ {
			controlledPhase(b, start+j, start+i, 1<<uint(j-i))
		}
	}
	for i, j := start, start+n-1; i < j; i, j = i+1, j-1 {
		b.SWAP(i, j)
	}
}

// controlledPhase applies a controlled phase of angle pi/denom (up to global
// phase) from control onto target
// via the CNOT-sandwich identity: RZ(theta/2) on target, CNOT, RZ(-theta/2)
// on target, CNOT, RZ(theta/2) on control. The builder exposes RZ and CNOT
// but no native controlled-phase gate.
func controlledPhase(b builder.Builder, control, target, denom int) {
	half := piOverN(2 * denom)
	negHalf := piOverN(-2 * denom)
	b.RZ(half, target)
	b.CNOT(control, target)
	b.RZ(negHalf, target)
	b.CNOT(control, target)
	b.RZ(half, control)
}

func piOverN(denom int) string {
	if denom < 0 {
		return fmt.Sprintf("-pi/%d", -denom)
	}
	return fmt.Sprintf("pi/%d", denom)
}
