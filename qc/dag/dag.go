package dag

import (
	"fmt"
	"sync/atomic"

	"github.com/kegliz/ftcompile/qc/gate"
)

// NodeID is stable across passes/serialisation.
type NodeID uint64

var idCtr uint64 // atomic counter for NodeIDs

// Node holds one DAG vertex = Gate or Measure op.
// It contains the gate, its qubit targets, and its classical target.
type Node struct {
	ID     NodeID
	G      gate.Gate
	Qubits []int // logical qubit indices       (len = G.QubitSpan())
	Cbit   int   // classical target; -1 if none
	// Fast adjacency
	parents  []NodeID
	children []NodeID
}

// Parents returns a copy of the parent node IDs.
func (n *Node) Parents() []NodeID {
	result := make([]NodeID, len(n.parents))
	copy(result, n.parents)
	return result
}

// RegisterSpec names a register to allocate: add_qreg/add_creg's input.
type RegisterSpec struct {
	Name string
	Size int
}

// RegisterSpan is an allocated register's absolute qubit/clbit range.
type RegisterSpan struct {
	Name string
	Base int
	Size int
}

// GateOp is one operation inside a user-defined gate's body, expressed over
// formal qubit indices 0..N-1 rather than absolute circuit qubits.
type GateOp struct {
	G      gate.Gate
	Qubits []int
	Cbit   int
}

// GateDef is a user-defined gate's body: define_gate(name, ...) stores one
// of these; expand_gate(name, actual_qubits) substitutes formal->actual and
// replays it.
type GateDef struct {
	NumQubits int
	Ops       []GateOp
}

// DAGBuilder defines the interface for constructing a DAG.
type DAGBuilder interface {
	AddGate(g gate.Gate, qs []int) error
	AddMeasure(q, c int) error
	DefineGate(name string, numQubits int, ops []GateOp) error
	ExpandGate(name string, qubits []int) error
	Validate() error
	Qubits() int
	Clbits() int
}

// DAGReader defines the interface for reading a validated DAG.
type DAGReader interface {
	Operations() []*Node // Returns nodes in topological order
	Depth() int          // Returns the circuit depth
	Qubits() int
	Clbits() int

	QubitRegisters() []RegisterSpan
	ClassicalRegisters() []RegisterSpan
	GetQubitIndex(name string, idx int) (int, bool)
	GetClbitIndex(name string, idx int) (int, bool)
	GateDefs() map[string]GateDef
	IsCliffordT() bool
	DistinctRzAngles() map[string]int
}

// DAG is *mutable* until Validate() is called; then considered frozen.
// It implements both DAGBuilder and DAGReader interfaces.
type DAG struct {
	qubits int
	clbits int

	nodes map[NodeID]*Node // all vertices
	byQ   [][]NodeID       // per-qubit chronological list
	last  []NodeID         // last op on each qubit (for hazards)

	qregOrder []string
	qregBase  map[string]int
	qregSize  map[string]int
	cregOrder []string
	cregBase  map[string]int
	cregSize  map[string]int

	gateDefs map[string]GateDef

	cliffordT bool // true iff every appended op is in gate.CliffordPlusT
	rzAngles  map[string]int

	valid bool // set by Validate()

	// Cached results after validation
	topoOrder []*Node
	depth     int
}

// New creates a new DAG with a single anonymous "q"/"c" register of the
// given size; qb or cb may be 0.
func New(qb, cb int) *DAG {
	return NewWithRegs([]RegisterSpec{{Name: "q", Size: qb}}, []RegisterSpec{{Name: "c", Size: cb}})
}

// NewWithRegs creates a new DAG whose qubit/clbit space is laid out as the
// named registers, back-to-back in the order given (add_qreg/add_creg,
// applied upfront since every register in a QASM source is known before any
// gate is emitted).
func NewWithRegs(qregs, cregs []RegisterSpec) *DAG {
	d := &DAG{
		nodes:     make(map[NodeID]*Node),
		qregBase:  make(map[string]int),
		qregSize:  make(map[string]int),
		cregBase:  make(map[string]int),
		cregSize:  make(map[string]int),
		gateDefs:  make(map[string]GateDef),
		rzAngles:  make(map[string]int),
		cliffordT: true,
		depth:     -1,
	}
	for _, r := range qregs {
		d.qregOrder = append(d.qregOrder, r.Name)
		d.qregBase[r.Name] = d.qubits
		d.qregSize[r.Name] = r.Size
		d.qubits += r.Size
	}
	for _, r := range cregs {
		d.cregOrder = append(d.cregOrder, r.Name)
		d.cregBase[r.Name] = d.clbits
		d.cregSize[r.Name] = r.Size
		d.clbits += r.Size
	}
	d.byQ = make([][]NodeID, d.qubits)
	d.last = make([]NodeID, d.qubits)
	return d
}

// QubitRegisters returns the declared quantum registers in declaration order.
func (d *DAG) QubitRegisters() []RegisterSpan {
	out := make([]RegisterSpan, len(d.qregOrder))
	for i, name := range d.qregOrder {
		out[i] = RegisterSpan{Name: name, Base: d.qregBase[name], Size: d.qregSize[name]}
	}
	return out
}

// ClassicalRegisters returns the declared classical registers in
// declaration order.
func (d *DAG) ClassicalRegisters() []RegisterSpan {
	out := make([]RegisterSpan, len(d.cregOrder))
	for i, name := range d.cregOrder {
		out[i] = RegisterSpan{Name: name, Base: d.cregBase[name], Size: d.cregSize[name]}
	}
	return out
}

// GetQubitIndex resolves a register-relative qubit to its absolute index.
func (d *DAG) GetQubitIndex(name string, idx int) (int, bool) {
	base, ok := d.qregBase[name]
	if !ok || idx < 0 || idx >= d.qregSize[name] {
		return 0, false
	}
	return base + idx, true
}

// GetClbitIndex resolves a register-relative classical bit to its absolute
// index.
func (d *DAG) GetClbitIndex(name string, idx int) (int, bool) {
	base, ok := d.cregBase[name]
	if !ok || idx < 0 || idx >= d.cregSize[name] {
		return 0, false
	}
	return base + idx, true
}

// DefineGate records a user gate's body over formal qubits 0..numQubits-1.
func (d *DAG) DefineGate(name string, numQubits int, ops []GateOp) error {
	if d.valid {
		return ErrValidated
	}
	if _, exists := d.gateDefs[name]; exists {
		return fmt.Errorf("dag: gate %q already defined", name)
	}
	d.gateDefs[name] = GateDef{NumQubits: numQubits, Ops: append([]GateOp(nil), ops...)}
	return nil
}

// ExpandGate substitutes a defined gate's formal qubits with actual
// absolute indices and appends the resulting operations.
func (d *DAG) ExpandGate(name string, qubits []int) error {
	def, ok := d.gateDefs[name]
	if !ok {
		return fmt.Errorf("dag: gate %q not defined", name)
	}
	if len(qubits) != def.NumQubits {
		return fmt.Errorf("dag: gate %q expects %d qubits, got %d", name, def.NumQubits, len(qubits))
	}
	for _, op := range def.Ops {
		actual := make([]int, len(op.Qubits))
		for i, fq := range op.Qubits {
			actual[i] = qubits[fq]
		}
		if op.G.Name() == "MEASURE" {
			if err := d.AddMeasure(actual[0], op.Cbit); err != nil {
				return err
			}
			continue
		}
		if err := d.AddGate(op.G, actual); err != nil {
			return err
		}
	}
	return nil
}

// GateDefs returns a copy of the user-defined-gate table.
func (d *DAG) GateDefs() map[string]GateDef {
	out := make(map[string]GateDef, len(d.gateDefs))
	for k, v := range d.gateDefs {
		out[k] = v
	}
	return out
}

// IsCliffordT reports the cache flag maintained incrementally by AddGate:
// true iff every appended op's gate is in gate.CliffordPlusT.
func (d *DAG) IsCliffordT() bool { return d.cliffordT }

// DistinctRzAngles returns a copy of the per-angle RZ occurrence tally
// maintained incrementally by AddGate.
func (d *DAG) DistinctRzAngles() map[string]int {
	out := make(map[string]int, len(d.rzAngles))
	for k, v := range d.rzAngles {
		out[k] = v
	}
	return out
}

// nextID generates a new unique NodeID.
func nextID() NodeID { return NodeID(atomic.AddUint64(&idCtr, 1)) }

// Qubits returns the number of qubits.
func (d *DAG) Qubits() int { return d.qubits }

// Clbits returns the number of classical bits.
func (d *DAG) Clbits() int { return d.clbits }

// AddGate adds a gate operation to the DAG.
func (d *DAG) AddGate(g gate.Gate, qs []int) error {
	if d.valid {
		return ErrValidated
	}
	if err := d.checkGate(g, qs); err != nil {
		return err
	}
	n := &Node{
		ID:     nextID(),
		G:      g,
		Qubits: append([]int(nil), qs...),
		Cbit:   -1,
	}
	d.nodes[n.ID] = n

	// Build edges: parent = last op on each incident qubit.
	// Use a set to prevent duplicate parents if a gate touches the same qubit twice
	parentSet := make(map[NodeID]struct{})
	for _, q := range qs {
		if prev := d.last[q]; prev != 0 {
			if _, exists := parentSet[prev]; !exists {
				parentSet[prev] = struct{}{}
				n.parents = append(n.parents, prev)
				d.nodes[prev].children = append(d.nodes[prev].children, n.ID)
			}
		}
		d.last[q] = n.ID
		d.byQ[q] = append(d.byQ[q], n.ID)
	}

	if !gate.CliffordPlusT[g.Name()] {
		d.cliffordT = false
	}
	if rz, ok := g.(gate.RZGate); ok {
		d.rzAngles[rz.Theta]++
	}
	return nil
}

// AddMeasure adds a measurement operation to the DAG.
func (d *DAG) AddMeasure(q, c int) error {
	if d.valid {
		return ErrValidated
	}
	if q < 0 || q >= d.qubits {
		return ErrBadQubit
	}
	if c < 0 || c >= d.clbits {
		return ErrBadClbit
	}
	n := &Node{
		ID:     nextID(),
		G:      gate.Measure(),
		Qubits: []int{q},
		Cbit:   c,
	}
	d.nodes[n.ID] = n
	if prev := d.last[q]; prev != 0 {
		n.parents = []NodeID{prev}
		d.nodes[prev].children = append(d.nodes[prev].children, n.ID)
	}
	d.last[q] = n.ID
	d.byQ[q] = append(d.byQ[q], n.ID)
	return nil
}

// Validate checks if the DAG is acyclic, calculates topological order and depth,
// and marks it as valid (frozen).
// Once validated, no further operations can be added.
// This is a no-op if already validated.
func (d *DAG) Validate() error {
	if d.valid {
		return nil
	}

	// Check for cycles
	if err := d.acyclic(); err != nil {
		return err
	}

	// Calculate topological order and depth
	d.topoOrder = d.calculateTopoSort()
	d.depth = d.calculateDepth()

	d.valid = true
	return nil
}

// Operations returns nodes in topological order. Requires Validate() to be called first.
// It returns a copy of the slice to prevent external modification.
// If Validate() was not called, it returns nil.
func (d *DAG) Operations() []*Node {
	if !d.valid {
		return nil
	}
	// Return a copy to prevent external modification
	result := make([]*Node, len(d.topoOrder))
	copy(result, d.topoOrder)
	return result
}

// Depth returns the calculated depth. Requires Validate() to be called first.
func (d *DAG) Depth() int {
	return d.depth
}

// checkGate validates gate qubit span and indices.
func (d *DAG) checkGate(g gate.Gate, qs []int) error {
	if len(qs) != g.QubitSpan() {
		return ErrSpan
	}

	// Check for duplicate qubits within the same gate application
	seen := make(map[int]bool)
	for _, q := range qs {
		if q < 0 || q >= d.qubits {
			return ErrBadQubit
		}
		if seen[q] {
			return fmt.Errorf("dag: duplicate qubit %d specified for gate %s", q, g.Name())
		}
		seen[q] = true
	}
	return nil
}

// calculateTopoSort performs Kahn's algorithm for topological sorting.
func (d *DAG) calculateTopoSort() []*Node {
	inDeg := make(map[NodeID]int, len(d.nodes))
	for id, node := range d.nodes {
		inDeg[id] = len(node.parents)
	}

	// Initialize queue with nodes that have no dependencies
	queue := make([]NodeID, 0, len(d.nodes))
	for id, deg := range inDeg {
		if deg == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]*Node, 0, len(d.nodes))
	for len(queue) > 0 {
		// Pop from queue
		id := queue[0]
		queue = queue[1:]

		// Add to result
		node := d.nodes[id]
		order = append(order, node)

		// Update dependencies
		for _, childID := range node.children {
			inDeg[childID]--
			if inDeg[childID] == 0 {
				queue = append(queue, childID)
			}
		}
	}

	// If we didn't visit all nodes, there's a cycle (should be caught by acyclic())
	if len(order) != len(d.nodes) {
		// This is a safety check - acyclic() should have caught any cycles
		panic("internal error: topological sort couldn't process all nodes; cycle not caught by acyclic()")
	}

	return order
}

// calculateDepth calculates the circuit depth (number of layers).
func (d *DAG) calculateDepth() int {
	if len(d.topoOrder) == 0 {
		return 0 // Empty DAG has depth 0
	}

	// Calculate node depths
	nodeDepth := make(map[NodeID]int)
	maxDepth := 0

	for _, node := range d.topoOrder {
		// Node's depth is 1 + max depth of its parents
		depth := 0
		for _, parentID := range node.parents {
			if parentDepth, ok := nodeDepth[parentID]; ok && parentDepth > depth {
				depth = parentDepth
			}
		}
		depth++ // Add 1 for this node's layer

		nodeDepth[node.ID] = depth
		if depth > maxDepth {
			maxDepth = depth
		}
	}

	return maxDepth
}

// acyclic performs DFS cycle-check.
func (d *DAG) acyclic() error {
	// 0: unvisited, 1: visiting (recursion stack), 2: visited
	state := make(map[NodeID]int)

	var dfs func(NodeID) error
	dfs = func(id NodeID) error {
		switch state[id] {
		case 1:
			return fmt.Errorf("dag: cycle detected involving node %d (%s)",
				id, d.nodes[id].G.Name())
		case 2:
			return nil // Already visited
		}

		// Mark as visiting
		state[id] = 1

		// Visit children
		for _, childID := range d.nodes[id].children {
			if err := dfs(childID); err != nil {
				return err
			}
		}

		// Mark as visited
		state[id] = 2
		return nil
	}

	// Try from each node (to handle disconnected subgraphs)
	for id := range d.nodes {
		if state[id] == 0 { // Not yet visited
			if err := dfs(id); err != nil {
				return err
			}
		}
	}

	return nil // No cycles found
}
