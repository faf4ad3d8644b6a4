package memopt

// cstNode is one node of a Compute-Set Tree: a candidate working-set
// subtree, tagged with how much compute it would save (compute-value) and
// how many of its qubits are not already resident (memory-cost).
type cstNode struct {
	qubits  map[int]bool
	compute int
	memCost int
	frozen  bool
}

func newCSTLeaf(q int, resident bool) *cstNode {
	cost := 0
	if !resident {
		cost = 1
	}
	return &cstNode{qubits: map[int]bool{q: true}, memCost: cost}
}

// buildCST streams ops against a per-qubit forest of leaves, merging
// operand nodes whose combined qubit set still fits in capacity and
// freezing nodes that either already conflict with a frozen operand or
// whose merge would exceed capacity.
func buildCST(ops []Instruction, current map[int]bool, capacity int) map[int]*cstNode {
	byQubit := make(map[int]*cstNode)
	ensureLeaf := func(q int) *cstNode {
		n, ok := byQubit[q]
		if !ok {
			n = newCSTLeaf(q, current[q])
			byQubit[q] = n
		}
		return n
	}

	for _, in := range ops {
		if len(in.Qubits) == 0 {
			continue
		}
		deepest := make(map[*cstNode]bool)
		anyFrozen := false
		for _, q := range in.Qubits {
			n := ensureLeaf(q)
			deepest[n] = true
			if n.frozen {
				anyFrozen = true
			}
		}
		if anyFrozen {
			for n := range deepest {
				n.frozen = true
			}
			continue
		}
		if len(deepest) == 1 {
			for n := range deepest {
				n.compute += in.GateScore()
			}
			continue
		}

		union := make(map[int]bool)
		compute, memCost := in.GateScore(), 0
		for n := range deepest {
			for q := range n.qubits {
				union[q] = true
			}
			compute += n.compute
			memCost += n.memCost
		}
		if len(union) > capacity {
			for n := range deepest {
				n.frozen = true
			}
			continue
		}

		child := &cstNode{qubits: union, compute: compute, memCost: memCost}
		for q := range union {
			byQubit[q] = child
		}
	}
	return byQubit
}

// distinctNodes de-duplicates the per-qubit node map into its underlying
// node set.
func distinctNodes(byQubit map[int]*cstNode) []*cstNode {
	seen := make(map[*cstNode]bool)
	var nodes []*cstNode
	for _, n := range byQubit {
		if !seen[n] {
			seen[n] = true
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// costAwareScore is the selection metric: compute saved per unit of memory
// traffic incurred, with +1 in the denominator so a zero-memory-cost
// subtree (already fully resident) still scores finitely.
func costAwareScore(n *cstNode) float64 {
	return float64(n.compute) / float64(n.memCost+1)
}

// CostAware builds a Compute-Set Tree from the current pending buffer
// (capped at 512*Capacity ops, per spec) and selects the best disjoint pair
// of subtrees whose combined qubit count equals Capacity.
type CostAware struct {
	// runningAvg tracks the mean selected score across calls so the
	// emitter can judge a subtree "well below average" and prefer the
	// decoupled MSWAP_D form.
	runningAvg float64
	calls      int
}

func (ca *CostAware) Emit(s *Scheduler) (map[int]bool, []Instruction) {
	limit := 512 * s.Capacity
	ops := make([]Instruction, 0, limit)
	for _, p := range s.pending {
		if len(ops) >= limit {
			break
		}
		ops = append(ops, p.inst)
	}

	byQubit := buildCST(ops, s.workingSet, s.Capacity)
	nodes := distinctNodes(byQubit)

	best, bestScore := ca.selectBestPair(nodes, s.Capacity)
	if best == nil {
		// No candidate pair fits; fall back to the priority-greedy choice.
		return (VISZLAI{}).Emit(s)
	}

	ca.calls++
	ca.runningAvg += (bestScore - ca.runningAvg) / float64(ca.calls)

	swapOp := OpMSwap
	if ca.calls > 1 && bestScore < ca.runningAvg*0.5 {
		swapOp = OpMSwapD
	}

	ops2 := transformWorkingSetInto(s.workingSet, best, swapOp)
	return best, ops2
}

// selectBestPair groups nodes by qubit-set size and tries every disjoint
// pair (x_k, y_{capacity-k}) whose union hits capacity exactly, returning
// the union with the highest combined score.
func (ca *CostAware) selectBestPair(nodes []*cstNode, capacity int) (map[int]bool, float64) {
	byShape := make(map[int][]*cstNode)
	for _, n := range nodes {
		byShape[len(n.qubits)] = append(byShape[len(n.qubits)], n)
	}

	var bestUnion map[int]bool
	bestScore := -1.0
	for k := 1; k < capacity; k++ {
		xs := byShape[k]
		ys := byShape[capacity-k]
		for _, x := range xs {
			for _, y := range ys {
				if x == y || overlaps(x.qubits, y.qubits) {
					continue
				}
				score := costAwareScore(x) + costAwareScore(y)
				if score > bestScore {
					bestScore = score
					bestUnion = unionQubits(x.qubits, y.qubits)
				}
			}
		}
	}
	for _, n := range byShape[capacity] {
		score := costAwareScore(n)
		if score > bestScore {
			bestScore = score
			bestUnion = n.qubits
		}
	}
	return bestUnion, bestScore
}

func overlaps(a, b map[int]bool) bool {
	for q := range a {
		if b[q] {
			return true
		}
	}
	return false
}

func unionQubits(a, b map[int]bool) map[int]bool {
	u := make(map[int]bool, len(a)+len(b))
	for q := range a {
		u[q] = true
	}
	for q := range b {
		u[q] = true
	}
	return u
}
