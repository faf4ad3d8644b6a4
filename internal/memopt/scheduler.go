package memopt

import "fmt"

// Resource bounds from the spec's memory-ownership section: caps on the
// in-memory pending and outgoing buffers so arbitrarily long input streams
// run in bounded memory.
const (
	PendingInstBufferSize  = 16384
	OutgoingInstBufferSize = 1 << 20
	// ReadLimit bounds how many instructions the scheduler pulls from the
	// source per main-loop iteration once the pending buffer has room.
	ReadLimit = 1024
)

// Source is the pull side of a binary instruction stream: ReadInstruction
// behaves like the scheduler's own internal/serialize.BinaryReader, with an
// io.EOF-shaped error reported once no more instructions remain.
type Source interface {
	ReadInstruction() (Instruction, error)
}

// Sink is the push side: WriteInstruction receives one instruction at a
// time, in order.
type Sink interface {
	WriteInstruction(Instruction) error
}

// Emitter decides how to rewrite the working set when the scheduler makes
// no forward progress in a step: it returns the new working set plus any
// MSWAP/MPREFETCH/MSWAP_D ops needed to realize the transition.
type Emitter interface {
	Emit(sched *Scheduler) (newWorkingSet map[int]bool, emitted []Instruction)
}

// qubitWindow is the FIFO of pending ops referencing one qubit, in the
// order they must execute relative to each other.
type qubitWindow struct {
	ops []*pendingOp
}

func (w *qubitWindow) head() *pendingOp {
	if len(w.ops) == 0 {
		return nil
	}
	return w.ops[0]
}

func (w *qubitWindow) pop() {
	w.ops = w.ops[1:]
}

type pendingOp struct {
	inst    Instruction
	readyAt int // number of qubit windows it is still waiting to head; 0 means ready
}

// Scheduler implements the spec's memory-aware scheduling loop: it
// consumes a bounded-capacity compute region of C qubits and rewrites an
// input instruction stream into one where every non-software op's
// operands are resident at execution time.
type Scheduler struct {
	Capacity int
	emitter  Emitter

	src Source
	eof bool

	windows     map[int]*qubitWindow
	pending     []*pendingOp
	outgoing    []Instruction
	workingSet  map[int]bool
	seq         uint64

	out Sink
}

// NewScheduler builds a scheduler with an empty working set of the given
// capacity, using emitter to decide working-set rewrites.
func NewScheduler(src Source, out Sink, capacity int, emitter Emitter) *Scheduler {
	return &Scheduler{
		Capacity:   capacity,
		emitter:    emitter,
		src:        src,
		out:        out,
		windows:    make(map[int]*qubitWindow),
		workingSet: make(map[int]bool, capacity),
	}
}

// Run drives the main loop to completion: while any pending op remains or
// the input is not exhausted, it reads more input, retires every ready op,
// and otherwise invokes the emitter to make room. It returns the total
// number of instructions written to out.
func (s *Scheduler) Run() (int, error) {
	written := 0
	for !s.eof || len(s.pending) > 0 {
		if err := s.fill(); err != nil {
			return written, err
		}

		progressed := s.retireReady()

		if !progressed && len(s.pending) > 0 {
			newSet, emitted := s.emitter.Emit(s)
			s.workingSet = newSet
			s.outgoing = append(s.outgoing, emitted...)
		}

		n, err := s.drainIfFull(false)
		if err != nil {
			return written, err
		}
		written += n
	}

	n, err := s.drainIfFull(true)
	written += n
	return written, err
}

// fill tops the pending buffer up from the source, stamping each op's
// qubit windows, respecting PendingInstBufferSize and ReadLimit.
func (s *Scheduler) fill() error {
	if s.eof || len(s.pending) >= PendingInstBufferSize {
		return nil
	}
	for i := 0; i < ReadLimit && len(s.pending) < PendingInstBufferSize; i++ {
		in, err := s.src.ReadInstruction()
		if err != nil {
			s.eof = true
			return nil
		}
		p := &pendingOp{inst: in}
		s.pending = append(s.pending, p)
		for _, q := range in.Qubits {
			w, ok := s.windows[q]
			if !ok {
				w = &qubitWindow{}
				s.windows[q] = w
			}
			w.ops = append(w.ops, p)
		}
	}
	return nil
}

// retireReady moves every op that is at the head of all of its qubits'
// windows, and either resident or software, into the outgoing buffer. It
// reports whether at least one op was retired.
func (s *Scheduler) retireReady() bool {
	progressed := false
	remaining := s.pending[:0]
	for _, p := range s.pending {
		if !s.isHeadEverywhere(p) {
			remaining = append(remaining, p)
			continue
		}
		if p.inst.Op.IsSoftware() || s.allResident(p.inst.Qubits) {
			s.retire(p)
			progressed = true
			continue
		}
		remaining = append(remaining, p)
	}
	s.pending = remaining
	return progressed
}

func (s *Scheduler) isHeadEverywhere(p *pendingOp) bool {
	for _, q := range p.inst.Qubits {
		if s.windows[q].head() != p {
			return false
		}
	}
	return true
}

func (s *Scheduler) allResident(qubits []int) bool {
	for _, q := range qubits {
		if !s.workingSet[q] {
			return false
		}
	}
	return true
}

func (s *Scheduler) retire(p *pendingOp) {
	for _, q := range p.inst.Qubits {
		s.windows[q].pop()
	}
	p.inst.Seq = s.seq
	s.seq++
	s.outgoing = append(s.outgoing, p.inst)
}

// drainIfFull flushes the first half of the outgoing buffer once it
// exceeds OutgoingInstBufferSize, or the whole buffer when force is true
// (end of run).
func (s *Scheduler) drainIfFull(force bool) (int, error) {
	if !force && len(s.outgoing) <= OutgoingInstBufferSize {
		return 0, nil
	}
	n := len(s.outgoing)
	if !force {
		n = len(s.outgoing) / 2
	}
	for i := 0; i < n; i++ {
		if err := s.out.WriteInstruction(s.outgoing[i]); err != nil {
			return i, fmt.Errorf("memopt: writing scheduled instruction: %w", err)
		}
	}
	s.outgoing = s.outgoing[n:]
	return n, nil
}

// PendingHeads returns, for each qubit currently holding a non-empty
// window, the instruction at its head -- the candidate set emitters
// choose from.
func (s *Scheduler) PendingHeads() []Instruction {
	seen := make(map[*pendingOp]bool)
	var heads []Instruction
	for _, w := range s.windows {
		h := w.head()
		if h == nil || seen[h] {
			continue
		}
		seen[h] = true
		heads = append(heads, h.inst)
	}
	return heads
}

// WorkingSet returns the qubits currently resident in the compute region.
func (s *Scheduler) WorkingSet() map[int]bool { return s.workingSet }
