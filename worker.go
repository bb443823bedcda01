package divvunspell

import (
	"container/heap"
)

// SearchConfig bounds a single worker run (§6 "Configuration surface").
// NBest, like MaxWeight and Beam, is a pointer: nil means "unset, no
// cutoff"; a non-nil zero is a distinct, rejected value (§7), not the
// same thing as unset.
type SearchConfig struct {
	NBest              *int
	MaxWeight          *Weight
	Beam               *Weight
	PoolStart          int
	PoolMax            int
	SeenNodeSampleRate uint64
}

// DefaultSearchConfig mirrors the teacher's habit of giving every
// tunable a sane, unexciting default rather than requiring every
// caller to spell one out.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		NBest:              nil,
		PoolStart:          128,
		PoolMax:            4096,
		SeenNodeSampleRate: 50,
	}
}

// Validate reports ErrUnsupportedConfig for combinations the worker
// cannot honor (§7: "pool_start > pool_max"; "n_best == 0 when
// suggestions are requested").
func (c SearchConfig) Validate() error {
	if c.PoolStart > c.PoolMax && c.PoolMax != 0 {
		return wrapUnsupported("pool_start > pool_max")
	}
	if c.NBest != nil && *c.NBest == 0 {
		return wrapUnsupported("n_best == 0")
	}
	return nil
}

func wrapUnsupported(msg string) error {
	return &unsupportedError{msg: msg}
}

type unsupportedError struct{ msg string }

func (e *unsupportedError) Error() string { return "divvunspell: unsupported config: " + e.msg }
func (e *unsupportedError) Unwrap() error { return ErrUnsupportedConfig }

// Candidate is one completed path through the joint search: a rendered
// output string and its total accumulated weight (§4.6 "Terminal
// detection").
type Candidate struct {
	Value  string
	Weight Weight
}

// nodeHeap is a weight-ascending priority queue of active TreeNodes,
// tie-broken by insertion order via TreeNode.seq for determinism (§5).
type nodeHeap []TreeNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].Weight != h[j].Weight {
		return h[i].Weight < h[j].Weight
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)        { *h = append(*h, x.(TreeNode)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// worstIndex returns the index of the highest-weight node currently in
// the heap, used for pool eviction (§4.6 "bounded free-list pool").
func (h nodeHeap) worstIndex() int {
	worst := 0
	for i := 1; i < len(h); i++ {
		if h[i].Weight > h[worst].Weight {
			worst = i
		}
	}
	return worst
}

// seenKey identifies a (lexicon_state, mutator_state, input_pos,
// flag_state) tuple for loop suppression (§4.6 "seen nodes guard").
// The output suffix is summarized by its length and last unit rather
// than hashed in full, since two nodes sharing every other coordinate
// but differing only in an output string can still be meaningfully
// different candidates; §4.6 only requires suppressing true repeats of
// the same traversal state.
type seenKey struct {
	lexiconState TransitionTableIndex
	mutatorState TransitionTableIndex
	inputPos     int
	flagState    string
	outputLen    int
	lastOutput   OutputUnit
}

func makeSeenKey(n TreeNode) seenKey {
	buf := make([]byte, len(n.FlagState)*2)
	for i, v := range n.FlagState {
		buf[2*i] = byte(v)
		buf[2*i+1] = byte(v >> 8)
	}
	key := seenKey{
		lexiconState: n.LexiconState,
		mutatorState: n.MutatorState,
		inputPos:     n.InputPos,
		flagState:    string(buf),
		outputLen:    len(n.Output),
	}
	if len(n.Output) > 0 {
		key.lastOutput = n.Output[len(n.Output)-1]
	}
	return key
}

// worker runs the priority search described in §4.6 over a lexicon
// transducer and a mutator (error model) transducer joined by a
// mutator→lexicon symbol translator.
type worker struct {
	lexicon    *Transducer
	mutator    *Transducer
	translator []SymbolNumber
	input      []SymbolNumber
	inputRunes []rune
	config     SearchConfig
}

func newWorker(lexicon, mutator *Transducer, translator []SymbolNumber, input []SymbolNumber, inputRunes []rune, config SearchConfig) *worker {
	return &worker{
		lexicon:    lexicon,
		mutator:    mutator,
		translator: translator,
		input:      input,
		inputRunes: inputRunes,
		config:     config,
	}
}

// run performs the full search and returns every terminal candidate
// found, unsorted and unpruned by n_best (the caller sorts/truncates;
// see Speller.Suggest).
func (w *worker) run() []Candidate {
	var candidates []Candidate
	var bestFinal *Weight

	pq := &nodeHeap{}
	heap.Init(pq)

	var seq uint64
	root := rootNode(w.lexicon.Alphabet().FlagStateSize(), seq)
	seq++
	heap.Push(pq, root)

	seen := make(map[seenKey]struct{})
	var expansions uint64
	poolLimit := w.config.PoolMax
	if poolLimit <= 0 {
		poolLimit = w.config.PoolStart
	}

	push := func(n TreeNode) {
		if w.config.MaxWeight != nil && n.Weight > *w.config.MaxWeight {
			return
		}
		if w.config.Beam != nil && bestFinal != nil && n.Weight > *bestFinal+*w.config.Beam {
			return
		}
		expansions++
		if w.config.SeenNodeSampleRate > 0 && expansions%w.config.SeenNodeSampleRate == 0 {
			key := makeSeenKey(n)
			if _, dup := seen[key]; dup {
				return
			}
			seen[key] = struct{}{}
		}
		n.seq = seq
		seq++
		if poolLimit > 0 && pq.Len() >= poolLimit {
			worst := pq.worstIndex()
			if (*pq)[worst].Weight <= n.Weight {
				return
			}
			heap.Remove(pq, worst)
		}
		heap.Push(pq, n)
	}

	for pq.Len() > 0 {
		n := heap.Pop(pq).(TreeNode)

		if w.isTerminal(n) {
			total := n.Weight
			if lw, ok := w.lexicon.FinalWeight(n.LexiconState); ok {
				total += lw
			}
			if mw, ok := w.mutator.FinalWeight(n.MutatorState); ok {
				total += mw
			}
			if bestFinal == nil || total < *bestFinal {
				b := total
				bestFinal = &b
			}
			candidates = append(candidates, Candidate{
				Value:  renderOutput(n.Output, w.lexicon.Alphabet().KeyTable()),
				Weight: total,
			})
			continue
		}

		w.expandLexiconEpsilons(n, push)
		w.expandMutatorEpsilons(n, push)
		w.consumeInput(n, push)
	}

	return candidates
}

// exists implements the is_correct fast path (§4.8): search for a
// terminal reachable without the mutator contributing any weight —
// i.e. an exact match against the lexicon, whatever the lexicon's own
// final weight happens to be — and stop at the first one found.
// Lexical weight never prunes a node here; only a nonzero mutator
// contribution does, since that is what "zero-weight path" means for
// is_correct (an entry reached only by paying an edit cost does not
// count, even if some other, cheaper edit would have been within the
// normal search's bounds).
func (w *worker) exists() bool {
	pq := &nodeHeap{}
	heap.Init(pq)

	var seq uint64
	root := rootNode(w.lexicon.Alphabet().FlagStateSize(), seq)
	seq++
	heap.Push(pq, root)

	seen := make(map[seenKey]struct{})
	var expansions uint64
	poolLimit := w.config.PoolMax
	if poolLimit <= 0 {
		poolLimit = w.config.PoolStart
	}

	push := func(n TreeNode) {
		if n.MutatorWeight != 0 {
			return
		}
		expansions++
		if w.config.SeenNodeSampleRate > 0 && expansions%w.config.SeenNodeSampleRate == 0 {
			key := makeSeenKey(n)
			if _, dup := seen[key]; dup {
				return
			}
			seen[key] = struct{}{}
		}
		n.seq = seq
		seq++
		if poolLimit > 0 && pq.Len() >= poolLimit {
			worst := pq.worstIndex()
			if (*pq)[worst].Weight <= n.Weight {
				return
			}
			heap.Remove(pq, worst)
		}
		heap.Push(pq, n)
	}

	for pq.Len() > 0 {
		n := heap.Pop(pq).(TreeNode)

		if w.isTerminal(n) {
			mw, _ := w.mutator.FinalWeight(n.MutatorState)
			if n.MutatorWeight == 0 && mw == 0 {
				return true
			}
			continue
		}

		w.expandLexiconEpsilons(n, push)
		w.expandMutatorEpsilons(n, push)
		w.consumeInput(n, push)
	}

	return false
}

func (w *worker) isTerminal(n TreeNode) bool {
	if n.InputPos != len(w.input) {
		return false
	}
	return w.lexicon.IsFinal(n.LexiconState) && w.mutator.IsFinal(n.MutatorState)
}

// expandLexiconEpsilons implements §4.6 rule 1: for every outgoing
// epsilon-or-flag arc on the lexicon side, try applying it and produce
// one successor per arc that applies, leaving mutator_state and
// input_pos unchanged.
func (w *worker) expandLexiconEpsilons(n TreeNode, push func(TreeNode)) {
	for _, arc := range w.lexicon.AllEpsilonsAndFlags(n.LexiconState) {
		flagState := n.FlagState
		if op, isFlag := w.lexicon.Alphabet().FlagOp(arc.Transition.Output); isFlag {
			newState, applied := op.Apply(n.FlagState)
			if !applied {
				continue
			}
			flagState = newState
		}
		push(TreeNode{
			LexiconState:  arc.Next,
			MutatorState:  n.MutatorState,
			InputPos:      n.InputPos,
			Output:        appendOutput(n.Output, arc.Transition.Output),
			FlagState:     flagState,
			Weight:        n.Weight + arc.Transition.Weight,
			MutatorWeight: n.MutatorWeight,
		})
	}
}

// expandMutatorEpsilons implements §4.6 rule 2: analogous for the
// mutator side, leaving lexicon_state and input_pos unchanged.
func (w *worker) expandMutatorEpsilons(n TreeNode, push func(TreeNode)) {
	for _, arc := range w.mutator.AllEpsilonsAndFlags(n.MutatorState) {
		flagState := n.FlagState
		if op, isFlag := w.mutator.Alphabet().FlagOp(arc.Transition.Output); isFlag {
			newState, applied := op.Apply(n.FlagState)
			if !applied {
				continue
			}
			flagState = newState
		}
		push(TreeNode{
			LexiconState:  n.LexiconState,
			MutatorState:  arc.Next,
			InputPos:      n.InputPos,
			Output:        n.Output,
			FlagState:     flagState,
			Weight:        n.Weight + arc.Transition.Weight,
			MutatorWeight: n.MutatorWeight + arc.Transition.Weight,
		})
	}
}

// consumeInput implements §4.6 rule 3: for the current input symbol,
// find a mutator arc matching it (or IDENTITY/UNKNOWN when the symbol
// has no direct key), translate its output symbol into the lexicon's
// alphabet, and require a matching lexicon arc at the current lexicon
// state. On success both sides advance and input_pos increments.
func (w *worker) consumeInput(n TreeNode, push func(TreeNode)) {
	if n.InputPos >= len(w.input) {
		return
	}
	sym := w.input[n.InputPos]

	candidates := []SymbolNumber{sym}
	id, hasID := w.mutator.Alphabet().Identity()
	if hasID {
		candidates = append(candidates, id)
	}
	unk, hasUnk := w.mutator.Alphabet().Unknown()
	if hasUnk {
		candidates = append(candidates, unk)
	}

	for _, msym := range candidates {
		if msym == 0 {
			continue
		}
		mst, mutNext, ok := w.mutator.FindNonEpsilon(n.MutatorState, msym)
		if !ok {
			continue
		}
		lsym := mst.Output
		if int(lsym) < len(w.translator) {
			lsym = w.translator[lsym]
		}
		lst, lexNext, ok := w.lexicon.FindNonEpsilon(n.LexiconState, lsym)
		if !ok {
			continue
		}
		var out []OutputUnit
		if (hasID && msym == id) || (hasUnk && msym == unk) {
			out = appendLiteral(n.Output, w.inputRunes[n.InputPos])
		} else {
			out = appendOutput(n.Output, lst.Output)
		}
		push(TreeNode{
			LexiconState:  lexNext,
			MutatorState:  mutNext,
			InputPos:      n.InputPos + 1,
			Output:        out,
			FlagState:     n.FlagState,
			Weight:        n.Weight + mst.Weight + lst.Weight,
			MutatorWeight: n.MutatorWeight + mst.Weight,
		})
		return
	}
}
