package divvunspell

// OutputUnit is one element of a TreeNode's accumulated output: either
// a plain lexicon key-table symbol, or a literal rune substituted for
// an IDENTITY/UNKNOWN meta-symbol match (§4.6 "Terminal detection":
// "special meta-symbols... render as the originating input character").
type OutputUnit struct {
	Symbol    SymbolNumber
	Literal   rune
	IsLiteral bool
}

// TreeNode is a single search state (§3): a position in both the
// lexicon and mutator transducers, how much of the input has been
// consumed, the lexicon output produced so far, the flag-diacritic
// state vector, and the accumulated weight. Nodes are immutable; every
// expansion in the worker produces a new node rather than mutating an
// existing one, since the search graph is cyclic and a node's lifetime
// is strictly call-local (§5 "Cyclic references").
type TreeNode struct {
	LexiconState TransitionTableIndex
	MutatorState TransitionTableIndex
	InputPos     int
	Output       []OutputUnit
	FlagState    []int16
	Weight       Weight

	// MutatorWeight is the subset of Weight contributed by the mutator
	// (error model) side alone: edit arcs crossed and, at a terminal,
	// the mutator's own final weight. Lexical weight never counts
	// toward it. Speller.IsCorrect uses this to tell "reached with no
	// edits, whatever the lexicon's own weight" from "reached only by
	// paying an edit cost" (§4.8 "is_correct").
	MutatorWeight Weight

	// seq orders nodes with equal weight by insertion, giving the
	// priority queue deterministic tie-breaking (§5 "Ordering").
	seq uint64
}

// rootNode builds the initial search state: both transducers at their
// start state (0), no input consumed, empty output, a zeroed flag
// vector sized to the lexicon's flag_state_size, zero weight.
func rootNode(flagStateSize int, seq uint64) TreeNode {
	return TreeNode{
		LexiconState: 0,
		MutatorState: 0,
		InputPos:     0,
		Output:       nil,
		FlagState:    make([]int16, flagStateSize),
		Weight:       0,
		seq:          seq,
	}
}

// appendOutput returns a copy of n.Output with sym appended, unless
// sym is epsilon (symbol 0), in which case the output is returned
// unchanged (§4.6 rule 1/2: "append arc.output_symbol unless epsilon").
func appendOutput(out []OutputUnit, sym SymbolNumber) []OutputUnit {
	if sym == 0 {
		return out
	}
	next := make([]OutputUnit, len(out)+1)
	copy(next, out)
	next[len(out)] = OutputUnit{Symbol: sym}
	return next
}

// appendLiteral returns a copy of n.Output with a literal input rune
// appended in place of an IDENTITY/UNKNOWN match.
func appendLiteral(out []OutputUnit, r rune) []OutputUnit {
	next := make([]OutputUnit, len(out)+1)
	copy(next, out)
	next[len(out)] = OutputUnit{Literal: r, IsLiteral: true}
	return next
}

// renderOutput joins an accumulated output into the suggestion string,
// skipping empty/epsilon keys and rendering literal units verbatim
// (§4.6 "Terminal detection").
func renderOutput(out []OutputUnit, keyTable []string) string {
	var b []byte
	for _, u := range out {
		if u.IsLiteral {
			b = append(b, string(u.Literal)...)
			continue
		}
		if int(u.Symbol) >= len(keyTable) {
			continue
		}
		key := keyTable[u.Symbol]
		if key == "" {
			continue
		}
		b = append(b, key...)
	}
	return string(b)
}
