package divvunspell

// Transducer is a parsed transducer: header, alphabet, and the two
// tables that together form the single addressable space described in
// §3 ("conceptually a single array... split in two"). Indices below
// TargetTable address the index table; indices at or above it address
// the transition table at offset i - TargetTable (§4.4).
type Transducer struct {
	header   TransducerHeader
	alphabet *Alphabet
	index    IndexTableView
	trans    TransitionTableView
}

// NewTransducer parses a flat (non-paged) transducer out of buf: a
// header, followed by the alphabet's key table, followed by the index
// table, followed by the transition table, with no gaps (§4.1, §6).
func NewTransducer(buf []byte) (*Transducer, error) {
	header, err := ParseHeader(buf)
	if err != nil {
		return nil, err
	}
	offset := header.Len()
	if offset > len(buf) {
		return nil, wrapMalformed("buffer too short for header")
	}
	alphabet, err := ParseAlphabet(buf[offset:], header.SymbolCount(), nil)
	if err != nil {
		return nil, err
	}
	offset += alphabet.Len()

	indexBytes := int(header.IndexTableSize()) * indexRecordSize
	if offset+indexBytes > len(buf) {
		return nil, wrapMalformed("buffer too short for index table")
	}
	index, err := NewIndexTable(buf[offset:offset+indexBytes], header.IndexTableSize())
	if err != nil {
		return nil, err
	}
	offset += indexBytes

	transBytes := int(header.TransitionTableSize()) * transitionRecordSize
	if offset+transBytes > len(buf) {
		return nil, wrapMalformed("buffer too short for transition table")
	}
	trans, err := NewTransitionTable(buf[offset:offset+transBytes], header.TransitionTableSize())
	if err != nil {
		return nil, err
	}

	return &Transducer{header: header, alphabet: alphabet, index: index, trans: trans}, nil
}

// NewPagedTransducer assembles a transducer from an already-parsed
// header/alphabet plus paged table chunks (§4.3 "Paged variant").
func NewPagedTransducer(header TransducerHeader, alphabet *Alphabet, index IndexTableView, trans TransitionTableView) *Transducer {
	return &Transducer{header: header, alphabet: alphabet, index: index, trans: trans}
}

// Header returns the transducer's parsed header.
func (t *Transducer) Header() TransducerHeader { return t.header }

// Alphabet returns the transducer's symbol alphabet.
func (t *Transducer) Alphabet() *Alphabet { return t.alphabet }

func (t *Transducer) isTransitionIndex(i TransitionTableIndex) bool { return i >= TargetTable }

// InputSymbol returns the input symbol recorded at address i, in
// either table.
func (t *Transducer) InputSymbol(i TransitionTableIndex) (SymbolNumber, bool) {
	if t.isTransitionIndex(i) {
		return t.trans.InputSymbol(uint32(i - TargetTable))
	}
	return t.index.InputSymbol(uint32(i))
}

// IsFinal reports whether address i is a final state/transition.
func (t *Transducer) IsFinal(i TransitionTableIndex) bool {
	if t.isTransitionIndex(i) {
		return t.trans.IsFinal(uint32(i - TargetTable))
	}
	return t.index.IsFinal(uint32(i))
}

// FinalWeight returns the weight recorded at a final address i. It is
// always 0 for an unweighted transducer, regardless of what bits are
// stored in the underlying record (§4.1 "Weighted" flag).
func (t *Transducer) FinalWeight(i TransitionTableIndex) (Weight, bool) {
	if !t.header.HasFlag(HeaderFlagWeighted) {
		if !t.IsFinal(i) {
			return 0, false
		}
		return 0, true
	}
	if t.isTransitionIndex(i) {
		return t.trans.Weight(uint32(i - TargetTable))
	}
	return t.index.FinalWeight(uint32(i))
}

// HasTransitions reports whether address i has an outgoing transition
// on sym. In the index table this probes the row at i+sym; in the
// transition table it is a direct equality test against the current
// row (§4.4; note this offset differs from Next's i+1+sym — the index
// table reserves row i+1+s for the arc itself and answers "does it
// exist" one row earlier, at i+s).
func (t *Transducer) HasTransitions(i TransitionTableIndex, sym SymbolNumber, hasSym bool) bool {
	if !hasSym {
		return false
	}
	if t.isTransitionIndex(i) {
		res, ok := t.trans.InputSymbol(uint32(i - TargetTable))
		return ok && res == sym
	}
	res, ok := t.index.InputSymbol(uint32(i) + uint32(sym))
	return ok && res == sym
}

// HasEpsilonsOrFlags reports whether address i carries an epsilon or
// flag-diacritic input symbol. On the index side only epsilon (symbol
// 0) is tested; a flag-diacritic input symbol there reports false.
func (t *Transducer) HasEpsilonsOrFlags(i TransitionTableIndex) bool {
	if t.isTransitionIndex(i) {
		sym, ok := t.trans.InputSymbol(uint32(i - TargetTable))
		return ok && (sym == 0 || t.alphabet.IsFlag(sym))
	}
	sym, ok := t.index.InputSymbol(uint32(i))
	return ok && sym == 0
}

// TakeEpsilons returns the transition at i if its input symbol is
// epsilon (symbol 0), for traversal in the transition table only.
func (t *Transducer) TakeEpsilons(i TransitionTableIndex) (SymbolTransition, bool) {
	rel := uint32(i)
	if t.isTransitionIndex(i) {
		rel = uint32(i - TargetTable)
	}
	sym, ok := t.trans.InputSymbol(rel)
	if !ok || sym != 0 {
		return SymbolTransition{}, false
	}
	return t.trans.SymbolTransition(rel), true
}

// TakeEpsilonsAndFlags returns the transition at i if its input symbol
// is epsilon or a flag diacritic.
func (t *Transducer) TakeEpsilonsAndFlags(i TransitionTableIndex) (SymbolTransition, bool) {
	rel := uint32(i)
	if t.isTransitionIndex(i) {
		rel = uint32(i - TargetTable)
	}
	sym, ok := t.trans.InputSymbol(rel)
	if !ok {
		return SymbolTransition{}, false
	}
	if sym != 0 && !t.alphabet.IsFlag(sym) {
		return SymbolTransition{}, false
	}
	return t.trans.SymbolTransition(rel), true
}

// TakeNonEpsilons returns the transition at i if its input symbol
// equals sym exactly.
func (t *Transducer) TakeNonEpsilons(i TransitionTableIndex, sym SymbolNumber) (SymbolTransition, bool) {
	rel := uint32(i)
	if t.isTransitionIndex(i) {
		rel = uint32(i - TargetTable)
	}
	inSym, ok := t.trans.InputSymbol(rel)
	if !ok || inSym != sym {
		return SymbolTransition{}, false
	}
	return t.trans.SymbolTransition(rel), true
}

// Next advances from address i on sym, returning the next address in
// the shared address space (§3), or false when there is none (§4.4).
// Unlike raw on-disk targets, the result is always safe to feed back
// into IsFinal/InputSymbol/TakeNonEpsilons/etc without further offset
// arithmetic: once i is in the transition table, advancing just means
// the following row; from the index table, a stored target already
// encodes whether it redirects into the transition table.
func (t *Transducer) Next(i TransitionTableIndex, sym SymbolNumber) (TransitionTableIndex, bool) {
	if t.isTransitionIndex(i) {
		return i + 1, true
	}
	target, ok := t.index.Target(uint32(i) + 1 + uint32(sym))
	if !ok {
		return 0, false
	}
	return TransitionTableIndex(target), true
}

// FindNonEpsilon resolves the arc for sym reachable from state: a
// single indexed probe when state hashes into the index table (the
// probe already lands on the matching transition-table row), or a
// sequential scan of sibling rows when state already lives in the
// transition table (§4.4). The returned TransitionTableIndex is the
// arc's own target, not a scan cursor — callers must not feed it back
// through Next.
func (t *Transducer) FindNonEpsilon(state TransitionTableIndex, sym SymbolNumber) (SymbolTransition, TransitionTableIndex, bool) {
	if t.isTransitionIndex(state) {
		end := TransitionTableIndex(t.trans.Size()) + TargetTable
		for cur := state; cur < end; cur++ {
			if st, ok := t.TakeNonEpsilons(cur, sym); ok {
				return st, st.Target, true
			}
			if t.IsFinal(cur) {
				return SymbolTransition{}, 0, false
			}
		}
		return SymbolTransition{}, 0, false
	}
	if !t.HasTransitions(state, sym, true) {
		return SymbolTransition{}, 0, false
	}
	resolved, ok := t.Next(state, sym)
	if !ok {
		return SymbolTransition{}, 0, false
	}
	st, ok := t.TakeNonEpsilons(resolved, sym)
	if !ok {
		return SymbolTransition{}, 0, false
	}
	return st, st.Target, true
}

// EpsilonOrFlagArc pairs a matched epsilon/flag transition with the
// state to continue from if it is taken.
type EpsilonOrFlagArc struct {
	Transition SymbolTransition
	Next       TransitionTableIndex
}

// AllEpsilonsAndFlags resolves every applicable epsilon-or-flag arc
// reachable from state, using the same index-probe/transition-scan
// split as FindNonEpsilon (§4.6 rules 1 and 2: "for every outgoing
// epsilon-or-flag arc", not just the first one found). An index-side
// state has room for at most one such arc, so the probe either finds
// it or it doesn't; a transition-side state can have several
// qualifying sibling rows in its run, so the scan keeps going past the
// first match instead of stopping there, ending only at the run's
// IsFinal sentinel or the table boundary.
func (t *Transducer) AllEpsilonsAndFlags(state TransitionTableIndex) []EpsilonOrFlagArc {
	if t.isTransitionIndex(state) {
		var out []EpsilonOrFlagArc
		end := TransitionTableIndex(t.trans.Size()) + TargetTable
		for cur := state; cur < end; cur++ {
			if st, ok := t.TakeEpsilonsAndFlags(cur); ok {
				out = append(out, EpsilonOrFlagArc{Transition: st, Next: st.Target})
			}
			if t.IsFinal(cur) {
				break
			}
		}
		return out
	}
	if !t.HasEpsilonsOrFlags(state) {
		return nil
	}
	resolved, ok := t.Next(state, 0)
	if !ok {
		return nil
	}
	st, ok := t.TakeEpsilonsAndFlags(resolved)
	if !ok {
		return nil
	}
	return []EpsilonOrFlagArc{{Transition: st, Next: st.Target}}
}
