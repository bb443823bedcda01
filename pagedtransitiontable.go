package divvunspell

// PagedTransitionTable is the THFST variant of TransitionTable: the
// same 12-byte record layout (§4.3), split across equal-size chunks.
type PagedTransitionTable struct {
	chunks   []*TransitionTable
	perChunk uint32
	size     uint32
}

// NewPagedTransitionTable builds a paged transition table from
// already-sliced chunk buffers. recordsPerChunk is chunk_size/12, taken
// from the manifest; totalRecords is the sum of real records across all
// chunks (the final chunk may be short).
func NewPagedTransitionTable(chunkBufs [][]byte, recordsPerChunk uint32, totalRecords uint32) (*PagedTransitionTable, error) {
	if recordsPerChunk == 0 {
		return nil, wrapMalformed("paged transition table chunk size is zero")
	}
	chunks := make([]*TransitionTable, 0, len(chunkBufs))
	remaining := totalRecords
	for _, buf := range chunkBufs {
		n := recordsPerChunk
		if remaining < n {
			n = remaining
		}
		t, err := NewTransitionTable(buf, n)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, t)
		remaining -= n
	}
	return &PagedTransitionTable{chunks: chunks, perChunk: recordsPerChunk, size: totalRecords}, nil
}

func (p *PagedTransitionTable) Size() uint32 { return p.size }

func (p *PagedTransitionTable) relIndex(i uint32) (page int, rel uint32, ok bool) {
	if i >= p.size {
		return 0, 0, false
	}
	pg := i / p.perChunk
	if int(pg) >= len(p.chunks) {
		return 0, 0, false
	}
	return int(pg), i - p.perChunk*pg, true
}

func (p *PagedTransitionTable) InputSymbol(i uint32) (SymbolNumber, bool) {
	page, rel, ok := p.relIndex(i)
	if !ok {
		return 0, false
	}
	return p.chunks[page].InputSymbol(rel)
}

func (p *PagedTransitionTable) OutputSymbol(i uint32) (SymbolNumber, bool) {
	page, rel, ok := p.relIndex(i)
	if !ok {
		return 0, false
	}
	return p.chunks[page].OutputSymbol(rel)
}

func (p *PagedTransitionTable) Target(i uint32) (TransitionTableIndex, bool) {
	page, rel, ok := p.relIndex(i)
	if !ok {
		return 0, false
	}
	return p.chunks[page].Target(rel)
}

func (p *PagedTransitionTable) Weight(i uint32) (Weight, bool) {
	page, rel, ok := p.relIndex(i)
	if !ok {
		return 0, false
	}
	return p.chunks[page].Weight(rel)
}

func (p *PagedTransitionTable) IsFinal(i uint32) bool {
	page, rel, ok := p.relIndex(i)
	if !ok {
		return false
	}
	return p.chunks[page].IsFinal(rel)
}

func (p *PagedTransitionTable) SymbolTransition(i uint32) SymbolTransition {
	page, rel, ok := p.relIndex(i)
	if !ok {
		return SymbolTransition{Target: NoTarget, Output: NoSymbol}
	}
	return p.chunks[page].SymbolTransition(rel)
}
