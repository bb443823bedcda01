package divvunspell

// PagedIndexTable is the THFST variant of IndexTable: the same 8-byte
// record layout (§4.3), but split across equal-size chunks so a large
// transducer can be read without mapping one contiguous table. Each
// chunk is itself a flat IndexTable; addressing picks the chunk first,
// then the offset within it (§4.3 "Paged variant").
type PagedIndexTable struct {
	chunks   []*IndexTable
	perChunk uint32
	size     uint32
}

// NewPagedIndexTable builds a paged index table from already-sliced
// chunk buffers. recordsPerChunk is chunk_size/8, taken from the
// manifest; totalRecords is the sum of real records across all chunks
// (the final chunk may be short).
func NewPagedIndexTable(chunkBufs [][]byte, recordsPerChunk uint32, totalRecords uint32) (*PagedIndexTable, error) {
	if recordsPerChunk == 0 {
		return nil, wrapMalformed("paged index table chunk size is zero")
	}
	chunks := make([]*IndexTable, 0, len(chunkBufs))
	remaining := totalRecords
	for _, buf := range chunkBufs {
		n := recordsPerChunk
		if remaining < n {
			n = remaining
		}
		t, err := NewIndexTable(buf, n)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, t)
		remaining -= n
	}
	return &PagedIndexTable{chunks: chunks, perChunk: recordsPerChunk, size: totalRecords}, nil
}

func (p *PagedIndexTable) Size() uint32 { return p.size }

func (p *PagedIndexTable) relIndex(i uint32) (page int, rel uint32, ok bool) {
	if i >= p.size {
		return 0, 0, false
	}
	pg := i / p.perChunk
	if int(pg) >= len(p.chunks) {
		return 0, 0, false
	}
	return int(pg), i - p.perChunk*pg, true
}

func (p *PagedIndexTable) InputSymbol(i uint32) (SymbolNumber, bool) {
	page, rel, ok := p.relIndex(i)
	if !ok {
		return 0, false
	}
	return p.chunks[page].InputSymbol(rel)
}

func (p *PagedIndexTable) Target(i uint32) (TransitionTableIndex, bool) {
	page, rel, ok := p.relIndex(i)
	if !ok {
		return 0, false
	}
	return p.chunks[page].Target(rel)
}

func (p *PagedIndexTable) IsFinal(i uint32) bool {
	page, rel, ok := p.relIndex(i)
	if !ok {
		return false
	}
	return p.chunks[page].IsFinal(rel)
}

func (p *PagedIndexTable) FinalWeight(i uint32) (Weight, bool) {
	page, rel, ok := p.relIndex(i)
	if !ok {
		return 0, false
	}
	return p.chunks[page].FinalWeight(rel)
}
