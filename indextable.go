package divvunspell

import (
	"encoding/binary"
	"math"
)

// IndexTableView is the random-access contract for an index table
// (§4.3), satisfied by both the flat HFST layout and the paged THFST
// layout. All accessors are bounds-checked; out-of-range addresses
// report "no value" rather than panicking.
type IndexTableView interface {
	InputSymbol(i uint32) (SymbolNumber, bool)
	Target(i uint32) (TransitionTableIndex, bool)
	IsFinal(i uint32) bool
	FinalWeight(i uint32) (Weight, bool)
	Size() uint32
}

// IndexTable is a zero-copy view over the index-table section of a
// mapped transducer buffer.
type IndexTable struct {
	buf  []byte
	size uint32
}

// NewIndexTable wraps the size index records found at the start of
// buf. buf must be exactly size*8 bytes or longer; only the first
// size*8 bytes are read.
func NewIndexTable(buf []byte, size uint32) (*IndexTable, error) {
	need := uint64(size) * indexRecordSize
	if uint64(len(buf)) < need {
		return nil, wrapMalformed("index table shorter than declared size")
	}
	return &IndexTable{buf: buf, size: size}, nil
}

func (t *IndexTable) Size() uint32 { return t.size }

func (t *IndexTable) recordOffset(i uint32) (int, bool) {
	if i >= t.size {
		return 0, false
	}
	return int(i) * indexRecordSize, true
}

// InputSymbol returns the input symbol recorded at i.
func (t *IndexTable) InputSymbol(i uint32) (SymbolNumber, bool) {
	off, ok := t.recordOffset(i)
	if !ok {
		return 0, false
	}
	sym := SymbolNumber(binary.LittleEndian.Uint16(t.buf[off : off+2]))
	if sym == NoSymbol {
		return 0, false
	}
	return sym, true
}

// Target returns the target index recorded at i. It is only valid
// when the record's input symbol is not NoSymbol.
func (t *IndexTable) Target(i uint32) (TransitionTableIndex, bool) {
	off, ok := t.recordOffset(i)
	if !ok {
		return 0, false
	}
	sym := binary.LittleEndian.Uint16(t.buf[off : off+2])
	if sym == uint16(NoSymbol) {
		return 0, false
	}
	target := binary.LittleEndian.Uint32(t.buf[off+4 : off+8])
	if target == uint32(NoTarget) {
		return 0, false
	}
	return TransitionTableIndex(target), true
}

// IsFinal reports whether the record at i marks a final state: input
// symbol is NoSymbol and the record's union field is occupied rather
// than the "empty slot" sentinel (§3). Unweighted transducers encode
// the literal value 1 there by file-format convention; weighted ones
// store the real final weight's bits, which is why the test is "not
// the no-target sentinel" rather than "equals 1".
func (t *IndexTable) IsFinal(i uint32) bool {
	off, ok := t.recordOffset(i)
	if !ok {
		return false
	}
	sym := binary.LittleEndian.Uint16(t.buf[off : off+2])
	if sym != uint16(NoSymbol) {
		return false
	}
	raw := binary.LittleEndian.Uint32(t.buf[off+4 : off+8])
	return raw != uint32(NoTarget)
}

// FinalWeight returns the final weight recorded at a final record,
// reinterpreting the union field as f32. Callers in an unweighted
// transducer should treat this as 0 regardless of the bits found here
// (see Transducer.FinalWeight).
func (t *IndexTable) FinalWeight(i uint32) (Weight, bool) {
	if !t.IsFinal(i) {
		return 0, false
	}
	off, _ := t.recordOffset(i)
	bits := binary.LittleEndian.Uint32(t.buf[off+4 : off+8])
	return Weight(math.Float32frombits(bits)), true
}
