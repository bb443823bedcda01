package divvunspell

import (
	"encoding/binary"
	"math"
)

// SymbolTransition bundles the pieces of a transition-table row the
// worker needs after taking it: the destination, the output symbol
// produced, and the cost of the step (§4.3).
type SymbolTransition struct {
	Target TransitionTableIndex
	Output SymbolNumber
	Weight Weight
}

// TransitionTableView is the random-access contract for a transition
// table (§4.3), satisfied by both the flat HFST layout and the paged
// THFST layout.
type TransitionTableView interface {
	InputSymbol(i uint32) (SymbolNumber, bool)
	OutputSymbol(i uint32) (SymbolNumber, bool)
	Target(i uint32) (TransitionTableIndex, bool)
	Weight(i uint32) (Weight, bool)
	IsFinal(i uint32) bool
	SymbolTransition(i uint32) SymbolTransition
	Size() uint32
}

// TransitionTable is a zero-copy view over the transition-table
// section of a mapped transducer buffer. Each 12-byte record is
// input_symbol(u16), output_symbol(u16), target(u32), weight(f32):
// target is meaningless on a final record (input and output symbol
// both NoSymbol), and weight always carries either the per-arc cost
// of a regular transition or the path's final weight (§3, §6).
type TransitionTable struct {
	buf  []byte
	size uint32
}

// NewTransitionTable wraps the size transition records found at the
// start of buf.
func NewTransitionTable(buf []byte, size uint32) (*TransitionTable, error) {
	need := uint64(size) * transitionRecordSize
	if uint64(len(buf)) < need {
		return nil, wrapMalformed("transition table shorter than declared size")
	}
	return &TransitionTable{buf: buf, size: size}, nil
}

func (t *TransitionTable) Size() uint32 { return t.size }

func (t *TransitionTable) recordOffset(i uint32) (int, bool) {
	if i >= t.size {
		return 0, false
	}
	return int(i) * transitionRecordSize, true
}

// InputSymbol returns the input symbol recorded at i.
func (t *TransitionTable) InputSymbol(i uint32) (SymbolNumber, bool) {
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

// OutputSymbol returns the output symbol recorded at i.
func (t *TransitionTable) OutputSymbol(i uint32) (SymbolNumber, bool) {
	off, ok := t.recordOffset(i)
	if !ok {
		return 0, false
	}
	sym := SymbolNumber(binary.LittleEndian.Uint16(t.buf[off+2 : off+4]))
	if sym == NoSymbol {
		return 0, false
	}
	return sym, true
}

// Target returns the target index recorded at i, valid only when the
// record's input symbol is not NoSymbol.
func (t *TransitionTable) Target(i uint32) (TransitionTableIndex, bool) {
	off, ok := t.recordOffset(i)
	if !ok {
		return 0, false
	}
	inSym := binary.LittleEndian.Uint16(t.buf[off : off+2])
	if inSym == uint16(NoSymbol) {
		return 0, false
	}
	target := binary.LittleEndian.Uint32(t.buf[off+4 : off+8])
	if target == uint32(NoTarget) {
		return 0, false
	}
	return TransitionTableIndex(target), true
}

// IsFinal reports whether the record at i is a final transition
// record: both input and output symbol are NoSymbol (§3).
func (t *TransitionTable) IsFinal(i uint32) bool {
	off, ok := t.recordOffset(i)
	if !ok {
		return false
	}
	inSym := binary.LittleEndian.Uint16(t.buf[off : off+2])
	outSym := binary.LittleEndian.Uint16(t.buf[off+2 : off+4])
	return inSym == uint16(NoSymbol) && outSym == uint16(NoSymbol)
}

// Weight returns the weight stored at i: the final weight when the
// record is final, otherwise the per-arc cost of taking it.
func (t *TransitionTable) Weight(i uint32) (Weight, bool) {
	off, ok := t.recordOffset(i)
	if !ok {
		return 0, false
	}
	bits := binary.LittleEndian.Uint32(t.buf[off+8 : off+12])
	return Weight(math.Float32frombits(bits)), true
}

// SymbolTransition bundles (target, output_symbol, weight) for row i.
func (t *TransitionTable) SymbolTransition(i uint32) SymbolTransition {
	off, ok := t.recordOffset(i)
	if !ok {
		return SymbolTransition{Target: NoTarget, Output: NoSymbol}
	}
	w := Weight(math.Float32frombits(binary.LittleEndian.Uint32(t.buf[off+8 : off+12])))
	if t.IsFinal(i) {
		return SymbolTransition{Target: NoTarget, Output: NoSymbol, Weight: w}
	}
	outSym := SymbolNumber(binary.LittleEndian.Uint16(t.buf[off+2 : off+4]))
	target := TransitionTableIndex(binary.LittleEndian.Uint32(t.buf[off+4 : off+8]))
	return SymbolTransition{Target: target, Output: outSym, Weight: w}
}
