package divvunspell

import (
	"encoding/binary"
	"fmt"
)

// HeaderFlag is a bit in the transducer header's flag bitset.
type HeaderFlag uint16

const (
	// HeaderFlagWeighted marks a transducer whose transitions and
	// final states carry weights (§3, §6).
	HeaderFlagWeighted HeaderFlag = 1 << 0
)

const headerSize = 12

// TransducerHeader is the fixed-width header at the start of a mapped
// transducer buffer (§4.1, §6). It is immutable once parsed.
type TransducerHeader struct {
	symbolCount         SymbolNumber
	indexTableSize      uint32
	transitionTableSize uint32
	flags               uint16
}

// ParseHeader decodes the fixed-size header from buf. It returns
// MalformedTransducer if buf is shorter than the header (§7). It does
// not check the decoded table sizes against the buffer length;
// NewTransducer does that when it slices out each table.
func ParseHeader(buf []byte) (TransducerHeader, error) {
	var h TransducerHeader
	if len(buf) < headerSize {
		return h, fmt.Errorf("%w: truncated header (have %d bytes, need %d)", ErrMalformedTransducer, len(buf), headerSize)
	}
	h.symbolCount = SymbolNumber(binary.LittleEndian.Uint16(buf[0:2]))
	h.indexTableSize = binary.LittleEndian.Uint32(buf[4:8])
	h.transitionTableSize = binary.LittleEndian.Uint32(buf[8:12])
	// flags are packed into the high 16 bits of the reserved word at
	// [2:4]; kept separate from symbol count to leave room for future
	// bits without widening the header.
	h.flags = binary.LittleEndian.Uint16(buf[2:4])
	return h, nil
}

// SymbolCount is the number of entries in the alphabet key table.
func (h TransducerHeader) SymbolCount() SymbolNumber { return h.symbolCount }

// IndexTableSize is the number of index-table records.
func (h TransducerHeader) IndexTableSize() uint32 { return h.indexTableSize }

// TransitionTableSize is the number of transition-table records.
func (h TransducerHeader) TransitionTableSize() uint32 { return h.transitionTableSize }

// HasFlag reports whether the given header flag is set.
func (h TransducerHeader) HasFlag(f HeaderFlag) bool { return h.flags&uint16(f) != 0 }

// Len is the byte offset at which the alphabet section begins.
func (h TransducerHeader) Len() int { return headerSize }
