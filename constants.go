package divvunspell

// SymbolNumber is a small integer identifying an alphabet symbol.
type SymbolNumber uint16

// NoSymbol marks the absence of an input symbol in an index or
// transition record.
const NoSymbol SymbolNumber = 0xFFFF

// TransitionTableIndex addresses either the index table or the
// transition table, depending on its value relative to TargetTable.
type TransitionTableIndex uint32

// TargetTable is the sentinel separating index-table addresses from
// transition-table addresses in the shared address space (§4.4).
// Indices below it address the index table; indices at or above it
// address the transition table at offset i - TargetTable.
const TargetTable TransitionTableIndex = 1 << 31

// NoTarget marks the absence of a target/next-index.
const NoTarget TransitionTableIndex = 0xFFFFFFFF

// Weight is a cumulative path cost. Lower is better.
type Weight float32

const (
	indexRecordSize      = 8
	transitionRecordSize = 12
)
