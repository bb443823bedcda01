package divvunspell

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildFlatTransducer assembles a minimal on-disk transducer buffer:
// header, alphabet, index table, transition table, back to back, with
// no padding. ParseAlphabet treats zero bytes after the last key as
// alphabet padding, so the section that follows the alphabet must not
// start with a zero byte.
func buildFlatTransducer(t *testing.T, weighted bool, keys []string, index []byte, indexRecords uint32, trans []byte, transRecords uint32) []byte {
	t.Helper()
	alphabetBuf := keysToBuf(keys)

	var flags uint16
	if weighted {
		flags = uint16(HeaderFlagWeighted)
	}
	header := makeHeaderBytes(uint16(len(keys)), flags, indexRecords, transRecords)

	buf := append([]byte{}, header...)
	buf = append(buf, alphabetBuf...)
	buf = append(buf, index...)
	buf = append(buf, trans...)
	return buf
}

func TestNewTransducerRoundTrip(t *testing.T) {
	keys := []string{"", "a"}

	index := make([]byte, 3*indexRecordSize)
	putIndexRecord(index, 0, uint16(NoSymbol), uint32(NoTarget)) // empty slot
	// row i+sym=1: HasTransitions probes here (§4.4).
	putIndexRecord(index, 1, 1, 0)
	// row i+1+sym=2: Next follows the target stored here, redirecting
	// into the transition table (§4.4).
	putIndexRecord(index, 2, 1, uint32(TargetTable))

	trans := make([]byte, 2*transitionRecordSize)
	putTransitionRecord(trans, 0, 1, 1, 0, 0) // arc on 'a'; target field left 0, the final row is reached through Next
	putTransitionRecord(trans, 1, uint16(NoSymbol), uint16(NoSymbol), 0, 0.75) // final

	buf := buildFlatTransducer(t, true, keys, index, 3, trans, 2)

	tr, err := NewTransducer(buf)
	require.NoError(t, err)
	require.EqualValues(t, 2, tr.Header().SymbolCount())
	require.True(t, tr.Header().HasFlag(HeaderFlagWeighted))

	require.True(t, tr.HasTransitions(0, 1, true))

	next, ok := tr.Next(0, 1)
	require.True(t, ok)
	require.EqualValues(t, TargetTable, next)

	st, ok := tr.TakeNonEpsilons(next, 1)
	require.True(t, ok)
	require.EqualValues(t, 1, st.Output)

	next2, ok := tr.Next(next, 1)
	require.True(t, ok)
	require.True(t, tr.IsFinal(next2))

	w, ok := tr.FinalWeight(next2)
	require.True(t, ok)
	require.InDelta(t, 0.75, float32(w), 1e-6)
}

func TestTransducerFinalWeightZeroedWhenUnweighted(t *testing.T) {
	keys := []string{""}
	index := make([]byte, indexRecordSize)
	// final record with nonzero bits in the union field; must read as
	// weight 0 because the header carries no Weighted flag.
	putIndexRecord(index, 0, uint16(NoSymbol), math.Float32bits(9.5))

	buf := buildFlatTransducer(t, false, keys, index, 1, nil, 0)

	tr, err := NewTransducer(buf)
	require.NoError(t, err)
	require.False(t, tr.Header().HasFlag(HeaderFlagWeighted))
	require.True(t, tr.IsFinal(0))

	w, ok := tr.FinalWeight(0)
	require.True(t, ok)
	require.EqualValues(t, 0, w)
}

func TestNewTransducerTruncated(t *testing.T) {
	_, err := NewTransducer(make([]byte, 3))
	require.Error(t, err)
}

func TestTransducerTakeEpsilonsAndFlags(t *testing.T) {
	keys := []string{"", "@P.F.V@", "x"}
	trans := make([]byte, transitionRecordSize)
	putTransitionRecord(trans, 0, 1, 1, 0, 0.1) // input symbol 1 is a flag diacritic

	buf := buildFlatTransducer(t, true, keys, nil, 0, trans, 1)
	tr, err := NewTransducer(buf)
	require.NoError(t, err)

	require.True(t, tr.HasEpsilonsOrFlags(TargetTable))
	st, ok := tr.TakeEpsilonsAndFlags(TargetTable)
	require.True(t, ok)
	require.EqualValues(t, 1, st.Output)

	_, ok = tr.TakeEpsilons(TargetTable)
	require.False(t, ok, "a flag diacritic is not a plain epsilon")
}

func TestTransducerFindNonEpsilonThroughIndex(t *testing.T) {
	keys := []string{"", "a"}

	index := make([]byte, 3*indexRecordSize)
	putIndexRecord(index, 0, uint16(NoSymbol), uint32(NoTarget)) // empty slot
	putIndexRecord(index, 1, 1, 0)                      // HasTransitions probes i+sym=1
	putIndexRecord(index, 2, 1, uint32(TargetTable))    // Next follows i+1+sym=2, redirects into the transition table

	trans := make([]byte, 2*transitionRecordSize)
	putTransitionRecord(trans, 0, 1, 1, uint32(TargetTable)+1, 0.25) // arc on 'a', real target is the final row below
	putTransitionRecord(trans, 1, uint16(NoSymbol), uint16(NoSymbol), 0, 0.75)

	buf := buildFlatTransducer(t, true, keys, index, 3, trans, 2)
	tr, err := NewTransducer(buf)
	require.NoError(t, err)

	st, next, ok := tr.FindNonEpsilon(0, 1)
	require.True(t, ok)
	require.EqualValues(t, 1, st.Output)
	require.EqualValues(t, TargetTable+1, next)
	require.True(t, tr.IsFinal(next))
}

func TestTransducerAllEpsilonsAndFlagsScansTransitionSide(t *testing.T) {
	keys := []string{"", "x"}

	trans := make([]byte, 2*transitionRecordSize)
	putTransitionRecord(trans, 0, 2, 2, 0, 1.0)                      // sibling arc on a different symbol, not a match
	putTransitionRecord(trans, 1, 0, 0, uint32(TargetTable)+5, 0.2) // epsilon arc, one row further along the list

	buf := buildFlatTransducer(t, true, keys, nil, 0, trans, 2)
	tr, err := NewTransducer(buf)
	require.NoError(t, err)

	arcs := tr.AllEpsilonsAndFlags(TargetTable)
	require.Len(t, arcs, 1)
	require.InDelta(t, 0.2, float32(arcs[0].Transition.Weight), 1e-6)
	require.EqualValues(t, TargetTable+5, arcs[0].Next)
}

func TestTransducerAllEpsilonsAndFlagsFindsEverySibling(t *testing.T) {
	keys := []string{"", "x"}

	trans := make([]byte, 4*transitionRecordSize)
	putTransitionRecord(trans, 0, 0, 0, uint32(TargetTable)+2, 0.1) // first epsilon arc
	putTransitionRecord(trans, 1, 0, 0, uint32(TargetTable)+3, 0.4) // second epsilon arc, same state
	putTransitionRecord(trans, 2, uint16(NoSymbol), uint16(NoSymbol), 0, 0)
	putTransitionRecord(trans, 3, uint16(NoSymbol), uint16(NoSymbol), 0, 0)

	index := make([]byte, indexRecordSize)
	putIndexRecord(index, 0, uint16(NoSymbol), uint32(NoTarget)) // empty slot
	buf := buildFlatTransducer(t, true, keys, index, 1, trans, 4)
	tr, err := NewTransducer(buf)
	require.NoError(t, err)

	arcs := tr.AllEpsilonsAndFlags(TargetTable)
	require.Len(t, arcs, 2, "every qualifying sibling arc at the state must be found, not just the first")
	require.InDelta(t, 0.1, float32(arcs[0].Transition.Weight), 1e-6)
	require.EqualValues(t, TargetTable+2, arcs[0].Next)
	require.InDelta(t, 0.4, float32(arcs[1].Transition.Weight), 1e-6)
	require.EqualValues(t, TargetTable+3, arcs[1].Next)
}
