package divvunspell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPagedIndexTableAcrossChunks(t *testing.T) {
	const perChunk = 2
	chunk0 := make([]byte, perChunk*indexRecordSize)
	putIndexRecord(chunk0, 0, 1, 100)
	putIndexRecord(chunk0, 1, 2, 200)

	chunk1 := make([]byte, perChunk*indexRecordSize)
	putIndexRecord(chunk1, 0, 3, 300)

	pt, err := NewPagedIndexTable([][]byte{chunk0, chunk1}, perChunk, 3)
	require.NoError(t, err)
	require.EqualValues(t, 3, pt.Size())

	sym, ok := pt.InputSymbol(0)
	require.True(t, ok)
	require.EqualValues(t, 1, sym)

	sym, ok = pt.InputSymbol(2)
	require.True(t, ok)
	require.EqualValues(t, 3, sym)

	target, ok := pt.Target(2)
	require.True(t, ok)
	require.EqualValues(t, 300, target)

	_, ok = pt.InputSymbol(3)
	require.False(t, ok, "one-past-the-declared-size lookup is out of range")
}

func TestNewPagedIndexTableZeroChunk(t *testing.T) {
	_, err := NewPagedIndexTable(nil, 0, 0)
	require.Error(t, err)
}
