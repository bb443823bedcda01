package divvunspell

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func putIndexRecord(buf []byte, i int, inputSym uint16, rawUnion uint32) {
	off := i * indexRecordSize
	binary.LittleEndian.PutUint16(buf[off:off+2], inputSym)
	binary.LittleEndian.PutUint32(buf[off+4:off+8], rawUnion)
}

func TestIndexTableRegularRecord(t *testing.T) {
	buf := make([]byte, 2*indexRecordSize)
	putIndexRecord(buf, 0, 7, 42)

	it, err := NewIndexTable(buf, 2)
	require.NoError(t, err)

	sym, ok := it.InputSymbol(0)
	require.True(t, ok)
	require.EqualValues(t, 7, sym)

	target, ok := it.Target(0)
	require.True(t, ok)
	require.EqualValues(t, 42, target)

	require.False(t, it.IsFinal(0))
}

func TestIndexTableFinalRecord(t *testing.T) {
	buf := make([]byte, indexRecordSize)
	weightBits := math.Float32bits(1.5)
	putIndexRecord(buf, 0, uint16(NoSymbol), weightBits)

	it, err := NewIndexTable(buf, 1)
	require.NoError(t, err)

	require.True(t, it.IsFinal(0))
	w, ok := it.FinalWeight(0)
	require.True(t, ok)
	require.InDelta(t, float32(1.5), float32(w), 1e-6)
}

func TestIndexTableEmptySlot(t *testing.T) {
	buf := make([]byte, indexRecordSize)
	putIndexRecord(buf, 0, uint16(NoSymbol), uint32(NoTarget))

	it, err := NewIndexTable(buf, 1)
	require.NoError(t, err)
	require.False(t, it.IsFinal(0), "an empty slot (NoSymbol + NoTarget sentinel) is not final")
}

func TestIndexTableBoundsChecked(t *testing.T) {
	buf := make([]byte, indexRecordSize)
	it, err := NewIndexTable(buf, 1)
	require.NoError(t, err)

	_, ok := it.InputSymbol(5)
	require.False(t, ok)
	require.False(t, it.IsFinal(5))
}

func TestNewIndexTableTooShort(t *testing.T) {
	_, err := NewIndexTable(make([]byte, 4), 1)
	require.Error(t, err)
}
