package divvunspell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootNode(t *testing.T) {
	n := rootNode(3, 7)
	require.EqualValues(t, 0, n.LexiconState)
	require.EqualValues(t, 0, n.MutatorState)
	require.Equal(t, 0, n.InputPos)
	require.Nil(t, n.Output)
	require.Equal(t, []int16{0, 0, 0}, n.FlagState)
	require.EqualValues(t, 0, n.Weight)
	require.EqualValues(t, 7, n.seq)
}

func TestAppendOutputSkipsEpsilon(t *testing.T) {
	out := appendOutput(nil, 0)
	require.Empty(t, out)

	out = appendOutput(out, 5)
	require.Len(t, out, 1)
	require.EqualValues(t, 5, out[0].Symbol)
	require.False(t, out[0].IsLiteral)

	out = appendOutput(out, 0)
	require.Len(t, out, 1, "epsilon never grows the output")
}

func TestAppendOutputDoesNotAliasPriorSlice(t *testing.T) {
	base := appendOutput(nil, 1)
	a := appendOutput(base, 2)
	b := appendOutput(base, 3)

	require.Len(t, a, 2)
	require.Len(t, b, 2)
	require.EqualValues(t, 2, a[1].Symbol)
	require.EqualValues(t, 3, b[1].Symbol, "appending from the same base must not mutate the shared prefix")
}

func TestAppendLiteral(t *testing.T) {
	out := appendLiteral(nil, 'x')
	require.Len(t, out, 1)
	require.True(t, out[0].IsLiteral)
	require.Equal(t, 'x', out[0].Literal)

	out = appendLiteral(out, 'y')
	require.Len(t, out, 2)
	require.Equal(t, 'y', out[1].Literal)
}

func TestRenderOutputMixedUnits(t *testing.T) {
	keyTable := []string{"", "c", "a", "t"}
	out := appendOutput(nil, 1)
	out = appendLiteral(out, 'A')
	out = appendOutput(out, 3)
	out = appendOutput(out, 0) // epsilon, skipped

	require.Equal(t, "cAt", renderOutput(out, keyTable))
}

func TestRenderOutputSkipsEmptyKey(t *testing.T) {
	keyTable := []string{"", "@0.FEAT.VAL@"}
	out := []OutputUnit{{Symbol: 0}}
	out = appendOutput(out, 1)

	require.Equal(t, "@0.FEAT.VAL@", renderOutput(out, keyTable))
}

func TestRenderOutputSymbolOutOfRange(t *testing.T) {
	keyTable := []string{""}
	out := []OutputUnit{{Symbol: 99}}
	require.Equal(t, "", renderOutput(out, keyTable))
}
