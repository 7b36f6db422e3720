package chainweb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func triangleGraph() *ChainGraph {
	return NewChainGraph([][2]ChainID{
		{"A", "B"},
		{"B", "C"},
		{"A", "C"},
	})
}

func TestShortestPathSameChainIsEmpty(t *testing.T) {
	g := triangleGraph()
	path, err := g.ShortestPath("A", "A")
	require.NoError(t, err)
	require.Empty(t, path)
}

func TestShortestPathOneHop(t *testing.T) {
	g := triangleGraph()
	path, err := g.ShortestPath("B", "A")
	require.NoError(t, err)
	require.Equal(t, []ChainID{"A"}, path)
}

func TestShortestPathUnknownChain(t *testing.T) {
	g := triangleGraph()
	_, err := g.ShortestPath("A", "Z")
	require.Error(t, err)
	require.True(t, IsKind(err, KindInternalInvariantViolation))
}

func TestShortestPathDeterministicTieBreak(t *testing.T) {
	// A reaches D in two hops through either B or C; the deterministic
	// tie-break (lexicographic neighbor order) must always pick B.
	g := NewChainGraph([][2]ChainID{
		{"A", "B"},
		{"A", "C"},
		{"B", "D"},
		{"C", "D"},
	})
	path1, err := g.ShortestPath("A", "D")
	require.NoError(t, err)
	path2, err := g.ShortestPath("A", "D")
	require.NoError(t, err)
	require.Equal(t, path1, path2)
	require.Equal(t, []ChainID{"B", "D"}, path1)
}

func TestAdjacentIsSorted(t *testing.T) {
	g := triangleGraph()
	require.Equal(t, []ChainID{"B", "C"}, g.Adjacent("A"))
}
