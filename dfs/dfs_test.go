package dfs_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/waverecipe/core"
	"github.com/katalvlaran/waverecipe/dfs"
)

// buildChain creates the chain N0 ─ N1 ─ … ─ N(n-1).
func buildChain(t *testing.T, n int) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for i := 0; i < n-1; i++ {
		_, err := g.AddEdge(fmt.Sprintf("N%03d", i), 2, fmt.Sprintf("N%03d", i+1), 1)
		require.NoError(t, err)
	}

	return g
}

func TestDFS_NilGraph(t *testing.T) {
	res, err := dfs.DFS(nil, "A")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)

	_, err = dfs.Components(nil)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)
}

func TestDFS_StartNotFound(t *testing.T) {
	res, err := dfs.DFS(core.NewGraph(), "X")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, dfs.ErrStartVertexNotFound)
}

func TestDFS_SingleSourceOrder(t *testing.T) {
	// A ─ B ─ D
	// └── C
	g := core.NewGraph()
	_, _ = g.AddEdge("A", 1, "B", 1)
	_, _ = g.AddEdge("A", 2, "C", 1)
	_, _ = g.AddEdge("B", 2, "D", 1)
	require.NoError(t, g.AddVertex("Z"))

	res, err := dfs.DFS(g, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D", "C"}, res.Order)
	assert.Equal(t, "B", res.Parent["D"])
	assert.False(t, res.Visited("Z"))
	assert.Equal(t, []string{"A"}, res.Roots)
}

func TestDFS_DeepChain(t *testing.T) {
	g := buildChain(t, 5000)
	res, err := dfs.DFS(g, "N000")
	require.NoError(t, err)
	assert.Len(t, res.Order, 5000)
}

func TestDFS_Cancellation(t *testing.T) {
	g := buildChain(t, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dfs.DFS(g, "N000", dfs.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = dfs.Components(g, dfs.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestComponents(t *testing.T) {
	g := core.NewGraph()
	assert.Empty(t, mustComponents(t, g))

	_, _ = g.AddEdge("B", 1, "A", 1)
	_, _ = g.AddEdge("Y", 1, "X", 1)
	_, _ = g.AddEdge("X", 2, "C", 1)
	require.NoError(t, g.AddVertex("M"))

	assert.Equal(t, [][]string{{"A", "B"}, {"C", "X", "Y"}, {"M"}}, mustComponents(t, g))

	_, _ = g.AddEdge("B", 2, "C", 2)
	_, _ = g.AddEdge("M", 1, "Y", 2)
	assert.Equal(t, [][]string{{"A", "B", "C", "M", "X", "Y"}}, mustComponents(t, g))
}

func mustComponents(t *testing.T, g *core.Graph) [][]string {
	t.Helper()
	comps, err := dfs.Components(g)
	require.NoError(t, err)

	return comps
}
