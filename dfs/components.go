package dfs

import (
	"sort"

	"github.com/katalvlaran/waverecipe/core"
)

// Components returns the connected components of g. Each component lists its
// vertex IDs in ascending order; components are ordered by their smallest ID.
// An empty graph has no components. Only WithContext is meaningful in opts.
//
// Complexity: O(V log V + E).
func Components(g *core.Graph, opts ...Option) ([][]string, error) {
	res, err := DFS(g, "", append([]Option{WithFullTraversal()}, opts...)...)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(res.Roots))
	out := make([][]string, 0, len(res.Roots))
	for _, root := range res.Roots {
		index[root] = len(out)
		out = append(out, nil)
	}
	for _, id := range res.Order {
		i := index[res.Root[id]]
		out[i] = append(out[i], id)
	}
	// Roots are started in lexicographic order, so each root is already its
	// component's smallest member and out is ordered; members still need sorting.
	for _, comp := range out {
		sort.Strings(comp)
	}

	return out, nil
}
