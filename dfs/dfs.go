// Package dfs implements depth-first search (single-source and forest) on core.Graph.
//
// Key features:
//   - DFS(g, startID, opts...): traverse from a root or the full forest via WithFullTraversal
//   - Components(g): connected components, each sorted, ordered by smallest member
//   - Cancellation via context.Context
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V) for the explicit stack and metadata maps.
package dfs

import (
	"fmt"

	"github.com/katalvlaran/waverecipe/core"
)

// dfsWalker encapsulates state during DFS.
type dfsWalker struct {
	graph *core.Graph
	opts  DFSOptions
	res   *DFSResult
}

// DFS performs depth-first search on graph g. With WithFullTraversal it
// covers all components and startID is ignored; otherwise it starts only
// from startID.
func DFS(g *core.Graph, startID string, opts ...Option) (*DFSResult, error) {
	// 1. Validate input graph
	if g == nil {
		return nil, ErrGraphNil
	}

	// 2. Apply options
	dopts := DefaultOptions()
	for _, fn := range opts {
		fn(&dopts)
	}

	// 3. Single-source mode: verify startID
	if !dopts.FullTraversal && !g.HasVertex(startID) {
		return nil, ErrStartVertexNotFound
	}

	vertices := g.Vertices()
	w := &dfsWalker{
		graph: g,
		opts:  dopts,
		res: &DFSResult{
			Order:  make([]string, 0, len(vertices)),
			Parent: make(map[string]string, len(vertices)),
			Root:   make(map[string]string, len(vertices)),
		},
	}

	// 4. Traverse: forest or single tree
	if !dopts.FullTraversal {
		return w.res, w.traverse(startID)
	}
	for _, v := range vertices {
		if !w.res.Visited(v) {
			if err := w.traverse(v); err != nil {
				return w.res, err
			}
		}
	}

	return w.res, nil
}

// traverse explores the tree rooted at root with an explicit stack so deep
// chains of components cannot exhaust the goroutine stack.
func (w *dfsWalker) traverse(root string) error {
	w.res.Roots = append(w.res.Roots, root)
	stack := []string{root}
	w.res.Root[root] = root

	for len(stack) > 0 {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		w.res.Order = append(w.res.Order, id)

		nbs, err := w.graph.NeighborIDs(id)
		if err != nil {
			return fmt.Errorf("dfs: NeighborIDs(%q): %w", id, err)
		}
		// Push in reverse so the lexicographically smallest neighbor is explored first.
		for i := len(nbs) - 1; i >= 0; i-- {
			nid := nbs[i]
			if w.res.Visited(nid) {
				continue
			}
			w.res.Root[nid] = root
			w.res.Parent[nid] = id
			stack = append(stack, nid)
		}
	}

	return nil
}
