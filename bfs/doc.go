// Package bfs provides breadth-first search over a core.Graph, returning
// hop-count shortest-path distances, parent links, and visit order.
//
// What
//
//   - Explore vertices in non-decreasing distance (wire count) from a start vertex.
//   - BFSResult carries Order, Depth and Parent; PathTo rebuilds a path.
//   - ShortestPath(g, from, to) stops as soon as the destination is dequeued.
//   - Cancellation via WithContext; circuit synthesis passes its context down.
//
// Why
//
//	Circuit synthesis walks the fewest-hop chain of components between two
//	free ports. Wires are unweighted, so BFS is the exact shortest-path search.
//
// Determinism
//
//	core.NeighborIDs returns IDs sorted lexicographically and BFS enqueues them
//	in that order, so among equal-length paths the same one is always chosen.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Usage
//
//	path, err := bfs.ShortestPath(g, "amp", "filter")
//	if errors.Is(err, bfs.ErrNoPath) {
//		// vertices live in different connected components
//	}
//
// Errors
//
//   - ErrGraphNil             if the graph pointer is nil.
//   - ErrStartVertexNotFound  if the start vertex does not exist.
//   - ErrNeighbors            if core.NeighborIDs fails for any vertex.
//   - ErrNoPath               if the destination is unreachable.
//   - ctx.Err()               if the context is done.
package bfs
