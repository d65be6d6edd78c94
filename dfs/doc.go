// Package dfs implements depth-first traversal of a core.Graph and the
// connected-component split built on it.
//
// What:
//
//   - DFS: explores as far as possible along each branch before
//     backtracking, single-source or over the whole forest
//     (WithFullTraversal). Supports cancellation (WithContext).
//   - Components: groups vertices by the DFS tree that reached them. A
//     circuit can only be synthesized when this returns exactly one group.
//
// Determinism:
//
//	Forest roots are taken from core.Vertices() (lexicographic) and neighbors
//	from core.NeighborIDs() (lexicographic), so Order, Roots and Components
//	are reproducible for a fixed graph.
//
// Errors:
//
//   - ErrGraphNil             if g is nil.
//   - ErrStartVertexNotFound  if startID is missing in single-source mode.
//   - ctx.Err()               if ctx is done.
package dfs
