// Package dfs defines types and options for depth-first search traversal,
// including cancellation and full-graph (forest) traversal.
package dfs

import (
	"context"
	"errors"
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed to DFS or Components.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartVertexNotFound indicates that the specified start vertex ID
	// does not exist in the graph.
	ErrStartVertexNotFound = errors.New("dfs: start vertex not found")
)

// Option configures optional behavior of DFS traversal.
type Option func(*DFSOptions)

// DFSOptions holds configurable parameters for DFS traversal.
type DFSOptions struct {
	// Ctx allows cancellation or timeouts; defaults to context.Background().
	Ctx context.Context

	// FullTraversal, if true, runs DFS from every unvisited vertex in
	// lexicographic order, covering disconnected components.
	FullTraversal bool
}

// DefaultOptions returns a background context and single-source mode.
func DefaultOptions() DFSOptions {
	return DFSOptions{Ctx: context.Background()}
}

// WithContext sets the Context for DFS traversal.
// Passing a nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *DFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithFullTraversal makes DFS restart from each unvisited vertex.
func WithFullTraversal() Option {
	return func(o *DFSOptions) {
		o.FullTraversal = true
	}
}

// DFSResult captures the outcome of a depth-first traversal.
type DFSResult struct {
	// Order records vertices in discovery sequence (pre-order).
	Order []string

	// Parent maps each vertex ID to the vertex from which it was first discovered.
	// Tree roots do not appear in this map.
	Parent map[string]string

	// Root maps each visited vertex to the root of its DFS tree. In an
	// undirected graph two vertices share a root iff they are connected.
	Root map[string]string

	// Roots lists tree roots in the order they were started.
	Roots []string
}

// Visited reports whether id was reached during the traversal.
func (r *DFSResult) Visited(id string) bool {
	_, ok := r.Root[id]
	return ok
}
