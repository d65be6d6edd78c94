// Package core defines the topology Graph, Vertex and Edge types used by
// circuits, and provides thread-safe primitives for building and querying them.
//
// Errors:
//
//	ErrEmptyVertexID       - vertex ID is the empty string.
//	ErrVertexNotFound      - requested vertex does not exist.
//	ErrEdgeNotFound        - requested edge does not exist.
//	ErrBadPort             - a wire endpoint names a port below 1.
//	ErrLoopNotAllowed      - self-wire.
//	ErrMultiEdgeNotAllowed - second wire between the same two vertices.
package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrBadPort indicates a wire endpoint with a port number below 1.
	ErrBadPort = errors.New("core: port number must be positive")

	// ErrLoopNotAllowed indicates a self-wire was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel wire was attempted.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")
)

// Vertex represents a circuit node in the graph.
type Vertex struct {
	// ID is the unique identifier for this Vertex.
	ID string
}

// Edge is an undirected wire between two vertices.
//
// From/To record insertion order only; traversal ignores it. FromPort and
// ToPort are the local port numbers joined at each endpoint.
type Edge struct {
	// ID uniquely identifies this edge in the Graph ("w1", "w2", …).
	ID string

	// From is the vertex passed first to AddEdge.
	From string

	// FromPort is the local port on From.
	FromPort int

	// To is the vertex passed second to AddEdge.
	To string

	// ToPort is the local port on To.
	ToPort int

	// seq orders edges by insertion (IDs compare lexicographically, "w10" < "w2").
	seq uint64
}

// Other returns the endpoint opposite to id, or "" if id is not an endpoint.
func (e *Edge) Other(id string) string {
	switch id {
	case e.From:
		return e.To
	case e.To:
		return e.From
	}

	return ""
}

// PortOf returns the local port that this wire occupies on vertex id,
// or 0 if id is not an endpoint.
func (e *Edge) PortOf(id string) int {
	switch id {
	case e.From:
		return e.FromPort
	case e.To:
		return e.ToPort
	}

	return 0
}

// Graph is the undirected in-memory topology graph. It holds at most one
// wire between any two vertices and never a self-wire.
//
// muVert protects the vertices map; muEdgeAdj protects the edges map and
// adjacencyList. nextEdgeID is an atomic counter for unique Edge.ID generation.
type Graph struct {
	muVert    sync.RWMutex // guards vertices
	muEdgeAdj sync.RWMutex // guards edges and adjacency

	// Storage
	nextEdgeID uint64             // atomic edge ID generator
	vertices   map[string]*Vertex // vertex ID → Vertex
	edges      map[string]*Edge   // edge ID → Edge

	// adjacencyList[u][v][Edge.ID] = struct{}{}, mirrored for every edge.
	adjacencyList map[string]map[string]map[string]struct{}
}

// NewGraph creates an empty Graph.
// Complexity: O(1)
func NewGraph() *Graph {
	return &Graph{
		vertices:      make(map[string]*Vertex),
		edges:         make(map[string]*Edge),
		adjacencyList: make(map[string]map[string]map[string]struct{}),
	}
}
