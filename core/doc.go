// Package core provides the in-memory topology graph that backs a circuit:
// vertices are circuit node IDs and edges are wires that remember which
// local port of each endpoint they join.
//
// The Graph G = (V,E) is always undirected; a wire A:2 ─ B:1 can be walked
// in both directions. The orientation recorded at insertion (From/To) is kept
// only so the local port of each endpoint can be resolved:
//
//	e := &Edge{From: "A", FromPort: 2, To: "B", ToPort: 1}
//	e.PortOf("A") == 2, e.PortOf("B") == 1
//
// Behaviors:
//
//   - At most one wire between two vertices; self-wires are rejected
//   - Constant-time edge operations via nested maps:
//     adjacencyList[from][to][edgeID] = struct{}{}
//   - Collision-free atomic Edge.ID generation ("w1", "w2", …)
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency (muEdgeAdj)
//
// Determinism:
//
//	Vertices() and NeighborIDs() return IDs sorted lexicographically ascending;
//	Edges() and Neighbors() return edges sorted by insertion sequence. Every
//	algorithm built on top (bfs, dfs, circuit synthesis) inherits this order.
//
// Core Methods:
//
//	// Vertex lifecycle
//	AddVertex(id string) error         // O(1)
//	HasVertex(id string) bool          // O(1)
//	RemoveVertex(id string) error      // O(E)
//
//	// Edge lifecycle
//	AddEdge(from string, fromPort int, to string, toPort int) (edgeID string, err error) // O(1)
//	RemoveEdge(edgeID string) error    // O(1)
//	EdgeBetween(u, v string) (*Edge, error) // O(1)
//
//	// Query
//	Neighbors(id string) ([]*Edge, error)
//	NeighborIDs(id string) ([]string, error)
//	Vertices() []string
//	Edges() []*Edge
//	VertexCount() int
//	EdgeCount() int
//
// Errors:
//
//	ErrEmptyVertexID       – zero-length vertex ID
//	ErrVertexNotFound      – missing vertex
//	ErrEdgeNotFound        – missing edge
//	ErrBadPort             – port number below 1
//	ErrLoopNotAllowed      – self-wire
//	ErrMultiEdgeNotAllowed – second wire between the same two vertices
package core
