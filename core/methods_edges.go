// File: methods_edges.go
// Role: Wire lifecycle & queries: AddEdge/RemoveEdge/EdgeBetween/Edges/EdgeCount.
//
// Determinism:
//   - Edges() returns edges in insertion order.
//   - nextEdgeID() is monotonic and stable ("w" + decimal).
//
// Concurrency:
//   - Mutations under muEdgeAdj write lock.
//   - Read queries under muEdgeAdj read lock.
package core

import (
	"sort"
	"strconv"
	"sync/atomic"
)

// edgeIDPrefix is the textual prefix for wire identifiers ("w1", "w2", ...).
const edgeIDPrefix = 'w'

// AddEdge creates a new wire joining port fromPort of vertex from to port
// toPort of vertex to. Missing endpoints are created.
//
// Steps:
//  1. Validate IDs, ports, loops.
//  2. Ensure endpoints via AddVertex.
//  3. Lock muEdgeAdj, reject a second wire in either orientation.
//  4. Generate eid atomically, store the Edge, link adjacency both ways.
//
// Errors:
//   - ErrEmptyVertexID, ErrBadPort, ErrLoopNotAllowed, ErrMultiEdgeNotAllowed.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from string, fromPort int, to string, toPort int) (string, error) {
	// 1) Input validation
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if fromPort < 1 || toPort < 1 {
		return "", ErrBadPort
	}
	if from == to {
		return "", ErrLoopNotAllowed
	}

	// 2) Ensure vertices exist
	if err := g.AddVertex(from); err != nil {
		return "", err
	}
	if err := g.AddVertex(to); err != nil {
		return "", err
	}

	// 3) Insert edge under lock
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	// Adjacency is mirrored, so one lookup covers both orientations.
	if len(g.adjacencyList[from][to]) > 0 {
		return "", ErrMultiEdgeNotAllowed
	}

	seq, eid := nextEdgeID(g)
	e := &Edge{ID: eid, From: from, FromPort: fromPort, To: to, ToPort: toPort, seq: seq}

	g.edges[eid] = e
	ensureAdjacency(g, from, to)
	g.adjacencyList[from][to][eid] = struct{}{}
	ensureAdjacency(g, to, from)
	g.adjacencyList[to][from][eid] = struct{}{}

	return eid, nil
}

// RemoveEdge deletes one wire and its mirror.
//
// Errors:
//   - ErrEdgeNotFound: if eid is unknown.
//
// Complexity: O(1).
func (g *Graph) RemoveEdge(eid string) error {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	e, ok := g.edges[eid]
	if !ok {
		return ErrEdgeNotFound
	}
	delete(g.edges, eid)
	removeAdjacency(g, e)

	return nil
}

// EdgeBetween returns the wire joining u and v, regardless of the
// orientation it was inserted with. The returned *Edge is read-only.
//
// Errors:
//   - ErrEdgeNotFound: if no wire joins u and v.
//
// Complexity: O(1).
func (g *Graph) EdgeBetween(u, v string) (*Edge, error) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	for eid := range g.adjacencyList[u][v] {
		return g.edges[eid], nil
	}

	return nil, ErrEdgeNotFound
}

// Edges returns all wires in insertion order.
// Complexity: O(E log E).
func (g *Graph) Edges() []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sortBySeq(out)

	return out
}

// EdgeCount returns the total number of wires.
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// nextEdgeID reserves the next sequence number and renders it as "w" + decimal.
// Safe for concurrent callers; atomic.AddUint64 fetches the next number.
func nextEdgeID(g *Graph) (uint64, string) {
	n := atomic.AddUint64(&g.nextEdgeID, 1)
	buf := make([]byte, 0, 1+20) // "w" + up to 20 digits for uint64
	buf = append(buf, edgeIDPrefix)
	buf = strconv.AppendUint(buf, n, 10)

	return n, string(buf)
}

func sortBySeq(edges []*Edge) {
	sort.Slice(edges, func(i, j int) bool { return edges[i].seq < edges[j].seq })
}
