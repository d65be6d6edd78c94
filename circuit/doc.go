// Package circuit wires components into a topology and reduces it to a
// single equivalent component.
//
// Nodes are string IDs, each owning exactly one component.Component; wires
// join one port of a node to one port of another and are stored in a
// core.Graph (no self-wires, at most one wire per node pair, no weights).
// Connect and Disconnect keep the components' connection lists in step with
// the graph, and RemoveComponent tears a node's connections down on both
// sides before dropping it.
//
// Synthesize numbers the free ports (FreePorts order, node ID then port) as
// the external ports of the result, walks the shortest path between every
// pair of free ports on distinct nodes and adds the per-hop gains in dB.
// Dependency axes met along the way are folded into the result by
// expanding it over their values. Two free ports of the same node are never
// reduced against each other; a single-node circuit reduces to a copy of
// its component.
//
// ResultFrequencies decides which frequency rows the result carries; see
// FrequencyPolicy.
//
// Errors:
//
//	ErrNodeNotFound         - unknown node.
//	ErrEdgeNotFound         - no wire between the two nodes.
//	ErrUnsupportedOperation - weighted wire requested.
//	ErrDisconnectedCircuit  - more than one connected component.
//	ErrEmptyCircuit         - nothing to synthesize.
//	ErrPortInUse            - port already wired.
//	ErrComponentInUse       - component registered under another node.
package circuit
