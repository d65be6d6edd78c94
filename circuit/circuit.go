package circuit

import (
	"fmt"
	"log"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/katalvlaran/waverecipe/component"
	"github.com/katalvlaran/waverecipe/core"
)

// Circuit is a topology of components: every node owns exactly one
// Component and every wire joins one port of a node to one port of another.
//
// A Circuit is not safe for concurrent use; callers serialise mutation.
type Circuit struct {
	graph  *core.Graph
	nodes  map[string]*component.Component // node ID → owned component
	owners map[string]string               // component ID → node ID

	free  []Port
	dirty bool

	paths  *lru.Cache[string, []string] // "from\x00to" → shortest path
	logger *log.Logger
	policy FrequencyPolicy
}

// New returns an empty circuit.
func New(opts ...Option) (*Circuit, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	paths, err := lru.New[string, []string](o.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOptionViolation, err)
	}

	return &Circuit{
		graph:  core.NewGraph(),
		nodes:  make(map[string]*component.Component),
		owners: make(map[string]string),
		dirty:  true,
		paths:  paths,
		logger: o.logger,
		policy: o.policy,
	}, nil
}

// Policy returns the ResultFrequencies policy in effect.
func (c *Circuit) Policy() FrequencyPolicy { return c.policy }

// AddComponent registers comp under node. An existing registration of node
// is removed first, tearing down all of its connections. A component new to
// the circuit must arrive with every port free (ErrPortInUse otherwise).
func (c *Circuit) AddComponent(node string, comp *component.Component) error {
	if node == "" {
		return core.ErrEmptyVertexID
	}
	if comp == nil {
		return ErrNilComponent
	}
	owner, owned := c.owners[comp.ID()]
	if owned && owner != node {
		return fmt.Errorf("%w: %s owned by %q", ErrComponentInUse, comp.ID(), owner)
	}
	if !owned {
		for p := 1; p <= comp.Ports(); p++ {
			if !comp.IsFree(p) {
				return fmt.Errorf("%w: %s port %d is wired outside the circuit", ErrPortInUse, comp.ID(), p)
			}
		}
	}
	if _, ok := c.nodes[node]; ok {
		if err := c.RemoveComponent(node); err != nil {
			return err
		}
		c.logger.Printf("circuit: node %q replaced", node)
	}
	if err := c.graph.AddVertex(node); err != nil {
		return err
	}
	c.nodes[node] = comp
	c.owners[comp.ID()] = node
	c.touch()

	return nil
}

// RemoveComponent disconnects every port connection of node's component
// (on both sides), then drops the node and its wires.
func (c *Circuit) RemoveComponent(node string) error {
	comp, ok := c.nodes[node]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, node)
	}

	// resolve every peer before changing anything
	for p := 1; p <= comp.Ports(); p++ {
		for _, e := range comp.Connections(p) {
			if _, err := c.peer(e); err != nil {
				return err
			}
		}
	}
	for p := 1; p <= comp.Ports(); p++ {
		for conns := comp.Connections(p); len(conns) > 0; conns = comp.Connections(p) {
			peer, _ := c.peer(conns[0])
			if err := comp.Disconnect(p, peer, conns[0].Port); err != nil {
				return err
			}
		}
	}

	if err := c.graph.RemoveVertex(node); err != nil {
		return err
	}
	delete(c.nodes, node)
	delete(c.owners, comp.ID())
	c.touch()

	return nil
}

// Connect wires portA of nodeA to portB of nodeB and records the
// connection on both components. Self-wires and a second wire between the
// same two nodes are rejected by the topology graph.
func (c *Circuit) Connect(nodeA string, portA int, nodeB string, portB int) error {
	a, err := c.Component(nodeA)
	if err != nil {
		return err
	}
	b, err := c.Component(nodeB)
	if err != nil {
		return err
	}
	if portA < 1 || portA > a.Ports() {
		return fmt.Errorf("%w: %s", component.ErrPortOutOfRange, Port{nodeA, portA})
	}
	if portB < 1 || portB > b.Ports() {
		return fmt.Errorf("%w: %s", component.ErrPortOutOfRange, Port{nodeB, portB})
	}
	if !a.IsFree(portA) {
		return fmt.Errorf("%w: %s", ErrPortInUse, Port{nodeA, portA})
	}
	if !b.IsFree(portB) {
		return fmt.Errorf("%w: %s", ErrPortInUse, Port{nodeB, portB})
	}

	eid, err := c.graph.AddEdge(nodeA, portA, nodeB, portB)
	if err != nil {
		return fmt.Errorf("circuit: connect %s to %s: %w", Port{nodeA, portA}, Port{nodeB, portB}, err)
	}
	if err = a.Connect(portA, b, portB); err != nil {
		_ = c.graph.RemoveEdge(eid)
		return err
	}
	c.touch()

	return nil
}

// Disconnect removes the wire between nodeA and nodeB and the matching
// component connections.
func (c *Circuit) Disconnect(nodeA, nodeB string) error {
	a, err := c.Component(nodeA)
	if err != nil {
		return err
	}
	b, err := c.Component(nodeB)
	if err != nil {
		return err
	}
	e, err := c.graph.EdgeBetween(nodeA, nodeB)
	if err != nil {
		return fmt.Errorf("%w: %q - %q", ErrEdgeNotFound, nodeA, nodeB)
	}
	if err = a.Disconnect(e.PortOf(nodeA), b, e.PortOf(nodeB)); err != nil {
		return err
	}
	if err = c.graph.RemoveEdge(e.ID); err != nil {
		return err
	}
	c.touch()

	return nil
}

// AddWeightedEdge always fails: wires carry no weight.
func (c *Circuit) AddWeightedEdge(nodeA string, portA int, nodeB string, portB int, weight float64) error {
	return fmt.Errorf("%w: weighted wire %s to %s (weight %g)",
		ErrUnsupportedOperation, Port{nodeA, portA}, Port{nodeB, portB}, weight)
}

// Component returns the component owned by node.
func (c *Circuit) Component(node string) (*component.Component, error) {
	comp, ok := c.nodes[node]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, node)
	}

	return comp, nil
}

// Components returns a copy of the node → component map.
func (c *Circuit) Components() map[string]*component.Component {
	out := make(map[string]*component.Component, len(c.nodes))
	for n, comp := range c.nodes {
		out[n] = comp
	}

	return out
}

// Nodes returns the node IDs in ascending order.
func (c *Circuit) Nodes() []string { return c.graph.Vertices() }

// Wires returns every wire in insertion order.
func (c *Circuit) Wires() []Wire {
	edges := c.graph.Edges()
	out := make([]Wire, len(edges))
	for i, e := range edges {
		out[i] = Wire{ID: e.ID, A: Port{e.From, e.FromPort}, B: Port{e.To, e.ToPort}}
	}

	return out
}

// FreePorts returns the ports without a live connection, ordered by node ID
// then port number. The result is cached until the next mutation.
func (c *Circuit) FreePorts() []Port {
	if c.dirty {
		c.free = c.free[:0]
		for _, node := range c.graph.Vertices() {
			comp := c.nodes[node]
			for p := 1; p <= comp.Ports(); p++ {
				if comp.IsFree(p) {
					c.free = append(c.free, Port{Node: node, Port: p})
				}
			}
		}
		c.dirty = false
	}

	return append([]Port(nil), c.free...)
}

// ResultFrequencies returns, in ascending order, the frequencies the
// circuit's components have in common under the circuit's policy. A
// single-node circuit keeps all of its frequencies.
func (c *Circuit) ResultFrequencies() []float64 {
	nodes := c.graph.Vertices()
	if len(nodes) == 0 {
		return nil
	}

	sets := make([]map[float64]struct{}, len(nodes))
	for i, n := range nodes {
		sets[i] = make(map[float64]struct{})
		for _, f := range c.nodes[n].Frequencies() {
			sets[i][f] = struct{}{}
		}
	}

	last := len(nodes) - 1
	var out []float64
	for f := range sets[last] {
		if c.keepFrequency(f, sets[:last]) {
			out = append(out, f)
		}
	}
	sort.Float64s(out)

	return out
}

func (c *Circuit) keepFrequency(f float64, others []map[float64]struct{}) bool {
	if len(others) == 0 {
		return true
	}
	found := 0
	for _, s := range others {
		if _, ok := s[f]; ok {
			found++
		}
	}
	if c.policy == AllComponents {
		return found == len(others)
	}

	return found > 0
}

// peer resolves a connection endpoint to the component it names.
func (c *Circuit) peer(e component.Endpoint) (*component.Component, error) {
	node, ok := c.owners[e.Component]
	if !ok {
		return nil, fmt.Errorf("%w: peer component %s is not part of the circuit", ErrNodeNotFound, e.Component)
	}

	return c.nodes[node], nil
}

// touch invalidates every derived value after a mutation.
func (c *Circuit) touch() {
	c.dirty = true
	c.paths.Purge()
}
