package circuit

import (
	"context"
	"fmt"
	"sort"

	"github.com/katalvlaran/waverecipe/bfs"
	"github.com/katalvlaran/waverecipe/component"
	"github.com/katalvlaran/waverecipe/dfs"
	"github.com/katalvlaran/waverecipe/scattering"
)

// Synthesize reduces the circuit to one equivalent Component seen from its
// free ports.
//
// Implementation:
//   - Stage 1: Require exactly one connected component (ErrEmptyCircuit,
//     ErrDisconnectedCircuit). The result has Σports − 2×wires ports.
//   - Stage 2: Seed the result table with one row per ResultFrequencies value
//     and every gain column Missing.
//   - Stage 3: Number the free ports 1..N in FreePorts order (common ports).
//   - Stage 4: For every ordered pair of free ports on distinct nodes, walk the
//     shortest path from the in-port's node to the out-port's node. At each hop
//     select Gain(localOut, localIn) with Frequency and the node's dependency
//     columns, renamed to Gain(commonOut, commonIn); expand the result over any
//     dependency it lacks; add each matched hop value (dB) into the running
//     total of its result row.
//
// A single-node circuit reduces to a copy of its component's table.
//
// Synthesize never mutates the circuit or its components, and returns no
// partial result on error.
//
// Complexity: O(P² · L · R) for P free ports, path length L and R result rows.
func (c *Circuit) Synthesize() (*component.Component, error) {
	return c.SynthesizeContext(context.Background())
}

// SynthesizeContext is Synthesize with cancellation: ctx is checked before
// every port pair and by the underlying graph traversals.
func (c *Circuit) SynthesizeContext(ctx context.Context) (*component.Component, error) {
	nodes := c.graph.Vertices()
	if len(nodes) == 0 {
		return nil, ErrEmptyCircuit
	}
	comps, err := dfs.Components(c.graph, dfs.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if len(comps) > 1 {
		return nil, fmt.Errorf("%w: %d connected components", ErrDisconnectedCircuit, len(comps))
	}

	total := 0
	for _, n := range nodes {
		total += c.nodes[n].Ports()
	}
	ports := total - 2*c.graph.EdgeCount()
	result, err := component.New(ports)
	if err != nil {
		return nil, fmt.Errorf("circuit: synthesize: %w", err)
	}

	if len(nodes) == 1 {
		if err = result.AssignTable(c.nodes[nodes[0]].Table()); err != nil {
			return nil, err
		}
		c.logger.Printf("circuit: synthesized single node %q as a %d-port", nodes[0], ports)
		return result, nil
	}

	s := &synthesis{
		circuit: c,
		acc:     seedTable(c.ResultFrequencies(), ports),
		free:    c.FreePorts(),
	}
	if err = s.run(ctx); err != nil {
		return nil, err
	}
	if err = result.AssignTable(s.acc); err != nil {
		return nil, err
	}
	c.logger.Printf("circuit: synthesized %d nodes into a %d-port (%d rows, %d port pairs)",
		len(nodes), ports, s.acc.Len(), s.pairs)

	return result, nil
}

// synthesis holds the accumulator of one Synthesize call.
type synthesis struct {
	circuit *Circuit
	acc     *scattering.Table
	free    []Port // index i is common port i+1
	pairs   int
}

// hop is one node on a path with the local ports the signal enters and leaves by.
type hop struct {
	node    string
	in, out int
}

func seedTable(freqs []float64, ports int) *scattering.Table {
	acc := scattering.New(append([]string{scattering.FrequencyHeader}, scattering.GainHeaders(ports)...)...)
	row := make([]scattering.Value, len(acc.Columns()))
	for _, f := range freqs {
		row[0] = scattering.Number(f)
		_ = acc.AppendRow(row...)
	}

	return acc
}

func (s *synthesis) run(ctx context.Context) error {
	for commonIn, in := range s.free {
		for commonOut, out := range s.free {
			if in.Node == out.Node {
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			hops, err := s.circuit.route(ctx, in, out)
			if err != nil {
				return err
			}
			target := scattering.GainHeader(commonOut+1, commonIn+1)
			for _, h := range hops {
				if err = s.accumulate(h, target); err != nil {
					return fmt.Errorf("circuit: %s → %s at %q: %w", in, out, h.node, err)
				}
			}
			s.pairs++
		}
	}

	return nil
}

// accumulate adds hop h's Gain(h.out, h.in) into the target column.
func (s *synthesis) accumulate(h hop, target string) error {
	table := s.circuit.nodes[h.node].Table()
	deps := scattering.Dependencies(table)
	local := scattering.GainHeader(h.out, h.in)

	sel, err := table.Select(scattering.KeepColumns(append([]string{scattering.FrequencyHeader, local}, deps...)...))
	if err != nil {
		return err
	}
	if sel, err = sel.Rename(local, target); err != nil {
		return err
	}

	sort.Strings(deps)
	for _, d := range deps {
		if s.acc.HasColumn(d) {
			continue
		}
		values, err := sel.Distinct(d)
		if err != nil {
			return err
		}
		if s.acc, err = s.acc.ExpandColumn(d, values); err != nil {
			return err
		}
	}

	keys := append([]string{scattering.FrequencyHeader}, deps...)
	matches, err := s.acc.Lookup(sel, keys)
	if err != nil {
		return err
	}
	for r, m := range matches {
		if m < 0 {
			continue
		}
		v, err := sel.Get(target, m)
		if err != nil {
			return err
		}
		sum, err := s.acc.Get(target, r)
		if err != nil {
			return err
		}
		if err = s.acc.Set(target, r, scattering.Add(sum, v)); err != nil {
			return err
		}
	}

	return nil
}

// route returns the hops of the shortest path from in's node to out's node.
func (c *Circuit) route(ctx context.Context, in, out Port) ([]hop, error) {
	path, err := c.path(ctx, in.Node, out.Node)
	if err != nil {
		return nil, err
	}

	hops := make([]hop, len(path))
	for i, node := range path {
		hops[i] = hop{node: node, in: in.Port, out: out.Port}
		if i > 0 {
			e, err := c.graph.EdgeBetween(path[i-1], node)
			if err != nil {
				return nil, err
			}
			hops[i].in = e.PortOf(node)
		}
		if i < len(path)-1 {
			e, err := c.graph.EdgeBetween(node, path[i+1])
			if err != nil {
				return nil, err
			}
			hops[i].out = e.PortOf(node)
		}
	}

	return hops, nil
}

// path returns the cached shortest path between two nodes.
func (c *Circuit) path(ctx context.Context, from, to string) ([]string, error) {
	key := from + "\x00" + to
	if p, ok := c.paths.Get(key); ok {
		return p, nil
	}
	p, err := bfs.ShortestPath(c.graph, from, to, bfs.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	c.paths.Add(key, p)

	return p, nil
}
