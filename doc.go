// Package waverecipe reduces networks of multi-port RF components to a
// single equivalent component.
//
// Each component carries a scattering table: gains in dB for every ordered
// port pair, indexed by frequency and by any number of dependency axes
// (temperature, bias, ...). Components are placed on the nodes of a
// circuit and wired port to port; Synthesize walks the shortest path
// between every pair of free ports, adds the per-hop gains and returns one
// component whose ports are the circuit's free ports.
//
// Packages:
//
//	scattering/ : Value, Table and the select/rename/merge/expand operations
//	component/  : Component: ports, max powers, connections, CSV persistence
//	core/       : thread-safe wire graph (vertices, port-tagged edges)
//	bfs/, dfs/  : shortest paths and connected components over core.Graph
//	circuit/    : Circuit: topology bookkeeping, FreePorts, Synthesize
//	netlist/    : YAML circuit descriptions
//	chart/      : gain-versus-frequency plots (gonum/plot)
//	cmd/waverecipe : command-line front end
//
// Quick ASCII example:
//
//	in ──┤1 A 2├──┤1 B 2├── out      A: S21 = −3 dB, B: S21 = −5 dB
//
// synthesizes to a 2-port with S21 = −8 dB.
//
//	go install github.com/katalvlaran/waverecipe/cmd/waverecipe@latest
package waverecipe
