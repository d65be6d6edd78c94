// Package netlist describes a circuit in YAML: which component file each
// node loads and which ports are wired together.
//
//	components:
//	  - node: amp
//	    file: amp.csv
//	    maxPowers: [10, .inf]   # optional override of the file's MaxPowers
//	  - node: filter
//	    file: filter.csv
//	wires:
//	  - from: amp:2
//	    to: filter:1
//	frequencyPolicy: any       # any | all
//
// Relative file paths are resolved against the directory handed to Build.
package netlist

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/waverecipe/circuit"
	"github.com/katalvlaran/waverecipe/component"
)

// Sentinel errors for netlist decoding and building.
var (
	// ErrEndpoint indicates a wire endpoint that is not "node:port".
	ErrEndpoint = errors.New("netlist: malformed endpoint")

	// ErrDuplicateNode indicates a node listed twice.
	ErrDuplicateNode = errors.New("netlist: duplicate node")

	// ErrMissingField indicates a component entry without node or file.
	ErrMissingField = errors.New("netlist: missing field")
)

// Netlist is the decoded document.
type Netlist struct {
	Components      []ComponentSpec `yaml:"components"`
	Wires           []WireSpec      `yaml:"wires"`
	FrequencyPolicy string          `yaml:"frequencyPolicy,omitempty"`
}

// ComponentSpec places the component stored in File at node Node.
type ComponentSpec struct {
	Node      string    `yaml:"node"`
	File      string    `yaml:"file"`
	MaxPowers []float64 `yaml:"maxPowers,omitempty"`
}

// WireSpec joins two "node:port" endpoints.
type WireSpec struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Parse decodes a netlist; unknown keys are rejected.
func Parse(r io.Reader) (*Netlist, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var n Netlist
	if err := dec.Decode(&n); err != nil {
		if errors.Is(err, io.EOF) {
			return &n, nil
		}
		return nil, fmt.Errorf("netlist: %w", err)
	}

	return &n, nil
}

// Load reads and decodes the netlist at path.
func Load(path string) (*Netlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	n, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return n, nil
}

// Encode writes n as YAML.
func (n *Netlist) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return err
	}

	return enc.Close()
}

// ParseEndpoint splits "node:port". The node may itself contain colons;
// the port is everything after the last one.
func ParseEndpoint(s string) (circuit.Port, error) {
	i := strings.LastIndexByte(s, ':')
	if i <= 0 || i == len(s)-1 {
		return circuit.Port{}, fmt.Errorf("%w: %q", ErrEndpoint, s)
	}
	port, err := strconv.Atoi(s[i+1:])
	if err != nil || port < 1 {
		return circuit.Port{}, fmt.Errorf("%w: %q", ErrEndpoint, s)
	}

	return circuit.Port{Node: strings.TrimSpace(s[:i]), Port: port}, nil
}

// Build loads every component (relative paths against baseDir), adds them
// to a new circuit and applies the wires. The netlist's frequency policy
// is applied before opts, so opts win.
func (n *Netlist) Build(baseDir string, opts ...circuit.Option) (*circuit.Circuit, error) {
	if n.FrequencyPolicy != "" {
		p, err := circuit.ParseFrequencyPolicy(n.FrequencyPolicy)
		if err != nil {
			return nil, err
		}
		opts = append([]circuit.Option{circuit.WithFrequencyPolicy(p)}, opts...)
	}
	c, err := circuit.New(opts...)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(n.Components))
	for i, cs := range n.Components {
		if cs.Node == "" || cs.File == "" {
			return nil, fmt.Errorf("%w: components[%d] needs node and file", ErrMissingField, i)
		}
		if seen[cs.Node] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, cs.Node)
		}
		seen[cs.Node] = true

		path := cs.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		comp, err := component.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("netlist: node %q: %w", cs.Node, err)
		}
		if cs.MaxPowers != nil {
			if err = comp.SetMaxPowers(cs.MaxPowers); err != nil {
				return nil, fmt.Errorf("netlist: node %q: %w", cs.Node, err)
			}
		}
		if err = c.AddComponent(cs.Node, comp); err != nil {
			return nil, err
		}
	}

	for i, w := range n.Wires {
		from, err := ParseEndpoint(w.From)
		if err != nil {
			return nil, fmt.Errorf("wires[%d].from: %w", i, err)
		}
		to, err := ParseEndpoint(w.To)
		if err != nil {
			return nil, fmt.Errorf("wires[%d].to: %w", i, err)
		}
		if err = c.Connect(from.Node, from.Port, to.Node, to.Port); err != nil {
			return nil, fmt.Errorf("wires[%d]: %w", i, err)
		}
	}

	return c, nil
}
