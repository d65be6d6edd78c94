package component

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/katalvlaran/waverecipe/scattering"
)

// Sentinel errors for component operations.
var (
	// ErrInvalidPortCount indicates a non-positive port count.
	ErrInvalidPortCount = errors.New("component: port count must be positive")

	// ErrPortCountMismatch indicates a max-power list whose length differs from the port count.
	ErrPortCountMismatch = errors.New("component: max power must be defined for each port")

	// ErrPortOutOfRange indicates a port number outside 1..Ports().
	ErrPortOutOfRange = errors.New("component: port out of range")

	// ErrNotConnected indicates a disconnect request for a connection that does not exist.
	ErrNotConnected = errors.New("component: ports are not connected")

	// ErrNilComponent indicates a nil peer.
	ErrNilComponent = errors.New("component: nil component")

	// ErrNoData indicates that no table row matches a lookup.
	ErrNoData = errors.New("component: no matching row")
)

// Endpoint names one port of a component. Components reference their peers
// through the peer's ID, never through a pointer.
type Endpoint struct {
	Component string
	Port      int
}

// Component is one multi-port RF element: its scattering table, the power
// ceiling of every port and the live connection list of every port.
type Component struct {
	id          string
	ports       int
	table       *scattering.Table
	maxPowers   []float64
	connections [][]Endpoint // connections[port-1]
}

// Option configures a Component at construction.
type Option func(*options)

type options struct {
	id        string
	maxPowers []float64
	hasPowers bool
}

// WithMaxPowers sets the per-port power ceiling; it must list one value per port.
func WithMaxPowers(values ...float64) Option {
	return func(o *options) {
		o.maxPowers = append([]float64(nil), values...)
		o.hasPowers = true
	}
}

// WithID overrides the generated component ID.
func WithID(id string) Option {
	return func(o *options) { o.id = id }
}

// New creates a component with ports ports, an empty table carrying the
// Frequency column and every gain column, unbounded max powers and no
// connections.
func New(ports int, opts ...Option) (*Component, error) {
	if ports <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPortCount, ports)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}

	c := &Component{
		id:          o.id,
		ports:       ports,
		table:       scattering.New(append([]string{scattering.FrequencyHeader}, scattering.GainHeaders(ports)...)...),
		maxPowers:   make([]float64, ports),
		connections: make([][]Endpoint, ports),
	}
	for i := range c.maxPowers {
		c.maxPowers[i] = math.Inf(1)
	}
	if o.hasPowers {
		if err := c.SetMaxPowers(o.maxPowers); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ID returns the opaque identifier peers use to reference this component.
func (c *Component) ID() string { return c.id }

// Ports returns the fixed port count.
func (c *Component) Ports() int { return c.ports }

// Table returns the scattering table. Callers must treat it as read-only;
// use AssignTable to change it.
func (c *Component) Table() *scattering.Table { return c.table }

// Dependencies lists the table's dependency columns.
func (c *Component) Dependencies() []string { return scattering.Dependencies(c.table) }

// MaxPowers returns a copy of the per-port power ceilings; +Inf is unbounded.
func (c *Component) MaxPowers() []float64 {
	return append([]float64(nil), c.maxPowers...)
}

// SetMaxPowers replaces the per-port power ceilings.
func (c *Component) SetMaxPowers(values []float64) error {
	if len(values) != c.ports {
		return fmt.Errorf("%w: got %d values for %d ports", ErrPortCountMismatch, len(values), c.ports)
	}
	c.maxPowers = append([]float64(nil), values...)

	return nil
}

// Connections returns a copy of the connection list of port, or nil when
// port is out of range.
func (c *Component) Connections(port int) []Endpoint {
	if port < 1 || port > c.ports {
		return nil
	}

	return append([]Endpoint(nil), c.connections[port-1]...)
}

// IsFree reports whether port has no live connection.
func (c *Component) IsFree(port int) bool {
	return port >= 1 && port <= c.ports && len(c.connections[port-1]) == 0
}

// Connect records the symmetric pair (c:selfPort ↔ peer:peerPort) on both
// components. It does not check whether either port is already in use.
func (c *Component) Connect(selfPort int, peer *Component, peerPort int) error {
	if err := c.checkPair(selfPort, peer, peerPort); err != nil {
		return err
	}
	c.connections[selfPort-1] = append(c.connections[selfPort-1], Endpoint{Component: peer.id, Port: peerPort})
	peer.connections[peerPort-1] = append(peer.connections[peerPort-1], Endpoint{Component: c.id, Port: selfPort})

	return nil
}

// Disconnect removes the symmetric pair recorded by Connect. Both sides are
// checked before either is changed.
func (c *Component) Disconnect(selfPort int, peer *Component, peerPort int) error {
	if err := c.checkPair(selfPort, peer, peerPort); err != nil {
		return err
	}
	i := indexOf(c.connections[selfPort-1], Endpoint{Component: peer.id, Port: peerPort})
	j := indexOf(peer.connections[peerPort-1], Endpoint{Component: c.id, Port: selfPort})
	if i < 0 || j < 0 {
		return fmt.Errorf("%w: %d ↔ %d", ErrNotConnected, selfPort, peerPort)
	}
	c.connections[selfPort-1] = removeAt(c.connections[selfPort-1], i)
	if peer == c && selfPort == peerPort {
		// both entries live in the same list; find the twin again after removal
		j = indexOf(peer.connections[peerPort-1], Endpoint{Component: c.id, Port: selfPort})
		if j < 0 {
			return nil
		}
	}
	peer.connections[peerPort-1] = removeAt(peer.connections[peerPort-1], j)

	return nil
}

func (c *Component) checkPair(selfPort int, peer *Component, peerPort int) error {
	if peer == nil {
		return ErrNilComponent
	}
	if selfPort < 1 || selfPort > c.ports {
		return fmt.Errorf("%w: %d not in 1..%d", ErrPortOutOfRange, selfPort, c.ports)
	}
	if peerPort < 1 || peerPort > peer.ports {
		return fmt.Errorf("%w: peer port %d not in 1..%d", ErrPortOutOfRange, peerPort, peer.ports)
	}

	return nil
}

func indexOf(list []Endpoint, e Endpoint) int {
	for i, x := range list {
		if x == e {
			return i
		}
	}

	return -1
}

func removeAt(list []Endpoint, i int) []Endpoint {
	return append(list[:i:i], list[i+1:]...)
}
