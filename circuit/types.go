package circuit

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
)

// Sentinel errors for circuit operations.
var (
	// ErrNodeNotFound indicates an operation referenced an unknown node.
	ErrNodeNotFound = errors.New("circuit: node not found")

	// ErrEdgeNotFound indicates a disconnect request between two nodes that share no wire.
	ErrEdgeNotFound = errors.New("circuit: edge not found")

	// ErrUnsupportedOperation indicates a request the circuit never honors (weighted wires).
	ErrUnsupportedOperation = errors.New("circuit: unsupported operation")

	// ErrDisconnectedCircuit indicates a topology with more than one connected component.
	ErrDisconnectedCircuit = errors.New("circuit: circuit is not connected")

	// ErrEmptyCircuit indicates Synthesize on a circuit with no nodes.
	ErrEmptyCircuit = errors.New("circuit: circuit has no nodes")

	// ErrNilComponent indicates AddComponent with a nil component.
	ErrNilComponent = errors.New("circuit: nil component")

	// ErrComponentInUse indicates a component already owned by another node.
	ErrComponentInUse = errors.New("circuit: component already registered under another node")

	// ErrPortInUse indicates a wire onto a port that already carries one.
	ErrPortInUse = errors.New("circuit: port already connected")

	// ErrOptionViolation indicates an invalid Option.
	ErrOptionViolation = errors.New("circuit: invalid option supplied")
)

// Port addresses one port of one node.
type Port struct {
	Node string
	Port int
}

func (p Port) String() string { return fmt.Sprintf("%s:%d", p.Node, p.Port) }

// Wire is one port-to-port connection; A is the side passed first to Connect.
type Wire struct {
	ID string
	A  Port
	B  Port
}

// FrequencyPolicy selects how ResultFrequencies intersects the frequency
// sets of the circuit's components.
type FrequencyPolicy int

const (
	// AnyOther takes the frequencies of the last node (by ID) and keeps each
	// one that appears in at least one other node's table.
	AnyOther FrequencyPolicy = iota
	// AllComponents keeps the frequencies present in every node's table.
	AllComponents
)

func (p FrequencyPolicy) String() string {
	switch p {
	case AnyOther:
		return "any"
	case AllComponents:
		return "all"
	}

	return fmt.Sprintf("FrequencyPolicy(%d)", int(p))
}

// ParseFrequencyPolicy accepts "any" and "all" (case-insensitive); "" is AnyOther.
func ParseFrequencyPolicy(s string) (FrequencyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return AnyOther, nil
	case "all":
		return AllComponents, nil
	}

	return 0, fmt.Errorf("%w: unknown frequency policy %q", ErrOptionViolation, s)
}

// DefaultPathCacheSize bounds the number of cached shortest paths.
const DefaultPathCacheSize = 256

// Option configures a Circuit. An invalid Option is recorded and surfaced
// as ErrOptionViolation by New.
type Option func(*options)

type options struct {
	logger    *log.Logger
	policy    FrequencyPolicy
	cacheSize int
	err       error
}

func defaultOptions() options {
	return options{
		logger:    log.New(io.Discard, "", 0),
		policy:    AnyOther,
		cacheSize: DefaultPathCacheSize,
	}
}

// WithLogger routes the circuit's diagnostics to l. Nil keeps the default,
// which discards.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFrequencyPolicy selects the ResultFrequencies policy.
func WithFrequencyPolicy(p FrequencyPolicy) Option {
	return func(o *options) {
		if p != AnyOther && p != AllComponents {
			o.err = fmt.Errorf("%w: unknown frequency policy %d", ErrOptionViolation, int(p))
			return
		}
		o.policy = p
	}
}

// WithPathCacheSize bounds the shortest-path cache; n must be positive.
func WithPathCacheSize(n int) Option {
	return func(o *options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: path cache size must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.cacheSize = n
	}
}
