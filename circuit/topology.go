package circuit

import (
	"errors"
	"fmt"
)

// ErrTooFewNodes indicates a topology helper given fewer nodes than it needs.
var ErrTooFewNodes = errors.New("circuit: too few nodes")

// Conventional two-port orientation used by Cascade.
const (
	CascadeIn  = 1
	CascadeOut = 2
)

// Cascade wires nodes into a chain: CascadeOut of nodes[i-1] to CascadeIn of
// nodes[i], for i = 1..len(nodes)-1, in order. Every node must already be
// registered. On error, wires made by this call are removed again.
//
// Complexity: O(n) wires.
func (c *Circuit) Cascade(nodes ...string) error {
	if len(nodes) < 2 {
		return fmt.Errorf("Cascade: %d nodes: %w", len(nodes), ErrTooFewNodes)
	}
	for i := 1; i < len(nodes); i++ {
		u, v := nodes[i-1], nodes[i]
		if err := c.Connect(u, CascadeOut, v, CascadeIn); err != nil {
			for j := i - 1; j >= 1; j-- {
				_ = c.Disconnect(nodes[j-1], nodes[j])
			}
			return fmt.Errorf("Cascade: %s → %s: %w", Port{u, CascadeOut}, Port{v, CascadeIn}, err)
		}
	}

	return nil
}
