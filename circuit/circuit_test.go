package circuit_test

import (
	"bytes"
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/waverecipe/circuit"
	"github.com/katalvlaran/waverecipe/component"
	"github.com/katalvlaran/waverecipe/core"
	"github.com/katalvlaran/waverecipe/scattering"
)

const (
	freq = scattering.FrequencyHeader
	temp = "Temperature (C)"
	s11  = "S11 (dB)"
	s12  = "S12 (dB)"
	s21  = "S21 (dB)"
	s22  = "S22 (dB)"
)

var num = scattering.Number

// device builds a ports-port component whose table has cols and one row per
// entry of rows.
func device(t *testing.T, ports int, cols []string, rows ...[]float64) *component.Component {
	t.Helper()
	c, err := component.New(ports)
	require.NoError(t, err)
	tb := scattering.New(cols...)
	for _, r := range rows {
		vals := make([]scattering.Value, len(r))
		for i, f := range r {
			vals[i] = num(f)
		}
		require.NoError(t, tb.AppendRow(vals...))
	}
	require.NoError(t, c.AssignTable(tb))

	return c
}

func newCircuit(t *testing.T, opts ...circuit.Option) *circuit.Circuit {
	t.Helper()
	c, err := circuit.New(opts...)
	require.NoError(t, err)

	return c
}

func add(t *testing.T, c *circuit.Circuit, node string, comp *component.Component) {
	t.Helper()
	require.NoError(t, c.AddComponent(node, comp))
}

func gainAt(t *testing.T, comp *component.Component, column string, filters ...scattering.Filter) scattering.Value {
	t.Helper()
	rows, err := comp.Rows(filters...)
	require.NoError(t, err)
	require.Equal(t, 1, rows.Len(), "want exactly one row for %v", filters)
	v, err := rows.Get(column, 0)
	require.NoError(t, err)

	return v
}

func TestSynthesize_TwoAttenuators(t *testing.T) {
	c := newCircuit(t)
	add(t, c, "A", device(t, 2, []string{freq, s21}, []float64{1e9, -3}))
	add(t, c, "B", device(t, 2, []string{freq, s21}, []float64{1e9, -5}))
	require.NoError(t, c.Connect("A", 2, "B", 1))

	res, err := c.Synthesize()
	require.NoError(t, err)
	assert.Equal(t, 2, res.Ports())
	assert.Equal(t, num(-8), gainAt(t, res, s21, scattering.Where(freq, num(1e9))))
	assert.True(t, gainAt(t, res, s12).IsMissing(), "no reverse data on either hop")
	assert.True(t, gainAt(t, res, s11).IsMissing(), "same-node pairs are not reduced")
}

func TestSynthesize_ChainAdditivity(t *testing.T) {
	cols := []string{freq, s11, s12, s21, s22}
	c := newCircuit(t)
	add(t, c, "a", device(t, 2, cols, []float64{1e9, -20, -30, -1.5, -21}, []float64{2e9, -19, -29, -2, -20}))
	add(t, c, "b", device(t, 2, cols, []float64{1e9, -18, -40, 12, -17}, []float64{2e9, -18, -41, 11, -16}))
	add(t, c, "c", device(t, 2, cols, []float64{1e9, -25, -6, -0.5, -24}, []float64{2e9, -25, -7, -0.75, -23}))
	require.NoError(t, c.Connect("a", 2, "b", 1))
	require.NoError(t, c.Connect("b", 2, "c", 1))

	assert.Equal(t, []circuit.Port{{Node: "a", Port: 1}, {Node: "c", Port: 2}}, c.FreePorts())

	res, err := c.Synthesize()
	require.NoError(t, err)
	assert.Equal(t, 2, res.Ports())
	assert.Equal(t, []float64{1e9, 2e9}, res.Frequencies())

	at1 := scattering.Where(freq, num(1e9))
	at2 := scattering.Where(freq, num(2e9))
	assert.Equal(t, num(-1.5+12-0.5), gainAt(t, res, s21, at1))
	assert.Equal(t, num(-2+11-0.75), gainAt(t, res, s21, at2))
	assert.Equal(t, num(-6-40-30), gainAt(t, res, s12, at1))
	assert.Equal(t, num(-7-41-29), gainAt(t, res, s12, at2))
}

func TestSynthesize_DependencyExpansion(t *testing.T) {
	c := newCircuit(t)
	add(t, c, "a", device(t, 2, []string{freq, s21},
		[]float64{1e9, -1},
		[]float64{2e9, -2},
	))
	add(t, c, "b", device(t, 2, []string{freq, temp, s21},
		[]float64{1e9, 25, -3},
		[]float64{1e9, 85, -4},
		[]float64{2e9, 25, -5},
		[]float64{2e9, 85, -6},
	))
	require.NoError(t, c.Connect("a", 2, "b", 1))

	res, err := c.Synthesize()
	require.NoError(t, err)
	assert.Equal(t, []string{temp}, res.Dependencies())

	missing := scattering.Missing
	want := scattering.New(freq, s11, s12, s21, s22, temp)
	for _, r := range [][]scattering.Value{
		{num(1e9), missing, missing, num(-4), missing, num(25)},
		{num(1e9), missing, missing, num(-5), missing, num(85)},
		{num(2e9), missing, missing, num(-7), missing, num(25)},
		{num(2e9), missing, missing, num(-8), missing, num(85)},
	} {
		require.NoError(t, want.AppendRow(r...))
	}
	assert.True(t, want.Equal(res.Table()), "want\n%s\ngot\n%s", want, res.Table())
}

func TestSynthesize_PortCount(t *testing.T) {
	all := []float64{1e9}
	for range scattering.GainHeaders(3) {
		all = append(all, -1)
	}
	hub := device(t, 3, append([]string{freq}, scattering.GainHeaders(3)...), all)
	spoke := func() *component.Component {
		return device(t, 2, []string{freq, s11, s12, s21, s22}, []float64{1e9, -1, -1, -1, -1})
	}

	c := newCircuit(t)
	add(t, c, "hub", hub)
	for i, n := range []string{"x", "y", "z"} {
		add(t, c, n, spoke())
		require.NoError(t, c.Connect(n, 1, "hub", i+1))
	}

	// 3 + 3×2 ports, 3 wires
	res, err := c.Synthesize()
	require.NoError(t, err)
	require.Equal(t, 3, res.Ports())

	for out := 1; out <= 3; out++ {
		for in := 1; in <= 3; in++ {
			v := gainAt(t, res, scattering.GainHeader(out, in))
			if out == in {
				assert.True(t, v.IsMissing())
				continue
			}
			assert.Equal(t, num(-3), v, "S%d%d", out, in)
		}
	}
}

func TestSynthesize_Idempotent(t *testing.T) {
	c := newCircuit(t)
	add(t, c, "a", device(t, 2, []string{freq, s21, s12}, []float64{1e9, -1, -9}, []float64{2e9, -2, -8}))
	add(t, c, "b", device(t, 2, []string{freq, temp, s21}, []float64{1e9, 25, -3}, []float64{2e9, 25, -4}, []float64{2e9, 85, -5}))
	require.NoError(t, c.Connect("a", 2, "b", 1))

	first, err := c.Synthesize()
	require.NoError(t, err)

	wrap := newCircuit(t)
	add(t, wrap, "reduced", first)
	second, err := wrap.Synthesize()
	require.NoError(t, err)

	assert.Equal(t, first.Ports(), second.Ports())
	assert.True(t, first.Table().Equal(second.Table()), "want\n%s\ngot\n%s", first.Table(), second.Table())
}

func TestSynthesize_LeavesInputsUntouched(t *testing.T) {
	a := device(t, 2, []string{freq, s21}, []float64{1e9, -3})
	b := device(t, 2, []string{freq, temp, s21}, []float64{1e9, 25, -5})
	c := newCircuit(t)
	add(t, c, "a", a)
	add(t, c, "b", b)
	require.NoError(t, c.Connect("a", 2, "b", 1))

	beforeA, beforeB := a.Table().String(), b.Table().String()
	_, err := c.Synthesize()
	require.NoError(t, err)

	assert.Equal(t, beforeA, a.Table().String())
	assert.Equal(t, beforeB, b.Table().String())
	assert.Equal(t, []component.Endpoint{{Component: b.ID(), Port: 1}}, a.Connections(2))
	assert.Len(t, c.Wires(), 1)
}

func TestSynthesize_Errors(t *testing.T) {
	_, err := newCircuit(t).Synthesize()
	assert.ErrorIs(t, err, circuit.ErrEmptyCircuit)

	c := newCircuit(t)
	add(t, c, "a", device(t, 1, []string{freq, s11}, []float64{1e9, -1}))
	add(t, c, "b", device(t, 1, []string{freq, s11}, []float64{1e9, -2}))
	_, err = c.Synthesize()
	assert.ErrorIs(t, err, circuit.ErrDisconnectedCircuit)

	require.NoError(t, c.Connect("a", 1, "b", 1))
	_, err = c.Synthesize()
	assert.ErrorIs(t, err, component.ErrInvalidPortCount, "every port wired")
}

func TestSynthesizeContext_Cancelled(t *testing.T) {
	c := newCircuit(t)
	add(t, c, "a", device(t, 2, []string{freq, s21}, []float64{1e9, -3}))
	add(t, c, "b", device(t, 2, []string{freq, s21}, []float64{1e9, -5}))
	require.NoError(t, c.Connect("a", 2, "b", 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := c.SynthesizeContext(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)

	res, err = c.SynthesizeContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, num(-8), gainAt(t, res, s21))
}

func TestSynthesize_Logs(t *testing.T) {
	var buf bytes.Buffer
	c := newCircuit(t, circuit.WithLogger(log.New(&buf, "", 0)))
	add(t, c, "a", device(t, 2, []string{freq, s21}, []float64{1e9, -3}))
	add(t, c, "b", device(t, 2, []string{freq, s21}, []float64{1e9, -5}))
	require.NoError(t, c.Connect("a", 2, "b", 1))

	_, err := c.Synthesize()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "synthesized 2 nodes into a 2-port")
}

func TestSynthesize_FollowsTopologyChanges(t *testing.T) {
	c := newCircuit(t)
	add(t, c, "a", device(t, 2, []string{freq, s21}, []float64{1e9, -1}))
	add(t, c, "b", device(t, 2, []string{freq, s21}, []float64{1e9, -2}))
	add(t, c, "c", device(t, 2, []string{freq, s21}, []float64{1e9, -4}))
	require.NoError(t, c.Connect("a", 2, "b", 1))
	require.NoError(t, c.Connect("b", 2, "c", 1))

	res, err := c.Synthesize()
	require.NoError(t, err)
	assert.Equal(t, num(-7), gainAt(t, res, s21))

	// swap the middle stage; cached paths and free ports must not survive
	add(t, c, "b", device(t, 2, []string{freq, s21}, []float64{1e9, -10}))
	require.NoError(t, c.Connect("a", 2, "b", 1))
	require.NoError(t, c.Connect("b", 2, "c", 1))

	res, err = c.Synthesize()
	require.NoError(t, err)
	assert.Equal(t, num(-15), gainAt(t, res, s21))
}

func TestFreePorts_FollowConnections(t *testing.T) {
	c := newCircuit(t)
	add(t, c, "a", device(t, 2, []string{freq}))
	add(t, c, "b", device(t, 2, []string{freq}))
	assert.Equal(t, []circuit.Port{{Node: "a", Port: 1}, {Node: "a", Port: 2}, {Node: "b", Port: 1}, {Node: "b", Port: 2}}, c.FreePorts())

	require.NoError(t, c.Connect("a", 2, "b", 1))
	assert.Equal(t, []circuit.Port{{Node: "a", Port: 1}, {Node: "b", Port: 2}}, c.FreePorts())

	require.NoError(t, c.Disconnect("b", "a"))
	assert.Equal(t, []circuit.Port{{Node: "a", Port: 1}, {Node: "a", Port: 2}, {Node: "b", Port: 1}, {Node: "b", Port: 2}}, c.FreePorts())
	assert.Empty(t, c.Wires())

	assert.ErrorIs(t, c.Disconnect("a", "b"), circuit.ErrEdgeNotFound)
	assert.ErrorIs(t, c.Disconnect("a", "zz"), circuit.ErrNodeNotFound)
}

func TestConnect_Rejects(t *testing.T) {
	a := device(t, 2, []string{freq})
	b := device(t, 2, []string{freq})
	c := newCircuit(t)
	add(t, c, "a", a)
	add(t, c, "b", b)

	assert.ErrorIs(t, c.Connect("a", 1, "zz", 1), circuit.ErrNodeNotFound)
	assert.ErrorIs(t, c.Connect("a", 3, "b", 1), component.ErrPortOutOfRange)
	assert.ErrorIs(t, c.Connect("a", 1, "a", 2), core.ErrLoopNotAllowed)

	require.NoError(t, c.Connect("a", 2, "b", 1))
	assert.ErrorIs(t, c.Connect("b", 1, "a", 1), circuit.ErrPortInUse)
	assert.ErrorIs(t, c.Connect("a", 1, "b", 2), core.ErrMultiEdgeNotAllowed)

	// rejected wires leave no trace on the components
	assert.True(t, a.IsFree(1))
	assert.True(t, b.IsFree(2))
	assert.Len(t, c.Wires(), 1)
}

func TestAddWeightedEdge_AlwaysFails(t *testing.T) {
	c := newCircuit(t)
	add(t, c, "a", device(t, 1, []string{freq}))
	add(t, c, "b", device(t, 1, []string{freq}))
	assert.ErrorIs(t, c.AddWeightedEdge("a", 1, "b", 1, 0), circuit.ErrUnsupportedOperation)
	assert.ErrorIs(t, c.AddWeightedEdge("a", 1, "b", 1, 3.5), circuit.ErrUnsupportedOperation)
	assert.Empty(t, c.Wires())
}

func TestRemoveComponent_TearsDownBothSides(t *testing.T) {
	a := device(t, 2, []string{freq})
	b := device(t, 2, []string{freq})
	d := device(t, 2, []string{freq})
	c := newCircuit(t)
	add(t, c, "a", a)
	add(t, c, "b", b)
	add(t, c, "d", d)
	require.NoError(t, c.Connect("a", 2, "b", 1))
	require.NoError(t, c.Connect("b", 2, "d", 1))

	require.NoError(t, c.RemoveComponent("b"))
	assert.Equal(t, []string{"a", "d"}, c.Nodes())
	assert.Empty(t, c.Wires())
	assert.True(t, a.IsFree(2))
	assert.True(t, d.IsFree(1))
	assert.True(t, b.IsFree(1))
	assert.True(t, b.IsFree(2))

	assert.ErrorIs(t, c.RemoveComponent("b"), circuit.ErrNodeNotFound)
	_, err := c.Component("b")
	assert.ErrorIs(t, err, circuit.ErrNodeNotFound)
}

func TestAddComponent_Replacement(t *testing.T) {
	a := device(t, 2, []string{freq})
	old := device(t, 2, []string{freq})
	c := newCircuit(t)
	add(t, c, "a", a)
	add(t, c, "b", old)
	require.NoError(t, c.Connect("a", 2, "b", 1))

	replacement := device(t, 3, []string{freq})
	add(t, c, "b", replacement)
	assert.True(t, a.IsFree(2))
	assert.True(t, old.IsFree(1))
	assert.Empty(t, c.Wires())

	got, err := c.Component("b")
	require.NoError(t, err)
	assert.Same(t, replacement, got)
	assert.Len(t, c.Components(), 2)

	assert.ErrorIs(t, c.AddComponent("z", a), circuit.ErrComponentInUse)
	assert.ErrorIs(t, c.AddComponent("", device(t, 1, []string{freq})), core.ErrEmptyVertexID)
	assert.ErrorIs(t, c.AddComponent("n", nil), circuit.ErrNilComponent)

	// the component can move once its node is gone
	require.NoError(t, c.RemoveComponent("a"))
	require.NoError(t, c.AddComponent("z", a))
}

func TestAddComponent_RejectsForeignConnections(t *testing.T) {
	a := device(t, 2, []string{freq})
	b := device(t, 2, []string{freq})
	require.NoError(t, a.Connect(2, b, 1))

	c := newCircuit(t)
	assert.ErrorIs(t, c.AddComponent("a", a), circuit.ErrPortInUse)
	assert.Empty(t, c.Nodes())
	assert.Empty(t, c.FreePorts())

	require.NoError(t, a.Disconnect(2, b, 1))
	add(t, c, "a", a)
	add(t, c, "b", b)
	require.NoError(t, c.Connect("a", 2, "b", 1))
	assert.Equal(t, []circuit.Port{{Node: "a", Port: 1}, {Node: "b", Port: 2}}, c.FreePorts())

	// re-registering a wired component under its own node tears it down
	add(t, c, "a", a)
	assert.True(t, a.IsFree(2))
	assert.True(t, b.IsFree(1))
	assert.Empty(t, c.Wires())
}

func TestResultFrequencies_Policies(t *testing.T) {
	build := func(opts ...circuit.Option) *circuit.Circuit {
		c := newCircuit(t, opts...)
		add(t, c, "a", device(t, 1, []string{freq}, []float64{1}, []float64{2}))
		add(t, c, "b", device(t, 1, []string{freq}, []float64{2}, []float64{3}))
		add(t, c, "c", device(t, 1, []string{freq}, []float64{3}, []float64{2}, []float64{1}, []float64{4}))
		return c
	}

	// candidates come from the last node; each must appear in one other node
	assert.Equal(t, []float64{1, 2, 3}, build().ResultFrequencies())
	assert.Equal(t, []float64{2}, build(circuit.WithFrequencyPolicy(circuit.AllComponents)).ResultFrequencies())

	single := newCircuit(t)
	add(t, single, "only", device(t, 1, []string{freq}, []float64{7}, []float64{5}))
	assert.Equal(t, []float64{5, 7}, single.ResultFrequencies())
	assert.Nil(t, newCircuit(t).ResultFrequencies())
}

func TestOptions(t *testing.T) {
	_, err := circuit.New(circuit.WithPathCacheSize(0))
	assert.ErrorIs(t, err, circuit.ErrOptionViolation)
	_, err = circuit.New(circuit.WithFrequencyPolicy(circuit.FrequencyPolicy(9)))
	assert.ErrorIs(t, err, circuit.ErrOptionViolation)

	c := newCircuit(t, circuit.WithPathCacheSize(1), circuit.WithLogger(nil))
	assert.Equal(t, circuit.AnyOther, c.Policy())

	p, err := circuit.ParseFrequencyPolicy(" ALL ")
	require.NoError(t, err)
	assert.Equal(t, circuit.AllComponents, p)
	assert.Equal(t, "all", p.String())
	p, err = circuit.ParseFrequencyPolicy("")
	require.NoError(t, err)
	assert.Equal(t, circuit.AnyOther, p)
	_, err = circuit.ParseFrequencyPolicy("most")
	assert.ErrorIs(t, err, circuit.ErrOptionViolation)
}

func TestCascade(t *testing.T) {
	c := newCircuit(t)
	for _, n := range []string{"a", "b", "c"} {
		add(t, c, n, device(t, 2, []string{freq, s21}, []float64{1e9, -2}))
	}
	require.NoError(t, c.Cascade("a", "b", "c"))
	assert.Equal(t, []circuit.Wire{
		{ID: "w1", A: circuit.Port{Node: "a", Port: 2}, B: circuit.Port{Node: "b", Port: 1}},
		{ID: "w2", A: circuit.Port{Node: "b", Port: 2}, B: circuit.Port{Node: "c", Port: 1}},
	}, c.Wires())

	res, err := c.Synthesize()
	require.NoError(t, err)
	assert.Equal(t, num(-6), gainAt(t, res, s21))

	assert.ErrorIs(t, c.Cascade("a"), circuit.ErrTooFewNodes)
}

func TestCascade_RollsBack(t *testing.T) {
	c := newCircuit(t)
	add(t, c, "a", device(t, 2, []string{freq}))
	add(t, c, "b", device(t, 2, []string{freq}))
	add(t, c, "c", device(t, 1, []string{freq}))

	// c has no port 2, so the third wire fails and the first two are undone
	err := c.Cascade("a", "b", "c", "a")
	assert.ErrorIs(t, err, component.ErrPortOutOfRange)
	assert.Empty(t, c.Wires())
	assert.Len(t, c.FreePorts(), 5)
}
