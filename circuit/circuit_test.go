package circuit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plonkcore/prover/circuit"
	"github.com/plonkcore/prover/field"
)

func TestWitnessGetResolvesNoWireToZero(t *testing.T) {
	w := circuit.Witness{"a": field.FromInt64(3)}

	got := w.Get(circuit.NoWire)
	require.True(t, got.IsZero())

	got = w.Get("unassigned")
	require.True(t, got.IsZero())

	got = w.Get("a")
	want := field.FromInt64(3)
	require.True(t, got.Equal(&want))
}

func TestWitnessRequireRejectsMissingWire(t *testing.T) {
	w := circuit.Witness{"a": field.FromInt64(3)}

	_, err := w.Require("b")
	require.Error(t, err)

	_, err = w.Require(circuit.NoWire)
	require.Error(t, err)

	v, err := w.Require("a")
	require.NoError(t, err)
	want := field.FromInt64(3)
	require.True(t, v.Equal(&want))
}

func TestProgramWiresOrdering(t *testing.T) {
	p := &circuit.Program{
		Gates: []circuit.Gate{
			{L: "a", R: "b", O: "c"},
			{L: "c", R: "d", O: "e"},
		},
		PublicAssignments: []circuit.WireID{"e"},
	}

	wires := p.Wires()
	require.Len(t, wires, 2)
	require.Equal(t, circuit.WireID("c"), wires[0].O)
	require.Equal(t, circuit.WireID("c"), wires[1].L)
	require.Equal(t, []circuit.WireID{"e"}, p.GetPublicAssignments())
}
