package prover_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plonkcore/prover/field"
	"github.com/plonkcore/prover/internal/testfixture"
	"github.com/plonkcore/prover/prover"
	"github.com/plonkcore/prover/proverr"
)

func TestProveEndToEnd(t *testing.T) {
	program, witness := testfixture.ExampleCircuit()

	setup, err := testfixture.NewSetup(program.GroupOrder())
	require.NoError(t, err)

	p, err := prover.New(setup, program)
	require.NoError(t, err)

	proof, err := p.Prove(witness)
	require.NoError(t, err)
	require.NotNil(t, proof)

	require.False(t, proof.Msg1.A.X.IsZero() && proof.Msg1.A.Y.IsZero())
	require.False(t, proof.Msg2.Z.X.IsZero() && proof.Msg2.Z.Y.IsZero())
	require.False(t, proof.Msg5.WZ.X.IsZero() && proof.Msg5.WZ.Y.IsZero())
	require.False(t, proof.Msg5.WZOmega.X.IsZero() && proof.Msg5.WZOmega.Y.IsZero())
}

func TestProveRejectsBadGateIdentity(t *testing.T) {
	program, witness := testfixture.ExampleCircuit()
	witness["e"] = field.FromInt64(61) // a*b*d = 60, not 61: gate identity breaks.

	setup, err := testfixture.NewSetup(program.GroupOrder())
	require.NoError(t, err)

	p, err := prover.New(setup, program)
	require.NoError(t, err)

	_, err = p.Prove(witness)
	require.Error(t, err)
}

func TestProveRejectsBrokenCopyConstraint(t *testing.T) {
	program, witness := testfixture.ExampleCircuit()
	// c no longer matches a*b: with e raised to match, c*d=e still holds,
	// but a*b=c does not (12 != 13), so round 1's gate identity check
	// rejects the witness. Both occurrences of c (gate 2's output, gate
	// 3's left input) read the same witness entry, so the copy constraint
	// itself still holds.
	witness["c"] = field.FromInt64(13)
	witness["e"] = field.FromInt64(65) // 13*5, so c*d=e still holds pointwise

	setup, err := testfixture.NewSetup(program.GroupOrder())
	require.NoError(t, err)

	p, err := prover.New(setup, program)
	require.NoError(t, err)

	_, err = p.Prove(witness)
	require.Error(t, err)
}

func TestProveForceBypassesWitnessErrors(t *testing.T) {
	program, witness := testfixture.ExampleCircuit()
	witness["e"] = field.FromInt64(61)

	setup, err := testfixture.NewSetup(program.GroupOrder())
	require.NoError(t, err)

	p, err := prover.New(setup, program, prover.WithForce(true))
	require.NoError(t, err)

	// Round 1's MalformedWitness error is bypassed; the broken gate then
	// surfaces as round 3's quotient failing to divide by Z_H.
	_, err = p.Prove(witness)
	var degErr *proverr.DegreeOverflowError
	require.ErrorAs(t, err, &degErr)
}

func TestProveRejectsGroupOrderMismatch(t *testing.T) {
	program, _ := testfixture.ExampleCircuit()
	setup, err := testfixture.NewSetup(program.GroupOrder() * 2)
	require.NoError(t, err)

	_, err = prover.New(setup, program)
	require.Error(t, err)
}
