package prover

import (
	"github.com/plonkcore/prover/commitment"
	"github.com/plonkcore/prover/field"
)

// Message1 is round 1's output: commitments to the three wire
// polynomials.
type Message1 struct {
	A, B, C commitment.Digest
}

// Message2 is round 2's output: the commitment to the permutation
// grand-product polynomial.
type Message2 struct {
	Z commitment.Digest
}

// Message3 is round 3's output: commitments to the three chunks of the
// quotient polynomial.
type Message3 struct {
	TLo, TMid, THi commitment.Digest
}

// Message4 is round 4's output: the opening evaluations at zeta (and, for
// Z, at zeta*omega) needed to build the linearisation polynomial.
type Message4 struct {
	AEval, BEval, CEval field.Element
	S1Eval, S2Eval      field.Element
	ZShiftedEval        field.Element
}

// Message5 is round 5's output: the two aggregated KZG opening proofs.
type Message5 struct {
	WZ, WZOmega commitment.Digest
}

// Proof is the complete, constant-size PLONK proof: the five round
// messages in order.
type Proof struct {
	Msg1 Message1
	Msg2 Message2
	Msg3 Message3
	Msg4 Message4
	Msg5 Message5
}
