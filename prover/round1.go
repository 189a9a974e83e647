package prover

import (
	"strconv"

	"github.com/plonkcore/prover/circuit"
	"github.com/plonkcore/prover/field"
	"github.com/plonkcore/prover/poly"
	"github.com/plonkcore/prover/proverr"
)

// round1 assembles the wire polynomials A, B, C from the witness and
// commits to them, after checking the gate identity holds pointwise -
// the earliest point a malformed witness can be caught.
func (run *proofRun) round1() (Message1, error) {
	p := run.prover
	n := int(p.program.GroupOrder())
	gates := p.program.Wires()

	aValues := make([]field.Element, n)
	bValues := make([]field.Element, n)
	cValues := make([]field.Element, n)
	// Every wire other than NoWire must be assigned; the first missing one
	// is reported as MalformedWitnessError and read as zero meanwhile.
	var wireErr error
	wireValue := func(id circuit.WireID) field.Element {
		if id == circuit.NoWire {
			return field.Zero()
		}
		v, err := run.witness.Require(id)
		if err != nil && wireErr == nil {
			wireErr = err
		}
		return v
	}
	for i, g := range gates {
		aValues[i] = wireValue(g.L)
		bValues[i] = wireValue(g.R)
		cValues[i] = wireValue(g.O)
	}
	// Rows beyond len(gates) are padding: all wires resolve to zero and
	// every selector on that row is zero too, so the gate identity holds
	// trivially there.

	run.A = poly.New(aValues, poly.Lagrange)
	run.B = poly.New(bValues, poly.Lagrange)
	run.C = poly.New(cValues, poly.Lagrange)

	gateErr := run.checkGateIdentity()
	if wireErr != nil {
		gateErr = wireErr
	}

	aDigest, err := p.setup.Commit(run.A)
	if err != nil {
		return Message1{}, err
	}
	bDigest, err := p.setup.Commit(run.B)
	if err != nil {
		return Message1{}, err
	}
	cDigest, err := p.setup.Commit(run.C)
	if err != nil {
		return Message1{}, err
	}

	return Message1{A: aDigest, B: bDigest, C: cDigest}, gateErr
}

// checkGateIdentity verifies A*QL + B*QR + A*B*QM + C*QO + PI + QC is the
// zero polynomial, pointwise in Lagrange basis, i.e. every gate's
// arithmetic constraint is satisfied by the witness.
func (run *proofRun) checkGateIdentity() error {
	cpi := run.prover.program.CommonPreprocessedInput

	mustMul := func(x, y poly.Polynomial) poly.Polynomial {
		r, err := x.Mul(y)
		if err != nil {
			panic(err) // same basis/length by construction; a mismatch is a programming error.
		}
		return r
	}
	mustAdd := func(x, y poly.Polynomial) poly.Polynomial {
		r, err := x.Add(y)
		if err != nil {
			panic(err)
		}
		return r
	}

	lhs := mustMul(run.A, cpi.QL)
	lhs = mustAdd(lhs, mustMul(run.B, cpi.QR))
	lhs = mustAdd(lhs, mustMul(mustMul(run.A, run.B), cpi.QM))
	lhs = mustAdd(lhs, mustMul(run.C, cpi.QO))
	lhs = mustAdd(lhs, run.pi)
	lhs = mustAdd(lhs, cpi.QC)

	for i, v := range lhs.Values {
		if !v.IsZero() {
			return &proverr.MalformedWitnessError{Reason: "gate identity nonzero at row " + strconv.Itoa(i)}
		}
	}
	return nil
}
