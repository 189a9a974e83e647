// Copyright 2020 ConsenSys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package prover implements the five-round PLONK proving algorithm: wire
// polynomial commitment, the permutation grand product, the quotient
// polynomial, Fiat-Shamir opening evaluations, and the aggregated KZG
// opening proofs.
package prover

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"

	"github.com/plonkcore/prover/circuit"
	"github.com/plonkcore/prover/commitment"
	"github.com/plonkcore/prover/field"
	internallog "github.com/plonkcore/prover/internal/log"
	"github.com/plonkcore/prover/poly"
	"github.com/plonkcore/prover/proverr"
	"github.com/plonkcore/prover/transcript"
)

// Prover is immutable and reusable across calls to Prove: it holds only
// the circuit's preprocessed input, the KZG setup, and the two FFT
// domains sized for this circuit. All per-invocation state lives in the
// proofRun created inside Prove, so two goroutines may safely call Prove
// on the same Prover concurrently.
type Prover struct {
	setup   *commitment.Setup
	program *circuit.Program
	config  Config

	domainSmall *fft.Domain
	domainBig   *fft.Domain
}

// New constructs a Prover for program, using setup's structured reference
// string and whatever domain setup was built against (it must match
// program.GroupOrder()).
func New(setup *commitment.Setup, program *circuit.Program, opts ...Option) (*Prover, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	n := program.GroupOrder()
	if setup.Domain == nil || setup.Domain.Cardinality != n {
		return nil, &proverr.SetupMismatchError{Need: int(n), Have: int(setup.Domain.Cardinality)}
	}

	domainBig := fft.NewDomain(4*n, fft.WithoutPrecompute())
	if domainBig.Cardinality != 4*n {
		return nil, fmt.Errorf("prover: no subgroup of order %d for the coset-extended domain", 4*n)
	}

	return &Prover{
		setup:       setup,
		program:     program,
		config:      cfg,
		domainSmall: setup.Domain,
		domainBig:   domainBig,
	}, nil
}

// proofRun holds every value produced over the course of one call to
// Prove: the mutable state machine the five rounds advance through. It is
// allocated fresh per call and never shared between Prove invocations.
type proofRun struct {
	prover *Prover
	tr     *transcript.Transcript

	witness circuit.Witness
	pi      poly.Polynomial

	A, B, C    poly.Polynomial
	Z          poly.Polynomial
	ZBig       poly.Polynomial
	L0         poly.Polynomial
	T1, T2, T3 poly.Polynomial

	beta, gamma field.Element
	alpha, h    field.Element
	zeta        field.Element
	v           field.Element

	aEval, bEval, cEval field.Element
	s1Eval, s2Eval      field.Element
	zShiftedEval        field.Element
}

// Prove runs the full five-round algorithm against witness, returning a
// proof or a fatal *proverr error. It never mutates p or witness.
func (p *Prover) Prove(witness circuit.Witness) (*Proof, error) {
	logger := internallog.Logger().With().Uint64("groupOrder", p.program.GroupOrder()).Logger()
	logger.Debug().Msg("starting proof generation")

	run := &proofRun{
		prover:  p,
		tr:      transcript.New(p.config.ChallengeHash()),
		witness: witness,
	}

	if err := run.bindPreprocessedInput(); err != nil {
		return nil, err
	}

	msg1, err := run.round1()
	if err != nil && !p.config.Force {
		return nil, err
	}
	beta, gamma, err := run.tr.Round1(msg1.A, msg1.B, msg1.C)
	if err != nil {
		return nil, err
	}
	run.beta, run.gamma = beta, gamma

	msg2, err := run.round2()
	if err != nil && !p.config.Force {
		return nil, err
	}
	alpha, h, err := run.tr.Round2(msg2.Z)
	if err != nil {
		return nil, err
	}
	run.alpha, run.h = alpha, h

	msg3, err := run.round3()
	if err != nil {
		return nil, err
	}
	zeta, err := run.tr.Round3(msg3.TLo, msg3.TMid, msg3.THi)
	if err != nil {
		return nil, err
	}
	run.zeta = zeta

	msg4 := run.round4()
	v, err := run.tr.Round4(transcript.Round4Evaluations{
		A: msg4.AEval, B: msg4.BEval, C: msg4.CEval,
		S1: msg4.S1Eval, S2: msg4.S2Eval, ZShifted: msg4.ZShiftedEval,
	})
	if err != nil {
		return nil, err
	}
	run.v = v

	msg5, err := run.round5()
	if err != nil {
		return nil, err
	}

	logger.Debug().Msg("proof generation complete")
	return &Proof{Msg1: msg1, Msg2: msg2, Msg3: msg3, Msg4: msg4, Msg5: msg5}, nil
}

// bindPreprocessedInput binds the setup's committed selector and
// permutation polynomials into the transcript before round 1, so the
// challenges a verifier recomputes depend on which circuit was proved
// against, not only on the prover's round messages.
func (run *proofRun) bindPreprocessedInput() error {
	p := run.prover
	cpi := p.program.CommonPreprocessedInput

	commitAll := func(polys ...poly.Polynomial) ([]commitment.Digest, error) {
		digests := make([]commitment.Digest, len(polys))
		for i, pl := range polys {
			d, err := p.setup.Commit(pl)
			if err != nil {
				return nil, err
			}
			digests[i] = d
		}
		return digests, nil
	}

	digests, err := commitAll(cpi.QL, cpi.QR, cpi.QM, cpi.QO, cpi.QC, cpi.S1, cpi.S2, cpi.S3)
	if err != nil {
		return err
	}

	pi, err := run.computePublicInputPolynomial()
	if err != nil {
		return err
	}
	run.pi = pi

	piDigest, err := p.setup.Commit(pi)
	if err != nil {
		return err
	}

	return run.tr.BindPreprocessed(digests, piDigest)
}

// computePublicInputPolynomial builds PI, the Lagrange polynomial whose
// i-th value is the negation of the i-th public wire's witness value (0
// for every row beyond the number of public wires).
func (run *proofRun) computePublicInputPolynomial() (poly.Polynomial, error) {
	p := run.prover
	n := p.program.GroupOrder()
	publicWires := p.program.GetPublicAssignments()
	if uint64(len(publicWires)) > n {
		return poly.Polynomial{}, &proverr.MalformedWitnessError{Reason: "more public wires than the group order"}
	}

	values := make([]field.Element, n)
	for i, w := range publicWires {
		v, err := run.witness.Require(w)
		if err != nil {
			return poly.Polynomial{}, err
		}
		values[i].Sub(&field.Element{}, &v)
	}
	return poly.New(values, poly.Lagrange), nil
}
