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

// Package transcript implements the Fiat-Shamir transcript binding the
// prover's round messages to the challenges they derive, so the
// non-interactive proof is sound against the same adversary model as the
// interactive protocol it replaces.
package transcript

import (
	"hash"

	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"

	"github.com/plonkcore/prover/commitment"
	"github.com/plonkcore/prover/field"
)

// domainSeparator is bound once, under the first challenge label, so that
// a transcript produced by this protocol can never be replayed as a
// transcript for a differently-labelled protocol using the same
// underlying hash and challenge order.
const domainSeparator = "plonk"

// Transcript accumulates the prover's commitments and derives the
// protocol's six challenges (beta, gamma, alpha, h, zeta, v) from them, in
// the order the five-round algorithm produces messages.
type Transcript struct {
	fs      *fiatshamir.Transcript
	started bool
}

// New creates a transcript hashing with hFunc (e.g. sha256.New()) to
// derive challenges, labelled for the six values this protocol needs.
func New(hFunc hash.Hash) *Transcript {
	fs := fiatshamir.NewTranscript(hFunc, "beta", "gamma", "alpha", "cofactor", "zeta", "v")
	return &Transcript{fs: fs}
}

func (t *Transcript) bindSeparator(label string) error {
	if t.started {
		return nil
	}
	t.started = true
	return t.fs.Bind(label, []byte(domainSeparator))
}

// BindPreprocessed binds the setup's committed selector and permutation
// polynomials, plus the public-input commitment, before round 1. This
// closes the gap in the naive transcript, where a verifier's challenges
// depend only on the prover's round messages and never on which circuit
// or public input they were generated against.
func (t *Transcript) BindPreprocessed(preprocessed []commitment.Digest, publicInput commitment.Digest) error {
	if err := t.bindSeparator("beta"); err != nil {
		return err
	}
	for _, d := range preprocessed {
		if err := t.fs.Bind("beta", d.Marshal()); err != nil {
			return err
		}
	}
	return t.fs.Bind("beta", publicInput.Marshal())
}

// Round1 binds the wire commitments a_1, b_1, c_1 and returns the
// permutation-argument challenges beta and gamma.
func (t *Transcript) Round1(a, b, c commitment.Digest) (beta, gamma field.Element, err error) {
	if err = t.bindSeparator("beta"); err != nil {
		return
	}
	for _, d := range []commitment.Digest{a, b, c} {
		if err = t.fs.Bind("beta", d.Marshal()); err != nil {
			return
		}
	}
	bb, err := t.fs.ComputeChallenge("beta")
	if err != nil {
		return
	}
	beta.SetBytes(bb)

	if err = t.fs.Bind("gamma", bb); err != nil {
		return
	}
	bg, err := t.fs.ComputeChallenge("gamma")
	if err != nil {
		return
	}
	gamma.SetBytes(bg)
	return
}

// Round2 binds the grand-product commitment z_1 and returns the
// quotient-aggregation challenge alpha together with the coset cofactor h
// used to shift the quotient's evaluation domain away from the roots of
// unity (so division by the vanishing polynomial never hits a zero).
func (t *Transcript) Round2(z commitment.Digest) (alpha, h field.Element, err error) {
	if err = t.fs.Bind("alpha", z.Marshal()); err != nil {
		return
	}
	ba, err := t.fs.ComputeChallenge("alpha")
	if err != nil {
		return
	}
	alpha.SetBytes(ba)

	if err = t.fs.Bind("cofactor", ba); err != nil {
		return
	}
	bh, err := t.fs.ComputeChallenge("cofactor")
	if err != nil {
		return
	}
	h.SetBytes(bh)
	return
}

// Round3 binds the split quotient commitments t_lo, t_mid, t_hi and
// returns the evaluation challenge zeta.
func (t *Transcript) Round3(tLo, tMid, tHi commitment.Digest) (zeta field.Element, err error) {
	for _, d := range []commitment.Digest{tLo, tMid, tHi} {
		if err = t.fs.Bind("zeta", d.Marshal()); err != nil {
			return
		}
	}
	bz, err := t.fs.ComputeChallenge("zeta")
	if err != nil {
		return
	}
	zeta.SetBytes(bz)
	return
}

// Round4Evaluations is the set of opening evaluations bound before
// deriving v, in the fixed order the linearisation polynomial (round 5)
// later consumes them.
type Round4Evaluations struct {
	A, B, C, S1, S2, ZShifted field.Element
}

// Round4 binds the opening evaluations and returns the opening
// aggregation challenge v.
func (t *Transcript) Round4(e Round4Evaluations) (v field.Element, err error) {
	values := []field.Element{e.A, e.B, e.C, e.S1, e.S2, e.ZShifted}
	for _, x := range values {
		b := x.Bytes()
		if err = t.fs.Bind("v", b[:]); err != nil {
			return
		}
	}
	bv, err := t.fs.ComputeChallenge("v")
	if err != nil {
		return
	}
	v.SetBytes(bv)
	return
}
