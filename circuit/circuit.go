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

// Package circuit describes the preprocessed input a front-end compiler
// hands to the prover: gate selectors, the copy-permutation, and the
// wiring of each gate, plus the witness assignment satisfying it. The
// prover treats all of it as opaque data; circuit uses poly and field
// only for their types and does no polynomial or field arithmetic.
package circuit

import (
	"github.com/plonkcore/prover/field"
	"github.com/plonkcore/prover/poly"
	"github.com/plonkcore/prover/proverr"
)

// WireID labels a wire in the circuit. NoWire is the sentinel for "this
// gate input is unused" - the witness resolves it to zero rather than
// erroring.
type WireID string

// NoWire is the implicit wire label that always resolves to zero.
const NoWire WireID = ""

// Gate is the (left, right, output) wire triple of one arithmetic gate:
// Q_L*L + Q_R*R + Q_M*L*R + Q_O*O + Q_C = 0 (PI added for public gates).
type Gate struct {
	L, R, O WireID
}

// CommonPreprocessedInput is the circuit's preprocessed, public data: the
// gate-selector polynomials and the copy-permutation's image polynomials,
// all in Lagrange basis of length GroupOrder.
type CommonPreprocessedInput struct {
	GroupOrder uint64

	QL, QR, QM, QO, QC poly.Polynomial
	S1, S2, S3         poly.Polynomial
}

// Program is the full preprocessed input plus the gate wiring and the set
// of public wires. It is produced by a front-end compiler; the prover
// never mutates it.
type Program struct {
	CommonPreprocessedInput

	Gates             []Gate
	PublicAssignments []WireID
}

// GroupOrder returns the program's evaluation-domain size.
func (p *Program) GroupOrder() uint64 {
	return p.CommonPreprocessedInput.GroupOrder
}

// Wires returns the ordered (L,R,O) wire labels, one triple per gate -
// the order expected by round 1's wire-value assembly.
func (p *Program) Wires() []Gate {
	return p.Gates
}

// GetPublicAssignments returns the ordered wire labels designated public.
func (p *Program) GetPublicAssignments() []WireID {
	return p.PublicAssignments
}

// Witness maps wire labels to scalar values. A lookup of NoWire, or of
// any label absent from the map, resolves implicitly to zero rather than
// erroring: many gates leave one input unused.
type Witness map[WireID]field.Element

// Get resolves a wire label to its value. NoWire and any label not
// present in the witness both resolve to zero. Use Require instead when
// a label is expected to be explicitly assigned (e.g. a public input).
func (w Witness) Get(id WireID) field.Element {
	if id == NoWire {
		return field.Zero()
	}
	v, ok := w[id]
	if !ok {
		return field.Zero()
	}
	return v
}

// Require resolves a wire label that the circuit declares must be
// explicitly assigned (public inputs, and every gate's wires once they
// are known non-empty). It reports MalformedWitnessError rather than
// silently defaulting to zero, since a silently-zeroed public input would
// let a malformed witness produce a proof for the wrong statement.
func (w Witness) Require(id WireID) (field.Element, error) {
	if id == NoWire {
		return field.Zero(), &proverr.MalformedWitnessError{Reason: "cannot require the implicit empty wire"}
	}
	v, ok := w[id]
	if !ok {
		return field.Zero(), &proverr.MalformedWitnessError{Wire: string(id), Reason: "wire has no assignment in the witness"}
	}
	return v, nil
}
