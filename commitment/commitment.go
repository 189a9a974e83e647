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

// Package commitment wraps the KZG polynomial commitment scheme over
// BN254: committing a polynomial, and opening it at a single point. Setup
// owns the structured reference string; the prover never touches the SRS
// directly.
package commitment

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bn254/kzg"

	"github.com/plonkcore/prover/field"
	"github.com/plonkcore/prover/poly"
	"github.com/plonkcore/prover/proverr"
)

// Digest is a KZG commitment: a single BN254 G1 point.
type Digest = kzg.Digest

// OpeningProof is a single-point KZG opening proof (a G1 point plus the
// claimed evaluation).
type OpeningProof = kzg.OpeningProof

// BatchOpeningProof is a KZG proof opening several polynomials at the
// same point.
type BatchOpeningProof = kzg.BatchOpeningProof

// Setup holds the prover-side structured reference string: the powers of
// tau in G1 needed to commit to, and open, polynomials up to the circuit
// size.
type Setup struct {
	ProvingKey kzg.ProvingKey
	Domain     *fft.Domain
}

// NewSetup wraps an already-generated KZG proving key together with the
// evaluation domain of the circuit it was sized for. The domain is not
// derived from the SRS; Commit and CommitCoeffs reject coefficient
// vectors longer than pk.G1.
func NewSetup(pk kzg.ProvingKey, domain *fft.Domain) *Setup {
	return &Setup{ProvingKey: pk, Domain: domain}
}

// Commit converts p to monomial form (if it is not already) and performs
// a multi-scalar multiplication against the SRS. A non-monomial p must
// have exactly as many values as this Setup's domain.
func (s *Setup) Commit(p poly.Polynomial) (Digest, error) {
	mono := p
	if p.Basis != poly.Monomial {
		m, err := p.ToMonomial(s.Domain)
		if err != nil {
			return Digest{}, err
		}
		mono = m
	}
	if len(mono.Values) > len(s.ProvingKey.G1) {
		return Digest{}, &proverr.SetupMismatchError{Need: len(mono.Values), Have: len(s.ProvingKey.G1)}
	}
	return kzg.Commit(mono.Values, s.ProvingKey)
}

// CommitCoeffs commits a raw monomial coefficient vector directly,
// without routing through poly.Polynomial; its length need not match any
// domain's cardinality.
func (s *Setup) CommitCoeffs(coeffs []field.Element) (Digest, error) {
	if len(coeffs) > len(s.ProvingKey.G1) {
		return Digest{}, &proverr.SetupMismatchError{Need: len(coeffs), Have: len(s.ProvingKey.G1)}
	}
	return kzg.Commit(coeffs, s.ProvingKey)
}

// Open produces a single-point KZG opening proof for p (taken in
// monomial basis) at point z, committing to the quotient
// (p(X)-p(z))/(X-z).
func (s *Setup) Open(p poly.Polynomial, z field.Element) (OpeningProof, error) {
	mono := p
	if p.Basis != poly.Monomial {
		m, err := p.ToMonomial(s.Domain)
		if err != nil {
			return OpeningProof{}, err
		}
		mono = m
	}
	return kzg.Open(mono.Values, z, s.ProvingKey)
}

// OpenCoeffs opens a raw monomial coefficient vector at z, without
// routing through poly.Polynomial.
func (s *Setup) OpenCoeffs(coeffs []field.Element, z field.Element) (OpeningProof, error) {
	return kzg.Open(coeffs, z, s.ProvingKey)
}
