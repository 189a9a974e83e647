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

// Package field wraps the BN254 scalar field so the rest of the module
// never imports gnark-crypto's fr package directly.
package field

import (
	"fmt"
	"math/bits"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
)

// Element is a BN254 scalar field element (~254 bits, Montgomery form).
type Element = fr.Element

// Zero returns the additive identity.
func Zero() Element {
	var z Element
	return z
}

// One returns the multiplicative identity.
func One() Element {
	var z Element
	z.SetOne()
	return z
}

// FromInt64 converts a signed integer to a field element, reducing modulo
// the field order; negative values wrap around to p+v.
func FromInt64(v int64) Element {
	var z Element
	z.SetInt64(v)
	return z
}

// RLC computes the random linear combination x + beta*y + gamma, the
// two-variable form used pervasively in the permutation argument.
func RLC(x, y, beta, gamma Element) Element {
	var z Element
	z.Mul(&y, &beta).Add(&z, &x).Add(&z, &gamma)
	return z
}

// RootOfUnity returns the primitive n-th root of unity, for n a power of
// two dividing p-1.
func RootOfUnity(n uint64) (Element, error) {
	if !isPowerOfTwo(n) {
		return Zero(), fmt.Errorf("field: %d is not a power of two", n)
	}
	domain := fft.NewDomain(n, fft.WithoutPrecompute())
	if domain.Cardinality != n {
		return Zero(), fmt.Errorf("field: no subgroup of order %d", n)
	}
	return domain.Generator, nil
}

// RootsOfUnity returns [omega^0, omega^1, ..., omega^(n-1)] where omega is
// the primitive n-th root of unity.
func RootsOfUnity(n uint64) ([]Element, error) {
	omega, err := RootOfUnity(n)
	if err != nil {
		return nil, err
	}
	roots := make([]Element, n)
	roots[0].SetOne()
	for i := uint64(1); i < n; i++ {
		roots[i].Mul(&roots[i-1], &omega)
	}
	return roots, nil
}

// BatchInvert inverts every element of xs in roughly one inversion plus
// 3*len(xs) multiplications (Montgomery's trick), instead of len(xs)
// separate inversions.
func BatchInvert(xs []Element) []Element {
	return fr.BatchInvert(xs)
}

func isPowerOfTwo(n uint64) bool {
	return n != 0 && bits.OnesCount64(n) == 1
}
