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

// Package poly implements the polynomial representations used by the
// prover: Lagrange-basis evaluation vectors, monomial coefficient vectors,
// and the coset-extended Lagrange basis used to divide by the vanishing
// polynomial. Arithmetic is defined only between polynomials sharing basis
// and length; mixed operations return a BasisMismatchError.
package poly

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"

	"github.com/plonkcore/prover/field"
	"github.com/plonkcore/prover/proverr"
)

// Basis tags the representation of a Polynomial's Values.
type Basis int

const (
	// Lagrange: Values[i] is the polynomial's value at omega^i, omega the
	// primitive root of unity of order len(Values).
	Lagrange Basis = iota
	// Monomial: Values[i] is the coefficient of X^i.
	Monomial
	// CosetExtendedLagrange: Values[i] is the polynomial's value at
	// h*mu^i, mu the primitive root of unity of order len(Values) (4n for
	// an n-sized base domain) and h the coset cofactor.
	CosetExtendedLagrange
)

func (b Basis) String() string {
	switch b {
	case Lagrange:
		return "Lagrange"
	case Monomial:
		return "Monomial"
	case CosetExtendedLagrange:
		return "CosetExtendedLagrange"
	default:
		return "Unknown"
	}
}

// Polynomial is a sequence of scalars tagged with the basis they represent.
type Polynomial struct {
	Values []field.Element
	Basis  Basis
}

// New wraps values as a polynomial in the given basis. It copies nothing;
// callers must not mutate values afterwards through another reference.
func New(values []field.Element, basis Basis) Polynomial {
	return Polynomial{Values: values, Basis: basis}
}

// Constant returns the length-n constant polynomial equal to v everywhere,
// in the given basis (the "scalar lifted to a constant polynomial" of
// design note 9).
func Constant(v field.Element, n int, basis Basis) Polynomial {
	values := make([]field.Element, n)
	for i := range values {
		values[i] = v
	}
	return Polynomial{Values: values, Basis: basis}
}

// Len returns the number of values (the polynomial's representation size,
// not its algebraic degree).
func (p Polynomial) Len() int {
	return len(p.Values)
}

// Clone returns a deep copy.
func (p Polynomial) Clone() Polynomial {
	values := make([]field.Element, len(p.Values))
	copy(values, p.Values)
	return Polynomial{Values: values, Basis: p.Basis}
}

func (p Polynomial) checkCompatible(op string, q Polynomial) error {
	if p.Basis != q.Basis {
		return &proverr.BasisMismatchError{Op: op, Detail: "operands have different basis: " + p.Basis.String() + " vs " + q.Basis.String()}
	}
	if len(p.Values) != len(q.Values) {
		return &proverr.BasisMismatchError{Op: op, Detail: "operands have different length"}
	}
	return nil
}

// Add returns p+q, pointwise. p and q must share basis and length.
func (p Polynomial) Add(q Polynomial) (Polynomial, error) {
	if err := p.checkCompatible("Add", q); err != nil {
		return Polynomial{}, err
	}
	out := make([]field.Element, len(p.Values))
	for i := range out {
		out[i].Add(&p.Values[i], &q.Values[i])
	}
	return Polynomial{Values: out, Basis: p.Basis}, nil
}

// Sub returns p-q, pointwise. p and q must share basis and length.
func (p Polynomial) Sub(q Polynomial) (Polynomial, error) {
	if err := p.checkCompatible("Sub", q); err != nil {
		return Polynomial{}, err
	}
	out := make([]field.Element, len(p.Values))
	for i := range out {
		out[i].Sub(&p.Values[i], &q.Values[i])
	}
	return Polynomial{Values: out, Basis: p.Basis}, nil
}

// Mul returns p*q, pointwise. Only defined in the Lagrange and
// CosetExtendedLagrange bases: pointwise multiplication of monomial
// coefficient vectors is not polynomial multiplication, so Monomial is
// rejected rather than silently producing a wrong answer.
func (p Polynomial) Mul(q Polynomial) (Polynomial, error) {
	if err := p.checkCompatible("Mul", q); err != nil {
		return Polynomial{}, err
	}
	if p.Basis == Monomial {
		return Polynomial{}, &proverr.BasisMismatchError{Op: "Mul", Detail: "pointwise multiplication is not defined in the Monomial basis"}
	}
	out := make([]field.Element, len(p.Values))
	for i := range out {
		out[i].Mul(&p.Values[i], &q.Values[i])
	}
	return Polynomial{Values: out, Basis: p.Basis}, nil
}

// Div returns p/q, pointwise. Only defined in the Lagrange and
// CosetExtendedLagrange bases, and only if every value of q is nonzero.
func (p Polynomial) Div(q Polynomial) (Polynomial, error) {
	if err := p.checkCompatible("Div", q); err != nil {
		return Polynomial{}, err
	}
	if p.Basis == Monomial {
		return Polynomial{}, &proverr.BasisMismatchError{Op: "Div", Detail: "pointwise division is not defined in the Monomial basis"}
	}
	out := make([]field.Element, len(p.Values))
	var inv field.Element
	for i := range out {
		if q.Values[i].IsZero() {
			return Polynomial{}, &proverr.DivisionByZeroError{Index: i}
		}
		inv.Inverse(&q.Values[i])
		out[i].Mul(&p.Values[i], &inv)
	}
	return Polynomial{Values: out, Basis: p.Basis}, nil
}

// MulScalar returns s*p, scaling every value.
func (p Polynomial) MulScalar(s field.Element) Polynomial {
	out := make([]field.Element, len(p.Values))
	for i := range out {
		out[i].Mul(&p.Values[i], &s)
	}
	return Polynomial{Values: out, Basis: p.Basis}
}

// AddScalar returns p+s, adding s to every value (s lifted to the constant
// polynomial in p's basis).
func (p Polynomial) AddScalar(s field.Element) Polynomial {
	out := make([]field.Element, len(p.Values))
	for i := range out {
		out[i].Add(&p.Values[i], &s)
	}
	return Polynomial{Values: out, Basis: p.Basis}
}

// SubScalar returns p-s.
func (p Polynomial) SubScalar(s field.Element) Polynomial {
	out := make([]field.Element, len(p.Values))
	for i := range out {
		out[i].Sub(&p.Values[i], &s)
	}
	return Polynomial{Values: out, Basis: p.Basis}
}

// RLC computes x + beta*y + gamma pointwise, for two polynomials of equal
// basis and length. It is the polynomial form of field.RLC, used to
// realise the permutation argument's random linear combination when both
// operands are committed polynomials (e.g. rlc(c_poly, S_sigma3)).
func RLC(x, y Polynomial, beta, gamma field.Element) (Polynomial, error) {
	if err := x.checkCompatible("RLC", y); err != nil {
		return Polynomial{}, err
	}
	out := make([]field.Element, len(x.Values))
	for i := range out {
		out[i] = field.RLC(x.Values[i], y.Values[i], beta, gamma)
	}
	return Polynomial{Values: out, Basis: x.Basis}, nil
}

// Shift returns the polynomial whose i-th value equals p's value at index
// (i+k) mod len(p.Values). Only meaningful in a Lagrange-like basis: used
// to realise Z(X*omega) from Z(X) in the coset-extended basis with k=4
// (a unit rotation in the base subgroup corresponds to multiplication by
// mu^4 = omega in the 4n-th roots of unity).
func (p Polynomial) Shift(k int) Polynomial {
	n := len(p.Values)
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		src := ((i+k)%n + n) % n
		out[i] = p.Values[src]
	}
	return Polynomial{Values: out, Basis: p.Basis}
}

// BarycentricEval evaluates a Lagrange-basis polynomial at an arbitrary
// point z, in O(n) scalar operations:
//
//	p(z) = (z^n - 1)/n * sum_i values[i] * omega^i / (z - omega^i)
//
// If z happens to coincide with one of the evaluation points, the
// corresponding value is returned directly rather than dividing by zero.
func (p Polynomial) BarycentricEval(z field.Element) (field.Element, error) {
	if p.Basis != Lagrange {
		return field.Zero(), &proverr.BasisMismatchError{Op: "BarycentricEval", Detail: "only defined in the Lagrange basis"}
	}
	n := len(p.Values)
	roots, err := field.RootsOfUnity(uint64(n))
	if err != nil {
		return field.Zero(), err
	}

	denominators := make([]field.Element, n)
	for i := range denominators {
		denominators[i].Sub(&z, &roots[i])
		if denominators[i].IsZero() {
			return p.Values[i], nil
		}
	}
	invDenominators := field.BatchInvert(denominators)

	var zn, one, nInv, coeff, acc, term field.Element
	one.SetOne()
	zn.Exp(z, new(big.Int).SetUint64(uint64(n)))
	coeff.Sub(&zn, &one)
	nInv.SetUint64(uint64(n))
	nInv.Inverse(&nInv)
	coeff.Mul(&coeff, &nInv)

	for i := 0; i < n; i++ {
		term.Mul(&p.Values[i], &roots[i])
		term.Mul(&term, &invDenominators[i])
		acc.Add(&acc, &term)
	}
	acc.Mul(&acc, &coeff)
	return acc, nil
}

// ToMonomial converts a Lagrange-basis polynomial of length n to its
// monomial (coefficient) form, via an inverse FFT over domain (which must
// have Cardinality == len(p.Values)).
func (p Polynomial) ToMonomial(domain *fft.Domain) (Polynomial, error) {
	if p.Basis != Lagrange {
		return Polynomial{}, &proverr.BasisMismatchError{Op: "ToMonomial", Detail: "expected Lagrange basis"}
	}
	if err := checkDomainSize(domain, len(p.Values)); err != nil {
		return Polynomial{}, err
	}
	coeffs := ifftRegular(domain, p.Values)
	return Polynomial{Values: coeffs, Basis: Monomial}, nil
}

// FFT converts a Monomial-basis polynomial of length n to Lagrange basis
// over the n-th roots of unity (domain.Cardinality == n).
func (p Polynomial) FFT(domain *fft.Domain) (Polynomial, error) {
	if p.Basis != Monomial {
		return Polynomial{}, &proverr.BasisMismatchError{Op: "FFT", Detail: "expected Monomial basis"}
	}
	if err := checkDomainSize(domain, len(p.Values)); err != nil {
		return Polynomial{}, err
	}
	values := fftRegular(domain, p.Values)
	return Polynomial{Values: values, Basis: Lagrange}, nil
}

// ToCosetExtendedLagrange expands a Lagrange-basis polynomial of length n
// into the coset-extended Lagrange basis of length 4n (fft_expand):
// (i) IFFT to monomial over small (size n), (ii) scale coefficient i by
// h^i, (iii) zero-pad to 4n, (iv) FFT of size 4n over big. The resulting
// values equal the original polynomial evaluated at h*mu^i.
func (p Polynomial) ToCosetExtendedLagrange(small, big *fft.Domain, h field.Element) (Polynomial, error) {
	if p.Basis != Lagrange {
		return Polynomial{}, &proverr.BasisMismatchError{Op: "ToCosetExtendedLagrange", Detail: "expected Lagrange basis"}
	}
	n := len(p.Values)
	if err := checkDomainSize(small, n); err != nil {
		return Polynomial{}, err
	}
	if err := checkDomainSize(big, 4*n); err != nil {
		return Polynomial{}, err
	}

	coeffs := ifftRegular(small, p.Values)

	scaled := make([]field.Element, 4*n)
	hp := field.One()
	for i := range coeffs {
		scaled[i].Mul(&coeffs[i], &hp)
		hp.Mul(&hp, &h)
	}
	// scaled[n:] stays zero (the padding).

	values := fftRegular(big, scaled)
	return Polynomial{Values: values, Basis: CosetExtendedLagrange}, nil
}

// FromCosetExtendedLagrange is the inverse of ToCosetExtendedLagrange
// (coset_extended_lagrange_to_coeffs): it returns the length-4n monomial
// coefficients whose evaluation at h*mu^i reproduces p's values.
func (p Polynomial) FromCosetExtendedLagrange(big *fft.Domain, h field.Element) (Polynomial, error) {
	if p.Basis != CosetExtendedLagrange {
		return Polynomial{}, &proverr.BasisMismatchError{Op: "FromCosetExtendedLagrange", Detail: "expected CosetExtendedLagrange basis"}
	}
	m := len(p.Values)
	if err := checkDomainSize(big, m); err != nil {
		return Polynomial{}, err
	}

	scaled := ifftRegular(big, p.Values)

	var hInv field.Element
	hInv.Inverse(&h)

	out := make([]field.Element, m)
	hp := field.One()
	for i := range scaled {
		out[i].Mul(&scaled[i], &hp)
		hp.Mul(&hp, &hInv)
	}
	return Polynomial{Values: out, Basis: Monomial}, nil
}

// CosetValues returns the length-m polynomial, tagged CosetExtendedLagrange,
// whose i-th value is scale*h*mu^i (mu the primitive m-th root of unity of
// domain). Used to build the identity polynomials X, 2X, 3X of round 3/5
// directly, without an fft_expand round-trip.
func CosetValues(domain *fft.Domain, h, scale field.Element) (Polynomial, error) {
	m := domain.Cardinality
	mu := domain.Generator
	values := make([]field.Element, m)
	var cur field.Element
	cur.Mul(&h, &scale)
	for i := uint64(0); i < m; i++ {
		values[i] = cur
		cur.Mul(&cur, &mu)
	}
	return Polynomial{Values: values, Basis: CosetExtendedLagrange}, nil
}

// VanishingOnCoset returns Z_H(X) = X^n - 1 evaluated on the 4n-sized
// coset {h*mu^i}, where n = smallDomain.Cardinality.
func VanishingOnCoset(smallDomain, bigDomain *fft.Domain, h field.Element) (Polynomial, error) {
	n := smallDomain.Cardinality
	xs, err := CosetValues(bigDomain, h, field.One())
	if err != nil {
		return Polynomial{}, err
	}
	values := make([]field.Element, len(xs.Values))
	var one field.Element
	one.SetOne()
	nBig := new(big.Int).SetUint64(n)
	for i, x := range xs.Values {
		values[i].Exp(x, nBig)
		values[i].Sub(&values[i], &one)
	}
	return Polynomial{Values: values, Basis: CosetExtendedLagrange}, nil
}

func checkDomainSize(domain *fft.Domain, want int) error {
	if domain == nil || domain.Cardinality != uint64(want) {
		return &proverr.BasisMismatchError{Op: "domain", Detail: "fft domain cardinality does not match polynomial length"}
	}
	return nil
}

// ifftRegular returns the monomial coefficients, in regular (non
// bit-reversed) order, of the Lagrange-basis values given in regular
// order.
func ifftRegular(domain *fft.Domain, values []field.Element) []field.Element {
	coeffs := make([]field.Element, len(values))
	copy(coeffs, values)
	domain.FFTInverse(coeffs, fft.DIF)
	fft.BitReverse(coeffs)
	return coeffs
}

// fftRegular returns the Lagrange-basis values, in regular order, of the
// monomial coefficients given in regular order.
func fftRegular(domain *fft.Domain, coeffs []field.Element) []field.Element {
	values := make([]field.Element, len(coeffs))
	copy(values, coeffs)
	fft.BitReverse(values)
	domain.FFT(values, fft.DIT)
	return values
}
