package poly_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/plonkcore/prover/field"
	"github.com/plonkcore/prover/poly"
)

func smallBigDomains(n uint64) (*fft.Domain, *fft.Domain) {
	small := fft.NewDomain(n, fft.WithoutPrecompute())
	big := fft.NewDomain(4*n, fft.WithoutPrecompute())
	return small, big
}

func TestFFTRoundTrip(t *testing.T) {
	const n = 8
	small, _ := smallBigDomains(n)

	values := make([]field.Element, n)
	for i := range values {
		values[i] = field.FromInt64(int64(i + 1))
	}
	p := poly.New(values, poly.Lagrange)

	mono, err := p.ToMonomial(small)
	require.NoError(t, err)
	require.Equal(t, poly.Monomial, mono.Basis)

	back, err := mono.FFT(small)
	require.NoError(t, err)
	require.Equal(t, poly.Lagrange, back.Basis)

	for i := range values {
		require.True(t, values[i].Equal(&back.Values[i]), "index %d", i)
	}
}

func TestCosetExtendedLagrangeRoundTrip(t *testing.T) {
	const n = 8
	small, big := smallBigDomains(n)
	h := big.FrMultiplicativeGen

	values := make([]field.Element, n)
	for i := range values {
		values[i] = field.FromInt64(int64(2*i + 1))
	}
	p := poly.New(values, poly.Lagrange)

	expanded, err := p.ToCosetExtendedLagrange(small, big, h)
	require.NoError(t, err)
	require.Equal(t, poly.CosetExtendedLagrange, expanded.Basis)
	require.Len(t, expanded.Values, 4*n)

	coeffs, err := expanded.FromCosetExtendedLagrange(big, h)
	require.NoError(t, err)
	require.Equal(t, poly.Monomial, coeffs.Basis)

	// The low n coefficients reproduce the original polynomial's monomial
	// form; the rest must be the zero padding fft_expand introduces.
	mono, err := p.ToMonomial(small)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.True(t, mono.Values[i].Equal(&coeffs.Values[i]), "coeff %d", i)
	}
	for i := n; i < 4*n; i++ {
		require.True(t, coeffs.Values[i].IsZero(), "padding coeff %d should vanish", i)
	}
}

func TestShiftIsRotation(t *testing.T) {
	const n = 4
	values := []field.Element{field.FromInt64(10), field.FromInt64(20), field.FromInt64(30), field.FromInt64(40)}
	p := poly.New(values, poly.Lagrange)

	shifted := p.Shift(1)
	want := []field.Element{field.FromInt64(20), field.FromInt64(30), field.FromInt64(40), field.FromInt64(10)}
	for i := range want {
		require.True(t, want[i].Equal(&shifted.Values[i]), "index %d", i)
	}
}

func TestBarycentricEvalAtSamplePoint(t *testing.T) {
	const n = 8
	roots, err := field.RootsOfUnity(n)
	require.NoError(t, err)

	values := make([]field.Element, n)
	for i := range values {
		values[i] = field.FromInt64(int64(i*i + 1))
	}
	p := poly.New(values, poly.Lagrange)

	for i, root := range roots {
		got, err := p.BarycentricEval(root)
		require.NoError(t, err)
		require.True(t, got.Equal(&values[i]), "index %d", i)
	}
}

func TestBarycentricEvalMatchesMonomialEval(t *testing.T) {
	const n = 8
	small, _ := smallBigDomains(n)

	values := make([]field.Element, n)
	for i := range values {
		values[i] = field.FromInt64(int64(3*i + 7))
	}
	p := poly.New(values, poly.Lagrange)

	mono, err := p.ToMonomial(small)
	require.NoError(t, err)

	z := field.FromInt64(12345)
	got, err := p.BarycentricEval(z)
	require.NoError(t, err)

	want := evalMonomial(mono.Values, z)
	require.True(t, got.Equal(&want))
}

func evalMonomial(coeffs []field.Element, z field.Element) field.Element {
	var acc field.Element
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc.Mul(&acc, &z)
		acc.Add(&acc, &coeffs[i])
	}
	return acc
}

func TestAddSubMulDivPointwise(t *testing.T) {
	a := poly.New([]field.Element{field.FromInt64(2), field.FromInt64(3)}, poly.Lagrange)
	b := poly.New([]field.Element{field.FromInt64(5), field.FromInt64(7)}, poly.Lagrange)

	sum, err := a.Add(b)
	require.NoError(t, err)
	want := field.FromInt64(7)
	require.True(t, want.Equal(&sum.Values[0]))

	diff, err := a.Sub(b)
	require.NoError(t, err)
	want = field.FromInt64(-3)
	require.True(t, want.Equal(&diff.Values[0]))

	prod, err := a.Mul(b)
	require.NoError(t, err)
	want = field.FromInt64(10)
	require.True(t, want.Equal(&prod.Values[0]))

	quot, err := b.Div(a)
	require.NoError(t, err)
	var check field.Element
	check.Mul(&quot.Values[0], &a.Values[0])
	require.True(t, check.Equal(&b.Values[0]))
}

func TestMulRejectsMonomialBasis(t *testing.T) {
	a := poly.New([]field.Element{field.FromInt64(1), field.FromInt64(2)}, poly.Monomial)
	b := poly.New([]field.Element{field.FromInt64(3), field.FromInt64(4)}, poly.Monomial)
	_, err := a.Mul(b)
	require.Error(t, err)
}

func TestAddRejectsMismatchedBasis(t *testing.T) {
	a := poly.New([]field.Element{field.FromInt64(1)}, poly.Lagrange)
	b := poly.New([]field.Element{field.FromInt64(1)}, poly.Monomial)
	_, err := a.Add(b)
	require.Error(t, err)
}

func TestDivByZeroIsReported(t *testing.T) {
	a := poly.New([]field.Element{field.FromInt64(1)}, poly.Lagrange)
	zero := poly.New([]field.Element{field.Zero()}, poly.Lagrange)
	_, err := a.Div(zero)
	require.Error(t, err)
}

func TestRLCPolynomialProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	elementGen := gen.Int64Range(-100000, 100000).Map(field.FromInt64)

	properties.Property("poly.RLC matches pointwise field.RLC", prop.ForAll(
		func(x1, x2, y1, y2, beta, gamma field.Element) bool {
			x := poly.New([]field.Element{x1, x2}, poly.Lagrange)
			y := poly.New([]field.Element{y1, y2}, poly.Lagrange)
			got, err := poly.RLC(x, y, beta, gamma)
			if err != nil {
				return false
			}
			want0 := field.RLC(x1, y1, beta, gamma)
			want1 := field.RLC(x2, y2, beta, gamma)
			return got.Values[0].Equal(&want0) && got.Values[1].Equal(&want1)
		},
		elementGen, elementGen, elementGen, elementGen, elementGen, elementGen,
	))

	properties.TestingRun(t)
}
