package prover

import (
	"github.com/plonkcore/prover/field"
	"github.com/plonkcore/prover/poly"
	"github.com/plonkcore/prover/proverr"
)

// round2 builds the permutation grand-product polynomial Z: Z(omega^0)=1
// and Z(omega^(i+1)) = Z(omega^i) * numerator_i/denominator_i, where the
// numerator/denominator ratio telescopes to 1 exactly when every copy
// constraint in the witness holds.
func (run *proofRun) round2() (Message2, error) {
	p := run.prover
	cpi := p.program.CommonPreprocessedInput
	n := int(p.program.GroupOrder())

	roots, err := field.RootsOfUnity(uint64(n))
	if err != nil {
		return Message2{}, err
	}

	// acc holds Z_0..Z_n (n+1 values): acc[0]=1, and acc[n] must equal 1
	// for the witness to satisfy every copy constraint. Only acc[0:n]
	// becomes the Z polynomial.
	acc := make([]field.Element, n+1)
	acc[0].SetOne()

	var two, three field.Element
	two.SetUint64(2)
	three.SetUint64(3)

	for i := 0; i < n; i++ {
		var k1, k2 field.Element
		k1.Mul(&two, &roots[i])
		k2.Mul(&three, &roots[i])

		numerator := field.RLC(run.A.Values[i], roots[i], run.beta, run.gamma)
		var t field.Element
		t = field.RLC(run.B.Values[i], k1, run.beta, run.gamma)
		numerator.Mul(&numerator, &t)
		t = field.RLC(run.C.Values[i], k2, run.beta, run.gamma)
		numerator.Mul(&numerator, &t)

		denominator := field.RLC(run.A.Values[i], cpi.S1.Values[i], run.beta, run.gamma)
		t = field.RLC(run.B.Values[i], cpi.S2.Values[i], run.beta, run.gamma)
		denominator.Mul(&denominator, &t)
		t = field.RLC(run.C.Values[i], cpi.S3.Values[i], run.beta, run.gamma)
		denominator.Mul(&denominator, &t)

		if denominator.IsZero() {
			return Message2{}, &proverr.DivisionByZeroError{Index: i}
		}
		var ratio field.Element
		ratio.Inverse(&denominator)
		ratio.Mul(&ratio, &numerator)

		acc[i+1].Mul(&acc[i], &ratio)
	}

	var permErr error
	if !acc[n].IsOne() {
		permErr = &proverr.InvalidPermutationError{Got: acc[n].String()}
	}

	run.Z = poly.New(acc[:n], poly.Lagrange)

	zDigest, err := p.setup.Commit(run.Z)
	if err != nil {
		return Message2{}, err
	}
	return Message2{Z: zDigest}, permErr
}
