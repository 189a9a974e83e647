package prover

import (
	stdbig "math/big"

	"github.com/plonkcore/prover/field"
	"github.com/plonkcore/prover/poly"
	"github.com/plonkcore/prover/proverr"
)

// round5 builds the linearisation polynomial R (which must vanish at
// zeta iff every prior check holds) and the two aggregated KZG opening
// proofs W_z and W_zomega that let a verifier confirm it without seeing
// the wire polynomials themselves.
func (run *proofRun) round5() (Message5, error) {
	p := run.prover
	cpi := p.program.CommonPreprocessedInput
	n := p.program.GroupOrder()
	small, big := p.domainSmall, p.domainBig
	h := run.h
	zeta := run.zeta

	expand := func(x poly.Polynomial) (poly.Polynomial, error) {
		return x.ToCosetExtendedLagrange(small, big, h)
	}

	l1Eval, err := run.L0.BarycentricEval(zeta)
	if err != nil {
		return Message5{}, err
	}

	var one field.Element
	one.SetOne()
	var zHEval field.Element
	zHEval.Exp(zeta, new(stdbig.Int).SetUint64(n))
	zHEval.Sub(&zHEval, &one)

	t1Big, err := expand(run.T1)
	if err != nil {
		return Message5{}, err
	}
	t2Big, err := expand(run.T2)
	if err != nil {
		return Message5{}, err
	}
	t3Big, err := expand(run.T3)
	if err != nil {
		return Message5{}, err
	}

	qlBig, err := expand(cpi.QL)
	if err != nil {
		return Message5{}, err
	}
	qrBig, err := expand(cpi.QR)
	if err != nil {
		return Message5{}, err
	}
	qmBig, err := expand(cpi.QM)
	if err != nil {
		return Message5{}, err
	}
	qoBig, err := expand(cpi.QO)
	if err != nil {
		return Message5{}, err
	}
	qcBig, err := expand(cpi.QC)
	if err != nil {
		return Message5{}, err
	}
	s3Big, err := expand(cpi.S3)
	if err != nil {
		return Message5{}, err
	}

	piEval, err := run.pi.BarycentricEval(zeta)
	if err != nil {
		return Message5{}, err
	}

	// R_gates = QM*a_eval*b_eval + QL*a_eval + QR*b_eval + QO*c_eval + PI(zeta) + QC
	rGates := qmBig.MulScalar(run.aEval).MulScalar(run.bEval)
	rGates, err = rGates.Add(qlBig.MulScalar(run.aEval))
	if err != nil {
		return Message5{}, err
	}
	rGates, err = rGates.Add(qrBig.MulScalar(run.bEval))
	if err != nil {
		return Message5{}, err
	}
	rGates, err = rGates.Add(qoBig.MulScalar(run.cEval))
	if err != nil {
		return Message5{}, err
	}
	rGates = rGates.AddScalar(piEval)
	rGates, err = rGates.Add(qcBig)
	if err != nil {
		return Message5{}, err
	}

	// R_perm = Z * rlc(a_eval,zeta) * rlc(b_eval,2*zeta) * rlc(c_eval,3*zeta)
	//        - rlc(c_eval, S3) * rlc(a_eval,s1_eval) * rlc(b_eval,s2_eval) * z_shifted_eval
	var twoZeta, threeZeta field.Element
	twoZeta.Add(&zeta, &zeta)
	threeZeta.Add(&twoZeta, &zeta)

	coeff := field.RLC(run.aEval, zeta, run.beta, run.gamma)
	t := field.RLC(run.bEval, twoZeta, run.beta, run.gamma)
	coeff.Mul(&coeff, &t)
	t = field.RLC(run.cEval, threeZeta, run.beta, run.gamma)
	coeff.Mul(&coeff, &t)
	lhs := run.ZBig.MulScalar(coeff)

	cEvalPoly := poly.Constant(run.cEval, int(4*n), poly.CosetExtendedLagrange)
	rlcCS3, err := poly.RLC(cEvalPoly, s3Big, run.beta, run.gamma)
	if err != nil {
		return Message5{}, err
	}
	scalar := field.RLC(run.aEval, run.s1Eval, run.beta, run.gamma)
	t2 := field.RLC(run.bEval, run.s2Eval, run.beta, run.gamma)
	scalar.Mul(&scalar, &t2)
	scalar.Mul(&scalar, &run.zShiftedEval)
	rhs := rlcCS3.MulScalar(scalar)

	rPerm, err := lhs.Sub(rhs)
	if err != nil {
		return Message5{}, err
	}

	// R_perm_1st_row = (Z - 1) * L1(zeta)
	rPerm1 := run.ZBig.SubScalar(one).MulScalar(l1Eval)

	// R_quotient = T1 + T2*zeta^n + T3*zeta^(2n)
	var zetaN, zeta2N field.Element
	zetaN.Exp(zeta, new(stdbig.Int).SetUint64(n))
	zeta2N.Exp(zeta, new(stdbig.Int).SetUint64(2*n))
	rQuot, err := t1Big.Add(t2Big.MulScalar(zetaN))
	if err != nil {
		return Message5{}, err
	}
	rQuot, err = rQuot.Add(t3Big.MulScalar(zeta2N))
	if err != nil {
		return Message5{}, err
	}

	var alpha2 field.Element
	alpha2.Mul(&run.alpha, &run.alpha)

	rBig, err := rGates.Add(rPerm.MulScalar(run.alpha))
	if err != nil {
		return Message5{}, err
	}
	rBig, err = rBig.Add(rPerm1.MulScalar(alpha2))
	if err != nil {
		return Message5{}, err
	}
	rBig, err = rBig.Sub(rQuot.MulScalar(zHEval))
	if err != nil {
		return Message5{}, err
	}

	rCoeffs, err := rBig.FromCosetExtendedLagrange(big, h)
	if err != nil {
		return Message5{}, err
	}
	for i := n; i < 4*n; i++ {
		if !rCoeffs.Values[i].IsZero() {
			return Message5{}, &proverr.DegreeOverflowError{Poly: "R", Round: "5"}
		}
	}
	r, err := poly.New(rCoeffs.Values[:n], poly.Monomial).FFT(small)
	if err != nil {
		return Message5{}, err
	}
	if rAtZeta, evalErr := r.BarycentricEval(zeta); evalErr == nil && !rAtZeta.IsZero() {
		return Message5{}, &proverr.DegreeOverflowError{Poly: "R(zeta)", Round: "5"}
	}

	aBig, err := expand(run.A)
	if err != nil {
		return Message5{}, err
	}
	bBig, err := expand(run.B)
	if err != nil {
		return Message5{}, err
	}
	cBig, err := expand(run.C)
	if err != nil {
		return Message5{}, err
	}
	s1Big, err := expand(cpi.S1)
	if err != nil {
		return Message5{}, err
	}
	s2Big, err := expand(cpi.S2)
	if err != nil {
		return Message5{}, err
	}

	x1, err := poly.CosetValues(big, h, one)
	if err != nil {
		return Message5{}, err
	}

	v := run.v
	var v2, v3, v4, v5 field.Element
	v2.Mul(&v, &v)
	v3.Mul(&v2, &v)
	v4.Mul(&v3, &v)
	v5.Mul(&v4, &v)

	wZBig, err := rBig.Add(aBig.SubScalar(run.aEval).MulScalar(v))
	if err != nil {
		return Message5{}, err
	}
	wZBig, err = wZBig.Add(bBig.SubScalar(run.bEval).MulScalar(v2))
	if err != nil {
		return Message5{}, err
	}
	wZBig, err = wZBig.Add(cBig.SubScalar(run.cEval).MulScalar(v3))
	if err != nil {
		return Message5{}, err
	}
	wZBig, err = wZBig.Add(s1Big.SubScalar(run.s1Eval).MulScalar(v4))
	if err != nil {
		return Message5{}, err
	}
	wZBig, err = wZBig.Add(s2Big.SubScalar(run.s2Eval).MulScalar(v5))
	if err != nil {
		return Message5{}, err
	}
	wZBig, err = wZBig.Div(x1.SubScalar(zeta))
	if err != nil {
		return Message5{}, err
	}

	wZCoeffs, err := wZBig.FromCosetExtendedLagrange(big, h)
	if err != nil {
		return Message5{}, err
	}
	for i := n; i < 4*n; i++ {
		if !wZCoeffs.Values[i].IsZero() {
			return Message5{}, &proverr.DegreeOverflowError{Poly: "W_z", Round: "5"}
		}
	}
	wZ, err := poly.New(wZCoeffs.Values[:n], poly.Monomial).FFT(small)
	if err != nil {
		return Message5{}, err
	}
	wZDigest, err := p.setup.Commit(wZ)
	if err != nil {
		return Message5{}, err
	}

	omega, err := field.RootOfUnity(n)
	if err != nil {
		return Message5{}, err
	}
	var zetaOmega field.Element
	zetaOmega.Mul(&zeta, &omega)

	wZOmegaBig, err := run.ZBig.SubScalar(run.zShiftedEval).Div(x1.SubScalar(zetaOmega))
	if err != nil {
		return Message5{}, err
	}
	wZOmegaCoeffs, err := wZOmegaBig.FromCosetExtendedLagrange(big, h)
	if err != nil {
		return Message5{}, err
	}
	for i := n; i < 4*n; i++ {
		if !wZOmegaCoeffs.Values[i].IsZero() {
			return Message5{}, &proverr.DegreeOverflowError{Poly: "W_zomega", Round: "5"}
		}
	}
	wZOmega, err := poly.New(wZOmegaCoeffs.Values[:n], poly.Monomial).FFT(small)
	if err != nil {
		return Message5{}, err
	}
	wZOmegaDigest, err := p.setup.Commit(wZOmega)
	if err != nil {
		return Message5{}, err
	}

	return Message5{WZ: wZDigest, WZOmega: wZOmegaDigest}, nil
}
