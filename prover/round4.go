package prover

import "github.com/plonkcore/prover/field"

// round4 evaluates the wire, permutation, and grand-product polynomials
// at the challenge point zeta (and, for Z, at zeta*omega), the values the
// linearisation polynomial in round 5 will be built around.
func (run *proofRun) round4() Message4 {
	p := run.prover
	cpi := p.program.CommonPreprocessedInput
	n := p.program.GroupOrder()

	// BarycentricEval only fails on a basis mismatch or a degenerate root
	// lookup, neither possible here: A/B/C/S1/S2/Z are always Lagrange of
	// length n, and RootsOfUnity(n) already succeeded in round 2.
	aEval, _ := run.A.BarycentricEval(run.zeta)
	bEval, _ := run.B.BarycentricEval(run.zeta)
	cEval, _ := run.C.BarycentricEval(run.zeta)
	s1Eval, _ := cpi.S1.BarycentricEval(run.zeta)
	s2Eval, _ := cpi.S2.BarycentricEval(run.zeta)

	omega, _ := field.RootOfUnity(n)
	var zetaOmega field.Element
	zetaOmega.Mul(&run.zeta, &omega)
	zShiftedEval, _ := run.Z.BarycentricEval(zetaOmega)

	run.aEval, run.bEval, run.cEval = aEval, bEval, cEval
	run.s1Eval, run.s2Eval = s1Eval, s2Eval
	run.zShiftedEval = zShiftedEval

	return Message4{
		AEval: aEval, BEval: bEval, CEval: cEval,
		S1Eval: s1Eval, S2Eval: s2Eval,
		ZShiftedEval: zShiftedEval,
	}
}
