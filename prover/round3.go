package prover

import (
	"golang.org/x/sync/errgroup"

	"github.com/plonkcore/prover/field"
	"github.com/plonkcore/prover/poly"
	"github.com/plonkcore/prover/proverr"
)

// round3 builds the quotient polynomial T on the coset-extended Lagrange
// domain, checks its degree is low enough to split into three
// group-order-sized chunks, and commits to those chunks.
func (run *proofRun) round3() (Message3, error) {
	p := run.prover
	cpi := p.program.CommonPreprocessedInput
	n := p.program.GroupOrder()
	small, big := p.domainSmall, p.domainBig
	h := run.h

	// Every polynomial below is expanded to the coset-extended domain
	// independently of the others, so the FFTs run concurrently - the
	// dominant cost of this round.
	var aBig, bBig, cBig, piBig poly.Polynomial
	var qlBig, qrBig, qmBig, qoBig, qcBig poly.Polynomial
	var zBig, s1Big, s2Big, s3Big poly.Polynomial

	expandInto := func(dst *poly.Polynomial, x poly.Polynomial) func() error {
		return func() error {
			v, err := x.ToCosetExtendedLagrange(small, big, h)
			if err != nil {
				return err
			}
			*dst = v
			return nil
		}
	}

	g := new(errgroup.Group)
	g.Go(expandInto(&aBig, run.A))
	g.Go(expandInto(&bBig, run.B))
	g.Go(expandInto(&cBig, run.C))
	g.Go(expandInto(&piBig, run.pi))
	g.Go(expandInto(&qlBig, cpi.QL))
	g.Go(expandInto(&qrBig, cpi.QR))
	g.Go(expandInto(&qmBig, cpi.QM))
	g.Go(expandInto(&qoBig, cpi.QO))
	g.Go(expandInto(&qcBig, cpi.QC))
	g.Go(expandInto(&zBig, run.Z))
	g.Go(expandInto(&s1Big, cpi.S1))
	g.Go(expandInto(&s2Big, cpi.S2))
	g.Go(expandInto(&s3Big, cpi.S3))
	if err := g.Wait(); err != nil {
		return Message3{}, err
	}

	run.ZBig = zBig
	zShiftedBig := zBig.Shift(4)

	zH, err := poly.VanishingOnCoset(small, big, h)
	if err != nil {
		return Message3{}, err
	}

	l0Values := make([]field.Element, n)
	l0Values[0].SetOne()
	run.L0 = poly.New(l0Values, poly.Lagrange)
	l0Big, err := run.L0.ToCosetExtendedLagrange(small, big, h)
	if err != nil {
		return Message3{}, err
	}

	x1, err := poly.CosetValues(big, h, field.One())
	if err != nil {
		return Message3{}, err
	}
	var twoS, threeS field.Element
	twoS.SetUint64(2)
	threeS.SetUint64(3)
	x2, err := poly.CosetValues(big, h, twoS)
	if err != nil {
		return Message3{}, err
	}
	x3, err := poly.CosetValues(big, h, threeS)
	if err != nil {
		return Message3{}, err
	}

	// t_gate = (A*B*QM + A*QL + B*QR + C*QO + PI + QC) / Z_H
	tGate, err := sumGateTerms(aBig, bBig, cBig, qlBig, qrBig, qmBig, qoBig, piBig, qcBig)
	if err != nil {
		return Message3{}, err
	}
	tGate, err = tGate.Div(zH)
	if err != nil {
		return Message3{}, err
	}

	// t_perm = alpha * (rlc(A,X)*rlc(B,2X)*rlc(C,3X)*Z - rlc(A,S1)*rlc(B,S2)*rlc(C,S3)*Z_shifted) / Z_H
	lhs, err := permutationLHS(aBig, bBig, cBig, x1, x2, x3, zBig, run.beta, run.gamma)
	if err != nil {
		return Message3{}, err
	}
	rhs, err := permutationRHS(aBig, bBig, cBig, s1Big, s2Big, s3Big, zShiftedBig, run.beta, run.gamma)
	if err != nil {
		return Message3{}, err
	}
	tPerm, err := lhs.Sub(rhs)
	if err != nil {
		return Message3{}, err
	}
	tPerm = tPerm.MulScalar(run.alpha)
	tPerm, err = tPerm.Div(zH)
	if err != nil {
		return Message3{}, err
	}

	// t_L0 = alpha^2 * (Z - 1) * L0 / Z_H
	var alpha2 field.Element
	alpha2.Mul(&run.alpha, &run.alpha)
	tL0 := zBig.SubScalar(field.One())
	tL0, err = tL0.Mul(l0Big)
	if err != nil {
		return Message3{}, err
	}
	tL0 = tL0.MulScalar(alpha2)
	tL0, err = tL0.Div(zH)
	if err != nil {
		return Message3{}, err
	}

	quotBig, err := tGate.Add(tPerm)
	if err != nil {
		return Message3{}, err
	}
	quotBig, err = quotBig.Add(tL0)
	if err != nil {
		return Message3{}, err
	}

	quotCoeffs, err := quotBig.FromCosetExtendedLagrange(big, h)
	if err != nil {
		return Message3{}, err
	}
	for i := 3 * n; i < 4*n; i++ {
		if !quotCoeffs.Values[i].IsZero() {
			return Message3{}, &proverr.DegreeOverflowError{Poly: "T", Round: "3"}
		}
	}

	t1, err := poly.New(quotCoeffs.Values[0:n], poly.Monomial).FFT(small)
	if err != nil {
		return Message3{}, err
	}
	t2, err := poly.New(quotCoeffs.Values[n:2*n], poly.Monomial).FFT(small)
	if err != nil {
		return Message3{}, err
	}
	t3, err := poly.New(quotCoeffs.Values[2*n:3*n], poly.Monomial).FFT(small)
	if err != nil {
		return Message3{}, err
	}
	run.T1, run.T2, run.T3 = t1, t2, t3

	tLoDigest, err := p.setup.Commit(run.T1)
	if err != nil {
		return Message3{}, err
	}
	tMidDigest, err := p.setup.Commit(run.T2)
	if err != nil {
		return Message3{}, err
	}
	tHiDigest, err := p.setup.Commit(run.T3)
	if err != nil {
		return Message3{}, err
	}

	return Message3{TLo: tLoDigest, TMid: tMidDigest, THi: tHiDigest}, nil
}

func sumGateTerms(a, b, c, ql, qr, qm, qo, pi, qc poly.Polynomial) (poly.Polynomial, error) {
	ab, err := a.Mul(b)
	if err != nil {
		return poly.Polynomial{}, err
	}
	term, err := ab.Mul(qm)
	if err != nil {
		return poly.Polynomial{}, err
	}
	add := func(acc poly.Polynomial, x poly.Polynomial) (poly.Polynomial, error) { return acc.Add(x) }

	aql, err := a.Mul(ql)
	if err != nil {
		return poly.Polynomial{}, err
	}
	if term, err = add(term, aql); err != nil {
		return poly.Polynomial{}, err
	}

	bqr, err := b.Mul(qr)
	if err != nil {
		return poly.Polynomial{}, err
	}
	if term, err = add(term, bqr); err != nil {
		return poly.Polynomial{}, err
	}

	cqo, err := c.Mul(qo)
	if err != nil {
		return poly.Polynomial{}, err
	}
	if term, err = add(term, cqo); err != nil {
		return poly.Polynomial{}, err
	}

	if term, err = add(term, pi); err != nil {
		return poly.Polynomial{}, err
	}
	if term, err = add(term, qc); err != nil {
		return poly.Polynomial{}, err
	}
	return term, nil
}

func permutationLHS(a, b, c, x1, x2, x3, z poly.Polynomial, beta, gamma field.Element) (poly.Polynomial, error) {
	ra, err := poly.RLC(a, x1, beta, gamma)
	if err != nil {
		return poly.Polynomial{}, err
	}
	rb, err := poly.RLC(b, x2, beta, gamma)
	if err != nil {
		return poly.Polynomial{}, err
	}
	rc, err := poly.RLC(c, x3, beta, gamma)
	if err != nil {
		return poly.Polynomial{}, err
	}
	prod, err := ra.Mul(rb)
	if err != nil {
		return poly.Polynomial{}, err
	}
	prod, err = prod.Mul(rc)
	if err != nil {
		return poly.Polynomial{}, err
	}
	return prod.Mul(z)
}

func permutationRHS(a, b, c, s1, s2, s3, zShifted poly.Polynomial, beta, gamma field.Element) (poly.Polynomial, error) {
	ra, err := poly.RLC(a, s1, beta, gamma)
	if err != nil {
		return poly.Polynomial{}, err
	}
	rb, err := poly.RLC(b, s2, beta, gamma)
	if err != nil {
		return poly.Polynomial{}, err
	}
	rc, err := poly.RLC(c, s3, beta, gamma)
	if err != nil {
		return poly.Polynomial{}, err
	}
	prod, err := ra.Mul(rb)
	if err != nil {
		return poly.Polynomial{}, err
	}
	prod, err = prod.Mul(rc)
	if err != nil {
		return poly.Polynomial{}, err
	}
	return prod.Mul(zShifted)
}
