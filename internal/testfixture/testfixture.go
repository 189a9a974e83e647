// Package testfixture builds small, hand-checkable circuits shared by the
// package test suites - in particular the three-gate "e = (a*b)*d" example
// used to exercise the full five-round prover end to end.
package testfixture

import (
	"github.com/plonkcore/prover/circuit"
	"github.com/plonkcore/prover/field"
	"github.com/plonkcore/prover/poly"
)

// ExampleCircuit returns the program and a satisfying witness for
// e = (a*b)*d, with c holding the intermediate product a*b and e declared
// public. The circuit is padded to the next power of two (group order 4).
func ExampleCircuit() (*circuit.Program, circuit.Witness) {
	program := BuildProgram([]circuit.Gate{
		// e is public: enforced as 1*e + PI(row) = 0, PI(row) = -e.
		{L: "e", R: circuit.NoWire, O: circuit.NoWire},
		// a*b = c
		{L: "a", R: "b", O: "c"},
		// c*d = e
		{L: "c", R: "d", O: "e"},
	}, []circuit.WireID{"e"})

	witness := circuit.Witness{
		"a": field.FromInt64(3),
		"b": field.FromInt64(4),
		"c": field.FromInt64(12),
		"d": field.FromInt64(5),
		"e": field.FromInt64(60),
	}
	return program, witness
}

// gateKind tags which selector pattern a gate uses: a public-input gate
// (QL=1, everything else 0), a multiplication gate (QM=1, QO=-1), or a
// padding gate (all three wires NoWire, every selector 0).
type gateKind int

const (
	publicGate gateKind = iota
	mulGate
	paddingGate
)

// BuildProgram assembles a Program from gates and a list of public wires,
// using the multiplication-gate selector pattern for ordinary gates and
// the public-input pattern for gates whose L wire is in publicWires with
// an empty R and O (mirroring how a front-end compiler emits one gate per
// public input). The group order is the next power of two at least as
// large as len(gates), with a floor of 4 so the coset-extended domain
// (4x the group order) is never degenerate.
func BuildProgram(gates []circuit.Gate, publicWires []circuit.WireID) *circuit.Program {
	n := nextPow2(len(gates))
	if n < 4 {
		n = 4
	}

	public := make(map[circuit.WireID]bool, len(publicWires))
	for _, w := range publicWires {
		public[w] = true
	}

	ql := make([]field.Element, n)
	qr := make([]field.Element, n)
	qm := make([]field.Element, n)
	qo := make([]field.Element, n)
	qc := make([]field.Element, n)

	one := field.One()
	var negOne field.Element
	negOne.Sub(&field.Element{}, &one)

	padded := make([]circuit.Gate, n)
	for i := 0; i < n; i++ {
		if i < len(gates) {
			padded[i] = gates[i]
		} else {
			padded[i] = circuit.Gate{L: circuit.NoWire, R: circuit.NoWire, O: circuit.NoWire}
		}
	}

	for i, g := range padded {
		switch classify(g, public) {
		case publicGate:
			ql[i] = one
		case mulGate:
			qm[i] = one
			qo[i] = negOne
		default:
			// padding gate: all-zero selector row, trivially satisfied.
		}
	}

	s1, s2, s3 := BuildPermutation(padded, n)

	return &circuit.Program{
		CommonPreprocessedInput: circuit.CommonPreprocessedInput{
			GroupOrder: uint64(n),
			QL:         poly.New(ql, poly.Lagrange),
			QR:         poly.New(qr, poly.Lagrange),
			QM:         poly.New(qm, poly.Lagrange),
			QO:         poly.New(qo, poly.Lagrange),
			QC:         poly.New(qc, poly.Lagrange),
			S1:         s1,
			S2:         s2,
			S3:         s3,
		},
		Gates:             padded,
		PublicAssignments: publicWires,
	}
}

func classify(g circuit.Gate, public map[circuit.WireID]bool) gateKind {
	if g.L != circuit.NoWire && public[g.L] && g.R == circuit.NoWire && g.O == circuit.NoWire {
		return publicGate
	}
	if g.L == circuit.NoWire && g.R == circuit.NoWire && g.O == circuit.NoWire {
		return paddingGate
	}
	return mulGate
}

// BuildPermutation builds the three copy-permutation polynomials S1, S2,
// S3 (one per wire column) for a gate list of length n. Two cells (a
// column, row pair) are tied together whenever they carry the same wire
// label (NoWire cells are tied to each other too, harmlessly, since they
// always hold value zero). Within each tied group the cells are
// cyclically permuted; singleton groups map to themselves.
//
// The value assigned to cell (col, row) under permutation is
// (col+1)*omega^row: column 0 (L) uses coefficient 1, column 1 (R) uses
// coefficient 2, column 2 (O) uses coefficient 3, matching the random
// linear combination rlc(A, omega^row), rlc(B, 2*omega^row),
// rlc(C, 3*omega^row) used to assemble the permutation argument.
func BuildPermutation(gates []circuit.Gate, n int) (s1, s2, s3 poly.Polynomial) {
	omega, err := field.RootOfUnity(uint64(n))
	if err != nil {
		panic(err)
	}
	powers := make([]field.Element, n)
	powers[0].SetOne()
	for i := 1; i < n; i++ {
		powers[i].Mul(&powers[i-1], &omega)
	}

	label := func(col, row int) circuit.WireID {
		switch col {
		case 0:
			return gates[row].L
		case 1:
			return gates[row].R
		default:
			return gates[row].O
		}
	}

	groups := map[circuit.WireID][]int{}
	cellIndex := func(col, row int) int { return col*n + row }
	for col := 0; col < 3; col++ {
		for row := 0; row < n; row++ {
			l := label(col, row)
			groups[l] = append(groups[l], cellIndex(col, row))
		}
	}

	sigma := make([]int, 3*n)
	for i := range sigma {
		sigma[i] = i
	}
	for _, idxs := range groups {
		for j, idx := range idxs {
			sigma[idx] = idxs[(j+1)%len(idxs)]
		}
	}

	value := func(cell int) field.Element {
		col := cell / n
		row := cell % n
		var coeff field.Element
		coeff.SetUint64(uint64(col + 1))
		var v field.Element
		v.Mul(&coeff, &powers[row])
		return v
	}

	s1Values := make([]field.Element, n)
	s2Values := make([]field.Element, n)
	s3Values := make([]field.Element, n)
	for row := 0; row < n; row++ {
		s1Values[row] = value(sigma[cellIndex(0, row)])
		s2Values[row] = value(sigma[cellIndex(1, row)])
		s3Values[row] = value(sigma[cellIndex(2, row)])
	}

	return poly.New(s1Values, poly.Lagrange),
		poly.New(s2Values, poly.Lagrange),
		poly.New(s3Values, poly.Lagrange)
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
