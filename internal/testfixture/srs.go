package testfixture

import (
	"crypto/rand"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bn254/kzg"

	"github.com/plonkcore/prover/commitment"
)

// NewSetup builds a commitment.Setup backed by an insecure, randomly-drawn
// KZG SRS sized for a circuit of group order n. Tests only: the toxic
// waste (tau) is discarded, but it was never drawn from anything more
// elaborate than a single goroutine's crypto/rand read, which is fine for
// exercising the prover and meaningless as a real trusted setup.
func NewSetup(n uint64) (*commitment.Setup, error) {
	domain := fft.NewDomain(n, fft.WithoutPrecompute())

	tau, err := rand.Int(rand.Reader, fr254Modulus())
	if err != nil {
		return nil, err
	}

	srs, err := kzg.NewSRS(n+3, tau)
	if err != nil {
		return nil, err
	}

	return commitment.NewSetup(srs.Pk, domain), nil
}

func fr254Modulus() *big.Int {
	m, _ := new(big.Int).SetString("21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)
	return m
}
