package prover

import (
	"crypto/sha256"
	"hash"
)

// Config holds the prover's tunable behaviour: the challenge hash
// function and a Force flag to let callers proceed past a fatal witness
// error for debugging, rather than changing the non-retryable default.
type Config struct {
	ChallengeHash func() hash.Hash
	Force         bool
}

// Option configures a Prover at construction time, following the
// functional-options shape used throughout the backend package this
// module's transcript and commitment wiring are drawn from.
type Option func(*Config) error

// NewConfig applies opts over the default configuration (SHA-256
// challenges, Force disabled).
func NewConfig(opts ...Option) (Config, error) {
	cfg := Config{ChallengeHash: sha256.New}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// WithChallengeHash overrides the hash function used to derive
// Fiat-Shamir challenges. The default is SHA-256.
func WithChallengeHash(h func() hash.Hash) Option {
	return func(cfg *Config) error {
		cfg.ChallengeHash = h
		return nil
	}
}

// WithForce disables the fatal-error short-circuit for the
// MalformedWitness and InvalidPermutation errors of rounds 1 and 2, so
// Prove carries on into the later rounds. The divisibility checks of
// rounds 3 and 5 still apply: a witness that breaks a gate or copy
// constraint leaves T not divisible by Z_H, and Prove then returns a
// DegreeOverflowError from round 3 instead of a proof. For debugging a
// circuit under development, never for production use.
func WithForce(force bool) Option {
	return func(cfg *Config) error {
		cfg.Force = force
		return nil
	}
}
