package transcript_test

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plonkcore/prover/commitment"
	"github.com/plonkcore/prover/transcript"
)

func TestTranscriptIsDeterministic(t *testing.T) {
	a, b, c := commitment.Digest{}, commitment.Digest{}, commitment.Digest{}

	t1 := transcript.New(sha256.New())
	beta1, gamma1, err := t1.Round1(a, b, c)
	require.NoError(t, err)

	t2 := transcript.New(sha256.New())
	beta2, gamma2, err := t2.Round1(a, b, c)
	require.NoError(t, err)

	require.True(t, beta1.Equal(&beta2))
	require.True(t, gamma1.Equal(&gamma2))
}

func TestTranscriptChallengesDifferAcrossRounds(t *testing.T) {
	a, b, c := commitment.Digest{}, commitment.Digest{}, commitment.Digest{}

	tr := transcript.New(sha256.New())
	beta, gamma, err := tr.Round1(a, b, c)
	require.NoError(t, err)
	require.False(t, beta.Equal(&gamma))

	alpha, h, err := tr.Round2(commitment.Digest{})
	require.NoError(t, err)
	require.False(t, alpha.Equal(&beta))
	require.False(t, h.Equal(&alpha))

	zeta, err := tr.Round3(commitment.Digest{}, commitment.Digest{}, commitment.Digest{})
	require.NoError(t, err)
	require.False(t, zeta.Equal(&alpha))
}

func TestTranscriptChallengesDependOnMessages(t *testing.T) {
	a, b, c := commitment.Digest{}, commitment.Digest{}, commitment.Digest{}

	t1 := transcript.New(sha256.New())
	beta1, _, err := t1.Round1(a, b, c)
	require.NoError(t, err)

	var other commitment.Digest
	other.X.SetOne()
	t2 := transcript.New(sha256.New())
	beta2, _, err := t2.Round1(other, b, c)
	require.NoError(t, err)

	require.False(t, beta1.Equal(&beta2))
}
