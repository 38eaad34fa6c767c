package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sonr-io/urauth/x/urauth/types"
)

func TestQuorumThreshold(t *testing.T) {
	want := []uint32{1, 2, 2, 3, 3}
	for n := 1; n <= 5; n++ {
		require.Equal(t, want[n-1], types.QuorumThreshold(n), "members=%d", n)
	}
	require.Equal(t, uint32(6), types.QuorumThreshold(10))
	require.Equal(t, uint32(1), types.QuorumThreshold(0))
}

func TestSubmissionCompletesOnThreshold(t *testing.T) {
	var s types.VerificationSubmission
	digest := types.SubmissionDigest([]byte("observation"))

	res, err := s.Submit("a", digest, 5)
	require.NoError(t, err)
	require.Equal(t, types.VerificationInProgress, res)
	require.Equal(t, uint32(3), s.Threshold)

	res, err = s.Submit("b", digest, 5)
	require.NoError(t, err)
	require.Equal(t, types.VerificationInProgress, res)
	require.Equal(t, uint32(2), s.Count(digest))

	res, err = s.Submit("c", digest, 5)
	require.NoError(t, err)
	require.Equal(t, types.VerificationComplete, res)
}

func TestSubmissionTie(t *testing.T) {
	var s types.VerificationSubmission

	for i, voter := range []string{"a", "b"} {
		res, err := s.Submit(voter, types.SubmissionDigest([]byte{byte(i)}), 3)
		require.NoError(t, err)
		require.Equal(t, types.VerificationInProgress, res)
	}

	res, err := s.Submit("c", types.SubmissionDigest([]byte{2}), 3)
	require.NoError(t, err)
	require.Equal(t, types.VerificationTie, res)
	require.Len(t, s.Tally, 3)
}

func TestSubmissionSingleMember(t *testing.T) {
	var s types.VerificationSubmission
	res, err := s.Submit("a", []byte{1}, 1)
	require.NoError(t, err)
	require.Equal(t, types.VerificationComplete, res)
}

func TestSubmissionRejectsRepeatVoter(t *testing.T) {
	var s types.VerificationSubmission
	_, err := s.Submit("a", []byte{1}, 5)
	require.NoError(t, err)

	_, err = s.Submit("a", []byte{2}, 5)
	require.Error(t, err)
	require.Len(t, s.Voters, 1)
	require.Equal(t, uint32(0), s.Count([]byte{2}))
}

func TestSubmissionThresholdFollowsMembership(t *testing.T) {
	var s types.VerificationSubmission
	_, err := s.Submit("a", []byte{1}, 5)
	require.NoError(t, err)

	// membership shrank to two: threshold drops to 2
	res, err := s.Submit("b", []byte{1}, 2)
	require.NoError(t, err)
	require.Equal(t, types.VerificationComplete, res)
	require.Equal(t, uint32(2), s.Threshold)
}
