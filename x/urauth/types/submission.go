package types

import (
	"bytes"
	"fmt"
	"slices"
)

// VerificationResult is the outcome of a single oracle submission.
type VerificationResult uint8

const (
	VerificationInProgress VerificationResult = iota
	VerificationComplete
	VerificationTie
)

func (r VerificationResult) String() string {
	switch r {
	case VerificationComplete:
		return "complete"
	case VerificationTie:
		return "tie"
	default:
		return "in_progress"
	}
}

// QuorumThreshold returns ceil(3n/5), never less than one.
func QuorumThreshold(members int) uint32 {
	if members <= 0 {
		return 1
	}
	return uint32((3*members + 4) / 5)
}

// DigestCount is how many oracle members observed a digest.
type DigestCount struct {
	Digest []byte `json:"digest"`
	Count  uint32 `json:"count"`
}

// VerificationSubmission is the running tally for one pending uri.
type VerificationSubmission struct {
	Voters    []string      `json:"voters"`
	Tally     []DigestCount `json:"tally"`
	Threshold uint32        `json:"threshold"`
}

// HasVoted reports whether voter already submitted
func (s VerificationSubmission) HasVoted(voter string) bool {
	return slices.Contains(s.Voters, voter)
}

// Count returns the tally for digest
func (s VerificationSubmission) Count(digest []byte) uint32 {
	for _, dc := range s.Tally {
		if bytes.Equal(dc.Digest, digest) {
			return dc.Count
		}
	}
	return 0
}

// Submit records a vote. The threshold is recomputed from the current
// member count on every call.
func (s *VerificationSubmission) Submit(voter string, digest []byte, members int) (VerificationResult, error) {
	if s.HasVoted(voter) {
		return VerificationInProgress, fmt.Errorf("member %s already submitted", voter)
	}

	s.Threshold = QuorumThreshold(members)
	s.Voters = append(s.Voters, voter)

	count := s.increment(digest)
	if count >= s.Threshold {
		return VerificationComplete, nil
	}
	if len(s.Voters) >= members {
		return VerificationTie, nil
	}
	return VerificationInProgress, nil
}

func (s *VerificationSubmission) increment(digest []byte) uint32 {
	for i := range s.Tally {
		if bytes.Equal(s.Tally[i].Digest, digest) {
			s.Tally[i].Count++
			return s.Tally[i].Count
		}
	}
	s.Tally = append(s.Tally, DigestCount{Digest: append([]byte(nil), digest...), Count: 1})
	return 1
}
