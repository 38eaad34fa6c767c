package types

// RequestMetadata is the pending state of an ownership request.
type RequestMetadata struct {
	OwnerDID       string    `json:"owner_did"`
	ChallengeValue []byte    `json:"challenge_value"`
	ClaimType      ClaimType `json:"claim_type"`
	TargetURI      string    `json:"target_uri"`
	RequestedAt    int64     `json:"requested_at"`
	ExpiresAt      int64     `json:"expires_at"`
}
