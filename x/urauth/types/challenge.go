package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/sonr-io/urauth/crypto/keys"
)

// ChallengeLength is the size of a challenge value
const ChallengeLength = 32

// ChallengeProof is the signature block of a challenge envelope.
type ChallengeProof struct {
	Type       string `json:"type"`
	ProofValue string `json:"proofValue"`
}

// ChallengeEnvelope is the off-chain attestation an oracle observes at the
// claimed uri and relays on chain.
type ChallengeEnvelope struct {
	Domain    string         `json:"domain"`
	AdminDID  string         `json:"adminDID"`
	Challenge string         `json:"challenge"`
	Timestamp string         `json:"timestamp"`
	Proof     ChallengeProof `json:"proof"`
}

// ParseChallengeEnvelope decodes and sanity checks a raw envelope
func ParseChallengeEnvelope(raw []byte) (ChallengeEnvelope, error) {
	var env ChallengeEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return env, err
	}
	switch {
	case env.Domain == "":
		return env, fmt.Errorf("missing domain")
	case env.AdminDID == "":
		return env, fmt.Errorf("missing adminDID")
	case env.Challenge == "":
		return env, fmt.Errorf("missing challenge")
	case env.Proof.Type == "":
		return env, fmt.Errorf("missing proof type")
	case env.Proof.ProofValue == "":
		return env, fmt.Errorf("missing proof value")
	}
	return env, nil
}

// ChallengeValue decodes the hex challenge
func (e ChallengeEnvelope) ChallengeValue() ([]byte, error) {
	bz, err := decodeHex(e.Challenge)
	if err != nil {
		return nil, err
	}
	if len(bz) != ChallengeLength {
		return nil, fmt.Errorf("challenge must be %d bytes, got %d", ChallengeLength, len(bz))
	}
	return bz, nil
}

// Signature decodes the hex proof value
func (e ChallengeEnvelope) Signature() ([]byte, error) {
	return decodeHex(e.Proof.ProofValue)
}

// SigningPayload rebuilds the bytes the admin signed
func (e ChallengeEnvelope) SigningPayload() ([]byte, error) {
	challenge, err := e.ChallengeValue()
	if err != nil {
		return nil, err
	}
	return ChallengeSigningPayload(e.Domain, e.AdminDID, challenge, e.Timestamp), nil
}

// Marshal encodes the envelope as JSON
func (e ChallengeEnvelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// NewChallengeEnvelope builds and signs an envelope for uri
func NewChallengeEnvelope(uri, adminDID string, challenge []byte, timestamp string, signer keys.Signer) (ChallengeEnvelope, error) {
	sig, err := signer.Sign(ChallengeSigningPayload(uri, adminDID, challenge, timestamp))
	if err != nil {
		return ChallengeEnvelope{}, err
	}
	return ChallengeEnvelope{
		Domain:    uri,
		AdminDID:  adminDID,
		Challenge: hex.EncodeToString(challenge),
		Timestamp: timestamp,
		Proof: ChallengeProof{
			Type:       signer.Scheme().ProofType(),
			ProofValue: hex.EncodeToString(sig),
		},
	}, nil
}

// ChallengeSigningPayload frames (uri, did, challenge, timestamp)
func ChallengeSigningPayload(uri, did string, challenge []byte, timestamp string) []byte {
	return keys.SigningPayload([]byte(uri), []byte(did), challenge, []byte(timestamp))
}

// RequestSigningPayload frames (uri, did, nonce) for request and claim proofs
func RequestSigningPayload(uri, did string, nonce uint64) []byte {
	return keys.SigningPayload([]byte(uri), []byte(did), keys.EncodeNonce(nonce))
}

// UpdateSigningPayload frames (uri, document, field, nonce). The document
// is the post-mutation state with proofs cleared.
func UpdateSigningPayload(uri string, preview URAuthDoc, field UpdateDocField, nonce uint64) ([]byte, error) {
	preview.Proofs = nil
	doc, err := json.Marshal(preview)
	if err != nil {
		return nil, err
	}
	f, err := json.Marshal(field)
	if err != nil {
		return nil, err
	}
	return keys.SigningPayload([]byte(uri), doc, f, keys.EncodeNonce(nonce)), nil
}

// SubmissionDigest hashes a raw oracle submission
func SubmissionDigest(raw []byte) []byte {
	sum := blake2b.Sum256(raw)
	return sum[:]
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}
