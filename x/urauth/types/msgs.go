package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/sonr-io/urauth/crypto/keys"
)

// SignedProof is a signature with the key that produced it.
type SignedProof struct {
	Signer    keys.MultiSigner `json:"signer"`
	Signature []byte           `json:"signature"`
}

// ValidateBasic checks the proof is well formed
func (p SignedProof) ValidateBasic() error {
	if _, err := p.Signer.AccountID(); err != nil {
		return err
	}
	if len(p.Signature) == 0 {
		return fmt.Errorf("empty signature")
	}
	return nil
}

// MultiSignature tags the signature with the signer's scheme
func (p SignedProof) MultiSignature() keys.MultiSignature {
	return keys.MultiSignature{Scheme: p.Signer.Scheme, Signature: p.Signature}
}

// MsgRequestOwnership opens a challenge for uri.
type MsgRequestOwnership struct {
	ClaimType ClaimType   `json:"claim_type"`
	URI       string      `json:"uri"`
	OwnerDID  string      `json:"owner_did"`
	Challenge []byte      `json:"challenge,omitempty"`
	Proof     SignedProof `json:"proof"`
}

type MsgRequestOwnershipResponse struct {
	Challenge []byte `json:"challenge"`
	ExpiresAt int64  `json:"expires_at"`
}

func (m MsgRequestOwnership) ValidateBasic() error {
	if err := m.ClaimType.Validate(); err != nil {
		return errorsmod.Wrap(ErrInvalidClaimType, err.Error())
	}
	if m.URI == "" {
		return ErrInvalidURI
	}
	if m.OwnerDID == "" {
		return ErrInvalidDID
	}
	if m.Challenge != nil && len(m.Challenge) != ChallengeLength {
		return errorsmod.Wrapf(ErrBadChallengeValue, "challenge must be %d bytes", ChallengeLength)
	}
	if err := m.Proof.ValidateBasic(); err != nil {
		return errorsmod.Wrap(ErrBadProof, err.Error())
	}
	return nil
}

// MsgVerifyChallenge relays an observed challenge envelope.
type MsgVerifyChallenge struct {
	Oracle    string `json:"oracle"`
	Challenge string `json:"challenge"`
}

type MsgVerifyChallengeResponse struct {
	Result VerificationResult `json:"result"`
	DocID  *DocID             `json:"doc_id,omitempty"`
}

func (m MsgVerifyChallenge) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Oracle); err != nil {
		return errorsmod.Wrap(ErrNotOracleMember, err.Error())
	}
	if m.Challenge == "" {
		return ErrInvalidChallengeJSON
	}
	return nil
}

// MsgClaimOwnership registers uri directly through ancestry or the whitelist.
type MsgClaimOwnership struct {
	ClaimType ClaimType   `json:"claim_type"`
	URI       string      `json:"uri"`
	OwnerDID  string      `json:"owner_did"`
	Proof     SignedProof `json:"proof"`
}

type MsgClaimOwnershipResponse struct {
	DocID DocID `json:"doc_id"`
}

func (m MsgClaimOwnership) ValidateBasic() error {
	if err := m.ClaimType.Validate(); err != nil {
		return errorsmod.Wrap(ErrInvalidClaimType, err.Error())
	}
	if m.URI == "" {
		return ErrInvalidURI
	}
	if m.OwnerDID == "" {
		return ErrInvalidDID
	}
	if err := m.Proof.ValidateBasic(); err != nil {
		return errorsmod.Wrap(ErrBadProof, err.Error())
	}
	return nil
}

// MsgUpdateDocument contributes one owner proof to a document mutation.
type MsgUpdateDocument struct {
	URI       string         `json:"uri"`
	Field     UpdateDocField `json:"field"`
	UpdatedAt uint64         `json:"updated_at"`
	Proof     *SignedProof   `json:"proof,omitempty"`
}

type MsgUpdateDocumentResponse struct {
	Committed          bool   `json:"committed"`
	RemainingThreshold uint16 `json:"remaining_threshold"`
}

func (m MsgUpdateDocument) ValidateBasic() error {
	if m.URI == "" {
		return ErrInvalidURI
	}
	if err := m.Field.ValidateBasic(); err != nil {
		return errorsmod.Wrap(ErrInvalidUpdateValue, err.Error())
	}
	if m.Proof != nil {
		if err := m.Proof.ValidateBasic(); err != nil {
			return errorsmod.Wrap(ErrBadProof, err.Error())
		}
	}
	return nil
}

// MsgAddOracleMember adds an oracle member. Authority only.
type MsgAddOracleMember struct {
	Authority string `json:"authority"`
	Member    string `json:"member"`
}

// MsgRemoveOracleMember removes an oracle member. Authority only.
type MsgRemoveOracleMember struct {
	Authority string `json:"authority"`
	Member    string `json:"member"`
}

type MsgOracleMemberResponse struct{}

func validateMemberMsg(authority, member string) error {
	if _, err := sdk.AccAddressFromBech32(authority); err != nil {
		return errorsmod.Wrap(ErrInvalidAuthority, err.Error())
	}
	if _, err := sdk.AccAddressFromBech32(member); err != nil {
		return fmt.Errorf("invalid member address: %w", err)
	}
	return nil
}

func (m MsgAddOracleMember) ValidateBasic() error {
	return validateMemberMsg(m.Authority, m.Member)
}

func (m MsgRemoveOracleMember) ValidateBasic() error {
	return validateMemberMsg(m.Authority, m.Member)
}

// MsgAddURIPattern whitelists a root pattern. Authority only.
type MsgAddURIPattern struct {
	Authority string     `json:"authority"`
	Pattern   URIPattern `json:"pattern"`
}

// MsgRemoveURIPattern removes a whitelisted pattern. Authority only.
type MsgRemoveURIPattern struct {
	Authority string     `json:"authority"`
	Pattern   URIPattern `json:"pattern"`
}

type MsgURIPatternResponse struct{}

func validatePatternMsg(authority string, p URIPattern) error {
	if _, err := sdk.AccAddressFromBech32(authority); err != nil {
		return errorsmod.Wrap(ErrInvalidAuthority, err.Error())
	}
	if _, err := ParsePattern(p.Pattern, ClaimType{Kind: p.ClaimKind}); err != nil {
		return errorsmod.Wrap(ErrInvalidURI, err.Error())
	}
	return nil
}

func (m MsgAddURIPattern) ValidateBasic() error {
	return validatePatternMsg(m.Authority, m.Pattern)
}

func (m MsgRemoveURIPattern) ValidateBasic() error {
	return validatePatternMsg(m.Authority, m.Pattern)
}

// MsgUpdateParams replaces the module params. Authority only.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

type MsgUpdateParamsResponse struct{}

func (m MsgUpdateParams) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Authority); err != nil {
		return errorsmod.Wrap(ErrInvalidAuthority, err.Error())
	}
	return m.Params.Validate()
}
