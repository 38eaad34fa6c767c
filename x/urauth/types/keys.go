package types

import "cosmossdk.io/collections"

const (
	ModuleName = "urauth"

	StoreKey = ModuleName

	QuerierRoute = ModuleName
)

// Collection prefixes
var (
	ParamsKey         = collections.NewPrefix(0)
	RegistryKey       = collections.NewPrefix(1)
	PendingKey        = collections.NewPrefix(2)
	ChallengeKey      = collections.NewPrefix(3)
	TallyKey          = collections.NewPrefix(4)
	UpdateStatusKey   = collections.NewPrefix(5)
	OracleMembersKey  = collections.NewPrefix(6)
	URIPatternsKey    = collections.NewPrefix(7)
	ExpiryScheduleKey = collections.NewPrefix(8)
	DocCounterKey     = collections.NewPrefix(9)
	NoncesKey         = collections.NewPrefix(10)
)

// Event types and attribute keys
const (
	// Event types
	EventTypeRegisterRequested     = "urauth_register_requested"
	EventTypeVerificationSubmitted = "urauth_verification_submitted"
	EventTypeVerificationTie       = "urauth_verification_tie"
	EventTypeRegistered            = "urauth_registered"
	EventTypeRequestExpired        = "urauth_request_expired"
	EventTypeUpdateInProgress      = "urauth_update_in_progress"
	EventTypeDocUpdated            = "urauth_doc_updated"
	EventTypeOracleMemberAdded     = "urauth_oracle_member_added"
	EventTypeOracleMemberRemoved   = "urauth_oracle_member_removed"
	EventTypeURIPatternAdded       = "urauth_uri_pattern_added"
	EventTypeURIPatternRemoved     = "urauth_uri_pattern_removed"

	// Attribute keys
	AttributeKeyURI               = "uri"
	AttributeKeyOwnerDID          = "owner_did"
	AttributeKeyDocID             = "doc_id"
	AttributeKeyChallenge         = "challenge"
	AttributeKeyMember            = "member"
	AttributeKeyDigest            = "digest"
	AttributeKeyVotes             = "votes"
	AttributeKeyThreshold         = "threshold"
	AttributeKeyField             = "field"
	AttributeKeyRemainingWeight   = "remaining_threshold"
	AttributeKeyClaimType         = "claim_type"
	AttributeKeyExpiresAt         = "expires_at"
	AttributeKeyRegistrationRoute = "route"
)
