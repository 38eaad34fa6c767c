package types

import "context"

// MsgServer is the transaction surface of the module.
type MsgServer interface {
	RequestOwnership(context.Context, *MsgRequestOwnership) (*MsgRequestOwnershipResponse, error)
	VerifyChallenge(context.Context, *MsgVerifyChallenge) (*MsgVerifyChallengeResponse, error)
	ClaimOwnership(context.Context, *MsgClaimOwnership) (*MsgClaimOwnershipResponse, error)
	UpdateDocument(context.Context, *MsgUpdateDocument) (*MsgUpdateDocumentResponse, error)
	AddOracleMember(context.Context, *MsgAddOracleMember) (*MsgOracleMemberResponse, error)
	RemoveOracleMember(context.Context, *MsgRemoveOracleMember) (*MsgOracleMemberResponse, error)
	AddURIPattern(context.Context, *MsgAddURIPattern) (*MsgURIPatternResponse, error)
	RemoveURIPattern(context.Context, *MsgRemoveURIPattern) (*MsgURIPatternResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}

// QueryServer is the read surface of the module.
type QueryServer interface {
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	Document(context.Context, *QueryDocumentRequest) (*QueryDocumentResponse, error)
	Pending(context.Context, *QueryPendingRequest) (*QueryPendingResponse, error)
	UpdateStatus(context.Context, *QueryUpdateStatusRequest) (*QueryUpdateStatusResponse, error)
	OracleMembers(context.Context, *QueryOracleMembersRequest) (*QueryOracleMembersResponse, error)
	URIPatterns(context.Context, *QueryURIPatternsRequest) (*QueryURIPatternsResponse, error)
	Nonce(context.Context, *QueryNonceRequest) (*QueryNonceResponse, error)
	AccessRule(context.Context, *QueryAccessRuleRequest) (*QueryAccessRuleResponse, error)
}
