package types

import (
	"cosmossdk.io/errors"
)

// x/urauth module error codes
const (
	DefaultCodespace = ModuleName

	// input
	ErrCodeInvalidURI           = 1001
	ErrCodeURITooLong           = 1002
	ErrCodeInvalidDID           = 1003
	ErrCodeInvalidChallengeJSON = 1004
	ErrCodeUnsupportedProofType = 1005
	ErrCodeInvalidUpdateValue   = 1006
	ErrCodeInvalidClaimType     = 1007
	ErrCodeInvalidParams        = 1008

	// authorization
	ErrCodeBadProof           = 1101
	ErrCodeBadSigner          = 1102
	ErrCodeNotOracleMember    = 1103
	ErrCodeNotURIByOracle     = 1104
	ErrCodeNotURAuthDocOwner  = 1105
	ErrCodeProofMissing       = 1106
	ErrCodeIncorrectNonce     = 1107
	ErrCodeInvalidAuthority   = 1108
	ErrCodeBadChallengeValue  = 1109
	ErrCodeChallengeValueMiss = 1110

	// conflict
	ErrCodeAlreadyRegistered     = 1201
	ErrCodeAlreadySubmitted      = 1202
	ErrCodeErrorOnUpdateDoc      = 1203
	ErrCodeDuplicateProof        = 1204
	ErrCodeRequestNotFound       = 1205
	ErrCodeNotRegistered         = 1206
	ErrCodeOracleMemberExists    = 1207
	ErrCodeOracleMemberNotFound  = 1208
	ErrCodeOracleMembersOverflow = 1209
	ErrCodeURIPatternExists      = 1210
	ErrCodeURIPatternNotFound    = 1211
	ErrCodeURIPatternsOverflow   = 1212
)

// x/urauth module errors
var (
	ErrInvalidURI = errors.Register(
		DefaultCodespace,
		ErrCodeInvalidURI,
		"invalid uri",
	)
	ErrURITooLong = errors.Register(
		DefaultCodespace,
		ErrCodeURITooLong,
		"uri exceeds maximum length",
	)
	ErrInvalidDID = errors.Register(
		DefaultCodespace,
		ErrCodeInvalidDID,
		"invalid owner did",
	)
	ErrInvalidChallengeJSON = errors.Register(
		DefaultCodespace,
		ErrCodeInvalidChallengeJSON,
		"invalid challenge json",
	)
	ErrUnsupportedProofType = errors.Register(
		DefaultCodespace,
		ErrCodeUnsupportedProofType,
		"unsupported proof type",
	)
	ErrInvalidUpdateValue = errors.Register(
		DefaultCodespace,
		ErrCodeInvalidUpdateValue,
		"invalid update value",
	)
	ErrInvalidClaimType = errors.Register(
		DefaultCodespace,
		ErrCodeInvalidClaimType,
		"invalid claim type",
	)
	ErrInvalidParams = errors.Register(
		DefaultCodespace,
		ErrCodeInvalidParams,
		"invalid params",
	)

	ErrBadProof = errors.Register(
		DefaultCodespace,
		ErrCodeBadProof,
		"signature verification failed",
	)
	ErrBadSigner = errors.Register(
		DefaultCodespace,
		ErrCodeBadSigner,
		"signer does not match owner did",
	)
	ErrNotOracleMember = errors.Register(
		DefaultCodespace,
		ErrCodeNotOracleMember,
		"caller is not an oracle member",
	)
	ErrNotURIByOracle = errors.Register(
		DefaultCodespace,
		ErrCodeNotURIByOracle,
		"root uri is not whitelisted by the oracle",
	)
	ErrNotURAuthDocOwner = errors.Register(
		DefaultCodespace,
		ErrCodeNotURAuthDocOwner,
		"signer is not an owner of the document",
	)
	ErrProofMissing = errors.Register(
		DefaultCodespace,
		ErrCodeProofMissing,
		"proof is missing",
	)
	ErrIncorrectNonce = errors.Register(
		DefaultCodespace,
		ErrCodeIncorrectNonce,
		"incorrect nonce",
	)
	ErrInvalidAuthority = errors.Register(
		DefaultCodespace,
		ErrCodeInvalidAuthority,
		"invalid authority",
	)
	ErrBadChallengeValue = errors.Register(
		DefaultCodespace,
		ErrCodeBadChallengeValue,
		"challenge value does not match",
	)
	ErrChallengeValueMissing = errors.Register(
		DefaultCodespace,
		ErrCodeChallengeValueMiss,
		"challenge value missing",
	)

	ErrAlreadyRegistered = errors.Register(
		DefaultCodespace,
		ErrCodeAlreadyRegistered,
		"uri is already registered",
	)
	ErrAlreadySubmitted = errors.Register(
		DefaultCodespace,
		ErrCodeAlreadySubmitted,
		"oracle member already submitted",
	)
	ErrErrorOnUpdateDoc = errors.Register(
		DefaultCodespace,
		ErrCodeErrorOnUpdateDoc,
		"error on update document",
	)
	ErrDuplicateProof = errors.Register(
		DefaultCodespace,
		ErrCodeDuplicateProof,
		"signer already provided a proof for this update",
	)
	ErrRequestNotFound = errors.Register(
		DefaultCodespace,
		ErrCodeRequestNotFound,
		"no pending request for uri",
	)
	ErrNotRegistered = errors.Register(
		DefaultCodespace,
		ErrCodeNotRegistered,
		"uri is not registered",
	)
	ErrOracleMemberExists = errors.Register(
		DefaultCodespace,
		ErrCodeOracleMemberExists,
		"oracle member already exists",
	)
	ErrOracleMemberNotFound = errors.Register(
		DefaultCodespace,
		ErrCodeOracleMemberNotFound,
		"oracle member not found",
	)
	ErrOracleMembersOverflow = errors.Register(
		DefaultCodespace,
		ErrCodeOracleMembersOverflow,
		"too many oracle members",
	)
	ErrURIPatternExists = errors.Register(
		DefaultCodespace,
		ErrCodeURIPatternExists,
		"uri pattern already exists",
	)
	ErrURIPatternNotFound = errors.Register(
		DefaultCodespace,
		ErrCodeURIPatternNotFound,
		"uri pattern not found",
	)
	ErrURIPatternsOverflow = errors.Register(
		DefaultCodespace,
		ErrCodeURIPatternsOverflow,
		"too many uri patterns",
	)
)
