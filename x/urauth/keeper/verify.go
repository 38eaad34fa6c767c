package keeper

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/sonr-io/urauth/crypto/keys"
	"github.com/sonr-io/urauth/x/urauth/types"
)

// VerifyChallenge records an oracle member's observation of a signed
// challenge envelope. Identical submissions from a quorum of members
// register the document; a full round without quorum discards the request.
func (k Keeper) VerifyChallenge(
	ctx context.Context,
	oracle sdk.AccAddress,
	raw string,
) (types.VerificationResult, *types.URAuthDoc, error) {
	isMember, err := k.OracleMembers.Has(ctx, oracle)
	if err != nil {
		return types.VerificationInProgress, nil, err
	}
	if !isMember {
		return types.VerificationInProgress, nil, errorsmod.Wrapf(types.ErrNotOracleMember, "%s", oracle)
	}

	env, adminAcc, err := k.verifyEnvelope(raw)
	if err != nil {
		return types.VerificationInProgress, nil, err
	}

	meta, err := k.Pending.Get(ctx, env.Domain)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.VerificationInProgress, nil, errorsmod.Wrapf(types.ErrRequestNotFound, "%s", env.Domain)
		}
		return types.VerificationInProgress, nil, err
	}

	requested, err := k.didCodec.Account(meta.OwnerDID)
	if err != nil {
		return types.VerificationInProgress, nil, errorsmod.Wrap(types.ErrInvalidDID, err.Error())
	}
	if requested != adminAcc {
		return types.VerificationInProgress, nil, errorsmod.Wrapf(
			types.ErrBadSigner,
			"envelope signed by %s, request made for %s",
			env.AdminDID,
			meta.OwnerDID,
		)
	}

	stored, err := k.Challenges.Get(ctx, env.Domain)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.VerificationInProgress, nil, errorsmod.Wrapf(types.ErrChallengeValueMissing, "%s", env.Domain)
		}
		return types.VerificationInProgress, nil, err
	}
	observed, err := env.ChallengeValue()
	if err != nil {
		return types.VerificationInProgress, nil, errorsmod.Wrap(types.ErrInvalidChallengeJSON, err.Error())
	}
	if !bytes.Equal(stored, observed) {
		return types.VerificationInProgress, nil, errorsmod.Wrapf(types.ErrBadChallengeValue, "%s", env.Domain)
	}

	tally, err := k.Tallies.Get(ctx, env.Domain)
	if err != nil && !errors.Is(err, collections.ErrNotFound) {
		return types.VerificationInProgress, nil, err
	}

	members, err := k.countOracleMembers(ctx)
	if err != nil {
		return types.VerificationInProgress, nil, err
	}

	digest := types.SubmissionDigest([]byte(raw))
	result, err := tally.Submit(oracle.String(), digest, members)
	if err != nil {
		return types.VerificationInProgress, nil, errorsmod.Wrap(types.ErrAlreadySubmitted, err.Error())
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeVerificationSubmitted,
			sdk.NewAttribute(types.AttributeKeyURI, env.Domain),
			sdk.NewAttribute(types.AttributeKeyMember, oracle.String()),
			sdk.NewAttribute(types.AttributeKeyDigest, hex.EncodeToString(digest)),
			sdk.NewAttribute(types.AttributeKeyVotes, fmt.Sprintf("%d", tally.Count(digest))),
			sdk.NewAttribute(types.AttributeKeyThreshold, fmt.Sprintf("%d", tally.Threshold)),
		),
	)

	switch result {
	case types.VerificationComplete:
		doc, err := k.registerDocument(ctx, meta.TargetURI, meta.OwnerDID, meta.ClaimType, "oracle")
		if err != nil {
			return result, nil, err
		}
		if err := k.purgePending(ctx, env.Domain, meta.ExpiresAt); err != nil {
			return result, nil, err
		}
		return result, &doc, nil

	case types.VerificationTie:
		if err := k.purgePending(ctx, env.Domain, meta.ExpiresAt); err != nil {
			return result, nil, err
		}
		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeVerificationTie,
				sdk.NewAttribute(types.AttributeKeyURI, env.Domain),
				sdk.NewAttribute(types.AttributeKeyOwnerDID, meta.OwnerDID),
			),
		)
		k.logger.Info("verification tie", "uri", env.Domain, "voters", len(tally.Voters))
		return result, nil, nil

	default:
		return result, nil, k.Tallies.Set(ctx, env.Domain, tally)
	}
}

// verifyEnvelope parses raw and checks its proof against the admin DID.
func (k Keeper) verifyEnvelope(raw string) (types.ChallengeEnvelope, keys.AccountID, error) {
	env, err := types.ParseChallengeEnvelope([]byte(raw))
	if err != nil {
		return env, keys.AccountID{}, errorsmod.Wrap(types.ErrInvalidChallengeJSON, err.Error())
	}

	scheme, err := keys.ParseProofType(env.Proof.Type)
	if err != nil {
		return env, keys.AccountID{}, errorsmod.Wrap(types.ErrUnsupportedProofType, err.Error())
	}

	payload, err := env.SigningPayload()
	if err != nil {
		return env, keys.AccountID{}, errorsmod.Wrap(types.ErrInvalidChallengeJSON, err.Error())
	}
	sig, err := env.Signature()
	if err != nil {
		return env, keys.AccountID{}, errorsmod.Wrap(types.ErrInvalidChallengeJSON, err.Error())
	}

	adminAcc, err := k.didCodec.Account(env.AdminDID)
	if err != nil {
		return env, keys.AccountID{}, errorsmod.Wrap(types.ErrInvalidDID, err.Error())
	}

	if !keys.Verify(scheme, payload, sig, adminAcc) {
		k.logger.Debug("rejected challenge proof", "uri", env.Domain, "admin", env.AdminDID)
		return env, keys.AccountID{}, errorsmod.Wrapf(types.ErrBadProof, "challenge proof for %s", env.Domain)
	}
	return env, adminAcc, nil
}

// registerDocument materializes a new single-owner document under target.
func (k Keeper) registerDocument(
	ctx context.Context,
	target, ownerDID string,
	claim types.ClaimType,
	route string,
) (types.URAuthDoc, error) {
	registered, err := k.Registry.Has(ctx, target)
	if err != nil {
		return types.URAuthDoc{}, err
	}
	if registered {
		return types.URAuthDoc{}, errorsmod.Wrapf(types.ErrAlreadyRegistered, "%s", target)
	}

	id, err := k.nextDocID(ctx)
	if err != nil {
		return types.URAuthDoc{}, err
	}

	doc := types.NewURAuthDoc(id, blockTime(ctx), ownerDID, claim)
	if err := k.Registry.Set(ctx, target, doc); err != nil {
		return types.URAuthDoc{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRegistered,
			sdk.NewAttribute(types.AttributeKeyURI, target),
			sdk.NewAttribute(types.AttributeKeyOwnerDID, ownerDID),
			sdk.NewAttribute(types.AttributeKeyDocID, id.String()),
			sdk.NewAttribute(types.AttributeKeyRegistrationRoute, route),
		),
	)

	k.logger.Info("registered", "uri", target, "owner", ownerDID, "doc_id", id.String(), "route", route)

	return doc, nil
}
