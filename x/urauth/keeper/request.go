package keeper

import (
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

// parsedRequest is a validated uri plus the owner account it is claimed for.
type parsedRequest struct {
	part     types.URIPart
	target   string
	ownerAcc keys.AccountID
}

// parseRequest validates the uri and owner did shared by request and claim.
func (k Keeper) parseRequest(
	params types.Params,
	claim types.ClaimType,
	uri, ownerDID string,
) (parsedRequest, error) {
	if err := claim.Validate(); err != nil {
		return parsedRequest{}, errorsmod.Wrap(types.ErrInvalidClaimType, err.Error())
	}
	if uint32(len(uri)) > params.MaxURILength {
		return parsedRequest{}, errorsmod.Wrapf(
			types.ErrURITooLong,
			"%d bytes, max %d",
			len(uri),
			params.MaxURILength,
		)
	}

	part, err := types.ParseURI(uri, claim)
	if err != nil {
		return parsedRequest{}, errorsmod.Wrapf(types.ErrInvalidURI, "%s: %v", uri, err)
	}

	ownerAcc, err := k.didCodec.Account(ownerDID)
	if err != nil {
		return parsedRequest{}, errorsmod.Wrapf(types.ErrInvalidDID, "%s: %v", ownerDID, err)
	}

	return parsedRequest{part: part, target: part.String(), ownerAcc: ownerAcc}, nil
}

// verifyRequestProof checks a (uri, did, nonce) proof and returns the signer
// account and the nonce it consumed.
func (k Keeper) verifyRequestProof(
	ctx context.Context,
	uri, ownerDID string,
	proof types.SignedProof,
) (keys.AccountID, uint64, error) {
	signer, err := proof.Signer.AccountID()
	if err != nil {
		return keys.AccountID{}, 0, errorsmod.Wrap(types.ErrBadProof, err.Error())
	}

	nonce, err := k.nextNonce(ctx, signer)
	if err != nil {
		return keys.AccountID{}, 0, err
	}

	sig := proof.MultiSignature()
	if !sig.Verify(types.RequestSigningPayload(uri, ownerDID, nonce), signer) {
		if nonce > 1 && sig.Verify(types.RequestSigningPayload(uri, ownerDID, nonce-1), signer) {
			return keys.AccountID{}, 0, errorsmod.Wrapf(
				types.ErrIncorrectNonce,
				"nonce %d already used, expected %d",
				nonce-1,
				nonce,
			)
		}
		return keys.AccountID{}, 0, errorsmod.Wrapf(types.ErrBadProof, "signer %s", signer)
	}
	return signer, nonce, nil
}

// ownsAncestor reports whether account is an owner of a registered ancestor.
func (k Keeper) ownsAncestor(
	ctx context.Context,
	part types.URIPart,
	claim types.ClaimType,
	account keys.AccountID,
) (bool, error) {
	for _, parent := range types.Ancestors(part, claim) {
		if parent == part.String() {
			continue
		}
		doc, err := k.Registry.Get(ctx, parent)
		if err != nil {
			if errors.Is(err, collections.ErrNotFound) {
				continue
			}
			return false, err
		}
		if _, ok := doc.MultiOwnerDID.FindAccount(k.didCodec, account); ok {
			return true, nil
		}
	}
	return false, nil
}

// RequestOwnership opens a pending ownership request for uri and binds a
// challenge value to it. The signer must control ownerDID unless it owns a
// registered ancestor of uri.
func (k Keeper) RequestOwnership(
	ctx context.Context,
	claim types.ClaimType,
	uri, ownerDID string,
	challenge []byte,
	proof types.SignedProof,
) (*types.RequestMetadata, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	req, err := k.parseRequest(params, claim, uri, ownerDID)
	if err != nil {
		return nil, err
	}

	root := types.RootURI(req.part, claim)
	for _, key := range []string{req.target, root} {
		registered, err := k.Registry.Has(ctx, key)
		if err != nil {
			return nil, err
		}
		if registered {
			return nil, errorsmod.Wrapf(types.ErrAlreadyRegistered, "%s", key)
		}
	}

	signer, nonce, err := k.verifyRequestProof(ctx, uri, ownerDID, proof)
	if err != nil {
		return nil, err
	}

	if signer != req.ownerAcc {
		owns, err := k.ownsAncestor(ctx, req.part, claim, signer)
		if err != nil {
			return nil, err
		}
		if !owns {
			return nil, errorsmod.Wrapf(
				types.ErrBadSigner,
				"signer %s does not control %s",
				signer,
				ownerDID,
			)
		}
	}

	value, err := k.challengeValue(ctx, params, uri, ownerDID, nonce, challenge)
	if err != nil {
		return nil, err
	}

	// a new request replaces any previous pending one for the same uri
	prev, err := k.Pending.Get(ctx, uri)
	switch {
	case err == nil:
		if err := k.purgePending(ctx, uri, prev.ExpiresAt); err != nil {
			return nil, err
		}
	case !errors.Is(err, collections.ErrNotFound):
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	meta := types.RequestMetadata{
		OwnerDID:       ownerDID,
		ChallengeValue: value,
		ClaimType:      claim,
		TargetURI:      req.target,
		RequestedAt:    sdkCtx.BlockHeight(),
		ExpiresAt:      sdkCtx.BlockHeight() + params.RequestExpiryBlocks,
	}

	if err := k.Pending.Set(ctx, uri, meta); err != nil {
		return nil, err
	}
	if err := k.Challenges.Set(ctx, uri, value); err != nil {
		return nil, err
	}
	if err := k.ExpirySchedule.Set(ctx, collections.Join(meta.ExpiresAt, uri)); err != nil {
		return nil, err
	}
	if err := k.Nonces.Set(ctx, signer.Bytes(), nonce); err != nil {
		return nil, err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRegisterRequested,
			sdk.NewAttribute(types.AttributeKeyURI, uri),
			sdk.NewAttribute(types.AttributeKeyOwnerDID, ownerDID),
			sdk.NewAttribute(types.AttributeKeyClaimType, claim.Kind.String()),
			sdk.NewAttribute(types.AttributeKeyChallenge, hex.EncodeToString(value)),
			sdk.NewAttribute(types.AttributeKeyExpiresAt, fmt.Sprintf("%d", meta.ExpiresAt)),
		),
	)

	k.logger.Info("ownership requested", "uri", uri, "owner", ownerDID, "expires_at", meta.ExpiresAt)

	return &meta, nil
}

// challengeValue derives or accepts the challenge for a new request.
func (k Keeper) challengeValue(
	ctx context.Context,
	params types.Params,
	uri, ownerDID string,
	nonce uint64,
	supplied []byte,
) ([]byte, error) {
	if !params.RandomChallenge {
		if len(supplied) == 0 {
			return nil, types.ErrChallengeValueMissing
		}
		if len(supplied) != types.ChallengeLength {
			return nil, errorsmod.Wrapf(
				types.ErrBadChallengeValue,
				"challenge must be %d bytes",
				types.ChallengeLength,
			)
		}
		return append([]byte(nil), supplied...), nil
	}

	seed := keys.EncodePayload([]byte(uri), []byte(ownerDID), keys.EncodeNonce(nonce))
	return k.challenge.Challenge(ctx, seed)
}

// purgePending removes every trace of a pending request.
func (k Keeper) purgePending(ctx context.Context, uri string, expiresAt int64) error {
	if err := k.Pending.Remove(ctx, uri); err != nil {
		return err
	}
	if err := k.Challenges.Remove(ctx, uri); err != nil {
		return err
	}
	if err := k.Tallies.Remove(ctx, uri); err != nil {
		return err
	}
	return k.ExpirySchedule.Remove(ctx, collections.Join(expiresAt, uri))
}
