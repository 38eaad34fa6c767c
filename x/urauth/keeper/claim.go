package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"

	"github.com/sonr-io/urauth/x/urauth/types"
)

// ClaimOwnership registers uri without an oracle round. Roots must match a
// whitelisted pattern; anything else requires the signer to own a registered
// ancestor.
func (k Keeper) ClaimOwnership(
	ctx context.Context,
	claim types.ClaimType,
	uri, ownerDID string,
	proof types.SignedProof,
) (types.URAuthDoc, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return types.URAuthDoc{}, err
	}

	req, err := k.parseRequest(params, claim, uri, ownerDID)
	if err != nil {
		return types.URAuthDoc{}, err
	}

	registered, err := k.Registry.Has(ctx, req.target)
	if err != nil {
		return types.URAuthDoc{}, err
	}
	if registered {
		return types.URAuthDoc{}, errorsmod.Wrapf(types.ErrAlreadyRegistered, "%s", req.target)
	}

	signer, nonce, err := k.verifyRequestProof(ctx, uri, ownerDID, proof)
	if err != nil {
		return types.URAuthDoc{}, err
	}

	route := "ancestor"
	if types.IsRoot(req.part, claim) {
		route = "whitelist"
		if signer != req.ownerAcc {
			return types.URAuthDoc{}, errorsmod.Wrapf(
				types.ErrBadSigner,
				"signer %s does not control %s",
				signer,
				ownerDID,
			)
		}
		ok, err := k.MatchesURIPattern(ctx, req.part, claim)
		if err != nil {
			return types.URAuthDoc{}, err
		}
		if !ok {
			return types.URAuthDoc{}, errorsmod.Wrapf(types.ErrNotURIByOracle, "%s", req.target)
		}
	} else {
		owns, err := k.ownsAncestor(ctx, req.part, claim, signer)
		if err != nil {
			return types.URAuthDoc{}, err
		}
		if !owns {
			return types.URAuthDoc{}, errorsmod.Wrapf(
				types.ErrNotURAuthDocOwner,
				"signer %s owns no registered ancestor of %s",
				signer,
				req.target,
			)
		}
	}

	doc, err := k.registerDocument(ctx, req.target, ownerDID, claim, route)
	if err != nil {
		return types.URAuthDoc{}, err
	}
	if err := k.Nonces.Set(ctx, signer.Bytes(), nonce); err != nil {
		return types.URAuthDoc{}, err
	}

	// an open oracle request for the same uri can no longer complete
	prev, err := k.Pending.Get(ctx, uri)
	switch {
	case err == nil:
		if err := k.purgePending(ctx, uri, prev.ExpiresAt); err != nil {
			return types.URAuthDoc{}, err
		}
	case !errors.Is(err, collections.ErrNotFound):
		return types.URAuthDoc{}, err
	}

	return doc, nil
}
