package keeper

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/sonr-io/urauth/x/urauth/types"
)

// lookupDocument resolves uri to its registry key. The uri is tried as given,
// then in canonical form under each claim kind.
func (k Keeper) lookupDocument(ctx context.Context, uri string) (string, types.URAuthDoc, error) {
	candidates := []string{uri}
	for _, claim := range []types.ClaimType{types.DomainClaim(), {Kind: types.ClaimKindContents}} {
		part, err := types.ParseURI(uri, claim)
		if err != nil {
			continue
		}
		candidates = append(candidates, part.String())
	}

	for _, key := range candidates {
		doc, err := k.Registry.Get(ctx, key)
		if err == nil {
			return key, doc, nil
		}
		if !errors.Is(err, collections.ErrNotFound) {
			return "", types.URAuthDoc{}, err
		}
	}
	return "", types.URAuthDoc{}, errorsmod.Wrapf(types.ErrNotRegistered, "%s", uri)
}

// GetDocument returns the registered document for uri
func (k Keeper) GetDocument(ctx context.Context, uri string) (string, types.URAuthDoc, error) {
	return k.lookupDocument(ctx, uri)
}

// GetUpdateStatus returns the update workflow state of a document
func (k Keeper) GetUpdateStatus(ctx context.Context, id types.DocID) (types.UpdateDocStatus, error) {
	status, err := k.UpdateStatus.Get(ctx, id[:])
	if errors.Is(err, collections.ErrNotFound) {
		return types.AvailableStatus(), nil
	}
	return status, err
}

// UpdateDocument adds one owner proof toward mutating field on the document
// registered under uri. The mutation is committed once the accumulated owner
// weight reaches the document threshold; until then the round stays open and
// only proofs for the same field are accepted.
func (k Keeper) UpdateDocument(
	ctx context.Context,
	uri string,
	field types.UpdateDocField,
	updatedAt uint64,
	proof *types.SignedProof,
) (bool, uint16, error) {
	key, doc, err := k.lookupDocument(ctx, uri)
	if err != nil {
		return false, 0, err
	}

	if err := field.ValidateBasic(); err != nil {
		return false, 0, errorsmod.Wrap(types.ErrInvalidUpdateValue, err.Error())
	}
	if updatedAt < doc.UpdatedAt {
		return false, 0, errorsmod.Wrapf(
			types.ErrErrorOnUpdateDoc,
			"updated_at %d is older than document %d",
			updatedAt,
			doc.UpdatedAt,
		)
	}
	if proof == nil {
		return false, 0, types.ErrProofMissing
	}

	if err := k.checkOwnerUpdate(doc, field); err != nil {
		return false, 0, err
	}

	status, err := k.GetUpdateStatus(ctx, doc.ID)
	if err != nil {
		return false, 0, err
	}
	if err := status.Begin(field, doc.MultiOwnerDID.Threshold); err != nil {
		return false, 0, errorsmod.Wrap(types.ErrErrorOnUpdateDoc, err.Error())
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return false, 0, err
	}
	preview, err := doc.Apply(field, params.MaxOwners)
	if err != nil {
		return false, 0, errorsmod.Wrap(types.ErrInvalidUpdateValue, err.Error())
	}
	preview.UpdatedAt = updatedAt
	preview.Proofs = nil

	signer, err := proof.Signer.AccountID()
	if err != nil {
		return false, 0, errorsmod.Wrap(types.ErrBadProof, err.Error())
	}
	owner, ok := doc.MultiOwnerDID.FindAccount(k.didCodec, signer)
	if !ok {
		return false, 0, errorsmod.Wrapf(types.ErrNotURAuthDocOwner, "signer %s", signer)
	}
	if status.HasProof(owner.DID) {
		return false, 0, errorsmod.Wrapf(types.ErrDuplicateProof, "%s", owner.DID)
	}

	nonce, err := k.nextNonce(ctx, signer)
	if err != nil {
		return false, 0, err
	}
	if err := k.verifyUpdateProof(uri, preview, field, nonce, *proof); err != nil {
		return false, 0, err
	}

	done := status.AddProof(types.Proof{DID: owner.DID, Signature: proof.MultiSignature()}, owner.Weight)
	if err := k.Nonces.Set(ctx, signer.Bytes(), nonce); err != nil {
		return false, 0, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if !done {
		if err := k.UpdateStatus.Set(ctx, doc.ID[:], status); err != nil {
			return false, 0, err
		}
		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeUpdateInProgress,
				sdk.NewAttribute(types.AttributeKeyURI, key),
				sdk.NewAttribute(types.AttributeKeyDocID, doc.ID.String()),
				sdk.NewAttribute(types.AttributeKeyField, field.Kind.String()),
				sdk.NewAttribute(types.AttributeKeyRemainingWeight, fmt.Sprintf("%d", status.RemainingThreshold)),
			),
		)
		return false, status.RemainingThreshold, nil
	}

	preview.Proofs = status.Proofs
	if err := k.Registry.Set(ctx, key, preview); err != nil {
		return false, 0, err
	}
	if err := k.UpdateStatus.Remove(ctx, doc.ID[:]); err != nil {
		return false, 0, err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDocUpdated,
			sdk.NewAttribute(types.AttributeKeyURI, key),
			sdk.NewAttribute(types.AttributeKeyDocID, doc.ID.String()),
			sdk.NewAttribute(types.AttributeKeyField, field.Kind.String()),
		),
	)

	k.logger.Info("document updated", "uri", key, "doc_id", doc.ID.String(), "field", field.Kind.String(), "proofs", len(status.Proofs))

	return true, 0, nil
}

// checkOwnerUpdate rejects an owner mutation whose DID does not decode or
// whose account already belongs to a differently spelled owner.
func (k Keeper) checkOwnerUpdate(doc types.URAuthDoc, field types.UpdateDocField) error {
	if field.Kind != types.FieldOwner {
		return nil
	}
	acc, err := k.didCodec.Account(field.Owner.DID)
	if err != nil {
		return errorsmod.Wrapf(types.ErrInvalidDID, "%s: %v", field.Owner.DID, err)
	}
	for _, o := range doc.MultiOwnerDID.DIDs {
		if o.DID == field.Owner.DID {
			continue
		}
		existing, err := k.didCodec.Account(o.DID)
		if err == nil && existing == acc {
			return errorsmod.Wrapf(
				types.ErrInvalidUpdateValue,
				"account %s is already owned as %s",
				acc,
				o.DID,
			)
		}
	}
	return nil
}

func (k Keeper) verifyUpdateProof(
	uri string,
	preview types.URAuthDoc,
	field types.UpdateDocField,
	nonce uint64,
	proof types.SignedProof,
) error {
	signer, err := proof.Signer.AccountID()
	if err != nil {
		return errorsmod.Wrap(types.ErrBadProof, err.Error())
	}
	sig := proof.MultiSignature()

	payload, err := types.UpdateSigningPayload(uri, preview, field, nonce)
	if err != nil {
		return errorsmod.Wrap(types.ErrInvalidUpdateValue, err.Error())
	}
	if sig.Verify(payload, signer) {
		return nil
	}

	if nonce > 1 {
		stale, err := types.UpdateSigningPayload(uri, preview, field, nonce-1)
		if err == nil && sig.Verify(stale, signer) {
			return errorsmod.Wrapf(
				types.ErrIncorrectNonce,
				"nonce %d already used, expected %d",
				nonce-1,
				nonce,
			)
		}
	}
	return errorsmod.Wrapf(types.ErrBadProof, "update proof from %s", signer)
}
