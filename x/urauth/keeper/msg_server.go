package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/sonr-io/urauth/x/urauth/types"
)

type msgServer struct {
	k Keeper
}

var _ types.MsgServer = msgServer{}

// NewMsgServerImpl returns an implementation of the module MsgServer interface.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{k: keeper}
}

// RequestOwnership implements types.MsgServer.
func (ms msgServer) RequestOwnership(
	ctx context.Context,
	msg *types.MsgRequestOwnership,
) (*types.MsgRequestOwnershipResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	meta, err := ms.k.RequestOwnership(ctx, msg.ClaimType, msg.URI, msg.OwnerDID, msg.Challenge, msg.Proof)
	if err != nil {
		return nil, err
	}

	return &types.MsgRequestOwnershipResponse{
		Challenge: meta.ChallengeValue,
		ExpiresAt: meta.ExpiresAt,
	}, nil
}

// VerifyChallenge implements types.MsgServer.
func (ms msgServer) VerifyChallenge(
	ctx context.Context,
	msg *types.MsgVerifyChallenge,
) (*types.MsgVerifyChallengeResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	oracle, err := sdk.AccAddressFromBech32(msg.Oracle)
	if err != nil {
		return nil, errorsmod.Wrap(types.ErrNotOracleMember, err.Error())
	}

	result, doc, err := ms.k.VerifyChallenge(ctx, oracle, msg.Challenge)
	if err != nil {
		return nil, err
	}

	resp := &types.MsgVerifyChallengeResponse{Result: result}
	if doc != nil {
		id := doc.ID
		resp.DocID = &id
	}
	return resp, nil
}

// ClaimOwnership implements types.MsgServer.
func (ms msgServer) ClaimOwnership(
	ctx context.Context,
	msg *types.MsgClaimOwnership,
) (*types.MsgClaimOwnershipResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	doc, err := ms.k.ClaimOwnership(ctx, msg.ClaimType, msg.URI, msg.OwnerDID, msg.Proof)
	if err != nil {
		return nil, err
	}

	return &types.MsgClaimOwnershipResponse{DocID: doc.ID}, nil
}

// UpdateDocument implements types.MsgServer.
func (ms msgServer) UpdateDocument(
	ctx context.Context,
	msg *types.MsgUpdateDocument,
) (*types.MsgUpdateDocumentResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	committed, remaining, err := ms.k.UpdateDocument(ctx, msg.URI, msg.Field, msg.UpdatedAt, msg.Proof)
	if err != nil {
		return nil, err
	}

	return &types.MsgUpdateDocumentResponse{
		Committed:          committed,
		RemainingThreshold: remaining,
	}, nil
}

// AddOracleMember implements types.MsgServer.
func (ms msgServer) AddOracleMember(
	ctx context.Context,
	msg *types.MsgAddOracleMember,
) (*types.MsgOracleMemberResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	member, err := sdk.AccAddressFromBech32(msg.Member)
	if err != nil {
		return nil, err
	}
	if err := ms.k.AddOracleMember(ctx, msg.Authority, member); err != nil {
		return nil, err
	}

	return &types.MsgOracleMemberResponse{}, nil
}

// RemoveOracleMember implements types.MsgServer.
func (ms msgServer) RemoveOracleMember(
	ctx context.Context,
	msg *types.MsgRemoveOracleMember,
) (*types.MsgOracleMemberResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	member, err := sdk.AccAddressFromBech32(msg.Member)
	if err != nil {
		return nil, err
	}
	if err := ms.k.RemoveOracleMember(ctx, msg.Authority, member); err != nil {
		return nil, err
	}

	return &types.MsgOracleMemberResponse{}, nil
}

// AddURIPattern implements types.MsgServer.
func (ms msgServer) AddURIPattern(
	ctx context.Context,
	msg *types.MsgAddURIPattern,
) (*types.MsgURIPatternResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := ms.k.AddURIPattern(ctx, msg.Authority, msg.Pattern); err != nil {
		return nil, err
	}
	return &types.MsgURIPatternResponse{}, nil
}

// RemoveURIPattern implements types.MsgServer.
func (ms msgServer) RemoveURIPattern(
	ctx context.Context,
	msg *types.MsgRemoveURIPattern,
) (*types.MsgURIPatternResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := ms.k.RemoveURIPattern(ctx, msg.Authority, msg.Pattern); err != nil {
		return nil, err
	}
	return &types.MsgURIPatternResponse{}, nil
}

// UpdateParams implements types.MsgServer.
func (ms msgServer) UpdateParams(
	ctx context.Context,
	msg *types.MsgUpdateParams,
) (*types.MsgUpdateParamsResponse, error) {
	if err := ms.k.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	if err := msg.Params.Validate(); err != nil {
		return nil, errorsmod.Wrap(types.ErrInvalidParams, err.Error())
	}

	if err := ms.k.Params.Set(ctx, msg.Params); err != nil {
		return nil, err
	}

	ms.k.logger.Info("params updated", "params", msg.Params.String())

	return &types.MsgUpdateParamsResponse{}, nil
}
