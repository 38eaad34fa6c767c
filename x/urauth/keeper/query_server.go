package keeper

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"

	"github.com/sonr-io/urauth/crypto/keys"
	"github.com/sonr-io/urauth/x/urauth/types"
)

var _ types.QueryServer = Querier{}

type Querier struct {
	Keeper
}

func NewQuerier(keeper Keeper) Querier {
	return Querier{Keeper: keeper}
}

func (k Querier) Params(
	ctx context.Context,
	req *types.QueryParamsRequest,
) (*types.QueryParamsResponse, error) {
	p, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	return &types.QueryParamsResponse{Params: p}, nil
}

// Document implements types.QueryServer.
func (k Querier) Document(
	ctx context.Context,
	req *types.QueryDocumentRequest,
) (*types.QueryDocumentResponse, error) {
	if req == nil || req.URI == "" {
		return nil, types.ErrInvalidURI
	}

	key, doc, err := k.GetDocument(ctx, req.URI)
	if err != nil {
		return nil, err
	}

	return &types.QueryDocumentResponse{URI: key, Doc: doc}, nil
}

// Pending implements types.QueryServer.
func (k Querier) Pending(
	ctx context.Context,
	req *types.QueryPendingRequest,
) (*types.QueryPendingResponse, error) {
	if req == nil || req.URI == "" {
		return nil, types.ErrInvalidURI
	}

	meta, err := k.Keeper.Pending.Get(ctx, req.URI)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return nil, errorsmod.Wrapf(types.ErrRequestNotFound, "%s", req.URI)
		}
		return nil, err
	}

	tally, err := k.Tallies.Get(ctx, req.URI)
	if err != nil && !errors.Is(err, collections.ErrNotFound) {
		return nil, err
	}

	return &types.QueryPendingResponse{
		Metadata:  meta,
		Challenge: meta.ChallengeValue,
		Tally:     tally,
	}, nil
}

// UpdateStatus implements types.QueryServer.
func (k Querier) UpdateStatus(
	ctx context.Context,
	req *types.QueryUpdateStatusRequest,
) (*types.QueryUpdateStatusResponse, error) {
	if req == nil || req.URI == "" {
		return nil, types.ErrInvalidURI
	}

	key, doc, err := k.GetDocument(ctx, req.URI)
	if err != nil {
		return nil, err
	}

	status, err := k.GetUpdateStatus(ctx, doc.ID)
	if err != nil {
		return nil, err
	}

	return &types.QueryUpdateStatusResponse{URI: key, DocID: doc.ID, Status: status}, nil
}

// OracleMembers implements types.QueryServer.
func (k Querier) OracleMembers(
	ctx context.Context,
	req *types.QueryOracleMembersRequest,
) (*types.QueryOracleMembersResponse, error) {
	members, err := k.GetOracleMembers(ctx)
	if err != nil {
		return nil, err
	}

	resp := &types.QueryOracleMembersResponse{Members: make([]string, 0, len(members))}
	for _, m := range members {
		resp.Members = append(resp.Members, m.String())
	}
	return resp, nil
}

// URIPatterns implements types.QueryServer.
func (k Querier) URIPatterns(
	ctx context.Context,
	req *types.QueryURIPatternsRequest,
) (*types.QueryURIPatternsResponse, error) {
	patterns, err := k.GetURIPatterns(ctx)
	if err != nil {
		return nil, err
	}
	return &types.QueryURIPatternsResponse{Patterns: patterns}, nil
}

// Nonce implements types.QueryServer.
func (k Querier) Nonce(
	ctx context.Context,
	req *types.QueryNonceRequest,
) (*types.QueryNonceResponse, error) {
	if req == nil {
		return nil, errors.New("empty request")
	}

	bz, err := hex.DecodeString(strings.TrimPrefix(req.Account, "0x"))
	if err != nil {
		return nil, err
	}
	acc, err := keys.AccountFromBytes(bz)
	if err != nil {
		return nil, err
	}

	n, err := k.GetNonce(ctx, acc)
	if err != nil {
		return nil, err
	}
	return &types.QueryNonceResponse{Nonce: n}, nil
}

// AccessRule implements types.QueryServer.
func (k Querier) AccessRule(
	ctx context.Context,
	req *types.QueryAccessRuleRequest,
) (*types.QueryAccessRuleResponse, error) {
	if req == nil || req.URI == "" {
		return nil, types.ErrInvalidURI
	}

	_, doc, err := k.GetDocument(ctx, req.URI)
	if err != nil {
		return nil, err
	}

	target, err := types.ParseURI(req.Target, req.ClaimType)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidURI, "%s: %v", req.Target, err)
	}

	ar, rule, found := doc.MatchAccessRule(target, req.ClaimType, req.UserAgent)
	return &types.QueryAccessRuleResponse{Found: found, AccessRule: ar, Rule: rule}, nil
}
