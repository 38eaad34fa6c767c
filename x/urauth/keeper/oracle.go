package keeper

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/sonr-io/urauth/x/urauth/types"
)

// AddOracleMember admits member to the oracle set
func (k Keeper) AddOracleMember(ctx context.Context, authority string, member sdk.AccAddress) error {
	if err := k.checkAuthority(authority); err != nil {
		return err
	}

	exists, err := k.OracleMembers.Has(ctx, member)
	if err != nil {
		return err
	}
	if exists {
		return errorsmod.Wrapf(types.ErrOracleMemberExists, "%s", member)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	n, err := k.countOracleMembers(ctx)
	if err != nil {
		return err
	}
	if uint32(n) >= params.MaxOracleMembers {
		return errorsmod.Wrapf(types.ErrOracleMembersOverflow, "max %d", params.MaxOracleMembers)
	}

	if err := k.OracleMembers.Set(ctx, member); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOracleMemberAdded,
			sdk.NewAttribute(types.AttributeKeyMember, member.String()),
		),
	)
	return nil
}

// RemoveOracleMember drops member from the oracle set. Votes it already cast
// stay in open tallies.
func (k Keeper) RemoveOracleMember(ctx context.Context, authority string, member sdk.AccAddress) error {
	if err := k.checkAuthority(authority); err != nil {
		return err
	}

	exists, err := k.OracleMembers.Has(ctx, member)
	if err != nil {
		return err
	}
	if !exists {
		return errorsmod.Wrapf(types.ErrOracleMemberNotFound, "%s", member)
	}

	if err := k.OracleMembers.Remove(ctx, member); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeOracleMemberRemoved,
			sdk.NewAttribute(types.AttributeKeyMember, member.String()),
		),
	)
	return nil
}

// GetOracleMembers lists the oracle set in key order
func (k Keeper) GetOracleMembers(ctx context.Context) ([]sdk.AccAddress, error) {
	var members []sdk.AccAddress
	err := k.OracleMembers.Walk(ctx, nil, func(addr sdk.AccAddress) (bool, error) {
		members = append(members, addr)
		return false, nil
	})
	return members, err
}

func (k Keeper) countOracleMembers(ctx context.Context) (int, error) {
	n := 0
	err := k.OracleMembers.Walk(ctx, nil, func(sdk.AccAddress) (bool, error) {
		n++
		return false, nil
	})
	return n, err
}

func patternKey(p types.URIPattern) collections.Pair[uint64, string] {
	return collections.Join(uint64(p.ClaimKind), p.Pattern)
}

// AddURIPattern whitelists a root pattern for direct claims
func (k Keeper) AddURIPattern(ctx context.Context, authority string, p types.URIPattern) error {
	if err := k.checkAuthority(authority); err != nil {
		return err
	}
	if _, err := types.ParsePattern(p.Pattern, types.ClaimType{Kind: p.ClaimKind}); err != nil {
		return errorsmod.Wrapf(types.ErrInvalidURI, "%s: %v", p.Pattern, err)
	}

	exists, err := k.URIPatterns.Has(ctx, patternKey(p))
	if err != nil {
		return err
	}
	if exists {
		return errorsmod.Wrapf(types.ErrURIPatternExists, "%s", p.Pattern)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	patterns, err := k.GetURIPatterns(ctx)
	if err != nil {
		return err
	}
	if uint32(len(patterns)) >= params.MaxURIPatterns {
		return errorsmod.Wrapf(types.ErrURIPatternsOverflow, "max %d", params.MaxURIPatterns)
	}

	if err := k.URIPatterns.Set(ctx, patternKey(p)); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeURIPatternAdded,
			sdk.NewAttribute(types.AttributeKeyURI, p.Pattern),
			sdk.NewAttribute(types.AttributeKeyClaimType, p.ClaimKind.String()),
		),
	)
	return nil
}

// RemoveURIPattern removes a whitelisted pattern
func (k Keeper) RemoveURIPattern(ctx context.Context, authority string, p types.URIPattern) error {
	if err := k.checkAuthority(authority); err != nil {
		return err
	}

	exists, err := k.URIPatterns.Has(ctx, patternKey(p))
	if err != nil {
		return err
	}
	if !exists {
		return errorsmod.Wrapf(types.ErrURIPatternNotFound, "%s", p.Pattern)
	}

	if err := k.URIPatterns.Remove(ctx, patternKey(p)); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeURIPatternRemoved,
			sdk.NewAttribute(types.AttributeKeyURI, p.Pattern),
			sdk.NewAttribute(types.AttributeKeyClaimType, p.ClaimKind.String()),
		),
	)
	return nil
}

// GetURIPatterns lists the whitelist
func (k Keeper) GetURIPatterns(ctx context.Context) ([]types.URIPattern, error) {
	var patterns []types.URIPattern
	err := k.URIPatterns.Walk(ctx, nil, func(key collections.Pair[uint64, string]) (bool, error) {
		patterns = append(patterns, types.URIPattern{
			ClaimKind: types.ClaimKind(key.K1()),
			Pattern:   key.K2(),
		})
		return false, nil
	})
	return patterns, err
}

// MatchesURIPattern reports whether part matches a whitelisted pattern of
// the same claim kind.
func (k Keeper) MatchesURIPattern(ctx context.Context, part types.URIPart, claim types.ClaimType) (bool, error) {
	rng := collections.NewPrefixedPairRange[uint64, string](uint64(claim.Kind))

	matched := false
	err := k.URIPatterns.Walk(ctx, rng, func(key collections.Pair[uint64, string]) (bool, error) {
		pattern, err := types.ParsePattern(key.K2(), claim)
		if err != nil {
			return false, nil
		}
		if part.Matches(pattern) {
			matched = true
			return true, nil
		}
		return false, nil
	})
	return matched, err
}
