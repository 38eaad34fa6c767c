package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"

	"github.com/sonr-io/urauth/x/urauth/types"
)

func TestOracleMembership(t *testing.T) {
	f := SetupTest(t)
	member := f.addrs[0]

	f.resetEvents()
	require.NoError(t, f.k.AddOracleMember(f.ctx, f.govModAddr, member))
	require.True(t, f.hasEvent(types.EventTypeOracleMemberAdded))

	err := f.k.AddOracleMember(f.ctx, f.govModAddr, member)
	require.ErrorIs(t, err, types.ErrOracleMemberExists)

	members, err := f.k.GetOracleMembers(f.ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)

	f.resetEvents()
	require.NoError(t, f.k.RemoveOracleMember(f.ctx, f.govModAddr, member))
	require.True(t, f.hasEvent(types.EventTypeOracleMemberRemoved))

	err = f.k.RemoveOracleMember(f.ctx, f.govModAddr, member)
	require.ErrorIs(t, err, types.ErrOracleMemberNotFound)
}

func TestOracleMembershipRequiresAuthority(t *testing.T) {
	f := SetupTest(t)

	err := f.k.AddOracleMember(f.ctx, f.addrs[1].String(), f.addrs[0])
	require.ErrorIs(t, err, govtypes.ErrInvalidSigner)

	_, err = f.msgServer.AddOracleMember(f.ctx, &types.MsgAddOracleMember{
		Authority: f.addrs[1].String(),
		Member:    f.addrs[0].String(),
	})
	require.ErrorIs(t, err, govtypes.ErrInvalidSigner)

	_, err = f.msgServer.AddOracleMember(f.ctx, &types.MsgAddOracleMember{
		Authority: f.govModAddr,
		Member:    f.addrs[0].String(),
	})
	require.NoError(t, err)

	resp, err := f.queryServer.OracleMembers(f.ctx, &types.QueryOracleMembersRequest{})
	require.NoError(t, err)
	require.Equal(t, []string{f.addrs[0].String()}, resp.Members)

	_, err = f.msgServer.RemoveOracleMember(f.ctx, &types.MsgRemoveOracleMember{
		Authority: f.govModAddr,
		Member:    f.addrs[0].String(),
	})
	require.NoError(t, err)
}

func TestOracleMembersOverflow(t *testing.T) {
	f := SetupTest(t)

	params := types.DefaultParams()
	params.MaxOracleMembers = 2
	require.NoError(t, f.k.Params.Set(f.ctx, params))

	f.addOracles(2)
	err := f.k.AddOracleMember(f.ctx, f.govModAddr, f.addrs[2])
	require.ErrorIs(t, err, types.ErrOracleMembersOverflow)
}

func TestURIPatterns(t *testing.T) {
	f := SetupTest(t)
	p := types.URIPattern{ClaimKind: types.ClaimKindDomain, Pattern: "example.*"}

	f.resetEvents()
	require.NoError(t, f.k.AddURIPattern(f.ctx, f.govModAddr, p))
	require.True(t, f.hasEvent(types.EventTypeURIPatternAdded))

	err := f.k.AddURIPattern(f.ctx, f.govModAddr, p)
	require.ErrorIs(t, err, types.ErrURIPatternExists)

	// the same text under another claim kind is a separate entry
	require.NoError(t, f.k.AddURIPattern(f.ctx, f.govModAddr, types.URIPattern{ClaimKind: types.ClaimKindContents, Pattern: p.Pattern}))

	patterns, err := f.k.GetURIPatterns(f.ctx)
	require.NoError(t, err)
	require.Len(t, patterns, 2)

	part, err := types.ParseURI("www.example.io", types.DomainClaim())
	require.NoError(t, err)
	ok, err := f.k.MatchesURIPattern(f.ctx, part, types.DomainClaim())
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, f.k.RemoveURIPattern(f.ctx, f.govModAddr, p))
	ok, err = f.k.MatchesURIPattern(f.ctx, part, types.DomainClaim())
	require.NoError(t, err)
	require.False(t, ok)

	err = f.k.RemoveURIPattern(f.ctx, f.govModAddr, p)
	require.ErrorIs(t, err, types.ErrURIPatternNotFound)
}

func TestURIPatternValidation(t *testing.T) {
	f := SetupTest(t)

	err := f.k.AddURIPattern(f.ctx, f.govModAddr, types.URIPattern{Pattern: "bad pattern"})
	require.ErrorIs(t, err, types.ErrInvalidURI)

	err = f.k.AddURIPattern(f.ctx, f.addrs[0].String(), types.URIPattern{Pattern: "*.com"})
	require.ErrorIs(t, err, govtypes.ErrInvalidSigner)

	params := types.DefaultParams()
	params.MaxURIPatterns = 1
	require.NoError(t, f.k.Params.Set(f.ctx, params))

	require.NoError(t, f.k.AddURIPattern(f.ctx, f.govModAddr, types.URIPattern{Pattern: "*.com"}))
	err = f.k.AddURIPattern(f.ctx, f.govModAddr, types.URIPattern{Pattern: "*.org"})
	require.ErrorIs(t, err, types.ErrURIPatternsOverflow)
}

func TestURIPatternMsgServer(t *testing.T) {
	f := SetupTest(t)
	p := types.URIPattern{ClaimKind: types.ClaimKindContents, Pattern: "ur://file/*"}

	_, err := f.msgServer.AddURIPattern(f.ctx, &types.MsgAddURIPattern{Authority: f.govModAddr, Pattern: p})
	require.NoError(t, err)

	resp, err := f.queryServer.URIPatterns(f.ctx, &types.QueryURIPatternsRequest{})
	require.NoError(t, err)
	require.Equal(t, []types.URIPattern{p}, resp.Patterns)

	_, err = f.msgServer.RemoveURIPattern(f.ctx, &types.MsgRemoveURIPattern{Authority: f.govModAddr, Pattern: p})
	require.NoError(t, err)
}
