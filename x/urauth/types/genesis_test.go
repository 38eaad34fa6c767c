package types_test

import (
	"strings"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/sonr-io/urauth/x/urauth/types"
)

func TestGenesisState_Validate(t *testing.T) {
	member := sdk.AccAddress([]byte("oracle_member_address_1")).String()
	account := strings.Repeat("ab", 32)

	validDoc := types.RegisteredDoc{
		URI: "example.com",
		Doc: types.URAuthDoc{
			ID:            types.DocID{1},
			CreatedAt:     1,
			UpdatedAt:     1,
			MultiOwnerDID: types.NewSingleOwner("did:infra:ua:owner"),
		},
	}

	tests := []struct {
		desc     string
		genState *types.GenesisState
		valid    bool
	}{
		{
			desc:     "default is valid",
			genState: types.DefaultGenesis(),
			valid:    true,
		},
		{
			desc: "valid genesis state",
			genState: &types.GenesisState{
				Params:        types.DefaultParams(),
				OracleMembers: []string{member},
				URIPatterns:   []types.URIPattern{{ClaimKind: types.ClaimKindDomain, Pattern: "*.example.com"}},
				Documents:     []types.RegisteredDoc{validDoc},
				DocCounter:    1,
				Nonces:        []types.AccountNonce{{Account: account, Nonce: 3}},
			},
			valid: true,
		},
		{
			desc:     "empty params is invalid",
			genState: &types.GenesisState{},
			valid:    false,
		},
		{
			desc: "duplicate oracle member is invalid",
			genState: &types.GenesisState{
				Params:        types.DefaultParams(),
				OracleMembers: []string{member, member},
			},
			valid: false,
		},
		{
			desc: "malformed oracle member is invalid",
			genState: &types.GenesisState{
				Params:        types.DefaultParams(),
				OracleMembers: []string{"not-an-address"},
			},
			valid: false,
		},
		{
			desc: "malformed pattern is invalid",
			genState: &types.GenesisState{
				Params:      types.DefaultParams(),
				URIPatterns: []types.URIPattern{{Pattern: "exa mple.com"}},
			},
			valid: false,
		},
		{
			desc: "counter below document count is invalid",
			genState: &types.GenesisState{
				Params:    types.DefaultParams(),
				Documents: []types.RegisteredDoc{validDoc},
			},
			valid: false,
		},
		{
			desc: "duplicate document uri is invalid",
			genState: &types.GenesisState{
				Params:     types.DefaultParams(),
				Documents:  []types.RegisteredDoc{validDoc, validDoc},
				DocCounter: 2,
			},
			valid: false,
		},
		{
			desc: "bad nonce account is invalid",
			genState: &types.GenesisState{
				Params: types.DefaultParams(),
				Nonces: []types.AccountNonce{{Account: "abcd", Nonce: 1}},
			},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			err := tt.genState.Validate()
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
