package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sonr-io/urauth/x/urauth/types"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		desc   string
		modify func(*types.Params)
		valid  bool
	}{
		{"default is valid", func(*types.Params) {}, true},
		{"uri length too small", func(p *types.Params) { p.MaxURILength = 8 }, false},
		{"uri length too large", func(p *types.Params) { p.MaxURILength = 5000 }, false},
		{"no oracle members allowed", func(p *types.Params) { p.MaxOracleMembers = 0 }, false},
		{"no patterns allowed", func(p *types.Params) { p.MaxURIPatterns = 0 }, false},
		{"no owners allowed", func(p *types.Params) { p.MaxOwners = 0 }, false},
		{"zero expiry", func(p *types.Params) { p.RequestExpiryBlocks = 0 }, false},
		{"negative expiry", func(p *types.Params) { p.RequestExpiryBlocks = -1 }, false},
		{"randomness disabled", func(p *types.Params) { p.RandomChallenge = false }, true},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			p := types.DefaultParams()
			tt.modify(&p)
			err := p.Validate()
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}

	require.Contains(t, types.DefaultParams().String(), `"random_challenge":true`)
}
