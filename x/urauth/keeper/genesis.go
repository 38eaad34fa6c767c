package keeper

import (
	"context"
	"encoding/hex"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/sonr-io/urauth/x/urauth/types"
)

// InitGenesis initializes the module's state from a specified GenesisState
func (k Keeper) InitGenesis(ctx context.Context, state *types.GenesisState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	for _, rd := range state.Documents {
		if err := rd.Doc.MultiOwnerDID.ValidateAccounts(k.didCodec); err != nil {
			return errorsmod.Wrapf(types.ErrInvalidDID, "document %s: %v", rd.URI, err)
		}
	}

	if err := k.Params.Set(ctx, state.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}

	for _, m := range state.OracleMembers {
		addr, err := sdk.AccAddressFromBech32(m)
		if err != nil {
			return err
		}
		if err := k.OracleMembers.Set(ctx, addr); err != nil {
			return fmt.Errorf("failed to set oracle member: %w", err)
		}
	}

	for _, p := range state.URIPatterns {
		if err := k.URIPatterns.Set(ctx, patternKey(p)); err != nil {
			return fmt.Errorf("failed to set uri pattern: %w", err)
		}
	}

	for _, rd := range state.Documents {
		if err := k.Registry.Set(ctx, rd.URI, rd.Doc); err != nil {
			return fmt.Errorf("failed to set document: %w", err)
		}
	}

	if err := k.DocCounter.Set(ctx, state.DocCounter); err != nil {
		return fmt.Errorf("failed to set doc counter: %w", err)
	}

	for _, n := range state.Nonces {
		acc, err := n.AccountID()
		if err != nil {
			return err
		}
		if err := k.Nonces.Set(ctx, acc.Bytes(), n.Nonce); err != nil {
			return fmt.Errorf("failed to set nonce: %w", err)
		}
	}

	return nil
}

// ExportGenesis exports the module's state. Pending requests and in-flight
// updates are not exported.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	gs := types.DefaultGenesis()
	gs.Params = params

	members, err := k.GetOracleMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export oracle members: %w", err)
	}
	for _, m := range members {
		gs.OracleMembers = append(gs.OracleMembers, m.String())
	}

	patterns, err := k.GetURIPatterns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export uri patterns: %w", err)
	}
	gs.URIPatterns = append(gs.URIPatterns, patterns...)

	err = k.Registry.Walk(ctx, nil, func(uri string, doc types.URAuthDoc) (bool, error) {
		gs.Documents = append(gs.Documents, types.RegisteredDoc{URI: uri, Doc: doc})
		return false, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export documents: %w", err)
	}

	gs.DocCounter, err = k.DocCounter.Peek(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export doc counter: %w", err)
	}

	err = k.Nonces.Walk(ctx, nil, func(acc []byte, nonce uint64) (bool, error) {
		gs.Nonces = append(gs.Nonces, types.AccountNonce{Account: hex.EncodeToString(acc), Nonce: nonce})
		return false, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export nonces: %w", err)
	}

	return gs, nil
}

