package keeper

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/sonr-io/urauth/x/urauth/types"
)

// BeginBlocker runs the expiry sweep for the current height
func (k Keeper) BeginBlocker(ctx context.Context) error {
	height := sdk.UnwrapSDKContext(ctx).BlockHeight()
	expired, err := k.SweepExpired(ctx, height)
	if err != nil {
		k.logger.Error("failed to sweep expired requests", "height", height, "error", err)
		return err
	}
	if expired > 0 {
		k.logger.Debug("swept expired requests", "height", height, "count", expired)
	}
	return nil
}

// SweepExpired discards every pending request scheduled to expire at or
// before height and returns how many were dropped. Schedule entries left
// behind by replaced or completed requests are cleared without effect.
func (k Keeper) SweepExpired(ctx context.Context, height int64) (int, error) {
	rng := collections.NewPrefixUntilPairRange[int64, string](height)

	var due []collections.Pair[int64, string]
	err := k.ExpirySchedule.Walk(ctx, rng, func(key collections.Pair[int64, string]) (bool, error) {
		due = append(due, key)
		return false, nil
	})
	if err != nil {
		return 0, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	expired := 0
	for _, key := range due {
		at, uri := key.K1(), key.K2()
		if err := k.ExpirySchedule.Remove(ctx, key); err != nil {
			return expired, err
		}

		meta, err := k.Pending.Get(ctx, uri)
		if err != nil {
			if errors.Is(err, collections.ErrNotFound) {
				continue
			}
			return expired, err
		}
		if meta.ExpiresAt != at {
			continue
		}

		if err := k.purgePending(ctx, uri, at); err != nil {
			return expired, err
		}
		expired++

		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeRequestExpired,
				sdk.NewAttribute(types.AttributeKeyURI, uri),
				sdk.NewAttribute(types.AttributeKeyOwnerDID, meta.OwnerDID),
				sdk.NewAttribute(types.AttributeKeyExpiresAt, fmt.Sprintf("%d", at)),
			),
		)
	}
	return expired, nil
}
