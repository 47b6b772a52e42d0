package keeper

import (
	"context"
	"errors"
	"strconv"

	"cosmossdk.io/collections"
	sdk "github.com/cosmos/cosmos-sdk/types"
	pkgerrors "github.com/pkg/errors"

	"github.com/tokenize-x/streamrewards/x/streamrewards/types"
)

// RegisterRewardAsset appends a reward asset denom to the registry and
// returns its index. Registration is not idempotent: registering the same
// denom twice creates two independent accounting slots, callers must avoid
// duplicates themselves.
func (k Keeper) RegisterRewardAsset(ctx context.Context, authority, denom string) (uint64, error) {
	if k.authority != authority {
		return 0, pkgerrors.Wrapf(types.ErrUnauthorized, "expected %s, got %s", k.authority, authority)
	}
	if err := sdk.ValidateDenom(denom); err != nil {
		return 0, err
	}

	count, err := k.getRewardAssetCount(ctx)
	if err != nil {
		return 0, err
	}
	if count >= types.MaxRewardAssets {
		return 0, types.ErrCapacityExceeded.Wrapf("registry already holds %d reward assets", count)
	}

	if err := k.RewardAssets.Set(ctx, count, denom); err != nil {
		return 0, err
	}
	if err := k.RewardAssetCount.Set(ctx, count+1); err != nil {
		return 0, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRewardAssetRegistered,
		sdk.NewAttribute(types.AttributeKeyAssetIndex, strconv.FormatUint(count, 10)),
		sdk.NewAttribute(types.AttributeKeyDenom, denom),
	))

	return count, nil
}

// GetRewardAsset returns the denom registered under the given index.
func (k Keeper) GetRewardAsset(ctx context.Context, assetIndex uint64) (string, error) {
	denom, err := k.RewardAssets.Get(ctx, assetIndex)
	if errors.Is(err, collections.ErrNotFound) {
		return "", types.ErrUnknownRewardAsset.Wrapf("index %d", assetIndex)
	} else if err != nil {
		return "", err
	}
	return denom, nil
}

// GetRewardAssets returns all registered denoms in index order.
func (k Keeper) GetRewardAssets(ctx context.Context) ([]string, error) {
	var denoms []string

	iter, err := k.RewardAssets.Iterate(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	for ; iter.Valid(); iter.Next() {
		denom, err := iter.Value()
		if err != nil {
			return nil, err
		}
		denoms = append(denoms, denom)
	}

	return denoms, nil
}

func (k Keeper) getRewardAssetCount(ctx context.Context) (uint64, error) {
	count, err := k.RewardAssetCount.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return count, nil
}
