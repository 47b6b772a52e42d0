package keeper

import (
	"context"
	"errors"
	"strconv"

	"cosmossdk.io/collections"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tokenize-x/streamrewards/x/streamrewards/types"
)

// updateAccumulator refreshes a reward asset's accumulator to the given
// reading of current time and persists it when it moved.
func (k Keeper) updateAccumulator(ctx context.Context, assetIndex uint64, now uint64) (types.Accumulator, error) {
	acc, changed, err := k.projectAccumulator(ctx, assetIndex, now)
	if err != nil {
		return types.Accumulator{}, err
	}
	if !changed {
		return acc, nil
	}

	if err := k.Accumulators.Set(ctx, assetIndex, acc); err != nil {
		return types.Accumulator{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeAccumulatorUpdated,
		sdk.NewAttribute(types.AttributeKeyAssetIndex, strconv.FormatUint(assetIndex, 10)),
		sdk.NewAttribute(types.AttributeKeyAccumulatedPerUnit, acc.AccumulatedPerUnit.String()),
	))

	return acc, nil
}

// projectAccumulator computes the refreshed accumulator without persisting.
// The returned flag reports whether the refresh moved LastUpdated.
func (k Keeper) projectAccumulator(ctx context.Context, assetIndex uint64, now uint64) (types.Accumulator, bool, error) {
	acc, err := k.getAccumulator(ctx, assetIndex)
	if err != nil {
		return types.Accumulator{}, false, err
	}

	schedule, found, err := k.GetSchedule(ctx, assetIndex)
	if err != nil {
		return types.Accumulator{}, false, err
	}
	if !found {
		return acc, false, nil
	}

	totalOutstanding, err := k.balanceKeeper.TotalOutstanding(ctx)
	if err != nil {
		return types.Accumulator{}, false, err
	}

	return accrue(acc, schedule, now, totalOutstanding)
}

// settleHolder refreshes the accumulator and folds the movement since the
// holder's checkpoint into their owed balance, using the holder's balance as
// reported by the ledger right now. Callers on the mutation path must invoke
// this before the ledger commits the balance change.
func (k Keeper) settleHolder(
	ctx context.Context,
	assetIndex uint64,
	holder sdk.AccAddress,
	now uint64,
) (types.UserCheckpoint, error) {
	acc, err := k.updateAccumulator(ctx, assetIndex, now)
	if err != nil {
		return types.UserCheckpoint{}, err
	}

	checkpoint, err := k.getCheckpoint(ctx, assetIndex, holder)
	if err != nil {
		return types.UserCheckpoint{}, err
	}
	if checkpoint.Checkpoint.Equal(acc.AccumulatedPerUnit) {
		return checkpoint, nil
	}

	balance, err := k.balanceKeeper.BalanceOf(ctx, holder)
	if err != nil {
		return types.UserCheckpoint{}, err
	}
	if balance.IsNil() {
		balance = sdkmath.ZeroInt()
	}

	delta, err := owedDelta(balance, acc.AccumulatedPerUnit, checkpoint.Checkpoint)
	if err != nil {
		return types.UserCheckpoint{}, err
	}
	owed, err := checkpoint.Owed.SafeAdd(delta)
	if err != nil {
		return types.UserCheckpoint{}, types.ErrOverflow.Wrapf("owed: %s", err)
	}
	checkpoint.Owed = owed
	checkpoint.Checkpoint = acc.AccumulatedPerUnit

	if err := k.Checkpoints.Set(ctx, collections.Join(assetIndex, holder), checkpoint); err != nil {
		return types.UserCheckpoint{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeUserRewardsUpdated,
		sdk.NewAttribute(types.AttributeKeyAssetIndex, strconv.FormatUint(assetIndex, 10)),
		sdk.NewAttribute(types.AttributeKeyHolder, holder.String()),
		sdk.NewAttribute(types.AttributeKeyOwed, checkpoint.Owed.String()),
		sdk.NewAttribute(types.AttributeKeyCheckpoint, checkpoint.Checkpoint.String()),
	))

	return checkpoint, nil
}

// CurrentRewardPerUnit recomputes the accumulator without persisting and
// returns its scaled per-unit value.
func (k Keeper) CurrentRewardPerUnit(ctx context.Context, assetIndex uint64) (sdkmath.Int, error) {
	if _, err := k.GetRewardAsset(ctx, assetIndex); err != nil {
		return sdkmath.Int{}, err
	}
	acc, _, err := k.projectAccumulator(ctx, assetIndex, blockTime(ctx))
	if err != nil {
		return sdkmath.Int{}, err
	}
	return acc.AccumulatedPerUnit, nil
}

// CurrentOwed recomputes, without persisting, what a settlement followed by
// a full claim would pay the holder right now.
func (k Keeper) CurrentOwed(ctx context.Context, assetIndex uint64, holder sdk.AccAddress) (sdkmath.Int, error) {
	if _, err := k.GetRewardAsset(ctx, assetIndex); err != nil {
		return sdkmath.Int{}, err
	}

	acc, _, err := k.projectAccumulator(ctx, assetIndex, blockTime(ctx))
	if err != nil {
		return sdkmath.Int{}, err
	}

	checkpoint, err := k.getCheckpoint(ctx, assetIndex, holder)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if checkpoint.Checkpoint.Equal(acc.AccumulatedPerUnit) {
		return checkpoint.Owed, nil
	}

	balance, err := k.balanceKeeper.BalanceOf(ctx, holder)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if balance.IsNil() {
		balance = sdkmath.ZeroInt()
	}

	delta, err := owedDelta(balance, acc.AccumulatedPerUnit, checkpoint.Checkpoint)
	if err != nil {
		return sdkmath.Int{}, err
	}
	owed, err := checkpoint.Owed.SafeAdd(delta)
	if err != nil {
		return sdkmath.Int{}, types.ErrOverflow.Wrapf("owed: %s", err)
	}
	return owed, nil
}

func (k Keeper) getCheckpoint(ctx context.Context, assetIndex uint64, holder sdk.AccAddress) (types.UserCheckpoint, error) {
	checkpoint, err := k.Checkpoints.Get(ctx, collections.Join(assetIndex, holder))
	if errors.Is(err, collections.ErrNotFound) {
		return types.NewUserCheckpoint(), nil
	} else if err != nil {
		return types.UserCheckpoint{}, err
	}
	return checkpoint, nil
}
