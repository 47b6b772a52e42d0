package keeper

import (
	"context"
	"errors"
	"strconv"

	"cosmossdk.io/collections"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	cosmoserrors "github.com/cosmos/cosmos-sdk/types/errors"
	pkgerrors "github.com/pkg/errors"

	"github.com/tokenize-x/streamrewards/x/streamrewards/types"
)

// ConfigureSchedule installs a new payout program for a reward asset. The
// previously stored window must be over (or not started): current time must
// lie strictly outside [start, end]. The old program's accrued reward is
// flushed into the accumulator before the replacement, so nothing already
// released is lost.
//
// rate = totalRewards / (end - start) with floor division; the remainder is
// permanently forfeited. That rounding loss is intentional.
//
// The new start may lie in the past. In that case the next refresh credits
// the whole span from start to now at the new rate, regardless of how
// holdings moved during it. Backdating is a deliberate allowance, callers
// own the consequences.
func (k Keeper) ConfigureSchedule(
	ctx context.Context,
	authority string,
	assetIndex uint64,
	start, end uint64,
	totalRewards sdkmath.Int,
) error {
	if k.authority != authority {
		return pkgerrors.Wrapf(types.ErrUnauthorized, "expected %s, got %s", k.authority, authority)
	}
	if _, err := k.GetRewardAsset(ctx, assetIndex); err != nil {
		return err
	}
	if start >= end {
		return types.ErrInvalidInterval.Wrapf("start %d is not before end %d", start, end)
	}
	if totalRewards.IsNil() || totalRewards.IsNegative() {
		return cosmoserrors.ErrInvalidRequest.Wrap("total rewards must be non-negative")
	}

	now := blockTime(ctx)

	stored, err := k.Schedules.Get(ctx, assetIndex)
	if err == nil {
		if now >= stored.StartTime && now <= stored.EndTime {
			return types.ErrScheduleStillActive.Wrapf(
				"current time %d is within [%d, %d]", now, stored.StartTime, stored.EndTime,
			)
		}
		// Flush the old program up to now before replacing it.
		if _, err := k.updateAccumulator(ctx, assetIndex, now); err != nil {
			return err
		}
	} else if !errors.Is(err, collections.ErrNotFound) {
		return err
	}

	rate := totalRewards.Quo(sdkmath.NewIntFromUint64(end - start))
	schedule := types.Schedule{
		StartTime: start,
		EndTime:   end,
		Rate:      rate,
	}
	if err := k.Schedules.Set(ctx, assetIndex, schedule); err != nil {
		return err
	}

	acc, err := k.getAccumulator(ctx, assetIndex)
	if err != nil {
		return err
	}
	acc.LastUpdated = start
	if err := k.Accumulators.Set(ctx, assetIndex, acc); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeScheduleSet,
		sdk.NewAttribute(types.AttributeKeyAssetIndex, strconv.FormatUint(assetIndex, 10)),
		sdk.NewAttribute(types.AttributeKeyStartTime, strconv.FormatUint(start, 10)),
		sdk.NewAttribute(types.AttributeKeyEndTime, strconv.FormatUint(end, 10)),
		sdk.NewAttribute(types.AttributeKeyRate, rate.String()),
	))

	return nil
}

// GetSchedule returns the stored schedule for a reward asset. The boolean
// flag reports whether one has been configured.
func (k Keeper) GetSchedule(ctx context.Context, assetIndex uint64) (types.Schedule, bool, error) {
	schedule, err := k.Schedules.Get(ctx, assetIndex)
	if errors.Is(err, collections.ErrNotFound) {
		return types.Schedule{}, false, nil
	} else if err != nil {
		return types.Schedule{}, false, err
	}
	return schedule, true, nil
}

// GetAccumulator returns the stored accumulator for a reward asset, zero if
// it has never been touched.
func (k Keeper) GetAccumulator(ctx context.Context, assetIndex uint64) (types.Accumulator, error) {
	return k.getAccumulator(ctx, assetIndex)
}

func (k Keeper) getAccumulator(ctx context.Context, assetIndex uint64) (types.Accumulator, error) {
	acc, err := k.Accumulators.Get(ctx, assetIndex)
	if errors.Is(err, collections.ErrNotFound) {
		return types.NewAccumulator(), nil
	} else if err != nil {
		return types.Accumulator{}, err
	}
	return acc, nil
}
