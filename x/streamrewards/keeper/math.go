package keeper

import (
	"math/big"

	sdkmath "cosmossdk.io/math"
	cosmoserrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/tokenize-x/streamrewards/x/streamrewards/types"
)

// accrue advances an accumulator under its schedule to the given reading of
// current time. It is pure: callers persist the result (and only when the
// returned flag reports a change). Reward released while totalOutstanding is
// zero is forfeited, not redistributed later.
func accrue(
	acc types.Accumulator,
	schedule types.Schedule,
	now uint64,
	totalOutstanding sdkmath.Int,
) (types.Accumulator, bool, error) {
	if now < schedule.StartTime {
		return acc, false, nil
	}

	updateTime := min(now, schedule.EndTime)
	if updateTime <= acc.LastUpdated {
		return acc, false, nil
	}
	elapsed := updateTime - acc.LastUpdated

	// Time advances even when nothing accrues.
	acc.LastUpdated = updateTime

	if totalOutstanding.IsNil() || !totalOutstanding.IsPositive() {
		return acc, true, nil
	}

	delta, err := perUnitDelta(elapsed, schedule.Rate, totalOutstanding)
	if err != nil {
		return types.Accumulator{}, false, err
	}
	accumulated, err := acc.AccumulatedPerUnit.SafeAdd(delta)
	if err != nil {
		return types.Accumulator{}, false, types.ErrOverflow.Wrapf("accumulated per unit: %s", err)
	}
	acc.AccumulatedPerUnit = accumulated

	return acc, true, nil
}

// perUnitDelta computes ScalingFactor * elapsed * rate / totalOutstanding
// with floor division. The product is taken in math/big and range-checked,
// so a result beyond the 256-bit width fails instead of wrapping.
func perUnitDelta(elapsed uint64, rate, totalOutstanding sdkmath.Int) (sdkmath.Int, error) {
	num := new(big.Int).Mul(types.ScalingFactor.BigInt(), new(big.Int).SetUint64(elapsed))
	num.Mul(num, rate.BigInt())
	num.Quo(num, totalOutstanding.BigInt())
	if num.BitLen() > sdkmath.MaxBitLen {
		return sdkmath.Int{}, types.ErrOverflow.Wrapf("per-unit delta for %d elapsed seconds", elapsed)
	}
	return sdkmath.NewIntFromBigInt(num), nil
}

// owedDelta scales the accumulator movement since the holder's checkpoint
// back down to true reward units: balance * (accumulated - checkpoint) / 1e18,
// floor division.
func owedDelta(balance, accumulated, checkpoint sdkmath.Int) (sdkmath.Int, error) {
	if checkpoint.GT(accumulated) {
		return sdkmath.Int{}, cosmoserrors.ErrLogic.Wrap("user checkpoint ahead of accumulator")
	}
	num := new(big.Int).Mul(balance.BigInt(), accumulated.Sub(checkpoint).BigInt())
	num.Quo(num, types.ScalingFactor.BigInt())
	if num.BitLen() > sdkmath.MaxBitLen {
		return sdkmath.Int{}, types.ErrOverflow.Wrap("owed delta")
	}
	return sdkmath.NewIntFromBigInt(num), nil
}
