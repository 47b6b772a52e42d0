package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/collections"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	cosmoserrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/tokenize-x/streamrewards/x/streamrewards/types"
)

// Claim settles the holder, deducts amount from their owed balance and hands
// it to the transfer collaborator. The whole operation is branched on a
// cached store: if the transfer fails nothing is retained, including the
// settlement itself. The transfer is never retried, retrying risks double
// payment; the caller resubmits the whole claim.
func (k Keeper) Claim(
	ctx context.Context,
	assetIndex uint64,
	holder, recipient sdk.AccAddress,
	amount sdkmath.Int,
) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, writeCache := sdkCtx.CacheContext()
	if err := k.claim(cacheCtx, assetIndex, holder, recipient, amount); err != nil {
		return err
	}
	writeCache()
	return nil
}

// ClaimAll claims the holder's full settled balance to the given recipient
// and returns the claimed amount.
func (k Keeper) ClaimAll(ctx context.Context, assetIndex uint64, holder, recipient sdk.AccAddress) (sdkmath.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, writeCache := sdkCtx.CacheContext()

	checkpoint, err := k.settleHolder(cacheCtx, assetIndex, holder, blockTime(cacheCtx))
	if err != nil {
		return sdkmath.Int{}, err
	}
	amount := checkpoint.Owed
	if err := k.claim(cacheCtx, assetIndex, holder, recipient, amount); err != nil {
		return sdkmath.Int{}, err
	}

	writeCache()
	return amount, nil
}

// ClaimFor lets anyone trigger a claim on behalf of a holder. The payout
// always returns to the holder, never to the caller.
func (k Keeper) ClaimFor(ctx context.Context, assetIndex uint64, holder sdk.AccAddress) (sdkmath.Int, error) {
	return k.ClaimAll(ctx, assetIndex, holder, holder)
}

func (k Keeper) claim(
	ctx sdk.Context,
	assetIndex uint64,
	holder, recipient sdk.AccAddress,
	amount sdkmath.Int,
) error {
	denom, err := k.GetRewardAsset(ctx, assetIndex)
	if err != nil {
		return err
	}
	if amount.IsNil() || amount.IsNegative() {
		return cosmoserrors.ErrInvalidRequest.Wrap("claim amount must be non-negative")
	}

	checkpoint, err := k.settleHolder(ctx, assetIndex, holder, blockTime(ctx))
	if err != nil {
		return err
	}

	// Underflow-guarded deduction, not a clamp.
	owed, err := checkpoint.Owed.SafeSub(amount)
	if err != nil || owed.IsNegative() {
		return types.ErrInsufficientOwed.Wrapf("claim %s, owed %s", amount, checkpoint.Owed)
	}
	checkpoint.Owed = owed
	if err := k.Checkpoints.Set(ctx, collections.Join(assetIndex, holder), checkpoint); err != nil {
		return err
	}

	if amount.IsPositive() {
		if err := k.transferKeeper.TransferOut(ctx, denom, recipient, amount); err != nil {
			return types.ErrTransferFailed.Wrapf("%s %s to %s: %s", amount, denom, recipient, err)
		}
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRewardsClaimed,
		sdk.NewAttribute(types.AttributeKeyAssetIndex, strconv.FormatUint(assetIndex, 10)),
		sdk.NewAttribute(types.AttributeKeyHolder, holder.String()),
		sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))

	return nil
}
