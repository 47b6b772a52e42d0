package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tokenize-x/streamrewards/x/streamrewards/types"
)

// Hooks implements the balance hooks interface the external ledger must call
// synchronously before committing any balance mutation. At that point the
// ledger still reports pre-mutation balances, which is exactly what the
// settlement needs.
type Hooks struct {
	k Keeper
}

var _ types.BalanceHooks = Hooks{}

// Hooks creates new balance hooks.
func (k Keeper) Hooks() Hooks {
	return Hooks{k}
}

// BeforeMint implements the balance hooks interface.
func (h Hooks) BeforeMint(ctx context.Context, to sdk.AccAddress) error {
	return h.k.settleAll(ctx, to)
}

// BeforeBurn implements the balance hooks interface.
func (h Hooks) BeforeBurn(ctx context.Context, from sdk.AccAddress) error {
	return h.k.settleAll(ctx, from)
}

// BeforeSend implements the balance hooks interface. Both sides of the
// transfer are settled; transfer-on-behalf goes through here as well.
func (h Hooks) BeforeSend(ctx context.Context, from, to sdk.AccAddress) error {
	return h.k.settleAll(ctx, from, to)
}

// settleAll settles every affected holder for every registered reward asset,
// reusing a single reading of current time across the whole operation.
func (k Keeper) settleAll(ctx context.Context, holders ...sdk.AccAddress) error {
	now := blockTime(ctx)

	count, err := k.getRewardAssetCount(ctx)
	if err != nil {
		return err
	}
	for assetIndex := uint64(0); assetIndex < count; assetIndex++ {
		for _, holder := range holders {
			if _, err := k.settleHolder(ctx, assetIndex, holder, now); err != nil {
				return err
			}
		}
	}

	return nil
}
