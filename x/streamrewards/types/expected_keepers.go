package types

import (
	context "context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BalanceKeeper is the external ledger tracking the asset whose holders the
// rewards are distributed over. The module only reads from it; ownership,
// transfer mechanics and authorization stay on the ledger side.
type BalanceKeeper interface {
	// BalanceOf returns the holder's current balance of the tracked asset.
	BalanceOf(ctx context.Context, holder sdk.AccAddress) (sdkmath.Int, error)
	// TotalOutstanding returns the current total outstanding balance of the
	// tracked asset.
	TotalOutstanding(ctx context.Context) (sdkmath.Int, error)
}

// TransferKeeper moves reward-asset units out of the module to a recipient.
// TransferOut must fail atomically: either the full amount moves or none.
type TransferKeeper interface {
	TransferOut(ctx context.Context, denom string, recipient sdk.AccAddress, amount sdkmath.Int) error
}

// BalanceHooks is the callback interface the balance ledger must invoke
// synchronously before committing a balance mutation, so holders are settled
// against their pre-mutation balances. Transfer-on-behalf goes through
// BeforeSend like a plain transfer.
type BalanceHooks interface {
	BeforeMint(ctx context.Context, to sdk.AccAddress) error
	BeforeBurn(ctx context.Context, from sdk.AccAddress) error
	BeforeSend(ctx context.Context, from, to sdk.AccAddress) error
}
