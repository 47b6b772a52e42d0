package keeper

import (
	"context"

	"cosmossdk.io/collections"
	sdkstore "cosmossdk.io/core/store"
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tokenize-x/streamrewards/x/streamrewards/types"
)

// Keeper is the settlement engine of the module. It exclusively owns the
// per-asset and per-(asset, holder) stores; external collaborators only
// reach them through its methods.
type Keeper struct {
	storeService sdkstore.KVStoreService
	authority    string

	// keepers
	balanceKeeper  types.BalanceKeeper
	transferKeeper types.TransferKeeper

	// collections
	Schema           collections.Schema
	RewardAssets     collections.Map[uint64, string]
	RewardAssetCount collections.Item[uint64]
	Schedules        collections.Map[uint64, types.Schedule]
	Accumulators     collections.Map[uint64, types.Accumulator]
	Checkpoints      collections.Map[collections.Pair[uint64, sdk.AccAddress], types.UserCheckpoint]
}

// NewKeeper returns a new keeper object providing storage options required by the module.
func NewKeeper(
	storeService sdkstore.KVStoreService,
	authority string,
	balanceKeeper types.BalanceKeeper,
	transferKeeper types.TransferKeeper,
) Keeper {
	sb := collections.NewSchemaBuilder(storeService)
	k := Keeper{
		storeService:   storeService,
		authority:      authority,
		balanceKeeper:  balanceKeeper,
		transferKeeper: transferKeeper,

		RewardAssets: collections.NewMap(
			sb,
			types.RewardAssetsKey,
			"reward_assets",
			collections.Uint64Key,
			collections.StringValue,
		),
		RewardAssetCount: collections.NewItem(
			sb,
			types.RewardAssetCountKey,
			"reward_asset_count",
			collections.Uint64Value,
		),
		Schedules: collections.NewMap(
			sb,
			types.SchedulesKey,
			"schedules",
			collections.Uint64Key,
			types.ScheduleValue,
		),
		Accumulators: collections.NewMap(
			sb,
			types.AccumulatorsKey,
			"accumulators",
			collections.Uint64Key,
			types.AccumulatorValue,
		),
		Checkpoints: collections.NewMap(
			sb,
			types.CheckpointsKey,
			"checkpoints",
			collections.PairKeyCodec(collections.Uint64Key, sdk.AccAddressKey),
			types.UserCheckpointValue,
		),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

// Logger returns the module logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// blockTime returns the operation's single reading of current time in unix
// seconds. Every refresh inside one operation reuses this value so clamping
// to schedule boundaries is self-consistent.
func blockTime(ctx context.Context) uint64 {
	return uint64(sdk.UnwrapSDKContext(ctx).BlockTime().Unix())
}
