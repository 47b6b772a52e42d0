package keeper

import (
	"context"

	"cosmossdk.io/collections"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/tokenize-x/streamrewards/x/streamrewards/types"
)

// InitGenesis initializes the module's state from a provided genesis state.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return err
	}

	for i, asset := range genState.RewardAssets {
		assetIndex := uint64(i)
		if err := k.RewardAssets.Set(ctx, assetIndex, asset.Denom); err != nil {
			return err
		}
		if asset.Schedule != nil {
			if err := k.Schedules.Set(ctx, assetIndex, *asset.Schedule); err != nil {
				return err
			}
		}
		if err := k.Accumulators.Set(ctx, assetIndex, asset.Accumulator); err != nil {
			return err
		}
		for _, checkpoint := range asset.Checkpoints {
			holder, err := sdk.AccAddressFromBech32(checkpoint.Holder)
			if err != nil {
				return err
			}
			if err := k.Checkpoints.Set(ctx, collections.Join(assetIndex, holder), checkpoint.Checkpoint); err != nil {
				return err
			}
		}
	}

	return k.RewardAssetCount.Set(ctx, uint64(len(genState.RewardAssets)))
}

// ExportGenesis returns the module's exported genesis.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genesis := types.DefaultGenesisState()

	count, err := k.getRewardAssetCount(ctx)
	if err != nil {
		return nil, err
	}

	for assetIndex := uint64(0); assetIndex < count; assetIndex++ {
		denom, err := k.RewardAssets.Get(ctx, assetIndex)
		if err != nil {
			return nil, err
		}

		asset := types.RewardAssetGenesis{Denom: denom}

		schedule, found, err := k.GetSchedule(ctx, assetIndex)
		if err != nil {
			return nil, err
		}
		if found {
			asset.Schedule = &schedule
		}

		asset.Accumulator, err = k.getAccumulator(ctx, assetIndex)
		if err != nil {
			return nil, err
		}

		rng := collections.NewPrefixedPairRange[uint64, sdk.AccAddress](assetIndex)
		if err := k.Checkpoints.Walk(ctx, rng, func(key collections.Pair[uint64, sdk.AccAddress], value types.UserCheckpoint) (bool, error) {
			asset.Checkpoints = append(asset.Checkpoints, types.CheckpointGenesis{
				Holder:     key.K2().String(),
				Checkpoint: value,
			})
			return false, nil
		}); err != nil {
			return nil, err
		}

		genesis.RewardAssets = append(genesis.RewardAssets, asset)
	}

	return genesis, nil
}
