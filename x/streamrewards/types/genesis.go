package types

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	cosmoserrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/samber/lo"
)

// GenesisState holds the full module state: the reward-asset registry in
// index order, each with its schedule, accumulator and holder checkpoints.
type GenesisState struct {
	RewardAssets []RewardAssetGenesis `json:"reward_assets"`
}

// RewardAssetGenesis is the exported state of a single registry slot.
type RewardAssetGenesis struct {
	Denom       string              `json:"denom"`
	Schedule    *Schedule           `json:"schedule,omitempty"`
	Accumulator Accumulator         `json:"accumulator"`
	Checkpoints []CheckpointGenesis `json:"checkpoints,omitempty"`
}

// CheckpointGenesis is the exported state of a single (asset, holder) pair.
type CheckpointGenesis struct {
	Holder     string         `json:"holder"`
	Checkpoint UserCheckpoint `json:"checkpoint"`
}

// DefaultGenesisState returns genesis state with no reward assets.
func DefaultGenesisState() *GenesisState {
	return &GenesisState{
		RewardAssets: []RewardAssetGenesis{},
	}
}

// Validate validates genesis state.
func (m *GenesisState) Validate() error {
	if len(m.RewardAssets) > MaxRewardAssets {
		return ErrCapacityExceeded.Wrapf("%d reward assets, capacity is %d", len(m.RewardAssets), MaxRewardAssets)
	}

	for i, asset := range m.RewardAssets {
		if err := sdk.ValidateDenom(asset.Denom); err != nil {
			return errorsmod.Wrapf(err, "invalid denom for reward asset %d", i)
		}
		if asset.Schedule != nil {
			if err := asset.Schedule.Validate(); err != nil {
				return errorsmod.Wrapf(err, "invalid schedule for reward asset %d", i)
			}
		}
		if err := asset.Accumulator.Validate(); err != nil {
			return errorsmod.Wrapf(err, "invalid accumulator for reward asset %d", i)
		}

		holders := lo.Map(asset.Checkpoints, func(c CheckpointGenesis, _ int) string {
			return c.Holder
		})
		if len(lo.Uniq(holders)) != len(holders) {
			return cosmoserrors.ErrInvalidRequest.Wrapf("duplicate holder checkpoint for reward asset %d", i)
		}

		for _, checkpoint := range asset.Checkpoints {
			if _, err := sdk.AccAddressFromBech32(checkpoint.Holder); err != nil {
				return errorsmod.Wrapf(err, "invalid holder address for reward asset %d", i)
			}
			if err := checkpoint.Checkpoint.Validate(); err != nil {
				return errorsmod.Wrapf(err, "invalid checkpoint for reward asset %d holder %s", i, checkpoint.Holder)
			}
		}
	}

	return nil
}
