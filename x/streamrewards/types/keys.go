package types

import "cosmossdk.io/collections"

const (
	// ModuleName defines the module name.
	ModuleName = "streamrewards"

	// StoreKey defines the primary module store key.
	StoreKey = ModuleName

	// MaxRewardAssets caps the registry size. Every balance mutation settles
	// every registered asset, so the cap bounds the per-mutation cost.
	MaxRewardAssets = 10
)

// KVStore keys.
var (
	RewardAssetsKey     = collections.NewPrefix(0)
	RewardAssetCountKey = collections.NewPrefix(1)
	SchedulesKey        = collections.NewPrefix(2)
	AccumulatorsKey     = collections.NewPrefix(3)
	CheckpointsKey      = collections.NewPrefix(4)
)
