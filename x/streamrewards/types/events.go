package types

// Event types emitted by the module.
const (
	EventTypeRewardAssetRegistered = "reward_asset_registered"
	EventTypeScheduleSet           = "reward_schedule_set"
	EventTypeAccumulatorUpdated    = "reward_accumulator_updated"
	EventTypeUserRewardsUpdated    = "user_rewards_updated"
	EventTypeRewardsClaimed        = "rewards_claimed"
)

// Event attribute keys.
const (
	AttributeKeyAssetIndex         = "asset_index"
	AttributeKeyDenom              = "denom"
	AttributeKeyStartTime          = "start_time"
	AttributeKeyEndTime            = "end_time"
	AttributeKeyRate               = "rate"
	AttributeKeyAccumulatedPerUnit = "accumulated_per_unit"
	AttributeKeyHolder             = "holder"
	AttributeKeyOwed               = "owed"
	AttributeKeyCheckpoint         = "checkpoint"
	AttributeKeyRecipient          = "recipient"
	AttributeKeyAmount             = "amount"
)
