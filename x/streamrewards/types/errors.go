package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Module errors.
// NOTE: Error status code must start from 2.
var (
	// ErrCapacityExceeded is returned when registering a reward asset beyond
	// the MaxRewardAssets bound.
	ErrCapacityExceeded = sdkerrors.Register(ModuleName, 2, "reward asset capacity exceeded")
	// ErrInvalidInterval is returned when a schedule's start is not strictly
	// before its end.
	ErrInvalidInterval = sdkerrors.Register(ModuleName, 3, "invalid schedule interval")
	// ErrScheduleStillActive is returned when configuring a schedule while
	// current time lies within the stored schedule window.
	ErrScheduleStillActive = sdkerrors.Register(ModuleName, 4, "previous schedule is still active")
	// ErrOverflow is returned when a computed value exceeds the numeric width
	// reserved for it instead of silently wrapping.
	ErrOverflow = sdkerrors.Register(ModuleName, 5, "value exceeds reserved numeric width")
	// ErrInsufficientOwed is returned when a claim exceeds the settled owed
	// balance.
	ErrInsufficientOwed = sdkerrors.Register(ModuleName, 6, "claim amount exceeds owed rewards")
	// ErrUnauthorized is returned on admin calls from a non-authority.
	ErrUnauthorized = sdkerrors.Register(ModuleName, 7, "unauthorized")
	// ErrTransferFailed wraps failures of the reward transfer collaborator.
	ErrTransferFailed = sdkerrors.Register(ModuleName, 8, "reward transfer failed")
	// ErrUnknownRewardAsset is returned when addressing a registry index that
	// was never registered.
	ErrUnknownRewardAsset = sdkerrors.Register(ModuleName, 9, "unknown reward asset")
)
