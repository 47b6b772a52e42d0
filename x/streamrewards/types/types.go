package types

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// ScalingFactor is the fixed-point precision of the per-unit accumulator.
// Accumulated values are the true reward per unit of holding multiplied by
// 1e18; owed deltas divide the scale back out with floor division.
var ScalingFactor = sdkmath.NewIntWithDecimal(1, 18)

// Schedule is the active payout program for one reward asset: a fixed Rate
// of reward units per second over [StartTime, EndTime). Times are unix
// seconds. At most one schedule is stored per asset at a time.
type Schedule struct {
	StartTime uint64      `json:"start_time"`
	EndTime   uint64      `json:"end_time"`
	Rate      sdkmath.Int `json:"rate"`
}

// Validate checks the stored schedule invariants.
func (s Schedule) Validate() error {
	if s.StartTime >= s.EndTime {
		return ErrInvalidInterval.Wrapf("start %d is not before end %d", s.StartTime, s.EndTime)
	}
	if s.Rate.IsNil() || s.Rate.IsNegative() {
		return ErrInvalidInterval.Wrap("rate must be non-negative")
	}
	return nil
}

func (s Schedule) String() string {
	return fmt.Sprintf("Schedule{start: %d, end: %d, rate: %s}", s.StartTime, s.EndTime, s.Rate)
}

// Accumulator is the lazily-updated reward per unit of holding for one
// reward asset, scaled by ScalingFactor. LastUpdated is clamped to the
// schedule window once a schedule has started.
type Accumulator struct {
	AccumulatedPerUnit sdkmath.Int `json:"accumulated_per_unit"`
	LastUpdated        uint64      `json:"last_updated"`
}

// NewAccumulator returns a zero accumulator.
func NewAccumulator() Accumulator {
	return Accumulator{
		AccumulatedPerUnit: sdkmath.ZeroInt(),
		LastUpdated:        0,
	}
}

// Validate checks the stored accumulator invariants.
func (a Accumulator) Validate() error {
	if a.AccumulatedPerUnit.IsNil() || a.AccumulatedPerUnit.IsNegative() {
		return ErrOverflow.Wrap("accumulated per unit must be non-negative")
	}
	return nil
}

func (a Accumulator) String() string {
	return fmt.Sprintf("Accumulator{accumulated: %s, lastUpdated: %d}", a.AccumulatedPerUnit, a.LastUpdated)
}

// UserCheckpoint tracks one (reward asset, holder) pair: the settled Owed
// amount and the accumulator value the pair was last settled against.
type UserCheckpoint struct {
	Owed       sdkmath.Int `json:"owed"`
	Checkpoint sdkmath.Int `json:"checkpoint"`
}

// NewUserCheckpoint returns a zero checkpoint, the implicit state of every
// pair that has never been settled.
func NewUserCheckpoint() UserCheckpoint {
	return UserCheckpoint{
		Owed:       sdkmath.ZeroInt(),
		Checkpoint: sdkmath.ZeroInt(),
	}
}

// Validate checks the stored checkpoint invariants.
func (c UserCheckpoint) Validate() error {
	if c.Owed.IsNil() || c.Owed.IsNegative() {
		return ErrOverflow.Wrap("owed must be non-negative")
	}
	if c.Checkpoint.IsNil() || c.Checkpoint.IsNegative() {
		return ErrOverflow.Wrap("checkpoint must be non-negative")
	}
	return nil
}

func (c UserCheckpoint) String() string {
	return fmt.Sprintf("UserCheckpoint{owed: %s, checkpoint: %s}", c.Owed, c.Checkpoint)
}
