package keeper_test

import (
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/streamrewards/x/streamrewards/types"
)

func TestKeeper_ConfigureSchedule(t *testing.T) {
	env := newTestEnv(t)
	assetIndex := env.registerAsset("reward")

	start := env.now() + 10
	end := start + 100
	require.NoError(t, env.keeper.ConfigureSchedule(
		env.ctx, env.authority, assetIndex, start, end, sdkmath.NewInt(10000),
	))

	schedule, found, err := env.keeper.GetSchedule(env.ctx, assetIndex)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, start, schedule.StartTime)
	require.Equal(t, end, schedule.EndTime)
	require.Equal(t, sdkmath.NewInt(100), schedule.Rate)

	acc, err := env.keeper.GetAccumulator(env.ctx, assetIndex)
	require.NoError(t, err)
	require.Equal(t, start, acc.LastUpdated)
}

func TestKeeper_ConfigureSchedule_Validation(t *testing.T) {
	env := newTestEnv(t)
	assetIndex := env.registerAsset("reward")
	now := env.now()

	tests := []struct {
		name       string
		authority  string
		asset      uint64
		start, end uint64
		wantErr    error
	}{
		{
			name:      "unauthorized",
			authority: newAddress().String(),
			asset:     assetIndex,
			start:     now,
			end:       now + 100,
			wantErr:   types.ErrUnauthorized,
		},
		{
			name:      "unknown asset",
			authority: env.authority,
			asset:     assetIndex + 1,
			start:     now,
			end:       now + 100,
			wantErr:   types.ErrUnknownRewardAsset,
		},
		{
			name:      "start equals end",
			authority: env.authority,
			asset:     assetIndex,
			start:     now,
			end:       now,
			wantErr:   types.ErrInvalidInterval,
		},
		{
			name:      "start after end",
			authority: env.authority,
			asset:     assetIndex,
			start:     now + 100,
			end:       now,
			wantErr:   types.ErrInvalidInterval,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.keeper.ConfigureSchedule(env.ctx, tt.authority, tt.asset, tt.start, tt.end, sdkmath.NewInt(1000))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestKeeper_ConfigureSchedule_StillActive(t *testing.T) {
	env := newTestEnv(t)
	assetIndex := env.registerAsset("reward")

	env.configure(assetIndex, 0, 100*time.Second, 10000)

	// Inside the stored window, replacement must fail, boundaries included.
	for _, offset := range []time.Duration{0, 50 * time.Second, 100 * time.Second} {
		inside := newTestEnvAt(t, env, offset)
		err := inside.keeper.ConfigureSchedule(
			inside.ctx, inside.authority, assetIndex,
			inside.now()+200, inside.now()+300, sdkmath.NewInt(1000),
		)
		require.ErrorIs(t, err, types.ErrScheduleStillActive, "offset %s", offset)
	}

	// Strictly after the end the replacement succeeds.
	env.wait(101 * time.Second)
	require.NoError(t, env.keeper.ConfigureSchedule(
		env.ctx, env.authority, assetIndex,
		env.now()+10, env.now()+110, sdkmath.NewInt(1000),
	))
}

// Floor division on the rate forfeits the remainder for good.
func TestKeeper_ConfigureSchedule_RateRounding(t *testing.T) {
	env := newTestEnv(t)
	assetIndex := env.registerAsset("reward")
	env.mint(env.holders[0], 1)

	// 1000 rewards over 300s -> rate 3, 100 units of dust never released.
	env.configure(assetIndex, 0, 300*time.Second, 1000)
	env.wait(300 * time.Second)

	require.Equal(t, sdkmath.NewInt(900), env.owed(assetIndex, env.holders[0]))
}

// Replacing an expired schedule first flushes the old program, so reward
// accrued under it is preserved.
func TestKeeper_ConfigureSchedule_FlushesOldProgram(t *testing.T) {
	env := newTestEnv(t)
	assetIndex := env.registerAsset("reward")
	env.mint(env.holders[0], 100)

	env.configure(assetIndex, 0, 100*time.Second, 10000)
	env.wait(150 * time.Second)

	env.configure(assetIndex, 10*time.Second, 100*time.Second, 5000)
	env.wait(200 * time.Second)

	require.Equal(t, sdkmath.NewInt(15000), env.owed(assetIndex, env.holders[0]))
}

// A schedule whose start lies in the past credits the whole backdated span
// at the new rate on the next refresh. Deliberate allowance, kept as is.
func TestKeeper_ConfigureSchedule_Backdated(t *testing.T) {
	env := newTestEnv(t)
	assetIndex := env.registerAsset("reward")
	env.mint(env.holders[0], 100)

	start := env.now() - 50
	end := env.now() + 50
	require.NoError(t, env.keeper.ConfigureSchedule(
		env.ctx, env.authority, assetIndex, start, end, sdkmath.NewInt(10000),
	))

	// Half the program span is already behind us.
	require.Equal(t, sdkmath.NewInt(5000), env.owed(assetIndex, env.holders[0]))
}

// newTestEnvAt clones the env view at a block time offset without touching
// the source env's clock.
func newTestEnvAt(t *testing.T, env *testEnv, offset time.Duration) *testEnv {
	clone := *env
	clone.t = t
	clone.ctx = env.ctx.WithBlockTime(env.ctx.BlockTime().Add(offset))
	return &clone
}
