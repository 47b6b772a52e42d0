package keeper_test

import (
	"context"
	"errors"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/streamrewards/x/streamrewards/keeper"
	"github.com/tokenize-x/streamrewards/x/streamrewards/types"
)

// ledgerMock is the external balance ledger collaborator. Tests mutate it
// only through the env helpers, which invoke the module hooks first, the way
// a real ledger must.
type ledgerMock struct {
	balances map[string]sdkmath.Int
	total    sdkmath.Int
}

func newLedgerMock() *ledgerMock {
	return &ledgerMock{
		balances: map[string]sdkmath.Int{},
		total:    sdkmath.ZeroInt(),
	}
}

func (l *ledgerMock) BalanceOf(_ context.Context, holder sdk.AccAddress) (sdkmath.Int, error) {
	balance, ok := l.balances[holder.String()]
	if !ok {
		return sdkmath.ZeroInt(), nil
	}
	return balance, nil
}

func (l *ledgerMock) TotalOutstanding(_ context.Context) (sdkmath.Int, error) {
	return l.total, nil
}

type transferRecord struct {
	denom     string
	recipient string
	amount    sdkmath.Int
}

// transferMock is the reward transfer collaborator; flipping failing makes
// every transfer fail atomically.
type transferMock struct {
	transfers []transferRecord
	failing   bool
}

func (m *transferMock) TransferOut(_ context.Context, denom string, recipient sdk.AccAddress, amount sdkmath.Int) error {
	if m.failing {
		return errors.New("transfer collaborator unavailable")
	}
	m.transfers = append(m.transfers, transferRecord{
		denom:     denom,
		recipient: recipient.String(),
		amount:    amount,
	})
	return nil
}

type testEnv struct {
	t         *testing.T
	ctx       sdk.Context
	keeper    keeper.Keeper
	ledger    *ledgerMock
	transfers *transferMock
	authority string
	holders   []sdk.AccAddress
}

func newTestEnv(t *testing.T) *testEnv {
	key := storetypes.NewKVStoreKey(types.StoreKey)
	testCtx := testutil.DefaultContextWithDB(t, key, storetypes.NewTransientStoreKey("transient_test"))

	ledger := newLedgerMock()
	transfers := &transferMock{}
	authority := newAddress().String()
	k := keeper.NewKeeper(runtime.NewKVStoreService(key), authority, ledger, transfers)

	holders := make([]sdk.AccAddress, 4)
	for i := range holders {
		holders[i] = newAddress()
	}

	return &testEnv{
		t:         t,
		ctx:       testCtx.Ctx.WithBlockTime(time.Unix(1700000000, 0)),
		keeper:    k,
		ledger:    ledger,
		transfers: transfers,
		authority: authority,
		holders:   holders,
	}
}

func newAddress() sdk.AccAddress {
	return sdk.AccAddress(secp256k1.GenPrivKey().PubKey().Address())
}

func (e *testEnv) now() uint64 {
	return uint64(e.ctx.BlockTime().Unix())
}

func (e *testEnv) wait(d time.Duration) {
	e.ctx = e.ctx.WithBlockTime(e.ctx.BlockTime().Add(d))
}

func (e *testEnv) registerAsset(denom string) uint64 {
	assetIndex, err := e.keeper.RegisterRewardAsset(e.ctx, e.authority, denom)
	require.NoError(e.t, err)
	return assetIndex
}

// configure installs a schedule running from in seconds from now over the
// given duration, releasing totalRewards in total.
func (e *testEnv) configure(assetIndex uint64, in, duration time.Duration, totalRewards int64) {
	start := uint64(e.ctx.BlockTime().Add(in).Unix())
	end := start + uint64(duration/time.Second)
	err := e.keeper.ConfigureSchedule(e.ctx, e.authority, assetIndex, start, end, sdkmath.NewInt(totalRewards))
	require.NoError(e.t, err)
}

// mint credits the holder on the external ledger, settling first through the
// module hooks with the pre-mutation balances.
func (e *testEnv) mint(to sdk.AccAddress, amount int64) {
	require.NoError(e.t, e.keeper.Hooks().BeforeMint(e.ctx, to))
	e.ledger.balances[to.String()] = e.balanceOf(to).AddRaw(amount)
	e.ledger.total = e.ledger.total.AddRaw(amount)
}

func (e *testEnv) burn(from sdk.AccAddress, amount int64) {
	require.NoError(e.t, e.keeper.Hooks().BeforeBurn(e.ctx, from))
	e.ledger.balances[from.String()] = e.balanceOf(from).SubRaw(amount)
	e.ledger.total = e.ledger.total.SubRaw(amount)
}

func (e *testEnv) send(from, to sdk.AccAddress, amount int64) {
	require.NoError(e.t, e.keeper.Hooks().BeforeSend(e.ctx, from, to))
	e.ledger.balances[from.String()] = e.balanceOf(from).SubRaw(amount)
	e.ledger.balances[to.String()] = e.balanceOf(to).AddRaw(amount)
}

func (e *testEnv) balanceOf(holder sdk.AccAddress) sdkmath.Int {
	balance, err := e.ledger.BalanceOf(e.ctx, holder)
	require.NoError(e.t, err)
	return balance
}

func (e *testEnv) owed(assetIndex uint64, holder sdk.AccAddress) sdkmath.Int {
	owed, err := e.keeper.CurrentOwed(e.ctx, assetIndex, holder)
	require.NoError(e.t, err)
	return owed
}
