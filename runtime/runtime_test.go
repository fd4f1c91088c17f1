// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetu-io/myrd-contracts/builtin"
	"github.com/tetu-io/myrd-contracts/builtin/reverts"
	"github.com/tetu-io/myrd-contracts/genesis"
	"github.com/tetu-io/myrd-contracts/lvldb"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/runtime"
	"github.com/tetu-io/myrd-contracts/state"
	"github.com/tetu-io/myrd-contracts/xenv"
)

func newRuntime(t *testing.T) (*runtime.Runtime, *clockwork.FakeClock) {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	db, err := state.NewDB(kv, 0)
	require.NoError(t, err)
	_, _, err = genesis.NewDevnet().Build(db)
	require.NoError(t, err)

	clock := clockwork.NewFakeClockAt(time.Unix(int64(genesis.DevLaunchTime), 0))
	rt, err := runtime.New(db, clock)
	require.NoError(t, err)
	return rt, clock
}

func e18(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), uint256.NewInt(1e18))
}

func enter(amount *uint256.Int) runtime.Transition {
	return func(env *xenv.Environment) error {
		st := env.State()
		if err := builtin.Myrd.Native(st).Approve(env, builtin.XMyrd.Address, amount); err != nil {
			return err
		}
		return builtin.XMyrd.Native(st).Enter(env, amount)
	}
}

func TestExecute_Commit(t *testing.T) {
	rt, clock := newRuntime(t)
	user := genesis.DevAccounts()[1].Address
	clock.Advance(time.Hour)

	receipt, err := rt.Execute(context.Background(), "enter", user, enter(e18(100)))
	require.NoError(t, err)
	assert.False(t, receipt.Reverted)
	assert.Equal(t, uint32(1), receipt.Number)
	assert.Equal(t, genesis.DevLaunchTime+3600, receipt.Timestamp)
	assert.Equal(t, user, receipt.Caller)
	assert.False(t, receipt.StateHash.IsZero())
	assert.NotEmpty(t, receipt.Events)
	assert.Equal(t, uint32(1), rt.Number())

	bal, err := builtin.XMyrd.Native(rt.State()).BalanceOf(user)
	require.NoError(t, err)
	assert.Equal(t, e18(100), bal)

	staked, err := builtin.Gauge.Native(rt.State()).BalanceOf(builtin.XMyrd.Address, user)
	require.NoError(t, err)
	assert.Equal(t, e18(100), staked)
}

func TestExecute_Revert(t *testing.T) {
	rt, _ := newRuntime(t)
	user := genesis.DevAccounts()[1].Address

	receipt, err := rt.Execute(context.Background(), "enter", user, func(env *xenv.Environment) error {
		if err := enter(e18(100))(env); err != nil {
			return err
		}
		return builtin.XMyrd.Native(env.State()).Exit(env, e18(1000))
	})
	require.NoError(t, err)
	assert.True(t, receipt.Reverted)
	assert.Equal(t, "ERC20InsufficientBalance", receipt.Reason)
	assert.Empty(t, receipt.Events)
	assert.Equal(t, uint32(0), rt.Number())

	bal, err := builtin.XMyrd.Native(rt.State()).BalanceOf(user)
	require.NoError(t, err)
	assert.True(t, bal.IsZero(), "reverted transition must not leave writes")
}

func TestExecute_Error(t *testing.T) {
	rt, _ := newRuntime(t)
	boom := errors.New("boom")

	receipt, err := rt.Execute(context.Background(), "boom", myrd.Address{}, func(env *xenv.Environment) error {
		return boom
	})
	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, boom)
	assert.False(t, reverts.IsRevertErr(err))
}

func TestExecute_Canceled(t *testing.T) {
	rt, _ := newRuntime(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, err := rt.Execute(ctx, "noop", myrd.Address{}, func(*xenv.Environment) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestExecute_Monotonic(t *testing.T) {
	rt, clock := newRuntime(t)
	noop := func(*xenv.Environment) error { return nil }

	clock.Advance(time.Minute)
	r1, err := rt.Execute(context.Background(), "noop", myrd.Address{}, noop)
	require.NoError(t, err)
	r2, err := rt.Execute(context.Background(), "noop", myrd.Address{}, noop)
	require.NoError(t, err)

	assert.Equal(t, r1.Timestamp, r2.Timestamp)
	assert.Equal(t, r1.Number+1, r2.Number)
	assert.NotEqual(t, r1.ID, r2.ID)
}

func TestView(t *testing.T) {
	rt, _ := newRuntime(t)
	user := genesis.DevAccounts()[1].Address

	err := rt.View(user, enter(e18(10)))
	require.NoError(t, err)

	bal, err := builtin.XMyrd.Native(rt.State()).BalanceOf(user)
	require.NoError(t, err)
	assert.True(t, bal.IsZero(), "view must discard writes")
	assert.Equal(t, myrd.Week, rt.Epoch().Duration())
	assert.Equal(t, genesis.DevLaunchTime, rt.Now())
}

func TestView_WaitsForTransition(t *testing.T) {
	rt, _ := newRuntime(t)
	user := genesis.DevAccounts()[1].Address

	entered := make(chan struct{})
	release := make(chan struct{})
	executed := make(chan error)
	go func() {
		_, err := rt.Execute(context.Background(), "enter", user, func(env *xenv.Environment) error {
			close(entered)
			<-release
			return enter(e18(10))(env)
		})
		executed <- err
	}()
	<-entered

	type seen struct {
		number  uint32
		balance *uint256.Int
	}
	viewed := make(chan seen)
	go func() {
		var s seen
		err := rt.View(user, func(env *xenv.Environment) (err error) {
			s.number = env.BlockContext().Number
			s.balance, err = builtin.XMyrd.Native(env.State()).BalanceOf(user)
			return
		})
		assert.NoError(t, err)
		viewed <- s
	}()

	select {
	case <-viewed:
		t.Fatal("view must not run while a transition is in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-executed)
	s := <-viewed
	assert.Equal(t, uint32(1), s.number)
	assert.Equal(t, e18(10), s.balance)
	assert.Equal(t, uint32(1), rt.Number())
}
