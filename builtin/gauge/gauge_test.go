// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gauge

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetu-io/myrd-contracts/builtin/controller"
	"github.com/tetu-io/myrd-contracts/builtin/token"
	"github.com/tetu-io/myrd-contracts/builtin/xmyrd"
	"github.com/tetu-io/myrd-contracts/epoch"
	"github.com/tetu-io/myrd-contracts/lvldb"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/state"
	"github.com/tetu-io/myrd-contracts/test/datagen"
	"github.com/tetu-io/myrd-contracts/xenv"
)

// launch is the start of an epoch.
var launch = epoch.Weekly.PeriodStart(2800)

type fixture struct {
	t      *testing.T
	st     *state.State
	g      *MultiGauge
	x      *xmyrd.XMyrd
	ctrl   *controller.Controller
	myrd   *token.Token
	tokens map[myrd.Address]bool
	gov    myrd.Address
	minter myrd.Address
	now    uint64
}

func newFixture(t *testing.T) *fixture {
	store, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	db, err := state.NewDB(store, 0)
	require.NoError(t, err)
	st := state.New(db)

	f := &fixture{
		t:      t,
		st:     st,
		g:      New(datagen.RandAddress(), st),
		x:      xmyrd.New(datagen.RandAddress(), st),
		ctrl:   controller.New(datagen.RandAddress(), st),
		myrd:   token.New(datagen.RandAddress(), st),
		tokens: make(map[myrd.Address]bool),
		gov:    datagen.RandAddress(),
		minter: datagen.RandAddress(),
		now:    launch,
	}
	f.tokens[f.myrd.Address()] = true
	require.NoError(t, f.ctrl.Init(f.gov))
	require.NoError(t, f.myrd.Initialize(token.Metadata{Name: "Myrd", Symbol: "MYRD", Decimals: 18, Minter: f.minter}))
	require.NoError(t, f.x.Initialize(f.ctrl.Address(), f.myrd.Address(), f.g.Address()))
	require.NoError(t, f.g.Init(f.ctrl.Address(), f.x.Address(), f.myrd.Address()))
	return f
}

func (f *fixture) resolve(addr myrd.Address, st *state.State) (any, bool) {
	switch addr {
	case f.ctrl.Address():
		return controller.New(addr, st), true
	case f.x.Address():
		return xmyrd.New(addr, st), true
	case f.g.Address():
		return New(addr, st), true
	}
	if f.tokens[addr] {
		return token.New(addr, st), true
	}
	return nil, false
}

func (f *fixture) env(caller myrd.Address) *xenv.Environment {
	return xenv.New(
		f.st,
		&xenv.BlockContext{Time: f.now},
		&xenv.TransactionContext{Origin: caller},
		epoch.Weekly,
		f.resolve,
	)
}

func (f *fixture) advance(seconds uint64) { f.now += seconds }

// newToken deploys an extra reward token minted by the fixture minter.
func (f *fixture) newToken(symbol string, decimals uint8) *token.Token {
	tok := token.New(datagen.RandAddress(), f.st)
	require.NoError(f.t, tok.Initialize(token.Metadata{Name: symbol, Symbol: symbol, Decimals: decimals, Minter: f.minter}))
	f.tokens[tok.Address()] = true
	return tok
}

// mint gives user amount of tok and approves spender for all of it.
func (f *fixture) mint(tok *token.Token, user, spender myrd.Address, amount *uint256.Int) {
	require.NoError(f.t, tok.Mint(f.env(f.minter), user, amount))
	require.NoError(f.t, tok.Approve(f.env(user), spender, myrd.MaxUint256))
}

// stake funds user with amount of base token and enters all of it.
func (f *fixture) stake(user myrd.Address, amount *uint256.Int) {
	f.mint(f.myrd, user, f.x.Address(), amount)
	require.NoError(f.t, f.x.Enter(f.env(user), amount))
}

func (f *fixture) position(user myrd.Address) *uint256.Int {
	bal, err := f.x.BalanceOf(user)
	require.NoError(f.t, err)
	return bal
}

func (f *fixture) balanceOf(tok *token.Token, user myrd.Address) *uint256.Int {
	bal, err := tok.BalanceOf(user)
	require.NoError(f.t, err)
	return bal
}

func (f *fixture) left(rt myrd.Address) *uint256.Int {
	l, err := f.g.Left(f.env(f.gov), f.x.Address(), rt)
	require.NoError(f.t, err)
	return l
}

func u(v uint64) *uint256.Int { return uint256.NewInt(v) }

func e18(v uint64) *uint256.Int {
	return new(uint256.Int).Mul(u(v), uint256.MustFromDecimal("1000000000000000000"))
}

func e6(v uint64) *uint256.Int { return u(v * 1_000_000) }

func sub(a, b *uint256.Int) *uint256.Int { return new(uint256.Int).Sub(a, b) }

func add(vs ...*uint256.Int) *uint256.Int {
	sum := new(uint256.Int)
	for _, v := range vs {
		sum.Add(sum, v)
	}
	return sum
}

// share is total*part/whole, floored.
func share(total, part, whole *uint256.Int) *uint256.Int {
	z, _ := new(uint256.Int).MulDivOverflow(total, part, whole)
	return z
}

// assertApprox checks |want-got| <= tol.
func assertApprox(t *testing.T, want, got *uint256.Int, tol uint64, msgAndArgs ...any) {
	t.Helper()
	var diff uint256.Int
	if want.Gt(got) {
		diff.Sub(want, got)
	} else {
		diff.Sub(got, want)
	}
	assert.True(t, diff.CmpUint64(tol) <= 0, append([]any{"want %s got %s", want.Dec(), got.Dec()}, msgAndArgs...)...)
}

func TestInit(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.g.Init(f.ctrl.Address(), f.x.Address(), f.myrd.Address()), ErrInvalidInitialization)

	st, err := f.g.StakingToken()
	require.NoError(t, err)
	assert.Equal(t, f.x.Address(), st)
	def, err := f.g.DefaultRewardToken()
	require.NoError(t, err)
	assert.Equal(t, f.myrd.Address(), def)

	fresh := New(datagen.RandAddress(), f.st)
	assert.ErrorIs(t, fresh.Init(f.ctrl.Address(), myrd.Address{}, myrd.Address{}), ErrIncorrectZeroArgument)
}

func TestAddStakingToken(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.g.AddStakingToken(f.env(f.gov), datagen.RandAddress()), ErrAlreadySet)

	g := New(datagen.RandAddress(), f.st)
	require.NoError(t, g.Init(f.ctrl.Address(), myrd.Address{}, f.myrd.Address()))
	assert.ErrorIs(t, g.AddStakingToken(f.env(datagen.RandAddress()), f.x.Address()), ErrNotAllowed)
	require.NoError(t, g.AddStakingToken(f.env(f.gov), f.x.Address()))
	assert.ErrorIs(t, g.AddStakingToken(f.env(f.gov), f.x.Address()), ErrAlreadySet)
}

func TestHandleBalanceChange(t *testing.T) {
	f := newFixture(t)
	user := datagen.RandAddress()
	assert.ErrorIs(t, f.g.HandleBalanceChange(f.env(user), user), ErrWrongStakingToken)

	f.stake(user, u(500))
	bal, err := f.g.BalanceOf(f.x.Address(), user)
	require.NoError(t, err)
	assert.Equal(t, u(500), bal)
	supply, err := f.g.TotalSupply(f.x.Address())
	require.NoError(t, err)
	assert.Equal(t, u(500), supply)

	require.NoError(t, f.x.CreateVest(f.env(user), u(200)))
	bal, err = f.g.DerivedBalance(f.x.Address(), user)
	require.NoError(t, err)
	assert.Equal(t, u(300), bal)
	supply, err = f.g.DerivedSupply(f.x.Address())
	require.NoError(t, err)
	assert.Equal(t, u(300), supply)
}

func TestUpdatePeriod(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.g.UpdatePeriod(f.env(f.gov), u(0)))
	active, err := f.g.ActivePeriod()
	require.NoError(t, err)
	assert.Equal(t, f.g.GetPeriod(f.env(f.gov)), active)

	assert.ErrorIs(t, f.g.UpdatePeriod(f.env(f.gov), u(0)), ErrWaitForNewPeriod)
	f.advance(myrd.Week - 1)
	assert.ErrorIs(t, f.g.UpdatePeriod(f.env(f.gov), u(0)), ErrWaitForNewPeriod)
	f.advance(1)
	require.NoError(t, f.g.UpdatePeriod(f.env(datagen.RandAddress()), u(0)), "anyone advances the period")
}

func TestUpdatePeriod_PullsAmount(t *testing.T) {
	f := newFixture(t)
	f.mint(f.myrd, f.gov, f.g.Address(), e18(700))

	require.NoError(t, f.g.UpdatePeriod(f.env(f.gov), e18(700)))
	assert.Equal(t, e18(700), f.balanceOf(f.myrd, f.g.Address()))

	rate, err := f.g.RewardRate(f.x.Address(), f.myrd.Address())
	require.NoError(t, err)
	want := share(e18(700), myrd.Precision, u(myrd.Week))
	assert.Equal(t, want, rate)

	finish, err := f.g.PeriodFinish(f.x.Address(), f.myrd.Address())
	require.NoError(t, err)
	assert.Equal(t, f.now+myrd.Week, finish)
	assertApprox(t, e18(700), f.left(f.myrd.Address()), 1)
}

func TestFairDistribution(t *testing.T) {
	f := newFixture(t)
	alice, bob := datagen.RandAddress(), datagen.RandAddress()
	b1, b2 := e18(2_000), e18(3_000)
	reward := e18(1_000)

	f.stake(alice, b1)
	f.stake(bob, b2)
	f.mint(f.myrd, f.gov, f.g.Address(), reward)
	require.NoError(t, f.g.UpdatePeriod(f.env(f.gov), reward))

	f.advance(myrd.Week)
	earned, err := f.g.Earned(f.env(alice), f.x.Address(), f.myrd.Address(), alice)
	require.NoError(t, err)
	assertApprox(t, share(reward, b1, add(b1, b2)), earned, 1)

	require.NoError(t, f.g.GetAllRewards(f.env(alice), alice))
	require.NoError(t, f.g.GetAllRewards(f.env(bob), bob))

	assertApprox(t, share(reward, b1, add(b1, b2)), sub(f.position(alice), b1), 1)
	assertApprox(t, share(reward, b2, add(b1, b2)), sub(f.position(bob), b2), 1)
	assert.True(t, f.balanceOf(f.myrd, alice).IsZero(), "default token is paid as position")

	rewards, err := f.g.Rewards(f.x.Address(), f.myrd.Address(), alice)
	require.NoError(t, err)
	assert.True(t, rewards.IsZero())
}

func TestGetReward_NotAllowed(t *testing.T) {
	f := newFixture(t)
	alice := datagen.RandAddress()
	assert.ErrorIs(t, f.g.GetAllRewards(f.env(datagen.RandAddress()), alice), ErrNotAllowed)
	require.NoError(t, f.g.GetAllRewards(f.env(alice), alice))
	require.NoError(t, f.g.GetReward(f.env(f.x.Address()), alice, []myrd.Address{f.myrd.Address()}))
}

func TestNotifyRewardAmount(t *testing.T) {
	f := newFixture(t)
	usdc := f.newToken("USDC", 6)
	user, funder := datagen.RandAddress(), datagen.RandAddress()
	f.mint(usdc, funder, f.g.Address(), e6(1_000))

	assert.ErrorIs(t, f.g.NotifyRewardAmount(f.env(funder), usdc.Address(), e6(100)), ErrTokenNotAllowed)
	assert.ErrorIs(t, f.g.NotifyRewardAmount(f.env(funder), f.myrd.Address(), e6(100)), ErrTokenNotAllowed)
	require.NoError(t, f.g.RegisterRewardToken(f.env(f.gov), f.x.Address(), usdc.Address()))
	assert.ErrorIs(t, f.g.NotifyRewardAmount(f.env(funder), usdc.Address(), u(0)), ErrZeroAmount)

	f.stake(user, e18(20_000))
	f.advance(myrd.Week)
	require.NoError(t, f.g.NotifyRewardAmount(f.env(funder), usdc.Address(), e6(100)))

	f.advance(myrd.Day)
	require.NoError(t, f.g.NotifyRewardAmount(f.env(funder), usdc.Address(), e6(200)))

	f.advance(myrd.Day)
	remaining := f.left(usdc.Address())
	assert.ErrorIs(t, f.g.NotifyRewardAmount(f.env(funder), usdc.Address(), remaining), ErrAmountTooLow)
	assert.ErrorIs(t, f.g.NotifyRewardAmount(f.env(funder), usdc.Address(), e6(100)), ErrAmountTooLow)

	rateBefore, err := f.g.RewardRate(f.x.Address(), usdc.Address())
	require.NoError(t, err)
	require.NoError(t, f.g.NotifyRewardAmount(f.env(funder), usdc.Address(), e6(700)))
	rateAfter, err := f.g.RewardRate(f.x.Address(), usdc.Address())
	require.NoError(t, err)
	assert.True(t, rateAfter.Gt(rateBefore))

	f.advance(myrd.Week)
	require.NoError(t, f.g.GetAllRewards(f.env(user), user))
	assertApprox(t, e6(1_000), f.balanceOf(usdc, user), 10)
}

func TestRegisterRewardToken(t *testing.T) {
	f := newFixture(t)
	deployer := datagen.RandAddress()
	weth := f.newToken("WETH", 18)

	assert.ErrorIs(t, f.g.RegisterRewardToken(f.env(deployer), f.x.Address(), weth.Address()), ErrNotAllowed)
	require.NoError(t, f.ctrl.ChangeDeployer(f.env(f.gov), deployer, false))

	assert.ErrorIs(t, f.g.RegisterRewardToken(f.env(deployer), datagen.RandAddress(), weth.Address()), ErrWrongStakingToken)
	require.NoError(t, f.g.RegisterRewardToken(f.env(deployer), f.x.Address(), weth.Address()))
	assert.ErrorIs(t, f.g.RegisterRewardToken(f.env(deployer), f.x.Address(), weth.Address()), ErrAlreadyRegistered)
	assert.ErrorIs(t, f.g.RegisterRewardToken(f.env(deployer), f.x.Address(), f.myrd.Address()), ErrAlreadyRegistered)

	for i := 1; i < myrd.MaxRewardTokens; i++ {
		require.NoError(t, f.g.RegisterRewardToken(f.env(deployer), f.x.Address(), datagen.RandAddress()))
	}
	assert.ErrorIs(t, f.g.RegisterRewardToken(f.env(deployer), f.x.Address(), datagen.RandAddress()), ErrTooManyRewardTokens)

	n, err := f.g.RewardTokensLength(f.x.Address())
	require.NoError(t, err)
	assert.Equal(t, uint64(myrd.MaxRewardTokens), n)
	ok, err := f.g.IsRewardToken(f.x.Address(), weth.Address())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRemoveRewardToken(t *testing.T) {
	f := newFixture(t)
	usdc, weth := f.newToken("USDC", 6), f.newToken("WETH", 18)
	alice, bob := datagen.RandAddress(), datagen.RandAddress()
	f.mint(usdc, f.gov, f.g.Address(), e6(600))

	require.NoError(t, f.g.RegisterRewardToken(f.env(f.gov), f.x.Address(), usdc.Address()))
	require.NoError(t, f.g.RegisterRewardToken(f.env(f.gov), f.x.Address(), weth.Address()))
	f.stake(alice, e18(2_000))
	f.stake(bob, e18(3_000))
	require.NoError(t, f.g.NotifyRewardAmount(f.env(f.gov), usdc.Address(), e6(600)))

	f.advance(myrd.Day)
	assert.True(t, f.left(usdc.Address()).Sign() > 0)
	assert.ErrorIs(t, f.g.RemoveRewardToken(f.env(f.gov), f.x.Address(), usdc.Address()), ErrRewardsNotEnded)
	assert.ErrorIs(t, f.g.RemoveRewardToken(f.env(f.gov), f.x.Address(), f.myrd.Address()), ErrNotRewardToken)
	assert.ErrorIs(t, f.g.RemoveRewardToken(f.env(alice), f.x.Address(), weth.Address()), ErrNotAllowed)

	f.advance(myrd.Week)
	assert.True(t, f.left(usdc.Address()).IsZero())
	require.NoError(t, f.g.GetAllRewards(f.env(alice), alice))
	require.NoError(t, f.g.RemoveRewardToken(f.env(f.gov), f.x.Address(), usdc.Address()))

	tokens, err := f.g.RewardTokens(f.x.Address())
	require.NoError(t, err)
	assert.Equal(t, []myrd.Address{weth.Address()}, tokens)
	assert.ErrorIs(t, f.g.RemoveRewardToken(f.env(f.gov), f.x.Address(), usdc.Address()), ErrNotRewardToken)

	// bob claims after removal and gets nothing; his share stays on the gauge
	require.NoError(t, f.g.GetAllRewards(f.env(bob), bob))
	assert.True(t, f.balanceOf(usdc, bob).IsZero())
	assertApprox(t, e6(240), f.balanceOf(usdc, alice), 1)
	assertApprox(t, e6(360), f.balanceOf(usdc, f.g.Address()), 1)
}

func TestPenaltiesDistribution(t *testing.T) {
	f := newFixture(t)
	users := [4]myrd.Address{}
	for i := range users {
		users[i] = datagen.RandAddress()
	}
	require.NoError(t, f.g.UpdatePeriod(f.env(f.gov), u(0)))

	amount3, amount4 := e18(3_000), e18(500)
	f.mint(f.myrd, users[0], f.x.Address(), e18(20_000))
	require.NoError(t, f.x.Enter(f.env(users[0]), e18(10_000)))
	require.NoError(t, f.x.Enter(f.env(users[0]), e18(4_000)))
	f.stake(users[1], e18(2_000))
	f.stake(users[2], amount3)
	f.stake(users[3], amount4)

	// user 0 vests, cancels two vests and exits instantly
	vest0, vest1 := e18(1_000), e18(5_000)
	vest2 := sub(e18(14_000), add(vest0, vest1))
	for _, v := range []*uint256.Int{vest0, vest1, vest2} {
		require.NoError(t, f.x.CreateVest(f.env(users[0]), v))
	}
	f.advance(13 * myrd.Day)
	require.NoError(t, f.x.ExitVest(f.env(users[0]), 1))
	require.NoError(t, f.x.ExitVest(f.env(users[0]), 2))
	exit0 := e18(1_000)
	exit1 := sub(add(vest1, vest2), exit0)
	require.NoError(t, f.x.Exit(f.env(users[0]), exit0))
	require.NoError(t, f.x.Exit(f.env(users[0]), exit1))
	penalty1 := new(uint256.Int).Rsh(add(exit0, exit1), 1)
	pending, err := f.x.PendingRebase()
	require.NoError(t, err)
	assert.Equal(t, penalty1, pending)

	// user 2 vests half; user 1 exits instantly
	require.NoError(t, f.x.CreateVest(f.env(users[2]), new(uint256.Int).Rsh(amount3, 1)))
	f.advance(90 * myrd.Day)
	require.NoError(t, f.x.Exit(f.env(users[1]), e18(500)))
	require.NoError(t, f.x.Exit(f.env(users[1]), e18(1_500)))
	penalty2 := e18(1_000)
	pending, err = f.x.PendingRebase()
	require.NoError(t, err)
	assert.Equal(t, add(penalty1, penalty2), pending)

	extra := e18(3_000)
	f.mint(f.myrd, f.gov, f.g.Address(), extra)
	require.NoError(t, f.g.UpdatePeriod(f.env(f.gov), extra))
	pending, err = f.x.PendingRebase()
	require.NoError(t, err)
	assert.True(t, pending.IsZero())

	f.advance(myrd.Week * 2 / 5)
	require.NoError(t, f.g.GetAllRewards(f.env(users[0]), users[0]))
	f.advance(myrd.Week * 3 / 5)

	before2, before3 := f.position(users[2]), f.position(users[3])
	require.NoError(t, f.g.GetAllRewards(f.env(users[0]), users[0]))
	require.NoError(t, f.g.GetAllRewards(f.env(users[1]), users[1]))
	require.NoError(t, f.g.GetAllRewards(f.env(users[2]), users[2]))
	require.NoError(t, f.g.GetReward(f.env(users[3]), users[3], []myrd.Address{f.myrd.Address()}))

	total := add(extra, penalty1, penalty2)
	staked := add(new(uint256.Int).Rsh(amount3, 1), amount4)
	assertApprox(t, share(total, new(uint256.Int).Rsh(amount3, 1), staked), sub(f.position(users[2]), before2), 1)
	assertApprox(t, share(total, amount4, staked), sub(f.position(users[3]), before3), 1)
	assert.True(t, f.position(users[0]).IsZero())
	assert.True(t, f.position(users[1]).IsZero())
}

func TestRewardWithoutStakers(t *testing.T) {
	f := newFixture(t)
	alice, bob := datagen.RandAddress(), datagen.RandAddress()
	require.NoError(t, f.g.UpdatePeriod(f.env(f.gov), u(0)))

	f.stake(alice, e18(20_000))
	require.NoError(t, f.x.Exit(f.env(alice), e18(20_000)))

	f.advance(myrd.Week)
	require.NoError(t, f.g.UpdatePeriod(f.env(f.gov), u(0)))
	pending, err := f.x.PendingRebase()
	require.NoError(t, err)
	assert.True(t, pending.IsZero())

	f.advance(2 * myrd.Week)
	f.stake(bob, e18(2_000))
	f.advance(myrd.Week)
	require.NoError(t, f.g.GetAllRewards(f.env(alice), alice))
	require.NoError(t, f.g.GetAllRewards(f.env(bob), bob))

	assert.Equal(t, e18(2_000), f.position(bob))
	assert.Equal(t, e18(10_000), f.balanceOf(f.myrd, f.g.Address()), "reward stays on the gauge")
}
