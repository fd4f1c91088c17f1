// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package gauge implements the multi-token reward distributor. Every
// (staking token, reward token) pair carries its own reward stream that
// drains linearly over one reward duration, pro rata to staked balances.
package gauge

import (
	"github.com/holiman/uint256"

	"github.com/tetu-io/myrd-contracts/builtin/controller"
	"github.com/tetu-io/myrd-contracts/builtin/reverts"
	"github.com/tetu-io/myrd-contracts/builtin/solidity"
	"github.com/tetu-io/myrd-contracts/builtin/token"
	"github.com/tetu-io/myrd-contracts/log"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/state"
	"github.com/tetu-io/myrd-contracts/xenv"
)

var (
	slotController         = solidity.SlotOf("controller")
	slotStakingToken       = solidity.SlotOf("staking-token")
	slotDefaultRewardToken = solidity.SlotOf("default-reward-token")
	slotActivePeriod       = solidity.SlotOf("active-period")
	slotRewardTokens       = solidity.SlotOf("reward-tokens")
	slotIsRewardToken      = solidity.SlotOf("is-reward-token")
	slotTotalSupply        = solidity.SlotOf("total-supply")
	slotBalances           = solidity.SlotOf("balances")
	slotPools              = solidity.SlotOf("pools")
	slotUserRewards        = solidity.SlotOf("user-rewards")
)

var (
	ErrInvalidInitialization = reverts.New("InvalidInitialization")
	ErrIncorrectZeroArgument = reverts.New("IncorrectZeroArgument")
	ErrAlreadySet            = reverts.New("AlreadySet")
	ErrWrongStakingToken     = reverts.New("WrongStakingToken")
	ErrWaitForNewPeriod      = reverts.New("WaitForNewPeriod")
	ErrZeroAmount            = reverts.New("Zero amount")
	ErrTokenNotAllowed       = reverts.New("Token not allowed")
	ErrAmountTooLow          = reverts.New("Amount should be higher than remaining rewards")
	ErrNotAllowed            = reverts.New("Not allowed")
	ErrAlreadyRegistered     = reverts.New("Already registered")
	ErrNotRewardToken        = reverts.New("Not reward token")
	ErrRewardsNotEnded       = reverts.New("Rewards not ended")
	ErrTooManyRewardTokens   = reverts.New("Too many reward tokens")
)

var logger = log.WithContext("pkg", "gauge")

func SetLogger(l log.Logger) {
	logger = l
}

// StakingToken is the position contract whose balances earn rewards.
type StakingToken interface {
	BalanceOf(account myrd.Address) (*uint256.Int, error)
	Rebase(env *xenv.Environment) error
	EnterFor(env *xenv.Environment, amount *uint256.Int, recipient myrd.Address) error
}

// RewardPool is the reward stream of one (staking token, reward token) pair.
// RewardRate and RewardPerTokenStored are scaled by myrd.Precision.
type RewardPool struct {
	RewardRate           *uint256.Int
	PeriodFinish         uint64
	LastUpdateTime       uint64
	RewardPerTokenStored *uint256.Int
}

func (p *RewardPool) normalize() {
	if p.RewardRate == nil {
		p.RewardRate = new(uint256.Int)
	}
	if p.RewardPerTokenStored == nil {
		p.RewardPerTokenStored = new(uint256.Int)
	}
}

// UserReward is the settlement state of one account in a pair.
type UserReward struct {
	RewardPerTokenPaid *uint256.Int
	Rewards            *uint256.Int
}

func (u *UserReward) normalize() {
	if u.RewardPerTokenPaid == nil {
		u.RewardPerTokenPaid = new(uint256.Int)
	}
	if u.Rewards == nil {
		u.Rewards = new(uint256.Int)
	}
}

// MultiGauge implements native methods of the `MultiGauge` contract.
type MultiGauge struct {
	addr               myrd.Address
	sctx               *solidity.Context
	controller         *solidity.Address
	stakingToken       *solidity.Address
	defaultRewardToken *solidity.Address
	activePeriod       *solidity.Uint256
}

// New create a new instance.
func New(addr myrd.Address, state *state.State) *MultiGauge {
	sctx := solidity.NewContext(addr, state)
	return &MultiGauge{
		addr:               addr,
		sctx:               sctx,
		controller:         solidity.NewAddress(sctx, slotController),
		stakingToken:       solidity.NewAddress(sctx, slotStakingToken),
		defaultRewardToken: solidity.NewAddress(sctx, slotDefaultRewardToken),
		activePeriod:       solidity.NewUint256(sctx, slotActivePeriod),
	}
}

func (g *MultiGauge) Address() myrd.Address { return g.addr }

// Init binds the controller, the staking token and the default reward token once.
// A zero staking token can be bound later with AddStakingToken.
func (g *MultiGauge) Init(controllerAddr, stakingToken, defaultRewardToken myrd.Address) error {
	cur, err := g.controller.Get()
	if err != nil {
		return err
	}
	if !cur.IsZero() {
		return ErrInvalidInitialization
	}
	if controllerAddr.IsZero() || defaultRewardToken.IsZero() {
		return ErrIncorrectZeroArgument
	}
	g.controller.Set(controllerAddr)
	g.stakingToken.Set(stakingToken)
	g.defaultRewardToken.Set(defaultRewardToken)
	return nil
}

// storage accessors keyed by staking token

func (g *MultiGauge) rewardTokens(st myrd.Address) *solidity.Array[myrd.Address] {
	return solidity.NewArray[myrd.Address](g.sctx, solidity.Slot(slotRewardTokens, st))
}

func (g *MultiGauge) isRewardToken(st myrd.Address) *solidity.Mapping[myrd.Address, bool] {
	return solidity.NewMapping[myrd.Address, bool](g.sctx, solidity.Slot(slotIsRewardToken, st))
}

func (g *MultiGauge) totalSupply(st myrd.Address) *solidity.Uint256 {
	return solidity.NewUint256(g.sctx, solidity.Slot(slotTotalSupply, st))
}

func (g *MultiGauge) balances(st myrd.Address) *solidity.Mapping[myrd.Address, *uint256.Int] {
	return solidity.NewMapping[myrd.Address, *uint256.Int](g.sctx, solidity.Slot(slotBalances, st))
}

func (g *MultiGauge) pool(st, rt myrd.Address) *solidity.Value[RewardPool] {
	return solidity.NewValue[RewardPool](g.sctx, solidity.Slot(slotPools, st, rt))
}

func (g *MultiGauge) userReward(st, rt, account myrd.Address) *solidity.Value[UserReward] {
	return solidity.NewValue[UserReward](g.sctx, solidity.Slot(slotUserRewards, st, rt, account))
}

func (g *MultiGauge) loadPool(st, rt myrd.Address) (RewardPool, error) {
	p, err := g.pool(st, rt).Get()
	if err != nil {
		return RewardPool{}, err
	}
	p.normalize()
	return p, nil
}

func (g *MultiGauge) loadUserReward(st, rt, account myrd.Address) (UserReward, error) {
	u, err := g.userReward(st, rt, account).Get()
	if err != nil {
		return UserReward{}, err
	}
	u.normalize()
	return u, nil
}

//
// Collaborators
//

func (g *MultiGauge) staking(env *xenv.Environment) (myrd.Address, StakingToken, error) {
	addr, err := g.stakingToken.Get()
	if err != nil {
		return myrd.Address{}, nil, err
	}
	if addr.IsZero() {
		return addr, nil, ErrWrongStakingToken
	}
	st, err := xenv.Lookup[StakingToken](env, addr)
	if err != nil {
		return addr, nil, err
	}
	return addr, st, nil
}

func (g *MultiGauge) erc20(env *xenv.Environment, addr myrd.Address) (token.ERC20, error) {
	return xenv.Lookup[token.ERC20](env, addr)
}

// onlyAllowed admits governance and deployers.
func (g *MultiGauge) onlyAllowed(env *xenv.Environment) error {
	addr, err := g.controller.Get()
	if err != nil {
		return err
	}
	ac, err := xenv.Lookup[controller.AccessControl](env, addr)
	if err != nil {
		return err
	}
	ok, err := ac.IsDeployer(env.Caller())
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAllowed
	}
	return nil
}
