// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gauge

import (
	"github.com/holiman/uint256"

	"github.com/tetu-io/myrd-contracts/fixedpoint"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/xenv"
)

// AddStakingToken binds the staking token if Init left it unset.
func (g *MultiGauge) AddStakingToken(env *xenv.Environment, st myrd.Address) error {
	if err := g.onlyAllowed(env); err != nil {
		return err
	}
	cur, err := g.stakingToken.Get()
	if err != nil {
		return err
	}
	if !cur.IsZero() {
		return ErrAlreadySet
	}
	if st.IsZero() {
		return ErrIncorrectZeroArgument
	}
	g.stakingToken.Set(st)
	env.Log(g.addr, "AddStakingToken", "token", st)
	return nil
}

// HandleBalanceChange settles every reward token for account and then
// mirrors its new staking balance. Only the staking token may call it.
func (g *MultiGauge) HandleBalanceChange(env *xenv.Environment, account myrd.Address) error {
	stAddr, staking, err := g.staking(env)
	if err != nil {
		return err
	}
	if env.Caller() != stAddr {
		return ErrWrongStakingToken
	}
	tokens, err := g.allRewardTokens(stAddr)
	if err != nil {
		return err
	}
	now := env.BlockTime()
	for _, rt := range tokens {
		if err := g.updateReward(stAddr, rt, account, now); err != nil {
			return err
		}
	}

	next, err := staking.BalanceOf(account)
	if err != nil {
		return err
	}
	prev, err := g.BalanceOf(stAddr, account)
	if err != nil {
		return err
	}
	supply := g.totalSupply(stAddr)
	if next.Gt(prev) {
		err = supply.Add(new(uint256.Int).Sub(next, prev))
	} else {
		err = supply.Sub(new(uint256.Int).Sub(prev, next))
	}
	if err != nil {
		return err
	}
	return g.balances(stAddr).Set(account, next)
}

// UpdatePeriod advances the gauge to the current epoch. It harvests the
// pending rebase of the staking token, pulls amount of default reward token
// from the caller and streams both over the next reward duration.
func (g *MultiGauge) UpdatePeriod(env *xenv.Environment, amount *uint256.Int) error {
	release, err := env.Enter(g.addr)
	if err != nil {
		return err
	}
	defer release()

	active, err := g.ActivePeriod()
	if err != nil {
		return err
	}
	if !env.Clock().HasAdvanced(active, env.BlockTime()) {
		return ErrWaitForNewPeriod
	}
	period := env.CurrentPeriod()
	g.activePeriod.Set(fixedpoint.FromUint64(period))

	stAddr, staking, err := g.staking(env)
	if err != nil {
		return err
	}
	defAddr, err := g.defaultRewardToken.Get()
	if err != nil {
		return err
	}
	def, err := g.erc20(env, defAddr)
	if err != nil {
		return err
	}

	before, err := def.BalanceOf(g.addr)
	if err != nil {
		return err
	}
	if err := staking.Rebase(env.CallFrom(g.addr)); err != nil {
		return err
	}
	after, err := def.BalanceOf(g.addr)
	if err != nil {
		return err
	}
	rebased := fixedpoint.SubFloor(after, before)

	if !amount.IsZero() {
		if err := def.TransferFrom(env.CallFrom(g.addr), env.Caller(), g.addr, amount); err != nil {
			return err
		}
	}
	total, err := fixedpoint.Add(amount, rebased)
	if err != nil {
		return err
	}
	if !total.IsZero() {
		if err := g.startStream(env, stAddr, defAddr, total); err != nil {
			return err
		}
	}
	env.Log(g.addr, "UpdatePeriod", "period", period, "amount", amount, "rebased", rebased)
	logger.Info("period updated", "period", period, "amount", amount, "rebased", rebased)
	return nil
}

// NotifyRewardAmount funds the stream of a registered non-default reward
// token. amount must exceed what is left of the current stream.
func (g *MultiGauge) NotifyRewardAmount(env *xenv.Environment, rt myrd.Address, amount *uint256.Int) error {
	release, err := env.Enter(g.addr)
	if err != nil {
		return err
	}
	defer release()

	if amount.IsZero() {
		return ErrZeroAmount
	}
	stAddr, err := g.stakingToken.Get()
	if err != nil {
		return err
	}
	ok, err := g.IsRewardToken(stAddr, rt)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTokenNotAllowed
	}
	p, err := g.loadPool(stAddr, rt)
	if err != nil {
		return err
	}
	remaining, err := left(p, env.BlockTime())
	if err != nil {
		return err
	}
	if !amount.Gt(remaining) {
		return ErrAmountTooLow
	}
	tok, err := g.erc20(env, rt)
	if err != nil {
		return err
	}
	if err := tok.TransferFrom(env.CallFrom(g.addr), env.Caller(), g.addr, amount); err != nil {
		return err
	}
	return g.startStream(env, stAddr, rt, amount)
}

// GetReward pays out the settled rewards of account in tokens. Default
// token rewards are entered into the staking token for account.
func (g *MultiGauge) GetReward(env *xenv.Environment, account myrd.Address, tokens []myrd.Address) error {
	release, err := env.Enter(g.addr)
	if err != nil {
		return err
	}
	defer release()

	stAddr, staking, err := g.staking(env)
	if err != nil {
		return err
	}
	if env.Caller() != account && env.Caller() != stAddr {
		return ErrNotAllowed
	}
	defAddr, err := g.defaultRewardToken.Get()
	if err != nil {
		return err
	}
	self := env.CallFrom(g.addr)
	now := env.BlockTime()
	for _, rt := range tokens {
		if err := g.updateReward(stAddr, rt, account, now); err != nil {
			return err
		}
		u, err := g.loadUserReward(stAddr, rt, account)
		if err != nil {
			return err
		}
		reward := u.Rewards
		if reward.IsZero() {
			continue
		}
		u.Rewards = new(uint256.Int)
		if err := g.userReward(stAddr, rt, account).Set(u); err != nil {
			return err
		}
		tok, err := g.erc20(env, rt)
		if err != nil {
			return err
		}
		if rt == defAddr {
			if err := tok.Approve(self, stAddr, reward); err != nil {
				return err
			}
			if err := staking.EnterFor(self, reward, account); err != nil {
				return err
			}
		} else if err := tok.Transfer(self, account, reward); err != nil {
			return err
		}
		env.Log(g.addr, "ClaimRewards", "account", account, "token", rt, "amount", reward)
	}
	return nil
}

// GetAllRewards claims the default token and every registered reward token.
func (g *MultiGauge) GetAllRewards(env *xenv.Environment, account myrd.Address) error {
	stAddr, err := g.stakingToken.Get()
	if err != nil {
		return err
	}
	tokens, err := g.allRewardTokens(stAddr)
	if err != nil {
		return err
	}
	return g.GetReward(env, account, tokens)
}

// RegisterRewardToken lets rt be funded through NotifyRewardAmount.
func (g *MultiGauge) RegisterRewardToken(env *xenv.Environment, st, rt myrd.Address) error {
	if err := g.onlyAllowed(env); err != nil {
		return err
	}
	stAddr, err := g.stakingToken.Get()
	if err != nil {
		return err
	}
	if stAddr.IsZero() || st != stAddr {
		return ErrWrongStakingToken
	}
	if rt.IsZero() {
		return ErrIncorrectZeroArgument
	}
	n, err := g.rewardTokens(st).Len()
	if err != nil {
		return err
	}
	if n >= myrd.MaxRewardTokens {
		return ErrTooManyRewardTokens
	}
	def, err := g.defaultRewardToken.Get()
	if err != nil {
		return err
	}
	registered, err := g.IsRewardToken(st, rt)
	if err != nil {
		return err
	}
	if registered || rt == def {
		return ErrAlreadyRegistered
	}
	if err := g.isRewardToken(st).Set(rt, true); err != nil {
		return err
	}
	if _, err := g.rewardTokens(st).Push(rt); err != nil {
		return err
	}
	env.Log(g.addr, "RegisterRewardToken", "stakingToken", st, "rewardToken", rt)
	return nil
}

// RemoveRewardToken delists rt once its stream has fully drained.
// Unclaimed rewards of rt stay on the gauge.
func (g *MultiGauge) RemoveRewardToken(env *xenv.Environment, st, rt myrd.Address) error {
	if err := g.onlyAllowed(env); err != nil {
		return err
	}
	registered, err := g.IsRewardToken(st, rt)
	if err != nil {
		return err
	}
	if !registered {
		return ErrNotRewardToken
	}
	p, err := g.loadPool(st, rt)
	if err != nil {
		return err
	}
	remaining, err := left(p, env.BlockTime())
	if err != nil {
		return err
	}
	if !remaining.IsZero() {
		return ErrRewardsNotEnded
	}

	list := g.rewardTokens(st)
	tokens, err := list.All()
	if err != nil {
		return err
	}
	last := uint64(len(tokens) - 1)
	for i, t := range tokens {
		if t != rt {
			continue
		}
		if uint64(i) != last {
			if err := list.Set(uint64(i), tokens[last]); err != nil {
				return err
			}
		}
		if err := list.Pop(); err != nil {
			return err
		}
		break
	}
	if err := g.isRewardToken(st).Set(rt, false); err != nil {
		return err
	}
	env.Log(g.addr, "RemoveRewardToken", "stakingToken", st, "rewardToken", rt)
	return nil
}
