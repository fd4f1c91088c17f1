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

func lastTimeRewardApplicable(p RewardPool, now uint64) uint64 {
	return min(now, p.PeriodFinish)
}

// rewardPerToken accrues the stream up to now. Nothing accrues while supply is zero.
func rewardPerToken(p RewardPool, supply *uint256.Int, now uint64) (*uint256.Int, error) {
	if supply.IsZero() {
		return new(uint256.Int).Set(p.RewardPerTokenStored), nil
	}
	var elapsed uint64
	if t := lastTimeRewardApplicable(p, now); t > p.LastUpdateTime {
		elapsed = t - p.LastUpdateTime
	}
	inc, err := fixedpoint.MulDiv(fixedpoint.FromUint64(elapsed), p.RewardRate, supply)
	if err != nil {
		return nil, err
	}
	return fixedpoint.Add(p.RewardPerTokenStored, inc)
}

func earned(u UserReward, balance, rpt *uint256.Int) (*uint256.Int, error) {
	delta := fixedpoint.SubFloor(rpt, u.RewardPerTokenPaid)
	acc, err := fixedpoint.MulDiv(balance, delta, myrd.Precision)
	if err != nil {
		return nil, err
	}
	return fixedpoint.Add(acc, u.Rewards)
}

func left(p RewardPool, now uint64) (*uint256.Int, error) {
	if now >= p.PeriodFinish {
		return new(uint256.Int), nil
	}
	return fixedpoint.MulDiv(fixedpoint.FromUint64(p.PeriodFinish-now), p.RewardRate, myrd.Precision)
}

// updateReward checkpoints the pair and settles account unless it is zero.
func (g *MultiGauge) updateReward(st, rt, account myrd.Address, now uint64) error {
	p, err := g.loadPool(st, rt)
	if err != nil {
		return err
	}
	supply, err := g.totalSupply(st).Get()
	if err != nil {
		return err
	}
	rpt, err := rewardPerToken(p, supply, now)
	if err != nil {
		return err
	}
	p.RewardPerTokenStored = rpt
	p.LastUpdateTime = lastTimeRewardApplicable(p, now)
	if err := g.pool(st, rt).Set(p); err != nil {
		return err
	}
	if account.IsZero() {
		return nil
	}
	u, err := g.loadUserReward(st, rt, account)
	if err != nil {
		return err
	}
	bal, err := g.BalanceOf(st, account)
	if err != nil {
		return err
	}
	if u.Rewards, err = earned(u, bal, rpt); err != nil {
		return err
	}
	u.RewardPerTokenPaid = rpt
	return g.userReward(st, rt, account).Set(u)
}

// allRewardTokens is the default reward token followed by the registered ones.
func (g *MultiGauge) allRewardTokens(st myrd.Address) ([]myrd.Address, error) {
	def, err := g.defaultRewardToken.Get()
	if err != nil {
		return nil, err
	}
	registered, err := g.rewardTokens(st).All()
	if err != nil {
		return nil, err
	}
	return append([]myrd.Address{def}, registered...), nil
}

// startStream blends amount with the undistributed leftover of the current
// stream and restarts it for one reward duration from now. The tokens must
// already be held by the gauge.
func (g *MultiGauge) startStream(env *xenv.Environment, st, rt myrd.Address, amount *uint256.Int) error {
	now := env.BlockTime()
	if err := g.updateReward(st, rt, myrd.Address{}, now); err != nil {
		return err
	}
	p, err := g.loadPool(st, rt)
	if err != nil {
		return err
	}
	duration := fixedpoint.FromUint64(env.Clock().Duration())
	total := amount
	if now < p.PeriodFinish {
		leftover, err := left(p, now)
		if err != nil {
			return err
		}
		if total, err = fixedpoint.Add(amount, leftover); err != nil {
			return err
		}
	}
	if p.RewardRate, err = fixedpoint.MulDiv(total, myrd.Precision, duration); err != nil {
		return err
	}
	p.LastUpdateTime = now
	p.PeriodFinish = now + env.Clock().Duration()
	if err := g.pool(st, rt).Set(p); err != nil {
		return err
	}
	env.Log(g.addr, "RewardAdded", "stakingToken", st, "rewardToken", rt, "amount", amount, "rewardRate", p.RewardRate)
	logger.Debug("reward stream started", "rewardToken", rt, "amount", amount, "total", total, "finish", p.PeriodFinish)
	return nil
}

//
// Getters - no state change
//

func (g *MultiGauge) Controller() (myrd.Address, error)         { return g.controller.Get() }
func (g *MultiGauge) StakingToken() (myrd.Address, error)       { return g.stakingToken.Get() }
func (g *MultiGauge) DefaultRewardToken() (myrd.Address, error) { return g.defaultRewardToken.Get() }

// ActivePeriod is the last epoch UpdatePeriod ran for.
func (g *MultiGauge) ActivePeriod() (uint64, error) {
	p, err := g.activePeriod.Get()
	if err != nil {
		return 0, err
	}
	return p.Uint64(), nil
}

// GetPeriod is the current epoch.
func (g *MultiGauge) GetPeriod(env *xenv.Environment) uint64 {
	return env.CurrentPeriod()
}

func (g *MultiGauge) RewardTokens(st myrd.Address) ([]myrd.Address, error) {
	return g.rewardTokens(st).All()
}

func (g *MultiGauge) RewardTokensLength(st myrd.Address) (uint64, error) {
	return g.rewardTokens(st).Len()
}

func (g *MultiGauge) IsRewardToken(st, rt myrd.Address) (bool, error) {
	return g.isRewardToken(st).Get(rt)
}

func (g *MultiGauge) TotalSupply(st myrd.Address) (*uint256.Int, error) {
	return g.totalSupply(st).Get()
}

// DerivedSupply equals TotalSupply; balances are not boosted.
func (g *MultiGauge) DerivedSupply(st myrd.Address) (*uint256.Int, error) {
	return g.TotalSupply(st)
}

func (g *MultiGauge) BalanceOf(st, account myrd.Address) (*uint256.Int, error) {
	bal, err := g.balances(st).Get(account)
	if err != nil {
		return nil, err
	}
	if bal == nil {
		return new(uint256.Int), nil
	}
	return bal, nil
}

// DerivedBalance equals BalanceOf.
func (g *MultiGauge) DerivedBalance(st, account myrd.Address) (*uint256.Int, error) {
	return g.BalanceOf(st, account)
}

func (g *MultiGauge) Pool(st, rt myrd.Address) (RewardPool, error) {
	return g.loadPool(st, rt)
}

func (g *MultiGauge) RewardRate(st, rt myrd.Address) (*uint256.Int, error) {
	p, err := g.loadPool(st, rt)
	return p.RewardRate, err
}

func (g *MultiGauge) PeriodFinish(st, rt myrd.Address) (uint64, error) {
	p, err := g.loadPool(st, rt)
	return p.PeriodFinish, err
}

func (g *MultiGauge) LastUpdateTime(st, rt myrd.Address) (uint64, error) {
	p, err := g.loadPool(st, rt)
	return p.LastUpdateTime, err
}

func (g *MultiGauge) LastTimeRewardApplicable(env *xenv.Environment, st, rt myrd.Address) (uint64, error) {
	p, err := g.loadPool(st, rt)
	if err != nil {
		return 0, err
	}
	return lastTimeRewardApplicable(p, env.BlockTime()), nil
}

func (g *MultiGauge) RewardPerToken(env *xenv.Environment, st, rt myrd.Address) (*uint256.Int, error) {
	p, err := g.loadPool(st, rt)
	if err != nil {
		return nil, err
	}
	supply, err := g.totalSupply(st).Get()
	if err != nil {
		return nil, err
	}
	return rewardPerToken(p, supply, env.BlockTime())
}

// Earned is the claimable reward of account, settled up to the block time.
func (g *MultiGauge) Earned(env *xenv.Environment, st, rt, account myrd.Address) (*uint256.Int, error) {
	rpt, err := g.RewardPerToken(env, st, rt)
	if err != nil {
		return nil, err
	}
	u, err := g.loadUserReward(st, rt, account)
	if err != nil {
		return nil, err
	}
	bal, err := g.BalanceOf(st, account)
	if err != nil {
		return nil, err
	}
	return earned(u, bal, rpt)
}

// Left is the part of the current stream not yet streamed out.
func (g *MultiGauge) Left(env *xenv.Environment, st, rt myrd.Address) (*uint256.Int, error) {
	p, err := g.loadPool(st, rt)
	if err != nil {
		return nil, err
	}
	return left(p, env.BlockTime())
}

func (g *MultiGauge) UserRewardPerTokenPaid(st, rt, account myrd.Address) (*uint256.Int, error) {
	u, err := g.loadUserReward(st, rt, account)
	return u.RewardPerTokenPaid, err
}

func (g *MultiGauge) Rewards(st, rt, account myrd.Address) (*uint256.Int, error) {
	u, err := g.loadUserReward(st, rt, account)
	return u.Rewards, err
}
