// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xmyrd

import (
	"github.com/holiman/uint256"

	"github.com/tetu-io/myrd-contracts/fixedpoint"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/xenv"
)

// Enter locks amount of base token and mints the same position amount to the caller.
func (x *XMyrd) Enter(env *xenv.Environment, amount *uint256.Int) error {
	return x.EnterFor(env, amount, env.Caller())
}

// EnterFor locks amount of the caller's base token for recipient.
func (x *XMyrd) EnterFor(env *xenv.Environment, amount *uint256.Int, recipient myrd.Address) error {
	release, err := env.Enter(x.addr)
	if err != nil {
		return err
	}
	defer release()

	if amount.IsZero() || recipient.IsZero() {
		return ErrIncorrectZeroArgument
	}
	base, err := x.baseToken(env)
	if err != nil {
		return err
	}
	if err := base.TransferFrom(env.CallFrom(x.addr), env.Caller(), x.addr, amount); err != nil {
		return err
	}
	if err := x.mint(env, recipient, amount); err != nil {
		return err
	}
	if err := x.notify(env, recipient); err != nil {
		return err
	}
	env.Log(x.addr, "Enter", "sender", env.Caller(), "recipient", recipient, "amount", amount)
	logger.Debug("entered", "recipient", recipient, "amount", amount)
	return nil
}

// Exit burns amount of the caller's position and pays half of it in base token.
// The other half is added to the pending rebase.
func (x *XMyrd) Exit(env *xenv.Environment, amount *uint256.Int) error {
	release, err := env.Enter(x.addr)
	if err != nil {
		return err
	}
	defer release()

	if amount.IsZero() {
		return ErrIncorrectZeroArgument
	}
	caller := env.Caller()
	if err := x.burn(env, caller, amount); err != nil {
		return err
	}
	exitAmount, err := fixedpoint.MulDiv(
		amount,
		fixedpoint.FromUint64(myrd.Basis-myrd.SlashingPenalty),
		fixedpoint.FromUint64(myrd.Basis),
	)
	if err != nil {
		return err
	}
	penalty := new(uint256.Int).Sub(amount, exitAmount)
	if err := x.pendingRebase.Add(penalty); err != nil {
		return err
	}
	base, err := x.baseToken(env)
	if err != nil {
		return err
	}
	if err := base.Transfer(env.CallFrom(x.addr), caller, exitAmount); err != nil {
		return err
	}
	if err := x.notify(env, caller); err != nil {
		return err
	}
	env.Log(x.addr, "InstantExit", "user", caller, "exitAmount", exitAmount)
	logger.Debug("instant exit", "user", caller, "amount", amount, "penalty", penalty)
	return nil
}

// CreateVest burns amount of the caller's position and starts a vest of it.
func (x *XMyrd) CreateVest(env *xenv.Environment, amount *uint256.Int) error {
	release, err := env.Enter(x.addr)
	if err != nil {
		return err
	}
	defer release()

	if amount.IsZero() {
		return ErrIncorrectZeroArgument
	}
	caller := env.Caller()
	if err := x.burn(env, caller, amount); err != nil {
		return err
	}
	now := env.BlockTime()
	index, err := x.vests(caller).Push(Vest{
		Amount: new(uint256.Int).Set(amount),
		Start:  now,
		MaxEnd: now + myrd.MaxVest,
	})
	if err != nil {
		return err
	}
	if err := x.notify(env, caller); err != nil {
		return err
	}
	env.Log(x.addr, "NewVest", "user", caller, "vestID", index, "amount", amount)
	return nil
}

// ExitVest consumes the caller's vest at index. Before MinVest the vest is
// cancelled and its amount re-minted; afterwards it pays VestPayout in base token.
func (x *XMyrd) ExitVest(env *xenv.Environment, index uint64) error {
	release, err := env.Enter(x.addr)
	if err != nil {
		return err
	}
	defer release()

	caller := env.Caller()
	vests := x.vests(caller)
	n, err := vests.Len()
	if err != nil {
		return err
	}
	if index >= n {
		return ErrNoVest
	}
	vest, err := vests.Get(index)
	if err != nil {
		return err
	}
	if vest.exited() {
		return ErrNoVest
	}
	amount := vest.Amount
	if err := vests.Set(index, Vest{Amount: new(uint256.Int), Start: vest.Start, MaxEnd: vest.MaxEnd}); err != nil {
		return err
	}

	now := env.BlockTime()
	var elapsed uint64
	if now > vest.Start {
		elapsed = now - vest.Start
	}
	if elapsed < myrd.MinVest {
		if err := x.mint(env, caller, amount); err != nil {
			return err
		}
		env.Log(x.addr, "CancelVesting", "user", caller, "vestID", index, "amount", amount)
	} else {
		earned, err := VestPayout(amount, elapsed)
		if err != nil {
			return err
		}
		if err := x.pendingRebase.Add(new(uint256.Int).Sub(amount, earned)); err != nil {
			return err
		}
		base, err := x.baseToken(env)
		if err != nil {
			return err
		}
		if err := base.Transfer(env.CallFrom(x.addr), caller, earned); err != nil {
			return err
		}
		env.Log(x.addr, "ExitVesting", "user", caller, "vestID", index, "totalAmount", amount, "exitedAmount", earned)
	}
	return x.notify(env, caller)
}

// Rebase hands the pending rebase to the gauge, at most once per epoch.
// Amounts below Basis are left to accumulate.
func (x *XMyrd) Rebase(env *xenv.Environment) error {
	gauge, err := x.gauge.Get()
	if err != nil {
		return err
	}
	if env.Caller() != gauge {
		return ErrNotGauge
	}
	pending, err := x.pendingRebase.Get()
	if err != nil {
		return err
	}
	if pending.Lt(fixedpoint.FromUint64(myrd.Basis)) {
		return nil
	}
	last, err := x.LastDistributedPeriod()
	if err != nil {
		return err
	}
	if !env.Clock().HasAdvanced(last, env.BlockTime()) {
		return nil
	}
	period := env.CurrentPeriod()
	base, err := x.baseToken(env)
	if err != nil {
		return err
	}
	if err := base.Transfer(env.CallFrom(x.addr), gauge, pending); err != nil {
		return err
	}
	x.pendingRebase.Set(new(uint256.Int))
	x.lastDistributedPeriod.Set(fixedpoint.FromUint64(period))
	env.Log(x.addr, "Rebase", "caller", env.Caller(), "amount", pending)
	logger.Info("rebase harvested", "period", period, "amount", pending)
	return nil
}
