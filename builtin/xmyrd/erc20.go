// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xmyrd

import (
	"github.com/holiman/uint256"

	"github.com/tetu-io/myrd-contracts/builtin/solidity"
	"github.com/tetu-io/myrd-contracts/builtin/token"
	"github.com/tetu-io/myrd-contracts/fixedpoint"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/xenv"
)

func (x *XMyrd) allowances(owner myrd.Address) *solidity.Mapping[myrd.Address, *uint256.Int] {
	return solidity.NewMapping[myrd.Address, *uint256.Int](x.sctx, solidity.Slot(slotAllowances, owner))
}

func (x *XMyrd) Allowance(owner, spender myrd.Address) (*uint256.Int, error) {
	a, err := x.allowances(owner).Get(spender)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return new(uint256.Int), nil
	}
	return a, nil
}

func (x *XMyrd) Approve(env *xenv.Environment, spender myrd.Address, amount *uint256.Int) error {
	if spender.IsZero() {
		return token.ErrZeroAddress
	}
	if err := x.allowances(env.Caller()).Set(spender, amount); err != nil {
		return err
	}
	env.Log(x.addr, "Approval", "owner", env.Caller(), "spender", spender, "value", amount)
	return nil
}

// Transfer moves position tokens. Only moves out of an exempt sender or
// into an exempt recipient are allowed.
func (x *XMyrd) Transfer(env *xenv.Environment, to myrd.Address, amount *uint256.Int) error {
	return x.transfer(env, env.Caller(), to, amount)
}

func (x *XMyrd) TransferFrom(env *xenv.Environment, from, to myrd.Address, amount *uint256.Int) error {
	allowance, err := x.Allowance(from, env.Caller())
	if err != nil {
		return err
	}
	if !allowance.Eq(myrd.MaxUint256) {
		if allowance.Lt(amount) {
			return ErrInsufficientAllowance
		}
		if err := x.allowances(from).Set(env.Caller(), new(uint256.Int).Sub(allowance, amount)); err != nil {
			return err
		}
	}
	return x.transfer(env, from, to, amount)
}

func (x *XMyrd) transfer(env *xenv.Environment, from, to myrd.Address, amount *uint256.Int) error {
	if from.IsZero() || to.IsZero() {
		return token.ErrZeroAddress
	}
	exemptFrom, err := x.exemptFrom.Get(from)
	if err != nil {
		return err
	}
	exemptTo, err := x.exemptTo.Get(to)
	if err != nil {
		return err
	}
	if !exemptFrom && !exemptTo {
		return ErrNotWhitelisted
	}
	if err := x.sub(from, amount); err != nil {
		return err
	}
	if err := x.add(to, amount); err != nil {
		return err
	}
	env.Log(x.addr, "Transfer", "from", from, "to", to, "value", amount)
	if err := x.notify(env, from); err != nil {
		return err
	}
	return x.notify(env, to)
}

func (x *XMyrd) mint(env *xenv.Environment, to myrd.Address, amount *uint256.Int) error {
	if err := x.totalSupply.Add(amount); err != nil {
		return err
	}
	if err := x.add(to, amount); err != nil {
		return err
	}
	env.Log(x.addr, "Transfer", "from", myrd.Address{}, "to", to, "value", amount)
	return nil
}

func (x *XMyrd) burn(env *xenv.Environment, from myrd.Address, amount *uint256.Int) error {
	if err := x.sub(from, amount); err != nil {
		return err
	}
	if err := x.totalSupply.Sub(amount); err != nil {
		return err
	}
	env.Log(x.addr, "Transfer", "from", from, "to", myrd.Address{}, "value", amount)
	return nil
}

func (x *XMyrd) add(account myrd.Address, amount *uint256.Int) error {
	bal, err := x.BalanceOf(account)
	if err != nil {
		return err
	}
	sum, err := fixedpoint.Add(bal, amount)
	if err != nil {
		return err
	}
	return x.balances.Set(account, sum)
}

func (x *XMyrd) sub(account myrd.Address, amount *uint256.Int) error {
	bal, err := x.BalanceOf(account)
	if err != nil {
		return err
	}
	if bal.Lt(amount) {
		return ErrInsufficientBalance
	}
	return x.balances.Set(account, new(uint256.Int).Sub(bal, amount))
}

// SetExemptionFrom whitelists or delists senders. Governance only.
func (x *XMyrd) SetExemptionFrom(env *xenv.Environment, accounts []myrd.Address, exempt []bool) error {
	return x.setExemption(env, x.exemptFrom, "ExemptionFrom", accounts, exempt)
}

// SetExemptionTo whitelists or delists recipients. Governance only.
func (x *XMyrd) SetExemptionTo(env *xenv.Environment, accounts []myrd.Address, exempt []bool) error {
	return x.setExemption(env, x.exemptTo, "ExemptionTo", accounts, exempt)
}

func (x *XMyrd) setExemption(
	env *xenv.Environment,
	list *solidity.Mapping[myrd.Address, bool],
	event string,
	accounts []myrd.Address,
	exempt []bool,
) error {
	if err := x.onlyGovernance(env); err != nil {
		return err
	}
	if len(accounts) == 0 || len(accounts) != len(exempt) {
		return ErrIncorrectArrayLength
	}
	for i, account := range accounts {
		if err := list.Set(account, exempt[i]); err != nil {
			return err
		}
		env.Log(x.addr, event, "account", account, "exempt", exempt[i])
	}
	return nil
}
