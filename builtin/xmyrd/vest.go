// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xmyrd

import (
	"github.com/holiman/uint256"

	"github.com/tetu-io/myrd-contracts/builtin/solidity"
	"github.com/tetu-io/myrd-contracts/fixedpoint"
	"github.com/tetu-io/myrd-contracts/myrd"
)

// Vest is a position amount being unlocked linearly over MaxVest.
// A zero Amount marks the vest as exited or cancelled.
type Vest struct {
	Amount *uint256.Int
	Start  uint64
	MaxEnd uint64
}

func (v Vest) exited() bool {
	return v.Amount == nil || v.Amount.IsZero()
}

func (x *XMyrd) vests(account myrd.Address) *solidity.Array[Vest] {
	return solidity.NewArray[Vest](x.sctx, solidity.Slot(slotVests, account))
}

// UsersTotalVests returns how many vests account has ever created.
func (x *XMyrd) UsersTotalVests(account myrd.Address) (uint64, error) {
	return x.vests(account).Len()
}

// VestInfo returns the vest of account at index.
func (x *XMyrd) VestInfo(account myrd.Address, index uint64) (Vest, error) {
	arr := x.vests(account)
	n, err := arr.Len()
	if err != nil {
		return Vest{}, err
	}
	if index >= n {
		return Vest{}, ErrNoVest
	}
	v, err := arr.Get(index)
	if err != nil {
		return Vest{}, err
	}
	if v.Amount == nil {
		v.Amount = new(uint256.Int)
	}
	return v, nil
}

// VestPayout is the base token amount a vest of amount pays out after
// elapsed seconds. Half is paid immediately and the other half accrues
// linearly until MaxVest, when the whole amount is paid.
func VestPayout(amount *uint256.Int, elapsed uint64) (*uint256.Int, error) {
	if elapsed >= myrd.MaxVest {
		return new(uint256.Int).Set(amount), nil
	}
	base, err := fixedpoint.MulDiv(amount, fixedpoint.FromUint64(myrd.SlashingPenalty), fixedpoint.FromUint64(myrd.Basis))
	if err != nil {
		return nil, err
	}
	earned, err := fixedpoint.MulDiv(
		amount,
		fixedpoint.FromUint64((myrd.Basis-myrd.SlashingPenalty)*elapsed),
		new(uint256.Int).Mul(fixedpoint.FromUint64(myrd.MaxVest), fixedpoint.FromUint64(myrd.Basis)),
	)
	if err != nil {
		return nil, err
	}
	return fixedpoint.Add(base, earned)
}
