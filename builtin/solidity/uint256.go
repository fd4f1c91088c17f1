// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/holiman/uint256"

	"github.com/tetu-io/myrd-contracts/fixedpoint"
	"github.com/tetu-io/myrd-contracts/myrd"
)

// Uint256 is a wrapper for storage and retrieval of an uint256. Similar to storing an uint256 in a smart contract.
type Uint256 struct {
	context *Context
	pos     myrd.Bytes32
}

func NewUint256(context *Context, pos myrd.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*uint256.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes32(storage[:]), nil
}

func (u *Uint256) Set(value *uint256.Int) {
	u.context.state.SetStorage(u.context.address, u.pos, myrd.Bytes32(value.Bytes32()))
}

// Add increases the stored value, failing on overflow.
func (u *Uint256) Add(value *uint256.Int) error {
	cur, err := u.Get()
	if err != nil {
		return err
	}
	sum, err := fixedpoint.Add(cur, value)
	if err != nil {
		return err
	}
	u.Set(sum)
	return nil
}

// Sub decreases the stored value, failing on underflow.
func (u *Uint256) Sub(value *uint256.Int) error {
	cur, err := u.Get()
	if err != nil {
		return err
	}
	diff, err := fixedpoint.Sub(cur, value)
	if err != nil {
		return err
	}
	u.Set(diff)
	return nil
}
