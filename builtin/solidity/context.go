// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package solidity provides typed views over contract storage slots,
// laid out the way a solidity contract lays out its state variables.
package solidity

import (
	"encoding/binary"

	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/state"
)

// Context binds storage helpers to a contract address and a state.
type Context struct {
	address myrd.Address
	state   *state.State
}

func NewContext(address myrd.Address, state *state.State) *Context {
	return &Context{address: address, state: state}
}

func (c *Context) Address() myrd.Address { return c.address }
func (c *Context) State() *state.State   { return c.state }

// Key is anything usable as a mapping key.
type Key interface {
	Bytes() []byte
}

// Index is an array index usable as a Key.
type Index uint64

func (i Index) Bytes() []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(i))
}

// Slot derives the position of a nested mapping, like m[k1][k2] in solidity.
func Slot(base myrd.Bytes32, keys ...Key) myrd.Bytes32 {
	pos := base
	for _, k := range keys {
		pos = myrd.Blake2b(k.Bytes(), pos.Bytes())
	}
	return pos
}

// SlotOf names a top level state variable.
func SlotOf(name string) myrd.Bytes32 {
	return myrd.BytesToBytes32([]byte(name))
}
