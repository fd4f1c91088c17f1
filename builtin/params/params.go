// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package params stores chain-wide parameters fixed at genesis, and the
// set of addresses that host token ledgers.
package params

import (
	"github.com/holiman/uint256"

	"github.com/tetu-io/myrd-contracts/builtin/solidity"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/state"
)

// Keys of parameters.
var (
	KeyEpochDuration = myrd.BytesToBytes32([]byte("epoch-duration"))
	KeyLaunchTime    = myrd.BytesToBytes32([]byte("launch-time"))
)

var slotTokens = solidity.SlotOf("tokens")

// Params binder of `Params` contract.
type Params struct {
	sctx   *solidity.Context
	tokens *solidity.Mapping[myrd.Address, bool]
}

func New(addr myrd.Address, state *state.State) *Params {
	sctx := solidity.NewContext(addr, state)
	return &Params{
		sctx:   sctx,
		tokens: solidity.NewMapping[myrd.Address, bool](sctx, slotTokens),
	}
}

// Get native way to get param.
func (p *Params) Get(key myrd.Bytes32) (*uint256.Int, error) {
	return solidity.NewUint256(p.sctx, key).Get()
}

// Set native way to set param.
func (p *Params) Set(key myrd.Bytes32, value *uint256.Int) {
	solidity.NewUint256(p.sctx, key).Set(value)
}

// IsToken reports whether addr hosts a token ledger.
func (p *Params) IsToken(addr myrd.Address) (bool, error) {
	return p.tokens.Get(addr)
}

// AddToken marks addr as a token ledger.
func (p *Params) AddToken(addr myrd.Address) error {
	return p.tokens.Set(addr, true)
}
