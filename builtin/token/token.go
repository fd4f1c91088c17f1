// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the ERC20-like ledger used for the base token
// and for external reward tokens.
package token

import (
	"github.com/holiman/uint256"

	"github.com/tetu-io/myrd-contracts/builtin/reverts"
	"github.com/tetu-io/myrd-contracts/builtin/solidity"
	"github.com/tetu-io/myrd-contracts/fixedpoint"
	"github.com/tetu-io/myrd-contracts/log"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/state"
	"github.com/tetu-io/myrd-contracts/xenv"
)

var (
	slotMetadata    = solidity.SlotOf("metadata")
	slotTotalSupply = solidity.SlotOf("total-supply")
	slotBalances    = solidity.SlotOf("balances")
	slotAllowances  = solidity.SlotOf("allowances")
)

var (
	ErrInsufficientBalance   = reverts.New("ERC20InsufficientBalance")
	ErrInsufficientAllowance = reverts.New("ERC20InsufficientAllowance")
	ErrZeroAddress           = reverts.New("ZeroAddress")
	ErrOnlyMinter            = reverts.New("OnlyMinter")
	ErrInvalidInitialization = reverts.New("InvalidInitialization")
)

var logger = log.WithContext("pkg", "token")

func SetLogger(l log.Logger) {
	logger = l
}

// ERC20 is the token surface other contracts consume.
type ERC20 interface {
	Address() myrd.Address
	BalanceOf(owner myrd.Address) (*uint256.Int, error)
	Approve(env *xenv.Environment, spender myrd.Address, amount *uint256.Int) error
	Transfer(env *xenv.Environment, to myrd.Address, amount *uint256.Int) error
	TransferFrom(env *xenv.Environment, from, to myrd.Address, amount *uint256.Int) error
}

// Metadata describes a token. Minter is the only account allowed to mint.
type Metadata struct {
	Name     string
	Symbol   string
	Decimals uint8
	Minter   myrd.Address
}

// Token implements native methods of a fungible token.
type Token struct {
	addr        myrd.Address
	metadata    *solidity.Value[Metadata]
	totalSupply *solidity.Uint256
	balances    *solidity.Mapping[myrd.Address, *uint256.Int]
	sctx        *solidity.Context
}

var _ ERC20 = (*Token)(nil)

// New create a new instance.
func New(addr myrd.Address, state *state.State) *Token {
	sctx := solidity.NewContext(addr, state)
	return &Token{
		addr:        addr,
		metadata:    solidity.NewValue[Metadata](sctx, slotMetadata),
		totalSupply: solidity.NewUint256(sctx, slotTotalSupply),
		balances:    solidity.NewMapping[myrd.Address, *uint256.Int](sctx, slotBalances),
		sctx:        sctx,
	}
}

func (t *Token) Address() myrd.Address { return t.addr }

// Initialize sets the metadata once.
func (t *Token) Initialize(meta Metadata) error {
	cur, err := t.metadata.Get()
	if err != nil {
		return err
	}
	if cur.Symbol != "" {
		return ErrInvalidInitialization
	}
	if meta.Symbol == "" {
		return reverts.New("empty symbol")
	}
	return t.metadata.Set(meta)
}

func (t *Token) Metadata() (Metadata, error) {
	return t.metadata.Get()
}

func (t *Token) TotalSupply() (*uint256.Int, error) {
	return t.totalSupply.Get()
}

func (t *Token) BalanceOf(owner myrd.Address) (*uint256.Int, error) {
	bal, err := t.balances.Get(owner)
	if err != nil {
		return nil, err
	}
	if bal == nil {
		return new(uint256.Int), nil
	}
	return bal, nil
}

func (t *Token) allowances(owner myrd.Address) *solidity.Mapping[myrd.Address, *uint256.Int] {
	return solidity.NewMapping[myrd.Address, *uint256.Int](t.sctx, solidity.Slot(slotAllowances, owner))
}

func (t *Token) Allowance(owner, spender myrd.Address) (*uint256.Int, error) {
	a, err := t.allowances(owner).Get(spender)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return new(uint256.Int), nil
	}
	return a, nil
}

// Approve sets the allowance of spender over the caller's tokens.
func (t *Token) Approve(env *xenv.Environment, spender myrd.Address, amount *uint256.Int) error {
	if spender.IsZero() {
		return ErrZeroAddress
	}
	if err := t.allowances(env.Caller()).Set(spender, amount); err != nil {
		return err
	}
	env.Log(t.addr, "Approval", "owner", env.Caller(), "spender", spender, "value", amount)
	return nil
}

// Transfer moves amount from the caller to to.
func (t *Token) Transfer(env *xenv.Environment, to myrd.Address, amount *uint256.Int) error {
	return t.move(env, env.Caller(), to, amount)
}

// TransferFrom moves amount from from to to, spending the caller's allowance.
// An allowance of max uint256 is never decremented.
func (t *Token) TransferFrom(env *xenv.Environment, from, to myrd.Address, amount *uint256.Int) error {
	if err := t.spendAllowance(from, env.Caller(), amount); err != nil {
		return err
	}
	return t.move(env, from, to, amount)
}

func (t *Token) spendAllowance(owner, spender myrd.Address, amount *uint256.Int) error {
	allowance, err := t.Allowance(owner, spender)
	if err != nil {
		return err
	}
	if allowance.Eq(myrd.MaxUint256) {
		return nil
	}
	if allowance.Lt(amount) {
		return ErrInsufficientAllowance
	}
	return t.allowances(owner).Set(spender, new(uint256.Int).Sub(allowance, amount))
}

func (t *Token) move(env *xenv.Environment, from, to myrd.Address, amount *uint256.Int) error {
	if from.IsZero() || to.IsZero() {
		return ErrZeroAddress
	}
	fromBal, err := t.BalanceOf(from)
	if err != nil {
		return err
	}
	if fromBal.Lt(amount) {
		return ErrInsufficientBalance
	}
	if err := t.balances.Set(from, new(uint256.Int).Sub(fromBal, amount)); err != nil {
		return err
	}
	toBal, err := t.BalanceOf(to)
	if err != nil {
		return err
	}
	sum, err := fixedpoint.Add(toBal, amount)
	if err != nil {
		return err
	}
	if err := t.balances.Set(to, sum); err != nil {
		return err
	}
	env.Log(t.addr, "Transfer", "from", from, "to", to, "value", amount)
	return nil
}

// Mint creates amount tokens for to. Only the minter may call it.
func (t *Token) Mint(env *xenv.Environment, to myrd.Address, amount *uint256.Int) error {
	meta, err := t.metadata.Get()
	if err != nil {
		return err
	}
	if meta.Minter.IsZero() || env.Caller() != meta.Minter {
		return ErrOnlyMinter
	}
	if to.IsZero() {
		return ErrZeroAddress
	}
	if err := t.totalSupply.Add(amount); err != nil {
		return err
	}
	bal, err := t.BalanceOf(to)
	if err != nil {
		return err
	}
	sum, err := fixedpoint.Add(bal, amount)
	if err != nil {
		return err
	}
	if err := t.balances.Set(to, sum); err != nil {
		return err
	}
	env.Log(t.addr, "Transfer", "from", myrd.Address{}, "to", to, "value", amount)
	logger.Debug("minted", "token", meta.Symbol, "to", to, "amount", amount)
	return nil
}
