// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/tetu-io/myrd-contracts/builtin"
	"github.com/tetu-io/myrd-contracts/builtin/params"
	"github.com/tetu-io/myrd-contracts/builtin/token"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/state"
	"github.com/tetu-io/myrd-contracts/xenv"
)

// TokenFactory is the one-time minter of MYRD. Only genesis calls are made from it.
var TokenFactory = myrd.BytesToAddress([]byte("TokenFactory"))

// NewCustomNet create custom network genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if gen.LaunchTime == 0 {
		return nil, errors.New("launchTime must not be 0")
	}
	if gen.Governance.IsZero() {
		return nil, errors.New("governance must be set")
	}
	duration := gen.EpochDuration
	if duration == 0 {
		duration = myrd.Week
	}
	if len(gen.Tokens) > myrd.MaxRewardTokens {
		return nil, fmt.Errorf("at most %d extra tokens", myrd.MaxRewardTokens)
	}

	seen := map[myrd.Address]bool{
		builtin.Params.Address:     true,
		builtin.Controller.Address: true,
		builtin.Myrd.Address:       true,
		builtin.XMyrd.Address:      true,
		builtin.Gauge.Address:      true,
	}
	for _, t := range gen.Tokens {
		if t.Symbol == "" {
			return nil, errors.New("token symbol must be set")
		}
		addr := t.TokenAddress()
		if addr.IsZero() || seen[addr] {
			return nil, fmt.Errorf("token %v: address %v already used", t.Symbol, addr)
		}
		seen[addr] = true
	}

	builder := new(Builder).
		Timestamp(gen.LaunchTime).
		EpochDuration(duration).
		State(func(state *state.State) error {
			p := builtin.Params.Native(state)
			p.Set(params.KeyEpochDuration, uint256.NewInt(duration))
			p.Set(params.KeyLaunchTime, uint256.NewInt(gen.LaunchTime))
			for _, t := range gen.Tokens {
				if err := p.AddToken(t.TokenAddress()); err != nil {
					return err
				}
			}
			return nil
		}).
		State(func(state *state.State) error {
			if err := builtin.Controller.Native(state).Init(gen.Governance); err != nil {
				return err
			}
			if err := builtin.Myrd.Native(state).Initialize(token.Metadata{
				Name:     "MYRD",
				Symbol:   "MYRD",
				Decimals: 18,
				Minter:   TokenFactory,
			}); err != nil {
				return err
			}
			if err := builtin.XMyrd.Native(state).Initialize(
				builtin.Controller.Address,
				builtin.Myrd.Address,
				builtin.Gauge.Address,
			); err != nil {
				return err
			}
			return builtin.Gauge.Native(state).Init(
				builtin.Controller.Address,
				builtin.XMyrd.Address,
				builtin.Myrd.Address,
			)
		})

	if err := mintCalls(builder, TokenFactory, builtin.Myrd.Address, gen.Myrd); err != nil {
		return nil, err
	}

	for _, d := range gen.Deployers {
		builder.Call(gen.Governance, "changeDeployer", func(env *xenv.Environment) error {
			return builtin.Controller.Native(env.State()).ChangeDeployer(env, d, false)
		})
	}

	for _, t := range gen.Tokens {
		addr := t.TokenAddress()
		minter := gen.Governance
		if t.Minter != nil {
			minter = *t.Minter
		}
		meta := token.Metadata{Name: t.Name, Symbol: t.Symbol, Decimals: t.Decimals, Minter: minter}
		if meta.Name == "" {
			meta.Name = t.Symbol
		}
		builder.State(func(state *state.State) error {
			return builtin.Token(addr, state).Initialize(meta)
		})
		if err := mintCalls(builder, minter, addr, t.Allocations); err != nil {
			return nil, err
		}
		if t.Reward {
			builder.Call(gen.Governance, "registerRewardToken", func(env *xenv.Environment) error {
				return builtin.Gauge.Native(env.State()).RegisterRewardToken(env, builtin.XMyrd.Address, addr)
			})
		}
	}

	id, err := builder.ComputeID()
	if err != nil {
		return nil, err
	}
	return &Genesis{builder, id, "customnet", gen.LaunchTime}, nil
}

func mintCalls(builder *Builder, minter, tokenAddr myrd.Address, allocs []Allocation) error {
	for _, a := range allocs {
		amount, err := a.Amount.Uint256()
		if err != nil {
			return fmt.Errorf("allocation of %v: %w", a.Address, err)
		}
		if amount.IsZero() {
			continue
		}
		to := a.Address
		builder.Call(minter, "mint", func(env *xenv.Environment) error {
			return builtin.Token(tokenAddr, env.State()).Mint(env, to, amount)
		})
	}
	return nil
}
