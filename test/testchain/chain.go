// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testchain runs a devnet runtime over an in-memory store with a
// fake clock, for tests of the outer layers.
package testchain

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tetu-io/myrd-contracts/genesis"
	"github.com/tetu-io/myrd-contracts/lvldb"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/runtime"
	"github.com/tetu-io/myrd-contracts/state"
)

// Chain is a runtime built from a genesis, driven by a fake clock.
type Chain struct {
	kv      *lvldb.LevelDB
	db      *state.DB
	genesis *genesis.Genesis
	clock   *clockwork.FakeClock
	rt      *runtime.Runtime
}

// NewDefault builds a chain from the devnet genesis.
func NewDefault() (*Chain, error) {
	return NewWithGenesis(genesis.NewDevnet())
}

// NewWithGenesis builds a chain from gene. The clock starts at the launch time.
func NewWithGenesis(gene *genesis.Genesis) (*Chain, error) {
	kv, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	db, err := state.NewDB(kv, 0)
	if err != nil {
		return nil, err
	}
	if _, _, err := gene.Build(db); err != nil {
		return nil, err
	}
	clock := clockwork.NewFakeClockAt(time.Unix(int64(gene.LaunchTime()), 0))
	rt, err := runtime.New(db, clock)
	if err != nil {
		return nil, err
	}
	return &Chain{kv, db, gene, clock, rt}, nil
}

func (c *Chain) Runtime() *runtime.Runtime   { return c.rt }
func (c *Chain) Genesis() *genesis.Genesis   { return c.genesis }
func (c *Chain) Clock() *clockwork.FakeClock { return c.clock }
func (c *Chain) State() *state.State         { return c.rt.State() }

// Close releases the store.
func (c *Chain) Close() error {
	return c.kv.Close()
}

// Accounts returns the funded dev accounts. The first one is governance.
func (c *Chain) Accounts() []genesis.DevAccount {
	return genesis.DevAccounts()
}

// Advance moves the clock forward by d.
func (c *Chain) Advance(d time.Duration) {
	c.clock.Advance(d)
}

// AdvanceTo moves the clock forward to ts. It is a no-op if ts is in the past.
func (c *Chain) AdvanceTo(ts uint64) {
	if now := c.rt.Now(); ts > now {
		c.clock.Advance(time.Duration(ts-now) * time.Second)
	}
}

// Execute runs fn as a transition of caller and fails on revert.
func (c *Chain) Execute(method string, caller myrd.Address, fn runtime.Transition) (*runtime.Receipt, error) {
	receipt, err := c.rt.Execute(context.Background(), method, caller, fn)
	if err != nil {
		return nil, err
	}
	if receipt.Reverted {
		return receipt, fmt.Errorf("%s reverted: %s", method, receipt.Reason)
	}
	return receipt, nil
}
