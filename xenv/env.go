// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"fmt"

	"github.com/tetu-io/myrd-contracts/builtin/reverts"
	"github.com/tetu-io/myrd-contracts/epoch"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/state"
)

var (
	ErrReentrantCall = reverts.New("ReentrancyGuardReentrantCall")
	ErrNoContract    = reverts.New("no contract at address")
)

// BlockContext block context.
type BlockContext struct {
	Number uint32
	Time   uint64
}

// TransactionContext transaction context.
type TransactionContext struct {
	ID     myrd.Bytes32
	Origin myrd.Address
}

// Resolver binds the native contract deployed at addr to st.
type Resolver func(addr myrd.Address, st *state.State) (any, bool)

// Event is a log emitted by a native contract.
type Event struct {
	Address myrd.Address   `json:"address"`
	Name    string         `json:"name"`
	Args    map[string]any `json:"args"`
}

// shared is the part of an environment common to every nested call of one transition.
type shared struct {
	state    *state.State
	blockCtx *BlockContext
	txCtx    *TransactionContext
	clock    epoch.Clock
	resolver Resolver
	entered  map[myrd.Address]bool
	events   []Event
}

// Environment an env to execute native method.
type Environment struct {
	*shared
	caller myrd.Address
}

// New create a new env. The caller of the outermost call is the origin.
func New(
	state *state.State,
	blockCtx *BlockContext,
	txCtx *TransactionContext,
	clock epoch.Clock,
	resolver Resolver,
) *Environment {
	return &Environment{
		shared: &shared{
			state:    state,
			blockCtx: blockCtx,
			txCtx:    txCtx,
			clock:    clock,
			resolver: resolver,
			entered:  make(map[myrd.Address]bool),
		},
		caller: txCtx.Origin,
	}
}

func (env *Environment) State() *state.State                     { return env.state }
func (env *Environment) BlockContext() *BlockContext             { return env.blockCtx }
func (env *Environment) TransactionContext() *TransactionContext { return env.txCtx }
func (env *Environment) Caller() myrd.Address                    { return env.caller }
func (env *Environment) Origin() myrd.Address                    { return env.txCtx.Origin }
func (env *Environment) BlockTime() uint64                       { return env.blockCtx.Time }
func (env *Environment) Clock() epoch.Clock                      { return env.clock }

// CurrentPeriod is the epoch index of the block time.
func (env *Environment) CurrentPeriod() uint64 {
	return env.clock.Period(env.blockCtx.Time)
}

// CallFrom returns the env of a nested call made by contract self.
// The nested env shares state, events and reentrancy locks with env.
func (env *Environment) CallFrom(self myrd.Address) *Environment {
	return &Environment{shared: env.shared, caller: self}
}

// Enter takes the reentrancy lock of contract. The returned func releases it.
func (env *Environment) Enter(contract myrd.Address) (func(), error) {
	if env.entered[contract] {
		return nil, ErrReentrantCall
	}
	env.entered[contract] = true
	return func() { delete(env.entered, contract) }, nil
}

// Log records an event. Events of reverted transitions are dropped by the runtime.
func (env *Environment) Log(address myrd.Address, name string, kvs ...any) {
	args := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		args[fmt.Sprint(kvs[i])] = kvs[i+1]
	}
	env.events = append(env.events, Event{Address: address, Name: name, Args: args})
}

// Events returns events logged so far.
func (env *Environment) Events() []Event {
	return env.events
}

// Lookup resolves the native contract at addr and asserts it implements T.
func Lookup[T any](env *Environment, addr myrd.Address) (T, error) {
	var zero T
	if env.resolver == nil {
		return zero, ErrNoContract
	}
	c, ok := env.resolver(addr, env.state)
	if !ok {
		return zero, ErrNoContract
	}
	t, ok := c.(T)
	if !ok {
		return zero, reverts.Newf("contract at %v does not implement %T", addr, (*T)(nil))
	}
	return t, nil
}
