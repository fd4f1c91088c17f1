// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/tetu-io/myrd-contracts/builtin"
	"github.com/tetu-io/myrd-contracts/epoch"
	"github.com/tetu-io/myrd-contracts/lvldb"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/state"
	"github.com/tetu-io/myrd-contracts/xenv"
)

// Builder helper to build genesis state.
type Builder struct {
	timestamp uint64
	duration  uint64

	stateProcs []func(state *state.State) error
	calls      []call
}

type call struct {
	caller myrd.Address
	method string
	fn     func(env *xenv.Environment) error
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// EpochDuration set the epoch length used by genesis calls.
func (b *Builder) EpochDuration(d uint64) *Builder {
	b.duration = d
	return b
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Call add a native contract call made by caller.
func (b *Builder) Call(caller myrd.Address, method string, fn func(env *xenv.Environment) error) *Builder {
	b.calls = append(b.calls, call{caller, method, fn})
	return b
}

// ComputeID compute genesis ID.
func (b *Builder) ComputeID() (myrd.Bytes32, error) {
	kv, err := lvldb.NewMem()
	if err != nil {
		return myrd.Bytes32{}, err
	}
	defer kv.Close()

	db, err := state.NewDB(kv, 0)
	if err != nil {
		return myrd.Bytes32{}, err
	}
	id, _, err := b.Build(db)
	return id, err
}

// Build applies presets to db and commits them. The returned ID is the hash of the written slots.
func (b *Builder) Build(db *state.DB) (id myrd.Bytes32, events []xenv.Event, err error) {
	st := state.New(db)

	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return myrd.Bytes32{}, nil, errors.Wrap(err, "state process")
		}
	}

	clock := epoch.Weekly
	if b.duration != 0 {
		clock = epoch.New(b.duration)
	}
	blockCtx := &xenv.BlockContext{Time: b.timestamp}

	for _, call := range b.calls {
		env := xenv.New(st, blockCtx, &xenv.TransactionContext{Origin: call.caller}, clock, builtin.Resolve)
		if err := call.fn(env); err != nil {
			return myrd.Bytes32{}, nil, errors.Wrap(err, call.method)
		}
		events = append(events, env.Events()...)
	}

	stage := st.Stage()
	id, err = stage.Commit()
	if err != nil {
		return myrd.Bytes32{}, nil, errors.Wrap(err, "commit state")
	}
	return id, events, nil
}
