// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime executes transitions one at a time against the committed
// state. A transition either commits all of its writes or none of them.
package runtime

import (
	"context"
	"encoding/binary"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"github.com/tetu-io/myrd-contracts/builtin"
	"github.com/tetu-io/myrd-contracts/builtin/params"
	"github.com/tetu-io/myrd-contracts/builtin/reverts"
	"github.com/tetu-io/myrd-contracts/epoch"
	"github.com/tetu-io/myrd-contracts/log"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/state"
	"github.com/tetu-io/myrd-contracts/xenv"
)

var logger = log.WithContext("pkg", "runtime")

// Receipt is the outcome of one transition.
type Receipt struct {
	ID        myrd.Bytes32 `json:"id"`
	Method    string       `json:"method"`
	Caller    myrd.Address `json:"caller"`
	Number    uint32       `json:"number"`
	Timestamp uint64       `json:"timestamp"`
	Reverted  bool         `json:"reverted"`
	Reason    string       `json:"reason,omitempty"`
	Events    []xenv.Event `json:"events"`
	StateHash myrd.Bytes32 `json:"stateHash"`
}

// Transition is the body of a state transition.
type Transition func(env *xenv.Environment) error

// Runtime is to support transition execution.
type Runtime struct {
	mu       sync.RWMutex
	db       *state.DB
	clock    clockwork.Clock
	epoch    epoch.Clock
	resolver xenv.Resolver
	number   uint32
	lastTime uint64
}

// New create a Runtime over db. Block time is read from clock; the epoch
// length is the one stored at genesis, or one week when absent.
func New(db *state.DB, clock clockwork.Clock) (*Runtime, error) {
	st := state.New(db)
	duration, err := builtin.Params.Native(st).Get(params.KeyEpochDuration)
	if err != nil {
		return nil, errors.Wrap(err, "load epoch duration")
	}
	ec := epoch.Weekly
	if !duration.IsZero() {
		ec = epoch.New(duration.Uint64())
	}
	return &Runtime{
		db:       db,
		clock:    clock,
		epoch:    ec,
		resolver: builtin.Resolve,
	}, nil
}

// Epoch returns the epoch clock of the chain.
func (rt *Runtime) Epoch() epoch.Clock { return rt.epoch }

// Now returns the current block time.
func (rt *Runtime) Now() uint64 {
	return uint64(rt.clock.Now().Unix())
}

// State returns a fresh view of the committed state.
func (rt *Runtime) State() *state.State {
	return state.New(rt.db)
}

// View runs fn against the committed state at the current time. Writes are discarded.
// Views run concurrently with each other but never with a transition.
func (rt *Runtime) View(caller myrd.Address, fn Transition) error {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	st := state.New(rt.db)
	return fn(rt.newEnv(st, caller, rt.number, rt.Now(), myrd.Bytes32{}))
}

func (rt *Runtime) newEnv(st *state.State, caller myrd.Address, number uint32, now uint64, id myrd.Bytes32) *xenv.Environment {
	return xenv.New(
		st,
		&xenv.BlockContext{Number: number, Time: now},
		&xenv.TransactionContext{ID: id, Origin: caller},
		rt.epoch,
		rt.resolver,
	)
}

func transitionID(number uint32, now uint64, method string, caller myrd.Address) myrd.Bytes32 {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], number)
	binary.BigEndian.PutUint64(b[4:], now)
	return myrd.Blake2b(b[:], []byte(method), caller.Bytes())
}

// Execute runs fn as one transition made by caller. A reverted transition
// yields a receipt with Reverted set and no state change. Any other failure
// is returned as error, also without state change.
func (rt *Runtime) Execute(ctx context.Context, method string, caller myrd.Address, fn Transition) (*Receipt, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	now := max(rt.Now(), rt.lastTime)
	number := rt.number + 1
	receipt := &Receipt{
		ID:        transitionID(number, now, method, caller),
		Method:    method,
		Caller:    caller,
		Number:    number,
		Timestamp: now,
	}

	st := state.New(rt.db)
	checkpoint := st.NewCheckpoint()
	env := rt.newEnv(st, caller, number, now, receipt.ID)

	if err := fn(env); err != nil {
		st.RevertTo(checkpoint)
		if reason, ok := reverts.Reason(err); ok {
			receipt.Reverted = true
			receipt.Reason = reason
			receipt.Events = []xenv.Event{}
			observe(method, outcomeRevert, start)
			logger.Info("transition reverted", "method", method, "caller", caller, "reason", reason)
			return receipt, nil
		}
		observe(method, outcomeError, start)
		logger.Warn("transition failed", "method", method, "caller", caller, "err", err)
		return nil, errors.Wrap(err, method)
	}

	stage := st.Stage()
	hash, err := stage.Commit()
	if err != nil {
		observe(method, outcomeError, start)
		return nil, errors.Wrap(err, "commit")
	}
	rt.number = number
	rt.lastTime = now

	receipt.Events = env.Events()
	if receipt.Events == nil {
		receipt.Events = []xenv.Event{}
	}
	receipt.StateHash = hash
	observe(method, outcomeOK, start)
	logger.Debug("transition committed", "method", method, "caller", caller, "number", number, "slots", stage.Len())
	return receipt, nil
}

// Number returns the number of committed transitions.
func (rt *Runtime) Number() uint32 {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.number
}
