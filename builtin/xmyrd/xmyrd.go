// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package xmyrd implements the staked position token. Base tokens are
// locked 1:1 into a non-transferable position; leaving it costs a penalty
// that accumulates as pending rebase and is harvested by the gauge once
// per epoch.
package xmyrd

import (
	"github.com/holiman/uint256"

	"github.com/tetu-io/myrd-contracts/builtin/controller"
	"github.com/tetu-io/myrd-contracts/builtin/reverts"
	"github.com/tetu-io/myrd-contracts/builtin/solidity"
	"github.com/tetu-io/myrd-contracts/builtin/token"
	"github.com/tetu-io/myrd-contracts/log"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/state"
	"github.com/tetu-io/myrd-contracts/xenv"
)

var (
	slotController            = solidity.SlotOf("controller")
	slotMyrd                  = solidity.SlotOf("myrd")
	slotGauge                 = solidity.SlotOf("gauge")
	slotTotalSupply           = solidity.SlotOf("total-supply")
	slotBalances              = solidity.SlotOf("balances")
	slotAllowances            = solidity.SlotOf("allowances")
	slotPendingRebase         = solidity.SlotOf("pending-rebase")
	slotLastDistributedPeriod = solidity.SlotOf("last-distributed-period")
	slotExemptFrom            = solidity.SlotOf("exempt-from")
	slotExemptTo              = solidity.SlotOf("exempt-to")
	slotVests                 = solidity.SlotOf("vests")
)

var (
	ErrIncorrectZeroArgument = reverts.New("IncorrectZeroArgument")
	ErrNoVest                = reverts.New("NO_VEST")
	ErrNotGauge              = reverts.New("NotGauge")
	ErrNotWhitelisted        = reverts.New("NOT_WHITELISTED")
	ErrIncorrectArrayLength  = reverts.New("IncorrectArrayLength")
	ErrNotGovernance         = reverts.New("NotGovernance")
	ErrInvalidInitialization = reverts.New("InvalidInitialization")
	ErrInsufficientBalance   = token.ErrInsufficientBalance
	ErrInsufficientAllowance = token.ErrInsufficientAllowance
)

var logger = log.WithContext("pkg", "xmyrd")

func SetLogger(l log.Logger) {
	logger = l
}

// BalanceObserver is checkpointed after every position balance change,
// before any further reward math relies on the new balance.
type BalanceObserver interface {
	HandleBalanceChange(env *xenv.Environment, account myrd.Address) error
}

// XMyrd implements native methods of the `XMyrd` contract.
type XMyrd struct {
	addr                  myrd.Address
	sctx                  *solidity.Context
	controller            *solidity.Address
	myrd                  *solidity.Address
	gauge                 *solidity.Address
	totalSupply           *solidity.Uint256
	balances              *solidity.Mapping[myrd.Address, *uint256.Int]
	pendingRebase         *solidity.Uint256
	lastDistributedPeriod *solidity.Uint256
	exemptFrom            *solidity.Mapping[myrd.Address, bool]
	exemptTo              *solidity.Mapping[myrd.Address, bool]
}

var _ token.ERC20 = (*XMyrd)(nil)

// New create a new instance.
func New(addr myrd.Address, state *state.State) *XMyrd {
	sctx := solidity.NewContext(addr, state)
	return &XMyrd{
		addr:                  addr,
		sctx:                  sctx,
		controller:            solidity.NewAddress(sctx, slotController),
		myrd:                  solidity.NewAddress(sctx, slotMyrd),
		gauge:                 solidity.NewAddress(sctx, slotGauge),
		totalSupply:           solidity.NewUint256(sctx, slotTotalSupply),
		balances:              solidity.NewMapping[myrd.Address, *uint256.Int](sctx, slotBalances),
		pendingRebase:         solidity.NewUint256(sctx, slotPendingRebase),
		lastDistributedPeriod: solidity.NewUint256(sctx, slotLastDistributedPeriod),
		exemptFrom:            solidity.NewMapping[myrd.Address, bool](sctx, slotExemptFrom),
		exemptTo:              solidity.NewMapping[myrd.Address, bool](sctx, slotExemptTo),
	}
}

func (x *XMyrd) Address() myrd.Address { return x.addr }

// Initialize binds the controller, base token and gauge once.
func (x *XMyrd) Initialize(controllerAddr, myrdAddr, gaugeAddr myrd.Address) error {
	cur, err := x.controller.Get()
	if err != nil {
		return err
	}
	if !cur.IsZero() {
		return ErrInvalidInitialization
	}
	if controllerAddr.IsZero() || myrdAddr.IsZero() || gaugeAddr.IsZero() {
		return ErrIncorrectZeroArgument
	}
	x.controller.Set(controllerAddr)
	x.myrd.Set(myrdAddr)
	x.gauge.Set(gaugeAddr)
	return nil
}

//
// Getters - no state change
//

func (x *XMyrd) Controller() (myrd.Address, error) { return x.controller.Get() }
func (x *XMyrd) Myrd() (myrd.Address, error)       { return x.myrd.Get() }
func (x *XMyrd) Gauge() (myrd.Address, error)      { return x.gauge.Get() }

func (x *XMyrd) TotalSupply() (*uint256.Int, error) {
	return x.totalSupply.Get()
}

func (x *XMyrd) BalanceOf(account myrd.Address) (*uint256.Int, error) {
	bal, err := x.balances.Get(account)
	if err != nil {
		return nil, err
	}
	if bal == nil {
		return new(uint256.Int), nil
	}
	return bal, nil
}

// PendingRebase is the penalty value waiting to be harvested by the gauge.
func (x *XMyrd) PendingRebase() (*uint256.Int, error) {
	return x.pendingRebase.Get()
}

// LastDistributedPeriod is the epoch of the last harvest.
func (x *XMyrd) LastDistributedPeriod() (uint64, error) {
	p, err := x.lastDistributedPeriod.Get()
	if err != nil {
		return 0, err
	}
	return p.Uint64(), nil
}

func (x *XMyrd) IsExemptFrom(account myrd.Address) (bool, error) {
	return x.exemptFrom.Get(account)
}

func (x *XMyrd) IsExemptTo(account myrd.Address) (bool, error) {
	return x.exemptTo.Get(account)
}

//
// Collaborators
//

func (x *XMyrd) baseToken(env *xenv.Environment) (token.ERC20, error) {
	addr, err := x.myrd.Get()
	if err != nil {
		return nil, err
	}
	return xenv.Lookup[token.ERC20](env, addr)
}

// notify checkpoints account on the gauge, acting as this contract.
func (x *XMyrd) notify(env *xenv.Environment, account myrd.Address) error {
	addr, err := x.gauge.Get()
	if err != nil {
		return err
	}
	observer, err := xenv.Lookup[BalanceObserver](env, addr)
	if err != nil {
		return err
	}
	return observer.HandleBalanceChange(env.CallFrom(x.addr), account)
}

func (x *XMyrd) onlyGovernance(env *xenv.Environment) error {
	addr, err := x.controller.Get()
	if err != nil {
		return err
	}
	ac, err := xenv.Lookup[controller.AccessControl](env, addr)
	if err != nil {
		return err
	}
	ok, err := ac.IsGovernance(env.Caller())
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotGovernance
	}
	return nil
}
