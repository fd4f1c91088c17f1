// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin binds the native contracts to their fixed addresses and
// resolves an address to the contract deployed there.
package builtin

import (
	"github.com/tetu-io/myrd-contracts/builtin/controller"
	"github.com/tetu-io/myrd-contracts/builtin/gauge"
	"github.com/tetu-io/myrd-contracts/builtin/params"
	"github.com/tetu-io/myrd-contracts/builtin/token"
	"github.com/tetu-io/myrd-contracts/builtin/xmyrd"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/state"
	"github.com/tetu-io/myrd-contracts/xenv"
)

// Builtin contracts binding.
var (
	Params     = &paramsContract{newContract("Params")}
	Controller = &controllerContract{newContract("Controller")}
	Myrd       = &tokenContract{newContract("MYRD")}
	XMyrd      = &xmyrdContract{newContract("XMyrd")}
	Gauge      = &gaugeContract{newContract("MultiGauge")}
)

var (
	_ xmyrd.BalanceObserver = (*gauge.MultiGauge)(nil)
	_ gauge.StakingToken    = (*xmyrd.XMyrd)(nil)
	_ token.ERC20           = (*xmyrd.XMyrd)(nil)
)

type contract struct {
	name    string
	Address myrd.Address
}

func newContract(name string) *contract {
	return &contract{name, myrd.BytesToAddress([]byte(name))}
}

func (c *contract) Name() string { return c.name }

type (
	paramsContract     struct{ *contract }
	controllerContract struct{ *contract }
	tokenContract      struct{ *contract }
	xmyrdContract      struct{ *contract }
	gaugeContract      struct{ *contract }
)

func (p *paramsContract) Native(state *state.State) *params.Params {
	return params.New(p.Address, state)
}

func (c *controllerContract) Native(state *state.State) *controller.Controller {
	return controller.New(c.Address, state)
}

func (t *tokenContract) Native(state *state.State) *token.Token {
	return token.New(t.Address, state)
}

func (x *xmyrdContract) Native(state *state.State) *xmyrd.XMyrd {
	return xmyrd.New(x.Address, state)
}

func (g *gaugeContract) Native(state *state.State) *gauge.MultiGauge {
	return gauge.New(g.Address, state)
}

// Token binds the token ledger at addr.
func Token(addr myrd.Address, state *state.State) *token.Token {
	return token.New(addr, state)
}

// Resolve is the xenv.Resolver of the native contracts. Besides the fixed
// contracts it resolves every address registered as a token in Params.
func Resolve(addr myrd.Address, st *state.State) (any, bool) {
	switch addr {
	case Controller.Address:
		return Controller.Native(st), true
	case Myrd.Address:
		return Myrd.Native(st), true
	case XMyrd.Address:
		return XMyrd.Native(st), true
	case Gauge.Address:
		return Gauge.Native(st), true
	}
	ok, err := Params.Native(st).IsToken(addr)
	if err != nil || !ok {
		return nil, false
	}
	return Token(addr, st), true
}

var _ xenv.Resolver = Resolve
