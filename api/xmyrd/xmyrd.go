// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xmyrd

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/tetu-io/myrd-contracts/api/utils"
	"github.com/tetu-io/myrd-contracts/builtin"
	"github.com/tetu-io/myrd-contracts/builtin/xmyrd"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/xenv"
)

type XMyrd struct {
	rt utils.Runtime
}

func New(rt utils.Runtime) *XMyrd {
	return &XMyrd{rt}
}

func (x *XMyrd) handleGetSummary(w http.ResponseWriter, _ *http.Request) error {
	var s Summary
	err := x.rt.View(myrd.Address{}, func(env *xenv.Environment) (err error) {
		c := builtin.XMyrd.Native(env.State())
		s.Address = c.Address()
		if s.Controller, err = c.Controller(); err != nil {
			return err
		}
		if s.Myrd, err = c.Myrd(); err != nil {
			return err
		}
		if s.Gauge, err = c.Gauge(); err != nil {
			return err
		}
		supply, err := c.TotalSupply()
		if err != nil {
			return err
		}
		pending, err := c.PendingRebase()
		if err != nil {
			return err
		}
		if s.LastDistributedPeriod, err = c.LastDistributedPeriod(); err != nil {
			return err
		}
		s.TotalSupply = utils.NewAmount(supply)
		s.PendingRebase = utils.NewAmount(pending)
		s.CurrentPeriod = env.CurrentPeriod()
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, s)
}

func (x *XMyrd) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var acc Account
	err = x.rt.View(myrd.Address{}, func(env *xenv.Environment) (err error) {
		c := builtin.XMyrd.Native(env.State())
		bal, err := c.BalanceOf(addr)
		if err != nil {
			return err
		}
		acc.Balance = utils.NewAmount(bal)
		if acc.Vests, err = c.UsersTotalVests(addr); err != nil {
			return err
		}
		if acc.ExemptFrom, err = c.IsExemptFrom(addr); err != nil {
			return err
		}
		acc.ExemptTo, err = c.IsExemptTo(addr)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, acc)
}

func (x *XMyrd) handleGetVest(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	index, err := strconv.ParseUint(mux.Vars(req)["index"], 10, 64)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "index"))
	}
	var v Vest
	err = x.rt.View(myrd.Address{}, func(env *xenv.Environment) error {
		vest, err := builtin.XMyrd.Native(env.State()).VestInfo(addr, index)
		if err != nil {
			return err
		}
		v = Vest{
			Amount: utils.NewAmount(vest.Amount),
			Start:  vest.Start,
			MaxEnd: vest.MaxEnd,
			Exited: vest.Amount.IsZero(),
			Payout: new(utils.Amount),
		}
		if !v.Exited && env.BlockTime()-vest.Start >= myrd.MinVest {
			payout, err := xmyrd.VestPayout(vest.Amount, env.BlockTime()-vest.Start)
			if err != nil {
				return err
			}
			v.Payout = utils.NewAmount(payout)
		}
		return nil
	})
	if errors.Is(err, xmyrd.ErrNoVest) {
		return utils.NotFound(err)
	}
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, v)
}

func (x *XMyrd) handleEnter(w http.ResponseWriter, req *http.Request) error {
	var body EnterRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := body.Validate(); err != nil {
		return err
	}
	recipient := body.Caller
	if body.Recipient != nil {
		recipient = *body.Recipient
	}
	return utils.Transact(w, req, x.rt, "xmyrd.enter", body.Caller, func(env *xenv.Environment) error {
		return builtin.XMyrd.Native(env.State()).EnterFor(env, body.Amount.Int(), recipient)
	})
}

func (x *XMyrd) handleExit(w http.ResponseWriter, req *http.Request) error {
	var body AmountRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := body.Validate(); err != nil {
		return err
	}
	return utils.Transact(w, req, x.rt, "xmyrd.exit", body.Caller, func(env *xenv.Environment) error {
		return builtin.XMyrd.Native(env.State()).Exit(env, body.Amount.Int())
	})
}

func (x *XMyrd) handleCreateVest(w http.ResponseWriter, req *http.Request) error {
	var body AmountRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := body.Validate(); err != nil {
		return err
	}
	return utils.Transact(w, req, x.rt, "xmyrd.createVest", body.Caller, func(env *xenv.Environment) error {
		return builtin.XMyrd.Native(env.State()).CreateVest(env, body.Amount.Int())
	})
}

func (x *XMyrd) handleExitVest(w http.ResponseWriter, req *http.Request) error {
	var body ExitVestRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := body.Validate(); err != nil {
		return err
	}
	return utils.Transact(w, req, x.rt, "xmyrd.exitVest", body.Caller, func(env *xenv.Environment) error {
		return builtin.XMyrd.Native(env.State()).ExitVest(env, body.Index)
	})
}

func (x *XMyrd) handleTransfer(w http.ResponseWriter, req *http.Request) error {
	var body TransferRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := body.Validate(); err != nil {
		return err
	}
	return utils.Transact(w, req, x.rt, "xmyrd.transfer", body.Caller, func(env *xenv.Environment) error {
		return builtin.XMyrd.Native(env.State()).Transfer(env, body.To, body.Amount.Int())
	})
}

func (x *XMyrd) handleSetExemption(w http.ResponseWriter, req *http.Request) error {
	var body ExemptionRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := body.Validate(); err != nil {
		return err
	}
	if body.Direction != "from" && body.Direction != "to" {
		return utils.BadRequest(errors.New("direction: must be from or to"))
	}
	return utils.Transact(w, req, x.rt, "xmyrd.setExemption", body.Caller, func(env *xenv.Environment) error {
		c := builtin.XMyrd.Native(env.State())
		if body.Direction == "from" {
			return c.SetExemptionFrom(env, body.Accounts, body.Exempt)
		}
		return c.SetExemptionTo(env, body.Accounts, body.Exempt)
	})
}

func (x *XMyrd) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("xmyrd_get_summary").
		HandlerFunc(utils.WrapHandlerFunc(x.handleGetSummary))
	sub.Path("/accounts/{address}").
		Methods(http.MethodGet).
		Name("xmyrd_get_account").
		HandlerFunc(utils.WrapHandlerFunc(x.handleGetAccount))
	sub.Path("/accounts/{address}/vests/{index}").
		Methods(http.MethodGet).
		Name("xmyrd_get_vest").
		HandlerFunc(utils.WrapHandlerFunc(x.handleGetVest))
	sub.Path("/enter").
		Methods(http.MethodPost).
		Name("xmyrd_enter").
		HandlerFunc(utils.WrapHandlerFunc(x.handleEnter))
	sub.Path("/exit").
		Methods(http.MethodPost).
		Name("xmyrd_exit").
		HandlerFunc(utils.WrapHandlerFunc(x.handleExit))
	sub.Path("/vest").
		Methods(http.MethodPost).
		Name("xmyrd_vest").
		HandlerFunc(utils.WrapHandlerFunc(x.handleCreateVest))
	sub.Path("/exit-vest").
		Methods(http.MethodPost).
		Name("xmyrd_exit_vest").
		HandlerFunc(utils.WrapHandlerFunc(x.handleExitVest))
	sub.Path("/transfer").
		Methods(http.MethodPost).
		Name("xmyrd_transfer").
		HandlerFunc(utils.WrapHandlerFunc(x.handleTransfer))
	sub.Path("/exemptions").
		Methods(http.MethodPost).
		Name("xmyrd_set_exemption").
		HandlerFunc(utils.WrapHandlerFunc(x.handleSetExemption))
}
