// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/tetu-io/myrd-contracts/api/utils"
	"github.com/tetu-io/myrd-contracts/builtin/token"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/xenv"
)

type Token struct {
	Address     myrd.Address  `json:"address"`
	Name        string        `json:"name,omitempty"`
	Symbol      string        `json:"symbol,omitempty"`
	Decimals    uint8         `json:"decimals"`
	TotalSupply *utils.Amount `json:"totalSupply"`
}

type Balance struct {
	Balance *utils.Amount `json:"balance"`
}

type Allowance struct {
	Allowance *utils.Amount `json:"allowance"`
}

// TransferRequest moves amount to To. ApproveRequest uses Spender instead.
type TransferRequest struct {
	utils.CallRequest
	To     myrd.Address  `json:"to"`
	Amount *utils.Amount `json:"amount"`
}

type ApproveRequest struct {
	utils.CallRequest
	Spender myrd.Address  `json:"spender"`
	Amount  *utils.Amount `json:"amount"`
}

// ledger is what a token address must implement to be served.
type ledger interface {
	token.ERC20
	TotalSupply() (*uint256.Int, error)
	Allowance(owner, spender myrd.Address) (*uint256.Int, error)
}

type Tokens struct {
	rt utils.Runtime
}

func New(rt utils.Runtime) *Tokens {
	return &Tokens{rt}
}

func lookup(env *xenv.Environment, req *http.Request) (ledger, error) {
	addr, err := utils.AddressVar(req, "token")
	if err != nil {
		return nil, err
	}
	l, err := xenv.Lookup[ledger](env, addr)
	if err != nil {
		return nil, utils.NotFound(errors.WithMessage(err, "token"))
	}
	return l, nil
}

func (t *Tokens) handleGetToken(w http.ResponseWriter, req *http.Request) error {
	var tok Token
	err := t.rt.View(myrd.Address{}, func(env *xenv.Environment) error {
		l, err := lookup(env, req)
		if err != nil {
			return err
		}
		supply, err := l.TotalSupply()
		if err != nil {
			return err
		}
		tok.Address = l.Address()
		tok.TotalSupply = utils.NewAmount(supply)
		if native, ok := l.(*token.Token); ok {
			meta, err := native.Metadata()
			if err != nil {
				return err
			}
			tok.Name, tok.Symbol, tok.Decimals = meta.Name, meta.Symbol, meta.Decimals
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, tok)
}

func (t *Tokens) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var b Balance
	err = t.rt.View(myrd.Address{}, func(env *xenv.Environment) error {
		l, err := lookup(env, req)
		if err != nil {
			return err
		}
		bal, err := l.BalanceOf(owner)
		if err != nil {
			return err
		}
		b.Balance = utils.NewAmount(bal)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, b)
}

func (t *Tokens) handleGetAllowance(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	spender, err := utils.AddressVar(req, "spender")
	if err != nil {
		return err
	}
	var a Allowance
	err = t.rt.View(myrd.Address{}, func(env *xenv.Environment) error {
		l, err := lookup(env, req)
		if err != nil {
			return err
		}
		v, err := l.Allowance(owner, spender)
		if err != nil {
			return err
		}
		a.Allowance = utils.NewAmount(v)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, a)
}

func (t *Tokens) handleApprove(w http.ResponseWriter, req *http.Request) error {
	var body ApproveRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := body.Validate(); err != nil {
		return err
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("amount: required"))
	}
	return utils.Transact(w, req, t.rt, "token.approve", body.Caller, func(env *xenv.Environment) error {
		l, err := lookup(env, req)
		if err != nil {
			return err
		}
		return l.Approve(env, body.Spender, body.Amount.Int())
	})
}

func (t *Tokens) handleTransfer(w http.ResponseWriter, req *http.Request) error {
	var body TransferRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := body.Validate(); err != nil {
		return err
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("amount: required"))
	}
	return utils.Transact(w, req, t.rt, "token.transfer", body.Caller, func(env *xenv.Environment) error {
		l, err := lookup(env, req)
		if err != nil {
			return err
		}
		return l.Transfer(env, body.To, body.Amount.Int())
	})
}

func (t *Tokens) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{token}").
		Methods(http.MethodGet).
		Name("tokens_get_token").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetToken))
	sub.Path("/{token}/balances/{address}").
		Methods(http.MethodGet).
		Name("tokens_get_balance").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetBalance))
	sub.Path("/{token}/allowances/{owner}/{spender}").
		Methods(http.MethodGet).
		Name("tokens_get_allowance").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetAllowance))
	sub.Path("/{token}/approve").
		Methods(http.MethodPost).
		Name("tokens_approve").
		HandlerFunc(utils.WrapHandlerFunc(t.handleApprove))
	sub.Path("/{token}/transfer").
		Methods(http.MethodPost).
		Name("tokens_transfer").
		HandlerFunc(utils.WrapHandlerFunc(t.handleTransfer))
}
