// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gauge

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/tetu-io/myrd-contracts/api/utils"
	"github.com/tetu-io/myrd-contracts/builtin"
	"github.com/tetu-io/myrd-contracts/builtin/gauge"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/xenv"
)

type Gauge struct {
	rt utils.Runtime
}

func New(rt utils.Runtime) *Gauge {
	return &Gauge{rt}
}

// stakingVar parses the staking token path variable. Only the bound staking token is served.
func stakingVar(req *http.Request, g *gauge.MultiGauge) (myrd.Address, error) {
	st, err := utils.AddressVar(req, "staking")
	if err != nil {
		return myrd.Address{}, err
	}
	bound, err := g.StakingToken()
	if err != nil {
		return myrd.Address{}, err
	}
	if bound.IsZero() || bound != st {
		return myrd.Address{}, utils.NotFound(errors.New("staking token not found"))
	}
	return st, nil
}

func (g *Gauge) handleGetSummary(w http.ResponseWriter, _ *http.Request) error {
	var s Summary
	err := g.rt.View(myrd.Address{}, func(env *xenv.Environment) (err error) {
		c := builtin.Gauge.Native(env.State())
		s.Address = c.Address()
		if s.Controller, err = c.Controller(); err != nil {
			return err
		}
		if s.StakingToken, err = c.StakingToken(); err != nil {
			return err
		}
		if s.DefaultRewardToken, err = c.DefaultRewardToken(); err != nil {
			return err
		}
		if s.ActivePeriod, err = c.ActivePeriod(); err != nil {
			return err
		}
		s.Period = c.GetPeriod(env)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, s)
}

func (g *Gauge) handleGetStaking(w http.ResponseWriter, req *http.Request) error {
	var s Staking
	err := g.rt.View(myrd.Address{}, func(env *xenv.Environment) error {
		c := builtin.Gauge.Native(env.State())
		st, err := stakingVar(req, c)
		if err != nil {
			return err
		}
		supply, err := c.TotalSupply(st)
		if err != nil {
			return err
		}
		derived, err := c.DerivedSupply(st)
		if err != nil {
			return err
		}
		if s.RewardTokens, err = c.RewardTokens(st); err != nil {
			return err
		}
		if s.RewardTokens == nil {
			s.RewardTokens = []myrd.Address{}
		}
		s.TotalSupply = utils.NewAmount(supply)
		s.DerivedSupply = utils.NewAmount(derived)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, s)
}

func (g *Gauge) handleGetReward(w http.ResponseWriter, req *http.Request) error {
	rt, err := utils.AddressVar(req, "token")
	if err != nil {
		return err
	}
	r := Reward{Token: rt}
	err = g.rt.View(myrd.Address{}, func(env *xenv.Environment) error {
		c := builtin.Gauge.Native(env.State())
		st, err := stakingVar(req, c)
		if err != nil {
			return err
		}
		pool, err := c.Pool(st, rt)
		if err != nil {
			return err
		}
		rpt, err := c.RewardPerToken(env, st, rt)
		if err != nil {
			return err
		}
		left, err := c.Left(env, st, rt)
		if err != nil {
			return err
		}
		if r.LastTimeRewardApplicable, err = c.LastTimeRewardApplicable(env, st, rt); err != nil {
			return err
		}
		r.RewardRate = utils.NewAmount(pool.RewardRate)
		r.PeriodFinish = pool.PeriodFinish
		r.LastUpdateTime = pool.LastUpdateTime
		r.RewardPerToken = utils.NewAmount(rpt)
		r.Left = utils.NewAmount(left)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, r)
}

func (g *Gauge) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	acc := Account{Earned: []Earned{}}
	err = g.rt.View(myrd.Address{}, func(env *xenv.Environment) error {
		c := builtin.Gauge.Native(env.State())
		st, err := stakingVar(req, c)
		if err != nil {
			return err
		}
		bal, err := c.BalanceOf(st, addr)
		if err != nil {
			return err
		}
		derived, err := c.DerivedBalance(st, addr)
		if err != nil {
			return err
		}
		acc.Balance = utils.NewAmount(bal)
		acc.DerivedBalance = utils.NewAmount(derived)

		def, err := c.DefaultRewardToken()
		if err != nil {
			return err
		}
		tokens, err := c.RewardTokens(st)
		if err != nil {
			return err
		}
		for _, rt := range append([]myrd.Address{def}, tokens...) {
			earned, err := c.Earned(env, st, rt, addr)
			if err != nil {
				return err
			}
			acc.Earned = append(acc.Earned, Earned{rt, utils.NewAmount(earned)})
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, acc)
}

func (g *Gauge) handleUpdatePeriod(w http.ResponseWriter, req *http.Request) error {
	var body UpdatePeriodRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := body.Validate(); err != nil {
		return err
	}
	return utils.Transact(w, req, g.rt, "gauge.updatePeriod", body.Caller, func(env *xenv.Environment) error {
		return builtin.Gauge.Native(env.State()).UpdatePeriod(env, body.Amount.Int())
	})
}

func (g *Gauge) handleNotify(w http.ResponseWriter, req *http.Request) error {
	var body NotifyRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := body.Validate(); err != nil {
		return err
	}
	return utils.Transact(w, req, g.rt, "gauge.notifyRewardAmount", body.Caller, func(env *xenv.Environment) error {
		return builtin.Gauge.Native(env.State()).NotifyRewardAmount(env, body.Token, body.Amount.Int())
	})
}

func (g *Gauge) handleClaim(w http.ResponseWriter, req *http.Request) error {
	var body ClaimRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := body.Validate(); err != nil {
		return err
	}
	account := body.Caller
	if body.Account != nil {
		account = *body.Account
	}
	return utils.Transact(w, req, g.rt, "gauge.getReward", body.Caller, func(env *xenv.Environment) error {
		c := builtin.Gauge.Native(env.State())
		if len(body.Tokens) == 0 {
			return c.GetAllRewards(env, account)
		}
		return c.GetReward(env, account, body.Tokens)
	})
}

func (g *Gauge) handleRewardToken(w http.ResponseWriter, req *http.Request) error {
	var body RewardTokenRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := body.Validate(); err != nil {
		return err
	}
	method := "gauge.registerRewardToken"
	if body.Remove {
		method = "gauge.removeRewardToken"
	}
	return utils.Transact(w, req, g.rt, method, body.Caller, func(env *xenv.Environment) error {
		c := builtin.Gauge.Native(env.State())
		st, err := c.StakingToken()
		if err != nil {
			return err
		}
		if body.Remove {
			return c.RemoveRewardToken(env, st, body.Token)
		}
		return c.RegisterRewardToken(env, st, body.Token)
	})
}

func (g *Gauge) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("gauge_get_summary").
		HandlerFunc(utils.WrapHandlerFunc(g.handleGetSummary))
	sub.Path("/update-period").
		Methods(http.MethodPost).
		Name("gauge_update_period").
		HandlerFunc(utils.WrapHandlerFunc(g.handleUpdatePeriod))
	sub.Path("/notify").
		Methods(http.MethodPost).
		Name("gauge_notify").
		HandlerFunc(utils.WrapHandlerFunc(g.handleNotify))
	sub.Path("/claim").
		Methods(http.MethodPost).
		Name("gauge_claim").
		HandlerFunc(utils.WrapHandlerFunc(g.handleClaim))
	sub.Path("/reward-tokens").
		Methods(http.MethodPost).
		Name("gauge_reward_tokens").
		HandlerFunc(utils.WrapHandlerFunc(g.handleRewardToken))
	sub.Path("/{staking}").
		Methods(http.MethodGet).
		Name("gauge_get_staking").
		HandlerFunc(utils.WrapHandlerFunc(g.handleGetStaking))
	sub.Path("/{staking}/rewards/{token}").
		Methods(http.MethodGet).
		Name("gauge_get_reward").
		HandlerFunc(utils.WrapHandlerFunc(g.handleGetReward))
	sub.Path("/{staking}/accounts/{address}").
		Methods(http.MethodGet).
		Name("gauge_get_account").
		HandlerFunc(utils.WrapHandlerFunc(g.handleGetAccount))
}
