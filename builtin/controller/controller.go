// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package controller holds the governance and deployer roles checked by
// the staking and reward contracts.
package controller

import (
	"github.com/tetu-io/myrd-contracts/builtin/reverts"
	"github.com/tetu-io/myrd-contracts/builtin/solidity"
	"github.com/tetu-io/myrd-contracts/log"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/state"
	"github.com/tetu-io/myrd-contracts/xenv"
)

var (
	slotGovernance = solidity.SlotOf("governance")
	slotDeployers  = solidity.SlotOf("deployers")
)

var (
	ErrNotGovernance         = reverts.New("NotGovernance")
	ErrInvalidInitialization = reverts.New("InvalidInitialization")
	ErrZeroAddress           = reverts.New("ZeroAddress")
)

var logger = log.WithContext("pkg", "controller")

// AccessControl is the role check consumed by other contracts.
type AccessControl interface {
	IsGovernance(addr myrd.Address) (bool, error)
	IsDeployer(addr myrd.Address) (bool, error)
}

// Controller implements native methods of the `Controller` contract.
type Controller struct {
	addr       myrd.Address
	governance *solidity.Address
	deployers  *solidity.Mapping[myrd.Address, bool]
}

var _ AccessControl = (*Controller)(nil)

func New(addr myrd.Address, state *state.State) *Controller {
	sctx := solidity.NewContext(addr, state)
	return &Controller{
		addr:       addr,
		governance: solidity.NewAddress(sctx, slotGovernance),
		deployers:  solidity.NewMapping[myrd.Address, bool](sctx, slotDeployers),
	}
}

func (c *Controller) Address() myrd.Address { return c.addr }

// Init sets the initial governance.
func (c *Controller) Init(governance myrd.Address) error {
	cur, err := c.governance.Get()
	if err != nil {
		return err
	}
	if !cur.IsZero() {
		return ErrInvalidInitialization
	}
	if governance.IsZero() {
		return ErrZeroAddress
	}
	c.governance.Set(governance)
	return nil
}

func (c *Controller) Governance() (myrd.Address, error) {
	return c.governance.Get()
}

func (c *Controller) IsGovernance(addr myrd.Address) (bool, error) {
	gov, err := c.governance.Get()
	if err != nil {
		return false, err
	}
	return !gov.IsZero() && gov == addr, nil
}

// IsDeployer reports whether addr is a deployer. Governance is always a deployer.
func (c *Controller) IsDeployer(addr myrd.Address) (bool, error) {
	if ok, err := c.IsGovernance(addr); err != nil || ok {
		return ok, err
	}
	return c.deployers.Get(addr)
}

func (c *Controller) onlyGovernance(env *xenv.Environment) error {
	ok, err := c.IsGovernance(env.Caller())
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotGovernance
	}
	return nil
}

// ChangeDeployer adds or removes a deployer.
func (c *Controller) ChangeDeployer(env *xenv.Environment, addr myrd.Address, remove bool) error {
	if err := c.onlyGovernance(env); err != nil {
		return err
	}
	if addr.IsZero() {
		return ErrZeroAddress
	}
	if err := c.deployers.Set(addr, !remove); err != nil {
		return err
	}
	env.Log(c.addr, "DeployerChanged", "deployer", addr, "removed", remove)
	logger.Info("deployer changed", "deployer", addr, "removed", remove)
	return nil
}

// ChangeGovernance hands governance over to next.
func (c *Controller) ChangeGovernance(env *xenv.Environment, next myrd.Address) error {
	if err := c.onlyGovernance(env); err != nil {
		return err
	}
	if next.IsZero() {
		return ErrZeroAddress
	}
	c.governance.Set(next)
	env.Log(c.addr, "GovernanceChanged", "governance", next)
	logger.Info("governance changed", "governance", next)
	return nil
}
