// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xmyrd

import (
	"github.com/pkg/errors"

	"github.com/tetu-io/myrd-contracts/api/utils"
	"github.com/tetu-io/myrd-contracts/myrd"
)

type Summary struct {
	Address               myrd.Address  `json:"address"`
	Controller            myrd.Address  `json:"controller"`
	Myrd                  myrd.Address  `json:"myrd"`
	Gauge                 myrd.Address  `json:"gauge"`
	TotalSupply           *utils.Amount `json:"totalSupply"`
	PendingRebase         *utils.Amount `json:"pendingRebase"`
	LastDistributedPeriod uint64        `json:"lastDistributedPeriod"`
	CurrentPeriod         uint64        `json:"currentPeriod"`
}

type Account struct {
	Balance    *utils.Amount `json:"balance"`
	Vests      uint64        `json:"vests"`
	ExemptFrom bool          `json:"exemptFrom"`
	ExemptTo   bool          `json:"exemptTo"`
}

// Vest is a vesting position. Payout is what exiting it now would pay.
type Vest struct {
	Amount *utils.Amount `json:"amount"`
	Start  uint64        `json:"start"`
	MaxEnd uint64        `json:"maxEnd"`
	Exited bool          `json:"exited"`
	Payout *utils.Amount `json:"payout"`
}

type AmountRequest struct {
	utils.CallRequest
	Amount *utils.Amount `json:"amount"`
}

func (r *AmountRequest) Validate() error {
	if err := r.CallRequest.Validate(); err != nil {
		return err
	}
	if r.Amount == nil {
		return utils.BadRequest(errors.New("amount: required"))
	}
	return nil
}

// EnterRequest stakes on behalf of recipient, or of the caller when absent.
type EnterRequest struct {
	AmountRequest
	Recipient *myrd.Address `json:"recipient"`
}

type ExitVestRequest struct {
	utils.CallRequest
	Index uint64 `json:"index"`
}

type TransferRequest struct {
	AmountRequest
	To myrd.Address `json:"to"`
}

// ExemptionRequest sets transfer exemptions. Direction is "from" or "to".
type ExemptionRequest struct {
	utils.CallRequest
	Direction string         `json:"direction"`
	Accounts  []myrd.Address `json:"accounts"`
	Exempt    []bool         `json:"exempt"`
}
