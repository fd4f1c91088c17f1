// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gauge

import (
	"github.com/pkg/errors"

	"github.com/tetu-io/myrd-contracts/api/utils"
	"github.com/tetu-io/myrd-contracts/myrd"
)

type Summary struct {
	Address            myrd.Address `json:"address"`
	Controller         myrd.Address `json:"controller"`
	StakingToken       myrd.Address `json:"stakingToken"`
	DefaultRewardToken myrd.Address `json:"defaultRewardToken"`
	ActivePeriod       uint64       `json:"activePeriod"`
	Period             uint64       `json:"period"`
}

type Staking struct {
	TotalSupply   *utils.Amount  `json:"totalSupply"`
	DerivedSupply *utils.Amount  `json:"derivedSupply"`
	RewardTokens  []myrd.Address `json:"rewardTokens"`
}

type Reward struct {
	Token                    myrd.Address  `json:"token"`
	RewardRate               *utils.Amount `json:"rewardRate"`
	PeriodFinish             uint64        `json:"periodFinish"`
	LastUpdateTime           uint64        `json:"lastUpdateTime"`
	LastTimeRewardApplicable uint64        `json:"lastTimeRewardApplicable"`
	RewardPerToken           *utils.Amount `json:"rewardPerToken"`
	Left                     *utils.Amount `json:"left"`
}

type Earned struct {
	Token  myrd.Address  `json:"token"`
	Earned *utils.Amount `json:"earned"`
}

type Account struct {
	Balance        *utils.Amount `json:"balance"`
	DerivedBalance *utils.Amount `json:"derivedBalance"`
	Earned         []Earned      `json:"earned"`
}

type UpdatePeriodRequest struct {
	utils.CallRequest
	Amount *utils.Amount `json:"amount"`
}

type NotifyRequest struct {
	utils.CallRequest
	Token  myrd.Address  `json:"token"`
	Amount *utils.Amount `json:"amount"`
}

func (r *NotifyRequest) Validate() error {
	if err := r.CallRequest.Validate(); err != nil {
		return err
	}
	if r.Amount == nil {
		return utils.BadRequest(errors.New("amount: required"))
	}
	return nil
}

// ClaimRequest claims for account, or the caller when absent. Without
// tokens every reward token is claimed.
type ClaimRequest struct {
	utils.CallRequest
	Account *myrd.Address  `json:"account"`
	Tokens  []myrd.Address `json:"tokens"`
}

type RewardTokenRequest struct {
	utils.CallRequest
	Token  myrd.Address `json:"token"`
	Remove bool         `json:"remove"`
}
