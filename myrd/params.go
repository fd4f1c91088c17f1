// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package myrd

import "github.com/holiman/uint256"

// Time units, in seconds.
const (
	Day  uint64 = 24 * 60 * 60
	Week uint64 = 7 * Day
)

// Staking and exit-penalty constants.
const (
	Basis           uint64 = 10_000 // denominator of percentage math
	SlashingPenalty uint64 = 5_000  // instant-exit penalty, in Basis units

	MinVest = 14 * Day  // below this a vest exit is a cancellation
	MaxVest = 180 * Day // full payout horizon of a vest
)

// Reward distribution constants.
const (
	RewardDuration  = Week // length of one reward stream
	MaxRewardTokens = 10   // non-default reward tokens per staking token
)

// Precision is the fixed-point scale of reward rates and accrued reward per token.
var Precision = uint256.MustFromDecimal("1000000000000000000000000000")

// MaxUint256 is the all-ones value; an allowance of this size is never decremented.
var MaxUint256 = new(uint256.Int).SetAllOne()
