// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package epoch derives period indexes from block time.
package epoch

import "github.com/tetu-io/myrd-contracts/myrd"

// Clock maps a unix timestamp to the index of the fixed-length period containing it.
// It holds no state; the zero value is invalid.
type Clock struct {
	duration uint64
}

// Weekly is the clock used by the reward distributor and the rebase harvest.
var Weekly = New(myrd.Week)

// New returns a clock with the given period length in seconds.
// It panics if duration is zero.
func New(duration uint64) Clock {
	if duration == 0 {
		panic("epoch: zero duration")
	}
	return Clock{duration: duration}
}

// Duration returns the period length in seconds.
func (c Clock) Duration() uint64 {
	return c.duration
}

// Period returns the index of the period containing ts.
func (c Clock) Period(ts uint64) uint64 {
	return ts / c.duration
}

// PeriodStart returns the first timestamp of the given period.
func (c Clock) PeriodStart(period uint64) uint64 {
	return period * c.duration
}

// HasAdvanced reports whether ts lies in a later period than last.
func (c Clock) HasAdvanced(last, ts uint64) bool {
	return c.Period(ts) > last
}
