// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/tetu-io/myrd-contracts/myrd"
)

// Amount is a token amount encoded as a decimal string, or 0x-prefixed hex.
type Amount uint256.Int

// NewAmount wraps v. Nil becomes zero.
func NewAmount(v *uint256.Int) *Amount {
	if v == nil {
		return new(Amount)
	}
	return (*Amount)(v.Clone())
}

// Int returns the amount as uint256. A nil amount is zero.
func (a *Amount) Int() *uint256.Int {
	if a == nil {
		return new(uint256.Int)
	}
	return (*uint256.Int)(a).Clone()
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	v := uint256.Int(a)
	return json.Marshal(v.Dec())
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("amount must be a string: %w", err)
	}
	var (
		v   *uint256.Int
		err error
	)
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		v, err = uint256.FromHex(s)
	} else {
		v, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return errors.WithMessagef(err, "invalid amount %q", s)
	}
	*a = Amount(*v)
	return nil
}

// CallRequest is the common body of state changing requests. There are no
// signatures; the node trusts the caller field.
type CallRequest struct {
	Caller myrd.Address `json:"caller"`
}

// Validate rejects a missing caller.
func (c *CallRequest) Validate() error {
	if c.Caller.IsZero() {
		return BadRequest(errors.New("caller: required"))
	}
	return nil
}
