// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package fixedpoint provides overflow-checked uint256 arithmetic.
// All functions allocate their result and never modify the arguments.
package fixedpoint

import (
	"github.com/holiman/uint256"

	"github.com/tetu-io/myrd-contracts/builtin/reverts"
)

var (
	ErrOverflow     = reverts.New("arithmetic overflow")
	ErrUnderflow    = reverts.New("arithmetic underflow")
	ErrDivideByZero = reverts.New("division by zero")
)

// Zero returns a fresh zero value.
func Zero() *uint256.Int {
	return new(uint256.Int)
}

// Add returns x+y.
func Add(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

// Sub returns x-y.
func Sub(x, y *uint256.Int) (*uint256.Int, error) {
	z, underflow := new(uint256.Int).SubOverflow(x, y)
	if underflow {
		return nil, ErrUnderflow
	}
	return z, nil
}

// SubFloor returns x-y, or zero when y > x.
func SubFloor(x, y *uint256.Int) *uint256.Int {
	if x.Cmp(y) <= 0 {
		return new(uint256.Int)
	}
	return new(uint256.Int).Sub(x, y)
}

// Mul returns x*y.
func Mul(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

// Div returns floor(x/y).
func Div(x, y *uint256.Int) (*uint256.Int, error) {
	if y.IsZero() {
		return nil, ErrDivideByZero
	}
	return new(uint256.Int).Div(x, y), nil
}

// MulDiv returns floor(x*y/d) using a 512-bit intermediate product,
// so it only fails when the quotient itself does not fit.
func MulDiv(x, y, d *uint256.Int) (*uint256.Int, error) {
	if d.IsZero() {
		return nil, ErrDivideByZero
	}
	z, overflow := new(uint256.Int).MulDivOverflow(x, y, d)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

// Min returns a copy of the smaller value.
func Min(x, y *uint256.Int) *uint256.Int {
	if x.Cmp(y) <= 0 {
		return new(uint256.Int).Set(x)
	}
	return new(uint256.Int).Set(y)
}

// Max returns a copy of the larger value.
func Max(x, y *uint256.Int) *uint256.Int {
	if x.Cmp(y) >= 0 {
		return new(uint256.Int).Set(x)
	}
	return new(uint256.Int).Set(y)
}

// FromUint64 is a shorthand for uint256.NewInt.
func FromUint64(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}
