// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xmyrd

import (
	"math/big"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetu-io/myrd-contracts/myrd"
)

func TestVestPayout_Bounds(t *testing.T) {
	a := e18(1000)

	got, err := VestPayout(a, 0)
	require.NoError(t, err)
	assert.Equal(t, half(a), got)

	got, err = VestPayout(a, myrd.MaxVest)
	require.NoError(t, err)
	assert.Equal(t, a, got)

	got, err = VestPayout(u(7), myrd.MaxVest)
	require.NoError(t, err)
	assert.Equal(t, u(7), got, "odd amounts are paid in full at max vest")

	got, err = VestPayout(a, 10*myrd.MaxVest)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestVestPayout_Curve(t *testing.T) {
	f := fuzz.New().NilChance(0)
	maxVest := new(big.Int).SetUint64(myrd.MaxVest)
	for i := 0; i < 500; i++ {
		var amount, elapsed uint64
		f.Fuzz(&amount)
		f.Fuzz(&elapsed)
		elapsed %= myrd.MaxVest

		got, err := VestPayout(uint256.NewInt(amount), elapsed)
		require.NoError(t, err)

		// amount/2 + amount*elapsed/(2*MaxVest), floored term by term
		a := new(big.Int).SetUint64(amount)
		base := new(big.Int).Rsh(a, 1)
		earned := new(big.Int).Mul(a, new(big.Int).SetUint64(elapsed))
		earned.Div(earned, new(big.Int).Mul(maxVest, big.NewInt(2)))
		want := new(big.Int).Add(base, earned)
		assert.Equal(t, want.String(), got.Dec(), "amount %d elapsed %d", amount, elapsed)

		assert.True(t, got.Cmp(uint256.NewInt(amount)) <= 0)
		assert.True(t, got.Cmp(uint256.NewInt(amount/2)) >= 0)

		later, err := VestPayout(uint256.NewInt(amount), elapsed+myrd.Day)
		require.NoError(t, err)
		assert.True(t, later.Cmp(got) >= 0, "payout never decreases with time")
	}
}
