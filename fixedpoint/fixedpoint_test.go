// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fixedpoint

import (
	"math/big"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetu-io/myrd-contracts/builtin/reverts"
	"github.com/tetu-io/myrd-contracts/myrd"
)

func TestAddSub(t *testing.T) {
	max := new(uint256.Int).Set(myrd.MaxUint256)

	_, err := Add(max, uint256.NewInt(1))
	assert.ErrorIs(t, err, ErrOverflow)
	assert.True(t, reverts.IsRevertErr(err))

	sum, err := Add(uint256.NewInt(2), uint256.NewInt(3))
	require.NoError(t, err)
	assert.Equal(t, uint64(5), sum.Uint64())

	_, err = Sub(uint256.NewInt(2), uint256.NewInt(3))
	assert.ErrorIs(t, err, ErrUnderflow)

	assert.True(t, SubFloor(uint256.NewInt(2), uint256.NewInt(3)).IsZero())
	assert.Equal(t, uint64(1), SubFloor(uint256.NewInt(3), uint256.NewInt(2)).Uint64())
}

func TestMulDiv(t *testing.T) {
	// 1e30 * 1e30 overflows 2^256 only in the intermediate product
	x := uint256.MustFromDecimal("1000000000000000000000000000000")
	z, err := MulDiv(x, x, x)
	require.NoError(t, err)
	assert.Equal(t, x, z)

	z, err = MulDiv(uint256.NewInt(7), uint256.NewInt(3), uint256.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, uint64(10), z.Uint64(), "floor division")

	// 1e60 still fits, only a quotient beyond 2^256 overflows
	z, err = MulDiv(x, x, uint256.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, new(uint256.Int).Mul(x, x), z)

	maxU := new(uint256.Int).SetAllOne()
	_, err = MulDiv(maxU, uint256.NewInt(2), uint256.NewInt(1))
	assert.ErrorIs(t, err, ErrOverflow)

	z, err = MulDiv(maxU, uint256.NewInt(2), uint256.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, maxU, z)

	_, err = MulDiv(x, x, Zero())
	assert.ErrorIs(t, err, ErrDivideByZero)

	_, err = Div(x, Zero())
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestMinMax(t *testing.T) {
	a, b := uint256.NewInt(1), uint256.NewInt(2)
	assert.Equal(t, a, Min(a, b))
	assert.Equal(t, b, Max(a, b))

	m := Min(a, b)
	m.SetUint64(100)
	assert.Equal(t, uint64(1), a.Uint64(), "result must not alias the argument")
}

func TestMulDivMatchesBigInt(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for i := 0; i < 500; i++ {
		var x, y, d uint64
		f.Fuzz(&x)
		f.Fuzz(&y)
		f.Fuzz(&d)
		if d == 0 {
			d = 1
		}
		got, err := MulDiv(uint256.NewInt(x), uint256.NewInt(y), uint256.NewInt(d))
		require.NoError(t, err)

		want := new(big.Int).Mul(new(big.Int).SetUint64(x), new(big.Int).SetUint64(y))
		want.Div(want, new(big.Int).SetUint64(d))
		assert.Equal(t, want, got.ToBig())
	}
}
