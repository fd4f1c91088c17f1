// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"encoding/hex"
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsRevertErr(t *testing.T) {
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(errors.New("reverted")))

	errNoVest := New("NO_VEST")
	assert.True(t, IsRevertErr(errNoVest))
	assert.True(t, IsRevertErr(pkgerrors.WithMessage(errNoVest, "exit vest")))

	reason, ok := Reason(pkgerrors.Wrap(errNoVest, "ctx"))
	assert.True(t, ok)
	assert.Equal(t, "NO_VEST", reason)

	_, ok = Reason(errors.New("io"))
	assert.False(t, ok)

	assert.Equal(t, "index 3", Newf("index %d", 3).Error())
}

func TestBytes(t *testing.T) {
	var nilErr *ErrRevert
	assert.Nil(t, nilErr.Bytes())

	data := New("Not allowed").Bytes()
	assert.Equal(t, 4+32+32+32, len(data))
	assert.Equal(t, "08c379a0", hex.EncodeToString(data[:4]))
	assert.Equal(t, byte(32), data[4+31])
	assert.Equal(t, byte(len("Not allowed")), data[4+63])
	assert.Equal(t, "Not allowed", string(data[68:68+len("Not allowed")]))
}
