// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetu-io/myrd-contracts/builtin"
	"github.com/tetu-io/myrd-contracts/genesis"
	"github.com/tetu-io/myrd-contracts/lvldb"
	"github.com/tetu-io/myrd-contracts/state"
)

func TestReadIntFromUInt64Flag(t *testing.T) {
	got, err := readIntFromUInt64Flag(42)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	got, err = readIntFromUInt64Flag(uint64(math.MaxInt))
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, got)

	_, err = readIntFromUInt64Flag(uint64(math.MaxInt) + 1)
	assert.Error(t, err)
}

func TestInitState(t *testing.T) {
	store, err := lvldb.NewMem()
	require.NoError(t, err)
	defer store.Close()

	gene := genesis.NewDevnet()
	db, err := initState(gene, store)
	require.NoError(t, err)

	gov, err := builtin.Controller.Native(state.New(db)).Governance()
	require.NoError(t, err)
	assert.Equal(t, genesis.DevAccounts()[0].Address, gov)

	// reopening with the same genesis keeps the state
	_, err = initState(gene, store)
	require.NoError(t, err)

	other, err := genesis.NewCustomNet(&genesis.CustomGenesis{
		LaunchTime: genesis.DevLaunchTime,
		Governance: genesis.DevAccounts()[1].Address,
	})
	require.NoError(t, err)
	_, err = initState(other, store)
	assert.ErrorContains(t, err, "genesis mismatch")
}
