// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the initial state: the builtin contracts wired to
// each other, token allocations and chain parameters.
package genesis

import (
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/state"
	"github.com/tetu-io/myrd-contracts/xenv"
)

// Genesis to build genesis state.
type Genesis struct {
	builder    *Builder
	id         myrd.Bytes32
	name       string
	launchTime uint64
}

// Build build the genesis state into db.
func (g *Genesis) Build(db *state.DB) (myrd.Bytes32, []xenv.Event, error) {
	return g.builder.Build(db)
}

// ID returns genesis ID.
func (g *Genesis) ID() myrd.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// LaunchTime returns the genesis timestamp.
func (g *Genesis) LaunchTime() uint64 {
	return g.launchTime
}
