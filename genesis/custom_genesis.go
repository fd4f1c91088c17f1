// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tetu-io/myrd-contracts/myrd"
)

// CustomGenesis is user customized genesis
type CustomGenesis struct {
	LaunchTime    uint64         `yaml:"launchTime" json:"launchTime"`
	EpochDuration uint64         `yaml:"epochDuration" json:"epochDuration"`
	Governance    myrd.Address   `yaml:"governance" json:"governance"`
	Deployers     []myrd.Address `yaml:"deployers" json:"deployers"`
	Myrd          []Allocation   `yaml:"myrd" json:"myrd"`
	Tokens        []Token        `yaml:"tokens" json:"tokens"`
}

// Allocation is a genesis token balance.
type Allocation struct {
	Address myrd.Address     `yaml:"address" json:"address"`
	Amount  *HexOrDecimal256 `yaml:"amount" json:"amount"`
}

// Token is an extra token ledger created at genesis. Reward marks it as a
// reward token of the gauge. The minter defaults to governance.
type Token struct {
	Address     *myrd.Address `yaml:"address" json:"address"`
	Name        string        `yaml:"name" json:"name"`
	Symbol      string        `yaml:"symbol" json:"symbol"`
	Decimals    uint8         `yaml:"decimals" json:"decimals"`
	Minter      *myrd.Address `yaml:"minter" json:"minter"`
	Reward      bool          `yaml:"reward" json:"reward"`
	Allocations []Allocation  `yaml:"allocations" json:"allocations"`
}

// TokenAddress returns the configured address or the one derived from the symbol.
func (t *Token) TokenAddress() myrd.Address {
	if t.Address != nil {
		return *t.Address
	}
	return myrd.BytesToAddress([]byte(t.Symbol))
}

// LoadCustomGenesis reads a genesis file. Files ending in .json are decoded
// as JSON, anything else as YAML.
func LoadCustomGenesis(path string) (*CustomGenesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	var gen CustomGenesis
	if strings.HasSuffix(path, ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&gen); err != nil {
			return nil, errors.Wrap(err, "decode json genesis file")
		}
		return &gen, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&gen); err != nil {
		return nil, errors.Wrap(err, "decode yaml genesis file")
	}
	return &gen, nil
}

// HexOrDecimal256 marshals big.Int as hex or decimal.
// Copied from go-ethereum/common/math and implement json.Marshaler and yaml scalars.
type HexOrDecimal256 math.HexOrDecimal256

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *HexOrDecimal256) UnmarshalJSON(input []byte) error {
	var hex string
	if err := json.Unmarshal(input, &hex); err != nil {
		var bigint big.Int
		if err = bigint.UnmarshalJSON(input); err != nil {
			return err
		}
		if bigint.Sign() < 0 {
			return fmt.Errorf("negative amount %v", &bigint)
		}
		*i = HexOrDecimal256(bigint)
		return nil
	}
	return i.UnmarshalText([]byte(hex))
}

// UnmarshalText implements the encoding.TextUnmarshaler interface, used by yaml scalars.
func (i *HexOrDecimal256) UnmarshalText(input []byte) error {
	bigint, ok := math.ParseBig256(string(input))
	if !ok {
		return fmt.Errorf("invalid hex or decimal integer %q", input)
	}
	if bigint.Sign() < 0 {
		return fmt.Errorf("negative amount %q", input)
	}
	*i = HexOrDecimal256(*bigint)
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (i HexOrDecimal256) MarshalJSON() ([]byte, error) {
	decimal256 := math.HexOrDecimal256(i)
	text, err := decimal256.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// Uint256 converts to the amount type of the ledgers. Nil is zero.
func (i *HexOrDecimal256) Uint256() (*uint256.Int, error) {
	if i == nil {
		return new(uint256.Int), nil
	}
	v, overflow := uint256.FromBig((*big.Int)(i))
	if overflow || (*big.Int)(i).Sign() < 0 {
		return nil, fmt.Errorf("amount %v out of range", (*big.Int)(i))
	}
	return v, nil
}
