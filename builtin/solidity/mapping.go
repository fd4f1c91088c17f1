// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/tetu-io/myrd-contracts/myrd"
)

// Mapping is a key/value storage abstraction for built-in contracts, similar to the mapping in Solidity.
// Values are rlp encoded. Unset keys read as the zero value of V, and writing
// a zero value clears the slot.
type Mapping[K Key, V any] struct {
	context *Context
	basePos myrd.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos myrd.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) myrd.Bytes32 {
	return myrd.Blake2b(key.Bytes(), m.basePos.Bytes())
}

func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		if rt := reflect.TypeOf(value); rt != nil && rt.Kind() == reflect.Ptr {
			value = reflect.New(rt.Elem()).Interface().(V)
			return rlp.DecodeBytes(raw, value)
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		if isZero(value) {
			return nil, nil
		}
		return rlp.EncodeToBytes(value)
	})
}

func isZero(value any) bool {
	if z, ok := value.(interface{ IsZero() bool }); ok {
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Ptr && rv.IsNil() {
			return true
		}
		return z.IsZero()
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return true
	}
	if rv.Kind() == reflect.Ptr {
		return rv.IsNil() || rv.Elem().IsZero()
	}
	return rv.IsZero()
}
