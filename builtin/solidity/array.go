// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/tetu-io/myrd-contracts/myrd"
)

// Array is a dynamic array: its length lives at pos and element i at Slot(pos, i).
type Array[V any] struct {
	length *Uint256
	items  *Mapping[Index, V]
}

func NewArray[V any](context *Context, pos myrd.Bytes32) *Array[V] {
	return &Array[V]{
		length: NewUint256(context, pos),
		items:  NewMapping[Index, V](context, pos),
	}
}

func (a *Array[V]) Len() (uint64, error) {
	n, err := a.length.Get()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

func (a *Array[V]) Get(i uint64) (v V, err error) {
	n, err := a.Len()
	if err != nil {
		return v, err
	}
	if i >= n {
		return v, fmt.Errorf("array index %d out of range [0, %d)", i, n)
	}
	return a.items.Get(Index(i))
}

func (a *Array[V]) Set(i uint64, value V) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	if i >= n {
		return fmt.Errorf("array index %d out of range [0, %d)", i, n)
	}
	return a.items.Set(Index(i), value)
}

// Push appends value and returns its index.
func (a *Array[V]) Push(value V) (uint64, error) {
	n, err := a.Len()
	if err != nil {
		return 0, err
	}
	if err := a.items.Set(Index(n), value); err != nil {
		return 0, err
	}
	a.length.Set(uint256.NewInt(n + 1))
	return n, nil
}

// Pop removes the last element.
func (a *Array[V]) Pop() error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("pop from empty array")
	}
	var zero V
	if err := a.items.Set(Index(n-1), zero); err != nil {
		return err
	}
	a.length.Set(uint256.NewInt(n - 1))
	return nil
}

// All reads every element in order.
func (a *Array[V]) All() ([]V, error) {
	n, err := a.Len()
	if err != nil {
		return nil, err
	}
	out := make([]V, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := a.items.Get(Index(i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
