// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/tetu-io/myrd-contracts/myrd"
)

// Stage abstracts the final set of slot changes of a State.
type Stage struct {
	db      *DB
	changes map[storageKey]rlp.RawValue
}

// Len returns the number of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

func (s *Stage) sortedKeys() []storageKey {
	keys := make([]storageKey, 0, len(s.changes))
	for k := range s.changes {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b storageKey) int {
		return bytes.Compare(a.bytes(), b.bytes())
	})
	return keys
}

// Hash computes a digest of the changes, independent of write order.
func (s *Stage) Hash() myrd.Bytes32 {
	data := make([][]byte, 0, len(s.changes)*2)
	for _, k := range s.sortedKeys() {
		data = append(data, k.bytes(), s.changes[k])
	}
	return myrd.Blake2b(data...)
}

// Commit writes all changes to the underlying store atomically and
// refreshes the slot cache.
func (s *Stage) Commit() (myrd.Bytes32, error) {
	s.db.rw.Lock()
	defer s.db.rw.Unlock()

	batch := s.db.store.NewBatch()
	for k, v := range s.changes {
		var err error
		if len(v) == 0 {
			err = batch.Delete(k.bytes())
		} else {
			err = batch.Put(k.bytes(), v)
		}
		if err != nil {
			return myrd.Bytes32{}, &Error{err}
		}
	}
	if err := batch.Write(); err != nil {
		return myrd.Bytes32{}, &Error{err}
	}
	for k, v := range s.changes {
		s.db.cache.Add(k, v)
	}

	metricSlotWrites().Add(int64(len(s.changes)))
	if stats := s.db.cache.Stats(); stats.Changed() {
		hit, miss := stats.Counts()
		metricCacheHit().Set(int64(stats.HitRate() * 1000))
		logger.Debug("slot cache", "hit", hit, "miss", miss)
	}
	return s.Hash(), nil
}
