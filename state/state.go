// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/tetu-io/myrd-contracts/cache"
	"github.com/tetu-io/myrd-contracts/kv"
	"github.com/tetu-io/myrd-contracts/log"
	"github.com/tetu-io/myrd-contracts/myrd"
	"github.com/tetu-io/myrd-contracts/stackedmap"
)

const storeName = "s"

var logger = log.WithContext("pkg", "state")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr myrd.Address
	key  myrd.Bytes32
}

func (k storageKey) bytes() []byte {
	return append(append(make([]byte, 0, 52), k.addr[:]...), k.key[:]...)
}

// DB is the committed storage shared by all State instances.
// Slot loads and commits exclude each other, so a load that read a slot
// before a commit can never put the old value back into the cache.
type DB struct {
	rw    sync.RWMutex
	store kv.Store
	cache *cache.LRU[storageKey, rlp.RawValue]
}

// NewDB creates a DB over the given kv store, caching up to cacheSize slots.
func NewDB(store kv.Store, cacheSize int) (*DB, error) {
	if cacheSize <= 0 {
		cacheSize = 4096
	}
	c, err := cache.NewLRU[storageKey, rlp.RawValue](cacheSize)
	if err != nil {
		return nil, err
	}
	return &DB{store: kv.Bucket(storeName).NewStore(store), cache: c}, nil
}

func (db *DB) load(key storageKey) (rlp.RawValue, error) {
	db.rw.RLock()
	defer db.rw.RUnlock()

	return db.cache.GetOrLoad(key, func(key storageKey) (rlp.RawValue, error) {
		val, err := db.store.Get(key.bytes())
		if err != nil {
			if db.store.IsNotFound(err) {
				return rlp.RawValue(nil), nil
			}
			return nil, err
		}
		return val, nil
	})
}

// State manages the storage of all contracts.
// It is not safe for concurrent use.
type State struct {
	db *DB
	sm *stackedmap.StackedMap[storageKey, rlp.RawValue] // keeps revisions of storage
}

// New create state object.
func New(db *DB) *State {
	s := &State{db: db}
	s.sm = stackedmap.New(func(key storageKey) (rlp.RawValue, bool, error) {
		v, err := db.load(key)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	})
	return s
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr myrd.Address, key myrd.Bytes32) (myrd.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return myrd.Bytes32{}, err
	}
	if len(raw) == 0 {
		return myrd.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return myrd.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// customized storage value, return hash of raw data
		return myrd.Blake2b(raw), nil
	}
	return myrd.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr myrd.Address, key, value myrd.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr myrd.Address, key myrd.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr myrd.Address, key myrd.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr myrd.Address, key myrd.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr myrd.Address, key myrd.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage collects all changes made since New so they can be committed.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(key storageKey, value rlp.RawValue) bool {
		changes[key] = value
		return true
	})
	return &Stage{db: s.db, changes: changes}
}
