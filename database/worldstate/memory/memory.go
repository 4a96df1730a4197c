// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package memory

import (
	"sync"

	"github.com/Fantom-foundation/worldsync/common"
	"github.com/Fantom-foundation/worldsync/database/worldstate"
	"golang.org/x/exp/slices"
)

// Storage is an in-memory world state storage. Besides serving as a
// lightweight Storage implementation it keeps track of the number of
// committed writes.
type Storage struct {
	accountNodes map[string][]byte
	storageNodes map[string][]byte
	codes        map[common.Hash][]byte
	writes       int
	mutex        sync.Mutex
}

// New creates an empty in-memory storage.
func New() *Storage {
	return &Storage{
		accountNodes: map[string][]byte{},
		storageNodes: map[string][]byte{},
		codes:        map[common.Hash][]byte{},
	}
}

func accountNodeKey(location []byte, hash common.Hash) string {
	return string(location) + string(hash[:])
}

func storageNodeKey(accountHash common.Hash, location []byte, hash common.Hash) string {
	return string(accountHash[:]) + string(location) + string(hash[:])
}

func (s *Storage) GetAccountTrieNode(location []byte, hash common.Hash) ([]byte, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return lookup(s.accountNodes, accountNodeKey(location, hash))
}

func (s *Storage) GetStorageTrieNode(accountHash common.Hash, location []byte, hash common.Hash) ([]byte, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return lookup(s.storageNodes, storageNodeKey(accountHash, location, hash))
}

func (s *Storage) GetCode(codeHash common.Hash, _ common.Hash) ([]byte, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return lookup(s.codes, codeHash)
}

func lookup[K comparable](data map[K][]byte, key K) ([]byte, error) {
	res, found := data[key]
	if !found {
		return nil, worldstate.ErrNotFound
	}
	return slices.Clone(res), nil
}

// NumWrites returns the number of entries committed to this storage.
func (s *Storage) NumWrites() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.writes
}

func (s *Storage) NewUpdater() worldstate.Updater {
	return &updater{storage: s}
}

func (s *Storage) Close() error {
	return nil
}

// updater buffers puts until they are committed to the storage.
type updater struct {
	storage *Storage
	pending []func(*Storage)
}

func (u *updater) PutAccountTrieNode(location []byte, hash common.Hash, node []byte) {
	key, node := accountNodeKey(location, hash), slices.Clone(node)
	u.pending = append(u.pending, func(s *Storage) {
		s.accountNodes[key] = node
	})
}

func (u *updater) PutStorageTrieNode(accountHash common.Hash, location []byte, hash common.Hash, node []byte) {
	key, node := storageNodeKey(accountHash, location, hash), slices.Clone(node)
	u.pending = append(u.pending, func(s *Storage) {
		s.storageNodes[key] = node
	})
}

func (u *updater) PutCode(_ common.Hash, codeHash common.Hash, code []byte) {
	code = slices.Clone(code)
	u.pending = append(u.pending, func(s *Storage) {
		s.codes[codeHash] = code
	})
}

func (u *updater) Commit() error {
	u.storage.mutex.Lock()
	defer u.storage.mutex.Unlock()
	for _, apply := range u.pending {
		apply(u.storage)
	}
	u.storage.writes += len(u.pending)
	u.pending = u.pending[:0]
	return nil
}

func (u *updater) Rollback() {
	u.pending = u.pending[:0]
}
