// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ldb

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/worldsync/common"
	"github.com/Fantom-foundation/worldsync/database/worldstate"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// TableSpace divides the key-value storage into spaces by adding a prefix to the key.
type TableSpace byte

const (
	// AccountTrieNodeKey is a tablespace for account trie nodes
	AccountTrieNodeKey TableSpace = 'A'
	// StorageTrieNodeKey is a tablespace for storage trie nodes
	StorageTrieNodeKey TableSpace = 'S'
	// CodeKey is a tablespace for contract codes
	CodeKey TableSpace = 'C'
)

// maxLocationLength is the number of nibbles of the longest trie path.
const maxLocationLength = 2 * common.HashSize

// toDBKey concatenates the table space prefix and the given key segments.
// Trie node keys end with the node hash, so the variable-length location
// is delimited by the total key length.
func toDBKey(t TableSpace, segments ...[]byte) []byte {
	size := 1
	for _, segment := range segments {
		size += len(segment)
	}
	key := make([]byte, 0, size)
	key = append(key, byte(t))
	for _, segment := range segments {
		key = append(key, segment...)
	}
	return key
}

func accountTrieNodeKey(location []byte, hash common.Hash) []byte {
	return toDBKey(AccountTrieNodeKey, location, hash[:])
}

func storageTrieNodeKey(accountHash common.Hash, location []byte, hash common.Hash) []byte {
	return toDBKey(StorageTrieNodeKey, accountHash[:], location, hash[:])
}

func codeKey(codeHash common.Hash) []byte {
	return toDBKey(CodeKey, codeHash[:])
}

// Storage is a world state storage backed by a LevelDB instance.
type Storage struct {
	db *leveldb.DB
}

// Open opens the LevelDB instance in the given directory, creating it if
// it does not exist.
func Open(directory string) (*Storage, error) {
	db, err := leveldb.OpenFile(directory, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open LevelDB in %s: %w", directory, err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) GetAccountTrieNode(location []byte, hash common.Hash) ([]byte, error) {
	if len(location) > maxLocationLength {
		return nil, worldstate.ErrNotFound
	}
	return s.get(accountTrieNodeKey(location, hash))
}

func (s *Storage) GetStorageTrieNode(accountHash common.Hash, location []byte, hash common.Hash) ([]byte, error) {
	if len(location) > maxLocationLength {
		return nil, worldstate.ErrNotFound
	}
	return s.get(storageTrieNodeKey(accountHash, location, hash))
}

func (s *Storage) GetCode(codeHash common.Hash, _ common.Hash) ([]byte, error) {
	return s.get(codeKey(codeHash))
}

func (s *Storage) get(key []byte) ([]byte, error) {
	value, err := s.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, worldstate.ErrNotFound
	}
	return value, err
}

func (s *Storage) NewUpdater() worldstate.Updater {
	return &updater{db: s.db, batch: new(leveldb.Batch)}
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// updater collects puts in a LevelDB batch written atomically on commit.
type updater struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

func (u *updater) PutAccountTrieNode(location []byte, hash common.Hash, node []byte) {
	if len(location) > maxLocationLength {
		panic(fmt.Sprintf("location exceeds trie depth: %d > %d", len(location), maxLocationLength))
	}
	u.batch.Put(accountTrieNodeKey(location, hash), node)
}

func (u *updater) PutStorageTrieNode(accountHash common.Hash, location []byte, hash common.Hash, node []byte) {
	if len(location) > maxLocationLength {
		panic(fmt.Sprintf("location exceeds trie depth: %d > %d", len(location), maxLocationLength))
	}
	u.batch.Put(storageTrieNodeKey(accountHash, location, hash), node)
}

func (u *updater) PutCode(_ common.Hash, codeHash common.Hash, code []byte) {
	u.batch.Put(codeKey(codeHash), code)
}

func (u *updater) Commit() error {
	if u.batch.Len() == 0 {
		return nil
	}
	if err := u.db.Write(u.batch, &opt.WriteOptions{}); err != nil {
		return fmt.Errorf("failed to write batch: %w", err)
	}
	u.batch.Reset()
	return nil
}

func (u *updater) Rollback() {
	u.batch.Reset()
}
