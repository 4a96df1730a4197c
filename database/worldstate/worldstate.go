// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package worldstate

import "github.com/Fantom-foundation/worldsync/common"

//go:generate mockgen -source worldstate.go -destination worldstate_mocks.go -package worldstate

// ErrNotFound is returned by Reader lookups for absent entries.
const ErrNotFound = common.ConstError("not found")

// Reader provides read access to the trie nodes and codes of a world state.
// Trie locations are nibble paths with one nibble per byte.
type Reader interface {
	// GetAccountTrieNode returns the account trie node with the given hash
	// stored at the given location, or ErrNotFound.
	GetAccountTrieNode(location []byte, hash common.Hash) ([]byte, error)

	// GetStorageTrieNode returns the node with the given hash stored at the
	// given location of the storage trie of the given account, or ErrNotFound.
	GetStorageTrieNode(accountHash common.Hash, location []byte, hash common.Hash) ([]byte, error)

	// GetCode returns the code with the given hash, or ErrNotFound. Codes are
	// content addressed, the account hash is informative only.
	GetCode(codeHash common.Hash, accountHash common.Hash) ([]byte, error)
}

// Updater is a batch of world state modifications. Puts become visible
// through the Reader of the originating Storage only after Commit.
// Updaters are not safe for concurrent use.
type Updater interface {
	PutAccountTrieNode(location []byte, hash common.Hash, node []byte)
	PutStorageTrieNode(accountHash common.Hash, location []byte, hash common.Hash, node []byte)
	PutCode(accountHash common.Hash, codeHash common.Hash, code []byte)

	// Commit atomically applies all puts recorded since the last Commit or
	// Rollback. The updater may be reused afterwards.
	Commit() error

	// Rollback discards all puts recorded since the last Commit or Rollback.
	Rollback()
}

// Storage is a world state store for trie nodes and codes.
type Storage interface {
	Reader

	// NewUpdater creates a new, empty write batch for this storage.
	NewUpdater() Updater

	Close() error
}
