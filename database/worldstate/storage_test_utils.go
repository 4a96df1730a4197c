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

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Fantom-foundation/worldsync/common"
)

// NamedStorageFactory names a Storage implementation and describes how to
// open an instance of it in a given directory.
type NamedStorageFactory struct {
	ImplementationName string
	Open               func(t *testing.T, directory string) (Storage, error)
}

// RunStorageTests runs a set of black-box unit tests against a Storage
// implementation defined by the given factory. It is intended to be used
// in implementation specific unit test packages to cover basic compliance
// properties as imposed by the Storage interface.
func RunStorageTests(t *testing.T, factory NamedStorageFactory) {
	wrap := func(test func(*testing.T, NamedStorageFactory)) func(*testing.T) {
		return func(t *testing.T) {
			t.Parallel()
			test(t, factory)
		}
	}
	t.Run("EmptyStorageHasNoEntries", wrap(testEmptyStorageHasNoEntries))
	t.Run("CommittedEntriesCanBeRead", wrap(testCommittedEntriesCanBeRead))
	t.Run("UncommittedEntriesAreInvisible", wrap(testUncommittedEntriesAreInvisible))
	t.Run("RolledBackEntriesAreDiscarded", wrap(testRolledBackEntriesAreDiscarded))
	t.Run("LocationsAreDistinguished", wrap(testLocationsAreDistinguished))
	t.Run("StorageTriesAreNamespacedByAccount", wrap(testStorageTriesAreNamespacedByAccount))
	t.Run("CodesAreContentAddressed", wrap(testCodesAreContentAddressed))
	t.Run("UpdaterCanBeReused", wrap(testUpdaterCanBeReused))
}

func openStorage(t *testing.T, factory NamedStorageFactory) Storage {
	t.Helper()
	storage, err := factory.Open(t, t.TempDir())
	if err != nil {
		t.Fatalf("failed to open %s storage: %v", factory.ImplementationName, err)
	}
	t.Cleanup(func() {
		if err := storage.Close(); err != nil {
			t.Errorf("failed to close storage: %v", err)
		}
	})
	return storage
}

func expectNotFound(t *testing.T, data []byte, err error) {
	t.Helper()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got data %x and error %v", data, err)
	}
}

func expectData(t *testing.T, want []byte, got []byte, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("unexpected data, wanted %x, got %x", want, got)
	}
}

func testEmptyStorageHasNoEntries(t *testing.T, factory NamedStorageFactory) {
	storage := openStorage(t, factory)
	data, err := storage.GetAccountTrieNode(nil, common.Hash{1})
	expectNotFound(t, data, err)
	data, err = storage.GetStorageTrieNode(common.Hash{1}, nil, common.Hash{2})
	expectNotFound(t, data, err)
	data, err = storage.GetCode(common.Hash{1}, common.Hash{})
	expectNotFound(t, data, err)
}

func testCommittedEntriesCanBeRead(t *testing.T, factory NamedStorageFactory) {
	storage := openStorage(t, factory)
	updater := storage.NewUpdater()
	updater.PutAccountTrieNode([]byte{1, 2}, common.Hash{1}, []byte("account"))
	updater.PutStorageTrieNode(common.Hash{9}, []byte{3}, common.Hash{2}, []byte("storage"))
	updater.PutCode(common.Hash{9}, common.Hash{3}, []byte("code"))
	if err := updater.Commit(); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}

	data, err := storage.GetAccountTrieNode([]byte{1, 2}, common.Hash{1})
	expectData(t, []byte("account"), data, err)
	data, err = storage.GetStorageTrieNode(common.Hash{9}, []byte{3}, common.Hash{2})
	expectData(t, []byte("storage"), data, err)
	data, err = storage.GetCode(common.Hash{3}, common.Hash{9})
	expectData(t, []byte("code"), data, err)
}

func testUncommittedEntriesAreInvisible(t *testing.T, factory NamedStorageFactory) {
	storage := openStorage(t, factory)
	updater := storage.NewUpdater()
	updater.PutAccountTrieNode(nil, common.Hash{1}, []byte("account"))
	data, err := storage.GetAccountTrieNode(nil, common.Hash{1})
	expectNotFound(t, data, err)
}

func testRolledBackEntriesAreDiscarded(t *testing.T, factory NamedStorageFactory) {
	storage := openStorage(t, factory)
	updater := storage.NewUpdater()
	updater.PutCode(common.Hash{}, common.Hash{1}, []byte("code"))
	updater.Rollback()
	if err := updater.Commit(); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	data, err := storage.GetCode(common.Hash{1}, common.Hash{})
	expectNotFound(t, data, err)
}

func testLocationsAreDistinguished(t *testing.T, factory NamedStorageFactory) {
	storage := openStorage(t, factory)
	updater := storage.NewUpdater()
	updater.PutAccountTrieNode([]byte{1}, common.Hash{1}, []byte("a"))
	updater.PutAccountTrieNode([]byte{1, 2}, common.Hash{1}, []byte("b"))
	if err := updater.Commit(); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	data, err := storage.GetAccountTrieNode([]byte{1}, common.Hash{1})
	expectData(t, []byte("a"), data, err)
	data, err = storage.GetAccountTrieNode([]byte{1, 2}, common.Hash{1})
	expectData(t, []byte("b"), data, err)
	data, err = storage.GetAccountTrieNode(nil, common.Hash{1})
	expectNotFound(t, data, err)
}

func testStorageTriesAreNamespacedByAccount(t *testing.T, factory NamedStorageFactory) {
	storage := openStorage(t, factory)
	updater := storage.NewUpdater()
	updater.PutStorageTrieNode(common.Hash{1}, nil, common.Hash{5}, []byte("one"))
	updater.PutStorageTrieNode(common.Hash{2}, nil, common.Hash{5}, []byte("two"))
	if err := updater.Commit(); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	data, err := storage.GetStorageTrieNode(common.Hash{1}, nil, common.Hash{5})
	expectData(t, []byte("one"), data, err)
	data, err = storage.GetStorageTrieNode(common.Hash{2}, nil, common.Hash{5})
	expectData(t, []byte("two"), data, err)
	data, err = storage.GetStorageTrieNode(common.Hash{3}, nil, common.Hash{5})
	expectNotFound(t, data, err)
	data, err = storage.GetAccountTrieNode(nil, common.Hash{5})
	expectNotFound(t, data, err)
}

func testCodesAreContentAddressed(t *testing.T, factory NamedStorageFactory) {
	storage := openStorage(t, factory)
	updater := storage.NewUpdater()
	updater.PutCode(common.Hash{1}, common.Hash{7}, []byte("code"))
	if err := updater.Commit(); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	data, err := storage.GetCode(common.Hash{7}, common.Hash{2})
	expectData(t, []byte("code"), data, err)
}

func testUpdaterCanBeReused(t *testing.T, factory NamedStorageFactory) {
	storage := openStorage(t, factory)
	updater := storage.NewUpdater()
	updater.PutCode(common.Hash{}, common.Hash{1}, []byte("first"))
	if err := updater.Commit(); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	updater.PutCode(common.Hash{}, common.Hash{2}, []byte("second"))
	if err := updater.Commit(); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	data, err := storage.GetCode(common.Hash{1}, common.Hash{})
	expectData(t, []byte("first"), data, err)
	data, err = storage.GetCode(common.Hash{2}, common.Hash{})
	expectData(t, []byte("second"), data, err)
}
