// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package nodedata

import (
	"fmt"

	"github.com/Fantom-foundation/worldsync/common"
	"github.com/Fantom-foundation/worldsync/database/mpt"
	"github.com/Fantom-foundation/worldsync/database/worldstate"
)

// Resolved is a request whose data has been fetched. It is owned by a
// single worker and not safe for concurrent use.
type Resolved struct {
	Request
	data               []byte
	requiresPersisting bool
}

func (r *Resolved) Data() []byte {
	return r.data
}

// SetData replaces the fetched data.
func (r *Resolved) SetData(data []byte) *Resolved {
	r.data = data
	return r
}

func (r *Resolved) RequiresPersisting() bool {
	return r.requiresPersisting
}

// SetRequiresPersisting enables or disables the storing of the data by
// Persist, e.g. for data already known to be present locally.
func (r *Resolved) SetRequiresPersisting(requiresPersisting bool) *Resolved {
	r.requiresPersisting = requiresPersisting
	return r
}

// Persist records the data in the given updater. It is a no-op if
// persisting is disabled. Persisting a request without data is a
// programming error and causes a panic.
func (r *Resolved) Persist(updater worldstate.Updater) {
	if !r.requiresPersisting {
		return
	}
	if r.data == nil {
		panic(fmt.Sprintf("cannot persist %v without data", r.Request))
	}
	switch r.kind {
	case AccountTrieNode:
		updater.PutAccountTrieNode(r.locationOrRoot(), r.hash, r.data)
	case StorageTrieNode:
		updater.PutStorageTrieNode(r.accountHashOrZero(), r.locationOrRoot(), r.hash, r.data)
	case Code:
		updater.PutCode(r.accountHashOrZero(), r.hash, r.data)
	default:
		panic(fmt.Sprintf("unsupported request kind: %v", r.kind))
	}
}

// ChildRequests decodes the fetched trie node and derives requests for all
// nodes it references by hash. Nodes embedded in the fetched node are
// descended into. For account trie nodes, requests for the code and the
// storage trie of every contained account are derived as well. Codes have
// no children. The storage is not consulted by any of the current kinds.
func (r *Resolved) ChildRequests(_ worldstate.Reader) ([]Request, error) {
	switch r.kind {
	case AccountTrieNode:
		return r.accountChildRequests()
	case StorageTrieNode:
		return r.storageChildRequests()
	case Code:
		return nil, nil
	}
	panic(fmt.Sprintf("unsupported request kind: %v", r.kind))
}

func (r *Resolved) decodeNode() (mpt.NodeContent, error) {
	content, err := mpt.DecodeNodeContent(r.data)
	if err != nil {
		return content, fmt.Errorf("failed to decode node of %v: %w", r.Request, err)
	}
	for _, child := range content.Children {
		if len(r.location)+len(child.Path) > maxLocationLength {
			return content, fmt.Errorf("node of %v references child beyond maximum trie depth", r.Request)
		}
	}
	return content, nil
}

func (r *Resolved) accountChildRequests() ([]Request, error) {
	content, err := r.decodeNode()
	if err != nil {
		return nil, err
	}
	res := make([]Request, 0, len(content.Children)+2*len(content.Values))
	for _, child := range content.Children {
		res = append(res, NewAccountRequest(child.Hash, r.location.extend(child.Path)))
	}
	for _, leaf := range content.Values {
		accountHash, err := r.accountHashOf(leaf)
		if err != nil {
			return nil, err
		}
		account, err := mpt.DecodeAccount(leaf.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid account %v in node of %v: %w", accountHash, r.Request, err)
		}
		if account.HasCode() {
			res = append(res, NewCodeRequest(account.CodeHash, &accountHash))
		}
		if account.HasStorage() {
			root := Location{}
			res = append(res, NewStorageRequest(account.StorageRoot, &accountHash, &root))
		}
	}
	return res, nil
}

// accountHashOf reconstructs the key of an account stored in the account
// trie from the path leading to its leaf.
func (r *Resolved) accountHashOf(leaf mpt.LeafValue) (common.Hash, error) {
	path := append(r.location.toNibbles(), leaf.Path...)
	if len(path) != maxLocationLength {
		return common.Hash{}, fmt.Errorf("account leaf in node of %v has path of invalid length %d", r.Request, len(path))
	}
	packed, err := mpt.PackNibbles(path)
	if err != nil {
		return common.Hash{}, fmt.Errorf("account leaf in node of %v has invalid path: %w", r.Request, err)
	}
	return common.HashFromBytes(packed)
}

func (r *Resolved) storageChildRequests() ([]Request, error) {
	content, err := r.decodeNode()
	if err != nil {
		return nil, err
	}
	var accountHash *common.Hash
	if r.hasAccountHash {
		hash := r.accountHash
		accountHash = &hash
	}
	res := make([]Request, 0, len(content.Children))
	for _, child := range content.Children {
		location := r.location.extend(child.Path)
		res = append(res, NewStorageRequest(child.Hash, accountHash, &location))
	}
	return res, nil
}
