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
	"github.com/Fantom-foundation/worldsync/database/mpt/rlp"
)

// Serialize encodes the request as an RLP list of the form
//
//	[kind, hash, <kind-specific fields>]
//
// where the kind-specific fields are
//
//	AccountTrieNode: location
//	StorageTrieNode: [accountHash, [location]]
//	Code:            [accountHash]
//
// Absent trailing fields are omitted. An absent account hash followed by a
// present location is encoded as an empty string; this placeholder is
// rejected anywhere else when decoding.
func Serialize(r Request) []byte {
	items := make([]rlp.Item, 0, 4)
	items = append(items, rlp.String{Str: []byte{r.kind.Encode()}}, rlp.Hash{Hash: &r.hash})
	switch r.kind {
	case AccountTrieNode:
		items = append(items, rlp.String{Str: r.locationOrRoot()})
	case StorageTrieNode:
		if r.hasAccountHash {
			items = append(items, rlp.Hash{Hash: &r.accountHash})
		} else if r.hasLocation {
			items = append(items, rlp.String{})
		}
		if r.hasLocation {
			items = append(items, rlp.String{Str: r.location})
		}
	case Code:
		if r.hasAccountHash {
			items = append(items, rlp.Hash{Hash: &r.accountHash})
		}
	default:
		panic(fmt.Sprintf("unsupported request kind: %v", r.kind))
	}
	return rlp.Encode(rlp.List{Items: items})
}

// Deserialize decodes a request encoded by Serialize. All decoding failures
// are reported as errors wrapping ErrFormat.
func Deserialize(data []byte) (Request, error) {
	item, err := rlp.Decode(data)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	list, ok := item.(rlp.List)
	if !ok {
		return Request{}, fmt.Errorf("%w: expected list, got %T", ErrFormat, item)
	}
	fields := list.Items
	if len(fields) < 2 {
		return Request{}, fmt.Errorf("%w: expected at least 2 fields, got %d", ErrFormat, len(fields))
	}

	code, err := getString(fields[0], "kind")
	if err != nil {
		return Request{}, err
	}
	if len(code) != 1 {
		return Request{}, fmt.Errorf("%w: invalid kind encoding %x", ErrFormat, code)
	}
	kind, err := DecodeKind(code[0])
	if err != nil {
		return Request{}, err
	}
	hash, err := getHash(fields[1], "hash")
	if err != nil {
		return Request{}, err
	}
	fields = fields[2:]

	var res Request
	switch kind {
	case AccountTrieNode:
		var location Location
		if len(fields) > 0 {
			if location, err = getLocation(fields[0]); err != nil {
				return Request{}, err
			}
			fields = fields[1:]
		}
		res = NewAccountRequest(hash, location)
	case StorageTrieNode:
		var accountHash *common.Hash
		var location *Location
		if len(fields) > 0 {
			if accountHash, err = getOptionalHash(fields[0], "account hash"); err != nil {
				return Request{}, err
			}
			fields = fields[1:]
			if accountHash == nil && len(fields) == 0 {
				return Request{}, fmt.Errorf("%w: empty account hash without location", ErrFormat)
			}
		}
		if len(fields) > 0 {
			loc, err := getLocation(fields[0])
			if err != nil {
				return Request{}, err
			}
			location = &loc
			fields = fields[1:]
		}
		res = NewStorageRequest(hash, accountHash, location)
	case Code:
		var accountHash *common.Hash
		if len(fields) > 0 {
			h, err := getHash(fields[0], "account hash")
			if err != nil {
				return Request{}, err
			}
			accountHash = &h
			fields = fields[1:]
		}
		res = NewCodeRequest(hash, accountHash)
	}

	if len(fields) > 0 {
		return Request{}, fmt.Errorf("%w: %d unexpected trailing fields for %v", ErrFormat, len(fields), kind)
	}
	return res, nil
}

func getString(item rlp.Item, name string) ([]byte, error) {
	str, ok := item.(rlp.String)
	if !ok {
		return nil, fmt.Errorf("%w: expected %s to be a string, got %T", ErrFormat, name, item)
	}
	return str.Str, nil
}

func getHash(item rlp.Item, name string) (common.Hash, error) {
	str, err := getString(item, name)
	if err != nil {
		return common.Hash{}, err
	}
	hash, err := common.HashFromBytes(str)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: invalid %s: %v", ErrFormat, name, err)
	}
	return hash, nil
}

// getOptionalHash decodes a hash field where an empty string marks an
// absent value.
func getOptionalHash(item rlp.Item, name string) (*common.Hash, error) {
	str, err := getString(item, name)
	if err != nil {
		return nil, err
	}
	if len(str) == 0 {
		return nil, nil
	}
	hash, err := getHash(item, name)
	if err != nil {
		return nil, err
	}
	return &hash, nil
}

func getLocation(item rlp.Item) (Location, error) {
	str, err := getString(item, "location")
	if err != nil {
		return nil, err
	}
	if len(str) > maxLocationLength {
		return nil, fmt.Errorf("%w: location of length %d exceeds trie depth", ErrFormat, len(str))
	}
	for i, n := range str {
		if n > 0xF {
			return nil, fmt.Errorf("%w: invalid nibble 0x%x in location at position %d", ErrFormat, n, i)
		}
	}
	return Location(str), nil
}
