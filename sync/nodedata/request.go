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
	"errors"
	"fmt"
	"strings"

	"github.com/Fantom-foundation/worldsync/common"
	"github.com/Fantom-foundation/worldsync/database/mpt"
	"github.com/Fantom-foundation/worldsync/database/worldstate"
	"golang.org/x/exp/slices"
)

// Location is the path of a node within its trie. Every byte holds a
// single nibble. The empty location addresses the root of the trie.
type Location []byte

// maxLocationLength is the length of the path to a leaf in a trie keyed by
// hashes.
const maxLocationLength = 2 * common.HashSize

func (l Location) String() string {
	var builder strings.Builder
	for _, n := range l {
		builder.WriteRune(mpt.Nibble(n).Rune())
	}
	return builder.String()
}

// extend creates a new location pointing to the node reached by following
// the given path from l.
func (l Location) extend(path []mpt.Nibble) Location {
	res := make(Location, 0, len(l)+len(path))
	res = append(res, l...)
	for _, n := range path {
		res = append(res, byte(n))
	}
	return res
}

func (l Location) toNibbles() []mpt.Nibble {
	res := make([]mpt.Nibble, len(l))
	for i, n := range l {
		res[i] = mpt.Nibble(n)
	}
	return res
}

// Request identifies a piece of world state data to be fetched from a peer.
// Requests are immutable values; the fetched data is attached by resolving
// a request.
type Request struct {
	kind           Kind
	hash           common.Hash
	location       Location
	hasLocation    bool
	accountHash    common.Hash
	hasAccountHash bool
}

// NewAccountRequest creates a request for the account trie node with the
// given hash at the given location. A nil location addresses the root.
func NewAccountRequest(hash common.Hash, location Location) Request {
	return Request{
		kind:        AccountTrieNode,
		hash:        hash,
		location:    cloneLocation(location),
		hasLocation: true,
	}
}

// NewStorageRequest creates a request for a node of the storage trie of the
// account with the given hash. Both the account hash and the location are
// optional.
func NewStorageRequest(hash common.Hash, accountHash *common.Hash, location *Location) Request {
	res := Request{kind: StorageTrieNode, hash: hash}
	if accountHash != nil {
		res.accountHash, res.hasAccountHash = *accountHash, true
	}
	if location != nil {
		res.location, res.hasLocation = cloneLocation(*location), true
	}
	return res
}

// NewCodeRequest creates a request for the code with the given hash,
// optionally associated to the account with the given hash.
func NewCodeRequest(hash common.Hash, accountHash *common.Hash) Request {
	res := Request{kind: Code, hash: hash}
	if accountHash != nil {
		res.accountHash, res.hasAccountHash = *accountHash, true
	}
	return res
}

func cloneLocation(location Location) Location {
	if location == nil {
		return Location{}
	}
	return slices.Clone(location)
}

func (r Request) Kind() Kind {
	return r.kind
}

// Hash is the content address of the requested data.
func (r Request) Hash() common.Hash {
	return r.hash
}

// Location returns a copy of the trie path of the requested node, if present.
func (r Request) Location() (Location, bool) {
	if !r.hasLocation {
		return nil, false
	}
	return slices.Clone(r.location), true
}

// AccountHash returns the hash of the account owning the requested storage
// node or code, if present.
func (r Request) AccountHash() (common.Hash, bool) {
	return r.accountHash, r.hasAccountHash
}

// Equal tests whether both requests target the same data in the same way.
func (r Request) Equal(other Request) bool {
	return r.kind == other.kind &&
		r.hash == other.hash &&
		r.hasLocation == other.hasLocation &&
		slices.Equal(r.location, other.location) &&
		r.hasAccountHash == other.hasAccountHash &&
		r.accountHash == other.accountHash
}

func (r Request) String() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%v(hash=%v", r.kind, r.hash)
	if r.hasAccountHash {
		fmt.Fprintf(&builder, ", account=%v", r.accountHash)
	}
	if r.hasLocation {
		fmt.Fprintf(&builder, ", location=[%v]", r.location)
	}
	builder.WriteString(")")
	return builder.String()
}

// locationOrRoot and accountHashOrZero provide the keys used for absent
// optional fields when addressing the storage.
func (r Request) locationOrRoot() []byte {
	if r.location == nil {
		return []byte{}
	}
	return r.location
}

func (r Request) accountHashOrZero() common.Hash {
	return r.accountHash
}

// ExistingData looks up the requested data in the given storage. The
// result is false if the data is not present.
func (r Request) ExistingData(storage worldstate.Reader) ([]byte, bool, error) {
	var data []byte
	var err error
	switch r.kind {
	case AccountTrieNode:
		data, err = storage.GetAccountTrieNode(r.locationOrRoot(), r.hash)
	case StorageTrieNode:
		data, err = storage.GetStorageTrieNode(r.accountHashOrZero(), r.locationOrRoot(), r.hash)
	case Code:
		data, err = storage.GetCode(r.hash, r.accountHashOrZero())
	default:
		panic(fmt.Sprintf("unsupported request kind: %v", r.kind))
	}
	if errors.Is(err, worldstate.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up %v: %w", r, err)
	}
	return data, true, nil
}

// Resolve attaches the fetched data to the request. The resulting state
// requires persisting by default.
func (r Request) Resolve(data []byte) *Resolved {
	return &Resolved{
		Request:            r,
		data:               data,
		requiresPersisting: true,
	}
}
