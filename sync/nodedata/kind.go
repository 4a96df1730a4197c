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
)

// ErrFormat is reported for encoded requests that can not be decoded.
const ErrFormat = common.ConstError("invalid node data request encoding")

// Kind identifies the category of world state data targeted by a request.
// The numeric values are used as wire codes and must never change.
type Kind byte

const (
	AccountTrieNode Kind = 1
	StorageTrieNode Kind = 2
	Code            Kind = 3
)

// DecodeKind parses a wire code. Unknown codes are rejected.
func DecodeKind(b byte) (Kind, error) {
	switch k := Kind(b); k {
	case AccountTrieNode, StorageTrieNode, Code:
		return k, nil
	}
	return 0, fmt.Errorf("%w: unknown request kind %d", ErrFormat, b)
}

// Encode returns the wire code of the kind.
func (k Kind) Encode() byte {
	return byte(k)
}

func (k Kind) String() string {
	switch k {
	case AccountTrieNode:
		return "AccountTrieNode"
	case StorageTrieNode:
		return "StorageTrieNode"
	case Code:
		return "Code"
	}
	return fmt.Sprintf("Kind(%d)", byte(k))
}
