// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"encoding/hex"
	"fmt"
)

// HashSize is the size of a Hash in bytes.
const HashSize = 32

// Hash is a 32-byte Keccak256 digest used to content-address trie nodes and
// contract codes.
type Hash [HashSize]byte

// HashFromBytes converts the given slice into a Hash. It fails if the slice
// does not have exactly HashSize bytes.
func HashFromBytes(data []byte) (Hash, error) {
	var res Hash
	if len(data) != HashSize {
		return res, fmt.Errorf("invalid hash length: got: %d, wanted: %d", len(data), HashSize)
	}
	copy(res[:], data)
	return res, nil
}

func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

// HashFromString parses a hex encoded hash, with or without 0x prefix.
func HashFromString(str string) (Hash, error) {
	if len(str) >= 2 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X') {
		str = str[2:]
	}
	data, err := hex.DecodeString(str)
	if err != nil {
		return Hash{}, err
	}
	return HashFromBytes(data)
}
