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
	"sync"

	"golang.org/x/crypto/sha3"
)

// EmptyCodeHash is the hash of a zero-length code blob. Accounts without code
// refer to it and never need a code fetch.
var EmptyCodeHash = Keccak256([]byte{})

var keccakHasherPool = sync.Pool{New: func() any { return sha3.NewLegacyKeccak256() }}

// Keccak256 computes the legacy Keccak256 digest of the given data.
func Keccak256(data []byte) Hash {
	hasher := keccakHasherPool.Get().(keccakHasher)
	hasher.Reset()
	hasher.Write(data)
	var res Hash
	hasher.Read(res[:])
	keccakHasherPool.Put(hasher)
	return res
}

type keccakHasher interface {
	Reset()
	Write(in []byte) (int, error)
	Read(out []byte) (int, error)
}
