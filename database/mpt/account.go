// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package mpt

import (
	"fmt"

	"github.com/Fantom-foundation/worldsync/common"
	"github.com/Fantom-foundation/worldsync/database/mpt/rlp"
	"github.com/holiman/uint256"
)

// Account is the value stored in the leaves of the account trie.
type Account struct {
	Nonce       uint64
	Balance     uint256.Int
	StorageRoot common.Hash
	CodeHash    common.Hash
}

// HasCode is true if the account refers to a non-empty contract code.
func (a *Account) HasCode() bool {
	return a.CodeHash != common.EmptyCodeHash
}

// HasStorage is true if the storage trie of the account is non-empty.
func (a *Account) HasStorage() bool {
	return a.StorageRoot != EmptyNodeHash
}

// Encode produces the RLP encoding of the account as stored in trie leaves.
func (a *Account) Encode() []byte {
	return rlp.Encode(rlp.List{Items: []rlp.Item{
		rlp.Uint64{Value: a.Nonce},
		rlp.String{Str: a.Balance.Bytes()},
		rlp.Hash{Hash: &a.StorageRoot},
		rlp.Hash{Hash: &a.CodeHash},
	}})
}

// DecodeAccount parses the RLP encoded value of an account trie leaf.
func DecodeAccount(data []byte) (Account, error) {
	item, err := rlp.Decode(data)
	if err != nil {
		return Account{}, err
	}
	list, ok := item.(rlp.List)
	if !ok {
		return Account{}, fmt.Errorf("invalid account type: got: %T, wanted: List", item)
	}
	if len(list.Items) != 4 {
		return Account{}, fmt.Errorf("invalid number of account items: got: %v, wanted: 4", len(list.Items))
	}

	var fields [4][]byte
	for i, cur := range list.Items {
		str, ok := cur.(rlp.String)
		if !ok {
			return Account{}, fmt.Errorf("invalid type of account field %d: got: %T, wanted: String", i, cur)
		}
		fields[i] = str.Str
	}

	res := Account{}
	res.Nonce, err = rlp.String{Str: fields[0]}.Uint64()
	if err != nil {
		return Account{}, fmt.Errorf("invalid nonce: %w", err)
	}
	if len(fields[1]) > 32 {
		return Account{}, fmt.Errorf("balance is too long: got: %v, wanted: <= 32", len(fields[1]))
	}
	res.Balance.SetBytes(fields[1])
	if res.StorageRoot, err = common.HashFromBytes(fields[2]); err != nil {
		return Account{}, fmt.Errorf("invalid storage root: %w", err)
	}
	if res.CodeHash, err = common.HashFromBytes(fields[3]); err != nil {
		return Account{}, fmt.Errorf("invalid code hash: %w", err)
	}
	return res, nil
}
