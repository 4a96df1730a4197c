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
	"bytes"
	"fmt"

	"github.com/Fantom-foundation/worldsync/common"
	"github.com/Fantom-foundation/worldsync/database/mpt/rlp"
	"golang.org/x/exp/slices"
)

var emptyStringRlpEncoded = rlp.Encode(rlp.String{})

// EmptyNodeHash is the hash of the empty node, which is used by Ethereum as
// the root hash of an empty trie.
var EmptyNodeHash = common.Keccak256(emptyStringRlpEncoded)

// ChildReference is a child node referenced by its hash from within a
// decoded node. Such children are not part of the decoded data and need to
// be obtained separately.
type ChildReference struct {
	Hash common.Hash
	// Path leads from the decoded node to the child.
	Path []Nibble
}

// LeafValue is a value stored in the decoded node or one of its embedded
// descendants.
type LeafValue struct {
	// Path leads from the decoded node to the end of the value's key.
	Path  []Nibble
	Value []byte
}

// NodeContent summarizes the references and values found in an RLP encoded
// trie node, including all nodes embedded in it.
type NodeContent struct {
	Children []ChildReference
	Values   []LeafValue
}

// DecodeNodeContent decodes a node from RLP-encoded data and collects the
// hashes of its children and its values. Embedded nodes are descended into,
// references to the empty node are dropped. It checks for malformed data and
// returns an error if the data is not valid.
func DecodeNodeContent(data []byte) (NodeContent, error) {
	res := NodeContent{}
	if bytes.Equal(data, emptyStringRlpEncoded) {
		return res, nil
	}
	item, err := rlp.Decode(data)
	if err != nil {
		return res, err
	}
	if err := collectNodeContent(item, nil, &res); err != nil {
		return NodeContent{}, err
	}
	return res, nil
}

func collectNodeContent(item rlp.Item, prefix []Nibble, res *NodeContent) error {
	list, ok := item.(rlp.List)
	if !ok {
		return fmt.Errorf("invalid node type: got: %T, wanted: List", item)
	}

	switch len(list.Items) {
	case 2:
		path, ok := list.Items[0].(rlp.String)
		if !ok || len(path.Str) == 0 {
			return fmt.Errorf("invalid prefix type: got: %T, wanted: non-empty String", list.Items[0])
		}
		nibbles, err := compactPathToNibbles(path.Str)
		if err != nil {
			return err
		}
		if len(nibbles)+len(prefix) > 64 {
			return fmt.Errorf("invalid path length: got: %v, wanted: <= 64", len(nibbles)+len(prefix))
		}
		full := append(slices.Clone(prefix), nibbles...)
		if !isEncodedLeafNode(path.Str) {
			return collectChild(list.Items[1], full, res)
		}
		value, ok := list.Items[1].(rlp.String)
		if !ok {
			return fmt.Errorf("invalid leaf payload: got: %T, wanted: String", list.Items[1])
		}
		res.Values = append(res.Values, LeafValue{Path: full, Value: value.Str})
		return nil

	case 17:
		for i, child := range list.Items[:16] {
			path := append(slices.Clone(prefix), Nibble(i))
			if err := collectChild(child, path, res); err != nil {
				return err
			}
		}
		value, ok := list.Items[16].(rlp.String)
		if !ok {
			return fmt.Errorf("invalid branch value: got: %T, wanted: String", list.Items[16])
		}
		if len(value.Str) > 0 {
			res.Values = append(res.Values, LeafValue{Path: slices.Clone(prefix), Value: value.Str})
		}
		return nil
	}

	return fmt.Errorf("invalid number of list elements: got: %v, wanted: either 2 or 17", len(list.Items))
}

// collectChild records a child of a branch or extension node. A child is
// either absent (empty string), referenced by its hash, or embedded as a
// list of less than 32 bytes.
func collectChild(item rlp.Item, path []Nibble, res *NodeContent) error {
	switch child := item.(type) {
	case rlp.String:
		if len(child.Str) == 0 {
			return nil
		}
		hash, err := common.HashFromBytes(child.Str)
		if err != nil {
			return fmt.Errorf("invalid child reference: %w", err)
		}
		if hash != EmptyNodeHash {
			res.Children = append(res.Children, ChildReference{Hash: hash, Path: path})
		}
		return nil
	case rlp.List:
		if size := len(rlp.Encode(child)); size >= common.HashSize {
			return fmt.Errorf("embedded node is too long: got: %v, wanted: < 32", size)
		}
		return collectNodeContent(child, path, res)
	}
	return fmt.Errorf("invalid child type: %T", item)
}

// isEncodedLeafNode checks if the path is a leaf node in the compact encoding.
// In the compact encoding, the first nibble of the path contains the oddness of the path,
// and if the node is leaf or not.
// The encoding is as follows:
// - 0b_0000_0000 (0x00): extension node, even path
// - 0b_0001_xxxx (0x1_): extension node, odd path
// - 0b_0010_0000 (0x20): leaf node, even path
// - 0b_0011_xxxx (0x3_): leaf node, odd path
func isEncodedLeafNode(path []byte) bool {
	return path[0]&0b_0010_0000>>5 == 1
}

// compactPathToNibbles converts a compact path to nibbles.
// The compact path packs two nibbles into a single byte. The higher nibble
// of the first byte holds the flags described at isEncodedLeafNode. For odd
// paths the lower nibble of the first byte is the first path element, for
// even paths it is zero padding.
// Examples:
//
//	[5,6,7,8,9] -> [15,67,89] extension node, or [35,67,89] leaf node
//	[4,5,6,7,8,9] -> [00,45,67,89] extension node, or [20,45,67,89] leaf node
func compactPathToNibbles(path []byte) ([]Nibble, error) {
	flags := path[0] >> 4
	if flags > 3 {
		return nil, fmt.Errorf("invalid compact path flags: %x", flags)
	}
	odd := int(flags & 1)
	if odd == 0 && path[0]&0xF != 0 {
		return nil, fmt.Errorf("invalid padding of even compact path: %x", path[0])
	}
	return ToNibbles(path)[2-odd:], nil
}
