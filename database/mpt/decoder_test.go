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
	"testing"

	"github.com/Fantom-foundation/worldsync/common"
	"github.com/Fantom-foundation/worldsync/database/mpt/rlp"
	"golang.org/x/exp/slices"
)

func TestEmptyNodeHash_MatchesEthereumEmptyRoot(t *testing.T) {
	want, err := common.HashFromString("56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421")
	if err != nil {
		t.Fatalf("failed to parse hash: %v", err)
	}
	if EmptyNodeHash != want {
		t.Errorf("unexpected empty node hash, wanted %v, got %v", want, EmptyNodeHash)
	}
}

func TestDecodeNodeContent_EmptyNodeHasNoContent(t *testing.T) {
	content, err := DecodeNodeContent(emptyStringRlpEncoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(content.Children) != 0 || len(content.Values) != 0 {
		t.Errorf("unexpected content of empty node: %v", content)
	}
}

func TestDecodeNodeContent_BranchNodeReferencesChildren(t *testing.T) {
	hash1 := common.Hash{1}
	hash2 := common.Hash{2}
	children := map[int]rlp.Item{
		3:  rlp.Hash{Hash: &hash1},
		12: rlp.Hash{Hash: &hash2},
		15: rlp.Hash{Hash: &EmptyNodeHash},
	}
	data := rlp.Encode(branch(children, nil))

	content, err := DecodeNodeContent(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ChildReference{
		{Hash: hash1, Path: []Nibble{3}},
		{Hash: hash2, Path: []Nibble{12}},
	}
	if !equalReferences(content.Children, want) {
		t.Errorf("unexpected children, wanted %v, got %v", want, content.Children)
	}
	if len(content.Values) != 0 {
		t.Errorf("unexpected values: %v", content.Values)
	}
}

func TestDecodeNodeContent_BranchNodeWithValue(t *testing.T) {
	data := rlp.Encode(branch(nil, []byte{1, 2, 3}))
	content, err := DecodeNodeContent(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(content.Values) != 1 || len(content.Values[0].Path) != 0 || !bytes.Equal(content.Values[0].Value, []byte{1, 2, 3}) {
		t.Errorf("unexpected values: %v", content.Values)
	}
}

func TestDecodeNodeContent_ExtensionNodeReferencesChild(t *testing.T) {
	next := common.Hash{7}
	data := rlp.Encode(rlp.List{Items: []rlp.Item{
		rlp.String{Str: []byte{0x15, 0x67}},
		rlp.Hash{Hash: &next},
	}})
	content, err := DecodeNodeContent(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ChildReference{{Hash: next, Path: []Nibble{5, 6, 7}}}
	if !equalReferences(content.Children, want) {
		t.Errorf("unexpected children, wanted %v, got %v", want, content.Children)
	}
}

func TestDecodeNodeContent_LeafNodeProducesValue(t *testing.T) {
	data := rlp.Encode(leaf([]byte{0x20, 0x45, 0x67}, []byte{9, 9}))
	content, err := DecodeNodeContent(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(content.Children) != 0 {
		t.Errorf("leaf should have no children, got %v", content.Children)
	}
	if len(content.Values) != 1 {
		t.Fatalf("expected a single value, got %v", content.Values)
	}
	if got, want := content.Values[0].Path, []Nibble{4, 5, 6, 7}; !slices.Equal(got, want) {
		t.Errorf("unexpected value path, wanted %v, got %v", want, got)
	}
	if got, want := content.Values[0].Value, []byte{9, 9}; !bytes.Equal(got, want) {
		t.Errorf("unexpected value, wanted %v, got %v", want, got)
	}
}

func TestDecodeNodeContent_EmbeddedNodesAreDescendedInto(t *testing.T) {
	hash := common.Hash{5}
	embeddedLeaf := leaf([]byte{0x31}, []byte{0xaa})
	embeddedBranch := branch(map[int]rlp.Item{2: leaf([]byte{0x20}, []byte{0xbb})}, nil)
	data := rlp.Encode(branch(map[int]rlp.Item{
		0: rlp.Hash{Hash: &hash},
		4: embeddedLeaf,
		9: embeddedBranch,
	}, nil))

	content, err := DecodeNodeContent(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantChildren := []ChildReference{{Hash: hash, Path: []Nibble{0}}}
	if !equalReferences(content.Children, wantChildren) {
		t.Errorf("unexpected children, wanted %v, got %v", wantChildren, content.Children)
	}
	wantValues := []LeafValue{
		{Path: []Nibble{4, 1}, Value: []byte{0xaa}},
		{Path: []Nibble{9, 2}, Value: []byte{0xbb}},
	}
	if len(content.Values) != len(wantValues) {
		t.Fatalf("unexpected values, wanted %v, got %v", wantValues, content.Values)
	}
	for i, want := range wantValues {
		got := content.Values[i]
		if !slices.Equal(got.Path, want.Path) || !bytes.Equal(got.Value, want.Value) {
			t.Errorf("unexpected value %d, wanted %v, got %v", i, want, got)
		}
	}
}

func TestDecodeNodeContent_RejectsMalformedNodes(t *testing.T) {
	hash := common.Hash{1}
	tests := map[string][]byte{
		"no rlp":          {0xc5, 1},
		"string":          rlp.Encode(rlp.String{Str: []byte{1, 2}}),
		"three items":     rlp.Encode(rlp.List{Items: []rlp.Item{rlp.String{}, rlp.String{}, rlp.String{}}}),
		"empty path":      rlp.Encode(leaf([]byte{}, []byte{1})),
		"invalid flags":   rlp.Encode(leaf([]byte{0x40}, []byte{1})),
		"invalid padding": rlp.Encode(leaf([]byte{0x21}, []byte{1})),
		"list value":      rlp.Encode(rlp.List{Items: []rlp.Item{rlp.String{Str: []byte{0x20}}, rlp.List{}}}),
		"short hash":      rlp.Encode(branch(map[int]rlp.Item{1: rlp.String{Str: []byte{1, 2, 3}}}, nil)),
		"list branch value": rlp.Encode(rlp.List{Items: append(
			branch(nil, nil).Items[:16], rlp.List{})}),
		"oversized embedded": rlp.Encode(branch(map[int]rlp.Item{
			1: leaf([]byte{0x20}, make([]byte, 40)),
		}, nil)),
		"too long path": rlp.Encode(rlp.List{Items: []rlp.Item{
			rlp.String{Str: make([]byte, 34)},
			rlp.Hash{Hash: &hash},
		}}),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeNodeContent(data); err == nil {
				t.Errorf("expected error for %x", data)
			}
		})
	}
}

func TestCompactPathToNibbles(t *testing.T) {
	tests := []struct {
		compact []byte
		want    []Nibble
	}{
		{[]byte{0x15, 0x67, 0x89}, []Nibble{5, 6, 7, 8, 9}},
		{[]byte{0x35, 0x67, 0x89}, []Nibble{5, 6, 7, 8, 9}},
		{[]byte{0x00, 0x45, 0x67, 0x89}, []Nibble{4, 5, 6, 7, 8, 9}},
		{[]byte{0x20, 0x45, 0x67, 0x89}, []Nibble{4, 5, 6, 7, 8, 9}},
		{[]byte{0x20}, []Nibble{}},
	}
	for _, test := range tests {
		got, err := compactPathToNibbles(test.compact)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(got, test.want) {
			t.Errorf("unexpected nibbles for %x, wanted %v, got %v", test.compact, test.want, got)
		}
	}
}

func branch(children map[int]rlp.Item, value []byte) rlp.List {
	items := make([]rlp.Item, 17)
	for i := 0; i < 16; i++ {
		items[i] = rlp.String{}
		if child, found := children[i]; found {
			items[i] = child
		}
	}
	items[16] = rlp.String{Str: value}
	return rlp.List{Items: items}
}

func leaf(compactPath []byte, value []byte) rlp.List {
	return rlp.List{Items: []rlp.Item{rlp.String{Str: compactPath}, rlp.String{Str: value}}}
}

func equalReferences(a, b []ChildReference) bool {
	return slices.EqualFunc(a, b, func(x, y ChildReference) bool {
		return x.Hash == y.Hash && slices.Equal(x.Path, y.Path)
	})
}
