// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package rlp

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/Fantom-foundation/worldsync/common"
	gethrlp "github.com/ethereum/go-ethereum/rlp"
)

type rlpTestCase struct {
	item Item
	rlp  []byte
}

func getStringTestCases() []rlpTestCase {
	return []rlpTestCase{
		{String{}, []byte{0x80}},
		{String{[]byte{0}}, []byte{0}},
		{String{[]byte{1}}, []byte{1}},
		{String{[]byte{0x7f}}, []byte{0x7f}},
		{String{[]byte{0x80}}, []byte{0x81, 0x80}},
		{String{[]byte{0xff}}, []byte{0x81, 0xff}},
		{String{[]byte{0, 0}}, []byte{0x82, 0, 0}},
		{String{[]byte{1, 2, 3}}, []byte{0x83, 1, 2, 3}},
		{String{make([]byte, 55)}, expand([]byte{0x80 + 55}, 56)},
		{String{make([]byte, 56)}, expand([]byte{0xb7 + 1, 56}, 58)},
		{String{make([]byte, 1024)}, expand([]byte{0xb7 + 2, 1024 >> 8, 1024 & 0xff}, 1027)},
	}
}

func getListTestCases() []rlpTestCase {
	return []rlpTestCase{
		{List{}, []byte{0xc0}},
		{List{[]Item{String{[]byte{1}}}}, []byte{0xc1, 1}},
		{List{[]Item{String{[]byte{1, 2}}}}, []byte{0xc3, 0x82, 1, 2}},
		{List{[]Item{String{[]byte{1}}, String{[]byte{2}}}}, []byte{0xc2, 1, 2}},
		{List{[]Item{List{}, List{[]Item{String{}}}}}, []byte{0xc3, 0xc0, 0xc1, 0x80}},
		{List{[]Item{String{make([]byte, 100)}}}, expand([]byte{0xf7 + 1, 102, 0xb8, 100}, 4+100)},
	}
}

func getUint64TestCases() []rlpTestCase {
	return []rlpTestCase{
		{Uint64{0}, []byte{0x80}},
		{Uint64{1}, []byte{1}},
		{Uint64{0x7f}, []byte{0x7f}},
		{Uint64{0x80}, []byte{0x81, 0x80}},
		{Uint64{256}, []byte{0x82, 1, 0}},
		{Uint64{1<<24 + 1}, []byte{0x84, 1, 0, 0, 1}},
		{Uint64{1 << 56}, []byte{0x88, 1, 0, 0, 0, 0, 0, 0, 0}},
	}
}

func getHashTestCases() []rlpTestCase {
	res := []rlpTestCase{}
	for i := 0; i < common.HashSize; i++ {
		hash := common.Hash{}
		hash[i] = byte(i + 1)
		res = append(res, rlpTestCase{Hash{&hash}, append([]byte{0xa0}, hash[:]...)})
	}
	return res
}

func getAllTestCases() []rlpTestCase {
	res := getStringTestCases()
	res = append(res, getListTestCases()...)
	res = append(res, getUint64TestCases()...)
	return append(res, getHashTestCases()...)
}

func TestEncode_ProducesExpectedBytes(t *testing.T) {
	for _, test := range getAllTestCases() {
		t.Run(fmt.Sprintf("%x", test.rlp), func(t *testing.T) {
			if got, want := Encode(test.item), test.rlp; !bytes.Equal(got, want) {
				t.Errorf("invalid encoding, wanted %x, got %x", want, got)
			}
			if got, want := test.item.getEncodedLength(), len(test.rlp); got != want {
				t.Errorf("invalid encoded length, wanted %d, got %d", want, got)
			}
		})
	}
}

func TestDecode_RestoresEncodedItems(t *testing.T) {
	for _, test := range getAllTestCases() {
		t.Run(fmt.Sprintf("%x", test.rlp), func(t *testing.T) {
			got, err := Decode(test.rlp)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !equal(got, test.item) {
				t.Errorf("invalid decoding, wanted %v, got %v", test.item, got)
			}
		})
	}
}

func TestEncode_MatchesGethEncoding(t *testing.T) {
	hash := common.Hash{1, 2, 3}
	value := []interface{}{
		uint(3),
		hash[:],
		[]byte{},
		[]byte{0x0f, 0x01},
		[]interface{}{[]byte("nested"), uint64(1 << 40)},
		make([]byte, 80),
	}
	want, err := gethrlp.EncodeToBytes(value)
	if err != nil {
		t.Fatalf("failed to encode with geth: %v", err)
	}
	got := Encode(List{[]Item{
		Uint64{3},
		Hash{&hash},
		String{},
		String{[]byte{0x0f, 0x01}},
		List{[]Item{String{[]byte("nested")}, Uint64{1 << 40}}},
		String{make([]byte, 80)},
	}})
	if !bytes.Equal(got, want) {
		t.Errorf("encoding differs from geth, wanted %x, got %x", want, got)
	}
}

func TestEncoded_IsEmbeddedVerbatim(t *testing.T) {
	for _, data := range [][]byte{{}, {1}, {1, 2, 3}} {
		if got := Encode(Encoded{data}); !bytes.Equal(got, data) {
			t.Errorf("invalid encoding, wanted %v, got %v", data, got)
		}
	}
	inner := Encode(List{[]Item{String{[]byte{1}}}})
	got := Encode(List{[]Item{Encoded{inner}}})
	if want := []byte{0xc2, 0xc1, 1}; !bytes.Equal(got, want) {
		t.Errorf("invalid encoding, wanted %x, got %x", want, got)
	}
}

func TestString_Uint64(t *testing.T) {
	for _, test := range getUint64TestCases() {
		item, err := Decode(test.rlp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := item.(String).Uint64()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := test.item.(Uint64).Value; got != want {
			t.Errorf("invalid value, wanted %d, got %d", want, got)
		}
	}
	if _, err := (String{make([]byte, 9)}).Uint64(); err == nil {
		t.Errorf("expected error for oversized value")
	}
}

func TestReadSize_AllSizes(t *testing.T) {
	want := uint64(0)
	for i := 1; i <= 8; i++ {
		b := bytes.Repeat([]byte{0xff}, i)
		got, err := readSize(b, byte(i))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want = want<<8 | 0xff
		if got != want {
			t.Errorf("invalid size, wanted %d, got %d", want, got)
		}
	}
	if _, err := readSize([]byte{1}, 4); err == nil {
		t.Errorf("expected error for missing size bytes")
	}
	if _, err := readSize([]byte{0, 1}, 2); err == nil {
		t.Errorf("expected error for leading zero")
	}
}

func TestDecode_RejectsCorruptedInput(t *testing.T) {
	tests := [][]byte{
		{},                         // empty
		{0x80 + 1},                 // short string with missing payload
		{0xb7 + 1},                 // long string with missing size
		{0xb7 + 1, 60},             // long string with missing payload
		{0xb7 + 1, 10, 1},          // long string with a short size
		{0xc0 + 1},                 // short list with missing payload
		{0xf7 + 1},                 // long list with missing size
		{0xf7 + 1, 80, 1},          // long list with missing payload
		{0x80, 0x80},               // trailing data
		{0x80 + 1, 0x03},           // single byte wrapped as short string
		{0xc0 + 2, 0x80 + 1, 0x7f}, // wrapped single byte inside a list
		{0xc0 + 2, 0xc0 + 2, 0x1},  // inner list with missing payload
	}
	for _, rlp := range tests {
		t.Run(fmt.Sprintf("%x", rlp), func(t *testing.T) {
			if _, err := Decode(rlp); err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}
}

func expand(prefix []byte, size int) []byte {
	res := make([]byte, size)
	copy(res, prefix)
	return res
}

func equal(a, b Item) bool {
	if a == nil || b == nil {
		return a == b
	}
	return bytes.Equal(Encode(a), Encode(b))
}
