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

import "fmt"

// Nibble is a 4-bit unsigned integer in the range 0-F. It is a single letter
// used to navigate in the MPT structure.
type Nibble byte

// Rune converts a Nibble in a hexa-decimal rune (0-9a-f).
func (n Nibble) Rune() rune {
	if n < 10 {
		return rune('0' + n)
	} else if n < 16 {
		return rune('a' + n - 10)
	} else {
		return '?'
	}
}

// String converts a Nibble in a hexa-decimal string (0-9a-f).
func (n Nibble) String() string {
	return string(n.Rune())
}

// ToNibbles splits each byte of the given slice into its high and low nibble.
func ToNibbles(src []byte) []Nibble {
	res := make([]Nibble, len(src)*2)
	for i := 0; i < len(src); i++ {
		res[2*i] = Nibble(src[i] >> 4)
		res[2*i+1] = Nibble(src[i] & 0xF)
	}
	return res
}

// PackNibbles merges pairs of nibbles into bytes. It is the inverse of
// ToNibbles and requires an even number of valid nibbles.
func PackNibbles(nibbles []Nibble) ([]byte, error) {
	if len(nibbles)%2 != 0 {
		return nil, fmt.Errorf("cannot pack odd number of nibbles: %d", len(nibbles))
	}
	res := make([]byte, len(nibbles)/2)
	for i := range res {
		high, low := nibbles[2*i], nibbles[2*i+1]
		if high > 0xF || low > 0xF {
			return nil, fmt.Errorf("invalid nibble at position %d", 2*i)
		}
		res[i] = byte(high)<<4 | byte(low)
	}
	return res, nil
}
