// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package nodedata models requests for world state data exchanged while
// synchronizing a Merkle-Patricia trie from remote peers. A Request names an
// account trie node, a storage trie node or a contract code by its hash and,
// for trie nodes, by its location in the trie. Once the requested bytes
// arrive, the request is resolved, the bytes are persisted and the requests
// for the children referenced by the received node are derived.
package nodedata
