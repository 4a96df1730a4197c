// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package queue

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/Fantom-foundation/worldsync/sync/nodedata"
	bolt "go.etcd.io/bbolt"
)

var requestsBucket = []byte("requests")

// Queue is a persistent first-in-first-out queue of node data requests
// stored in a bbolt database file. Requests are kept in their serialized
// form, so pending work survives restarts. Queues are safe for concurrent
// use.
type Queue struct {
	db *bolt.DB
}

// Open opens the queue stored in the given file, creating it if needed.
func Open(path string) (*Queue, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 500 * time.Millisecond})
	if err != nil {
		return nil, fmt.Errorf("failed to open queue %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(requestsBucket)
		return err
	})
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return &Queue{db: db}, nil
}

// Push appends the given requests to the end of the queue.
func (q *Queue) Push(requests ...nodedata.Request) error {
	if len(requests) == 0 {
		return nil
	}
	return q.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(requestsBucket)
		for _, request := range requests {
			seq, err := bucket.NextSequence()
			if err != nil {
				return err
			}
			if err := bucket.Put(toKey(seq), nodedata.Serialize(request)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Pop removes and returns up to max of the oldest requests in the queue.
// If any of those can not be decoded, the queue is left unmodified.
func (q *Queue) Pop(max int) ([]nodedata.Request, error) {
	var res []nodedata.Request
	err := q.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(requestsBucket)
		var keys [][]byte
		var err error
		keys, res, err = scan(bucket, max)
		if err != nil {
			return err
		}
		// keys are deleted after the iteration since deleting through
		// the cursor skips elements
		for _, key := range keys {
			if err := bucket.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Peek returns up to max of the oldest requests without removing them.
func (q *Queue) Peek(max int) ([]nodedata.Request, error) {
	var res []nodedata.Request
	err := q.db.View(func(tx *bolt.Tx) error {
		var err error
		_, res, err = scan(tx.Bucket(requestsBucket), max)
		return err
	})
	return res, err
}

// Len returns the number of requests in the queue.
func (q *Queue) Len() (int, error) {
	var res int
	err := q.db.View(func(tx *bolt.Tx) error {
		res = tx.Bucket(requestsBucket).Stats().KeyN
		return nil
	})
	return res, err
}

func (q *Queue) Close() error {
	return q.db.Close()
}

func scan(bucket *bolt.Bucket, max int) ([][]byte, []nodedata.Request, error) {
	var keys [][]byte
	var requests []nodedata.Request
	cursor := bucket.Cursor()
	for key, value := cursor.First(); key != nil && len(requests) < max; key, value = cursor.Next() {
		request, err := nodedata.Deserialize(value)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid queue entry %d: %w", binary.BigEndian.Uint64(key), err)
		}
		keys = append(keys, append([]byte(nil), key...))
		requests = append(requests, request)
	}
	return keys, requests, nil
}

// toKey encodes sequence numbers in big-endian order to make the key order
// match the insertion order.
func toKey(seq uint64) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], seq)
	return key[:]
}
