// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/Fantom-foundation/worldsync/sync/nodedata"
	"github.com/Fantom-foundation/worldsync/sync/queue"
	"github.com/urfave/cli/v2"
)

var (
	queuePathFlag = cli.StringFlag{
		Name:     "queue",
		Usage:    "the file holding the request queue",
		Required: true,
	}
	maxFlag = cli.IntFlag{
		Name:  "max",
		Usage: "the maximum number of requests to list",
		Value: 10,
	}
	pushFlag = cli.StringSliceFlag{
		Name:  "push",
		Usage: "hex encoded requests to append to the queue before listing",
	}
)

var queueCommand = cli.Command{
	Action: listQueue,
	Name:   "queue",
	Usage:  "lists the oldest requests of a request queue",
	Flags: []cli.Flag{
		&queuePathFlag,
		&maxFlag,
		&pushFlag,
	},
}

func listQueue(ctx *cli.Context) (err error) {
	log := newLogger()
	path := ctx.String(queuePathFlag.Name)
	log.Info().Str("path", path).Msg("opening queue")
	q, err := queue.Open(path)
	if err != nil {
		return err
	}
	defer closeWith(log, path, q, &err)

	for _, str := range ctx.StringSlice(pushFlag.Name) {
		data, err := hex.DecodeString(str)
		if err != nil {
			return fmt.Errorf("invalid hex input: %w", err)
		}
		request, err := nodedata.Deserialize(data)
		if err != nil {
			return err
		}
		if err := q.Push(request); err != nil {
			return err
		}
	}

	size, err := q.Len()
	if err != nil {
		return err
	}
	requests, err := q.Peek(ctx.Int(maxFlag.Name))
	if err != nil {
		return err
	}
	out := ctx.App.Writer
	fmt.Fprintf(out, "Queued requests: %d\n", size)
	for i, request := range requests {
		fmt.Fprintf(out, "%5d: %v\n", i, request)
	}
	return nil
}
