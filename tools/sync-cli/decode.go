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
	"strings"

	"github.com/Fantom-foundation/worldsync/sync/nodedata"
	"github.com/urfave/cli/v2"
)

var (
	hexFlag = cli.StringFlag{
		Name:     "hex",
		Usage:    "the hex encoded request",
		Required: true,
	}
)

var decodeCommand = cli.Command{
	Action: decode,
	Name:   "decode",
	Usage:  "decodes a serialized node data request",
	Flags: []cli.Flag{
		&hexFlag,
	},
}

func decode(ctx *cli.Context) error {
	data, err := hex.DecodeString(strings.TrimPrefix(ctx.String(hexFlag.Name), "0x"))
	if err != nil {
		return fmt.Errorf("invalid hex input: %w", err)
	}
	request, err := nodedata.Deserialize(data)
	if err != nil {
		return err
	}
	printRequest(ctx.App.Writer, request)
	return nil
}
