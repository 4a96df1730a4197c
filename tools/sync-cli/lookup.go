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
	"fmt"

	"github.com/Fantom-foundation/worldsync/database/mpt"
	"github.com/Fantom-foundation/worldsync/database/worldstate/ldb"
	"github.com/Fantom-foundation/worldsync/sync/nodedata"
	"github.com/urfave/cli/v2"
)

var lookupCommand = cli.Command{
	Action: lookup,
	Name:   "lookup",
	Usage:  "prints the locally stored data of a request",
	Flags: []cli.Flag{
		&dbDirectoryFlag,
		&kindFlag,
		&hashFlag,
		&locationFlag,
		&accountFlag,
	},
}

func lookup(ctx *cli.Context) (err error) {
	request, err := requestFromFlags(ctx)
	if err != nil {
		return err
	}

	log := newLogger()
	dir := ctx.String(dbDirectoryFlag.Name)
	log.Info().Str("dir", dir).Msg("opening storage")
	storage, err := ldb.Open(dir)
	if err != nil {
		return err
	}
	defer closeWith(log, dir, storage, &err)

	out := ctx.App.Writer
	printRequest(out, request)
	data, found, err := request.ExistingData(storage)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintln(out, "Data:     not found")
		return nil
	}
	fmt.Fprintf(out, "Data:     %x\n", data)
	if request.Kind() == nodedata.Code {
		return nil
	}

	content, err := mpt.DecodeNodeContent(data)
	if err != nil {
		return fmt.Errorf("stored node is invalid: %w", err)
	}
	for _, child := range content.Children {
		fmt.Fprintf(out, "Child:    [%s] %v\n", nibbles(child.Path), child.Hash)
	}
	for _, value := range content.Values {
		fmt.Fprintf(out, "Value:    [%s] %x\n", nibbles(value.Path), value.Value)
	}
	return nil
}
