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
	"io"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/Fantom-foundation/worldsync/common"
	"github.com/Fantom-foundation/worldsync/database/mpt"
	"github.com/Fantom-foundation/worldsync/sync/nodedata"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

var (
	dbDirectoryFlag = cli.StringFlag{
		Name:     "dir",
		Usage:    "the LevelDB directory holding the world state",
		Required: true,
	}
	kindFlag = cli.StringFlag{
		Name:     "kind",
		Usage:    "the kind of the request, one of account, storage or code",
		Required: true,
	}
	hashFlag = cli.StringFlag{
		Name:     "hash",
		Usage:    "the hash of the requested node or code",
		Required: true,
	}
	locationFlag = cli.StringFlag{
		Name:  "location",
		Usage: "the trie path of the requested node as a string of hex nibbles",
	}
	accountFlag = cli.StringFlag{
		Name:  "account",
		Usage: "the hash of the account owning the requested storage node or code",
	}
)

// requestFromFlags builds the request described by the kind, hash,
// location and account flags.
func requestFromFlags(ctx *cli.Context) (nodedata.Request, error) {
	hash, err := common.HashFromString(ctx.String(hashFlag.Name))
	if err != nil {
		return nodedata.Request{}, fmt.Errorf("invalid hash: %w", err)
	}

	var location *nodedata.Location
	if ctx.IsSet(locationFlag.Name) {
		loc, err := parseLocation(ctx.String(locationFlag.Name))
		if err != nil {
			return nodedata.Request{}, err
		}
		location = &loc
	}

	var account *common.Hash
	if ctx.IsSet(accountFlag.Name) {
		hash, err := common.HashFromString(ctx.String(accountFlag.Name))
		if err != nil {
			return nodedata.Request{}, fmt.Errorf("invalid account hash: %w", err)
		}
		account = &hash
	}

	switch kind := strings.ToLower(ctx.String(kindFlag.Name)); kind {
	case "account":
		if location == nil {
			return nodedata.NewAccountRequest(hash, nil), nil
		}
		return nodedata.NewAccountRequest(hash, *location), nil
	case "storage":
		return nodedata.NewStorageRequest(hash, account, location), nil
	case "code":
		return nodedata.NewCodeRequest(hash, account), nil
	default:
		return nodedata.Request{}, fmt.Errorf("unknown request kind: %s", kind)
	}
}

// parseLocation converts a string of hex digits into a location holding
// one nibble per digit.
func parseLocation(str string) (nodedata.Location, error) {
	res := make(nodedata.Location, 0, len(str))
	for _, c := range strings.ToLower(str) {
		var n byte
		switch {
		case '0' <= c && c <= '9':
			n = byte(c - '0')
		case 'a' <= c && c <= 'f':
			n = byte(c-'a') + 10
		default:
			return nil, fmt.Errorf("invalid nibble '%c' in location %s", c, str)
		}
		res = append(res, n)
	}
	if len(res) > 2*common.HashSize {
		return nil, fmt.Errorf("location %s exceeds the trie depth", str)
	}
	return res, nil
}

// printRequest writes a human-readable summary of the request.
func printRequest(out io.Writer, request nodedata.Request) {
	fmt.Fprintf(out, "Kind:     %v\n", request.Kind())
	fmt.Fprintf(out, "Hash:     %v\n", request.Hash())
	if account, present := request.AccountHash(); present {
		fmt.Fprintf(out, "Account:  %v\n", account)
	}
	if location, present := request.Location(); present {
		fmt.Fprintf(out, "Location: [%v] (depth %d)\n", location, len(location))
	}
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// closeWith closes the given resource and merges a failure into the
// returned error of the calling command.
func closeWith(log zerolog.Logger, name string, closer io.Closer, err *error) {
	log.Debug().Str("resource", name).Msg("closing")
	if closeError := closer.Close(); closeError != nil {
		if *err == nil {
			*err = closeError
		} else {
			log.Error().Err(closeError).Str("resource", name).Msg("failure closing")
		}
	}
}

func startCPUProfile(profileName string) error {
	f, err := os.Create(profileName)
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %s", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		return fmt.Errorf("could not start CPU profile: %s", err)
	}
	return nil
}

func stopCPUProfile() {
	pprof.StopCPUProfile()
}

// nibbles is used to render paths of decoded nodes.
func nibbles(path []mpt.Nibble) string {
	var builder strings.Builder
	for _, n := range path {
		builder.WriteRune(n.Rune())
	}
	return builder.String()
}
