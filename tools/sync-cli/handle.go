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
	"os"

	"github.com/Fantom-foundation/worldsync/database/worldstate/ldb"
	"github.com/Fantom-foundation/worldsync/sync/queue"
	"github.com/Fantom-foundation/worldsync/sync/worldsync"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

var (
	dataFileFlag = cli.StringFlag{
		Name:     "data",
		Usage:    "the file holding the raw response data",
		Required: true,
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "a YAML file configuring the response processing",
	}
	verboseFlag = cli.BoolFlag{
		Name:  "verbose",
		Usage: "enable debug logging",
	}
	metricsFlag = cli.BoolFlag{
		Name:  "metrics",
		Usage: "print the processing metrics in the Prometheus text format",
	}
	cpuProfilingFlag = cli.StringFlag{
		Name:  "cpu-profile",
		Usage: "enable the recording of a CPU profile",
	}
)

var handleCommand = cli.Command{
	Action: handle,
	Name:   "handle",
	Usage:  "stores the response to a request and queues the requests for its children",
	Flags: []cli.Flag{
		&dbDirectoryFlag,
		&queuePathFlag,
		&kindFlag,
		&hashFlag,
		&locationFlag,
		&accountFlag,
		&dataFileFlag,
		&configFlag,
		&verboseFlag,
		&metricsFlag,
		&cpuProfilingFlag,
	},
}

func handle(ctx *cli.Context) (err error) {
	profileTarget := ctx.String(cpuProfilingFlag.Name)
	if len(profileTarget) != 0 {
		if err := startCPUProfile(profileTarget); err != nil {
			return err
		}
		defer stopCPUProfile()
	}

	log := newLogger().Level(zerolog.InfoLevel)
	if ctx.Bool(verboseFlag.Name) {
		log = log.Level(zerolog.DebugLevel)
	}

	config := worldsync.DefaultConfig
	if ctx.IsSet(configFlag.Name) {
		if config, err = worldsync.LoadConfig(ctx.String(configFlag.Name)); err != nil {
			return err
		}
	}

	request, err := requestFromFlags(ctx)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(ctx.String(dataFileFlag.Name))
	if err != nil {
		return fmt.Errorf("failed to read response data: %w", err)
	}

	dir := ctx.String(dbDirectoryFlag.Name)
	log.Info().Str("dir", dir).Msg("opening storage")
	storage, err := ldb.Open(dir)
	if err != nil {
		return err
	}
	defer closeWith(log, dir, storage, &err)

	path := ctx.String(queuePathFlag.Name)
	log.Info().Str("path", path).Msg("opening queue")
	q, err := queue.Open(path)
	if err != nil {
		return err
	}
	defer closeWith(log, path, q, &err)

	registry := prometheus.NewRegistry()
	processor, err := worldsync.NewProcessor(storage, q, log, registry, config)
	if err != nil {
		return err
	}
	if err := processor.Handle(request, data); err != nil {
		return err
	}

	size, err := q.Len()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "Stored %v, %d requests queued\n", request, size)

	if ctx.Bool(metricsFlag.Name) {
		families, err := registry.Gather()
		if err != nil {
			return fmt.Errorf("failed to gather metrics: %w", err)
		}
		for _, family := range families {
			if _, err := expfmt.MetricFamilyToText(ctx.App.Writer, family); err != nil {
				return err
			}
		}
	}
	return nil
}
