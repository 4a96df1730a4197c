// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package worldsync

import (
	"fmt"

	"github.com/Fantom-foundation/worldsync/common"
	"github.com/Fantom-foundation/worldsync/database/worldstate"
	"github.com/Fantom-foundation/worldsync/sync/nodedata"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
)

// ErrHashMismatch is reported for responses not matching the requested hash.
const ErrHashMismatch = common.ConstError("data does not match requested hash")

// Sink receives requests to be fetched from peers.
type Sink interface {
	Push(requests ...nodedata.Request) error
}

// Processor stores the responses to node data requests and schedules the
// requests for the data they reference. A Processor is not safe for
// concurrent use.
type Processor struct {
	storage worldstate.Storage
	sink    Sink
	log     zerolog.Logger
	config  Config
	metrics *metrics
}

// NewProcessor creates a processor persisting data in the given storage and
// pushing requests to the given sink. Metrics are registered with the given
// registerer, which may be nil.
func NewProcessor(storage worldstate.Storage, sink Sink, log zerolog.Logger, registerer prometheus.Registerer, config Config) (*Processor, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	return &Processor{
		storage: storage,
		sink:    sink,
		log:     log.With().Str("component", "worldsync").Logger(),
		config:  config,
		metrics: m,
	}, nil
}

// Schedule pushes the given requests to the sink. If enabled, requests for
// data already present in the storage are not pushed; the children of the
// existing data are scheduled instead, since its subtrie may be incomplete.
// The existing subtrie is traversed breadth first within this call, so its
// cost grows with the size of the locally present part of the trie. Visited
// requests are released as the traversal proceeds; only the frontier and
// the missing requests are retained.
func (p *Processor) Schedule(requests ...nodedata.Request) error {
	if !p.config.SkipExisting {
		return p.push(requests)
	}
	pending := slices.Clone(requests)
	missing := make([]nodedata.Request, 0, len(requests))
	for len(pending) > 0 {
		request := pending[0]
		pending[0] = nodedata.Request{}
		pending = pending[1:]
		data, found, err := request.ExistingData(p.storage)
		if err != nil {
			return err
		}
		if !found {
			missing = append(missing, request)
			continue
		}
		children, err := request.Resolve(data).SetRequiresPersisting(false).ChildRequests(p.storage)
		if err != nil {
			return fmt.Errorf("failed to traverse existing data: %w", err)
		}
		p.metrics.skipped.WithLabelValues(request.Kind().String()).Inc()
		p.log.Trace().Str("request", request.String()).Int("children", len(children)).Msg("data present locally")
		pending = append(pending, children...)
	}
	return p.push(missing)
}

func (p *Processor) push(requests []nodedata.Request) error {
	if len(requests) == 0 {
		return nil
	}
	if err := p.sink.Push(requests...); err != nil {
		return fmt.Errorf("failed to schedule %d requests: %w", len(requests), err)
	}
	return nil
}

// Handle processes the data received for the given request. The data is
// verified against the requested hash, persisted, and the requests for its
// children are scheduled. Invalid data is rejected without modifying the
// storage.
func (p *Processor) Handle(request nodedata.Request, data []byte) error {
	log := p.log.With().Str("request", request.String()).Logger()
	if data == nil {
		data = []byte{}
	}

	if p.config.VerifyHashes {
		if got := common.Keccak256(data); got != request.Hash() {
			p.metrics.rejected.Inc()
			log.Warn().Str("got", got.String()).Msg("rejected response with mismatching hash")
			return fmt.Errorf("%w: %v, got %v", ErrHashMismatch, request, got)
		}
	}

	resolved := request.Resolve(data)
	children, err := resolved.ChildRequests(p.storage)
	if err != nil {
		p.metrics.rejected.Inc()
		log.Warn().Err(err).Msg("rejected undecodable response")
		return err
	}

	updater := p.storage.NewUpdater()
	resolved.Persist(updater)
	if err := updater.Commit(); err != nil {
		updater.Rollback()
		return fmt.Errorf("failed to persist %v: %w", request, err)
	}

	kind := request.Kind().String()
	p.metrics.persisted.WithLabelValues(kind).Inc()
	p.metrics.children.WithLabelValues(kind).Add(float64(len(children)))
	log.Debug().Int("size", len(data)).Int("children", len(children)).Msg("persisted response")

	return p.Schedule(children...)
}
