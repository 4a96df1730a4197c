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
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "worldsync"
	labelKind = "kind"
)

type metrics struct {
	persisted *prometheus.CounterVec
	children  *prometheus.CounterVec
	skipped   *prometheus.CounterVec
	rejected  prometheus.Counter
}

// newMetrics creates the processor's counters and registers them with the
// given registerer, if there is one.
func newMetrics(registerer prometheus.Registerer) (*metrics, error) {
	persistedOpts := prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "persisted_total",
		Help:      "number of received nodes and codes written to the storage",
	}
	childrenOpts := prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "children_total",
		Help:      "number of requests derived from received nodes",
	}
	skippedOpts := prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "skipped_total",
		Help:      "number of requests not scheduled since their data is present locally",
	}
	rejectedOpts := prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rejected_total",
		Help:      "number of responses rejected as invalid",
	}

	m := metrics{
		persisted: prometheus.NewCounterVec(persistedOpts, []string{labelKind}),
		children:  prometheus.NewCounterVec(childrenOpts, []string{labelKind}),
		skipped:   prometheus.NewCounterVec(skippedOpts, []string{labelKind}),
		rejected:  prometheus.NewCounter(rejectedOpts),
	}
	if registerer == nil {
		return &m, nil
	}
	for _, collector := range []prometheus.Collector{m.persisted, m.children, m.skipped, m.rejected} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}
	return &m, nil
}
