/*
   Copyright 2026 The Keyward Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package metrics provides observability for the activation pipeline.
// Tracks activation outcomes, forwarding decisions, and resolve latency.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"keyward.dev/kwp/apis"
)

// Outcome label values for the activations counter.
const (
	OutcomeResolved            = "resolved"
	OutcomeTypeNotFound        = "type_not_found"
	OutcomeCapabilityMismatch  = "capability_mismatch"
	OutcomeConstructorNotFound = "constructor_not_found"
	OutcomeConstructFailed     = "construct_failed"
)

// Metrics instruments the activation pipeline. A nil *Metrics is a valid
// no-op receiver so callers never guard call sites.
type Metrics struct {
	Activations     *prometheus.CounterVec
	Forwards        prometheus.Counter
	ResolveDuration prometheus.Histogram
}

// New creates a Metrics instance with all collectors registered against r.
// Pass prometheus.DefaultRegisterer for process-wide exposition or a
// private registry in tests.
func New(r prometheus.Registerer) *Metrics {
	f := promauto.With(r)
	return &Metrics{
		Activations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kwp_activations_total",
			Help: "Total activation attempts by outcome",
		}, []string{"outcome"}),
		Forwards: f.NewCounter(prometheus.CounterOpts{
			Name: "kwp_identity_forwards_total",
			Help: "Total activations resolved through a rewritten legacy identity",
		}),
		ResolveDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "kwp_resolve_duration_seconds",
			Help:    "Duration of Resolve calls (activation critical path)",
			Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
	}
}

// ObserveActivation records the outcome of one activation attempt.
func (m *Metrics) ObserveActivation(err error) {
	if m == nil {
		return
	}
	m.Activations.WithLabelValues(OutcomeFor(err)).Inc()
}

// ObserveForward records one forwarded activation.
func (m *Metrics) ObserveForward() {
	if m == nil {
		return
	}
	m.Forwards.Inc()
}

// ObserveResolve records the duration of a Resolve call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveResolve(start time.Time) {
	if m == nil {
		return
	}
	m.ResolveDuration.Observe(time.Since(start).Seconds())
}

// OutcomeFor maps an activation result to its counter label.
func OutcomeFor(err error) string {
	switch {
	case err == nil:
		return OutcomeResolved
	case errors.Is(err, apis.ErrTypeNotFound):
		return OutcomeTypeNotFound
	case errors.Is(err, apis.ErrCapabilityMismatch):
		return OutcomeCapabilityMismatch
	case errors.Is(err, apis.ErrConstructorNotFound):
		return OutcomeConstructorNotFound
	default:
		return OutcomeConstructFailed
	}
}
