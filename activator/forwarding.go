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

package activator

import (
	"log/slog"
	"time"

	"keyward.dev/kwp/apis"
	"keyward.dev/kwp/metrics"
	"keyward.dev/kwp/rewrite"
)

// NewForwarding wraps next with the backward-compatible identity rewriting
// pipeline. reg is consulted only for a plain existence probe of rewritten
// identities; capability checking stays with the base activator. log may be
// nil (slog.Default is used) and met may be nil (no-op).
func NewForwarding(next apis.Activator, reg apis.Registry, cfg apis.Config, log *slog.Logger, met *metrics.Metrics) *Forwarding {
	if log == nil {
		log = slog.Default()
	}
	return &Forwarding{
		next:  next,
		reg:   reg,
		cfg:   cfg,
		chain: rewrite.Default(),
		log:   log,
		met:   met,
	}
}

// Forwarding is the migration activator. It rewrites legacy identities to
// current ones under the active policy and delegates to the base activator,
// falling back to the original identity whenever the rewrite does not lead
// anywhere. It introduces no error kinds of its own: the only reportable
// failure is the final base activation failure.
type Forwarding struct {
	next  apis.Activator
	reg   apis.Registry
	cfg   apis.Config
	chain rewrite.Chain
	log   *slog.Logger
	met   *metrics.Metrics
}

// Ensure Forwarding implements apis.Activator.
var _ apis.Activator = (*Forwarding)(nil)

// Resolve implements apis.Activator.
func (f *Forwarding) Resolve(expected apis.Capability, identity string) (any, error) {
	inst, _, err := f.ResolveReport(expected, identity)
	return inst, err
}

// ResolveReport resolves like Resolve and additionally reports whether the
// activation was served through a rewritten identity. The report exists for
// tests and migration diagnostics; production callers use Resolve.
//
// The forwarding decision is recomputed on every call from the identity and
// the active policy alone — no retries, no memoization.
func (f *Forwarding) ResolveReport(expected apis.Capability, identity string) (any, bool, error) {
	start := time.Now()
	defer f.met.ObserveResolve(start)

	rewritten, candidate := f.chain.Rewrite(identity, f.cfg)

	// A candidate forwards only if the rewritten identity actually exists.
	// Anything that goes wrong with this probe silently falls through to
	// the original identity; only the final activation failure is real.
	if candidate && f.reg != nil && f.reg.Contains(rewritten) {
		f.log.Debug("forwarded type identity", "from", identity, "to", rewritten)
		f.met.ObserveForward()
		inst, err := f.next.Resolve(expected, rewritten)
		f.met.ObserveActivation(err)
		return inst, true, err
	}

	inst, err := f.next.Resolve(expected, identity)
	f.met.ObserveActivation(err)
	return inst, false, err
}
