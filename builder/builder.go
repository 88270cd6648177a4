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

package builder

import (
	"log/slog"

	"keyward.dev/kwp/activator"
	"keyward.dev/kwp/apis"
	"keyward.dev/kwp/metrics"
	"keyward.dev/kwp/registry"
)

// New creates and returns a new instance of an apis.Builder. met may be
// nil; activators then run without instrumentation.
func New(met *metrics.Metrics) apis.Builder {
	return &builder{met: met}
}

// builder assembles the default registry and the forwarding-over-base
// activation pipeline.
type builder struct {
	met *metrics.Metrics
}

// BuildRegistry builds and returns a new apis.Registry. If a pre-existing
// registry is provided, its entries are copied into the new registry.
func (b *builder) BuildRegistry(_ apis.Config, prev apis.Registry, _ any) apis.Registry {
	nreg := registry.New()
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = nreg.Register(e)
		}
	}
	return nreg
}

// BuildActivator builds the default activation pipeline: a migration
// (forwarding) activator over the strict base activator. The previous
// activator carries no reusable state and is ignored.
func (b *builder) BuildActivator(cfg apis.Config, reg apis.Registry, _ apis.Activator, ctx *apis.Context, _ any) apis.Activator {
	var logger *slog.Logger
	if ctx != nil {
		logger = ctx.Logger
	}
	base := activator.New(reg, ctx)
	return activator.NewForwarding(base, reg, cfg, logger, b.met)
}
