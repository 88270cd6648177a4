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

// Package kwp resolves persisted type identities back into live,
// capability-checked instances and composes them into a hierarchy of
// purpose-scoped protection handles.
//
// Protection state is long-lived: identity strings written into
// configuration or serialized state by one release must still resolve after
// the implementing packages are renamed in a later release. kwp reconciles
// the two requirements that pull against each other here — strict
// capability checking at activation time, and tolerant, best-effort
// rewriting of historical names — without ever constructing the wrong
// object silently or failing hard on every old name.
//
// # Design
//
// The core of kwp is a read-mostly global snapshot (state). The snapshot
// holds the process-wide singletons:
//
//   - Config: the runtime policy, the legacy/current namespace tokens, the
//     version-strip bounds, and the application discriminator.
//
//   - Registry: the capability registry, a startup-populated mapping from
//     identity string to a factory plus its declared capability set.
//     Capability checks are membership checks against that declared set;
//     no runtime introspection is involved.
//
//   - Activator: the activation pipeline. The default pipeline is a
//     migration (forwarding) activator over the strict base activator:
//     identities containing the legacy namespace token are rewritten to
//     the current token, version clauses are stripped under the
//     legacy-runtime policy, and the rewrite is used only when the
//     rewritten identity actually exists in the registry. Every rewrite
//     failure falls back to the original identity; only the final base
//     activation failure is reported.
//
//   - KeyManager / KeyRingProvider: the key lifecycle collaborators. An
//     in-memory implementation is installed by default; hosts replace it
//     with their durable one.
//
//   - Logger / Metrics: the slog sink and the prometheus instrumentation
//     for the activation path.
//
// All of these live inside a single immutable struct. The package holds an
// atomic pointer to the current state: readers load it and never mutate it,
// writers build a brand-new state under a short mutex and atomically swap
// it in. Activation lookups are therefore lock-free on the hot path:
//
//	inst, err := kwp.Resolve("protection.protector", storedIdentity)
//	p, err := kwp.ResolveAs[apis.Protector]("protection.protector", storedIdentity)
//
// # The provider
//
// The top-level protection provider is built lazily, at most once per
// published snapshot:
//
//	provider, err := kwp.Provider()
//	invoices, err := kwp.CreateProtector("invoices")
//
// When Config.Discriminator is non-empty the provider returned is the
// protector scoped to that discriminator — root provider and root protector
// are the same object, and scoping happens exactly once at composition
// time. Purpose chains are immutable and their key-derivation input is a
// deterministic, order-preserving function of the purposes, so
// discriminator scoping commutes with CreateProtector.
//
// A failure while building the provider (for example, no key ring provider
// registered) is cached for the lifetime of the snapshot: it surfaces
// loudly on every call rather than being silently retried, because retrying
// a configuration defect cannot succeed. Publishing a new snapshot via the
// Set* helpers is the explicit recovery path.
//
// # Concurrency model
//
// Reads (Resolve, Registry, Activator, Provider, ...) are wait-free apart
// from the provider cell, which blocks concurrent first callers until the
// single construction finishes. Writes (SetConfig, SetRegistry,
// SetActivator, SetKeyRingProvider, SetAll, ...) take the build mutex,
// assemble a new state, and publish it with an atomic swap — "last write
// wins", with no per-lookup locking.
//
// # Pinning
//
// SetRegistry and SetActivator pin their layer: further SetConfig or
// SetBuilder calls will not rebuild a pinned layer until the corresponding
// Unpin call. Pinning exists for advanced scenarios — locking a custom
// activator for audit purposes while the rest of the configuration keeps
// evolving.
//
// # Usage pattern in a binary
//
//  1. Let kwp init with default builder/config.
//
//  2. Optionally load host configuration and install it:
//
//     cfg, err := config.FromEnv()
//     kwp.SetConfig(cfg)
//
//  3. Register well-known implementations up front:
//
//     kwp.Register(apis.Entry{
//         Identity:     "Keyward.Protection.AEADProtector",
//         Capabilities: []apis.Capability{"protection.protector"},
//         NewWithContext: func(ctx *apis.Context) (any, error) { ... },
//     })
//
//  4. Resolve persisted identities and derive protectors everywhere else.
//
//  5. In tests, call kwp.SetAll(...) to get deterministic snapshots and to
//     inject mock builders or collaborators.
//
// # Scope
//
// kwp is intentionally small. It is not a dependency-injection container
// and not a reflection framework: the only rewriting it performs is the
// fixed two-step migration (namespace rename, policy-gated version-clause
// removal), and it caches nothing beyond what the registry itself holds.
// Cryptographic key storage, rotation policy, and descriptor persistence
// belong to the key-manager and key-ring collaborators behind their
// interfaces in apis.
package kwp
