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

package kwp

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"keyward.dev/kwp/apis"
	"keyward.dev/kwp/builder"
	"keyward.dev/kwp/config"
	"keyward.dev/kwp/keyring"
	"keyward.dev/kwp/metrics"
	"keyward.dev/kwp/protector"
)

// init initializes the global composition root state.
func init() {
	cfg := config.Default()
	log := slog.Default()
	met := metrics.New(prometheus.DefaultRegisterer)
	km := keyring.NewManager()
	b := builder.New(met)

	s := &state{cfg: cfg, log: log, met: met, km: km, rings: km, bld: b}
	s.reg = b.BuildRegistry(cfg, nil, nil)
	s.act = b.BuildActivator(cfg, s.reg, nil, contextFor(s), nil)
	s.provider = providerCell(cfg, s.rings)
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("kwp: builder returned nil registry")
	// ErrNilActivator is returned when a builder returns a nil activator.
	ErrNilActivator = errors.New("kwp: builder returned nil activator")
	// ErrNoKeyRingProvider is returned when the top-level provider is
	// requested but no key ring provider collaborator is registered.
	ErrNoKeyRingProvider = errors.New("kwp: no key ring provider registered")
)

// Resolve activates the implementation registered under identity, verified
// against the expected capability, using the global activation pipeline.
// This is a convenience wrapper around the global activator.
func Resolve(expected apis.Capability, identity string) (any, error) {
	return st.Load().act.Resolve(expected, identity)
}

// ResolveAs resolves like Resolve and additionally asserts the instance to
// T. A failed assertion reports a capability mismatch: the declared
// capability set promised a contract the instance does not satisfy.
func ResolveAs[T any](expected apis.Capability, identity string) (T, error) {
	var zero T
	inst, err := Resolve(expected, identity)
	if err != nil {
		return zero, err
	}
	typed, ok := inst.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %T does not satisfy %T",
			&apis.ActivationError{Kind: apis.ErrCapabilityMismatch, Identity: identity, Capability: expected}, inst, zero)
	}
	return typed, nil
}

// Register adds an entry to the global capability registry.
// This is a convenience wrapper around the global registry.
func Register(e apis.Entry) error {
	return st.Load().reg.Register(e)
}

// Provider returns the top-level protection provider.
//
// The provider is built lazily, at most once per published snapshot: the
// first caller constructs it, concurrent callers block until construction
// finishes, and everyone observes the same instance. When the configured
// discriminator is non-empty the returned object is the protector scoped to
// it; the root provider and root protector are then the same object.
//
// A construction failure is cached: every later call on the same snapshot
// observes the identical error. Publishing a new snapshot (SetConfig,
// SetKeyRingProvider, SetAll, ...) is the explicit way to retry.
func Provider() (apis.Protector, error) {
	return st.Load().provider()
}

// CreateProtector returns a protector for purpose, scoped under the
// top-level provider. This is a convenience wrapper around Provider.
func CreateProtector(purpose string) (apis.Protector, error) {
	p, err := Provider()
	if err != nil {
		return nil, err
	}
	return p.CreateProtector(purpose), nil
}

// SetAll explicitly sets all global state components.
//
// Nil arguments leave the corresponding component unchanged, except for ext
// which is always replaced. Passing a non-nil reg or act pins that layer.
//
// This is the "hard reset" API, mainly used by tests to get a clean
// deterministic state between cases.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, act apis.Activator, bld apis.Builder, km apis.KeyManager, rings apis.KeyRingProvider, log *slog.Logger) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Extension
	next := ext

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Collaborators
	nkm := old.km
	if km != nil {
		nkm = km
	}
	nrings := old.rings
	if rings != nil {
		nrings = rings
	}
	nlog := old.log
	if log != nil {
		nlog = log
	}

	// Registry
	nreg := reg
	npreg := false
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg, next)
	} else {
		npreg = true
	}

	ns := &state{
		cfg:   ncfg,
		ext:   next,
		log:   nlog,
		met:   old.met,
		km:    nkm,
		rings: nrings,
		reg:   nreg,
		bld:   nbld,
		preg:  npreg,
	}

	// Activator
	nact := act
	npact := false
	if nact == nil {
		nact = nbld.BuildActivator(ncfg, nreg, old.act, contextFor(ns), next)
	} else {
		npact = true
	}
	ns.act = nact
	ns.pact = npact

	// Ensure non-nil registry and activator.
	if ns.reg == nil {
		panic(ErrNilRegistry)
	}
	if ns.act == nil {
		panic(ErrNilActivator)
	}

	// Fresh provider cell for the new snapshot.
	ns.provider = providerCell(ncfg, nrings)

	// Store the new state atomically.
	st.Store(ns)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg.
// It rebuilds the non-pinned layers using the new configuration and resets
// the provider cell (the discriminator may have changed).
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	b := old.bld

	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(cfg, old.reg, old.ext)
	}
	if nreg == nil {
		panic(ErrNilRegistry)
	}

	ns := old.clone()
	ns.cfg = cfg
	ns.reg = nreg
	if !old.pact {
		ns.act = b.BuildActivator(cfg, nreg, old.act, contextFor(ns), old.ext)
	}
	if ns.act == nil {
		panic(ErrNilActivator)
	}
	ns.provider = providerCell(cfg, ns.rings)

	st.Store(ns)
}

// Registry returns the global capability registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global registry to reg and pins it.
// The activator is rebuilt over the new registry unless pinned.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()

	ns := old.clone()
	ns.reg = reg
	ns.preg = true
	if !old.pact {
		ns.act = old.bld.BuildActivator(old.cfg, reg, old.act, contextFor(ns), old.ext)
	}
	if ns.act == nil {
		panic(ErrNilActivator)
	}

	st.Store(ns)
}

// Activator returns the global activator.
func Activator() apis.Activator {
	return st.Load().act
}

// SetActivator sets the global activator to act and pins it.
func SetActivator(act apis.Activator) {
	if act == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	ns := st.Load().clone()
	ns.act = act
	ns.pact = true
	st.Store(ns)
}

// KeyManager returns the global key manager collaborator.
func KeyManager() apis.KeyManager {
	return st.Load().km
}

// SetKeyManager sets the global key manager collaborator.
// The activator is rebuilt unless pinned, so factories observe the new
// construction context.
func SetKeyManager(km apis.KeyManager) {
	if km == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	ns := old.clone()
	ns.km = km
	if !old.pact {
		ns.act = old.bld.BuildActivator(old.cfg, old.reg, old.act, contextFor(ns), old.ext)
	}
	st.Store(ns)
}

// KeyRings returns the global key-ring provider collaborator.
func KeyRings() apis.KeyRingProvider {
	return st.Load().rings
}

// SetKeyRingProvider sets the global key-ring provider collaborator and
// resets the provider cell.
func SetKeyRingProvider(rings apis.KeyRingProvider) {
	if rings == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	ns := old.clone()
	ns.rings = rings
	if !old.pact {
		ns.act = old.bld.BuildActivator(old.cfg, old.reg, old.act, contextFor(ns), old.ext)
	}
	ns.provider = providerCell(old.cfg, rings)
	st.Store(ns)
}

// Logger returns the global logger sink.
func Logger() *slog.Logger {
	return st.Load().log
}

// SetLogger sets the global logger sink.
func SetLogger(log *slog.Logger) {
	if log == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	ns := old.clone()
	ns.log = log
	if !old.pact {
		ns.act = old.bld.BuildActivator(old.cfg, old.reg, old.act, contextFor(ns), old.ext)
	}
	st.Store(ns)
}

// Metrics returns the global activation metrics.
func Metrics() *metrics.Metrics {
	return st.Load().met
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder to b and rebuilds non-pinned layers.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()

	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, old.ext)
	}
	if nreg == nil {
		panic(ErrNilRegistry)
	}

	ns := old.clone()
	ns.bld = b
	ns.reg = nreg
	if !old.pact {
		ns.act = b.BuildActivator(old.cfg, nreg, old.act, contextFor(ns), old.ext)
	}
	if ns.act == nil {
		panic(ErrNilActivator)
	}

	st.Store(ns)
}

// SetExt replaces the extension config and rebuilds non-pinned layers via
// the builder.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	b := old.bld

	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, ext)
	}
	if nreg == nil {
		panic(ErrNilRegistry)
	}

	ns := old.clone()
	ns.ext = ext
	ns.reg = nreg
	if !old.pact {
		ns.act = b.BuildActivator(old.cfg, nreg, old.act, contextFor(ns), ext)
	}
	if ns.act == nil {
		panic(ErrNilActivator)
	}

	st.Store(ns)
}

// ExtAs returns the global extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned returns whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops automatic rebuilds of the registry layer.
func PinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	ns := st.Load().clone()
	ns.preg = true
	st.Store(ns)
}

// UnpinRegistry makes the registry layer rebuildable again.
func UnpinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	ns := st.Load().clone()
	ns.preg = false
	st.Store(ns)
}

// IsActivatorPinned returns whether the global activator is pinned.
func IsActivatorPinned() bool {
	return st.Load().pact
}

// PinActivator stops automatic rebuilds of the activator layer.
func PinActivator() {
	buildMu.Lock()
	defer buildMu.Unlock()

	ns := st.Load().clone()
	ns.pact = true
	st.Store(ns)
}

// UnpinActivator makes the activator layer rebuildable again.
func UnpinActivator() {
	buildMu.Lock()
	defer buildMu.Unlock()

	ns := st.Load().clone()
	ns.pact = false
	st.Store(ns)
}

// contextFor assembles the explicit construction context for a snapshot.
func contextFor(s *state) *apis.Context {
	return &apis.Context{
		Config:     s.cfg,
		Logger:     s.log,
		KeyManager: s.km,
		KeyRings:   s.rings,
	}
}

// providerCell creates the at-most-once constructor for a snapshot's
// top-level provider. The cell is the one place in this package that needs
// more than an atomic pointer swap: concurrent first callers must observe
// exactly one construction, and a failed construction must stay failed for
// the lifetime of the snapshot.
func providerCell(cfg apis.Config, rings apis.KeyRingProvider) func() (apis.Protector, error) {
	return sync.OnceValues(func() (apis.Protector, error) {
		if rings == nil {
			return nil, ErrNoKeyRingProvider
		}
		root := protector.New(rings)
		if d := cfg.Discriminator; d != "" {
			// Scoping happens exactly once, here: the discriminator-scoped
			// protector IS the top-level provider.
			return root.CreateProtector(d), nil
		}
		return root, nil
	})
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global composition root state.
var st atomic.Pointer[state]

// state is the global composition snapshot.
// Immutable once published via st.Store; never mutate fields of a published
// state. Writers clone, adjust, and swap atomically under buildMu.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// ext is the global extension configuration.
	ext any
	// log is the logger sink singleton.
	log *slog.Logger
	// met is the activation metrics singleton (created once per process).
	met *metrics.Metrics
	// km is the key manager collaborator.
	km apis.KeyManager
	// rings is the key-ring provider collaborator.
	rings apis.KeyRingProvider
	// reg is the capability registry.
	reg apis.Registry
	// act is the activation pipeline.
	act apis.Activator
	// bld is the builder.
	bld apis.Builder
	// preg indicates whether the registry is pinned (immutable).
	preg bool
	// pact indicates whether the activator is pinned (immutable).
	pact bool
	// provider is the at-most-once cell for the top-level provider.
	provider func() (apis.Protector, error)
}

// clone copies a state for adjustment before publication. The provider
// cell is carried over; setters that invalidate it install a fresh one.
func (s *state) clone() *state {
	c := *s
	return &c
}
