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

package registry

import (
	"errors"
	"sync"

	"keyward.dev/kwp/apis"
)

var (
	// ErrEmptyIdentity is returned when an entry has no identity.
	ErrEmptyIdentity = errors.New("kwp(registry): empty identity provided")
	// ErrNoCapabilities is returned when an entry declares no capabilities.
	ErrNoCapabilities = errors.New("kwp(registry): entry declares no capabilities")
	// ErrNoConstructor is returned when an entry provides neither
	// constructor.
	ErrNoConstructor = errors.New("kwp(registry): entry provides no constructor")
	// ErrConflictingRegistration indicates an attempt to register an
	// identity that is already registered. The registry is populated once
	// at startup; it never guesses which registration should win.
	ErrConflictingRegistration = errors.New("kwp(registry): conflicting identity registration")
)

// New constructs an empty capability Registry.
func New() apis.Registry {
	return &registry{}
}

// registry is a simple Registry implementation backed by sync.Map.
// Lookups are lock-free; writes take a mutex to keep the counter
// consistent.
type registry struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps identity string to apis.Entry.
	m sync.Map // map[string]apis.Entry
	// count tracks the number of registered entries.
	count int
}

// Register adds an entry after validating it.
func (r *registry) Register(e apis.Entry) error {
	// Validate inputs early.
	if e.Identity == "" {
		return ErrEmptyIdentity
	}
	if len(e.Capabilities) == 0 {
		return ErrNoCapabilities
	}
	if e.New == nil && e.NewWithContext == nil {
		return ErrNoConstructor
	}

	// Fast read path: conflict check without locking.
	if _, ok := r.m.Load(e.Identity); ok {
		return ErrConflictingRegistration
	}

	// Write path: guard with a mutex to keep counter consistent and avoid ABA.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if _, ok := r.m.Load(e.Identity); ok {
		return ErrConflictingRegistration
	}

	r.m.Store(e.Identity, e)
	r.count++
	return nil
}

// Lookup returns the entry for an identity if present.
func (r *registry) Lookup(identity string) (apis.Entry, bool) {
	if identity == "" {
		return apis.Entry{}, false
	}
	if v, ok := r.m.Load(identity); ok {
		return v.(apis.Entry), true
	}
	return apis.Entry{}, false
}

// Contains reports whether an identity is registered.
func (r *registry) Contains(identity string) bool {
	_, ok := r.m.Load(identity)
	return ok
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(_, value any) bool {
		entries = append(entries, value.(apis.Entry))
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = sync.Map{}
	r.count = 0
}
