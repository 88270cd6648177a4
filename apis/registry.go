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

package apis

import "log/slog"

// Context is the explicit construction context handed to factories that
// accept one. It replaces any ambient service locator: everything a factory
// may consult is a documented field.
type Context struct {
	// Config is the active configuration snapshot.
	Config Config
	// Logger is the process-wide logger sink.
	Logger *slog.Logger
	// KeyManager is the key lifecycle collaborator, if registered.
	KeyManager KeyManager
	// KeyRings is the key-ring provider collaborator, if registered.
	KeyRings KeyRingProvider
}

// Entry associates a persisted type identity with a constructible
// implementation and its declared capability set.
type Entry struct {
	// Identity is the textual name recorded in durable state. Opaque,
	// matched verbatim.
	Identity string

	// Capabilities is the set of contracts the constructed instance
	// satisfies, as declared by the registrant. Checked by membership at
	// activation time.
	Capabilities []Capability

	// NewWithContext constructs an instance with access to the explicit
	// construction context. Preferred over New when both are present.
	NewWithContext func(ctx *Context) (any, error)

	// New constructs an instance with no collaborators. Fallback when
	// NewWithContext is absent.
	New func() (any, error)

	// Description is optional human-oriented metadata for diagnostics.
	Description string
}

// Supports reports whether the entry declares capability c.
func (e Entry) Supports(c Capability) bool {
	for _, have := range e.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// Registry is the process-wide lookup from a type identity string to a
// constructible implementation. It is populated once at startup and
// read-only thereafter; lookups must be safe for unsynchronized concurrent
// use.
type Registry interface {
	// Register adds an entry. Registering an identity twice is a conflict;
	// implementations reject it rather than guess which registration wins.
	Register(e Entry) error
	// Lookup returns the entry for an identity if present.
	Lookup(identity string) (Entry, bool)
	// Contains reports whether an identity is registered, without touching
	// capability or construction concerns. This is the plain existence
	// probe the forwarding pipeline uses.
	Contains(identity string) bool
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}
