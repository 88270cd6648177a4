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

import "time"

// Policy selects the runtime compatibility behavior of the forwarding
// pipeline. It is evaluated once at composition time and threaded into the
// activator explicitly; there is no compile-time branching.
type Policy string

const (
	// PolicyCurrentRuntime is the default policy. Legacy namespace tokens
	// are still rewritten, but version clauses in identities are left
	// untouched.
	PolicyCurrentRuntime Policy = "current-runtime"

	// PolicyLegacyRuntime additionally strips assembly-version clauses
	// (", Version=N[.N[.N[.N]]]") from forwarding candidates and from
	// identities already carrying the current namespace token.
	//
	// The original system only ever stripped version clauses on one of its
	// two runtimes. Whether that asymmetry was intentional is unknown, so
	// it is preserved behind this explicit flag instead of being unified.
	PolicyLegacyRuntime Policy = "legacy-runtime"
)

// Config carries read-only knobs that influence identity rewriting and
// provider composition. It is passed by value and should be treated as
// immutable by implementations.
type Config struct {
	// Policy selects the runtime compatibility behavior. See Policy.
	Policy Policy

	// LegacyPrefix is the namespace token that marks an identity as
	// recorded by a previous release. Identities containing it become
	// forwarding candidates.
	LegacyPrefix string

	// CurrentPrefix is the namespace token of the current release.
	// LegacyPrefix occurrences are substituted with it.
	CurrentPrefix string

	// StripTimeout bounds the version-clause matching step. The matcher is
	// linear-time by construction, so this is a hard ceiling that is never
	// approached in practice; it is kept on the surface for parity with
	// systems whose matchers can backtrack.
	StripTimeout time.Duration

	// MaxIdentityLen caps the identity length eligible for version-clause
	// stripping. Longer identities skip stripping and are treated as
	// "no version clause found".
	MaxIdentityLen int

	// Discriminator, when non-empty, is prepended to the purpose chain of
	// the top-level provider exactly once, at composition time. The scoped
	// protector then IS the provider from the caller's perspective.
	Discriminator string
}
