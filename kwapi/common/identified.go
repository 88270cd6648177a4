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

package common

// Identified lets an implementation report its own persisted type identity.
//
// # Overview
//
// Identified is an optional, type-level contract for instances produced by
// the activation pipeline. When an activated instance implements it, the
// base activator compares the reported identity with the identity it
// resolved and emits a debug-level observability event on mismatch.
//
// A mismatch is expected and legitimate in one case: an identity recorded
// by a previous release was forwarded to its current equivalent, and the
// instance reports the current identity. For this reason a mismatch is
// never an error; the event exists purely for operators tracing migration
// behavior.
//
// Semantically, Identified is a type-level contract: TypeIdentity describes
// the *kind* of implementation, not a particular instance. The returned
// identity is expected to be independent of instance state and to remain
// stable across program executions, deployments, and process restarts, as
// long as the implementation is not renamed.
//
// # Usage
//
// Typical usage is to return the exact identity string the implementation
// registers under:
//
//	type aeadProtector struct{ /* ... */ }
//
//	func (aeadProtector) TypeIdentity() string {
//	    return "Keyward.Protection.AEADProtector"
//	}
//
// # Contract
//
//   - The returned identity MUST be non-empty.
//   - The returned identity MUST be deterministic for a given concrete
//     type and MUST NOT depend on mutable instance state.
//   - The implementation MUST be safe for concurrent calls from multiple
//     goroutines.
//   - Implementations SHOULD return a constant string literal or a
//     precomputed value; they MUST NOT perform blocking operations or I/O.
//
// # Relationship to registration
//
// The registry, not this interface, is the source of truth for what an
// identity resolves to. Identified only closes the loop in the other
// direction, letting diagnostics confirm that the registered identity and
// the implementation's self-description agree.
type Identified interface {
	// TypeIdentity returns the canonical persisted identity for this
	// implementation.
	TypeIdentity() string
}
