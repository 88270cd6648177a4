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

// Capability names an abstract contract that a resolved instance satisfies.
//
// # Overview
//
// A Capability is a stable, human-chosen tag such as "protection.protector"
// or "protection.keyring". Registrations declare the full set of
// capabilities their product satisfies, and activation checks membership in
// that declared set with ordinary comparisons. No runtime introspection is
// involved: a capability is granted because the registrant said so, and the
// registrant is the party that compiled the implementation against the
// corresponding Go interface.
//
// Callers that need a typed value combine a capability check with a plain
// type assertion (see ResolveAs in the root package).
//
// # Naming guidelines
//
// Capability values are expected to be:
//
//   - Stable across program executions and releases (MUST). Persisted
//     state never records capabilities, but log lines and metrics do.
//   - Unique within the application's logical namespace (SHOULD).
//   - Short, lowercase, dot-separated segments (RECOMMENDED;
//     <64 characters).
//
// # Contract
//
//   - A Capability MUST be non-empty when used in a registration or an
//     activation request.
//   - Comparing capabilities is exact string equality; there is no
//     hierarchy or wildcard semantics.
type Capability string
