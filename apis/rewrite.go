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

// Step is a pluggable identity-rewriting stage. A forwarding activator
// chains steps in a fixed order (namespace substitution, then version
// stripping) and folds the identity through them.
//
// Steps are pure: the decision derives only from the incoming identity,
// the incoming candidate flag, and cfg. Nothing is cached between calls.
type Step interface {
	// TryRewrite inspects identity and returns the (possibly unchanged)
	// identity to continue with, together with the updated candidate flag.
	// candidate carries whether an earlier step already flagged the
	// identity for forwarding; steps may only widen it, never clear it.
	TryRewrite(identity string, candidate bool, cfg Config) (rewritten string, nowCandidate bool)
}
