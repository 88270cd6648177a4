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

package rewrite

import (
	"strings"

	"keyward.dev/kwp/apis"
	"keyward.dev/kwp/utils/identity"
)

// NewVersionStep creates the policy-gated version-clause stripping step.
func NewVersionStep() apis.Step {
	return versionStep{}
}

// versionStep strips ", Version=N[.N[.N[.N]]]" clauses, but only under
// PolicyLegacyRuntime and only from identities that are already forwarding
// candidates or that carry the current namespace token. Under any other
// policy version clauses are left untouched.
type versionStep struct{}

// Ensure versionStep implements apis.Step.
var _ apis.Step = versionStep{}

// TryRewrite strips version clauses when the policy gate is open. Entering
// the branch marks the identity as a candidate even when nothing matched,
// mirroring the recorded behavior of the original runtime split.
func (versionStep) TryRewrite(id string, candidate bool, cfg apis.Config) (string, bool) {
	if cfg.Policy != apis.PolicyLegacyRuntime {
		return id, candidate
	}
	if !candidate && (cfg.CurrentPrefix == "" || !strings.Contains(id, cfg.CurrentPrefix)) {
		return id, candidate
	}
	return identity.StripVersion(id, cfg.MaxIdentityLen), true
}
