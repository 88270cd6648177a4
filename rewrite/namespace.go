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
	"keyward.dev/kwp/apis"
	"keyward.dev/kwp/utils/identity"
)

// NewNamespaceStep creates the legacy-namespace substitution step.
func NewNamespaceStep() apis.Step {
	return namespaceStep{}
}

// namespaceStep rewrites identities containing the legacy namespace token
// to the current one. Substitution runs in a single pass and is idempotent
// because the token only occurs in the legacy form.
type namespaceStep struct{}

// Ensure namespaceStep implements apis.Step.
var _ apis.Step = namespaceStep{}

// TryRewrite substitutes cfg.LegacyPrefix with cfg.CurrentPrefix and marks
// the identity as a forwarding candidate when the token was present.
func (namespaceStep) TryRewrite(id string, candidate bool, cfg apis.Config) (string, bool) {
	rewritten, hit := identity.RewritePrefix(id, cfg.LegacyPrefix, cfg.CurrentPrefix)
	return rewritten, candidate || hit
}
