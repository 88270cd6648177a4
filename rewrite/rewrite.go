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
)

// New constructs a Chain that folds an identity through the given steps in
// order. Nil steps are ignored. The returned chain is immutable and safe
// for concurrent use provided the steps themselves are.
func New(steps ...apis.Step) Chain {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Step, 0, len(steps))
	for _, s := range steps {
		if s != nil {
			out = append(out, s)
		}
	}
	return Chain{steps: out}
}

// Default returns the fixed two-step migration chain: namespace
// substitution, then policy-gated version stripping.
func Default() Chain {
	return New(NewNamespaceStep(), NewVersionStep())
}

// Chain is an immutable, order-preserving rewriter over a set of steps.
// Unlike a first-match resolver, every step runs: later steps see the
// output and candidate flag of earlier ones.
type Chain struct {
	steps []apis.Step
}

// Rewrite folds identity through all steps and returns the final candidate
// identity together with whether any step flagged it for forwarding.
// The decision is recomputed on every call; nothing is cached.
func (c Chain) Rewrite(identity string, cfg apis.Config) (string, bool) {
	out, candidate := identity, false
	for _, s := range c.steps {
		out, candidate = s.TryRewrite(out, candidate, cfg)
	}
	return out, candidate
}
