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

// Package identity holds pure helpers for persisted type identity strings.
// Identities are opaque once read from storage; these helpers only produce
// rewritten candidates and never mutate their inputs.
package identity

import (
	"regexp"
	"strings"
)

// versionClause matches an assembly-version clause: ", Version=" followed
// by up to four dot-separated numeric groups. The matcher is RE2, so
// matching cost is linear in the input; pathological identities cannot
// cause unbounded work.
var versionClause = regexp.MustCompile(`, Version=\d+(?:\.\d+){0,3}`)

// RewritePrefix substitutes every occurrence of legacy with current in a
// single pass and reports whether identity contained legacy at all.
// Substitution is idempotent: the legacy token only occurs in the legacy
// form, so a rewritten identity no longer matches.
func RewritePrefix(identity, legacy, current string) (string, bool) {
	if legacy == "" || !strings.Contains(identity, legacy) {
		return identity, false
	}
	return strings.ReplaceAll(identity, legacy, current), true
}

// StripVersion removes version clauses from identity. Identities longer
// than maxLen skip stripping and come back unchanged, which callers treat
// as "no version clause found". Stripping an already-stripped identity
// yields the same string.
func StripVersion(identity string, maxLen int) string {
	if maxLen > 0 && len(identity) > maxLen {
		return identity
	}
	if !strings.Contains(identity, ", Version=") {
		return identity
	}
	return versionClause.ReplaceAllString(identity, "")
}
