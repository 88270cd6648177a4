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

package identity_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"keyward.dev/kwp/utils/identity"
)

func TestRewritePrefix(t *testing.T) {
	tests := []struct {
		name     string
		identity string
		legacy   string
		current  string
		want     string
		wantHit  bool
	}{
		{
			name:     "legacy token substituted",
			identity: "Legacy.Namespace.Foo, MyAssembly",
			legacy:   "Legacy.Namespace",
			current:  "Current.Namespace",
			want:     "Current.Namespace.Foo, MyAssembly",
			wantHit:  true,
		},
		{
			name:     "no token passes through",
			identity: "Current.Namespace.Bar, MyAssembly",
			legacy:   "Legacy.Namespace",
			current:  "Current.Namespace",
			want:     "Current.Namespace.Bar, MyAssembly",
			wantHit:  false,
		},
		{
			name:     "empty legacy token never matches",
			identity: "Whatever.Foo",
			legacy:   "",
			current:  "Current.Namespace",
			want:     "Whatever.Foo",
			wantHit:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := identity.RewritePrefix(tt.identity, tt.legacy, tt.current)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantHit, hit)
		})
	}
}

func TestRewritePrefix_Idempotent(t *testing.T) {
	once, hit := identity.RewritePrefix("Legacy.Namespace.Foo", "Legacy.Namespace", "Current.Namespace")
	assert.True(t, hit)

	// The rewritten identity no longer contains the legacy token, so a
	// second pass is a no-op.
	twice, hit := identity.RewritePrefix(once, "Legacy.Namespace", "Current.Namespace")
	assert.False(t, hit)
	assert.Equal(t, once, twice)
}

func TestStripVersion(t *testing.T) {
	tests := []struct {
		name     string
		identity string
		want     string
	}{
		{
			name:     "four numeric groups",
			identity: "Current.Namespace.Foo, MyAssembly, Version=1.0.0.0",
			want:     "Current.Namespace.Foo, MyAssembly",
		},
		{
			name:     "single numeric group",
			identity: "Current.Namespace.Foo, MyAssembly, Version=7",
			want:     "Current.Namespace.Foo, MyAssembly",
		},
		{
			name:     "clause in the middle",
			identity: "Current.Namespace.Foo, MyAssembly, Version=2.1, Culture=neutral",
			want:     "Current.Namespace.Foo, MyAssembly, Culture=neutral",
		},
		{
			name:     "no clause unchanged",
			identity: "Current.Namespace.Foo, MyAssembly",
			want:     "Current.Namespace.Foo, MyAssembly",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, identity.StripVersion(tt.identity, 0))
		})
	}
}

func TestStripVersion_Idempotent(t *testing.T) {
	once := identity.StripVersion("Current.Namespace.Foo, MyAssembly, Version=1.0.0.0", 0)
	twice := identity.StripVersion(once, 0)
	assert.Equal(t, once, twice)
}

func TestStripVersion_LengthBound(t *testing.T) {
	long := strings.Repeat("x", 100) + ", Version=1.0.0.0"

	// Over the bound: treated as "no version clause found".
	assert.Equal(t, long, identity.StripVersion(long, 50))
	// Under the bound: stripped as usual.
	assert.Equal(t, strings.Repeat("x", 100), identity.StripVersion(long, 4096))
}
