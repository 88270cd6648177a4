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

package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyward.dev/kwp/apis"
	"keyward.dev/kwp/registry"
)

func entry(identity string, caps ...apis.Capability) apis.Entry {
	return apis.Entry{
		Identity:     identity,
		Capabilities: caps,
		New:          func() (any, error) { return struct{}{}, nil },
	}
}

func TestRegisterAndLookup(t *testing.T) {
	reg := registry.New()

	require.NoError(t, reg.Register(entry("Keyward.Protection.Foo", "protection.protector")))

	e, ok := reg.Lookup("Keyward.Protection.Foo")
	require.True(t, ok)
	assert.Equal(t, "Keyward.Protection.Foo", e.Identity)
	assert.True(t, e.Supports("protection.protector"))
	assert.False(t, e.Supports("protection.keyring"))

	assert.True(t, reg.Contains("Keyward.Protection.Foo"))
	assert.False(t, reg.Contains("Keyward.Protection.Bar"))
	assert.Equal(t, 1, reg.Count())
}

func TestRegister_Conflict(t *testing.T) {
	reg := registry.New()

	require.NoError(t, reg.Register(entry("Keyward.Protection.Foo", "protection.protector")))

	err := reg.Register(entry("Keyward.Protection.Foo", "protection.other"))
	assert.ErrorIs(t, err, registry.ErrConflictingRegistration)
	assert.Equal(t, 1, reg.Count())
}

func TestRegister_Validation(t *testing.T) {
	reg := registry.New()

	err := reg.Register(entry("", "protection.protector"))
	assert.ErrorIs(t, err, registry.ErrEmptyIdentity)

	err = reg.Register(apis.Entry{
		Identity: "Keyward.Protection.Foo",
		New:      func() (any, error) { return struct{}{}, nil },
	})
	assert.ErrorIs(t, err, registry.ErrNoCapabilities)

	err = reg.Register(apis.Entry{
		Identity:     "Keyward.Protection.Foo",
		Capabilities: []apis.Capability{"protection.protector"},
	})
	assert.ErrorIs(t, err, registry.ErrNoConstructor)

	assert.Equal(t, 0, reg.Count())
}

func TestEntriesAndReset(t *testing.T) {
	reg := registry.New()

	require.NoError(t, reg.Register(entry("Keyward.Protection.Foo", "protection.protector")))
	require.NoError(t, reg.Register(entry("Keyward.Protection.Bar", "protection.keyring")))

	entries := reg.Entries()
	assert.Len(t, entries, 2)

	identities := []string{entries[0].Identity, entries[1].Identity}
	assert.ElementsMatch(t, []string{"Keyward.Protection.Foo", "Keyward.Protection.Bar"}, identities)

	reg.Reset()
	assert.Equal(t, 0, reg.Count())
	assert.False(t, reg.Contains("Keyward.Protection.Foo"))
}

func TestLookup_EmptyIdentity(t *testing.T) {
	reg := registry.New()

	_, ok := reg.Lookup("")
	assert.False(t, ok)
}
