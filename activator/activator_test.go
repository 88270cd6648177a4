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

package activator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyward.dev/kwp/activator"
	"keyward.dev/kwp/apis"
	"keyward.dev/kwp/registry"
)

type widget struct {
	viaContext bool
	ctx        *apis.Context
}

type namedWidget struct {
	identity string
}

func (n *namedWidget) TypeIdentity() string { return n.identity }

func TestResolve_TypeNotFound(t *testing.T) {
	act := activator.New(registry.New(), nil)

	_, err := act.Resolve("protection.protector", "Keyward.Protection.Missing")
	assert.ErrorIs(t, err, apis.ErrTypeNotFound)

	var aerr *apis.ActivationError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "Keyward.Protection.Missing", aerr.Identity)
	assert.Equal(t, apis.Capability("protection.protector"), aerr.Capability)
}

func TestResolve_CapabilityMismatch(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(apis.Entry{
		Identity:     "Keyward.Protection.Widget",
		Capabilities: []apis.Capability{"protection.keyring"},
		New:          func() (any, error) { return &widget{}, nil },
	}))
	act := activator.New(reg, nil)

	_, err := act.Resolve("protection.protector", "Keyward.Protection.Widget")
	assert.ErrorIs(t, err, apis.ErrCapabilityMismatch)
}

func TestResolve_PrefersContextConstructor(t *testing.T) {
	ctx := &apis.Context{}
	reg := registry.New()
	require.NoError(t, reg.Register(apis.Entry{
		Identity:     "Keyward.Protection.Widget",
		Capabilities: []apis.Capability{"protection.protector"},
		NewWithContext: func(c *apis.Context) (any, error) {
			return &widget{viaContext: true, ctx: c}, nil
		},
		New: func() (any, error) { return &widget{}, nil },
	}))
	act := activator.New(reg, ctx)

	inst, err := act.Resolve("protection.protector", "Keyward.Protection.Widget")
	require.NoError(t, err)

	w, ok := inst.(*widget)
	require.True(t, ok)
	assert.True(t, w.viaContext)
	assert.Same(t, ctx, w.ctx)
}

func TestResolve_FallsBackToPlainConstructor(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(apis.Entry{
		Identity:     "Keyward.Protection.Widget",
		Capabilities: []apis.Capability{"protection.protector"},
		New:          func() (any, error) { return &widget{}, nil },
	}))
	act := activator.New(reg, nil)

	inst, err := act.Resolve("protection.protector", "Keyward.Protection.Widget")
	require.NoError(t, err)

	w, ok := inst.(*widget)
	require.True(t, ok)
	assert.False(t, w.viaContext)
}

func TestResolve_FactoryFailureIsNotTaxonomy(t *testing.T) {
	boom := errors.New("backing store unavailable")
	reg := registry.New()
	require.NoError(t, reg.Register(apis.Entry{
		Identity:     "Keyward.Protection.Widget",
		Capabilities: []apis.Capability{"protection.protector"},
		New:          func() (any, error) { return nil, boom },
	}))
	act := activator.New(reg, nil)

	_, err := act.Resolve("protection.protector", "Keyward.Protection.Widget")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// A runtime factory failure is not a resolution failure.
	assert.NotErrorIs(t, err, apis.ErrTypeNotFound)
	assert.NotErrorIs(t, err, apis.ErrCapabilityMismatch)
	assert.NotErrorIs(t, err, apis.ErrConstructorNotFound)
}

// bareRegistry serves entries without validating them, standing in for a
// host-provided registry that admits constructor-less entries.
type bareRegistry struct {
	apis.Registry
	entries map[string]apis.Entry
}

func (r *bareRegistry) Lookup(identity string) (apis.Entry, bool) {
	e, ok := r.entries[identity]
	return e, ok
}

func (r *bareRegistry) Contains(identity string) bool {
	_, ok := r.entries[identity]
	return ok
}

func TestResolve_ConstructorNotFound(t *testing.T) {
	reg := &bareRegistry{entries: map[string]apis.Entry{
		"Keyward.Protection.Widget": {
			Identity:     "Keyward.Protection.Widget",
			Capabilities: []apis.Capability{"protection.protector"},
		},
	}}
	act := activator.New(reg, nil)

	_, err := act.Resolve("protection.protector", "Keyward.Protection.Widget")
	assert.ErrorIs(t, err, apis.ErrConstructorNotFound)
}

func TestResolve_IdentifiedMismatchIsNotAnError(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(apis.Entry{
		Identity:     "Keyward.Protection.Widget",
		Capabilities: []apis.Capability{"protection.protector"},
		New: func() (any, error) {
			return &namedWidget{identity: "Keyward.Protection.WidgetV2"}, nil
		},
	}))
	act := activator.New(reg, nil)

	inst, err := act.Resolve("protection.protector", "Keyward.Protection.Widget")
	require.NoError(t, err)
	assert.IsType(t, &namedWidget{}, inst)
}
