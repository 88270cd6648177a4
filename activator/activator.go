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

// Package activator turns persisted type identities into live,
// capability-checked instances.
//
// The base activator performs the strict lookup-check-construct sequence.
// The forwarding activator wraps it with tolerant, best-effort rewriting of
// legacy identities; see forwarding.go.
package activator

import (
	"fmt"
	"log/slog"

	"keyward.dev/kwp/apis"
	"keyward.dev/kwp/kwapi/common"
)

// New constructs the base Activator over reg. ctx is the explicit
// construction context passed to factories that accept one; it may be nil
// when no collaborators exist, in which case only no-argument constructors
// receive a useful environment.
func New(reg apis.Registry, ctx *apis.Context) apis.Activator {
	return &base{reg: reg, ctx: ctx}
}

// base resolves identities strictly: unknown identity, undeclared
// capability, and missing constructor are each distinct, final failures.
// It has no side effects beyond instance creation and never mutates the
// registry.
type base struct {
	reg apis.Registry
	ctx *apis.Context
}

// Ensure base implements apis.Activator.
var _ apis.Activator = (*base)(nil)

// Resolve looks up identity, checks the declared capability set, and
// constructs an instance, preferring the context-taking constructor.
func (b *base) Resolve(expected apis.Capability, identity string) (any, error) {
	e, ok := b.reg.Lookup(identity)
	if !ok {
		return nil, &apis.ActivationError{Kind: apis.ErrTypeNotFound, Identity: identity, Capability: expected}
	}
	if !e.Supports(expected) {
		return nil, &apis.ActivationError{Kind: apis.ErrCapabilityMismatch, Identity: identity, Capability: expected}
	}

	var (
		inst any
		err  error
	)
	switch {
	case e.NewWithContext != nil:
		inst, err = e.NewWithContext(b.ctx)
	case e.New != nil:
		inst, err = e.New()
	default:
		return nil, &apis.ActivationError{Kind: apis.ErrConstructorNotFound, Identity: identity, Capability: expected}
	}
	if err != nil {
		// A construction path existed but failed at runtime; that is the
		// factory's fault, not a resolution fault, so no taxonomy kind.
		return nil, fmt.Errorf("kwp(activator): construct %q: %w", identity, err)
	}

	if named, ok := inst.(common.Identified); ok {
		if reported := named.TypeIdentity(); reported != identity {
			// Expected after forwarding: the instance reports its current
			// identity while the caller resolved a historical one.
			b.logger().Debug("activated instance reports different identity",
				"resolved", identity, "reported", reported)
		}
	}
	return inst, nil
}

func (b *base) logger() *slog.Logger {
	if b.ctx != nil && b.ctx.Logger != nil {
		return b.ctx.Logger
	}
	return slog.Default()
}
