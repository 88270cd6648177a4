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

import (
	"errors"
	"fmt"
)

// Sentinel errors backing the activation error taxonomy. Every
// ActivationError unwraps to exactly one of these, so callers classify
// failures with errors.Is.
var (
	// ErrTypeNotFound indicates the identity does not resolve to any
	// registered implementation.
	ErrTypeNotFound = errors.New("kwp: type identity not registered")
	// ErrCapabilityMismatch indicates the resolved registration exists but
	// does not declare the required capability.
	ErrCapabilityMismatch = errors.New("kwp: registration lacks required capability")
	// ErrConstructorNotFound indicates the resolved registration offers no
	// supported construction path.
	ErrConstructorNotFound = errors.New("kwp: registration has no usable constructor")
)

// Activator resolves a persisted type identity into a live instance that
// satisfies the expected capability.
//
// Resolve is safe for unsynchronized concurrent use. Failures are
// deterministic name-resolution failures; retrying an identical call cannot
// succeed and implementations never retry internally.
type Activator interface {
	// Resolve looks up identity, verifies expected against the declared
	// capability set, and constructs an instance. On failure it returns a
	// *ActivationError classifying the fault.
	Resolve(expected Capability, identity string) (any, error)
}

// ActivationError is the structured failure of a single activation attempt.
type ActivationError struct {
	// Kind is the sentinel this error unwraps to: ErrTypeNotFound,
	// ErrCapabilityMismatch, or ErrConstructorNotFound.
	Kind error
	// Identity is the identity the base activator ultimately attempted.
	Identity string
	// Capability is the capability the caller required.
	Capability Capability
}

// Error implements the error interface.
func (e *ActivationError) Error() string {
	return fmt.Sprintf("%v (identity %q, capability %q)", e.Kind, e.Identity, e.Capability)
}

// Unwrap exposes the taxonomy sentinel for errors.Is.
func (e *ActivationError) Unwrap() error {
	return e.Kind
}
