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
	"time"

	"github.com/google/uuid"
)

// Key is a root key held by a key ring. Material is raw symmetric key
// bytes; protectors never use it directly, only through derivation.
type Key struct {
	// ID uniquely identifies the key. Recorded in protected payloads.
	ID uuid.UUID
	// Created is when the key material was generated.
	Created time.Time
	// Activation is when the key becomes eligible as the active key.
	Activation time.Time
	// Expiration is when the key stops being eligible as the active key.
	// Expired keys still open previously protected payloads.
	Expiration time.Time
	// Revoked marks the key as unusable for both protect and unprotect.
	Revoked bool
	// RevocationReason is optional operator-facing context.
	RevocationReason string
	// Material is the raw root key bytes.
	Material []byte
}

// KeyRing is a point-in-time view of the usable keys. Immutable once
// returned; safe for unsynchronized concurrent reads.
type KeyRing interface {
	// ActiveKeyID is the key new payloads are protected with.
	ActiveKeyID() uuid.UUID
	// Key returns a key on the ring by ID.
	Key(id uuid.UUID) (Key, bool)
}

// KeyRingProvider supplies the current key ring. Implementations own
// caching, persistence, and rotation policy; this core only reads.
type KeyRingProvider interface {
	// Current returns the ring to use for operations starting now. It
	// fails when no usable active key exists.
	Current() (KeyRing, error)
}

// KeyManager owns key lifecycle. Internals (persistence, escrow, rotation
// policy) are collaborator responsibility and out of scope for this core.
type KeyManager interface {
	// CreateKey generates and stores a new key with the given window.
	CreateKey(activation, expiration time.Time) (Key, error)
	// Keys returns a snapshot of all keys, including revoked and expired.
	Keys() []Key
	// RevokeKey marks a key unusable.
	RevokeKey(id uuid.UUID, reason string) error
}
