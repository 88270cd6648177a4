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

// Package keyring provides the in-memory key manager and key-ring provider.
// It is the default collaborator pair behind the protector hierarchy;
// durable storage and escrow belong to external implementations of the same
// contracts.
package keyring

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"keyward.dev/kwp/apis"
)

const keySize = 32 // AES-256 root keys

var (
	// ErrNoActiveKey is returned when no activated, unexpired, unrevoked
	// key exists.
	ErrNoActiveKey = errors.New("kwp(keyring): no active key available")
	// ErrKeyNotFound is returned when revoking an unknown key.
	ErrKeyNotFound = errors.New("kwp(keyring): key not found")
	// ErrInvalidWindow is returned when expiration does not follow
	// activation.
	ErrInvalidWindow = errors.New("kwp(keyring): expiration must follow activation")
)

// NewManager constructs an empty in-memory Manager.
func NewManager() *Manager {
	return &Manager{keys: make(map[uuid.UUID]apis.Key)}
}

// Manager holds root keys in memory. It implements both apis.KeyManager
// and apis.KeyRingProvider: the rings it hands out are immutable snapshots,
// so readers never observe a half-rotated state.
type Manager struct {
	mu   sync.Mutex
	keys map[uuid.UUID]apis.Key
}

// Ensure Manager implements both collaborator contracts.
var (
	_ apis.KeyManager      = (*Manager)(nil)
	_ apis.KeyRingProvider = (*Manager)(nil)
)

// CreateKey generates a new random root key with the given window.
func (m *Manager) CreateKey(activation, expiration time.Time) (apis.Key, error) {
	if !expiration.After(activation) {
		return apis.Key{}, ErrInvalidWindow
	}
	material := make([]byte, keySize)
	if _, err := rand.Read(material); err != nil {
		return apis.Key{}, fmt.Errorf("kwp(keyring): generate key material: %w", err)
	}
	k := apis.Key{
		ID:         uuid.New(),
		Created:    time.Now(),
		Activation: activation,
		Expiration: expiration,
		Material:   material,
	}

	m.mu.Lock()
	m.keys[k.ID] = k
	m.mu.Unlock()
	return k, nil
}

// Keys returns a snapshot of all keys, including revoked and expired ones.
func (m *Manager) Keys() []apis.Key {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]apis.Key, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, k)
	}
	return out
}

// RevokeKey marks a key unusable for both protect and unprotect.
func (m *Manager) RevokeKey(id uuid.UUID, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, ok := m.keys[id]
	if !ok {
		return ErrKeyNotFound
	}
	k.Revoked = true
	k.RevocationReason = reason
	m.keys[id] = k
	return nil
}

// Current assembles the ring for operations starting now. The active key is
// the activated, unexpired, unrevoked key with the latest activation time;
// expired keys stay on the ring so old payloads remain readable.
func (m *Manager) Current() (apis.KeyRing, error) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	var (
		active   uuid.UUID
		best     time.Time
		haveBest bool
	)
	keys := make(map[uuid.UUID]apis.Key, len(m.keys))
	for id, k := range m.keys {
		if k.Revoked {
			continue
		}
		keys[id] = k
		usable := !k.Activation.After(now) && k.Expiration.After(now)
		if usable && (!haveBest || k.Activation.After(best)) {
			active, best, haveBest = id, k.Activation, true
		}
	}
	if !haveBest {
		return nil, ErrNoActiveKey
	}
	return &ring{active: active, keys: keys}, nil
}

// ring is an immutable snapshot of the usable keys.
type ring struct {
	active uuid.UUID
	keys   map[uuid.UUID]apis.Key
}

// ActiveKeyID implements apis.KeyRing.
func (r *ring) ActiveKeyID() uuid.UUID {
	return r.active
}

// Key implements apis.KeyRing.
func (r *ring) Key(id uuid.UUID) (apis.Key, bool) {
	k, ok := r.keys[id]
	return k, ok
}
