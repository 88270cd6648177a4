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

// Provider creates purpose-scoped protection handles. The top-level
// provider is the root of the purpose chain; when a discriminator is
// configured, the root provider and the root protector are the same object.
type Provider interface {
	// CreateProtector returns a protector whose purpose chain is this
	// object's chain with purpose appended. The child is independent of
	// the parent; chains are immutable once built.
	CreateProtector(purpose string) Protector
}

// Protector protects and unprotects payloads under a purpose chain.
//
// The chain's materialized key-derivation input is a deterministic,
// order-preserving function of the purposes: two differently-constructed
// but value-equal chains derive identical key material. In particular,
// scoping a provider by a discriminator and then creating a protector for
// purpose P is indistinguishable, for key-derivation purposes, from
// creating protectors for the discriminator and then for P in sequence.
type Protector interface {
	Provider

	// Protect encrypts plaintext under the chain's derived key using the
	// current key ring's active key.
	Protect(plaintext []byte) ([]byte, error)

	// Unprotect decrypts a payload previously produced by a protector with
	// a value-equal purpose chain. The payload names the key it was
	// protected with, so rotation does not invalidate old payloads as long
	// as the key remains on the ring.
	Unprotect(protected []byte) ([]byte, error)

	// Purposes returns a copy of the purpose chain, root first.
	Purposes() []string
}
