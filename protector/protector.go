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

// Package protector implements purpose-chain scoped protection over a key
// ring.
//
// Every protector owns an immutable, ordered purpose chain. The chain is
// materialized into a deterministic, order-preserving byte encoding that
// feeds HKDF-SHA256 over the ring's root key material; payloads are sealed
// with AES-256-GCM under the derived key. Two protectors with value-equal
// chains derive identical keys no matter how the chains were built, which
// is what makes discriminator scoping commute with CreateProtector.
package protector

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"

	"keyward.dev/kwp/apis"
)

// payloadMagic versions the protected payload layout:
// magic || 16-byte key ID || nonce || ciphertext.
const payloadMagic byte = 0x4B

// chainLabel domain-separates the KDF input from any other HKDF use of the
// same root keys.
const chainLabel = "kwp/purpose-chain/v1"

var (
	// ErrPayloadMalformed is returned for payloads too short or carrying
	// an unknown layout marker.
	ErrPayloadMalformed = errors.New("kwp(protector): malformed protected payload")
	// ErrUnknownKey is returned when the payload names a key that is not
	// on the current ring.
	ErrUnknownKey = errors.New("kwp(protector): payload key not on current ring")
)

// New constructs the root protector over rings with an optional initial
// purpose chain. The root of the provider hierarchy is a protector with an
// empty chain.
func New(rings apis.KeyRingProvider, purposes ...string) *Protector {
	chain := make([]string, len(purposes))
	copy(chain, purposes)
	return &Protector{rings: rings, chain: chain}
}

// Protector is an immutable purpose-chain protection handle. All methods
// are safe for unsynchronized concurrent use.
type Protector struct {
	rings apis.KeyRingProvider
	chain []string
}

// Ensure Protector satisfies both composition contracts.
var (
	_ apis.Provider  = (*Protector)(nil)
	_ apis.Protector = (*Protector)(nil)
)

// CreateProtector returns a child protector with purpose appended to this
// protector's chain. The parent is unchanged.
func (p *Protector) CreateProtector(purpose string) apis.Protector {
	chain := make([]string, 0, len(p.chain)+1)
	chain = append(chain, p.chain...)
	chain = append(chain, purpose)
	return &Protector{rings: p.rings, chain: chain}
}

// Purposes returns a copy of the purpose chain, root first.
func (p *Protector) Purposes() []string {
	out := make([]string, len(p.chain))
	copy(out, p.chain)
	return out
}

// Protect encrypts plaintext under the chain-derived key of the ring's
// active key.
func (p *Protector) Protect(plaintext []byte) ([]byte, error) {
	if p == nil || p.rings == nil {
		return nil, fmt.Errorf("kwp(protector): no key ring provider configured")
	}
	ring, err := p.rings.Current()
	if err != nil {
		return nil, fmt.Errorf("kwp(protector): current ring: %w", err)
	}
	keyID := ring.ActiveKeyID()
	key, ok := ring.Key(keyID)
	if !ok {
		return nil, fmt.Errorf("kwp(protector): ring has no active key material")
	}
	aead, err := p.aead(key.Material)
	if err != nil {
		return nil, err
	}

	// GCM requires a unique nonce per encryption under the same key.
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("kwp(protector): read nonce: %w", err)
	}

	out := make([]byte, 0, 1+len(keyID)+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, payloadMagic)
	out = append(out, keyID[:]...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, nil), nil
}

// Unprotect decrypts a payload produced under a value-equal purpose chain.
// The key is located by the ID recorded in the payload header, so payloads
// survive key rotation as long as the key stays on the ring.
func (p *Protector) Unprotect(protected []byte) ([]byte, error) {
	if p == nil || p.rings == nil {
		return nil, fmt.Errorf("kwp(protector): no key ring provider configured")
	}
	if len(protected) < 1+16 || protected[0] != payloadMagic {
		return nil, ErrPayloadMalformed
	}
	keyID, err := uuid.FromBytes(protected[1 : 1+16])
	if err != nil {
		return nil, ErrPayloadMalformed
	}

	ring, err := p.rings.Current()
	if err != nil {
		return nil, fmt.Errorf("kwp(protector): current ring: %w", err)
	}
	key, ok := ring.Key(keyID)
	if !ok {
		return nil, ErrUnknownKey
	}
	aead, err := p.aead(key.Material)
	if err != nil {
		return nil, err
	}

	rest := protected[1+16:]
	if len(rest) < aead.NonceSize() {
		return nil, ErrPayloadMalformed
	}
	nonce, ciphertext := rest[:aead.NonceSize()], rest[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("kwp(protector): open payload: %w", err)
	}
	return plaintext, nil
}

// aead derives the chain key from root material and builds the AES-GCM
// cipher for it.
func (p *Protector) aead(material []byte) (cipher.AEAD, error) {
	derived, err := deriveKey(material, p.chain)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, fmt.Errorf("kwp(protector): new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("kwp(protector): new gcm: %w", err)
	}
	return aead, nil
}

// deriveKey expands root material into a 32-byte chain key via HKDF-SHA256
// with the materialized chain encoding as info.
func deriveKey(material []byte, chain []string) ([]byte, error) {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, material, nil, chainInfo(chain))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("kwp(protector): derive chain key: %w", err)
	}
	return key, nil
}

// chainInfo materializes a purpose chain into a deterministic,
// order-preserving, injective byte encoding: a fixed label followed by
// uvarint-length-prefixed purposes. Length prefixes keep ["ab","c"] and
// ["a","bc"] distinct.
func chainInfo(chain []string) []byte {
	size := len(chainLabel)
	for _, purpose := range chain {
		size += binary.MaxVarintLen64 + len(purpose)
	}
	out := make([]byte, 0, size)
	out = append(out, chainLabel...)
	var lenBuf [binary.MaxVarintLen64]byte
	for _, purpose := range chain {
		n := binary.PutUvarint(lenBuf[:], uint64(len(purpose)))
		out = append(out, lenBuf[:n]...)
		out = append(out, purpose...)
	}
	return out
}
