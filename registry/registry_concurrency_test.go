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
	"errors"
	"fmt"
	"runtime"
	"sync"
	"testing"

	"keyward.dev/kwp/apis"
	"keyward.dev/kwp/registry"
)

// TestConcurrentRegisterAndLookup verifies that Register/Lookup/Entries/Count
// are race-free and consistent under concurrent use.
func TestConcurrentRegisterAndLookup(t *testing.T) {
	reg := registry.New()

	identities := make([]string, 10)
	for i := range identities {
		identities[i] = fmt.Sprintf("Keyward.Protection.T%d", i)
	}

	// Register once (sequential) to establish baseline.
	for _, id := range identities {
		if err := reg.Register(entry(id, "protection.protector")); err != nil {
			t.Fatalf("register %s: %v", id, err)
		}
	}

	// Hammer with concurrent lookups and conflicting re-registrations.
	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	// Readers
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				id := identities[i%len(identities)]
				if got, ok := reg.Lookup(id); !ok || got.Identity != id {
					t.Errorf("lookup failed for %s: ok=%v got=%q", id, ok, got.Identity)
					return
				}
				_ = reg.Count()
				_ = reg.Entries()
			}
		}()
	}

	// Writers (re-register must be safe and must conflict, never corrupt)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				j := (i + id) % len(identities)
				err := reg.Register(entry(identities[j], "protection.protector"))
				if !errors.Is(err, registry.ErrConflictingRegistration) {
					t.Errorf("re-register %s: got %v want conflict", identities[j], err)
					return
				}
			}
		}(w)
	}

	wg.Wait()

	// Final consistency checks.
	if reg.Count() != len(identities) {
		t.Fatalf("count mismatch: got %d want %d", reg.Count(), len(identities))
	}
	got := map[string]bool{}
	for _, e := range reg.Entries() {
		got[e.Identity] = true
	}
	for _, id := range identities {
		if !got[id] {
			t.Fatalf("entry missing for %s after hammer", id)
		}
	}
}

// TestResetSnapshot ensures Reset is safe and Entries returns a stable snapshot.
func TestResetSnapshot(t *testing.T) {
	reg := registry.New()

	_ = reg.Register(entry("Keyward.Protection.T0", "protection.protector"))
	_ = reg.Register(entry("Keyward.Protection.T1", "protection.protector"))

	snap := reg.Entries() // snapshot copy expected
	reg.Reset()

	// After Reset, Count() should be 0, but previous snapshot must still be usable.
	if reg.Count() != 0 {
		t.Fatalf("count after reset: got %d want 0", reg.Count())
	}
	if len(snap) != 2 {
		t.Fatalf("snapshot length changed unexpectedly: %d", len(snap))
	}
	// sanity
	if snap[0].Identity == "" || snap[1].Identity == "" {
		t.Fatalf("snapshot contents invalid after reset")
	}
}

// This ensures the interface is satisfied; not a test but a compile-time check.
var _ apis.Registry = registry.New()
