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

package config

import (
	"time"

	"keyward.dev/kwp/apis"
)

const (
	// DefaultLegacyPrefix is the namespace token of identities recorded by
	// pre-rename releases.
	DefaultLegacyPrefix = "Keyward.Shield"
	// DefaultCurrentPrefix is the namespace token of the current release.
	DefaultCurrentPrefix = "Keyward.Protection"
	// DefaultStripTimeout mirrors the historical 2-second matching budget.
	DefaultStripTimeout = 2 * time.Second
	// DefaultMaxIdentityLen caps identities eligible for version stripping.
	// Persisted identities are short; anything beyond this is pathological.
	DefaultMaxIdentityLen = 4096
)

// New constructs an apis.Config from the given options.
func New(opts ...Option) apis.Config {
	cfg := Default()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure bounds are valid.
	if cfg.MaxIdentityLen <= 0 {
		cfg.MaxIdentityLen = DefaultMaxIdentityLen
	}
	if cfg.StripTimeout <= 0 {
		cfg.StripTimeout = DefaultStripTimeout
	}
	return cfg
}

// Default is the configuration used when none is provided.
func Default() apis.Config {
	return apis.Config{
		Policy:         apis.PolicyCurrentRuntime,
		LegacyPrefix:   DefaultLegacyPrefix,
		CurrentPrefix:  DefaultCurrentPrefix,
		StripTimeout:   DefaultStripTimeout,
		MaxIdentityLen: DefaultMaxIdentityLen,
	}
}

// Option is a functional option that mutates an apis.Config during
// construction.
type Option func(*apis.Config)

// WithPolicy sets the runtime compatibility policy.
func WithPolicy(p apis.Policy) Option {
	return func(c *apis.Config) {
		c.Policy = p
	}
}

// WithPrefixes sets the legacy and current namespace tokens.
func WithPrefixes(legacy, current string) Option {
	return func(c *apis.Config) {
		c.LegacyPrefix = legacy
		c.CurrentPrefix = current
	}
}

// WithDiscriminator sets the application discriminator that scopes the
// top-level provider.
func WithDiscriminator(d string) Option {
	return func(c *apis.Config) {
		c.Discriminator = d
	}
}

// WithStripTimeout sets the version-clause matching budget.
// A non-positive value resets to the default.
func WithStripTimeout(d time.Duration) Option {
	return func(c *apis.Config) {
		if d <= 0 {
			c.StripTimeout = DefaultStripTimeout
			return
		}
		c.StripTimeout = d
	}
}

// WithMaxIdentityLen sets the stripping length bound.
// A non-positive value resets to the default.
func WithMaxIdentityLen(n int) Option {
	return func(c *apis.Config) {
		if n <= 0 {
			c.MaxIdentityLen = DefaultMaxIdentityLen
			return
		}
		c.MaxIdentityLen = n
	}
}
