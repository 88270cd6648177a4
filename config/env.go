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
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"keyward.dev/kwp/apis"
)

// envConfig is the flat environment surface. The discriminator is the one
// knob hosts commonly set; everything else has safe defaults.
type envConfig struct {
	Policy         string        `env:"KWP_POLICY" envDefault:"current-runtime"`
	LegacyPrefix   string        `env:"KWP_LEGACY_PREFIX" envDefault:"Keyward.Shield"`
	CurrentPrefix  string        `env:"KWP_CURRENT_PREFIX" envDefault:"Keyward.Protection"`
	Discriminator  string        `env:"KWP_DISCRIMINATOR"`
	StripTimeout   time.Duration `env:"KWP_STRIP_TIMEOUT" envDefault:"2s"`
	MaxIdentityLen int           `env:"KWP_MAX_IDENTITY_LEN" envDefault:"4096"`
}

// FromEnv loads configuration from environment variables.
func FromEnv() (apis.Config, error) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return apis.Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch p := apis.Policy(ec.Policy); p {
	case apis.PolicyCurrentRuntime, apis.PolicyLegacyRuntime:
	default:
		return apis.Config{}, fmt.Errorf("kwp(config): unknown policy %q", ec.Policy)
	}
	return New(
		WithPolicy(apis.Policy(ec.Policy)),
		WithPrefixes(ec.LegacyPrefix, ec.CurrentPrefix),
		WithDiscriminator(ec.Discriminator),
		WithStripTimeout(ec.StripTimeout),
		WithMaxIdentityLen(ec.MaxIdentityLen),
	), nil
}
