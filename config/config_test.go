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

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyward.dev/kwp/apis"
	"keyward.dev/kwp/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, apis.PolicyCurrentRuntime, cfg.Policy)
	assert.Equal(t, config.DefaultLegacyPrefix, cfg.LegacyPrefix)
	assert.Equal(t, config.DefaultCurrentPrefix, cfg.CurrentPrefix)
	assert.Equal(t, config.DefaultStripTimeout, cfg.StripTimeout)
	assert.Equal(t, config.DefaultMaxIdentityLen, cfg.MaxIdentityLen)
	assert.Empty(t, cfg.Discriminator)
}

func TestNew_Options(t *testing.T) {
	cfg := config.New(
		config.WithPolicy(apis.PolicyLegacyRuntime),
		config.WithPrefixes("Old.Ns", "New.Ns"),
		config.WithDiscriminator("app1"),
		config.WithStripTimeout(time.Second),
		config.WithMaxIdentityLen(512),
	)

	assert.Equal(t, apis.PolicyLegacyRuntime, cfg.Policy)
	assert.Equal(t, "Old.Ns", cfg.LegacyPrefix)
	assert.Equal(t, "New.Ns", cfg.CurrentPrefix)
	assert.Equal(t, "app1", cfg.Discriminator)
	assert.Equal(t, time.Second, cfg.StripTimeout)
	assert.Equal(t, 512, cfg.MaxIdentityLen)
}

func TestNew_BoundsReset(t *testing.T) {
	cfg := config.New(
		config.WithStripTimeout(-time.Second),
		config.WithMaxIdentityLen(0),
	)

	assert.Equal(t, config.DefaultStripTimeout, cfg.StripTimeout)
	assert.Equal(t, config.DefaultMaxIdentityLen, cfg.MaxIdentityLen)
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("KWP_POLICY", "legacy-runtime")
	t.Setenv("KWP_LEGACY_PREFIX", "Old.Ns")
	t.Setenv("KWP_CURRENT_PREFIX", "New.Ns")
	t.Setenv("KWP_DISCRIMINATOR", "app1")
	t.Setenv("KWP_STRIP_TIMEOUT", "500ms")
	t.Setenv("KWP_MAX_IDENTITY_LEN", "1024")

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, apis.PolicyLegacyRuntime, cfg.Policy)
	assert.Equal(t, "Old.Ns", cfg.LegacyPrefix)
	assert.Equal(t, "New.Ns", cfg.CurrentPrefix)
	assert.Equal(t, "app1", cfg.Discriminator)
	assert.Equal(t, 500*time.Millisecond, cfg.StripTimeout)
	assert.Equal(t, 1024, cfg.MaxIdentityLen)
}

func TestFromEnv_UnknownPolicy(t *testing.T) {
	t.Setenv("KWP_POLICY", "future-runtime")

	_, err := config.FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown policy")
}
