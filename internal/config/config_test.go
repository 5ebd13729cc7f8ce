// AngelaMos | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaultsAndFile(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://localhost/talenthub
redis:
  url: redis://localhost:6379/0
entitlements:
  profile:
    established_pct: 55
`)

	c, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 20, c.Entitlements.Profile.InProgressPct)
	assert.Equal(t, 55, c.Entitlements.Profile.EstablishedPct)
	assert.Equal(t, 5*time.Minute, c.Entitlements.Quota.LimitCacheTTL)
	assert.Equal(t, 150*time.Millisecond, c.Entitlements.Navigation.RedirectDelay)
	assert.Equal(t,
		[]string{"/settings", "/opportunities"},
		c.Entitlements.Navigation.ProtectedPrefixes,
	)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://file/talenthub
redis:
  url: redis://localhost:6379/0
`)
	t.Setenv("DATABASE_URL", "postgres://env/talenthub")
	t.Setenv("QUOTA_LIMIT_CACHE_TTL", "30s")

	c, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env/talenthub", c.Database.URL)
	assert.Equal(t, 30*time.Second, c.Entitlements.Quota.LimitCacheTTL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{URL: "postgres://x"},
			Redis:    RedisConfig{URL: "redis://x"},
			JWT:      JWTConfig{PublicKeyPath: "keys/public.pem"},
			Server:   ServerConfig{ReadTimeout: time.Second, WriteTimeout: time.Second},
			Entitlements: EntitlementsConfig{Profile: ProfileConfig{
				InProgressPct: 20, EstablishedPct: 60, CompletePct: 90,
			}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "missing database",
			mutate:  func(c *Config) { c.Database.URL = "" },
			wantErr: "DATABASE_URL",
		},
		{
			name:    "missing public key",
			mutate:  func(c *Config) { c.JWT.PublicKeyPath = "" },
			wantErr: "JWT_PUBLIC_KEY_PATH",
		},
		{
			name: "wildcard cors with credentials",
			mutate: func(c *Config) {
				c.CORS.AllowCredentials = true
				c.CORS.AllowedOrigins = []string{"*"}
			},
			wantErr: "wildcard",
		},
		{
			name:    "unordered profile thresholds",
			mutate:  func(c *Config) { c.Entitlements.Profile.EstablishedPct = 95 },
			wantErr: "entitlements.profile",
		},
		{
			name:    "negative cache ttl",
			mutate:  func(c *Config) { c.Entitlements.Quota.LimitCacheTTL = -time.Second },
			wantErr: "limit_cache_ttl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := validate(c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
