package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment.Name)
	assert.True(t, cfg.Environment.IsDevelopment())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 30, cfg.Purchase.VisitWindowDays)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.False(t, cfg.BrainTree.Enabled())
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadPrefixedOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "host=localhost dbname=park")
	t.Setenv("AUTH_TOKEN_TTL", "90m")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("BRAINTREE_MERCHANT_ID", "m")
	t.Setenv("BRAINTREE_PUBLIC_KEY", "pub")
	t.Setenv("BRAINTREE_PRIVATE_KEY", "priv")
	t.Setenv("PURCHASE_VISIT_WINDOW_DAYS", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "host=localhost dbname=park", cfg.Database.DSN)
	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.True(t, cfg.BrainTree.Enabled())
	assert.Equal(t, 7, cfg.Purchase.VisitWindowDays)
}

func TestLoadRejectsEmptyVisitWindow(t *testing.T) {
	t.Setenv("PURCHASE_VISIT_WINDOW_DAYS", "0")

	_, err := Load()
	assert.Error(t, err)
}
