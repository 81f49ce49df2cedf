package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("TOKEN_TTL", "")

	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.CookieSecure)
}

func TestFromEnvScyllaKeyspaces(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Scylla")
	t.Setenv("SCYLLA_HOSTS", "10.0.0.1, 10.0.0.2,")
	t.Setenv("SCYLLA_KS_ORDERS_KEYSPACE", "mars_orders")
	t.Setenv("SCYLLA_KS_ORDERS_ROLE", "orders_rw")
	t.Setenv("COOKIE_SECURE", "true")

	cfg := FromEnv()
	assert.Equal(t, DriverScylla, cfg.StorageDriver)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.Scylla.Hosts)
	assert.Equal(t, Keyspace{Name: "mars_orders", Role: "orders_rw"}, cfg.Scylla.Keyspaces["orders"])
	assert.True(t, cfg.CookieSecure)
}
