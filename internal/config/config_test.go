package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_BACKEND", "SYNC_INTERVAL", "QR_SIZE", "JWT_SECRET"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, BackendFile, cfg.StoreBackend)
	assert.Equal(t, "pix-store", cfg.StoreName)
	assert.Equal(t, 30*time.Second, cfg.SyncInterval)
	assert.Equal(t, 256, cfg.QRSize)
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("SYNC_INTERVAL", "5s")
	t.Setenv("QR_SIZE", "512")
	t.Setenv("BACKUP_ON_CLOSE", "true")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, 5*time.Second, cfg.SyncInterval)
	assert.Equal(t, 512, cfg.QRSize)
	assert.True(t, cfg.BackupOnClose)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("QR_SIZE", "big")
	t.Setenv("SYNC_INTERVAL", "soon")
	t.Setenv("BACKUP_ON_CLOSE", "maybe")

	assert.Equal(t, 256, GetIntEnv("QR_SIZE", 256))
	assert.Equal(t, time.Minute, GetDurationEnv("SYNC_INTERVAL", time.Minute))
	assert.False(t, GetBoolEnv("BACKUP_ON_CLOSE", false))
}
