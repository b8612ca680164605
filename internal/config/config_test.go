package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SERVICE_NAME", "APP_PORT", "BACKEND_BASE_URL", "BACKEND_TIMEOUT",
		"BACKEND_JWT_SECRET", "BACKEND_JWT_SECRET_FILE", "BACKEND_JWT_SUBJECT", "DATABASE_URL", "LINE_FETCH_CONCURRENCY"} {
		t.Setenv(k, "")
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err, "missing .env is reported")
	require.NotNil(t, cfg)

	assert.Equal(t, "printa-orders", cfg.ServiceName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5000/api", cfg.BackendBaseURL)
	assert.Equal(t, 10*time.Second, cfg.BackendTimeout)
	assert.Empty(t, cfg.BackendJWTSecret)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 4, cfg.LineFetchConcurrency)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("BACKEND_BASE_URL", "http://orders.internal/api/")
	t.Setenv("BACKEND_TIMEOUT", "250ms")
	t.Setenv("LINE_FETCH_CONCURRENCY", "not-a-number")

	cfg, _ := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://orders.internal/api", cfg.BackendBaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.BackendTimeout)
	assert.Equal(t, 4, cfg.LineFetchConcurrency)
}

func TestLoad_DotEnvAndSecretFile(t *testing.T) {
	// godotenv never overrides variables that are already set, even to "".
	t.Setenv("DATABASE_URL", "")
	require.NoError(t, os.Unsetenv("DATABASE_URL"))
	t.Setenv("BACKEND_JWT_SECRET", "")
	dir := t.TempDir()

	secret := filepath.Join(dir, "secret")
	require.NoError(t, os.WriteFile(secret, []byte("s3cret\n"), 0o600))
	t.Setenv("BACKEND_JWT_SECRET_FILE", secret)

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DATABASE_URL=postgres://localhost/printa\n"), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/printa", cfg.DatabaseURL)
	assert.Equal(t, "s3cret", cfg.BackendJWTSecret)
}
