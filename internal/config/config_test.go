package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigLoad(t *testing.T) {
	// Sauvegarder et nettoyer l'environnement
	envVars := []string{
		"PORT", "ENVIRONMENT", "D_ID_API_URL", "D_ID_API_KEY",
		"THROTTLE_MIN_INTERVAL", "STATUS_CACHE_TTL", "PROVIDER_RECHECK_INTERVAL",
		"PRESENTERS_CACHE_TTL", "STORAGE_TYPE", "STORAGE_PATH", "ARCHIVE_ENABLED",
		"REQUESTS_PER_MINUTE",
	}

	oldValues := make(map[string]string)
	for _, key := range envVars {
		oldValues[key] = os.Getenv(key)
		os.Unsetenv(key)
	}

	defer func() {
		// Restaurer l'environnement
		for key, value := range oldValues {
			if value != "" {
				os.Setenv(key, value)
			}
		}
	}()

	// Test avec les valeurs par défaut
	cfg := Load()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "https://api.d-id.com", cfg.DIDAPIURL)
	assert.Empty(t, cfg.DIDAPIKey)
	assert.Equal(t, 15*time.Second, cfg.Throttle.MinCallInterval)
	assert.Equal(t, 30*time.Second, cfg.Throttle.StatusCacheTTL)
	assert.Equal(t, time.Minute, cfg.Throttle.ProviderRecheck)
	assert.Equal(t, time.Hour, cfg.Throttle.PresentersTTL)
	assert.Equal(t, 30*time.Second, cfg.Throttle.ProviderTimeout)
	assert.Equal(t, "filesystem", cfg.Storage.Type)
	assert.Equal(t, "./storage", cfg.Storage.BasePath)
	assert.False(t, cfg.ArchiveEnabled)
	assert.Equal(t, 60, cfg.RequestsPerMinute)
}

func TestConfigWithEnvVars(t *testing.T) {
	envVars := map[string]string{
		"PORT":                      "9000",
		"D_ID_API_URL":              "https://stub.d-id.local",
		"D_ID_API_KEY":              "dGVzdDp0ZXN0",
		"THROTTLE_MIN_INTERVAL":     "5s",
		"STATUS_CACHE_TTL":          "10s",
		"PROVIDER_RECHECK_INTERVAL": "20s",
		"PRESENTERS_CACHE_TTL":      "30m",
		"ARCHIVE_ENABLED":           "true",
		"REQUESTS_PER_MINUTE":       "120",
	}

	// Sauvegarder les anciennes valeurs
	oldValues := make(map[string]string)
	for key, value := range envVars {
		oldValues[key] = os.Getenv(key)
		os.Setenv(key, value)
	}

	defer func() {
		for key, oldValue := range oldValues {
			if oldValue != "" {
				os.Setenv(key, oldValue)
			} else {
				os.Unsetenv(key)
			}
		}
	}()

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "https://stub.d-id.local", cfg.DIDAPIURL)
	assert.Equal(t, "dGVzdDp0ZXN0", cfg.DIDAPIKey)
	assert.Equal(t, 5*time.Second, cfg.Throttle.MinCallInterval)
	assert.Equal(t, 10*time.Second, cfg.Throttle.StatusCacheTTL)
	assert.Equal(t, 20*time.Second, cfg.Throttle.ProviderRecheck)
	assert.Equal(t, 30*time.Minute, cfg.Throttle.PresentersTTL)
	assert.True(t, cfg.ArchiveEnabled)
	assert.Equal(t, 120, cfg.RequestsPerMinute)
}

func TestStorageConfig(t *testing.T) {
	// Test spécifique pour la configuration storage
	envVars := map[string]string{
		"STORAGE_TYPE":      "garage",
		"GARAGE_ENDPOINT":   "https://s3.garage.com",
		"GARAGE_ACCESS_KEY": "test-access",
		"GARAGE_SECRET_KEY": "test-secret",
		"GARAGE_BUCKET":     "test-bucket",
		"GARAGE_REGION":     "eu-west-1",
	}

	oldValues := make(map[string]string)
	for key, value := range envVars {
		oldValues[key] = os.Getenv(key)
		os.Setenv(key, value)
	}

	defer func() {
		for key, oldValue := range oldValues {
			if oldValue != "" {
				os.Setenv(key, oldValue)
			} else {
				os.Unsetenv(key)
			}
		}
	}()

	cfg := Load()

	assert.Equal(t, "garage", cfg.Storage.Type)
	assert.Equal(t, "https://s3.garage.com", cfg.Storage.Endpoint)
	assert.Equal(t, "test-access", cfg.Storage.AccessKey)
	assert.Equal(t, "test-secret", cfg.Storage.SecretKey)
	assert.Equal(t, "test-bucket", cfg.Storage.Bucket)
	assert.Equal(t, "eu-west-1", cfg.Storage.Region)
}

func TestInvalidDurationFallsBack(t *testing.T) {
	old := os.Getenv("THROTTLE_MIN_INTERVAL")
	os.Setenv("THROTTLE_MIN_INTERVAL", "not-a-duration")
	defer func() {
		if old != "" {
			os.Setenv("THROTTLE_MIN_INTERVAL", old)
		} else {
			os.Unsetenv("THROTTLE_MIN_INTERVAL")
		}
	}()

	cfg := Load()

	// ParseDuration échoue: la valeur zéro est remplacée par le gateway
	assert.Equal(t, time.Duration(0), cfg.Throttle.MinCallInterval)
}
