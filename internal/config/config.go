package config

import (
	"os"
	"strconv"
	"time"

	"github.com/POWERVHD/Viducate-backend/pkg/storage"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	// Provider (D-ID)
	DIDAPIURL string
	DIDAPIKey string

	// Fenêtres de throttling/cache du gateway
	Throttle ThrottleConfig

	// Archivage des vidéos terminées
	ArchiveEnabled bool
	Storage        *storage.StorageConfig

	// Rate limiting par IP côté API publique
	RequestsPerMinute int
}

type ThrottleConfig struct {
	MinCallInterval time.Duration // intervalle minimum entre deux appels provider
	StatusCacheTTL  time.Duration // fenêtre courte: réponse cache sans rien toucher
	ProviderRecheck time.Duration // fenêtre longue: pas de re-vérification provider
	PresentersTTL   time.Duration // fraîcheur de la liste des presenters
	ProviderTimeout time.Duration // timeout du client HTTP vers le provider
}

func Load() *Config {
	minInterval, _ := time.ParseDuration(getEnv("THROTTLE_MIN_INTERVAL", "15s"))
	statusTTL, _ := time.ParseDuration(getEnv("STATUS_CACHE_TTL", "30s"))
	recheck, _ := time.ParseDuration(getEnv("PROVIDER_RECHECK_INTERVAL", "60s"))
	presentersTTL, _ := time.ParseDuration(getEnv("PRESENTERS_CACHE_TTL", "1h"))
	providerTimeout, _ := time.ParseDuration(getEnv("PROVIDER_TIMEOUT", "30s"))

	return &Config{
		Port:        getEnv("PORT", "8000"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DIDAPIURL:   getEnv("D_ID_API_URL", "https://api.d-id.com"),
		DIDAPIKey:   getEnv("D_ID_API_KEY", ""),
		Throttle: ThrottleConfig{
			MinCallInterval: minInterval,
			StatusCacheTTL:  statusTTL,
			ProviderRecheck: recheck,
			PresentersTTL:   presentersTTL,
			ProviderTimeout: providerTimeout,
		},
		ArchiveEnabled: getEnvBool("ARCHIVE_ENABLED", false),
		Storage: &storage.StorageConfig{
			Type:      getEnv("STORAGE_TYPE", "filesystem"),
			BasePath:  getEnv("STORAGE_PATH", "./storage"),
			Endpoint:  getEnv("GARAGE_ENDPOINT", ""),
			AccessKey: getEnv("GARAGE_ACCESS_KEY", ""),
			SecretKey: getEnv("GARAGE_SECRET_KEY", ""),
			Bucket:    getEnv("GARAGE_BUCKET", "viducate-videos"),
			Region:    getEnv("GARAGE_REGION", "garage"),
		},
		RequestsPerMinute: getEnvInt("REQUESTS_PER_MINUTE", 60),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
