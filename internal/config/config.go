package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pitchlink/stats-engine/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

const (
	StatsProviderAPIFootball = "apifootball"
	StatsProviderSimulated   = "simulated"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level

	StoreBackend string
	DBURL        string
	CacheEnabled bool
	CacheTTL     time.Duration

	CORSAllowedOrigins []string

	GatekeeperBaseURL        string
	GatekeeperIntrospectPath string
	GatekeeperTimeout        time.Duration

	InternalJobToken string

	StatsProvider                    string
	APIFootballBaseURL               string
	APIFootballToken                 string
	APIFootballTimeout               time.Duration
	APIFootballMaxRetries            int
	APIFootballRequestsPerMin        int
	APIFootballCircuitEnabled        bool
	APIFootballCircuitFailureCount   int
	APIFootballCircuitOpenTimeout    time.Duration
	APIFootballCircuitHalfOpenMaxReq int

	SyncSeason       int
	BulkPaceInterval time.Duration
	BulkRetainedRuns int
	TierBasicMetrics []string
	WarmMaxWorkers   int

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration

	PprofEnabled bool
	PprofAddr    string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	// Bulk passes run inside the request, so writes stay open far longer
	// than a normal API call.
	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "30m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}

	storeBackend := strings.ToLower(strings.TrimSpace(getEnv("STORE_BACKEND", StoreBackendMemory)))
	switch storeBackend {
	case StoreBackendPostgres, StoreBackendMemory:
	default:
		return Config{}, fmt.Errorf("invalid STORE_BACKEND %q: valid values are %s, %s", storeBackend, StoreBackendPostgres, StoreBackendMemory)
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if storeBackend == StoreBackendPostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORE_BACKEND=%s", StoreBackendPostgres)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheEnabled && cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0 when CACHE_ENABLED=true")
	}

	gatekeeperBaseURL := strings.TrimSpace(getEnv("GATEKEEPER_BASE_URL", ""))
	if gatekeeperBaseURL == "" {
		return Config{}, fmt.Errorf("GATEKEEPER_BASE_URL is required")
	}
	gatekeeperTimeout, err := time.ParseDuration(getEnv("GATEKEEPER_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_TIMEOUT: %w", err)
	}
	if gatekeeperTimeout <= 0 {
		return Config{}, fmt.Errorf("GATEKEEPER_TIMEOUT must be > 0")
	}

	statsProvider := strings.ToLower(strings.TrimSpace(getEnv("STATS_PROVIDER", StatsProviderSimulated)))
	switch statsProvider {
	case StatsProviderAPIFootball, StatsProviderSimulated:
	default:
		return Config{}, fmt.Errorf("invalid STATS_PROVIDER %q: valid values are %s, %s", statsProvider, StatsProviderAPIFootball, StatsProviderSimulated)
	}

	apiFootballToken := strings.TrimSpace(getEnv("APIFOOTBALL_TOKEN", ""))
	if statsProvider == StatsProviderAPIFootball && apiFootballToken == "" {
		return Config{}, fmt.Errorf("APIFOOTBALL_TOKEN is required when STATS_PROVIDER=%s", StatsProviderAPIFootball)
	}
	apiFootballTimeout, err := time.ParseDuration(getEnv("APIFOOTBALL_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_TIMEOUT: %w", err)
	}
	apiFootballMaxRetries, err := getEnvAsInt("APIFOOTBALL_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_MAX_RETRIES: %w", err)
	}
	if apiFootballMaxRetries < 0 {
		return Config{}, fmt.Errorf("APIFOOTBALL_MAX_RETRIES must be >= 0")
	}
	apiFootballRequestsPerMin, err := getEnvAsInt("APIFOOTBALL_REQUESTS_PER_MINUTE", 30)
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_REQUESTS_PER_MINUTE: %w", err)
	}
	if apiFootballRequestsPerMin <= 0 {
		return Config{}, fmt.Errorf("APIFOOTBALL_REQUESTS_PER_MINUTE must be > 0")
	}
	apiFootballCircuitEnabled, err := strconv.ParseBool(getEnv("APIFOOTBALL_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_ENABLED: %w", err)
	}
	apiFootballCircuitFailureCount, err := getEnvAsInt("APIFOOTBALL_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	apiFootballCircuitOpenTimeout, err := time.ParseDuration(getEnv("APIFOOTBALL_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	apiFootballCircuitHalfOpenMaxReq, err := getEnvAsInt("APIFOOTBALL_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	syncSeason, err := getEnvAsInt("SYNC_SEASON", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_SEASON: %w", err)
	}
	if syncSeason < 0 {
		return Config{}, fmt.Errorf("SYNC_SEASON must be >= 0 (0 selects the current season)")
	}

	bulkPaceInterval, err := time.ParseDuration(getEnv("BULK_PACE_INTERVAL", "1s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BULK_PACE_INTERVAL: %w", err)
	}
	if bulkPaceInterval <= 0 {
		return Config{}, fmt.Errorf("BULK_PACE_INTERVAL must be > 0")
	}
	bulkRetainedRuns, err := getEnvAsInt("BULK_RETAINED_RUNS", 20)
	if err != nil {
		return Config{}, fmt.Errorf("parse BULK_RETAINED_RUNS: %w", err)
	}
	if bulkRetainedRuns <= 0 {
		return Config{}, fmt.Errorf("BULK_RETAINED_RUNS must be > 0")
	}

	warmMaxWorkers, err := getEnvAsInt("WARM_MAX_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse WARM_MAX_WORKERS: %w", err)
	}
	if warmMaxWorkers <= 0 {
		return Config{}, fmt.Errorf("WARM_MAX_WORKERS must be > 0")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	serviceName := strings.TrimSpace(getEnv("SERVICE_NAME", "pitchlink-stats-engine"))

	return Config{
		AppEnv:         appEnv,
		ServiceName:    serviceName,
		ServiceVersion: strings.TrimSpace(getEnv("SERVICE_VERSION", "dev")),
		HTTPAddr:       strings.TrimSpace(getEnv("HTTP_ADDR", ":8080")),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),

		StoreBackend: storeBackend,
		DBURL:        dbURL,
		CacheEnabled: cacheEnabled,
		CacheTTL:     cacheTTL,

		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "")),

		GatekeeperBaseURL:        gatekeeperBaseURL,
		GatekeeperIntrospectPath: strings.TrimSpace(getEnv("GATEKEEPER_INTROSPECT_PATH", "/v1/introspect")),
		GatekeeperTimeout:        gatekeeperTimeout,

		InternalJobToken: strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),

		StatsProvider:                    statsProvider,
		APIFootballBaseURL:               strings.TrimSpace(getEnv("APIFOOTBALL_BASE_URL", "https://v3.football.api-sports.io")),
		APIFootballToken:                 apiFootballToken,
		APIFootballTimeout:               apiFootballTimeout,
		APIFootballMaxRetries:            apiFootballMaxRetries,
		APIFootballRequestsPerMin:        apiFootballRequestsPerMin,
		APIFootballCircuitEnabled:        apiFootballCircuitEnabled,
		APIFootballCircuitFailureCount:   apiFootballCircuitFailureCount,
		APIFootballCircuitOpenTimeout:    apiFootballCircuitOpenTimeout,
		APIFootballCircuitHalfOpenMaxReq: apiFootballCircuitHalfOpenMaxReq,

		SyncSeason:       syncSeason,
		BulkPaceInterval: bulkPaceInterval,
		BulkRetainedRuns: bulkRetainedRuns,
		TierBasicMetrics: splitCSV(getEnv("TIER_BASIC_ALLOWLIST", "goals,assists,minutes,appearances")),
		WarmMaxWorkers:   warmMaxWorkers,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAppName:       strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", serviceName)),
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:    pyroscopeUploadRate,

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,
	}, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
