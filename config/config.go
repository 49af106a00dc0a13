package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"agenda/internal/scheduling"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Environment   string
	Name          string
	Version       string
	LogLevel      string
	StorageDriver string
	HTTP          HTTPConfig
	Postgres      PostgresConfig
	Redis         RedisConfig
	S3            S3Config
	Tracing       TracingConfig
	Schedule      scheduling.PolicyConfig
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxHeaderMB  int
}

type PostgresConfig struct {
	Host               string
	Port               string
	Username           string
	Password           string
	DBName             string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	MaxLifetime        time.Duration
}

type RedisConfig struct {
	URL             string
	BookingLimit    int
	BookingWindow   time.Duration
	FailOpen        bool
	RateLimitPrefix string
}

type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
}

type TracingConfig struct {
	Enabled      bool
	OTLPEndpoint string
	SampleRatio  float64
}

// NewConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// win over it.
func NewConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	httpReadTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("HTTP_READ_TIMEOUT: %w", err)
	}

	httpWriteTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("HTTP_WRITE_TIMEOUT: %w", err)
	}

	postgresMaxLifetime, err := time.ParseDuration(getEnv("POSTGRES_MAX_LIFETIME", "5m"))
	if err != nil {
		return nil, fmt.Errorf("POSTGRES_MAX_LIFETIME: %w", err)
	}

	bookingWindow, err := time.ParseDuration(getEnv("RATE_LIMIT_BOOKING_WINDOW", "1m"))
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_BOOKING_WINDOW: %w", err)
	}

	slotStep, err := time.ParseDuration(getEnv("SCHEDULE_SLOT_STEP", "15m"))
	if err != nil {
		return nil, fmt.Errorf("SCHEDULE_SLOT_STEP: %w", err)
	}

	driver := strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres))
	if driver != StorageDriverPostgres && driver != StorageDriverMemory {
		return nil, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageDriverPostgres, StorageDriverMemory, driver)
	}

	defaults := scheduling.DefaultPolicyConfig()

	return &Config{
		Environment:   getEnv("APP_ENV", "development"),
		Name:          getEnv("APP_NAME", "agenda"),
		Version:       getEnv("APP_VERSION", "1.0.0"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		StorageDriver: driver,
		HTTP: HTTPConfig{
			Port:         getEnv("HTTP_PORT", "8080"),
			ReadTimeout:  httpReadTimeout,
			WriteTimeout: httpWriteTimeout,
			MaxHeaderMB:  getEnvAsInt("HTTP_MAX_HEADER_MB", 1),
		},
		Postgres: PostgresConfig{
			Host:               getEnv("POSTGRES_HOST", "localhost"),
			Port:               getEnv("POSTGRES_PORT", "5432"),
			Username:           getEnv("POSTGRES_USER", "postgres"),
			Password:           getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:             getEnv("POSTGRES_DB", "agenda"),
			SSLMode:            getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConnections:     getEnvAsInt("POSTGRES_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("POSTGRES_MAX_IDLE_CONNECTIONS", 5),
			MaxLifetime:        postgresMaxLifetime,
		},
		Redis: RedisConfig{
			URL:             getEnv("REDIS_URL", ""),
			BookingLimit:    getEnvAsInt("RATE_LIMIT_BOOKING", 10),
			BookingWindow:   bookingWindow,
			FailOpen:        getEnvAsBool("RATE_LIMIT_FAIL_OPEN", true),
			RateLimitPrefix: getEnv("RATE_LIMIT_PREFIX", "agenda:rl:booking"),
		},
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Bucket:          getEnv("S3_BUCKET", "agenda"),
			UseSSL:          getEnvAsBool("S3_USE_SSL", true),
		},
		Tracing: TracingConfig{
			Enabled:      getEnvAsBool("OTEL_ENABLED", false),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			SampleRatio:  getEnvAsFloat("OTEL_SAMPLING_RATIO", 1),
		},
		Schedule: scheduling.PolicyConfig{
			Timezone:    getEnv("SCHEDULE_TIMEZONE", defaults.Timezone),
			WorkStart:   getEnv("SCHEDULE_WORK_START", defaults.WorkStart),
			WorkEnd:     getEnv("SCHEDULE_WORK_END", defaults.WorkEnd),
			LunchStart:  getEnv("SCHEDULE_LUNCH_START", defaults.LunchStart),
			LunchEnd:    getEnv("SCHEDULE_LUNCH_END", defaults.LunchEnd),
			WorkingDays: getEnvAsList("SCHEDULE_WORKING_DAYS", defaults.WorkingDays),
			SlotStep:    slotStep,
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(strings.TrimSpace(valueStr))
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
	if err != nil || value < 0 || value > 1 {
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
