package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Name        string
	Version     string
	HTTP        HTTPConfig
	Postgres    PostgresConfig
	JWT         JWTConfig
	Redis       RedisConfig
	SMTP        SMTPConfig
	S3          S3Config
	Scheduling  SchedulingConfig
	Log         LogConfig
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
	MigrationsDir      string
}

type JWTConfig struct {
	SigningKey     string
	AccessTokenTTL time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	UseTLS   bool
}

type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	PresignTTL      time.Duration
}

// SchedulingConfig holds booking policy knobs.
type SchedulingConfig struct {
	Timezone                  string
	Location                  *time.Location
	AllowPastBookingForStaff  bool
	RequireWithinAvailability bool
	MaxAvailabilityDays       int
	AvailabilityCacheTTL      time.Duration
	NotificationTimeout       time.Duration
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func NewConfig() (*Config, error) {
	// .env is optional; real deployments pass the environment directly.
	_ = godotenv.Load()

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

	jwtAccessTokenTTL, err := time.ParseDuration(getEnv("JWT_ACCESS_TOKEN_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("JWT_ACCESS_TOKEN_TTL: %w", err)
	}

	presignTTL, err := time.ParseDuration(getEnv("S3_PRESIGN_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("S3_PRESIGN_TTL: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("AVAILABILITY_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("AVAILABILITY_CACHE_TTL: %w", err)
	}

	notificationTimeout, err := time.ParseDuration(getEnv("NOTIFICATION_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("NOTIFICATION_TIMEOUT: %w", err)
	}

	timezone := getEnv("SALON_TIMEZONE", "Europe/Warsaw")
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("SALON_TIMEZONE: %w", err)
	}

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Name:        getEnv("APP_NAME", "salon"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
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
			DBName:             getEnv("POSTGRES_DB", "salon"),
			SSLMode:            getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConnections:     getEnvAsInt("POSTGRES_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("POSTGRES_MAX_IDLE_CONNECTIONS", 5),
			MaxLifetime:        postgresMaxLifetime,
			MigrationsDir:      getEnv("MIGRATIONS_DIR", "./migrations"),
		},
		JWT: JWTConfig{
			SigningKey:     getEnv("JWT_SIGNING_KEY", "your_secret_key"),
			AccessTokenTTL: jwtAccessTokenTTL,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			PoolSize: getEnvAsInt("REDIS_POOL_SIZE", 10),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@salon.local"),
			UseTLS:   getEnvAsBool("SMTP_USE_TLS", false),
		},
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Bucket:          getEnv("S3_BUCKET", "salon-reports"),
			UseSSL:          getEnvAsBool("S3_USE_SSL", true),
			PresignTTL:      presignTTL,
		},
		Scheduling: SchedulingConfig{
			Timezone:                  timezone,
			Location:                  location,
			AllowPastBookingForStaff:  getEnvAsBool("ALLOW_PAST_BOOKING_FOR_STAFF", true),
			RequireWithinAvailability: getEnvAsBool("REQUIRE_WITHIN_AVAILABILITY", false),
			MaxAvailabilityDays:       getEnvAsInt("MAX_AVAILABILITY_DAYS", 62),
			AvailabilityCacheTTL:      cacheTTL,
			NotificationTimeout:       notificationTimeout,
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 30),
		},
	}, nil
}

// DSN returns a postgres:// connection string understood by both pgx and golang-migrate.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode,
	)
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

	value, err := strconv.Atoi(valueStr)
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

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
