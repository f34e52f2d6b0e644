package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session persistence backends.
const (
	SessionBackendFile   = "file"
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

type Config struct {
	APIBase        string
	RequestTimeout time.Duration
	JWTSecret      string
	Session        SessionConfig
	DevServer      DevServerConfig
}

type SessionConfig struct {
	Backend string
	File    string
	Redis   RedisConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

type DevServerConfig struct {
	Port     int
	LoginRPM int
	Secret   string
}

func LoadConfig() Config {
	_ = godotenv.Load()

	jwtSecret := strings.TrimSpace(os.Getenv("EXAM_JWT_SECRET"))

	return Config{
		APIBase:        strings.TrimRight(getEnv("EXAM_API_BASE", "http://localhost:8000"), "/"),
		RequestTimeout: getEnvDuration("EXAM_REQUEST_TIMEOUT", 0),
		JWTSecret:      jwtSecret,
		Session: SessionConfig{
			Backend: strings.ToLower(getEnv("EXAM_SESSION_BACKEND", SessionBackendFile)),
			File:    getEnv("EXAM_SESSION_FILE", defaultSessionFile()),
			Redis: RedisConfig{
				Addr:     getEnv("EXAM_REDIS_ADDR", "localhost:6379"),
				Password: os.Getenv("EXAM_REDIS_PASSWORD"),
				DB:       getEnvInt("EXAM_REDIS_DB", 0),
				Key:      getEnv("EXAM_REDIS_KEY", "examctl:session"),
			},
		},
		DevServer: DevServerConfig{
			Port:     getEnvInt("EXAM_DEV_PORT", 8000),
			LoginRPM: getEnvInt("EXAM_DEV_LOGIN_RPM", 30),
			Secret:   getEnv("EXAM_DEV_SECRET", orDefault(jwtSecret, "dev-secret")),
		},
	}
}

// Validate reports the first malformed setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIBase)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("EXAM_API_BASE must be an absolute http(s) URL, got %q", c.APIBase)
	}

	if c.RequestTimeout < 0 {
		return fmt.Errorf("EXAM_REQUEST_TIMEOUT cannot be negative")
	}

	switch c.Session.Backend {
	case SessionBackendFile:
		if strings.TrimSpace(c.Session.File) == "" {
			return fmt.Errorf("EXAM_SESSION_FILE cannot be empty")
		}
	case SessionBackendRedis:
		if strings.TrimSpace(c.Session.Redis.Addr) == "" {
			return fmt.Errorf("EXAM_REDIS_ADDR cannot be empty")
		}
	case SessionBackendMemory:
	default:
		return fmt.Errorf("unknown EXAM_SESSION_BACKEND %q", c.Session.Backend)
	}

	if c.DevServer.Port <= 0 {
		return fmt.Errorf("EXAM_DEV_PORT must be positive")
	}

	return nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".examctl-session"
	}
	return filepath.Join(home, ".examctl", "session")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		value, err := strconv.Atoi(strings.TrimSpace(valueStr))
		if err != nil {
			return defaultValue
		}
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
