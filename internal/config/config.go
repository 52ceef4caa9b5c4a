package config

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPPort        = "8080"
	defaultTemporalAddress = "localhost:7233"
	defaultTemporalNS      = "default"
	defaultTaskQueue       = "service-request-task-queue"
	defaultMinioBucket     = "request-documents"
	defaultUploadDelay     = time.Second
	defaultAuthDelay       = 1500 * time.Millisecond
	defaultContactDelay    = time.Second
	defaultSubmitDelay     = time.Second
	defaultWizardIdleTTL   = 30 * time.Minute
	defaultMaxUploadBytes  = 5 * 1024 * 1024
)

type Config struct {
	HTTPPort string
	LogLevel slog.Level

	PostgresDSN string
	RedisURL    string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	TemporalAddress   string
	TemporalNamespace string
	TemporalTaskQueue string
	TemporalSubmit    bool
	WorkflowIDPrefix  string

	UploadDelay   time.Duration
	AuthDelay     time.Duration
	ContactDelay  time.Duration
	SubmitDelay   time.Duration
	WizardIdleTTL time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	// SessionSecret signs login cookies. When unset a random key is used and
	// sessions do not survive a restart.
	SessionSecret []byte

	// MaxUploadBytes caps the multipart body. Files over 5 MiB still reach the
	// wizard so it can reject them with its own message.
	MaxUploadBytes int64
}

// MinioEnabled reports whether uploads should be stored in MinIO instead of
// the simulated uploader.
func (c Config) MinioEnabled() bool {
	return c.MinioEndpoint != "" && c.MinioAccessKey != "" && c.MinioSecretKey != ""
}

func Load() (Config, error) {
	cfg := Config{
		HTTPPort:          getenv("HTTP_PORT", defaultHTTPPort),
		LogLevel:          getenvLevel("LOG_LEVEL", slog.LevelInfo),
		PostgresDSN:       os.Getenv("POSTGRES_DSN"),
		RedisURL:          os.Getenv("REDIS_URL"),
		MinioEndpoint:     os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:    os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:    os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:       getenv("MINIO_BUCKET", defaultMinioBucket),
		MinioUseSSL:       getenvBool("MINIO_USE_SSL", false),
		TemporalAddress:   getenv("TEMPORAL_ADDRESS", defaultTemporalAddress),
		TemporalNamespace: getenv("TEMPORAL_NAMESPACE", defaultTemporalNS),
		TemporalTaskQueue: getenv("TEMPORAL_TASK_QUEUE", defaultTaskQueue),
		TemporalSubmit:    getenvBool("TEMPORAL_SUBMIT", false),
		WorkflowIDPrefix:  getenv("WORKFLOW_ID_PREFIX", "service-request"),
		UploadDelay:       getenvDuration("UPLOAD_DELAY", defaultUploadDelay),
		AuthDelay:         getenvDuration("AUTH_DELAY", defaultAuthDelay),
		ContactDelay:      getenvDuration("CONTACT_DELAY", defaultContactDelay),
		SubmitDelay:       getenvDuration("SUBMIT_DELAY", defaultSubmitDelay),
		WizardIdleTTL:     getenvDuration("WIZARD_IDLE_TTL", defaultWizardIdleTTL),
		RateLimitRPS:      getenvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:    getenvInt("RATE_LIMIT_BURST", 10),
		MaxUploadBytes:    int64(getenvInt("MAX_UPLOAD_BYTES", 2*defaultMaxUploadBytes)),
	}

	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		cfg.SessionSecret = []byte(secret)
	} else {
		cfg.SessionSecret = make([]byte, 32)
		if _, err := rand.Read(cfg.SessionSecret); err != nil {
			return Config{}, fmt.Errorf("generate session secret: %w", err)
		}
	}

	if cfg.TemporalSubmit && cfg.PostgresDSN == "" {
		return Config{}, fmt.Errorf("POSTGRES_DSN is required when TEMPORAL_SUBMIT is set")
	}
	if cfg.MaxUploadBytes <= defaultMaxUploadBytes {
		return Config{}, fmt.Errorf("MAX_UPLOAD_BYTES must exceed %d", defaultMaxUploadBytes)
	}
	if cfg.WizardIdleTTL <= 0 {
		return Config{}, fmt.Errorf("WIZARD_IDLE_TTL must be positive")
	}

	return cfg, nil
}

// LoadWorker is Load plus the settings the Temporal worker cannot run without.
func LoadWorker() (Config, error) {
	cfg, err := Load()
	if err != nil {
		return Config{}, err
	}
	if cfg.PostgresDSN == "" {
		return Config{}, fmt.Errorf("POSTGRES_DSN is required")
	}
	return cfg, nil
}

func getenv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getenvLevel(key string, fallback slog.Level) slog.Level {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return fallback
	}
	return level
}
