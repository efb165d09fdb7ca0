// Package config provides environment-based configuration loading and the
// narrow per-concern interfaces modules depend on.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetEnv() string
	GetHTTPAddr() string
	GetCORSOrigins() []string
	GetCORSAllowAll() bool
}

// VapiConfig provides settings for the Vapi calling API client and the
// call payload (model, voice, transcriber, webhook target).
type VapiConfig interface {
	GetVapiAPIKey() string
	GetVapiBaseURL() string
	GetWebhookURL() string
	GetModelProvider() string
	GetModelName() string
	GetTranscriberProvider() string
	GetTranscriberModel() string
	GetVoiceProvider() string
	GetVoiceID() string
	GetEndCallMessage() string
	GetMaxCallDuration() time.Duration
}

// VerificationConfig provides scheduling knobs for the verification core.
type VerificationConfig interface {
	GetMaxConcurrentCalls() int
	GetCallTimeout() time.Duration
	GetStatusOverrides() map[string]string
}

// SchedulerConfig provides settings for the asynq-backed job cleanup.
type SchedulerConfig interface {
	GetRedisURL() string
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetJobRetention() time.Duration
}

// ExportConfig provides settings for the result export sink.
type ExportConfig interface {
	GetExportDir() string
}

// MinIOConfig provides settings for optional object storage of result files.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOResultsBucket() string
	IsMinIOEnabled() bool
}

// Config is the concrete configuration loaded from the environment.
type Config struct {
	Env      string
	HTTPAddr string

	CORSOrigins  []string
	CORSAllowAll bool

	VapiAPIKey          string
	VapiBaseURL         string
	WebhookURL          string
	ModelProvider       string
	ModelName           string
	TranscriberProvider string
	TranscriberModel    string
	VoiceProvider       string
	VoiceID             string
	EndCallMessage      string
	MaxCallDuration     time.Duration

	MaxConcurrentCalls int
	StatusOverrides    map[string]string

	RedisURL         string
	AsynqQueue       string
	AsynqConcurrency int
	JobRetention     time.Duration

	ExportDir string

	MinIOEndpoint      string
	MinIOAccessKey     string
	MinIOSecretKey     string
	MinIOUseSSL        bool
	MinIOResultsBucket string
}

// Load reads configuration from the environment, applying defaults and
// validating required settings.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		CORSOrigins:  corsOrigins,
		CORSAllowAll: corsAllowAll,

		VapiAPIKey:          getEnv("VAPI_API_KEY", ""),
		VapiBaseURL:         getEnv("VAPI_BASE_URL", "https://api.vapi.ai"),
		WebhookURL:          getEnv("WEBHOOK_URL", ""),
		ModelProvider:       getEnv("MODEL_PROVIDER", "openai"),
		ModelName:           getEnv("MODEL_NAME", "gpt-4o-mini"),
		TranscriberProvider: getEnv("TRANSCRIBER_PROVIDER", "deepgram"),
		TranscriberModel:    getEnv("TRANSCRIBER_MODEL", "nova-2"),
		VoiceProvider:       getEnv("VOICE_PROVIDER", "deepgram"),
		VoiceID:             getEnv("VOICE_ID", "asteria"),
		EndCallMessage:      getEnv("END_CALL_MESSAGE", "The reason I'm"),
		MaxCallDuration:     mustDuration(getEnv("MAX_CALL_DURATION", "30s")),

		MaxConcurrentCalls: mustInt(getEnv("MAX_CONCURRENT_CALLS", "10")),
		StatusOverrides:    parsePairs(getEnv("CALL_STATUS_OVERRIDES", "")),

		RedisURL:         getEnv("REDIS_URL", ""),
		AsynqQueue:       getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency: mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		JobRetention:     mustDuration(getEnv("JOB_RETENTION", "24h")),

		ExportDir: getEnv("EXPORT_DIR", "exports"),

		MinIOEndpoint:      getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:     getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:        strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOResultsBucket: getEnv("MINIO_RESULTS_BUCKET", "verification-results"),
	}

	if cfg.VapiAPIKey == "" {
		return nil, fmt.Errorf("VAPI_API_KEY is required")
	}
	if cfg.WebhookURL == "" {
		return nil, fmt.Errorf("WEBHOOK_URL is required")
	}
	if cfg.MaxCallDuration <= 0 {
		return nil, fmt.Errorf("MAX_CALL_DURATION must be a positive duration")
	}
	if cfg.IsMinIOEnabled() && (cfg.MinIOAccessKey == "" || cfg.MinIOSecretKey == "") {
		return nil, fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when MINIO_ENDPOINT is set")
	}

	return cfg, nil
}

func (c *Config) GetEnv() string           { return c.Env }
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }

func (c *Config) GetVapiAPIKey() string             { return c.VapiAPIKey }
func (c *Config) GetVapiBaseURL() string            { return c.VapiBaseURL }
func (c *Config) GetWebhookURL() string             { return c.WebhookURL }
func (c *Config) GetModelProvider() string          { return c.ModelProvider }
func (c *Config) GetModelName() string              { return c.ModelName }
func (c *Config) GetTranscriberProvider() string    { return c.TranscriberProvider }
func (c *Config) GetTranscriberModel() string       { return c.TranscriberModel }
func (c *Config) GetVoiceProvider() string          { return c.VoiceProvider }
func (c *Config) GetVoiceID() string                { return c.VoiceID }
func (c *Config) GetEndCallMessage() string         { return c.EndCallMessage }
func (c *Config) GetMaxCallDuration() time.Duration { return c.MaxCallDuration }

func (c *Config) GetMaxConcurrentCalls() int { return c.MaxConcurrentCalls }

// GetCallTimeout derives the webhook-silence deadline from the configured
// maximum call duration: two full ringing attempts plus a one minute buffer.
func (c *Config) GetCallTimeout() time.Duration {
	return 2*c.MaxCallDuration + time.Minute
}

func (c *Config) GetStatusOverrides() map[string]string { return c.StatusOverrides }

func (c *Config) GetRedisURL() string            { return c.RedisURL }
func (c *Config) GetAsynqQueueName() string      { return c.AsynqQueue }
func (c *Config) GetAsynqConcurrency() int       { return c.AsynqConcurrency }
func (c *Config) GetJobRetention() time.Duration { return c.JobRetention }

func (c *Config) GetExportDir() string { return c.ExportDir }

func (c *Config) GetMinIOEndpoint() string      { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string     { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string     { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool          { return c.MinIOUseSSL }
func (c *Config) GetMinIOResultsBucket() string { return c.MinIOResultsBucket }
func (c *Config) IsMinIOEnabled() bool          { return c.MinIOEndpoint != "" }

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

// parsePairs parses "key=value,key=value" into a map, used for the
// end-reason status overrides.
func parsePairs(value string) map[string]string {
	pairs := make(map[string]string)
	for _, part := range splitCSV(value) {
		key, val, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		if key != "" && val != "" {
			pairs[key] = val
		}
	}
	return pairs
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
