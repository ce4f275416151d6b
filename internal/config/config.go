package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm" validate:"required"`
	Interview InterviewConfig `mapstructure:"interview" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// AllowedOrigins is the CORS allow list for the browser client.
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"required,min=1,dive,required"`
	// RateLimitPerMinute caps API requests per client IP.
	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute" validate:"required,gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
	// ClockSkewSeconds is the leeway applied to token time claims.
	ClockSkewSeconds int `mapstructure:"clock_skew_seconds" validate:"gte=0,lte=600"`
}

// ClockSkew returns the token leeway as a duration.
func (c AuthConfig) ClockSkew() time.Duration {
	return time.Duration(c.ClockSkewSeconds) * time.Second
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey    string  `mapstructure:"gemini_api_key" validate:"required"`
	ModelName       string  `mapstructure:"model_name" validate:"required"`
	Temperature     float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	TopP            float32 `mapstructure:"top_p" validate:"gt=0,lte=1"`
	TopK            float32 `mapstructure:"top_k" validate:"gte=1"`
	MaxOutputTokens int32   `mapstructure:"max_output_tokens" validate:"gt=0"`
	// MinRequestIntervalMS is the minimum spacing between model requests.
	MinRequestIntervalMS  int `mapstructure:"min_request_interval_ms" validate:"gte=0"`
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"gte=0"`
	// BaseURL overrides the Gemini endpoint, mostly for tests.
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

// MinRequestInterval returns MinRequestIntervalMS as a duration.
func (c LLMConfig) MinRequestInterval() time.Duration {
	return time.Duration(c.MinRequestIntervalMS) * time.Millisecond
}

// RequestTimeout returns RequestTimeoutSeconds as a duration.
func (c LLMConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// InterviewConfig tunes question generation.
type InterviewConfig struct {
	QuestionCount    int `mapstructure:"question_count" validate:"gte=1,lte=20"`
	SalvageThreshold int `mapstructure:"salvage_threshold" validate:"gte=1"`
	// ThrottleRetries is how many times a locally throttled request is retried.
	ThrottleRetries int `mapstructure:"throttle_retries" validate:"gte=0,lte=10"`
}
