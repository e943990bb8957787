package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	OpenAI   OpenAIConfig
	S3       S3Config
	Textract TextractConfig
	Scan     ScanConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// OpenAIConfig holds LLM client settings.
type OpenAIConfig struct {
	APIKey       string `mapstructure:"api_key"`
	Endpoint     string `mapstructure:"endpoint"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// S3Config holds settings for the OCR staging bucket.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// TextractConfig holds OCR service settings.
type TextractConfig struct {
	Region      string `mapstructure:"region"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	// UseS3Staging routes OCR input through the staging bucket instead of
	// sending bytes inline. Required for PDFs above the inline size limit.
	UseS3Staging bool `mapstructure:"use_s3_staging"`
}

// ScanConfig holds pipeline settings.
type ScanConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from environment variables with the RSCAN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// OpenAI defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.endpoint", "")
	v.SetDefault("openai.default_model", "gpt-3.5-turbo")
	v.SetDefault("openai.timeout_secs", 120)

	// S3 defaults
	v.SetDefault("s3.region", "eu-west-1")
	v.SetDefault("s3.bucket", "receiptscan-ocr-staging")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")

	// Textract defaults
	v.SetDefault("textract.region", "eu-west-1")
	v.SetDefault("textract.timeout_secs", 60)
	v.SetDefault("textract.use_s3_staging", false)

	// Scan defaults
	v.SetDefault("scan.max_file_size_mb", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "RSCAN_SERVER_PORT",
		"server.read_timeout":     "RSCAN_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "RSCAN_SERVER_WRITE_TIMEOUT",
		"server.environment":      "RSCAN_SERVER_ENVIRONMENT",
		"openai.api_key":          "RSCAN_OPENAI_API_KEY",
		"openai.endpoint":         "RSCAN_OPENAI_ENDPOINT",
		"openai.default_model":    "RSCAN_OPENAI_DEFAULT_MODEL",
		"openai.timeout_secs":     "RSCAN_OPENAI_TIMEOUT_SECS",
		"s3.region":               "RSCAN_S3_REGION",
		"s3.bucket":               "RSCAN_S3_BUCKET",
		"s3.endpoint":             "RSCAN_S3_ENDPOINT",
		"s3.access_key":           "RSCAN_S3_ACCESS_KEY",
		"s3.secret_key":           "RSCAN_S3_SECRET_KEY",
		"textract.region":         "RSCAN_TEXTRACT_REGION",
		"textract.timeout_secs":   "RSCAN_TEXTRACT_TIMEOUT_SECS",
		"textract.use_s3_staging": "RSCAN_TEXTRACT_USE_S3_STAGING",
		"scan.max_file_size_mb":   "RSCAN_SCAN_MAX_FILE_SIZE_MB",
		"log.level":               "RSCAN_LOG_LEVEL",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
