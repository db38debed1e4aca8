package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	AppPort   string `yaml:"APP_PORT"`
	SecretKey string `yaml:"SECRET_KEY"`
	DBFile    string `yaml:"DB_FILE"`
	StaticDir string `yaml:"STATIC_DIR"`
	UploadDir string `yaml:"UPLOAD_DIR"`

	// Gemini API configuration
	GeminiAPIKey string `yaml:"GEMINI_API_KEY"`
	GeminiModel  string `yaml:"GEMINI_MODEL"`

	// Upload storage backend: "local" or "s3"
	StorageBackend string `yaml:"STORAGE_BACKEND"`

	// AWS S3 configuration (only used when STORAGE_BACKEND is "s3")
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Logging
	LogLevel  string `yaml:"LOG_LEVEL"`
	LogOutput string `yaml:"LOG_OUTPUT"`
	LogFormat string `yaml:"LOG_FORMAT"`
}

// LoadConfig reads the YAML config file when present and fills the gaps
// from environment variables, then from defaults. A missing file is not
// an error so the app can run from the environment alone.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	if raw, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	applyEnv(&cfg.AppPort, "APP_PORT")
	applyEnv(&cfg.SecretKey, "SECRET_KEY")
	applyEnv(&cfg.DBFile, "DB_FILE")
	applyEnv(&cfg.StaticDir, "STATIC_DIR")
	applyEnv(&cfg.UploadDir, "UPLOAD_DIR")
	applyEnv(&cfg.GeminiAPIKey, "GEMINI_API_KEY")
	applyEnv(&cfg.GeminiModel, "GEMINI_MODEL")
	applyEnv(&cfg.StorageBackend, "STORAGE_BACKEND")
	applyEnv(&cfg.AWSS3Bucket, "AWS_S3_BUCKET")
	applyEnv(&cfg.AWSS3Region, "AWS_S3_REGION")
	applyEnv(&cfg.AWSAccessKey, "AWS_ACCESS_KEY")
	applyEnv(&cfg.AWSSecretKey, "AWS_SECRET_KEY")
	applyEnv(&cfg.LogLevel, "LOG_LEVEL")
	applyEnv(&cfg.LogOutput, "LOG_OUTPUT")
	applyEnv(&cfg.LogFormat, "LOG_FORMAT")

	applyDefault(&cfg.AppPort, "5000")
	applyDefault(&cfg.SecretKey, "dev_key_very_secret_123")
	applyDefault(&cfg.DBFile, "nutrify.db")
	applyDefault(&cfg.StaticDir, "static")
	applyDefault(&cfg.UploadDir, "static/uploads")
	applyDefault(&cfg.GeminiModel, "gemini-2.5-flash")
	applyDefault(&cfg.StorageBackend, "local")
	applyDefault(&cfg.LogLevel, "info")
	applyDefault(&cfg.LogOutput, "logs/app.log")
	applyDefault(&cfg.LogFormat, "json")

	return cfg, nil
}

func applyEnv(field *string, key string) {
	if *field == "" {
		*field = os.Getenv(key)
	}
}

func applyDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
