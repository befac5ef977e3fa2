package config

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/mesto/internal/flagx"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// EnvConfig is a DTO decoded from MESTO_* environment variables.
type EnvConfig struct {
	APIBaseURL     string        `env:"MESTO_API_BASE_URL"`
	AuthBaseURL    string        `env:"MESTO_AUTH_BASE_URL"`
	AuthTransport  string        `env:"MESTO_AUTH_TRANSPORT"`
	AuthGRPCAddr   string        `env:"MESTO_AUTH_GRPC_ADDR"`
	DatabasePath   string        `env:"MESTO_DATABASE_PATH"`
	RequestTimeout time.Duration `env:"MESTO_REQUEST_TIMEOUT"`
	RateLimit      float64       `env:"MESTO_RATE_LIMIT"`
	LogLevel       string        `env:"MESTO_LOG_LEVEL"`

	S3Bucket        string `env:"MESTO_S3_BUCKET"`
	S3Region        string `env:"MESTO_S3_REGION"`
	S3BaseEndpoint  string `env:"MESTO_S3_ENDPOINT"`
	S3AccessKey     string `env:"MESTO_S3_ACCESS_KEY"`
	S3SecretKey     string `env:"MESTO_S3_SECRET_KEY"`
	S3PublicBaseURL string `env:"MESTO_S3_PUBLIC_BASE_URL"`
}

// parseEnv loads the dotenv file named by -e or -env (if any) into the
// process environment and overlays Config with every MESTO_* variable that
// is set. Already exported variables win over the dotenv file.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlag(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	}

	var ec EnvConfig
	if err := envdecode.Decode(&ec); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return
		}
		panic(err)
	}

	ec.apply(cfg)
}

func (ec *EnvConfig) apply(cfg *Config) {
	for dst, v := range map[*string]string{
		&cfg.APIBaseURL:      ec.APIBaseURL,
		&cfg.AuthBaseURL:     ec.AuthBaseURL,
		&cfg.AuthTransport:   ec.AuthTransport,
		&cfg.AuthGRPCAddr:    ec.AuthGRPCAddr,
		&cfg.DatabasePath:    ec.DatabasePath,
		&cfg.LogLevel:        ec.LogLevel,
		&cfg.S3Bucket:        ec.S3Bucket,
		&cfg.S3Region:        ec.S3Region,
		&cfg.S3BaseEndpoint:  ec.S3BaseEndpoint,
		&cfg.S3AccessKey:     ec.S3AccessKey,
		&cfg.S3SecretKey:     ec.S3SecretKey,
		&cfg.S3PublicBaseURL: ec.S3PublicBaseURL,
	} {
		if v != "" {
			*dst = v
		}
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.RateLimit != 0 {
		cfg.RateLimit = ec.RateLimit
	}
}
