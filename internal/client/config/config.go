package config

import (
	"time"

	"github.com/dmitrijs2005/mesto/internal/client/services"
)

const (
	AuthTransportHTTP = "http"
	AuthTransportGRPC = "grpc"
)

// Config holds runtime settings for the Mesto CLI.
//
// Fields:
//   - APIBaseURL: base URL of the profile/cards REST backend.
//   - AuthBaseURL: base URL of the HTTP auth backend.
//   - AuthTransport: "http" or "grpc".
//   - AuthGRPCAddr: host:port of the gRPC auth endpoint (AuthTransport "grpc").
//   - DatabasePath: local SQLite file holding the persisted token.
//   - RequestTimeout: per-request HTTP timeout.
//   - RateLimit: outgoing requests per second, 0 disables limiting.
//   - LogLevel: debug, info, warn or error.
//   - S3*: optional object storage used for avatar uploads.
type Config struct {
	APIBaseURL     string
	AuthBaseURL    string
	AuthTransport  string
	AuthGRPCAddr   string
	DatabasePath   string
	RequestTimeout time.Duration
	RateLimit      float64
	LogLevel       string

	S3Bucket        string
	S3Region        string
	S3BaseEndpoint  string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000"
	c.AuthBaseURL = "http://localhost:3000"
	c.AuthTransport = AuthTransportHTTP
	c.AuthGRPCAddr = "127.0.0.1:50051"
	c.DatabasePath = "mesto.db"
	c.RequestTimeout = 10 * time.Second
	c.RateLimit = 0
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// S3 returns the avatar storage settings.
func (c *Config) S3() services.S3Config {
	return services.S3Config{
		Bucket:        c.S3Bucket,
		Region:        c.S3Region,
		BaseEndpoint:  c.S3BaseEndpoint,
		AccessKey:     c.S3AccessKey,
		SecretKey:     c.S3SecretKey,
		PublicBaseURL: c.S3PublicBaseURL,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
