package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/mesto/internal/flagx"
	"github.com/dmitrijs2005/mesto/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used for config file unmarshalling, JSON or YAML.
// Durations use timex.Duration so a file can say "10s" or integer
// nanoseconds. Pointer fields distinguish "absent" from a zero value.
type FileConfig struct {
	APIBaseURL     *string         `json:"api_base_url" yaml:"api_base_url"`
	AuthBaseURL    *string         `json:"auth_base_url" yaml:"auth_base_url"`
	AuthTransport  *string         `json:"auth_transport" yaml:"auth_transport"`
	AuthGRPCAddr   *string         `json:"auth_grpc_addr" yaml:"auth_grpc_addr"`
	DatabasePath   *string         `json:"database_path" yaml:"database_path"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	RateLimit      *float64        `json:"rate_limit" yaml:"rate_limit"`
	LogLevel       *string         `json:"log_level" yaml:"log_level"`

	S3 struct {
		Bucket        *string `json:"bucket" yaml:"bucket"`
		Region        *string `json:"region" yaml:"region"`
		BaseEndpoint  *string `json:"base_endpoint" yaml:"base_endpoint"`
		AccessKey     *string `json:"access_key" yaml:"access_key"`
		SecretKey     *string `json:"secret_key" yaml:"secret_key"`
		PublicBaseURL *string `json:"public_base_url" yaml:"public_base_url"`
	} `json:"s3" yaml:"s3"`
}

// parseFile overlays Config with values loaded from the file named by -c or
// -config. Files ending in .yaml or .yml are decoded as YAML, anything else
// as JSON. Panics on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, fc.APIBaseURL)
	setString(&cfg.AuthBaseURL, fc.AuthBaseURL)
	setString(&cfg.AuthTransport, fc.AuthTransport)
	setString(&cfg.AuthGRPCAddr, fc.AuthGRPCAddr)
	setString(&cfg.DatabasePath, fc.DatabasePath)
	setString(&cfg.LogLevel, fc.LogLevel)
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.RateLimit != nil {
		cfg.RateLimit = *fc.RateLimit
	}

	setString(&cfg.S3Bucket, fc.S3.Bucket)
	setString(&cfg.S3Region, fc.S3.Region)
	setString(&cfg.S3BaseEndpoint, fc.S3.BaseEndpoint)
	setString(&cfg.S3AccessKey, fc.S3.AccessKey)
	setString(&cfg.S3SecretKey, fc.S3.SecretKey)
	setString(&cfg.S3PublicBaseURL, fc.S3.PublicBaseURL)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
