package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-a", "http://api:1", "-auth", "http://auth:2", "-t", "grpc",
			"-g", "auth:50051", "-d", "/tmp/m.db", "-timeout", "3s", "-rps", "2.5", "-l", "debug"},
			expected: &Config{APIBaseURL: "http://api:1", AuthBaseURL: "http://auth:2", AuthTransport: "grpc",
				AuthGRPCAddr: "auth:50051", DatabasePath: "/tmp/m.db", RequestTimeout: 3 * time.Second,
				RateLimit: 2.5, LogLevel: "debug"}},
		{name: "unrelated flags ignored", args: []string{"cmd", "-c", "cfg.json", "-e", ".env", "-d=x.db"},
			expected: &Config{DatabasePath: "x.db"}},
		{name: "bad timeout", args: []string{"cmd", "-timeout", "abc"}, expectPanic: true},
		{name: "bad rps", args: []string{"cmd", "-rps", "fast"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
