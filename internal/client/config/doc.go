// Package config loads runtime configuration for the Mesto CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected via -c or -config.
//  3. MESTO_* environment variables, optionally seeded from a dotenv file
//     selected via -e or -env.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "5s" or
// integer nanoseconds:
//
//	api_base_url: https://mesto.example/v1/cohort-42
//	auth_transport: grpc
//	auth_grpc_addr: 127.0.0.1:50051
//	request_timeout: 5s
//	s3:
//	  bucket: avatars
//	  base_endpoint: http://127.0.0.1:9000
package config
