package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/mesto/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        base URL of the REST backend
//	-auth string     base URL of the HTTP auth backend
//	-t string        auth transport, http or grpc
//	-g string        host:port of the gRPC auth endpoint
//	-d string        path of the local SQLite database
//	-timeout dur     per-request timeout, e.g. 5s
//	-rps float       outgoing request rate limit, 0 disables
//	-l string        log level
//
// Only these flags are parsed (see flagx.FilterArgs), so -c and -e do not
// interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-auth", "-t", "-g", "-d", "-timeout", "-rps", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the REST backend")
	fs.StringVar(&cfg.AuthBaseURL, "auth", cfg.AuthBaseURL, "base URL of the auth backend")
	fs.StringVar(&cfg.AuthTransport, "t", cfg.AuthTransport, "auth transport (http or grpc)")
	fs.StringVar(&cfg.AuthGRPCAddr, "g", cfg.AuthGRPCAddr, "address and port of the gRPC auth endpoint")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "request timeout")
	fs.Float64Var(&cfg.RateLimit, "rps", cfg.RateLimit, "requests per second (0 = unlimited)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
