package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/pkg/errors"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string     gRPC bind address (e.g., ":50052")
//	-u string     identity authority address
//	-t duration   verify timeout (e.g., "10s")
//	-w int        max concurrent requests
//	-l string     log level
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-u", "-t", "-w", "-l"})

	fs := flag.NewFlagSet("profileserver", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.AuthServiceAddr, "u", config.AuthServiceAddr, "identity authority address")
	fs.DurationVar(&config.VerifyTimeout, "t", config.VerifyTimeout, "token verification timeout")
	fs.IntVar(&config.MaxConcurrentRequests, "w", config.MaxConcurrentRequests, "max concurrent requests")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse flags")
	}
	return nil
}
