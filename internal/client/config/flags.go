package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/pkg/errors"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string     identity authority address
//	-p string     profile service address
//	-t duration   per-call timeout
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-p", "-t"})

	fs := flag.NewFlagSet("authctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.AuthServiceAddr, "a", cfg.AuthServiceAddr, "identity authority address")
	fs.StringVar(&cfg.ProfileServiceAddr, "p", cfg.ProfileServiceAddr, "profile service address")
	fs.DurationVar(&cfg.Timeout, "t", cfg.Timeout, "per-call timeout")

	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse flags")
	}
	return nil
}
