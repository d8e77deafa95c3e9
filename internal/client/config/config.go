// Package config handles configuration for the authctl command.
package config

import (
	"time"

	"github.com/dmitrijs2005/gophauth/internal/configx"
)

// EnvPrefix selects the environment variables read by LoadConfig.
const EnvPrefix = "AUTHCTL_"

// Config holds runtime settings for authctl.
//
// Fields:
//   - AuthServiceAddr: host:port of the identity authority.
//   - ProfileServiceAddr: host:port of the profile service.
//   - Timeout: bound on each RPC.
//   - Token: session token used by "profile" when -token is not given.
type Config struct {
	AuthServiceAddr    string        `koanf:"auth_service_addr" validate:"required"`
	ProfileServiceAddr string        `koanf:"profile_service_addr" validate:"required"`
	Timeout            time.Duration `koanf:"timeout" validate:"gt=0s"`
	Token              string        `koanf:"token"`
}

// LoadDefaults populates c with defaults matching the servers' defaults.
func (c *Config) LoadDefaults() {
	c.AuthServiceAddr = "localhost:50051"
	c.ProfileServiceAddr = "localhost:50052"
	c.Timeout = 10 * time.Second
}

// LoadConfig builds a Config from defaults, the optional config file,
// AUTHCTL_* environment variables and the global flags in args. Later
// sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := configx.Load(cfg, configx.Sources{Args: args, EnvPrefix: EnvPrefix}); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := configx.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
