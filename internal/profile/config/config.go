// Package config handles configuration for the profile service.
package config

import (
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/configx"
)

// EnvPrefix selects the environment variables read by LoadConfig.
const EnvPrefix = "PROFILE_"

// Config holds runtime settings for the profile service.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the ProfileService endpoint.
//   - AuthServiceAddr: address of the identity authority.
//   - VerifyTimeout: bound on each remote token verification.
//   - MaxConcurrentRequests: upper bound on in-flight RPC handlers.
type Config struct {
	EndpointAddrGRPC      string        `koanf:"endpoint_addr_grpc" validate:"required"`
	AuthServiceAddr       string        `koanf:"auth_service_addr" validate:"required"`
	VerifyTimeout         time.Duration `koanf:"verify_timeout" validate:"gt=0s"`
	MaxConcurrentRequests int           `koanf:"max_concurrent_requests" validate:"gte=1"`
	LogLevel              string        `koanf:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat             string        `koanf:"log_format" validate:"oneof=json text"`
}

func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50052"
	c.AuthServiceAddr = "localhost:50051"
	c.VerifyTimeout = common.DefaultVerifyTimeout
	c.MaxConcurrentRequests = 10
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// LoadConfig builds a Config from defaults, the optional config file
// (-c/-config), .env, PROFILE_* environment variables and command-line
// flags, in that order. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := configx.Load(cfg, configx.Sources{Args: args, EnvPrefix: EnvPrefix, DotEnvFile: ".env"}); err != nil {
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
