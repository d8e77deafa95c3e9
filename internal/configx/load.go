// Package configx layers configuration sources onto a struct that already
// holds its defaults: config file, then .env, then environment variables.
// Command-line flags are applied afterwards by each component.
package configx

import (
	"os"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Sources describes where Load reads from.
type Sources struct {
	// Args are the command-line arguments without the program name. Only
	// -c / -config is consulted here.
	Args []string
	// EnvPrefix selects environment variables, e.g. "AUTH_". The prefix is
	// stripped and the rest lowercased to form the key: AUTH_SECRET_KEY
	// sets secret_key.
	EnvPrefix string
	// DotEnvFile is loaded into the process environment when it exists.
	// Variables already set are not overridden.
	DotEnvFile string
}

// Load overlays the config file, the dotenv file and the environment onto
// cfg, a pointer to a struct with koanf tags. Keys missing from every source
// keep the value already in cfg.
func Load(cfg any, src Sources) error {
	k := koanf.New(".")

	if path := flagx.ConfigFileFlag(src.Args); path != "" {
		// YAML is a superset of JSON, so one parser serves both.
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return errors.Wrapf(err, "read config file %s", path)
		}
	}

	if src.DotEnvFile != "" {
		if _, err := os.Stat(src.DotEnvFile); err == nil {
			if err := godotenv.Load(src.DotEnvFile); err != nil {
				return errors.Wrapf(err, "load %s", src.DotEnvFile)
			}
		}
	}

	if src.EnvPrefix != "" {
		prefix := src.EnvPrefix
		if err := k.Load(env.Provider(".", env.Opt{
			Prefix: prefix,
			TransformFunc: func(key, value string) (string, any) {
				return strings.ToLower(strings.TrimPrefix(key, prefix)), value
			},
		}), nil); err != nil {
			return errors.Wrap(err, "load env variables failed")
		}
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}); err != nil {
		return errors.Wrap(err, "unmarshal config failed")
	}

	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks cfg against its validate struct tags.
func Validate(cfg any) error {
	if err := validate.Struct(cfg); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}
