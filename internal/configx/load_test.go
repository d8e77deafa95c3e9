package configx

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Addr    string        `koanf:"addr" validate:"required"`
	Secret  string        `koanf:"secret_key"`
	TTL     time.Duration `koanf:"ttl" validate:"gte=0s"`
	Workers int           `koanf:"workers" validate:"gte=1"`
}

func defaults() *sample {
	return &sample{Addr: ":1", Secret: "dev", TTL: time.Minute, Workers: 2}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_NoSourcesKeepsDefaults(t *testing.T) {
	cfg := defaults()
	require.NoError(t, Load(cfg, Sources{EnvPrefix: "CFGXTEST0_"}))
	assert.Equal(t, defaults(), cfg)
}

func TestLoad_YAMLFile(t *testing.T) {
	p := writeFile(t, "c.yaml", "addr: \":9000\"\nttl: 45s\n")

	cfg := defaults()
	require.NoError(t, Load(cfg, Sources{Args: []string{"-c", p}}))

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 45*time.Second, cfg.TTL)
	assert.Equal(t, "dev", cfg.Secret, "absent keys keep defaults")
}

func TestLoad_JSONFile(t *testing.T) {
	p := writeFile(t, "c.json", `{"addr": ":7000", "workers": 5}`)

	cfg := defaults()
	require.NoError(t, Load(cfg, Sources{Args: []string{"-config=" + p}}))

	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, 5, cfg.Workers)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	p := writeFile(t, "c.yaml", "addr: \":9000\"\nworkers: 3\n")
	t.Setenv("CFGXTEST1_ADDR", ":8000")
	t.Setenv("CFGXTEST1_SECRET_KEY", "from-env")
	t.Setenv("CFGXTEST1_TTL", "2h")

	cfg := defaults()
	require.NoError(t, Load(cfg, Sources{Args: []string{"-c", p}, EnvPrefix: "CFGXTEST1_"}))

	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, "from-env", cfg.Secret)
	assert.Equal(t, 2*time.Hour, cfg.TTL)
	assert.Equal(t, 3, cfg.Workers)
}

func TestLoad_DotEnvDoesNotOverrideRealEnv(t *testing.T) {
	dot := writeFile(t, ".env", "CFGXTEST2_ADDR=:6000\nCFGXTEST2_WORKERS=9\n")
	t.Setenv("CFGXTEST2_ADDR", ":5000")
	// godotenv sets variables on the process; make sure they are gone afterwards.
	t.Cleanup(func() { _ = os.Unsetenv("CFGXTEST2_WORKERS") })

	cfg := defaults()
	require.NoError(t, Load(cfg, Sources{EnvPrefix: "CFGXTEST2_", DotEnvFile: dot}))

	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, 9, cfg.Workers)
}

func TestLoad_MissingDotEnvIgnored(t *testing.T) {
	cfg := defaults()
	err := Load(cfg, Sources{DotEnvFile: filepath.Join(t.TempDir(), "nope.env")})
	require.NoError(t, err)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	cfg := defaults()
	err := Load(cfg, Sources{Args: []string{"-c", filepath.Join(t.TempDir(), "missing.yaml")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_BadValue(t *testing.T) {
	t.Setenv("CFGXTEST3_TTL", "soon")

	cfg := defaults()
	err := Load(cfg, Sources{EnvPrefix: "CFGXTEST3_"})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(defaults()))

	bad := defaults()
	bad.Addr = ""
	require.Error(t, Validate(bad))

	bad = defaults()
	bad.Workers = 0
	require.Error(t, Validate(bad))
}
