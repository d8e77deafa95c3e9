package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaultConfig()

	assert.Equal(t, ":50052", c.EndpointAddrGRPC)
	assert.Equal(t, "localhost:50051", c.AuthServiceAddr)
	assert.Equal(t, 10*time.Second, c.VerifyTimeout)
	assert.Equal(t, 10, c.MaxConcurrentRequests)
}

func TestLoadConfig_Layering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"auth_service_addr": "auth:50051", "verify_timeout": "3s"}`), 0o600))

	t.Setenv("PROFILE_LOG_LEVEL", "debug")
	t.Setenv("PROFILE_VERIFY_TIMEOUT", "4s")

	c, err := LoadConfig([]string{"--config", path, "-t", "2s", "-w", "3"})
	require.NoError(t, err)

	want := defaultConfig()
	want.AuthServiceAddr = "auth:50051"
	want.VerifyTimeout = 2 * time.Second
	want.MaxConcurrentRequests = 3
	want.LogLevel = "debug"

	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("verify_timeout: 3s\n"), 0o600))
	t.Setenv("PROFILE_VERIFY_TIMEOUT", "4s")

	c, err := LoadConfig([]string{"-c", path})
	require.NoError(t, err)
	assert.Equal(t, 4*time.Second, c.VerifyTimeout)
}

func TestLoadConfig_ZeroTimeoutRejected(t *testing.T) {
	_, err := LoadConfig([]string{"-t", "0s"})
	require.Error(t, err)
}

func TestLoadConfig_EmptyAuthAddrRejected(t *testing.T) {
	t.Setenv("PROFILE_AUTH_SERVICE_ADDR", "")
	_, err := LoadConfig(nil)
	require.Error(t, err)
}

func TestParseFlags_Bad(t *testing.T) {
	require.Error(t, parseFlags(defaultConfig(), []string{"-t", "soon"}))
}
