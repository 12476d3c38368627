package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestParseJson_OverlaysValues(t *testing.T) {
	path := writeConfigFile(t, `{
		"endpoint_addr": ":9191",
		"database_dsn": "postgres://test",
		"secret_key": "json-secret",
		"token_algorithm": "HS512",
		"token_lifetime": "2m",
		"scrypt_n": 32768,
		"scrypt_salt_len": 24
	}`)

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd", "-c", path}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, ":9191", c.EndpointAddr)
	assert.Equal(t, "postgres://test", c.DatabaseDSN)
	assert.Equal(t, "json-secret", c.SecretKey)
	assert.Equal(t, "HS512", c.TokenAlgorithm)
	assert.Equal(t, 2*time.Minute, c.TokenLifetime)
	assert.Equal(t, 32768, c.Scrypt.N)
	assert.Equal(t, 24, c.Scrypt.SaltLen)
	// untouched fields keep their defaults
	assert.Equal(t, 8, c.Scrypt.R)
	assert.Equal(t, 128, c.Scrypt.KeyLen)
}

func TestParseJson_NoFlagNoop(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd"}

	c := &Config{}
	c.LoadDefaults()
	before := *c
	parseJson(c)

	assert.Equal(t, before, *c)
}

func TestParseJson_BadFilePanics(t *testing.T) {
	path := writeConfigFile(t, `{not json`)

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd", "-config", path}

	c := &Config{}
	c.LoadDefaults()
	assert.Panics(t, func() { parseJson(c) })
}
