package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_OverridesConfig(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd", "-a", ":6060", "-s", "flag-secret", "-t", "120", "-g", "HS384"}

	c := &Config{}
	c.LoadDefaults()
	parseFlags(c)

	assert.Equal(t, ":6060", c.EndpointAddr)
	assert.Equal(t, "flag-secret", c.SecretKey)
	assert.Equal(t, 120*time.Second, c.TokenLifetime)
	assert.Equal(t, "HS384", c.TokenAlgorithm)
}

func TestParseFlags_KeepsDefaultsWithoutFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd"}

	c := &Config{}
	c.LoadDefaults()
	parseFlags(c)

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, 30*time.Second, c.TokenLifetime)
}
