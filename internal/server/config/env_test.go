package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv_OverlaysValues(t *testing.T) {
	t.Setenv("ADDRESS", ":7070")
	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("TOKEN_LIFETIME", "45s")
	t.Setenv("SCRYPT_P", "2")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, ":7070", c.EndpointAddr)
	assert.Equal(t, "env-secret", c.SecretKey)
	assert.Equal(t, 45*time.Second, c.TokenLifetime)
	assert.Equal(t, 2, c.Scrypt.P)
	// unset variables leave defaults alone
	assert.Equal(t, "HS256", c.TokenAlgorithm)
	assert.Equal(t, 1<<14, c.Scrypt.N)
}

func TestParseEnv_EmptyEnvNoop(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()
	before := *c
	parseEnv(c)

	assert.Equal(t, before, *c)
}
