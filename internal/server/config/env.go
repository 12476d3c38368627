package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors the environment variables recognised by the server.
// Unset variables leave the corresponding Config fields untouched.
type envConfig struct {
	EndpointAddr   string        `env:"ADDRESS"`
	DatabaseDSN    string        `env:"DATABASE_DSN"`
	SecretKey      string        `env:"SECRET_KEY"`
	TokenAlgorithm string        `env:"TOKEN_ALGORITHM"`
	TokenLifetime  time.Duration `env:"TOKEN_LIFETIME"`
	ScryptN        int           `env:"SCRYPT_N"`
	ScryptR        int           `env:"SCRYPT_R"`
	ScryptP        int           `env:"SCRYPT_P"`
	ScryptKeyLen   int           `env:"SCRYPT_KEY_LEN"`
	ScryptSaltLen  int           `env:"SCRYPT_SALT_LEN"`
}

// parseEnv overlays environment variables onto the provided Config.
func parseEnv(config *Config) {
	e := envConfig{}
	if err := env.Parse(&e); err != nil {
		panic(err)
	}

	if e.EndpointAddr != "" {
		config.EndpointAddr = e.EndpointAddr
	}
	if e.DatabaseDSN != "" {
		config.DatabaseDSN = e.DatabaseDSN
	}
	if e.SecretKey != "" {
		config.SecretKey = e.SecretKey
	}
	if e.TokenAlgorithm != "" {
		config.TokenAlgorithm = e.TokenAlgorithm
	}
	if e.TokenLifetime != 0 {
		config.TokenLifetime = e.TokenLifetime
	}
	if e.ScryptN != 0 {
		config.Scrypt.N = e.ScryptN
	}
	if e.ScryptR != 0 {
		config.Scrypt.R = e.ScryptR
	}
	if e.ScryptP != 0 {
		config.Scrypt.P = e.ScryptP
	}
	if e.ScryptKeyLen != 0 {
		config.Scrypt.KeyLen = e.ScryptKeyLen
	}
	if e.ScryptSaltLen != 0 {
		config.Scrypt.SaltLen = e.ScryptSaltLen
	}
}
