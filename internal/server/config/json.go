package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
	"github.com/dmitrijs2005/authkeeper/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Duration fields accept both strings like "30s" and integer
// nanoseconds via timex.Duration. Zero values are treated as "not set" and
// leave the running Config untouched.
type JsonConfig struct {
	EndpointAddr   string         `json:"endpoint_addr"`
	DatabaseDSN    string         `json:"database_dsn"`
	SecretKey      string         `json:"secret_key"`
	TokenAlgorithm string         `json:"token_algorithm"`
	TokenLifetime  timex.Duration `json:"token_lifetime"`
	ScryptN        int            `json:"scrypt_n"`
	ScryptR        int            `json:"scrypt_r"`
	ScryptP        int            `json:"scrypt_p"`
	ScryptKeyLen   int            `json:"scrypt_key_len"`
	ScryptSaltLen  int            `json:"scrypt_salt_len"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags, if any. A missing flag means no JSON file is loaded.
// An unreadable or malformed file panics: starting with a half-applied
// configuration is worse than not starting.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenAlgorithm != "" {
		config.TokenAlgorithm = c.TokenAlgorithm
	}
	if c.TokenLifetime.Duration != 0 {
		config.TokenLifetime = time.Duration(c.TokenLifetime.Duration)
	}
	if c.ScryptN != 0 {
		config.Scrypt.N = c.ScryptN
	}
	if c.ScryptR != 0 {
		config.Scrypt.R = c.ScryptR
	}
	if c.ScryptP != 0 {
		config.Scrypt.P = c.ScryptP
	}
	if c.ScryptKeyLen != 0 {
		config.Scrypt.KeyLen = c.ScryptKeyLen
	}
	if c.ScryptSaltLen != 0 {
		config.Scrypt.SaltLen = c.ScryptSaltLen
	}
}
