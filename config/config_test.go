package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Port:           "5000",
		StoreDriver:    " Memory ",
		JWTSecret:      "secret",
		JWTTTL:         time.Hour,
		UploadMaxBytes: 1024,
		CartLockTTL:    time.Second,
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, ":5000", cfg.Port)
}

func TestValidate_Errors(t *testing.T) {
	cases := map[string]func(c *Config){
		"unknown driver":       func(c *Config) { c.StoreDriver = "sqlite" },
		"postgres without url": func(c *Config) { c.StoreDriver = DriverPostgres },
		"mongo without uri":    func(c *Config) { c.StoreDriver = DriverMongo; c.MongoURI = "" },
		"missing secret":       func(c *Config) { c.JWTSecret = "" },
		"admin half set":       func(c *Config) { c.AdminEmail = "admin@example.com" },
		"zero lock ttl":        func(c *Config) { c.CartLockTTL = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
