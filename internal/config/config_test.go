package config

import (
	"os"
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type ConfigUnitSuite struct {
	suite.Suite
}

func setenv(env map[string]string) func() {
	for k, v := range env {
		os.Setenv(k, v)
	}
	return func() {
		for k := range env {
			os.Unsetenv(k)
		}
	}
}

func (s *ConfigUnitSuite) TestFromEnv(t provider.T) {
	t.Run("Should use defaults when env is empty", func(t provider.T) {
		defer setenv(map[string]string{
			"HTTP_PORT":          "",
			"CATALOG_STORAGE":    "",
			"RATE_LIMIT_RPS":     "",
			"RATE_LIMIT_ENABLED": "",
		})()
		cfg := FromEnv()
		assert.Equal(t, "3000", cfg.HTTP.Port)
		assert.Equal(t, StorageFile, cfg.Catalog.Storage)
		assert.Equal(t, 4.0, cfg.RateLimit.RPS)
		assert.True(t, cfg.RateLimit.Enabled)
	})

	t.Run("Should read overrides and ignore malformed numbers", func(t provider.T) {
		defer setenv(map[string]string{
			"HTTP_PORT":          "8081",
			"CATALOG_STORAGE":    StoragePostgres,
			"RATE_LIMIT_BURST":   "lots",
			"RATE_LIMIT_ENABLED": "false",
		})()
		cfg := FromEnv()
		assert.Equal(t, "8081", cfg.HTTP.Port)
		assert.Equal(t, StoragePostgres, cfg.Catalog.Storage)
		assert.Equal(t, 8, cfg.RateLimit.Burst)
		assert.False(t, cfg.RateLimit.Enabled)
	})
}

func TestConfigUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(ConfigUnitSuite))
}
