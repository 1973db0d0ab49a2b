package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownPeriod)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.Redis.KeyTTL)
	assert.Equal(t, "info", cfg.Log.Level)

	assert.Contains(t, cfg.CORS.AllowOrigins, "chrome-extension://*")
	assert.Contains(t, cfg.CORS.AllowOrigins, "https://binge-master.mindthevirt.com")
}

func TestLoadConfig_MissingFileIsNotFatal(t *testing.T) {
	cfg, err := LoadConfig("testdata/does-not-exist.yaml")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
}
