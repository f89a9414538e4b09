package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://restcountries.com/v3.1", c.APIBaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "countrybook.db", c.DatabasePath)
	assert.Equal(t, 20, c.PageSize)
	assert.Equal(t, 300*time.Millisecond, c.SearchDebounce)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "https://restcountries.com/v3.1", cfg.APIBaseURL)
	assert.Equal(t, 20, cfg.PageSize)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-a", "http://localhost:8080", "-t", "5", "-d", "/tmp/fav.db", "-p", "50"}

	cfg := LoadConfig()

	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/tmp/fav.db", cfg.DatabasePath)
	assert.Equal(t, 50, cfg.PageSize)
}
