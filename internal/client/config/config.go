package config

import "time"

// Config holds runtime settings for the CountryBook CLI.
//
// Fields:
//   - APIBaseURL: base URL of the REST Countries compatible API.
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabasePath: SQLite file holding favorites (":memory:" works too).
//   - PageSize: countries per listing page.
//   - SearchDebounce: how long typing must pause before a search runs.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DatabasePath   string
	PageSize       int
	SearchDebounce time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://restcountries.com/v3.1"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "countrybook.db"
	c.PageSize = 20
	c.SearchDebounce = 300 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
