// Package config loads runtime configuration for the CountryBook CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the country API
//	-t int      request timeout (seconds)
//	-d string   path to the favorites database file
//	-p int      countries per listing page
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "300ms" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://restcountries.com/v3.1",
//	  "request_timeout": "10s",
//	  "database_path": "countrybook.db",
//	  "page_size": 20,
//	  "search_debounce": "300ms"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
