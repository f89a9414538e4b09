// Package cli provides the interactive CountryBook command-line client.
//
// It wires configuration, local favorites storage, the country catalog,
// and an interactive REPL for browsing and starring countries.
//
// Key features:
//   - Paged country listing with search and region filters
//   - Country detail view refreshed from the remote source
//   - Favorites with personal notes, persisted locally in SQLite
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
