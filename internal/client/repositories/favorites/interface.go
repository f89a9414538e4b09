package favorites

import (
	"context"

	"github.com/dmitrijs2005/countrybook/internal/client/models"
)

// Repository describes operations over the durable favorites collection.
// Implementations persist the whole collection as one serialized value in a
// kv.Store.
//
// Mutations re-read durable state before applying, so an in-memory copy held
// by the caller is never assumed authoritative. Add is idempotent; Remove and
// UpdateNote are no-ops when the code is absent. These are expected UI race
// outcomes (rapid double-tap), not errors.
type Repository interface {
	// Load returns the persisted favorites, oldest first. Absent state yields
	// an empty list. Unparseable state yields an empty list together with an
	// error matching common.ErrCorruptData; it never panics past this
	// boundary.
	Load(ctx context.Context) ([]models.FavoriteCountry, error)

	// Add appends a new favorite built from country (empty note, DateAdded
	// set to now) and persists the updated list. Adding an already-present
	// code returns the current list unchanged. A failed write returns a
	// *PersistenceError and leaves durable state untouched.
	Add(ctx context.Context, country models.Country) ([]models.FavoriteCountry, error)

	// Remove deletes the favorite with the given code, persists, and returns
	// the updated list.
	Remove(ctx context.Context, code string) ([]models.FavoriteCountry, error)

	// UpdateNote replaces the note on the favorite with the given code,
	// persists, and returns the updated list.
	UpdateNote(ctx context.Context, code string, note string) ([]models.FavoriteCountry, error)

	// Clear removes the entire persisted collection. Used by reset and test
	// paths only.
	Clear(ctx context.Context) error
}
