package models

// FavoriteCountry is a Country the user starred. The country snapshot is
// captured at add-time and never re-fetched, even if the canonical record
// later changes. Only Note is mutable after creation; DateAdded is set once.
type FavoriteCountry struct {
	Country

	// Note is free-form user text. Defaults to empty; no length limit is
	// enforced at this layer.
	Note string `json:"note"`

	// DateAdded is the RFC 3339 timestamp of when the favorite was created.
	DateAdded string `json:"dateAdded"`
}
