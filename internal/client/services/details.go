package services

import (
	"context"

	"github.com/dmitrijs2005/countrybook/internal/client/models"
	"github.com/dmitrijs2005/countrybook/internal/logging"
)

// Details resolves a single country for the detail view. It prefers a
// fresh copy from the remote source and degrades to whatever the
// caller already has.
type Details struct {
	catalog Catalog
	log     logging.Logger
}

func NewDetails(catalog Catalog, log logging.Logger) *Details {
	return &Details{catalog: catalog, log: log}
}

// Fetch returns the freshest available version of the country. When
// the remote fetch fails the initial value passed by the caller is
// returned as-is, so the view never goes blank over a network blip.
func (d *Details) Fetch(ctx context.Context, code string, initial models.Country) models.Country {
	country, err := d.catalog.GetCountryByCode(ctx, code, true)
	if err != nil {
		d.log.Warn(ctx, "detail fetch failed, using cached copy", "code", code, "error", err)
		return initial
	}
	return country
}
