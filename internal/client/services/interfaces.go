package services

import (
	"context"

	"github.com/dmitrijs2005/countrybook/internal/client/catalog"
	"github.com/dmitrijs2005/countrybook/internal/client/models"
)

// Catalog is the country data source the services consume. Satisfied
// by *catalog.Service.
type Catalog interface {
	GetCountries(ctx context.Context, page, limit int, search, region string) (catalog.Page, error)
	GetCountryByCode(ctx context.Context, code string, forceFetch bool) (models.Country, error)
	GetRegions(ctx context.Context) ([]string, error)
	ClearCache()
}
