package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/countrybook/internal/client/services"
)

const commandTimeout = 10 * time.Second

// List prints the current page of the listing, waiting out any load in
// flight first.
func (a *App) List(ctx context.Context) error {
	state := a.waitForListing(ctx, commandTimeout, settled)
	a.printListing(state)
	return nil
}

// More loads and prints the next page.
func (a *App) More(ctx context.Context) error {
	a.listing.LoadMore(ctx)
	state := a.waitForListing(ctx, commandTimeout, settled)
	a.printListing(state)
	return nil
}

// Search applies a search query. An empty query clears the filter.
func (a *App) Search(ctx context.Context, query string) error {
	a.listing.SetSearch(query)
	state := a.waitForListing(ctx, commandTimeout, func(s services.ListingState) bool {
		return settled(s) && s.Search == query
	})
	a.printListing(state)
	return nil
}

// Region applies a region filter. Empty or "All" clears it.
func (a *App) Region(ctx context.Context, region string) error {
	a.listing.SetRegion(ctx, region)
	state := a.waitForListing(ctx, commandTimeout, func(s services.ListingState) bool {
		return settled(s) && s.Region == region
	})
	a.printListing(state)
	return nil
}

// Regions prints the regions available for filtering.
func (a *App) Regions(ctx context.Context) error {
	regions, err := a.catalog.GetRegions(ctx)
	if err != nil {
		printlnFn("Unable to load regions.")
		return err
	}
	for _, r := range regions {
		printlnFn(" ", r)
	}
	return nil
}

// Refresh refetches the current page.
func (a *App) Refresh(ctx context.Context) error {
	a.listing.Refresh(ctx)
	state := a.waitForListing(ctx, commandTimeout, settled)
	a.printListing(state)
	return nil
}

// Retry reloads after a failure.
func (a *App) Retry(ctx context.Context) error {
	a.listing.Retry(ctx)
	state := a.waitForListing(ctx, commandTimeout, settled)
	a.printListing(state)
	return nil
}

func (a *App) printListing(state services.ListingState) {
	if state.Err != "" {
		printlnFn(state.Err)
		return
	}
	if len(state.Countries) == 0 {
		printlnFn("No countries found.")
		return
	}

	width := termWidth()
	for _, c := range state.Countries {
		star := " "
		if a.favorites.IsFavorite(c.Code) {
			star = "*"
		}
		line := fmt.Sprintf("%s %-4s %-30s %-10s %s", star, c.Code, c.Name.Common, c.Region, formatPopulation(c.Population))
		printlnFn(truncate(line, width))
	}
	printlnFn(fmt.Sprintf("Showing %d of %d", len(state.Countries), state.TotalCount))
	if state.HasMore {
		printlnFn("Type 'more' for the next page.")
	}
}
