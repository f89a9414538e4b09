package cli

import (
	"context"
	"fmt"
	"strings"
)

// Show prints the detail view for a single country, refreshed from the
// remote source when reachable.
func (a *App) Show(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))

	initial, err := a.catalog.GetCountryByCode(ctx, code, false)
	if err != nil {
		printlnFn("Country not found:", code)
		return err
	}

	c := a.details.Fetch(ctx, code, initial)

	printlnFn(fmt.Sprintf("%s (%s)", c.Name.Common, c.Code))
	printlnFn("  Official:  ", c.Name.Official)
	printlnFn("  Region:    ", joinOrNA([]string{c.Region, c.Subregion}))
	printlnFn("  Capital:   ", joinOrNA(c.Capital))
	printlnFn("  Population:", formatPopulation(c.Population))
	printlnFn("  Area:      ", fmt.Sprintf("%.0f km²", c.Area))
	printlnFn("  Languages: ", formatLanguages(c.Languages))
	printlnFn("  Currencies:", formatCurrencies(c.Currencies))
	printlnFn("  Timezones: ", joinOrNA(c.Timezones))
	printlnFn("  Borders:   ", joinOrNA(c.Borders))
	if c.Flags.Alt != "" {
		printlnFn("  Flag:      ", c.Flags.Alt)
	}

	if a.favorites.IsFavorite(c.Code) {
		printlnFn("  Starred.")
		if note := a.favorites.GetFavoriteNote(c.Code); note != "" {
			printlnFn("  Note:      ", note)
		}
	}
	return nil
}
