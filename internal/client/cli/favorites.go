package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Fav stars a country by code. Starring an already-starred country is
// harmless.
func (a *App) Fav(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))

	country, err := a.catalog.GetCountryByCode(ctx, code, false)
	if err != nil {
		printlnFn("Country not found:", code)
		return err
	}

	if err := a.favorites.AddFavorite(ctx, country); err != nil {
		printlnFn(a.favorites.State().Err)
		return err
	}
	printlnFn("Starred", country.Name.Common)
	return nil
}

// Unfav removes a star. Unknown codes are a no-op.
func (a *App) Unfav(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))

	if err := a.favorites.RemoveFavorite(ctx, code); err != nil {
		printlnFn(a.favorites.State().Err)
		return err
	}
	printlnFn("Unstarred", code)
	return nil
}

// Note prompts for a note and attaches it to a starred country.
func (a *App) Note(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))

	if !a.favorites.IsFavorite(code) {
		printlnFn("Not starred:", code)
		return nil
	}

	if current := a.favorites.GetFavoriteNote(code); current != "" {
		printlnFn("Current note:", current)
	}

	note, err := GetMultiline(a.reader, "Enter note", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.favorites.UpdateNote(ctx, code, note); err != nil {
		printlnFn(a.favorites.State().Err)
		return err
	}
	printlnFn("Note saved.")
	return nil
}

// Favs lists starred countries with their notes.
func (a *App) Favs(ctx context.Context) error {
	state := a.favorites.State()
	if state.Err != "" {
		printlnFn(state.Err)
		return nil
	}
	if len(state.Favorites) == 0 {
		printlnFn("No favorites yet. Star one with 'fav <code>'.")
		return nil
	}

	for _, fav := range state.Favorites {
		line := fmt.Sprintf("* %-4s %-30s added %s", fav.Code, fav.Name.Common, fav.DateAdded)
		printlnFn(line)
		if fav.Note != "" {
			printlnFn("      note:", fav.Note)
		}
	}
	return nil
}
