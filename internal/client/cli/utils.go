package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/countrybook/internal/client/models"
)

// formatPopulation renders large numbers the way the listing shows
// them: "8.7 million", "39 thousand", or the plain number.
func formatPopulation(population int64) string {
	switch {
	case population >= 1_000_000:
		return fmt.Sprintf("%.1f million", float64(population)/1_000_000)
	case population >= 1_000:
		return fmt.Sprintf("%.0f thousand", float64(population)/1_000)
	default:
		return fmt.Sprintf("%d", population)
	}
}

// joinOrNA joins non-empty values with ", ", or returns "N/A" when
// nothing is left.
func joinOrNA(values []string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return "N/A"
	}
	return strings.Join(kept, ", ")
}

func formatLanguages(languages map[string]string) string {
	names := make([]string, 0, len(languages))
	for _, name := range languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return joinOrNA(names)
}

func formatCurrencies(currencies map[string]models.Currency) string {
	entries := make([]string, 0, len(currencies))
	for _, c := range currencies {
		if c.Symbol != "" {
			entries = append(entries, fmt.Sprintf("%s (%s)", c.Name, c.Symbol))
		} else {
			entries = append(entries, c.Name)
		}
	}
	sort.Strings(entries)
	return joinOrNA(entries)
}

func truncate(s string, width int) string {
	if width <= 3 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
