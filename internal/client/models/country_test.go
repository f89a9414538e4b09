package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountry_Normalize_FillsDefaults(t *testing.T) {
	c := Country{Code: " usa "}

	require.True(t, c.Normalize())

	assert.Equal(t, "USA", c.Code)
	assert.NotNil(t, c.Capital)
	assert.NotNil(t, c.Languages)
	assert.NotNil(t, c.Currencies)
	assert.NotNil(t, c.Timezones)
	assert.NotNil(t, c.Borders)
	assert.Empty(t, c.Capital)
	assert.Zero(t, c.Population)
}

func TestCountry_Normalize_RejectsMissingCode(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{name: "empty", code: ""},
		{name: "blank", code: "   "},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c := Country{Code: tt.code, Name: Name{Common: "Atlantis"}}
			assert.False(t, c.Normalize())
		})
	}
}

func TestCountry_Normalize_ClampsNegativeNumbers(t *testing.T) {
	c := Country{Code: "XXX", Population: -5, Area: -1.5}

	require.True(t, c.Normalize())
	assert.Zero(t, c.Population)
	assert.Zero(t, c.Area)
}

func TestSanitize_DropsInvalidAndDuplicateRecords(t *testing.T) {
	raw := []Country{
		{Code: "FRA", Name: Name{Common: "France"}},
		{Code: "", Name: Name{Common: "Nowhere"}},
		{Code: "fra", Name: Name{Common: "France again"}},
		{Code: "DEU", Name: Name{Common: "Germany"}},
	}

	valid, dropped := Sanitize(raw)

	require.Len(t, valid, 2)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, "FRA", valid[0].Code)
	assert.Equal(t, "DEU", valid[1].Code)
	assert.Equal(t, "France", valid[0].Name.Common)
}

func TestCountry_DecodesRawCatalogRecord(t *testing.T) {
	payload := []byte(`{
		"cca3": "CHE",
		"name": {"common": "Switzerland", "official": "Swiss Confederation"},
		"capital": ["Bern"],
		"region": "Europe",
		"subregion": "Western Europe",
		"population": 8654622,
		"flags": {"png": "https://example.org/che.png", "svg": "https://example.org/che.svg"},
		"languages": {"deu": "German", "fra": "French"},
		"currencies": {"CHF": {"name": "Swiss franc", "symbol": "Fr."}},
		"area": 41284,
		"timezones": ["UTC+01:00"],
		"borders": ["AUT", "FRA", "ITA", "LIE", "DEU"]
	}`)

	var c Country
	require.NoError(t, json.Unmarshal(payload, &c))

	assert.Equal(t, "CHE", c.Code)
	assert.Equal(t, "Switzerland", c.Name.Common)
	assert.Equal(t, []string{"Bern"}, c.Capital)
	assert.Equal(t, int64(8654622), c.Population)
	assert.Equal(t, "German", c.Languages["deu"])
	assert.Equal(t, Currency{Name: "Swiss franc", Symbol: "Fr."}, c.Currencies["CHF"])
	assert.InDelta(t, 41284.0, c.Area, 0.001)
	assert.Len(t, c.Borders, 5)
}

func TestFavoriteCountry_JSONRoundTrip(t *testing.T) {
	fav := FavoriteCountry{
		Country:   Country{Code: "JPN", Name: Name{Common: "Japan"}, Region: "Asia"},
		Note:      "visited in 2024",
		DateAdded: "2026-01-15T10:30:00Z",
	}

	b, err := json.Marshal(fav)
	require.NoError(t, err)

	var out FavoriteCountry
	require.NoError(t, json.Unmarshal(b, &out))

	assert.Equal(t, "JPN", out.Code)
	assert.Equal(t, "visited in 2024", out.Note)
	assert.Equal(t, "2026-01-15T10:30:00Z", out.DateAdded)
}
