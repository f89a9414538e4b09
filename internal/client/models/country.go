// Package models defines the country catalog types used by the client.
package models

import "strings"

// Name holds the display names of a country.
type Name struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

// Flags references the country flag images.
type Flags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
	Alt string `json:"alt"`
}

// Currency describes one currency of a country.
type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Country is an immutable snapshot of one nation's public data at fetch time.
// Code (cca3) is the identity key: non-empty and unique within any result set.
type Country struct {
	Code       string              `json:"cca3"`
	Name       Name                `json:"name"`
	Capital    []string            `json:"capital"`
	Region     string              `json:"region"`
	Subregion  string              `json:"subregion"`
	Population int64               `json:"population"`
	Flags      Flags               `json:"flags"`
	Languages  map[string]string   `json:"languages"`
	Currencies map[string]Currency `json:"currencies"`
	Area       float64             `json:"area"`
	Timezones  []string            `json:"timezones"`
	Borders    []string            `json:"borders"`
}

// Normalize trims and uppercases the code, fills defaults for absent optional
// fields so downstream consumers can assume field presence, and reports
// whether the record carries a usable code. Records for which Normalize
// returns false must be dropped before entering any result set.
func (c *Country) Normalize() bool {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	if c.Code == "" {
		return false
	}

	if c.Capital == nil {
		c.Capital = []string{}
	}
	if c.Languages == nil {
		c.Languages = map[string]string{}
	}
	if c.Currencies == nil {
		c.Currencies = map[string]Currency{}
	}
	if c.Timezones == nil {
		c.Timezones = []string{}
	}
	if c.Borders == nil {
		c.Borders = []string{}
	}
	if c.Population < 0 {
		c.Population = 0
	}
	if c.Area < 0 {
		c.Area = 0
	}
	return true
}

// Sanitize normalizes raw records, drops the ones without a usable code and
// duplicates of a code already seen, and returns the kept records together
// with the dropped count. Order is preserved.
func Sanitize(raw []Country) ([]Country, int) {
	valid := make([]Country, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	dropped := 0

	for _, c := range raw {
		if !c.Normalize() {
			dropped++
			continue
		}
		if _, dup := seen[c.Code]; dup {
			dropped++
			continue
		}
		seen[c.Code] = struct{}{}
		valid = append(valid, c)
	}

	return valid, dropped
}
