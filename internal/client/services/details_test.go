package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/countrybook/internal/logging"
)

func TestDetails_FetchReturnsFreshCopy(t *testing.T) {
	cat := newPagedCatalog(5)
	d := NewDetails(cat, logging.NewNop())

	got := d.Fetch(context.Background(), "C03", testCountry("C03", "stale"))

	assert.Equal(t, "Country 03", got.Name.Common)
}

func TestDetails_FetchFallsBackToInitialOnFailure(t *testing.T) {
	cat := newPagedCatalog(5)
	cat.setErr(errors.New("network down"))
	d := NewDetails(cat, logging.NewNop())

	initial := testCountry("C03", "Country 03 (cached)")
	got := d.Fetch(context.Background(), "C03", initial)

	assert.Equal(t, initial, got)
}
