package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/countrybook/internal/common"
	"github.com/dmitrijs2005/countrybook/internal/logging"
)

const fixtureCHE = `{
	"cca3": "CHE",
	"name": {"common": "Switzerland", "official": "Swiss Confederation"},
	"capital": ["Bern"],
	"region": "Europe",
	"subregion": "Western Europe",
	"population": 8654622,
	"area": 41284.0,
	"flags": {"png": "https://flagcdn.com/w320/ch.png", "alt": "The flag of Switzerland"},
	"languages": {"deu": "German", "fra": "French", "ita": "Italian"},
	"currencies": {"CHF": {"name": "Swiss franc", "symbol": "Fr."}},
	"timezones": ["UTC+01:00"],
	"borders": ["AUT", "FRA", "ITA", "LIE", "DEU"]
}`

func newTestClient(srvURL string) *RESTClient {
	return NewRESTClient(srvURL, 5*time.Second, logging.NewNop())
}

func TestFetchAll_DecodesCountryList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/all", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("fields"), "cca3")
		fmt.Fprintf(w, "[%s]", fixtureCHE)
	}))
	defer srv.Close()

	countries, err := newTestClient(srv.URL).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, countries, 1)
	assert.Equal(t, "CHE", countries[0].Code)
	assert.Equal(t, "Switzerland", countries[0].Name.Common)
	assert.Equal(t, int64(8654622), countries[0].Population)
}

func TestFetchByCode_AcceptsSingleObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alpha/CHE", r.URL.Path)
		fmt.Fprint(w, fixtureCHE)
	}))
	defer srv.Close()

	country, err := newTestClient(srv.URL).FetchByCode(context.Background(), "CHE")
	require.NoError(t, err)
	assert.Equal(t, "CHE", country.Code)
}

func TestFetchByCode_AcceptsOneElementArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "[%s]", fixtureCHE)
	}))
	defer srv.Close()

	country, err := newTestClient(srv.URL).FetchByCode(context.Background(), "CHE")
	require.NoError(t, err)
	assert.Equal(t, "CHE", country.Code)
}

func TestFetchByCode_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchByCode(context.Background(), "XXX")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestFetchAll_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestRESTClient_CircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := client.FetchAll(ctx)
		require.Error(t, err)
	}
	require.Equal(t, 5, hits)

	_, err := client.FetchAll(ctx)
	require.ErrorIs(t, err, common.ErrUnavailable)
	assert.Equal(t, 5, hits, "open breaker must not reach the server")
}

func TestRESTClient_NotFoundDoesNotTripBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := client.FetchByCode(ctx, "XXX")
		require.ErrorIs(t, err, common.ErrNotFound)
		require.NotErrorIs(t, err, common.ErrUnavailable)
	}
}
