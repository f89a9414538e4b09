package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"github.com/dmitrijs2005/countrybook/internal/client/models"
	"github.com/dmitrijs2005/countrybook/internal/common"
	"github.com/dmitrijs2005/countrybook/internal/logging"
)

// requestedFields is the field projection sent to the API on every
// request. Keeping the list fixed keeps payloads small and responses
// shaped the same across endpoints.
const requestedFields = "name,flags,region,subregion,population,capital,languages,currencies,cca3,area,timezones,borders"

// maxResponseBytes caps how much of a response body is read. The full
// country dataset is well under 2MB.
const maxResponseBytes = 8 << 20

// Client fetches country data from a remote source.
type Client interface {
	// FetchAll returns every country the source knows about.
	FetchAll(ctx context.Context) ([]models.Country, error)
	// FetchByCode returns a single country by its alpha-3 code.
	// Returns common.ErrNotFound when the source has no such country.
	FetchByCode(ctx context.Context, code string) (models.Country, error)
}

// RESTClient talks to a REST Countries compatible API over HTTP.
// A circuit breaker guards the upstream: after repeated failures
// requests short-circuit with common.ErrUnavailable instead of
// hammering a dead endpoint.
type RESTClient struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[[]byte]
	log     logging.Logger
}

func NewRESTClient(baseURL string, timeout time.Duration, log logging.Logger) *RESTClient {
	c := &RESTClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
	c.cb = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:     "restcountries",
		Interval: 1 * time.Minute,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// a missing country is an answer, not an outage
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, common.ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn(context.Background(), "circuit breaker state changed",
				"name", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

func (c *RESTClient) FetchAll(ctx context.Context) ([]models.Country, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/all?fields=%s", c.baseURL, requestedFields))
	if err != nil {
		return nil, err
	}

	var countries []models.Country
	if err := json.Unmarshal(body, &countries); err != nil {
		return nil, fmt.Errorf("failed to decode country list: %w", err)
	}
	return countries, nil
}

func (c *RESTClient) FetchByCode(ctx context.Context, code string) (models.Country, error) {
	endpoint := fmt.Sprintf("%s/alpha/%s?fields=%s", c.baseURL, url.PathEscape(code), requestedFields)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return models.Country{}, err
	}

	// the alpha endpoint answers with a single object, but some
	// deployments wrap it in a one-element array
	var country models.Country
	if err := json.Unmarshal(body, &country); err == nil && country.Code != "" {
		return country, nil
	}
	var countries []models.Country
	if err := json.Unmarshal(body, &countries); err != nil {
		return models.Country{}, fmt.Errorf("failed to decode country %s: %w", code, err)
	}
	if len(countries) == 0 {
		return models.Country{}, fmt.Errorf("country %s: %w", code, common.ErrNotFound)
	}
	return countries[0], nil
}

func (c *RESTClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	requestID := uuid.NewString()
	c.log.Debug(ctx, "fetching", "url", endpoint, "request_id", requestID)

	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.do(ctx, endpoint)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
		}
		c.log.Warn(ctx, "request failed", "url", endpoint, "request_id", requestID, "error", err)
		return nil, err
	}
	return body, nil
}

func (c *RESTClient) do(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, common.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}
