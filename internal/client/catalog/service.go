package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dmitrijs2005/countrybook/internal/client/models"
	"github.com/dmitrijs2005/countrybook/internal/logging"
)

const defaultPageSize = 20

// RegionAll is the pseudo-region that disables region filtering.
const RegionAll = "All"

// Page is one page of a country listing.
type Page struct {
	Data        []models.Country `json:"data"`
	TotalCount  int              `json:"totalCount"`
	HasNextPage bool             `json:"hasNextPage"`
}

// Service serves paged, filtered country listings from an in-memory
// snapshot fetched once from the remote source. Query results are
// memoized per (page, limit, search, region) combination.
type Service struct {
	client Client
	log    logging.Logger

	mu          sync.RWMutex
	countries   []models.Country
	byCode      map[string]models.Country
	regions     []string
	cache       map[string]Page
	initialized bool

	sf singleflight.Group

	// collators keep internal buffers, so access is serialized
	collMu   sync.Mutex
	collator *collate.Collator
}

func NewService(client Client, log logging.Logger) *Service {
	return &Service{
		client:   client,
		log:      log,
		byCode:   map[string]models.Country{},
		cache:    map[string]Page{},
		collator: collate.New(language.English),
	}
}

// GetCountries returns one page of the snapshot, filtered by search
// query and region and sorted by common name. Page numbers below 1 and
// non-positive limits fall back to defaults.
func (s *Service) GetCountries(ctx context.Context, page, limit int, search, region string) (Page, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}

	if err := s.ensureSnapshot(ctx); err != nil {
		return Page{}, err
	}

	cacheKey := fmt.Sprintf("%d-%d-%s-%s", page, limit, search, region)

	s.mu.RLock()
	cached, ok := s.cache[cacheKey]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	s.mu.RLock()
	filtered := s.filter(search, region)
	s.mu.RUnlock()

	s.sortByName(filtered)

	total := len(filtered)
	start := (page - 1) * limit
	end := page * limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	result := Page{
		Data:        filtered[start:end],
		TotalCount:  total,
		HasNextPage: page*limit < total,
	}

	s.mu.Lock()
	s.cache[cacheKey] = result
	s.mu.Unlock()

	return result, nil
}

// GetCountryByCode returns one country. With forceFetch set it asks the
// remote source for a fresh copy first and falls back to the snapshot
// when the fetch fails.
func (s *Service) GetCountryByCode(ctx context.Context, code string, forceFetch bool) (models.Country, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	if forceFetch {
		fresh, err := s.client.FetchByCode(ctx, code)
		if err == nil && fresh.Normalize() {
			s.mu.Lock()
			s.upsert(fresh)
			s.mu.Unlock()
			return fresh, nil
		}
		s.log.Warn(ctx, "fresh fetch failed, falling back to snapshot", "code", code, "error", err)
	}

	if err := s.ensureSnapshot(ctx); err != nil {
		return models.Country{}, err
	}

	s.mu.RLock()
	country, ok := s.byCode[code]
	s.mu.RUnlock()
	if ok {
		return country, nil
	}

	return s.client.FetchByCode(ctx, code)
}

// GetRegions returns the distinct regions present in the snapshot, in
// first-seen order, preceded by RegionAll.
func (s *Service) GetRegions(ctx context.Context) ([]string, error) {
	if err := s.ensureSnapshot(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	regions := make([]string, 0, len(s.regions)+1)
	regions = append(regions, RegionAll)
	regions = append(regions, s.regions...)
	return regions, nil
}

// ClearCache drops memoized query results. The snapshot itself stays.
func (s *Service) ClearCache() {
	s.mu.Lock()
	s.cache = map[string]Page{}
	s.mu.Unlock()
}

// ensureSnapshot fetches the full country list exactly once.
// Concurrent callers share a single in-flight fetch, and a failed
// fetch is not cached so the next call retries.
func (s *Service) ensureSnapshot(ctx context.Context) error {
	s.mu.RLock()
	ready := s.initialized
	s.mu.RUnlock()
	if ready {
		return nil
	}

	_, err, _ := s.sf.Do("snapshot", func() (interface{}, error) {
		s.mu.RLock()
		ready := s.initialized
		s.mu.RUnlock()
		if ready {
			return nil, nil
		}

		raw, err := s.client.FetchAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch countries: %w", err)
		}

		countries, dropped := models.Sanitize(raw)
		if dropped > 0 {
			s.log.Warn(ctx, "dropped malformed countries from snapshot", "count", dropped)
		}

		byCode := make(map[string]models.Country, len(countries))
		var regions []string
		seen := map[string]struct{}{}
		for _, c := range countries {
			byCode[c.Code] = c
			if c.Region == "" {
				continue
			}
			if _, ok := seen[c.Region]; !ok {
				seen[c.Region] = struct{}{}
				regions = append(regions, c.Region)
			}
		}

		s.mu.Lock()
		s.countries = countries
		s.byCode = byCode
		s.regions = regions
		s.initialized = true
		s.mu.Unlock()

		s.log.Info(ctx, "country snapshot loaded", "count", len(countries), "regions", len(regions))
		return nil, nil
	})
	return err
}

// filter must be called with at least a read lock held.
func (s *Service) filter(search, region string) []models.Country {
	query := strings.ToLower(strings.TrimSpace(search))
	filterRegion := region != "" && region != RegionAll

	result := make([]models.Country, 0, len(s.countries))
	for _, c := range s.countries {
		if filterRegion && c.Region != region {
			continue
		}
		if query != "" && !matchesQuery(c, query) {
			continue
		}
		result = append(result, c)
	}
	return result
}

func matchesQuery(c models.Country, query string) bool {
	if strings.Contains(strings.ToLower(c.Name.Common), query) ||
		strings.Contains(strings.ToLower(c.Name.Official), query) ||
		strings.Contains(strings.ToLower(c.Code), query) {
		return true
	}
	for _, capital := range c.Capital {
		if strings.Contains(strings.ToLower(capital), query) {
			return true
		}
	}
	return false
}

func (s *Service) sortByName(countries []models.Country) {
	s.collMu.Lock()
	defer s.collMu.Unlock()
	sort.SliceStable(countries, func(i, j int) bool {
		return s.collator.CompareString(countries[i].Name.Common, countries[j].Name.Common) < 0
	})
}

// upsert must be called with the write lock held.
func (s *Service) upsert(c models.Country) {
	if _, ok := s.byCode[c.Code]; ok {
		for i := range s.countries {
			if s.countries[i].Code == c.Code {
				s.countries[i] = c
				break
			}
		}
	} else if s.initialized {
		s.countries = append(s.countries, c)
		if c.Region != "" {
			found := false
			for _, r := range s.regions {
				if r == c.Region {
					found = true
					break
				}
			}
			if !found {
				s.regions = append(s.regions, c.Region)
			}
		}
	}
	s.byCode[c.Code] = c
}
