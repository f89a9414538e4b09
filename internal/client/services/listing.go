package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/countrybook/internal/client/models"
	"github.com/dmitrijs2005/countrybook/internal/debounce"
	"github.com/dmitrijs2005/countrybook/internal/logging"
)

const (
	msgLoadFailed     = "Unable to load countries. Pull to refresh to try again."
	msgLoadMoreFailed = "Unable to load more countries."
)

// ListingState is a snapshot of the country listing delivered to
// subscribers.
type ListingState struct {
	Countries     []models.Country
	TotalCount    int
	CurrentPage   int
	HasMore       bool
	IsLoading     bool
	IsLoadingMore bool
	IsRefreshing  bool
	Search        string
	Region        string
	Err           string
}

// Listing drives the paged country list. Search input is debounced;
// region changes reload immediately. Results that arrive after the
// query changed again, or after Close, are discarded.
type Listing struct {
	catalog  Catalog
	log      logging.Logger
	pageSize int

	debouncer *debounce.Debouncer[string]

	mu            sync.Mutex
	countries     []models.Country
	totalCount    int
	currentPage   int
	hasMore       bool
	isLoading     bool
	isLoadingMore bool
	isRefreshing  bool
	search        string
	region        string
	errMsg        string
	generation    int
	closed        bool

	subMu   sync.Mutex
	subs    map[int]func(ListingState)
	nextSub int
}

func NewListing(catalog Catalog, log logging.Logger, pageSize int, searchDelay time.Duration) *Listing {
	return &Listing{
		catalog:   catalog,
		log:       log,
		pageSize:  pageSize,
		debouncer: debounce.New[string](searchDelay),
		subs:      map[int]func(ListingState){},
	}
}

// Start kicks off the initial load and the search watcher. The watcher
// stops when ctx is cancelled or Close is called.
func (l *Listing) Start(ctx context.Context) {
	go l.watchSearch(ctx)
	go l.load(ctx, l.bumpGeneration())
}

// Close stops the search watcher and marks any in-flight load stale.
func (l *Listing) Close() {
	l.mu.Lock()
	l.closed = true
	l.generation++
	l.mu.Unlock()
	l.debouncer.Stop()
}

// Subscribe registers a listener and immediately delivers the current
// state. The returned function cancels the subscription.
func (l *Listing) Subscribe(fn func(ListingState)) func() {
	l.subMu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	l.subMu.Unlock()

	fn(l.State())

	return func() {
		l.subMu.Lock()
		delete(l.subs, id)
		l.subMu.Unlock()
	}
}

func (l *Listing) State() ListingState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// SetSearch schedules a reload with the new query after the debounce
// delay. Rapid consecutive calls coalesce to the last value.
func (l *Listing) SetSearch(query string) {
	l.debouncer.Set(query)
}

// SetRegion reloads with the new region filter immediately.
func (l *Listing) SetRegion(ctx context.Context, region string) {
	l.mu.Lock()
	if l.region == region {
		l.mu.Unlock()
		return
	}
	l.region = region
	l.mu.Unlock()

	go l.load(ctx, l.bumpGeneration())
}

// LoadMore appends the next page. It is a no-op while a page is
// already loading, when every row is present, or before the first page
// arrived.
func (l *Listing) LoadMore(ctx context.Context) {
	l.mu.Lock()
	if l.isLoadingMore || !l.hasMore || len(l.countries) == 0 {
		l.mu.Unlock()
		return
	}
	l.isLoadingMore = true
	gen := l.generation
	page := l.currentPage + 1
	search, region := l.search, l.region
	state := l.snapshotLocked()
	l.mu.Unlock()
	l.notify(state)

	result, err := l.catalog.GetCountries(ctx, page, l.pageSize, search, region)

	l.mu.Lock()
	if l.generation != gen {
		// a newer query superseded this page
		l.isLoadingMore = false
		state = l.snapshotLocked()
		l.mu.Unlock()
		l.notify(state)
		return
	}
	l.isLoadingMore = false
	if err != nil {
		l.log.Error(ctx, "failed to load more countries", "page", page, "error", err)
		l.errMsg = msgLoadMoreFailed
	} else {
		l.countries = append(l.countries, result.Data...)
		l.totalCount = result.TotalCount
		l.currentPage = page
		l.hasMore = result.HasNextPage
		l.errMsg = ""
	}
	state = l.snapshotLocked()
	l.mu.Unlock()
	l.notify(state)
}

// Refresh refetches the first page of the current query while keeping
// the rows on screen. On failure the rows survive and only the error
// message changes.
func (l *Listing) Refresh(ctx context.Context) {
	l.mu.Lock()
	gen := l.generation
	l.isRefreshing = true
	search, region := l.search, l.region
	state := l.snapshotLocked()
	l.mu.Unlock()
	l.notify(state)

	result, err := l.catalog.GetCountries(ctx, 1, l.pageSize, search, region)

	l.mu.Lock()
	// the refreshing flag always clears, even when superseded
	l.isRefreshing = false
	if l.generation == gen {
		if err != nil {
			l.log.Error(ctx, "refresh failed", "error", err)
			l.errMsg = msgLoadFailed
		} else {
			l.countries = result.Data
			l.totalCount = result.TotalCount
			l.currentPage = 1
			l.hasMore = result.HasNextPage
			l.errMsg = ""
		}
	}
	state = l.snapshotLocked()
	l.mu.Unlock()
	l.notify(state)
}

// Retry reloads the first page after a failure.
func (l *Listing) Retry(ctx context.Context) {
	go l.load(ctx, l.bumpGeneration())
}

func (l *Listing) watchSearch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case query, ok := <-l.debouncer.C():
			if !ok {
				return
			}
			l.mu.Lock()
			if l.closed || l.search == query {
				l.mu.Unlock()
				continue
			}
			l.search = query
			l.mu.Unlock()
			l.load(ctx, l.bumpGeneration())
		}
	}
}

func (l *Listing) bumpGeneration() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generation++
	return l.generation
}

func (l *Listing) load(ctx context.Context, gen int) {
	l.mu.Lock()
	if l.closed || l.generation != gen {
		l.mu.Unlock()
		return
	}
	l.isLoading = true
	l.errMsg = ""
	search, region := l.search, l.region
	state := l.snapshotLocked()
	l.mu.Unlock()
	l.notify(state)

	result, err := l.catalog.GetCountries(ctx, 1, l.pageSize, search, region)

	l.mu.Lock()
	if l.generation != gen {
		l.mu.Unlock()
		return
	}
	l.isLoading = false
	if err != nil {
		l.log.Error(ctx, "failed to load countries", "error", err)
		l.countries = nil
		l.totalCount = 0
		l.hasMore = false
		l.errMsg = msgLoadFailed
	} else {
		l.countries = result.Data
		l.totalCount = result.TotalCount
		l.currentPage = 1
		l.hasMore = result.HasNextPage
		l.errMsg = ""
	}
	state = l.snapshotLocked()
	l.mu.Unlock()
	l.notify(state)
}

func (l *Listing) snapshotLocked() ListingState {
	out := make([]models.Country, len(l.countries))
	copy(out, l.countries)
	return ListingState{
		Countries:     out,
		TotalCount:    l.totalCount,
		CurrentPage:   l.currentPage,
		HasMore:       l.hasMore,
		IsLoading:     l.isLoading,
		IsLoadingMore: l.isLoadingMore,
		IsRefreshing:  l.isRefreshing,
		Search:        l.search,
		Region:        l.region,
		Err:           l.errMsg,
	}
}

func (l *Listing) notify(state ListingState) {
	l.subMu.Lock()
	listeners := make([]func(ListingState), 0, len(l.subs))
	for _, fn := range l.subs {
		listeners = append(listeners, fn)
	}
	l.subMu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}
