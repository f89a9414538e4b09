package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/dmitrijs2005/countrybook/internal/client/catalog"
	"github.com/dmitrijs2005/countrybook/internal/client/config"
	"github.com/dmitrijs2005/countrybook/internal/client/repositories/favorites"
	"github.com/dmitrijs2005/countrybook/internal/client/repositories/kv"
	"github.com/dmitrijs2005/countrybook/internal/client/services"
	"github.com/dmitrijs2005/countrybook/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires storage, the country catalog, and the interactive REPL.
type App struct {
	config    *config.Config
	log       logging.Logger
	db        *sql.DB
	catalog   services.Catalog
	favorites *services.Favorites
	listing   *services.Listing
	details   *services.Details
	reader    *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {

	ctx := context.Background()

	db, err := kv.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	favRepo := favorites.NewKVRepository(kv.NewSQLiteRepository(db), log)

	apiClient := catalog.NewRESTClient(c.APIBaseURL, c.RequestTimeout, log)
	catalogService := catalog.NewService(apiClient, log)

	return &App{
		config:    c,
		log:       log,
		db:        db,
		catalog:   catalogService,
		favorites: services.NewFavorites(favRepo, log),
		listing:   services.NewListing(catalogService, log, c.PageSize, c.SearchDebounce),
		details:   services.NewDetails(catalogService, log),
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.favorites.Load(ctx)
	a.listing.Start(ctx)

	printlnFn("CountryBook CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, scanner)
}

func (a *App) Close() {
	a.listing.Close()
	if a.db != nil {
		_ = a.db.Close()
	}
}

// waitForListing blocks until the listing settles into a state matching
// pred, or the timeout passes. REPL commands use it to print results
// produced by asynchronous loads.
func (a *App) waitForListing(ctx context.Context, timeout time.Duration, pred func(services.ListingState) bool) services.ListingState {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		state := a.listing.State()
		if pred(state) || time.Now().After(deadline) {
			return state
		}
		select {
		case <-ctx.Done():
			return state
		case <-ticker.C:
		}
	}
}

func settled(s services.ListingState) bool {
	return !s.IsLoading && !s.IsLoadingMore && !s.IsRefreshing
}
