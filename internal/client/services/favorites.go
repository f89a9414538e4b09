package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/countrybook/internal/client/models"
	"github.com/dmitrijs2005/countrybook/internal/client/repositories/favorites"
	"github.com/dmitrijs2005/countrybook/internal/common"
	"github.com/dmitrijs2005/countrybook/internal/logging"
)

// FavoritesState is an immutable snapshot of the favorites collection
// delivered to subscribers.
type FavoritesState struct {
	Favorites []models.FavoriteCountry
	Loading   bool
	Err       string
}

// Favorites is an observable container over the favorites repository.
// Every mutation goes through the repository first; in-memory state
// only advances after the write succeeded, so the durable store stays
// the source of truth.
type Favorites struct {
	repo favorites.Repository
	log  logging.Logger

	mu        sync.Mutex
	favorites []models.FavoriteCountry
	index     map[string]int
	loading   bool
	errMsg    string

	subMu   sync.Mutex
	subs    map[int]func(FavoritesState)
	nextSub int
}

func NewFavorites(repo favorites.Repository, log logging.Logger) *Favorites {
	return &Favorites{
		repo:  repo,
		log:   log,
		index: map[string]int{},
		subs:  map[int]func(FavoritesState){},
	}
}

// Subscribe registers a listener for state changes and immediately
// delivers the current state. The returned function cancels the
// subscription.
func (f *Favorites) Subscribe(fn func(FavoritesState)) func() {
	f.subMu.Lock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fn
	f.subMu.Unlock()

	fn(f.State())

	return func() {
		f.subMu.Lock()
		delete(f.subs, id)
		f.subMu.Unlock()
	}
}

// State returns a copy of the current state.
func (f *Favorites) State() FavoritesState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Load reads the persisted collection into memory. Unreadable
// persisted data degrades to an empty collection so the next mutation
// can repair it.
func (f *Favorites) Load(ctx context.Context) {
	f.setLoading(true)

	list, err := f.repo.Load(ctx)
	switch {
	case errors.Is(err, common.ErrCorruptData):
		f.log.Warn(ctx, "persisted favorites unreadable, starting empty", "error", err)
		err = nil
	case err != nil:
		f.log.Error(ctx, "failed to load favorites", "error", err)
	}

	f.mu.Lock()
	f.loading = false
	if err != nil {
		f.errMsg = "Failed to load favorites"
	} else {
		f.replaceLocked(list)
		f.errMsg = ""
	}
	state := f.snapshotLocked()
	f.mu.Unlock()

	f.notify(state)
}

// AddFavorite stars a country. Adding an already-starred country is a
// no-op that still reports success.
func (f *Favorites) AddFavorite(ctx context.Context, country models.Country) error {
	if !country.Normalize() {
		return nil
	}
	return f.mutate(ctx, "Failed to add favorite", func() ([]models.FavoriteCountry, error) {
		return f.repo.Add(ctx, country)
	})
}

// RemoveFavorite unstars a country. Unknown codes are a no-op.
func (f *Favorites) RemoveFavorite(ctx context.Context, code string) error {
	return f.mutate(ctx, "Failed to remove favorite", func() ([]models.FavoriteCountry, error) {
		return f.repo.Remove(ctx, code)
	})
}

// ToggleFavorite stars the country if absent and unstars it if present.
func (f *Favorites) ToggleFavorite(ctx context.Context, country models.Country) error {
	if !country.Normalize() {
		return nil
	}
	if f.IsFavorite(country.Code) {
		return f.RemoveFavorite(ctx, country.Code)
	}
	return f.AddFavorite(ctx, country)
}

// UpdateNote replaces the personal note on a starred country. Unknown
// codes are a no-op.
func (f *Favorites) UpdateNote(ctx context.Context, code, note string) error {
	return f.mutate(ctx, "Failed to update note", func() ([]models.FavoriteCountry, error) {
		return f.repo.UpdateNote(ctx, code, note)
	})
}

// RefreshFavorites re-reads the persisted collection, discarding the
// in-memory copy.
func (f *Favorites) RefreshFavorites(ctx context.Context) {
	f.Load(ctx)
}

// IsFavorite reports whether the code is currently starred.
func (f *Favorites) IsFavorite(code string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.index[code]
	return ok
}

// GetFavoriteNote returns the note for a starred country, or the empty
// string when the country is not starred.
func (f *Favorites) GetFavoriteNote(code string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i, ok := f.index[code]; ok {
		return f.favorites[i].Note
	}
	return ""
}

func (f *Favorites) mutate(ctx context.Context, failMsg string, op func() ([]models.FavoriteCountry, error)) error {
	list, err := op()

	f.mu.Lock()
	if err != nil {
		f.log.Error(ctx, "favorites mutation failed", "error", err)
		f.errMsg = failMsg
	} else {
		f.replaceLocked(list)
		f.errMsg = ""
	}
	state := f.snapshotLocked()
	f.mu.Unlock()

	f.notify(state)
	return err
}

func (f *Favorites) setLoading(v bool) {
	f.mu.Lock()
	f.loading = v
	state := f.snapshotLocked()
	f.mu.Unlock()
	f.notify(state)
}

func (f *Favorites) replaceLocked(list []models.FavoriteCountry) {
	f.favorites = list
	f.index = make(map[string]int, len(list))
	for i, fav := range list {
		f.index[fav.Code] = i
	}
}

func (f *Favorites) snapshotLocked() FavoritesState {
	out := make([]models.FavoriteCountry, len(f.favorites))
	copy(out, f.favorites)
	return FavoritesState{Favorites: out, Loading: f.loading, Err: f.errMsg}
}

// notify runs outside the state lock so listeners may call back into
// the container.
func (f *Favorites) notify(state FavoritesState) {
	f.subMu.Lock()
	listeners := make([]func(FavoritesState), 0, len(f.subs))
	for _, fn := range f.subs {
		listeners = append(listeners, fn)
	}
	f.subMu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}
