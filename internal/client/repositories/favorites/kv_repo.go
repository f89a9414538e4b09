// Package favorites owns the durable favorites collection: the canonical
// list of starred countries with notes and add-timestamps, serialized as one
// JSON value in the local key/value store.
package favorites

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/dmitrijs2005/countrybook/internal/client/models"
	"github.com/dmitrijs2005/countrybook/internal/client/repositories/kv"
	"github.com/dmitrijs2005/countrybook/internal/common"
	"github.com/dmitrijs2005/countrybook/internal/logging"
)

// storageKey is the single key holding the whole serialized favorites list.
const storageKey = "country_favorites"

// KVRepository implements Repository over a kv.Store.
type KVRepository struct {
	store kv.Store
	log   logging.Logger
	now   func() time.Time
}

// NewKVRepository returns a Repository backed by store.
func NewKVRepository(store kv.Store, log logging.Logger) *KVRepository {
	return &KVRepository{store: store, log: log, now: time.Now}
}

func (r *KVRepository) Load(ctx context.Context) ([]models.FavoriteCountry, error) {
	raw, ok, err := r.store.Get(ctx, storageKey)
	if err != nil {
		return []models.FavoriteCountry{}, &PersistenceError{Op: "load", Err: err}
	}
	if !ok {
		return []models.FavoriteCountry{}, nil
	}

	var list []models.FavoriteCountry
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		r.log.Error(ctx, "failed to parse persisted favorites", "error", err)
		return []models.FavoriteCountry{}, fmt.Errorf("%w: %v", common.ErrCorruptData, err)
	}
	if list == nil {
		list = []models.FavoriteCountry{}
	}
	return list, nil
}

func (r *KVRepository) Add(ctx context.Context, country models.Country) ([]models.FavoriteCountry, error) {
	list, err := r.loadForMutation(ctx, "add")
	if err != nil {
		return nil, err
	}

	for _, fav := range list {
		if fav.Code == country.Code {
			// already present, idempotent
			return list, nil
		}
	}

	updated := append(list, models.FavoriteCountry{
		Country:   country,
		Note:      "",
		DateAdded: r.now().UTC().Format(time.RFC3339),
	})

	if err := r.persist(ctx, updated); err != nil {
		return nil, &PersistenceError{Op: "add", Err: err}
	}
	return updated, nil
}

func (r *KVRepository) Remove(ctx context.Context, code string) ([]models.FavoriteCountry, error) {
	list, err := r.loadForMutation(ctx, "remove")
	if err != nil {
		return nil, err
	}

	updated := make([]models.FavoriteCountry, 0, len(list))
	for _, fav := range list {
		if fav.Code != code {
			updated = append(updated, fav)
		}
	}

	if err := r.persist(ctx, updated); err != nil {
		return nil, &PersistenceError{Op: "remove", Err: err}
	}
	return updated, nil
}

func (r *KVRepository) UpdateNote(ctx context.Context, code string, note string) ([]models.FavoriteCountry, error) {
	list, err := r.loadForMutation(ctx, "update note")
	if err != nil {
		return nil, err
	}

	for i := range list {
		if list[i].Code == code {
			list[i].Note = note
		}
	}

	if err := r.persist(ctx, list); err != nil {
		return nil, &PersistenceError{Op: "update note", Err: err}
	}
	return list, nil
}

func (r *KVRepository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, storageKey); err != nil {
		return &PersistenceError{Op: "clear", Err: err}
	}
	return nil
}

// loadForMutation reads current durable state before a mutation. A store I/O
// failure aborts the mutation; a parse failure degrades to an empty list so
// the next successful write replaces the corrupt value.
func (r *KVRepository) loadForMutation(ctx context.Context, op string) ([]models.FavoriteCountry, error) {
	raw, ok, err := r.store.Get(ctx, storageKey)
	if err != nil {
		return nil, &PersistenceError{Op: op, Err: err}
	}
	if !ok {
		return []models.FavoriteCountry{}, nil
	}

	var list []models.FavoriteCountry
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		r.log.Error(ctx, "discarding corrupt favorites state", "op", op, "error", err)
		return []models.FavoriteCountry{}, nil
	}
	if list == nil {
		list = []models.FavoriteCountry{}
	}
	return list, nil
}

func (r *KVRepository) persist(ctx context.Context, list []models.FavoriteCountry) error {
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to serialize favorites: %w", err)
	}
	return r.store.Set(ctx, storageKey, string(b))
}
