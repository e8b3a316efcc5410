package filterset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/makrhub/facetdex/internal/db"
	"github.com/makrhub/facetdex/internal/domain"
	domset "github.com/makrhub/facetdex/internal/domain/filterset"
)

// kvStore is the consumer interface for filter set storage (ISP).
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// RedisRepo persists saved filter sets as JSON values under
// category-namespaced keys: {prefix}filtersets:{category}:{id}.
type RedisRepo struct {
	store  kvStore
	prefix string
}

// NewRedis creates a Redis-backed repository.
func NewRedis(store kvStore, prefix string) *RedisRepo {
	return &RedisRepo{store: store, prefix: prefix}
}

func (r *RedisRepo) key(category, id string) string {
	return fmt.Sprintf("%sfiltersets:%s:%s", r.prefix, category, id)
}

// Save stores the set, overwriting any previous set with the same id.
// Concurrent writers are unsynchronized: last write wins.
func (r *RedisRepo) Save(ctx context.Context, set domset.Set) error {
	data, err := json.Marshal(toDTO(set))
	if err != nil {
		return fmt.Errorf("encode filter set: %w", err)
	}
	if err := r.store.Set(ctx, r.key(set.Category(), set.ID()), data); err != nil {
		return fmt.Errorf("store filter set: %w", err)
	}
	return nil
}

// Get returns a set by id, scanning across categories since the caller
// holds only the id.
func (r *RedisRepo) Get(ctx context.Context, id string) (domset.Set, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"filtersets:*:"+id)
	if err != nil {
		return domset.Set{}, fmt.Errorf("scan filter sets: %w", err)
	}
	if len(keys) == 0 {
		return domset.Set{}, domain.ErrFilterSetNotFound
	}

	data, err := r.store.Get(ctx, keys[0])
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domset.Set{}, domain.ErrFilterSetNotFound
		}
		return domset.Set{}, fmt.Errorf("read filter set: %w", err)
	}
	return decode(data)
}

// List returns all sets for a category in unspecified order.
func (r *RedisRepo) List(ctx context.Context, category string) ([]domset.Set, error) {
	keys, err := r.store.Scan(ctx, r.key(category, "*"))
	if err != nil {
		return nil, fmt.Errorf("scan filter sets: %w", err)
	}

	out := make([]domset.Set, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue // deleted between scan and get
			}
			return nil, fmt.Errorf("read filter set %s: %w", key, err)
		}
		set, err := decode(data)
		if err != nil {
			return nil, err
		}
		out = append(out, set)
	}
	return out, nil
}

// Delete removes a set by id. Absent ids are a no-op.
func (r *RedisRepo) Delete(ctx context.Context, id string) error {
	keys, err := r.store.Scan(ctx, r.prefix+"filtersets:*:"+id)
	if err != nil {
		return fmt.Errorf("scan filter sets: %w", err)
	}
	for _, key := range keys {
		if err := r.store.Del(ctx, key); err != nil {
			return fmt.Errorf("delete filter set %s: %w", key, err)
		}
	}
	return nil
}

func decode(data []byte) (domset.Set, error) {
	var dto setDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domset.Set{}, fmt.Errorf("decode filter set: %w", err)
	}
	return dto.toDomain(), nil
}
