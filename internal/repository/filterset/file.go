package filterset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/makrhub/facetdex/internal/domain"
	domset "github.com/makrhub/facetdex/internal/domain/filterset"
)

// FileRepo persists saved filter sets to a single JSON file. A flock guards
// read-modify-write cycles across processes; concurrent writers still
// resolve to last-write-wins at the set level, matching the session-storage
// semantics this store replaces.
type FileRepo struct {
	path string
	lock *flock.Flock
}

// NewFile creates a file-backed repository at path. The file is created on
// first save.
func NewFile(path string) *FileRepo {
	return &FileRepo{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Save stores the set, overwriting any previous set with the same id.
func (r *FileRepo) Save(ctx context.Context, set domset.Set) error {
	return r.withLock(ctx, func(sets map[string]setDTO) (bool, error) {
		sets[set.ID()] = toDTO(set)
		return true, nil
	})
}

// Get returns a set by id.
func (r *FileRepo) Get(ctx context.Context, id string) (domset.Set, error) {
	var found domset.Set
	err := r.withLock(ctx, func(sets map[string]setDTO) (bool, error) {
		dto, ok := sets[id]
		if !ok {
			return false, domain.ErrFilterSetNotFound
		}
		found = dto.toDomain()
		return false, nil
	})
	if err != nil {
		return domset.Set{}, err
	}
	return found, nil
}

// List returns all sets for a category in unspecified order.
func (r *FileRepo) List(ctx context.Context, category string) ([]domset.Set, error) {
	var out []domset.Set
	err := r.withLock(ctx, func(sets map[string]setDTO) (bool, error) {
		for _, dto := range sets {
			if dto.Category == category {
				out = append(out, dto.toDomain())
			}
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a set by id. Absent ids are a no-op.
func (r *FileRepo) Delete(ctx context.Context, id string) error {
	return r.withLock(ctx, func(sets map[string]setDTO) (bool, error) {
		if _, ok := sets[id]; !ok {
			return false, nil
		}
		delete(sets, id)
		return true, nil
	})
}

// withLock runs fn over the decoded file contents under the flock and
// writes the map back when fn reports a mutation.
func (r *FileRepo) withLock(ctx context.Context, fn func(map[string]setDTO) (bool, error)) error {
	if _, err := r.lock.TryLockContext(ctx, 50*time.Millisecond); err != nil {
		return fmt.Errorf("acquire file lock: %w", err)
	}
	defer func() { _ = r.lock.Unlock() }()

	sets, err := r.read()
	if err != nil {
		return err
	}

	dirty, err := fn(sets)
	if err != nil {
		return err
	}
	if !dirty {
		return nil
	}
	return r.write(sets)
}

func (r *FileRepo) read() (map[string]setDTO, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]setDTO), nil
		}
		return nil, fmt.Errorf("read filter sets file: %w", err)
	}
	if len(data) == 0 {
		return make(map[string]setDTO), nil
	}

	var sets map[string]setDTO
	if err := json.Unmarshal(data, &sets); err != nil {
		return nil, fmt.Errorf("parse filter sets file: %w", err)
	}
	if sets == nil {
		sets = make(map[string]setDTO)
	}
	return sets, nil
}

func (r *FileRepo) write(sets map[string]setDTO) error {
	data, err := json.Marshal(sets)
	if err != nil {
		return fmt.Errorf("encode filter sets: %w", err)
	}

	// Write through a temp file and rename so readers never see a torn file.
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write filter sets file: %w", err)
	}
	if err := os.Rename(tmp, filepath.Clean(r.path)); err != nil {
		return fmt.Errorf("replace filter sets file: %w", err)
	}
	return nil
}
