// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package volume_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/libris/internal/core/reference"
	"github.com/taibuivan/libris/internal/core/volume"
	"github.com/taibuivan/libris/internal/metadata"
	"github.com/taibuivan/libris/internal/platform/dberr"
	"github.com/taibuivan/libris/pkg/fold"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// # Volume store

// memoryVolumes is an in-memory [volume.Repository] enforcing the same
// uniqueness as the Postgres partial indexes on isbn10 and isbn13.
type memoryVolumes struct {
	mu     sync.Mutex
	byID   map[string]*volume.Volume
	order  []string
	fails  error
	before func()
}

func newMemoryVolumes() *memoryVolumes {
	return &memoryVolumes{byID: map[string]*volume.Volume{}}
}

func (repo *memoryVolumes) find(match func(*volume.Volume) bool) (*volume.Volume, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, id := range repo.order {
		if stored := repo.byID[id]; match(stored) {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *memoryVolumes) FindByID(_ context.Context, id string) (*volume.Volume, error) {
	return repo.find(func(stored *volume.Volume) bool { return stored.ID == id })
}

func (repo *memoryVolumes) FindByISBN10(_ context.Context, isbn10 string) (*volume.Volume, error) {
	return repo.find(func(stored *volume.Volume) bool { return stored.ISBN10 != nil && *stored.ISBN10 == isbn10 })
}

func (repo *memoryVolumes) FindByISBN13(_ context.Context, isbn13 string) (*volume.Volume, error) {
	return repo.find(func(stored *volume.Volume) bool { return stored.ISBN13 != nil && *stored.ISBN13 == isbn13 })
}

func (repo *memoryVolumes) FindByIDs(_ context.Context, ids []string) ([]*volume.Volume, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	volumes := []*volume.Volume{}
	for _, id := range ids {
		if stored, ok := repo.byID[id]; ok {
			clone := *stored
			volumes = append(volumes, &clone)
		}
	}
	return volumes, nil
}

func (repo *memoryVolumes) filter(match func(*volume.Volume) bool) []*volume.Volume {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	volumes := []*volume.Volume{}
	for _, id := range repo.order {
		if stored := repo.byID[id]; match(stored) {
			clone := *stored
			volumes = append(volumes, &clone)
		}
	}
	sort.SliceStable(volumes, func(i, j int) bool { return volumes[i].Title < volumes[j].Title })
	return volumes
}

func (repo *memoryVolumes) SearchTitle(_ context.Context, term string) ([]*volume.Volume, error) {
	needle := strings.ToLower(term)
	return repo.filter(func(stored *volume.Volume) bool {
		return strings.Contains(strings.ToLower(stored.Title), needle)
	}), nil
}

func (repo *memoryVolumes) FindByEntity(_ context.Context, kind reference.Kind, entityID int) ([]*volume.Volume, error) {
	return repo.filter(func(stored *volume.Volume) bool {
		links := stored.Authors
		if kind == reference.KindCategory {
			links = stored.Categories
		}
		for _, link := range links {
			if link.ID == entityID {
				return true
			}
		}
		return false
	}), nil
}

func (repo *memoryVolumes) Create(_ context.Context, candidate *volume.Volume) error {
	if repo.before != nil {
		repo.before()
	}
	if repo.fails != nil {
		return repo.fails
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, stored := range repo.byID {
		if sameISBN(stored.ISBN10, candidate.ISBN10) || sameISBN(stored.ISBN13, candidate.ISBN13) {
			return dberr.ErrConflict
		}
	}

	clone := *candidate
	repo.byID[candidate.ID] = &clone
	repo.order = append(repo.order, candidate.ID)
	return nil
}

// put stores a volume directly, bypassing the uniqueness check.
func (repo *memoryVolumes) put(stored *volume.Volume) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.byID[stored.ID] = stored
	repo.order = append(repo.order, stored.ID)
}

func (repo *memoryVolumes) count() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.byID)
}

func sameISBN(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

// # References

// memoryEntities resolves and matches names like reference.Service does,
// keyed by folded name.
type memoryEntities struct {
	mu     sync.Mutex
	nextID int
	byKey  map[reference.Kind]map[string]reference.Entity
	order  map[reference.Kind][]string
}

func newMemoryEntities() *memoryEntities {
	return &memoryEntities{
		byKey: map[reference.Kind]map[string]reference.Entity{
			reference.KindAuthor:   {},
			reference.KindCategory: {},
		},
		order: map[reference.Kind][]string{},
	}
}

func (entities *memoryEntities) Resolve(_ context.Context, kind reference.Kind, names []string) ([]reference.Entity, error) {
	entities.mu.Lock()
	defer entities.mu.Unlock()

	resolved := []reference.Entity{}
	seen := map[string]bool{}
	for _, raw := range names {
		name := fold.Clean(raw)
		key := fold.Key(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true

		entity, ok := entities.byKey[kind][key]
		if !ok {
			entities.nextID++
			entity = reference.Entity{ID: entities.nextID, Kind: kind, Name: name, CreatedAt: time.Now()}
			entities.byKey[kind][key] = entity
			entities.order[kind] = append(entities.order[kind], key)
		}
		resolved = append(resolved, entity)
	}
	return resolved, nil
}

func (entities *memoryEntities) Match(_ context.Context, kind reference.Kind, query string) ([]*reference.Entity, error) {
	entities.mu.Lock()
	defer entities.mu.Unlock()

	matched := []*reference.Entity{}
	needle := strings.ToLower(query)
	for _, key := range entities.order[kind] {
		entity := entities.byKey[kind][key]
		if strings.Contains(strings.ToLower(entity.Name), needle) {
			matched = append(matched, &entity)
		}
	}
	return matched, nil
}

// # Metadata

// stubSource answers from a fixed table. Unknown ISBNs are misses.
type stubSource struct {
	mu      sync.Mutex
	records map[string]*metadata.Record
	err     error
	block   bool
	calls   int
}

func newStubSource(records map[string]*metadata.Record) *stubSource {
	return &stubSource{records: records}
}

func (source *stubSource) Lookup(ctx context.Context, isbn string) (*metadata.Record, error) {
	source.mu.Lock()
	source.calls++
	source.mu.Unlock()

	if source.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if source.err != nil {
		return nil, source.err
	}
	record, ok := source.records[isbn]
	if !ok {
		return nil, metadata.ErrNotFound
	}
	clone := *record
	return &clone, nil
}

func (source *stubSource) callCount() int {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.calls
}

// azkaban is the record the public API returns for 9780439554930, minus its ISBN-10.
func azkaban() *metadata.Record {
	return &metadata.Record{
		Title:         "Harry Potter and the Prisoner of Azkaban",
		Authors:       []string{"J. K. Rowling"},
		Categories:    []string{"Juvenile Fiction"},
		PublishedDate: "2004-06",
		Language:      "en",
		ISBN13:        "9780439554930",
	}
}
