package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
	"github.com/Juliorubiodev/inku-go/internal/domain/port/driven"
)

// Library serves catalog reads, writing successful listings through to
// the local cache and falling back to it when the backend is unreachable.
type Library struct {
	catalog driven.CatalogClient
	cache   driven.CatalogCache
	log     *slog.Logger
}

// NewLibrary creates a Library.
func NewLibrary(catalog driven.CatalogClient, cache driven.CatalogCache) *Library {
	return &Library{catalog: catalog, cache: cache, log: slog.Default()}
}

// Catalog returns the manga catalog. fromCache is true when the backend
// was unreachable and the local snapshot (taken at cachedAt) was served
// instead; any other failure propagates unchanged.
func (l *Library) Catalog(ctx context.Context) (mangas []model.Manga, fromCache bool, cachedAt time.Time, err error) {
	mangas, err = l.catalog.GetMangas(ctx)
	if err == nil {
		if cacheErr := l.cache.ReplaceAll(ctx, mangas); cacheErr != nil {
			l.log.Warn("catalog cache not updated", "error", cacheErr)
		}
		return mangas, false, time.Time{}, nil
	}

	if !driven.IsConnection(err) {
		return nil, false, time.Time{}, err
	}

	cached, at, cacheErr := l.cache.List(ctx)
	if cacheErr != nil || len(cached) == 0 {
		return nil, false, time.Time{}, err
	}
	l.log.Warn("backend unreachable, serving cached catalog", "cached_at", at)
	return cached, true, at, nil
}

// Manga returns one catalog entry.
func (l *Library) Manga(ctx context.Context, id string) (*model.Manga, error) {
	return l.catalog.GetManga(ctx, id)
}

// CreateManga adds a catalog entry.
func (l *Library) CreateManga(ctx context.Context, manga model.NewManga) (*model.Manga, error) {
	return l.catalog.CreateManga(ctx, manga)
}

// Chapters lists a manga's chapters in the requested order.
func (l *Library) Chapters(ctx context.Context, mangaID string, order model.SortOrder) ([]model.Chapter, error) {
	return l.catalog.GetChapters(ctx, mangaID, order)
}

// ReadURL resolves the time-limited PDF URL for a chapter.
func (l *Library) ReadURL(ctx context.Context, mangaID, chapterID string) (string, error) {
	return l.catalog.GetReadURL(ctx, mangaID, chapterID)
}
