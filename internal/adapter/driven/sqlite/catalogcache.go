package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
	"github.com/Juliorubiodev/inku-go/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CatalogCache = (*CatalogCacheRepo)(nil)

// CatalogCacheRepo is the SQLite implementation of the CatalogCache port.
// Presigned cover URLs are excluded from the snapshot: they expire within
// minutes and caching one would serve a dead link.
type CatalogCacheRepo struct {
	db *DB
}

// NewCatalogCacheRepo creates a new CatalogCacheRepo.
func NewCatalogCacheRepo(db *DB) *CatalogCacheRepo {
	return &CatalogCacheRepo{db: db}
}

// ReplaceAll swaps the cached snapshot for the given mangas in one
// transaction.
func (r *CatalogCacheRepo) ReplaceAll(ctx context.Context, mangas []model.Manga) error {
	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin catalog cache replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_cache`); err != nil {
		return fmt.Errorf("clear catalog cache: %w", err)
	}

	const query = `INSERT INTO catalog_cache
		(manga_id, title, description, cover_path, recommended, tags, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	cachedAt := time.Now().UTC().Format(time.RFC3339Nano)

	for _, m := range mangas {
		tags, err := json.Marshal(m.Tags)
		if err != nil {
			return fmt.Errorf("marshal tags for %q: %w", m.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query,
			m.ID, m.Title, m.Description, m.CoverPath, m.Recommended, string(tags), cachedAt,
		); err != nil {
			return fmt.Errorf("cache manga %q: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog cache replace: %w", err)
	}
	return nil
}

// List returns the cached snapshot in title order with the snapshot time.
func (r *CatalogCacheRepo) List(ctx context.Context) ([]model.Manga, time.Time, error) {
	const query = `SELECT manga_id, title, description, cover_path, recommended, tags, cached_at
		FROM catalog_cache ORDER BY title`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("list catalog cache: %w", err)
	}
	defer rows.Close()

	var mangas []model.Manga
	var cachedAt time.Time
	for rows.Next() {
		var m model.Manga
		var tags, cached string
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.CoverPath, &m.Recommended, &tags, &cached); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan cached manga: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &m.Tags); err != nil {
			return nil, time.Time{}, fmt.Errorf("unmarshal tags for %q: %w", m.ID, err)
		}
		if cachedAt.IsZero() {
			if cachedAt, err = parseTime(cached); err != nil {
				return nil, time.Time{}, fmt.Errorf("cached_at for %q: %w", m.ID, err)
			}
		}
		mangas = append(mangas, m)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterate catalog cache: %w", err)
	}

	return mangas, cachedAt, nil
}
