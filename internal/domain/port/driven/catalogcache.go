package driven

import (
	"context"
	"time"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
)

// CatalogCache is the driven port for the local catalog snapshot used when
// the backend is unreachable. Presigned cover URLs are never cached; only
// durable manga fields are stored.
type CatalogCache interface {
	// ReplaceAll swaps the cached snapshot for the given mangas.
	ReplaceAll(ctx context.Context, mangas []model.Manga) error

	// List returns the cached snapshot in title order together with the
	// time it was taken. An empty cache returns (nil, zero time, nil).
	List(ctx context.Context) ([]model.Manga, time.Time, error)
}
