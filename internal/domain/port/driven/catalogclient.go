package driven

import (
	"context"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
)

// CatalogClient is the driven port for the manga catalog service.
// Implementations do not apply business rules; they shape responses into
// model types and propagate normalized RequestErrors.
type CatalogClient interface {
	GetMangas(ctx context.Context) ([]model.Manga, error)
	GetManga(ctx context.Context, id string) (*model.Manga, error)
	// CreateManga is not safe to blindly retry; the pipeline never
	// auto-retries it.
	CreateManga(ctx context.Context, manga model.NewManga) (*model.Manga, error)

	GetChapters(ctx context.Context, mangaID string, order model.SortOrder) ([]model.Chapter, error)
	GetChapter(ctx context.Context, mangaID, chapterID string) (*model.Chapter, error)

	// GetReadURL resolves the time-limited PDF URL for a chapter. The
	// backend serves it two ways depending on version; implementations
	// must try the dedicated read-url endpoint first and fall back to the
	// chapter resource with include_url when that yields a non-absolute
	// URL.
	GetReadURL(ctx context.Context, mangaID, chapterID string) (string, error)

	// PresignUpload obtains direct-PUT upload URLs for a new chapter.
	PresignUpload(ctx context.Context, mangaID string, chapterNumber int) (*model.PresignGrant, error)
	// RegisterChapter records an uploaded chapter after its bytes are in
	// object storage.
	RegisterChapter(ctx context.Context, upload model.ChapterUpload) error
}
