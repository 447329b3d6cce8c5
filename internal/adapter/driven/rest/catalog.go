package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
	"github.com/Juliorubiodev/inku-go/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CatalogClient = (*CatalogService)(nil)

// CatalogService implements the driven.CatalogClient port against the
// catalog backend. It applies no business rules of its own; response
// bodies are shaped into model types and errors propagate normalized.
type CatalogService struct {
	client *Client
}

// NewCatalogService wraps a pipeline client for the catalog base URL.
func NewCatalogService(client *Client) *CatalogService {
	return &CatalogService{client: client}
}

func (s *CatalogService) GetMangas(ctx context.Context) ([]model.Manga, error) {
	var mangas []model.Manga
	if err := s.client.do(ctx, http.MethodGet, "/api/mangas", nil, nil, &mangas); err != nil {
		return nil, err
	}
	if mangas == nil {
		mangas = []model.Manga{}
	}
	return mangas, nil
}

func (s *CatalogService) GetManga(ctx context.Context, id string) (*model.Manga, error) {
	var manga model.Manga
	path := "/api/mangas/" + url.PathEscape(id)
	if err := s.client.do(ctx, http.MethodGet, path, nil, nil, &manga); err != nil {
		return nil, err
	}
	return &manga, nil
}

func (s *CatalogService) CreateManga(ctx context.Context, manga model.NewManga) (*model.Manga, error) {
	var created model.Manga
	if err := s.client.do(ctx, http.MethodPost, "/api/mangas", nil, manga, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *CatalogService) GetChapters(ctx context.Context, mangaID string, order model.SortOrder) ([]model.Chapter, error) {
	if order == "" {
		order = model.SortAsc
	}
	params := url.Values{"sort": {string(order)}}
	path := fmt.Sprintf("/api/mangas/%s/chapters", url.PathEscape(mangaID))

	var chapters []model.Chapter
	if err := s.client.do(ctx, http.MethodGet, path, params, nil, &chapters); err != nil {
		return nil, err
	}
	if chapters == nil {
		chapters = []model.Chapter{}
	}
	return chapters, nil
}

func (s *CatalogService) GetChapter(ctx context.Context, mangaID, chapterID string) (*model.Chapter, error) {
	var chapter model.Chapter
	path := fmt.Sprintf("/api/mangas/%s/chapters/%s", url.PathEscape(mangaID), url.PathEscape(chapterID))
	if err := s.client.do(ctx, http.MethodGet, path, nil, nil, &chapter); err != nil {
		return nil, err
	}
	return &chapter, nil
}

// absoluteURL reports whether s is a complete http(s) URL rather than a
// bare storage path.
func absoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// GetReadURL resolves the time-limited PDF URL for a chapter. Older
// backends serve it from a dedicated read-url endpoint; newer ones embed
// it in the chapter resource behind include_url. The dedicated endpoint
// is tried first, and a non-absolute result from it counts as a failure:
// a relative path cannot be handed to a viewer.
func (s *CatalogService) GetReadURL(ctx context.Context, mangaID, chapterID string) (string, error) {
	path := fmt.Sprintf("/api/mangas/%s/chapters/%s/read-url", url.PathEscape(mangaID), url.PathEscape(chapterID))

	var direct struct {
		URL string `json:"url"`
	}
	directErr := s.client.do(ctx, http.MethodGet, path, nil, nil, &direct)
	if directErr == nil {
		if absoluteURL(direct.URL) {
			return direct.URL, nil
		}
		s.client.log.Warn("read-url endpoint returned a relative path, falling back", "url", direct.URL)
		directErr = fmt.Errorf("read-url endpoint returned non-absolute URL %q", direct.URL)
	}

	chapterPath := fmt.Sprintf("/api/mangas/%s/chapters/%s", url.PathEscape(mangaID), url.PathEscape(chapterID))
	var chapter model.Chapter
	if err := s.client.do(ctx, http.MethodGet, chapterPath, url.Values{"include_url": {"true"}}, nil, &chapter); err == nil {
		if absoluteURL(chapter.ReadURL) {
			return chapter.ReadURL, nil
		}
	}

	return "", directErr
}

func (s *CatalogService) PresignUpload(ctx context.Context, mangaID string, chapterNumber int) (*model.PresignGrant, error) {
	body := map[string]any{
		"manga_id":       mangaID,
		"chapter_number": chapterNumber,
	}
	var grant model.PresignGrant
	if err := s.client.do(ctx, http.MethodPost, "/api/uploads/presign", nil, body, &grant); err != nil {
		return nil, err
	}
	return &grant, nil
}

func (s *CatalogService) RegisterChapter(ctx context.Context, upload model.ChapterUpload) error {
	return s.client.do(ctx, http.MethodPost, "/api/uploads/register", nil, upload, nil)
}
