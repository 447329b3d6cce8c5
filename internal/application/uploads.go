package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
	"github.com/Juliorubiodev/inku-go/internal/domain/port/driven"
)

// ObjectPutter uploads raw object bytes to presigned URLs.
type ObjectPutter interface {
	PutPDF(ctx context.Context, presignedURL string, data []byte) error
	PutThumbnail(ctx context.Context, presignedURL string, data []byte) error
}

// Uploads publishes chapters: presign, PUT the bytes, then register the
// chapter with the catalog.
type Uploads struct {
	catalog driven.CatalogClient
	putter  ObjectPutter
	log     *slog.Logger
}

// NewUploads creates an Uploads service.
func NewUploads(catalog driven.CatalogClient, putter ObjectPutter) *Uploads {
	return &Uploads{catalog: catalog, putter: putter, log: slog.Default()}
}

// ChapterDraft is the input for PublishChapter. Thumb may be nil.
type ChapterDraft struct {
	MangaID       string
	ChapterNumber int
	Title         string
	PDF           []byte
	Thumb         []byte
}

// PublishChapter runs the three-step upload flow. If registration fails
// after the bytes are uploaded the objects are left orphaned; the backend
// garbage-collects unregistered keys, so no cleanup happens client-side.
func (s *Uploads) PublishChapter(ctx context.Context, draft ChapterDraft) (*model.ChapterUpload, error) {
	if len(draft.PDF) == 0 {
		return nil, fmt.Errorf("chapter %d of %q: empty PDF", draft.ChapterNumber, draft.MangaID)
	}

	grant, err := s.catalog.PresignUpload(ctx, draft.MangaID, draft.ChapterNumber)
	if err != nil {
		return nil, err
	}
	s.log.Debug("upload presigned",
		"manga_id", draft.MangaID,
		"chapter", draft.ChapterNumber,
		"s3_key", grant.S3Key,
		"expires_in", grant.ExpiresIn,
	)

	if err := s.putter.PutPDF(ctx, grant.UploadURL, draft.PDF); err != nil {
		return nil, fmt.Errorf("upload chapter pdf: %w", err)
	}

	upload := model.ChapterUpload{
		MangaID:       draft.MangaID,
		ChapterNumber: draft.ChapterNumber,
		Title:         draft.Title,
		S3Key:         grant.S3Key,
	}

	if len(draft.Thumb) > 0 {
		if err := s.putter.PutThumbnail(ctx, grant.ThumbUploadURL, draft.Thumb); err != nil {
			return nil, fmt.Errorf("upload thumbnail: %w", err)
		}
		upload.ThumbKey = grant.ThumbKey
	}

	if err := s.catalog.RegisterChapter(ctx, upload); err != nil {
		return nil, fmt.Errorf("register chapter: %w", err)
	}
	return &upload, nil
}
