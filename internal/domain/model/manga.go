// Package model contains the domain entities shared by all adapters.
package model

import "sort"

// Manga is a catalog entry. CoverPath is the storage key (or direct URL)
// recorded at creation time; CoverURL, when present, is a presigned URL
// resolved by the backend per response and must not be persisted.
type Manga struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CoverPath   string   `json:"cover_path"`
	CoverURL    string   `json:"cover_url,omitempty"`
	Recommended string   `json:"recommended,omitempty"`
	Tags        []string `json:"tags"`
}

// NewManga is the shape accepted by the catalog's create endpoint.
type NewManga struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Recommended string   `json:"recommended,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CoverPath   string   `json:"cover_path,omitempty"`
}

// Chapter belongs to a manga and is ordered by Number. ReadURL is a
// time-limited capability issued per response; it must never be cached
// past the request that produced it.
type Chapter struct {
	ID        string `json:"id"`
	MangaID   string `json:"manga_id"`
	Number    int    `json:"number"`
	Title     string `json:"title"`
	PDFPath   string `json:"pdf_path,omitempty"`
	ThumbPath string `json:"thumb_path,omitempty"`
	ReadURL   string `json:"read_url,omitempty"`
}

// SortOrder selects chapter ordering by number.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortChapters orders chapters by Number in place. The sort is stable so
// chapters sharing a number keep their relative order.
func SortChapters(chapters []Chapter, order SortOrder) {
	sort.SliceStable(chapters, func(i, j int) bool {
		if order == SortDesc {
			return chapters[i].Number > chapters[j].Number
		}
		return chapters[i].Number < chapters[j].Number
	})
}

// PresignGrant is the upload grant returned by the catalog service. The
// two URLs accept direct PUTs of the chapter PDF and its thumbnail and
// expire after ExpiresIn seconds.
type PresignGrant struct {
	MangaID        string `json:"manga_id"`
	ChapterNumber  int    `json:"chapter_number"`
	S3Key          string `json:"s3_key"`
	UploadURL      string `json:"upload_url"`
	ThumbKey       string `json:"thumb_key"`
	ThumbUploadURL string `json:"thumb_upload_url"`
	ExpiresIn      int    `json:"expires_in"`
}

// ChapterUpload registers an uploaded chapter with the catalog after the
// object bytes have been PUT to the presigned URLs.
type ChapterUpload struct {
	MangaID       string `json:"manga_id"`
	ChapterNumber int    `json:"chapter_number"`
	Title         string `json:"title"`
	S3Key         string `json:"s3_key"`
	ThumbKey      string `json:"thumb_key,omitempty"`
}
